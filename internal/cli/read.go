package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jarpath/pkg/manifest"
	"github.com/matzehuels/jarpath/pkg/task"
)

// newReadCmd creates the read command. It decodes an existing classpath
// file and prints one entry per line, in file order.
func newReadCmd() *cobra.Command {
	var (
		manifestPath string
		file         string
	)

	cmd := &cobra.Command{
		Use:   "read",
		Short: "Print the entries of an existing classpath file",
		Long: `Decode the classpath file and print one entry per line, in file order.
Order matters: later entries shadow earlier ones in class resolution.

Examples:
  jarpath read                       # File from jarpath.toml settings
  jarpath read -f build/.classpath   # Explicit file`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			defaults := task.Defaults{File: file}
			if file == "" {
				m, err := manifest.Load(manifestPath)
				switch {
				case err == nil:
					defaults.File = m.Settings.File
				case os.IsNotExist(err) && !cmd.Flags().Changed("manifest"):
					// No manifest and no flag; the task warns and skips.
				default:
					return fmt.Errorf("load manifest %s: %w", manifestPath, err)
				}
			}

			printer := task.AppenderFunc(func(path string) error {
				fmt.Fprintln(cmd.OutOrStdout(), path)
				return nil
			})

			t := task.New(nil, printer, logger)
			return t.Run(cmd.Context(), defaults, task.Options{})
		},
	}

	cmd.Flags().StringVarP(&manifestPath, "manifest", "m", manifest.Filename, "manifest file")
	cmd.Flags().StringVarP(&file, "file", "f", "", "classpath file to read (overrides manifest)")
	return cmd
}
