package cli

import (
	"context"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jarpath/pkg/buildinfo"
)

// Execute runs the jarpath CLI and returns an error if any command fails.
//
// The function sets up the root command with all subcommands, configures
// logging based on the --verbose flag, and executes the command tree.
//
// Logging:
//   - Default: info level (logs to stderr)
//   - With --verbose (-v): debug level
//
// The logger is attached to the context and accessible to all commands via
// loggerFromContext.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "jarpath",
		Short:        "jarpath builds portable Java classpath files from Maven dependencies",
		Long:         `jarpath resolves declared Maven dependencies to local repository artifacts and maintains a classpath file the host build can load, with optional conflict checking and graph export.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			cmd.SetContext(withLogger(cmd.Context(), newLogger(os.Stderr, level)))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newWriteCmd())
	root.AddCommand(newReadCmd())
	root.AddCommand(newConflictsCmd())
	root.AddCommand(newGraphCmd())
	root.AddCommand(newCacheCmd())

	return root.ExecuteContext(ctx)
}
