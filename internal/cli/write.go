package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jarpath/pkg/depset"
	"github.com/matzehuels/jarpath/pkg/task"
)

// newWriteCmd creates the write command. It resolves the declared
// dependency set and persists the classpath file.
func newWriteCmd() *cobra.Command {
	var (
		rOpts resolveOpts
		eOpts envOpts
	)

	cmd := &cobra.Command{
		Use:   "write",
		Short: "Resolve dependencies and write the classpath file",
		Long: `Resolve the declared Maven dependencies to local repository artifacts
and write them, in dependency order, to the classpath file.

Settings come from jarpath.toml; flags override them per invocation.

Examples:
  jarpath write                          # Settings from jarpath.toml
  jarpath write -f build/.classpath      # Override the target file
  jarpath write --safe                   # Fail on version conflicts
  jarpath write --exclude commons-logging:commons-logging`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)
			prog := newProgress(logger)

			defaults, err := rOpts.loadDefaults()
			if err != nil {
				return err
			}

			resolver, err := rOpts.newResolver(ctx)
			if err != nil {
				return err
			}

			t := task.New(resolver, nil, logger)
			opts := eOpts.options(cmd, true)

			if err := t.Run(ctx, defaults, opts); err != nil {
				var conflictErr *depset.ConflictError
				if errors.As(err, &conflictErr) {
					printConflicts(conflictErr.Conflicts)
					return fmt.Errorf("classpath not written: %d unresolved conflicts", len(conflictErr.Conflicts))
				}
				return err
			}

			cfg := task.Merge(defaults, opts)
			prog.done(fmt.Sprintf("Resolved %d dependencies", len(cfg.Dependencies)))
			if cfg.File != "" {
				printSuccess("Classpath written")
				printFile(cfg.File)
			}
			return nil
		},
	}

	rOpts.register(cmd)
	eOpts.register(cmd)
	return cmd
}
