package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/jarpath/pkg/depset"
	"github.com/matzehuels/jarpath/pkg/task"
)

// newGraphCmd creates the graph command. It exports the resolved
// dependency graph as Graphviz DOT or rendered SVG.
func newGraphCmd() *cobra.Command {
	var (
		rOpts  resolveOpts
		eOpts  envOpts
		format string
		output string
	)

	cmd := &cobra.Command{
		Use:   "graph",
		Short: "Export the dependency graph as DOT or SVG",
		Long: `Walk the transitive dependency graph and export it. Direct dependencies
are drawn as boxes, transitive ones as ellipses, and conflicted
coordinates are highlighted with their candidate versions.

Examples:
  jarpath graph                          # DOT to stdout
  jarpath graph -o deps.dot              # DOT to a file
  jarpath graph --format svg -o deps.svg # Rendered SVG`,
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

			cfg := task.Merge(defaults, eOpts.options(cmd, false))
			env := cfg.Environment()
			if err := env.Validate(); err != nil {
				return err
			}
			env.Dependencies = resolver.ApplyGlobalExclusions(env.Exclusions,
				depset.Filter(env.Dependencies, env.Scopes, task.SelfCoordinate, nil))

			g, err := resolver.DependencyGraph(ctx, env)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Walked %d dependencies", len(g.Nodes)))

			var data []byte
			switch format {
			case "dot":
				data = []byte(g.DOT())
			case "svg":
				data, err = g.RenderSVG(ctx)
				if err != nil {
					return fmt.Errorf("render svg: %w", err)
				}
			default:
				return fmt.Errorf("unknown format %q (want dot or svg)", format)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			printSuccess("Graph exported")
			printFile(output)
			return nil
		},
	}

	rOpts.register(cmd)
	eOpts.register(cmd)
	cmd.Flags().StringVar(&format, "format", "dot", "output format (dot or svg)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (stdout if empty)")
	return cmd
}
