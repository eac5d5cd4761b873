package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/jarpath/pkg/depset"
	"github.com/matzehuels/jarpath/pkg/task"
)

// newConflictsCmd creates the conflicts command. It walks the dependency
// graph and reports coordinates requested with more than one version that
// no direct declaration settles.
func newConflictsCmd() *cobra.Command {
	var (
		rOpts       resolveOpts
		eOpts       envOpts
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "conflicts",
		Short: "Report unresolved version conflicts",
		Long: `Walk the transitive dependency graph and report every coordinate that
is requested with more than one version and has no direct declaration
pinning it.

With --interactive, pick a version for each conflict and get a manifest
snippet that pins them.

Examples:
  jarpath conflicts
  jarpath conflicts --interactive`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

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

			conflicts, err := depset.DetectConflicts(ctx, env, resolver)
			if err != nil {
				return err
			}

			if len(conflicts) == 0 {
				printSuccess("No unresolved version conflicts")
				return nil
			}

			printConflicts(conflicts)

			if interactive {
				return pickPins(conflicts)
			}

			printDetail("Pin a version with a [[dependencies]] entry, or run with --interactive")
			return nil
		},
	}

	rOpts.register(cmd)
	eOpts.register(cmd)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "pick pinned versions interactively")
	return cmd
}

// printConflicts renders the conflict map as a table, one coordinate per
// row with its candidate versions.
func printConflicts(conflicts depset.ConflictMap) {
	rows := make([][]string, 0, len(conflicts))
	for _, coord := range conflicts.Coordinates() {
		rows = append(rows, []string{coord, strings.Join(conflicts[coord], ", ")})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Coordinate", "Versions").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if col == 0 {
				return StyleValue
			}
			return StyleWarning
		})

	printWarning("%d unresolved version conflicts", len(conflicts))
	fmt.Println(t.Render())
}

// pickPins runs the interactive version picker and prints a manifest
// snippet pinning every chosen version.
func pickPins(conflicts depset.ConflictMap) error {
	model := newConflictPickerModel(conflicts)
	final, err := tea.NewProgram(model).Run()
	if err != nil {
		return fmt.Errorf("interactive picker: %w", err)
	}

	m, ok := final.(conflictPickerModel)
	if !ok || m.Aborted {
		printInfo("No versions pinned")
		return nil
	}

	fmt.Println()
	printInfo("Add to %s:", StyleHighlight.Render("jarpath.toml"))
	fmt.Println()
	for _, pin := range m.Pins {
		fmt.Println("[[dependencies]]")
		fmt.Printf("coordinate = %q\n", pin.Coordinate)
		fmt.Printf("version = %q\n", pin.Version)
		fmt.Println()
	}
	return nil
}
