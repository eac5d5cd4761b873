package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/jarpath/pkg/depset"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// Pin is a version choice for one conflicted coordinate.
type Pin struct {
	Coordinate string
	Version    string
}

// conflictEntry is one conflicted coordinate with its candidate versions.
type conflictEntry struct {
	Coordinate string
	Versions   []string
}

// conflictPickerModel is the bubbletea model for interactive conflict
// pinning. It steps through the conflicted coordinates one at a time; the
// user picks a version for each, and the chosen pins accumulate in Pins.
type conflictPickerModel struct {
	Entries []conflictEntry
	Pins    []Pin
	Aborted bool
	index   int
	cursor  int
}

// newConflictPickerModel creates a picker over the conflict map, with
// coordinates visited in sorted order.
func newConflictPickerModel(conflicts depset.ConflictMap) conflictPickerModel {
	coords := conflicts.Coordinates()
	entries := make([]conflictEntry, 0, len(coords))
	for _, coord := range coords {
		entries = append(entries, conflictEntry{Coordinate: coord, Versions: conflicts[coord]})
	}
	return conflictPickerModel{Entries: entries}
}

func (m conflictPickerModel) Init() tea.Cmd {
	return nil
}

func (m conflictPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	if m.index >= len(m.Entries) {
		return m, tea.Quit
	}

	entry := m.Entries[m.index]

	switch key.String() {
	case "q", "ctrl+c", "esc":
		m.Aborted = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(entry.Versions)-1 {
			m.cursor++
		}
	case "enter":
		m.Pins = append(m.Pins, Pin{Coordinate: entry.Coordinate, Version: entry.Versions[m.cursor]})
		m.index++
		m.cursor = 0
		if m.index >= len(m.Entries) {
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m conflictPickerModel) View() string {
	if m.index >= len(m.Entries) {
		return ""
	}

	entry := m.Entries[m.index]

	var b strings.Builder
	b.WriteString(StyleTitle.Render("Pin Version"))
	b.WriteString("  ")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("[%d/%d]", m.index+1, len(m.Entries))))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	b.WriteString(StyleValue.Render(entry.Coordinate))
	b.WriteString("\n\n")

	for i, v := range entry.Versions {
		cursor := "  "
		if i == m.cursor {
			cursor = "▸ "
		}
		line := cursor + v
		if i == m.cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	return b.String()
}
