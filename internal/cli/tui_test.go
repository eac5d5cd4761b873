package cli

import (
	"reflect"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/jarpath/pkg/depset"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func step(t *testing.T, m tea.Model, keys ...string) tea.Model {
	t.Helper()
	for _, k := range keys {
		m, _ = m.Update(keyMsg(k))
	}
	return m
}

func TestConflictPickerPinsAll(t *testing.T) {
	conflicts := depset.ConflictMap{
		"lib:a": {"1.0", "1.5"},
		"lib:b": {"2.0", "3.0"},
	}

	// Pick the second version of lib:a and the first of lib:b.
	m := step(t, newConflictPickerModel(conflicts), "down", "enter", "enter")

	final, ok := m.(conflictPickerModel)
	if !ok {
		t.Fatalf("unexpected model type %T", m)
	}
	if final.Aborted {
		t.Fatal("picker should not be aborted")
	}

	want := []Pin{
		{Coordinate: "lib:a", Version: "1.5"},
		{Coordinate: "lib:b", Version: "2.0"},
	}
	if !reflect.DeepEqual(final.Pins, want) {
		t.Errorf("Pins = %v, want %v", final.Pins, want)
	}
}

func TestConflictPickerAbort(t *testing.T) {
	conflicts := depset.ConflictMap{"lib:a": {"1.0", "1.5"}}

	m := step(t, newConflictPickerModel(conflicts), "enter")
	if final := m.(conflictPickerModel); final.Aborted {
		t.Fatal("completing all entries should not abort")
	}

	m = step(t, newConflictPickerModel(conflicts), "q")
	if final := m.(conflictPickerModel); !final.Aborted {
		t.Error("q should abort the picker")
	}

	m = step(t, newConflictPickerModel(conflicts), "esc")
	if final := m.(conflictPickerModel); !final.Aborted {
		t.Error("esc should abort the picker")
	}
}

func TestConflictPickerCursorBounds(t *testing.T) {
	conflicts := depset.ConflictMap{"lib:a": {"1.0", "1.5"}}

	m := step(t, newConflictPickerModel(conflicts), "up", "down", "down", "down", "enter")
	final := m.(conflictPickerModel)
	if len(final.Pins) != 1 || final.Pins[0].Version != "1.5" {
		t.Errorf("Pins = %v, want last version pinned", final.Pins)
	}
}

func TestConflictPickerView(t *testing.T) {
	conflicts := depset.ConflictMap{"lib:a": {"1.0", "1.5"}}
	m := newConflictPickerModel(conflicts)

	view := m.View()
	for _, want := range []string{"lib:a", "1.0", "1.5", "[1/1]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q:\n%s", want, view)
		}
	}
}
