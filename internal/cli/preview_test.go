package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/go-cmp/cmp"

	mfio "github.com/matzehuels/mosaicflow/pkg/io"
	"github.com/matzehuels/mosaicflow/pkg/masonry"
)

func newTestPreview(t *testing.T) previewModel {
	t.Helper()
	m := &mfio.Manifest{
		Width: 480,
		Items: []mfio.ManifestItem{
			{ID: "a", Height: 100, Label: "Alpha"},
			{ID: "b", Height: 100},
			{ID: "c", Height: 100},
		},
	}
	model, err := newPreviewModel(m, masonry.DefaultOptions(), previewFlags{step: 240, seed: 7})
	if err != nil {
		t.Fatalf("newPreviewModel() error: %v", err)
	}
	return model
}

func press(t *testing.T, m previewModel, msg tea.KeyMsg) previewModel {
	t.Helper()
	next, _ := m.Update(msg)
	pm, ok := next.(previewModel)
	if !ok {
		t.Fatalf("Update() returned %T", next)
	}
	if pm.err != nil {
		t.Fatalf("after %q: %v", msg.String(), pm.err)
	}
	return pm
}

func runeKey(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPreviewInitialLayout(t *testing.T) {
	m := newTestPreview(t)

	want := [][]string{{"a", "c"}, {"b"}}
	if diff := cmp.Diff(want, m.engine.Assignment()); diff != "" {
		t.Errorf("assignment mismatch (-want +got):\n%s", diff)
	}
	if m.labels["a"] != "Alpha" {
		t.Errorf("labels[a] = %q, want Alpha", m.labels["a"])
	}
}

func TestPreviewResize(t *testing.T) {
	m := newTestPreview(t)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.width != 240 {
		t.Errorf("width = %v, want 240", m.width)
	}
	if diff := cmp.Diff([][]string{{"a", "b", "c"}}, m.engine.Assignment()); diff != "" {
		t.Errorf("after shrink (-want +got):\n%s", diff)
	}

	// The width never drops below one step.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyLeft})
	if m.width != 240 {
		t.Errorf("width = %v, want 240", m.width)
	}

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight})
	if got := m.engine.ColumnCount(); got != 3 {
		t.Errorf("ColumnCount() = %d, want 3", got)
	}
}

func TestPreviewAddRemove(t *testing.T) {
	m := newTestPreview(t)

	m = press(t, m, runeKey('a'))
	if m.engine.Len() != 4 {
		t.Fatalf("Len() = %d after add, want 4", m.engine.Len())
	}
	if _, ok := m.engine.Lookup("new-1"); !ok {
		t.Error("new-1 not managed after add")
	}
	if got := m.events.lines[len(m.events.lines)-1]; got != "added new-1" {
		t.Errorf("last event = %q, want %q", got, "added new-1")
	}

	m = press(t, m, runeKey('d'))
	if m.engine.Len() != 3 {
		t.Errorf("Len() = %d after remove, want 3", m.engine.Len())
	}
	if _, ok := m.engine.Lookup("new-1"); ok {
		t.Error("new-1 still managed after remove")
	}

	// Nothing left to remove: the manifest items stay.
	m = press(t, m, runeKey('d'))
	if m.engine.Len() != 3 {
		t.Errorf("Len() = %d, want 3", m.engine.Len())
	}
}

func TestPreviewEmpty(t *testing.T) {
	m := newTestPreview(t)

	m = press(t, m, runeKey('a'))
	m = press(t, m, runeKey('e'))
	if m.engine.Len() != 0 {
		t.Errorf("Len() = %d after empty, want 0", m.engine.Len())
	}
	if len(m.added) != 0 {
		t.Errorf("added = %v, want none", m.added)
	}
}

func TestPreviewQuit(t *testing.T) {
	for _, key := range []tea.KeyMsg{runeKey('q'), {Type: tea.KeyCtrlC}, {Type: tea.KeyEsc}} {
		_, cmd := newTestPreview(t).Update(key)
		if cmd == nil {
			t.Fatalf("%q: Update() returned no command", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%q: command did not quit", key.String())
		}
	}
}

func TestPreviewView(t *testing.T) {
	m := newTestPreview(t)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	view := next.(previewModel).View()

	for _, want := range []string{"Mosaicflow Preview", "2 columns", "3 items", "Alpha"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
}
