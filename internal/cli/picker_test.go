package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nugraph/nugraph/pkg/deps/repofile"
)

// testPicker builds a picker over a three-package repository.
func testPicker(t *testing.T) packagePickerModel {
	t.Helper()
	repo, err := repofile.Parse(strings.NewReader("A: B C\nB: C\nC:\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return newPackagePicker(repo)
}

// applyKey runs one key message through the model.
func applyKey(t *testing.T, m packagePickerModel, msg tea.KeyMsg) (packagePickerModel, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	next, ok := updated.(packagePickerModel)
	if !ok {
		t.Fatalf("Update() returned %T, want packagePickerModel", updated)
	}
	return next, cmd
}

func TestPickerNavigation(t *testing.T) {
	m := testPicker(t)

	m, _ = applyKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 1 {
		t.Errorf("cursor = %d after down, want 1", m.cursor)
	}

	m, _ = applyKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	if m.cursor != 2 {
		t.Errorf("cursor = %d after j, want 2", m.cursor)
	}

	// The cursor stops at the last entry.
	m, _ = applyKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	if m.cursor != 2 {
		t.Errorf("cursor = %d after down at the end, want 2", m.cursor)
	}

	m, _ = applyKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("k")})
	if m.cursor != 1 {
		t.Errorf("cursor = %d after k, want 1", m.cursor)
	}

	m, _ = applyKey(t, m, tea.KeyMsg{Type: tea.KeyUp})
	m, _ = applyKey(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if m.cursor != 0 {
		t.Errorf("cursor = %d after up at the top, want 0", m.cursor)
	}
}

func TestPickerSelect(t *testing.T) {
	m := testPicker(t)

	m, _ = applyKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m, cmd := applyKey(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	if m.selected != "B" {
		t.Errorf("selected = %q, want %q", m.selected, "B")
	}
	if cmd == nil {
		t.Fatal("enter should quit the program")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("enter should produce a quit command")
	}
}

func TestPickerQuitWithoutSelection(t *testing.T) {
	m := testPicker(t)

	m, cmd := applyKey(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if m.selected != "" {
		t.Errorf("selected = %q after quitting, want empty", m.selected)
	}
	if cmd == nil {
		t.Fatal("q should quit the program")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should produce a quit command")
	}
}

func TestPickerScrollsWindow(t *testing.T) {
	ids := []string{"A", "B", "C", "D", "E", "F"}
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(id + ":\n")
	}
	repo, err := repofile.Parse(strings.NewReader(b.String()))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	m := newPackagePicker(repo)
	m.height = 3

	for range ids {
		m, _ = applyKey(t, m, tea.KeyMsg{Type: tea.KeyDown})
	}
	if m.cursor != len(ids)-1 {
		t.Fatalf("cursor = %d, want %d", m.cursor, len(ids)-1)
	}
	if m.offset != len(ids)-m.height {
		t.Errorf("offset = %d, want %d", m.offset, len(ids)-m.height)
	}

	view := m.View()
	if strings.Contains(view, "A ") {
		t.Error("View() should have scrolled the first entry out of the window")
	}
	if !strings.Contains(view, "F") {
		t.Error("View() should show the entry under the cursor")
	}
}

func TestPickerView(t *testing.T) {
	m := testPicker(t)
	view := m.View()

	for _, want := range []string{"Select Package", "A", "B", "C", "leaf", "2 deps", "[1/3]"} {
		if !strings.Contains(view, want) {
			t.Errorf("View() missing %q", want)
		}
	}
	if !strings.Contains(view, "▸") {
		t.Error("View() missing the cursor marker")
	}
}

func TestPickerWindowResize(t *testing.T) {
	m := testPicker(t)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 40})
	m = updated.(packagePickerModel)
	if m.height != 35 {
		t.Errorf("height = %d after resize, want 35", m.height)
	}

	updated, _ = m.Update(tea.WindowSizeMsg{Width: 80, Height: 6})
	m = updated.(packagePickerModel)
	if m.height != 5 {
		t.Errorf("height = %d after small resize, want the 5-row floor", m.height)
	}
}

func TestPackageNote(t *testing.T) {
	repo, err := repofile.Parse(strings.NewReader("A: B C\nB: C\nC:\n"))
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}

	tests := []struct {
		id   repofile.ID
		want string
	}{
		{"A", "2 deps"},
		{"B", "1 dep"},
		{"C", "leaf"},
	}
	for _, tt := range tests {
		if got := packageNote(repo, tt.id); got != tt.want {
			t.Errorf("packageNote(%s) = %q, want %q", tt.id, got, tt.want)
		}
	}
}
