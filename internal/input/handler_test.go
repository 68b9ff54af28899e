package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/app"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
)

func newTestEditor(t *testing.T) *app.Editor {
	t.Helper()
	return app.NewEditor(
		app.WithSize(120, 40),
		app.WithTapeDir(t.TempDir()),
		app.WithClipboard(func(string) error { return nil }),
	)
}

func key(s string) tea.KeyPressMsg {
	switch s {
	case "enter":
		return tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		return tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		return tea.KeyPressMsg{Code: tea.KeyTab}
	case "backspace":
		return tea.KeyPressMsg{Code: tea.KeyBackspace}
	case "down":
		return tea.KeyPressMsg{Code: tea.KeyDown}
	case "up":
		return tea.KeyPressMsg{Code: tea.KeyUp}
	case "space":
		return tea.KeyPressMsg{Code: tea.KeySpace}
	}
	r := []rune(s)[0]
	return tea.KeyPressMsg{Code: r, Text: s}
}

func press(m *app.Editor, keys ...string) tea.Cmd {
	var cmd tea.Cmd
	for _, k := range keys {
		_, cmd = HandleKeyPress(key(k), m)
	}
	return cmd
}

func kinds(m *app.Editor) []catalog.Kind {
	var out []catalog.Kind
	for _, c := range m.Canvas().Components() {
		out = append(out, c.Kind)
	}
	return out
}

func TestEditorKeys(t *testing.T) {
	tests := []struct {
		name      string
		keys      []string
		wantKinds []catalog.Kind
		sections  int
	}{
		{
			name:     "new section",
			keys:     []string{"S", "S"},
			sections: 2,
		},
		{
			name:      "add keys append to the active section",
			keys:      []string{"S", "h", "b", "c"},
			wantKinds: []catalog.Kind{catalog.Heading, catalog.Button, catalog.Card},
			sections:  1,
		},
		{
			name:      "delete removes the selection",
			keys:      []string{"S", "h", "b", "x"},
			wantKinds: []catalog.Kind{catalog.Heading},
			sections:  1,
		},
		{
			name:      "move up reorders",
			keys:      []string{"S", "h", "b", "K"},
			wantKinds: []catalog.Kind{catalog.Button, catalog.Heading},
			sections:  1,
		},
		{
			name:      "tab cycles then move down",
			keys:      []string{"S", "h", "b", "i", "tab", "J"},
			wantKinds: []catalog.Kind{catalog.Button, catalog.Heading, catalog.Input},
			sections:  1,
		},
		{
			name:     "delete section",
			keys:     []string{"S", "S", "X"},
			sections: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestEditor(t)
			press(m, tt.keys...)

			got := kinds(m)
			if len(got) != len(tt.wantKinds) {
				t.Fatalf("kinds = %v, want %v", got, tt.wantKinds)
			}
			for i := range got {
				if got[i] != tt.wantKinds[i] {
					t.Errorf("kinds = %v, want %v", got, tt.wantKinds)
					break
				}
			}
			if n := m.Canvas().SectionCount(); n != tt.sections {
				t.Errorf("SectionCount() = %d, want %d", n, tt.sections)
			}
		})
	}
}

func TestAddWithoutSectionIsUnplaced(t *testing.T) {
	m := newTestEditor(t)
	press(m, "h")
	comp, ok := m.Canvas().ActiveComponent()
	if !ok {
		t.Fatal("no active component")
	}
	if !m.Canvas().IsStale(comp) {
		t.Errorf("component %+v should be unplaced", comp)
	}
}

func TestQuit(t *testing.T) {
	t.Run("empty canvas quits at once", func(t *testing.T) {
		m := newTestEditor(t)
		if cmd := press(m, "q"); cmd == nil {
			t.Fatal("expected quit command")
		}
		if m.ShowQuitConfirm {
			t.Error("confirm dialog shown for an empty canvas")
		}
	})

	t.Run("confirm then cancel", func(t *testing.T) {
		m := newTestEditor(t)
		press(m, "S", "q")
		if !m.ShowQuitConfirm {
			t.Fatal("expected confirm dialog")
		}
		if cmd := press(m, "n"); cmd != nil {
			t.Error("n should not quit")
		}
		if m.ShowQuitConfirm {
			t.Error("dialog still open")
		}
	})

	t.Run("confirm then yes", func(t *testing.T) {
		m := newTestEditor(t)
		press(m, "S", "q")
		if cmd := press(m, "enter"); cmd == nil {
			t.Error("enter on Yes should quit")
		}
	})

	t.Run("tab moves to no", func(t *testing.T) {
		m := newTestEditor(t)
		press(m, "S", "q", "tab")
		if cmd := press(m, "enter"); cmd != nil {
			t.Error("enter on No should not quit")
		}
		if m.ShowQuitConfirm {
			t.Error("dialog still open")
		}
	})
}

func TestOverlaysTakeTheKeyboard(t *testing.T) {
	m := newTestEditor(t)
	press(m, "S", "?")
	if !m.ShowHelp {
		t.Fatal("help not shown")
	}
	press(m, "h")
	if m.Canvas().Len() != 0 {
		t.Error("add key reached the canvas under the help overlay")
	}
	press(m, "esc")
	if m.ShowHelp {
		t.Error("help still shown")
	}
}

func TestRenameSection(t *testing.T) {
	m := newTestEditor(t)
	press(m, "S", "r")
	if !m.RenamingSection {
		t.Fatal("rename not started")
	}
	// Clear the seeded name.
	for range len(m.RenameBuffer) {
		press(m, "backspace")
	}
	press(m, "P", "r", "i", "c", "i", "n", "g", "enter")

	s, ok := m.Canvas().ActiveSection()
	if !ok {
		t.Fatal("no active section")
	}
	if s.Name != "Pricing" {
		t.Errorf("Name = %q, want Pricing", s.Name)
	}
	if m.RenamingSection {
		t.Error("still renaming")
	}
}

func TestRenameCancel(t *testing.T) {
	m := newTestEditor(t)
	press(m, "S")
	before, _ := m.Canvas().ActiveSection()
	press(m, "r", "z", "esc")
	after, _ := m.Canvas().ActiveSection()
	if after.Name != before.Name {
		t.Errorf("Name = %q, want %q", after.Name, before.Name)
	}
}

func TestPropertiesEditing(t *testing.T) {
	m := newTestEditor(t)
	press(m, "S", "h", "e")
	if !m.Properties.Focused {
		t.Fatal("properties not focused")
	}

	// text field: edit and apply
	press(m, "enter")
	if !m.Properties.Editing {
		t.Fatal("not editing")
	}
	for range len(m.Properties.Buffer) {
		press(m, "backspace")
	}
	press(m, "H", "i", "enter")

	comp, _ := m.Canvas().ActiveComponent()
	if got := comp.Props.(catalog.HeadingProps).Text; got != "Hi" {
		t.Errorf("Text = %q, want Hi", got)
	}

	// level has options: enter cycles it
	press(m, "down")
	before := comp.Props.(catalog.HeadingProps).Level
	press(m, "enter")
	comp, _ = m.Canvas().ActiveComponent()
	if after := comp.Props.(catalog.HeadingProps).Level; after == before {
		t.Errorf("Level not cycled, still %d", after)
	}

	press(m, "esc")
	if m.Properties.Focused {
		t.Error("properties still focused")
	}
}

func TestFieldEditCancel(t *testing.T) {
	m := newTestEditor(t)
	press(m, "S", "h")
	before, _ := m.Canvas().ActiveComponent()
	press(m, "e", "enter", "x", "esc")
	comp, _ := m.Canvas().ActiveComponent()
	if got := comp.Props.(catalog.HeadingProps).Text; got != before.Props.(catalog.HeadingProps).Text {
		t.Errorf("Text = %q, edit should have been discarded", got)
	}
	if m.Properties.Editing {
		t.Error("still editing")
	}
}

func TestPasteWhileEditing(t *testing.T) {
	m := newTestEditor(t)
	press(m, "S", "r")
	for range len(m.RenameBuffer) {
		press(m, "backspace")
	}
	HandleInput(tea.PasteMsg{Content: "Call\nto   action"}, m)
	if m.RenameBuffer != "Call to action" {
		t.Errorf("RenameBuffer = %q", m.RenameBuffer)
	}
}

func TestLogViewerScroll(t *testing.T) {
	m := newTestEditor(t)
	for i := range 60 {
		m.LogInfo("entry %d", i)
	}
	_, maxScroll := app.LogScrollBounds(m.Height, len(m.LogMessages))

	HandleKeyPress(tea.KeyPressMsg{Code: 'l', Mod: tea.ModCtrl}, m)
	if !m.ShowLogs {
		t.Fatal("logs not shown")
	}
	if m.LogScrollOffset != maxScroll {
		t.Errorf("LogScrollOffset = %d, want newest (%d)", m.LogScrollOffset, maxScroll)
	}

	press(m, "g")
	if m.LogScrollOffset != 0 {
		t.Errorf("after g, LogScrollOffset = %d", m.LogScrollOffset)
	}
	press(m, "j", "j")
	if m.LogScrollOffset != 2 {
		t.Errorf("after jj, LogScrollOffset = %d", m.LogScrollOffset)
	}
	press(m, "G")
	if m.LogScrollOffset != maxScroll {
		t.Errorf("after G, LogScrollOffset = %d", m.LogScrollOffset)
	}
	press(m, "q")
	if m.ShowLogs {
		t.Error("logs still shown")
	}
}

func TestCodeViewer(t *testing.T) {
	m := newTestEditor(t)
	press(m, "S", "H", "c", "g")
	if !m.ShowCode {
		t.Fatal("code viewer not shown")
	}
	if m.GeneratedCode == "" {
		t.Fatal("no code generated")
	}
	press(m, "esc")
	if m.ShowCode {
		t.Error("code viewer still shown")
	}
}

func TestTogglePlacementKey(t *testing.T) {
	m := newTestEditor(t)
	start := m.Placement()
	press(m, "p")
	if m.Placement() == start {
		t.Errorf("Placement() still %q", start)
	}
	press(m, "p")
	if m.Placement() != start {
		t.Errorf("Placement() = %q, want %q", m.Placement(), start)
	}
}

func TestDispatcherKnowsEveryBoundAction(t *testing.T) {
	kb := config.DefaultConfig().Keybindings
	for _, keymap := range []map[string][]string{kb.Editor, kb.Properties, kb.System} {
		for action := range keymap {
			if !GetDispatcher().HasAction(action) {
				t.Errorf("action %q has no handler", action)
			}
		}
	}
}
