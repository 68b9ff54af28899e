package input

import (
	"slices"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/app"
	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	uv "github.com/charmbracelet/ultraviolet"
)

func click(m *app.Editor, p uv.Position, button tea.MouseButton) {
	HandleInput(tea.MouseClickMsg{X: p.X, Y: p.Y, Button: button}, m)
}

func motion(m *app.Editor, p uv.Position) {
	HandleInput(tea.MouseMotionMsg{X: p.X, Y: p.Y, Button: tea.MouseLeft}, m)
}

func release(m *app.Editor, p uv.Position) {
	HandleInput(tea.MouseReleaseMsg{X: p.X, Y: p.Y, Button: tea.MouseLeft}, m)
}

func paletteRow(t *testing.T, m *app.Editor, kind catalog.Kind) uv.Position {
	t.Helper()
	i := slices.IndexFunc(catalog.Default().Entries(), func(e catalog.Entry) bool { return e.Kind == kind })
	if i < 0 {
		t.Fatalf("%s not in palette", kind)
	}
	r := m.PaletteRect()
	return uv.Pos(r.Min.X+2, r.Min.Y+1+i)
}

func center(r uv.Rectangle) uv.Position {
	return uv.Pos((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
}

func componentRect(t *testing.T, m *app.Editor, id string) uv.Rectangle {
	t.Helper()
	r, ok := m.ComponentRect(id)
	if !ok {
		t.Fatalf("component %s not laid out", id)
	}
	return r
}

func TestPaletteItemHitTest(t *testing.T) {
	m := newTestEditor(t)
	for _, e := range catalog.Default().Entries() {
		got, ok := m.PaletteItemAt(paletteRow(t, m, e.Kind))
		if !ok || got != e.Kind {
			t.Errorf("PaletteItemAt(row of %s) = %s, %v", e.Kind, got, ok)
		}
	}
	if _, ok := m.PaletteItemAt(uv.Pos(2, 0)); ok {
		t.Error("title row should not hit an item")
	}
}

func TestPaletteDropAddsComponent(t *testing.T) {
	m := newTestEditor(t)
	press(m, "S")
	s, _ := m.Canvas().ActiveSection()
	box, ok := m.Layout().Section(s.ID)
	if !ok {
		t.Fatal("section not laid out")
	}
	target := center(box.Rect)

	click(m, paletteRow(t, m, catalog.Button), tea.MouseLeft)
	if m.DragSession == nil || !m.DragSession.IsNew() {
		t.Fatal("palette drag not started")
	}
	motion(m, target)
	if m.DragSession.HoverSection() != s.ID {
		t.Errorf("HoverSection() = %q, want %q", m.DragSession.HoverSection(), s.ID)
	}
	release(m, target)

	if m.DragSession != nil {
		t.Error("drag session not cleared")
	}
	comps := m.Canvas().Components()
	if len(comps) != 1 || comps[0].Kind != catalog.Button || comps[0].SectionID != s.ID {
		t.Fatalf("components = %+v", comps)
	}
}

func TestPaletteDropOutsideDoesNothing(t *testing.T) {
	m := newTestEditor(t)
	press(m, "S")
	click(m, paletteRow(t, m, catalog.Card), tea.MouseLeft)
	outside := uv.Pos(m.PropertiesRect().Min.X+2, 5)
	motion(m, outside)
	release(m, outside)
	if m.Canvas().Len() != 0 {
		t.Errorf("Len() = %d, want 0", m.Canvas().Len())
	}
}

func TestPaletteDragWithoutSectionsWarns(t *testing.T) {
	m := newTestEditor(t)
	click(m, paletteRow(t, m, catalog.Hero), tea.MouseLeft)
	if m.DragSession != nil {
		t.Fatal("drag started without sections")
	}
	if n := len(m.Notifications); n == 0 || m.Notifications[n-1].Type != "warning" {
		t.Errorf("expected a warning, got %+v", m.Notifications)
	}
}

func TestFlowDragReorders(t *testing.T) {
	m := newTestEditor(t)
	press(m, "S", "h", "b")
	comps := m.Canvas().Components()
	heading, button := comps[0], comps[1]

	click(m, center(componentRect(t, m, button.ID)), tea.MouseLeft)
	if m.DragSession == nil || m.DragSession.IsNew() {
		t.Fatal("reorder drag not started")
	}
	if m.Canvas().ActiveComponentID() != button.ID {
		t.Error("pressed component not selected")
	}

	target := center(componentRect(t, m, heading.ID))
	motion(m, target)
	release(m, target)

	if got := kinds(m); !slices.Equal(got, []catalog.Kind{catalog.Button, catalog.Heading}) {
		t.Errorf("kinds = %v, want [Button Heading]", got)
	}
}

func TestFreeformMoveAndResize(t *testing.T) {
	m := newTestEditor(t)
	if err := m.SetPlacement(config.PlacementFreeform); err != nil {
		t.Fatal(err)
	}
	press(m, "S", "c")
	comp, _ := m.Canvas().ActiveComponent()

	t.Run("press inside moves", func(t *testing.T) {
		start := center(componentRect(t, m, comp.ID))
		click(m, start, tea.MouseLeft)
		if !m.Gestures.Active() {
			t.Fatal("move gesture not started")
		}
		end := uv.Pos(start.X+3, start.Y+1)
		motion(m, end)
		release(m, end)

		got, _ := m.Canvas().Component(comp.ID)
		want := canvas.Position{X: config.ColsToPx(3), Y: config.RowsToPx(1)}
		if got.Position == nil || *got.Position != want {
			t.Errorf("Position = %v, want %+v", got.Position, want)
		}
	})

	t.Run("border of selection resizes", func(t *testing.T) {
		r := componentRect(t, m, comp.ID)
		corner := uv.Pos(r.Max.X-1, r.Max.Y-1)
		click(m, corner, tea.MouseLeft)
		if !m.Gestures.Active() {
			t.Fatal("resize gesture not started")
		}
		end := uv.Pos(corner.X+5, corner.Y+2)
		motion(m, end)
		release(m, end)

		got, _ := m.Canvas().Component(comp.ID)
		want := canvas.Size{
			Width:  config.DefaultComponentWidth + config.ColsToPx(5),
			Height: config.DefaultComponentHeight + config.RowsToPx(2),
		}
		if got.Size == nil || *got.Size != want {
			t.Errorf("Size = %v, want %+v", got.Size, want)
		}
		if m.Gestures.Active() {
			t.Error("gesture still active after release")
		}
	})
}

func TestClickCanvasSelectsSection(t *testing.T) {
	m := newTestEditor(t)
	press(m, "S", "S", "h")
	first := m.Canvas().Sections()[0]
	box, _ := m.Layout().Section(first.ID)

	click(m, uv.Pos(box.Rect.Min.X+1, box.Rect.Min.Y), tea.MouseLeft)
	if m.Canvas().ActiveSectionID() != first.ID {
		t.Errorf("ActiveSectionID() = %q, want %q", m.Canvas().ActiveSectionID(), first.ID)
	}
	if m.Canvas().ActiveComponentID() != "" {
		t.Error("component selection not cleared")
	}
}

func TestClicksIgnoredUnderOverlay(t *testing.T) {
	m := newTestEditor(t)
	press(m, "S", "?")
	click(m, paletteRow(t, m, catalog.Button), tea.MouseLeft)
	if m.DragSession != nil {
		t.Error("drag started under the help overlay")
	}
}

func TestPropertiesRowClickFocusesField(t *testing.T) {
	m := newTestEditor(t)
	press(m, "S", "b")
	r := m.PropertiesRect()
	click(m, uv.Pos(r.Min.X+2, r.Min.Y+2), tea.MouseLeft)
	if !m.Properties.Focused || m.Properties.Field != 1 {
		t.Errorf("Properties = %+v, want focus on field 1", m.Properties)
	}
}

func TestWheelScrolls(t *testing.T) {
	m := newTestEditor(t)
	for range 8 {
		press(m, "S")
	}
	p := center(m.CanvasRect())
	HandleInput(tea.MouseWheelMsg{X: p.X, Y: p.Y, Button: tea.MouseWheelDown}, m)
	if m.ScrollY != wheelStep {
		t.Errorf("ScrollY = %d, want %d", m.ScrollY, wheelStep)
	}
	HandleInput(tea.MouseWheelMsg{X: p.X, Y: p.Y, Button: tea.MouseWheelUp}, m)
	HandleInput(tea.MouseWheelMsg{X: p.X, Y: p.Y, Button: tea.MouseWheelUp}, m)
	if m.ScrollY != 0 {
		t.Errorf("ScrollY = %d, want 0", m.ScrollY)
	}
}
