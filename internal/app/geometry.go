package app

import (
	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/render"
	uv "github.com/charmbracelet/ultraviolet"
)

// GetRenderWidth returns the screen width, never less than one column.
func (m *Editor) GetRenderWidth() int {
	return max(m.Width, 1)
}

// GetRenderHeight returns the screen height, never less than one row.
func (m *Editor) GetRenderHeight() int {
	return max(m.Height, 1)
}

// GetUsableHeight returns the rows above the status bar.
func (m *Editor) GetUsableHeight() int {
	return max(m.GetRenderHeight()-config.StatusBarHeight, 1)
}

// PaletteRect is the component palette column; empty when hidden.
func (m *Editor) PaletteRect() uv.Rectangle {
	if !config.ShowPalette || m.GetRenderWidth() < config.PaletteWidth*2 {
		return uv.Rectangle{}
	}
	return uv.Rect(0, 0, config.PaletteWidth, m.GetUsableHeight())
}

// PropertiesRect is the properties panel column; empty when hidden.
func (m *Editor) PropertiesRect() uv.Rectangle {
	w := m.GetRenderWidth()
	if !config.ShowProperties || w < config.PaletteWidth+config.PropertiesWidth*2 {
		return uv.Rectangle{}
	}
	return uv.Rect(w-config.PropertiesWidth, 0, config.PropertiesWidth, m.GetUsableHeight())
}

// CanvasRect is the area between the palette and the properties panel.
func (m *Editor) CanvasRect() uv.Rectangle {
	left := m.PaletteRect().Max.X
	right := m.GetRenderWidth()
	if p := m.PropertiesRect(); !p.Empty() {
		right = p.Min.X
	}
	return uv.Rect(left, 0, max(right-left, 1), m.GetUsableHeight())
}

// StatusRect is the status bar row.
func (m *Editor) StatusRect() uv.Rectangle {
	return uv.Rect(0, m.GetUsableHeight(), m.GetRenderWidth(), config.StatusBarHeight)
}

// Layout computes where every section and component is drawn on screen.
func (m *Editor) Layout() *render.Layout {
	r := m.CanvasRect()
	opts := render.DefaultOptions(r.Dx())
	opts.Origin = r.Min
	opts.Placement = m.Placement()
	opts.ScrollY = m.ScrollY
	return render.Compute(m.Canvas(), opts)
}

// ScrollBy scrolls the canvas by rows, clamped to the document.
func (m *Editor) ScrollBy(rows int) {
	maxScroll := max(m.Layout().Height()-m.CanvasRect().Dy(), 0)
	m.ScrollY = max(0, min(m.ScrollY+rows, maxScroll))
}

// Freeform reports whether dragging a component moves it.
func (m *Editor) Freeform() bool {
	return m.Placement() == config.PlacementFreeform
}

// PaletteItemAt returns the catalog kind drawn at p.
func (m *Editor) PaletteItemAt(p uv.Position) (catalog.Kind, bool) {
	r := m.PaletteRect()
	if !p.In(r) || p.X == r.Min.X || p.X == r.Max.X-1 {
		return "", false
	}
	entries := catalog.Default().Entries()
	row := p.Y - r.Min.Y - 1
	if row < 0 || row >= len(entries) {
		return "", false
	}
	return entries[row].Kind, true
}

// PointerPx converts a screen cell to canvas px.
func PointerPx(p uv.Position) (int, int) {
	return config.ColsToPx(p.X), config.RowsToPx(p.Y)
}

// ComponentRect returns the screen rectangle of component id.
func (m *Editor) ComponentRect(id string) (uv.Rectangle, bool) {
	box, ok := m.Layout().Component(id)
	if !ok {
		return uv.Rectangle{}, false
	}
	return box.Rect, true
}

// selectedComponent returns the active component, if any.
func (m *Editor) selectedComponent() (canvas.Component, bool) {
	return m.Canvas().ActiveComponent()
}
