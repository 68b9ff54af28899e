package render

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

var badgeTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000"))

// State is the interaction state that changes how the layout is drawn.
type State struct {
	ActiveComponentID string
	ActiveSectionID   string
	DropSectionID     string
	DraggingID        string
	Viewport          uv.Rectangle // layers are clipped to this area
}

// Layers draws the layout as lipgloss layers: section frames below
// component frames, the dragged component above both.
func Layers(l *Layout, st State) []*lipgloss.Layer {
	layers := make([]*lipgloss.Layer, 0, len(l.Sections)+len(l.Components))

	for _, s := range l.Sections {
		c := lipgloss.Color(config.ColorSection)
		switch {
		case s.Unplaced:
			c = lipgloss.Color(config.ColorWarning)
		case st.DropSectionID != "" && s.Section.ID == st.DropSectionID:
			c = lipgloss.Color(config.ColorDropTarget)
		case s.Section.ID == st.ActiveSectionID:
			c = lipgloss.Color(config.ColorActiveSection)
		}
		badge := ""
		if !s.Unplaced {
			badge = s.Section.BackgroundColor
		}
		content := Frame(s.Section.Name, badge, nil, s.Rect.Dx(), s.Rect.Dy(), config.GetBorderForStyle(), c)
		if layer := clippedLayer(content, s.Rect, st.Viewport, config.ZIndexSection, "section:"+s.Section.ID); layer != nil {
			layers = append(layers, layer)
		}
	}

	for _, b := range l.Components {
		border := config.GetBorderForStyle()
		c := lipgloss.Color(config.ColorMuted)
		z := config.ZIndexComponent
		if b.Component.ID == st.ActiveComponentID {
			border = config.GetSelectedBorder()
			c = lipgloss.Color(config.ColorAccent)
		}
		if b.Component.ID == st.DraggingID {
			z = config.ZIndexDragging
		}
		block := Describe(b.Component, b.Rect.Dx()-2)
		content := Frame(block.Title, block.Badge, block.Lines, b.Rect.Dx(), b.Rect.Dy(), border, c)
		if layer := clippedLayer(content, b.Rect, st.Viewport, z, b.Component.ID); layer != nil {
			layers = append(layers, layer)
		}
	}
	return layers
}

// Render draws a static snapshot of c at the given width using the runtime
// configuration. The result is as tall as the document.
func Render(c *canvas.Canvas, width int) string {
	l := Compute(c, DefaultOptions(width))
	height := max(1, l.Height())
	lc := lipgloss.NewCanvas(max(4, width), height)
	st := State{
		ActiveComponentID: c.ActiveComponentID(),
		ActiveSectionID:   c.ActiveSectionID(),
		Viewport:          uv.Rect(0, 0, max(4, width), height),
	}
	for _, layer := range Layers(l, st) {
		lc.Compose(layer)
	}
	return lipgloss.Sprint(lc.Render())
}

func clippedLayer(content string, r, viewport uv.Rectangle, z int, id string) *lipgloss.Layer {
	if viewport.Empty() {
		return lipgloss.NewLayer(content).X(r.Min.X).Y(r.Min.Y).Z(z).ID(id)
	}
	clipped, x, y := Clip(content, r.Min, viewport)
	if clipped == "" {
		return nil
	}
	return lipgloss.NewLayer(clipped).X(x).Y(y).Z(z).ID(id)
}

// Frame draws a w by h box with title centered on the top border, badge
// centered on the bottom border and lines inside.
func Frame(title, badge string, lines []string, w, h int, border lipgloss.Border, c color.Color) string {
	w = max(w, 2)
	h = max(h, 2)
	inner := w - 2
	edge := lipgloss.NewStyle().Foreground(c)

	rows := make([]string, 0, h)
	rows = append(rows, badgeLine(title, inner, border.TopLeft, border.Top, border.TopRight, edge, c))
	for i := range h - 2 {
		text := ""
		if i < len(lines) {
			text = ansi.Truncate(lines[i], inner, "")
		}
		pad := max(0, inner-ansi.StringWidth(text))
		rows = append(rows, edge.Render(border.Left)+text+strings.Repeat(" ", pad)+edge.Render(border.Right))
	}
	rows = append(rows, badgeLine(badge, inner, border.BottomLeft, border.Bottom, border.BottomRight, edge, c))
	return strings.Join(rows, "\n")
}

func badgeLine(name string, width int, left, fill, right string, edge lipgloss.Style, c color.Color) string {
	if name == "" {
		return edge.Render(left + strings.Repeat(fill, width) + right)
	}
	badge := badgeTextStyle.Background(c).Render(" " + name + " ")
	padding := width - lipgloss.Width(badge)
	if padding < 0 {
		name = ansi.Truncate(name, max(0, width-3), "…")
		if name == "" || width < 3 {
			return edge.Render(left + strings.Repeat(fill, width) + right)
		}
		badge = badgeTextStyle.Background(c).Render(" " + name + " ")
		padding = max(0, width-lipgloss.Width(badge))
	}
	lp := padding / 2
	return edge.Render(left+strings.Repeat(fill, lp)) + badge + edge.Render(strings.Repeat(fill, padding-lp)+right)
}

// Clip cuts content placed at origin down to the part visible inside
// viewport. It returns the visible content and where to draw it; the
// content is empty when nothing is visible.
func Clip(content string, origin uv.Position, viewport uv.Rectangle) (string, int, int) {
	lines := strings.Split(content, "\n")
	width := 0
	for _, line := range lines {
		width = max(width, ansi.StringWidth(line))
	}
	bounds := uv.Rect(origin.X, origin.Y, width, len(lines))
	visible := bounds.Intersect(viewport)
	if visible.Empty() {
		return "", max(origin.X, viewport.Min.X), max(origin.Y, viewport.Min.Y)
	}

	top := visible.Min.Y - origin.Y
	left := visible.Min.X - origin.X
	lines = lines[top : top+visible.Dy()]
	if left > 0 || visible.Dx() < width {
		for i, line := range lines {
			lines[i] = ansi.Cut(line, left, left+visible.Dx())
		}
	}
	return strings.Join(lines, "\n"), visible.Min.X, visible.Min.Y
}

// StatusLine summarizes the canvas for status bars and logs.
func StatusLine(c *canvas.Canvas) string {
	line := fmt.Sprintf("%d sections · %d components", c.SectionCount(), c.Len())
	if n := len(c.Unplaced()); n > 0 {
		line += fmt.Sprintf(" · %d unplaced", n)
	}
	return line
}
