package render

import (
	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/gesture"
	uv "github.com/charmbracelet/ultraviolet"
)

// minBoxRows is the smallest component frame that still shows one body line.
const minBoxRows = 3

// Options controls how a canvas is laid out.
type Options struct {
	Origin      uv.Position // top-left cell of the canvas area
	Width       int         // columns available to sections
	Placement   string      // config.PlacementFlow or config.PlacementFreeform
	DefaultSize canvas.Size // size of components without an explicit one, in px
	ScrollY     int         // rows scrolled off the top
}

// DefaultOptions lays out at the origin using the runtime configuration.
func DefaultOptions(width int) Options {
	return Options{
		Width:       width,
		Placement:   config.Placement,
		DefaultSize: canvas.Size{Width: config.ComponentWidthPx, Height: config.ComponentHeightPx},
	}
}

// SectionBox is the frame of one section. The top border row is its header.
type SectionBox struct {
	Section  canvas.Section
	Rect     uv.Rectangle
	Body     uv.Rectangle
	Unplaced bool
}

// Header returns the header row of the section.
func (s SectionBox) Header() uv.Rectangle {
	return uv.Rect(s.Rect.Min.X, s.Rect.Min.Y, s.Rect.Dx(), config.SectionHeaderHeight)
}

// ComponentBox is the frame of one component.
type ComponentBox struct {
	Component canvas.Component
	Rect      uv.Rectangle
	Index     int // position in the global order
	SectionID string
}

// Layout is the cell geometry of a canvas snapshot.
type Layout struct {
	Sections   []SectionBox
	Components []ComponentBox
	height     int
}

// Compute lays the canvas out. Sections stack vertically in creation order
// followed by an unplaced area when any component has no live section.
func Compute(c *canvas.Canvas, opts Options) *Layout {
	if opts.Width < 4 {
		opts.Width = 4
	}
	if opts.DefaultSize.Width <= 0 || opts.DefaultSize.Height <= 0 {
		opts.DefaultSize = canvas.Size{Width: config.ComponentWidthPx, Height: config.ComponentHeightPx}
	}

	l := &Layout{}
	y := opts.Origin.Y - opts.ScrollY
	for _, s := range c.Sections() {
		y = l.placeSection(c, s, c.ComponentsInSection(s.ID), false, y, opts)
	}
	if unplaced := c.Unplaced(); len(unplaced) > 0 {
		y = l.placeSection(c, canvas.Section{Name: "Unplaced"}, unplaced, true, y, opts)
	}
	l.height = y + opts.ScrollY - opts.Origin.Y
	return l
}

func (l *Layout) placeSection(c *canvas.Canvas, s canvas.Section, members []canvas.Component, unplaced bool, y int, opts Options) int {
	x := opts.Origin.X
	inner := uv.Rect(x+1, y+config.SectionHeaderHeight, opts.Width-2, 0)

	bottom := inner.Min.Y
	cursor := inner.Min.Y
	for _, comp := range members {
		w, h := boxSize(comp, inner.Dx(), opts.DefaultSize)
		bx, by := inner.Min.X, cursor
		if opts.Placement == config.PlacementFreeform && comp.Position != nil && !unplaced {
			bx = inner.Min.X + min(offsetCols(comp.Position.X), max(0, inner.Dx()-w))
			by = inner.Min.Y + offsetRows(comp.Position.Y)
		} else {
			cursor += h
		}
		rect := uv.Rect(bx, by, w, h)
		l.Components = append(l.Components, ComponentBox{
			Component: comp,
			Rect:      rect,
			Index:     c.IndexOf(comp.ID),
			SectionID: s.ID,
		})
		bottom = max(bottom, rect.Max.Y)
	}

	bodyRows := max(config.MinSectionRows, bottom-inner.Min.Y)
	body := uv.Rect(inner.Min.X, inner.Min.Y, inner.Dx(), bodyRows)
	rect := uv.Rect(x, y, opts.Width, config.SectionHeaderHeight+bodyRows+1)
	l.Sections = append(l.Sections, SectionBox{Section: s, Rect: rect, Body: body, Unplaced: unplaced})
	return rect.Max.Y + config.SectionGap
}

func boxSize(comp canvas.Component, maxCols int, def canvas.Size) (int, int) {
	size := def
	if comp.Size != nil {
		size = *comp.Size
	}
	w := min(max(config.PxToCols(size.Width), 4), max(maxCols, 1))
	h := max(config.PxToRows(size.Height), minBoxRows)
	return w, h
}

func offsetCols(px int) int {
	return max(0, px/max(1, config.CellWidthPx))
}

func offsetRows(px int) int {
	return max(0, px/max(1, config.CellHeightPx))
}

// Height returns the number of rows the layout occupies, ignoring scroll.
func (l *Layout) Height() int {
	return l.height
}

// Section returns the frame of section id.
func (l *Layout) Section(id string) (SectionBox, bool) {
	for _, s := range l.Sections {
		if !s.Unplaced && s.Section.ID == id {
			return s, true
		}
	}
	return SectionBox{}, false
}

// Component returns the frame of component id.
func (l *Layout) Component(id string) (ComponentBox, bool) {
	for _, b := range l.Components {
		if b.Component.ID == id {
			return b, true
		}
	}
	return ComponentBox{}, false
}

// ComponentAt returns the topmost component under p. Later components are
// drawn above earlier ones.
func (l *Layout) ComponentAt(p uv.Position) (ComponentBox, bool) {
	for i := len(l.Components) - 1; i >= 0; i-- {
		if p.In(l.Components[i].Rect) {
			return l.Components[i], true
		}
	}
	return ComponentBox{}, false
}

// SectionAt returns the section frame under p, including the unplaced area.
func (l *Layout) SectionAt(p uv.Position) (SectionBox, bool) {
	for _, s := range l.Sections {
		if p.In(s.Rect) {
			return s, true
		}
	}
	return SectionBox{}, false
}

// HeaderAt returns the section whose header row is under p.
func (l *Layout) HeaderAt(p uv.Position) (SectionBox, bool) {
	s, ok := l.SectionAt(p)
	if !ok || !p.In(s.Header()) {
		return SectionBox{}, false
	}
	return s, true
}

// HandleAt returns the resize handle on the border of r under p. Corners
// win over edges; the interior has no handle.
func HandleAt(r uv.Rectangle, p uv.Position) (gesture.Handle, bool) {
	if !p.In(r) {
		return 0, false
	}
	top := p.Y == r.Min.Y
	bottom := p.Y == r.Max.Y-1
	left := p.X == r.Min.X
	right := p.X == r.Max.X-1

	switch {
	case (top || bottom) && (left || right):
		return gesture.Corner(top, left), true
	case top:
		return gesture.North, true
	case bottom:
		return gesture.South, true
	case left:
		return gesture.West, true
	case right:
		return gesture.East, true
	}
	return 0, false
}

// NearestCorner returns the corner handle of r closest to p.
func NearestCorner(r uv.Rectangle, p uv.Position) gesture.Handle {
	top := 2*(p.Y-r.Min.Y) < r.Dy()
	left := 2*(p.X-r.Min.X) < r.Dx()
	return gesture.Corner(top, left)
}
