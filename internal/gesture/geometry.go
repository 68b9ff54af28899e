package gesture

import (
	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
)

// Limits bounds resize results and supplies the geometry assumed for
// components without an explicit size.
type Limits struct {
	MinWidth    int
	MinHeight   int
	DefaultSize canvas.Size
}

// DefaultLimits returns a 100x50 floor and a 300x100 default size.
func DefaultLimits() Limits {
	return Limits{
		MinWidth:    100,
		MinHeight:   50,
		DefaultSize: canvas.Size{Width: 300, Height: 100},
	}
}

// ConfiguredLimits returns the limits set by the canvas section of the user
// configuration.
func ConfiguredLimits() Limits {
	return Limits{
		MinWidth:    config.MinWidthPx,
		MinHeight:   config.MinHeightPx,
		DefaultSize: canvas.Size{Width: config.ComponentWidthPx, Height: config.ComponentHeightPx},
	}
}

// MovePosition returns the position after a cumulative pointer delta from
// the gesture anchor.
func MovePosition(initial canvas.Position, dx, dy int) canvas.Position {
	return canvas.Position{X: initial.X + dx, Y: initial.Y + dy}
}

// ResizeSize returns the size after dragging handle h by the cumulative
// pointer delta (dx, dy). Axes the handle does not touch keep their initial
// value, and both axes are clamped to the limits.
func ResizeSize(initial canvas.Size, h Handle, dx, dy int, l Limits) canvas.Size {
	size := initial
	switch {
	case h.HasEast():
		size.Width = initial.Width + dx
	case h.HasWest():
		size.Width = initial.Width - dx
	}
	switch {
	case h.HasSouth():
		size.Height = initial.Height + dy
	case h.HasNorth():
		size.Height = initial.Height - dy
	}
	size.Width = max(l.MinWidth, size.Width)
	size.Height = max(l.MinHeight, size.Height)
	return size
}
