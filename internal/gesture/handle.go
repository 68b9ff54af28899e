// Package gesture computes live component geometry during pointer driven
// move and resize gestures.
package gesture

import (
	"fmt"
	"strings"
)

// Handle identifies which edge or corner a resize gesture drags.
type Handle int

const (
	// North drags the top edge.
	North Handle = iota
	// South drags the bottom edge.
	South
	// East drags the right edge.
	East
	// West drags the left edge.
	West
	// NorthEast drags the top-right corner.
	NorthEast
	// NorthWest drags the top-left corner.
	NorthWest
	// SouthEast drags the bottom-right corner.
	SouthEast
	// SouthWest drags the bottom-left corner.
	SouthWest
)

var handleNames = [...]string{"n", "s", "e", "w", "ne", "nw", "se", "sw"}

// Handles returns all eight handles.
func Handles() []Handle {
	return []Handle{North, South, East, West, NorthEast, NorthWest, SouthEast, SouthWest}
}

func (h Handle) String() string {
	if h < 0 || int(h) >= len(handleNames) {
		return fmt.Sprintf("Handle(%d)", int(h))
	}
	return handleNames[h]
}

// ParseHandle accepts the compass names n, s, e, w, ne, nw, se and sw.
func ParseHandle(s string) (Handle, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range handleNames {
		if name == s {
			return Handle(i), nil
		}
	}
	return 0, fmt.Errorf("unknown resize handle %q", s)
}

// HasEast reports whether the handle moves the right edge.
func (h Handle) HasEast() bool {
	return h == East || h == NorthEast || h == SouthEast
}

// HasWest reports whether the handle moves the left edge.
func (h Handle) HasWest() bool {
	return h == West || h == NorthWest || h == SouthWest
}

// HasNorth reports whether the handle moves the top edge.
func (h Handle) HasNorth() bool {
	return h == North || h == NorthEast || h == NorthWest
}

// HasSouth reports whether the handle moves the bottom edge.
func (h Handle) HasSouth() bool {
	return h == South || h == SouthEast || h == SouthWest
}

// Horizontal reports whether the handle changes the width.
func (h Handle) Horizontal() bool {
	return h.HasEast() || h.HasWest()
}

// Vertical reports whether the handle changes the height.
func (h Handle) Vertical() bool {
	return h.HasNorth() || h.HasSouth()
}

// Corner returns the corner handle for a point in the given quadrant.
func Corner(top, left bool) Handle {
	switch {
	case top && left:
		return NorthWest
	case top:
		return NorthEast
	case left:
		return SouthWest
	default:
		return SouthEast
	}
}
