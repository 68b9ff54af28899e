package gesture

import (
	"errors"
	"fmt"

	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
)

// ErrGestureActive is returned when a gesture starts while another one is
// still running.
var ErrGestureActive = errors.New("a gesture is already active")

// Target is the part of the canvas a gesture reads and writes.
type Target interface {
	Component(id string) (canvas.Component, bool)
	UpdateComponent(id string, patch canvas.ComponentPatch) bool
}

// Mode is the state of a Controller.
type Mode int

const (
	// Idle means no gesture is running.
	Idle Mode = iota
	// Moving means a move gesture is running.
	Moving
	// Resizing means a resize gesture is running.
	Resizing
)

func (m Mode) String() string {
	switch m {
	case Moving:
		return "moving"
	case Resizing:
		return "resizing"
	default:
		return "idle"
	}
}

// Controller runs at most one move or resize gesture at a time. Every
// sample is computed from the anchor captured at start, and applied to the
// target immediately. There is no commit and no rollback: End just stops.
type Controller struct {
	target Target
	limits Limits

	mode        Mode
	componentID string
	handle      Handle

	startX, startY int
	initialPos     canvas.Position
	initialSize    canvas.Size

	lastPos  canvas.Position
	lastSize canvas.Size
}

// NewController returns an idle controller writing to target.
func NewController(target Target, limits Limits) *Controller {
	return &Controller{target: target, limits: limits}
}

// Limits returns the limits the controller clamps against.
func (c *Controller) Limits() Limits {
	return c.limits
}

// Mode returns the current gesture state.
func (c *Controller) Mode() Mode {
	return c.mode
}

// Active reports whether a gesture is running.
func (c *Controller) Active() bool {
	return c.mode != Idle
}

// ComponentID returns the component of the running gesture, or "".
func (c *Controller) ComponentID() string {
	return c.componentID
}

// Handle returns the handle of the running resize gesture.
func (c *Controller) Handle() Handle {
	return c.handle
}

// Position returns the last position applied by a move gesture.
func (c *Controller) Position() canvas.Position {
	return c.lastPos
}

// Size returns the last size applied by a resize gesture.
func (c *Controller) Size() canvas.Size {
	return c.lastSize
}

func (c *Controller) begin(id string) (canvas.Component, error) {
	if c.mode != Idle {
		return canvas.Component{}, fmt.Errorf("%w on %s", ErrGestureActive, c.componentID)
	}
	comp, ok := c.target.Component(id)
	if !ok {
		return canvas.Component{}, fmt.Errorf("component %q: %w", id, canvas.ErrNotFound)
	}
	return comp, nil
}

// StartMove anchors a move gesture at pointer (x, y). A component without
// an explicit position starts at the origin.
func (c *Controller) StartMove(id string, x, y int) error {
	comp, err := c.begin(id)
	if err != nil {
		return err
	}
	c.mode = Moving
	c.componentID = id
	c.startX, c.startY = x, y
	c.initialPos = canvas.Position{}
	if comp.Position != nil {
		c.initialPos = *comp.Position
	}
	c.lastPos = c.initialPos
	return nil
}

// StartResize anchors a resize gesture on handle h at pointer (x, y). A
// component without an explicit size starts at the default size.
func (c *Controller) StartResize(id string, h Handle, x, y int) error {
	comp, err := c.begin(id)
	if err != nil {
		return err
	}
	c.mode = Resizing
	c.componentID = id
	c.handle = h
	c.startX, c.startY = x, y
	c.initialSize = c.limits.DefaultSize
	if comp.Size != nil {
		c.initialSize = *comp.Size
	}
	c.lastSize = c.initialSize
	return nil
}

// Sample applies the pointer at (x, y) to the running gesture. It returns
// false when idle, or when the component vanished, which ends the gesture.
func (c *Controller) Sample(x, y int) bool {
	if c.mode == Idle {
		return false
	}
	dx, dy := x-c.startX, y-c.startY

	var patch canvas.ComponentPatch
	switch c.mode {
	case Moving:
		pos := MovePosition(c.initialPos, dx, dy)
		patch.Position = &pos
		c.lastPos = pos
	case Resizing:
		size := ResizeSize(c.initialSize, c.handle, dx, dy, c.limits)
		patch.Size = &size
		c.lastSize = size
	}

	if !c.target.UpdateComponent(c.componentID, patch) {
		c.End()
		return false
	}
	return true
}

// End stops the running gesture. The last applied sample stays in place.
func (c *Controller) End() {
	c.mode = Idle
	c.componentID = ""
}
