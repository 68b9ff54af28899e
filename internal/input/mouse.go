package input

import (
	"errors"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/app"
	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/render"
	uv "github.com/charmbracelet/ultraviolet"
)

// wheelStep is how many rows one wheel notch scrolls.
const wheelStep = 3

// handleMouseClick handles mouse click events
func handleMouseClick(msg tea.MouseClickMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	mouse := msg.Mouse()
	p := uv.Pos(mouse.X, mouse.Y)

	if m.HasOverlay() || m.RenamingSection {
		return m, nil
	}

	// A press while something is still held means the release was lost.
	if m.Interacting() {
		m.CancelInteraction()
	}

	if kind, ok := m.PaletteItemAt(p); ok {
		if mouse.Button != tea.MouseLeft {
			return m, nil
		}
		if err := m.BeginPaletteDrag(kind, p); err != nil {
			if errors.Is(err, canvas.ErrNoSections) {
				m.ShowNotification("Add a section before dropping components", "warning", config.NotificationDuration)
				return m, nil
			}
			m.Notify(err, "")
		}
		return m, nil
	}

	if i, ok := m.PropertyFieldAt(p); ok {
		m.FocusField(i)
		return m, nil
	}

	if !p.In(m.CanvasRect()) {
		return m, nil
	}
	m.CloseProperties()

	l := m.Layout()

	// Border of the selected component: resize from the handle under the pointer.
	if mouse.Button == tea.MouseLeft {
		if sel, ok := l.Component(m.Canvas().ActiveComponentID()); ok {
			if h, ok := render.HandleAt(sel.Rect, p); ok {
				if err := m.BeginResize(sel.Component.ID, h, p); err != nil {
					m.Notify(err, "")
				}
				return m, nil
			}
		}
	}

	box, hit := l.ComponentAt(p)
	switch {
	case hit && mouse.Button == tea.MouseRight:
		if err := m.BeginResize(box.Component.ID, render.NearestCorner(box.Rect, p), p); err != nil {
			m.Notify(err, "")
		}
	case hit && mouse.Button == tea.MouseLeft:
		if err := m.PressComponent(box.Component.ID, p); err != nil {
			m.Notify(err, "")
		}
	case !hit && mouse.Button == tea.MouseLeft:
		m.ClickCanvas(p)
	}
	return m, nil
}

// handleMouseMotion feeds drags and gestures; plain hover is ignored.
func handleMouseMotion(msg tea.MouseMotionMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	mouse := msg.Mouse()
	m.PointerMoved(uv.Pos(mouse.X, mouse.Y))
	return m, nil
}

// handleMouseRelease ends whatever the press started.
func handleMouseRelease(msg tea.MouseReleaseMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	mouse := msg.Mouse()
	if m.Interacting() {
		m.PointerReleased(uv.Pos(mouse.X, mouse.Y))
	}
	return m, nil
}

// handleMouseWheel scrolls whichever view is under the pointer.
func handleMouseWheel(msg tea.MouseWheelMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	mouse := msg.Mouse()
	delta := 0
	switch mouse.Button {
	case tea.MouseWheelUp:
		delta = -wheelStep
	case tea.MouseWheelDown:
		delta = wheelStep
	default:
		return m, nil
	}

	switch {
	case m.ShowLogs:
		_, maxScroll := app.LogScrollBounds(m.Height, len(m.LogMessages))
		m.LogScrollOffset = max(0, min(m.LogScrollOffset+delta, maxScroll))
	case m.ShowCode:
		m.ScrollCode(delta)
	case m.HasOverlay():
	default:
		m.ScrollBy(delta)
		if m.Interacting() {
			m.PointerMoved(uv.Pos(mouse.X, mouse.Y))
		}
	}
	return m, nil
}
