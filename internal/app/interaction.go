package app

import (
	"fmt"

	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/gesture"
	uv "github.com/charmbracelet/ultraviolet"
)

// Interacting reports whether a pointer gesture or drag is running.
func (m *Editor) Interacting() bool {
	return m.Gestures.Active() || m.DragSession != nil
}

// BeginPaletteDrag starts dragging a new component of kind out of the
// palette. It fails while the canvas has no sections.
func (m *Editor) BeginPaletteDrag(kind catalog.Kind, p uv.Position) error {
	d, err := m.Canvas().BeginNew(kind)
	if err != nil {
		return err
	}
	m.DragSession = d
	m.Pointer = p
	return nil
}

// PressComponent selects id and starts a move under free-form placement
// or a reorder drag under flow placement.
func (m *Editor) PressComponent(id string, p uv.Position) error {
	c := m.Canvas()
	if !c.SelectComponent(id) {
		return fmt.Errorf("component %q: %w", id, canvas.ErrNotFound)
	}
	m.Pointer = p
	if m.Freeform() {
		x, y := PointerPx(p)
		return m.Gestures.StartMove(id, x, y)
	}
	d, ok := c.BeginReorder(id)
	if !ok {
		return fmt.Errorf("component %q: %w", id, canvas.ErrNotFound)
	}
	m.DragSession = d
	return nil
}

// BeginResize selects id and starts resizing it from handle h.
func (m *Editor) BeginResize(id string, h gesture.Handle, p uv.Position) error {
	m.Canvas().SelectComponent(id)
	m.Pointer = p
	x, y := PointerPx(p)
	return m.Gestures.StartResize(id, h, x, y)
}

// PointerMoved feeds pointer motion to the running gesture or drag. It
// reports whether anything was listening.
func (m *Editor) PointerMoved(p uv.Position) bool {
	m.Pointer = p
	if m.Gestures.Active() {
		x, y := PointerPx(p)
		m.Gestures.Sample(x, y)
		return true
	}
	if m.DragSession == nil {
		return false
	}
	m.hover(p)
	return true
}

func (m *Editor) hover(p uv.Position) {
	d := m.DragSession
	if !p.In(m.CanvasRect()) {
		d.Leave()
		return
	}
	l := m.Layout()
	if box, ok := l.ComponentAt(p); ok {
		if box.Component.ID != d.ComponentID() {
			d.OverComponent(box.Component.ID)
		}
		return
	}
	if s, ok := l.SectionAt(p); ok && !s.Unplaced {
		d.OverSection(s.Section.ID)
		return
	}
	d.Leave()
}

// PointerReleased ends whatever the pointer started.
func (m *Editor) PointerReleased(p uv.Position) {
	if m.Gestures.Active() {
		id, mode := m.Gestures.ComponentID(), m.Gestures.Mode()
		m.Gestures.End()
		switch mode {
		case gesture.Moving:
			pos := m.Gestures.Position()
			m.LogInfo("Moved %s to (%d, %d)", shortID(id), pos.X, pos.Y)
		case gesture.Resizing:
			size := m.Gestures.Size()
			m.LogInfo("Resized %s to %dx%d", shortID(id), size.Width, size.Height)
		}
		return
	}
	if m.DragSession == nil {
		return
	}
	m.hover(p)
	d := m.DragSession
	m.DragSession = nil
	res, err := d.Complete()
	if err != nil {
		m.Notify(err, "")
		return
	}
	switch {
	case res.Added:
		m.ShowNotification(fmt.Sprintf("Added %s", res.Component.Kind), "success", config.NotificationDuration)
	case res.Moved || res.Reassigned:
		m.LogInfo("Moved %s to position %d", res.Component.Kind, m.Canvas().IndexOf(res.Component.ID)+1)
	}
}

// CancelInteraction drops a drag without applying it. A running gesture
// keeps its last sample.
func (m *Editor) CancelInteraction() {
	m.DragSession = nil
	m.Gestures.End()
}

// AddKind adds a component of kind to the targeted section.
func (m *Editor) AddKind(kind catalog.Kind) {
	if err := m.Add(kind, ""); err != nil {
		m.Notify(err, "")
		return
	}
	comp, _ := m.selectedComponent()
	m.revealComponent(comp.ID)
	m.ShowNotification(fmt.Sprintf("Added %s", kind), "success", config.NotificationDuration)
}

// AddSection appends a section and selects it.
func (m *Editor) AddSection() {
	if err := m.NewSection(""); err != nil {
		m.Notify(err, "")
		return
	}
	s, _ := m.Canvas().ActiveSection()
	m.ShowNotification(fmt.Sprintf("Created %s", s.Name), "success", config.NotificationDuration)
}

// DeleteSelected deletes the active component.
func (m *Editor) DeleteSelected() {
	comp, ok := m.selectedComponent()
	if !ok {
		m.ShowNotification("Nothing selected", "warning", config.NotificationDuration)
		return
	}
	m.Canvas().DeleteComponent(comp.ID)
	m.Properties = PropertiesState{}
	m.LogInfo("Deleted %s", comp.Kind)
}

// DeleteActiveSection deletes the active section. Its components become
// unplaced.
func (m *Editor) DeleteActiveSection() {
	s, ok := m.Canvas().ActiveSection()
	if !ok {
		m.ShowNotification("No section selected", "warning", config.NotificationDuration)
		return
	}
	orphans := len(m.Canvas().ComponentsInSection(s.ID))
	m.Canvas().DeleteSection(s.ID)
	if orphans > 0 {
		m.ShowNotification(fmt.Sprintf("Deleted %s, %d component(s) unplaced", s.Name, orphans), "warning", config.NotificationDuration)
		return
	}
	m.LogInfo("Deleted %s", s.Name)
}

// CycleComponent selects the component delta steps away in global order.
func (m *Editor) CycleComponent(delta int) {
	c := m.Canvas()
	n := c.Len()
	if n == 0 {
		return
	}
	i := c.IndexOf(c.ActiveComponentID())
	switch {
	case i < 0 && delta < 0:
		i = n - 1
	case i < 0:
		i = 0
	default:
		i = ((i+delta)%n + n) % n
	}
	comp, _ := c.ComponentAt(i)
	c.SelectComponent(comp.ID)
	m.Properties.Field = 0
	m.revealComponent(comp.ID)
}

// CycleSection selects the section delta steps away.
func (m *Editor) CycleSection(delta int) {
	c := m.Canvas()
	sections := c.Sections()
	if len(sections) == 0 {
		return
	}
	i := -1
	for j, s := range sections {
		if s.ID == c.ActiveSectionID() {
			i = j
		}
	}
	switch {
	case i < 0 && delta < 0:
		i = len(sections) - 1
	case i < 0:
		i = 0
	default:
		i = ((i+delta)%len(sections) + len(sections)) % len(sections)
	}
	c.SelectSection(sections[i].ID)
	if box, ok := m.Layout().Section(sections[i].ID); ok {
		m.reveal(box.Rect)
	}
}

// MoveSelected moves the active component delta places in global order.
func (m *Editor) MoveSelected(delta int) {
	comp, ok := m.selectedComponent()
	if !ok {
		return
	}
	from := m.Canvas().IndexOf(comp.ID)
	to := from + delta
	if to < 0 || to >= m.Canvas().Len() {
		return
	}
	if err := m.Reorder(from, to); err != nil {
		m.Notify(err, "")
		return
	}
	m.revealComponent(comp.ID)
}

// Nudge moves the active component by px. Moving a component gives it an
// explicit position, which only shows under free-form placement.
func (m *Editor) Nudge(dx, dy int) {
	if _, ok := m.selectedComponent(); !ok {
		return
	}
	if !m.Freeform() {
		m.ShowNotification("Switch to freeform placement to move components", "warning", config.NotificationDuration)
		return
	}
	if err := m.CanvasExecutor.Drag(dx, dy); err != nil {
		m.Notify(err, "")
	}
}

// Grow resizes the active component by px from its east or south edge.
func (m *Editor) Grow(dw, dh int) {
	if _, ok := m.selectedComponent(); !ok {
		return
	}
	var err error
	if dw != 0 {
		err = m.Resize(gesture.East, dw, 0)
	}
	if dh != 0 && err == nil {
		err = m.Resize(gesture.South, 0, dh)
	}
	if err != nil {
		m.Notify(err, "")
	}
}

// ResetGeometry drops the explicit position and size of the active
// component.
func (m *Editor) ResetGeometry() {
	comp, ok := m.selectedComponent()
	if !ok {
		return
	}
	m.Canvas().UpdateComponent(comp.ID, canvas.ComponentPatch{ClearPosition: true, ClearSize: true})
	m.LogInfo("Reset geometry of %s", comp.Kind)
}

// TogglePlacement switches between flow and free-form placement.
func (m *Editor) TogglePlacement() {
	next := config.PlacementFreeform
	if m.Freeform() {
		next = config.PlacementFlow
	}
	if err := m.SetPlacement(next); err != nil {
		m.Notify(err, "")
		return
	}
	m.ShowNotification(fmt.Sprintf("Placement: %s", next), "info", config.NotificationDuration)
}

// ClickCanvas handles a plain click at p that hit no component: a header
// or body click selects the section, anything else clears the selection.
func (m *Editor) ClickCanvas(p uv.Position) {
	c := m.Canvas()
	if s, ok := m.Layout().SectionAt(p); ok && !s.Unplaced {
		c.SelectSection(s.Section.ID)
		c.ClearComponentSelection()
		return
	}
	c.ClearComponentSelection()
}

func (m *Editor) revealComponent(id string) {
	if r, ok := m.ComponentRect(id); ok {
		m.reveal(r)
	}
}

// reveal scrolls the canvas so r is visible.
func (m *Editor) reveal(r uv.Rectangle) {
	view := m.CanvasRect()
	switch {
	case r.Min.Y < view.Min.Y:
		m.ScrollY = max(0, m.ScrollY-(view.Min.Y-r.Min.Y))
	case r.Max.Y > view.Max.Y:
		m.ScrollY += min(r.Max.Y-view.Max.Y, r.Min.Y-view.Min.Y)
	}
}

func shortID(id string) string {
	if len(id) > 16 {
		return id[:16]
	}
	return id
}
