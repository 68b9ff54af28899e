package tape

import (
	"fmt"
	"strconv"

	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/gesture"
	"github.com/Gaurav-Gosain/pagecraft/internal/logging"
)

// CanvasExecutor runs commands directly on a canvas without a terminal.
// The editor embeds it and adds notifications on top.
type CanvasExecutor struct {
	canvas    *canvas.Canvas
	gestures  *gesture.Controller
	placement string
	logger    *log.Logger
}

// NewCanvasExecutor returns an executor over c. A nil logger discards.
func NewCanvasExecutor(c *canvas.Canvas, gestures *gesture.Controller, logger *log.Logger) *CanvasExecutor {
	if gestures == nil {
		gestures = gesture.NewController(c, gesture.DefaultLimits())
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &CanvasExecutor{canvas: c, gestures: gestures, placement: config.Placement, logger: logger}
}

// Canvas returns the canvas commands run against.
func (e *CanvasExecutor) Canvas() *canvas.Canvas {
	return e.canvas
}

// Placement returns the placement mode set by the script.
func (e *CanvasExecutor) Placement() string {
	return e.placement
}

// SetPlacement switches between flow and freeform placement.
func (e *CanvasExecutor) SetPlacement(mode string) error {
	if mode != config.PlacementFlow && mode != config.PlacementFreeform {
		return fmt.Errorf("%w: placement %q", ErrRejected, mode)
	}
	e.placement = mode
	return nil
}

// ResolveSection finds a section by name, then by index, then by id.
func (e *CanvasExecutor) ResolveSection(ref string) (canvas.Section, error) {
	if s, ok := e.canvas.SectionByName(ref); ok {
		return s, nil
	}
	if i, err := strconv.Atoi(ref); err == nil {
		sections := e.canvas.Sections()
		if i >= 0 && i < len(sections) {
			return sections[i], nil
		}
	}
	if s, ok := e.canvas.Section(ref); ok {
		return s, nil
	}
	return canvas.Section{}, fmt.Errorf("%w: %q", ErrUnknownSection, ref)
}

// ResolveComponent finds a component by global index, then by id.
func (e *CanvasExecutor) ResolveComponent(ref string) (canvas.Component, error) {
	if i, err := strconv.Atoi(ref); err == nil {
		if comp, ok := e.canvas.ComponentAt(i); ok {
			return comp, nil
		}
	}
	if comp, ok := e.canvas.Component(ref); ok {
		return comp, nil
	}
	return canvas.Component{}, fmt.Errorf("%w: %q", ErrUnknownComponent, ref)
}

func (e *CanvasExecutor) active() (canvas.Component, error) {
	comp, ok := e.canvas.ActiveComponent()
	if !ok {
		return canvas.Component{}, ErrNoSelection
	}
	return comp, nil
}

// NewSection appends a section, renaming it when name is set, and makes
// it the active section.
func (e *CanvasExecutor) NewSection(name string) error {
	s, err := e.canvas.CreateSection()
	if err != nil {
		return err
	}
	if name != "" {
		e.canvas.UpdateSection(s.ID, canvas.SectionPatch{Name: canvas.Str(name)})
	}
	e.canvas.SelectSection(s.ID)
	e.logger.Debug("section created", "id", s.ID, "name", name)
	return nil
}

// RenameSection renames the active section.
func (e *CanvasExecutor) RenameSection(name string) error {
	s, ok := e.canvas.ActiveSection()
	if !ok {
		return fmt.Errorf("%w: no active section", ErrUnknownSection)
	}
	e.canvas.UpdateSection(s.ID, canvas.SectionPatch{Name: canvas.Str(name)})
	return nil
}

// SelectSection makes ref the active section.
func (e *CanvasExecutor) SelectSection(ref string) error {
	s, err := e.ResolveSection(ref)
	if err != nil {
		return err
	}
	e.canvas.SelectSection(s.ID)
	return nil
}

// DeleteSection removes ref, or the active section when ref is empty.
func (e *CanvasExecutor) DeleteSection(ref string) error {
	var s canvas.Section
	if ref == "" {
		active, ok := e.canvas.ActiveSection()
		if !ok {
			return fmt.Errorf("%w: no active section", ErrUnknownSection)
		}
		s = active
	} else {
		resolved, err := e.ResolveSection(ref)
		if err != nil {
			return err
		}
		s = resolved
	}
	e.canvas.DeleteSection(s.ID)
	e.logger.Debug("section deleted", "id", s.ID)
	return nil
}

func (e *CanvasExecutor) sectionOption(ref string) ([]canvas.AddOption, error) {
	if ref == "" {
		return nil, nil
	}
	s, err := e.ResolveSection(ref)
	if err != nil {
		return nil, err
	}
	return []canvas.AddOption{canvas.InSection(s.ID)}, nil
}

// Add appends a component of kind to the resolved target section.
func (e *CanvasExecutor) Add(kind catalog.Kind, sectionRef string) error {
	opts, err := e.sectionOption(sectionRef)
	if err != nil {
		return err
	}
	comp, err := e.canvas.AddComponent(kind, opts...)
	if err != nil {
		return err
	}
	e.logger.Debug("component added", "id", comp.ID, "section", comp.SectionID)
	return nil
}

// Insert splices a component of kind into the global order at index.
func (e *CanvasExecutor) Insert(kind catalog.Kind, index int, sectionRef string) error {
	opts, err := e.sectionOption(sectionRef)
	if err != nil {
		return err
	}
	_, err = e.canvas.AddComponent(kind, append(opts, canvas.AtIndex(index))...)
	return err
}

// Drop inserts kind into a section the way a palette drop does.
func (e *CanvasExecutor) Drop(kind catalog.Kind, sectionRef string) error {
	s, err := e.ResolveSection(sectionRef)
	if err != nil {
		return err
	}
	_, err = e.canvas.DropInsert(kind, s.ID)
	return err
}

// Select makes ref the active component.
func (e *CanvasExecutor) Select(ref string) error {
	comp, err := e.ResolveComponent(ref)
	if err != nil {
		return err
	}
	e.canvas.SelectComponent(comp.ID)
	return nil
}

// Deselect clears the component selection.
func (e *CanvasExecutor) Deselect() error {
	e.canvas.ClearComponentSelection()
	return nil
}

// Delete removes ref, or the active component when ref is empty.
func (e *CanvasExecutor) Delete(ref string) error {
	var (
		comp canvas.Component
		err  error
	)
	if ref == "" {
		comp, err = e.active()
	} else {
		comp, err = e.ResolveComponent(ref)
	}
	if err != nil {
		return err
	}
	e.canvas.DeleteComponent(comp.ID)
	return nil
}

// Reorder moves the component at from to to in the global order.
func (e *CanvasExecutor) Reorder(from, to int) error {
	if from == to {
		return nil
	}
	if !e.canvas.MoveComponent(from, to) {
		return fmt.Errorf("%w: move %d to %d is out of range", ErrRejected, from, to)
	}
	return nil
}

// Assign moves the active component into a section.
func (e *CanvasExecutor) Assign(sectionRef string) error {
	comp, err := e.active()
	if err != nil {
		return err
	}
	s, err := e.ResolveSection(sectionRef)
	if err != nil {
		return err
	}
	if !e.canvas.UpdateComponent(comp.ID, canvas.ComponentPatch{SectionID: canvas.Str(s.ID)}) {
		return fmt.Errorf("%w: assign %s to %s", ErrRejected, comp.ID, s.ID)
	}
	return nil
}

// SetProp sets one property of the active component. Link fields use
// dotted keys such as link.type.
func (e *CanvasExecutor) SetProp(key, value string) error {
	comp, err := e.active()
	if err != nil {
		return err
	}
	props, err := catalog.SetField(comp.Props, key, value)
	if err != nil {
		return err
	}
	if !e.canvas.UpdateComponent(comp.ID, canvas.ComponentPatch{Props: props}) {
		return fmt.Errorf("%w: update %s", ErrRejected, comp.ID)
	}
	return nil
}

// Drag runs a complete move gesture on the active component.
func (e *CanvasExecutor) Drag(dx, dy int) error {
	comp, err := e.active()
	if err != nil {
		return err
	}
	if err := e.gestures.StartMove(comp.ID, 0, 0); err != nil {
		return err
	}
	defer e.gestures.End()
	if !e.gestures.Sample(dx, dy) {
		return fmt.Errorf("%w: move %s", ErrRejected, comp.ID)
	}
	return nil
}

// Resize runs a complete resize gesture on the active component.
func (e *CanvasExecutor) Resize(h gesture.Handle, dx, dy int) error {
	comp, err := e.active()
	if err != nil {
		return err
	}
	if err := e.gestures.StartResize(comp.ID, h, 0, 0); err != nil {
		return err
	}
	defer e.gestures.End()
	if !e.gestures.Sample(dx, dy) {
		return fmt.Errorf("%w: resize %s", ErrRejected, comp.ID)
	}
	return nil
}
