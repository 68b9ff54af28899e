package canvas

import (
	"fmt"

	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
)

// Reorder moves the component at dragIndex to hoverIndex with the same
// remove-then-insert semantics as MoveComponent. Callers that compute
// hoverIndex from on-screen adjacency must account for the removal shift.
func (c *Canvas) Reorder(dragIndex, hoverIndex int) bool {
	return c.MoveComponent(dragIndex, hoverIndex)
}

// DropInsert appends a new component of kind to section id. It never
// deduplicates: dropping the same kind twice creates two components.
func (c *Canvas) DropInsert(kind catalog.Kind, sectionID string) (Component, error) {
	if len(c.sections) == 0 {
		return Component{}, ErrNoSections
	}
	return c.AddComponent(kind, InSection(sectionID))
}

// DragSession tracks one drag from pointer down to pointer up. It holds no
// canvas state of its own; only Complete mutates the canvas.
type DragSession struct {
	canvas *Canvas

	// existing component being reordered, or empty for a new-kind drag.
	componentID string
	kind        catalog.Kind

	hoverIndex   int
	hoverSection string
}

// DropResult describes what a completed drag changed.
type DropResult struct {
	Component  Component
	Added      bool
	Moved      bool
	Reassigned bool
}

// Changed reports whether the drop mutated the canvas.
func (r DropResult) Changed() bool {
	return r.Added || r.Moved || r.Reassigned
}

// BeginReorder starts dragging the existing component id.
func (c *Canvas) BeginReorder(id string) (*DragSession, bool) {
	if _, ok := c.byID[id]; !ok {
		return nil, false
	}
	return &DragSession{canvas: c, componentID: id, hoverIndex: -1}, true
}

// BeginNew starts dragging a new component of kind out of the palette.
// Nothing can be dragged while the canvas has no sections.
func (c *Canvas) BeginNew(kind catalog.Kind) (*DragSession, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %q", catalog.ErrInvalidKind, kind)
	}
	if len(c.sections) == 0 {
		return nil, ErrNoSections
	}
	return &DragSession{canvas: c, kind: kind, hoverIndex: -1}, nil
}

// IsNew reports whether the session drags a new component.
func (d *DragSession) IsNew() bool {
	return d.componentID == ""
}

// ComponentID returns the dragged component id, or "" for a new-kind drag.
func (d *DragSession) ComponentID() string {
	return d.componentID
}

// Kind returns the kind being dragged.
func (d *DragSession) Kind() catalog.Kind {
	if d.IsNew() {
		return d.kind
	}
	comp, _ := d.canvas.Component(d.componentID)
	return comp.Kind
}

// HoverSection returns the section currently under the pointer.
func (d *DragSession) HoverSection() string {
	return d.hoverSection
}

// HoverIndex returns the global index currently under the pointer, or -1.
func (d *DragSession) HoverIndex() int {
	return d.hoverIndex
}

// OverComponent records that the pointer is over component id. The hovered
// section becomes that component's section.
func (d *DragSession) OverComponent(id string) {
	comp, ok := d.canvas.Component(id)
	if !ok {
		return
	}
	d.hoverIndex = d.canvas.IndexOf(id)
	d.hoverSection = d.canvas.Placement(comp)
}

// OverSection records that the pointer is over the empty area of section id.
func (d *DragSession) OverSection(id string) {
	if _, ok := d.canvas.Section(id); !ok {
		return
	}
	d.hoverIndex = -1
	d.hoverSection = id
}

// Leave records that the pointer left every drop target.
func (d *DragSession) Leave() {
	d.hoverIndex = -1
	d.hoverSection = ""
}

// Complete applies the drop. A new-kind drag appends a component to the
// hovered section. A reorder moves the component to the hovered index and,
// when the hovered section differs, reassigns it. Dropping with nothing
// hovered or without an index change is a no-op.
func (d *DragSession) Complete() (DropResult, error) {
	c := d.canvas
	if d.IsNew() {
		if d.hoverSection == "" {
			return DropResult{}, nil
		}
		comp, err := c.DropInsert(d.kind, d.hoverSection)
		if err != nil {
			return DropResult{}, err
		}
		return DropResult{Component: comp, Added: true}, nil
	}

	from := c.IndexOf(d.componentID)
	if from < 0 {
		return DropResult{}, nil
	}

	var res DropResult
	if d.hoverIndex >= 0 {
		res.Moved = c.MoveComponent(from, d.hoverIndex)
	}
	if d.hoverSection != "" {
		comp, _ := c.Component(d.componentID)
		if c.Placement(comp) != d.hoverSection {
			res.Reassigned = c.UpdateComponent(d.componentID, ComponentPatch{SectionID: Str(d.hoverSection)})
		}
	}
	res.Component, _ = c.Component(d.componentID)
	return res, nil
}
