package canvas

// ActiveComponentID returns the selected component id, or "".
func (c *Canvas) ActiveComponentID() string {
	return c.activeComponentID
}

// ActiveSectionID returns the selected section id, or "".
func (c *Canvas) ActiveSectionID() string {
	return c.activeSectionID
}

// ActiveComponent returns the selected component.
func (c *Canvas) ActiveComponent() (Component, bool) {
	return c.Component(c.activeComponentID)
}

// ActiveSection returns the selected section.
func (c *Canvas) ActiveSection() (Section, bool) {
	return c.Section(c.activeSectionID)
}

// SelectComponent makes id the active component. The section selection is
// not touched. Unknown ids are ignored.
func (c *Canvas) SelectComponent(id string) bool {
	if _, ok := c.byID[id]; !ok {
		return false
	}
	if c.activeComponentID != id {
		c.activeComponentID = id
		c.emitSelection()
	}
	return true
}

// SelectSection makes id the active section. The component selection is
// not touched. Unknown ids are ignored.
func (c *Canvas) SelectSection(id string) bool {
	if c.sectionIndex(id) < 0 {
		return false
	}
	if c.activeSectionID != id {
		c.activeSectionID = id
		c.emitSelection()
	}
	return true
}

// ClearComponentSelection deselects the active component.
func (c *Canvas) ClearComponentSelection() {
	if c.activeComponentID != "" {
		c.activeComponentID = ""
		c.emitSelection()
	}
}

// ClearSectionSelection deselects the active section.
func (c *Canvas) ClearSectionSelection() {
	if c.activeSectionID != "" {
		c.activeSectionID = ""
		c.emitSelection()
	}
}

// ResolveTarget picks the section a new component lands in: the explicit
// section if it exists, then the active section, then the first section.
// It returns "" when there are no sections.
func (c *Canvas) ResolveTarget(explicit string) string {
	if c.sectionIndex(explicit) >= 0 {
		return explicit
	}
	if c.sectionIndex(c.activeSectionID) >= 0 {
		return c.activeSectionID
	}
	if len(c.sections) > 0 {
		return c.sections[0].ID
	}
	return ""
}

func (c *Canvas) emitSelection() {
	c.emitter.Emit(EventSelectionChanged, SelectionEvent{
		ComponentID: c.activeComponentID,
		SectionID:   c.activeSectionID,
	})
}
