package app

import (
	"fmt"
	"slices"
	"unicode/utf8"

	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	uv "github.com/charmbracelet/ultraviolet"
)

// PropertyFields returns what the properties panel edits: the active
// component, or the active section when no component is selected.
func (m *Editor) PropertyFields() (string, []catalog.Field, bool) {
	c := m.Canvas()
	if comp, ok := c.ActiveComponent(); ok {
		return string(comp.Kind), catalog.Fields(comp.Props), true
	}
	if s, ok := c.ActiveSection(); ok {
		return s.Name, sectionFields(s), true
	}
	return "", nil, false
}

func sectionFields(s canvas.Section) []catalog.Field {
	return []catalog.Field{
		{Key: "name", Value: s.Name},
		{Key: "backgroundColor", Value: s.BackgroundColor},
		{Key: "padding", Value: s.Padding},
		{Key: "minHeight", Value: s.MinHeight},
	}
}

// SetProperty sets one field of the panel target. Component edits replace
// the whole property bag.
func (m *Editor) SetProperty(key, value string) error {
	c := m.Canvas()
	if _, ok := c.ActiveComponent(); ok {
		return m.SetProp(key, value)
	}
	s, ok := c.ActiveSection()
	if !ok {
		return fmt.Errorf("nothing selected")
	}
	var patch canvas.SectionPatch
	switch key {
	case "name":
		patch.Name = canvas.Str(value)
	case "backgroundColor":
		patch.BackgroundColor = canvas.Str(value)
	case "padding":
		patch.Padding = canvas.Str(value)
	case "minHeight":
		patch.MinHeight = canvas.Str(value)
	default:
		return fmt.Errorf("%w: sections have no field %q", catalog.ErrInvalidProps, key)
	}
	c.UpdateSection(s.ID, patch)
	return nil
}

// FocusProperties gives the properties panel the keyboard.
func (m *Editor) FocusProperties() bool {
	if _, _, ok := m.PropertyFields(); !ok {
		m.ShowNotification("Select a component or section first", "warning", config.NotificationDuration)
		return false
	}
	m.Properties = PropertiesState{Focused: true}
	return true
}

// CloseProperties returns the keyboard to the canvas.
func (m *Editor) CloseProperties() {
	m.Properties = PropertiesState{}
}

// MoveField moves the panel cursor by delta fields, wrapping.
func (m *Editor) MoveField(delta int) {
	_, fields, ok := m.PropertyFields()
	if !ok || len(fields) == 0 {
		return
	}
	n := len(fields)
	m.Properties.Field = ((m.Properties.Field+delta)%n + n) % n
	m.Properties.Editing = false
	m.Properties.Buffer = ""
}

// CurrentField returns the field under the panel cursor.
func (m *Editor) CurrentField() (catalog.Field, bool) {
	_, fields, ok := m.PropertyFields()
	if !ok || len(fields) == 0 {
		return catalog.Field{}, false
	}
	i := min(max(m.Properties.Field, 0), len(fields)-1)
	return fields[i], true
}

// BeginFieldEdit starts editing the current field, seeded with its value.
func (m *Editor) BeginFieldEdit() {
	f, ok := m.CurrentField()
	if !ok {
		return
	}
	m.Properties.Editing = true
	m.Properties.Buffer = f.Value
}

// ApplyFieldEdit writes the edit buffer to the current field.
func (m *Editor) ApplyFieldEdit() {
	f, ok := m.CurrentField()
	if !ok || !m.Properties.Editing {
		return
	}
	value := m.Properties.Buffer
	m.Properties.Editing = false
	m.Properties.Buffer = ""
	if err := m.SetProperty(f.Key, value); err != nil {
		m.Notify(err, "")
		return
	}
	m.LogInfo("Set %s to %q", f.Key, value)
}

// CancelFieldEdit discards the edit buffer.
func (m *Editor) CancelFieldEdit() {
	m.Properties.Editing = false
	m.Properties.Buffer = ""
}

// CycleField steps a field with fixed options to its next option.
func (m *Editor) CycleField() {
	f, ok := m.CurrentField()
	if !ok || len(f.Options) == 0 {
		return
	}
	next := f.Options[(slices.Index(f.Options, f.Value)+1)%len(f.Options)]
	if err := m.SetProperty(f.Key, next); err != nil {
		m.Notify(err, "")
	}
}

// TypeText appends text to whichever buffer is being edited.
func (m *Editor) TypeText(text string) {
	switch {
	case m.RenamingSection:
		m.RenameBuffer += text
	case m.Properties.Editing:
		m.Properties.Buffer += text
	}
}

// Backspace removes the last rune of whichever buffer is being edited.
func (m *Editor) Backspace() {
	trim := func(s string) string {
		if s == "" {
			return s
		}
		_, size := utf8.DecodeLastRuneInString(s)
		return s[:len(s)-size]
	}
	switch {
	case m.RenamingSection:
		m.RenameBuffer = trim(m.RenameBuffer)
	case m.Properties.Editing:
		m.Properties.Buffer = trim(m.Properties.Buffer)
	}
}

// StartRenameSection starts renaming the active section.
func (m *Editor) StartRenameSection() {
	s, ok := m.Canvas().ActiveSection()
	if !ok {
		m.ShowNotification("No section selected", "warning", config.NotificationDuration)
		return
	}
	m.RenamingSection = true
	m.RenameBuffer = s.Name
}

// ApplyRename renames the active section to the rename buffer.
func (m *Editor) ApplyRename() {
	name := m.RenameBuffer
	m.RenamingSection = false
	m.RenameBuffer = ""
	if name == "" {
		return
	}
	if err := m.RenameSection(name); err != nil {
		m.Notify(err, "")
	}
}

// CancelRename stops renaming without changes.
func (m *Editor) CancelRename() {
	m.RenamingSection = false
	m.RenameBuffer = ""
}

// PropertyFieldAt returns the index of the panel field drawn at p.
func (m *Editor) PropertyFieldAt(p uv.Position) (int, bool) {
	r := m.PropertiesRect()
	if !p.In(r) {
		return 0, false
	}
	_, fields, ok := m.PropertyFields()
	row := p.Y - r.Min.Y - 1
	if !ok || row < 0 || row >= len(fields) {
		return 0, false
	}
	return row, true
}

// FocusField focuses the panel on field i.
func (m *Editor) FocusField(i int) {
	if !m.FocusProperties() {
		return
	}
	m.Properties.Field = i
}
