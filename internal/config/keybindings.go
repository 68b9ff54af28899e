package config

// Keybinding represents a single keybinding entry
type Keybinding struct {
	Key         string
	Description string
}

// KeybindingSection represents a section of related keybindings
type KeybindingSection struct {
	Title     string
	Condition string // Empty for always shown, "freeform" or "flow" for one placement mode
	Bindings  []Keybinding
}

// GetKeybindings returns all keybinding sections for the help menu
// If registry is provided, it generates bindings dynamically from user config
// If registry is nil, it falls back to hard-coded defaults
func GetKeybindings(registry *KeybindRegistry) []KeybindingSection {
	if registry == nil {
		return getDefaultKeybindings()
	}

	sections := []KeybindingSection{}

	add := KeybindingSection{Title: "ADD", Bindings: []Keybinding{}}
	addBinding(&add, registry, "new_section", "New section")
	addBinding(&add, registry, "add_hero", "Add hero")
	addBinding(&add, registry, "add_heading", "Add heading")
	addBinding(&add, registry, "add_button", "Add button")
	addBinding(&add, registry, "add_input", "Add text input")
	addBinding(&add, registry, "add_card", "Add card")
	addBinding(&add, registry, "add_section", "Add section block")
	if len(add.Bindings) > 0 {
		sections = append(sections, add)
	}

	edit := KeybindingSection{Title: "EDIT", Bindings: []Keybinding{}}
	addBinding(&edit, registry, "next_component", "Select next component")
	addBinding(&edit, registry, "prev_component", "Select previous component")
	addBinding(&edit, registry, "next_section", "Select next section")
	addBinding(&edit, registry, "prev_section", "Select previous section")
	addBinding(&edit, registry, "edit_properties", "Edit properties")
	addBinding(&edit, registry, "rename_section", "Rename section")
	addBinding(&edit, registry, "delete", "Delete component")
	addBinding(&edit, registry, "delete_section", "Delete section")
	addBinding(&edit, registry, "deselect", "Clear selection")
	addBinding(&edit, registry, "toggle_placement", "Toggle flow/freeform")
	addBinding(&edit, registry, "scroll_up", "Scroll canvas up")
	addBinding(&edit, registry, "scroll_down", "Scroll canvas down")
	if len(edit.Bindings) > 0 {
		sections = append(sections, edit)
	}

	order := KeybindingSection{Title: "ORDER", Condition: PlacementFlow, Bindings: []Keybinding{}}
	addBinding(&order, registry, "move_up", "Move earlier")
	addBinding(&order, registry, "move_down", "Move later")
	if len(order.Bindings) > 0 {
		sections = append(sections, order)
	}

	geometry := KeybindingSection{Title: "GEOMETRY", Bindings: []Keybinding{}}
	addBinding(&geometry, registry, "nudge_left", "Nudge left")
	addBinding(&geometry, registry, "nudge_right", "Nudge right")
	addBinding(&geometry, registry, "nudge_up", "Nudge up")
	addBinding(&geometry, registry, "nudge_down", "Nudge down")
	addBinding(&geometry, registry, "grow_width", "Wider")
	addBinding(&geometry, registry, "shrink_width", "Narrower")
	addBinding(&geometry, registry, "grow_height", "Taller")
	addBinding(&geometry, registry, "shrink_height", "Shorter")
	addBinding(&geometry, registry, "reset_geometry", "Reset position and size")
	if len(geometry.Bindings) > 0 {
		sections = append(sections, geometry)
	}

	props := KeybindingSection{Title: "PROPERTIES PANEL", Bindings: []Keybinding{}}
	addBinding(&props, registry, "prop_next", "Next field")
	addBinding(&props, registry, "prop_prev", "Previous field")
	addBinding(&props, registry, "prop_edit", "Edit or apply field")
	addBinding(&props, registry, "prop_cycle", "Cycle option")
	addBinding(&props, registry, "prop_cancel", "Discard edit")
	addBinding(&props, registry, "prop_close", "Close panel")
	if len(props.Bindings) > 0 {
		sections = append(sections, props)
	}

	system := KeybindingSection{Title: "SYSTEM", Bindings: []Keybinding{}}
	addBinding(&system, registry, "generate_code", "Generate code")
	addBinding(&system, registry, "copy_code", "Copy generated code")
	addBinding(&system, registry, "toggle_logs", "Toggle log viewer")
	addBinding(&system, registry, "toggle_tapes", "Browse and play saved tapes")
	addBinding(&system, registry, "toggle_help", "Toggle help")
	addBinding(&system, registry, "quit", "Quit")
	if len(system.Bindings) > 0 {
		sections = append(sections, system)
	}

	sections = append(sections, getStaticHelpSections()...)
	return sections
}

// addBinding adds a keybinding to a section if the action has keys configured
func addBinding(section *KeybindingSection, registry *KeybindRegistry, action, description string) {
	keys := registry.GetKeysForDisplay(action)
	if keys != "" {
		section.Bindings = append(section.Bindings, Keybinding{
			Key:         keys,
			Description: description,
		})
	}
}

// getDefaultKeybindings returns the hard-coded keybindings (used as fallback)
func getDefaultKeybindings() []KeybindingSection {
	sections := []KeybindingSection{
		{
			Title: "ADD",
			Bindings: []Keybinding{
				{"S", "New section"},
				{"H / h / b / i / c / s", "Add hero, heading, button, input, card, section block"},
			},
		},
		{
			Title: "EDIT",
			Bindings: []Keybinding{
				{"Tab, j / Shift+Tab, k", "Select next / previous component"},
				{"] / [", "Select next / previous section"},
				{"e, Enter", "Edit properties"},
				{"x, Del", "Delete component"},
				{"X", "Delete section"},
				{"p", "Toggle flow/freeform"},
			},
		},
		{
			Title: "SYSTEM",
			Bindings: []Keybinding{
				{"g", "Generate code"},
				{"y", "Copy generated code"},
				{"t", "Browse and play saved tapes"},
				{"?", "Toggle help"},
				{"q, Ctrl+C", "Quit"},
			},
		},
	}
	sections = append(sections, getStaticHelpSections()...)
	return sections
}

// getStaticHelpSections returns help sections that don't need dynamic binding info
func getStaticHelpSections() []KeybindingSection {
	return []KeybindingSection{
		{
			Title: "MOUSE:",
			Bindings: []Keybinding{
				{"Drag palette item", "Drop a new component into a section"},
				{"Click component", "Select it"},
				{"Click section header", "Select section"},
				{"Drag border", "Resize from that edge or corner"},
				{"Right drag", "Resize from the nearest corner"},
			},
		},
		{
			Title:     "FLOW MODE:",
			Condition: PlacementFlow,
			Bindings: []Keybinding{
				{"Drag component", "Reorder, or move into another section"},
			},
		},
		{
			Title:     "FREEFORM MODE:",
			Condition: PlacementFreeform,
			Bindings: []Keybinding{
				{"Drag component", "Move it"},
			},
		},
	}
}
