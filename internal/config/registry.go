package config

import (
	"slices"
	"strings"
)

// Keymap contexts. Lookups in the editor or properties context fall back
// to the system context.
const (
	ContextEditor     = "editor"
	ContextProperties = "properties"
	ContextSystem     = "system"
)

// KeybindRegistry resolves key strings to actions per context.
type KeybindRegistry struct {
	actions map[string]map[string][]string // context -> action -> keys
	keys    map[string]map[string]string   // context -> key -> action
}

// NewKeybindRegistry builds a registry from cfg. A nil cfg uses the defaults.
func NewKeybindRegistry(cfg *UserConfig) *KeybindRegistry {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	r := &KeybindRegistry{
		actions: make(map[string]map[string][]string),
		keys:    make(map[string]map[string]string),
	}
	defaults := DefaultConfig().Keybindings
	r.add(ContextEditor, cfg.Keybindings.Editor, defaults.Editor)
	r.add(ContextProperties, cfg.Keybindings.Properties, defaults.Properties)
	r.add(ContextSystem, cfg.Keybindings.System, defaults.System)
	return r
}

func (r *KeybindRegistry) add(context string, keymap, known map[string][]string) {
	r.actions[context] = make(map[string][]string)
	r.keys[context] = make(map[string]string)
	for _, action := range sortedKeys(keymap) {
		if _, ok := known[action]; !ok {
			continue
		}
		for _, key := range keymap[action] {
			key = normalizeKey(key)
			if key == "" {
				continue
			}
			if _, taken := r.keys[context][key]; taken {
				continue
			}
			r.keys[context][key] = action
			r.actions[context][action] = append(r.actions[context][action], key)
		}
	}
}

// normalizeKey lowercases modifiers but keeps the case of single letters,
// so "Shift+Tab" matches "shift+tab" while "K" and "k" stay distinct.
func normalizeKey(key string) string {
	key = strings.TrimSpace(key)
	parts := strings.Split(key, "+")
	for i, p := range parts {
		if len([]rune(p)) > 1 {
			parts[i] = strings.ToLower(p)
		}
	}
	key = strings.Join(parts, "+")
	key = strings.ReplaceAll(key, "opt+", "alt+")
	return key
}

// Lookup returns the action bound to key in context, falling back to the
// system context. It returns "" when the key is unbound.
func (r *KeybindRegistry) Lookup(context, key string) string {
	key = normalizeKey(key)
	if action, ok := r.keys[context][key]; ok {
		return action
	}
	if context != ContextSystem {
		return r.keys[ContextSystem][key]
	}
	return ""
}

// GetKeys returns the keys bound to action in any context.
func (r *KeybindRegistry) GetKeys(action string) []string {
	for _, context := range []string{ContextEditor, ContextProperties, ContextSystem} {
		if keys, ok := r.actions[context][action]; ok {
			return slices.Clone(keys)
		}
	}
	return nil
}

// GetKeysForDisplay returns the keys of action formatted for help text.
func (r *KeybindRegistry) GetKeysForDisplay(action string) string {
	keys := r.GetKeys(action)
	display := make([]string, len(keys))
	for i, k := range keys {
		display[i] = displayKey(k)
	}
	return strings.Join(display, ", ")
}

func displayKey(key string) string {
	parts := strings.Split(key, "+")
	for i, p := range parts {
		switch p {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		case "up":
			parts[i] = "↑"
		case "down":
			parts[i] = "↓"
		case "left":
			parts[i] = "←"
		case "right":
			parts[i] = "→"
		case "tab":
			parts[i] = "Tab"
		case "esc":
			parts[i] = "Esc"
		case "enter":
			parts[i] = "Enter"
		case "space":
			parts[i] = "Space"
		case "delete":
			parts[i] = "Del"
		}
	}
	return strings.Join(parts, "+")
}
