package config

import (
	"fmt"
	"slices"
	"strings"
)

// ValidationError describes a single configuration problem
type ValidationError struct {
	Field   string // Config section, e.g. "canvas"
	Key     string // Key inside the section
	Message string
}

// ValidationResult collects the problems found in a configuration
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// HasErrors reports whether the configuration is unusable
func (v *ValidationResult) HasErrors() bool {
	return len(v.Errors) > 0
}

// HasWarnings reports whether the configuration has non-fatal problems
func (v *ValidationResult) HasWarnings() bool {
	return len(v.Warnings) > 0
}

func (v *ValidationResult) addError(field, key, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationError{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

func (v *ValidationResult) addWarning(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationError{Field: field, Key: key, Message: fmt.Sprintf(format, args...)})
}

var (
	validBorderStyles = []string{"rounded", "normal", "thick", "double", "hidden", "block", "ascii", "outer-half-block", "inner-half-block"}
	validLogLevels    = []string{"debug", "info", "warn", "error"}
	validLogFormats   = []string{"text", "json", "logfmt"}
	validPlacements   = []string{PlacementFlow, PlacementFreeform}
)

// ValidateConfig checks cfg after defaults have been filled in
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	c := cfg.Canvas
	if !slices.Contains(validPlacements, c.Placement) {
		v.addError("canvas", "placement", "must be one of %s, got %q", strings.Join(validPlacements, ", "), c.Placement)
	}
	if c.CellWidthPx <= 0 {
		v.addError("canvas", "cell_width_px", "must be positive, got %d", c.CellWidthPx)
	}
	if c.CellHeightPx <= 0 {
		v.addError("canvas", "cell_height_px", "must be positive, got %d", c.CellHeightPx)
	}
	if c.MinWidth <= 0 {
		v.addError("canvas", "min_width", "must be positive, got %d", c.MinWidth)
	}
	if c.MinHeight <= 0 {
		v.addError("canvas", "min_height", "must be positive, got %d", c.MinHeight)
	}
	if c.DefaultWidth < c.MinWidth {
		v.addWarning("canvas", "default_width", "%d is below min_width %d and will be clamped on the first resize", c.DefaultWidth, c.MinWidth)
	}
	if c.DefaultHeight < c.MinHeight {
		v.addWarning("canvas", "default_height", "%d is below min_height %d and will be clamped on the first resize", c.DefaultHeight, c.MinHeight)
	}

	if !slices.Contains(validBorderStyles, cfg.Appearance.BorderStyle) {
		v.addWarning("appearance", "border_style", "unknown style %q, using rounded", cfg.Appearance.BorderStyle)
	}

	if !slices.Contains(validLogLevels, strings.ToLower(cfg.Logging.Level)) {
		v.addError("logging", "level", "must be one of %s, got %q", strings.Join(validLogLevels, ", "), cfg.Logging.Level)
	}
	if !slices.Contains(validLogFormats, strings.ToLower(cfg.Logging.Format)) {
		v.addError("logging", "format", "must be one of %s, got %q", strings.Join(validLogFormats, ", "), cfg.Logging.Format)
	}

	if cfg.SSH.Port < 1 || cfg.SSH.Port > 65535 {
		v.addError("ssh", "port", "must be between 1 and 65535, got %d", cfg.SSH.Port)
	}

	defaults := DefaultConfig().Keybindings
	validateKeymap(v, "keybindings.editor", cfg.Keybindings.Editor, defaults.Editor)
	validateKeymap(v, "keybindings.properties", cfg.Keybindings.Properties, defaults.Properties)
	validateKeymap(v, "keybindings.system", cfg.Keybindings.System, defaults.System)

	return v
}

func validateKeymap(v *ValidationResult, field string, keymap, known map[string][]string) {
	seen := make(map[string]string)
	for _, action := range sortedKeys(keymap) {
		if _, ok := known[action]; !ok {
			v.addWarning(field, action, "unknown action, it will be ignored")
			continue
		}
		for _, key := range keymap[action] {
			key = strings.TrimSpace(key)
			if key == "" {
				v.addError(field, action, "empty key")
				continue
			}
			if other, dup := seen[key]; dup {
				v.addError(field, action, "key %q is already bound to %s", key, other)
				continue
			}
			seen[key] = action
		}
	}
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
