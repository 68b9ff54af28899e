package config

import "strings"

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// ASCIIOnly uses ASCII characters instead of Unicode icons
	ASCIIOnly bool

	// BorderStyle overrides the component border style
	BorderStyle string

	// HideClock overrides hiding the clock
	HideClock bool

	// Placement overrides the canvas placement mode
	Placement string
}

// ApplyOverrides applies CLI flag overrides to global config, falling back to user config defaults.
// If userConfig is nil, only CLI flag values (when set) are applied.
func ApplyOverrides(overrides Overrides, userConfig *UserConfig) {
	// ASCII Only - OR of CLI flag and user config
	UseASCIIOnly = overrides.ASCIIOnly || (userConfig != nil && userConfig.Appearance.ASCIIOnly)

	// Border Style - CLI flag takes precedence, otherwise use user config
	if overrides.BorderStyle != "" {
		BorderStyle = overrides.BorderStyle
	} else if userConfig != nil && userConfig.Appearance.BorderStyle != "" {
		BorderStyle = userConfig.Appearance.BorderStyle
	}

	// Hide Clock - OR of CLI flag and user config
	if userConfig != nil {
		HideClock = overrides.HideClock || userConfig.Appearance.HideClock
	} else {
		HideClock = overrides.HideClock
	}

	// Placement - CLI flag takes precedence, otherwise use user config
	if p := strings.ToLower(overrides.Placement); p == PlacementFlow || p == PlacementFreeform {
		Placement = p
	} else if userConfig != nil && userConfig.Canvas.Placement != "" {
		Placement = userConfig.Canvas.Placement
	}

	if userConfig == nil {
		return
	}

	if userConfig.Appearance.ShowPalette != nil {
		ShowPalette = *userConfig.Appearance.ShowPalette
	}
	if userConfig.Appearance.ShowProperties != nil {
		ShowProperties = *userConfig.Appearance.ShowProperties
	}
	if userConfig.Canvas.CellWidthPx > 0 {
		CellWidthPx = userConfig.Canvas.CellWidthPx
	}
	if userConfig.Canvas.CellHeightPx > 0 {
		CellHeightPx = userConfig.Canvas.CellHeightPx
	}
	if userConfig.Canvas.DefaultWidth > 0 {
		ComponentWidthPx = userConfig.Canvas.DefaultWidth
	}
	if userConfig.Canvas.DefaultHeight > 0 {
		ComponentHeightPx = userConfig.Canvas.DefaultHeight
	}
	if userConfig.Canvas.MinWidth > 0 {
		MinWidthPx = userConfig.Canvas.MinWidth
	}
	if userConfig.Canvas.MinHeight > 0 {
		MinHeightPx = userConfig.Canvas.MinHeight
	}
}
