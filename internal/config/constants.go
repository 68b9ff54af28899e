// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Canvas Geometry
// =============================================================================

const (
	// DefaultComponentWidth is the width assumed for components without an explicit size, in px
	DefaultComponentWidth = 300

	// DefaultComponentHeight is the height assumed for components without an explicit size, in px
	DefaultComponentHeight = 100

	// MinComponentWidth is the smallest width a resize gesture can produce, in px
	MinComponentWidth = 100

	// MinComponentHeight is the smallest height a resize gesture can produce, in px
	MinComponentHeight = 50

	// DefaultCellWidthPx is how many px one terminal column represents
	DefaultCellWidthPx = 10

	// DefaultCellHeightPx is how many px one terminal row represents. Cells are
	// roughly twice as tall as they are wide.
	DefaultCellHeightPx = 20

	// NudgeStepPx is how far a keyboard nudge moves or resizes a component
	NudgeStepPx = 10
)

// Placement modes.
const (
	// PlacementFlow lays components out in document order; dragging reorders
	PlacementFlow = "flow"

	// PlacementFreeform honors explicit positions; dragging moves
	PlacementFreeform = "freeform"
)

// =============================================================================
// Notifications
// =============================================================================

const (
	// NotificationDuration is the default duration notifications remain visible
	NotificationDuration = 1500 * time.Millisecond

	// ErrorNotificationDuration keeps errors on screen a little longer
	ErrorNotificationDuration = 3 * time.Second

	// MaxNotificationWidth is the maximum width of notification messages
	MaxNotificationWidth = 60

	// MaxVisibleNotifications is the maximum number of notifications shown at once
	MaxVisibleNotifications = 3
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS is the normal refresh rate during regular operation
	NormalFPS = 60

	// CleanupInterval is how often expired notifications are dropped
	CleanupInterval = 250 * time.Millisecond

	// TapeStepDelay is the pause between tape commands played in the editor
	TapeStepDelay = 400 * time.Millisecond
)

// =============================================================================
// UI Layout Dimensions
// =============================================================================

const (
	// PaletteWidth is the width of the component palette column
	PaletteWidth = 24

	// PropertiesWidth is the width of the properties panel column
	PropertiesWidth = 36

	// StatusBarHeight is the height of the status bar at the bottom
	StatusBarHeight = 1

	// SectionHeaderHeight is the height of a section header row
	SectionHeaderHeight = 1

	// SectionGap is the number of blank rows between sections
	SectionGap = 1

	// MinSectionRows is the minimum height of a section body in rows
	MinSectionRows = 3

	// LogViewerWidth is the width of the log viewer overlay
	LogViewerWidth = 80

	// CodeViewerWidth is the width of the generated code overlay
	CodeViewerWidth = 100

	// MaxLogMessages is the maximum number of log messages to keep in memory
	MaxLogMessages = 100
)

// =============================================================================
// Layer Z Order
// =============================================================================

const (
	// ZIndexSection is the layer of section frames
	ZIndexSection = 1

	// ZIndexComponent is the layer of components
	ZIndexComponent = 2

	// ZIndexDragging is the layer of the component being dragged
	ZIndexDragging = 3

	// ZIndexPanels is the layer of the palette, properties panel and status bar
	ZIndexPanels = 5

	// ZIndexOverlay is the layer of help, logs and code overlays
	ZIndexOverlay = 10

	// ZIndexNotifications is the layer of notifications
	ZIndexNotifications = 20
)

// =============================================================================
// Colors
// =============================================================================

const (
	// ColorAccent is used for selection and focus
	ColorAccent = "#60a5fa"

	// ColorSection is the frame color of unselected sections
	ColorSection = "#475569"

	// ColorActiveSection is the frame color of the active section
	ColorActiveSection = "#a78bfa"

	// ColorDropTarget highlights the section under a drag
	ColorDropTarget = "#34d399"

	// ColorMuted is used for secondary text
	ColorMuted = "#94a3b8"

	// ColorError is used for error notifications
	ColorError = "#f87171"

	// ColorWarning is used for warning notifications and unplaced components
	ColorWarning = "#fbbf24"
)

// =============================================================================
// Runtime Configuration
// =============================================================================

// UseASCIIOnly controls whether to use ASCII fallback characters for icons and borders
// Set via --ascii-only command-line flag or appearance.ascii_only config
var UseASCIIOnly = false

// BorderStyle controls which border style to use for components
// Set via --border-style flag or appearance.border_style config
var BorderStyle = "rounded"

// HideClock controls whether the clock in the status bar is hidden
// Set via --hide-clock flag or appearance.hide_clock config
var HideClock = false

// ShowPalette controls whether the component palette column is drawn
// Set via appearance.show_palette config
var ShowPalette = true

// ShowProperties controls whether the properties panel is drawn
// Set via appearance.show_properties config
var ShowProperties = true

// Placement is the canvas placement mode, flow or freeform
// Set via --placement flag or canvas.placement config
var Placement = PlacementFlow

// CellWidthPx is how many px one terminal column represents
// Set via canvas.cell_width_px config
var CellWidthPx = DefaultCellWidthPx

// CellHeightPx is how many px one terminal row represents
// Set via canvas.cell_height_px config
var CellHeightPx = DefaultCellHeightPx

// ComponentWidthPx and ComponentHeightPx are assumed for unsized components
// Set via canvas.default_width and canvas.default_height config
var (
	ComponentWidthPx  = DefaultComponentWidth
	ComponentHeightPx = DefaultComponentHeight
)

// MinWidthPx and MinHeightPx floor every resize
// Set via canvas.min_width and canvas.min_height config
var (
	MinWidthPx  = MinComponentWidth
	MinHeightPx = MinComponentHeight
)

// GetBorderForStyle returns the lipgloss Border for the current style
func GetBorderForStyle() lipgloss.Border {
	if UseASCIIOnly || BorderStyle == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch BorderStyle {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	case "outer-half-block":
		return lipgloss.OuterHalfBlockBorder()
	case "inner-half-block":
		return lipgloss.InnerHalfBlockBorder()
	case "rounded":
		fallthrough
	default:
		return lipgloss.RoundedBorder()
	}
}

// GetSelectedBorder returns the border drawn around the selected component
func GetSelectedBorder() lipgloss.Border {
	if UseASCIIOnly {
		return lipgloss.ASCIIBorder()
	}
	return lipgloss.ThickBorder()
}

// PxToCols converts a horizontal px length to terminal columns, never below one.
func PxToCols(px int) int {
	return max(1, px/max(1, CellWidthPx))
}

// PxToRows converts a vertical px length to terminal rows, never below one.
func PxToRows(px int) int {
	return max(1, px/max(1, CellHeightPx))
}

// ColsToPx converts a column delta to px.
func ColsToPx(cols int) int {
	return cols * CellWidthPx
}

// RowsToPx converts a row delta to px.
func RowsToPx(rows int) int {
	return rows * CellHeightPx
}
