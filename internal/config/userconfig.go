package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

const configRelPath = "pagecraft/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Canvas      CanvasConfig      `toml:"canvas"`
	Appearance  AppearanceConfig  `toml:"appearance"`
	Logging     LoggingConfig     `toml:"logging"`
	SSH         SSHConfig         `toml:"ssh"`
	Keybindings KeybindingsConfig `toml:"keybindings"`
}

// CanvasConfig holds canvas geometry settings. Sizes are in px.
type CanvasConfig struct {
	Placement     string `toml:"placement"`      // Placement mode: flow, freeform (default: flow)
	CellWidthPx   int    `toml:"cell_width_px"`  // px represented by one terminal column (default: 10)
	CellHeightPx  int    `toml:"cell_height_px"` // px represented by one terminal row (default: 20)
	DefaultWidth  int    `toml:"default_width"`  // Width assumed for unsized components (default: 300)
	DefaultHeight int    `toml:"default_height"` // Height assumed for unsized components (default: 100)
	MinWidth      int    `toml:"min_width"`      // Resize floor for width (default: 100)
	MinHeight     int    `toml:"min_height"`     // Resize floor for height (default: 50)
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	BorderStyle    string `toml:"border_style"`    // Border style: rounded, normal, thick, double, hidden, block, ascii, outer-half-block, inner-half-block
	ShowPalette    *bool  `toml:"show_palette"`    // Show the component palette (default: true)
	ShowProperties *bool  `toml:"show_properties"` // Show the properties panel (default: true)
	HideClock      bool   `toml:"hide_clock"`      // Hide the clock in the status bar (default: false)
	ASCIIOnly      bool   `toml:"ascii_only"`      // Use ASCII icons and borders (default: false)
}

// LoggingConfig holds log output settings
type LoggingConfig struct {
	Level  string `toml:"level"`  // Log level: debug, info, warn, error (default: info)
	File   string `toml:"file"`   // Log file path (default: $XDG_STATE_HOME/pagecraft/pagecraft.log)
	Format string `toml:"format"` // Log format: text, json, logfmt (default: text)
}

// SSHConfig holds defaults for the ssh subcommand
type SSHConfig struct {
	Host    string `toml:"host"`     // Listen host (default: localhost)
	Port    int    `toml:"port"`     // Listen port (default: 2222)
	KeyPath string `toml:"key_path"` // Host key path (default: $XDG_DATA_HOME/pagecraft/ssh_host_ed25519)
}

// KeybindingsConfig holds all keybinding configurations
type KeybindingsConfig struct {
	Editor     map[string][]string `toml:"editor"`
	Properties map[string][]string `toml:"properties"`
	System     map[string][]string `toml:"system"`
}

func boolPtr(b bool) *bool {
	return &b
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	return &UserConfig{
		Canvas: CanvasConfig{
			Placement:     PlacementFlow,
			CellWidthPx:   DefaultCellWidthPx,
			CellHeightPx:  DefaultCellHeightPx,
			DefaultWidth:  DefaultComponentWidth,
			DefaultHeight: DefaultComponentHeight,
			MinWidth:      MinComponentWidth,
			MinHeight:     MinComponentHeight,
		},
		Appearance: AppearanceConfig{
			BorderStyle:    "rounded",
			ShowPalette:    boolPtr(true),
			ShowProperties: boolPtr(true),
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
		SSH: SSHConfig{
			Host: "localhost",
			Port: 2222,
		},
		Keybindings: KeybindingsConfig{
			Editor: map[string][]string{
				"new_section":      {"S"},
				"add_section":      {"s"},
				"add_hero":         {"H"},
				"add_heading":      {"h"},
				"add_button":       {"b"},
				"add_input":        {"i"},
				"add_card":         {"c"},
				"delete":           {"x", "delete"},
				"delete_section":   {"X"},
				"rename_section":   {"r"},
				"next_component":   {"tab", "j", "down"},
				"prev_component":   {"shift+tab", "k", "up"},
				"next_section":     {"]"},
				"prev_section":     {"["},
				"move_up":          {"K", "alt+up"},
				"move_down":        {"J", "alt+down"},
				"nudge_left":       {"shift+left"},
				"nudge_right":      {"shift+right"},
				"nudge_up":         {"shift+up"},
				"nudge_down":       {"shift+down"},
				"grow_width":       {"ctrl+right"},
				"shrink_width":     {"ctrl+left"},
				"grow_height":      {"ctrl+down"},
				"shrink_height":    {"ctrl+up"},
				"reset_geometry":   {"0"},
				"toggle_placement": {"p"},
				"edit_properties":  {"e", "enter"},
				"deselect":         {"esc"},
				"scroll_up":        {"pgup"},
				"scroll_down":      {"pgdown"},
			},
			Properties: map[string][]string{
				"prop_next":   {"tab", "down"},
				"prop_prev":   {"shift+tab", "up"},
				"prop_edit":   {"enter"},
				"prop_cycle":  {"space"},
				"prop_close":  {"esc"},
				"prop_cancel": {"ctrl+g"},
			},
			System: map[string][]string{
				"generate_code": {"g"},
				"copy_code":     {"y"},
				"toggle_help":   {"?"},
				"toggle_logs":   {"ctrl+l"},
				"toggle_tapes":  {"t"},
				"quit":          {"q", "ctrl+c"},
			},
		},
	}
}

// LoadUserConfig loads the user configuration from XDG config directory
func LoadUserConfig() (*UserConfig, error) {
	configPath, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		// Config doesn't exist, create default
		return createDefaultConfig()
	}
	return LoadUserConfigFrom(configPath)
}

// LoadUserConfigFrom loads and validates the configuration at path
func LoadUserConfigFrom(configPath string) (*UserConfig, error) {
	// #nosec G304 - configPath is from XDG search or an explicit flag, reading user config is intentional
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingCanvas(&cfg, defaultCfg)
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingLogging(&cfg, defaultCfg)
	fillMissingSSH(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		for _, err := range validation.Errors {
			fmt.Fprintf(os.Stderr, "Config error in [%s]: %s - %s\n", err.Field, err.Key, err.Message)
		}
		return nil, fmt.Errorf("configuration has %d error(s), please fix and restart", len(validation.Errors))
	}
	if validation.HasWarnings() {
		for _, warn := range validation.Warnings {
			fmt.Fprintf(os.Stderr, "Config warning in [%s]: %s - %s\n", warn.Field, warn.Key, warn.Message)
		}
	}

	return &cfg, nil
}

// createDefaultConfig creates a default config file in the user's config directory
func createDefaultConfig() (*UserConfig, error) {
	cfg := DefaultConfig()

	configPath, err := xdg.ConfigFile(configRelPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get config path: %w", err)
	}
	if err := WriteConfig(configPath, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// WriteConfig writes cfg to path with the explanatory header
func WriteConfig(configPath string, cfg *UserConfig) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# pagecraft Configuration File\n")
	sb.WriteString("# This file allows you to customize the canvas, appearance and keybindings\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("# For keybindings documentation, run: pagecraft keybinds list\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# CANVAS SETTINGS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# placement: How components are laid out inside sections\n")
	sb.WriteString("#   Options: flow (drag reorders), freeform (drag moves)\n")
	sb.WriteString("#   Default: flow\n")
	sb.WriteString("#\n")
	sb.WriteString("# cell_width_px / cell_height_px: px represented by one terminal cell\n")
	sb.WriteString("#   Default: 10 / 20\n")
	sb.WriteString("#\n")
	sb.WriteString("# min_width / min_height: Smallest size a resize can produce, in px\n")
	sb.WriteString("#   Default: 100 / 50\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE SETTINGS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# border_style: Component border style\n")
	sb.WriteString("#   Options: rounded, normal, thick, double, hidden, block, ascii,\n")
	sb.WriteString("#            outer-half-block, inner-half-block\n")
	sb.WriteString("#   Default: rounded\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# LOGGING SETTINGS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# level: debug, info, warn, error (default: info)\n")
	sb.WriteString("# format: text, json, logfmt (default: text)\n")
	sb.WriteString("# file: Empty means $XDG_STATE_HOME/pagecraft/pagecraft.log\n")
	sb.WriteString("# ============================================================================\n\n")

	if _, err := sb.Write(data); err != nil {
		return fmt.Errorf("failed to write config data: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(sb.String()), 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// fillMissingCanvas fills in any missing canvas settings with defaults
func fillMissingCanvas(cfg, defaultCfg *UserConfig) {
	if cfg.Canvas.Placement == "" {
		cfg.Canvas.Placement = defaultCfg.Canvas.Placement
	}
	if cfg.Canvas.CellWidthPx == 0 {
		cfg.Canvas.CellWidthPx = defaultCfg.Canvas.CellWidthPx
	}
	if cfg.Canvas.CellHeightPx == 0 {
		cfg.Canvas.CellHeightPx = defaultCfg.Canvas.CellHeightPx
	}
	if cfg.Canvas.DefaultWidth == 0 {
		cfg.Canvas.DefaultWidth = defaultCfg.Canvas.DefaultWidth
	}
	if cfg.Canvas.DefaultHeight == 0 {
		cfg.Canvas.DefaultHeight = defaultCfg.Canvas.DefaultHeight
	}
	if cfg.Canvas.MinWidth == 0 {
		cfg.Canvas.MinWidth = defaultCfg.Canvas.MinWidth
	}
	if cfg.Canvas.MinHeight == 0 {
		cfg.Canvas.MinHeight = defaultCfg.Canvas.MinHeight
	}
}

// fillMissingAppearance fills in any missing appearance settings with defaults
func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
	// nil means the key was absent, so the panel stays visible
	if cfg.Appearance.ShowPalette == nil {
		cfg.Appearance.ShowPalette = defaultCfg.Appearance.ShowPalette
	}
	if cfg.Appearance.ShowProperties == nil {
		cfg.Appearance.ShowProperties = defaultCfg.Appearance.ShowProperties
	}
}

// fillMissingLogging fills in any missing logging settings with defaults
func fillMissingLogging(cfg, defaultCfg *UserConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultCfg.Logging.Level
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = defaultCfg.Logging.Format
	}
	// File defaults to empty (use XDG state path), so we don't override it
}

// fillMissingSSH fills in any missing ssh settings with defaults
func fillMissingSSH(cfg, defaultCfg *UserConfig) {
	if cfg.SSH.Host == "" {
		cfg.SSH.Host = defaultCfg.SSH.Host
	}
	if cfg.SSH.Port == 0 {
		cfg.SSH.Port = defaultCfg.SSH.Port
	}
}

// fillMissingKeybinds fills in any missing keybindings with defaults
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings.Editor == nil {
		cfg.Keybindings.Editor = make(map[string][]string)
	}
	if cfg.Keybindings.Properties == nil {
		cfg.Keybindings.Properties = make(map[string][]string)
	}
	if cfg.Keybindings.System == nil {
		cfg.Keybindings.System = make(map[string][]string)
	}

	fillMapDefaults(cfg.Keybindings.Editor, defaultCfg.Keybindings.Editor)
	fillMapDefaults(cfg.Keybindings.Properties, defaultCfg.Keybindings.Properties)
	fillMapDefaults(cfg.Keybindings.System, defaultCfg.Keybindings.System)
}

func fillMapDefaults(target, defaults map[string][]string) {
	for k, v := range defaults {
		if _, exists := target[k]; !exists {
			target[k] = v
		}
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(configRelPath)
	if err != nil {
		// Return where it would be created
		return xdg.ConfigFile(configRelPath)
	}
	return path, nil
}

// ResetConfig overwrites the config file with the defaults
func ResetConfig() (string, error) {
	path, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	return path, WriteConfig(path, DefaultConfig())
}
