package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/adrg/xdg"
)

func useTempConfigHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return dir
}

func TestLoadUserConfigCreatesDefault(t *testing.T) {
	dir := useTempConfigHome(t)

	cfg, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("LoadUserConfig() error: %v", err)
	}
	if cfg.Canvas.Placement != PlacementFlow {
		t.Errorf("Placement = %q, want flow", cfg.Canvas.Placement)
	}

	path := filepath.Join(dir, "pagecraft", "config.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("default config was not written: %v", err)
	}
	if !strings.HasPrefix(string(data), "# pagecraft Configuration File") {
		t.Errorf("config header missing:\n%s", data)
	}

	again, err := LoadUserConfig()
	if err != nil {
		t.Fatalf("reloading written default failed: %v", err)
	}
	if again.SSH.Port != 2222 || again.Keybindings.System["quit"][0] != "q" {
		t.Errorf("reloaded config = %+v", again)
	}
}

func TestLoadUserConfigFillsMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[canvas]
placement = "freeform"
cell_width_px = 8

[keybindings.system]
quit = ["Q"]
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadUserConfigFrom(path)
	if err != nil {
		t.Fatalf("LoadUserConfigFrom() error: %v", err)
	}

	tests := []struct {
		name string
		got  any
		want any
	}{
		{"placement kept", cfg.Canvas.Placement, PlacementFreeform},
		{"cell width kept", cfg.Canvas.CellWidthPx, 8},
		{"cell height filled", cfg.Canvas.CellHeightPx, DefaultCellHeightPx},
		{"min width filled", cfg.Canvas.MinWidth, MinComponentWidth},
		{"border filled", cfg.Appearance.BorderStyle, "rounded"},
		{"palette filled", *cfg.Appearance.ShowPalette, true},
		{"log level filled", cfg.Logging.Level, "info"},
		{"quit kept", cfg.Keybindings.System["quit"][0], "Q"},
		{"help filled", cfg.Keybindings.System["toggle_help"][0], "?"},
		{"editor filled", cfg.Keybindings.Editor["new_section"][0], "S"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("got %v, want %v", tt.got, tt.want)
			}
		})
	}
}

func TestLoadUserConfigRejectsInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[canvas]\nplacement = \"grid\"\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadUserConfigFrom(path); err == nil {
		t.Fatal("LoadUserConfigFrom() accepted an invalid placement")
	}
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*UserConfig)
		wantErrors   int
		wantWarnings int
	}{
		{name: "defaults", mutate: func(*UserConfig) {}},
		{name: "bad placement", mutate: func(c *UserConfig) { c.Canvas.Placement = "grid" }, wantErrors: 1},
		{name: "zero cell", mutate: func(c *UserConfig) { c.Canvas.CellWidthPx = 0 }, wantErrors: 1},
		{name: "default below floor", mutate: func(c *UserConfig) { c.Canvas.DefaultWidth = 50 }, wantWarnings: 1},
		{name: "unknown border", mutate: func(c *UserConfig) { c.Appearance.BorderStyle = "wavy" }, wantWarnings: 1},
		{name: "bad level", mutate: func(c *UserConfig) { c.Logging.Level = "trace" }, wantErrors: 1},
		{name: "bad port", mutate: func(c *UserConfig) { c.SSH.Port = 70000 }, wantErrors: 1},
		{name: "unknown action", mutate: func(c *UserConfig) { c.Keybindings.System["dance"] = []string{"d"} }, wantWarnings: 1},
		{name: "duplicate key", mutate: func(c *UserConfig) { c.Keybindings.System["toggle_help"] = []string{"q"} }, wantErrors: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			v := ValidateConfig(cfg)
			if len(v.Errors) != tt.wantErrors {
				t.Errorf("errors = %v, want %d", v.Errors, tt.wantErrors)
			}
			if len(v.Warnings) != tt.wantWarnings {
				t.Errorf("warnings = %v, want %d", v.Warnings, tt.wantWarnings)
			}
		})
	}
}

func TestApplyOverrides(t *testing.T) {
	saved := struct {
		ascii      bool
		border     string
		placement  string
		cellWidth  int
		showPanels bool
	}{UseASCIIOnly, BorderStyle, Placement, CellWidthPx, ShowPalette}
	t.Cleanup(func() {
		UseASCIIOnly, BorderStyle, Placement, CellWidthPx, ShowPalette = saved.ascii, saved.border, saved.placement, saved.cellWidth, saved.showPanels
	})

	cfg := DefaultConfig()
	cfg.Appearance.BorderStyle = "double"
	cfg.Canvas.Placement = PlacementFreeform
	cfg.Canvas.CellWidthPx = 12
	cfg.Appearance.ShowPalette = boolPtr(false)

	ApplyOverrides(Overrides{}, cfg)
	if BorderStyle != "double" || Placement != PlacementFreeform || CellWidthPx != 12 || ShowPalette {
		t.Errorf("user config not applied: border=%s placement=%s cell=%d palette=%v", BorderStyle, Placement, CellWidthPx, ShowPalette)
	}

	ApplyOverrides(Overrides{BorderStyle: "thick", Placement: "FLOW", ASCIIOnly: true}, cfg)
	if BorderStyle != "thick" || Placement != PlacementFlow || !UseASCIIOnly {
		t.Errorf("flags did not win: border=%s placement=%s ascii=%v", BorderStyle, Placement, UseASCIIOnly)
	}
}

func TestPxConversions(t *testing.T) {
	saved := CellWidthPx
	t.Cleanup(func() { CellWidthPx = saved })
	CellWidthPx = 10

	if got := PxToCols(300); got != 30 {
		t.Errorf("PxToCols(300) = %d, want 30", got)
	}
	if got := PxToCols(3); got != 1 {
		t.Errorf("PxToCols(3) = %d, want 1", got)
	}
	if got := ColsToPx(5); got != 50 {
		t.Errorf("ColsToPx(5) = %d, want 50", got)
	}
}

func TestKeybindRegistry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Keybindings.Editor["delete"] = []string{"D", "delete"}
	r := NewKeybindRegistry(cfg)

	tests := []struct {
		context string
		key     string
		want    string
	}{
		{ContextEditor, "D", "delete"},
		{ContextEditor, "x", ""},
		{ContextEditor, "K", "move_up"},
		{ContextEditor, "k", "prev_component"},
		{ContextEditor, "Shift+Tab", "prev_component"},
		{ContextEditor, "q", "quit"},
		{ContextProperties, "esc", "prop_close"},
		{ContextProperties, "q", "quit"},
		{ContextSystem, "D", ""},
	}
	for _, tt := range tests {
		t.Run(tt.context+"/"+tt.key, func(t *testing.T) {
			if got := r.Lookup(tt.context, tt.key); got != tt.want {
				t.Errorf("Lookup(%s, %q) = %q, want %q", tt.context, tt.key, got, tt.want)
			}
		})
	}

	if got := r.GetKeysForDisplay("prev_component"); got != "Shift+Tab, k, ↑" {
		t.Errorf("GetKeysForDisplay(prev_component) = %q", got)
	}
}

func TestGetKeybindings(t *testing.T) {
	sections := GetKeybindings(NewKeybindRegistry(nil))
	titles := make(map[string]bool)
	for _, s := range sections {
		titles[s.Title] = true
	}
	for _, want := range []string{"ADD", "EDIT", "ORDER", "GEOMETRY", "PROPERTIES PANEL", "SYSTEM", "MOUSE:"} {
		if !titles[want] {
			t.Errorf("missing help section %q", want)
		}
	}
	if len(GetKeybindings(nil)) == 0 {
		t.Error("fallback keybindings are empty")
	}
}
