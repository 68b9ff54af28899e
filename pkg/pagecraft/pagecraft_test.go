package pagecraft

import (
	"context"
	"errors"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/tape"
	"github.com/charmbracelet/x/ansi"
)

// restoreGlobals undoes ApplyOverrides after a test.
func restoreGlobals(t *testing.T) {
	t.Helper()
	ascii, border, clock, placement := config.UseASCIIOnly, config.BorderStyle, config.HideClock, config.Placement
	t.Cleanup(func() {
		config.UseASCIIOnly, config.BorderStyle, config.HideClock, config.Placement = ascii, border, clock, placement
	})
}

const landing = `NewSection "Top"
Add Hero
Add Button Top
SetProp text "Sign up"
ExpectCount 2
ExpectOrder Hero Button
`

func TestPagePlayAndGenerate(t *testing.T) {
	page := NewPage()
	if err := page.Play(landing); err != nil {
		t.Fatalf("Play() error = %v", err)
	}

	code, err := page.Generate(context.Background())
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	for _, want := range []string{"export default function MyPage()", "Sign up"} {
		if !strings.Contains(code, want) {
			t.Errorf("generated code is missing %q:\n%s", want, code)
		}
	}

	if prompt := page.Prompt(); !strings.Contains(prompt, `<Button text="Sign up"`) {
		t.Errorf("prompt = %q", prompt)
	}
	if out := ansi.Strip(page.Render(80)); !strings.Contains(out, "Top") {
		t.Errorf("render is missing the section name:\n%s", out)
	}
}

func TestPagePlayStopsAtFailure(t *testing.T) {
	page := NewPage()
	err := page.Play("NewSection\nAdd Card\nExpectCount 5\nAdd Hero\n")
	if !errors.Is(err, tape.ErrExpectation) {
		t.Fatalf("Play() error = %v, want an expectation failure", err)
	}
	if n := page.Canvas().Len(); n != 1 {
		t.Errorf("Len() = %d, want 1", n)
	}
}

func TestPagePlayRejectsBadScript(t *testing.T) {
	if err := NewPage().Play("Add Carousel\n"); err == nil {
		t.Error("unknown kind accepted")
	}
}

func TestPagePlacement(t *testing.T) {
	page := NewPage(PageWithPlacement(PlacementFreeform))
	if page.Placement() != PlacementFreeform {
		t.Fatalf("Placement() = %q", page.Placement())
	}
	if err := page.Play("NewSection\nAdd Button\nDrag 40 20\n"); err != nil {
		t.Fatal(err)
	}
	code, err := page.Generate(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(code, "translate(40px, 20px)") {
		t.Errorf("freeform code has no offset:\n%s", code)
	}
}

func TestNew(t *testing.T) {
	restoreGlobals(t)
	m := New(
		WithConfig(config.DefaultConfig()),
		WithPlacement(PlacementFreeform),
		WithBorderStyle("double"),
		WithSize(100, 30),
		WithSSHMode(true),
	)
	if m.Placement() != PlacementFreeform {
		t.Errorf("Placement() = %q", m.Placement())
	}
	if config.BorderStyle != "double" {
		t.Errorf("BorderStyle = %q", config.BorderStyle)
	}
	if m.Width != 100 || m.Height != 30 || !m.UseOSC52 {
		t.Errorf("editor = %dx%d osc52=%v", m.Width, m.Height, m.UseOSC52)
	}

	// The input handler is registered by New.
	m.Update(tea.KeyPressMsg{Code: 'S', Text: "S"})
	if m.Canvas().SectionCount() != 1 {
		t.Errorf("SectionCount() = %d, want 1", m.Canvas().SectionCount())
	}
}

type fakePTY struct{ w, h int }

func (p fakePTY) Width() int  { return p.w }
func (p fakePTY) Height() int { return p.h }

func TestNewForPTY(t *testing.T) {
	restoreGlobals(t)
	m := NewForPTY(fakePTY{90, 25}, WithConfig(config.DefaultConfig()))
	if m.Width != 90 || m.Height != 25 {
		t.Errorf("size = %dx%d, want 90x25", m.Width, m.Height)
	}
}

func TestNewWithTape(t *testing.T) {
	restoreGlobals(t)
	commands, err := tape.Parse("NewSection\nAdd Hero\n")
	if err != nil {
		t.Fatal(err)
	}
	m := New(WithConfig(config.DefaultConfig()), WithTape("demo", commands))
	if !m.Playing() || m.PlayerName != "demo" {
		t.Errorf("tape not queued: playing=%v name=%q", m.Playing(), m.PlayerName)
	}
}
