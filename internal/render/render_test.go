package render

import (
	"fmt"
	"strings"
	"testing"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/gesture"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/charmbracelet/x/ansi"
)

func newCanvas() *canvas.Canvas {
	n := 0
	return canvas.New(canvas.WithIDGenerator(func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}))
}

func useCells(t *testing.T, w, h int) {
	t.Helper()
	sw, sh, sp := config.CellWidthPx, config.CellHeightPx, config.Placement
	t.Cleanup(func() {
		config.CellWidthPx, config.CellHeightPx, config.Placement = sw, sh, sp
	})
	config.CellWidthPx, config.CellHeightPx = w, h
}

func TestDescribe(t *testing.T) {
	tests := []struct {
		name      string
		props     catalog.Props
		wantTitle string
		wantBadge string
		wantLine  string
	}{
		{"heading", catalog.HeadingProps{Text: "Main Heading", Level: 1}, "H1", "", "MAIN HEADING"},
		{"small heading", catalog.HeadingProps{Text: "Sub", Level: 4}, "H4", "", "Sub"},
		{"button", catalog.ButtonProps{Text: "Go", Variant: catalog.VariantPrimary}, "Button", "primary", "[ Go ]"},
		{"outline button", catalog.ButtonProps{Text: "Go", Variant: catalog.VariantOutline}, "Button", "outline", "( Go )"},
		{"input", catalog.InputProps{Placeholder: "Email", Type: catalog.InputEmail}, "Input", "email", "▏Email"},
		{"card", catalog.CardProps{Title: "Plan", Description: "Cheap"}, "Card", "", "PLAN"},
		{"hero", catalog.HeroProps{Title: "Hi", CTAText: "Start"}, "Hero", "", "HI"},
		{"section", catalog.SectionProps{Name: "Inner", BackgroundColor: "#000", Padding: "1rem"}, "Section", "#000", "Inner"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := Describe(canvas.Component{Kind: tt.props.Kind(), Props: tt.props}, 40)
			if b.Title != tt.wantTitle || b.Badge != tt.wantBadge {
				t.Errorf("title/badge = %q/%q, want %q/%q", b.Title, b.Badge, tt.wantTitle, tt.wantBadge)
			}
			if len(b.Lines) == 0 || b.Lines[0] != tt.wantLine {
				t.Errorf("first line = %q, want %q", b.Lines, tt.wantLine)
			}
		})
	}
}

func TestDescribeLinksAndWidth(t *testing.T) {
	hero := catalog.HeroProps{
		Title:    "Welcome to a very long headline",
		Subtitle: "sub",
		CTAText:  "Go",
		CTALink:  catalog.Link{Type: catalog.LinkURL, Value: "https://example.com", Target: catalog.TargetBlank},
	}
	b := Describe(canvas.Component{Kind: catalog.Hero, Props: hero}, 12)
	for _, line := range b.Lines {
		if w := ansi.StringWidth(line); w > 12 {
			t.Errorf("line %q is %d wide, want <= 12", line, w)
		}
	}
	last := b.Lines[len(b.Lines)-1]
	if !strings.HasPrefix(last, "→ https") {
		t.Errorf("link line = %q", last)
	}

	section := catalog.ButtonProps{Text: "Top", Link: catalog.Link{Type: catalog.LinkSection, Value: "hero"}}
	b = Describe(canvas.Component{Kind: catalog.Button, Props: section}, 40)
	if b.Lines[1] != "→ #hero" {
		t.Errorf("section link = %q", b.Lines[1])
	}
}

func TestComputeFlow(t *testing.T) {
	useCells(t, 10, 20)
	c := newCanvas()
	s1, _ := c.CreateSection()
	s2, _ := c.CreateSection()
	hero, _ := c.AddComponent(catalog.Hero, canvas.InSection(s1.ID))
	heading, _ := c.AddComponent(catalog.Heading, canvas.InSection(s1.ID))

	l := Compute(c, Options{Width: 80, Placement: config.PlacementFlow})

	if len(l.Sections) != 2 {
		t.Fatalf("sections = %d, want 2", len(l.Sections))
	}
	hb, _ := l.Component(hero.ID)
	if want := uv.Rect(1, 1, 30, 5); hb.Rect != want {
		t.Errorf("hero rect = %v, want %v", hb.Rect, want)
	}
	db, _ := l.Component(heading.ID)
	if want := uv.Rect(1, 6, 30, 5); db.Rect != want {
		t.Errorf("heading rect = %v, want %v", db.Rect, want)
	}
	if db.Index != 1 || db.SectionID != s1.ID {
		t.Errorf("heading box = %+v", db)
	}

	first, _ := l.Section(s1.ID)
	if want := uv.Rect(0, 0, 80, 12); first.Rect != want {
		t.Errorf("first section = %v, want %v", first.Rect, want)
	}
	second, _ := l.Section(s2.ID)
	if second.Rect.Min.Y != 13 || second.Rect.Dy() != 1+config.MinSectionRows+1 {
		t.Errorf("empty section = %v", second.Rect)
	}
	if l.Height() != second.Rect.Max.Y+config.SectionGap {
		t.Errorf("Height() = %d", l.Height())
	}
}

func TestComputeFreeform(t *testing.T) {
	useCells(t, 10, 20)
	c := newCanvas()
	s, _ := c.CreateSection()
	comp, _ := c.AddComponent(catalog.Button, canvas.InSection(s.ID))
	c.UpdateComponent(comp.ID, canvas.ComponentPatch{
		Position: &canvas.Position{X: 100, Y: 40},
		Size:     &canvas.Size{Width: 200, Height: 60},
	})

	flow, _ := Compute(c, Options{Width: 80, Placement: config.PlacementFlow}).Component(comp.ID)
	if want := uv.Rect(1, 1, 20, 3); flow.Rect != want {
		t.Errorf("flow rect = %v, want %v", flow.Rect, want)
	}

	free, _ := Compute(c, Options{Width: 80, Placement: config.PlacementFreeform}).Component(comp.ID)
	if want := uv.Rect(11, 3, 20, 3); free.Rect != want {
		t.Errorf("freeform rect = %v, want %v", free.Rect, want)
	}
}

func TestComputeUnplacedAndScroll(t *testing.T) {
	useCells(t, 10, 20)
	c := newCanvas()
	stray, _ := c.AddComponent(catalog.Input)

	l := Compute(c, Options{Width: 60, Origin: uv.Pos(2, 3), ScrollY: 1})
	if len(l.Sections) != 1 || !l.Sections[0].Unplaced {
		t.Fatalf("sections = %+v, want one unplaced area", l.Sections)
	}
	b, ok := l.Component(stray.ID)
	if !ok || b.SectionID != "" {
		t.Fatalf("stray box = %+v, %v", b, ok)
	}
	if b.Rect.Min != uv.Pos(3, 3) {
		t.Errorf("stray at %v, want (3,3)", b.Rect.Min)
	}
	if _, ok := l.Section(""); ok {
		t.Error("Section(\"\") matched the unplaced area")
	}
}

func TestHitTesting(t *testing.T) {
	useCells(t, 10, 20)
	c := newCanvas()
	s, _ := c.CreateSection()
	a, _ := c.AddComponent(catalog.Heading, canvas.InSection(s.ID))
	b, _ := c.AddComponent(catalog.Button, canvas.InSection(s.ID))
	c.UpdateComponent(a.ID, canvas.ComponentPatch{Position: &canvas.Position{}})
	c.UpdateComponent(b.ID, canvas.ComponentPatch{Position: &canvas.Position{}})
	l := Compute(c, Options{Width: 80, Placement: config.PlacementFreeform})

	if got, ok := l.ComponentAt(uv.Pos(2, 2)); !ok || got.Component.ID != b.ID {
		t.Errorf("ComponentAt overlap = %v, want the later component %s", got.Component.ID, b.ID)
	}
	if _, ok := l.ComponentAt(uv.Pos(70, 2)); ok {
		t.Error("ComponentAt found a component in empty section space")
	}
	if got, ok := l.SectionAt(uv.Pos(70, 2)); !ok || got.Section.ID != s.ID {
		t.Errorf("SectionAt = %v, %v", got.Section.ID, ok)
	}
	if _, ok := l.HeaderAt(uv.Pos(10, 0)); !ok {
		t.Error("HeaderAt missed the header row")
	}
	if _, ok := l.HeaderAt(uv.Pos(10, 2)); ok {
		t.Error("HeaderAt matched a body row")
	}
}

func TestHandleAt(t *testing.T) {
	r := uv.Rect(10, 5, 20, 6)
	tests := []struct {
		p    uv.Position
		want gesture.Handle
		ok   bool
	}{
		{uv.Pos(10, 5), gesture.NorthWest, true},
		{uv.Pos(29, 5), gesture.NorthEast, true},
		{uv.Pos(10, 10), gesture.SouthWest, true},
		{uv.Pos(29, 10), gesture.SouthEast, true},
		{uv.Pos(15, 5), gesture.North, true},
		{uv.Pos(15, 10), gesture.South, true},
		{uv.Pos(10, 7), gesture.West, true},
		{uv.Pos(29, 7), gesture.East, true},
		{uv.Pos(15, 7), 0, false},
		{uv.Pos(30, 7), 0, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d,%d", tt.p.X, tt.p.Y), func(t *testing.T) {
			got, ok := HandleAt(r, tt.p)
			if ok != tt.ok || (ok && got != tt.want) {
				t.Errorf("HandleAt = %v, %v, want %v, %v", got, ok, tt.want, tt.ok)
			}
		})
	}

	if got := NearestCorner(r, uv.Pos(28, 9)); got != gesture.SouthEast {
		t.Errorf("NearestCorner = %v, want se", got)
	}
	if got := NearestCorner(r, uv.Pos(11, 6)); got != gesture.NorthWest {
		t.Errorf("NearestCorner = %v, want nw", got)
	}
}

func TestClip(t *testing.T) {
	content := "abcd\nefgh\nijkl"
	tests := []struct {
		name     string
		origin   uv.Position
		want     string
		wantX    int
		wantY    int
		viewport uv.Rectangle
	}{
		{"inside", uv.Pos(1, 1), content, 1, 1, uv.Rect(0, 0, 10, 10)},
		{"off top", uv.Pos(0, -1), "efgh\nijkl", 0, 0, uv.Rect(0, 0, 10, 10)},
		{"off left", uv.Pos(-2, 0), "cd\ngh\nkl", 0, 0, uv.Rect(0, 0, 10, 10)},
		{"off right", uv.Pos(8, 0), "ab\nef\nij", 8, 0, uv.Rect(0, 0, 10, 10)},
		{"gone", uv.Pos(20, 0), "", 10, 0, uv.Rect(0, 0, 10, 10)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, x, y := Clip(content, tt.origin, tt.viewport)
			if got != tt.want || (got != "" && (x != tt.wantX || y != tt.wantY)) {
				t.Errorf("Clip = %q at (%d,%d), want %q at (%d,%d)", got, x, y, tt.want, tt.wantX, tt.wantY)
			}
		})
	}
}

func TestFrame(t *testing.T) {
	saved := config.UseASCIIOnly
	t.Cleanup(func() { config.UseASCIIOnly = saved })
	config.UseASCIIOnly = true

	out := ansi.Strip(Frame("Hero", "", []string{"WELCOME", "this line is far too long"}, 12, 4, config.GetBorderForStyle(), lipgloss.Color("#ffffff")))
	lines := strings.Split(out, "\n")
	if len(lines) != 4 {
		t.Fatalf("frame has %d lines, want 4:\n%s", len(lines), out)
	}
	for _, line := range lines {
		if w := ansi.StringWidth(line); w != 12 {
			t.Errorf("line %q is %d wide, want 12", line, w)
		}
	}
	if !strings.Contains(lines[0], " Hero ") {
		t.Errorf("title missing from %q", lines[0])
	}
	if lines[1] != "|WELCOME   |" {
		t.Errorf("body line = %q", lines[1])
	}
}

func TestRender(t *testing.T) {
	useCells(t, 10, 20)
	c := newCanvas()
	s, _ := c.CreateSection()
	c.AddComponent(catalog.Hero, canvas.InSection(s.ID))

	out := ansi.Strip(Render(c, 60))
	for _, want := range []string{"Section 1", "Hero", "WELCOME"} {
		if !strings.Contains(out, want) {
			t.Errorf("render is missing %q:\n%s", want, out)
		}
	}
	if got := StatusLine(c); got != "1 sections · 1 components" {
		t.Errorf("StatusLine = %q", got)
	}
}
