package tape

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/adrg/xdg"
)

func newExecutor() *CanvasExecutor {
	n := 0
	c := canvas.New(canvas.WithIDGenerator(func(prefix string) string {
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}))
	return NewCanvasExecutor(c, nil, nil)
}

func run(t *testing.T, ex *CanvasExecutor, script string) error {
	t.Helper()
	commands, err := Parse(script)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	return NewCommandExecutor(ex).Run(commands)
}

func TestLexer(t *testing.T) {
	l := New("NewSection \"Hero area\" # first\n  Drag -10 20\n\"open")
	want := []struct {
		typ     TokenType
		literal string
		line    int
	}{
		{TokenIdent, "NewSection", 1},
		{TokenString, "Hero area", 1},
		{TokenNewline, "\n", 1},
		{TokenIdent, "Drag", 2},
		{TokenNumber, "-10", 2},
		{TokenNumber, "20", 2},
		{TokenNewline, "\n", 2},
		{TokenIllegal, "\"open", 3},
		{TokenEOF, "", 3},
	}
	for i, w := range want {
		tok := l.NextToken()
		if tok.Type != w.typ || tok.Literal != w.literal || tok.Line != w.line {
			t.Fatalf("token %d = %v %q line %d, want %v %q line %d", i, tok.Type, tok.Literal, tok.Line, w.typ, w.literal, w.line)
		}
	}
}

func TestParse(t *testing.T) {
	commands, err := Parse(`
# build a landing page
newsection "Landing"
Add hero
Resize SE 50 30
ExpectOrder Hero
`)
	if err != nil {
		t.Fatalf("Parse() error: %v", err)
	}
	var got []string
	for _, cmd := range commands {
		got = append(got, cmd.String())
	}
	want := []string{"NewSection Landing", "Add hero", "Resize SE 50 30", "ExpectOrder Hero"}
	if !slices.Equal(got, want) {
		t.Errorf("commands = %q, want %q", got, want)
	}
	if commands[2].Line != 5 {
		t.Errorf("Resize line = %d, want 5", commands[2].Line)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{"unknown command", "Explode", `unknown command "Explode"`},
		{"missing args", "Reorder 1", "at least 2"},
		{"extra args", "Deselect now", "at most 0"},
		{"not a number", "Drag left 3", `"left" is not a number`},
		{"bad kind", "Add Carousel", "invalid component kind"},
		{"bad handle", "Resize up 1 1", "unknown resize handle"},
		{"bad placement", "Placement grid", "placement must be"},
		{"unterminated", `RenameSection "oops`, "unterminated string"},
		{"number first", "42", "expected a command"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParser(New(tt.script))
			if cmds := p.Parse(); len(cmds) != 0 {
				t.Errorf("Parse() kept %v", cmds)
			}
			errs := p.Errors()
			if len(errs) != 1 || !strings.Contains(errs[0].Error(), tt.want) {
				t.Errorf("Errors() = %v, want one containing %q", errs, tt.want)
			}
		})
	}
}

func TestHeroResizeScenario(t *testing.T) {
	ex := newExecutor()
	err := run(t, ex, `
NewSection
Add Hero
Select 0
Resize se 50 30
ExpectSize 350 130
Delete
ExpectSections 1
ExpectCount 0
ExpectNoSelection
`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}
}

func TestSectionsAndOrder(t *testing.T) {
	ex := newExecutor()
	err := run(t, ex, `
NewSection "Top"
NewSection "Bottom"
SelectSection Top
Add Heading
Add Button Bottom
Insert Card 0 1
ExpectOrder Card Heading Button
Reorder 0 2
ExpectOrder Heading Button Card
Select 2
Assign Top
DeleteSection Top
ExpectUnplaced 2
ExpectSections 1
`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}
	c := ex.Canvas()
	if s, ok := c.SectionByName("Bottom"); !ok || len(c.ComponentsInSection(s.ID)) != 1 {
		t.Errorf("Bottom members = %v", c.ComponentsInSection(s.ID))
	}
}

func TestDragAndProps(t *testing.T) {
	ex := newExecutor()
	err := run(t, ex, `
Placement freeform
NewSection
Drop Button 0
Drag 30 -20
Drag 5 5
ExpectPosition 35 -15
SetProp text "Buy now"
SetProp link.type url
ExpectProp text "Buy now"
ExpectProp link.type url
ExpectSelected button
`)
	if err != nil {
		t.Fatalf("script failed: %v", err)
	}
	if ex.Placement() != "freeform" {
		t.Errorf("Placement() = %q", ex.Placement())
	}
}

func TestExecuteErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   error
	}{
		{"failed expectation", "ExpectCount 2", ErrExpectation},
		{"no selection", "NewSection\nDrag 1 1", ErrNoSelection},
		{"unknown section", "Add Hero Nowhere", ErrUnknownSection},
		{"unknown component", "Select 9", ErrUnknownComponent},
		{"out of range", "NewSection\nAdd Hero\nReorder 0 4", ErrRejected},
		{"drop without sections", "Drop Hero 0", ErrUnknownSection},
		{"bad property", "NewSection\nAdd Hero\nSetProp color red", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := run(t, newExecutor(), tt.script)
			if err == nil {
				t.Fatal("script succeeded, want an error")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("error = %v, want %v", err, tt.want)
			}
			if !strings.HasPrefix(err.Error(), "line ") {
				t.Errorf("error %q does not name the line", err)
			}
		})
	}
}

func TestPlayer(t *testing.T) {
	commands, _ := Parse("NewSection\nAdd Hero\nExpectCount 5\nAdd Card")
	ex := newExecutor()
	ce := NewCommandExecutor(ex)
	p := NewPlayer(commands)

	for range 2 {
		more, err := p.Step(ce)
		if err != nil || !more {
			t.Fatalf("Step() = %v, %v", more, err)
		}
	}
	if done, total := p.Progress(); done != 2 || total != 4 {
		t.Errorf("Progress() = %d/%d", done, total)
	}
	if more, err := p.Step(ce); more || !errors.Is(err, ErrExpectation) {
		t.Errorf("failing Step() = %v, %v", more, err)
	}
	if !p.Done() || p.Err() == nil {
		t.Error("player kept going after a failure")
	}
	if ex.Canvas().Len() != 1 {
		t.Errorf("commands after the failure ran: %d components", ex.Canvas().Len())
	}
}

func TestTapeFiles(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	xdg.Reload()
	t.Cleanup(xdg.Reload)

	dir, err := Directory()
	if err != nil {
		t.Fatalf("Directory() error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "demo.tape"), []byte("NewSection\nAdd Hero\n"), 0600); err != nil {
		t.Fatal(err)
	}

	names, err := List()
	if err != nil || !slices.Equal(names, []string{"demo"}) {
		t.Fatalf("List() = %v, %v", names, err)
	}
	path, err := Resolve("demo")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	commands, err := Load(path)
	if err != nil || len(commands) != 2 {
		t.Errorf("Load() = %v, %v", commands, err)
	}
	if _, err := Resolve("missing"); err == nil {
		t.Error("Resolve(missing) succeeded")
	}
}
