package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

func newTestServer(t *testing.T, opts ...Option) *Server {
	t.Helper()
	n := 0
	var mu sync.Mutex
	c := canvas.New(canvas.WithIDGenerator(func(prefix string) string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("%s-%d", prefix, n)
	}))
	return New(append([]Option{WithCanvas(c), WithPlacement(config.PlacementFlow)}, opts...)...)
}

func call(t *testing.T, handler server.ToolHandlerFunc, args map[string]any) string {
	t.Helper()
	text, err := tryCall(handler, args)
	if err != nil {
		t.Fatalf("tool error: %v", err)
	}
	return text
}

func tryCall(handler server.ToolHandlerFunc, args map[string]any) (string, error) {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	res, err := handler(context.Background(), req)
	if err != nil {
		return "", err
	}
	if len(res.Content) == 0 {
		return "", nil
	}
	return res.Content[0].(mcp.TextContent).Text, nil
}

func decode[T any](t *testing.T, text string) T {
	t.Helper()
	var v T
	if err := json.Unmarshal([]byte(text), &v); err != nil {
		t.Fatalf("decode %q: %v", text, err)
	}
	return v
}

type summary struct {
	Index     int              `json:"index"`
	ID        string           `json:"id"`
	Type      catalog.Kind     `json:"type"`
	SectionID string           `json:"sectionId"`
	Unplaced  bool             `json:"unplaced"`
	Position  *canvas.Position `json:"position"`
	Size      *canvas.Size     `json:"size"`
	Props     map[string]any   `json:"props"`
}

func TestResizeScenario(t *testing.T) {
	s := newTestServer(t)

	section := decode[canvas.Section](t, call(t, s.handleCreateSection, map[string]any{"name": "Top"}))
	if section.Name != "Top" {
		t.Errorf("Name = %q, want Top", section.Name)
	}

	hero := decode[summary](t, call(t, s.handleAddComponent, map[string]any{"type": "Hero"}))
	if hero.SectionID != section.ID {
		t.Errorf("SectionID = %q, want %q", hero.SectionID, section.ID)
	}

	resized := decode[summary](t, call(t, s.handleResizeComponent, map[string]any{
		"componentId": hero.ID, "handle": "se", "dx": 50, "dy": 30,
	}))
	if resized.Size == nil || *resized.Size != (canvas.Size{Width: 350, Height: 130}) {
		t.Errorf("Size = %v, want 350x130", resized.Size)
	}
	if s.gestures.Active() {
		t.Error("gesture left running")
	}

	call(t, s.handleDeleteComponent, map[string]any{"componentId": hero.ID})
	if s.canvas.Len() != 0 || s.canvas.SectionCount() != 1 {
		t.Errorf("Len() = %d, SectionCount() = %d", s.canvas.Len(), s.canvas.SectionCount())
	}
	if s.canvas.ActiveComponentID() != "" {
		t.Error("selection not cleared")
	}
}

func TestResizeFloor(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateSection, nil)
	card := decode[summary](t, call(t, s.handleAddComponent, map[string]any{"type": "Card"}))
	resized := decode[summary](t, call(t, s.handleResizeComponent, map[string]any{
		"componentId": card.ID, "handle": "nw", "dx": 5000, "dy": 5000,
	}))
	if resized.Size == nil || resized.Size.Width < 1 || resized.Size.Height < 1 {
		t.Fatalf("Size = %v", resized.Size)
	}
	if resized.Size.Width >= config.DefaultComponentWidth {
		t.Errorf("Width = %d, want shrunk to the floor", resized.Size.Width)
	}
}

func TestReposition(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateSection, nil)
	btn := decode[summary](t, call(t, s.handleAddComponent, map[string]any{"type": "Button"}))
	call(t, s.handleRepositionComponent, map[string]any{"componentId": btn.ID, "dx": 40, "dy": 20})
	moved := decode[summary](t, call(t, s.handleRepositionComponent, map[string]any{"componentId": btn.ID, "dx": -10, "dy": 0}))
	if moved.Position == nil || *moved.Position != (canvas.Position{X: 30, Y: 20}) {
		t.Errorf("Position = %v, want (30, 20)", moved.Position)
	}
}

func TestAddComponentTargeting(t *testing.T) {
	s := newTestServer(t)
	first := decode[canvas.Section](t, call(t, s.handleCreateSection, map[string]any{"name": "A"}))
	second := decode[canvas.Section](t, call(t, s.handleCreateSection, map[string]any{"name": "B"}))

	tests := []struct {
		name        string
		args        map[string]any
		wantSection string
		wantIndex   int
	}{
		{"active section", map[string]any{"type": "Heading"}, second.ID, 0},
		{"by name", map[string]any{"type": "Button", "sectionId": "A"}, first.ID, 1},
		{"by index at position", map[string]any{"type": "Input", "sectionId": "0", "index": 0}, first.ID, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := decode[summary](t, call(t, s.handleAddComponent, tt.args))
			if got.SectionID != tt.wantSection || got.Index != tt.wantIndex {
				t.Errorf("got section %q index %d, want %q %d", got.SectionID, got.Index, tt.wantSection, tt.wantIndex)
			}
		})
	}

	if _, err := tryCall(s.handleAddComponent, map[string]any{"type": "Carousel"}); !errors.Is(err, catalog.ErrInvalidKind) {
		t.Errorf("unknown kind error = %v", err)
	}
}

func TestUpdateComponentProps(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateSection, nil)
	btn := decode[summary](t, call(t, s.handleAddComponent, map[string]any{"type": "Button"}))

	got := decode[summary](t, call(t, s.handleUpdateComponentProps, map[string]any{
		"componentId": btn.ID,
		"props":       map[string]any{"text": "Sign up"},
	}))
	if got.Props["text"] != "Sign up" {
		t.Errorf("text = %v", got.Props["text"])
	}
	if got.Props["variant"] != btn.Props["variant"] {
		t.Errorf("variant changed to %v", got.Props["variant"])
	}

	_, err := tryCall(s.handleUpdateComponentProps, map[string]any{
		"componentId": btn.ID,
		"props":       map[string]any{"variant": "neon"},
	})
	if !errors.Is(err, catalog.ErrInvalidProps) {
		t.Errorf("invalid variant error = %v", err)
	}
	comp, _ := s.canvas.Component(btn.ID)
	if comp.Props.(catalog.ButtonProps).Text != "Sign up" {
		t.Error("rejected update was applied")
	}
}

func TestMoveComponent(t *testing.T) {
	s := newTestServer(t)
	a := decode[canvas.Section](t, call(t, s.handleCreateSection, map[string]any{"name": "A"}))
	call(t, s.handleAddComponent, map[string]any{"type": "Heading"})
	btn := decode[summary](t, call(t, s.handleAddComponent, map[string]any{"type": "Button"}))
	b := decode[canvas.Section](t, call(t, s.handleCreateSection, map[string]any{"name": "B"}))

	got := decode[summary](t, call(t, s.handleMoveComponent, map[string]any{
		"componentId": btn.ID, "toIndex": 0, "sectionId": "B",
	}))
	if got.Index != 0 || got.SectionID != b.ID {
		t.Errorf("got index %d section %q, want 0 %q", got.Index, got.SectionID, b.ID)
	}
	if n := len(s.canvas.ComponentsInSection(a.ID)); n != 1 {
		t.Errorf("section A has %d components, want 1", n)
	}

	if _, err := tryCall(s.handleMoveComponent, map[string]any{"componentId": btn.ID, "toIndex": 9}); err == nil {
		t.Error("out of range move accepted")
	}
}

func TestMoveComponentRejectsUnknownSection(t *testing.T) {
	s := newTestServer(t)
	top := decode[canvas.Section](t, call(t, s.handleCreateSection, map[string]any{"name": "Top"}))
	btn := decode[summary](t, call(t, s.handleAddComponent, map[string]any{"type": "Button"}))
	call(t, s.handleAddComponent, map[string]any{"type": "Heading"})

	if _, err := tryCall(s.handleMoveComponent, map[string]any{
		"componentId": btn.ID, "toIndex": 1, "sectionId": "nope",
	}); err == nil {
		t.Fatal("unknown section accepted")
	}

	var kinds []string
	for _, c := range s.canvas.Components() {
		kinds = append(kinds, string(c.Kind))
	}
	if !slices.Equal(kinds, []string{"Button", "Heading"}) {
		t.Errorf("order after failed move = %v, want [Button Heading]", kinds)
	}
	if got, _ := s.canvas.Component(btn.ID); got.SectionID != top.ID {
		t.Errorf("button section = %q, want %q", got.SectionID, top.ID)
	}
}

func TestDeleteSectionUnplaces(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateSection, map[string]any{"name": "Doomed"})
	card := decode[summary](t, call(t, s.handleAddComponent, map[string]any{"type": "Card"}))

	text := call(t, s.handleDeleteSection, map[string]any{"sectionId": "Doomed"})
	if !strings.Contains(text, "1 component(s) are now unplaced") {
		t.Errorf("result = %q", text)
	}

	list := decode[[]summary](t, call(t, s.handleListComponents, nil))
	if len(list) != 1 || list[0].ID != card.ID || !list[0].Unplaced {
		t.Errorf("list = %+v", list)
	}
}

func TestSelectComponent(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateSection, nil)
	first := decode[summary](t, call(t, s.handleAddComponent, map[string]any{"type": "Heading"}))
	call(t, s.handleAddComponent, map[string]any{"type": "Button"})

	call(t, s.handleSelectComponent, map[string]any{"componentId": "0"})
	if s.canvas.ActiveComponentID() != first.ID {
		t.Errorf("ActiveComponentID() = %q, want %q", s.canvas.ActiveComponentID(), first.ID)
	}
	call(t, s.handleSelectComponent, nil)
	if s.canvas.ActiveComponentID() != "" {
		t.Error("selection not cleared")
	}
	if _, err := tryCall(s.handleSelectComponent, map[string]any{"componentId": "nope"}); err == nil {
		t.Error("unknown component accepted")
	}
}

func TestUpdateSection(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateSection, nil)
	got := decode[canvas.Section](t, call(t, s.handleUpdateSection, map[string]any{
		"sectionId": "0", "padding": "3rem",
	}))
	if got.Padding != "3rem" || got.Name != "Section 1" {
		t.Errorf("section = %+v", got)
	}
	if _, err := tryCall(s.handleUpdateSection, map[string]any{"padding": "1rem"}); err == nil {
		t.Error("missing sectionId accepted")
	}
}

func TestGenerateCode(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateSection, nil)
	call(t, s.handleAddComponent, map[string]any{"type": "Heading"})

	tsx := call(t, s.handleGenerateCode, nil)
	if !strings.Contains(tsx, "export default function MyPage()") {
		t.Errorf("tsx = %q", tsx)
	}
	prompt := call(t, s.handleGenerateCode, map[string]any{"format": "prompt"})
	if !strings.Contains(prompt, "<Heading") {
		t.Errorf("prompt = %q", prompt)
	}
	if _, err := tryCall(s.handleGenerateCode, map[string]any{"format": "vue"}); err == nil {
		t.Error("unknown format accepted")
	}
}

func TestCanvasResource(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateSection, map[string]any{"name": "Top"})
	call(t, s.handleAddComponent, map[string]any{"type": "Hero"})

	var req mcp.ReadResourceRequest
	req.Params.URI = canvasURI
	contents, err := s.handleCanvasResource(context.Background(), req)
	if err != nil {
		t.Fatalf("read resource: %v", err)
	}
	snap := decode[struct {
		Placement  string           `json:"placement"`
		Sections   []canvas.Section `json:"sections"`
		Components []summary        `json:"components"`
	}](t, contents[0].(mcp.TextResourceContents).Text)
	if snap.Placement != config.PlacementFlow || len(snap.Sections) != 1 || len(snap.Components) != 1 {
		t.Errorf("snapshot = %+v", snap)
	}

	req.Params.URI = sectionURIPrefix + "Top" + sectionURISuffix
	contents, err = s.handleSectionResource(context.Background(), req)
	if err != nil {
		t.Fatalf("read section resource: %v", err)
	}
	if comps := decode[[]summary](t, contents[0].(mcp.TextResourceContents).Text); len(comps) != 1 {
		t.Errorf("section components = %+v", comps)
	}
}

func TestPrompts(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateSection, nil)
	call(t, s.handleAddComponent, map[string]any{"type": "Button"})

	text := func(res *mcp.GetPromptResult) string {
		return res.Messages[0].Content.(mcp.TextContent).Text
	}

	var req mcp.GetPromptRequest
	res, err := s.handleFrontendPrompt(context.Background(), req)
	if err != nil || !strings.Contains(text(res), "<Button") {
		t.Errorf("frontend prompt = %v, %v", res, err)
	}

	req.Params.Arguments = map[string]string{"description": "newsletter signups"}
	res, err = s.handleBackendPrompt(context.Background(), req)
	if err != nil || !strings.Contains(text(res), "newsletter signups") {
		t.Errorf("backend prompt = %v, %v", res, err)
	}

	req.Params.Arguments = map[string]string{"message": "Make it pop"}
	res, err = s.handleAssistantPrompt(context.Background(), req)
	if err != nil || !strings.Contains(text(res), "no-code website builder") || !strings.HasSuffix(text(res), "Make it pop") {
		t.Errorf("assistant prompt = %v, %v", res, err)
	}

	req.Params.Arguments = nil
	if _, err := s.handleAssistantPrompt(context.Background(), req); err == nil {
		t.Error("empty message accepted")
	}
}

func TestConcurrentToolCalls(t *testing.T) {
	s := newTestServer(t)
	call(t, s.handleCreateSection, nil)

	const n = 20
	var wg sync.WaitGroup
	for range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := tryCall(s.handleAddComponent, map[string]any{"type": "Card"}); err != nil {
				t.Errorf("add: %v", err)
			}
		}()
	}
	wg.Wait()

	if s.canvas.Len() != n {
		t.Fatalf("Len() = %d, want %d", s.canvas.Len(), n)
	}
	seen := make(map[string]bool)
	for _, comp := range s.canvas.Components() {
		if seen[comp.ID] {
			t.Errorf("duplicate id %s", comp.ID)
		}
		seen[comp.ID] = true
	}
}
