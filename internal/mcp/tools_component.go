package mcpserver

import (
	"context"
	"fmt"
	"maps"

	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/gesture"
	"github.com/mark3labs/mcp-go/mcp"
)

func kindNames() []string {
	var names []string
	for _, k := range catalog.Kinds() {
		names = append(names, string(k))
	}
	return names
}

func handleNames() []string {
	var names []string
	for _, h := range gesture.Handles() {
		names = append(names, h.String())
	}
	return names
}

func (s *Server) registerComponentTools() {
	// ── add_component ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("add_component",
		mcp.WithDescription("Add a component with default properties. It lands in the given section, else the active section, else the first section, and becomes the selection."),
		mcp.WithString("type",
			mcp.Description("Component kind"),
			mcp.Required(),
			mcp.Enum(kindNames()...),
		),
		mcp.WithString("sectionId", mcp.Description("Target section id, name or index")),
		mcp.WithNumber("index", mcp.Description("Global position to insert at (default: end)")),
	), s.handleAddComponent)

	// ── update_component_props ─────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_component_props",
		mcp.WithDescription("Update component properties. Given keys replace their values, other keys keep theirs, and the result is validated against the kind's schema."),
		mcp.WithString("componentId",
			mcp.Description("Component id or global index"),
			mcp.Required(),
		),
		mcp.WithObject("props",
			mcp.Description(`Property values, e.g. {"text": "Sign up", "variant": "primary"}`),
			mcp.Required(),
		),
	), s.handleUpdateComponentProps)

	// ── move_component ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("move_component",
		mcp.WithDescription("Move a component to another global position and optionally into another section."),
		mcp.WithString("componentId",
			mcp.Description("Component id or global index"),
			mcp.Required(),
		),
		mcp.WithNumber("toIndex",
			mcp.Description("Target global index"),
			mcp.Required(),
		),
		mcp.WithString("sectionId", mcp.Description("Section to move the component into")),
	), s.handleMoveComponent)

	// ── resize_component ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("resize_component",
		mcp.WithDescription("Resize a component by dragging one of its handles by (dx, dy) px. Sizes never drop below the minimum."),
		mcp.WithString("componentId",
			mcp.Description("Component id or global index"),
			mcp.Required(),
		),
		mcp.WithString("handle",
			mcp.Description("Edge or corner to drag (default: se)"),
			mcp.Enum(handleNames()...),
		),
		mcp.WithNumber("dx", mcp.Description("Horizontal drag in px")),
		mcp.WithNumber("dy", mcp.Description("Vertical drag in px")),
	), s.handleResizeComponent)

	// ── reposition_component ───────────────────────────
	s.mcp.AddTool(mcp.NewTool("reposition_component",
		mcp.WithDescription("Move a component by (dx, dy) px. The position is used under freeform placement."),
		mcp.WithString("componentId",
			mcp.Description("Component id or global index"),
			mcp.Required(),
		),
		mcp.WithNumber("dx", mcp.Description("Horizontal offset in px")),
		mcp.WithNumber("dy", mcp.Description("Vertical offset in px")),
	), s.handleRepositionComponent)

	// ── delete_component ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_component",
		mcp.WithDescription("Delete a component"),
		mcp.WithString("componentId",
			mcp.Description("Component id or global index"),
			mcp.Required(),
		),
	), s.handleDeleteComponent)

	// ── select_component ───────────────────────────────
	s.mcp.AddTool(mcp.NewTool("select_component",
		mcp.WithDescription("Select a component, or clear the selection when componentId is empty"),
		mcp.WithString("componentId", mcp.Description("Component id or global index")),
	), s.handleSelectComponent)

	// ── list_components ────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("list_components",
		mcp.WithDescription("List components in page order with their section and geometry"),
		mcp.WithString("sectionId", mcp.Description("Only list this section's components")),
	), s.handleListComponents)
}

// componentSummary is one row of list_components.
type componentSummary struct {
	Index     int              `json:"index"`
	ID        string           `json:"id"`
	Type      catalog.Kind     `json:"type"`
	SectionID string           `json:"sectionId,omitempty"`
	Unplaced  bool             `json:"unplaced,omitempty"`
	Position  *canvas.Position `json:"position,omitempty"`
	Size      *canvas.Size     `json:"size,omitempty"`
	Props     catalog.Props    `json:"props"`
}

func (s *Server) summarize(comp canvas.Component) componentSummary {
	return componentSummary{
		Index:     s.canvas.IndexOf(comp.ID),
		ID:        comp.ID,
		Type:      comp.Kind,
		SectionID: comp.SectionID,
		Unplaced:  s.canvas.Placement(comp) == "",
		Position:  comp.Position,
		Size:      comp.Size,
		Props:     comp.Props,
	}
}

func (s *Server) handleAddComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kind, err := catalog.ParseKind(req.GetString("type", ""))
	if err != nil {
		return nil, err
	}
	var opts []canvas.AddOption
	if ref := req.GetString("sectionId", ""); ref != "" {
		section, err := s.exec.ResolveSection(ref)
		if err != nil {
			return nil, err
		}
		opts = append(opts, canvas.InSection(section.ID))
	}
	if index := req.GetInt("index", -1); index >= 0 {
		opts = append(opts, canvas.AtIndex(index))
	}

	comp, err := s.canvas.AddComponent(kind, opts...)
	if err != nil {
		return nil, fmt.Errorf("add component: %w", err)
	}
	s.logger.Info("component added", "id", comp.ID, "type", kind, "section", comp.SectionID)
	return jsonResult(s.summarize(comp))
}

func (s *Server) handleUpdateComponentProps(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comp, err := s.componentArg(req)
	if err != nil {
		return nil, err
	}
	patch, ok := req.GetArguments()["props"].(map[string]any)
	if !ok {
		return nil, fmt.Errorf("props must be an object")
	}

	bag := catalog.ToMap(comp.Props)
	maps.Copy(bag, patch)
	props, err := catalog.DecodeProps(comp.Kind, bag)
	if err != nil {
		return nil, err
	}
	if !s.canvas.UpdateComponent(comp.ID, canvas.ComponentPatch{Props: props}) {
		return nil, fmt.Errorf("component %q: %w", comp.ID, canvas.ErrNotFound)
	}
	comp, _ = s.canvas.Component(comp.ID)
	return jsonResult(s.summarize(comp))
}

func (s *Server) handleMoveComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comp, err := s.componentArg(req)
	if err != nil {
		return nil, err
	}
	to := req.GetInt("toIndex", -1)
	if to < 0 || to >= s.canvas.Len() {
		return nil, fmt.Errorf("toIndex %d is out of range 0..%d", to, s.canvas.Len()-1)
	}
	// Every argument is checked before the canvas changes.
	sectionID := ""
	if ref := req.GetString("sectionId", ""); ref != "" {
		section, err := s.exec.ResolveSection(ref)
		if err != nil {
			return nil, err
		}
		sectionID = section.ID
	}

	s.canvas.MoveComponent(s.canvas.IndexOf(comp.ID), to)
	if sectionID != "" {
		s.canvas.UpdateComponent(comp.ID, canvas.ComponentPatch{SectionID: canvas.Str(sectionID)})
	}
	comp, _ = s.canvas.Component(comp.ID)
	return jsonResult(s.summarize(comp))
}

func (s *Server) handleResizeComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comp, err := s.componentArg(req)
	if err != nil {
		return nil, err
	}
	h, err := gesture.ParseHandle(req.GetString("handle", gesture.SouthEast.String()))
	if err != nil {
		return nil, err
	}
	if err := s.gestures.StartResize(comp.ID, h, 0, 0); err != nil {
		return nil, err
	}
	defer s.gestures.End()
	s.gestures.Sample(req.GetInt("dx", 0), req.GetInt("dy", 0))

	comp, _ = s.canvas.Component(comp.ID)
	return jsonResult(s.summarize(comp))
}

func (s *Server) handleRepositionComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comp, err := s.componentArg(req)
	if err != nil {
		return nil, err
	}
	if err := s.gestures.StartMove(comp.ID, 0, 0); err != nil {
		return nil, err
	}
	defer s.gestures.End()
	s.gestures.Sample(req.GetInt("dx", 0), req.GetInt("dy", 0))

	comp, _ = s.canvas.Component(comp.ID)
	return jsonResult(s.summarize(comp))
}

func (s *Server) handleDeleteComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comp, err := s.componentArg(req)
	if err != nil {
		return nil, err
	}
	s.canvas.DeleteComponent(comp.ID)
	s.logger.Info("component deleted", "id", comp.ID)
	return textResult(fmt.Sprintf("Deleted %s %s", comp.Kind, comp.ID)), nil
}

func (s *Server) handleSelectComponent(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if req.GetString("componentId", "") == "" {
		s.canvas.ClearComponentSelection()
		return textResult("Selection cleared"), nil
	}
	comp, err := s.componentArg(req)
	if err != nil {
		return nil, err
	}
	s.canvas.SelectComponent(comp.ID)
	return jsonResult(s.summarize(comp))
}

func (s *Server) handleListComponents(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comps := s.canvas.Components()
	if ref := req.GetString("sectionId", ""); ref != "" {
		section, err := s.exec.ResolveSection(ref)
		if err != nil {
			return nil, err
		}
		comps = s.canvas.ComponentsInSection(section.ID)
	}

	summaries := make([]componentSummary, len(comps))
	for i, comp := range comps {
		summaries[i] = s.summarize(comp)
	}
	return jsonResult(summaries)
}
