package mcpserver

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerSectionTools() {
	// ── create_section ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("create_section",
		mcp.WithDescription("Append a new section to the page and make it the active section. New components land in the active section."),
		mcp.WithString("name", mcp.Description("Section name (default: Section N)")),
		mcp.WithString("backgroundColor", mcp.Description("CSS background color, e.g. #0f172a")),
		mcp.WithString("padding", mcp.Description("CSS padding, e.g. 2rem")),
		mcp.WithString("minHeight", mcp.Description("CSS min-height, e.g. 200px")),
	), s.handleCreateSection)

	// ── update_section ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("update_section",
		mcp.WithDescription("Change the name or style of a section. Only the given fields change."),
		mcp.WithString("sectionId",
			mcp.Description("Section id, name or index"),
			mcp.Required(),
		),
		mcp.WithString("name", mcp.Description("New name")),
		mcp.WithString("backgroundColor", mcp.Description("CSS background color")),
		mcp.WithString("padding", mcp.Description("CSS padding")),
		mcp.WithString("minHeight", mcp.Description("CSS min-height")),
	), s.handleUpdateSection)

	// ── delete_section ─────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("delete_section",
		mcp.WithDescription("Delete a section. Its components stay on the page as unplaced components."),
		mcp.WithString("sectionId",
			mcp.Description("Section id, name or index"),
			mcp.Required(),
		),
	), s.handleDeleteSection)
}

func (s *Server) handleCreateSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	section, err := s.canvas.CreateSection()
	if err != nil {
		return nil, fmt.Errorf("create section: %w", err)
	}
	s.canvas.UpdateSection(section.ID, sectionPatch(req.GetArguments()))
	s.canvas.SelectSection(section.ID)
	section, _ = s.canvas.Section(section.ID)
	s.logger.Info("section created", "id", section.ID, "name", section.Name)
	return jsonResult(section)
}

func (s *Server) handleUpdateSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	section, err := s.sectionArg(req)
	if err != nil {
		return nil, err
	}
	s.canvas.UpdateSection(section.ID, sectionPatch(req.GetArguments()))
	section, _ = s.canvas.Section(section.ID)
	return jsonResult(section)
}

func (s *Server) handleDeleteSection(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	section, err := s.sectionArg(req)
	if err != nil {
		return nil, err
	}
	orphans := len(s.canvas.ComponentsInSection(section.ID))
	s.canvas.DeleteSection(section.ID)
	s.logger.Info("section deleted", "id", section.ID, "unplaced", orphans)
	if orphans > 0 {
		return textResult(fmt.Sprintf("Deleted %s; %d component(s) are now unplaced", section.Name, orphans)), nil
	}
	return textResult(fmt.Sprintf("Deleted %s", section.Name)), nil
}
