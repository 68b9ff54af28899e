package mcpserver

import (
	"encoding/json"
	"fmt"

	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/mark3labs/mcp-go/mcp"
)

// textResult creates a simple text tool result.
func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.TextContent{Type: "text", Text: text},
		},
	}
}

// jsonResult serializes v to JSON and wraps it in a text tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal result: %w", err)
	}
	return textResult(string(data)), nil
}

// snapshot is the JSON shape of the whole canvas.
type snapshot struct {
	Placement         string             `json:"placement"`
	Sections          []canvas.Section   `json:"sections"`
	Components        []canvas.Component `json:"components"`
	Unplaced          []string           `json:"unplaced,omitempty"`
	ActiveComponentID string             `json:"activeComponentId,omitempty"`
	ActiveSectionID   string             `json:"activeSectionId,omitempty"`
}

// snapshotLocked captures the canvas. The caller holds mu.
func (s *Server) snapshotLocked() snapshot {
	snap := snapshot{
		Placement:         s.exec.Placement(),
		Sections:          s.canvas.Sections(),
		Components:        s.canvas.Components(),
		ActiveComponentID: s.canvas.ActiveComponentID(),
		ActiveSectionID:   s.canvas.ActiveSectionID(),
	}
	for _, comp := range s.canvas.Unplaced() {
		snap.Unplaced = append(snap.Unplaced, comp.ID)
	}
	if snap.Sections == nil {
		snap.Sections = []canvas.Section{}
	}
	if snap.Components == nil {
		snap.Components = []canvas.Component{}
	}
	return snap
}

// componentArg resolves the componentId argument, an id or a global index.
func (s *Server) componentArg(req mcp.CallToolRequest) (canvas.Component, error) {
	ref := req.GetString("componentId", "")
	if ref == "" {
		return canvas.Component{}, fmt.Errorf("componentId is required")
	}
	return s.exec.ResolveComponent(ref)
}

// sectionArg resolves the sectionId argument, a name, index or id.
func (s *Server) sectionArg(req mcp.CallToolRequest) (canvas.Section, error) {
	ref := req.GetString("sectionId", "")
	if ref == "" {
		return canvas.Section{}, fmt.Errorf("sectionId is required")
	}
	return s.exec.ResolveSection(ref)
}

// sectionPatch collects the optional section fields present in args.
func sectionPatch(args map[string]any) canvas.SectionPatch {
	var patch canvas.SectionPatch
	str := func(key string) *string {
		if v, ok := args[key].(string); ok {
			return canvas.Str(v)
		}
		return nil
	}
	patch.Name = str("name")
	patch.BackgroundColor = str("backgroundColor")
	patch.Padding = str("padding")
	patch.MinHeight = str("minHeight")
	return patch
}
