package mcpserver

import (
	"context"
	"fmt"

	"github.com/Gaurav-Gosain/pagecraft/internal/codegen"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerCodeTools() {
	// ── generate_code ──────────────────────────────────
	s.mcp.AddTool(mcp.NewTool("generate_code",
		mcp.WithDescription("Generate the page. 'tsx' renders a React MyPage component with Tailwind classes; 'prompt' returns the description a model needs to write one."),
		mcp.WithString("format",
			mcp.Description("Output format (default: tsx)"),
			mcp.Enum("tsx", "prompt"),
		),
	), s.handleGenerateCode)
}

func (s *Server) handleGenerateCode(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	comps := s.canvas.Components()
	switch format := req.GetString("format", "tsx"); format {
	case "prompt":
		return textResult(codegen.FrontendPrompt(comps)), nil
	case "tsx":
		gen := codegen.ForCanvas(s.canvas, s.exec.Placement() == config.PlacementFreeform)
		code, err := gen.Generate(ctx, comps)
		if err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}
		return textResult(code), nil
	default:
		return nil, fmt.Errorf("unknown format %q", format)
	}
}
