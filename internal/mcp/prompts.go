package mcpserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/pagecraft/internal/codegen"
	"github.com/mark3labs/mcp-go/mcp"
)

func (s *Server) registerPrompts() {
	s.mcp.AddPrompt(mcp.NewPrompt("generate_frontend",
		mcp.WithPromptDescription("Ask for a React + Tailwind MyPage component rendering the current canvas"),
	), s.handleFrontendPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("generate_backend",
		mcp.WithPromptDescription("Ask for an Express POST route and a matching SQL table"),
		mcp.WithArgument("description",
			mcp.ArgumentDescription("What the backend should store, e.g. newsletter signups"),
			mcp.RequiredArgument(),
		),
	), s.handleBackendPrompt)

	s.mcp.AddPrompt(mcp.NewPrompt("assistant",
		mcp.WithPromptDescription("Ask the page building assistant a question about the current page"),
		mcp.WithArgument("message",
			mcp.ArgumentDescription("The question or requested edit"),
			mcp.RequiredArgument(),
		),
	), s.handleAssistantPrompt)
}

func userMessage(text string) mcp.PromptMessage {
	return mcp.PromptMessage{
		Role:    mcp.RoleUser,
		Content: mcp.TextContent{Type: "text", Text: text},
	}
}

func (s *Server) handleFrontendPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	s.mu.Lock()
	comps := s.canvas.Components()
	s.mu.Unlock()

	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Generate a page with %d components", len(comps)),
		Messages:    []mcp.PromptMessage{userMessage(codegen.FrontendPrompt(comps))},
	}, nil
}

func (s *Server) handleBackendPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	description := strings.TrimSpace(req.Params.Arguments["description"])
	if description == "" {
		return nil, fmt.Errorf("description is required")
	}
	return &mcp.GetPromptResult{
		Description: fmt.Sprintf("Generate a backend for: %s", description),
		Messages:    []mcp.PromptMessage{userMessage(codegen.BackendPrompt(description))},
	}, nil
}

func (s *Server) handleAssistantPrompt(ctx context.Context, req mcp.GetPromptRequest) (*mcp.GetPromptResult, error) {
	message := strings.TrimSpace(req.Params.Arguments["message"])
	if message == "" {
		return nil, fmt.Errorf("message is required")
	}

	s.mu.Lock()
	comps := s.canvas.Components()
	s.mu.Unlock()

	var sb strings.Builder
	sb.WriteString(codegen.AssistantInstruction)
	sb.WriteString("\n\n")
	if len(comps) > 0 {
		sb.WriteString("The page currently contains:\n")
		for _, comp := range comps {
			sb.WriteString(codegen.Describe(comp))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}
	sb.WriteString(message)

	return &mcp.GetPromptResult{
		Description: "Page building assistant",
		Messages:    []mcp.PromptMessage{userMessage(sb.String())},
	}, nil
}
