package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
)

const (
	canvasURI          = "pagecraft://canvas"
	sectionURIPrefix   = "pagecraft://section/"
	sectionURISuffix   = "/components"
	sectionURITemplate = sectionURIPrefix + "{sectionId}" + sectionURISuffix
)

func (s *Server) registerResources() {
	// ── pagecraft://canvas ─────────────────────────────
	s.mcp.AddResource(mcp.NewResource(
		canvasURI,
		"Canvas",
		mcp.WithResourceDescription("Sections, components in page order and the current selection"),
		mcp.WithMIMEType("application/json"),
	), s.handleCanvasResource)

	// ── pagecraft://section/{sectionId}/components ─────
	s.mcp.AddResourceTemplate(
		mcp.NewResourceTemplate(
			sectionURITemplate,
			"Components in a Section",
			mcp.WithTemplateMIMEType("application/json"),
		),
		s.handleSectionResource,
	)
}

func (s *Server) handleCanvasResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	s.mu.Lock()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      canvasURI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (s *Server) handleSectionResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	uri := req.Params.URI
	ref := strings.TrimSuffix(strings.TrimPrefix(uri, sectionURIPrefix), sectionURISuffix)
	if ref == "" || ref == uri {
		return nil, fmt.Errorf("could not extract sectionId from URI: %s", uri)
	}

	s.mu.Lock()
	section, err := s.exec.ResolveSection(ref)
	var summaries []componentSummary
	if err == nil {
		for _, comp := range s.canvas.ComponentsInSection(section.ID) {
			summaries = append(summaries, s.summarize(comp))
		}
	}
	s.mu.Unlock()
	if err != nil {
		return nil, err
	}

	data, err := json.MarshalIndent(summaries, "", "  ")
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
