package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/codegen"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/atotto/clipboard"
)

const generateTimeout = 5 * time.Second

// Generate renders the current page as a React component.
func (m *Editor) Generate() (string, error) {
	ctx, cancel := context.WithTimeout(context.Background(), generateTimeout)
	defer cancel()
	gen := codegen.ForCanvas(m.Canvas(), m.Freeform())
	return gen.Generate(ctx, m.Canvas().Components())
}

// GenerateCode regenerates the page and opens the code viewer.
func (m *Editor) GenerateCode() {
	code, err := m.Generate()
	if err != nil {
		m.Notify(fmt.Errorf("generate: %w", err), "")
		return
	}
	m.GeneratedCode = code
	m.CodeScrollOffset = 0
	m.ShowCode = true
	m.LogInfo("Generated %d lines for %d components", strings.Count(code, "\n"), m.Canvas().Len())
}

// CopyCode regenerates the page and copies it. The system clipboard is
// used unless the editor runs remotely, in which case the terminal is
// asked to copy through OSC 52.
func (m *Editor) CopyCode() tea.Cmd {
	code, err := m.Generate()
	if err != nil {
		m.Notify(fmt.Errorf("generate: %w", err), "")
		return nil
	}
	m.GeneratedCode = code
	lines := strings.Count(code, "\n")

	if m.UseOSC52 {
		m.ShowNotification(fmt.Sprintf("Copied %d lines", lines), "success", config.NotificationDuration)
		return tea.SetClipboard(code)
	}

	write := m.clipboardWrite
	if write == nil {
		write = clipboard.WriteAll
	}
	if err := write(code); err != nil {
		m.LogWarn("System clipboard unavailable, using OSC 52: %v", err)
		m.ShowNotification(fmt.Sprintf("Copied %d lines", lines), "success", config.NotificationDuration)
		return tea.SetClipboard(code)
	}
	m.ShowNotification(fmt.Sprintf("Copied %d lines", lines), "success", config.NotificationDuration)
	return nil
}

// CodeScrollBounds returns the visible line count and the largest scroll
// offset of the code viewer.
func (m *Editor) CodeScrollBounds() (perPage, maxScroll int) {
	perPage = max(m.GetRenderHeight()-10, 1)
	total := len(strings.Split(strings.TrimRight(m.GeneratedCode, "\n"), "\n"))
	return perPage, max(total-perPage, 0)
}

// ScrollCode scrolls the code viewer by delta lines.
func (m *Editor) ScrollCode(delta int) {
	_, maxScroll := m.CodeScrollBounds()
	m.CodeScrollOffset = max(0, min(m.CodeScrollOffset+delta, maxScroll))
}
