package app

import (
	"fmt"
	"strings"
	"time"

	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/charmbracelet/x/ansi"
)

func (m *Editor) renderOverlays() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	width, height := m.GetRenderWidth(), m.GetRenderHeight()

	if m.ShowHelp {
		layers = append(layers, lipgloss.NewLayer(m.RenderHelpMenu(width, height)).
			X(0).Y(0).Z(config.ZIndexOverlay).ID("help"))
	}

	if m.ShowTapeManager {
		layers = append(layers, lipgloss.NewLayer(m.RenderTapeManager(width, height)).
			X(0).Y(0).Z(config.ZIndexOverlay).ID("tape-manager"))
	}

	if m.ShowCode {
		layers = append(layers, lipgloss.NewLayer(m.renderCodeViewer(width, height)).
			X(0).Y(0).Z(config.ZIndexOverlay).ID("code"))
	}

	if m.ShowLogs {
		layers = append(layers, lipgloss.NewLayer(m.renderLogViewer(width, height)).
			X(0).Y(0).Z(config.ZIndexOverlay+1).ID("logs"))
	}

	if indicator := m.renderTapeIndicator(); indicator != "" {
		layers = append(layers, lipgloss.NewLayer(indicator).
			X(max(width-lipgloss.Width(indicator)-2, 0)).
			Y(height-config.StatusBarHeight-1).
			Z(config.ZIndexNotifications).
			ID("tape-progress"))
	}

	if m.ShowQuitConfirm {
		content, w, h := m.renderQuitConfirmDialog()
		layers = append(layers, lipgloss.NewLayer(content).
			X((width-w)/2).Y((height-h)/2).Z(config.ZIndexNotifications-1).ID("quit-confirm"))
	}

	layers = append(layers, m.renderNotifications()...)
	return layers
}

// RenderHelpMenu renders the key bindings for the current placement mode.
func (m *Editor) RenderHelpMenu(width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.ColorAccent)).
		Bold(true)
	sectionStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.ColorActiveSection)).
		Bold(true)
	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.ColorWarning)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#d1d5db"))

	var columns [][]string
	var current []string
	rowsPerColumn := max(height-10, 8)

	for _, section := range config.GetKeybindings(m.KeybindRegistry) {
		if section.Condition != "" && section.Condition != m.Placement() {
			continue
		}
		block := []string{sectionStyle.Render(section.Title)}
		keyWidth := 0
		for _, b := range section.Bindings {
			keyWidth = max(keyWidth, lipgloss.Width(b.Key))
		}
		for _, b := range section.Bindings {
			pad := strings.Repeat(" ", keyWidth-lipgloss.Width(b.Key)+2)
			block = append(block, keyStyle.Render(b.Key)+pad+descStyle.Render(b.Description))
		}
		block = append(block, "")
		if len(current) > 0 && len(current)+len(block) > rowsPerColumn {
			columns = append(columns, current)
			current = nil
		}
		current = append(current, block...)
	}
	if len(current) > 0 {
		columns = append(columns, current)
	}

	rendered := make([]string, 0, len(columns)*2)
	for i, col := range columns {
		if i > 0 {
			rendered = append(rendered, "    ")
		}
		rendered = append(rendered, strings.Join(col, "\n"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render(fmt.Sprintf("pagecraft · %s placement", m.Placement())),
		"",
		lipgloss.JoinHorizontal(lipgloss.Top, rendered...),
		lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorMuted)).Render("Press ? or esc to close"),
	)

	box := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(lipgloss.Color(config.ColorAccent)).
		Padding(1, 2).
		Background(lipgloss.Color("#1a1a2a")).
		MaxWidth(width).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

func (m *Editor) renderLogViewer(width, height int) string {
	logTitle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.ColorAccent)).
		Bold(true).
		Render("Editor Logs")

	logsPerPage, maxScroll := LogScrollBounds(height, len(m.LogMessages))
	m.LogScrollOffset = max(0, min(m.LogScrollOffset, maxScroll))

	var logLines []string
	logLines = append(logLines, logTitle)
	logLines = append(logLines, "")

	startIdx := m.LogScrollOffset
	displayCount := 0
	lineWidth := config.LogViewerWidth - 6
	for i := startIdx; i < len(m.LogMessages) && displayCount < logsPerPage; i++ {
		msg := m.LogMessages[i]

		var levelColor string
		switch msg.Level {
		case "ERROR":
			levelColor = config.ColorError
		case "WARN":
			levelColor = config.ColorWarning
		default:
			levelColor = "#34d399"
		}

		levelStr := lipgloss.NewStyle().
			Foreground(lipgloss.Color(levelColor)).
			Render(fmt.Sprintf("[%s]", msg.Level))

		logLine := fmt.Sprintf("%s %s %s", msg.Time.Format("15:04:05"), levelStr, msg.Message)
		logLines = append(logLines, ansi.Truncate(logLine, lineWidth, "…"))
		displayCount++
	}

	hint := lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorMuted))
	if maxScroll > 0 {
		logLines = append(logLines, "")
		logLines = append(logLines, hint.Render(fmt.Sprintf("Showing %d-%d of %d logs (↑/↓ to scroll)",
			startIdx+1, startIdx+displayCount, len(m.LogMessages))))
	}

	logLines = append(logLines, "")
	logLines = append(logLines, hint.Render("Press 'q'/'esc' to exit, j/k or ↑/↓ to scroll"))

	logBox := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(lipgloss.Color(config.ColorAccent)).
		Padding(1, 2).
		Width(min(config.LogViewerWidth, width)).
		Background(lipgloss.Color("#1a1a2a")).
		Render(strings.Join(logLines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, logBox)
}

func (m *Editor) renderCodeViewer(width, height int) string {
	perPage, maxScroll := m.CodeScrollBounds()
	m.CodeScrollOffset = max(0, min(m.CodeScrollOffset, maxScroll))

	boxWidth := min(config.CodeViewerWidth, width)
	lineWidth := max(boxWidth-12, 10)
	gutter := lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorMuted))

	code := strings.Split(strings.TrimRight(m.GeneratedCode, "\n"), "\n")
	lines := []string{
		lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorAccent)).Bold(true).Render("Generated page"),
		"",
	}
	end := min(m.CodeScrollOffset+perPage, len(code))
	for i := m.CodeScrollOffset; i < end; i++ {
		lines = append(lines, gutter.Render(fmt.Sprintf("%4d ", i+1))+ansi.Truncate(code[i], lineWidth, "…"))
	}
	lines = append(lines, "")
	hint := fmt.Sprintf("Lines %d-%d of %d · %s copy · esc close",
		m.CodeScrollOffset+1, end, len(code), m.KeybindRegistry.GetKeysForDisplay("copy_code"))
	lines = append(lines, gutter.Render(hint))

	box := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(lipgloss.Color(config.ColorActiveSection)).
		Padding(1, 2).
		Width(boxWidth).
		Background(lipgloss.Color("#1a1a2a")).
		Render(strings.Join(lines, "\n"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// renderTapeIndicator shows playback progress, and the result for a few
// seconds after the tape ends.
func (m *Editor) renderTapeIndicator() string {
	if m.Player == nil {
		return ""
	}
	if !m.PlayerDoneAt.IsZero() && time.Since(m.PlayerDoneAt) > 2*time.Second {
		return ""
	}
	done, total := m.Player.Progress()
	if total == 0 {
		return ""
	}

	bg := "55"
	var status string
	switch {
	case m.Player.Err() != nil:
		bg = "#dc2626"
		status = fmt.Sprintf("FAILED • %d/%d commands", done, total)
	case m.Player.Done():
		status = fmt.Sprintf("DONE • %d/%d commands", total, total)
	default:
		progress := done * 100 / total
		barWidth := 15
		filled := progress * barWidth / 100
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)
		status = fmt.Sprintf("RUNNING • %s %d%% • %d/%d", bar, progress, min(done+1, total), total)
	}

	return lipgloss.NewStyle().
		Foreground(lipgloss.Color("255")).
		Background(lipgloss.Color(bg)).
		Padding(0, 1).
		Render(status)
}

var asciiIcons = map[string]string{"error": "x", "warning": "!", "success": "+", "info": "i"}

func (m *Editor) renderNotifications() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	notifY := 1
	notifSpacing := 4
	for i, notif := range m.Notifications {
		if i >= config.MaxVisibleNotifications {
			break
		}
		if time.Since(notif.StartTime) >= notif.Duration {
			continue
		}

		var bgColor, icon string
		switch notif.Type {
		case "error":
			bgColor, icon = "#dc2626", "✗"
		case "warning":
			bgColor, icon = "#d97706", "!"
		case "success":
			bgColor, icon = "#16a34a", "✓"
		default:
			bgColor, icon = "#2563eb", "i"
		}
		if config.UseASCIIOnly {
			icon = asciiIcons[notif.Type]
		}

		maxNotifWidth := min(max(m.GetRenderWidth()-8, 20), config.MaxNotificationWidth)
		message := ansi.Truncate(notif.Message, maxNotifWidth-10, "...")

		notifBox := lipgloss.NewStyle().
			Background(lipgloss.Color(bgColor)).
			Foreground(lipgloss.Color("#ffffff")).
			Padding(1, 2).
			Bold(true).
			MaxWidth(maxNotifWidth).
			Render(fmt.Sprintf(" %s  %s ", icon, message))

		notifX := max(m.GetRenderWidth()-lipgloss.Width(notifBox)-2, 0)
		layers = append(layers, lipgloss.NewLayer(notifBox).
			X(notifX).Y(notifY+i*notifSpacing).Z(config.ZIndexNotifications).
			ID("notif-"+notif.ID))
	}
	return layers
}

func (m *Editor) renderQuitConfirmDialog() (string, int, int) {
	selectedColor := lipgloss.Color(config.ColorAccent)
	unselectedColor := lipgloss.Color(config.ColorMuted)

	title := lipgloss.NewStyle().
		Foreground(selectedColor).
		Bold(true).
		Render("Quit pagecraft?")

	button := func(label string, selected bool) string {
		style := lipgloss.NewStyle().
			Foreground(unselectedColor).
			Border(lipgloss.NormalBorder()).
			BorderForeground(unselectedColor).
			Padding(0, 1)
		if selected {
			style = style.Foreground(selectedColor).BorderForeground(selectedColor).Bold(true)
		}
		return style.Render(label)
	}

	buttonRow := lipgloss.JoinHorizontal(lipgloss.Center,
		button("yes", m.QuitSelection == 0), "   ", button("no", m.QuitSelection == 1))

	body := []string{title, ""}
	if n := m.Canvas().Len(); n > 0 {
		body = append(body, lipgloss.NewStyle().Foreground(unselectedColor).
			Render(fmt.Sprintf("%d components will be discarded", n)), "")
	}
	body = append(body, buttonRow)

	dialogBox := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(selectedColor).
		Padding(1, 3).
		Render(lipgloss.JoinVertical(lipgloss.Center, body...))

	return dialogBox, lipgloss.Width(dialogBox), lipgloss.Height(dialogBox)
}
