// Package input implements pagecraft input handling.
//
// Keys are resolved to actions through the keybinding registry and run by
// the action dispatcher; mouse events drive selection, palette drops,
// reorder drags and move or resize gestures on the editor.
package input

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/app"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
)

// HandleInput is the main input coordinator that routes messages to appropriate handlers
func HandleInput(msg tea.Msg, m *app.Editor) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyPressMsg:
		return HandleKeyPress(msg, m)
	case tea.MouseClickMsg:
		return handleMouseClick(msg, m)
	case tea.MouseMotionMsg:
		return handleMouseMotion(msg, m)
	case tea.MouseReleaseMsg:
		return handleMouseRelease(msg, m)
	case tea.MouseWheelMsg:
		return handleMouseWheel(msg, m)
	case tea.PasteMsg:
		if m.RenamingSection || m.Properties.Editing {
			m.TypeText(strings.Join(strings.Fields(msg.Content), " "))
		}
		return m, nil
	}
	return m, nil
}

// HandleKeyPress handles all keyboard input. Dialogs and overlays take the
// keyboard first, then text buffers, then the properties panel, then the
// editor bindings.
func HandleKeyPress(msg tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	if m.ShowQuitConfirm {
		return handleQuitConfirm(msg, m)
	}

	switch {
	case m.ShowLogs:
		return handleLogViewerKey(msg, m)
	case m.ShowCode:
		return handleCodeViewerKey(msg, m)
	case m.ShowTapeManager:
		return handleTapeManagerKey(msg, m)
	case m.ShowHelp:
		return handleHelpKey(msg, m)
	}

	if m.RenamingSection {
		return handleRenameMode(msg, m)
	}

	if m.Properties.Editing {
		return handleFieldEdit(msg, m)
	}

	key := msg.String()

	// A running tape owns the canvas; esc stops it.
	if m.Playing() && key == "esc" {
		m.StopTape()
		return m, nil
	}

	if m.Properties.Focused {
		if action := m.KeybindRegistry.Lookup(config.ContextProperties, key); action != "" {
			return GetDispatcher().Dispatch(action, msg, m)
		}
		return m, nil
	}

	if action := m.KeybindRegistry.Lookup(config.ContextEditor, key); action != "" {
		return GetDispatcher().Dispatch(action, msg, m)
	}
	return m, nil
}

func handleQuitConfirm(msg tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	switch msg.String() {
	case "esc", "n":
		m.ShowQuitConfirm = false
		m.QuitSelection = 0
	case "left", "h":
		m.QuitSelection = 0
	case "right", "l", "tab":
		m.QuitSelection = 1 - m.QuitSelection
	case "y":
		return m, tea.Quit
	case "enter":
		if m.QuitSelection == 0 {
			return m, tea.Quit
		}
		m.ShowQuitConfirm = false
	}
	return m, nil
}

// handleRenameMode handles keyboard input during section renaming
func handleRenameMode(msg tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.ApplyRename()
	case "esc":
		m.CancelRename()
	case "backspace":
		m.Backspace()
	default:
		if msg.Text != "" {
			m.TypeText(msg.Text)
		}
	}
	return m, nil
}

// handleFieldEdit handles keyboard input while a property value is edited
func handleFieldEdit(msg tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	key := msg.String()
	switch m.KeybindRegistry.Lookup(config.ContextProperties, key) {
	case "prop_cancel", "prop_close":
		m.CancelFieldEdit()
		return m, nil
	}
	switch key {
	case "enter":
		m.ApplyFieldEdit()
	case "backspace":
		m.Backspace()
	default:
		if msg.Text != "" {
			m.TypeText(msg.Text)
		}
	}
	return m, nil
}

func handleHelpKey(msg tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.ShowHelp = false
	}
	return m, nil
}

// handleLogViewerKey handles keyboard input when the log viewer overlay is active.
func handleLogViewerKey(msg tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	key := msg.String()

	if key == "q" || key == "esc" || m.KeybindRegistry.Lookup(config.ContextSystem, key) == "toggle_logs" {
		m.ShowLogs = false
		m.LogScrollOffset = 0
		return m, nil
	}

	logsPerPage, maxScroll := app.LogScrollBounds(m.Height, len(m.LogMessages))
	pageSize := max(logsPerPage/2, 1)

	switch key {
	case "up", "k":
		m.LogScrollOffset = max(m.LogScrollOffset-1, 0)
	case "down", "j":
		m.LogScrollOffset = min(m.LogScrollOffset+1, maxScroll)
	case "pgup", "ctrl+u":
		m.LogScrollOffset = max(m.LogScrollOffset-pageSize, 0)
	case "pgdown", "ctrl+d":
		m.LogScrollOffset = min(m.LogScrollOffset+pageSize, maxScroll)
	case "g", "home":
		m.LogScrollOffset = 0
	case "G", "end":
		m.LogScrollOffset = maxScroll
	}
	return m, nil
}

func handleCodeViewerKey(msg tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	key := msg.String()
	if m.KeybindRegistry.Lookup(config.ContextSystem, key) == "copy_code" {
		return m, m.CopyCode()
	}

	perPage, maxScroll := m.CodeScrollBounds()
	switch key {
	case "q", "esc":
		m.ShowCode = false
	case "up", "k":
		m.ScrollCode(-1)
	case "down", "j":
		m.ScrollCode(1)
	case "pgup", "ctrl+u":
		m.ScrollCode(-max(perPage/2, 1))
	case "pgdown", "ctrl+d", "space":
		m.ScrollCode(max(perPage/2, 1))
	case "g", "home":
		m.CodeScrollOffset = 0
	case "G", "end":
		m.CodeScrollOffset = maxScroll
	}
	return m, nil
}

func handleTapeManagerKey(msg tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	key := msg.String()
	switch key {
	case "up", "k":
		m.TapeManagerSelectPrev()
	case "down", "j":
		m.TapeManagerSelectNext()
	case "enter":
		return m, m.TapeManagerPlaySelected()
	case "r":
		if err := m.RefreshTapeFiles(); err != nil {
			m.Notify(err, "")
		}
	case "q", "esc":
		m.ShowTapeManager = false
	default:
		if m.KeybindRegistry.Lookup(config.ContextSystem, key) == "toggle_tapes" {
			m.ShowTapeManager = false
		}
	}
	return m, nil
}
