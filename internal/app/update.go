package app

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
)

// TickerMsg represents a periodic tick event for updating the UI.
// This is exported so it can be used by the input package.
type TickerMsg time.Time

// InputHandler is a function type that handles input messages.
// This allows the Update method to delegate to the input package without creating a circular dependency.
type InputHandler func(msg tea.Msg, m *Editor) (tea.Model, tea.Cmd)

// inputHandler is the registered input handler function.
// This will be set by the main package to break the circular dependency.
var inputHandler InputHandler

// SetInputHandler registers the input handler function.
// This must be called during initialization before the Update loop runs.
func SetInputHandler(handler InputHandler) {
	inputHandler = handler
}

// TickCmd creates a command that expires notifications and redraws the clock.
func TickCmd() tea.Cmd {
	return tea.Tick(config.CleanupInterval, func(t time.Time) tea.Msg {
		return TickerMsg(t)
	})
}

// Init starts the tick timer and, when the editor was given a tape, its
// playback.
func (m *Editor) Init() tea.Cmd {
	cmds := []tea.Cmd{TickCmd()}
	if m.Playing() {
		m.LogInfo("Playing %s", m.PlayerName)
		cmds = append(cmds, m.tapeStepCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming messages and updates the editor state.
func (m *Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case TickerMsg:
		m.CleanupNotifications()
		return m, TickCmd()

	case TapeStepMsg:
		return m, m.StepTape(msg)

	case tea.KeyPressMsg, tea.MouseClickMsg, tea.MouseMotionMsg,
		tea.MouseReleaseMsg, tea.MouseWheelMsg, tea.PasteMsg:
		if inputHandler != nil {
			return inputHandler(msg, m)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		// Keep the scroll offset inside the resized document.
		m.ScrollBy(0)
		if m.ShowLogs {
			_, maxScroll := LogScrollBounds(m.Height, len(m.LogMessages))
			m.LogScrollOffset = min(m.LogScrollOffset, maxScroll)
		}
		if m.ShowCode {
			m.ScrollCode(0)
		}
		return m, nil

	case tea.BlurMsg:
		// Releases outside the terminal never arrive.
		if m.Interacting() {
			m.CancelInteraction()
		}
		return m, nil
	}

	return m, nil
}

// FilterMouseMotion drops pointer motion unless a drag or gesture is running.
// Terminals report motion on every cell, and only drags consume it.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	m, ok := model.(*Editor)
	if !ok || m.Interacting() {
		return msg
	}
	return nil
}
