package app

import (
	"errors"
	"fmt"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/tape"
)

// TapeStepMsg asks the editor to run the next tape command.
type TapeStepMsg struct {
	player *tape.Player
}

func (m *Editor) tapeStepCmd() tea.Cmd {
	p := m.Player
	if p == nil {
		return nil
	}
	return tea.Tick(m.StepDelay, func(time.Time) tea.Msg {
		return TapeStepMsg{player: p}
	})
}

// PlayTape starts playing commands against the canvas. A tape that is
// already playing is replaced.
func (m *Editor) PlayTape(name string, commands []tape.Command) tea.Cmd {
	m.Player = tape.NewPlayer(commands)
	m.PlayerName = name
	m.PlayerDoneAt = time.Time{}
	m.ShowNotification("Playing: "+name, "info", config.NotificationDuration)
	return m.tapeStepCmd()
}

// Playing reports whether a tape still has commands to run.
func (m *Editor) Playing() bool {
	return m.Player != nil && !m.Player.Done()
}

// StepTape runs one tape command and returns the command scheduling the
// next one. Steps queued for a replaced or stopped tape are ignored.
func (m *Editor) StepTape(msg TapeStepMsg) tea.Cmd {
	if m.Player == nil || msg.player != m.Player {
		return nil
	}
	if cmd, ok := m.Player.Current(); ok {
		m.LogInfo("tape: %s", cmd)
	}
	more, err := m.Player.Step(tape.NewCommandExecutor(m))
	if err != nil {
		m.noteTapeError(err)
		return nil
	}
	if !more {
		done, total := m.Player.Progress()
		m.PlayerDoneAt = time.Now()
		m.ShowNotification(fmt.Sprintf("%s: played %d/%d commands", m.PlayerName, done, total), "success", config.NotificationDuration)
		return nil
	}
	return m.tapeStepCmd()
}

// StopTape abandons the playing tape.
func (m *Editor) StopTape() {
	if !m.Playing() {
		return
	}
	done, total := m.Player.Progress()
	m.LogWarn("Stopped %s after %d/%d commands", m.PlayerName, done, total)
	m.Player = nil
	m.PlayerName = ""
}

func (m *Editor) noteTapeError(err error) {
	m.PlayerDoneAt = time.Now()
	if errors.Is(err, tape.ErrExpectation) {
		m.ShowNotification(m.PlayerName+": "+err.Error(), "warning", config.ErrorNotificationDuration)
		return
	}
	m.ShowNotification(m.PlayerName+": "+err.Error(), "error", config.ErrorNotificationDuration)
}
