// Package app implements the pagecraft editor model.
//
// The Editor owns one canvas and everything needed to edit it from a
// terminal: gesture state, the properties panel, overlays, notifications
// and the in-app log buffer. Input handling lives in the input package.
package app

import (
	"fmt"
	"time"

	"charm.land/log/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/gesture"
	"github.com/Gaurav-Gosain/pagecraft/internal/logging"
	"github.com/Gaurav-Gosain/pagecraft/internal/tape"
	uv "github.com/charmbracelet/ultraviolet"
	"github.com/google/uuid"
)

// Editor is the Bubble Tea model of the page builder.
type Editor struct {
	*tape.CanvasExecutor

	// Gestures runs pointer move and resize gestures in px.
	Gestures *gesture.Controller
	// DragSession is the palette drop or flow reorder in progress, if any.
	DragSession *canvas.DragSession
	// Pointer is the last pointer cell seen during a drag.
	Pointer uv.Position

	Width   int
	Height  int
	ScrollY int

	Notifications   []Notification
	LogMessages     []LogMessage
	LogScrollOffset int
	ShowLogs        bool
	ShowHelp        bool
	ShowQuitConfirm bool
	QuitSelection   int // 0 = yes, 1 = no

	ShowCode         bool
	GeneratedCode    string
	CodeScrollOffset int

	ShowTapeManager bool
	TapeFiles       []TapeFile
	TapeDir         string
	TapeSelection   int
	Player          *tape.Player
	PlayerName      string
	StepDelay       time.Duration
	PlayerDoneAt    time.Time

	Properties      PropertiesState
	RenamingSection bool
	RenameBuffer    string

	KeybindRegistry *config.KeybindRegistry
	Logger          *log.Logger

	// UseOSC52 copies through the terminal instead of the system clipboard.
	// SSH sessions set it because the server clipboard is not the user's.
	UseOSC52 bool
	// clipboardWrite replaces the system clipboard in tests.
	clipboardWrite func(string) error
	initial        *canvas.Canvas
}

// PropertiesState is the keyboard state of the properties panel.
type PropertiesState struct {
	Focused bool
	Field   int
	Editing bool
	Buffer  string
}

// Notification represents a temporary notification message.
type Notification struct {
	ID        string
	Message   string
	Type      string // "info", "success", "warning", "error"
	StartTime time.Time
	Duration  time.Duration
}

// LogMessage represents a log entry with timestamp and level.
type LogMessage struct {
	Time    time.Time
	Level   string // INFO, WARN, ERROR
	Message string
}

// Option configures an Editor.
type Option func(*Editor)

// WithCanvas edits an existing canvas instead of a new one.
func WithCanvas(c *canvas.Canvas) Option {
	return func(m *Editor) {
		m.initial = c
	}
}

// WithLogger sets the structured logger mirrored by the log buffer.
func WithLogger(l *log.Logger) Option {
	return func(m *Editor) {
		if l != nil {
			m.Logger = l
		}
	}
}

// WithKeybindRegistry sets the key bindings.
func WithKeybindRegistry(r *config.KeybindRegistry) Option {
	return func(m *Editor) {
		if r != nil {
			m.KeybindRegistry = r
		}
	}
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(m *Editor) {
		m.Width, m.Height = width, height
	}
}

// WithOSC52 copies generated code through the terminal.
func WithOSC52(enabled bool) Option {
	return func(m *Editor) {
		m.UseOSC52 = enabled
	}
}

// WithClipboard replaces the system clipboard writer.
func WithClipboard(write func(string) error) Option {
	return func(m *Editor) {
		m.clipboardWrite = write
	}
}

// WithTapeDir lists tapes from dir instead of the data directory.
func WithTapeDir(dir string) Option {
	return func(m *Editor) {
		m.TapeDir = dir
	}
}

// WithTape queues commands to play once the program starts.
func WithTape(name string, commands []tape.Command) Option {
	return func(m *Editor) {
		m.Player = tape.NewPlayer(commands)
		m.PlayerName = name
	}
}

// NewEditor returns an editor over a new canvas unless WithCanvas is given.
func NewEditor(opts ...Option) *Editor {
	m := &Editor{
		Width:     80,
		Height:    24,
		Logger:    logging.Discard(),
		StepDelay: config.TapeStepDelay,
	}
	for _, opt := range opts {
		opt(m)
	}
	c := m.initial
	if c == nil {
		c = canvas.New(canvas.WithEmitter(eventLog{m}))
	}
	m.Gestures = gesture.NewController(c, gesture.ConfiguredLimits())
	m.CanvasExecutor = tape.NewCanvasExecutor(c, m.Gestures, m.Logger)
	if m.KeybindRegistry == nil {
		m.KeybindRegistry = config.NewKeybindRegistry(nil)
	}
	return m
}

// eventLog mirrors canvas changes into the debug log.
type eventLog struct {
	m *Editor
}

func (e eventLog) Emit(event string, data any) {
	e.m.Logger.Debug("canvas event", "event", event, "data", data)
}

func createID() string {
	return uuid.New().String()
}

// LogScrollBounds computes the scrollable range for the log viewer overlay.
// Returns logsPerPage (visible capacity) and maxScroll (maximum scroll offset).
func LogScrollBounds(screenHeight, totalLogs int) (logsPerPage, maxScroll int) {
	maxDisplayHeight := max(screenHeight-8, 8)

	// title, blank, blank, hint
	fixedLines := 4
	if totalLogs > maxDisplayHeight-fixedLines {
		fixedLines = 6
	}
	logsPerPage = max(maxDisplayHeight-fixedLines, 1)
	maxScroll = max(totalLogs-logsPerPage, 0)
	return logsPerPage, maxScroll
}

// Log adds a new log message to the log buffer and the structured log.
func (m *Editor) Log(level, format string, args ...any) {
	message := fmt.Sprintf(format, args...)

	switch level {
	case "ERROR":
		m.Logger.Error(message)
	case "WARN":
		m.Logger.Warn(message)
	default:
		m.Logger.Info(message)
	}

	wasAtBottom := false
	if m.ShowLogs {
		_, maxScroll := LogScrollBounds(m.Height, len(m.LogMessages))
		wasAtBottom = m.LogScrollOffset >= maxScroll-2
	}

	m.LogMessages = append(m.LogMessages, LogMessage{Time: time.Now(), Level: level, Message: message})
	if len(m.LogMessages) > config.MaxLogMessages {
		m.LogMessages = m.LogMessages[len(m.LogMessages)-config.MaxLogMessages:]
	}

	if wasAtBottom && m.ShowLogs {
		_, m.LogScrollOffset = LogScrollBounds(m.Height, len(m.LogMessages))
	}
}

// LogInfo logs an informational message.
func (m *Editor) LogInfo(format string, args ...any) {
	m.Log("INFO", format, args...)
}

// LogWarn logs a warning message.
func (m *Editor) LogWarn(format string, args ...any) {
	m.Log("WARN", format, args...)
}

// LogError logs an error message.
func (m *Editor) LogError(format string, args ...any) {
	m.Log("ERROR", format, args...)
}

// ShowNotification displays a temporary notification and logs it.
func (m *Editor) ShowNotification(message, notifType string, duration time.Duration) {
	m.Notifications = append(m.Notifications, Notification{
		ID:        createID(),
		Message:   message,
		Type:      notifType,
		StartTime: time.Now(),
		Duration:  duration,
	})

	switch notifType {
	case "error":
		m.LogError("%s", message)
	case "warning":
		m.LogWarn("%s", message)
	default:
		m.LogInfo("%s", message)
	}
}

// Notify shows err as an error notification, or message on success.
func (m *Editor) Notify(err error, message string) {
	if err != nil {
		m.ShowNotification(err.Error(), "error", config.ErrorNotificationDuration)
		return
	}
	if message != "" {
		m.ShowNotification(message, "success", config.NotificationDuration)
	}
}

// CleanupNotifications removes expired notifications.
func (m *Editor) CleanupNotifications() {
	now := time.Now()
	var active []Notification
	for _, notif := range m.Notifications {
		if now.Sub(notif.StartTime) < notif.Duration {
			active = append(active, notif)
		}
	}
	m.Notifications = active
}

// HasOverlay reports whether a full screen overlay has the keyboard.
func (m *Editor) HasOverlay() bool {
	return m.ShowHelp || m.ShowLogs || m.ShowCode || m.ShowTapeManager || m.ShowQuitConfirm
}
