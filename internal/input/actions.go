package input

import (
	tea "charm.land/bubbletea/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/app"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
)

// ActionHandler is a function that handles a specific action
type ActionHandler func(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd)

// ActionDispatcher maps action names to handler functions
type ActionDispatcher struct {
	handlers map[string]ActionHandler
}

// NewActionDispatcher creates a new action dispatcher with all handlers registered
func NewActionDispatcher() *ActionDispatcher {
	d := &ActionDispatcher{
		handlers: make(map[string]ActionHandler),
	}
	d.registerHandlers()
	return d
}

// registerHandlers registers all action handlers
func (d *ActionDispatcher) registerHandlers() {
	// Adding
	d.Register("new_section", handleNewSection)
	d.Register("add_hero", makeAddHandler(catalog.Hero))
	d.Register("add_heading", makeAddHandler(catalog.Heading))
	d.Register("add_button", makeAddHandler(catalog.Button))
	d.Register("add_input", makeAddHandler(catalog.Input))
	d.Register("add_card", makeAddHandler(catalog.Card))
	d.Register("add_section", makeAddHandler(catalog.Section))

	// Selection and editing
	d.Register("next_component", makeCycleHandler(1))
	d.Register("prev_component", makeCycleHandler(-1))
	d.Register("next_section", makeCycleSectionHandler(1))
	d.Register("prev_section", makeCycleSectionHandler(-1))
	d.Register("delete", handleDelete)
	d.Register("delete_section", handleDeleteSection)
	d.Register("rename_section", handleRenameSection)
	d.Register("edit_properties", handleEditProperties)
	d.Register("deselect", handleDeselect)
	d.Register("toggle_placement", handleTogglePlacement)
	d.Register("scroll_up", makeScrollHandler(-1))
	d.Register("scroll_down", makeScrollHandler(1))

	// Ordering
	d.Register("move_up", makeMoveHandler(-1))
	d.Register("move_down", makeMoveHandler(1))

	// Geometry
	d.Register("nudge_left", makeNudgeHandler(-config.NudgeStepPx, 0))
	d.Register("nudge_right", makeNudgeHandler(config.NudgeStepPx, 0))
	d.Register("nudge_up", makeNudgeHandler(0, -config.NudgeStepPx))
	d.Register("nudge_down", makeNudgeHandler(0, config.NudgeStepPx))
	d.Register("grow_width", makeGrowHandler(config.NudgeStepPx, 0))
	d.Register("shrink_width", makeGrowHandler(-config.NudgeStepPx, 0))
	d.Register("grow_height", makeGrowHandler(0, config.NudgeStepPx))
	d.Register("shrink_height", makeGrowHandler(0, -config.NudgeStepPx))
	d.Register("reset_geometry", handleResetGeometry)

	// Properties panel
	d.Register("prop_next", makeFieldHandler(1))
	d.Register("prop_prev", makeFieldHandler(-1))
	d.Register("prop_edit", handlePropEdit)
	d.Register("prop_cycle", handlePropCycle)
	d.Register("prop_close", handlePropClose)
	d.Register("prop_cancel", handlePropClose)

	// System
	d.Register("generate_code", handleGenerateCode)
	d.Register("copy_code", handleCopyCode)
	d.Register("toggle_help", handleToggleHelp)
	d.Register("toggle_logs", handleToggleLogs)
	d.Register("toggle_tapes", handleToggleTapes)
	d.Register("quit", handleQuit)
}

// Register adds an action handler
func (d *ActionDispatcher) Register(action string, handler ActionHandler) {
	d.handlers[action] = handler
}

// Dispatch executes the handler for a given action
func (d *ActionDispatcher) Dispatch(action string, msg tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	if handler, ok := d.handlers[action]; ok {
		return handler(msg, m)
	}
	return m, nil
}

// HasAction checks if an action is registered
func (d *ActionDispatcher) HasAction(action string) bool {
	_, ok := d.handlers[action]
	return ok
}

// Global action dispatcher instance
var globalDispatcher = NewActionDispatcher()

// GetDispatcher returns the global action dispatcher
func GetDispatcher() *ActionDispatcher {
	return globalDispatcher
}

// ============================================================================
// Canvas Action Handlers
// ============================================================================

func handleNewSection(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	m.AddSection()
	return m, nil
}

func makeAddHandler(kind catalog.Kind) ActionHandler {
	return func(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
		m.AddKind(kind)
		return m, nil
	}
}

func makeCycleHandler(delta int) ActionHandler {
	return func(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
		m.CycleComponent(delta)
		return m, nil
	}
}

func makeCycleSectionHandler(delta int) ActionHandler {
	return func(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
		m.CycleSection(delta)
		return m, nil
	}
}

func handleDelete(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	m.DeleteSelected()
	return m, nil
}

func handleDeleteSection(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	m.DeleteActiveSection()
	return m, nil
}

func handleRenameSection(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	m.StartRenameSection()
	return m, nil
}

func handleEditProperties(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	m.FocusProperties()
	return m, nil
}

func handleDeselect(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	if m.Interacting() {
		m.CancelInteraction()
		return m, nil
	}
	m.Canvas().ClearComponentSelection()
	return m, nil
}

func handleTogglePlacement(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	m.TogglePlacement()
	return m, nil
}

func makeScrollHandler(dir int) ActionHandler {
	return func(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
		m.ScrollBy(dir * max(m.CanvasRect().Dy()/2, 1))
		return m, nil
	}
}

func makeMoveHandler(delta int) ActionHandler {
	return func(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
		m.MoveSelected(delta)
		return m, nil
	}
}

func makeNudgeHandler(dx, dy int) ActionHandler {
	return func(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
		m.Nudge(dx, dy)
		return m, nil
	}
}

func makeGrowHandler(dw, dh int) ActionHandler {
	return func(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
		m.Grow(dw, dh)
		return m, nil
	}
}

func handleResetGeometry(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	m.ResetGeometry()
	return m, nil
}

// ============================================================================
// Properties Panel Action Handlers
// ============================================================================

func makeFieldHandler(delta int) ActionHandler {
	return func(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
		m.MoveField(delta)
		return m, nil
	}
}

func handlePropEdit(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	if f, ok := m.CurrentField(); ok && len(f.Options) > 0 {
		m.CycleField()
		return m, nil
	}
	m.BeginFieldEdit()
	return m, nil
}

func handlePropCycle(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	m.CycleField()
	return m, nil
}

func handlePropClose(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	m.CloseProperties()
	return m, nil
}

// ============================================================================
// System Action Handlers
// ============================================================================

func handleGenerateCode(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	m.GenerateCode()
	return m, nil
}

func handleCopyCode(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	return m, m.CopyCode()
}

func handleToggleHelp(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	m.ShowHelp = !m.ShowHelp
	return m, nil
}

func handleToggleLogs(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	m.ShowLogs = !m.ShowLogs
	if m.ShowLogs {
		// Open at the newest entries.
		_, m.LogScrollOffset = app.LogScrollBounds(m.Height, len(m.LogMessages))
	}
	return m, nil
}

func handleToggleTapes(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	m.ToggleTapeManager()
	return m, nil
}

func handleQuit(_ tea.KeyPressMsg, m *app.Editor) (*app.Editor, tea.Cmd) {
	if m.Canvas().Len() == 0 && m.Canvas().SectionCount() == 0 {
		return m, tea.Quit
	}
	m.ShowQuitConfirm = true
	m.QuitSelection = 0
	return m, nil
}
