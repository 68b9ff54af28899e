package app

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/render"
	"github.com/charmbracelet/x/ansi"
)

// GetCanvas composes the whole screen: palette, canvas, properties panel,
// status bar and, when render is set, the overlays.
func (m *Editor) GetCanvas(render bool) *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(m.GetRenderWidth(), m.GetRenderHeight())

	layers := m.canvasLayers()
	if layer := m.renderPalette(); layer != nil {
		layers = append(layers, layer)
	}
	if layer := m.renderProperties(); layer != nil {
		layers = append(layers, layer)
	}
	if layer := m.renderDragGhost(); layer != nil {
		layers = append(layers, layer)
	}
	layers = append(layers, m.renderStatusBar())

	if render {
		layers = append(layers, m.renderOverlays()...)
	}

	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

func (m *Editor) canvasLayers() []*lipgloss.Layer {
	c := m.Canvas()
	st := render.State{
		ActiveComponentID: c.ActiveComponentID(),
		ActiveSectionID:   c.ActiveSectionID(),
		Viewport:          m.CanvasRect(),
	}
	switch {
	case m.DragSession != nil:
		st.DropSectionID = m.DragSession.HoverSection()
		st.DraggingID = m.DragSession.ComponentID()
	case m.Gestures.Active():
		st.DraggingID = m.Gestures.ComponentID()
	}

	l := m.Layout()
	layers := render.Layers(l, st)
	if len(l.Sections) == 0 {
		r := m.CanvasRect()
		hint := lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorMuted)).
			Render(fmt.Sprintf("Press %s to add a section", m.KeybindRegistry.GetKeysForDisplay("new_section")))
		layers = append(layers, lipgloss.NewLayer(lipgloss.Place(r.Dx(), r.Dy(), lipgloss.Center, lipgloss.Center, hint)).
			X(r.Min.X).Y(r.Min.Y).Z(config.ZIndexSection).ID("empty-hint"))
	}
	return layers
}

func (m *Editor) renderPalette() *lipgloss.Layer {
	r := m.PaletteRect()
	if r.Empty() {
		return nil
	}
	entries := catalog.Default().Entries()
	lines := make([]string, 0, len(entries)+2)
	name := lipgloss.NewStyle().Foreground(lipgloss.Color("#e2e8f0"))
	for _, e := range entries {
		icon := e.Icon
		if config.UseASCIIOnly {
			icon = e.IconASCII
		}
		lines = append(lines, " "+icon+" "+name.Render(e.Name))
	}
	lines = append(lines, "")
	hint := lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorMuted))
	lines = append(lines, hint.Render(" drag onto a section"))

	color := lipgloss.Color(config.ColorSection)
	if m.DragSession != nil && m.DragSession.IsNew() {
		color = lipgloss.Color(config.ColorAccent)
	}
	content := render.Frame("Components", "", lines, r.Dx(), r.Dy(), config.GetBorderForStyle(), color)
	return lipgloss.NewLayer(content).X(r.Min.X).Y(r.Min.Y).Z(config.ZIndexPanels).ID("palette")
}

func (m *Editor) renderProperties() *lipgloss.Layer {
	r := m.PropertiesRect()
	if r.Empty() {
		return nil
	}
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorMuted))
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorActiveSection))
	cursor := lipgloss.NewStyle().Foreground(lipgloss.Color("#0f172a")).Background(lipgloss.Color(config.ColorAccent))
	inner := r.Dx() - 2

	title, fields, ok := m.PropertyFields()
	var lines []string
	if !ok {
		lines = append(lines, muted.Render(" Nothing selected"))
	} else {
		for i, f := range fields {
			value := f.Value
			if m.Properties.Editing && i == m.Properties.Field {
				value = m.Properties.Buffer + "█"
			}
			if len(f.Options) > 0 {
				value = "‹" + value + "›"
			}
			line := " " + keyStyle.Render(f.Key) + " " + value
			if m.Properties.Focused && i == m.Properties.Field {
				line = cursor.Render(ansi.Truncate(" "+f.Key+" "+value, inner, "…"))
			}
			lines = append(lines, line)
		}
		if comp, ok := m.Canvas().ActiveComponent(); ok {
			lines = append(lines, "")
			place := "flow"
			if comp.Position != nil {
				place = fmt.Sprintf("x %d  y %d", comp.Position.X, comp.Position.Y)
			}
			size := "auto"
			if comp.Size != nil {
				size = fmt.Sprintf("%d×%d", comp.Size.Width, comp.Size.Height)
			}
			lines = append(lines, muted.Render(" at "+place), muted.Render(" size "+size))
			if m.Canvas().IsStale(comp) {
				lines = append(lines, lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorWarning)).Render(" unplaced"))
			}
		}
	}

	color := lipgloss.Color(config.ColorSection)
	if m.Properties.Focused {
		color = lipgloss.Color(config.ColorAccent)
	}
	content := render.Frame("Properties", title, lines, r.Dx(), r.Dy(), config.GetBorderForStyle(), color)
	return lipgloss.NewLayer(content).X(r.Min.X).Y(r.Min.Y).Z(config.ZIndexPanels).ID("properties")
}

// renderDragGhost draws the dragged kind next to the pointer.
func (m *Editor) renderDragGhost() *lipgloss.Layer {
	d := m.DragSession
	if d == nil {
		return nil
	}
	label := "+ " + string(d.Kind())
	if !d.IsNew() {
		label = "↕ " + string(d.Kind())
		if i := d.HoverIndex(); i >= 0 {
			label += fmt.Sprintf(" → %d", i+1)
		}
	}
	color := lipgloss.Color(config.ColorMuted)
	if d.HoverSection() != "" {
		color = lipgloss.Color(config.ColorDropTarget)
	}
	ghost := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#0f172a")).
		Background(color).
		Padding(0, 1).
		Render(label)
	x := min(m.Pointer.X+1, max(m.GetRenderWidth()-lipgloss.Width(ghost), 0))
	return lipgloss.NewLayer(ghost).X(x).Y(m.Pointer.Y).Z(config.ZIndexOverlay).ID("drag-ghost")
}

func (m *Editor) renderStatusBar() *lipgloss.Layer {
	r := m.StatusRect()
	bar := lipgloss.NewStyle().Background(lipgloss.Color("#1e293b")).Foreground(lipgloss.Color("#e2e8f0"))
	badge := lipgloss.NewStyle().Bold(true).Padding(0, 1).
		Foreground(lipgloss.Color("#0f172a")).Background(lipgloss.Color(config.ColorActiveSection))

	left := badge.Render(strings.ToUpper(m.Placement()))
	switch {
	case m.RenamingSection:
		left += bar.Render(" Rename section: " + m.RenameBuffer + "█")
	case m.Playing():
		done, total := m.Player.Progress()
		left += bar.Render(fmt.Sprintf(" ▶ %s %d/%d", m.PlayerName, done, total))
	default:
		left += bar.Render(" " + render.StatusLine(m.Canvas()))
		if s, ok := m.Canvas().ActiveSection(); ok {
			left += bar.Render(" · " + s.Name)
		}
	}

	right := bar.Render(m.KeybindRegistry.GetKeysForDisplay("toggle_help") + " help ")
	if !config.HideClock {
		right += bar.Render(time.Now().Format("15:04:05") + " ")
	}

	gap := max(r.Dx()-lipgloss.Width(left)-lipgloss.Width(right), 0)
	line := ansi.Truncate(left+bar.Render(strings.Repeat(" ", gap))+right, r.Dx(), "")
	return lipgloss.NewLayer(line).X(r.Min.X).Y(r.Min.Y).Z(config.ZIndexPanels).ID("status")
}

// View renders the editor.
func (m *Editor) View() tea.View {
	var view tea.View
	view.SetContent(lipgloss.Sprint(m.GetCanvas(true).Render()))
	view.AltScreen = true
	view.MouseMode = tea.MouseModeAllMotion
	view.ReportFocus = true
	view.WindowTitle = "pagecraft"
	if m.Player != nil {
		done, total := m.Player.Progress()
		switch {
		case m.Player.Err() != nil:
			view.ProgressBar = tea.NewProgressBar(tea.ProgressBarError, 100)
		case m.Playing() && total > 0:
			view.ProgressBar = tea.NewProgressBar(tea.ProgressBarDefault, done*100/total)
		}
	}
	return view
}
