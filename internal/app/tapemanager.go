package app

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/tape"
)

// TapeFile represents a tape file with metadata
type TapeFile struct {
	Name     string    // Display name (without extension)
	Path     string    // Full path to the file
	Size     int64     // File size in bytes
	Modified time.Time // Last modification time
}

// tapeManagerVisible is how many tapes the manager lists at once.
const tapeManagerVisible = 10

// LoadTapeFiles loads all tape files from dir, newest first.
func LoadTapeFiles(dir string) ([]TapeFile, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tape directory: %w", err)
	}

	var files []TapeFile
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}

		name := entry.Name()
		if !strings.HasSuffix(name, ".tape") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}

		files = append(files, TapeFile{
			Name:     strings.TrimSuffix(name, ".tape"),
			Path:     filepath.Join(dir, name),
			Size:     info.Size(),
			Modified: info.ModTime(),
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Modified.After(files[j].Modified)
	})

	return files, nil
}

// RefreshTapeFiles reloads the tape list from the tape directory.
func (m *Editor) RefreshTapeFiles() error {
	dir := m.TapeDir
	if dir == "" {
		d, err := tape.Directory()
		if err != nil {
			return err
		}
		dir = d
	}
	files, err := LoadTapeFiles(dir)
	if err != nil {
		return err
	}
	m.TapeFiles = files
	if m.TapeSelection >= len(files) {
		m.TapeSelection = max(len(files)-1, 0)
	}
	return nil
}

// ToggleTapeManager opens or closes the tape manager.
func (m *Editor) ToggleTapeManager() {
	if m.ShowTapeManager {
		m.ShowTapeManager = false
		return
	}
	if err := m.RefreshTapeFiles(); err != nil {
		m.Notify(err, "")
		return
	}
	m.ShowTapeManager = true
}

// TapeManagerSelectNext moves the selection down, wrapping.
func (m *Editor) TapeManagerSelectNext() {
	if len(m.TapeFiles) == 0 {
		return
	}
	m.TapeSelection = (m.TapeSelection + 1) % len(m.TapeFiles)
}

// TapeManagerSelectPrev moves the selection up, wrapping.
func (m *Editor) TapeManagerSelectPrev() {
	if len(m.TapeFiles) == 0 {
		return
	}
	m.TapeSelection = (m.TapeSelection - 1 + len(m.TapeFiles)) % len(m.TapeFiles)
}

// TapeManagerPlaySelected loads the selected tape and starts playing it.
func (m *Editor) TapeManagerPlaySelected() tea.Cmd {
	if m.TapeSelection < 0 || m.TapeSelection >= len(m.TapeFiles) {
		return nil
	}
	file := m.TapeFiles[m.TapeSelection]
	commands, err := tape.Load(file.Path)
	if err != nil {
		m.Notify(fmt.Errorf("%s: %w", file.Name, err), "")
		return nil
	}
	m.ShowTapeManager = false
	return m.PlayTape(file.Name, commands)
}

// RenderTapeManager renders the tape manager overlay.
func (m *Editor) RenderTapeManager(width, height int) string {
	titleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.ColorAccent)).
		Bold(true)

	subtitleStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#e2e8f0"))

	selectedStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#0f172a")).
		Background(lipgloss.Color(config.ColorAccent)).
		Bold(true)

	normalStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("#cbd5e1"))

	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.ColorMuted))

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(config.ColorActiveSection)).
		Bold(true)

	var lines []string
	lines = append(lines, titleStyle.Render("Tapes"))
	lines = append(lines, "")

	if len(m.TapeFiles) == 0 {
		lines = append(lines, dimStyle.Render("No tape files found"))
		lines = append(lines, "")
		dir := m.TapeDir
		if dir == "" {
			dir, _ = tape.Directory()
		}
		lines = append(lines, dimStyle.Render("Save .tape scripts in "+dir))
	} else {
		lines = append(lines, subtitleStyle.Render(fmt.Sprintf("Tapes (%d files):", len(m.TapeFiles))))
		lines = append(lines, "")

		startIdx := max(0, m.TapeSelection-tapeManagerVisible+1)
		endIdx := min(startIdx+tapeManagerVisible, len(m.TapeFiles))

		for i := startIdx; i < endIdx; i++ {
			file := m.TapeFiles[i]
			info := fmt.Sprintf("%-20s %8s  %s", truncateString(file.Name, 20), formatFileSize(file.Size), file.Modified.Format("Jan 02 15:04"))
			if i == m.TapeSelection {
				lines = append(lines, selectedStyle.Render("> "+info))
			} else {
				lines = append(lines, normalStyle.Render("  "+info))
			}
		}

		if len(m.TapeFiles) > tapeManagerVisible {
			lines = append(lines, "")
			lines = append(lines, dimStyle.Render(fmt.Sprintf("Showing %d-%d of %d", startIdx+1, endIdx, len(m.TapeFiles))))
		}
	}

	lines = append(lines, "")
	lines = append(lines, dimStyle.Render(
		keyStyle.Render("↑/↓")+" Select  "+
			keyStyle.Render("Enter")+" Play  "+
			keyStyle.Render("r")+" Refresh  "+
			keyStyle.Render("Esc")+" Close"))

	content := lipgloss.JoinVertical(lipgloss.Left, lines...)

	boxStyle := lipgloss.NewStyle().
		Border(config.GetBorderForStyle()).
		BorderForeground(lipgloss.Color(config.ColorAccent)).
		Padding(1, 2).
		Background(lipgloss.Color("#1a1a2a"))

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, boxStyle.Render(content))
}

func formatFileSize(size int64) string {
	if size < 1024 {
		return fmt.Sprintf("%dB", size)
	} else if size < 1024*1024 {
		return fmt.Sprintf("%.1fKB", float64(size)/1024)
	}
	return fmt.Sprintf("%.1fMB", float64(size)/(1024*1024))
}

func truncateString(s string, maxLen int) string {
	r := []rune(s)
	if len(r) <= maxLen {
		return s
	}
	return string(r[:maxLen-3]) + "..."
}
