package tape

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/adrg/xdg"
)

// Player steps through commands one at a time so the editor can animate a
// script between frames.
type Player struct {
	commands []Command
	index    int
	failed   error
}

// NewPlayer returns a player positioned at the first command.
func NewPlayer(commands []Command) *Player {
	return &Player{commands: commands}
}

// Done reports whether every command ran or one failed.
func (p *Player) Done() bool {
	return p.failed != nil || p.index >= len(p.commands)
}

// Err returns the failure that stopped playback.
func (p *Player) Err() error {
	return p.failed
}

// Progress returns the number of executed commands and the total.
func (p *Player) Progress() (int, int) {
	return p.index, len(p.commands)
}

// Current returns the command Step will run next.
func (p *Player) Current() (Command, bool) {
	if p.Done() {
		return Command{}, false
	}
	return p.commands[p.index], true
}

// Step runs the next command with ce. It reports false once playback is
// over; the error of a failing command stops playback.
func (p *Player) Step(ce *CommandExecutor) (bool, error) {
	cmd, ok := p.Current()
	if !ok {
		return false, p.failed
	}
	p.index++
	if err := ce.Execute(cmd); err != nil {
		p.failed = err
		return false, err
	}
	return !p.Done(), nil
}

// Directory returns the directory holding saved tapes, creating it.
func Directory() (string, error) {
	file, err := xdg.DataFile("pagecraft/tapes/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get tape directory: %w", err)
	}
	return filepath.Dir(file), nil
}

// Resolve returns name as a path when it exists, otherwise the tape of
// that name in the tape directory.
func Resolve(name string) (string, error) {
	if _, err := os.Stat(name); err == nil {
		return name, nil
	}
	dir, err := Directory()
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(name, ".tape") {
		name += ".tape"
	}
	path := filepath.Join(dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("tape %q not found: %w", name, err)
	}
	return path, nil
}

// List returns the names of saved tapes, sorted.
func List() ([]string, error) {
	dir, err := Directory()
	if err != nil {
		return nil, err
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read tape directory: %w", err)
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".tape") {
			names = append(names, strings.TrimSuffix(entry.Name(), ".tape"))
		}
	}
	slices.Sort(names)
	return names, nil
}

// Load reads and parses a tape file.
func Load(path string) ([]Command, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tape: %w", err)
	}
	return Parse(string(data))
}
