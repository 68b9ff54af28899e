package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(config.ColorAccent))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	mutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color(config.ColorMuted))
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(mutedStyle).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	fmt.Println(path)
	return nil
}

// findEditor returns the user's editor command, split into its fields.
func findEditor() ([]string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if fields := strings.Fields(os.Getenv(env)); len(fields) > 0 {
			return fields, nil
		}
	}
	for _, name := range []string{"vim", "vi", "nano", "emacs"} {
		if path, err := exec.LookPath(name); err == nil {
			return []string{path}, nil
		}
	}
	return nil, errors.New("no editor found: set $EDITOR")
}

func editConfigFile() error {
	// Creates the file with defaults when it does not exist yet.
	if _, err := config.LoadUserConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	editor, err := findEditor()
	if err != nil {
		return err
	}
	// #nosec G204 - the editor is chosen by the user
	cmd := exec.Command(editor[0], append(editor[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor exited: %w", err)
	}

	if _, err := config.LoadUserConfigFrom(path); err != nil {
		return fmt.Errorf("saved configuration is invalid: %w", err)
	}
	return nil
}

func resetConfigToDefaults(in io.Reader, out io.Writer, yes bool) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}

	if !yes {
		fmt.Fprintf(out, "This will overwrite %s with the defaults. Continue? [y/N] ", path)
		answer, _ := bufio.NewReader(in).ReadString('\n')
		if a := strings.ToLower(strings.TrimSpace(answer)); a != "y" && a != "yes" {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if _, err := config.ResetConfig(); err != nil {
		return fmt.Errorf("failed to reset config: %w", err)
	}
	fmt.Fprintf(out, "Configuration reset: %s\n", path)
	return nil
}

func validateConfigFile(out io.Writer) error {
	path, err := config.GetConfigPath()
	if err != nil {
		return fmt.Errorf("failed to get config path: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		fmt.Fprintf(out, "No configuration file at %s; defaults are used.\n", path)
		return nil
	}
	// Problems are printed to stderr while loading.
	if _, err := config.LoadUserConfigFrom(path); err != nil {
		return err
	}
	fmt.Fprintf(out, "%s is valid.\n", path)
	return nil
}

func listKeybindings(out io.Writer) error {
	userConfig, err := config.LoadUserConfig()
	if err != nil {
		userConfig = config.DefaultConfig()
	}
	registry := config.NewKeybindRegistry(userConfig)

	for _, section := range config.GetKeybindings(registry) {
		title := section.Title
		if section.Condition != "" {
			title += mutedStyle.Render(" (" + section.Condition + " placement)")
		}
		t := newTable("Keys", "Action")
		for _, b := range section.Bindings {
			t.Row(b.Key, b.Description)
		}
		fmt.Fprintln(out, titleStyle.Render(title))
		fmt.Fprintln(out, t.String())
		fmt.Fprintln(out)
	}
	return nil
}

func printCatalog(out io.Writer, name string) error {
	cat := catalog.Default()
	if name == "" {
		t := newTable("Kind", "Description", "Properties")
		for _, e := range cat.Entries() {
			var keys []string
			for _, f := range catalog.Fields(e.Defaults) {
				keys = append(keys, f.Key)
			}
			t.Row(string(e.Kind), e.Description, strings.Join(keys, ", "))
		}
		fmt.Fprintln(out, t.String())
		return nil
	}

	kind, err := catalog.ParseKind(name)
	if err != nil {
		return err
	}
	entry, err := cat.Lookup(kind)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, titleStyle.Render(entry.Name)+" "+mutedStyle.Render(entry.Description))
	t := newTable("Property", "Default", "Options")
	for _, f := range catalog.Fields(entry.Defaults) {
		t.Row(f.Key, f.Value, strings.Join(f.Options, " | "))
	}
	fmt.Fprintln(out, t.String())
	return nil
}
