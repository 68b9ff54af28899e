package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/render"
	"github.com/Gaurav-Gosain/pagecraft/internal/tape"
	"github.com/Gaurav-Gosain/pagecraft/pkg/pagecraft"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/colorprofile"
	"golang.org/x/term"
)

const fallbackWidth = 80

func validateTapeFile(out io.Writer, name string) error {
	path, err := tape.Resolve(name)
	if err != nil {
		return err
	}
	commands, err := tape.Load(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}

	assertions := 0
	for _, c := range commands {
		if c.Type.IsAssertion() {
			assertions++
		}
	}
	fmt.Fprintf(out, "%s: %d command(s), %d assertion(s)\n", path, len(commands), assertions)
	return nil
}

// playTape runs a tape on a fresh headless page. A failing command stops
// the tape; the page keeps everything before it.
func playTape(name string) (*pagecraft.Page, error) {
	loadConfig()
	commands, err := loadTape(name)
	if err != nil {
		return nil, err
	}
	page := pagecraft.NewPage(pagecraft.PageWithPlacement(config.Placement))
	return page, page.Run(commands)
}

// outputWidth returns the terminal width of out, or fallbackWidth.
func outputWidth(out io.Writer) int {
	if f, ok := out.(*os.File); ok {
		if w, _, err := term.GetSize(int(f.Fd())); err == nil && w > 0 {
			return w
		}
	}
	return fallbackWidth
}

func renderTapeFile(out io.Writer, name string, width int) error {
	page, playErr := playTape(name)
	if page == nil {
		return playErr
	}
	if width <= 0 {
		width = outputWidth(out)
	}

	// Downsample colors to what the output supports.
	w := colorprofile.NewWriter(out, os.Environ())
	fmt.Fprintln(w, page.Render(width))
	fmt.Fprintln(w, render.StatusLine(page.Canvas()))
	return playErr
}

func listTapeFiles(out io.Writer) error {
	names, err := tape.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		dir, _ := tape.Directory()
		fmt.Fprintf(out, "No tapes in %s\n", dir)
		return nil
	}
	for _, name := range names {
		fmt.Fprintln(out, name)
	}
	return nil
}

func showTapeDirectory(out io.Writer) error {
	dir, err := tape.Directory()
	if err != nil {
		return err
	}
	fmt.Fprintln(out, dir)
	return nil
}

func showTapeFile(out io.Writer, name string) error {
	path, err := tape.Resolve(name)
	if err != nil {
		return err
	}
	// #nosec G304 - reading a user selected tape is intentional
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read tape: %w", err)
	}
	_, err = out.Write(data)
	return err
}

func generateFromTape(ctx context.Context, out io.Writer, name, format string, copyOut bool) error {
	page, err := playTape(name)
	if err != nil {
		return err
	}

	var code string
	switch format {
	case "tsx", "":
		if code, err = page.Generate(ctx); err != nil {
			return fmt.Errorf("generate: %w", err)
		}
	case "prompt":
		code = page.Prompt()
	default:
		return fmt.Errorf("unknown format %q (want tsx or prompt)", format)
	}

	if copyOut {
		if err := clipboard.WriteAll(code); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		fmt.Fprintf(os.Stderr, "Copied %d bytes to the clipboard\n", len(code))
		return nil
	}
	_, err = fmt.Fprintln(out, code)
	return err
}
