// Package render turns the canvas document into terminal cells: a text
// description of each component, a cell layout of sections and components,
// hit testing against that layout, and lipgloss layers for drawing it.
package render

import (
	"fmt"
	"strings"

	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/muesli/reflow/truncate"
	"github.com/muesli/reflow/wordwrap"
)

// Block is the visual description of a component inside its frame.
type Block struct {
	Title string   // drawn as a badge on the top border
	Badge string   // short detail drawn on the bottom border
	Lines []string // body text, already wrapped to the requested width
}

// Describe maps a component to its block for a body of the given width.
func Describe(comp canvas.Component, width int) Block {
	width = max(1, width)
	var b Block
	switch p := comp.Props.(type) {
	case catalog.HeadingProps:
		b.Title = fmt.Sprintf("H%d", p.Level)
		text := p.Text
		if p.Level <= 2 {
			text = strings.ToUpper(text)
		}
		b.Lines = wrap(text, width)
	case catalog.ButtonProps:
		b.Title = "Button"
		b.Badge = string(p.Variant)
		label := "[ " + p.Text + " ]"
		if p.Variant == catalog.VariantOutline {
			label = "( " + p.Text + " )"
		}
		b.Lines = []string{label}
		if l := linkLine(p.Link); l != "" {
			b.Lines = append(b.Lines, l)
		}
	case catalog.InputProps:
		b.Title = "Input"
		b.Badge = string(p.Type)
		placeholder := p.Placeholder
		if p.Type == catalog.InputPassword && placeholder == "" {
			placeholder = "••••••"
		}
		b.Lines = []string{"▏" + placeholder}
	case catalog.CardProps:
		b.Title = "Card"
		b.Lines = append(b.Lines, strings.ToUpper(p.Title))
		b.Lines = append(b.Lines, wrap(p.Description, width)...)
		if p.ImageURL != "" {
			b.Lines = append(b.Lines, "img "+p.ImageURL)
		}
		if l := linkLine(p.Link); l != "" {
			b.Lines = append(b.Lines, l)
		}
	case catalog.HeroProps:
		b.Title = "Hero"
		b.Lines = append(b.Lines, wrap(strings.ToUpper(p.Title), width)...)
		b.Lines = append(b.Lines, wrap(p.Subtitle, width)...)
		if p.CTAText != "" {
			b.Lines = append(b.Lines, "[ "+p.CTAText+" ]")
		}
		if l := linkLine(p.CTALink); l != "" {
			b.Lines = append(b.Lines, l)
		}
	case catalog.SectionProps:
		b.Title = "Section"
		b.Badge = p.BackgroundColor
		b.Lines = []string{p.Name, "padding " + p.Padding}
	default:
		b.Title = string(comp.Kind)
	}

	for i, line := range b.Lines {
		b.Lines[i] = truncate.StringWithTail(line, uint(width), "…")
	}
	return b
}

func wrap(s string, width int) []string {
	if s == "" {
		return nil
	}
	return strings.Split(wordwrap.String(s, width), "\n")
}

func linkLine(l catalog.Link) string {
	switch l.Type {
	case catalog.LinkURL:
		line := "→ " + l.Value
		if l.Target == catalog.TargetBlank {
			line += " ↗"
		}
		return line
	case catalog.LinkSection:
		return "→ #" + l.Value
	}
	return ""
}
