// Package codegen turns the canvas into source code: a deterministic React
// page generator and the prompts used to ask a model for one.
package codegen

import (
	"context"
	"fmt"
	"html"
	"strconv"
	"strings"
	"text/template"

	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
)

// Generator produces source code for components in global order.
type Generator interface {
	Generate(ctx context.Context, comps []canvas.Component) (string, error)
}

// JSXGenerator writes a self-contained MyPage component using Tailwind
// classes. Components are grouped into a <section> per canvas section;
// components without a live section are emitted after the sections.
type JSXGenerator struct {
	Sections []canvas.Section
	Freeform bool // emit explicit positions as transforms
}

// ForCanvas returns a generator bound to the sections of c.
func ForCanvas(c *canvas.Canvas, freeform bool) *JSXGenerator {
	return &JSXGenerator{Sections: c.Sections(), Freeform: freeform}
}

type pageData struct {
	Sections []sectionData
	Loose    []string
}

type sectionData struct {
	ID         string
	Name       string
	Background string
	Padding    string
	MinHeight  string
	Elements   []string
}

var pageTemplate = template.Must(template.New("page").Delims("[[", "]]").Parse(`export default function MyPage() {
  return (
    <main className="min-h-screen bg-slate-900 text-white">
[[- range .Sections]]
      <section
        id="[[.ID]]"
        aria-label="[[.Name]]"
        className="flex flex-col gap-6"
        style={{ backgroundColor: [[.Background]], padding: [[.Padding]], minHeight: [[.MinHeight]] }}
      >
[[- range .Elements]]
[[.]]
[[- end]]
      </section>
[[- end]]
[[- if .Loose]]
      <div className="flex flex-col gap-6 p-8">
[[- range .Loose]]
[[.]]
[[- end]]
      </div>
[[- end]]
    </main>
  );
}
`))

// Generate renders comps as a TSX page.
func (g *JSXGenerator) Generate(ctx context.Context, comps []canvas.Component) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	data := pageData{}
	index := make(map[string]int, len(g.Sections))
	for _, s := range g.Sections {
		index[s.ID] = len(data.Sections)
		data.Sections = append(data.Sections, sectionData{
			ID:         attr(s.ID),
			Name:       attr(s.Name),
			Background: jsString(s.BackgroundColor),
			Padding:    jsString(s.Padding),
			MinHeight:  jsString(s.MinHeight),
		})
	}

	for _, comp := range comps {
		el, err := g.element(comp)
		if err != nil {
			return "", err
		}
		if i, ok := index[comp.SectionID]; ok && comp.SectionID != "" {
			data.Sections[i].Elements = append(data.Sections[i].Elements, indent(el, 8))
		} else {
			data.Loose = append(data.Loose, indent(el, 8))
		}
	}

	var sb strings.Builder
	if err := pageTemplate.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("rendering page: %w", err)
	}
	return sb.String(), nil
}

var headingClasses = map[int]string{
	1: "text-5xl font-extrabold",
	2: "text-4xl font-bold",
	3: "text-3xl font-bold",
	4: "text-2xl font-semibold",
	5: "text-xl font-semibold",
	6: "text-lg font-medium",
}

var buttonClasses = map[catalog.ButtonVariant]string{
	catalog.VariantPrimary:   "rounded-lg bg-blue-600 px-6 py-3 font-semibold text-white hover:bg-blue-500",
	catalog.VariantSecondary: "rounded-lg bg-slate-700 px-6 py-3 font-semibold text-white hover:bg-slate-600",
	catalog.VariantOutline:   "rounded-lg border border-blue-500 px-6 py-3 font-semibold text-blue-400 hover:bg-blue-500/10",
}

func (g *JSXGenerator) element(comp canvas.Component) (string, error) {
	style := g.style(comp)
	switch p := comp.Props.(type) {
	case catalog.HeadingProps:
		level := min(max(p.Level, 1), 6)
		return fmt.Sprintf(`<h%d className="%s"%s>%s</h%d>`, level, headingClasses[level], style, text(p.Text), level), nil
	case catalog.ButtonProps:
		return action(p.Text, p.Link, buttonClasses[p.Variant], style), nil
	case catalog.InputProps:
		return fmt.Sprintf(`<input type="%s" placeholder="%s" className="w-full rounded-lg border border-slate-600 bg-slate-800 px-4 py-2 text-white placeholder-slate-400"%s />`,
			attr(string(p.Type)), attr(p.Placeholder), style), nil
	case catalog.CardProps:
		var sb strings.Builder
		fmt.Fprintf(&sb, `<div className="overflow-hidden rounded-xl bg-slate-800 shadow-lg"%s>`, style)
		if p.ImageURL != "" {
			fmt.Fprintf(&sb, "\n  <img src=\"%s\" alt=\"%s\" className=\"h-48 w-full object-cover\" />", attr(p.ImageURL), attr(p.Title))
		}
		sb.WriteString("\n  <div className=\"p-6\">")
		fmt.Fprintf(&sb, "\n    <h3 className=\"text-xl font-bold\">%s</h3>", text(p.Title))
		fmt.Fprintf(&sb, "\n    <p className=\"mt-2 text-slate-300\">%s</p>", text(p.Description))
		if p.Link.Type != catalog.LinkNone && p.Link.Type != "" {
			sb.WriteString("\n" + indent(action("Learn more", p.Link, "mt-4 inline-block text-blue-400 hover:underline", ""), 4))
		}
		sb.WriteString("\n  </div>\n</div>")
		return sb.String(), nil
	case catalog.HeroProps:
		var sb strings.Builder
		fmt.Fprintf(&sb, `<div className="flex flex-col items-center gap-6 py-20 text-center"%s>`, style)
		fmt.Fprintf(&sb, "\n  <h1 className=\"text-6xl font-extrabold\">%s</h1>", text(p.Title))
		fmt.Fprintf(&sb, "\n  <p className=\"max-w-2xl text-xl text-slate-300\">%s</p>", text(p.Subtitle))
		if p.CTAText != "" {
			sb.WriteString("\n" + indent(action(p.CTAText, p.CTALink, buttonClasses[catalog.VariantPrimary], ""), 2))
		}
		sb.WriteString("\n</div>")
		return sb.String(), nil
	case catalog.SectionProps:
		return fmt.Sprintf("<div className=\"rounded-lg\" style={{ backgroundColor: %s, padding: %s }}>\n  <h2 className=\"text-2xl font-bold\">%s</h2>\n</div>",
			jsString(p.BackgroundColor), jsString(p.Padding), text(p.Name)), nil
	}
	return "", fmt.Errorf("%w: %s", catalog.ErrInvalidKind, comp.Kind)
}

// style returns the explicit geometry of comp as a JSX style attribute.
func (g *JSXGenerator) style(comp canvas.Component) string {
	var parts []string
	if comp.Size != nil {
		parts = append(parts, fmt.Sprintf("width: %d, height: %d", comp.Size.Width, comp.Size.Height))
	}
	if g.Freeform && comp.Position != nil {
		parts = append(parts, fmt.Sprintf(`transform: "translate(%dpx, %dpx)"`, comp.Position.X, comp.Position.Y))
	}
	if len(parts) == 0 {
		return ""
	}
	return " style={{ " + strings.Join(parts, ", ") + " }}"
}

// action renders a link when l points somewhere and a button otherwise.
func action(label string, l catalog.Link, class, style string) string {
	switch l.Type {
	case catalog.LinkURL:
		target := ""
		if l.Target == catalog.TargetBlank {
			target = ` target="_blank" rel="noopener noreferrer"`
		}
		return fmt.Sprintf(`<a href="%s"%s className="%s"%s>%s</a>`, attr(l.Value), target, class, style, text(label))
	case catalog.LinkSection:
		return fmt.Sprintf(`<a href="#%s" className="%s"%s>%s</a>`, attr(l.Value), class, style, text(label))
	}
	return fmt.Sprintf(`<button type="button" className="%s"%s>%s</button>`, class, style, text(label))
}

var braceEscaper = strings.NewReplacer("{", "&#123;", "}", "&#125;")

// text escapes s for use as JSX element text.
func text(s string) string {
	return braceEscaper.Replace(html.EscapeString(s))
}

// attr escapes s for use inside a double quoted JSX attribute.
func attr(s string) string {
	return html.EscapeString(s)
}

// jsString quotes s as a JavaScript string literal for style objects.
func jsString(s string) string {
	return strconv.Quote(s)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = pad + line
	}
	return strings.Join(lines, "\n")
}
