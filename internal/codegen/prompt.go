package codegen

import (
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
)

// ErrNoJSON is returned when a backend response has no JSON object at all.
var ErrNoJSON = errors.New("no JSON object in response")

// AssistantInstruction is the system prompt of the page building assistant.
const AssistantInstruction = `You are an expert AI assistant for a no-code website builder.
Your role is to help non-technical users understand code, get ideas, and make edits.
Be concise, helpful, and encouraging. Use simple language.
When asked to modify code, provide the complete, updated code block.
When asked for ideas, provide actionable suggestions.`

const frontendRules = `Rules:
- Use functional components and hooks.
- Use Tailwind CSS for all styling. Do not use inline styles or CSS files.
- Generate realistic and visually appealing styles for each component.
- Ensure the generated TSX is clean, well-formatted, and complete.
- Do not include 'import React from "react";' or any other imports. Just return the component code itself.
- Make the component self-contained.`

// Describe renders one component as a pseudo element line such as
// <Button text="Go" variant="primary" link.type="none" ... />.
func Describe(comp canvas.Component) string {
	var sb strings.Builder
	sb.WriteString("<")
	sb.WriteString(string(comp.Kind))
	for _, f := range catalog.Fields(comp.Props) {
		fmt.Fprintf(&sb, " %s=%q", f.Key, f.Value)
	}
	sb.WriteString(" />")
	return sb.String()
}

// FrontendPrompt asks a model for a MyPage component rendering comps.
func FrontendPrompt(comps []canvas.Component) string {
	lines := make([]string, len(comps))
	for i, comp := range comps {
		lines[i] = Describe(comp)
	}

	var sb strings.Builder
	sb.WriteString("Generate a single React functional component named 'MyPage' using TypeScript and Tailwind CSS.\n")
	sb.WriteString("The component should render the following elements based on the descriptions provided.\n")
	sb.WriteString("The layout should be a single column with vertical spacing between elements.\n")
	sb.WriteString("The entire component should be wrapped in a main container with a dark background (e.g., bg-slate-900) and padding.\n\n")
	sb.WriteString("Component descriptions:\n")
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\n\n")
	sb.WriteString(frontendRules)
	sb.WriteString("\n")
	return sb.String()
}

// BackendPrompt asks a model for an Express route and a matching table.
func BackendPrompt(description string) string {
	return fmt.Sprintf(`Based on the following description, generate a Node.js/Express API POST route and a corresponding SQL CREATE TABLE statement.
Description: %q

Please respond with a JSON object that has exactly this structure:
{
    "apiCode": "The Node.js and Express code for a POST API route. Use comments to explain the code.",
    "sqlCode": "The SQL 'CREATE TABLE' statement for the database schema."
}
`, description)
}

// BackendCode is the parsed answer to a BackendPrompt.
type BackendCode struct {
	APICode string `json:"apiCode"`
	SQLCode string `json:"sqlCode"`
}

var (
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
	codeBlockRe  = regexp.MustCompile("(?s)```(?:tsx|jsx|typescript)?\\s*(.*?)\\s*```")
)

// ParseBackendResponse reads the JSON object out of a model answer. When
// the text is not JSON it tries the outermost braces, and when that fails
// too it wraps the raw text as API code and reports ErrNoJSON.
func ParseBackendResponse(text string) (BackendCode, error) {
	var code BackendCode
	if err := json.Unmarshal([]byte(text), &code); err == nil {
		return code, nil
	}
	if match := jsonObjectRe.FindString(text); match != "" {
		if err := json.Unmarshal([]byte(match), &code); err == nil {
			return code, nil
		}
	}
	return BackendCode{
		APICode: "// Generated API code:\n" + text,
		SQLCode: "-- Generated SQL code:\n-- Please extract from the response above",
	}, ErrNoJSON
}

// ExtractCodeBlock returns the body of the first fenced tsx, jsx or
// typescript block in text, or the trimmed text when there is none.
func ExtractCodeBlock(text string) string {
	if m := codeBlockRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return strings.TrimSpace(text)
}
