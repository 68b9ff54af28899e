package tape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/gesture"
)

// ParseError is a problem found on one script line.
type ParseError struct {
	Line    int
	Message string
}

func (e ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

type argType int

const (
	argText argType = iota
	argInt
	argKind
	argHandle
	argPlacement
)

// signature lists the argument types of a command. Arguments past
// required are optional; a variadic signature repeats its last type.
type signature struct {
	args     []argType
	required int
	variadic bool
}

var signatures = map[CommandType]signature{
	CommandTypeNewSection:        {args: []argType{argText}},
	CommandTypeRenameSection:     {args: []argType{argText}, required: 1},
	CommandTypeSelectSection:     {args: []argType{argText}, required: 1},
	CommandTypeDeleteSection:     {args: []argType{argText}},
	CommandTypeAdd:               {args: []argType{argKind, argText}, required: 1},
	CommandTypeInsert:            {args: []argType{argKind, argInt, argText}, required: 2},
	CommandTypeDrop:              {args: []argType{argKind, argText}, required: 2},
	CommandTypeSelect:            {args: []argType{argText}, required: 1},
	CommandTypeDeselect:          {},
	CommandTypeDelete:            {args: []argType{argText}},
	CommandTypeReorder:           {args: []argType{argInt, argInt}, required: 2},
	CommandTypeDrag:              {args: []argType{argInt, argInt}, required: 2},
	CommandTypeResize:            {args: []argType{argHandle, argInt, argInt}, required: 3},
	CommandTypeSetProp:           {args: []argType{argText, argText}, required: 2},
	CommandTypeAssign:            {args: []argType{argText}, required: 1},
	CommandTypePlacement:         {args: []argType{argPlacement}, required: 1},
	CommandTypeExpectSize:        {args: []argType{argInt, argInt}, required: 2},
	CommandTypeExpectPosition:    {args: []argType{argInt, argInt}, required: 2},
	CommandTypeExpectCount:       {args: []argType{argInt}, required: 1},
	CommandTypeExpectSections:    {args: []argType{argInt}, required: 1},
	CommandTypeExpectOrder:       {args: []argType{argKind}, variadic: true},
	CommandTypeExpectNoSelection: {},
	CommandTypeExpectSelected:    {args: []argType{argKind}, required: 1},
	CommandTypeExpectProp:        {args: []argType{argText, argText}, required: 2},
	CommandTypeExpectUnplaced:    {args: []argType{argInt}, required: 1},
}

// Parser turns tokens into commands. Bad lines are skipped and recorded.
type Parser struct {
	lexer  *Lexer
	errors []ParseError
}

// NewParser returns a parser reading from l.
func NewParser(l *Lexer) *Parser {
	return &Parser{lexer: l}
}

// Errors returns the problems found by the last Parse.
func (p *Parser) Errors() []ParseError {
	return p.errors
}

// Parse reads every line of the script.
func (p *Parser) Parse() []Command {
	var commands []Command
	for {
		line, eof := p.readLine()
		if len(line) > 0 {
			if cmd, ok := p.parseLine(line); ok {
				commands = append(commands, cmd)
			}
		}
		if eof {
			return commands
		}
	}
}

func (p *Parser) readLine() ([]Token, bool) {
	var line []Token
	for {
		tok := p.lexer.NextToken()
		switch tok.Type {
		case TokenEOF:
			return line, true
		case TokenNewline:
			return line, false
		}
		line = append(line, tok)
	}
}

func (p *Parser) fail(line int, format string, args ...any) {
	p.errors = append(p.errors, ParseError{Line: line, Message: fmt.Sprintf(format, args...)})
}

func (p *Parser) parseLine(tokens []Token) (Command, bool) {
	head := tokens[0]
	if head.Type != TokenIdent {
		p.fail(head.Line, "expected a command, got %s %q", head.Type, head.Literal)
		return Command{}, false
	}
	t, ok := LookupCommand(head.Literal)
	if !ok {
		p.fail(head.Line, "unknown command %q", head.Literal)
		return Command{}, false
	}

	cmd := Command{Type: t, Line: head.Line}
	for _, tok := range tokens[1:] {
		if tok.Type == TokenIllegal {
			p.fail(tok.Line, "unterminated string %s", tok.Literal)
			return Command{}, false
		}
		cmd.Args = append(cmd.Args, tok.Literal)
	}

	if err := checkArgs(signatures[t], cmd.Args); err != nil {
		p.fail(head.Line, "%s: %v", t, err)
		return Command{}, false
	}
	return cmd, true
}

func checkArgs(sig signature, args []string) error {
	if len(args) < sig.required {
		return fmt.Errorf("expects at least %d argument(s), got %d", sig.required, len(args))
	}
	if !sig.variadic && len(args) > len(sig.args) {
		return fmt.Errorf("expects at most %d argument(s), got %d", len(sig.args), len(args))
	}
	for i, arg := range args {
		typ := sig.args[min(i, len(sig.args)-1)]
		if err := checkArg(typ, arg); err != nil {
			return fmt.Errorf("argument %d: %w", i+1, err)
		}
	}
	return nil
}

func checkArg(typ argType, arg string) error {
	switch typ {
	case argInt:
		if _, err := strconv.Atoi(arg); err != nil {
			return fmt.Errorf("%q is not a number", arg)
		}
	case argKind:
		if _, err := catalog.ParseKind(arg); err != nil {
			return err
		}
	case argHandle:
		if _, err := gesture.ParseHandle(arg); err != nil {
			return err
		}
	case argPlacement:
		if p := strings.ToLower(arg); p != config.PlacementFlow && p != config.PlacementFreeform {
			return fmt.Errorf("placement must be %s or %s, got %q", config.PlacementFlow, config.PlacementFreeform, arg)
		}
	}
	return nil
}

// Parse lexes and parses script, returning every problem as one error.
func Parse(script string) ([]Command, error) {
	p := NewParser(New(script))
	commands := p.Parse()
	if errs := p.Errors(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = e.Error()
		}
		return commands, fmt.Errorf("%d error(s) in script:\n%s", len(errs), strings.Join(msgs, "\n"))
	}
	return commands, nil
}
