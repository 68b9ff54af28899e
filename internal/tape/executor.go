package tape

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/Gaurav-Gosain/pagecraft/internal/canvas"
	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/gesture"
)

// Errors reported while running a script.
var (
	ErrExpectation      = errors.New("expectation failed")
	ErrNoSelection      = errors.New("no component selected")
	ErrUnknownSection   = errors.New("unknown section")
	ErrUnknownComponent = errors.New("unknown component")
	ErrRejected         = errors.New("operation rejected")
)

// Executor executes tape commands by directly manipulating the editor state.
// Section references are a name, an index or an id. Component references
// are an index into the global order or an id.
type Executor interface {
	// Canvas returns the document assertions are checked against
	Canvas() *canvas.Canvas

	// Sections
	NewSection(name string) error
	RenameSection(name string) error
	SelectSection(ref string) error
	DeleteSection(ref string) error // "" deletes the active section

	// Components
	Add(kind catalog.Kind, sectionRef string) error
	Insert(kind catalog.Kind, index int, sectionRef string) error
	Drop(kind catalog.Kind, sectionRef string) error
	Select(ref string) error
	Deselect() error
	Delete(ref string) error // "" deletes the active component
	Reorder(from, to int) error
	Assign(sectionRef string) error
	SetProp(key, value string) error

	// Gestures on the active component, in px
	Drag(dx, dy int) error
	Resize(h gesture.Handle, dx, dy int) error

	SetPlacement(mode string) error
}

// CommandExecutor runs parsed commands against an Executor
type CommandExecutor struct {
	executor Executor
}

// NewCommandExecutor creates a new command executor
func NewCommandExecutor(executor Executor) *CommandExecutor {
	return &CommandExecutor{executor: executor}
}

// Run executes commands in order and stops at the first failure.
func (ce *CommandExecutor) Run(commands []Command) error {
	for _, cmd := range commands {
		if err := ce.Execute(cmd); err != nil {
			return err
		}
	}
	return nil
}

// Execute executes a command. Errors carry the script line.
func (ce *CommandExecutor) Execute(cmd Command) error {
	if ce.executor == nil {
		return nil
	}
	if err := ce.execute(cmd); err != nil {
		return fmt.Errorf("line %d: %s: %w", cmd.Line, cmd.Type, err)
	}
	return nil
}

func (ce *CommandExecutor) execute(cmd Command) error {
	ex := ce.executor

	switch cmd.Type {
	case CommandTypeNewSection:
		return ex.NewSection(cmd.Arg(0))

	case CommandTypeRenameSection:
		return ex.RenameSection(cmd.Arg(0))

	case CommandTypeSelectSection:
		return ex.SelectSection(cmd.Arg(0))

	case CommandTypeDeleteSection:
		return ex.DeleteSection(cmd.Arg(0))

	case CommandTypeAdd:
		kind, err := catalog.ParseKind(cmd.Arg(0))
		if err != nil {
			return err
		}
		return ex.Add(kind, cmd.Arg(1))

	case CommandTypeInsert:
		kind, err := catalog.ParseKind(cmd.Arg(0))
		if err != nil {
			return err
		}
		return ex.Insert(kind, atoi(cmd.Arg(1)), cmd.Arg(2))

	case CommandTypeDrop:
		kind, err := catalog.ParseKind(cmd.Arg(0))
		if err != nil {
			return err
		}
		return ex.Drop(kind, cmd.Arg(1))

	case CommandTypeSelect:
		return ex.Select(cmd.Arg(0))

	case CommandTypeDeselect:
		return ex.Deselect()

	case CommandTypeDelete:
		return ex.Delete(cmd.Arg(0))

	case CommandTypeReorder:
		return ex.Reorder(atoi(cmd.Arg(0)), atoi(cmd.Arg(1)))

	case CommandTypeDrag:
		return ex.Drag(atoi(cmd.Arg(0)), atoi(cmd.Arg(1)))

	case CommandTypeResize:
		h, err := gesture.ParseHandle(cmd.Arg(0))
		if err != nil {
			return err
		}
		return ex.Resize(h, atoi(cmd.Arg(1)), atoi(cmd.Arg(2)))

	case CommandTypeSetProp:
		return ex.SetProp(cmd.Arg(0), cmd.Arg(1))

	case CommandTypeAssign:
		return ex.Assign(cmd.Arg(0))

	case CommandTypePlacement:
		return ex.SetPlacement(strings.ToLower(cmd.Arg(0)))
	}

	if cmd.Type.IsAssertion() {
		return check(ex.Canvas(), cmd)
	}
	return nil
}

func check(c *canvas.Canvas, cmd Command) error {
	switch cmd.Type {
	case CommandTypeExpectCount:
		return expectInt("component count", c.Len(), atoi(cmd.Arg(0)))

	case CommandTypeExpectSections:
		return expectInt("section count", c.SectionCount(), atoi(cmd.Arg(0)))

	case CommandTypeExpectUnplaced:
		return expectInt("unplaced count", len(c.Unplaced()), atoi(cmd.Arg(0)))

	case CommandTypeExpectNoSelection:
		if id := c.ActiveComponentID(); id != "" {
			return fmt.Errorf("%w: %s is selected", ErrExpectation, id)
		}
		return nil

	case CommandTypeExpectOrder:
		got := make([]string, 0, c.Len())
		for _, comp := range c.Components() {
			got = append(got, string(comp.Kind))
		}
		want := make([]string, len(cmd.Args))
		for i, arg := range cmd.Args {
			kind, _ := catalog.ParseKind(arg)
			want[i] = string(kind)
		}
		if !slices.Equal(got, want) {
			return fmt.Errorf("%w: order is [%s], want [%s]", ErrExpectation, strings.Join(got, " "), strings.Join(want, " "))
		}
		return nil
	}

	comp, ok := c.ActiveComponent()
	if !ok {
		return ErrNoSelection
	}

	switch cmd.Type {
	case CommandTypeExpectSelected:
		kind, _ := catalog.ParseKind(cmd.Arg(0))
		if comp.Kind != kind {
			return fmt.Errorf("%w: selected %s, want %s", ErrExpectation, comp.Kind, kind)
		}

	case CommandTypeExpectSize:
		if comp.Size == nil {
			return fmt.Errorf("%w: %s has no explicit size", ErrExpectation, comp.ID)
		}
		want := canvas.Size{Width: atoi(cmd.Arg(0)), Height: atoi(cmd.Arg(1))}
		if *comp.Size != want {
			return fmt.Errorf("%w: size is %dx%d, want %dx%d", ErrExpectation, comp.Size.Width, comp.Size.Height, want.Width, want.Height)
		}

	case CommandTypeExpectPosition:
		if comp.Position == nil {
			return fmt.Errorf("%w: %s has no explicit position", ErrExpectation, comp.ID)
		}
		want := canvas.Position{X: atoi(cmd.Arg(0)), Y: atoi(cmd.Arg(1))}
		if *comp.Position != want {
			return fmt.Errorf("%w: position is (%d,%d), want (%d,%d)", ErrExpectation, comp.Position.X, comp.Position.Y, want.X, want.Y)
		}

	case CommandTypeExpectProp:
		key, want := cmd.Arg(0), cmd.Arg(1)
		for _, f := range catalog.Fields(comp.Props) {
			if f.Key != key {
				continue
			}
			if f.Value != want {
				return fmt.Errorf("%w: %s is %q, want %q", ErrExpectation, key, f.Value, want)
			}
			return nil
		}
		return fmt.Errorf("%w: %s has no property %q", ErrExpectation, comp.Kind, key)
	}
	return nil
}

func expectInt(what string, got, want int) error {
	if got != want {
		return fmt.Errorf("%w: %s is %d, want %d", ErrExpectation, what, got, want)
	}
	return nil
}

// atoi converts an argument the parser already validated.
func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
