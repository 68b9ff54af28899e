package tape

import (
	"fmt"
	"strings"
)

// CommandType identifies a tape command.
type CommandType int

// Tape commands.
const (
	CommandTypeNewSection CommandType = iota
	CommandTypeRenameSection
	CommandTypeSelectSection
	CommandTypeDeleteSection
	CommandTypeAdd
	CommandTypeInsert
	CommandTypeDrop
	CommandTypeSelect
	CommandTypeDeselect
	CommandTypeDelete
	CommandTypeReorder
	CommandTypeDrag
	CommandTypeResize
	CommandTypeSetProp
	CommandTypeAssign
	CommandTypePlacement

	// Assertions
	CommandTypeExpectSize
	CommandTypeExpectPosition
	CommandTypeExpectCount
	CommandTypeExpectSections
	CommandTypeExpectOrder
	CommandTypeExpectNoSelection
	CommandTypeExpectSelected
	CommandTypeExpectProp
	CommandTypeExpectUnplaced
)

var commandNames = map[CommandType]string{
	CommandTypeNewSection:        "NewSection",
	CommandTypeRenameSection:     "RenameSection",
	CommandTypeSelectSection:     "SelectSection",
	CommandTypeDeleteSection:     "DeleteSection",
	CommandTypeAdd:               "Add",
	CommandTypeInsert:            "Insert",
	CommandTypeDrop:              "Drop",
	CommandTypeSelect:            "Select",
	CommandTypeDeselect:          "Deselect",
	CommandTypeDelete:            "Delete",
	CommandTypeReorder:           "Reorder",
	CommandTypeDrag:              "Drag",
	CommandTypeResize:            "Resize",
	CommandTypeSetProp:           "SetProp",
	CommandTypeAssign:            "Assign",
	CommandTypePlacement:         "Placement",
	CommandTypeExpectSize:        "ExpectSize",
	CommandTypeExpectPosition:    "ExpectPosition",
	CommandTypeExpectCount:       "ExpectCount",
	CommandTypeExpectSections:    "ExpectSections",
	CommandTypeExpectOrder:       "ExpectOrder",
	CommandTypeExpectNoSelection: "ExpectNoSelection",
	CommandTypeExpectSelected:    "ExpectSelected",
	CommandTypeExpectProp:        "ExpectProp",
	CommandTypeExpectUnplaced:    "ExpectUnplaced",
}

var commandsByName = func() map[string]CommandType {
	m := make(map[string]CommandType, len(commandNames))
	for t, name := range commandNames {
		m[strings.ToLower(name)] = t
	}
	return m
}()

// LookupCommand returns the command named name, ignoring case.
func LookupCommand(name string) (CommandType, bool) {
	t, ok := commandsByName[strings.ToLower(name)]
	return t, ok
}

// String returns the script spelling of t.
func (t CommandType) String() string {
	if name, ok := commandNames[t]; ok {
		return name
	}
	return fmt.Sprintf("CommandType(%d)", int(t))
}

// IsAssertion reports whether t checks state instead of changing it.
func (t CommandType) IsAssertion() bool {
	return t >= CommandTypeExpectSize
}

// Command is one parsed script line.
type Command struct {
	Type CommandType
	Args []string
	Line int
}

// String formats the command back into script form.
func (c Command) String() string {
	parts := []string{c.Type.String()}
	for _, arg := range c.Args {
		if arg == "" || strings.ContainsAny(arg, " \t\"#") {
			arg = fmt.Sprintf("%q", arg)
		}
		parts = append(parts, arg)
	}
	return strings.Join(parts, " ")
}

// Arg returns argument i, or "" when absent.
func (c Command) Arg(i int) string {
	if i < len(c.Args) {
		return c.Args[i]
	}
	return ""
}
