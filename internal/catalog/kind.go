// Package catalog defines the creatable component kinds, the property shape
// of each kind and the default property bags new components start from.
package catalog

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidKind is returned when a kind name is not part of the catalog.
var ErrInvalidKind = errors.New("invalid component kind")

// Kind identifies a component type. The set is closed.
type Kind string

const (
	// Heading is a text heading with a level from 1 to 6.
	Heading Kind = "Heading"
	// Button is a clickable button with an optional link.
	Button Kind = "Button"
	// Input is a single-line text input.
	Input Kind = "Input"
	// Card is an image card with a title and description.
	Card Kind = "Card"
	// Hero is a large banner with a call to action.
	Hero Kind = "Hero"
	// Section is a nested section block.
	Section Kind = "Section"
)

// Kinds returns every kind in palette order.
func Kinds() []Kind {
	return []Kind{Section, Hero, Heading, Button, Input, Card}
}

// Valid reports whether k is one of the catalog kinds.
func (k Kind) Valid() bool {
	switch k {
	case Heading, Button, Input, Card, Hero, Section:
		return true
	}
	return false
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind resolves a kind name case-insensitively.
func ParseKind(name string) (Kind, error) {
	name = strings.TrimSpace(name)
	for _, k := range Kinds() {
		if strings.EqualFold(name, string(k)) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidKind, name)
}
