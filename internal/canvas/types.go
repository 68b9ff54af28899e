package canvas

import "github.com/Gaurav-Gosain/pagecraft/internal/catalog"

// Default presentation attributes of a new section.
const (
	DefaultSectionBackground = "#1e293b"
	DefaultSectionPadding    = "2rem 1rem"
	DefaultSectionMinHeight  = "200px"
)

// Position is an explicit offset used under free-form placement.
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Size is an explicit component size.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Component is a placed UI element.
//
// SectionID is empty for unplaced components. Position and Size are nil
// when the component flows in document order with its intrinsic size.
type Component struct {
	ID        string        `json:"id"`
	Kind      catalog.Kind  `json:"type"`
	Props     catalog.Props `json:"props"`
	SectionID string        `json:"sectionId,omitempty"`
	Position  *Position     `json:"position,omitempty"`
	Size      *Size         `json:"size,omitempty"`
}

// Clone returns a deep copy of c. Props are copied by assignment, which is
// deep only while every catalog props struct holds plain values (no maps,
// slices or pointers).
func (c Component) Clone() Component {
	if c.Position != nil {
		p := *c.Position
		c.Position = &p
	}
	if c.Size != nil {
		s := *c.Size
		c.Size = &s
	}
	return c
}

// Section is an ordered container. Membership is derived from the
// components that reference it.
type Section struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	BackgroundColor string `json:"backgroundColor"`
	Padding         string `json:"padding"`
	MinHeight       string `json:"minHeight"`
}

// ComponentPatch lists the fields to merge into a component. Nil fields are
// left untouched.
type ComponentPatch struct {
	// Props replaces the whole property bag. It must have the component's kind.
	Props catalog.Props
	// SectionID reassigns the component. A pointer to "" unplaces it.
	SectionID *string
	Position  *Position
	Size      *Size
	// ClearPosition and ClearSize drop the explicit value so the component
	// flows again. They win over Position and Size in the same patch.
	ClearPosition bool
	ClearSize     bool
}

func (p ComponentPatch) empty() bool {
	return p.Props == nil && p.SectionID == nil && p.Position == nil && p.Size == nil &&
		!p.ClearPosition && !p.ClearSize
}

// SectionPatch lists the section fields to merge. Nil fields are left
// untouched.
type SectionPatch struct {
	Name            *string
	BackgroundColor *string
	Padding         *string
	MinHeight       *string
}

// Str returns a pointer to s, for building patches.
func Str(s string) *string {
	return &s
}
