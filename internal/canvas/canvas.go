// Package canvas holds the page being built: sections, components in one
// global order, the selection, and the reorder engine that mutates them.
//
// Every operation is total. An unknown id makes the call a no-op reported
// through its boolean result, so rapid add/delete sequences from the UI can
// never crash a session. A Canvas is not safe for concurrent use; callers
// that share one across goroutines must serialize access.
package canvas

import (
	"fmt"
	"slices"
	"strings"

	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/google/uuid"
)

// maxIDAttempts bounds how often a colliding id is regenerated.
const maxIDAttempts = 8

// Catalog is the part of the component catalog the canvas needs to
// instantiate components.
type Catalog interface {
	Lookup(kind catalog.Kind) (catalog.Entry, error)
}

// IDGenerator returns a new id with the given prefix.
type IDGenerator func(prefix string) string

// Option configures a Canvas.
type Option func(*Canvas)

// WithEmitter sets the change notification sink.
func WithEmitter(e EventEmitter) Option {
	return func(c *Canvas) {
		if e != nil {
			c.emitter = e
		}
	}
}

// WithCatalog sets the catalog new components are instantiated from.
func WithCatalog(cat Catalog) Option {
	return func(c *Canvas) {
		if cat != nil {
			c.catalog = cat
		}
	}
}

// WithIDGenerator replaces the UUID based id scheme.
func WithIDGenerator(gen IDGenerator) Option {
	return func(c *Canvas) {
		if gen != nil {
			c.newID = gen
		}
	}
}

// Canvas is the aggregate root of the page model.
type Canvas struct {
	byID     map[string]*Component
	order    []string
	sections []Section

	activeComponentID string
	activeSectionID   string

	catalog Catalog
	emitter EventEmitter
	newID   IDGenerator
}

// New returns an empty canvas.
func New(opts ...Option) *Canvas {
	c := &Canvas{
		byID:    make(map[string]*Component),
		catalog: catalog.Default(),
		emitter: NopEmitter{},
		newID:   uuidID,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func uuidID(prefix string) string {
	return prefix + "-" + uuid.New().String()
}

// generateID returns an id that is not used by any live component or section.
func (c *Canvas) generateID(prefix string) (string, error) {
	for range maxIDAttempts {
		id := c.newID(prefix)
		if id == "" {
			continue
		}
		if _, taken := c.byID[id]; taken {
			continue
		}
		if c.sectionIndex(id) >= 0 {
			continue
		}
		return id, nil
	}
	return "", fmt.Errorf("%w for %s", ErrIDCollision, prefix)
}

// ----------------------------------------------------------------------------
// Sections
// ----------------------------------------------------------------------------

// CreateSection appends a section named "Section N" with default
// presentation attributes.
func (c *Canvas) CreateSection() (Section, error) {
	id, err := c.generateID("section")
	if err != nil {
		return Section{}, err
	}
	s := Section{
		ID:              id,
		Name:            fmt.Sprintf("Section %d", len(c.sections)+1),
		BackgroundColor: DefaultSectionBackground,
		Padding:         DefaultSectionPadding,
		MinHeight:       DefaultSectionMinHeight,
	}
	c.sections = append(c.sections, s)
	c.emitter.Emit(EventSectionCreated, s)
	return s, nil
}

// UpdateSection merges the present fields of patch into section id.
func (c *Canvas) UpdateSection(id string, patch SectionPatch) bool {
	i := c.sectionIndex(id)
	if i < 0 {
		return false
	}
	s := &c.sections[i]
	if patch.Name != nil {
		s.Name = *patch.Name
	}
	if patch.BackgroundColor != nil {
		s.BackgroundColor = *patch.BackgroundColor
	}
	if patch.Padding != nil {
		s.Padding = *patch.Padding
	}
	if patch.MinHeight != nil {
		s.MinHeight = *patch.MinHeight
	}
	c.emitter.Emit(EventSectionUpdated, *s)
	return true
}

// DeleteSection removes section id. Its components stay in the global
// order and become unplaced.
func (c *Canvas) DeleteSection(id string) bool {
	i := c.sectionIndex(id)
	if i < 0 {
		return false
	}
	c.sections = slices.Delete(c.sections, i, i+1)
	for _, cid := range c.order {
		if comp := c.byID[cid]; comp.SectionID == id {
			comp.SectionID = ""
		}
	}
	c.emitter.Emit(EventSectionDeleted, id)
	if c.activeSectionID == id {
		c.activeSectionID = ""
		c.emitSelection()
	}
	return true
}

// Sections returns the sections in creation order.
func (c *Canvas) Sections() []Section {
	return slices.Clone(c.sections)
}

// Section returns section id.
func (c *Canvas) Section(id string) (Section, bool) {
	i := c.sectionIndex(id)
	if i < 0 {
		return Section{}, false
	}
	return c.sections[i], true
}

// SectionByName returns the first section whose name matches
// case-insensitively.
func (c *Canvas) SectionByName(name string) (Section, bool) {
	for _, s := range c.sections {
		if strings.EqualFold(s.Name, name) {
			return s, true
		}
	}
	return Section{}, false
}

// SectionCount returns the number of sections.
func (c *Canvas) SectionCount() int {
	return len(c.sections)
}

func (c *Canvas) sectionIndex(id string) int {
	if id == "" {
		return -1
	}
	return slices.IndexFunc(c.sections, func(s Section) bool { return s.ID == id })
}

// ----------------------------------------------------------------------------
// Components
// ----------------------------------------------------------------------------

// AddOption customizes AddComponent.
type AddOption func(*addRequest)

type addRequest struct {
	sectionID string
	index     int
	hasIndex  bool
}

// InSection names the section the new component should land in. A section
// that does not exist is ignored and the usual target fallback applies.
func InSection(id string) AddOption {
	return func(r *addRequest) {
		r.sectionID = id
	}
}

// AtIndex splices the new component into the global order at i, clamped to
// the valid range. Without it the component is appended.
func AtIndex(i int) AddOption {
	return func(r *addRequest) {
		r.index = i
		r.hasIndex = true
	}
}

// AddComponent instantiates kind from the catalog defaults, places it in the
// resolved target section and selects it. An unknown kind is rejected with
// catalog.ErrInvalidKind before anything changes.
func (c *Canvas) AddComponent(kind catalog.Kind, opts ...AddOption) (Component, error) {
	var req addRequest
	for _, opt := range opts {
		opt(&req)
	}

	entry, err := c.catalog.Lookup(kind)
	if err != nil {
		return Component{}, err
	}
	id, err := c.generateID(strings.ToLower(string(kind)))
	if err != nil {
		return Component{}, err
	}

	comp := &Component{
		ID:        id,
		Kind:      kind,
		Props:     entry.Defaults,
		SectionID: c.ResolveTarget(req.sectionID),
	}
	c.byID[id] = comp

	if req.hasIndex {
		i := min(max(req.index, 0), len(c.order))
		c.order = slices.Insert(c.order, i, id)
	} else {
		c.order = append(c.order, id)
	}

	c.emitter.Emit(EventComponentAdded, comp.Clone())
	c.activeComponentID = id
	c.emitSelection()
	return comp.Clone(), nil
}

// UpdateComponent merges patch into component id, last write wins per
// field. It reports false without applying anything when the id is
// unknown, the patch names a section that does not exist, or the new
// properties belong to another kind.
func (c *Canvas) UpdateComponent(id string, patch ComponentPatch) bool {
	comp, ok := c.byID[id]
	if !ok {
		return false
	}
	if patch.Props != nil && patch.Props.Kind() != comp.Kind {
		return false
	}
	if patch.SectionID != nil && *patch.SectionID != "" && c.sectionIndex(*patch.SectionID) < 0 {
		return false
	}
	if patch.empty() {
		return true
	}

	if patch.Props != nil {
		comp.Props = patch.Props
	}
	if patch.SectionID != nil {
		comp.SectionID = *patch.SectionID
	}
	if patch.Position != nil {
		p := *patch.Position
		comp.Position = &p
	}
	if patch.Size != nil {
		s := *patch.Size
		comp.Size = &s
	}
	if patch.ClearPosition {
		comp.Position = nil
	}
	if patch.ClearSize {
		comp.Size = nil
	}

	c.emitter.Emit(EventComponentUpdated, comp.Clone())
	return true
}

// DeleteComponent removes component id and clears the component selection
// if it pointed at it.
func (c *Canvas) DeleteComponent(id string) bool {
	i := c.IndexOf(id)
	if i < 0 {
		return false
	}
	c.order = slices.Delete(c.order, i, i+1)
	delete(c.byID, id)
	c.emitter.Emit(EventComponentDeleted, id)
	if c.activeComponentID == id {
		c.activeComponentID = ""
		c.emitSelection()
	}
	return true
}

// MoveComponent removes the component at from and reinserts it at to in
// the shortened order, so [A B C D] moved from 0 to 2 becomes [B C A D].
// Out of range indices and from == to leave the order untouched and report
// false.
func (c *Canvas) MoveComponent(from, to int) bool {
	n := len(c.order)
	if from < 0 || from >= n || to < 0 || to >= n || from == to {
		return false
	}
	id := c.order[from]
	c.order = slices.Delete(c.order, from, from+1)
	c.order = slices.Insert(c.order, to, id)
	c.emitter.Emit(EventComponentMoved, MovedEvent{ID: id, From: from, To: to})
	return true
}

// Components returns every component in global order.
func (c *Canvas) Components() []Component {
	out := make([]Component, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id].Clone())
	}
	return out
}

// Component returns component id.
func (c *Canvas) Component(id string) (Component, bool) {
	comp, ok := c.byID[id]
	if !ok {
		return Component{}, false
	}
	return comp.Clone(), true
}

// ComponentAt returns the component at index i of the global order.
func (c *Canvas) ComponentAt(i int) (Component, bool) {
	if i < 0 || i >= len(c.order) {
		return Component{}, false
	}
	return c.byID[c.order[i]].Clone(), true
}

// Len returns the number of components.
func (c *Canvas) Len() int {
	return len(c.order)
}

// IndexOf returns the global index of component id, or -1.
func (c *Canvas) IndexOf(id string) int {
	if _, ok := c.byID[id]; !ok {
		return -1
	}
	return slices.Index(c.order, id)
}

// ComponentsInSection returns the members of section id in global order.
// The result is computed on every call.
func (c *Canvas) ComponentsInSection(id string) []Component {
	var out []Component
	for _, cid := range c.order {
		if comp := c.byID[cid]; comp.SectionID == id && id != "" {
			out = append(out, comp.Clone())
		}
	}
	return out
}

// Unplaced returns components with no section or a stale section
// reference, in global order.
func (c *Canvas) Unplaced() []Component {
	var out []Component
	for _, cid := range c.order {
		comp := c.byID[cid]
		if comp.SectionID == "" || c.IsStale(*comp) {
			out = append(out, comp.Clone())
		}
	}
	return out
}

// IsStale reports whether comp references a section that no longer exists.
func (c *Canvas) IsStale(comp Component) bool {
	return comp.SectionID != "" && c.sectionIndex(comp.SectionID) < 0
}

// Placement returns the live section id of comp, or "" when it is unplaced.
func (c *Canvas) Placement(comp Component) string {
	if c.IsStale(comp) {
		return ""
	}
	return comp.SectionID
}
