package catalog

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var catalogYAML []byte

// Entry describes one creatable kind.
type Entry struct {
	Kind        Kind
	Name        string
	Icon        string
	IconASCII   string
	Description string
	Defaults    Props
}

type entryFile struct {
	Kind        string    `yaml:"kind"`
	Name        string    `yaml:"name"`
	Icon        string    `yaml:"icon"`
	IconASCII   string    `yaml:"icon_ascii"`
	Description string    `yaml:"description"`
	Defaults    yaml.Node `yaml:"defaults"`
}

// Catalog is the read-only registry of creatable kinds.
type Catalog struct {
	entries  map[Kind]Entry
	order    []Kind
	randIntN func(int) int
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the catalog built from the embedded definitions.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Load(catalogYAML)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded definitions are invalid: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Load parses catalog definitions. Every kind must be defined exactly once
// and every default bag must satisfy its kind's schema.
func Load(data []byte) (*Catalog, error) {
	var files []entryFile
	if err := yaml.Unmarshal(data, &files); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	c := &Catalog{
		entries:  make(map[Kind]Entry, len(files)),
		randIntN: rand.IntN,
	}
	for _, f := range files {
		kind, err := ParseKind(f.Kind)
		if err != nil {
			return nil, err
		}
		if _, dup := c.entries[kind]; dup {
			return nil, fmt.Errorf("catalog defines %s twice", kind)
		}

		defaults, err := decodeDefaults(kind, &f.Defaults)
		if err != nil {
			return nil, fmt.Errorf("defaults for %s: %w", kind, err)
		}
		if err := Validate(kind, ToMap(defaults)); err != nil {
			return nil, fmt.Errorf("defaults for %s: %w", kind, err)
		}

		c.entries[kind] = Entry{
			Kind:        kind,
			Name:        f.Name,
			Icon:        f.Icon,
			IconASCII:   f.IconASCII,
			Description: f.Description,
			Defaults:    defaults,
		}
		c.order = append(c.order, kind)
	}

	for _, k := range Kinds() {
		if _, ok := c.entries[k]; !ok {
			return nil, fmt.Errorf("catalog is missing %s", k)
		}
	}
	return c, nil
}

func decodeDefaults(kind Kind, node *yaml.Node) (Props, error) {
	var (
		p   Props
		err error
	)
	switch kind {
	case Heading:
		var v HeadingProps
		err = node.Decode(&v)
		p = v
	case Button:
		var v ButtonProps
		err = node.Decode(&v)
		p = v
	case Input:
		var v InputProps
		err = node.Decode(&v)
		p = v
	case Card:
		var v CardProps
		err = node.Decode(&v)
		p = v
	case Hero:
		var v HeroProps
		err = node.Decode(&v)
		p = v
	case Section:
		var v SectionProps
		err = node.Decode(&v)
		p = v
	}
	if err != nil {
		return nil, err
	}
	return normalize(p), nil
}

// Lookup returns the entry for kind with a fresh copy of its defaults.
// Card image URLs get a random query so new cards show different images.
func (c *Catalog) Lookup(kind Kind) (Entry, error) {
	e, ok := c.entries[kind]
	if !ok {
		return Entry{}, fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	if card, ok := e.Defaults.(CardProps); ok {
		card.ImageURL = fmt.Sprintf("%s?random=%d", card.ImageURL, c.randIntN(100))
		e.Defaults = card
	}
	return e, nil
}

// Entries returns all entries in palette order.
func (c *Catalog) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, k := range c.order {
		out = append(out, c.entries[k])
	}
	return out
}
