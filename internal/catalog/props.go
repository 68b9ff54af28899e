package catalog

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// LinkType selects what a link points at.
type LinkType string

// Link types.
const (
	LinkURL     LinkType = "url"
	LinkSection LinkType = "section"
	LinkNone    LinkType = "none"
)

// LinkTarget is the browsing context a link opens in.
type LinkTarget string

// Link targets.
const (
	TargetBlank LinkTarget = "_blank"
	TargetSelf  LinkTarget = "_self"
)

// Link is the optional navigation attached to buttons, cards and heroes.
type Link struct {
	Type   LinkType   `yaml:"type" json:"type"`
	Value  string     `yaml:"value" json:"value"`
	Target LinkTarget `yaml:"target" json:"target"`
}

func (l Link) normalize() Link {
	if l.Type == "" {
		l.Type = LinkNone
	}
	if l.Target == "" {
		l.Target = TargetSelf
	}
	return l
}

// ButtonVariant is the visual style of a button.
type ButtonVariant string

// Button variants.
const (
	VariantPrimary   ButtonVariant = "primary"
	VariantSecondary ButtonVariant = "secondary"
	VariantOutline   ButtonVariant = "outline"
)

// InputType is the HTML input type of a text input.
type InputType string

// Input types.
const (
	InputText     InputType = "text"
	InputEmail    InputType = "email"
	InputPassword InputType = "password"
)

// Props is the property shape of a component. Each kind has exactly one
// implementation; the set is sealed to this package. Implementations hold
// only plain values so that copying a component copies its props.
type Props interface {
	Kind() Kind
	isProps()
}

// HeadingProps are the properties of a Heading.
type HeadingProps struct {
	Text  string `yaml:"text" json:"text"`
	Level int    `yaml:"level" json:"level"`
}

// ButtonProps are the properties of a Button.
type ButtonProps struct {
	Text    string        `yaml:"text" json:"text"`
	Variant ButtonVariant `yaml:"variant" json:"variant"`
	Link    Link          `yaml:"link" json:"link"`
}

// InputProps are the properties of an Input.
type InputProps struct {
	Placeholder string    `yaml:"placeholder" json:"placeholder"`
	Type        InputType `yaml:"type" json:"type"`
}

// CardProps are the properties of a Card.
type CardProps struct {
	Title       string `yaml:"title" json:"title"`
	Description string `yaml:"description" json:"description"`
	ImageURL    string `yaml:"imageUrl" json:"imageUrl"`
	Link        Link   `yaml:"link" json:"link"`
}

// HeroProps are the properties of a Hero.
type HeroProps struct {
	Title    string `yaml:"title" json:"title"`
	Subtitle string `yaml:"subtitle" json:"subtitle"`
	CTAText  string `yaml:"ctaText" json:"ctaText"`
	CTALink  Link   `yaml:"ctaLink" json:"ctaLink"`
}

// SectionProps are the properties of a nested Section block.
type SectionProps struct {
	Name            string `yaml:"name" json:"name"`
	BackgroundColor string `yaml:"backgroundColor" json:"backgroundColor"`
	Padding         string `yaml:"padding" json:"padding"`
}

func (HeadingProps) Kind() Kind { return Heading }
func (ButtonProps) Kind() Kind  { return Button }
func (InputProps) Kind() Kind   { return Input }
func (CardProps) Kind() Kind    { return Card }
func (HeroProps) Kind() Kind    { return Hero }
func (SectionProps) Kind() Kind { return Section }

func (HeadingProps) isProps() {}
func (ButtonProps) isProps()  {}
func (InputProps) isProps()   {}
func (CardProps) isProps()    {}
func (HeroProps) isProps()    {}
func (SectionProps) isProps() {}

// Field is one editable property, flattened for display. Nested link fields
// use dotted keys such as "link.type".
type Field struct {
	Key     string
	Value   string
	Options []string
}

var (
	linkTypeOptions   = []string{string(LinkNone), string(LinkURL), string(LinkSection)}
	linkTargetOptions = []string{string(TargetSelf), string(TargetBlank)}
	levelOptions      = []string{"1", "2", "3", "4", "5", "6"}
	variantOptions    = []string{string(VariantPrimary), string(VariantSecondary), string(VariantOutline)}
	inputTypeOptions  = []string{string(InputText), string(InputEmail), string(InputPassword)}
)

func linkFields(prefix string, l Link) []Field {
	return []Field{
		{Key: prefix + ".type", Value: string(l.Type), Options: linkTypeOptions},
		{Key: prefix + ".value", Value: l.Value},
		{Key: prefix + ".target", Value: string(l.Target), Options: linkTargetOptions},
	}
}

// Fields returns the properties of p in declaration order.
func Fields(p Props) []Field {
	switch p := p.(type) {
	case HeadingProps:
		return []Field{
			{Key: "text", Value: p.Text},
			{Key: "level", Value: strconv.Itoa(p.Level), Options: levelOptions},
		}
	case ButtonProps:
		return append([]Field{
			{Key: "text", Value: p.Text},
			{Key: "variant", Value: string(p.Variant), Options: variantOptions},
		}, linkFields("link", p.Link)...)
	case InputProps:
		return []Field{
			{Key: "placeholder", Value: p.Placeholder},
			{Key: "type", Value: string(p.Type), Options: inputTypeOptions},
		}
	case CardProps:
		return append([]Field{
			{Key: "title", Value: p.Title},
			{Key: "description", Value: p.Description},
			{Key: "imageUrl", Value: p.ImageURL},
		}, linkFields("link", p.Link)...)
	case HeroProps:
		return append([]Field{
			{Key: "title", Value: p.Title},
			{Key: "subtitle", Value: p.Subtitle},
			{Key: "ctaText", Value: p.CTAText},
		}, linkFields("ctaLink", p.CTALink)...)
	case SectionProps:
		return []Field{
			{Key: "name", Value: p.Name},
			{Key: "backgroundColor", Value: p.BackgroundColor},
			{Key: "padding", Value: p.Padding},
		}
	}
	return nil
}

// ToMap converts p into a generic property bag, the shape the properties
// editor and remote callers submit back on every edit.
func ToMap(p Props) map[string]any {
	data, err := json.Marshal(p)
	if err != nil {
		return map[string]any{}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{}
	}
	return m
}

// SetField returns a copy of p with the dotted key set to value. The
// complete bag is revalidated, so the result is always a full replacement.
func SetField(p Props, key, value string) (Props, error) {
	m := ToMap(p)
	parts := strings.Split(key, ".")
	target := m
	for _, part := range parts[:len(parts)-1] {
		next, ok := target[part].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: %s has no field %q", ErrInvalidProps, p.Kind(), key)
		}
		target = next
	}

	leaf := parts[len(parts)-1]
	current, ok := target[leaf]
	if !ok {
		return nil, fmt.Errorf("%w: %s has no field %q", ErrInvalidProps, p.Kind(), key)
	}
	if _, isNumber := current.(float64); isNumber {
		n, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("%w: %s must be a number", ErrInvalidProps, key)
		}
		target[leaf] = n
	} else {
		target[leaf] = value
	}

	return DecodeProps(p.Kind(), m)
}

// normalize fills optional nested values the way new components expect them.
func normalize(p Props) Props {
	switch p := p.(type) {
	case ButtonProps:
		p.Link = p.Link.normalize()
		return p
	case CardProps:
		p.Link = p.Link.normalize()
		return p
	case HeroProps:
		p.CTALink = p.CTALink.normalize()
		return p
	}
	return p
}
