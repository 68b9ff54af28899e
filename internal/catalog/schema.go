package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

// ErrInvalidProps is returned when a property bag does not match the shape
// of its kind.
var ErrInvalidProps = errors.New("invalid properties")

//go:embed schemas/*.json
var schemaFS embed.FS

var (
	schemasOnce sync.Once
	schemas     map[Kind]*gojsonschema.Schema
	schemasErr  error
)

func loadSchemas() (map[Kind]*gojsonschema.Schema, error) {
	schemasOnce.Do(func() {
		schemas = make(map[Kind]*gojsonschema.Schema, len(Kinds()))
		for _, k := range Kinds() {
			data, err := schemaFS.ReadFile("schemas/" + string(k) + ".json")
			if err != nil {
				schemasErr = fmt.Errorf("read schema for %s: %w", k, err)
				return
			}
			s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
			if err != nil {
				schemasErr = fmt.Errorf("compile schema for %s: %w", k, err)
				return
			}
			schemas[k] = s
		}
	})
	return schemas, schemasErr
}

// Validate checks a generic property bag against the schema of kind.
func Validate(kind Kind, bag map[string]any) error {
	if !kind.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidKind, kind)
	}
	all, err := loadSchemas()
	if err != nil {
		return err
	}

	result, err := all[kind].Validate(gojsonschema.NewGoLoader(bag))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidProps, err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("%w: %s", ErrInvalidProps, strings.Join(msgs, "; "))
}

// DecodeProps validates a whole property bag and converts it into the typed
// properties of kind. Nothing is returned unless the entire bag is valid.
func DecodeProps(kind Kind, bag map[string]any) (Props, error) {
	if err := Validate(kind, bag); err != nil {
		return nil, err
	}

	data, err := json.Marshal(bag)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProps, err)
	}

	var p Props
	switch kind {
	case Heading:
		var v HeadingProps
		err = json.Unmarshal(data, &v)
		p = v
	case Button:
		var v ButtonProps
		err = json.Unmarshal(data, &v)
		p = v
	case Input:
		var v InputProps
		err = json.Unmarshal(data, &v)
		p = v
	case Card:
		var v CardProps
		err = json.Unmarshal(data, &v)
		p = v
	case Hero:
		var v HeroProps
		err = json.Unmarshal(data, &v)
		p = v
	case Section:
		var v SectionProps
		err = json.Unmarshal(data, &v)
		p = v
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidProps, err)
	}
	return normalize(p), nil
}
