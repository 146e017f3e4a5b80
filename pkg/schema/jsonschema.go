// Package schema puts real validation engines behind the safeparse engine
// contract.
//
// The main engine is JSON Schema (draft 2020-12) through
// santhosh-tekuri/jsonschema. Schemas can be written as JSON Schema, YAML,
// Zod source or Go struct source; the last two are parsed into a JSONSchema
// first. Engine errors are classified into issue.Issue values so the
// formatters can render them.
//
// NewStruct offers a second engine based on go-playground/validator struct
// tags, for callers that already describe their input with Go types.
package schema

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v6"
)

// JSONSchema is a simplified JSON Schema representation, produced by the Zod
// and Go struct parsers.
type JSONSchema struct {
	Type        string `json:"type,omitempty"`
	Description string `json:"description,omitempty"`

	Properties           map[string]*JSONSchema `json:"properties,omitempty"`
	Required             []string               `json:"required,omitempty"`
	AdditionalProperties any                    `json:"additionalProperties,omitempty"` // nil, bool or *JSONSchema
	PropertyNames        *JSONSchema            `json:"propertyNames,omitempty"`
	MinProperties        *int                   `json:"minProperties,omitempty"`
	MaxProperties        *int                   `json:"maxProperties,omitempty"`

	Items    *JSONSchema `json:"items,omitempty"`
	MinItems *int        `json:"minItems,omitempty"`
	MaxItems *int        `json:"maxItems,omitempty"`

	MinLength *int   `json:"minLength,omitempty"`
	MaxLength *int   `json:"maxLength,omitempty"`
	Pattern   string `json:"pattern,omitempty"`
	Format    string `json:"format,omitempty"`

	Minimum          *float64 `json:"minimum,omitempty"`
	Maximum          *float64 `json:"maximum,omitempty"`
	ExclusiveMinimum *float64 `json:"exclusiveMinimum,omitempty"`
	ExclusiveMaximum *float64 `json:"exclusiveMaximum,omitempty"`
	MultipleOf       *float64 `json:"multipleOf,omitempty"`

	Enum  []any           `json:"enum,omitempty"`
	Const json.RawMessage `json:"const,omitempty"`

	AnyOf       []*JSONSchema          `json:"anyOf,omitempty"`
	Ref         string                 `json:"$ref,omitempty"`
	Definitions map[string]*JSONSchema `json:"$defs,omitempty"`

	// Extension keywords, see vocab.go.
	Discriminator *Discriminator `json:"discriminator,omitempty"`
	RecordKeys    *JSONSchema    `json:"recordKeys,omitempty"`
	StringRules   []StringRule   `json:"stringRules,omitempty"`
	Refine        []RefineRule   `json:"refine,omitempty"`
}

// Discriminator selects one object schema by the value of a property.
type Discriminator struct {
	PropertyName string              `json:"propertyName"`
	Mapping      []DiscriminatorCase `json:"mapping"`
}

// DiscriminatorCase is one member of a discriminated union.
type DiscriminatorCase struct {
	Value  any         `json:"value"`
	Schema *JSONSchema `json:"schema"`
}

// StringRule is a parameterised string check such as startsWith.
type StringRule struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// RefineRule applies a named predicate. Message replaces the engine message
// when the predicate fails.
type RefineRule struct {
	Rule    string `json:"rule"`
	Message string `json:"message,omitempty"`
}

// Document converts the schema into the JSON value the compiler consumes.
func (s *JSONSchema) Document() (any, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling schema: %w", err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshaling schema: %w", err)
	}
	return doc, nil
}

func intPtr(n int) *int           { return &n }
func floatPtr(f float64) *float64 { return &f }
