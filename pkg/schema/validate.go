package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/usestring/safeparse-mcp/pkg/issue"
	"github.com/usestring/safeparse-mcp/pkg/safeparse"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

const resourceURL = "schema.json"

// Validator validates JSON values against a compiled JSON Schema.
// It implements safeparse.Schema[any] and is safe for concurrent use.
type Validator struct {
	schema *jsonschema.Schema
	index  map[string]*jsonschema.Schema
	doc    any
}

var _ safeparse.Schema[any] = (*Validator)(nil)

// Option configures schema compilation.
type Option func(*options)

type options struct {
	predicates map[string]Predicate
}

// WithPredicate makes a named predicate available to the refine keyword.
func WithPredicate(name string, p Predicate) Option {
	return func(o *options) {
		o.predicates[name] = p
	}
}

func newOptions(opts []Option) *options {
	o := &options{predicates: make(map[string]Predicate, len(builtinPredicates))}
	for name, p := range builtinPredicates {
		o.predicates[name] = p
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// NewValidator creates a validator from a schema definition.
func NewValidator(source string, format types.SchemaFormat, opts ...Option) (*Validator, error) {
	switch format {
	case types.FormatGoStruct:
		s, err := ParseGoStruct(source)
		if err != nil {
			return nil, fmt.Errorf("parsing Go struct: %w", err)
		}
		return Compile(s, opts...)

	case types.FormatZod:
		s, err := ParseZodSchema(source)
		if err != nil {
			return nil, fmt.Errorf("parsing Zod schema: %w", err)
		}
		return Compile(s, opts...)

	case types.FormatJSONSchema:
		doc, err := jsonschema.UnmarshalJSON(strings.NewReader(source))
		if err != nil {
			return nil, fmt.Errorf("parsing JSON Schema: %w", err)
		}
		return CompileDocument(doc, opts...)

	case types.FormatYAML:
		doc, err := ParseYAMLDocument([]byte(source))
		if err != nil {
			return nil, fmt.Errorf("parsing YAML schema: %w", err)
		}
		return CompileDocument(doc, opts...)

	default:
		return nil, fmt.Errorf("unknown schema format: %s", format)
	}
}

// Compile compiles a parsed JSONSchema.
func Compile(s *JSONSchema, opts ...Option) (*Validator, error) {
	if s == nil {
		return nil, errors.New("nil schema")
	}
	doc, err := s.Document()
	if err != nil {
		return nil, err
	}
	return CompileDocument(doc, opts...)
}

// CompileDocument compiles a JSON Schema document given as a decoded JSON
// value. Format and content assertions are enabled.
func CompileDocument(doc any, opts ...Option) (*Validator, error) {
	o := newOptions(opts)

	compiler := jsonschema.NewCompiler()
	compiler.AssertFormat()
	compiler.AssertContent()
	compiler.AssertVocabs()
	compiler.RegisterVocabulary(o.vocabulary())

	if err := compiler.AddResource(resourceURL, doc); err != nil {
		return nil, fmt.Errorf("adding schema resource: %w", err)
	}

	compiled, err := compiler.Compile(resourceURL)
	if err != nil {
		return nil, fmt.Errorf("compiling schema: %w", err)
	}

	return &Validator{
		schema: compiled,
		index:  indexSchemas(compiled),
		doc:    doc,
	}, nil
}

// SafeParse validates content. Raw JSON ([]byte, json.RawMessage) is decoded
// first; other Go values are converted to their JSON form. On success Data is
// the decoded JSON value.
func (v *Validator) SafeParse(content any) safeparse.ParseResult[any] {
	inst, issues := instanceOf(content)
	if len(issues) > 0 {
		return safeparse.Fail[any](issues...)
	}

	if err := v.schema.Validate(inst); err != nil {
		return safeparse.Fail[any](v.issues(err)...)
	}
	return safeparse.Ok(inst)
}

// Schema returns the compiled schema.
func (v *Validator) Schema() *jsonschema.Schema {
	return v.schema
}

// Document returns the JSON Schema document the validator was compiled from.
func (v *Validator) Document() any {
	return v.doc
}

func (v *Validator) issues(err error) []issue.Issue {
	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []issue.Issue{{Message: err.Error(), Detail: &issue.Unknown{}}}
	}
	c := classifier{index: v.index}
	return sortByPath(c.classify(verr))
}

// instanceOf converts content into the value the engine validates.
func instanceOf(content any) (any, []issue.Issue) {
	var raw []byte
	switch c := content.(type) {
	case []byte:
		raw = c
	case json.RawMessage:
		raw = c
	default:
		if issues := nonFinite(content); len(issues) > 0 {
			return nil, sortByPath(issues)
		}
		b, err := json.Marshal(content)
		if err != nil {
			return nil, []issue.Issue{{
				Message: err.Error(),
				Detail:  &issue.InvalidType{Expected: "json value", Received: fmt.Sprintf("%T", content)},
			}}
		}
		raw = b
	}

	inst, err := jsonschema.UnmarshalJSON(bytes.NewReader(raw))
	if err != nil {
		return nil, []issue.Issue{{
			Message: err.Error(),
			Detail:  &issue.InvalidType{Expected: "json value", Received: "malformed json"},
		}}
	}
	return inst, nil
}
