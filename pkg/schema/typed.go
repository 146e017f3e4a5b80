package schema

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	invopop "github.com/invopop/jsonschema"
	"github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/usestring/safeparse-mcp/pkg/issue"
	"github.com/usestring/safeparse-mcp/pkg/safeparse"
)

// Typed validates content with a Validator, then decodes the validated
// value into M.
type Typed[M any] struct {
	validator *Validator
}

var _ safeparse.Schema[struct{}] = (*Typed[struct{}])(nil)

// NewTyped wraps v so that successful results carry an M.
func NewTyped[M any](v *Validator) *Typed[M] {
	return &Typed[M]{validator: v}
}

// ForType reflects a JSON Schema from M and compiles it. Field names and
// requiredness follow the json tags; constraints come from jsonschema tags.
// Unknown object keys are allowed.
func ForType[M any](opts ...Option) (*Typed[M], error) {
	t := reflect.TypeOf((*M)(nil)).Elem()

	r := &invopop.Reflector{
		Anonymous:                 true,
		AllowAdditionalProperties: true,
	}
	base := t
	for base.Kind() == reflect.Pointer {
		base = base.Elem()
	}
	r.ExpandedStruct = base.Kind() == reflect.Struct

	data, err := json.Marshal(r.ReflectFromType(t))
	if err != nil {
		return nil, fmt.Errorf("marshaling schema for %s: %w", t, err)
	}
	doc, err := jsonschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("reading schema for %s: %w", t, err)
	}

	v, err := CompileDocument(doc, opts...)
	if err != nil {
		return nil, fmt.Errorf("schema for %s: %w", t, err)
	}
	return NewTyped[M](v), nil
}

// SafeParse validates content and decodes it into M.
func (t *Typed[M]) SafeParse(content any) safeparse.ParseResult[M] {
	res := t.validator.SafeParse(content)
	if !res.Success {
		return safeparse.Fail[M](res.Issues...)
	}

	data, err := json.Marshal(res.Data)
	if err != nil {
		return safeparse.Fail[M](issue.Issue{
			Message: err.Error(),
			Detail:  &issue.InvalidType{Expected: "json value", Received: goTypeName(res.Data)},
		})
	}

	var m M
	if err := json.Unmarshal(data, &m); err != nil {
		return safeparse.Fail[M](decodeIssue(err))
	}
	return safeparse.Ok(m)
}

// Validator returns the underlying JSON Schema validator.
func (t *Typed[M]) Validator() *Validator {
	return t.validator
}

// decodeIssue converts an encoding/json decode error into an issue.
func decodeIssue(err error) issue.Issue {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		var path []string
		if typeErr.Field != "" {
			path = strings.Split(typeErr.Field, ".")
		}
		return issue.Issue{
			Path:    path,
			Message: err.Error(),
			Detail:  &issue.InvalidType{Expected: typeErr.Type.String(), Received: typeErr.Value},
		}
	}
	return issue.Issue{
		Message: err.Error(),
		Detail:  &issue.InvalidType{Expected: "json value", Received: "malformed json"},
	}
}
