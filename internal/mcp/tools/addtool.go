package tools

import (
	"encoding/json"
	"fmt"
	"reflect"
	"strings"

	"github.com/google/jsonschema-go/jsonschema"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

// AddTool registers a tool after checking that the zero value of its output
// type satisfies the output schema the SDK infers. Panics otherwise.
func AddTool[In, Out any](srv *sdkmcp.Server, t *sdkmcp.Tool, h sdkmcp.ToolHandlerFor[In, Out]) {
	CheckOutputSchema[Out](t.Name)
	sdkmcp.AddTool(srv, t, h)
}

// CheckOutputSchema panics when the zero value of T would be rejected by the
// schema inferred from T. A nil slice marshals as null while the inferred
// schema says "array"; tag such fields omitzero or initialize them.
// json.RawMessage fields are rejected too: they are inferred as byte arrays
// but marshal as arbitrary JSON.
func CheckOutputSchema[T any](toolName string) {
	rt := reflect.TypeFor[T]()
	if rt == reflect.TypeFor[any]() {
		return
	}
	for rt.Kind() == reflect.Pointer {
		rt = rt.Elem()
	}

	if paths := rawMessagePaths(rt, nil, make(map[reflect.Type]bool)); len(paths) > 0 {
		panic(fmt.Sprintf(
			"tool %q: output type %s has json.RawMessage at %s; decode it into an any field instead",
			toolName, rt, strings.Join(paths, ", "),
		))
	}

	inferred, err := jsonschema.ForType(rt, &jsonschema.ForOptions{})
	if err != nil {
		return
	}
	resolved, err := inferred.Resolve(&jsonschema.ResolveOptions{})
	if err != nil {
		return
	}

	data, err := json.Marshal(reflect.Zero(rt).Interface())
	if err != nil {
		return
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		return
	}

	if err := resolved.Validate(&v); err != nil {
		panic(fmt.Sprintf(
			"tool %q: zero value of %s fails its output schema: %v (json: %s); tag nil slices omitzero",
			toolName, rt, err, data,
		))
	}
}

var rawMessageType = reflect.TypeFor[json.RawMessage]()

// rawMessagePaths lists the field paths of t holding json.RawMessage.
func rawMessagePaths(t reflect.Type, path []string, seen map[reflect.Type]bool) []string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t == rawMessageType {
		return []string{strings.Join(path, ".")}
	}
	if seen[t] {
		return nil
	}
	seen[t] = true
	defer delete(seen, t)

	var found []string
	switch t.Kind() {
	case reflect.Struct:
		for i := range t.NumField() {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			found = append(found, rawMessagePaths(f.Type, append(path[:len(path):len(path)], f.Name), seen)...)
		}
	case reflect.Slice, reflect.Array:
		found = append(found, rawMessagePaths(t.Elem(), append(path[:len(path):len(path)], "[]"), seen)...)
	case reflect.Map:
		found = append(found, rawMessagePaths(t.Elem(), append(path[:len(path):len(path)], "[value]"), seen)...)
	}
	return found
}
