package formatter

import (
	"encoding/json"
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/usestring/safeparse-mcp/pkg/issue"
)

// renderPrimitive renders strings raw, numbers in shortest decimal form and
// booleans as true/false. Anything else is rendered as "typeof <category>".
func renderPrimitive(v any) string {
	switch v := v.(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	case float64:
		return renderNumber(v)
	case float32:
		return renderNumber(float64(v))
	case int:
		return strconv.Itoa(v)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(v).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(v).Uint(), 10)
	case nil:
		return "typeof null"
	}
	return "typeof " + category(v)
}

func category(v any) string {
	switch reflect.ValueOf(v).Kind() {
	case reflect.Map, reflect.Struct, reflect.Pointer, reflect.Interface:
		return "object"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Func:
		return "function"
	default:
		return reflect.ValueOf(v).Kind().String()
	}
}

func renderPrimitives(values []any) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = renderPrimitive(v)
	}
	return strings.Join(parts, ",")
}

func renderNumber(f float64) string {
	switch {
	case math.IsNaN(f):
		return "NaN"
	case math.IsInf(f, 1):
		return "Infinity"
	case math.IsInf(f, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// unionPaths lists the path of every issue of every branch, each path joined
// with "," and all of them joined with " or ".
func unionPaths(branches [][]issue.Issue) string {
	var paths []string
	for _, branch := range branches {
		for _, iss := range branch {
			paths = append(paths, strings.Join(iss.Path, ","))
		}
	}
	return strings.Join(paths, " or ")
}

// join builds a message from a label and an optional detail.
func join(label, detail string) string {
	if detail == "" {
		return label
	}
	return label + "; " + detail
}
