package schema

import (
	"math"
	"reflect"
	"strconv"
	"strings"

	"github.com/usestring/safeparse-mcp/pkg/issue"
)

const maxWalkDepth = 64

// nonFinite reports NaN and infinite floats inside v, which JSON cannot
// encode.
func nonFinite(v any) []issue.Issue {
	var out []issue.Issue
	walkFloats(reflect.ValueOf(v), nil, 0, &out)
	return out
}

func walkFloats(v reflect.Value, path []string, depth int, out *[]issue.Issue) {
	if !v.IsValid() || depth > maxWalkDepth {
		return
	}
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f := v.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) {
			*out = append(*out, issue.Issue{
				Path:    append([]string(nil), path...),
				Message: "Number must be finite",
				Detail:  &issue.NotFinite{},
			})
		}
	case reflect.Pointer, reflect.Interface:
		if !v.IsNil() {
			walkFloats(v.Elem(), path, depth+1, out)
		}
	case reflect.Slice, reflect.Array:
		if v.Kind() == reflect.Slice && v.Type().Elem().Kind() == reflect.Uint8 {
			return
		}
		for i := 0; i < v.Len(); i++ {
			walkFloats(v.Index(i), append(path, strconv.Itoa(i)), depth+1, out)
		}
	case reflect.Map:
		if v.Type().Key().Kind() != reflect.String {
			return
		}
		iter := v.MapRange()
		for iter.Next() {
			walkFloats(iter.Value(), append(path, iter.Key().String()), depth+1, out)
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			name := jsonFieldName(f)
			if name == "-" {
				continue
			}
			walkFloats(v.Field(i), append(path, name), depth+1, out)
		}
	}
}

func jsonFieldName(f reflect.StructField) string {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "-"
	}
	name, _, _ := strings.Cut(tag, ",")
	if name == "" {
		return f.Name
	}
	return name
}
