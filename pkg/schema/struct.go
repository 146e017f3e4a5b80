package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"

	"github.com/usestring/safeparse-mcp/pkg/issue"
	"github.com/usestring/safeparse-mcp/pkg/safeparse"
)

const (
	singleLineTag = "singleline"
	keyNameTag    = "keyname"
)

// Struct validates content with go-playground/validator struct tags.
// Content is decoded into M first; field paths use json tag names.
type Struct[M any] struct {
	validate *validator.Validate
}

var _ safeparse.Schema[struct{}] = (*Struct[struct{}])(nil)

// StructOption configures a Struct engine.
type StructOption func(*validator.Validate) error

// WithStructValidation registers a custom validate tag.
func WithStructValidation(tag string, fn validator.Func) StructOption {
	return func(v *validator.Validate) error {
		return v.RegisterValidation(tag, fn)
	}
}

// NewStruct creates a struct-tag engine for M. The singleline and keyname
// tags are registered in addition to the validator's built-in tags.
func NewStruct[M any](opts ...StructOption) (*Struct[M], error) {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return jsonFieldName(f)
	})

	if err := v.RegisterValidation(singleLineTag, func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() != reflect.String || IsSingleLine(fl.Field().String())
	}); err != nil {
		return nil, err
	}
	if err := v.RegisterValidation(keyNameTag, func(fl validator.FieldLevel) bool {
		return fl.Field().Kind() != reflect.String || keyNameRegexp.MatchString(fl.Field().String())
	}); err != nil {
		return nil, err
	}

	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, fmt.Errorf("registering validation: %w", err)
		}
	}
	return &Struct[M]{validate: v}, nil
}

// SafeParse decodes content into M and validates the result. Raw JSON
// ([]byte, json.RawMessage) is decoded directly; an M is validated as is;
// other values are converted through JSON.
func (s *Struct[M]) SafeParse(content any) safeparse.ParseResult[M] {
	m, issues := s.decode(content)
	if len(issues) > 0 {
		return safeparse.Fail[M](issues...)
	}

	if !isStruct(reflect.TypeOf(m)) {
		return safeparse.Ok(m)
	}

	var err error
	if rv := reflect.ValueOf(m); rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return safeparse.Fail[M](issue.Issue{
				Message: "Required",
				Detail:  &issue.InvalidType{Expected: "object", Received: "null"},
			})
		}
		err = s.validate.Struct(m)
	} else {
		err = s.validate.Struct(&m)
	}
	if err == nil {
		return safeparse.Ok(m)
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return safeparse.Fail[M](issue.Issue{Message: err.Error(), Detail: &issue.Unknown{}})
	}
	out := make([]issue.Issue, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, fieldIssue(fe))
	}
	return safeparse.Fail[M](out...)
}

func (s *Struct[M]) decode(content any) (M, []issue.Issue) {
	var m M
	var raw []byte
	switch c := content.(type) {
	case M:
		return c, nil
	case []byte:
		raw = c
	case json.RawMessage:
		raw = c
	default:
		if issues := nonFinite(content); len(issues) > 0 {
			return m, sortByPath(issues)
		}
		b, err := json.Marshal(content)
		if err != nil {
			return m, []issue.Issue{{
				Message: err.Error(),
				Detail:  &issue.InvalidType{Expected: "json value", Received: fmt.Sprintf("%T", content)},
			}}
		}
		raw = b
	}

	if err := json.Unmarshal(raw, &m); err != nil {
		return m, []issue.Issue{decodeIssue(err)}
	}
	return m, nil
}

func isStruct(t reflect.Type) bool {
	if t == nil {
		return false
	}
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	return t.Kind() == reflect.Struct
}

// fieldIssue converts a validator field error into an issue.
func fieldIssue(fe validator.FieldError) issue.Issue {
	iss := issue.Issue{
		Path:    namespacePath(fe.Namespace()),
		Message: fieldMessage(fe),
	}

	tag := fe.Tag()
	switch tag {
	case "required", "required_if", "required_unless", "required_with", "required_with_all",
		"required_without", "required_without_all":
		iss.Message = "Required"
		iss.Detail = &issue.InvalidType{Expected: kindName(fe.Kind()), Received: "undefined"}

	case "min", "gte":
		iss.Detail = &issue.TooSmall{Type: kindName(fe.Kind()), Minimum: paramFloat(fe), Inclusive: true}
	case "gt":
		iss.Detail = &issue.TooSmall{Type: kindName(fe.Kind()), Minimum: paramFloat(fe)}
	case "max", "lte":
		iss.Detail = &issue.TooBig{Type: kindName(fe.Kind()), Maximum: paramFloat(fe), Inclusive: true}
	case "lt":
		iss.Detail = &issue.TooBig{Type: kindName(fe.Kind()), Maximum: paramFloat(fe)}
	case "len":
		bound := paramFloat(fe)
		if measure(fe.Value()) < bound {
			iss.Detail = &issue.TooSmall{Type: kindName(fe.Kind()), Minimum: bound, Inclusive: true}
		} else {
			iss.Detail = &issue.TooBig{Type: kindName(fe.Kind()), Maximum: bound, Inclusive: true}
		}

	case "oneof":
		fields := strings.Fields(fe.Param())
		options := make([]any, 0, len(fields))
		for _, f := range fields {
			options = append(options, f)
		}
		iss.Detail = &issue.InvalidEnumValue{Options: options, Received: fe.Value()}

	case "eq":
		iss.Detail = &issue.InvalidLiteral{Expected: fe.Param(), Received: fe.Value()}

	case "datetime":
		iss.Detail = &issue.InvalidDate{}

	case "startswith", "endswith", "contains", "excludes":
		name := stringParamNames[tag]
		iss.Detail = &issue.InvalidString{Validation: issue.StringValidation{
			Name:   name,
			Params: []issue.StringParam{{Name: name, Value: fe.Param()}},
		}}

	case singleLineTag:
		iss.Detail = &issue.Custom{Rule: "singleLine"}
	case keyNameTag:
		iss.Detail = &issue.Custom{Rule: "keyName"}

	default:
		if name, ok := stringFormatTags[tag]; ok {
			iss.Detail = &issue.InvalidString{Validation: issue.StringValidation{Name: name}}
		} else {
			iss.Detail = &issue.Custom{Rule: tag}
		}
	}
	return iss
}

var stringParamNames = map[string]string{
	"startswith": "startsWith",
	"endswith":   "endsWith",
	"contains":   "includes",
	"excludes":   "excludes",
}

var stringFormatTags = map[string]string{
	"email":            "email",
	"url":              "url",
	"http_url":         "url",
	"uri":              "url",
	"uuid":             "uuid",
	"uuid3":            "uuid",
	"uuid4":            "uuid",
	"uuid5":            "uuid",
	"uuid_rfc4122":     "uuid",
	"ulid":             "ulid",
	"ip":               "ip",
	"ipv4":             "ip",
	"ipv6":             "ip",
	"hostname":         "hostname",
	"hostname_rfc1123": "hostname",
	"alpha":            "alpha",
	"alphanum":         "alphanum",
	"numeric":          "numeric",
	"number":           "numeric",
	"lowercase":        "lowercase",
	"uppercase":        "uppercase",
	"base64":           "base64",
	"e164":             "e164",
	"json":             "json",
	"jwt":              "jwt",
	"cuid":             "cuid",
}

func fieldMessage(fe validator.FieldError) string {
	switch tag := fe.Tag(); tag {
	case "startswith":
		return fmt.Sprintf("must start with %s", strconv.Quote(fe.Param()))
	case "endswith":
		return fmt.Sprintf("must end with %s", strconv.Quote(fe.Param()))
	case "contains":
		return fmt.Sprintf("must include %s", strconv.Quote(fe.Param()))
	case "excludes":
		return fmt.Sprintf("must not include %s", strconv.Quote(fe.Param()))
	case singleLineTag:
		return "The string should be a single line"
	case keyNameTag:
		return "The string should be a key name"
	default:
		if fe.Param() != "" {
			return fmt.Sprintf("failed on %s=%s", tag, fe.Param())
		}
		return fmt.Sprintf("failed on %s", tag)
	}
}

// namespacePath splits a validator namespace such as "Signup.tags[1].name"
// into path segments, dropping the top-level struct name.
func namespacePath(ns string) []string {
	_, rest, found := strings.Cut(ns, ".")
	if !found {
		return nil
	}

	var path []string
	for _, part := range strings.Split(rest, ".") {
		name, idx, _ := strings.Cut(part, "[")
		if name != "" {
			path = append(path, name)
		}
		for idx != "" {
			var seg string
			seg, idx, _ = strings.Cut(idx, "]")
			path = append(path, seg)
			idx = strings.TrimPrefix(idx, "[")
		}
	}
	return path
}

func kindName(k reflect.Kind) string {
	switch k {
	case reflect.String:
		return "string"
	case reflect.Slice, reflect.Array:
		return "array"
	case reflect.Map, reflect.Struct:
		return "object"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return "number"
	default:
		return "value"
	}
}

func paramFloat(fe validator.FieldError) float64 {
	f, _ := strconv.ParseFloat(fe.Param(), 64)
	return f
}

// measure returns what the validator compares a bound against: the rune
// count of strings, the length of collections, or the number itself.
func measure(v any) float64 {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.String:
		return float64(utf8.RuneCountInString(rv.String()))
	case reflect.Slice, reflect.Array, reflect.Map:
		return float64(rv.Len())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint())
	case reflect.Float32, reflect.Float64:
		return rv.Float()
	default:
		return 0
	}
}
