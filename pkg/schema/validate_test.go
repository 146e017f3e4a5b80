package schema

import (
	"math"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/safeparse-mcp/pkg/issue"
	"github.com/usestring/safeparse-mcp/pkg/safeparse"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

const signupZod = `z.object({
	kind: z.literal('test'),
	name: stringFields.string1To10,
	tags: z.array(z.string()).min(1),
	website: z.string().url().startsWith('https://'),
	color: z.enum(['blue', 'orange', 'red']).optional(),
	day: z.discriminatedUnion('kind', [
		z.object({ kind: z.literal('monday'), tasks: z.number() }),
		z.object({ kind: z.literal('tuesday'), chores: z.string() }),
	]),
	jour: z.union([
		z.object({ lundi: z.string() }),
		z.object({ mardi: z.string() }),
	]),
	activities: z.record(stringFields.string1To10, z.string()),
})`

func validSignup() map[string]any {
	return map[string]any{
		"kind":       "test",
		"name":       "Jane",
		"tags":       []any{"a"},
		"website":    "https://example.com",
		"day":        map[string]any{"kind": "monday", "tasks": 3},
		"jour":       map[string]any{"lundi": "matin"},
		"activities": map[string]any{"run": "daily"},
	}
}

func signupValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(signupZod, types.FormatZod)
	require.NoError(t, err)
	return v
}

func TestSafeParse_Signup(t *testing.T) {
	v := signupValidator(t)

	tests := []struct {
		name    string
		mutate  func(doc map[string]any)
		policy  types.FormattingPolicy
		want    []types.FormattedError
		success bool
	}{
		{
			name:    "valid input",
			mutate:  func(map[string]any) {},
			policy:  types.PolicyDiagnostic,
			success: true,
		},
		{
			name:   "string too small",
			mutate: func(doc map[string]any) { doc["name"] = "" },
			policy: types.PolicyDiagnostic,
			want: []types.FormattedError{{
				Path:    "name",
				Message: "The string for the field is too small; I would expect the minimum to be 1",
			}},
		},
		{
			name:   "string too small privately",
			mutate: func(doc map[string]any) { doc["name"] = "" },
			policy: types.PolicyPrivacyPreserving,
			want: []types.FormattedError{{
				Path:    "name",
				Message: "The string for the field is too small",
			}},
		},
		{
			name:   "wrong type",
			mutate: func(doc map[string]any) { doc["name"] = 123 },
			policy: types.PolicyDiagnostic,
			want: []types.FormattedError{{
				Path:    "name",
				Message: "The type for the field is invalid; I would expect string instead of number",
			}},
		},
		{
			name:   "enum",
			mutate: func(doc map[string]any) { doc["color"] = "green" },
			policy: types.PolicyDiagnostic,
			want: []types.FormattedError{{
				Path:    "color",
				Message: "The enum for the field is invalid; I would expect any of blue,orange,red instead of green",
			}},
		},
		{
			name:   "discriminated union",
			mutate: func(doc map[string]any) { doc["day"] = map[string]any{"kind": "wednesday"} },
			policy: types.PolicyDiagnostic,
			want: []types.FormattedError{{
				Path:    "day.kind",
				Message: "The union discriminator for the object is invalid; I would expect any of monday,tuesday",
			}},
		},
		{
			name:   "union",
			mutate: func(doc map[string]any) { doc["jour"] = map[string]any{} },
			policy: types.PolicyDiagnostic,
			want: []types.FormattedError{{
				Path:    "jour",
				Message: "The union for the field is invalid; I would review jour,lundi or jour,mardi",
			}},
		},
		{
			name:   "literal",
			mutate: func(doc map[string]any) { doc["kind"] = "prod" },
			policy: types.PolicyDiagnostic,
			want: []types.FormattedError{{
				Path:    "kind",
				Message: "The literal for the field is invalid; I would expect test",
			}},
		},
		{
			name:   "array too small",
			mutate: func(doc map[string]any) { doc["tags"] = []any{} },
			policy: types.PolicyDiagnostic,
			want: []types.FormattedError{{
				Path:    "tags",
				Message: "The array for the field is too small; I would expect the minimum to be 1",
			}},
		},
		{
			name:   "record key too big",
			mutate: func(doc map[string]any) { doc["activities"] = map[string]any{"swimming-pool": "weekly"} },
			policy: types.PolicyDiagnostic,
			want: []types.FormattedError{{
				Path:    "activities.swimming-pool",
				Message: "The string for the field is too big; I would expect the maximum to be 10",
			}},
		},
		{
			name:   "startsWith",
			mutate: func(doc map[string]any) { doc["website"] = "http://example.com" },
			policy: types.PolicyPrivacyPreserving,
			want: []types.FormattedError{{
				Path:    "website",
				Message: "The string for the field is invalid; It should have startsWith",
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := validSignup()
			tt.mutate(doc)

			out := safeparse.SafeParse[any](doc, v, tt.policy)
			if tt.success {
				assert.True(t, safeparse.IsSuccess(out), "outcome: %#v", out)
				return
			}

			failure, ok := out.(safeparse.Failure[any])
			require.True(t, ok, "outcome: %#v", out)
			assert.Equal(t, tt.want, failure.Errors)
		})
	}
}

func TestSafeParse_MissingProperties(t *testing.T) {
	v := signupValidator(t)

	res := v.SafeParse(map[string]any{})
	require.False(t, res.Success)

	var paths []string
	for _, iss := range res.Issues {
		paths = append(paths, iss.JoinedPath())
		assert.Equal(t, issue.CodeInvalidType, iss.Code())
	}
	assert.Equal(t, []string{"activities", "day", "jour", "kind", "name", "tags", "website"}, paths)

	name := res.Issues[4].Detail.(*issue.InvalidType)
	assert.Equal(t, "string", name.Expected)
	assert.Equal(t, "undefined", name.Received)
}

func TestValidator_JSONSchema(t *testing.T) {
	schemaStr := `{"type": "object", "properties": {"name": {"type": "string"}, "age": {"type": "integer"}}, "required": ["name"]}`

	v, err := NewValidator(schemaStr, types.FormatJSONSchema)
	require.NoError(t, err)

	res := v.SafeParse([]byte(`{"name": "Alice", "age": 30}`))
	assert.True(t, res.Success)

	res = v.SafeParse([]byte(`{"age": 30}`))
	require.False(t, res.Success)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, []string{"name"}, res.Issues[0].Path)

	res = v.SafeParse([]byte(`{"name": "Alice", "age": "thirty"}`))
	require.False(t, res.Success)
	assert.Equal(t, &issue.InvalidType{Expected: "integer", Received: "string"}, res.Issues[0].Detail)
}

func TestValidator_YAML(t *testing.T) {
	schemaStr := `
type: object
properties:
  port:
    type: integer
    minimum: 1
    maximum: 65535
required: [port]
`
	v, err := NewValidator(schemaStr, types.FormatYAML)
	require.NoError(t, err)

	res := v.SafeParse(map[string]any{"port": 70000})
	require.False(t, res.Success)
	assert.Equal(t, &issue.TooBig{Type: "number", Maximum: 65535, Inclusive: true}, res.Issues[0].Detail)
}

func TestValidator_GoStruct(t *testing.T) {
	schemaStr := "type User struct {\n" +
		"\tName string `json:\"name\" validate:\"min=2\"`\n" +
		"\tAge  int    `json:\"age\"`\n" +
		"}"

	v, err := NewValidator(schemaStr, types.FormatGoStruct)
	require.NoError(t, err)

	assert.True(t, v.SafeParse([]byte(`{"name": "Bob", "age": 25}`)).Success)

	res := v.SafeParse([]byte(`{"name": "B", "age": 25}`))
	require.False(t, res.Success)
	assert.Equal(t, &issue.TooSmall{Type: "string", Minimum: 2, Inclusive: true}, res.Issues[0].Detail)
}

func TestValidator_UnknownFormat(t *testing.T) {
	_, err := NewValidator(`{}`, types.SchemaFormat("xml"))
	assert.Error(t, err)
}

func TestValidator_Classification(t *testing.T) {
	tests := []struct {
		name    string
		schema  string
		content string
		want    issue.Detail
		path    []string
	}{
		{
			name:    "pattern",
			schema:  `{"type": "string", "pattern": "^[a-z]+$"}`,
			content: `"ABC"`,
			want:    &issue.InvalidString{Validation: issue.StringValidation{Name: "regex"}},
		},
		{
			name:    "email format",
			schema:  `{"type": "string", "format": "email"}`,
			content: `"not-an-email"`,
			want:    &issue.InvalidString{Validation: issue.StringValidation{Name: "email"}},
		},
		{
			name:    "uri format",
			schema:  `{"type": "string", "format": "uri"}`,
			content: `"not a url"`,
			want:    &issue.InvalidString{Validation: issue.StringValidation{Name: "url"}},
		},
		{
			name:    "date-time format",
			schema:  `{"type": "string", "format": "date-time"}`,
			content: `"yesterday"`,
			want:    &issue.InvalidDate{},
		},
		{
			name:    "exclusive minimum",
			schema:  `{"type": "number", "exclusiveMinimum": 0}`,
			content: `0`,
			want:    &issue.TooSmall{Type: "number", Minimum: 0},
		},
		{
			name:    "multipleOf",
			schema:  `{"type": "number", "multipleOf": 5}`,
			content: `12`,
			want:    &issue.NotMultipleOf{MultipleOf: 5},
		},
		{
			name:    "additional properties",
			schema:  `{"type": "object", "properties": {"a": {}}, "additionalProperties": false}`,
			content: `{"a": 1, "b": 2}`,
			want:    &issue.UnrecognizedKeys{Keys: []string{"b"}},
		},
		{
			name:    "max properties",
			schema:  `{"type": "object", "maxProperties": 1}`,
			content: `{"a": 1, "b": 2}`,
			want:    &issue.TooBig{Type: "object", Maximum: 1, Inclusive: true},
		},
		{
			name:    "not",
			schema:  `{"not": {"type": "string"}}`,
			content: `"x"`,
			want:    &issue.Custom{Rule: "not"},
		},
		{
			name:    "unique items",
			schema:  `{"type": "array", "uniqueItems": true}`,
			content: `[1, 1]`,
			want:    &issue.Custom{Rule: "uniqueItems"},
		},
		{
			name:    "nested array item",
			schema:  `{"type": "array", "items": {"type": "object", "properties": {"id": {"type": "integer"}}}}`,
			content: `[{"id": 1}, {"id": "two"}]`,
			want:    &issue.InvalidType{Expected: "integer", Received: "string"},
			path:    []string{"1", "id"},
		},
		{
			name:    "content encoding",
			schema:  `{"type": "string", "contentEncoding": "base64"}`,
			content: `"***"`,
			want:    &issue.InvalidString{Validation: issue.StringValidation{Name: "contentEncoding"}},
		},
		{
			name:    "content media type",
			schema:  `{"type": "string", "contentMediaType": "application/json"}`,
			content: `"{not json"`,
			want:    &issue.InvalidString{Validation: issue.StringValidation{Name: "contentMediaType"}},
		},
		{
			name:    "malformed json",
			schema:  `{}`,
			content: `{"a":`,
			want:    &issue.InvalidType{Expected: "json value", Received: "malformed json"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := NewValidator(tt.schema, types.FormatJSONSchema)
			require.NoError(t, err)

			res := v.SafeParse([]byte(tt.content))
			require.False(t, res.Success)
			require.Len(t, res.Issues, 1)
			assert.Equal(t, tt.want, res.Issues[0].Detail)
			assert.Equal(t, tt.path, res.Issues[0].Path)
			assert.NotEmpty(t, res.Issues[0].Message)
		})
	}
}

func TestValidator_ContentRulesStayPrivate(t *testing.T) {
	v, err := NewValidator(`{"type": "string", "contentMediaType": "application/json"}`, types.FormatJSONSchema)
	require.NoError(t, err)

	out := safeparse.SafeParse[any]([]byte(`"{not json"`), v, types.PolicyPrivacyPreserving)
	failure, ok := out.(safeparse.Failure[any])
	require.True(t, ok, "outcome: %#v", out)
	require.Len(t, failure.Errors, 1)
	assert.Equal(t, "The string for the field is invalid; It should be a contentMediaType", failure.Errors[0].Message)
	assert.NotContains(t, failure.Errors[0].Message, "application/json")
}

func TestValidator_IssuesSortedByPath(t *testing.T) {
	v, err := NewValidator(`{"type": "array", "items": {"type": "string"}}`, types.FormatJSONSchema)
	require.NoError(t, err)

	items := make([]any, 12)
	for i := range items {
		items[i] = i
	}
	res := v.SafeParse(items)
	require.False(t, res.Success)
	require.Len(t, res.Issues, 12)
	for i, iss := range res.Issues {
		assert.Equal(t, []string{strconv.Itoa(i)}, iss.Path)
	}
}

func TestValidator_NonFinite(t *testing.T) {
	v, err := NewValidator(`{"type": "object"}`, types.FormatJSONSchema)
	require.NoError(t, err)

	res := v.SafeParse(map[string]any{
		"ok":    1.5,
		"ratio": math.Inf(1),
		"list":  []float64{0, math.NaN()},
	})
	require.False(t, res.Success)
	require.Len(t, res.Issues, 2)
	assert.Equal(t, []string{"list", "1"}, res.Issues[0].Path)
	assert.Equal(t, []string{"ratio"}, res.Issues[1].Path)
	assert.Equal(t, issue.CodeNotFinite, res.Issues[1].Code())
}

func TestValidator_Predicates(t *testing.T) {
	zod := `z.object({ slug: z.string().refine(isSlug, { message: "not a slug" }) })`

	_, err := NewValidator(zod, types.FormatZod)
	require.Error(t, err, "unknown predicates are rejected at compile time")

	v, err := NewValidator(zod, types.FormatZod, WithPredicate("isSlug", func(v any) bool {
		s, _ := v.(string)
		return s != "" && s[0] != '-'
	}))
	require.NoError(t, err)

	res := v.SafeParse(map[string]any{"slug": "-bad"})
	require.False(t, res.Success)
	assert.Equal(t, &issue.Custom{Rule: "isSlug"}, res.Issues[0].Detail)
	assert.Equal(t, "not a slug", res.Issues[0].Message)
}

func TestValidator_SingleLineField(t *testing.T) {
	v, err := NewValidator(`z.object({ title: stringEffectFields.string1To20Line })`, types.FormatZod)
	require.NoError(t, err)

	res := v.SafeParse(map[string]any{"title": "two\nlines"})
	require.False(t, res.Success)
	require.Len(t, res.Issues, 1)

	got := safeparse.SafeParse[any](map[string]any{"title": "two\nlines"}, v, types.PolicyDiagnostic)
	failure := got.(safeparse.Failure[any])
	assert.Equal(t, []types.FormattedError{{
		Path:    "title",
		Message: "The custom validation function did not pass; The string should be a single line with less than 20 characters",
	}}, failure.Errors)
}
