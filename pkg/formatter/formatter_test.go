package formatter

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/usestring/safeparse-mcp/pkg/issue"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

func TestDiagnostic_Format(t *testing.T) {
	tests := []struct {
		name     string
		iss      issue.Issue
		wantPath string
		wantMsg  string
	}{
		{
			name:     "invalid type",
			iss:      issue.Issue{Path: []string{"name"}, Detail: &issue.InvalidType{Expected: "string", Received: "number"}},
			wantPath: "name",
			wantMsg:  "The type for the field is invalid; I would expect string instead of number",
		},
		{
			name:     "invalid string uses engine message",
			iss:      issue.Issue{Path: []string{"website"}, Message: "Invalid url", Detail: &issue.InvalidString{Validation: issue.StringValidation{Name: "url"}}},
			wantPath: "website",
			wantMsg:  "The string for the field is invalid; Invalid url. It should be a url",
		},
		{
			name: "invalid string with short engine message keeps the rule",
			iss: issue.Issue{Path: []string{"website"}, Message: `must start with "a"`, Detail: &issue.InvalidString{Validation: issue.StringValidation{
				Name:   "startsWith",
				Params: []issue.StringParam{{Name: "startsWith", Value: "a"}},
			}}},
			wantPath: "website",
			wantMsg:  `The string for the field is invalid; must start with "a". It should have startsWith`,
		},
		{
			name:     "invalid string engine message already names the rule",
			iss:      issue.Issue{Path: []string{"email"}, Message: "It should be a email address", Detail: &issue.InvalidString{Validation: issue.StringValidation{Name: "email"}}},
			wantPath: "email",
			wantMsg:  "The string for the field is invalid; It should be a email address",
		},
		{
			name:     "invalid string without engine message",
			iss:      issue.Issue{Path: []string{"website"}, Detail: &issue.InvalidString{Validation: issue.StringValidation{Name: "url"}}},
			wantPath: "website",
			wantMsg:  "The string for the field is invalid; It should be a url",
		},
		{
			name: "enum",
			iss: issue.Issue{Path: []string{"color"}, Detail: &issue.InvalidEnumValue{
				Options:  []any{"blue", "orange", "red"},
				Received: "purple",
			}},
			wantPath: "color",
			wantMsg:  "The enum for the field is invalid; I would expect any of blue,orange,red instead of purple",
		},
		{
			name:     "literal",
			iss:      issue.Issue{Path: []string{"kind"}, Detail: &issue.InvalidLiteral{Expected: "test", Received: "other"}},
			wantPath: "kind",
			wantMsg:  "The literal for the field is invalid; I would expect test",
		},
		{
			name:     "literal number",
			iss:      issue.Issue{Path: []string{"version"}, Detail: &issue.InvalidLiteral{Expected: 2.0}},
			wantPath: "version",
			wantMsg:  "The literal for the field is invalid; I would expect 2",
		},
		{
			name:     "literal object",
			iss:      issue.Issue{Detail: &issue.InvalidLiteral{Expected: map[string]any{"a": 1}}},
			wantPath: "",
			wantMsg:  "The literal for the field is invalid; I would expect typeof object",
		},
		{
			name:     "discriminator",
			iss:      issue.Issue{Path: []string{"day", "kind"}, Detail: &issue.InvalidUnionDiscriminator{Options: []any{"monday", "tuesday"}}},
			wantPath: "day.kind",
			wantMsg:  "The union discriminator for the object is invalid; I would expect any of monday,tuesday",
		},
		{
			name: "union",
			iss: issue.Issue{Path: []string{"jour"}, Detail: &issue.InvalidUnion{Branches: [][]issue.Issue{
				{{Path: []string{"jour", "lundi"}}},
				{{Path: []string{"jour", "mardi"}}},
			}}},
			wantPath: "jour",
			wantMsg:  "The union for the field is invalid; I would review jour,lundi or jour,mardi",
		},
		{
			name:     "too big",
			iss:      issue.Issue{Path: []string{"activities", "longlonglonglongKey"}, Detail: &issue.TooBig{Type: "string", Maximum: 10, Inclusive: true}},
			wantPath: "activities.longlonglonglongKey",
			wantMsg:  "The string for the field is too big; I would expect the maximum to be 10",
		},
		{
			name:     "too small",
			iss:      issue.Issue{Path: []string{"tags"}, Detail: &issue.TooSmall{Type: "array", Minimum: 1, Inclusive: true}},
			wantPath: "tags",
			wantMsg:  "The array for the field is too small; I would expect the minimum to be 1",
		},
		{
			name:     "too small safe integer",
			iss:      issue.Issue{Path: []string{"n"}, Detail: &issue.TooSmall{Type: "number", Minimum: -9007199254740991}},
			wantPath: "n",
			wantMsg:  "The number for the field is too small; I would expect the minimum to be -9007199254740991",
		},
		{
			name:     "too big without type",
			iss:      issue.Issue{Detail: &issue.TooBig{Maximum: 1.5}},
			wantMsg:  "The value for the field is too big; I would expect the maximum to be 1.5",
			wantPath: "",
		},
		{
			name:     "custom with message",
			iss:      issue.Issue{Path: []string{"title"}, Message: "The string should be a single line with less than 80 characters", Detail: &issue.Custom{Rule: "singleLine"}},
			wantPath: "title",
			wantMsg:  "The custom validation function did not pass; The string should be a single line with less than 80 characters",
		},
		{
			name:     "custom without message",
			iss:      issue.Issue{Detail: &issue.Custom{}},
			wantMsg:  "The custom validation function did not pass",
		},
		{
			name:     "unrecognized keys",
			iss:      issue.Issue{Message: "additional properties 'x' not allowed", Detail: &issue.UnrecognizedKeys{Keys: []string{"x"}}},
			wantMsg:  "The keys are not recognized; additional properties 'x' not allowed",
		},
		{
			name:     "not finite",
			iss:      issue.Issue{Path: []string{"score"}, Detail: &issue.NotFinite{}},
			wantPath: "score",
			wantMsg:  "The number is not finite",
		},
		{
			name:     "unknown kind",
			iss:      issue.Issue{Path: []string{"a"}, Message: "whatever", Detail: &issue.Unknown{Kind: "future_kind"}},
			wantPath: "a",
			wantMsg:  "The type for the field is incorrect",
		},
		{
			name:    "nil detail",
			iss:     issue.Issue{Message: "boom"},
			wantMsg: "The type for the field is incorrect",
		},
		{
			name:    "typed nil detail",
			iss:     issue.Issue{Detail: (*issue.InvalidType)(nil)},
			wantMsg: "The type for the field is incorrect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Diagnostic.Format(tt.iss)
			assert.Equal(t, tt.wantPath, got.Path)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestPrivate_Format(t *testing.T) {
	tests := []struct {
		name    string
		iss     issue.Issue
		wantMsg string
	}{
		{
			name:    "invalid type keeps type names",
			iss:     issue.Issue{Detail: &issue.InvalidType{Expected: "string", Received: "number"}},
			wantMsg: "The type for the field is invalid; I would expect string instead of number",
		},
		{
			name:    "invalid string names the rule",
			iss:     issue.Issue{Message: "Invalid url", Detail: &issue.InvalidString{Validation: issue.StringValidation{Name: "url"}}},
			wantMsg: "The string for the field is invalid; It should be a url",
		},
		{
			name: "invalid string names parameters only",
			iss: issue.Issue{Message: `Invalid input: must start with "https://"`, Detail: &issue.InvalidString{Validation: issue.StringValidation{
				Name:   "startsWith",
				Params: []issue.StringParam{{Name: "startsWith", Value: "https://"}},
			}}},
			wantMsg: "The string for the field is invalid; It should have startsWith",
		},
		{
			name:    "invalid string without rule",
			iss:     issue.Issue{Detail: &issue.InvalidString{}},
			wantMsg: "The string for the field is invalid",
		},
		{
			name:    "enum hides options and value",
			iss:     issue.Issue{Detail: &issue.InvalidEnumValue{Options: []any{"blue"}, Received: "purple"}},
			wantMsg: "The enum for the field is invalid",
		},
		{
			name:    "literal hides expectation",
			iss:     issue.Issue{Detail: &issue.InvalidLiteral{Expected: "test"}},
			wantMsg: "The literal for the field is invalid",
		},
		{
			name:    "discriminator hides candidates",
			iss:     issue.Issue{Detail: &issue.InvalidUnionDiscriminator{Options: []any{"monday"}}},
			wantMsg: "The union discriminator for the object is invalid",
		},
		{
			name:    "union hides branches",
			iss:     issue.Issue{Detail: &issue.InvalidUnion{Branches: [][]issue.Issue{{{Path: []string{"a"}}}}}},
			wantMsg: "The union for the field is invalid",
		},
		{
			name:    "too big hides bound",
			iss:     issue.Issue{Detail: &issue.TooBig{Type: "string", Maximum: 10}},
			wantMsg: "The string for the field is too big",
		},
		{
			name:    "too small hides bound",
			iss:     issue.Issue{Detail: &issue.TooSmall{Type: "string", Minimum: 1}},
			wantMsg: "The string for the field is too small",
		},
		{
			name:    "custom hides message",
			iss:     issue.Issue{Message: "secret", Detail: &issue.Custom{Rule: "x"}},
			wantMsg: "The custom validation function did not pass",
		},
		{
			name:    "not multiple of hides message",
			iss:     issue.Issue{Message: "7 not multipleOf 2", Detail: &issue.NotMultipleOf{MultipleOf: 2}},
			wantMsg: "The number is not the right multiple of",
		},
		{
			name:    "unknown kind",
			iss:     issue.Issue{Detail: &issue.Unknown{}},
			wantMsg: "The type for the field is incorrect",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Private.Format(tt.iss)
			assert.Equal(t, tt.wantMsg, got.Message)
		})
	}
}

func TestSelect(t *testing.T) {
	enum := issue.Issue{Detail: &issue.InvalidEnumValue{Options: []any{"a"}, Received: "b"}}

	tests := []struct {
		policy types.FormattingPolicy
		want   string
	}{
		{types.PolicyDiagnostic, "The enum for the field is invalid; I would expect any of a instead of b"},
		{types.PolicyPrivacyPreserving, "The enum for the field is invalid"},
		{"", "The enum for the field is invalid; I would expect any of a instead of b"},
		{"chatty", "The enum for the field is invalid; I would expect any of a instead of b"},
		{types.ParsePolicy("Privacy-First"), "The enum for the field is invalid"},
	}

	for _, tt := range tests {
		t.Run(string(tt.policy), func(t *testing.T) {
			assert.Equal(t, tt.want, Select(tt.policy).Format(enum).Message)
		})
	}
}

func TestFormatAll_PreservesOrder(t *testing.T) {
	issues := []issue.Issue{
		{Path: []string{"b"}, Detail: &issue.NotFinite{}},
		{Path: []string{"a"}, Detail: &issue.InvalidDate{}},
		{Path: []string{"b"}, Detail: &issue.NotFinite{}},
	}

	got := FormatAll(Diagnostic, issues)
	assert.Len(t, got, 3)
	assert.Equal(t, "b", got[0].Path)
	assert.Equal(t, "a", got[1].Path)
	assert.Equal(t, "The date is invalid", got[1].Message)
	assert.Equal(t, got[0], got[2])
	assert.Empty(t, FormatAll(Private, nil))
}

func TestRenderPrimitive(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{"raw", "raw"},
		{42, "42"},
		{int64(-7), "-7"},
		{uint8(3), "3"},
		{3.25, "3.25"},
		{1e21, "1000000000000000000000"},
		{math.Inf(1), "Infinity"},
		{math.NaN(), "NaN"},
		{true, "true"},
		{false, "false"},
		{nil, "typeof null"},
		{[]any{1}, "typeof array"},
		{map[string]any{}, "typeof object"},
		{struct{}{}, "typeof object"},
		{func() {}, "typeof function"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, renderPrimitive(tt.in))
	}
}
