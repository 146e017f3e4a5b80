package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usestring/safeparse-mcp/pkg/issue"
)

type profile struct {
	Name  string   `json:"name" jsonschema:"minLength=1,maxLength=20"`
	Age   int      `json:"age,omitempty" jsonschema:"minimum=0"`
	Email string   `json:"email,omitempty" jsonschema:"format=email"`
	Tags  []string `json:"tags,omitempty"`
}

func TestForType(t *testing.T) {
	typed, err := ForType[profile]()
	require.NoError(t, err)

	res := typed.SafeParse([]byte(`{"name": "Ann", "age": 3, "tags": ["x"], "extra": true}`))
	require.True(t, res.Success, "issues: %+v", res.Issues)
	assert.Equal(t, profile{Name: "Ann", Age: 3, Tags: []string{"x"}}, res.Data)

	tests := []struct {
		name    string
		content string
		path    []string
		want    issue.Detail
	}{
		{
			name:    "missing name",
			content: `{}`,
			path:    []string{"name"},
			want:    &issue.InvalidType{Expected: "string", Received: "undefined"},
		},
		{
			name:    "empty name",
			content: `{"name": ""}`,
			path:    []string{"name"},
			want:    &issue.TooSmall{Type: "string", Minimum: 1, Inclusive: true},
		},
		{
			name:    "negative age",
			content: `{"name": "Ann", "age": -1}`,
			path:    []string{"age"},
			want:    &issue.TooSmall{Type: "number", Minimum: 0, Inclusive: true},
		},
		{
			name:    "email",
			content: `{"name": "Ann", "email": "ann"}`,
			path:    []string{"email"},
			want:    &issue.InvalidString{Validation: issue.StringValidation{Name: "email"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := typed.SafeParse([]byte(tt.content))
			require.False(t, res.Success)
			require.Len(t, res.Issues, 1, "issues: %+v", res.Issues)
			assert.Equal(t, tt.path, res.Issues[0].Path)
			assert.Equal(t, tt.want, res.Issues[0].Detail)
		})
	}
}

func TestTyped_DecodeError(t *testing.T) {
	v, err := Compile(&JSONSchema{})
	require.NoError(t, err)

	res := NewTyped[profile](v).SafeParse(map[string]any{"name": 5})
	require.False(t, res.Success)
	require.Len(t, res.Issues, 1)
	assert.Equal(t, []string{"name"}, res.Issues[0].Path)
	assert.Equal(t, &issue.InvalidType{Expected: "string", Received: "number"}, res.Issues[0].Detail)
}

func TestForType_NonStruct(t *testing.T) {
	typed, err := ForType[[]int]()
	require.NoError(t, err)

	res := typed.SafeParse([]byte(`[1, 2, 3]`))
	require.True(t, res.Success)
	assert.Equal(t, []int{1, 2, 3}, res.Data)

	res = typed.SafeParse([]byte(`[1, "two"]`))
	require.False(t, res.Success)
	assert.Equal(t, []string{"1"}, res.Issues[0].Path)
}
