package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseYAMLDocument(t *testing.T) {
	doc, err := ParseYAMLDocument([]byte(`
type: object
properties:
  status:
    enum: [active, disabled]
  codes:
    type: object
    properties:
      1: {type: string}
`))
	require.NoError(t, err)

	root, ok := doc.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "object", root["type"])

	props := root["properties"].(map[string]any)
	assert.Equal(t, []any{"active", "disabled"}, props["status"].(map[string]any)["enum"])

	codes := props["codes"].(map[string]any)["properties"].(map[string]any)
	assert.Contains(t, codes, "1")
}

func TestParseYAMLDocument_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "multiple documents", input: "type: string\n---\ntype: number\n"},
		{name: "malformed", input: "type: [string\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseYAMLDocument([]byte(tt.input))
			assert.Error(t, err)
		})
	}
}
