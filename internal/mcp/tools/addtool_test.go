package tools

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckOutputSchema(t *testing.T) {
	type nilSlice struct {
		Items []string `json:"items"`
	}
	type omitzeroSlice struct {
		Items []string `json:"items,omitzero"`
	}
	type rawMessage struct {
		Data json.RawMessage `json:"data,omitempty"`
	}
	type nestedRaw struct {
		Inner struct {
			Schema []json.RawMessage `json:"schema,omitzero"`
		} `json:"inner"`
	}

	tests := []struct {
		name   string
		check  func()
		panics bool
	}{
		{name: "nil slice", check: func() { CheckOutputSchema[nilSlice]("t") }, panics: true},
		{name: "omitzero slice", check: func() { CheckOutputSchema[omitzeroSlice]("t") }},
		{name: "raw message", check: func() { CheckOutputSchema[rawMessage]("t") }, panics: true},
		{name: "nested raw message", check: func() { CheckOutputSchema[nestedRaw]("t") }, panics: true},
		{name: "any", check: func() { CheckOutputSchema[any]("t") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.panics {
				assert.Panics(t, tt.check)
			} else {
				assert.NotPanics(t, tt.check)
			}
		})
	}
}

func TestCheckOutputSchema_ToolOutputs(t *testing.T) {
	assert.NotPanics(t, func() {
		CheckOutputSchema[ValidateOutput]("safeparse_validate")
		CheckOutputSchema[ValidateBatchOutput]("safeparse_validate_batch")
		CheckOutputSchema[ListSchemasOutput]("safeparse_list_schemas")
	})
}
