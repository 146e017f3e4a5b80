package query

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) any {
	t.Helper()
	var v any
	require.NoError(t, json.Unmarshal([]byte(s), &v))
	return v
}

func TestSelector_Select(t *testing.T) {
	doc := decode(t, `{"data": {"user": {"name": "John"}}, "items": [{"id": 1}, {"id": 2}]}`)

	tests := []struct {
		name string
		expr string
		want any
	}{
		{name: "identity", expr: ".", want: doc},
		{name: "nested field", expr: ".data.user", want: map[string]any{"name": "John"}},
		{name: "single value", expr: ".data.user.name", want: "John"},
		{name: "several values", expr: ".items[].id", want: []any{1.0, 2.0}},
		{name: "null field", expr: ".missing", want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := Compile(tt.expr)
			require.NoError(t, err)

			got, err := s.Select(doc)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelector_NoValue(t *testing.T) {
	s, err := Compile(`.items[] | select(.id > 5)`)
	require.NoError(t, err)

	_, err = s.Select(decode(t, `{"items": [{"id": 1}]}`))
	assert.ErrorIs(t, err, ErrNoValue)
}

func TestSelector_RuntimeErrorHint(t *testing.T) {
	s, err := Compile(`.items[]`)
	require.NoError(t, err)

	_, err = s.Select(decode(t, `{"items": null}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "the path may not exist")
}

func TestSelector_Halt(t *testing.T) {
	s, err := Compile(`halt_error`)
	require.NoError(t, err)

	_, err = s.All("boom")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query halted")
}

func TestCompile_Invalid(t *testing.T) {
	_, err := Compile(`.items[`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid jq expression")

	s, err := Compile(`.a | .b`)
	require.NoError(t, err)
	assert.Equal(t, ".a | .b", s.String())
}
