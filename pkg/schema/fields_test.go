package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringField(t *testing.T) {
	for _, key := range StringFieldKeys() {
		s, ok := StringField(key)
		require.True(t, ok, key)
		assert.Equal(t, "string", s.Type, key)
		assert.Equal(t, 1, *s.MinLength, key)
	}

	s, ok := StringField("string1To2600")
	require.True(t, ok)
	assert.Equal(t, 2600, *s.MaxLength)

	s, ok = StringField("stringBaseName")
	require.True(t, ok)
	assert.Equal(t, BaseNamePattern, s.Pattern)
	assert.Equal(t, 60, *s.MaxLength)

	_, ok = StringField("string1To11")
	assert.False(t, ok)
}

func TestStringLineField(t *testing.T) {
	for _, key := range StringLineFieldKeys() {
		_, ok := StringLineField(key)
		assert.True(t, ok, key)
	}

	s, ok := StringLineField("string1To140Line")
	require.True(t, ok)
	assert.Equal(t, 140, *s.MaxLength)
	assert.Equal(t, []RefineRule{{
		Rule:    "singleLine",
		Message: "The string should be a single line with less than 140 characters",
	}}, s.Refine)

	_, ok = StringLineField("string1To200Line")
	assert.False(t, ok)
}

func TestIsSingleLine(t *testing.T) {
	assert.True(t, IsSingleLine(""))
	assert.True(t, IsSingleLine("one line"))
	assert.False(t, IsSingleLine("two\nlines"))
	assert.False(t, IsSingleLine("carriage\rreturn"))
}

func TestBuiltinPredicates(t *testing.T) {
	assert.True(t, builtinPredicates["keyName"]("first_name"))
	assert.False(t, builtinPredicates["keyName"]("A"))
	assert.True(t, builtinPredicates["keyName"](42), "non-strings are left to type checks")
	assert.False(t, builtinPredicates["singleLine"]("a\nb"))
}

func TestDescribeEnum(t *testing.T) {
	members := []EnumDescription{
		{Name: "blue", Title: "The colour of the sky"},
		{Name: "red", Title: "The colour of fire"},
	}

	got := DescribeEnum("Pick a colour", members)
	assert.Equal(t, "Pick a colour\nblue: The colour of the sky\nred: The colour of fire", got)

	s := EnumSchema("Pick a colour", members)
	assert.Equal(t, []any{"blue", "red"}, s.Enum)
	assert.Equal(t, got, s.Description)
}
