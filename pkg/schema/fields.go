package schema

import (
	"fmt"
	"regexp"
	"strings"
)

// KeyNamePattern matches identifiers such as "first_name".
const KeyNamePattern = `[a-z][\d_a-z]+`

// BaseNamePattern matches names such as "report-2024.v1".
const BaseNamePattern = `[a-z][\d._a-z-]+`

var keyNameRegexp = regexp.MustCompile(KeyNamePattern)

// IsSingleLine reports whether s contains no line break.
func IsSingleLine(s string) bool {
	return !strings.ContainsAny(s, "\n\r")
}

// Predicate is a named check usable from the refine keyword. Predicates
// accept any JSON value and decide what to do with values of other types.
type Predicate func(v any) bool

var builtinPredicates = map[string]Predicate{
	"singleLine": func(v any) bool {
		s, ok := v.(string)
		return !ok || IsSingleLine(s)
	},
	"keyName": func(v any) bool {
		s, ok := v.(string)
		return !ok || keyNameRegexp.MatchString(s)
	},
}

// stringSizes are the maximum lengths of the StringField presets.
var stringSizes = []int{10, 20, 30, 50, 80, 140, 200, 400, 600, 1000, 1600, 2600, 5000}

// lineSizes are the maximum lengths of the StringLineField presets.
var lineSizes = []int{10, 20, 30, 50, 80, 140}

// StringFieldKeys lists the keys accepted by StringField.
func StringFieldKeys() []string {
	keys := make([]string, 0, len(stringSizes)+2)
	for _, n := range stringSizes {
		keys = append(keys, fmt.Sprintf("string1To%d", n))
	}
	return append(keys, "stringKeyName", "stringBaseName")
}

// StringLineFieldKeys lists the keys accepted by StringLineField.
func StringLineFieldKeys() []string {
	keys := make([]string, 0, len(lineSizes))
	for _, n := range lineSizes {
		keys = append(keys, fmt.Sprintf("string1To%dLine", n))
	}
	return keys
}

// StringField returns the preset string schema for key, such as
// "string1To50" (1 to 50 characters) or "stringKeyName".
func StringField(key string) (*JSONSchema, bool) {
	switch key {
	case "stringKeyName":
		return &JSONSchema{Type: "string", MinLength: intPtr(1), MaxLength: intPtr(60), Pattern: KeyNamePattern}, true
	case "stringBaseName":
		return &JSONSchema{Type: "string", MinLength: intPtr(1), MaxLength: intPtr(60), Pattern: BaseNamePattern}, true
	}
	for _, n := range stringSizes {
		if key == fmt.Sprintf("string1To%d", n) {
			return boundedString(n), true
		}
	}
	return nil, false
}

// StringLineField returns the preset single-line string schema for key,
// such as "string1To80Line".
func StringLineField(key string) (*JSONSchema, bool) {
	for _, n := range lineSizes {
		if key == fmt.Sprintf("string1To%dLine", n) {
			s := boundedString(n)
			s.Refine = []RefineRule{{Rule: "singleLine", Message: singleLineMessage(n)}}
			return s, true
		}
	}
	return nil, false
}

func boundedString(maxLen int) *JSONSchema {
	return &JSONSchema{Type: "string", MinLength: intPtr(1), MaxLength: intPtr(maxLen)}
}

func singleLineMessage(maxLen int) string {
	return fmt.Sprintf("The string should be a single line with less than %d characters", maxLen)
}
