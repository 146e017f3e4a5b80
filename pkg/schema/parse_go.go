package schema

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseResult contains the parsed schema and any warnings encountered.
type ParseResult struct {
	Schema   *JSONSchema
	Warnings []string
}

// GoStructParser parses Go struct definitions into JSON Schema.
type GoStructParser struct {
	// structs holds all parsed struct definitions keyed by name
	structs map[string]*JSONSchema
	// warnings collects non-fatal issues found during parsing
	warnings []string
}

// ParseGoStruct parses one or more Go struct definitions and returns a JSON Schema.
// The first struct defined is treated as the root schema.
// Nested structs are supported through $defs references.
//
// Constraints are read from validate tags (see applyValidateTag). Returns an
// error if the schema contains forbidden types (any, interface{}) or unknown
// validate rules.
//
// Example input:
//
//	type Signup struct {
//	    Name    string   `json:"name" validate:"min=1,max=10"`
//	    Tags    []string `json:"tags" validate:"min=1"`
//	    Website string   `json:"website" validate:"url,startswith=https://"`
//	    Color   *string  `json:"color,omitempty" validate:"omitempty,oneof=blue orange red"`
//	}
func ParseGoStruct(input string) (*JSONSchema, error) {
	result, err := ParseGoStructWithWarnings(input)
	if err != nil {
		return nil, err
	}
	return result.Schema, nil
}

// ParseGoStructWithWarnings parses Go struct definitions and returns the schema along with warnings.
// Warnings are returned for types that allow arbitrary data (json.RawMessage, []byte).
func ParseGoStructWithWarnings(input string) (*ParseResult, error) {
	parser := &GoStructParser{
		structs:  make(map[string]*JSONSchema),
		warnings: make([]string, 0),
	}

	structDefs := extractStructDefs(input)
	if len(structDefs) == 0 {
		return nil, fmt.Errorf("no struct definitions found in input")
	}

	rootName := structDefs[0].name
	for _, def := range structDefs {
		parser.structs[def.name] = nil
	}

	for _, def := range structDefs {
		schema, err := parser.parseStructBody(def.name, def.body)
		if err != nil {
			return nil, fmt.Errorf("parsing struct %s: %w", def.name, err)
		}
		parser.structs[def.name] = schema
	}

	rootSchema := parser.structs[rootName]
	if len(parser.structs) > 1 {
		rootSchema.Definitions = make(map[string]*JSONSchema)
		for name, schema := range parser.structs {
			if name != rootName && schema != nil {
				rootSchema.Definitions[name] = schema
			}
		}
	}

	return &ParseResult{
		Schema:   rootSchema,
		Warnings: parser.warnings,
	}, nil
}

type structDef struct {
	name string
	body string
}

var structHeaderRegex = regexp.MustCompile(`type\s+(\w+)\s+struct\s*\{`)

// extractStructDefs finds struct headers with a regex, then extracts bodies
// by brace matching.
func extractStructDefs(input string) []structDef {
	input = strings.ReplaceAll(input, "\\n", "\n")
	input = strings.ReplaceAll(input, ";", "\n")

	defs := make([]structDef, 0)
	for _, match := range structHeaderRegex.FindAllStringSubmatchIndex(input, -1) {
		name := input[match[2]:match[3]]
		body, ok := extractBalancedBraces(input[match[1]-1:])
		if ok && len(body) >= 2 {
			defs = append(defs, structDef{name: name, body: body[1 : len(body)-1]})
		}
	}
	return defs
}

// extractBalancedBraces extracts a brace-balanced substring starting with '{'.
func extractBalancedBraces(s string) (string, bool) {
	if len(s) == 0 || s[0] != '{' {
		return "", false
	}

	depth := 0
	inString := false
	inRawString := false

	for i := 0; i < len(s); i++ {
		ch := s[i]

		if inString {
			if ch == '\\' && i+1 < len(s) {
				i++
				continue
			}
			if ch == '"' {
				inString = false
			}
			continue
		}
		if inRawString {
			if ch == '`' {
				inRawString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
		case '`':
			inRawString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[:i+1], true
			}
		}
	}

	return "", false
}

func (p *GoStructParser) parseStructBody(structName, body string) (*JSONSchema, error) {
	schema := &JSONSchema{
		Type:       "object",
		Properties: make(map[string]*JSONSchema),
	}

	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "//") {
			continue
		}

		field, err := p.parseField(structName, line)
		if err != nil {
			return nil, err
		}
		if field == nil {
			continue
		}

		schema.Properties[field.jsonName] = field.schema
		if !field.optional {
			schema.Required = append(schema.Required, field.jsonName)
		}
	}

	return schema, nil
}

type fieldInfo struct {
	jsonName string
	schema   *JSONSchema
	optional bool
}

var fieldRegex = regexp.MustCompile(`^\s*(\w+)\s+(\S+)(?:\s+` + "`" + `([^` + "`" + `]+)` + "`" + `)?\s*(?://.*)?$`)

func (p *GoStructParser) parseField(structName, line string) (*fieldInfo, error) {
	match := fieldRegex.FindStringSubmatch(line)
	if match == nil {
		return nil, nil
	}

	fieldName := match[1]
	fieldType := match[2]
	tags := match[3]

	jsonName, omitempty := parseJSONTag(tags)
	if jsonName == "" {
		jsonName = strings.ToLower(fieldName[:1]) + fieldName[1:]
	}
	if jsonName == "-" {
		return nil, nil
	}

	schema, isPointer, err := p.parseType(fieldType, structName, fieldName)
	if err != nil {
		return nil, err
	}

	rules := parseTag(tags, "validate")
	optional := omitempty || isPointer
	if rules != "" {
		opt, err := applyValidateTag(schema, rules)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", structName, fieldName, err)
		}
		optional = optional || opt
		if strings.Contains(","+rules+",", ",required,") {
			optional = false
		}
	}

	return &fieldInfo{
		jsonName: jsonName,
		schema:   schema,
		optional: optional,
	}, nil
}

// parseJSONTag extracts the JSON field name and omitempty flag from struct tags.
func parseJSONTag(tags string) (name string, omitempty bool) {
	value := parseTag(tags, "json")
	if value == "" {
		return "", false
	}

	parts := strings.Split(value, ",")
	for _, part := range parts[1:] {
		if part == "omitempty" || part == "omitzero" {
			omitempty = true
		}
	}
	return parts[0], omitempty
}

var tagRegex = regexp.MustCompile(`(\w+):"((?:[^"\\]|\\.)*)"`)

// parseTag returns the value of one key in a struct tag.
func parseTag(tags, key string) string {
	for _, m := range tagRegex.FindAllStringSubmatch(tags, -1) {
		if m[1] == key {
			return m[2]
		}
	}
	return ""
}

var forbiddenTypes = map[string]bool{
	"any":         true,
	"interface{}": true,
}

var warningTypes = map[string]bool{
	"json.RawMessage": true,
	"[]byte":          true,
}

// parseType parses a Go type and returns a JSON Schema.
// Returns the schema, whether the type is a pointer, and any error.
// Pointer types generate nullable schemas (anyOf with null).
func (p *GoStructParser) parseType(typeStr, structName, fieldName string) (*JSONSchema, bool, error) {
	typeStr = strings.TrimSpace(typeStr)
	isPointer := false

	if strings.HasPrefix(typeStr, "*") {
		isPointer = true
		typeStr = strings.TrimPrefix(typeStr, "*")
	}

	if forbiddenTypes[typeStr] {
		return nil, false, fmt.Errorf("field %s.%s uses forbidden type %q: untyped values cannot be validated against a schema", structName, fieldName, typeStr)
	}

	if warningTypes[typeStr] {
		p.warnings = append(p.warnings, fmt.Sprintf("field %s.%s uses type %q which allows arbitrary data and cannot be fully validated", structName, fieldName, typeStr))
		return &JSONSchema{}, isPointer, nil
	}

	if strings.HasPrefix(typeStr, "[]") {
		elemSchema, _, err := p.parseType(strings.TrimPrefix(typeStr, "[]"), structName, fieldName)
		if err != nil {
			return nil, false, err
		}
		return maybeNullable(&JSONSchema{Type: "array", Items: elemSchema}, isPointer), isPointer, nil
	}

	if strings.HasPrefix(typeStr, "map[string]") {
		valueSchema, _, err := p.parseType(strings.TrimPrefix(typeStr, "map[string]"), structName, fieldName)
		if err != nil {
			return nil, false, err
		}
		schema := &JSONSchema{Type: "object", AdditionalProperties: valueSchema}
		return maybeNullable(schema, isPointer), isPointer, nil
	}

	var schema *JSONSchema
	switch typeStr {
	case "string":
		schema = &JSONSchema{Type: "string"}
	case "int", "int8", "int16", "int32", "int64", "uint", "uint8", "uint16", "uint32", "uint64":
		schema = &JSONSchema{Type: "integer"}
	case "float32", "float64":
		schema = &JSONSchema{Type: "number"}
	case "bool":
		schema = &JSONSchema{Type: "boolean"}
	case "time.Time":
		schema = &JSONSchema{Type: "string", Format: "date-time"}
	default:
		if _, known := p.structs[typeStr]; !known {
			p.warnings = append(p.warnings, fmt.Sprintf("field %s.%s uses unknown type %q which will match any value", structName, fieldName, typeStr))
			return &JSONSchema{}, isPointer, nil
		}
		schema = &JSONSchema{Ref: "#/$defs/" + typeStr}
	}

	return maybeNullable(schema, isPointer), isPointer, nil
}

// maybeNullable wraps a schema in anyOf with null if the field is a pointer.
func maybeNullable(schema *JSONSchema, isPointer bool) *JSONSchema {
	if !isPointer {
		return schema
	}
	return &JSONSchema{
		AnyOf: []*JSONSchema{
			schema,
			{Type: "null"},
		},
	}
}

// applyValidateTag translates go-playground validate rules into constraints
// on s. Rules after "dive" apply to array items or map values. Reports
// whether the rules make the field optional.
func applyValidateTag(s *JSONSchema, rules string) (optional bool, err error) {
	target := nonNull(s)
	parts := strings.Split(rules, ",")
	for i, rule := range parts {
		name, param, _ := strings.Cut(rule, "=")
		switch name {
		case "", "required":
		case "omitempty":
			optional = true
		case "dive":
			elem := target.Items
			if v, ok := target.AdditionalProperties.(*JSONSchema); ok {
				elem = v
			}
			if elem == nil {
				return false, fmt.Errorf("dive on a field that is neither a slice nor a map")
			}
			_, err := applyValidateTag(elem, strings.Join(parts[i+1:], ","))
			return optional, err
		case "min", "gte":
			err = withFloat(param, rule, func(n float64) { setMin(target, n, true) })
		case "gt":
			err = withFloat(param, rule, func(n float64) { setMin(target, n, false) })
		case "max", "lte":
			err = withFloat(param, rule, func(n float64) { setMax(target, n, true) })
		case "lt":
			err = withFloat(param, rule, func(n float64) { setMax(target, n, false) })
		case "len":
			err = withFloat(param, rule, func(n float64) {
				setMin(target, n, true)
				setMax(target, n, true)
			})
		case "oneof":
			for _, v := range strings.Fields(param) {
				target.Enum = append(target.Enum, enumValue(target.Type, v))
			}
		case "email":
			target.Format = "email"
		case "url", "uri", "http_url":
			target.Format = "uri"
		case "uuid", "uuid4", "uuid_rfc4122":
			target.Format = "uuid"
		case "ip", "ipv4", "ip4_addr":
			target.Format = "ipv4"
		case "ipv6", "ip6_addr":
			target.Format = "ipv6"
		case "datetime":
			target.Format = "date-time"
		case "hostname", "hostname_rfc1123":
			target.Format = "hostname"
		case "startswith":
			target.StringRules = append(target.StringRules, StringRule{Name: "startsWith", Value: param})
		case "endswith":
			target.StringRules = append(target.StringRules, StringRule{Name: "endsWith", Value: param})
		case "contains":
			target.StringRules = append(target.StringRules, StringRule{Name: "includes", Value: param})
		case singleLineTag:
			target.Refine = append(target.Refine, RefineRule{Rule: "singleLine"})
		case keyNameTag:
			target.Refine = append(target.Refine, RefineRule{Rule: "keyName"})
		default:
			return false, fmt.Errorf("unsupported validate rule %q", name)
		}
		if err != nil {
			return false, err
		}
	}
	return optional, nil
}

// nonNull returns the non-null member of a nullable wrapper.
func nonNull(s *JSONSchema) *JSONSchema {
	if len(s.AnyOf) == 2 && s.AnyOf[1].Type == "null" {
		return s.AnyOf[0]
	}
	return s
}

func withFloat(param, rule string, apply func(float64)) error {
	n, err := strconv.ParseFloat(param, 64)
	if err != nil {
		return fmt.Errorf("validate rule %q: %w", rule, err)
	}
	apply(n)
	return nil
}

func enumValue(typ, v string) any {
	switch typ {
	case "integer", "number":
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return n
		}
	}
	return v
}
