package schema

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// ParseZodSchema parses a Zod schema definition and returns a JSON Schema.
//
// Supported Zod types:
//   - z.string(), z.number(), z.int(), z.boolean(), z.null(), z.date()
//   - z.email(), z.url(), z.uuid()
//   - z.array(schema), z.object({ ... }), z.record([key,] value)
//   - z.enum([...]), z.literal(value)
//   - z.union([...]), z.discriminatedUnion("prop", [...])
//   - stringFields.<key> and stringEffectFields.<key> presets (see StringField)
//
// Supported modifiers:
//   - .optional(), .nullable(), .nullish(), .default(...), .describe("...")
//   - .min(n), .max(n), .length(n), .nonempty(), .array()
//   - .email(), .url(), .uuid(), .datetime(), .date(), .time(), .ip()
//   - .regex(/.../), .startsWith("..."), .endsWith("..."), .includes("...")
//   - .int(), .positive(), .nonnegative(), .negative(), .nonpositive(),
//     .gt(n), .gte(n), .lt(n), .lte(n), .multipleOf(n), .step(n), .safe(), .finite()
//   - .strict(), .passthrough(), .strip()
//   - .refine(isSingleLine|isKeyName|<name>, { message: "..." })
//
// Modifiers that only transform values (.trim(), .transform(...), ...) are
// skipped. Returns an error if the schema contains forbidden types (z.any(),
// z.unknown()) or inline refinement functions.
//
// Example input:
//
//	z.object({
//	  name: stringFields.string1To10,
//	  tags: z.array(z.string().max(20)).min(1),
//	  website: z.string().url().startsWith("https://"),
//	  color: z.enum(["blue", "orange", "red"]).optional()
//	})
func ParseZodSchema(input string) (*JSONSchema, error) {
	parser := &zodParser{
		input:    normalizeZodInput(input),
		pos:      0,
		optional: make(map[*JSONSchema]bool),
	}

	schema, err := parser.parse()
	if err != nil {
		return nil, fmt.Errorf("parsing zod schema: %w", err)
	}

	parser.skipWhitespace()
	if parser.pos < len(parser.input) {
		return nil, fmt.Errorf("parsing zod schema: unexpected %q at position %d", parser.input[parser.pos:], parser.pos)
	}

	return schema, nil
}

// normalizeZodInput cleans up the input for easier parsing.
func normalizeZodInput(input string) string {
	// Remove escaped newlines
	input = strings.ReplaceAll(input, "\\n", "\n")
	input = strings.TrimSpace(input)
	input = strings.TrimSuffix(input, ";")
	return input
}

type zodParser struct {
	input string
	pos   int

	// optional records schemas marked with .optional(), .nullish() or
	// .default(); the enclosing object leaves them out of required.
	optional map[*JSONSchema]bool
}

func (p *zodParser) parse() (*JSONSchema, error) {
	p.skipWhitespace()

	switch {
	case p.match("z."):
		return p.parseZodType()
	case p.match("stringFields."):
		return p.parsePreset(StringField)
	case p.match("stringEffectFields."):
		return p.parsePreset(StringLineField)
	}
	return nil, fmt.Errorf("expected 'z.' at position %d", p.pos)
}

func (p *zodParser) parsePreset(lookup func(string) (*JSONSchema, bool)) (*JSONSchema, error) {
	key := p.readIdentifier()
	schema, ok := lookup(key)
	if !ok {
		return nil, fmt.Errorf("unknown field preset %q at position %d", key, p.pos)
	}
	return p.parseModifiers(schema)
}

func (p *zodParser) parseZodType() (*JSONSchema, error) {
	typeName := p.readIdentifier()
	if typeName == "" {
		return nil, fmt.Errorf("expected type name at position %d", p.pos)
	}

	var schema *JSONSchema
	var err error

	switch typeName {
	case "string", "number", "boolean", "null", "int", "date", "email", "url", "uuid":
		if !p.match("()") {
			return nil, fmt.Errorf("expected '()' after z.%s at position %d", typeName, p.pos)
		}
		schema = primitiveSchema(typeName)

	case "any", "unknown":
		return nil, fmt.Errorf("z.%s() is forbidden: untyped values cannot be validated against a schema", typeName)

	case "array":
		schema, err = p.parseZodArray()
	case "object":
		schema, err = p.parseZodObject()
	case "record":
		schema, err = p.parseZodRecord()
	case "enum":
		schema, err = p.parseZodEnum()
	case "literal":
		schema, err = p.parseZodLiteral()
	case "union":
		schema, err = p.parseZodUnion()
	case "discriminatedUnion":
		schema, err = p.parseZodDiscriminatedUnion()

	default:
		return nil, fmt.Errorf("unknown zod type: z.%s at position %d", typeName, p.pos)
	}
	if err != nil {
		return nil, err
	}

	return p.parseModifiers(schema)
}

func primitiveSchema(typeName string) *JSONSchema {
	switch typeName {
	case "int":
		return &JSONSchema{Type: "integer"}
	case "date":
		return &JSONSchema{Type: "string", Format: "date-time"}
	case "email":
		return &JSONSchema{Type: "string", Format: "email"}
	case "url":
		return &JSONSchema{Type: "string", Format: "uri"}
	case "uuid":
		return &JSONSchema{Type: "string", Format: "uuid"}
	default:
		return &JSONSchema{Type: typeName}
	}
}

func (p *zodParser) parseZodArray() (*JSONSchema, error) {
	if !p.match("(") {
		return nil, fmt.Errorf("expected '(' after z.array at position %d", p.pos)
	}

	itemSchema, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("parsing array items: %w", err)
	}

	p.skipWhitespace()
	if !p.match(")") {
		return nil, fmt.Errorf("expected ')' after array items at position %d", p.pos)
	}

	return &JSONSchema{
		Type:  "array",
		Items: itemSchema,
	}, nil
}

func (p *zodParser) parseZodObject() (*JSONSchema, error) {
	if !p.match("(") {
		return nil, fmt.Errorf("expected '(' after z.object at position %d", p.pos)
	}
	p.skipWhitespace()
	if !p.match("{") {
		return nil, fmt.Errorf("expected '{' after z.object( at position %d", p.pos)
	}

	schema := &JSONSchema{
		Type:       "object",
		Properties: make(map[string]*JSONSchema),
	}

	for {
		p.skipWhitespace()

		if p.peek() == '}' {
			p.pos++
			break
		}
		if p.peek() == ',' {
			p.pos++
			continue
		}

		propName := p.readPropertyName()
		if propName == "" {
			return nil, fmt.Errorf("expected property name at position %d", p.pos)
		}

		p.skipWhitespace()
		if !p.match(":") {
			return nil, fmt.Errorf("expected ':' after property name at position %d", p.pos)
		}

		propSchema, err := p.parse()
		if err != nil {
			return nil, fmt.Errorf("parsing property %s: %w", propName, err)
		}

		schema.Properties[propName] = propSchema
		if !p.optional[propSchema] {
			schema.Required = append(schema.Required, propName)
		}
	}

	p.skipWhitespace()
	if !p.match(")") {
		return nil, fmt.Errorf("expected ')' after object definition at position %d", p.pos)
	}

	return schema, nil
}

// parseZodRecord handles z.record(value) and z.record(key, value).
func (p *zodParser) parseZodRecord() (*JSONSchema, error) {
	if !p.match("(") {
		return nil, fmt.Errorf("expected '(' after z.record at position %d", p.pos)
	}

	first, err := p.parse()
	if err != nil {
		return nil, fmt.Errorf("parsing record: %w", err)
	}

	schema := &JSONSchema{Type: "object", AdditionalProperties: first}

	p.skipWhitespace()
	if p.match(",") {
		p.skipWhitespace()
		if p.peek() != ')' {
			value, err := p.parse()
			if err != nil {
				return nil, fmt.Errorf("parsing record value: %w", err)
			}
			schema.RecordKeys = first
			schema.AdditionalProperties = value
			p.skipWhitespace()
		}
	}

	if !p.match(")") {
		return nil, fmt.Errorf("expected ')' after record value at position %d", p.pos)
	}
	return schema, nil
}

// parseZodEnum handles z.enum(["a", "b", "c"]).
func (p *zodParser) parseZodEnum() (*JSONSchema, error) {
	if !p.match("(") {
		return nil, fmt.Errorf("expected '(' after z.enum at position %d", p.pos)
	}
	p.skipWhitespace()
	if !p.match("[") {
		return nil, fmt.Errorf("expected '[' after z.enum( at position %d", p.pos)
	}

	var values []any
	for {
		p.skipWhitespace()
		if p.match("]") {
			break
		}
		if p.match(",") {
			continue
		}
		s, err := p.readString()
		if err != nil {
			return nil, fmt.Errorf("parsing enum value: %w", err)
		}
		values = append(values, s)
	}

	p.skipWhitespace()
	if !p.match(")") {
		return nil, fmt.Errorf("expected ')' after enum values at position %d", p.pos)
	}
	if len(values) == 0 {
		return nil, fmt.Errorf("z.enum needs at least one value at position %d", p.pos)
	}

	return &JSONSchema{Enum: values}, nil
}

// parseZodLiteral handles z.literal("value"), z.literal(123), z.literal(true)
// and z.literal(null).
func (p *zodParser) parseZodLiteral() (*JSONSchema, error) {
	if !p.match("(") {
		return nil, fmt.Errorf("expected '(' after z.literal at position %d", p.pos)
	}
	p.skipWhitespace()

	value, err := p.readLiteral()
	if err != nil {
		return nil, fmt.Errorf("parsing literal: %w", err)
	}

	p.skipWhitespace()
	if !p.match(")") {
		return nil, fmt.Errorf("expected ')' after literal at position %d", p.pos)
	}

	raw, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("encoding literal: %w", err)
	}
	return &JSONSchema{Const: raw}, nil
}

// parseZodUnion handles z.union([z.string(), z.number()]).
func (p *zodParser) parseZodUnion() (*JSONSchema, error) {
	if !p.match("(") {
		return nil, fmt.Errorf("expected '(' after z.union at position %d", p.pos)
	}

	members, err := p.parseSchemaList()
	if err != nil {
		return nil, fmt.Errorf("parsing union member: %w", err)
	}

	p.skipWhitespace()
	if !p.match(")") {
		return nil, fmt.Errorf("expected ')' after union at position %d", p.pos)
	}

	if len(members) == 1 {
		return members[0], nil
	}
	return &JSONSchema{AnyOf: members}, nil
}

// parseZodDiscriminatedUnion handles z.discriminatedUnion("kind", [...]).
// Every member must be an object whose discriminator property is a literal
// or an enum.
func (p *zodParser) parseZodDiscriminatedUnion() (*JSONSchema, error) {
	if !p.match("(") {
		return nil, fmt.Errorf("expected '(' after z.discriminatedUnion at position %d", p.pos)
	}
	p.skipWhitespace()

	prop, err := p.readString()
	if err != nil {
		return nil, fmt.Errorf("parsing discriminator name: %w", err)
	}
	p.skipWhitespace()
	if !p.match(",") {
		return nil, fmt.Errorf("expected ',' after discriminator name at position %d", p.pos)
	}

	members, err := p.parseSchemaList()
	if err != nil {
		return nil, fmt.Errorf("parsing discriminated union member: %w", err)
	}

	p.skipWhitespace()
	if !p.match(")") {
		return nil, fmt.Errorf("expected ')' after discriminated union at position %d", p.pos)
	}

	d := &Discriminator{PropertyName: prop}
	for i, m := range members {
		values, err := discriminatorValues(m, prop)
		if err != nil {
			return nil, fmt.Errorf("discriminated union member %d: %w", i, err)
		}
		for _, v := range values {
			d.Mapping = append(d.Mapping, DiscriminatorCase{Value: v, Schema: m})
		}
	}

	return &JSONSchema{Type: "object", Discriminator: d}, nil
}

func discriminatorValues(member *JSONSchema, prop string) ([]any, error) {
	ps := member.Properties[prop]
	switch {
	case ps == nil:
		return nil, fmt.Errorf("missing discriminator property %q", prop)
	case ps.Const != nil:
		var v any
		if err := json.Unmarshal(ps.Const, &v); err != nil {
			return nil, err
		}
		return []any{v}, nil
	case len(ps.Enum) > 0:
		return ps.Enum, nil
	}
	return nil, fmt.Errorf("discriminator property %q must be a literal or an enum", prop)
}

// parseSchemaList parses "[schema, schema, ...]".
func (p *zodParser) parseSchemaList() ([]*JSONSchema, error) {
	p.skipWhitespace()
	if !p.match("[") {
		return nil, fmt.Errorf("expected '[' at position %d", p.pos)
	}

	list := make([]*JSONSchema, 0)
	for {
		p.skipWhitespace()
		if p.match("]") {
			break
		}
		if p.match(",") {
			continue
		}
		schema, err := p.parse()
		if err != nil {
			return nil, err
		}
		list = append(list, schema)
	}
	return list, nil
}

func (p *zodParser) parseModifiers(schema *JSONSchema) (*JSONSchema, error) {
	optional, nullable := false, false

	for {
		p.skipWhitespace()
		if !p.match(".") {
			break
		}
		p.skipWhitespace()

		modifier := p.readIdentifier()
		var err error

		switch modifier {
		case "optional":
			err = p.expectEmptyCall(modifier)
			optional = true

		case "nullable":
			err = p.expectEmptyCall(modifier)
			nullable = true

		case "nullish":
			err = p.expectEmptyCall(modifier)
			optional, nullable = true, true

		case "default":
			// Default values make fields optional
			err = p.skipCall(modifier)
			optional = true

		case "describe":
			err = p.withStringArg(modifier, func(s string) { schema.Description = s })

		case "array":
			err = p.expectEmptyCall(modifier)
			schema = &JSONSchema{Type: "array", Items: schema}

		case "min", "gte":
			err = p.withNumberArg(modifier, func(n float64) { setMin(schema, n, true) })
		case "gt":
			err = p.withNumberArg(modifier, func(n float64) { setMin(schema, n, false) })
		case "max", "lte":
			err = p.withNumberArg(modifier, func(n float64) { setMax(schema, n, true) })
		case "lt":
			err = p.withNumberArg(modifier, func(n float64) { setMax(schema, n, false) })
		case "length":
			err = p.withNumberArg(modifier, func(n float64) {
				setMin(schema, n, true)
				setMax(schema, n, true)
			})
		case "nonempty":
			err = p.skipCall(modifier)
			setMin(schema, 1, true)

		case "positive":
			err = p.skipCall(modifier)
			schema.ExclusiveMinimum = floatPtr(0)
		case "nonnegative":
			err = p.skipCall(modifier)
			schema.Minimum = floatPtr(0)
		case "negative":
			err = p.skipCall(modifier)
			schema.ExclusiveMaximum = floatPtr(0)
		case "nonpositive":
			err = p.skipCall(modifier)
			schema.Maximum = floatPtr(0)
		case "int":
			err = p.skipCall(modifier)
			schema.Type = "integer"
		case "safe":
			err = p.skipCall(modifier)
			schema.Minimum = floatPtr(-maxSafeInteger)
			schema.Maximum = floatPtr(maxSafeInteger)
		case "multipleOf", "step":
			err = p.withNumberArg(modifier, func(n float64) { schema.MultipleOf = floatPtr(n) })

		case "email", "uuid", "ip":
			err = p.skipCall(modifier)
			schema.Format = stringFormats[modifier]
		case "url":
			err = p.skipCall(modifier)
			schema.Format = "uri"
		case "datetime":
			err = p.skipCall(modifier)
			schema.Format = "date-time"
		case "date", "time":
			err = p.skipCall(modifier)
			schema.Format = modifier

		case "regex":
			err = p.withRegexArg(modifier, func(re string) { schema.Pattern = re })
		case "startsWith", "endsWith", "includes":
			err = p.withStringArg(modifier, func(s string) {
				schema.StringRules = append(schema.StringRules, StringRule{Name: modifier, Value: s})
			})

		case "strict":
			err = p.skipCall(modifier)
			schema.AdditionalProperties = false
		case "passthrough", "strip", "finite":
			err = p.skipCall(modifier)

		case "refine":
			err = p.parseRefine(schema)

		default:
			// Skip modifiers that don't affect validation
			err = p.skipCall(modifier)
		}
		if err != nil {
			return nil, err
		}
	}

	if nullable {
		schema = &JSONSchema{
			AnyOf: []*JSONSchema{
				schema,
				{Type: "null"},
			},
		}
	}
	if optional {
		p.optional[schema] = true
	}
	return schema, nil
}

const maxSafeInteger = 9007199254740991

var stringFormats = map[string]string{
	"email": "email",
	"uuid":  "uuid",
	"ip":    "ipv4",
}

func setMin(s *JSONSchema, n float64, inclusive bool) {
	switch s.Type {
	case "string":
		s.MinLength = intPtr(int(n))
	case "array":
		s.MinItems = intPtr(int(n))
	case "object":
		s.MinProperties = intPtr(int(n))
	default:
		if inclusive {
			s.Minimum = floatPtr(n)
		} else {
			s.ExclusiveMinimum = floatPtr(n)
		}
	}
}

func setMax(s *JSONSchema, n float64, inclusive bool) {
	switch s.Type {
	case "string":
		s.MaxLength = intPtr(int(n))
	case "array":
		s.MaxItems = intPtr(int(n))
	case "object":
		s.MaxProperties = intPtr(int(n))
	default:
		if inclusive {
			s.Maximum = floatPtr(n)
		} else {
			s.ExclusiveMaximum = floatPtr(n)
		}
	}
}

// refinementNames maps well-known predicate identifiers to refine rules.
var refinementNames = map[string]string{
	"isSingleLine": "singleLine",
	"isKeyName":    "keyName",
}

// parseRefine handles .refine(predicate, { message: "..." }).
func (p *zodParser) parseRefine(schema *JSONSchema) error {
	if !p.match("(") {
		return fmt.Errorf("expected '(' after .refine at position %d", p.pos)
	}
	p.skipWhitespace()

	name := p.readIdentifier()
	p.skipWhitespace()
	if name == "" || p.peek() == '(' || p.match("=>") {
		return fmt.Errorf("inline refinement at position %d is not supported: use a named predicate", p.pos)
	}
	rule, ok := refinementNames[name]
	if !ok {
		rule = name
	}

	refineRule := RefineRule{Rule: rule}
	if p.match(",") {
		p.skipWhitespace()
		if p.match("{") {
			for {
				p.skipWhitespace()
				if p.match("}") {
					break
				}
				if p.match(",") {
					continue
				}
				key := p.readPropertyName()
				p.skipWhitespace()
				if key == "" || !p.match(":") {
					return fmt.Errorf("expected refine option at position %d", p.pos)
				}
				p.skipWhitespace()
				if key == "message" {
					msg, err := p.readString()
					if err != nil {
						return fmt.Errorf("parsing refine message: %w", err)
					}
					refineRule.Message = msg
				} else if _, err := p.readLiteral(); err != nil {
					return fmt.Errorf("parsing refine option %s: %w", key, err)
				}
			}
		} else {
			msg, err := p.readString()
			if err != nil {
				return fmt.Errorf("parsing refine message: %w", err)
			}
			refineRule.Message = msg
		}
		p.skipWhitespace()
	}

	if !p.match(")") {
		return fmt.Errorf("expected ')' after .refine arguments at position %d", p.pos)
	}
	schema.Refine = append(schema.Refine, refineRule)
	return nil
}

// Helper functions

func (p *zodParser) expectEmptyCall(modifier string) error {
	if !p.match("()") {
		return fmt.Errorf("expected '()' after .%s at position %d", modifier, p.pos)
	}
	return nil
}

// skipCall skips the argument list of a call, if any.
func (p *zodParser) skipCall(string) error {
	if p.match("(") {
		p.skipUntilBalanced('(', ')')
	}
	return nil
}

// withNumberArg reads the first argument as a number and skips the others
// (such as a custom error message).
func (p *zodParser) withNumberArg(modifier string, apply func(float64)) error {
	if !p.match("(") {
		return fmt.Errorf("expected '(' after .%s at position %d", modifier, p.pos)
	}
	p.skipWhitespace()
	n, err := p.readNumber()
	if err != nil {
		return fmt.Errorf("parsing .%s argument: %w", modifier, err)
	}
	p.skipUntilBalanced('(', ')')
	apply(n)
	return nil
}

func (p *zodParser) withStringArg(modifier string, apply func(string)) error {
	if !p.match("(") {
		return fmt.Errorf("expected '(' after .%s at position %d", modifier, p.pos)
	}
	p.skipWhitespace()
	s, err := p.readString()
	if err != nil {
		return fmt.Errorf("parsing .%s argument: %w", modifier, err)
	}
	p.skipUntilBalanced('(', ')')
	apply(s)
	return nil
}

func (p *zodParser) withRegexArg(modifier string, apply func(string)) error {
	if !p.match("(") {
		return fmt.Errorf("expected '(' after .%s at position %d", modifier, p.pos)
	}
	p.skipWhitespace()
	re, err := p.readRegex()
	if err != nil {
		return fmt.Errorf("parsing .%s argument: %w", modifier, err)
	}
	p.skipUntilBalanced('(', ')')
	apply(re)
	return nil
}

func (p *zodParser) skipWhitespace() {
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		switch {
		case ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r':
			p.pos++
		case strings.HasPrefix(p.input[p.pos:], "//"):
			for p.pos < len(p.input) && p.input[p.pos] != '\n' {
				p.pos++
			}
		default:
			return
		}
	}
}

func (p *zodParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *zodParser) match(s string) bool {
	if strings.HasPrefix(p.input[p.pos:], s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *zodParser) matchWord(s string) bool {
	if !strings.HasPrefix(p.input[p.pos:], s) {
		return false
	}
	if end := p.pos + len(s); end < len(p.input) && isIdentByte(p.input[end]) {
		return false
	}
	p.pos += len(s)
	return true
}

func isIdentByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '_' || ch == '$'
}

func (p *zodParser) readIdentifier() string {
	start := p.pos
	for p.pos < len(p.input) && isIdentByte(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

var propertyNameRegex = regexp.MustCompile(`^[\w$]+`)

func (p *zodParser) readPropertyName() string {
	p.skipWhitespace()

	if ch := p.peek(); ch == '"' || ch == '\'' {
		name, err := p.readString()
		if err != nil {
			return ""
		}
		return name
	}

	match := propertyNameRegex.FindString(p.input[p.pos:])
	p.pos += len(match)
	return match
}

// readString reads a single, double or backtick quoted string literal.
func (p *zodParser) readString() (string, error) {
	quote := p.peek()
	if quote != '"' && quote != '\'' && quote != '`' {
		return "", fmt.Errorf("expected string at position %d", p.pos)
	}
	p.pos++

	var sb strings.Builder
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		p.pos++
		switch {
		case ch == quote:
			return sb.String(), nil
		case ch == '\\' && p.pos < len(p.input):
			esc := p.input[p.pos]
			p.pos++
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			default:
				sb.WriteByte(esc)
			}
		default:
			sb.WriteByte(ch)
		}
	}
	return "", fmt.Errorf("unterminated string at position %d", p.pos)
}

var numberRegex = regexp.MustCompile(`^-?(?:\d[\d_]*)?(?:\.\d+)?(?:[eE][-+]?\d+)?`)

func (p *zodParser) readNumber() (float64, error) {
	if p.matchWord("Number.MAX_SAFE_INTEGER") {
		return maxSafeInteger, nil
	}
	if p.matchWord("Number.MIN_SAFE_INTEGER") {
		return -maxSafeInteger, nil
	}
	lit := numberRegex.FindString(p.input[p.pos:])
	n, err := strconv.ParseFloat(strings.ReplaceAll(lit, "_", ""), 64)
	if lit == "" || err != nil {
		return 0, fmt.Errorf("expected number at position %d", p.pos)
	}
	p.pos += len(lit)
	return n, nil
}

// readLiteral reads a string, number, boolean or null literal.
func (p *zodParser) readLiteral() (any, error) {
	switch ch := p.peek(); {
	case ch == '"' || ch == '\'' || ch == '`':
		return p.readString()
	case p.matchWord("true"):
		return true, nil
	case p.matchWord("false"):
		return false, nil
	case p.matchWord("null"):
		return nil, nil
	default:
		return p.readNumber()
	}
}

// readRegex reads a /pattern/flags literal. The i, m and s flags become
// inline Go regexp flags.
func (p *zodParser) readRegex() (string, error) {
	if p.peek() != '/' {
		return "", fmt.Errorf("expected regular expression at position %d", p.pos)
	}
	p.pos++

	start := p.pos
	inClass := false
	for p.pos < len(p.input) {
		ch := p.input[p.pos]
		switch {
		case ch == '\\':
			p.pos++
		case ch == '[':
			inClass = true
		case ch == ']':
			inClass = false
		case ch == '/' && !inClass:
			pattern := p.input[start:p.pos]
			p.pos++
			var flags strings.Builder
			for p.pos < len(p.input) && isIdentByte(p.input[p.pos]) {
				if f := p.input[p.pos]; f == 'i' || f == 'm' || f == 's' {
					flags.WriteByte(f)
				}
				p.pos++
			}
			if flags.Len() > 0 {
				pattern = "(?" + flags.String() + ")" + pattern
			}
			return pattern, nil
		}
		p.pos++
	}
	return "", fmt.Errorf("unterminated regular expression at position %d", start)
}

func (p *zodParser) skipUntilBalanced(open, close byte) {
	depth := 1
	for p.pos < len(p.input) && depth > 0 {
		ch := p.input[p.pos]
		switch ch {
		case '"', '\'', '`':
			if _, err := p.readString(); err != nil {
				return
			}
			continue
		case open:
			depth++
		case close:
			depth--
		}
		p.pos++
	}
}
