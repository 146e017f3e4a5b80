package schema

import (
	"fmt"
	"math/big"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/usestring/safeparse-mcp/pkg/issue"
)

// printer is a default English printer for localized error messages.
var printer = message.NewPrinter(language.English)

// classifier turns a jsonschema error tree into issues. Leaf errors become
// one issue each; grouping errors contribute their causes.
type classifier struct {
	index map[string]*jsonschema.Schema
}

func (c classifier) classify(err *jsonschema.ValidationError) []issue.Issue {
	if err.ErrorKind == nil {
		return c.causes(err)
	}

	path := append([]string(nil), err.InstanceLocation...)
	msg := err.ErrorKind.LocalizedString(printer)
	one := func(d issue.Detail) []issue.Issue {
		return []issue.Issue{{Path: path, Message: msg, Detail: d}}
	}

	switch k := err.ErrorKind.(type) {
	case *kind.Schema, *kind.Group, *kind.Reference, *kind.AllOf:
		return c.causes(err)

	case *kind.PropertyNames:
		// Causes are located relative to the property name.
		var out []issue.Issue
		for _, iss := range c.causes(err) {
			out = append(out, iss.At(append(path, k.Property)))
		}
		return out

	case *kind.AnyOf:
		return one(&issue.InvalidUnion{Branches: c.branches(err)})

	case *kind.OneOf:
		if k.Subschemas == nil {
			return one(&issue.InvalidUnion{Branches: c.branches(err)})
		}
		return one(&issue.Custom{Rule: "oneOf"})

	case *kind.Type:
		return one(&issue.InvalidType{Expected: strings.Join(k.Want, " or "), Received: k.Got})

	case *kind.InvalidJsonValue:
		return one(&issue.InvalidType{Expected: "json value", Received: goTypeName(k.Value)})

	case *kind.Required:
		return c.missing(err, path, msg, k.Missing)
	case *kind.Dependency:
		return c.missing(err, path, msg, k.Missing)
	case *kind.DependentRequired:
		return c.missing(err, path, msg, k.Missing)

	case *kind.Enum:
		return one(&issue.InvalidEnumValue{Options: k.Want, Received: k.Got})

	case *kind.Const:
		return one(&issue.InvalidLiteral{Expected: k.Want, Received: k.Got})

	case *kind.Format:
		switch k.Want {
		case "date", "date-time", "time":
			return one(&issue.InvalidDate{})
		}
		return one(&issue.InvalidString{Validation: issue.StringValidation{Name: formatRule(k.Want)}})

	case *kind.Pattern:
		return one(&issue.InvalidString{Validation: issue.StringValidation{Name: "regex"}})

	case *kind.ContentEncoding:
		return one(&issue.InvalidString{Validation: issue.StringValidation{Name: "contentEncoding"}})
	case *kind.ContentMediaType:
		return one(&issue.InvalidString{Validation: issue.StringValidation{Name: "contentMediaType"}})
	case *kind.ContentSchema:
		return one(&issue.InvalidString{Validation: issue.StringValidation{Name: "contentSchema"}})

	case *kind.MinLength:
		return one(&issue.TooSmall{Type: "string", Minimum: float64(k.Want), Inclusive: true})
	case *kind.MaxLength:
		return one(&issue.TooBig{Type: "string", Maximum: float64(k.Want), Inclusive: true})
	case *kind.MinItems:
		return one(&issue.TooSmall{Type: "array", Minimum: float64(k.Want), Inclusive: true})
	case *kind.MaxItems:
		return one(&issue.TooBig{Type: "array", Maximum: float64(k.Want), Inclusive: true})
	case *kind.MinContains:
		return one(&issue.TooSmall{Type: "array", Minimum: float64(k.Want), Inclusive: true})
	case *kind.MaxContains:
		return one(&issue.TooBig{Type: "array", Maximum: float64(k.Want), Inclusive: true})
	case *kind.MinProperties:
		return one(&issue.TooSmall{Type: "object", Minimum: float64(k.Want), Inclusive: true})
	case *kind.MaxProperties:
		return one(&issue.TooBig{Type: "object", Maximum: float64(k.Want), Inclusive: true})
	case *kind.Minimum:
		return one(&issue.TooSmall{Type: "number", Minimum: ratFloat(k.Want), Inclusive: true})
	case *kind.Maximum:
		return one(&issue.TooBig{Type: "number", Maximum: ratFloat(k.Want), Inclusive: true})
	case *kind.ExclusiveMinimum:
		return one(&issue.TooSmall{Type: "number", Minimum: ratFloat(k.Want)})
	case *kind.ExclusiveMaximum:
		return one(&issue.TooBig{Type: "number", Maximum: ratFloat(k.Want)})

	case *kind.MultipleOf:
		return one(&issue.NotMultipleOf{MultipleOf: ratFloat(k.Want)})

	case *kind.AdditionalProperties:
		return one(&issue.UnrecognizedKeys{Keys: k.Properties})

	case *kind.Not:
		return one(&issue.Custom{Rule: "not"})
	case *kind.UniqueItems:
		return one(&issue.Custom{Rule: "uniqueItems"})
	case *kind.Contains:
		return one(&issue.Custom{Rule: "contains"})
	case *kind.AdditionalItems:
		return one(&issue.Custom{Rule: "additionalItems"})

	case *discriminatorError:
		return []issue.Issue{{
			Path:    append(path, k.Property),
			Message: msg,
			Detail:  &issue.InvalidUnionDiscriminator{Options: k.Options},
		}}

	case *stringRuleError:
		return one(&issue.InvalidString{Validation: issue.StringValidation{
			Name:   k.Name,
			Params: []issue.StringParam{{Name: k.Name, Value: k.Value}},
		}})

	case *refineError:
		return one(&issue.Custom{Rule: k.Rule})

	case *kind.FalseSchema:
		return one(&issue.Unknown{Kind: "false_schema"})

	default:
		return one(&issue.Unknown{Kind: issue.Code(strings.Join(k.KeywordPath(), "/"))})
	}
}

func (c classifier) causes(err *jsonschema.ValidationError) []issue.Issue {
	var out []issue.Issue
	for _, cause := range err.Causes {
		out = append(out, c.classify(cause)...)
	}
	return out
}

// branches classifies each failed union member separately, in member order.
func (c classifier) branches(err *jsonschema.ValidationError) [][]issue.Issue {
	out := make([][]issue.Issue, 0, len(err.Causes))
	for _, cause := range err.Causes {
		out = append(out, sortByPath(c.classify(cause)))
	}
	return out
}

// missing reports one invalid_type issue per missing property, located at
// the property itself.
func (c classifier) missing(err *jsonschema.ValidationError, path []string, msg string, props []string) []issue.Issue {
	owner := c.index[err.SchemaURL]
	out := make([]issue.Issue, 0, len(props))
	for _, p := range props {
		var ps *jsonschema.Schema
		if owner != nil {
			ps = owner.Properties[p]
		}
		out = append(out, issue.Issue{
			Path:    append(append([]string(nil), path...), p),
			Message: msg,
			Detail:  &issue.InvalidType{Expected: describeType(ps, 0), Received: "undefined"},
		})
	}
	return out
}

// describeType names the JSON types a schema accepts.
func describeType(s *jsonschema.Schema, depth int) string {
	if s == nil || depth > 8 {
		return "value"
	}
	if s.Types != nil && !s.Types.IsEmpty() {
		return strings.Join(s.Types.ToStrings(), " or ")
	}
	if s.Ref != nil {
		return describeType(s.Ref, depth+1)
	}
	if s.Const != nil {
		return jsonTypeName(*s.Const)
	}
	if s.Enum != nil {
		names := make([]string, 0, len(s.Enum.Values))
		for _, v := range s.Enum.Values {
			names = append(names, jsonTypeName(v))
		}
		return joinUnique(names)
	}
	members := s.AnyOf
	if len(members) == 0 {
		members = s.OneOf
	}
	if len(members) > 0 {
		names := make([]string, 0, len(members))
		for _, m := range members {
			names = append(names, describeType(m, depth+1))
		}
		return joinUnique(names)
	}
	return "value"
}

func joinUnique(names []string) string {
	seen := make(map[string]bool, len(names))
	out := names[:0:0]
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	return strings.Join(out, " or ")
}

func jsonTypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "number"
	}
}

func goTypeName(v any) string {
	if v == nil {
		return "null"
	}
	return fmt.Sprintf("%T", v)
}

func ratFloat(r *big.Rat) float64 {
	if r == nil {
		return 0
	}
	f, _ := r.Float64()
	return f
}

// formatRule maps a JSON Schema format to the name of the equivalent string
// rule.
func formatRule(format string) string {
	switch format {
	case "uri", "iri":
		return "url"
	case "ipv4", "ipv6":
		return "ip"
	default:
		return format
	}
}

// sortByPath orders issues by location, keeping engine order for equal
// paths. Numeric segments compare as numbers.
func sortByPath(issues []issue.Issue) []issue.Issue {
	sort.SliceStable(issues, func(i, j int) bool {
		return comparePaths(issues[i].Path, issues[j].Path) < 0
	})
	return issues
}

func comparePaths(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if c := compareSegments(a[i], b[i]); c != 0 {
			return c
		}
	}
	return len(a) - len(b)
}

func compareSegments(a, b string) int {
	ai, aerr := strconv.Atoi(a)
	bi, berr := strconv.Atoi(b)
	if aerr == nil && berr == nil {
		return ai - bi
	}
	return strings.Compare(a, b)
}

// indexSchemas maps the location of every reachable schema to the schema.
func indexSchemas(root *jsonschema.Schema) map[string]*jsonschema.Schema {
	index := make(map[string]*jsonschema.Schema)
	var walk func(s *jsonschema.Schema)
	walk = func(s *jsonschema.Schema) {
		if s == nil {
			return
		}
		if _, seen := index[s.Location]; seen {
			return
		}
		index[s.Location] = s

		walk(s.Ref)
		walk(s.RecursiveRef)
		if s.DynamicRef != nil {
			walk(s.DynamicRef.Ref)
		}
		walk(s.Not)
		walk(s.If)
		walk(s.Then)
		walk(s.Else)
		for _, list := range [][]*jsonschema.Schema{s.AllOf, s.AnyOf, s.OneOf, s.PrefixItems} {
			for _, sub := range list {
				walk(sub)
			}
		}
		for _, sub := range s.Properties {
			walk(sub)
		}
		for _, sub := range s.PatternProperties {
			walk(sub)
		}
		for _, sub := range s.DependentSchemas {
			walk(sub)
		}
		for _, dep := range s.Dependencies {
			if sub, ok := dep.(*jsonschema.Schema); ok {
				walk(sub)
			}
		}
		walk(s.PropertyNames)
		walk(s.UnevaluatedProperties)
		walk(s.Contains)
		walk(s.Items2020)
		walk(s.UnevaluatedItems)
		walk(s.ContentSchema)
		for _, v := range []any{s.AdditionalProperties, s.AdditionalItems, s.Items} {
			switch sub := v.(type) {
			case *jsonschema.Schema:
				walk(sub)
			case []*jsonschema.Schema:
				for _, item := range sub {
					walk(item)
				}
			}
		}
		for _, ext := range s.Extensions {
			if e, ok := ext.(*extension); ok {
				for _, sub := range e.subschemas() {
					walk(sub)
				}
			}
		}
	}
	walk(root)
	return index
}
