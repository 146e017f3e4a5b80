package schema

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"golang.org/x/text/message"
)

// vocabURL identifies the extension keywords:
//
//	discriminator  {"propertyName": "kind", "mapping": [{"value": "a", "schema": {...}}]}
//	recordKeys     schema applied to every property name of an object
//	stringRules    [{"name": "startsWith", "value": "https://"}]
//	refine         [{"rule": "singleLine", "message": "..."}]
const vocabURL = "https://usestring.dev/safeparse/vocab/extensions"

func (o *options) vocabulary() *jsonschema.Vocabulary {
	return &jsonschema.Vocabulary{
		URL: vocabURL,
		Subschemas: []jsonschema.SchemaPath{
			{jsonschema.Prop("discriminator"), jsonschema.Prop("mapping"), jsonschema.AllItem{}, jsonschema.Prop("schema")},
			{jsonschema.Prop("recordKeys")},
		},
		Compile: o.compileExtension,
	}
}

type extension struct {
	discriminator *discriminator
	recordKeys    *jsonschema.Schema
	stringRules   []StringRule
	refinements   []refinement
}

type discriminator struct {
	property string
	values   []any
	schemas  []*jsonschema.Schema
}

type refinement struct {
	rule    string
	message string
	check   Predicate
}

func (o *options) compileExtension(ctx *jsonschema.CompilerContext, obj map[string]any) (jsonschema.SchemaExt, error) {
	ext := &extension{}

	if v, ok := obj["discriminator"]; ok {
		d, err := compileDiscriminator(ctx, v)
		if err != nil {
			return nil, err
		}
		ext.discriminator = d
	}

	if _, ok := obj["recordKeys"]; ok {
		ext.recordKeys = ctx.Enqueue([]string{"recordKeys"})
	}

	if v, ok := obj["stringRules"]; ok {
		rules, err := compileStringRules(v)
		if err != nil {
			return nil, err
		}
		ext.stringRules = rules
	}

	if v, ok := obj["refine"]; ok {
		refs, err := o.compileRefinements(v)
		if err != nil {
			return nil, err
		}
		ext.refinements = refs
	}

	if ext.discriminator == nil && ext.recordKeys == nil && len(ext.stringRules) == 0 && len(ext.refinements) == 0 {
		return nil, nil
	}
	return ext, nil
}

// compileDiscriminator ignores discriminator values of other shapes, such as
// the OpenAPI mapping object.
func compileDiscriminator(ctx *jsonschema.CompilerContext, v any) (*discriminator, error) {
	obj, ok := v.(map[string]any)
	if !ok {
		return nil, nil
	}
	mapping, ok := obj["mapping"].([]any)
	if !ok {
		return nil, nil
	}
	pname, ok := obj["propertyName"].(string)
	if !ok || pname == "" {
		return nil, fmt.Errorf("discriminator: propertyName must be a non-empty string")
	}

	d := &discriminator{property: pname}
	for i, item := range mapping {
		c, ok := item.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("discriminator: mapping[%d] must be an object", i)
		}
		if _, ok := c["schema"]; !ok {
			return nil, fmt.Errorf("discriminator: mapping[%d] has no schema", i)
		}
		d.values = append(d.values, c["value"])
		d.schemas = append(d.schemas, ctx.Enqueue([]string{"discriminator", "mapping", strconv.Itoa(i), "schema"}))
	}
	return d, nil
}

var stringRuleChecks = map[string]func(s, param string) bool{
	"startsWith": strings.HasPrefix,
	"endsWith":   strings.HasSuffix,
	"includes":   strings.Contains,
}

func compileStringRules(v any) ([]StringRule, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("stringRules must be an array")
	}
	rules := make([]StringRule, 0, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]any)
		name, _ := obj["name"].(string)
		value, _ := obj["value"].(string)
		if _, known := stringRuleChecks[name]; !known {
			return nil, fmt.Errorf("stringRules[%d]: unknown rule %q", i, name)
		}
		rules = append(rules, StringRule{Name: name, Value: value})
	}
	return rules, nil
}

func (o *options) compileRefinements(v any) ([]refinement, error) {
	items, ok := v.([]any)
	if !ok {
		return nil, fmt.Errorf("refine must be an array")
	}
	refs := make([]refinement, 0, len(items))
	for i, item := range items {
		obj, _ := item.(map[string]any)
		rule, _ := obj["rule"].(string)
		msg, _ := obj["message"].(string)
		check, ok := o.predicates[rule]
		if !ok {
			return nil, fmt.Errorf("refine[%d]: unknown rule %q", i, rule)
		}
		refs = append(refs, refinement{rule: rule, message: msg, check: check})
	}
	return refs, nil
}

func (e *extension) Validate(ctx *jsonschema.ValidatorContext, v any) {
	if e.discriminator != nil {
		e.discriminator.validate(ctx, v)
	}

	if e.recordKeys != nil {
		if obj, ok := v.(map[string]any); ok {
			keys := make([]string, 0, len(obj))
			for k := range obj {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			for _, k := range keys {
				if err := ctx.Validate(e.recordKeys, k, []string{k}); err != nil {
					ctx.AddErr(err)
				}
			}
		}
	}

	if s, ok := v.(string); ok {
		for _, r := range e.stringRules {
			if !stringRuleChecks[r.Name](s, r.Value) {
				ctx.AddError(&stringRuleError{Name: r.Name, Value: r.Value})
			}
		}
	}

	for _, r := range e.refinements {
		if !r.check(v) {
			ctx.AddError(&refineError{Rule: r.rule, Message: r.message})
		}
	}
}

func (d *discriminator) validate(ctx *jsonschema.ValidatorContext, v any) {
	obj, ok := v.(map[string]any)
	if !ok {
		return
	}
	if pv, present := obj[d.property]; present {
		for i, want := range d.values {
			if eq, err := ctx.Equals(pv, want); err == nil && eq {
				if err := ctx.Validate(d.schemas[i], v, nil); err != nil {
					ctx.AddErr(err)
				} else {
					ctx.EvaluatedProp(d.property)
				}
				return
			}
		}
	}
	ctx.AddError(&discriminatorError{Property: d.property, Options: d.values})
}

// subschemas lists the schemas the extension validates against.
func (e *extension) subschemas() []*jsonschema.Schema {
	var out []*jsonschema.Schema
	if e.discriminator != nil {
		out = append(out, e.discriminator.schemas...)
	}
	if e.recordKeys != nil {
		out = append(out, e.recordKeys)
	}
	return out
}

type discriminatorError struct {
	Property string
	Options  []any
}

func (*discriminatorError) KeywordPath() []string { return []string{"discriminator"} }

func (k *discriminatorError) LocalizedString(p *message.Printer) string {
	return p.Sprintf("property %s must be one of %v", strconv.Quote(k.Property), k.Options)
}

type stringRuleError struct {
	Name  string
	Value string
}

func (*stringRuleError) KeywordPath() []string { return []string{"stringRules"} }

func (k *stringRuleError) LocalizedString(p *message.Printer) string {
	switch k.Name {
	case "startsWith":
		return p.Sprintf("must start with %s", strconv.Quote(k.Value))
	case "endsWith":
		return p.Sprintf("must end with %s", strconv.Quote(k.Value))
	default:
		return p.Sprintf("must include %s", strconv.Quote(k.Value))
	}
}

type refineError struct {
	Rule    string
	Message string
}

func (*refineError) KeywordPath() []string { return []string{"refine"} }

func (k *refineError) LocalizedString(p *message.Printer) string {
	if k.Message != "" {
		return k.Message
	}
	return p.Sprintf("%s check failed", k.Rule)
}
