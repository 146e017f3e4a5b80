package issue

// CodeUnknown is reported for a nil Detail.
const CodeUnknown Code = "unknown"

// Detail is the kind-specific payload of an Issue.
// The set of implementations is closed; see Unknown for forward compatibility.
type Detail interface {
	Code() Code
	detail()
}

// InvalidType reports a value of the wrong type.
type InvalidType struct {
	Expected string
	Received string
}

// StringParam is a named parameter of a string validation rule.
type StringParam struct {
	Name  string
	Value any
}

// StringValidation names the string rule that failed. Rules such as
// "email" or "regex" carry no parameters; rules such as "startsWith" carry the
// parameter they were configured with.
type StringValidation struct {
	Name   string
	Params []StringParam
}

// InvalidString reports a string that does not satisfy a string rule.
type InvalidString struct {
	Validation StringValidation
}

// InvalidEnumValue reports a value outside an enumeration.
type InvalidEnumValue struct {
	Options  []any
	Received any
}

// InvalidLiteral reports a value different from a required literal.
type InvalidLiteral struct {
	Expected any
	Received any
}

// InvalidUnionDiscriminator reports an object whose discriminator property
// holds none of the allowed values.
type InvalidUnionDiscriminator struct {
	Options []any
}

// InvalidUnion reports a value matching no member of a union.
// Branches holds the issues of each member, in member order.
type InvalidUnion struct {
	Branches [][]Issue
}

// TooBig reports a value above its maximum. Type names what was measured:
// "string" (length), "array" (items), "object" (properties), "number".
type TooBig struct {
	Type      string
	Maximum   float64
	Inclusive bool
}

// TooSmall reports a value below its minimum.
type TooSmall struct {
	Type      string
	Minimum   float64
	Inclusive bool
}

// InvalidArguments reports invalid function arguments.
type InvalidArguments struct{}

// InvalidReturnType reports an invalid function return value.
type InvalidReturnType struct{}

// InvalidDate reports an invalid date, time or timestamp.
type InvalidDate struct{}

// NotFinite reports an infinite or NaN number.
type NotFinite struct{}

// InvalidIntersectionTypes reports intersection members that cannot be merged.
type InvalidIntersectionTypes struct{}

// NotMultipleOf reports a number that is not a multiple of MultipleOf.
type NotMultipleOf struct {
	MultipleOf float64
}

// UnrecognizedKeys reports object keys the schema does not allow.
type UnrecognizedKeys struct {
	Keys []string
}

// Custom reports a failed custom rule.
type Custom struct {
	Rule string
}

// Unknown carries an issue kind the formatters have no template for.
type Unknown struct {
	Kind Code
}

func (*InvalidType) Code() Code               { return CodeInvalidType }
func (*InvalidString) Code() Code             { return CodeInvalidString }
func (*InvalidEnumValue) Code() Code          { return CodeInvalidEnumValue }
func (*InvalidLiteral) Code() Code            { return CodeInvalidLiteral }
func (*InvalidUnionDiscriminator) Code() Code { return CodeInvalidUnionDiscriminator }
func (*InvalidUnion) Code() Code              { return CodeInvalidUnion }
func (*TooBig) Code() Code                    { return CodeTooBig }
func (*TooSmall) Code() Code                  { return CodeTooSmall }
func (*InvalidArguments) Code() Code          { return CodeInvalidArguments }
func (*InvalidReturnType) Code() Code         { return CodeInvalidReturnType }
func (*InvalidDate) Code() Code               { return CodeInvalidDate }
func (*NotFinite) Code() Code                 { return CodeNotFinite }
func (*InvalidIntersectionTypes) Code() Code  { return CodeInvalidIntersectionTypes }
func (*NotMultipleOf) Code() Code             { return CodeNotMultipleOf }
func (*UnrecognizedKeys) Code() Code          { return CodeUnrecognizedKeys }
func (*Custom) Code() Code                    { return CodeCustom }

// Code returns the wrapped kind, or CodeUnknown when it is empty.
func (u *Unknown) Code() Code {
	if u == nil || u.Kind == "" {
		return CodeUnknown
	}
	return u.Kind
}

func (*InvalidType) detail()               {}
func (*InvalidString) detail()             {}
func (*InvalidEnumValue) detail()          {}
func (*InvalidLiteral) detail()            {}
func (*InvalidUnionDiscriminator) detail() {}
func (*InvalidUnion) detail()              {}
func (*TooBig) detail()                    {}
func (*TooSmall) detail()                  {}
func (*InvalidArguments) detail()          {}
func (*InvalidReturnType) detail()         {}
func (*InvalidDate) detail()               {}
func (*NotFinite) detail()                 {}
func (*InvalidIntersectionTypes) detail()  {}
func (*NotMultipleOf) detail()             {}
func (*UnrecognizedKeys) detail()          {}
func (*Custom) detail()                    {}
func (*Unknown) detail()                   {}
