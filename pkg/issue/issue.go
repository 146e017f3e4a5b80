// Package issue defines the structured validation issues that schema engines
// report and that the formatters turn into messages.
//
// An Issue carries the location of the offending field and a Detail. Detail is
// a closed set of variants, one per issue code; engines that report a reason
// outside that set use Unknown so the issue still flows through formatting.
package issue

import "strings"

// Code identifies the kind of a validation issue.
type Code string

// Issue codes.
const (
	CodeInvalidType               Code = "invalid_type"
	CodeInvalidString             Code = "invalid_string"
	CodeInvalidEnumValue          Code = "invalid_enum_value"
	CodeInvalidLiteral            Code = "invalid_literal"
	CodeInvalidUnionDiscriminator Code = "invalid_union_discriminator"
	CodeInvalidUnion              Code = "invalid_union"
	CodeTooBig                    Code = "too_big"
	CodeTooSmall                  Code = "too_small"
	CodeInvalidArguments          Code = "invalid_arguments"
	CodeInvalidReturnType         Code = "invalid_return_type"
	CodeInvalidDate               Code = "invalid_date"
	CodeNotFinite                 Code = "not_finite"
	CodeInvalidIntersectionTypes  Code = "invalid_intersection_types"
	CodeNotMultipleOf             Code = "not_multiple_of"
	CodeUnrecognizedKeys          Code = "unrecognized_keys"
	CodeCustom                    Code = "custom"
)

// Codes lists every issue code with a dedicated Detail variant.
func Codes() []Code {
	return []Code{
		CodeInvalidType,
		CodeInvalidString,
		CodeInvalidEnumValue,
		CodeInvalidLiteral,
		CodeInvalidUnionDiscriminator,
		CodeInvalidUnion,
		CodeTooBig,
		CodeTooSmall,
		CodeInvalidArguments,
		CodeInvalidReturnType,
		CodeInvalidDate,
		CodeNotFinite,
		CodeInvalidIntersectionTypes,
		CodeNotMultipleOf,
		CodeUnrecognizedKeys,
		CodeCustom,
	}
}

// Issue is a single validation failure reported by an engine.
type Issue struct {
	// Path locates the offending field within the validated value.
	// Array indices are decimal strings. Empty for root-level issues.
	Path []string

	// Message is the engine's own description of the failure.
	Message string

	// Detail holds the kind-specific payload. A nil Detail is treated as an
	// unrecognized kind.
	Detail Detail
}

// Code returns the issue code, or "unknown" when Detail is nil.
func (i Issue) Code() Code {
	if i.Detail == nil {
		return CodeUnknown
	}
	return i.Detail.Code()
}

// JoinedPath returns the path segments joined with ".".
func (i Issue) JoinedPath() string {
	return strings.Join(i.Path, ".")
}

// At returns a copy of the issue whose path is prefix followed by the
// issue's own path.
func (i Issue) At(prefix []string) Issue {
	if len(prefix) == 0 {
		return i
	}
	path := make([]string, 0, len(prefix)+len(i.Path))
	path = append(path, prefix...)
	path = append(path, i.Path...)
	i.Path = path
	return i
}
