package formatter

import "github.com/usestring/safeparse-mcp/pkg/issue"

// Fixed labels shared by both policies.
const (
	labelInvalidType               = "The type for the field is invalid"
	labelInvalidString             = "The string for the field is invalid"
	labelInvalidEnumValue          = "The enum for the field is invalid"
	labelInvalidLiteral            = "The literal for the field is invalid"
	labelInvalidUnionDiscriminator = "The union discriminator for the object is invalid"
	labelInvalidUnion              = "The union for the field is invalid"
	labelInvalidArguments          = "The arguments are invalid"
	labelInvalidReturnType         = "The return type is invalid"
	labelInvalidDate               = "The date is invalid"
	labelNotFinite                 = "The number is not finite"
	labelInvalidIntersectionTypes  = "The intersection types are invalid"
	labelNotMultipleOf             = "The number is not the right multiple of"
	labelUnrecognizedKeys          = "The keys are not recognized"
	labelCustom                    = "The custom validation function did not pass"
	labelUnknown                   = "The type for the field is incorrect"
)

func tooBigLabel(kind string) string {
	return "The " + sizeType(kind) + " for the field is too big"
}

func tooSmallLabel(kind string) string {
	return "The " + sizeType(kind) + " for the field is too small"
}

func sizeType(kind string) string {
	if kind == "" {
		return "value"
	}
	return kind
}

// labelFor returns the fixed label of the issues that need no payload to be
// described.
func labelFor(d issue.Detail) (string, bool) {
	switch d.(type) {
	case *issue.InvalidArguments:
		return labelInvalidArguments, true
	case *issue.InvalidReturnType:
		return labelInvalidReturnType, true
	case *issue.InvalidDate:
		return labelInvalidDate, true
	case *issue.NotFinite:
		return labelNotFinite, true
	case *issue.InvalidIntersectionTypes:
		return labelInvalidIntersectionTypes, true
	case *issue.NotMultipleOf:
		return labelNotMultipleOf, true
	case *issue.UnrecognizedKeys:
		return labelUnrecognizedKeys, true
	case *issue.Custom:
		return labelCustom, true
	}
	return "", false
}
