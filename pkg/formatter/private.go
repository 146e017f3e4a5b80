package formatter

import (
	"strings"

	"github.com/usestring/safeparse-mcp/pkg/issue"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

// Private renders issues without echoing input values or schema internals.
var Private Formatter = Func(formatPrivate)

func formatPrivate(iss issue.Issue) types.FormattedError {
	return types.FormattedError{
		Path:    iss.JoinedPath(),
		Message: privateMessage(iss),
	}
}

func privateMessage(iss issue.Issue) string {
	switch d := detailOf(iss).(type) {
	case *issue.InvalidType:
		// Type names are not user data.
		return join(labelInvalidType, "I would expect "+d.Expected+" instead of "+d.Received)
	case *issue.InvalidString:
		return join(labelInvalidString, describeValidation(d.Validation))
	case *issue.InvalidEnumValue:
		return labelInvalidEnumValue
	case *issue.InvalidLiteral:
		return labelInvalidLiteral
	case *issue.InvalidUnionDiscriminator:
		return labelInvalidUnionDiscriminator
	case *issue.InvalidUnion:
		return labelInvalidUnion
	case *issue.TooBig:
		return tooBigLabel(d.Type)
	case *issue.TooSmall:
		return tooSmallLabel(d.Type)
	case *issue.InvalidArguments, *issue.InvalidReturnType, *issue.InvalidDate, *issue.NotFinite,
		*issue.InvalidIntersectionTypes, *issue.NotMultipleOf, *issue.UnrecognizedKeys, *issue.Custom:
		label, _ := labelFor(d)
		return label
	default:
		return labelUnknown
	}
}

// describeValidation names a string rule without its configured values.
func describeValidation(v issue.StringValidation) string {
	if len(v.Params) > 0 {
		names := make([]string, len(v.Params))
		for i, p := range v.Params {
			names[i] = p.Name
		}
		return "It should have " + strings.Join(names, ",")
	}
	if v.Name == "" {
		return ""
	}
	return "It should be a " + v.Name
}
