package formatter

import (
	"strings"

	"github.com/usestring/safeparse-mcp/pkg/issue"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

// Diagnostic renders issues with every detail the engine reported.
var Diagnostic Formatter = Func(formatDiagnostic)

func formatDiagnostic(iss issue.Issue) types.FormattedError {
	return types.FormattedError{
		Path:    iss.JoinedPath(),
		Message: diagnosticMessage(iss),
	}
}

func diagnosticMessage(iss issue.Issue) string {
	switch d := detailOf(iss).(type) {
	case *issue.InvalidType:
		return join(labelInvalidType, "I would expect "+d.Expected+" instead of "+d.Received)

	case *issue.InvalidString:
		return join(labelInvalidString, stringDetail(iss.Message, describeValidation(d.Validation)))

	case *issue.InvalidEnumValue:
		return join(labelInvalidEnumValue,
			"I would expect any of "+renderPrimitives(d.Options)+" instead of "+renderPrimitive(d.Received))

	case *issue.InvalidLiteral:
		return join(labelInvalidLiteral, "I would expect "+renderPrimitive(d.Expected))

	case *issue.InvalidUnionDiscriminator:
		return join(labelInvalidUnionDiscriminator, "I would expect any of "+renderPrimitives(d.Options))

	case *issue.InvalidUnion:
		return join(labelInvalidUnion, "I would review "+unionPaths(d.Branches))

	case *issue.TooBig:
		return join(tooBigLabel(d.Type), "I would expect the maximum to be "+renderNumber(d.Maximum))

	case *issue.TooSmall:
		return join(tooSmallLabel(d.Type), "I would expect the minimum to be "+renderNumber(d.Minimum))

	case *issue.InvalidArguments, *issue.InvalidReturnType, *issue.InvalidDate, *issue.NotFinite,
		*issue.InvalidIntersectionTypes, *issue.NotMultipleOf, *issue.UnrecognizedKeys, *issue.Custom:
		label, _ := labelFor(d)
		return join(label, iss.Message)

	default:
		return labelUnknown
	}
}

// stringDetail keeps the engine message and adds the rule descriptor unless
// the message already contains it, so the result always covers what the
// private formatter reports.
func stringDetail(message, descriptor string) string {
	switch {
	case message == "":
		return descriptor
	case descriptor == "" || strings.Contains(message, descriptor):
		return message
	}
	return message + ". " + descriptor
}
