package formatter

import "github.com/usestring/safeparse-mcp/pkg/types"

var byPolicy = map[types.FormattingPolicy]Formatter{
	types.PolicyDiagnostic:        Diagnostic,
	types.PolicyPrivacyPreserving: Private,
}

// Select returns the formatter for a policy. Unknown policies get the
// diagnostic formatter.
func Select(policy types.FormattingPolicy) Formatter {
	if f, ok := byPolicy[policy]; ok {
		return f
	}
	return Diagnostic
}
