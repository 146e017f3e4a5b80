// Package types provides shared types for safeparse-mcp.
// These types are used across multiple packages and are designed for external consumption.
package types

import (
	"strings"
)

// FormattingPolicy selects how validation issues are rendered into messages.
type FormattingPolicy string

// Formatting policies.
const (
	// PolicyDiagnostic renders every detail the engine reported, including
	// expected values, bounds and the received value.
	PolicyDiagnostic FormattingPolicy = "diagnostic"

	// PolicyPrivacyPreserving renders fixed labels only. Type names and
	// constraint names are kept; values, bounds and candidates are not.
	PolicyPrivacyPreserving FormattingPolicy = "privacy-preserving"
)

// Policies lists the known formatting policies.
func Policies() []FormattingPolicy {
	return []FormattingPolicy{PolicyDiagnostic, PolicyPrivacyPreserving}
}

// ParsePolicy normalizes policy text from configuration or tool input.
// Older names ("human-friendly", "privacy-first", "privacy-aware") map to the
// current policies. Unknown text is returned as-is so the formatter selector
// can apply its fallback.
func ParsePolicy(s string) FormattingPolicy {
	switch n := normalize(s); n {
	case "", "diagnostic", "human-friendly", "friendly":
		return PolicyDiagnostic
	case "privacy-preserving", "privacy-first", "privacy-aware", "privacy", "private":
		return PolicyPrivacyPreserving
	default:
		return FormattingPolicy(n)
	}
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
