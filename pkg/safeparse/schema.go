// Package safeparse runs a schema engine over untrusted content and
// normalizes the result into an Outcome: the validated value on success, or
// one formatted error per engine issue on failure.
//
// The package does not validate anything itself. Engines are plugged in
// through the Schema interface; see package schema for the bundled adapters.
package safeparse

import "github.com/usestring/safeparse-mcp/pkg/issue"

// ParseResult is what an engine reports for one validation run.
// Data is meaningful only when Success is true; Issues only when it is false.
type ParseResult[M any] struct {
	Success bool
	Data    M
	Issues  []issue.Issue
}

// Schema is a validation engine bound to a schema describing M.
type Schema[M any] interface {
	SafeParse(content any) ParseResult[M]
}

// SchemaFunc adapts a function to the Schema interface.
type SchemaFunc[M any] func(content any) ParseResult[M]

// SafeParse calls f(content).
func (f SchemaFunc[M]) SafeParse(content any) ParseResult[M] {
	return f(content)
}

// Ok builds a successful ParseResult.
func Ok[M any](data M) ParseResult[M] {
	return ParseResult[M]{Success: true, Data: data}
}

// Fail builds a failed ParseResult.
func Fail[M any](issues ...issue.Issue) ParseResult[M] {
	return ParseResult[M]{Issues: issues}
}
