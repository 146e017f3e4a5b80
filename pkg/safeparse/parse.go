package safeparse

import (
	"github.com/usestring/safeparse-mcp/pkg/formatter"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

// SafeParse validates content against schema and normalizes the result.
//
// The engine is called exactly once. On success its data is returned as is.
// On failure every issue is formatted with the formatter selected for policy,
// in engine order; a failure with no issues yields a Failure with no errors.
// A nil schema panics.
func SafeParse[M any](content any, schema Schema[M], policy types.FormattingPolicy) Outcome[M] {
	if schema == nil {
		panic("safeparse: nil schema")
	}
	res := schema.SafeParse(content)
	if res.Success {
		return Success[M]{Value: res.Data}
	}
	return Failure[M]{Errors: formatter.FormatAll(formatter.Select(policy), res.Issues)}
}
