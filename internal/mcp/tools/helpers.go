// Package tools contains the MCP tool implementations for safeparse.
package tools

import (
	"encoding/json"
	"time"

	"github.com/usestring/safeparse-mcp/internal/metrics"
	"github.com/usestring/safeparse-mcp/internal/query"
	"github.com/usestring/safeparse-mcp/pkg/safeparse"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

// MimeJSON is the MIME type of JSON resources.
const MimeJSON = "application/json"

// compileSelect compiles an optional select expression.
func compileSelect(expr string) (*query.Selector, error) {
	if expr == "" {
		return nil, nil
	}
	sel, err := query.Compile(expr)
	if err != nil {
		return nil, ErrQuery(err)
	}
	return sel, nil
}

// documentOf returns the value to validate from tool input. Raw text is
// passed through as bytes so malformed JSON surfaces as a validation issue,
// unless a selector needs the decoded value.
func documentOf(doc any, text string, sel *query.Selector) (any, error) {
	if text == "" {
		if sel == nil {
			return doc, nil
		}
		v, err := sel.Select(doc)
		if err != nil {
			return nil, ErrQuery(err)
		}
		return v, nil
	}

	if doc != nil {
		return nil, ErrInvalidInput("document and document_text are mutually exclusive")
	}
	if sel == nil {
		return []byte(text), nil
	}

	var decoded any
	if err := json.Unmarshal([]byte(text), &decoded); err != nil {
		return nil, ErrInvalidInput("document_text is not valid JSON: " + err.Error())
	}
	v, err := sel.Select(decoded)
	if err != nil {
		return nil, ErrQuery(err)
	}
	return v, nil
}

// validateOne runs SafeParse and records metrics for the outcome.
func (d *Deps) validateOne(content any, rs *ResolvedSchema, policy types.FormattingPolicy) safeparse.Outcome[any] {
	start := time.Now()
	out := safeparse.SafeParse(content, metrics.Observe[any](d.Metrics, rs.Validator), policy)
	d.Metrics.ObserveDuration(rs.Format, time.Since(start))
	d.Metrics.RecordOutcome(policy, out.Status())
	return out
}

// errorsOf returns the formatted errors of a failed outcome, or an empty
// slice for a success.
func errorsOf(out safeparse.Outcome[any]) []types.FormattedError {
	if f, ok := out.(safeparse.Failure[any]); ok && f.Errors != nil {
		return f.Errors
	}
	return []types.FormattedError{}
}
