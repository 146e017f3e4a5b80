// Package formatter turns validation issues into user-presentable errors.
//
// Two policies are provided. Diagnostic renders everything the engine
// reported. Private renders fixed labels and never echoes values, bounds,
// enum members, literals or discriminator candidates; it keeps type names and
// the names of failed string rules.
//
// Both formatters are total: every issue, including unknown kinds and issues
// with a nil Detail, yields a FormattedError.
package formatter

import (
	"reflect"

	"github.com/usestring/safeparse-mcp/pkg/issue"
	"github.com/usestring/safeparse-mcp/pkg/types"
)

// Formatter renders one issue.
type Formatter interface {
	Format(iss issue.Issue) types.FormattedError
}

// Func adapts a function to the Formatter interface.
type Func func(iss issue.Issue) types.FormattedError

// Format calls f(iss).
func (f Func) Format(iss issue.Issue) types.FormattedError {
	return f(iss)
}

// FormatAll renders issues in order.
func FormatAll(f Formatter, issues []issue.Issue) []types.FormattedError {
	out := make([]types.FormattedError, 0, len(issues))
	for _, iss := range issues {
		out = append(out, f.Format(iss))
	}
	return out
}

// detailOf returns the issue's detail, or nil for a nil or typed-nil detail.
func detailOf(iss issue.Issue) issue.Detail {
	d := iss.Detail
	if d == nil {
		return nil
	}
	if v := reflect.ValueOf(d); v.Kind() == reflect.Pointer && v.IsNil() {
		return nil
	}
	return d
}
