// Package query provides JQ-based selection of the part of a document to
// validate.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/itchyny/gojq"
)

// ErrNoValue is returned when an expression yields nothing for a document.
var ErrNoValue = errors.New("expression selected no value")

// Selector is a compiled JQ expression. It is safe for concurrent use.
type Selector struct {
	expression string
	code       *gojq.Code
}

// Compile parses and compiles a JQ expression.
func Compile(expression string) (*Selector, error) {
	query, err := gojq.Parse(expression)
	if err != nil {
		var parseErr *gojq.ParseError
		if errors.As(err, &parseErr) {
			return nil, fmt.Errorf("invalid jq expression at position %d: %w", parseErr.Offset, err)
		}
		return nil, fmt.Errorf("invalid jq expression: %w", err)
	}

	code, err := gojq.Compile(query)
	if err != nil {
		return nil, fmt.Errorf("failed to compile jq expression: %w", err)
	}

	return &Selector{expression: expression, code: code}, nil
}

// String returns the source expression.
func (s *Selector) String() string {
	return s.expression
}

// All runs the expression against a decoded JSON document and returns every
// value it yields, in order. The first runtime error stops the run.
func (s *Selector) All(doc any) ([]any, error) {
	values := make([]any, 0, 1)
	iter := s.code.Run(doc)
	for {
		v, ok := iter.Next()
		if !ok {
			break
		}
		if err, isErr := v.(error); isErr {
			return nil, errors.New(formatJQError(err))
		}
		values = append(values, v)
	}
	return values, nil
}

// Select runs the expression and returns the value to validate: the single
// value the expression yields, or an array when it yields several.
func (s *Selector) Select(doc any) (any, error) {
	values, err := s.All(doc)
	if err != nil {
		return nil, err
	}
	switch len(values) {
	case 0:
		return nil, ErrNoValue
	case 1:
		return values[0], nil
	default:
		return values, nil
	}
}

// formatJQError creates a helpful error message for JQ execution errors.
//
// Runtime JQ errors (like "cannot iterate over: null") are plain errors
// without typed wrappers in gojq, so hints are chosen by string matching.
func formatJQError(err error) string {
	var haltErr *gojq.HaltError
	if errors.As(err, &haltErr) {
		if haltErr.Value() == nil {
			return "query halted"
		}
		return fmt.Sprintf("query halted with: %v", haltErr.Value())
	}

	errStr := err.Error()

	var hint string
	switch {
	case strings.Contains(errStr, "cannot iterate over: null"):
		hint = " (the path may not exist in this document)"
	case strings.Contains(errStr, "cannot index") && strings.Contains(errStr, "with"):
		hint = " (field not found or wrong type)"
	case strings.Contains(errStr, "object") && strings.Contains(errStr, "cannot be iterated"):
		hint = " (expected array but got object, try removing '[]')"
	case strings.Contains(errStr, "array") && strings.Contains(errStr, "cannot be indexed"):
		hint = " (expected object but got array, try adding '[]')"
	}

	return errStr + hint
}
