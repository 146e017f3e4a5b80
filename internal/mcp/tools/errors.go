package tools

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// Error codes for MCP tool responses.
const (
	ErrCodeNotFound     = "NOT_FOUND"
	ErrCodeInvalidInput = "INVALID_INPUT"
	ErrCodeSchemaError  = "SCHEMA_ERROR"
	ErrCodeQueryError   = "QUERY_ERROR"
	ErrCodeTimeout      = "TIMEOUT"
	ErrCodeCancelled    = "CANCELLED"
)

// CodedError is an error with an associated error code.
type CodedError struct {
	Code    string
	Message string
	Cause   error
}

func (e *CodedError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *CodedError) Unwrap() error {
	return e.Cause
}

// WrapRunError converts an error from a batch run into a coded error.
func WrapRunError(err error) error {
	if err == nil {
		return nil
	}

	var coded *CodedError
	switch {
	case errors.As(err, &coded):
		return coded
	case errors.Is(err, context.DeadlineExceeded):
		coded = &CodedError{Code: ErrCodeTimeout, Message: "validation timed out", Cause: err}
	case errors.Is(err, context.Canceled):
		coded = &CodedError{Code: ErrCodeCancelled, Message: "validation cancelled", Cause: err}
	default:
		coded = &CodedError{Code: ErrCodeInvalidInput, Message: err.Error(), Cause: err}
	}

	slog.Warn("batch validation aborted",
		slog.String("code", coded.Code),
		slog.String("message", coded.Message),
	)
	return coded
}

// ErrNotFound creates a not found error.
func ErrNotFound(resource, id string) error {
	return &CodedError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, id),
	}
}

// ErrInvalidInput creates an invalid input error.
func ErrInvalidInput(message string) error {
	return &CodedError{
		Code:    ErrCodeInvalidInput,
		Message: message,
	}
}

// ErrSchema reports a schema that could not be parsed or compiled.
func ErrSchema(err error) error {
	return &CodedError{
		Code:    ErrCodeSchemaError,
		Message: "invalid schema",
		Cause:   err,
	}
}

// ErrQuery reports a select expression that could not be compiled or run.
func ErrQuery(err error) error {
	return &CodedError{
		Code:    ErrCodeQueryError,
		Message: "select failed",
		Cause:   err,
	}
}
