package safeparse

import (
	"encoding/json"

	"github.com/usestring/safeparse-mcp/pkg/types"
)

// Status values of an Outcome.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Outcome is either a Success or a Failure.
type Outcome[M any] interface {
	Status() string
	// IsSuccess reports whether the outcome is a Success.
	IsSuccess() bool
	// AsSuccess returns the outcome as a Success, or false for a Failure.
	AsSuccess() (Success[M], bool)
	outcome()
}

// Success holds a validated value.
type Success[M any] struct {
	Value M
}

// Failure holds the formatted errors of a failed validation, in engine order.
type Failure[M any] struct {
	Errors []types.FormattedError
}

func (Success[M]) Status() string { return StatusSuccess }
func (Failure[M]) Status() string { return StatusFailure }

func (Success[M]) IsSuccess() bool { return true }
func (Failure[M]) IsSuccess() bool { return false }

func (s Success[M]) AsSuccess() (Success[M], bool) { return s, true }
func (Failure[M]) AsSuccess() (Success[M], bool) { return Success[M]{}, false }

func (Success[M]) outcome() {}
func (Failure[M]) outcome() {}

// MarshalJSON encodes the success as {"status":"success","value":...}.
func (s Success[M]) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Status string `json:"status"`
		Value  M      `json:"value"`
	}{StatusSuccess, s.Value})
}

// MarshalJSON encodes the failure as {"status":"failure","errors":[...]}.
func (f Failure[M]) MarshalJSON() ([]byte, error) {
	errs := f.Errors
	if errs == nil {
		errs = []types.FormattedError{}
	}
	return json.Marshal(struct {
		Status string                 `json:"status"`
		Errors []types.FormattedError `json:"errors"`
	}{StatusFailure, errs})
}

// IsSuccess reports whether o is a Success. When it is, o carries a value
// and no errors; otherwise it carries errors and no value. A nil outcome is
// not a success. Use Outcome.AsSuccess for typed access to the value.
func IsSuccess(o interface{ IsSuccess() bool }) bool {
	return o != nil && o.IsSuccess()
}

// Match calls onSuccess or onFailure depending on the variant of o.
// A nil outcome is treated as an empty failure.
func Match[M, R any](o Outcome[M], onSuccess func(M) R, onFailure func([]types.FormattedError) R) R {
	switch v := o.(type) {
	case Success[M]:
		return onSuccess(v.Value)
	case Failure[M]:
		return onFailure(v.Errors)
	default:
		return onFailure([]types.FormattedError{})
	}
}
