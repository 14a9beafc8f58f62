package errors

import (
	"errors"
	"fmt"
)

// PartialFailureError reports a multi-step side effect that completed for
// some records but not others. The steps already applied are not rolled
// back; the caller reconciles using the applied/failed sets. This is
// distinct from a clean failure, where no state changed.
type PartialFailureError struct {
	Operation string
	Applied   []int64
	Failed    map[int64]error
}

// NewPartialFailureError creates a partial failure result for the given
// operation.
func NewPartialFailureError(operation string, applied []int64, failed map[int64]error) *PartialFailureError {
	return &PartialFailureError{
		Operation: operation,
		Applied:   applied,
		Failed:    failed,
	}
}

// Error implements the error interface
func (e *PartialFailureError) Error() string {
	return fmt.Sprintf("%s partially failed: %d applied, %d failed", e.Operation, len(e.Applied), len(e.Failed))
}

// FailedIDs returns the identifiers of the records whose step failed.
func (e *PartialFailureError) FailedIDs() []int64 {
	ids := make([]int64, 0, len(e.Failed))
	for id := range e.Failed {
		ids = append(ids, id)
	}
	return ids
}

// IsPartialFailure checks if the error is a PartialFailureError
func IsPartialFailure(err error) bool {
	var pf *PartialFailureError
	return errors.As(err, &pf)
}

// AsPartialFailure converts an error to a PartialFailureError if possible
func AsPartialFailure(err error) (*PartialFailureError, bool) {
	var pf *PartialFailureError
	if errors.As(err, &pf) {
		return pf, true
	}
	return nil, false
}
