package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeValidation, "validation"},
		{ErrorTypeNotFound, "not_found"},
		{ErrorTypeRemote, "remote"},
		{ErrorTypeInvalidInput, "invalid_input"},
		{ErrorTypeConflict, "conflict"},
		{ErrorType(99), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.errorType.String())
		})
	}
}

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected string
	}{
		{
			name:     "error without cause",
			err:      &AppError{Type: ErrorTypeValidation, Message: "client is required"},
			expected: "validation: client is required",
		},
		{
			name:     "error with cause",
			err:      &AppError{Type: ErrorTypeRemote, Message: "update failed", Cause: fmt.Errorf("connection reset")},
			expected: "remote: update failed (caused by: connection reset)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.err.Error())
		})
	}
}

func TestAppError_Unwrap(t *testing.T) {
	cause := fmt.Errorf("underlying")
	err := NewRemoteError("fetch invoices", cause)

	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestAppError_WithContext(t *testing.T) {
	err := NewValidationError("bad input", nil).WithContext("field", "clientId")

	value, ok := err.GetContext("field")
	assert.True(t, ok)
	assert.Equal(t, "clientId", value)

	_, ok = err.GetContext("missing")
	assert.False(t, ok)
}

func TestIsErrorType(t *testing.T) {
	err := NewConflictError("start timer", "a timer is already running")

	assert.True(t, IsErrorType(err, ErrorTypeConflict))
	assert.False(t, IsErrorType(err, ErrorTypeValidation))
	assert.False(t, IsErrorType(fmt.Errorf("plain"), ErrorTypeConflict))
}

func TestIsErrorType_Wrapped(t *testing.T) {
	inner := NewNotFoundError("invoice", "42")
	wrapped := fmt.Errorf("deleting: %w", inner)

	assert.True(t, IsErrorType(wrapped, ErrorTypeNotFound))
}

func TestGetUserMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name:     "validation errors pass through",
			err:      NewValidationError("at least one time entry must be selected", nil),
			expected: "at least one time entry must be selected",
		},
		{
			name:     "remote errors are generic",
			err:      NewRemoteError("create invoice", fmt.Errorf("boom")),
			expected: "The record store could not be reached. Please try again.",
		},
		{
			name:     "plain errors pass through",
			err:      fmt.Errorf("something else"),
			expected: "something else",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, GetUserMessage(tt.err))
		})
	}
}

func TestShouldLogError(t *testing.T) {
	assert.False(t, ShouldLogError(NewValidationError("bad", nil)))
	assert.False(t, ShouldLogError(NewNotFoundError("client", "1")))
	assert.False(t, ShouldLogError(NewConflictError("generate invoice", "already in progress")))
	assert.True(t, ShouldLogError(NewRemoteError("fetch", nil)))
	assert.True(t, ShouldLogError(fmt.Errorf("unknown")))
}
