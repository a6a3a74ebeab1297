// Package errors defines the structured error type shared by the operation
// layer and both front ends. Normal absence (a lookup that finds nothing,
// an episode without a renderable template) is never expressed as an error;
// these codes cover invalid requests and storage faults only.
package errors

import "fmt"

// ErrorCode represents an application error code.
type ErrorCode string

const (
	ErrInvalidRequest ErrorCode = "INVALID_REQUEST" // 400
	ErrNotFound       ErrorCode = "NOT_FOUND"       // 404, tool/CLI surface only
	ErrInternal       ErrorCode = "INTERNAL"        // 500
)

// AppError represents a structured error with code, status, and details.
type AppError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *AppError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *AppError {
	return &AppError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a record the caller addressed by id
// but that does not exist. Used by the tool and CLI surfaces where silent
// absence would be confusing; repository lookups themselves return nil.
func NewNotFound(kind string, id int64) *AppError {
	return &AppError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %d", kind, id),
		Details: map[string]any{"kind": kind, "id": id},
	}
}

// NewInternal creates a 500 error for storage-layer or other unexpected
// faults. These are not retried; the single operation fails.
func NewInternal(err error) *AppError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &AppError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is an AppError with the given code.
func Is(err error, code ErrorCode) bool {
	if aErr, ok := err.(*AppError); ok {
		return aErr.Code == code
	}
	return false
}
