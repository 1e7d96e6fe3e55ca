package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
// It is also returned when a resource exists but belongs to another user,
// so callers cannot probe for other tenants' data.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed a business-rule check.
var ErrValidation = errors.New("validation error")

// ErrForbidden indicates the caller is not allowed to act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrConflict indicates the resource is in a state that rejects the operation.
var ErrConflict = errors.New("resource state conflict")

// ErrInternal indicates an unexpected failure inside the unit of work.
var ErrInternal = errors.New("internal error")

// AppError carries a status code alongside the wrapped cause.
// Repositories use it to surface storage failures without losing the cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}
