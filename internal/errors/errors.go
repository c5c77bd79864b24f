package errors

import "fmt"

// ErrorCode represents a tianji error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"     // 400
	ErrInvalidDate       ErrorCode = "INVALID_DATE"        // 400
	ErrNotFound          ErrorCode = "NOT_FOUND"           // 404
	ErrNameAlreadyExists ErrorCode = "NAME_ALREADY_EXISTS" // 409
	ErrConflict          ErrorCode = "CONFLICT"            // 409
	ErrInternal          ErrorCode = "INTERNAL"            // 500
)

// TianjiError represents a structured error with code, status, and details.
type TianjiError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *TianjiError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *TianjiError {
	return &TianjiError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidDate creates a 400 error for a calendrically invalid birth date.
func NewInvalidDate(year, month, day int) *TianjiError {
	return &TianjiError{
		Code:    ErrInvalidDate,
		Status:  400,
		Message: fmt.Sprintf("invalid calendar date: %d-%02d-%02d", year, month, day),
		Details: map[string]any{"year": year, "month": month, "day": day},
	}
}

// NewNotFound creates a 404 error for when a chart cannot be found.
func NewNotFound(identifier string) *TianjiError {
	return &TianjiError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("chart not found: %s", identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewNameAlreadyExists creates a 409 error for name collisions.
func NewNameAlreadyExists(name string) *TianjiError {
	return &TianjiError{
		Code:    ErrNameAlreadyExists,
		Status:  409,
		Message: fmt.Sprintf("chart with name %q already exists", name),
		Details: map[string]any{"name": name},
	}
}

// NewConflict creates a 409 error for general conflicts.
func NewConflict(msg string) *TianjiError {
	return &TianjiError{
		Code:    ErrConflict,
		Status:  409,
		Message: msg,
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *TianjiError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &TianjiError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a TianjiError with the given code.
func Is(err error, code ErrorCode) bool {
	if tErr, ok := err.(*TianjiError); ok {
		return tErr.Code == code
	}
	return false
}
