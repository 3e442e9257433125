package http

import (
	"fmt"
	"net/http"
)

// AppError represents application-level error with HTTP status.
// Only Message and Details reach the client.
type AppError struct {
	Code    string
	Message string
	Details []ValidationError
	Status  int
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns underlying error.
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new application error.
func NewAppError(code, message string, status int) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Status:  status,
	}
}

// WithDetails attaches per-field validation details.
func (e *AppError) WithDetails(details []ValidationError) *AppError {
	e.Details = details
	return e
}

// WithError wraps an underlying error.
func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// Body renders the client-facing error body.
func (e *AppError) Body() ErrorBody {
	return ErrorBody{Error: e.Message, Details: e.Details}
}

// BadRequestError creates a 400 error.
func BadRequestError(message string) *AppError {
	return NewAppError("ERR_BAD_REQUEST", message, http.StatusBadRequest)
}

// PayloadTooLargeError creates a 413 error.
func PayloadTooLargeError(message string) *AppError {
	return NewAppError("ERR_PAYLOAD_TOO_LARGE", message, http.StatusRequestEntityTooLarge)
}

// TooManyRequestsError creates a 429 error.
func TooManyRequestsError(message string) *AppError {
	return NewAppError("ERR_RATE_LIMITED", message, http.StatusTooManyRequests)
}

// InternalError creates a 500 error.
func InternalError(message string) *AppError {
	return NewAppError("ERR_INTERNAL", message, http.StatusInternalServerError)
}
