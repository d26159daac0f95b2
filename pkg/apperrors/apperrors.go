package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code classifies a failure coarsely. Handlers translate codes to HTTP
// statuses; services pick the code closest to what actually went wrong.
type Code string

const (
	CodeAuthRequired     Code = "authentication-required"
	CodeValidationFailed Code = "validation-failed"
	CodeNotFound         Code = "not-found"
	CodeOperationFailed  Code = "operation-failed"
	CodeUnknown          Code = "unknown"
)

// Error is the single tagged error type used across services.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds a tagged error with a formatted message.
func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a tagged error so callers can still errors.Is/As
// into provider-level failures.
func Wrap(code Code, err error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Err: err}
}

// CodeOf extracts the code from err, or CodeUnknown when err is not tagged.
func CodeOf(err error) Code {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// IsCode reports whether err carries the given code.
func IsCode(err error, code Code) bool {
	return CodeOf(err) == code
}

// HTTPStatus maps a tagged error to the status the handler should send.
func HTTPStatus(err error) int {
	switch CodeOf(err) {
	case CodeAuthRequired:
		return http.StatusUnauthorized
	case CodeValidationFailed:
		return http.StatusUnprocessableEntity
	case CodeNotFound:
		return http.StatusNotFound
	case CodeOperationFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
