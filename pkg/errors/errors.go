package errors

import (
	"fmt"
	"net/http"
)

// ErrorCode represents a unique error code
type ErrorCode int

// AppError represents an application error
type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Err     error     `json:"-"`
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

// StatusCode maps the error code onto an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Code {
	case ErrNotFound:
		return http.StatusNotFound
	case ErrBadRequest:
		return http.StatusBadRequest
	case ErrUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Common error codes
const (
	ErrNotFound ErrorCode = iota + 1000
	ErrBadRequest
	ErrUnauthorized
	ErrInternal
)

func NotFound(resource string, err error) *AppError {
	return &AppError{Code: ErrNotFound, Message: resource + " not found", Err: err}
}

func BadRequest(message string, err error) *AppError {
	return &AppError{Code: ErrBadRequest, Message: message, Err: err}
}

// Internal hides err behind the generic message; err is only logged.
func Internal(err error) *AppError {
	return &AppError{Code: ErrInternal, Message: "server error", Err: err}
}

func Unauthorized(message string, err error) *AppError {
	if message == "" {
		message = "unauthorized"
	}
	return &AppError{Code: ErrUnauthorized, Message: message, Err: err}
}
