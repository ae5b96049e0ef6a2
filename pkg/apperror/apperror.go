package apperror

import (
	"errors"
	"fmt"
)

// Code classifies an application error for transport mapping.
type Code int

const (
	CodeValidation Code = iota + 1
	CodeUnauthorized
	CodeForbidden
	CodeNotFound
	CodeConflict
	CodeStore
)

// AppError is the error shape surfaced to handlers. Store failures are
// retryable by the caller; conflicts (illegal transitions, already-decided
// requests) are caller misuse and are not.
type AppError struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	// Fields carries field-scoped validation messages, if any.
	Fields map[string]string `json:"fields,omitempty"`
	// RedirectTo carries the original destination for unauthorized errors
	// so a client can resume the flow after authenticating.
	RedirectTo string `json:"redirect_to,omitempty"`
	Err        error  `json:"-"`
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

func Validation(message string, fields map[string]string) *AppError {
	return &AppError{Code: CodeValidation, Message: message, Fields: fields}
}

func Unauthorized(message, redirectTo string) *AppError {
	return &AppError{Code: CodeUnauthorized, Message: message, RedirectTo: redirectTo}
}

func Forbidden(message string) *AppError {
	return &AppError{Code: CodeForbidden, Message: message}
}

func NotFound(resource string, err error) *AppError {
	return &AppError{Code: CodeNotFound, Message: fmt.Sprintf("%s not found", resource), Err: err}
}

func Conflict(message string, err error) *AppError {
	return &AppError{Code: CodeConflict, Message: message, Err: err}
}

func Store(err error) *AppError {
	return &AppError{Code: CodeStore, Message: "store operation failed, please retry", Err: err}
}

// As unwraps err into an *AppError when possible.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	ok := errors.As(err, &appErr)
	return appErr, ok
}
