package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is the portal's typed failure. Code identifies the kind of failure,
// Status is the HTTP status it maps to and Err keeps the underlying cause.
type Error struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
	Err     error  `json:"-"`
}

// Portal failure kinds.
var (
	ErrInvalidCredentials = define("INVALID_CREDENTIALS", http.StatusUnauthorized, "invalid username or password")
	ErrUnauthorized       = define("UNAUTHORIZED", http.StatusUnauthorized, "unauthorized")
	ErrNotFound           = define("NOT_FOUND", http.StatusNotFound, "resource not found")
	ErrValidation         = define("VALIDATION_ERROR", http.StatusBadRequest, "validation failed")
	ErrInternal           = define("INTERNAL_ERROR", http.StatusInternalServerError, "internal server error")
	ErrStoreUnavailable   = define("STORE_UNAVAILABLE", http.StatusServiceUnavailable, "record store unavailable")

	// ErrCacheMiss never reaches a client; cache readers treat it as "compute".
	ErrCacheMiss = define("CACHE_MISS", http.StatusNotFound, "cache miss")
)

func define(code string, status int, message string) *Error {
	return &Error{Code: code, Status: status, Message: message}
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Is compares by Code, so a derived error still matches its kind.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || e == nil || t == nil {
		return false
	}
	return e.Code == t.Code
}

// WithMessage derives an error of the same kind with a client-facing message.
// An empty message keeps the current one.
func (e *Error) WithMessage(message string) *Error {
	if e == nil {
		return nil
	}
	derived := *e
	if message != "" {
		derived.Message = message
	}
	return &derived
}

// Because derives an error of the same kind carrying cause.
func (e *Error) Because(cause error, message string) *Error {
	derived := e.WithMessage(message)
	if derived != nil {
		derived.Err = cause
	}
	return derived
}

// FromError returns the typed error inside err, or an internal error wrapping
// it when err carries none.
func FromError(err error) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return ErrInternal.Because(err, "")
}
