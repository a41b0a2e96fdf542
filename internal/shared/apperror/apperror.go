// Package apperror defines the application error taxonomy and maps it to
// HTTP status codes at the boundary. Domain and application code returns
// *AppError directly; infrastructure errors are wrapped with context here.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation Kind = "validation_error"
	KindAuth       Kind = "unauthorized"
	KindForbidden  Kind = "forbidden"
	KindNotFound   Kind = "not_found"
	KindConflict   Kind = "conflict"
	KindBusiness   Kind = "business_error"
	KindRateLimit  Kind = "rate_limited"
	KindInternal   Kind = "internal_error"
)

// AppError is the single error type handlers translate into the
// {"error":{"code","message"}} envelope from spec.md §6/§7.
type AppError struct {
	Kind    Kind
	Message string
	Status  int
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *AppError) Unwrap() error { return e.Cause }

func new(kind Kind, status int, msg string) *AppError {
	return &AppError{Kind: kind, Message: msg, Status: status}
}

func Validation(msg string) *AppError   { return new(KindValidation, http.StatusBadRequest, msg) }
func Unauthorized(msg string) *AppError { return new(KindAuth, http.StatusUnauthorized, msg) }
func Forbidden(msg string) *AppError    { return new(KindForbidden, http.StatusForbidden, msg) }
func NotFound(msg string) *AppError     { return new(KindNotFound, http.StatusNotFound, msg) }
func Conflict(msg string) *AppError     { return new(KindConflict, http.StatusConflict, msg) }
func Business(msg string) *AppError     { return new(KindBusiness, http.StatusBadRequest, msg) }
func RateLimited(msg string) *AppError  { return new(KindRateLimit, http.StatusTooManyRequests, msg) }

// Internal wraps an infra error (DB, cache, stream) with context; the
// caller sees a generic 500, but the cause survives for logging.
func Internal(msg string, cause error) *AppError {
	return &AppError{Kind: KindInternal, Message: msg, Status: http.StatusInternalServerError, Cause: cause}
}

// As extracts an *AppError from err, if present.
func As(err error) (*AppError, bool) {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}

// StatusOf returns the HTTP status for any error, defaulting to 500 for
// errors that never passed through this package.
func StatusOf(err error) int {
	if ae, ok := As(err); ok {
		return ae.Status
	}
	return http.StatusInternalServerError
}
