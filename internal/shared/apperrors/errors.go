// Package apperrors defines the domain error type every layer returns and the
// central error handler translates into HTTP responses.
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindValidation     Kind = "VALIDATION_ERROR"
	KindUnauthorized   Kind = "UNAUTHORIZED"
	KindForbidden      Kind = "FORBIDDEN"
	KindNotFound       Kind = "NOT_FOUND"
	KindConflict       Kind = "CONFLICT"
	KindPaymentFailed  Kind = "PAYMENT_FAILED"
	KindPaymentState   Kind = "INVALID_PAYMENT_STATE"
	KindBusinessRule   Kind = "BUSINESS_RULE_VIOLATION"
	KindRateLimited    Kind = "RATE_LIMITED"
	KindReconciliation Kind = "RECONCILIATION_REQUIRED"
	KindInternal       Kind = "INTERNAL_ERROR"
)

var kindStatus = map[Kind]int{
	KindValidation:     http.StatusBadRequest,
	KindUnauthorized:   http.StatusUnauthorized,
	KindForbidden:      http.StatusForbidden,
	KindNotFound:       http.StatusNotFound,
	KindConflict:       http.StatusConflict,
	KindPaymentFailed:  http.StatusPaymentRequired,
	KindPaymentState:   http.StatusUnprocessableEntity,
	KindBusinessRule:   http.StatusUnprocessableEntity,
	KindRateLimited:    http.StatusTooManyRequests,
	KindReconciliation: http.StatusInternalServerError,
	KindInternal:       http.StatusInternalServerError,
}

// FieldError describes one rejected input field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is a domain error carrying its HTTP status.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Details interface{}
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

// Is matches on Kind so callers can write errors.Is(err, apperrors.ErrNotFound).
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && (t.Message == "" || t.Message == e.Message)
}

// Sentinels for errors.Is checks.
var (
	ErrNotFound     = &Error{Kind: KindNotFound}
	ErrConflict     = &Error{Kind: KindConflict}
	ErrValidation   = &Error{Kind: KindValidation}
	ErrUnauthorized = &Error{Kind: KindUnauthorized}
	ErrForbidden    = &Error{Kind: KindForbidden}
	ErrPaymentState = &Error{Kind: KindPaymentState}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Status: kindStatus[kind], Message: message}
}

func Validation(message string, fields ...FieldError) *Error {
	e := New(KindValidation, message)
	if len(fields) > 0 {
		e.Details = fields
	}
	return e
}

// Field is shorthand for a single-field validation error.
func Field(field, message string) *Error {
	return Validation(message, FieldError{Field: field, Message: message})
}

func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

func Forbidden(message string) *Error { return New(KindForbidden, message) }

func NotFound(resource string) *Error {
	return New(KindNotFound, resource+" not found")
}

func Conflict(message string) *Error { return New(KindConflict, message) }

func PaymentFailed(message string) *Error { return New(KindPaymentFailed, message) }

func PaymentState(message string) *Error { return New(KindPaymentState, message) }

func BusinessRule(message string) *Error { return New(KindBusinessRule, message) }

func RateLimited(message string) *Error { return New(KindRateLimited, message) }

func Reconciliation(message string, err error) *Error {
	e := New(KindReconciliation, message)
	e.Err = err
	return e
}

// Internal wraps an unexpected failure. The message is replaced in release mode.
func Internal(err error) *Error {
	e := New(KindInternal, "internal server error")
	e.Err = err
	return e
}

// WithDetails attaches structured details to the error.
func (e *Error) WithDetails(details interface{}) *Error {
	e.Details = details
	return e
}

// From converts any error into an *Error, treating unknown errors as internal.
func From(err error) *Error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		if appErr.Status == 0 {
			appErr.Status = kindStatus[appErr.Kind]
		}
		return appErr
	}
	return Internal(err)
}
