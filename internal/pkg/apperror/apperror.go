// Package apperror classifies use case failures so handlers can map them to HTTP status codes.
package apperror

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// Kind is the failure class of an Error.
type Kind int

const (
	KindInfrastructure Kind = iota
	KindValidation
	KindAuthorization
	KindNotFound
	KindConflict
	KindState
	KindUnauthenticated
	// KindUniqueness is a true uniqueness conflict (HTTP 409). Invitation and membership
	// duplicates use KindConflict instead, which renders as 400.
	KindUniqueness
)

// Error is an expected, typed use case failure.
type Error struct {
	Kind    Kind
	Message string
	Details interface{}
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches on kind and message so sentinel errors survive WithDetails/Wrap copies.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details interface{}) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Validation(message string) *Error   { return New(KindValidation, message) }
func Forbidden(message string) *Error    { return New(KindAuthorization, message) }
func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Conflict(message string) *Error     { return New(KindConflict, message) }
func State(message string) *Error        { return New(KindState, message) }
func Unauthorized(message string) *Error { return New(KindUnauthenticated, message) }
func Uniqueness(message string) *Error   { return New(KindUniqueness, message) }

// Internal wraps an unexpected failure. The cause is kept for logs and never rendered.
func Internal(cause error) *Error {
	return &Error{Kind: KindInfrastructure, Message: "Internal Server Error", Cause: cause}
}

// As returns the *Error in err's chain, or an Internal wrapper when there is none.
func As(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}

// Status maps err to the HTTP status code of its kind.
func Status(err error) int {
	switch As(err).Kind {
	case KindValidation, KindConflict, KindState:
		return fiber.StatusBadRequest
	case KindAuthorization:
		return fiber.StatusForbidden
	case KindNotFound:
		return fiber.StatusNotFound
	case KindUnauthenticated:
		return fiber.StatusUnauthorized
	case KindUniqueness:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

// IsKind reports whether err carries an *Error of kind k.
func IsKind(err error, k Kind) bool {
	var e *Error
	return errors.As(err, &e) && e.Kind == k
}
