package domain

import "github.com/gofiber/fiber/v2"

// ErrorKind tags every expected business failure with a machine-readable
// category. Services return *Error values; infrastructure failures are
// wrapped as ErrInternal and are the only errors callers should treat as
// unexpected.
type ErrorKind string

const (
	ErrValidation   ErrorKind = "VALIDATION_ERROR"
	ErrUnauthorized ErrorKind = "UNAUTHORIZED"
	ErrForbidden    ErrorKind = "FORBIDDEN"
	ErrNotFound     ErrorKind = "NOT_FOUND"
	ErrConflict     ErrorKind = "CONFLICT"
	ErrInternal     ErrorKind = "INTERNAL_ERROR"
)

type Error struct {
	Kind    ErrorKind
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func (e *Error) StatusCode() int {
	switch e.Kind {
	case ErrValidation:
		return fiber.StatusBadRequest
	case ErrUnauthorized:
		return fiber.StatusUnauthorized
	case ErrForbidden:
		return fiber.StatusForbidden
	case ErrNotFound:
		return fiber.StatusNotFound
	case ErrConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func ValidationError(message string) *Error {
	return &Error{Kind: ErrValidation, Message: message}
}

func Unauthorized(message string) *Error {
	return &Error{Kind: ErrUnauthorized, Message: message}
}

func Forbidden(message string) *Error {
	return &Error{Kind: ErrForbidden, Message: message}
}

func NotFound(message string) *Error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func Conflict(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

func Internal(cause error) *Error {
	return &Error{Kind: ErrInternal, Message: "internal error", Cause: cause}
}

// KindOf returns the error's kind, or ErrInternal for anything that is not a
// *domain.Error.
func KindOf(err error) ErrorKind {
	if e, ok := err.(*Error); ok {
		return e.Kind
	}
	return ErrInternal
}
