package apperrors

import (
	"errors"
	"strings"
)

// Error kinds. Every error returned to a handler is either one of these
// (possibly wrapped in *Error) or treated as an unexpected server error.
var (
	ErrValidation   = errors.New("validation failed")
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("not found")
	ErrForbidden    = errors.New("forbidden")
	ErrUnauthorized = errors.New("unauthorized")
)

// Error carries a message that is safe to show to the end user.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Kind }

func New(kind error, message string) error {
	return &Error{Kind: kind, Message: message}
}

func NotFound(message string) error { return New(ErrNotFound, message) }

func Forbidden(message string) error { return New(ErrForbidden, message) }

func InvalidInput(message string) error { return New(ErrInvalidInput, message) }

// Validation joins field messages the same way they are shown to users.
func Validation(messages []string) error {
	return New(ErrValidation, strings.Join(messages, ", "))
}
