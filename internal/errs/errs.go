// Package errs defines the application's error taxonomy.
//
// Every failure returned by the data-access layer is an *Error carrying
// a Kind, so callers can branch on what went wrong without inspecting
// messages:
//
//	user, err := repo.GetUserWithID(ctx, id)
//	switch {
//	case errors.Is(err, errs.ErrNotFound):
//	case errors.Is(err, errs.ErrInvalidInput):
//	case err != nil:
//	}
package errs

import (
	"errors"
	"strings"
)

// Kind classifies an Error.
type Kind string

const (
	// KindNotFound means the statement ran but matched no row.
	KindNotFound Kind = "not_found"

	// KindInvalidInput means the request was rejected before any SQL ran,
	// or the database rejected a value as malformed.
	KindInvalidInput Kind = "invalid_input"

	// KindConstraintViolation means the database refused the write
	// (unique, foreign key, not null, check).
	KindConstraintViolation Kind = "constraint_violation"

	// KindConnection means the database could not be reached in time.
	KindConnection Kind = "connection"

	// KindInternal is everything else.
	KindInternal Kind = "internal"
)

// FieldError represents a problem with a single input field.
//
//	{ "field": "email", "error": "is required" }
type FieldError struct {
	Field string `json:"field"`
	Error string `json:"error"`
}

// Error is the single error type returned across package boundaries.
//
// Fields:
//   - Kind: taxonomy bucket, used by Is.
//   - Code: machine-friendly code (e.g. "USER_ALREADY_EXISTS").
//   - Message: human-friendly message safe to show to a caller.
//   - Override: whether Message is specific enough to surface verbatim.
//   - Errors: per-field problems, if any.
type Error struct {
	Kind     Kind         `json:"kind"`
	Code     string       `json:"code"`
	Message  string       `json:"message"`
	Override bool         `json:"override"`
	Errors   []FieldError `json:"errors,omitempty"`

	// err is the underlying cause, kept for logs and errors.As.
	err error
}

// Sentinels for errors.Is. They only carry a Kind.
var (
	ErrNotFound            = &Error{Kind: KindNotFound}
	ErrInvalidInput        = &Error{Kind: KindInvalidInput}
	ErrConstraintViolation = &Error{Kind: KindConstraintViolation}
	ErrConnection          = &Error{Kind: KindConnection}
	ErrInternal            = &Error{Kind: KindInternal}
)

func (e *Error) Error() string {
	if e.err != nil && e.Message == "" {
		return e.err.Error()
	}
	return e.Message
}

// Unwrap exposes the cause so errors.As can reach driver errors.
func (e *Error) Unwrap() error {
	return e.err
}

// Is reports whether target is an *Error of the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// WithMessage returns a copy of e with Message replaced.
func (e *Error) WithMessage(message string) *Error {
	c := *e
	c.Message = message
	return &c
}

// WithCause returns a copy of e wrapping cause.
func (e *Error) WithCause(cause error) *Error {
	c := *e
	c.err = cause
	return &c
}

// Cause returns the wrapped error, if any.
func (e *Error) Cause() error {
	return e.err
}

// KindOf returns the Kind of the first *Error in err's chain.
// A nil error has no kind; any other error is KindInternal.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// MakeUpperCaseWithUnderscores converts a string into UPPER_CASE_WITH_UNDERSCORES.
//
//	"Not Found" -> "NOT_FOUND"
func MakeUpperCaseWithUnderscores(str string) string {
	return strings.ToUpper(strings.ReplaceAll(str, " ", "_"))
}
