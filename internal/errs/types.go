package errs

import "github.com/pkg/errors"

// codeOr returns *code when set, otherwise the default derived from kind.
func codeOr(code *string, kind Kind) string {
	if code != nil {
		return *code
	}
	return MakeUpperCaseWithUnderscores(string(kind))
}

// NewNotFoundError creates a KindNotFound error.
//
// code is optional; nil yields "NOT_FOUND".
func NewNotFoundError(message string, override bool, code *string) *Error {
	return &Error{
		Kind:     KindNotFound,
		Code:     codeOr(code, KindNotFound),
		Message:  message,
		Override: override,
	}
}

// NewInvalidInputError creates a KindInvalidInput error.
//
// It supports per-field errors, which is how rejected filter keys and
// unknown insert columns are reported.
func NewInvalidInputError(message string, override bool, code *string, errors []FieldError) *Error {
	return &Error{
		Kind:     KindInvalidInput,
		Code:     codeOr(code, KindInvalidInput),
		Message:  message,
		Override: override,
		Errors:   errors,
	}
}

// NewConstraintViolationError creates a KindConstraintViolation error wrapping cause.
func NewConstraintViolationError(message string, override bool, code *string, errors []FieldError, cause error) *Error {
	return &Error{
		Kind:     KindConstraintViolation,
		Code:     codeOr(code, KindConstraintViolation),
		Message:  message,
		Override: override,
		Errors:   errors,
		err:      cause,
	}
}

// NewConnectionError creates a KindConnection error wrapping cause.
//
// The message is generic; the cause stays available for logging.
func NewConnectionError(cause error) *Error {
	return &Error{
		Kind:    KindConnection,
		Code:    codeOr(nil, KindConnection),
		Message: "Database unavailable",
		err:     cause,
	}
}

// NewInternalError creates a KindInternal error wrapping cause.
//
// Message is generic so driver details never leak to callers. The cause is
// annotated with a stack trace for the logger's stack marshaler.
func NewInternalError(cause error) *Error {
	return &Error{
		Kind:    KindInternal,
		Code:    codeOr(nil, KindInternal),
		Message: "An error occurred while processing your request",
		err:     errors.WithStack(cause),
	}
}

// InvalidField is shorthand for a single-field InvalidInput error.
func InvalidField(field, problem string) *Error {
	return NewInvalidInputError("Validation failed", true, nil, []FieldError{{Field: field, Error: problem}})
}
