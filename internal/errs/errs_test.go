package errs

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestErrorIs(t *testing.T) {
	notFound := NewNotFoundError("User not found", true, nil)

	assert.True(t, errors.Is(notFound, ErrNotFound))
	assert.False(t, errors.Is(notFound, ErrInvalidInput))

	wrapped := fmt.Errorf("get user: %w", notFound)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, KindNotFound, KindOf(wrapped))
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
	assert.Equal(t, KindInvalidInput, KindOf(InvalidField("city", "bad")))
	assert.Equal(t, KindConnection, KindOf(NewConnectionError(errors.New("dial tcp"))))
}

func TestUnwrap(t *testing.T) {
	cause := errors.New("duplicate key")
	err := NewConstraintViolationError("A User with this Email already exists", true, nil, nil, cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, cause, err.Cause())
	assert.Equal(t, "A User with this Email already exists", err.Error())
}

func TestCodes(t *testing.T) {
	assert.Equal(t, "NOT_FOUND", NewNotFoundError("x", false, nil).Code)
	assert.Equal(t, "INVALID_INPUT", NewInvalidInputError("x", false, nil, nil).Code)
	assert.Equal(t, "CONSTRAINT_VIOLATION", NewConstraintViolationError("x", false, nil, nil, nil).Code)
	assert.Equal(t, "CONNECTION", NewConnectionError(nil).Code)
	assert.Equal(t, "INTERNAL", NewInternalError(nil).Code)

	custom := "USER_ALREADY_EXISTS"
	assert.Equal(t, custom, NewConstraintViolationError("x", false, &custom, nil, nil).Code)
}

func TestWithMessage(t *testing.T) {
	base := NewNotFoundError("Resource not found", false, nil)
	named := base.WithMessage("Property not found")

	assert.Equal(t, "Resource not found", base.Message)
	assert.Equal(t, "Property not found", named.Message)
	assert.Equal(t, base.Kind, named.Kind)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("not_found"))
}

func TestInternalErrorCarriesStack(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewInternalError(cause)

	assert.ErrorIs(t, err, cause)

	type stackTracer interface{ StackTrace() pkgerrors.StackTrace }
	_, ok := err.Cause().(stackTracer)
	assert.True(t, ok)

	assert.Nil(t, NewInternalError(nil).Cause())
}
