package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func asAppError(t *testing.T, err error) *errs.Error {
	t.Helper()
	var appErr *errs.Error
	require.True(t, errors.As(err, &appErr), "expected *errs.Error, got %T", err)
	return appErr
}

func TestHandleError_UniqueViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "users_email_key"`,
		TableName:      "users",
		ConstraintName: "users_email_key",
	})

	appErr := asAppError(t, err)
	assert.Equal(t, errs.KindConstraintViolation, appErr.Kind)
	assert.Equal(t, "USER_ALREADY_EXISTS", appErr.Code)
	assert.Equal(t, "A User with this Email already exists", appErr.Message)
	assert.Equal(t, UniqueViolation, ErrCode(err))
}

func TestHandleError_ForeignKeyViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23503",
		TableName:  "properties",
		ColumnName: "owner_id",
	})

	appErr := asAppError(t, err)
	assert.Equal(t, errs.KindConstraintViolation, appErr.Kind)
	assert.Equal(t, "PROPERTY_NOT_FOUND", appErr.Code)
	assert.Equal(t, "The referenced Owner does not exist", appErr.Message)
}

func TestHandleError_NotNullViolation(t *testing.T) {
	err := HandleError(&pgconn.PgError{
		Code:       "23502",
		TableName:  "properties",
		ColumnName: "title",
	})

	appErr := asAppError(t, err)
	assert.Equal(t, errs.KindConstraintViolation, appErr.Kind)
	assert.Equal(t, "The Title is required", appErr.Message)
	require.Len(t, appErr.Errors, 1)
	assert.Equal(t, "title", appErr.Errors[0].Field)
}

func TestHandleError_InvalidText(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "22P02", TableName: "properties"})

	appErr := asAppError(t, err)
	assert.Equal(t, errs.KindInvalidInput, appErr.Kind)
	assert.Equal(t, "PROPERTY_INVALID", appErr.Code)
}

func TestHandleError_ConnectionClass(t *testing.T) {
	for _, code := range []string{"57014", "08006", "53300", "57P01"} {
		err := HandleError(&pgconn.PgError{Code: code})
		assert.ErrorIs(t, err, errs.ErrConnection, code)
	}
}

func TestHandleError_UnknownPgError(t *testing.T) {
	err := HandleError(&pgconn.PgError{Code: "XX000", Message: "internal detail"})

	appErr := asAppError(t, err)
	assert.Equal(t, errs.KindInternal, appErr.Kind)
	assert.NotContains(t, appErr.Message, "internal detail")
}

func TestHandleError_NoRows(t *testing.T) {
	err := HandleError(pgx.ErrNoRows)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, "Resource not found", asAppError(t, err).Message)

	named := HandleError(fmt.Errorf("table:users: %w", pgx.ErrNoRows))
	assert.Equal(t, "User not found", asAppError(t, named).Message)
}

func TestHandleError_Timeouts(t *testing.T) {
	assert.ErrorIs(t, HandleError(context.DeadlineExceeded), errs.ErrConnection)
	assert.ErrorIs(t, HandleError(fmt.Errorf("query: %w", context.Canceled)), errs.ErrConnection)
}

func TestHandleError_PassThrough(t *testing.T) {
	assert.NoError(t, HandleError(nil))

	original := errs.InvalidField("city", "is not allowed")
	assert.Same(t, original, HandleError(original))

	assert.ErrorIs(t, HandleError(errors.New("boom")), errs.ErrInternal)
}

func TestExtractColumnForUniqueViolation(t *testing.T) {
	assert.Equal(t, "email", extractColumnForUniqueViolation("unique_users_email"))
	assert.Equal(t, "email", extractColumnForUniqueViolation("users_email_key"))
	assert.Equal(t, "", extractColumnForUniqueViolation("pk_users"))
	assert.Equal(t, "", extractColumnForUniqueViolation(""))
}

func TestMapSeverity(t *testing.T) {
	assert.Equal(t, SeverityFatal, MapSeverity("FATAL"))
	assert.Equal(t, SeverityError, MapSeverity("whatever"))
}
