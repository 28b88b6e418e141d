package repository

import (
	"context"
	"errors"
	"testing"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var userColumns = []string{"id", "name", "email", "password"}

func TestGetUserWithEmail(t *testing.T) {
	mock, repos := newMock(t, Options{})

	mock.ExpectQuery(getUserWithEmailSQL).
		WithArgs("%ann@%").
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(4, "Ann", "ann@example.com", "pw"))

	user, err := repos.Users.GetUserWithEmail(context.Background(), "ann@")
	require.NoError(t, err)
	assert.Equal(t, &model.User{ID: 4, Name: "Ann", Email: "ann@example.com", Password: "pw"}, user)
}

func TestGetUserWithEmail_EscapesWildcards(t *testing.T) {
	mock, repos := newMock(t, Options{})

	mock.ExpectQuery(getUserWithEmailSQL).
		WithArgs(`%first\_last%`).
		WillReturnRows(pgxmock.NewRows(userColumns))

	_, err := repos.Users.GetUserWithEmail(context.Background(), "first_last")
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestGetUserWithEmail_NotFound(t *testing.T) {
	mock, repos := newMock(t, Options{})

	mock.ExpectQuery(getUserWithEmailSQL).
		WithArgs("%nobody%").
		WillReturnRows(pgxmock.NewRows(userColumns))

	user, err := repos.Users.GetUserWithEmail(context.Background(), "nobody")
	assert.Nil(t, user)
	require.ErrorIs(t, err, errs.ErrNotFound)
	assert.Equal(t, "User not found", err.Error())
}

func TestGetUserWithEmail_Empty(t *testing.T) {
	_, repos := newMock(t, Options{})

	_, err := repos.Users.GetUserWithEmail(context.Background(), "")
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
}

func TestGetUserWithID(t *testing.T) {
	mock, repos := newMock(t, Options{})

	mock.ExpectQuery(getUserWithIDSQL).
		WithArgs(9).
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(9, "Bo", "bo@example.com", "secret"))

	user, err := repos.Users.GetUserWithID(context.Background(), 9)
	require.NoError(t, err)
	assert.Equal(t, 9, user.ID)
	assert.Equal(t, "bo@example.com", user.Email)
}

func TestGetUserWithID_NotFound(t *testing.T) {
	mock, repos := newMock(t, Options{})

	mock.ExpectQuery(getUserWithIDSQL).
		WithArgs(404).
		WillReturnRows(pgxmock.NewRows(userColumns))

	user, err := repos.Users.GetUserWithID(context.Background(), 404)
	assert.Nil(t, user)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAddUser(t *testing.T) {
	mock, repos := newMock(t, Options{})
	in := model.NewUser{Name: "Cy", Email: "cy@example.com", Password: "hash"}

	mock.ExpectQuery(addUserSQL).
		WithArgs(in.Name, in.Email, in.Password).
		WillReturnRows(pgxmock.NewRows(userColumns).AddRow(12, in.Name, in.Email, in.Password))

	user, err := repos.Users.AddUser(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, &model.User{ID: 12, Name: in.Name, Email: in.Email, Password: in.Password}, user)
}

func TestAddUser_DuplicateEmail(t *testing.T) {
	mock, repos := newMock(t, Options{})
	in := model.NewUser{Name: "Cy", Email: "cy@example.com", Password: "hash"}

	mock.ExpectQuery(addUserSQL).
		WithArgs(in.Name, in.Email, in.Password).
		WillReturnError(&pgconn.PgError{
			Code:           "23505",
			TableName:      "users",
			ConstraintName: "users_email_key",
		})

	user, err := repos.Users.AddUser(context.Background(), in)
	assert.Nil(t, user)
	require.ErrorIs(t, err, errs.ErrConstraintViolation)

	var appErr *errs.Error
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "USER_ALREADY_EXISTS", appErr.Code)
}
