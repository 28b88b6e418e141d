package service

import (
	"bytes"
	"context"
	"math"
	"strings"
	"testing"

	"github.com/deppfellow/lightbnb/internal/errs"
	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUsers struct {
	user  *model.User
	err   error
	calls int
}

func (f *fakeUsers) GetUserWithEmail(context.Context, string) (*model.User, error) {
	f.calls++
	return f.user, f.err
}

func (f *fakeUsers) GetUserWithID(context.Context, int) (*model.User, error) {
	f.calls++
	return f.user, f.err
}

func (f *fakeUsers) AddUser(_ context.Context, u model.NewUser) (*model.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &model.User{ID: 1, Name: u.Name, Email: u.Email, Password: u.Password}, nil
}

type fakeProperties struct {
	gotOpts  map[string]string
	gotLimit int
	err      error
}

func (f *fakeProperties) GetAllProperties(_ context.Context, opts map[string]string, limit int) ([]model.Property, error) {
	f.gotOpts, f.gotLimit = opts, limit
	if f.err != nil {
		return nil, f.err
	}
	return []model.Property{{ID: 1}}, nil
}

func (f *fakeProperties) AddProperty(_ context.Context, record map[string]any) (*model.Property, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &model.Property{ID: 2, Title: record["title"].(string)}, nil
}

type fakeReservations struct {
	calls int
}

func (f *fakeReservations) GetAllReservations(context.Context, int, int) ([]model.Reservation, error) {
	f.calls++
	return []model.Reservation{}, nil
}

func bufferLogger() (*zerolog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)
	return &l, &buf
}

func TestUserService_LogsFailureOnce(t *testing.T) {
	log, buf := bufferLogger()
	svc := NewUserService(log, &fakeUsers{err: errs.NewNotFoundError("User not found", true, nil)})

	user, err := svc.GetUserWithEmail(context.Background(), "x")
	assert.Nil(t, user)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	assert.Equal(t, 1, strings.Count(buf.String(), "operation failed"))
	assert.Contains(t, buf.String(), `"operation":"GetUserWithEmail"`)
	assert.Contains(t, buf.String(), `"kind":"not_found"`)
	assert.Contains(t, buf.String(), `"level":"warn"`)
}

func TestUserService_InternalLoggedAsError(t *testing.T) {
	log, buf := bufferLogger()
	svc := NewUserService(log, &fakeUsers{err: errs.NewInternalError(nil)})

	_, err := svc.AddUser(context.Background(), model.NewUser{Name: "a"})
	assert.ErrorIs(t, err, errs.ErrInternal)
	assert.Contains(t, buf.String(), `"level":"error"`)
}

func TestUserService_RejectsNonPositiveID(t *testing.T) {
	log, _ := bufferLogger()
	repo := &fakeUsers{}
	svc := NewUserService(log, repo)

	_, err := svc.GetUserWithID(context.Background(), 0)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Zero(t, repo.calls)
}

func TestUserService_AddUser(t *testing.T) {
	log, _ := bufferLogger()
	svc := NewUserService(log, &fakeUsers{})

	user, err := svc.AddUser(context.Background(), model.NewUser{Name: "Ann", Email: "ann@example.com", Password: "p"})
	require.NoError(t, err)
	assert.Equal(t, "Ann", user.Name)
}

func TestUserService_AddUserRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name   string
		user   model.NewUser
		fields []string
	}{
		{"empty", model.NewUser{}, []string{"name", "email", "password"}},
		{"bad email", model.NewUser{Name: "Ann", Email: "ann", Password: "p"}, []string{"email"}},
		{"long name", model.NewUser{Name: strings.Repeat("a", 256), Email: "ann@example.com", Password: "p"}, []string{"name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			log, buf := bufferLogger()
			repo := &fakeUsers{}
			svc := NewUserService(log, repo)

			user, err := svc.AddUser(context.Background(), tt.user)
			assert.Nil(t, user)
			assert.ErrorIs(t, err, errs.ErrInvalidInput)
			assert.Zero(t, repo.calls)
			assert.Equal(t, 1, strings.Count(buf.String(), "operation failed"))

			var appErr *errs.Error
			require.ErrorAs(t, err, &appErr)
			fields := make([]string, 0, len(appErr.Errors))
			for _, fe := range appErr.Errors {
				fields = append(fields, fe.Field)
			}
			assert.Equal(t, tt.fields, fields)
		})
	}
}

func TestService_RejectsIDsOutsideInt4(t *testing.T) {
	log, _ := bufferLogger()
	users := &fakeUsers{}
	reservations := &fakeReservations{}

	_, err := NewUserService(log, users).GetUserWithID(context.Background(), math.MaxInt32+1)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	_, err = NewReservationService(log, reservations).GetAllReservations(context.Background(), math.MaxInt32+1, 10)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)

	assert.Zero(t, users.calls)
	assert.Zero(t, reservations.calls)
}

func TestService_PrefersContextLogger(t *testing.T) {
	fallback, fallbackBuf := bufferLogger()
	reqLog, reqBuf := bufferLogger()
	svc := NewUserService(fallback, &fakeUsers{err: errs.NewInternalError(nil)})

	ctx := reqLog.With().Str("trace.id", "abc").Logger().WithContext(context.Background())
	_, _ = svc.GetUserWithEmail(ctx, "x")

	assert.Empty(t, fallbackBuf.String())
	assert.Contains(t, reqBuf.String(), `"trace.id":"abc"`)
}

func TestPropertyService_PassesThrough(t *testing.T) {
	log, _ := bufferLogger()
	repo := &fakeProperties{}
	svc := NewPropertyService(log, repo)

	opts := map[string]string{"city": "van"}
	properties, err := svc.GetAllProperties(context.Background(), opts, 0)
	require.NoError(t, err)
	assert.Len(t, properties, 1)
	assert.Equal(t, opts, repo.gotOpts)
	assert.Equal(t, 0, repo.gotLimit)

	property, err := svc.AddProperty(context.Background(), map[string]any{"title": "Loft"})
	require.NoError(t, err)
	assert.Equal(t, "Loft", property.Title)
}

func TestPropertyService_Failure(t *testing.T) {
	log, buf := bufferLogger()
	svc := NewPropertyService(log, &fakeProperties{err: errs.InvalidField("bogus", "is not a supported filter")})

	_, err := svc.GetAllProperties(context.Background(), map[string]string{"bogus": "1"}, 10)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Contains(t, buf.String(), `"kind":"invalid_input"`)
}

func TestReservationService_RejectsNonPositiveGuest(t *testing.T) {
	log, _ := bufferLogger()
	repo := &fakeReservations{}
	svc := NewReservationService(log, repo)

	_, err := svc.GetAllReservations(context.Background(), -1, 10)
	assert.ErrorIs(t, err, errs.ErrInvalidInput)
	assert.Zero(t, repo.calls)

	reservations, err := svc.GetAllReservations(context.Background(), 3, 10)
	require.NoError(t, err)
	assert.NotNil(t, reservations)
	assert.Equal(t, 1, repo.calls)
}
