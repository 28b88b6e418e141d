package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/validation"
	"github.com/rs/zerolog"
)

// UserRepository is the storage the UserService needs.
type UserRepository interface {
	GetUserWithEmail(ctx context.Context, email string) (*model.User, error)
	GetUserWithID(ctx context.Context, id int) (*model.User, error)
	AddUser(ctx context.Context, u model.NewUser) (*model.User, error)
}

// UserService looks up and registers users.
type UserService struct {
	base
	repo UserRepository
}

// NewUserService returns a UserService that logs failures to log unless
// the context carries its own logger.
func NewUserService(log *zerolog.Logger, repo UserRepository) *UserService {
	return &UserService{base: base{log: log}, repo: repo}
}

// GetUserWithEmail returns the first user whose email contains email.
func (s *UserService) GetUserWithEmail(ctx context.Context, email string) (*model.User, error) {
	user, err := s.repo.GetUserWithEmail(ctx, email)
	if err != nil {
		return nil, s.fail(ctx, "GetUserWithEmail", err)
	}
	return user, nil
}

// GetUserWithID returns the user with the given id.
func (s *UserService) GetUserWithID(ctx context.Context, id int) (*model.User, error) {
	if err := checkID("id", id); err != nil {
		return nil, s.fail(ctx, "GetUserWithID", err)
	}

	user, err := s.repo.GetUserWithID(ctx, id)
	if err != nil {
		return nil, s.fail(ctx, "GetUserWithID", err)
	}
	return user, nil
}

// AddUser validates u and inserts it. Invalid input never reaches the
// database.
func (s *UserService) AddUser(ctx context.Context, u model.NewUser) (*model.User, error) {
	if err := validation.Struct(u); err != nil {
		return nil, s.fail(ctx, "AddUser", err)
	}

	user, err := s.repo.AddUser(ctx, u)
	if err != nil {
		return nil, s.fail(ctx, "AddUser", err)
	}

	s.logger(ctx).Info().Int("user_id", user.ID).Msg("user added")
	return user, nil
}
