package service

import (
	"github.com/deppfellow/lightbnb/internal/repository"
	"github.com/deppfellow/lightbnb/internal/server"
)

// Services groups every domain service.
type Services struct {
	Users        *UserService
	Properties   *PropertyService
	Reservations *ReservationService
}

// NewService builds the services on top of repos, logging to the server
// logger.
func NewService(s *server.Server, repos *repository.Repositories) (*Services, error) {
	return &Services{
		Users:        NewUserService(s.Logger, repos.Users),
		Properties:   NewPropertyService(s.Logger, repos.Properties),
		Reservations: NewReservationService(s.Logger, repos.Reservations),
	}, nil
}
