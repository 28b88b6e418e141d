package repository

import (
	"github.com/deppfellow/lightbnb/internal/server"
)

// Repositories is a container for all repository instances.
type Repositories struct {
	Users        *UserRepository
	Properties   *PropertyRepository
	Reservations *ReservationRepository
}

// NewRepositories builds every repository over the server's pool.
func NewRepositories(s *server.Server) *Repositories {
	return New(s.DB.Pool, Options{
		QueryTimeout:       s.DB.QueryTimeout,
		SlowQueryThreshold: s.Config.Observability.Logging.SlowQueryThreshold,
		Logger:             s.Logger,
	})
}

// New builds every repository over db.
func New(db DBTX, opts Options) *Repositories {
	return &Repositories{
		Users:        NewUserRepository(db, opts),
		Properties:   NewPropertyRepository(db, opts),
		Reservations: NewReservationRepository(db, opts),
	}
}
