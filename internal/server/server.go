// Package server holds the process-wide resources a LightBnB command needs
// once it talks to PostgreSQL: the loaded config, the logger and its New
// Relic application, and the connection pool.
package server

import (
	"context"
	"fmt"

	"github.com/deppfellow/lightbnb/internal/config"
	"github.com/deppfellow/lightbnb/internal/database"
	loggerPkg "github.com/deppfellow/lightbnb/internal/logger"
	"github.com/rs/zerolog"
)

// Server is built lazily by the first command that needs the database.
type Server struct {
	Config        *config.Config
	Logger        *zerolog.Logger
	LoggerService *loggerPkg.LoggerService

	// DB is the single pool shared by every repository.
	DB *database.Database
}

// New opens and pings the pool; it fails fast when PostgreSQL is unreachable.
func New(ctx context.Context, cfg *config.Config, logger *zerolog.Logger, loggerService *loggerPkg.LoggerService) (*Server, error) {
	db, err := database.New(ctx, cfg, logger, loggerService)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return &Server{
		Config:        cfg,
		Logger:        logger,
		LoggerService: loggerService,
		DB:            db,
	}, nil
}

// Shutdown releases the pool, then flushes pending New Relic data.
func (s *Server) Shutdown(_ context.Context) error {
	if err := s.DB.Close(); err != nil {
		return fmt.Errorf("failed to close database connection: %w", err)
	}

	s.LoggerService.Shutdown()

	return nil
}
