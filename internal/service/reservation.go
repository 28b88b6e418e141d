package service

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/rs/zerolog"
)

// ReservationRepository is the storage the ReservationService needs.
type ReservationRepository interface {
	GetAllReservations(ctx context.Context, guestID, limit int) ([]model.Reservation, error)
}

// ReservationService reads a guest's reservation history.
type ReservationService struct {
	base
	repo ReservationRepository
}

// NewReservationService returns a ReservationService logging to log.
func NewReservationService(log *zerolog.Logger, repo ReservationRepository) *ReservationService {
	return &ReservationService{base: base{log: log}, repo: repo}
}

// GetAllReservations lists a guest's past reservations. A limit <= 0 uses
// the default.
func (s *ReservationService) GetAllReservations(ctx context.Context, guestID, limit int) ([]model.Reservation, error) {
	if err := checkID("guest_id", guestID); err != nil {
		return nil, s.fail(ctx, "GetAllReservations", err)
	}

	reservations, err := s.repo.GetAllReservations(ctx, guestID, limit)
	if err != nil {
		return nil, s.fail(ctx, "GetAllReservations", err)
	}
	return reservations, nil
}
