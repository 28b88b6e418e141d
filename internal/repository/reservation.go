package repository

import (
	"context"

	"github.com/deppfellow/lightbnb/internal/model"
	"github.com/deppfellow/lightbnb/internal/query"
	"github.com/jackc/pgx/v5"
)

var reservationColumns = []string{"id", "guest_id", "property_id", "start_date", "end_date"}

// ReservationRepository reads a guest's reservations.
type ReservationRepository struct {
	executor
}

// NewReservationRepository returns a ReservationRepository running on db.
func NewReservationRepository(db DBTX, opts Options) *ReservationRepository {
	return &ReservationRepository{executor: newExecutor(db, opts)}
}

// pastReservationsQuery selects a guest's reservations that ended before
// today, earliest start first.
func pastReservationsQuery(guestID, limit int) query.Statement {
	columns := query.Qualify("reservations", reservationColumns)
	columns = append(columns, query.Qualify("properties", query.PropertyColumns)...)
	columns = append(columns, query.AverageRating)

	return query.Select(columns...).
		From("reservations").
		Join("JOIN properties ON reservations.property_id = properties.id").
		Join("JOIN property_reviews ON properties.id = property_reviews.property_id").
		Where("reservations.guest_id = ?", guestID).
		Where("reservations.end_date < now()::date").
		GroupBy("properties.id", "reservations.id").
		OrderBy("reservations.start_date").
		Limit(query.NormalizeLimit(limit)).
		ToSQL()
}

// GetAllReservations returns guestID's past reservations with their
// properties. No match yields an empty slice.
func (r *ReservationRepository) GetAllReservations(ctx context.Context, guestID, limit int) ([]model.Reservation, error) {
	stmt := pastReservationsQuery(guestID, limit)

	var reservations []model.Reservation
	err := r.run(ctx, "GetAllReservations", func(ctx context.Context) error {
		rows, err := r.db.Query(ctx, stmt.SQL, stmt.Args...)
		if err != nil {
			return err
		}
		reservations, err = pgx.CollectRows(rows, func(row pgx.CollectableRow) (model.Reservation, error) {
			var res model.Reservation
			err := row.Scan(res.ScanTargets()...)
			return res, err
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	if reservations == nil {
		reservations = []model.Reservation{}
	}
	return reservations, nil
}
