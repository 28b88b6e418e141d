package model

import "time"

// Reservation is a guest's booking, read together with the booked
// property and its average rating.
type Reservation struct {
	ID         int       `db:"id" json:"id"`
	GuestID    int       `db:"guest_id" json:"guest_id"`
	PropertyID int       `db:"property_id" json:"property_id"`
	StartDate  time.Time `db:"start_date" json:"start_date"`
	EndDate    time.Time `db:"end_date" json:"end_date"`
	Property   Property  `db:"-" json:"property"`
}

// ScanTargets returns pointers to the reservation columns, then the
// property columns, then the property's average rating.
func (r *Reservation) ScanTargets() []any {
	targets := []any{&r.ID, &r.GuestID, &r.PropertyID, &r.StartDate, &r.EndDate}
	targets = append(targets, r.Property.ScanTargets()...)
	return append(targets, &r.Property.AverageRating)
}
