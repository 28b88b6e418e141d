package model

// Property is a rental listing. CostPerNight is in cents.
//
// AverageRating is only set on search results.
type Property struct {
	ID                int      `db:"id" json:"id"`
	OwnerID           int      `db:"owner_id" json:"owner_id"`
	Title             string   `db:"title" json:"title"`
	Description       string   `db:"description" json:"description"`
	ThumbnailPhotoURL string   `db:"thumbnail_photo_url" json:"thumbnail_photo_url"`
	CoverPhotoURL     string   `db:"cover_photo_url" json:"cover_photo_url"`
	CostPerNight      int      `db:"cost_per_night" json:"cost_per_night"`
	ParkingSpaces     int      `db:"parking_spaces" json:"parking_spaces"`
	NumberOfBathrooms int      `db:"number_of_bathrooms" json:"number_of_bathrooms"`
	NumberOfBedrooms  int      `db:"number_of_bedrooms" json:"number_of_bedrooms"`
	Country           string   `db:"country" json:"country"`
	Street            string   `db:"street" json:"street"`
	City              string   `db:"city" json:"city"`
	Province          string   `db:"province" json:"province"`
	PostCode          string   `db:"post_code" json:"post_code"`
	Active            bool     `db:"active" json:"active"`
	AverageRating     *float64 `db:"average_rating" json:"average_rating,omitempty"`
}

// ScanTargets returns pointers to the table columns, in column order.
func (p *Property) ScanTargets() []any {
	return []any{
		&p.ID,
		&p.OwnerID,
		&p.Title,
		&p.Description,
		&p.ThumbnailPhotoURL,
		&p.CoverPhotoURL,
		&p.CostPerNight,
		&p.ParkingSpaces,
		&p.NumberOfBathrooms,
		&p.NumberOfBedrooms,
		&p.Country,
		&p.Street,
		&p.City,
		&p.Province,
		&p.PostCode,
		&p.Active,
	}
}
