// FareLens | 2026
// entity.go

package deal

import (
	"time"
)

// FlightDeal rows are produced by an external ingestion pipeline; this
// service only reads them.
type FlightDeal struct {
	ID              string    `db:"id"               json:"id"`
	Origin          string    `db:"origin"           json:"origin"`
	Destination     string    `db:"destination"      json:"destination"`
	DepartureDate   time.Time `db:"departure_date"   json:"departure_date"`
	ReturnDate      time.Time `db:"return_date"      json:"return_date"`
	TotalPrice      float64   `db:"total_price"      json:"total_price"`
	Currency        string    `db:"currency"         json:"currency"`
	DealScore       int       `db:"deal_score"       json:"deal_score"`
	DiscountPercent int       `db:"discount_percent" json:"discount_percent"`
	NormalPrice     float64   `db:"normal_price"     json:"normal_price"`
	CreatedAt       time.Time `db:"created_at"       json:"created_at"`
	ExpiresAt       time.Time `db:"expires_at"       json:"expires_at"`
	Airline         string    `db:"airline"          json:"airline"`
	Stops           int       `db:"stops"            json:"stops"`
	ReturnStops     *int      `db:"return_stops"     json:"return_stops,omitempty"`
	DeepLink        string    `db:"deep_link"        json:"deep_link"`
}

func (d *FlightDeal) IsExpired(now time.Time) bool {
	return now.After(d.ExpiresAt)
}
