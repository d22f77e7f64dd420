// FareLens | 2026
// entity.go

package watchlist

import (
	"time"
)

// DestinationAny is the sentinel destination for "alert me about anywhere"
// watchlists.
const DestinationAny = "ANY"

type Watchlist struct {
	ID             string     `db:"id"               json:"id"`
	UserID         string     `db:"user_id"          json:"user_id"`
	Name           string     `db:"name"             json:"name"`
	Origin         string     `db:"origin"           json:"origin"`
	Destination    string     `db:"destination"      json:"destination"`
	DateRangeStart *time.Time `db:"date_range_start" json:"date_range_start,omitempty"`
	DateRangeEnd   *time.Time `db:"date_range_end"   json:"date_range_end,omitempty"`
	MaxPrice       *float64   `db:"max_price"        json:"max_price,omitempty"`
	IsActive       bool       `db:"is_active"        json:"is_active"`
	CreatedAt      time.Time  `db:"created_at"       json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at"       json:"updated_at"`
}
