// FareLens | 2026
// entity.go

package alert

import (
	"time"

	"github.com/farelens/backend/internal/deal"
)

// Alert is one entry in a user's alert history. History is append-only:
// there is no update or delete path.
type Alert struct {
	ID             string          `db:"id"              json:"id"`
	Deal           deal.FlightDeal `db:"-"               json:"deal"`
	SentAt         time.Time       `db:"sent_at"         json:"sent_at"`
	OpenedAt       *time.Time      `db:"opened_at"       json:"opened_at,omitempty"`
	ClickedThrough *bool           `db:"clicked_through" json:"clicked_through,omitempty"`
	ExpiresAt      *time.Time      `db:"expires_at"      json:"expires_at,omitempty"`
}

// Preferences is a per-user singleton with upsert semantics; a user who has
// never saved preferences reads back DefaultPreferences.
type Preferences struct {
	Enabled           bool `db:"alert_enabled"       json:"enabled"`
	QuietHoursEnabled bool `db:"quiet_hours_enabled" json:"quiet_hours_enabled"`
	QuietHoursStart   int  `db:"quiet_hours_start"   json:"quiet_hours_start"   validate:"gte=0,lte=23"`
	QuietHoursEnd     int  `db:"quiet_hours_end"     json:"quiet_hours_end"     validate:"gte=0,lte=23"`
	WatchlistOnlyMode bool `db:"watchlist_only_mode" json:"watchlist_only_mode"`
}

func DefaultPreferences() Preferences {
	return Preferences{
		Enabled:           true,
		QuietHoursEnabled: true,
		QuietHoursStart:   22,
		QuietHoursEnd:     7,
		WatchlistOnlyMode: false,
	}
}

type PreferredAirport struct {
	IATA   string  `json:"iata"   validate:"required,len=3,alpha"`
	Weight float64 `json:"weight" validate:"gte=0,lte=1"`
}
