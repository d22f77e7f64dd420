// FareLens | 2026
// dto.go

package deal

import (
	"time"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

type ListParams struct {
	Origin string
	Limit  int
}

// Validate enforces the documented query bounds. Out-of-range values are a
// client error, not something to silently clamp.
func (p *ListParams) Validate() error {
	if p.Limit < 1 || p.Limit > MaxListLimit {
		return errLimitOutOfRange
	}
	if p.Origin != "" && !isIATACode(p.Origin) {
		return errBadOriginFilter
	}
	return nil
}

type DealsResponse struct {
	Deals []FlightDeal `json:"deals"`
}

type BackgroundRefreshResponse struct {
	Status      string    `json:"status"`
	NewDeals    int       `json:"new_deals"`
	RefreshedAt time.Time `json:"refreshed_at"`
}

func isIATACode(s string) bool {
	if len(s) != 3 {
		return false
	}
	for _, c := range s {
		if (c < 'A' || c > 'Z') && (c < 'a' || c > 'z') {
			return false
		}
	}
	return true
}
