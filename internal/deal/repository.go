// FareLens | 2026
// repository.go

package deal

import (
	"context"
)

// Repository is the slice of the data provider the deal handlers consume.
// Deals are ranked by descending deal score; the origin filter is optional.
type Repository interface {
	ListDeals(ctx context.Context, origin string, limit int) ([]FlightDeal, error)
	GetDeal(ctx context.Context, id string) (*FlightDeal, error)
}
