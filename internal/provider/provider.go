// FareLens | 2026
// provider.go

package provider

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/farelens/backend/internal/alert"
	"github.com/farelens/backend/internal/config"
	"github.com/farelens/backend/internal/deal"
	"github.com/farelens/backend/internal/watchlist"
)

// DataProvider is the full storage contract the route layer depends on.
// Each domain package declares the narrow slice it consumes; this composite
// exists so wiring code can hand one value to every handler.
type DataProvider interface {
	deal.Repository
	watchlist.Repository
	alert.Repository

	// InsertDeal is the ingestion path used by the background refresh and
	// by seeding; the public API never creates deals.
	InsertDeal(ctx context.Context, d deal.FlightDeal) error
}

// New selects the backend from configuration. The postgres backend needs a
// connected pool; the memory backend ignores it.
func New(cfg config.ProviderConfig, db *sqlx.DB) (DataProvider, error) {
	switch cfg.Backend {
	case config.BackendMemory:
		return NewMemory(), nil
	case config.BackendPostgres:
		if db == nil {
			return nil, fmt.Errorf("postgres backend requires a database pool")
		}
		return NewPostgres(db), nil
	default:
		return nil, fmt.Errorf("unknown provider backend %q", cfg.Backend)
	}
}
