// FareLens | 2026
// repository.go

package watchlist

import (
	"context"
)

// Repository is the slice of the data provider the watchlist handlers
// consume. Every operation is scoped to the authenticated caller's user id:
// a watchlist that exists but belongs to someone else is indistinguishable
// from one that does not exist.
type Repository interface {
	ListWatchlists(ctx context.Context, userID string) ([]Watchlist, error)

	// CreateWatchlist forces the owner to userID regardless of payload
	// content and generates the id and timestamps.
	CreateWatchlist(
		ctx context.Context,
		userID string,
		req CreateRequest,
	) (*Watchlist, error)

	// UpdateWatchlist applies only the fields present in req and refreshes
	// updated_at. Returns core.ErrNotFound when the watchlist is absent or
	// not owned by userID.
	UpdateWatchlist(
		ctx context.Context,
		userID, watchlistID string,
		req UpdateRequest,
	) (*Watchlist, error)

	// DeleteWatchlist is idempotent: it succeeds whether or not a matching
	// user-owned watchlist existed.
	DeleteWatchlist(ctx context.Context, userID, watchlistID string) error
}
