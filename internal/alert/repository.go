// FareLens | 2026
// repository.go

package alert

import (
	"context"
)

// Repository is the slice of the data provider the alert handlers consume.
// Every operation is keyed by the authenticated caller's user id.
type Repository interface {
	// ListAlertHistory returns the page-th page (1-indexed) of the user's
	// alerts ordered by sent_at descending, plus the total count of that
	// user's alerts.
	ListAlertHistory(
		ctx context.Context,
		userID string,
		page, perPage int,
	) ([]Alert, int, error)

	AppendAlert(ctx context.Context, userID string, a Alert) error

	// GetAlertPreferences returns DefaultPreferences for users who never
	// saved any; there is no distinct "not yet set" state.
	GetAlertPreferences(ctx context.Context, userID string) (*Preferences, error)
	UpdateAlertPreferences(
		ctx context.Context,
		userID string,
		prefs Preferences,
	) (*Preferences, error)

	// UpdatePreferredAirports replaces the user's whole list; IATA codes are
	// normalized to uppercase.
	UpdatePreferredAirports(
		ctx context.Context,
		userID string,
		airports []PreferredAirport,
	) ([]PreferredAirport, error)

	// RegisterDeviceToken upserts on (userID, deviceID), overwriting token
	// and platform and touching the last-active timestamp.
	RegisterDeviceToken(
		ctx context.Context,
		userID, deviceID, token, platform string,
	) error
}
