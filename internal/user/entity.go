// FareLens | 2026
// entity.go

package user

import (
	"time"

	"github.com/google/uuid"
)

const (
	TierFree = "free"
	TierPro  = "pro"
)

// SubscriptionInfo carries the quota limits attached to a tier.
type SubscriptionInfo struct {
	Tier            string     `json:"tier"`
	MaxWatchlists   int        `json:"max_watchlists"`
	MaxAlertsPerDay int        `json:"max_alerts_per_day"`
	TrialEndsAt     *time.Time `json:"trial_ends_at,omitempty"`
}

// User is the account shape returned by the auth and user endpoints.
// Authentication is external, so records beyond the authenticated id
// are mocked rather than persisted.
type User struct {
	ID               uuid.UUID        `json:"id"`
	Email            string           `json:"email"`
	SubscriptionTier string           `json:"subscription_tier"`
	Timezone         string           `json:"timezone"`
	CreatedAt        time.Time        `json:"created_at"`
	Subscription     SubscriptionInfo `json:"subscription"`
}

// MockUser builds a fresh free-tier account with a 14-day trial window.
func MockUser(email string) User {
	now := time.Now().UTC()
	trialEnd := now.Add(14 * 24 * time.Hour)

	return User{
		ID:               uuid.New(),
		Email:            email,
		SubscriptionTier: TierFree,
		Timezone:         "America/Los_Angeles",
		CreatedAt:        now,
		Subscription: SubscriptionInfo{
			Tier:            TierFree,
			MaxWatchlists:   5,
			MaxAlertsPerDay: 3,
			TrialEndsAt:     &trialEnd,
		},
	}
}
