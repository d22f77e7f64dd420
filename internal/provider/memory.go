// FareLens | 2026
// memory.go

package provider

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/farelens/backend/internal/alert"
	"github.com/farelens/backend/internal/core"
	"github.com/farelens/backend/internal/deal"
	"github.com/farelens/backend/internal/watchlist"
)

type deviceRecord struct {
	Token        string
	Platform     string
	LastActiveAt time.Time
}

// Memory is the development backend. Per-user data lives in maps keyed by
// owner id first, so a lookup that forgets the user id cannot even be
// written; that keeps the ownership invariant structural rather than a
// filter bolted on after a scan.
//
// Handlers run on concurrent goroutines, so all state sits behind one
// RWMutex. Read traffic dominates and the critical sections are tiny.
type Memory struct {
	mu sync.RWMutex

	deals      map[string]deal.FlightDeal
	watchlists map[string]map[string]watchlist.Watchlist
	alerts     map[string][]alert.Alert
	prefs      map[string]alert.Preferences
	airports   map[string][]alert.PreferredAirport
	devices    map[string]map[string]deviceRecord
}

func NewMemory() *Memory {
	m := &Memory{
		deals:      make(map[string]deal.FlightDeal),
		watchlists: make(map[string]map[string]watchlist.Watchlist),
		alerts:     make(map[string][]alert.Alert),
		prefs:      make(map[string]alert.Preferences),
		airports:   make(map[string][]alert.PreferredAirport),
		devices:    make(map[string]map[string]deviceRecord),
	}
	m.seed()
	return m
}

// seed loads one demo deal, one demo watchlist under a synthetic user, and
// one alert referencing the deal, so a fresh dev instance has data to show.
func (m *Memory) seed() {
	now := time.Now().UTC()
	returnStops := 0

	demoDeal := deal.FlightDeal{
		ID:              uuid.NewString(),
		Origin:          "LAX",
		Destination:     "JFK",
		DepartureDate:   now.Add(14 * 24 * time.Hour),
		ReturnDate:      now.Add(21 * 24 * time.Hour),
		TotalPrice:      420.0,
		Currency:        "USD",
		DealScore:       94,
		DiscountPercent: 35,
		NormalPrice:     646.0,
		CreatedAt:       now.Add(-2 * time.Hour),
		ExpiresAt:       now.Add(12 * time.Hour),
		Airline:         "Delta",
		Stops:           0,
		ReturnStops:     &returnStops,
		DeepLink:        "https://example.com/deal/lax-jfk",
	}
	m.deals[demoDeal.ID] = demoDeal

	demoUserID := uuid.NewString()
	maxPrice := 500.0
	dateStart := now
	dateEnd := now.Add(60 * 24 * time.Hour)

	demoWatchlist := watchlist.Watchlist{
		ID:             uuid.NewString(),
		UserID:         demoUserID,
		Name:           "LAX to JFK",
		Origin:         "LAX",
		Destination:    "JFK",
		DateRangeStart: &dateStart,
		DateRangeEnd:   &dateEnd,
		MaxPrice:       &maxPrice,
		IsActive:       true,
		CreatedAt:      now.Add(-48 * time.Hour),
		UpdatedAt:      now.Add(-24 * time.Hour),
	}
	m.watchlists[demoUserID] = map[string]watchlist.Watchlist{
		demoWatchlist.ID: demoWatchlist,
	}

	openedAt := now.Add(-2*time.Hour - 45*time.Minute)
	clicked := true
	expiresAt := demoDeal.ExpiresAt
	m.alerts[demoUserID] = []alert.Alert{{
		ID:             uuid.NewString(),
		Deal:           demoDeal,
		SentAt:         now.Add(-3 * time.Hour),
		OpenedAt:       &openedAt,
		ClickedThrough: &clicked,
		ExpiresAt:      &expiresAt,
	}}
}

// Deals

func (m *Memory) ListDeals(
	ctx context.Context,
	origin string,
	limit int,
) ([]deal.FlightDeal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	origin = strings.ToUpper(origin)

	deals := make([]deal.FlightDeal, 0, len(m.deals))
	for _, d := range m.deals {
		if origin != "" && d.Origin != origin {
			continue
		}
		deals = append(deals, d)
	}

	sort.Slice(deals, func(i, j int) bool {
		return deals[i].DealScore > deals[j].DealScore
	})

	if len(deals) > limit {
		deals = deals[:limit]
	}
	return deals, nil
}

func (m *Memory) GetDeal(
	ctx context.Context,
	id string,
) (*deal.FlightDeal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	d, ok := m.deals[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	return &d, nil
}

func (m *Memory) InsertDeal(ctx context.Context, d deal.FlightDeal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	m.deals[d.ID] = d
	return nil
}

// Watchlists

func (m *Memory) ListWatchlists(
	ctx context.Context,
	userID string,
) ([]watchlist.Watchlist, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owned := m.watchlists[userID]
	result := make([]watchlist.Watchlist, 0, len(owned))
	for _, w := range owned {
		result = append(result, w)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (m *Memory) CreateWatchlist(
	ctx context.Context,
	userID string,
	req watchlist.CreateRequest,
) (*watchlist.Watchlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := time.Now().UTC()
	w := watchlist.Watchlist{
		ID:             uuid.NewString(),
		UserID:         userID,
		Name:           req.Name,
		Origin:         strings.ToUpper(req.Origin),
		Destination:    strings.ToUpper(req.Destination),
		DateRangeStart: req.DateRangeStart,
		DateRangeEnd:   req.DateRangeEnd,
		MaxPrice:       req.MaxPrice,
		IsActive:       req.Active(),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	if m.watchlists[userID] == nil {
		m.watchlists[userID] = make(map[string]watchlist.Watchlist)
	}
	m.watchlists[userID][w.ID] = w
	return &w, nil
}

func (m *Memory) UpdateWatchlist(
	ctx context.Context,
	userID, watchlistID string,
	req watchlist.UpdateRequest,
) (*watchlist.Watchlist, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	w, ok := m.watchlists[userID][watchlistID]
	if !ok {
		return nil, core.ErrNotFound
	}

	req.Apply(&w)
	w.UpdatedAt = time.Now().UTC()
	m.watchlists[userID][watchlistID] = w
	return &w, nil
}

func (m *Memory) DeleteWatchlist(
	ctx context.Context,
	userID, watchlistID string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.watchlists[userID], watchlistID)
	return nil
}

// Alerts

func (m *Memory) ListAlertHistory(
	ctx context.Context,
	userID string,
	page, perPage int,
) ([]alert.Alert, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	owned := m.alerts[userID]
	sorted := make([]alert.Alert, len(owned))
	copy(sorted, owned)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].SentAt.After(sorted[j].SentAt)
	})

	// A huge page wraps the product negative; treat it as past the end,
	// the same as any other page beyond the data.
	start := (page - 1) * perPage
	if start < 0 || start >= len(sorted) {
		return []alert.Alert{}, len(owned), nil
	}

	end := start + perPage
	if end > len(sorted) {
		end = len(sorted)
	}
	return sorted[start:end], len(owned), nil
}

func (m *Memory) AppendAlert(
	ctx context.Context,
	userID string,
	a alert.Alert,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	m.alerts[userID] = append(m.alerts[userID], a)
	return nil
}

func (m *Memory) GetAlertPreferences(
	ctx context.Context,
	userID string,
) (*alert.Preferences, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	prefs, ok := m.prefs[userID]
	if !ok {
		prefs = alert.DefaultPreferences()
	}
	return &prefs, nil
}

func (m *Memory) UpdateAlertPreferences(
	ctx context.Context,
	userID string,
	prefs alert.Preferences,
) (*alert.Preferences, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.prefs[userID] = prefs
	return &prefs, nil
}

func (m *Memory) UpdatePreferredAirports(
	ctx context.Context,
	userID string,
	airports []alert.PreferredAirport,
) ([]alert.PreferredAirport, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	normalized := make([]alert.PreferredAirport, len(airports))
	for i, a := range airports {
		normalized[i] = alert.PreferredAirport{
			IATA:   strings.ToUpper(a.IATA),
			Weight: a.Weight,
		}
	}

	m.airports[userID] = normalized
	return normalized, nil
}

func (m *Memory) RegisterDeviceToken(
	ctx context.Context,
	userID, deviceID, token, platform string,
) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.devices[userID] == nil {
		m.devices[userID] = make(map[string]deviceRecord)
	}
	m.devices[userID][deviceID] = deviceRecord{
		Token:        token,
		Platform:     platform,
		LastActiveAt: time.Now().UTC(),
	}
	return nil
}
