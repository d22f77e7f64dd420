// FareLens | 2026
// postgres.go

package provider

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"github.com/farelens/backend/internal/alert"
	"github.com/farelens/backend/internal/core"
	"github.com/farelens/backend/internal/deal"
	"github.com/farelens/backend/internal/watchlist"
)

// Postgres is the production backend. Every user-scoped statement binds the
// caller's user id as a query parameter; ownership checks ride along in the
// WHERE clause so "not found" and "not owned" collapse into one outcome in
// a single round trip.
type Postgres struct {
	db core.DBTX
}

func NewPostgres(db *sqlx.DB) *Postgres {
	return &Postgres{db: db}
}

const dealColumns = `
	id, origin, destination, departure_date, return_date, total_price,
	currency, deal_score, discount_percent, normal_price, created_at,
	expires_at, airline, stops, return_stops, deep_link`

// Deals

func (p *Postgres) ListDeals(
	ctx context.Context,
	origin string,
	limit int,
) ([]deal.FlightDeal, error) {
	query := `
		SELECT ` + dealColumns + `
		FROM flight_deals
		WHERE ($1::text = '' OR origin = $1)
		ORDER BY deal_score DESC
		LIMIT $2`

	deals := []deal.FlightDeal{}
	err := p.db.SelectContext(
		ctx,
		&deals,
		query,
		strings.ToUpper(origin),
		limit,
	)
	if err != nil {
		return nil, wrapStorageError("list deals", err)
	}

	return deals, nil
}

func (p *Postgres) GetDeal(
	ctx context.Context,
	id string,
) (*deal.FlightDeal, error) {
	query := `
		SELECT ` + dealColumns + `
		FROM flight_deals
		WHERE id = $1`

	var d deal.FlightDeal
	err := p.db.GetContext(ctx, &d, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("get deal: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, wrapStorageError("get deal", err)
	}

	return &d, nil
}

func (p *Postgres) InsertDeal(ctx context.Context, d deal.FlightDeal) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}

	query := `
		INSERT INTO flight_deals (` + dealColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		        $14, $15, $16)`

	_, err := p.db.ExecContext(ctx, query,
		d.ID,
		d.Origin,
		d.Destination,
		d.DepartureDate,
		d.ReturnDate,
		d.TotalPrice,
		d.Currency,
		d.DealScore,
		d.DiscountPercent,
		d.NormalPrice,
		d.CreatedAt,
		d.ExpiresAt,
		d.Airline,
		d.Stops,
		d.ReturnStops,
		d.DeepLink,
	)
	if err != nil {
		return wrapStorageError("insert deal", err)
	}

	return nil
}

// Watchlists

const watchlistColumns = `
	id, user_id, name, origin, destination, date_range_start,
	date_range_end, max_price, is_active, created_at, updated_at`

func (p *Postgres) ListWatchlists(
	ctx context.Context,
	userID string,
) ([]watchlist.Watchlist, error) {
	query := `
		SELECT ` + watchlistColumns + `
		FROM watchlists
		WHERE user_id = $1
		ORDER BY created_at DESC`

	watchlists := []watchlist.Watchlist{}
	err := p.db.SelectContext(ctx, &watchlists, query, userID)
	if err != nil {
		return nil, wrapStorageError("list watchlists", err)
	}

	return watchlists, nil
}

func (p *Postgres) CreateWatchlist(
	ctx context.Context,
	userID string,
	req watchlist.CreateRequest,
) (*watchlist.Watchlist, error) {
	query := `
		INSERT INTO watchlists (
			id, user_id, name, origin, destination, date_range_start,
			date_range_end, max_price, is_active
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + watchlistColumns

	var w watchlist.Watchlist
	err := p.db.GetContext(ctx, &w, query,
		uuid.NewString(),
		userID,
		req.Name,
		strings.ToUpper(req.Origin),
		strings.ToUpper(req.Destination),
		req.DateRangeStart,
		req.DateRangeEnd,
		req.MaxPrice,
		req.Active(),
	)
	if err != nil {
		return nil, wrapStorageError("create watchlist", err)
	}

	return &w, nil
}

func (p *Postgres) UpdateWatchlist(
	ctx context.Context,
	userID, watchlistID string,
	req watchlist.UpdateRequest,
) (*watchlist.Watchlist, error) {
	setClause, args := watchlistSetClause(&req, 3)

	if setClause == "" {
		// Nothing to apply; still run the ownership check.
		query := `
			SELECT ` + watchlistColumns + `
			FROM watchlists
			WHERE id = $1 AND user_id = $2`

		var w watchlist.Watchlist
		err := p.db.GetContext(ctx, &w, query, watchlistID, userID)
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("update watchlist: %w", core.ErrNotFound)
		}
		if err != nil {
			return nil, wrapStorageError("update watchlist", err)
		}
		return &w, nil
	}

	query := fmt.Sprintf(`
		UPDATE watchlists
		SET %s, updated_at = NOW()
		WHERE id = $1 AND user_id = $2
		RETURNING %s`, setClause, watchlistColumns)

	params := append([]any{watchlistID, userID}, args...)

	var w watchlist.Watchlist
	err := p.db.GetContext(ctx, &w, query, params...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("update watchlist: %w", core.ErrNotFound)
	}
	if err != nil {
		return nil, wrapStorageError("update watchlist", err)
	}

	return &w, nil
}

func (p *Postgres) DeleteWatchlist(
	ctx context.Context,
	userID, watchlistID string,
) error {
	query := `DELETE FROM watchlists WHERE id = $1 AND user_id = $2`

	if _, err := p.db.ExecContext(ctx, query, watchlistID, userID); err != nil {
		return wrapStorageError("delete watchlist", err)
	}

	return nil
}

// watchlistSetClause builds the SET fragment for a partial update. Only
// fields present in the payload appear, column names come from the shared
// allow-list (never from client input), and placeholders start at $startIdx.
// Required fields sent as explicit null are skipped rather than applied.
func watchlistSetClause(
	req *watchlist.UpdateRequest,
	startIdx int,
) (string, []any) {
	assignments := make([]string, 0, len(watchlist.UpdatableFields))
	args := make([]any, 0, len(watchlist.UpdatableFields))

	add := func(column string, value any) {
		assignments = append(
			assignments,
			fmt.Sprintf("%s = $%d", column, startIdx+len(args)),
		)
		args = append(args, value)
	}

	if req.Has("name") && req.Name != nil {
		add("name", *req.Name)
	}
	if req.Has("origin") && req.Origin != nil {
		add("origin", strings.ToUpper(*req.Origin))
	}
	if req.Has("destination") && req.Destination != nil {
		add("destination", strings.ToUpper(*req.Destination))
	}
	if req.Has("date_range_start") {
		add("date_range_start", req.DateRangeStart)
	}
	if req.Has("date_range_end") {
		add("date_range_end", req.DateRangeEnd)
	}
	if req.Has("max_price") {
		add("max_price", req.MaxPrice)
	}
	if req.Has("is_active") && req.IsActive != nil {
		add("is_active", *req.IsActive)
	}

	return strings.Join(assignments, ", "), args
}

// Alerts

type alertRow struct {
	AlertID        string     `db:"alert_id"`
	SentAt         time.Time  `db:"sent_at"`
	OpenedAt       *time.Time `db:"opened_at"`
	ClickedThrough *bool      `db:"clicked_through"`
	AlertExpiresAt *time.Time `db:"alert_expires_at"`

	DealID          string    `db:"deal_id"`
	Origin          string    `db:"origin"`
	Destination     string    `db:"destination"`
	DepartureDate   time.Time `db:"departure_date"`
	ReturnDate      time.Time `db:"return_date"`
	TotalPrice      float64   `db:"total_price"`
	Currency        string    `db:"currency"`
	DealScore       int       `db:"deal_score"`
	DiscountPercent int       `db:"discount_percent"`
	NormalPrice     float64   `db:"normal_price"`
	CreatedAt       time.Time `db:"created_at"`
	DealExpiresAt   time.Time `db:"deal_expires_at"`
	Airline         string    `db:"airline"`
	Stops           int       `db:"stops"`
	ReturnStops     *int      `db:"return_stops"`
	DeepLink        string    `db:"deep_link"`
}

func (row *alertRow) toAlert() alert.Alert {
	return alert.Alert{
		ID:             row.AlertID,
		SentAt:         row.SentAt,
		OpenedAt:       row.OpenedAt,
		ClickedThrough: row.ClickedThrough,
		ExpiresAt:      row.AlertExpiresAt,
		Deal: deal.FlightDeal{
			ID:              row.DealID,
			Origin:          row.Origin,
			Destination:     row.Destination,
			DepartureDate:   row.DepartureDate,
			ReturnDate:      row.ReturnDate,
			TotalPrice:      row.TotalPrice,
			Currency:        row.Currency,
			DealScore:       row.DealScore,
			DiscountPercent: row.DiscountPercent,
			NormalPrice:     row.NormalPrice,
			CreatedAt:       row.CreatedAt,
			ExpiresAt:       row.DealExpiresAt,
			Airline:         row.Airline,
			Stops:           row.Stops,
			ReturnStops:     row.ReturnStops,
			DeepLink:        row.DeepLink,
		},
	}
}

func (p *Postgres) ListAlertHistory(
	ctx context.Context,
	userID string,
	page, perPage int,
) ([]alert.Alert, int, error) {
	query := `
		SELECT
			a.id AS alert_id,
			a.sent_at,
			a.opened_at,
			a.clicked_through,
			a.expires_at AS alert_expires_at,
			fd.id AS deal_id,
			fd.origin,
			fd.destination,
			fd.departure_date,
			fd.return_date,
			fd.total_price,
			fd.currency,
			fd.deal_score,
			fd.discount_percent,
			fd.normal_price,
			fd.created_at,
			fd.expires_at AS deal_expires_at,
			fd.airline,
			fd.stops,
			fd.return_stops,
			fd.deep_link
		FROM alert_history a
		JOIN flight_deals fd ON a.deal_id = fd.id
		WHERE a.user_id = $1
		ORDER BY a.sent_at DESC
		LIMIT $2 OFFSET $3`

	var total int
	err := p.db.GetContext(
		ctx,
		&total,
		`SELECT COUNT(*) FROM alert_history WHERE user_id = $1`,
		userID,
	)
	if err != nil {
		return nil, 0, wrapStorageError("count alert history", err)
	}

	// Skip the select for pages past the end; a huge page also wraps the
	// offset negative, which OFFSET would reject.
	offset := (page - 1) * perPage
	if offset < 0 || offset >= total {
		return []alert.Alert{}, total, nil
	}

	rows := []alertRow{}
	err = p.db.SelectContext(ctx, &rows, query, userID, perPage, offset)
	if err != nil {
		return nil, 0, wrapStorageError("list alert history", err)
	}

	alerts := make([]alert.Alert, len(rows))
	for i := range rows {
		alerts[i] = rows[i].toAlert()
	}

	return alerts, total, nil
}

func (p *Postgres) AppendAlert(
	ctx context.Context,
	userID string,
	a alert.Alert,
) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}

	query := `
		INSERT INTO alert_history (
			id, user_id, deal_id, sent_at, opened_at, clicked_through,
			expires_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := p.db.ExecContext(ctx, query,
		a.ID,
		userID,
		a.Deal.ID,
		a.SentAt,
		a.OpenedAt,
		a.ClickedThrough,
		a.ExpiresAt,
	)
	if err != nil {
		return wrapStorageError("append alert", err)
	}

	return nil
}

// Alert preferences live as columns on the users row (1:1 with a user, no
// separate table); preferred airports are a JSONB column on the same row.

func (p *Postgres) GetAlertPreferences(
	ctx context.Context,
	userID string,
) (*alert.Preferences, error) {
	query := `
		SELECT alert_enabled, quiet_hours_enabled, quiet_hours_start,
		       quiet_hours_end, watchlist_only_mode
		FROM users
		WHERE id = $1`

	var prefs alert.Preferences
	err := p.db.GetContext(ctx, &prefs, query, userID)
	if errors.Is(err, sql.ErrNoRows) {
		defaults := alert.DefaultPreferences()
		return &defaults, nil
	}
	if err != nil {
		return nil, wrapStorageError("get alert preferences", err)
	}

	return &prefs, nil
}

func (p *Postgres) UpdateAlertPreferences(
	ctx context.Context,
	userID string,
	prefs alert.Preferences,
) (*alert.Preferences, error) {
	query := `
		UPDATE users
		SET alert_enabled = $2,
		    quiet_hours_enabled = $3,
		    quiet_hours_start = $4,
		    quiet_hours_end = $5,
		    watchlist_only_mode = $6,
		    updated_at = NOW()
		WHERE id = $1`

	_, err := p.db.ExecContext(ctx, query,
		userID,
		prefs.Enabled,
		prefs.QuietHoursEnabled,
		prefs.QuietHoursStart,
		prefs.QuietHoursEnd,
		prefs.WatchlistOnlyMode,
	)
	if err != nil {
		return nil, wrapStorageError("update alert preferences", err)
	}

	return &prefs, nil
}

func (p *Postgres) UpdatePreferredAirports(
	ctx context.Context,
	userID string,
	airports []alert.PreferredAirport,
) ([]alert.PreferredAirport, error) {
	normalized := make([]alert.PreferredAirport, len(airports))
	for i, a := range airports {
		normalized[i] = alert.PreferredAirport{
			IATA:   strings.ToUpper(a.IATA),
			Weight: a.Weight,
		}
	}

	payload, err := json.Marshal(normalized)
	if err != nil {
		return nil, fmt.Errorf("encode preferred airports: %w", err)
	}

	query := `
		UPDATE users
		SET preferred_airports = $2::jsonb,
		    updated_at = NOW()
		WHERE id = $1`

	if _, err := p.db.ExecContext(ctx, query, userID, payload); err != nil {
		return nil, wrapStorageError("update preferred airports", err)
	}

	return normalized, nil
}

func (p *Postgres) RegisterDeviceToken(
	ctx context.Context,
	userID, deviceID, token, platform string,
) error {
	query := `
		INSERT INTO device_registrations (
			user_id, device_id, apns_token, platform,
			created_at, updated_at, last_active_at
		)
		VALUES ($1, $2, $3, $4, NOW(), NOW(), NOW())
		ON CONFLICT (user_id, device_id) DO UPDATE SET
			apns_token = EXCLUDED.apns_token,
			platform = EXCLUDED.platform,
			updated_at = NOW(),
			last_active_at = NOW()`

	_, err := p.db.ExecContext(ctx, query, userID, deviceID, token, platform)
	if err != nil {
		return wrapStorageError("register device token", err)
	}

	return nil
}

// wrapStorageError translates driver failures into the provider error
// taxonomy. Connection-level failures surface as ErrUnavailable so the
// route layer answers 503 instead of a generic 500.
func wrapStorageError(op string, err error) error {
	if isUnavailableError(err) {
		return fmt.Errorf("%s: %w", op, core.ErrUnavailable)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isUnavailableError(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// Class 08: connection exception. Class 57: operator intervention
		// (shutdown, crash recovery).
		return strings.HasPrefix(pgErr.Code, "08") ||
			strings.HasPrefix(pgErr.Code, "57")
	}

	return errors.Is(err, sql.ErrConnDone)
}
