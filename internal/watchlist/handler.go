// FareLens | 2026
// handler.go

package watchlist

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/farelens/backend/internal/core"
	"github.com/farelens/backend/internal/middleware"
)

type Handler struct {
	repo      Repository
	validator *validator.Validate
}

func NewHandler(repo Repository) *Handler {
	return &Handler{
		repo:      repo,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/watchlists", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/", h.ListWatchlists)
		r.Post("/", h.CreateWatchlist)
		r.Put("/{watchlistID}", h.UpdateWatchlist)
		r.Delete("/{watchlistID}", h.DeleteWatchlist)
	})
}

func (h *Handler) ListWatchlists(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	watchlists, err := h.repo.ListWatchlists(r.Context(), userID)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, watchlists)
}

func (h *Handler) CreateWatchlist(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req CreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	created, err := h.repo.CreateWatchlist(r.Context(), userID, req)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, created)
}

func (h *Handler) UpdateWatchlist(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	watchlistID := chi.URLParam(r, "watchlistID")

	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	updated, err := h.repo.UpdateWatchlist(r.Context(), userID, watchlistID, req)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "watchlist")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, updated)
}

// DeleteWatchlist always returns 204: deleting an absent or foreign
// watchlist is indistinguishable from deleting your own.
func (h *Handler) DeleteWatchlist(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	watchlistID := chi.URLParam(r, "watchlistID")

	if err := h.repo.DeleteWatchlist(r.Context(), userID, watchlistID); err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.NoContent(w)
}
