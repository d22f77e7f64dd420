// FareLens | 2026
// handler.go

package deal

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/farelens/backend/internal/core"
)

var (
	errLimitOutOfRange = errors.New("limit must be between 1 and 100")
	errBadOriginFilter = errors.New("origin must be a 3-letter IATA code")
)

type Handler struct {
	repo Repository
}

func NewHandler(repo Repository) *Handler {
	return &Handler{repo: repo}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	optionalAuth, serviceOnly func(http.Handler) http.Handler,
) {
	r.Route("/deals", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(optionalAuth)
			r.Get("/", h.ListDeals)
			r.Get("/{dealID}", h.GetDeal)
		})

		r.Group(func(r chi.Router) {
			r.Use(serviceOnly)
			r.Get("/background-refresh", h.BackgroundRefresh)
		})
	})
}

func (h *Handler) ListDeals(w http.ResponseWriter, r *http.Request) {
	params := ListParams{
		Origin: r.URL.Query().Get("origin"),
		Limit:  DefaultListLimit,
	}

	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil {
			core.UnprocessableEntity(w, "limit must be an integer")
			return
		}
		params.Limit = limit
	}

	if err := params.Validate(); err != nil {
		core.UnprocessableEntity(w, err.Error())
		return
	}

	deals, err := h.repo.ListDeals(r.Context(), params.Origin, params.Limit)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, DealsResponse{Deals: deals})
}

func (h *Handler) GetDeal(w http.ResponseWriter, r *http.Request) {
	dealID := chi.URLParam(r, "dealID")

	d, err := h.repo.GetDeal(r.Context(), dealID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			core.NotFound(w, "deal")
			return
		}
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, d)
}

// BackgroundRefresh is a stub trigger for the out-of-process ingestion
// pipeline. It reports zero new deals until that pipeline is wired up.
func (h *Handler) BackgroundRefresh(w http.ResponseWriter, r *http.Request) {
	core.OK(w, BackgroundRefreshResponse{
		Status:      "ok",
		NewDeals:    0,
		RefreshedAt: time.Now().UTC(),
	})
}
