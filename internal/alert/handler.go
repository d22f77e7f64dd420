// FareLens | 2026
// handler.go

package alert

import (
	"encoding/json"
	"net/http"
	"strconv"

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
	r.Route("/alerts", func(r chi.Router) {
		r.Use(authenticator)

		r.Get("/history", h.GetHistory)
		r.Post("/register", h.RegisterDevice)
	})

	r.Route("/alert-preferences", func(r chi.Router) {
		r.Use(authenticator)

		r.Put("/", h.UpdatePreferences)
		r.Put("/airports", h.UpdatePreferredAirports)
	})
}

func (h *Handler) GetHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	params := HistoryParams{Page: 1, PerPage: DefaultPerPage}
	if err := parseHistoryParams(r, &params); err != nil {
		core.UnprocessableEntity(w, err.Error())
		return
	}

	alerts, total, err := h.repo.ListAlertHistory(
		r.Context(),
		userID,
		params.Page,
		params.PerPage,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, HistoryResponse{
		Alerts:  alerts,
		Page:    params.Page,
		PerPage: params.PerPage,
		Total:   total,
	})
}

func (h *Handler) RegisterDevice(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req DeviceRegistrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	err := h.repo.RegisterDeviceToken(
		r.Context(),
		userID,
		req.DeviceID,
		req.Token,
		req.Platform,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.Created(w, DeviceRegistrationResponse{
		Status:   "registered",
		Message:  "Device token saved",
		DeviceID: req.DeviceID,
	})
}

func (h *Handler) UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var prefs Preferences
	if err := json.NewDecoder(r.Body).Decode(&prefs); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(prefs); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	updated, err := h.repo.UpdateAlertPreferences(r.Context(), userID, prefs)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, updated)
}

func (h *Handler) UpdatePreferredAirports(
	w http.ResponseWriter,
	r *http.Request,
) {
	userID := middleware.GetUserID(r.Context())

	var req PreferredAirportsUpdate
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	airports, err := h.repo.UpdatePreferredAirports(
		r.Context(),
		userID,
		req.PreferredAirports,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, PreferredAirportsResponse{
		Status:            "updated",
		PreferredAirports: airports,
	})
}

func parseHistoryParams(r *http.Request, params *HistoryParams) error {
	if raw := r.URL.Query().Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil {
			return errPageOutOfRange
		}
		params.Page = page
	}

	if raw := r.URL.Query().Get("per_page"); raw != "" {
		perPage, err := strconv.Atoi(raw)
		if err != nil {
			return errPerPageOutOfRange
		}
		params.PerPage = perPage
	}

	return params.Validate()
}
