// FareLens | 2026
// handler.go

package user

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/farelens/backend/internal/core"
	"github.com/farelens/backend/internal/middleware"
)

// DeviceRegistrar is the slice of the data provider the legacy APNs
// endpoint consumes.
type DeviceRegistrar interface {
	RegisterDeviceToken(
		ctx context.Context,
		userID, deviceID, token, platform string,
	) error
}

type Handler struct {
	devices   DeviceRegistrar
	validator *validator.Validate
}

func NewHandler(devices DeviceRegistrar) *Handler {
	return &Handler{
		devices:   devices,
		validator: validator.New(validator.WithRequiredStructEnabled()),
	}
}

func (h *Handler) RegisterRoutes(
	r chi.Router,
	authenticator func(http.Handler) http.Handler,
) {
	r.Route("/user", func(r chi.Router) {
		r.Use(authenticator)

		r.Patch("/", h.Update)
		r.Post("/apns-token", h.RegisterAPNsToken)
	})
}

// Update applies the timezone change to the mocked account. Accounts are
// not persisted, so the response reflects the patch without storing it.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	var req UpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	u := mockUserForRequest(r)
	if req.Timezone != nil && *req.Timezone != "" {
		u.Timezone = *req.Timezone
	}

	core.OK(w, u)
}

// RegisterAPNsToken is the legacy registration path whose body carries no
// device id; the caller's user id doubles as a synthetic one.
func (h *Handler) RegisterAPNsToken(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())

	var req APNsRegistration
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	platform := req.Platform
	if platform == "" {
		platform = "ios"
	}

	deviceID := userID
	err := h.devices.RegisterDeviceToken(
		r.Context(),
		userID,
		deviceID,
		req.Token,
		platform,
	)
	if err != nil {
		core.InternalServerError(w, err)
		return
	}

	core.OK(w, APNsRegistrationResponse{
		Status:   "registered",
		DeviceID: deviceID,
	})
}

func mockUserForRequest(r *http.Request) User {
	email := "mock@farelens.com"
	if claims := middleware.GetClaims(r.Context()); claims != nil &&
		claims.Email != "" {
		email = claims.Email
	}
	return MockUser(email)
}
