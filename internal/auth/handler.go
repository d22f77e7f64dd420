// FareLens | 2026
// handler.go

package auth

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"

	"github.com/farelens/backend/internal/config"
	"github.com/farelens/backend/internal/core"
	"github.com/farelens/backend/internal/middleware"
	"github.com/farelens/backend/internal/user"
)

// Handler serves the mock auth endpoints. Accounts are not persisted;
// each call fabricates a free-tier user and a placeholder token so the
// mobile clients can exercise their full auth flow against this backend.
type Handler struct {
	validator     *validator.Validate
	signupLimiter *middleware.RateLimiter
	signinLimiter *middleware.RateLimiter
	resetLimiter  *middleware.RateLimiter
}

func NewHandler(rdb *redis.Client, cfg config.RateLimitConfig) *Handler {
	return &Handler{
		validator: validator.New(validator.WithRequiredStructEnabled()),
		signupLimiter: middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
			Limit:    middleware.PerHour(cfg.SignupPerHour, cfg.SignupPerHour),
			KeyFunc:  middleware.KeyByIPAndEndpoint("signup"),
			FailOpen: true,
		}),
		signinLimiter: middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
			Limit:    middleware.PerMinute(cfg.SigninPerMin, cfg.SigninPerMin),
			KeyFunc:  middleware.KeyByIPAndEndpoint("signin"),
			FailOpen: true,
		}),
		resetLimiter: middleware.NewRateLimiter(rdb, middleware.RateLimitConfig{
			Limit:    middleware.PerHour(cfg.ResetPerHour, cfg.ResetPerHour),
			KeyFunc:  middleware.KeyByIPAndEndpoint("reset-password"),
			FailOpen: true,
		}),
	}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/auth", func(r chi.Router) {
		r.With(h.signupLimiter.Handler).Post("/signup", h.Signup)
		r.With(h.signinLimiter.Handler).Post("/signin", h.Signin)
		r.With(h.resetLimiter.Handler).Post("/reset-password", h.ResetPassword)
	})
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAuthRequest(w, r)
	if !ok {
		return
	}

	u := user.MockUser(req.Email)
	core.Created(w, AuthResponse{
		User:  u,
		Token: fmt.Sprintf("mock-signup-token-%s", u.ID),
	})
}

func (h *Handler) Signin(w http.ResponseWriter, r *http.Request) {
	req, ok := h.decodeAuthRequest(w, r)
	if !ok {
		return
	}

	u := user.MockUser(req.Email)
	core.OK(w, AuthResponse{
		User:  u,
		Token: fmt.Sprintf("mock-signin-token-%s", u.ID),
	})
}

func (h *Handler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return
	}

	core.Accepted(w, ResetPasswordResponse{
		Status:  "accepted",
		Message: "Password reset instructions sent",
	})
}

func (h *Handler) decodeAuthRequest(
	w http.ResponseWriter,
	r *http.Request,
) (AuthRequest, bool) {
	var req AuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		core.BadRequest(w, "invalid request body")
		return req, false
	}

	if err := h.validator.Struct(req); err != nil {
		core.UnprocessableEntity(w, core.FormatValidationError(err))
		return req, false
	}

	return req, true
}
