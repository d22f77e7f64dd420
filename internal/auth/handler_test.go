// FareLens | 2026
// handler_test.go

package auth

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/farelens/backend/internal/config"
)

func newTestRouter() http.Handler {
	h := NewHandler(nil, config.RateLimitConfig{
		SignupPerHour: 100,
		SigninPerMin:  100,
		ResetPerHour:  100,
	})

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		h.RegisterRoutes(r)
	})
	return r
}

func postJSON(
	t *testing.T,
	router http.Handler,
	path, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSignupReturnsMockUserAndToken(t *testing.T) {
	router := newTestRouter()

	rec := postJSON(t, router, "/v1/auth/signup",
		`{"email":"new@farelens.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}

	var resp AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp.Token, "mock-signup-token-") {
		t.Errorf("token = %q, want mock-signup-token prefix", resp.Token)
	}
	if resp.User.Email != "new@farelens.com" {
		t.Errorf("email = %q, want request email echoed", resp.User.Email)
	}
	if resp.User.SubscriptionTier != "free" {
		t.Errorf("tier = %q, want free", resp.User.SubscriptionTier)
	}
	if resp.User.Subscription.MaxWatchlists != 5 {
		t.Errorf("max_watchlists = %d, want 5", resp.User.Subscription.MaxWatchlists)
	}
}

func TestSigninReturnsMockToken(t *testing.T) {
	router := newTestRouter()

	rec := postJSON(t, router, "/v1/auth/signin",
		`{"email":"back@farelens.com","password":"hunter2hunter2"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var resp AuthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(resp.Token, "mock-signin-token-") {
		t.Errorf("token = %q, want mock-signin-token prefix", resp.Token)
	}
}

func TestAuthValidation(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name string
		path string
		body string
	}{
		{"bad signup email", "/v1/auth/signup", `{"email":"nope","password":"hunter2hunter2"}`},
		{"short signup password", "/v1/auth/signup", `{"email":"a@b.com","password":"short"}`},
		{"bad signin email", "/v1/auth/signin", `{"email":"nope","password":"hunter2hunter2"}`},
		{"bad reset email", "/v1/auth/reset-password", `{"email":"nope"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, router, tt.path, tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422: %s", rec.Code, rec.Body)
			}
		})
	}
}

func TestResetPasswordAccepted(t *testing.T) {
	router := newTestRouter()

	rec := postJSON(t, router, "/v1/auth/reset-password",
		`{"email":"back@farelens.com"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202: %s", rec.Code, rec.Body)
	}

	var resp ResetPasswordResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "accepted" {
		t.Errorf("status = %q, want %q", resp.Status, "accepted")
	}
}

func TestSignupRateLimited(t *testing.T) {
	h := NewHandler(nil, config.RateLimitConfig{
		SignupPerHour: 2,
		SigninPerMin:  100,
		ResetPerHour:  100,
	})

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		h.RegisterRoutes(r)
	})

	body := `{"email":"spam@farelens.com","password":"hunter2hunter2"}`

	var limited bool
	for i := 0; i < 5; i++ {
		rec := postJSON(t, r, "/v1/auth/signup", body)
		if rec.Code == http.StatusTooManyRequests {
			limited = true
			break
		}
	}
	if !limited {
		t.Error("expected 429 after exceeding the signup limit")
	}
}
