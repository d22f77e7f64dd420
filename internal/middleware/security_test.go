// FareLens | 2026
// security_test.go

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func securityHandler(isProduction bool) http.Handler {
	return SecurityHeaders(isProduction)(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		},
	))
}

func TestSecurityHeadersAlwaysSet(t *testing.T) {
	handler := securityHandler(false)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	tests := []struct {
		header string
		want   string
	}{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "strict-origin-when-cross-origin"},
	}

	for _, tt := range tests {
		if got := rec.Header().Get(tt.header); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
		}
	}

	if hsts := rec.Header().Get("Strict-Transport-Security"); hsts != "" {
		t.Errorf("HSTS = %q, want unset outside production", hsts)
	}
}

func TestSecurityHeadersHSTSInProduction(t *testing.T) {
	handler := securityHandler(true)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if hsts := rec.Header().Get("Strict-Transport-Security"); hsts == "" {
		t.Error("HSTS should be set in production")
	}
}
