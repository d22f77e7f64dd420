// FareLens | 2026
// servicekey.go

package middleware

import (
	"net/http"

	"github.com/farelens/backend/internal/core"
)

const serviceKeyHeader = "X-Service-Key"

// RequireServiceKey guards privileged endpoints (admin stats, background
// refresh trigger) with the configured service-account key. With no key
// configured the endpoints are unreachable rather than open.
func RequireServiceKey(key string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if key == "" {
				core.JSONError(
					w,
					core.ForbiddenError("service key not configured"),
				)
				return
			}

			provided := r.Header.Get(serviceKeyHeader)
			if provided == "" || !core.CompareSecret(provided, key) {
				core.JSONError(
					w,
					core.UnauthorizedError("invalid service key"),
				)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
