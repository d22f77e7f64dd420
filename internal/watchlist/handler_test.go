// FareLens | 2026
// handler_test.go

package watchlist_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/farelens/backend/internal/middleware"
	"github.com/farelens/backend/internal/provider"
	"github.com/farelens/backend/internal/watchlist"
)

func newTestRouter(userID string) http.Handler {
	h := watchlist.NewHandler(provider.NewMemory())

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		h.RegisterRoutes(r, fakeAuth(userID))
	})
	return r
}

func fakeAuth(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithUserID(r.Context(), userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func doJSON(
	t *testing.T,
	router http.Handler,
	method, path, body string,
) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("")
	} else {
		reqBody = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestWatchlistCRUDLifecycle(t *testing.T) {
	router := newTestRouter("user-u")

	// Create.
	rec := doJSON(t, router, http.MethodPost, "/v1/watchlists/",
		`{"name":"Test","origin":"SFO","destination":"CDG","max_price":750}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create status = %d, want 201: %s", rec.Code, rec.Body)
	}

	var created watchlist.Watchlist
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}
	if created.ID == "" {
		t.Error("create response should carry a generated id")
	}
	if created.UserID != "user-u" {
		t.Errorf("user_id = %q, want %q", created.UserID, "user-u")
	}
	if created.MaxPrice == nil || *created.MaxPrice != 750 {
		t.Errorf("max_price = %v, want 750", created.MaxPrice)
	}

	// Partial update leaves absent fields untouched.
	rec = doJSON(t, router, http.MethodPut, "/v1/watchlists/"+created.ID,
		`{"max_price":700,"is_active":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var updated watchlist.Watchlist
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if updated.Name != "Test" {
		t.Errorf("name = %q, want unchanged %q", updated.Name, "Test")
	}
	if updated.MaxPrice == nil || *updated.MaxPrice != 700 {
		t.Errorf("max_price = %v, want 700", updated.MaxPrice)
	}
	if updated.IsActive {
		t.Error("is_active should be false")
	}

	// Delete is 204 and the list no longer contains the id.
	rec = doJSON(t, router, http.MethodDelete, "/v1/watchlists/"+created.ID, "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	rec = doJSON(t, router, http.MethodGet, "/v1/watchlists/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d, want 200", rec.Code)
	}

	var lists []watchlist.Watchlist
	if err := json.Unmarshal(rec.Body.Bytes(), &lists); err != nil {
		t.Fatalf("decode list response: %v", err)
	}
	for _, w := range lists {
		if w.ID == created.ID {
			t.Error("deleted watchlist still present in list")
		}
	}
}

func TestCreateWatchlistValidationFailed(t *testing.T) {
	router := newTestRouter("user-u")

	tests := []struct {
		name string
		body string
	}{
		{"missing name", `{"origin":"SFO","destination":"CDG"}`},
		{"bad origin", `{"name":"x","origin":"TOOLONG","destination":"CDG"}`},
		{"negative price", `{"name":"x","origin":"SFO","destination":"CDG","max_price":-5}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/v1/watchlists/", tt.body)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422: %s", rec.Code, rec.Body)
			}
		})
	}
}

func TestUpdateMissingWatchlistIs404(t *testing.T) {
	router := newTestRouter("user-u")

	rec := doJSON(t, router, http.MethodPut, "/v1/watchlists/no-such-id",
		`{"name":"x"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404: %s", rec.Code, rec.Body)
	}
}

func TestDeleteMissingWatchlistIs204(t *testing.T) {
	router := newTestRouter("user-u")

	rec := doJSON(t, router, http.MethodDelete, "/v1/watchlists/no-such-id", "")
	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want 204", rec.Code)
	}
}
