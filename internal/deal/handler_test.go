// FareLens | 2026
// handler_test.go

package deal_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/farelens/backend/internal/deal"
	"github.com/farelens/backend/internal/provider"
)

func newTestRouter(t *testing.T) (http.Handler, *provider.Memory) {
	t.Helper()

	store := provider.NewMemory()
	h := deal.NewHandler(store)

	passthrough := func(next http.Handler) http.Handler { return next }

	r := chi.NewRouter()
	r.Route("/v1", func(r chi.Router) {
		h.RegisterRoutes(r, passthrough, passthrough)
	})
	return r, store
}

func get(t *testing.T, router http.Handler, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestListDealsDefaults(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := get(t, router, "/v1/deals/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var resp deal.DealsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	// The memory backend seeds one demo deal.
	if len(resp.Deals) == 0 {
		t.Error("expected seeded deals in response")
	}
}

func TestListDealsOriginFilterAndLimit(t *testing.T) {
	router, store := newTestRouter(t)

	for i, score := range []int{70, 95} {
		err := store.InsertDeal(context.Background(), deal.FlightDeal{
			Origin:      "SEA",
			Destination: "NRT",
			DealScore:   score,
			ExpiresAt:   time.Now().Add(time.Hour),
		})
		if err != nil {
			t.Fatalf("insert deal %d: %v", i, err)
		}
	}

	rec := get(t, router, "/v1/deals/?origin=SEA&limit=1")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var resp deal.DealsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Deals) != 1 {
		t.Fatalf("len(deals) = %d, want 1", len(resp.Deals))
	}
	if resp.Deals[0].Origin != "SEA" || resp.Deals[0].DealScore != 95 {
		t.Errorf("top deal = %+v, want highest-scored SEA deal", resp.Deals[0])
	}
}

func TestListDealsRejectsBadParams(t *testing.T) {
	router, _ := newTestRouter(t)

	tests := []struct {
		name  string
		query string
	}{
		{"limit too large", "?limit=1000"},
		{"limit zero", "?limit=0"},
		{"non-integer limit", "?limit=abc"},
		{"bad origin", "?origin=S3A"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := get(t, router, "/v1/deals/"+tt.query)
			if rec.Code != http.StatusUnprocessableEntity {
				t.Errorf("status = %d, want 422: %s", rec.Code, rec.Body)
			}
		})
	}
}

func TestGetDealByID(t *testing.T) {
	router, store := newTestRouter(t)

	deals, err := store.ListDeals(context.Background(), "", 1)
	if err != nil || len(deals) == 0 {
		t.Fatalf("seeded deals unavailable: %v", err)
	}

	rec := get(t, router, "/v1/deals/"+deals[0].ID)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var got deal.FlightDeal
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.ID != deals[0].ID {
		t.Errorf("id = %q, want %q", got.ID, deals[0].ID)
	}
}

func TestGetDealNotFound(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := get(t, router, "/v1/deals/no-such-deal")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404: %s", rec.Code, rec.Body)
	}
}

func TestBackgroundRefresh(t *testing.T) {
	router, _ := newTestRouter(t)

	rec := get(t, router, "/v1/deals/background-refresh")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body)
	}

	var resp deal.BackgroundRefreshResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Status != "ok" {
		t.Errorf("status = %q, want %q", resp.Status, "ok")
	}
	if resp.RefreshedAt.IsZero() {
		t.Error("refreshed_at should be set")
	}
}
