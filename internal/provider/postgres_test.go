// FareLens | 2026
// postgres_test.go

package provider

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/farelens/backend/internal/watchlist"
)

func setClauseFromJSON(t *testing.T, body string) (string, []any) {
	t.Helper()

	var req watchlist.UpdateRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal update request: %v", err)
	}
	return watchlistSetClause(&req, 3)
}

func TestWatchlistSetClauseEmpty(t *testing.T) {
	clause, args := setClauseFromJSON(t, `{}`)

	if clause != "" {
		t.Errorf("clause = %q, want empty", clause)
	}
	if len(args) != 0 {
		t.Errorf("args = %v, want none", args)
	}
}

func TestWatchlistSetClausePresentFields(t *testing.T) {
	clause, args := setClauseFromJSON(
		t,
		`{"max_price":700,"is_active":false}`,
	)

	want := "max_price = $3, is_active = $4"
	if clause != want {
		t.Errorf("clause = %q, want %q", clause, want)
	}

	price, ok := args[0].(*float64)
	if !ok || price == nil || *price != 700 {
		t.Errorf("args[0] = %v, want *float64(700)", args[0])
	}
	if active, ok := args[1].(bool); !ok || active {
		t.Errorf("args[1] = %v, want false", args[1])
	}
}

func TestWatchlistSetClauseNullClearsOptionalOnly(t *testing.T) {
	// Null on an optional field produces an assignment with a nil value;
	// null on a required field produces no assignment at all.
	clause, args := setClauseFromJSON(t, `{"max_price":null,"name":null}`)

	want := "max_price = $3"
	if clause != want {
		t.Errorf("clause = %q, want %q", clause, want)
	}
	if len(args) != 1 {
		t.Fatalf("len(args) = %d, want 1", len(args))
	}
	if price, ok := args[0].(*float64); !ok || price != nil {
		t.Errorf("args[0] = %v, want nil *float64", args[0])
	}
}

func TestWatchlistSetClauseUppercasesRoute(t *testing.T) {
	clause, args := setClauseFromJSON(
		t,
		`{"origin":"sfo","destination":"cdg"}`,
	)

	want := "origin = $3, destination = $4"
	if clause != want {
		t.Errorf("clause = %q, want %q", clause, want)
	}
	if !reflect.DeepEqual(args, []any{"SFO", "CDG"}) {
		t.Errorf("args = %v, want [SFO CDG]", args)
	}
}

func TestWatchlistSetClauseIgnoresUnknownKeys(t *testing.T) {
	clause, args := setClauseFromJSON(
		t,
		`{"user_id":"someone-else","id":"forged","name":"ok"}`,
	)

	want := "name = $3"
	if clause != want {
		t.Errorf("clause = %q, want %q", clause, want)
	}
	if len(args) != 1 || args[0] != "ok" {
		t.Errorf("args = %v, want [ok]", args)
	}
}
