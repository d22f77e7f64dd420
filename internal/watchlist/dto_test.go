// FareLens | 2026
// dto_test.go

package watchlist

import (
	"encoding/json"
	"testing"
)

func decode(t *testing.T, body string) UpdateRequest {
	t.Helper()

	var req UpdateRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	return req
}

func TestUpdateRequestPresence(t *testing.T) {
	req := decode(t, `{"max_price":null,"name":"x"}`)

	if !req.Has("max_price") {
		t.Error("explicit null should count as present")
	}
	if !req.Has("name") {
		t.Error("name should be present")
	}
	if req.Has("origin") {
		t.Error("absent field should not be present")
	}
	if req.IsEmpty() {
		t.Error("request with fields should not be empty")
	}
}

func TestUpdateRequestIgnoresUnknownKeys(t *testing.T) {
	req := decode(t, `{"user_id":"forged","unknown":1}`)

	if !req.IsEmpty() {
		t.Error("payload with only unknown keys should be empty")
	}
}

func TestApplyDistinguishesAbsentFromNull(t *testing.T) {
	price := 750.0
	w := Watchlist{
		Name:     "Test",
		Origin:   "SFO",
		MaxPrice: &price,
		IsActive: true,
	}

	// Absent max_price stays; null clears it on a second pass.
	req := decode(t, `{"name":"Renamed"}`)
	req.Apply(&w)
	if w.MaxPrice == nil || *w.MaxPrice != 750 {
		t.Errorf("max_price = %v, want untouched 750", w.MaxPrice)
	}
	if w.Name != "Renamed" {
		t.Errorf("name = %q, want Renamed", w.Name)
	}

	req = decode(t, `{"max_price":null}`)
	req.Apply(&w)
	if w.MaxPrice != nil {
		t.Errorf("max_price = %v, want cleared", *w.MaxPrice)
	}

	// Null on a required field is a no-op.
	req = decode(t, `{"name":null}`)
	req.Apply(&w)
	if w.Name != "Renamed" {
		t.Errorf("name = %q, want unchanged after null", w.Name)
	}
}

func TestApplyUppercasesRoute(t *testing.T) {
	w := Watchlist{Origin: "SFO", Destination: "CDG"}

	req := decode(t, `{"origin":"lax","destination":"jfk"}`)
	req.Apply(&w)
	if w.Origin != "LAX" || w.Destination != "JFK" {
		t.Errorf("route = %s-%s, want LAX-JFK", w.Origin, w.Destination)
	}
}

func TestCreateRequestActiveDefault(t *testing.T) {
	var req CreateRequest
	if !req.Active() {
		t.Error("is_active should default to true when omitted")
	}

	explicit := false
	req.IsActive = &explicit
	if req.Active() {
		t.Error("explicit false should be honored")
	}
}
