// FareLens | 2026
// dto.go

package watchlist

import (
	"encoding/json"
	"strings"
	"time"
)

type CreateRequest struct {
	Name           string     `json:"name"                       validate:"required,min=1,max=100"`
	Origin         string     `json:"origin"                     validate:"required,len=3,alpha"`
	Destination    string     `json:"destination"                validate:"required,len=3,alpha"`
	DateRangeStart *time.Time `json:"date_range_start,omitempty"`
	DateRangeEnd   *time.Time `json:"date_range_end,omitempty"`
	MaxPrice       *float64   `json:"max_price,omitempty"        validate:"omitempty,gt=0"`
	IsActive       *bool      `json:"is_active,omitempty"`
}

// Active returns the requested active flag, defaulting to true when the
// field is omitted.
func (r *CreateRequest) Active() bool {
	if r.IsActive == nil {
		return true
	}
	return *r.IsActive
}

// UpdatableFields is the shared allow-list of watchlist fields a partial
// update may touch. Both storage backends consult it so they cannot drift
// apart, and unexpected payload keys are ignored rather than applied.
var UpdatableFields = map[string]struct{}{
	"name":             {},
	"origin":           {},
	"destination":      {},
	"date_range_start": {},
	"date_range_end":   {},
	"max_price":        {},
	"is_active":        {},
}

// UpdateRequest carries partial-update semantics: fields absent from the
// payload are left untouched, explicit nulls clear optional fields. Presence
// is tracked separately from the pointer values because encoding/json maps
// both "absent" and "null" to nil.
type UpdateRequest struct {
	Name           *string    `json:"name,omitempty"             validate:"omitempty,min=1,max=100"`
	Origin         *string    `json:"origin,omitempty"           validate:"omitempty,len=3,alpha"`
	Destination    *string    `json:"destination,omitempty"      validate:"omitempty,len=3,alpha"`
	DateRangeStart *time.Time `json:"date_range_start,omitempty"`
	DateRangeEnd   *time.Time `json:"date_range_end,omitempty"`
	MaxPrice       *float64   `json:"max_price,omitempty"        validate:"omitempty,gt=0"`
	IsActive       *bool      `json:"is_active,omitempty"`

	present map[string]bool
}

func (r *UpdateRequest) UnmarshalJSON(data []byte) error {
	type plain UpdateRequest
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*r = UpdateRequest(p)
	r.present = make(map[string]bool, len(raw))
	for key := range raw {
		if _, ok := UpdatableFields[key]; ok {
			r.present[key] = true
		}
	}

	return nil
}

// Has reports whether the field appeared in the payload, null or not.
func (r *UpdateRequest) Has(field string) bool {
	return r.present[field]
}

// IsEmpty reports whether the payload carried no updatable fields.
func (r *UpdateRequest) IsEmpty() bool {
	return len(r.present) == 0
}

// Apply mutates w according to partial-update semantics. Required fields
// cannot be cleared by a null; optional fields can.
func (r *UpdateRequest) Apply(w *Watchlist) {
	if r.Has("name") && r.Name != nil {
		w.Name = *r.Name
	}
	if r.Has("origin") && r.Origin != nil {
		w.Origin = strings.ToUpper(*r.Origin)
	}
	if r.Has("destination") && r.Destination != nil {
		w.Destination = strings.ToUpper(*r.Destination)
	}
	if r.Has("date_range_start") {
		w.DateRangeStart = r.DateRangeStart
	}
	if r.Has("date_range_end") {
		w.DateRangeEnd = r.DateRangeEnd
	}
	if r.Has("max_price") {
		w.MaxPrice = r.MaxPrice
	}
	if r.Has("is_active") && r.IsActive != nil {
		w.IsActive = *r.IsActive
	}
}
