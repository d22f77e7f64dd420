// FareLens | 2026
// dto.go

package alert

import (
	"errors"
)

const (
	DefaultPerPage = 20
	MaxPerPage     = 100
)

var (
	errPageOutOfRange    = errors.New("page must be >= 1")
	errPerPageOutOfRange = errors.New("per_page must be between 1 and 100")
)

type HistoryParams struct {
	Page    int
	PerPage int
}

func (p *HistoryParams) Validate() error {
	if p.Page < 1 {
		return errPageOutOfRange
	}
	if p.PerPage < 1 || p.PerPage > MaxPerPage {
		return errPerPageOutOfRange
	}
	return nil
}

type HistoryResponse struct {
	Alerts  []Alert `json:"alerts"`
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
	Total   int     `json:"total"`
}

type DeviceRegistrationRequest struct {
	DeviceID string `json:"device_id" validate:"required,uuid4"`
	Token    string `json:"token"     validate:"required"`
	Platform string `json:"platform"  validate:"required,oneof=ios android"`
}

type DeviceRegistrationResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	DeviceID string `json:"device_id"`
}

type PreferredAirportsUpdate struct {
	PreferredAirports []PreferredAirport `json:"preferred_airports" validate:"required,dive"`
}

type PreferredAirportsResponse struct {
	Status            string             `json:"status"`
	PreferredAirports []PreferredAirport `json:"preferred_airports"`
}
