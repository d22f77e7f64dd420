// FareLens | 2026
// dto.go

package user

type UpdateRequest struct {
	Timezone *string `json:"timezone" validate:"omitempty,min=1,max=64"`
}

// APNsRegistration is the legacy registration body that carries no
// device id; the handler derives a synthetic one from the caller.
type APNsRegistration struct {
	Token    string `json:"token"    validate:"required"`
	Platform string `json:"platform" validate:"omitempty,oneof=ios android"`
}

type APNsRegistrationResponse struct {
	Status   string `json:"status"`
	DeviceID string `json:"device_id"`
}
