// FareLens | 2026
// dto.go

package auth

import "github.com/farelens/backend/internal/user"

type AuthRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=128"`
}

type AuthResponse struct {
	User  user.User `json:"user"`
	Token string    `json:"token"`
}

type ResetPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}
