package transport

import (
	"time"

	"github.com/google/uuid"

	"salesops_backend/internal/auth/repository"
)

// TokenPair is an issued access/refresh token set.
type TokenPair struct {
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
}

// LoginRequest carries credentials for token issuance.
type LoginRequest struct {
	Email    string `json:"email" binding:"required" validate:"email"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the account plus its token pair.
type LoginResponse struct {
	User   repository.User `json:"user"`
	Tokens TokenPair       `json:"tokens"`
}

// RefreshRequest exchanges a refresh token for a new pair.
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// CreateUserRequest registers an account.
type CreateUserRequest struct {
	Email    string     `json:"email" binding:"required" validate:"email"`
	Name     string     `json:"name" binding:"required" validate:"max=120"`
	Password string     `json:"password" binding:"required" validate:"min=8"`
	Roles    []string   `json:"roles" binding:"required" validate:"min=1"`
	VendorID *uuid.UUID `json:"vendorId"`
}

// SetActiveRequest enables or disables an account.
type SetActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

// ChangePasswordRequest rotates the caller's password.
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required" validate:"min=8"`
}
