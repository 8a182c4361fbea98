package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// User is an operator account. Vendor users carry a vendor binding that
// scopes every list and aggregate endpoint; back-office users do not.
type User struct {
	ID           uuid.UUID  `json:"id"`
	Email        string     `json:"email"`
	Name         string     `json:"name"`
	PasswordHash string     `json:"-"`
	Roles        []string   `json:"roles"`
	VendorID     *uuid.UUID `json:"vendorId,omitempty"`
	Active       bool       `json:"active"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// CreateUserParams holds the fields for a new account.
type CreateUserParams struct {
	Email        string
	Name         string
	PasswordHash string
	Roles        []string
	VendorID     *uuid.UUID
}

// Repository is the storage boundary for the auth context.
type Repository interface {
	CreateUser(ctx context.Context, params CreateUserParams) (User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (User, error)
	GetUserByEmail(ctx context.Context, email string) (User, error)
	ListUsers(ctx context.Context) ([]User, error)
	SetUserActive(ctx context.Context, id uuid.UUID, active bool) error
	UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error
}
