package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Vendor is a salesperson record. Clients and goals reference vendors by id;
// legacy rows may still carry only a name, which lookups tolerate.
type Vendor struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	Phone     string    `json:"phone,omitempty"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateVendorParams holds the fields for a new vendor.
type CreateVendorParams struct {
	Name  string
	Email string
	Phone string
}

// UpdateVendorParams holds the mutable vendor fields. Nil means unchanged.
type UpdateVendorParams struct {
	Name   *string
	Email  *string
	Phone  *string
	Active *bool
}

// Repository is the storage boundary for the vendors context.
type Repository interface {
	Create(ctx context.Context, params CreateVendorParams) (Vendor, error)
	Get(ctx context.Context, id uuid.UUID) (Vendor, error)
	GetByName(ctx context.Context, name string) (Vendor, error)
	List(ctx context.Context) ([]Vendor, error)
	Update(ctx context.Context, id uuid.UUID, params UpdateVendorParams) (Vendor, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
