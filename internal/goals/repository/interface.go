package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"salesops_backend/internal/goals/domain"
)

// Product is a sellable product or plan that goals are defined against.
type Product struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProductGoalRow is a stored business-level goal.
type ProductGoalRow struct {
	ID                uuid.UUID `json:"id"`
	ProductID         uuid.UUID `json:"productId"`
	ProductName       string    `json:"productName,omitempty"`
	Year              int       `json:"year"`
	Month             *int      `json:"month,omitempty"`
	TotalTargetAmount float64   `json:"totalTargetAmount"`
	CurrentAmount     float64   `json:"currentAmount"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// Domain converts the row to the aggregation engine's input shape.
func (r ProductGoalRow) Domain() domain.ProductGoal {
	return domain.ProductGoal{
		ProductID:         r.ProductID,
		Year:              r.Year,
		Month:             r.Month,
		TotalTargetAmount: r.TotalTargetAmount,
		CurrentAmount:     r.CurrentAmount,
	}
}

// VendorGoalRow is a stored vendor-level goal. VendorID is nullable on rows
// imported before id-based vendor references; VendorName is retained for
// those.
type VendorGoalRow struct {
	ID            uuid.UUID  `json:"id"`
	VendorID      *uuid.UUID `json:"vendorId,omitempty"`
	VendorName    string     `json:"vendorName,omitempty"`
	ProductID     uuid.UUID  `json:"productId"`
	ProductName   string     `json:"productName,omitempty"`
	Year          int        `json:"year"`
	Month         *int       `json:"month,omitempty"`
	TargetAmount  float64    `json:"targetAmount"`
	CurrentAmount float64    `json:"currentAmount"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Domain converts the row to the aggregation engine's input shape.
func (r VendorGoalRow) Domain() domain.VendorGoal {
	return domain.VendorGoal{
		VendorID:      r.VendorID,
		VendorName:    r.VendorName,
		ProductID:     r.ProductID,
		Year:          r.Year,
		Month:         r.Month,
		TargetAmount:  r.TargetAmount,
		CurrentAmount: r.CurrentAmount,
	}
}

// UpsertProductGoalParams writes a business goal. The (product, year, month)
// key is unique; writing an existing key replaces its amounts.
type UpsertProductGoalParams struct {
	ProductID         uuid.UUID
	Year              int
	Month             *int
	TotalTargetAmount float64
	CurrentAmount     float64
}

// CreateVendorGoalParams writes a vendor goal.
type CreateVendorGoalParams struct {
	VendorID      *uuid.UUID
	VendorName    string
	ProductID     uuid.UUID
	Year          int
	Month         *int
	TargetAmount  float64
	CurrentAmount float64
}

// UpdateVendorGoalParams adjusts a vendor goal's amounts. Nil means
// unchanged.
type UpdateVendorGoalParams struct {
	TargetAmount  *float64
	CurrentAmount *float64
}

// PeriodFilter optionally narrows goal reads to a year and month.
type PeriodFilter struct {
	Year  *int
	Month *int
}

// Repository is the storage boundary for the goals context.
type Repository interface {
	ListProducts(ctx context.Context) ([]Product, error)
	CreateProduct(ctx context.Context, name string) (Product, error)
	DeleteProduct(ctx context.Context, id uuid.UUID) error

	ListProductGoals(ctx context.Context, filter PeriodFilter) ([]ProductGoalRow, error)
	UpsertProductGoal(ctx context.Context, params UpsertProductGoalParams) (ProductGoalRow, error)
	DeleteProductGoal(ctx context.Context, id uuid.UUID) error

	ListVendorGoals(ctx context.Context, filter PeriodFilter) ([]VendorGoalRow, error)
	CreateVendorGoal(ctx context.Context, params CreateVendorGoalParams) (VendorGoalRow, error)
	UpdateVendorGoal(ctx context.Context, id uuid.UUID, params UpdateVendorGoalParams) (VendorGoalRow, error)
	DeleteVendorGoal(ctx context.Context, id uuid.UUID) error

	// AddVendorProgress increments current_amount on the vendor goals
	// matching a vendor, product, and period. Used by the sales recorder.
	AddVendorProgress(ctx context.Context, vendorID uuid.UUID, productID uuid.UUID, year int, month int, amount float64) (int, error)
}
