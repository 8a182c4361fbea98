package transport

import (
	"github.com/google/uuid"
)

// CreateProductRequest adds a product to the catalog.
type CreateProductRequest struct {
	Name string `json:"name" binding:"required" validate:"max=120"`
}

// UpsertProductGoalRequest writes a business-level goal. A nil month means a
// quarterly goal.
type UpsertProductGoalRequest struct {
	ProductID         uuid.UUID `json:"productId" binding:"required"`
	Year              int       `json:"year" binding:"required" validate:"gte=2000,lte=2100"`
	Month             *int      `json:"month" validate:"omitempty,gte=1,lte=12"`
	TotalTargetAmount float64   `json:"totalTargetAmount" validate:"gte=0"`
	CurrentAmount     float64   `json:"currentAmount" validate:"gte=0"`
}

// CreateVendorGoalRequest writes a vendor-level goal.
type CreateVendorGoalRequest struct {
	VendorID      *uuid.UUID `json:"vendorId"`
	VendorName    string     `json:"vendorName" validate:"max=120"`
	ProductID     uuid.UUID  `json:"productId" binding:"required"`
	Year          int        `json:"year" binding:"required" validate:"gte=2000,lte=2100"`
	Month         *int       `json:"month" validate:"omitempty,gte=1,lte=12"`
	TargetAmount  float64    `json:"targetAmount" validate:"gte=0"`
	CurrentAmount float64    `json:"currentAmount" validate:"gte=0"`
}

// UpdateVendorGoalRequest adjusts a vendor goal's amounts.
type UpdateVendorGoalRequest struct {
	TargetAmount  *float64 `json:"targetAmount" validate:"omitempty,gte=0"`
	CurrentAmount *float64 `json:"currentAmount" validate:"omitempty,gte=0"`
}
