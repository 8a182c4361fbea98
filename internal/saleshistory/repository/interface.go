package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Sale is one recorded closed sale, written when a prospect completes.
type Sale struct {
	ID          uuid.UUID  `json:"id"`
	ProspectID  uuid.UUID  `json:"prospectId"`
	ClientID    uuid.UUID  `json:"clientId"`
	ClientName  string     `json:"clientName,omitempty"`
	VendorID    *uuid.UUID `json:"vendorId,omitempty"`
	VendorName  string     `json:"vendorName,omitempty"`
	ProductID   *uuid.UUID `json:"productId,omitempty"`
	TotalAmount float64    `json:"totalAmount"`
	SaleDate    time.Time  `json:"saleDate"`
	CreatedAt   time.Time  `json:"createdAt"`
}

// RecordSaleParams holds the fields for a sale record.
type RecordSaleParams struct {
	ProspectID  uuid.UUID
	ClientID    uuid.UUID
	VendorID    *uuid.UUID
	ProductID   *uuid.UUID
	TotalAmount float64
	SaleDate    time.Time
}

// ListFilter narrows sale reads.
type ListFilter struct {
	VendorID *uuid.UUID
	Year     *int
	Month    *int
}

// Repository is the storage boundary for sales history.
type Repository interface {
	RecordSale(ctx context.Context, params RecordSaleParams) (Sale, error)
	ListSales(ctx context.Context, filter ListFilter) ([]Sale, error)
}
