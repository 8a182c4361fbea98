package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Payment is a client payment. Financial records are first-class entities
// with the same durability as everything else, never a client-side cache.
type Payment struct {
	ID         uuid.UUID `json:"id"`
	ClientID   uuid.UUID `json:"clientId"`
	Amount     float64   `json:"amount"`
	Method     string    `json:"method,omitempty"`
	Reference  string    `json:"reference,omitempty"`
	Notes      string    `json:"notes,omitempty"`
	PaidAt     time.Time `json:"paidAt"`
	RecordedBy uuid.UUID `json:"recordedBy"`
	CreatedAt  time.Time `json:"createdAt"`
}

// CreatePaymentParams holds the fields for a payment.
type CreatePaymentParams struct {
	ClientID   uuid.UUID
	Amount     float64
	Method     string
	Reference  string
	Notes      string
	PaidAt     time.Time
	RecordedBy uuid.UUID
}

// Repository is the storage boundary for payments.
type Repository interface {
	Create(ctx context.Context, params CreatePaymentParams) (Payment, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]Payment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}
