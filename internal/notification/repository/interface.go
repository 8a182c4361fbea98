package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Notification is an in-app message targeted at a vendor's users.
type Notification struct {
	ID        uuid.UUID `json:"id"`
	VendorID  uuid.UUID `json:"vendorId"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateParams holds the fields for a notification.
type CreateParams struct {
	VendorID uuid.UUID
	Kind     string
	Title    string
	Body     string
}

// Repository is the storage boundary for notifications.
type Repository interface {
	Create(ctx context.Context, params CreateParams) (Notification, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID, unreadOnly bool) ([]Notification, error)
	CountUnread(ctx context.Context, vendorID uuid.UUID) (int, error)
	MarkRead(ctx context.Context, id uuid.UUID) error
	MarkAllRead(ctx context.Context, vendorID uuid.UUID) error
}
