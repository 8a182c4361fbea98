package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Client is a tracked account holder. VendorID is the assigned salesperson,
// nil while the client sits in the available pool.
type Client struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	BusinessName string     `json:"businessName"`
	VendorID     *uuid.UUID `json:"vendorId,omitempty"`
	IncludesBAN  bool       `json:"includesBan"`
	Pending      bool       `json:"pending"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// BAN is a billing account holding subscriber lines for a client.
type BAN struct {
	ID              uuid.UUID `json:"id"`
	BanNumber       string    `json:"banNumber"`
	ClientID        uuid.UUID `json:"clientId"`
	Status          string    `json:"status"`
	SubscriberCount int       `json:"subscriberCount"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Subscriber is a single billed line under a BAN with its own contract term.
type Subscriber struct {
	ID                uuid.UUID  `json:"id"`
	BanID             uuid.UUID  `json:"banId"`
	Phone             string     `json:"phone"`
	ContractEndDate   *time.Time `json:"contractEndDate,omitempty"`
	RemainingPayments int        `json:"remainingPayments"`
	CreatedAt         time.Time  `json:"createdAt"`
}

// CreateClientParams holds the fields for creating a client.
type CreateClientParams struct {
	Name         string
	BusinessName string
	VendorID     *uuid.UUID
	IncludesBAN  bool
}

// UpdateClientParams holds optional fields for updating a client.
type UpdateClientParams struct {
	ID           uuid.UUID
	Name         *string
	BusinessName *string
	VendorID     *uuid.UUID
	ClearVendor  bool
	IncludesBAN  *bool
}

// CreateBanParams holds the fields for creating a billing account.
type CreateBanParams struct {
	BanNumber string
	ClientID  uuid.UUID
	Status    string
}

// CreateSubscriberParams holds the fields for creating a subscriber line.
type CreateSubscriberParams struct {
	BanID             uuid.UUID
	Phone             string
	ContractEndDate   *time.Time
	RemainingPayments int
}

// Repository is the storage boundary for the clients bounded context.
type Repository interface {
	CreateClient(ctx context.Context, params CreateClientParams) (Client, error)
	GetClient(ctx context.Context, id uuid.UUID) (Client, error)
	ListClients(ctx context.Context) ([]Client, error)
	UpdateClient(ctx context.Context, params UpdateClientParams) (Client, error)
	DeleteClient(ctx context.Context, id uuid.UUID) error
	SetClientPending(ctx context.Context, id uuid.UUID, pending bool) error

	CreateBan(ctx context.Context, params CreateBanParams) (BAN, error)
	GetBan(ctx context.Context, id uuid.UUID) (BAN, error)
	ListBansByClient(ctx context.Context, clientID uuid.UUID) ([]BAN, error)
	DeleteBan(ctx context.Context, id uuid.UUID) error

	CreateSubscriber(ctx context.Context, params CreateSubscriberParams) (Subscriber, error)
	ListSubscribersByBan(ctx context.Context, banID uuid.UUID) ([]Subscriber, error)
	ListSubscribersByClient(ctx context.Context, clientID uuid.UUID) ([]Subscriber, error)
	DeleteSubscriber(ctx context.Context, id uuid.UUID) error
}
