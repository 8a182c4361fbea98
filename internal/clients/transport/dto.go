package transport

import (
	"time"

	"salesops_backend/internal/clients/domain"
	"salesops_backend/internal/clients/repository"

	"github.com/google/uuid"
)

// CreateClientRequest is the request body for creating a client.
type CreateClientRequest struct {
	Name         string     `json:"name" validate:"required,min=1,max=200"`
	BusinessName string     `json:"businessName,omitempty" validate:"max=200"`
	VendorID     *uuid.UUID `json:"vendorId,omitempty"`
	IncludesBAN  bool       `json:"includesBan"`
}

// UpdateClientRequest is the request body for saving a client edit session.
type UpdateClientRequest struct {
	Name         *string    `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	BusinessName *string    `json:"businessName,omitempty" validate:"omitempty,max=200"`
	VendorID     *uuid.UUID `json:"vendorId,omitempty"`
	ClearVendor  bool       `json:"clearVendor"`
	IncludesBAN  *bool      `json:"includesBan,omitempty"`
}

// CreateBanRequest is the request body for adding a billing account.
type CreateBanRequest struct {
	BanNumber string `json:"banNumber" validate:"required,min=1,max=30"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=active suspended cancelled"`
}

// CreateSubscriberRequest is the request body for adding a subscriber line.
// The contract end date is derived from remainingPayments, never supplied.
type CreateSubscriberRequest struct {
	Phone             string `json:"phone" validate:"required,min=7,max=20"`
	RemainingPayments int    `json:"remainingPayments" validate:"min=0,max=120"`
}

// ClientResponse is a client together with its gate and contract timing.
type ClientResponse struct {
	ID           uuid.UUID             `json:"id"`
	Name         string                `json:"name"`
	BusinessName string                `json:"businessName,omitempty"`
	VendorID     *uuid.UUID            `json:"vendorId,omitempty"`
	IncludesBAN  bool                  `json:"includesBan"`
	Pending      bool                  `json:"pending"`
	Timing       domain.ContractTiming `json:"timing"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// GateResponse reports the BAN gate status for a client.
type GateResponse struct {
	Satisfied bool `json:"satisfied"`
}

// FromClient maps a stored client plus its computed timing into a response.
func FromClient(client repository.Client, timing domain.ContractTiming) ClientResponse {
	return ClientResponse{
		ID:           client.ID,
		Name:         client.Name,
		BusinessName: client.BusinessName,
		VendorID:     client.VendorID,
		IncludesBAN:  client.IncludesBAN,
		Pending:      client.Pending,
		Timing:       timing,
		CreatedAt:    client.CreatedAt,
		UpdatedAt:    client.UpdatedAt,
	}
}
