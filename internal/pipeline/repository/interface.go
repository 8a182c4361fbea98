package repository

import (
	"context"
	"time"

	"salesops_backend/internal/pipeline/domain"

	"github.com/google/uuid"
)

// Prospect is a follow-up pipeline record for a client. Terminal records
// (completed or returned) are retained for history; the active-uniqueness
// invariant only covers active, non-completed records.
type Prospect struct {
	ID            uuid.UUID  `json:"id"`
	ClientID      uuid.UUID  `json:"clientId"`
	ClientName    string     `json:"clientName,omitempty"`
	VendorID      *uuid.UUID `json:"vendorId,omitempty"`
	VendorName    string     `json:"vendorName,omitempty"`
	PriorityID    *uuid.UUID `json:"priorityId,omitempty"`
	PriorityName  string     `json:"priorityName,omitempty"`
	StepID        *uuid.UUID `json:"stepId,omitempty"`
	StepName      string     `json:"stepName,omitempty"`
	IsActive      bool       `json:"isActive"`
	IsCompleted   bool       `json:"isCompleted"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
	LastCallDate  *time.Time `json:"lastCallDate,omitempty"`
	NextCallDate  *time.Time `json:"nextCallDate,omitempty"`
	CallCount     int        `json:"callCount"`
	TotalAmount   float64    `json:"totalAmount"`
	Notes         string     `json:"notes,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Record converts the stored row into the domain's lifecycle snapshot.
func (p Prospect) Record() domain.ProspectRecord {
	return domain.ProspectRecord{
		IsActive:      p.IsActive,
		IsCompleted:   p.IsCompleted,
		CompletedDate: p.CompletedDate,
		Notes:         p.Notes,
	}
}

// CallLog is one immutable ledger entry for a prospect.
type CallLog struct {
	ID            uuid.UUID  `json:"id"`
	FollowUpID    uuid.UUID  `json:"followUpId"`
	CallDate      time.Time  `json:"callDate"`
	Notes         string     `json:"notes"`
	Outcome       string     `json:"outcome"`
	NextCallDate  *time.Time `json:"nextCallDate,omitempty"`
	StepID        *uuid.UUID `json:"stepId,omitempty"`
	StepCompleted bool       `json:"stepCompleted"`
	CreatedAt     time.Time  `json:"createdAt"`
}

// Priority is a configurable prospect priority level.
type Priority struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Color      string    `json:"color"`
	OrderIndex int       `json:"orderIndex"`
	Active     bool      `json:"active"`
}

// CreateProspectParams holds the fields for entering a client into follow-up.
type CreateProspectParams struct {
	ClientID   uuid.UUID
	VendorID   uuid.UUID
	PriorityID *uuid.UUID
	StepID     *uuid.UUID
	Notes      string
}

// AppendCallLogParams is a ledger append plus the prospect bookkeeping it
// carries. Entry and bookkeeping are committed in one transaction.
type AppendCallLogParams struct {
	FollowUpID    uuid.UUID
	CallDate      time.Time
	Notes         string
	Outcome       string
	NextCallDate  *time.Time
	StepID        *uuid.UUID
	StepCompleted bool

	UpdateBookkeeping bool
	LastCallDate      *time.Time
	ProspectNextCall  *time.Time
	CallCount         int
}

// ReturnProspectParams deactivates a prospect and clears the client's vendor
// in one commit.
type ReturnProspectParams struct {
	ProspectID uuid.UUID
	ClientID   uuid.UUID
	Notes      string
}

// CreateStepParams holds the fields for a workflow step.
type CreateStepParams struct {
	Name       string
	OrderIndex int
}

// CreatePriorityParams holds the fields for a priority level.
type CreatePriorityParams struct {
	Name       string
	Color      string
	OrderIndex int
}

// Repository is the storage boundary for the pipeline bounded context.
type Repository interface {
	GetClientVendor(ctx context.Context, clientID uuid.UUID) (*uuid.UUID, error)

	CreateProspect(ctx context.Context, params CreateProspectParams) (Prospect, error)
	GetProspect(ctx context.Context, id uuid.UUID) (Prospect, error)
	ListProspects(ctx context.Context, vendorID *uuid.UUID, activeOnly bool) ([]Prospect, error)
	HasActiveProspect(ctx context.Context, clientID uuid.UUID) (bool, error)
	CompleteProspect(ctx context.Context, id uuid.UUID, completedDate time.Time, totalAmount float64) (Prospect, error)
	ReturnProspect(ctx context.Context, params ReturnProspectParams) (Prospect, error)

	AppendCallLog(ctx context.Context, params AppendCallLogParams) (CallLog, error)
	ListCallLogs(ctx context.Context, followUpID uuid.UUID) ([]CallLog, error)

	ListSteps(ctx context.Context) ([]domain.Step, error)
	CreateStep(ctx context.Context, params CreateStepParams) (domain.Step, error)
	DeleteStep(ctx context.Context, id uuid.UUID) error

	ListPriorities(ctx context.Context) ([]Priority, error)
	CreatePriority(ctx context.Context, params CreatePriorityParams) (Priority, error)
	DeletePriority(ctx context.Context, id uuid.UUID) error
}
