package transport

import (
	"time"

	"github.com/google/uuid"

	"salesops_backend/internal/pipeline/domain"
	"salesops_backend/internal/pipeline/repository"
)

// SendToFollowUpRequest enters a client into the follow-up pipeline.
type SendToFollowUpRequest struct {
	ClientID   uuid.UUID  `json:"clientId" binding:"required"`
	PriorityID *uuid.UUID `json:"priorityId"`
	StepID     *uuid.UUID `json:"stepId"`
	Notes      string     `json:"notes" validate:"max=2000"`
}

// CompleteSaleRequest closes a prospect as a sale. The product, when given,
// lets the sales recorder advance the matching vendor goal.
type CompleteSaleRequest struct {
	TotalAmount float64    `json:"totalAmount" validate:"gte=0"`
	ProductID   *uuid.UUID `json:"productId"`
}

// ReturnToPoolRequest sends a prospect back to the available pool.
type ReturnToPoolRequest struct {
	Reason string `json:"reason" binding:"required" validate:"max=2000"`
}

// LogCallRequest appends one entry to a prospect's call ledger.
type LogCallRequest struct {
	CallDate      *time.Time `json:"callDate"`
	Notes         string     `json:"notes" binding:"required" validate:"max=2000"`
	Outcome       string     `json:"outcome" binding:"required"`
	NextCallDate  *time.Time `json:"nextCallDate"`
	StepID        *uuid.UUID `json:"stepId"`
	StepCompleted bool       `json:"stepCompleted"`
}

// CreateStepRequest adds a workflow step to the catalog.
type CreateStepRequest struct {
	Name       string `json:"name" binding:"required" validate:"max=120"`
	OrderIndex int    `json:"orderIndex" validate:"gte=0"`
}

// CreatePriorityRequest adds a priority level.
type CreatePriorityRequest struct {
	Name       string `json:"name" binding:"required" validate:"max=120"`
	Color      string `json:"color" validate:"max=32"`
	OrderIndex int    `json:"orderIndex" validate:"gte=0"`
}

// ProspectResponse is a prospect with its derived pipeline state.
type ProspectResponse struct {
	repository.Prospect
	State domain.State `json:"state"`
}

// FromProspect builds the response view of a stored prospect.
func FromProspect(p repository.Prospect) ProspectResponse {
	return ProspectResponse{Prospect: p, State: domain.StateOf(p.Record())}
}

// FromProspects builds the response view of a prospect list.
func FromProspects(prospects []repository.Prospect) []ProspectResponse {
	out := make([]ProspectResponse, 0, len(prospects))
	for _, p := range prospects {
		out = append(out, FromProspect(p))
	}
	return out
}

// TaskResponse is the working view of a prospect for the tasks board, with
// its step progression attached.
type TaskResponse struct {
	ProspectResponse
	Progress domain.StepProgress `json:"progress"`
}
