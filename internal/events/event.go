// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"salesops_backend/platform/events"

	"github.com/google/uuid"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// Audit action codes carried on entity and pipeline events. The audit module
// persists these verbatim.
const (
	ActionSendToFollowUp = "send-to-followup"
	ActionReturnToPool   = "return-to-pool"
	ActionCompleteSale   = "complete-sale"
	ActionCreate         = "create"
	ActionEdit           = "edit"
	ActionDelete         = "delete"
)

// =============================================================================
// Pipeline Domain Events
// =============================================================================

// ProspectSentToFollowUp is published when a client enters the follow-up pipeline.
type ProspectSentToFollowUp struct {
	BaseEvent
	ProspectID uuid.UUID `json:"prospectId"`
	ClientID   uuid.UUID `json:"clientId"`
	VendorID   uuid.UUID `json:"vendorId"`
	ActorID    uuid.UUID `json:"actorId"`
}

func (e ProspectSentToFollowUp) EventName() string { return "pipeline.prospect.sent_to_followup" }

// ProspectReturned is published when a prospect is returned to the available pool.
type ProspectReturned struct {
	BaseEvent
	ProspectID uuid.UUID `json:"prospectId"`
	ClientID   uuid.UUID `json:"clientId"`
	Reason     string    `json:"reason"`
	ActorID    uuid.UUID `json:"actorId"`
}

func (e ProspectReturned) EventName() string { return "pipeline.prospect.returned" }

// ProspectCompleted is published when a prospect closes as a sale. The sales
// history recorder subscribes to this event.
type ProspectCompleted struct {
	BaseEvent
	ProspectID    uuid.UUID  `json:"prospectId"`
	ClientID      uuid.UUID  `json:"clientId"`
	VendorID      *uuid.UUID `json:"vendorId,omitempty"`
	ProductID     *uuid.UUID `json:"productId,omitempty"`
	TotalAmount   float64    `json:"totalAmount"`
	CompletedDate time.Time  `json:"completedDate"`
	ActorID       uuid.UUID  `json:"actorId"`
}

func (e ProspectCompleted) EventName() string { return "pipeline.prospect.completed" }

// CallLogged is published when a call log entry is appended to a prospect.
type CallLogged struct {
	BaseEvent
	CallLogID    uuid.UUID  `json:"callLogId"`
	ProspectID   uuid.UUID  `json:"prospectId"`
	VendorID     *uuid.UUID `json:"vendorId,omitempty"`
	Outcome      string     `json:"outcome"`
	NextCallDate *time.Time `json:"nextCallDate,omitempty"`
	ActorID      uuid.UUID  `json:"actorId"`
}

func (e CallLogged) EventName() string { return "pipeline.call.logged" }

// CallReminderDue is published by the worker when a scheduled next-call
// reminder fires.
type CallReminderDue struct {
	BaseEvent
	ProspectID uuid.UUID `json:"prospectId"`
	VendorID   uuid.UUID `json:"vendorId"`
}

func (e CallReminderDue) EventName() string { return "pipeline.call.reminder_due" }

// =============================================================================
// Entity CRUD Events (audit trail)
// =============================================================================

// EntityMutated is published on create/edit/delete of audited entities.
type EntityMutated struct {
	BaseEvent
	Action     string    `json:"action"` // ActionCreate, ActionEdit, ActionDelete
	EntityType string    `json:"entityType"`
	EntityID   uuid.UUID `json:"entityId"`
	ActorID    uuid.UUID `json:"actorId"`
	Summary    string    `json:"summary,omitempty"`
}

func (e EntityMutated) EventName() string { return "entity.mutated" }

// =============================================================================
// Payments Domain Events
// =============================================================================

// PaymentRecorded is published when a payment is persisted.
type PaymentRecorded struct {
	BaseEvent
	PaymentID uuid.UUID `json:"paymentId"`
	ClientID  uuid.UUID `json:"clientId"`
	Amount    float64   `json:"amount"`
	ActorID   uuid.UUID `json:"actorId"`
}

func (e PaymentRecorded) EventName() string { return "payments.payment.recorded" }
