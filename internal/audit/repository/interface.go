package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Entry is one audit log row. Entries are append-only.
type Entry struct {
	ID         uuid.UUID `json:"id"`
	Action     string    `json:"action"`
	EntityType string    `json:"entityType"`
	EntityID   uuid.UUID `json:"entityId"`
	ActorID    uuid.UUID `json:"actorId"`
	Details    string    `json:"details,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// AppendParams holds the fields for an audit entry.
type AppendParams struct {
	Action     string
	EntityType string
	EntityID   uuid.UUID
	ActorID    uuid.UUID
	Details    string
	OccurredAt time.Time
}

// ListFilter narrows audit reads.
type ListFilter struct {
	EntityType string
	EntityID   *uuid.UUID
	Action     string
	Limit      int
}

// Repository is the storage boundary for the audit trail.
type Repository interface {
	Append(ctx context.Context, params AppendParams) (Entry, error)
	List(ctx context.Context, filter ListFilter) ([]Entry, error)
}
