// Package domain provides core business rules for the follow-up pipeline
// bounded context: lifecycle transitions, the step progression tracker, and
// the call log ledger rules.
package domain

import (
	"strings"
	"time"

	"salesops_backend/platform/apperr"

	"github.com/google/uuid"
)

// State is a client's position in the follow-up pipeline.
type State string

const (
	// StateAvailable means no active prospect exists for the client.
	StateAvailable State = "available"
	// StateFollowing means an active, non-completed prospect exists.
	StateFollowing State = "following"
	// StateCompleted means the prospect closed as a sale. Terminal per record.
	StateCompleted State = "completed"
	// StateReturned means the prospect was deactivated back to the pool.
	// Terminal per record; the client classifies as available again.
	StateReturned State = "returned"
)

const (
	msgVendorRequired   = "client must have a vendor assigned before entering follow-up"
	msgAlreadyFollowing = "client already has an active follow-up prospect"
	msgNotFollowing     = "prospect is not in an active follow-up"
	msgReasonRequired   = "a return reason is required"
)

// ProspectRecord is the snapshot of a prospect the lifecycle rules operate on.
type ProspectRecord struct {
	IsActive      bool
	IsCompleted   bool
	CompletedDate *time.Time
	Notes         string
}

// StateOf derives the pipeline state of a prospect record.
func StateOf(p ProspectRecord) State {
	switch {
	case p.IsCompleted:
		return StateCompleted
	case !p.IsActive:
		return StateReturned
	default:
		return StateFollowing
	}
}

// ValidateSendToFollowUp checks the Available -> Following preconditions:
// the client must carry a vendor assignment and must not already have an
// active prospect.
func ValidateSendToFollowUp(clientVendorID *uuid.UUID, hasActiveProspect bool) error {
	if clientVendorID == nil {
		return apperr.Validation(msgVendorRequired)
	}
	if hasActiveProspect {
		return apperr.Conflict(msgAlreadyFollowing)
	}
	return nil
}

// CompleteSale performs the Following -> Completed transition on a record.
// Terminal: a new cycle for the same client always creates a new record.
func CompleteSale(p ProspectRecord, now time.Time) (ProspectRecord, error) {
	if StateOf(p) != StateFollowing {
		return p, apperr.Conflict(msgNotFollowing)
	}

	p.IsCompleted = true
	p.CompletedDate = &now
	return p, nil
}

// ReturnToPool performs the Following -> Returned transition. The reason is
// mandatory and is appended to the prospect's notes; the caller must also
// clear the client's vendor assignment in the same commit.
func ReturnToPool(p ProspectRecord, reason string) (ProspectRecord, error) {
	trimmed := strings.TrimSpace(reason)
	if trimmed == "" {
		return p, apperr.Validation(msgReasonRequired)
	}
	if StateOf(p) != StateFollowing {
		return p, apperr.Conflict(msgNotFollowing)
	}

	p.IsActive = false
	if p.Notes == "" {
		p.Notes = trimmed
	} else {
		p.Notes = p.Notes + "\n" + trimmed
	}
	return p, nil
}
