package domain

import (
	"strings"
	"time"

	"salesops_backend/platform/apperr"

	"github.com/google/uuid"
)

// Outcome is the result of one call attempt.
type Outcome string

const (
	OutcomeCompleted   Outcome = "completed"
	OutcomePending     Outcome = "pending"
	OutcomeNoAnswer    Outcome = "no_answer"
	OutcomeVoicemail   Outcome = "voicemail"
	OutcomeWrongNumber Outcome = "wrong_number"
)

var knownOutcomes = map[Outcome]struct{}{
	OutcomeCompleted:   {},
	OutcomePending:     {},
	OutcomeNoAnswer:    {},
	OutcomeVoicemail:   {},
	OutcomeWrongNumber: {},
}

// IsKnownOutcome reports whether the outcome is one of the ledger's values.
func IsKnownOutcome(outcome Outcome) bool {
	_, ok := knownOutcomes[outcome]
	return ok
}

const (
	msgNotesRequired  = "call notes are required"
	msgUnknownOutcome = "unknown call outcome"
)

// CallEntry is a ledger entry to be appended. Entries are immutable once
// written; marking a step complete is done by appending an entry with
// StepCompleted set, never by editing history.
type CallEntry struct {
	CallDate      time.Time
	Notes         string
	Outcome       Outcome
	NextCallDate  *time.Time
	StepID        *uuid.UUID
	StepCompleted bool
}

// ValidateCallEntry checks the append preconditions for a ledger entry.
func ValidateCallEntry(entry CallEntry) error {
	if strings.TrimSpace(entry.Notes) == "" {
		return apperr.Validation(msgNotesRequired)
	}
	if !IsKnownOutcome(entry.Outcome) {
		return apperr.Validation(msgUnknownOutcome)
	}
	return nil
}

// CallState is the slice of a prospect the ledger side effects mutate.
type CallState struct {
	LastCallDate *time.Time
	NextCallDate *time.Time
	CallCount    int
}

// Effect names a side effect produced by appending a ledger entry.
type Effect string

const (
	// EffectNextCallScheduled means the prospect's next call was (re)scheduled
	// and a reminder should be queued.
	EffectNextCallScheduled Effect = "next_call_scheduled"
	// EffectStepCompleted means the entry marked a workflow step complete.
	EffectStepCompleted Effect = "step_completed"
)

// ApplyCallEntry computes the prospect mutation caused by appending an entry.
// When the entry schedules a next call, the prospect's call bookkeeping
// (next call, last call, call count) advances; a bare entry leaves it alone.
func ApplyCallEntry(state CallState, entry CallEntry) (CallState, []Effect) {
	effects := make([]Effect, 0, 2)

	if entry.NextCallDate != nil {
		callDate := entry.CallDate
		state.NextCallDate = entry.NextCallDate
		state.LastCallDate = &callDate
		state.CallCount++
		effects = append(effects, EffectNextCallScheduled)
	}

	if entry.StepCompleted && entry.StepID != nil {
		effects = append(effects, EffectStepCompleted)
	}

	return state, effects
}
