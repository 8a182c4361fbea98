package domain

import (
	"testing"
	"time"

	"salesops_backend/platform/apperr"

	"github.com/google/uuid"
)

func TestValidateCallEntry(t *testing.T) {
	valid := CallEntry{CallDate: time.Now(), Notes: "spoke to owner", Outcome: OutcomePending}
	if err := ValidateCallEntry(valid); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	empty := valid
	empty.Notes = "  "
	if err := ValidateCallEntry(empty); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for empty notes, got %v", err)
	}

	bogus := valid
	bogus.Outcome = "ghosted"
	if err := ValidateCallEntry(bogus); !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for unknown outcome, got %v", err)
	}
}

func TestIsKnownOutcome(t *testing.T) {
	for _, outcome := range []Outcome{OutcomeCompleted, OutcomePending, OutcomeNoAnswer, OutcomeVoicemail, OutcomeWrongNumber} {
		if !IsKnownOutcome(outcome) {
			t.Fatalf("expected %q to be known", outcome)
		}
	}
	if IsKnownOutcome("busy") {
		t.Fatal("unexpected outcome accepted")
	}
}

func TestApplyCallEntry_SchedulesNextCall(t *testing.T) {
	callDate := time.Date(2025, 4, 1, 11, 0, 0, 0, time.UTC)
	nextCall := callDate.Add(72 * time.Hour)

	state, effects := ApplyCallEntry(CallState{CallCount: 2}, CallEntry{
		CallDate:     callDate,
		Notes:        "asked to call back",
		Outcome:      OutcomePending,
		NextCallDate: &nextCall,
	})

	if state.CallCount != 3 {
		t.Fatalf("expected call count 3, got %d", state.CallCount)
	}
	if state.LastCallDate == nil || !state.LastCallDate.Equal(callDate) {
		t.Fatalf("expected last call %v, got %v", callDate, state.LastCallDate)
	}
	if state.NextCallDate == nil || !state.NextCallDate.Equal(nextCall) {
		t.Fatalf("expected next call %v, got %v", nextCall, state.NextCallDate)
	}
	if len(effects) != 1 || effects[0] != EffectNextCallScheduled {
		t.Fatalf("expected next-call effect, got %v", effects)
	}
}

func TestApplyCallEntry_BareEntryLeavesBookkeeping(t *testing.T) {
	state, effects := ApplyCallEntry(CallState{CallCount: 1}, CallEntry{
		CallDate: time.Now(),
		Notes:    "left a message",
		Outcome:  OutcomeVoicemail,
	})

	if state.CallCount != 1 {
		t.Fatalf("expected call count unchanged, got %d", state.CallCount)
	}
	if state.LastCallDate != nil || state.NextCallDate != nil {
		t.Fatalf("expected no date updates, got %+v", state)
	}
	if len(effects) != 0 {
		t.Fatalf("expected no effects, got %v", effects)
	}
}

func TestApplyCallEntry_StepCompletionEffect(t *testing.T) {
	stepID := uuid.New()
	_, effects := ApplyCallEntry(CallState{}, CallEntry{
		CallDate:      time.Now(),
		Notes:         "proposal accepted",
		Outcome:       OutcomeCompleted,
		StepID:        &stepID,
		StepCompleted: true,
	})

	if len(effects) != 1 || effects[0] != EffectStepCompleted {
		t.Fatalf("expected step-completed effect, got %v", effects)
	}
}
