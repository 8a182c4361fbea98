package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func threeSteps() []Step {
	return []Step{
		{ID: uuid.MustParse("00000000-0000-0000-0000-000000000001"), Name: "qualification", OrderIndex: 1},
		{ID: uuid.MustParse("00000000-0000-0000-0000-000000000002"), Name: "proposal", OrderIndex: 2},
		{ID: uuid.MustParse("00000000-0000-0000-0000-000000000003"), Name: "closing", OrderIndex: 3},
	}
}

func TestComputeStepProgress_SecondOfThreeIsThirtyThree(t *testing.T) {
	steps := threeSteps()
	current := steps[1].ID

	got := ComputeStepProgress(steps, &current, nil)
	if got.ProgressPercent != 33 {
		t.Fatalf("expected 33, got %d", got.ProgressPercent)
	}
}

func TestComputeStepProgress_FirstStepIsZero(t *testing.T) {
	steps := threeSteps()
	current := steps[0].ID

	got := ComputeStepProgress(steps, &current, nil)
	if got.ProgressPercent != 0 {
		t.Fatalf("expected 0, got %d", got.ProgressPercent)
	}
}

func TestComputeStepProgress_UnknownCurrentStepIsComplete(t *testing.T) {
	unknown := uuid.New()

	got := ComputeStepProgress(threeSteps(), &unknown, nil)
	if got.ProgressPercent != 100 {
		t.Fatalf("expected 100, got %d", got.ProgressPercent)
	}
}

func TestComputeStepProgress_NoStepsIsZero(t *testing.T) {
	got := ComputeStepProgress(nil, nil, nil)
	if got.ProgressPercent != 0 {
		t.Fatalf("expected 0, got %d", got.ProgressPercent)
	}
}

func TestComputeStepProgress_SortsByOrderIndex(t *testing.T) {
	steps := []Step{
		{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000a"), Name: "closing", OrderIndex: 30},
		{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000b"), Name: "qualification", OrderIndex: 10},
		{ID: uuid.MustParse("00000000-0000-0000-0000-00000000000c"), Name: "proposal", OrderIndex: 20},
	}
	current := steps[2].ID // proposal, second in order

	got := ComputeStepProgress(steps, &current, nil)
	if got.ProgressPercent != 33 {
		t.Fatalf("expected 33, got %d", got.ProgressPercent)
	}
	if got.Completion[0].Name != "qualification" || got.Completion[2].Name != "closing" {
		t.Fatalf("completion not in order_index order: %+v", got.Completion)
	}
}

func TestComputeStepProgress_EarliestQualifyingLogWins(t *testing.T) {
	steps := threeSteps()
	stepID := steps[0].ID
	early := time.Date(2025, 2, 1, 9, 0, 0, 0, time.UTC)
	late := time.Date(2025, 2, 20, 9, 0, 0, 0, time.UTC)

	// Retrieval order is call_date descending; the tracker must not care.
	entries := []LedgerEntry{
		{CallDate: late, StepID: &stepID, StepCompleted: true},
		{CallDate: early, StepID: &stepID, StepCompleted: true},
	}

	got := ComputeStepProgress(steps, nil, entries)
	first := got.Completion[0]
	if !first.Completed {
		t.Fatal("expected first step completed")
	}
	if first.CompletedAt == nil || !first.CompletedAt.Equal(early) {
		t.Fatalf("expected earliest completion %v, got %v", early, first.CompletedAt)
	}
}

func TestComputeStepProgress_IgnoresNonCompletingEntries(t *testing.T) {
	steps := threeSteps()
	stepID := steps[1].ID

	entries := []LedgerEntry{
		{CallDate: time.Now(), StepID: &stepID, StepCompleted: false},
		{CallDate: time.Now(), StepID: nil, StepCompleted: true},
	}

	got := ComputeStepProgress(steps, nil, entries)
	for _, completion := range got.Completion {
		if completion.Completed {
			t.Fatalf("no step should be completed, got %+v", completion)
		}
	}
}
