package domain

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
)

// Step is an ordered stage of the follow-up workflow.
type Step struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	OrderIndex int       `json:"orderIndex"`
}

// StepCompletion reports whether one step has been completed and when.
type StepCompletion struct {
	StepID      uuid.UUID  `json:"stepId"`
	Name        string     `json:"name"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// StepProgress is the tracker output for one prospect.
type StepProgress struct {
	Completion      []StepCompletion `json:"completion"`
	ProgressPercent int              `json:"progressPercent"`
}

// LedgerEntry is the slice of a call log the tracker reads. The tracker sorts
// entries by call date itself and never relies on retrieval order.
type LedgerEntry struct {
	CallDate      time.Time
	StepID        *uuid.UUID
	StepCompleted bool
}

// ComputeStepProgress evaluates the ordered checklist for a prospect.
//
// A step counts as completed when any ledger entry marks it completed; with
// multiple qualifying entries the earliest call date wins, matching a
// forward-moving timeline. The progress percentage is the position of the
// current step within the order_index sequence over the total step count,
// rounded half away from zero; an unknown or absent current step counts as
// all steps done.
func ComputeStepProgress(steps []Step, currentStepID *uuid.UUID, entries []LedgerEntry) StepProgress {
	ordered := make([]Step, len(steps))
	copy(ordered, steps)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].OrderIndex < ordered[j].OrderIndex
	})

	completedAt := earliestCompletions(entries)

	completion := make([]StepCompletion, 0, len(ordered))
	for _, step := range ordered {
		entry := StepCompletion{StepID: step.ID, Name: step.Name}
		if at, ok := completedAt[step.ID]; ok {
			done := at
			entry.Completed = true
			entry.CompletedAt = &done
		}
		completion = append(completion, entry)
	}

	return StepProgress{
		Completion:      completion,
		ProgressPercent: progressPercent(ordered, currentStepID),
	}
}

func earliestCompletions(entries []LedgerEntry) map[uuid.UUID]time.Time {
	out := make(map[uuid.UUID]time.Time)
	for _, entry := range entries {
		if !entry.StepCompleted || entry.StepID == nil {
			continue
		}
		if existing, ok := out[*entry.StepID]; !ok || entry.CallDate.Before(existing) {
			out[*entry.StepID] = entry.CallDate
		}
	}
	return out
}

func progressPercent(ordered []Step, currentStepID *uuid.UUID) int {
	total := len(ordered)
	if total == 0 {
		return 0
	}

	index := total
	if currentStepID != nil {
		for i, step := range ordered {
			if step.ID == *currentStepID {
				index = i
				break
			}
		}
	}

	return int(math.Round(float64(index) / float64(total) * 100))
}
