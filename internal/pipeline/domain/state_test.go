package domain

import (
	"testing"
	"time"

	"salesops_backend/platform/apperr"

	"github.com/google/uuid"
)

func TestStateOf(t *testing.T) {
	completed := time.Now()
	cases := []struct {
		name   string
		record ProspectRecord
		want   State
	}{
		{"active record is following", ProspectRecord{IsActive: true}, StateFollowing},
		{"completed record is terminal", ProspectRecord{IsActive: true, IsCompleted: true, CompletedDate: &completed}, StateCompleted},
		{"deactivated record is returned", ProspectRecord{IsActive: false}, StateReturned},
	}

	for _, tc := range cases {
		if got := StateOf(tc.record); got != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got)
		}
	}
}

func TestValidateSendToFollowUp_RequiresVendor(t *testing.T) {
	err := ValidateSendToFollowUp(nil, false)
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestValidateSendToFollowUp_RejectsSecondActiveProspect(t *testing.T) {
	vendorID := uuid.New()
	err := ValidateSendToFollowUp(&vendorID, true)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict error, got %v", err)
	}
}

func TestValidateSendToFollowUp_PassesWithVendor(t *testing.T) {
	vendorID := uuid.New()
	if err := ValidateSendToFollowUp(&vendorID, false); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestCompleteSale(t *testing.T) {
	now := time.Date(2025, 5, 2, 10, 0, 0, 0, time.UTC)

	record, err := CompleteSale(ProspectRecord{IsActive: true}, now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !record.IsCompleted {
		t.Fatal("expected record to be completed")
	}
	if record.CompletedDate == nil || !record.CompletedDate.Equal(now) {
		t.Fatalf("expected completed date %v, got %v", now, record.CompletedDate)
	}
}

func TestCompleteSale_TerminalRecordsRejected(t *testing.T) {
	now := time.Now()

	if _, err := CompleteSale(ProspectRecord{IsActive: true, IsCompleted: true}, now); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("completing twice: expected conflict, got %v", err)
	}
	if _, err := CompleteSale(ProspectRecord{IsActive: false}, now); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("completing a returned record: expected conflict, got %v", err)
	}
}

func TestReturnToPool_RequiresReason(t *testing.T) {
	for _, reason := range []string{"", "   ", "\n\t"} {
		if _, err := ReturnToPool(ProspectRecord{IsActive: true}, reason); !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("reason %q: expected validation error, got %v", reason, err)
		}
	}
}

func TestReturnToPool_DeactivatesAndAppendsReason(t *testing.T) {
	record, err := ReturnToPool(ProspectRecord{IsActive: true, Notes: "first contact made"}, "no interest")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if record.IsActive {
		t.Fatal("expected record to be deactivated")
	}
	if record.Notes != "first contact made\nno interest" {
		t.Fatalf("unexpected notes: %q", record.Notes)
	}
	if StateOf(record) != StateReturned {
		t.Fatalf("expected returned state, got %q", StateOf(record))
	}
}

func TestReturnToPool_TerminalRecordsRejected(t *testing.T) {
	if _, err := ReturnToPool(ProspectRecord{IsActive: true, IsCompleted: true}, "reason"); !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}
