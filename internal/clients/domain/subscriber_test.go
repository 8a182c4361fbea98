package domain

import (
	"testing"
	"time"
)

func TestDeriveContractEnd_ZeroPaymentsIsToday(t *testing.T) {
	now := time.Date(2025, 6, 18, 15, 30, 0, 0, time.UTC)
	got := DeriveContractEnd(now, 0)

	want := time.Date(2025, 6, 18, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDeriveContractEnd_AddsCalendarMonths(t *testing.T) {
	now := time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)
	got := DeriveContractEnd(now, 18)

	want := time.Date(2026, 7, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
