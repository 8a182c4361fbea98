package domain

import (
	"testing"
	"time"
)

var testNow = time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

func datePtr(t time.Time) *time.Time {
	return &t
}

func TestClassify_NilEndDateIsOverdueSentinel(t *testing.T) {
	got := Classify(nil, testNow)

	if got.Status != ContractOverdue {
		t.Fatalf("expected status %q, got %q", ContractOverdue, got.Status)
	}
	if got.DaysUntilExpiry != MissingDateDays {
		t.Fatalf("expected sentinel %d, got %d", MissingDateDays, got.DaysUntilExpiry)
	}
}

func TestClassify_PastDateIsExpired(t *testing.T) {
	cases := []time.Duration{
		-24 * time.Hour,
		-25 * time.Hour,
		-24 * 365 * time.Hour,
	}

	for _, offset := range cases {
		got := Classify(datePtr(testNow.Add(offset)), testNow)
		if got.Status != ContractExpired {
			t.Fatalf("offset %v: expected expired, got %q (%d days)", offset, got.Status, got.DaysUntilExpiry)
		}
	}
}

func TestClassify_SameDayGraceIsCritical(t *testing.T) {
	// An end date less than 24 hours ago rounds up to day zero, which
	// classifies as critical rather than expired.
	cases := []time.Duration{
		-1 * time.Hour,
		-23 * time.Hour,
	}

	for _, offset := range cases {
		got := Classify(datePtr(testNow.Add(offset)), testNow)
		if got.Status != ContractCritical {
			t.Fatalf("offset %v: expected critical, got %q", offset, got.Status)
		}
		if got.DaysUntilExpiry != 0 {
			t.Fatalf("offset %v: expected 0 days, got %d", offset, got.DaysUntilExpiry)
		}
	}
}

func TestClassify_Boundaries(t *testing.T) {
	cases := []struct {
		name string
		days int
		want ContractStatus
	}{
		{"today", 0, ContractCritical},
		{"day 15 is still critical", 15, ContractCritical},
		{"day 16 is warning", 16, ContractWarning},
		{"day 30 is still warning", 30, ContractWarning},
		{"day 31 is good", 31, ContractGood},
		{"far future", 400, ContractGood},
	}

	for _, tc := range cases {
		end := testNow.Add(time.Duration(tc.days) * 24 * time.Hour)
		got := Classify(&end, testNow)
		if got.Status != tc.want {
			t.Fatalf("%s: expected %q, got %q", tc.name, tc.want, got.Status)
		}
		if got.DaysUntilExpiry != tc.days {
			t.Fatalf("%s: expected %d days, got %d", tc.name, tc.days, got.DaysUntilExpiry)
		}
	}
}

func TestClassify_PartialDaysRoundUp(t *testing.T) {
	// 15 days and 6 hours away rounds up to 16 days, so warning not critical.
	end := testNow.Add(15*24*time.Hour + 6*time.Hour)
	got := Classify(&end, testNow)

	if got.DaysUntilExpiry != 16 {
		t.Fatalf("expected 16 days, got %d", got.DaysUntilExpiry)
	}
	if got.Status != ContractWarning {
		t.Fatalf("expected warning, got %q", got.Status)
	}
}

func TestClassifyClientContracts_NoSubscribers(t *testing.T) {
	got := ClassifyClientContracts(nil, testNow)

	if got.Status != ContractNoDate {
		t.Fatalf("expected no-date, got %q", got.Status)
	}
	if got.DaysUntilExpiry != NoDateDays {
		t.Fatalf("expected %d, got %d", NoDateDays, got.DaysUntilExpiry)
	}
}

func TestClassifyClientContracts_PicksMostUrgent(t *testing.T) {
	terms := []SubscriberTerm{
		{ContractEndDate: datePtr(testNow.Add(60 * 24 * time.Hour))},
		{ContractEndDate: datePtr(testNow.Add(10 * 24 * time.Hour))},
		{ContractEndDate: datePtr(testNow.Add(20 * 24 * time.Hour))},
	}

	got := ClassifyClientContracts(terms, testNow)
	if got.Status != ContractCritical {
		t.Fatalf("expected critical, got %q", got.Status)
	}
	if got.DaysUntilExpiry != 10 {
		t.Fatalf("expected 10 days, got %d", got.DaysUntilExpiry)
	}
}

func TestClassifyClientContracts_MissingDateDominates(t *testing.T) {
	terms := []SubscriberTerm{
		{ContractEndDate: datePtr(testNow.Add(5 * 24 * time.Hour))},
		{ContractEndDate: nil},
	}

	got := ClassifyClientContracts(terms, testNow)
	if got.Status != ContractOverdue {
		t.Fatalf("expected overdue, got %q", got.Status)
	}
	if got.DaysUntilExpiry != MissingDateDays {
		t.Fatalf("expected sentinel %d, got %d", MissingDateDays, got.DaysUntilExpiry)
	}
}
