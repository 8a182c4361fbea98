package domain

import (
	"math"
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func intPtr(v int) *int { return &v }

func TestAggregateMergesBusinessAndVendorLevels(t *testing.T) {
	product := uuid.New()
	vendorA := uuid.New()
	vendorB := uuid.New()

	rows := Aggregate(
		[]ProductGoal{{ProductID: product, Year: 2026, Month: intPtr(3), TotalTargetAmount: 500, CurrentAmount: 200}},
		[]VendorGoal{
			{VendorID: &vendorA, ProductID: product, Year: 2026, Month: intPtr(3), TargetAmount: 150, CurrentAmount: 100},
			{VendorID: &vendorB, ProductID: product, Year: 2026, Month: intPtr(3), TargetAmount: 250, CurrentAmount: 50},
		},
		nil,
	)

	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.VendorTarget != 400 || row.VendorCurrent != 150 {
		t.Fatalf("vendor sums = %v/%v", row.VendorTarget, row.VendorCurrent)
	}
	if row.BusinessTarget != 500 || row.BusinessCurrent != 200 {
		t.Fatalf("business = %v/%v", row.BusinessTarget, row.BusinessCurrent)
	}
	if row.GapTarget != 100 {
		t.Fatalf("gap = %v, want 100", row.GapTarget)
	}
	if math.Abs(row.BusinessProgress-0.4) > 1e-9 {
		t.Fatalf("business progress = %v", row.BusinessProgress)
	}
	if math.Abs(row.VendorCoverage-0.8) > 1e-9 {
		t.Fatalf("vendor coverage = %v", row.VendorCoverage)
	}
	if math.Abs(row.VendorProgress-0.375) > 1e-9 {
		t.Fatalf("vendor progress = %v", row.VendorProgress)
	}
}

func TestAggregateFallsBackToVendorSums(t *testing.T) {
	product := uuid.New()
	vendor := uuid.New()

	rows := Aggregate(nil, []VendorGoal{
		{VendorID: &vendor, ProductID: product, Year: 2025, Month: intPtr(3), TargetAmount: 100, CurrentAmount: 40},
	}, nil)

	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	row := rows[0]
	if row.BusinessTarget != 100 {
		t.Fatalf("business target = %v, want fallback 100", row.BusinessTarget)
	}
	if row.BusinessCurrent != 40 {
		t.Fatalf("business current = %v, want fallback 40", row.BusinessCurrent)
	}
	if row.GapTarget != 0 {
		t.Fatalf("gap = %v, want 0", row.GapTarget)
	}
	if row.HasBusinessGoal {
		t.Fatal("row marked as having an explicit business goal")
	}
}

func TestAggregateGapMayGoNegative(t *testing.T) {
	product := uuid.New()
	vendor := uuid.New()

	rows := Aggregate(
		[]ProductGoal{{ProductID: product, Year: 2026, Month: intPtr(1), TotalTargetAmount: 100}},
		[]VendorGoal{{VendorID: &vendor, ProductID: product, Year: 2026, Month: intPtr(1), TargetAmount: 180}},
		nil,
	)

	if rows[0].GapTarget != -80 {
		t.Fatalf("gap = %v, want -80", rows[0].GapTarget)
	}
}

func TestAggregateZeroTargetsYieldZeroRatios(t *testing.T) {
	product := uuid.New()

	rows := Aggregate(
		[]ProductGoal{{ProductID: product, Year: 2026, Month: intPtr(6)}},
		nil, nil,
	)

	row := rows[0]
	if row.BusinessProgress != 0 || row.VendorCoverage != 0 || row.VendorProgress != 0 {
		t.Fatalf("ratios = %v/%v/%v, want all zero", row.BusinessProgress, row.VendorCoverage, row.VendorProgress)
	}
}

func TestAggregateQuarterlyBucketStaysSeparate(t *testing.T) {
	product := uuid.New()
	vendor := uuid.New()

	rows := Aggregate(
		[]ProductGoal{{ProductID: product, Year: 2026, Month: intPtr(3), TotalTargetAmount: 300}},
		[]VendorGoal{{VendorID: &vendor, ProductID: product, Year: 2026, Month: nil, TargetAmount: 900}},
		nil,
	)

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2 (quarterly bucket must not merge)", len(rows))
	}
	if rows[0].Month != QuarterlyMonth {
		t.Fatalf("first row month = %d, want quarterly sentinel", rows[0].Month)
	}
	if rows[1].Month != 3 {
		t.Fatalf("second row month = %d, want 3", rows[1].Month)
	}
}

func TestAggregateInvariantUnderInputPermutation(t *testing.T) {
	productA := uuid.New()
	productB := uuid.New()
	vendor := uuid.New()

	productGoals := []ProductGoal{
		{ProductID: productA, Year: 2026, Month: intPtr(1), TotalTargetAmount: 100, CurrentAmount: 10},
		{ProductID: productB, Year: 2026, Month: intPtr(2), TotalTargetAmount: 200, CurrentAmount: 20},
	}
	vendorGoals := []VendorGoal{
		{VendorID: &vendor, ProductID: productA, Year: 2026, Month: intPtr(1), TargetAmount: 60, CurrentAmount: 5},
		{VendorID: &vendor, ProductID: productB, Year: 2026, Month: intPtr(2), TargetAmount: 70, CurrentAmount: 6},
		{VendorID: &vendor, ProductID: productB, Year: 2025, Month: nil, TargetAmount: 80, CurrentAmount: 7},
	}

	forward := Aggregate(productGoals, vendorGoals, nil)

	reversedPG := []ProductGoal{productGoals[1], productGoals[0]}
	reversedVG := []VendorGoal{vendorGoals[2], vendorGoals[1], vendorGoals[0]}
	backward := Aggregate(reversedPG, reversedVG, nil)

	if !reflect.DeepEqual(forward, backward) {
		t.Fatalf("aggregation depends on input order:\n%+v\n%+v", forward, backward)
	}
}

func TestAggregateVendorScopeByID(t *testing.T) {
	product := uuid.New()
	mine := uuid.New()
	other := uuid.New()

	rows := Aggregate(nil, []VendorGoal{
		{VendorID: &mine, ProductID: product, Year: 2026, Month: intPtr(1), TargetAmount: 10},
		{VendorID: &other, ProductID: product, Year: 2026, Month: intPtr(2), TargetAmount: 20},
	}, &Scope{VendorID: &mine})

	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Month != 1 {
		t.Fatalf("month = %d, want the scoped vendor's row", rows[0].Month)
	}
}

func TestAggregateVendorScopeNameFallback(t *testing.T) {
	product := uuid.New()
	mine := uuid.New()

	// Legacy rows carry only a name; matching is case-insensitive.
	rows := Aggregate(nil, []VendorGoal{
		{VendorName: "Maria Perez", ProductID: product, Year: 2026, Month: intPtr(1), TargetAmount: 10},
		{VendorName: "Someone Else", ProductID: product, Year: 2026, Month: intPtr(2), TargetAmount: 20},
	}, &Scope{VendorID: &mine, VendorName: "maria perez"})

	if len(rows) != 1 {
		t.Fatalf("rows = %d, want 1", len(rows))
	}
	if rows[0].Month != 1 {
		t.Fatalf("month = %d, want the name-matched row", rows[0].Month)
	}
}

func TestAggregateNilScopeReturnsAllRows(t *testing.T) {
	product := uuid.New()
	vendor := uuid.New()

	rows := Aggregate(nil, []VendorGoal{
		{VendorID: &vendor, ProductID: product, Year: 2026, Month: intPtr(1), TargetAmount: 10},
		{VendorName: "legacy only", ProductID: product, Year: 2026, Month: intPtr(2), TargetAmount: 20},
	}, nil)

	if len(rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(rows))
	}
}
