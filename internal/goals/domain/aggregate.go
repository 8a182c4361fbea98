// Package domain implements the goal aggregation engine: merging
// business-level product goals with vendor-level goals into unified
// progress and gap metrics per product and period.
package domain

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

// QuarterlyMonth is the bucket value for goals without a month. A quarterly
// goal is a distinct period, never merged into a monthly bucket.
const QuarterlyMonth = 0

// ProductGoal is a business-level sales target for a product and period.
type ProductGoal struct {
	ProductID         uuid.UUID
	Year              int
	Month             *int
	TotalTargetAmount float64
	CurrentAmount     float64
}

// VendorGoal is a sales target assigned to one vendor for a product and
// period. VendorID may be nil on rows that predate id-based references;
// those carry only VendorName.
type VendorGoal struct {
	VendorID      *uuid.UUID
	VendorName    string
	ProductID     uuid.UUID
	Year          int
	Month         *int
	TargetAmount  float64
	CurrentAmount float64
}

// PeriodKey identifies one aggregation bucket. Month is 1..12 for monthly
// goals and QuarterlyMonth for goals without a month.
type PeriodKey struct {
	ProductID uuid.UUID
	Year      int
	Month     int
}

func keyOf(productID uuid.UUID, year int, month *int) PeriodKey {
	m := QuarterlyMonth
	if month != nil {
		m = *month
	}
	return PeriodKey{ProductID: productID, Year: year, Month: m}
}

// Scope restricts aggregation output to rows involving one vendor. Matching
// is by id; rows whose goals lack a vendor id fall back to case-insensitive
// name comparison. The name path is a compatibility shim for legacy data.
type Scope struct {
	VendorID   *uuid.UUID
	VendorName string
}

// AggregatedRow is one output row of the engine, carrying both goal levels
// plus derived ratios for a (product, period) key.
type AggregatedRow struct {
	ProductID uuid.UUID `json:"productId"`
	Year      int       `json:"year"`
	Month     int       `json:"month"`

	VendorTarget    float64 `json:"vendorTarget"`
	VendorCurrent   float64 `json:"vendorCurrent"`
	BusinessTarget  float64 `json:"businessTarget"`
	BusinessCurrent float64 `json:"businessCurrent"`

	// GapTarget may be negative when vendor goals exceed the business
	// ceiling; it is surfaced, not clamped.
	GapTarget float64 `json:"gapTarget"`

	BusinessProgress float64 `json:"businessProgress"`
	VendorCoverage   float64 `json:"vendorCoverage"`
	VendorProgress   float64 `json:"vendorProgress"`

	HasBusinessGoal bool `json:"hasBusinessGoal"`
	VendorGoalCount int  `json:"vendorGoalCount"`
}

// ratio guards division by zero, degrading to 0 instead of NaN or Inf.
func ratio(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

func (s *Scope) matches(g VendorGoal) bool {
	if s == nil {
		return true
	}
	if s.VendorID != nil && g.VendorID != nil {
		return *s.VendorID == *g.VendorID
	}
	if s.VendorName == "" || g.VendorName == "" {
		return false
	}
	return strings.EqualFold(s.VendorName, g.VendorName)
}

// Aggregate merges business and vendor goals into one row per (product,
// period) key over the union of keys from both inputs. A business goal that
// was never set degrades to the vendor sums. When scope is non-nil, only
// rows containing at least one goal for that vendor are returned. Output
// order is deterministic regardless of input order.
func Aggregate(productGoals []ProductGoal, vendorGoals []VendorGoal, scope *Scope) []AggregatedRow {
	business := make(map[PeriodKey]ProductGoal, len(productGoals))
	for _, pg := range productGoals {
		business[keyOf(pg.ProductID, pg.Year, pg.Month)] = pg
	}

	grouped := make(map[PeriodKey][]VendorGoal)
	for _, g := range vendorGoals {
		k := keyOf(g.ProductID, g.Year, g.Month)
		grouped[k] = append(grouped[k], g)
	}

	keys := make(map[PeriodKey]struct{}, len(business)+len(grouped))
	for k := range business {
		keys[k] = struct{}{}
	}
	for k := range grouped {
		keys[k] = struct{}{}
	}

	rows := make([]AggregatedRow, 0, len(keys))
	for k := range keys {
		goals := grouped[k]

		if scope != nil {
			matched := false
			for _, g := range goals {
				if scope.matches(g) {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}

		var vendorTarget, vendorCurrent float64
		for _, g := range goals {
			vendorTarget += g.TargetAmount
			vendorCurrent += g.CurrentAmount
		}

		businessTarget := vendorTarget
		businessCurrent := vendorCurrent
		pg, hasBusiness := business[k]
		if hasBusiness {
			businessTarget = pg.TotalTargetAmount
			businessCurrent = pg.CurrentAmount
		}

		rows = append(rows, AggregatedRow{
			ProductID:        k.ProductID,
			Year:             k.Year,
			Month:            k.Month,
			VendorTarget:     vendorTarget,
			VendorCurrent:    vendorCurrent,
			BusinessTarget:   businessTarget,
			BusinessCurrent:  businessCurrent,
			GapTarget:        businessTarget - vendorTarget,
			BusinessProgress: ratio(businessCurrent, businessTarget),
			VendorCoverage:   ratio(vendorTarget, businessTarget),
			VendorProgress:   ratio(vendorCurrent, vendorTarget),
			HasBusinessGoal:  hasBusiness,
			VendorGoalCount:  len(goals),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if a.ProductID != b.ProductID {
			return a.ProductID.String() < b.ProductID.String()
		}
		if a.Year != b.Year {
			return a.Year < b.Year
		}
		return a.Month < b.Month
	})
	return rows
}
