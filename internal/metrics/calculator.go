package metrics

import (
	"errors"
	"fmt"
	"math"

	"business-analysis/internal/model"
)

// DefaultPeriodsPerYear assumes monthly records.
const DefaultPeriodsPerYear = 12

// ValidPeriodsPerYear lists the cadences the calculator accepts.
var ValidPeriodsPerYear = []int{1, 2, 4, 12, 13, 26, 52, 365}

// ValidatePeriodsPerYear rejects cadences that do not correspond to a calendar.
func ValidatePeriodsPerYear(n int) error {
	for _, v := range ValidPeriodsPerYear {
		if n == v {
			return nil
		}
	}
	return fmt.Errorf("periods_per_year must be one of %v, got %d", ValidPeriodsPerYear, n)
}

// Calculator derives every ratio consumed elsewhere in the engine.
type Calculator struct {
	PeriodsPerYear int
}

func New(periodsPerYear int) (*Calculator, error) {
	if err := ValidatePeriodsPerYear(periodsPerYear); err != nil {
		return nil, err
	}
	return &Calculator{PeriodsPerYear: periodsPerYear}, nil
}

// Compute builds the snapshot for the latest record of s.
func (c *Calculator) Compute(s model.Series) (*Snapshot, error) {
	if len(s) == 0 {
		return nil, &model.InsufficientDataError{Op: "compute metrics", Need: 1, Have: 0}
	}
	vals := make(map[Key]float64, len(Keys))
	for _, k := range Keys {
		vals[k] = c.at(s, len(s)-1, k)
	}
	return NewSnapshot(vals), nil
}

// ErrUnknownSeries is wrapped by Series for names that are neither a record field nor a ratio.
var ErrUnknownSeries = errors.New("unknown series")

// Series returns the per-period values for name, which may be a raw record field
// ("revenue") or a ratio ("operating_margin"). Ratios that need a prior period are NaN
// at index 0.
func (c *Calculator) Series(s model.Series, name string) ([]float64, error) {
	f := model.Field(name)
	if _, ok := (model.PeriodRecord{}).Value(f); ok {
		return s.Column(f), nil
	}
	k, ok := Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownSeries, name)
	}
	out := make([]float64, len(s))
	for i := range s {
		out[i] = c.at(s, i, k)
	}
	return out, nil
}

// at evaluates ratio k using record i and, for growth ratios, record i-1.
func (c *Calculator) at(s model.Series, i int, k Key) float64 {
	r := s[i]
	annual := float64(c.PeriodsPerYear)
	switch k {
	case OperatingMargin:
		return SafeDiv(r.OperatingProfit, r.Revenue) * 100
	case ROI:
		return SafeDiv(r.OperatingProfit*annual, r.TotalAssets) * 100
	case AssetTurnover:
		return SafeDiv(r.Revenue*annual, r.TotalAssets)
	case InventoryTurnover:
		return SafeDiv(r.Revenue*annual, r.Inventory)
	case ReceivablesTurnover:
		return SafeDiv(r.Revenue*annual, r.Receivables)
	case RevenueGrowth:
		return growthAt(s, i, model.FieldRevenue)
	case ProfitGrowth:
		return growthAt(s, i, model.FieldOperatingProfit)
	case CurrentRatio:
		return SafeDiv(r.CurrentAssets, r.CurrentLiabilities)
	case DebtRatio:
		return SafeDiv(r.Debt, r.TotalAssets)
	case EquityRatio:
		return SafeDiv(r.Equity, r.TotalAssets)
	case OperatingCashRatio:
		return SafeDiv(r.OperatingCashFlow, r.Revenue)
	case EmployeeProductivity:
		return SafeDiv(r.Revenue, r.Employees)
	case RDIntensity:
		return SafeDiv(r.RDExpense, r.Revenue) * 100
	case MarketingEfficiency:
		return SafeDiv(r.Revenue, r.MarketingExpense)
	case MarketShare:
		return r.MarketShare
	case MarketShareGrowth:
		return growthAt(s, i, model.FieldMarketShare)
	}
	return math.NaN()
}

func growthAt(s model.Series, i int, f model.Field) float64 {
	if i < 1 {
		return math.NaN()
	}
	cur, _ := s[i].Value(f)
	prev, _ := s[i-1].Value(f)
	return GrowthRate(cur, prev)
}

// GrowthRate is the percentage change from prior to current; NaN when prior is zero.
func GrowthRate(current, prior float64) float64 {
	return SafeDiv(current-prior, prior) * 100
}

// SafeDiv divides without panicking or producing infinities: a zero or non-finite
// operand yields NaN.
func SafeDiv(numerator, denominator float64) float64 {
	if denominator == 0 || !Assessable(numerator) || !Assessable(denominator) {
		return math.NaN()
	}
	return numerator / denominator
}
