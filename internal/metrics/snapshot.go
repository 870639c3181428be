package metrics

import (
	"math"

	"business-analysis/internal/model"
)

// Category groups related ratios.
type Category string

const (
	Profitability Category = "profitability"
	Efficiency    Category = "efficiency"
	Growth        Category = "growth"
	Liquidity     Category = "liquidity"
	Solvency      Category = "solvency"
	Cashflow      Category = "cashflow"
	Operations    Category = "operations"
	Market        Category = "market"
)

// Categories in report order.
var Categories = []Category{Profitability, Efficiency, Growth, Liquidity, Solvency, Cashflow, Operations, Market}

// Key addresses one ratio inside a snapshot.
type Key struct {
	Category Category
	Name     string
}

func (k Key) String() string { return string(k.Category) + "." + k.Name }

var (
	OperatingMargin = Key{Profitability, "operating_margin"}
	ROI             = Key{Profitability, "roi"}

	AssetTurnover       = Key{Efficiency, "asset_turnover"}
	InventoryTurnover   = Key{Efficiency, "inventory_turnover"}
	ReceivablesTurnover = Key{Efficiency, "receivables_turnover"}

	RevenueGrowth = Key{Growth, "revenue_growth"}
	ProfitGrowth  = Key{Growth, "profit_growth"}

	CurrentRatio = Key{Liquidity, "current_ratio"}

	DebtRatio   = Key{Solvency, "debt_ratio"}
	EquityRatio = Key{Solvency, "equity_ratio"}

	OperatingCashRatio = Key{Cashflow, "operating_cash_ratio"}

	EmployeeProductivity = Key{Operations, "employee_productivity"}
	RDIntensity          = Key{Operations, "rd_intensity"}
	MarketingEfficiency  = Key{Operations, "marketing_efficiency"}

	MarketShare       = Key{Market, "market_share"}
	MarketShareGrowth = Key{Market, "market_share_growth"}
)

// Keys lists every ratio the calculator produces, in category order.
var Keys = []Key{
	OperatingMargin, ROI,
	AssetTurnover, InventoryTurnover, ReceivablesTurnover,
	RevenueGrowth, ProfitGrowth,
	CurrentRatio,
	DebtRatio, EquityRatio,
	OperatingCashRatio,
	EmployeeProductivity, RDIntensity, MarketingEfficiency,
	MarketShare, MarketShareGrowth,
}

// Lookup resolves a bare ratio name such as "current_ratio".
func Lookup(name string) (Key, bool) {
	for _, k := range Keys {
		if k.Name == name {
			return k, true
		}
	}
	return Key{}, false
}

// Snapshot is the immutable set of ratios computed for one series.
// A NaN value is the "unassessable" sentinel; an absent key is a MissingMetricError.
type Snapshot struct {
	values map[Category]map[string]float64
}

// NewSnapshot builds a snapshot from explicit values. Keys not present in vals are absent.
func NewSnapshot(vals map[Key]float64) *Snapshot {
	s := &Snapshot{values: make(map[Category]map[string]float64)}
	for k, v := range vals {
		m, ok := s.values[k.Category]
		if !ok {
			m = make(map[string]float64)
			s.values[k.Category] = m
		}
		m[k.Name] = v
	}
	return s
}

// Get returns the value for k, or a *model.MissingMetricError when k was never computed.
// The value may be NaN.
func (s *Snapshot) Get(k Key) (float64, error) {
	if s != nil {
		if v, ok := s.values[k.Category][k.Name]; ok {
			return v, nil
		}
	}
	return math.NaN(), &model.MissingMetricError{Category: string(k.Category), Name: k.Name}
}

// Has reports whether k is present (possibly as NaN).
func (s *Snapshot) Has(k Key) bool {
	if s == nil {
		return false
	}
	_, ok := s.values[k.Category][k.Name]
	return ok
}

// Category returns a copy of the ratios in c. The result is nil when c is absent.
func (s *Snapshot) Category(c Category) map[string]float64 {
	if s == nil {
		return nil
	}
	m, ok := s.values[c]
	if !ok {
		return nil
	}
	out := make(map[string]float64, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// All returns a copy of every category present, keyed by category name.
func (s *Snapshot) All() map[Category]map[string]float64 {
	out := make(map[Category]map[string]float64)
	for _, c := range Categories {
		if m := s.Category(c); m != nil {
			out[c] = m
		}
	}
	return out
}

// Assessable reports whether v is a usable number rather than the sentinel.
func Assessable(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
