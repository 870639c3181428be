package model

import "math"

// PeriodRecord is one reporting period of financial observations for a single organization.
// Monetary fields are in the reporting currency; MarketShare is a percentage.
// A NaN field means the observation is explicitly absent.
type PeriodRecord struct {
	Period string

	Revenue            float64
	OperatingProfit    float64
	TotalAssets        float64
	Inventory          float64
	Receivables        float64
	Equity             float64
	Debt               float64
	CurrentAssets      float64
	CurrentLiabilities float64
	OperatingCashFlow  float64
	Employees          float64
	MarketShare        float64
	RDExpense          float64
	MarketingExpense   float64
}

// Field names a raw numeric column of a PeriodRecord.
type Field string

const (
	FieldRevenue            Field = "revenue"
	FieldOperatingProfit    Field = "operating_profit"
	FieldTotalAssets        Field = "total_assets"
	FieldInventory          Field = "inventory"
	FieldReceivables        Field = "receivables"
	FieldEquity             Field = "equity"
	FieldDebt               Field = "debt"
	FieldCurrentAssets      Field = "current_assets"
	FieldCurrentLiabilities Field = "current_liabilities"
	FieldOperatingCashFlow  Field = "operating_cash_flow"
	FieldEmployees          Field = "employees"
	FieldMarketShare        Field = "market_share"
	FieldRDExpense          Field = "rd_expense"
	FieldMarketingExpense   Field = "marketing_expense"
)

// Fields lists every numeric column in CSV/ledger order.
var Fields = []Field{
	FieldRevenue,
	FieldOperatingProfit,
	FieldTotalAssets,
	FieldInventory,
	FieldReceivables,
	FieldEquity,
	FieldDebt,
	FieldCurrentAssets,
	FieldCurrentLiabilities,
	FieldOperatingCashFlow,
	FieldEmployees,
	FieldMarketShare,
	FieldRDExpense,
	FieldMarketingExpense,
}

// Value returns the value of field f. ok is false for an unknown field.
func (r PeriodRecord) Value(f Field) (v float64, ok bool) {
	switch f {
	case FieldRevenue:
		return r.Revenue, true
	case FieldOperatingProfit:
		return r.OperatingProfit, true
	case FieldTotalAssets:
		return r.TotalAssets, true
	case FieldInventory:
		return r.Inventory, true
	case FieldReceivables:
		return r.Receivables, true
	case FieldEquity:
		return r.Equity, true
	case FieldDebt:
		return r.Debt, true
	case FieldCurrentAssets:
		return r.CurrentAssets, true
	case FieldCurrentLiabilities:
		return r.CurrentLiabilities, true
	case FieldOperatingCashFlow:
		return r.OperatingCashFlow, true
	case FieldEmployees:
		return r.Employees, true
	case FieldMarketShare:
		return r.MarketShare, true
	case FieldRDExpense:
		return r.RDExpense, true
	case FieldMarketingExpense:
		return r.MarketingExpense, true
	}
	return math.NaN(), false
}

// Set assigns v to field f. It reports false for an unknown field.
func (r *PeriodRecord) Set(f Field, v float64) bool {
	switch f {
	case FieldRevenue:
		r.Revenue = v
	case FieldOperatingProfit:
		r.OperatingProfit = v
	case FieldTotalAssets:
		r.TotalAssets = v
	case FieldInventory:
		r.Inventory = v
	case FieldReceivables:
		r.Receivables = v
	case FieldEquity:
		r.Equity = v
	case FieldDebt:
		r.Debt = v
	case FieldCurrentAssets:
		r.CurrentAssets = v
	case FieldCurrentLiabilities:
		r.CurrentLiabilities = v
	case FieldOperatingCashFlow:
		r.OperatingCashFlow = v
	case FieldEmployees:
		r.Employees = v
	case FieldMarketShare:
		r.MarketShare = v
	case FieldRDExpense:
		r.RDExpense = v
	case FieldMarketingExpense:
		r.MarketingExpense = v
	default:
		return false
	}
	return true
}

// Series is a chronologically ordered sequence of period records.
// Callers must not mutate a Series after handing it to the engine.
type Series []PeriodRecord

// Latest returns the last record. ok is false for an empty series.
func (s Series) Latest() (PeriodRecord, bool) {
	if len(s) == 0 {
		return PeriodRecord{}, false
	}
	return s[len(s)-1], true
}

// Previous returns the record before the latest one. ok is false with fewer than two records.
func (s Series) Previous() (PeriodRecord, bool) {
	if len(s) < 2 {
		return PeriodRecord{}, false
	}
	return s[len(s)-2], true
}

// Column extracts the raw values of field f across the series.
func (s Series) Column(f Field) []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		v, _ := r.Value(f)
		out[i] = v
	}
	return out
}
