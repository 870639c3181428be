package report

import (
	"business-analysis/internal/metrics"
	"business-analysis/internal/model"
	"business-analysis/internal/trend"
)

// KeyBlock is a headline group of ratios with the trend of a representative series.
type KeyBlock struct {
	Values map[string]float64
	Trend  trend.Result
}

// KeyMetrics is the compact overview used by the query front end.
type KeyMetrics struct {
	Profitability   KeyBlock
	Efficiency      KeyBlock
	Growth          KeyBlock
	FinancialHealth KeyBlock
}

var keyMetricLayout = []struct {
	keys        []metrics.Key
	trendMetric string
}{
	{[]metrics.Key{metrics.OperatingMargin, metrics.ROI}, "operating_margin"},
	{[]metrics.Key{metrics.AssetTurnover, metrics.InventoryTurnover}, "asset_turnover"},
	{[]metrics.Key{metrics.RevenueGrowth, metrics.ProfitGrowth}, "revenue"},
	{[]metrics.Key{metrics.CurrentRatio, metrics.DebtRatio}, "equity_ratio"},
}

// KeyMetrics computes the overview blocks for s.
func (c *Composer) KeyMetrics(s model.Series, snap *metrics.Snapshot) (*KeyMetrics, error) {
	blocks := make([]KeyBlock, len(keyMetricLayout))
	for i, l := range keyMetricLayout {
		vals := make(map[string]float64, len(l.keys))
		for _, k := range l.keys {
			v, err := snap.Get(k)
			if err != nil {
				return nil, err
			}
			vals[k.Name] = v
		}
		tr, err := c.trends.Trend(s, l.trendMetric)
		if err != nil {
			return nil, err
		}
		blocks[i] = KeyBlock{Values: vals, Trend: tr}
	}
	return &KeyMetrics{
		Profitability:   blocks[0],
		Efficiency:      blocks[1],
		Growth:          blocks[2],
		FinancialHealth: blocks[3],
	}, nil
}
