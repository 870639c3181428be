package kpi

import (
	"business-analysis/internal/metrics"
	"business-analysis/internal/model"
)

// DaysPerYear converts turnover ratios into days.
const DaysPerYear = 365.0

type Financial struct {
	RevenuePerEmployee  float64
	ProfitPerEmployee   float64
	RDRatio             float64
	MarketingEfficiency float64
}

type Operational struct {
	InventoryDays   float64
	ReceivablesDays float64
	AssetEfficiency float64
}

type Market struct {
	MarketShare       float64
	MarketShareGrowth float64
}

// KPIs groups the derived indicators. NaN marks an unassessable value.
type KPIs struct {
	Financial   Financial
	Operational Operational
	Market      Market
}

// Compute derives KPIs from snap and the latest record.
func Compute(snap *metrics.Snapshot, latest model.PeriodRecord) (KPIs, error) {
	g := getter{snap: snap}

	k := KPIs{
		Financial: Financial{
			RevenuePerEmployee:  g.get(metrics.EmployeeProductivity),
			ProfitPerEmployee:   metrics.SafeDiv(latest.OperatingProfit, latest.Employees),
			RDRatio:             g.get(metrics.RDIntensity),
			MarketingEfficiency: g.get(metrics.MarketingEfficiency),
		},
		Operational: Operational{
			InventoryDays:   metrics.SafeDiv(DaysPerYear, g.get(metrics.InventoryTurnover)),
			ReceivablesDays: metrics.SafeDiv(DaysPerYear, g.get(metrics.ReceivablesTurnover)),
			AssetEfficiency: g.get(metrics.AssetTurnover),
		},
		Market: Market{
			MarketShare:       latest.MarketShare,
			MarketShareGrowth: g.get(metrics.MarketShareGrowth),
		},
	}
	if g.err != nil {
		return KPIs{}, g.err
	}
	return k, nil
}

// getter records the first missing metric so Compute can read every key in one pass.
type getter struct {
	snap *metrics.Snapshot
	err  error
}

func (g *getter) get(k metrics.Key) float64 {
	v, err := g.snap.Get(k)
	if err != nil && g.err == nil {
		g.err = err
	}
	return v
}
