package assess

import (
	"business-analysis/internal/metrics"
)

// Unassessable is the assessment given when the metric is the NaN sentinel.
const Unassessable = "unassessable"

// Tier labels values strictly above Above.
type Tier struct {
	Above float64
	Label string
}

// Scale is a descending list of tiers with a fallback label.
type Scale struct {
	Metric   metrics.Key
	Tiers    []Tier
	Fallback string
}

// Classify returns the label of the first tier v exceeds.
func (sc Scale) Classify(v float64) string {
	if !metrics.Assessable(v) {
		return Unassessable
	}
	for _, t := range sc.Tiers {
		if v > t.Above {
			return t.Label
		}
	}
	return sc.Fallback
}

// Assess reads the scale's metric from snap and classifies it.
func (sc Scale) Assess(snap *metrics.Snapshot) (string, error) {
	v, err := snap.Get(sc.Metric)
	if err != nil {
		return "", err
	}
	return sc.Classify(v), nil
}

var (
	LiquidityScale = Scale{
		Metric:   metrics.CurrentRatio,
		Tiers:    []Tier{{Above: 2, Label: "ample"}, {Above: 1.5, Label: "adequate"}},
		Fallback: "needs improvement",
	}
	SolvencyScale = Scale{
		Metric:   metrics.EquityRatio,
		Tiers:    []Tier{{Above: 0.5, Label: "strong"}, {Above: 0.3, Label: "stable"}},
		Fallback: "needs strengthening",
	}
	ProfitabilityScale = Scale{
		Metric:   metrics.OperatingMargin,
		Tiers:    []Tier{{Above: 15, Label: "strong"}, {Above: 10, Label: "adequate"}},
		Fallback: "needs improvement",
	}
	EfficiencyScale = Scale{
		Metric:   metrics.AssetTurnover,
		Tiers:    []Tier{{Above: 2, Label: "efficient"}, {Above: 1, Label: "adequate"}},
		Fallback: "needs improvement",
	}
)

func Liquidity(snap *metrics.Snapshot) (string, error)     { return LiquidityScale.Assess(snap) }
func Solvency(snap *metrics.Snapshot) (string, error)      { return SolvencyScale.Assess(snap) }
func Profitability(snap *metrics.Snapshot) (string, error) { return ProfitabilityScale.Assess(snap) }
func Efficiency(snap *metrics.Snapshot) (string, error)    { return EfficiencyScale.Assess(snap) }
