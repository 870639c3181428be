package assess

import (
	"business-analysis/internal/metrics"
	"business-analysis/internal/model"
)

// Comparator is the predicate a rule applies between a metric and its threshold.
type Comparator string

const (
	Below Comparator = "<"
	Above Comparator = ">"
)

func (c Comparator) holds(v, threshold float64) bool {
	switch c {
	case Below:
		return v < threshold
	case Above:
		return v > threshold
	}
	return false
}

// Rule maps one metric range to a finding.
type Rule struct {
	Metric      metrics.Key
	Comparator  Comparator
	Threshold   float64
	Category    string
	Severity    model.Severity
	Description string
}

// Evaluate applies rules in order and returns the findings that fire, in rule order.
// A rule whose metric is unassessable (NaN) is skipped. A metric missing from the
// snapshot fails the whole evaluation with a *model.MissingMetricError.
func Evaluate(kind model.FindingKind, rules []Rule, snap *metrics.Snapshot) ([]model.Finding, error) {
	out := make([]model.Finding, 0, len(rules))
	for _, r := range rules {
		v, err := snap.Get(r.Metric)
		if err != nil {
			return nil, err
		}
		if !metrics.Assessable(v) {
			continue
		}
		if !r.Comparator.holds(v, r.Threshold) {
			continue
		}
		out = append(out, model.Finding{
			Kind:        kind,
			Category:    r.Category,
			Severity:    r.Severity,
			Description: r.Description,
			Metric:      r.Metric.Name,
			Value:       v,
			Threshold:   r.Threshold,
		})
	}
	return out, nil
}

var RiskRules = []Rule{
	{
		Metric: metrics.OperatingMargin, Comparator: Below, Threshold: 10,
		Category: "profitability risk", Severity: model.SeverityHigh,
		Description: "Operating margin is low; profitability needs to improve.",
	},
	{
		Metric: metrics.CurrentRatio, Comparator: Below, Threshold: 1.5,
		Category: "liquidity risk", Severity: model.SeverityMedium,
		Description: "Current ratio is low; watch short-term ability to pay.",
	},
	{
		Metric: metrics.RevenueGrowth, Comparator: Below, Threshold: 5,
		Category: "growth risk", Severity: model.SeverityMedium,
		Description: "Revenue growth is weak; competitive position needs strengthening.",
	},
	{
		Metric: metrics.DebtRatio, Comparator: Above, Threshold: 0.7,
		Category: "leverage risk", Severity: model.SeverityHigh,
		Description: "Debt ratio is high; the capital structure needs improvement.",
	},
}

var OpportunityRules = []Rule{
	{
		Metric: metrics.RevenueGrowth, Comparator: Above, Threshold: 15,
		Category: "growth opportunity", Severity: model.SeverityHigh,
		Description: "Strong revenue growth supports expanding the business.",
	},
	{
		Metric: metrics.AssetTurnover, Comparator: Below, Threshold: 2,
		Category: "efficiency opportunity", Severity: model.SeverityMedium,
		Description: "Better asset utilization leaves room to lift profitability.",
	},
	{
		Metric: metrics.OperatingCashRatio, Comparator: Above, Threshold: 0.15,
		Category: "investment opportunity", Severity: model.SeverityHigh,
		Description: "Ample operating cash flow can fund strategic investment.",
	},
}

var RecommendationRules = []Rule{
	{
		Metric: metrics.OperatingMargin, Comparator: Below, Threshold: 15,
		Category: "profitability improvement", Severity: model.SeverityHigh,
		Description: "Review the cost structure and develop higher value-added services.",
	},
	{
		Metric: metrics.AssetTurnover, Comparator: Below, Threshold: 2,
		Category: "efficiency improvement", Severity: model.SeverityMedium,
		Description: "Put idle assets to use or dispose of assets that are not needed.",
	},
	{
		Metric: metrics.RevenueGrowth, Comparator: Below, Threshold: 10,
		Category: "growth strategy", Severity: model.SeverityHigh,
		Description: "Open new markets and deepen relationships with existing customers.",
	},
}

// Risks evaluates RiskRules against snap.
func Risks(snap *metrics.Snapshot) ([]model.Finding, error) {
	return Evaluate(model.KindRisk, RiskRules, snap)
}

// Opportunities evaluates OpportunityRules against snap.
func Opportunities(snap *metrics.Snapshot) ([]model.Finding, error) {
	return Evaluate(model.KindOpportunity, OpportunityRules, snap)
}

// Recommendations evaluates RecommendationRules against snap. They are not
// deduplicated against risks.
func Recommendations(snap *metrics.Snapshot) ([]model.Finding, error) {
	return Evaluate(model.KindRecommendation, RecommendationRules, snap)
}
