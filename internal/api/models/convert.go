package models

import (
	"math"
	"strings"

	"business-analysis/internal/kpi"
	"business-analysis/internal/metrics"
	"business-analysis/internal/model"
	"business-analysis/internal/query"
	"business-analysis/internal/report"
	"business-analysis/internal/trend"
)

// Num converts the engine's NaN sentinel into null.
func Num(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func NumMap(m map[string]float64) map[string]*float64 {
	if m == nil {
		return nil
	}
	out := make(map[string]*float64, len(m))
	for k, v := range m {
		out[k] = Num(v)
	}
	return out
}

func FromSnapshot(snap *metrics.Snapshot) map[string]map[string]*float64 {
	out := make(map[string]map[string]*float64)
	for cat, vals := range snap.All() {
		out[string(cat)] = NumMap(vals)
	}
	return out
}

func FromTrend(t trend.Result) Trend {
	return Trend{
		Direction:   string(t.Direction),
		Magnitude:   Num(t.Magnitude),
		Consistency: Num(t.Consistency),
	}
}

func FromDetailed(d trend.Detailed) DetailedTrend {
	return DetailedTrend{
		Trend:              FromTrend(d.Result),
		CurrentValue:       Num(d.Current),
		Average:            Num(d.Average),
		Min:                Num(d.Min),
		Max:                Num(d.Max),
		StandardDeviation:  Num(d.StdDev),
		YearOverYearChange: Num(d.YearOverYearChange),
		Observations:       d.Observations,
	}
}

func FromTrends(m map[string]trend.Detailed) map[string]DetailedTrend {
	out := make(map[string]DetailedTrend, len(m))
	for k, d := range m {
		out[k] = FromDetailed(d)
	}
	return out
}

func FromAnalysis(a *report.Analysis) *CategoryAnalysis {
	if a == nil {
		return nil
	}
	return &CategoryAnalysis{
		Metrics:    NumMap(a.Metrics),
		Trend:      FromTrend(a.Trend),
		Assessment: a.Assessment,
	}
}

func FromRisks(fs []model.Finding) []Risk {
	if fs == nil {
		return nil
	}
	out := make([]Risk, 0, len(fs))
	for _, f := range fs {
		out = append(out, Risk{
			Category:    f.Category,
			Level:       string(f.Severity),
			Description: f.Description,
			Metric:      f.Metric,
			Value:       Num(f.Value),
			Threshold:   f.Threshold,
		})
	}
	return out
}

func FromOpportunities(fs []model.Finding) []Opportunity {
	if fs == nil {
		return nil
	}
	out := make([]Opportunity, 0, len(fs))
	for _, f := range fs {
		out = append(out, Opportunity{
			Category:    f.Category,
			Potential:   string(f.Severity),
			Description: f.Description,
			Metric:      f.Metric,
			Value:       Num(f.Value),
			Threshold:   f.Threshold,
		})
	}
	return out
}

func FromRecommendations(fs []model.Finding) []Recommendation {
	if fs == nil {
		return nil
	}
	out := make([]Recommendation, 0, len(fs))
	for _, f := range fs {
		out = append(out, Recommendation{
			Category:   f.Category,
			Priority:   string(f.Severity),
			Suggestion: f.Description,
			Metric:     f.Metric,
			Value:      Num(f.Value),
			Threshold:  f.Threshold,
		})
	}
	return out
}

func FromKPIs(k *kpi.KPIs) *KPIs {
	if k == nil {
		return nil
	}
	return &KPIs{
		Financial: FinancialKPIs{
			RevenuePerEmployee:  Num(k.Financial.RevenuePerEmployee),
			ProfitPerEmployee:   Num(k.Financial.ProfitPerEmployee),
			RDRatio:             Num(k.Financial.RDRatio),
			MarketingEfficiency: Num(k.Financial.MarketingEfficiency),
		},
		Operational: OperationalKPIs{
			InventoryDays:   Num(k.Operational.InventoryDays),
			ReceivablesDays: Num(k.Operational.ReceivablesDays),
			AssetEfficiency: Num(k.Operational.AssetEfficiency),
		},
		Market: MarketKPIs{
			MarketShare:       Num(k.Market.MarketShare),
			MarketShareGrowth: Num(k.Market.MarketShareGrowth),
		},
	}
}

func FromSummary(s *report.Summary) *Summary {
	if s == nil {
		return nil
	}
	return &Summary{
		Periods:             s.Periods,
		FirstPeriod:         s.FirstPeriod,
		LatestPeriod:        s.LatestPeriod,
		LatestRevenue:       Num(s.LatestRevenue),
		OperatingMargin:     Num(s.OperatingMargin),
		RevenueGrowth:       Num(s.RevenueGrowth),
		RiskCount:           s.RiskCount,
		OpportunityCount:    s.OpportunityCount,
		RecommendationCount: s.RecommendationCount,
		HighestRiskLevel:    string(s.HighestRiskLevel),
		Health:              s.Health,
	}
}

func FromSectionErrors(errs []report.SectionError) []SectionError {
	if len(errs) == 0 {
		return nil
	}
	out := make([]SectionError, 0, len(errs))
	for _, e := range errs {
		out = append(out, SectionError{Section: e.Section, Code: e.Code, Message: e.Message})
	}
	return out
}

// FromReport converts a report to its wire form.
func FromReport(r *report.Report) ReportBody {
	return ReportBody{
		Summary: FromSummary(r.Summary),
		FinancialAnalysis: FinancialAnalysis{
			Profitability: FromAnalysis(r.FinancialAnalysis.Profitability),
			Efficiency:    FromAnalysis(r.FinancialAnalysis.Efficiency),
			Liquidity:     FromAnalysis(r.FinancialAnalysis.Liquidity),
			Solvency:      FromAnalysis(r.FinancialAnalysis.Solvency),
		},
		Trends:          FromTrends(r.Trends),
		Risks:           FromRisks(r.Risks),
		Opportunities:   FromOpportunities(r.Opportunities),
		KPIs:            FromKPIs(r.KPIs),
		Recommendations: FromRecommendations(r.Recommendations),
		Errors:          FromSectionErrors(r.Errors),
	}
}

func fromKeyBlock(b report.KeyBlock) KeyBlock {
	return KeyBlock{Values: NumMap(b.Values), Trend: FromTrend(b.Trend)}
}

func FromKeyMetrics(k *report.KeyMetrics) *KeyMetrics {
	if k == nil {
		return nil
	}
	return &KeyMetrics{
		Profitability:   fromKeyBlock(k.Profitability),
		Efficiency:      fromKeyBlock(k.Efficiency),
		Growth:          fromKeyBlock(k.Growth),
		FinancialHealth: fromKeyBlock(k.FinancialHealth),
	}
}

// trendErrors picks the trend section errors out of a report.
func trendErrors(r *report.Report) []SectionError {
	var out []SectionError
	for _, e := range FromSectionErrors(r.Errors) {
		if strings.HasPrefix(e.Section, report.SectionTrendsPrefix) {
			out = append(out, e)
		}
	}
	return out
}

// FromTrendsReport builds the trends-only response for r.
func FromTrendsReport(dataset string, r *report.Report) TrendsResponse {
	return TrendsResponse{Dataset: dataset, Trends: FromTrends(r.Trends), Errors: trendErrors(r)}
}

// SectionPayload selects the wire data answering a routed question.
func SectionPayload(sec query.Section, res *query.Result) interface{} {
	r := res.Report
	switch sec {
	case query.SectionProfitability:
		return FromAnalysis(r.FinancialAnalysis.Profitability)
	case query.SectionEfficiency:
		return FromAnalysis(r.FinancialAnalysis.Efficiency)
	case query.SectionLiquidity:
		return FromAnalysis(r.FinancialAnalysis.Liquidity)
	case query.SectionSolvency:
		return FromAnalysis(r.FinancialAnalysis.Solvency)
	case query.SectionGrowth:
		out := map[string]interface{}{
			"metrics": NumMap(res.Snapshot.Category(metrics.Growth)),
		}
		if d, ok := r.Trends["growth"]; ok {
			out["trend"] = FromDetailed(d)
		}
		if d, ok := r.Trends["revenue"]; ok {
			out["revenue_trend"] = FromDetailed(d)
		}
		return out
	case query.SectionTrends:
		return FromTrendsReport("", r)
	case query.SectionRisks:
		return FromRisks(r.Risks)
	case query.SectionOpportunities:
		return FromOpportunities(r.Opportunities)
	case query.SectionKPIs:
		return FromKPIs(r.KPIs)
	case query.SectionRecommendations:
		return FromRecommendations(r.Recommendations)
	default:
		return map[string]interface{}{
			"summary":     FromSummary(r.Summary),
			"key_metrics": FromKeyMetrics(res.KeyMetrics),
		}
	}
}

// FromDatasetInfo describes a dataset for listings.
func FromDatasetInfo(id, file string, s model.Series) DatasetInfo {
	info := DatasetInfo{ID: id, File: file, Periods: len(s)}
	if len(s) > 0 {
		info.FirstPeriod = s[0].Period
		info.LatestPeriod = s[len(s)-1].Period
	}
	return info
}
