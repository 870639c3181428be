package report

import (
	"errors"

	"business-analysis/internal/kpi"
	"business-analysis/internal/model"
	"business-analysis/internal/trend"
)

// Section names used in error markers.
const (
	SectionSummary         = "summary"
	SectionProfitability   = "financial_analysis.profitability"
	SectionEfficiency      = "financial_analysis.efficiency"
	SectionLiquidity       = "financial_analysis.liquidity"
	SectionSolvency        = "financial_analysis.solvency"
	SectionTrendsPrefix    = "trends."
	SectionRisks           = "risks"
	SectionOpportunities   = "opportunities"
	SectionKPIs            = "kpis"
	SectionRecommendations = "recommendations"
)

// Error codes shared with the API envelope.
const (
	CodeInsufficientData = "INSUFFICIENT_DATA"
	CodeMissingMetric    = "MISSING_METRIC"
	CodeInvalidRecord    = "INVALID_RECORD"
	CodeInternal         = "INTERNAL_ERROR"
)

// SectionError marks a report section that could not be composed.
type SectionError struct {
	Section string
	Code    string
	Message string
	Err     error
}

func newSectionError(section string, err error) SectionError {
	return SectionError{Section: section, Code: ErrorCode(err), Message: err.Error(), Err: err}
}

// ErrorCode classifies engine errors for callers that surface them.
func ErrorCode(err error) string {
	var insufficient *model.InsufficientDataError
	var missing *model.MissingMetricError
	var invalid *model.InvalidRecordError
	switch {
	case errors.As(err, &insufficient):
		return CodeInsufficientData
	case errors.As(err, &missing):
		return CodeMissingMetric
	case errors.As(err, &invalid):
		return CodeInvalidRecord
	default:
		return CodeInternal
	}
}

// Analysis bundles one category's ratios with its trend and qualitative assessment.
type Analysis struct {
	Metrics    map[string]float64
	Trend      trend.Result
	Assessment string
}

type FinancialAnalysis struct {
	Profitability *Analysis
	Efficiency    *Analysis
	Liquidity     *Analysis
	Solvency      *Analysis
}

const (
	HealthHealthy  = "healthy"
	HealthWatch    = "watch"
	HealthCritical = "critical"
	HealthUnknown  = "unknown"
)

// Summary is the headline view of a report.
type Summary struct {
	Periods             int
	FirstPeriod         string
	LatestPeriod        string
	LatestRevenue       float64
	OperatingMargin     float64
	RevenueGrowth       float64
	RiskCount           int
	OpportunityCount    int
	RecommendationCount int
	HighestRiskLevel    model.Severity
	Health              string
}

// Report is the read-only result of one analysis. Sections that failed are nil and
// listed in Errors.
type Report struct {
	Summary           *Summary
	FinancialAnalysis FinancialAnalysis
	Trends            map[string]trend.Detailed
	Risks             []model.Finding
	Opportunities     []model.Finding
	KPIs              *kpi.KPIs
	Recommendations   []model.Finding
	Errors            []SectionError
}

// Failed reports whether section has an error marker.
func (r *Report) Failed(section string) bool {
	for _, e := range r.Errors {
		if e.Section == section {
			return true
		}
	}
	return false
}
