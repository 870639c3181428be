package models

import "time"

// Unassessable values (zero denominators, absent inputs, too little history) are
// serialized as null throughout.

// ReportResponse wraps one generated report.
type ReportResponse struct {
	ID          string     `json:"id"`
	Dataset     string     `json:"dataset,omitempty"`
	GeneratedAt time.Time  `json:"generated_at"`
	Report      ReportBody `json:"report"`
}

// ReportBody is the wire form of a report.
type ReportBody struct {
	Summary           *Summary                 `json:"summary"`
	FinancialAnalysis FinancialAnalysis        `json:"financial_analysis"`
	Trends            map[string]DetailedTrend `json:"trends"`
	Risks             []Risk                   `json:"risks"`
	Opportunities     []Opportunity            `json:"opportunities"`
	KPIs              *KPIs                    `json:"kpis"`
	Recommendations   []Recommendation         `json:"recommendations"`
	Errors            []SectionError           `json:"errors,omitempty"`
}

type Summary struct {
	Periods             int      `json:"periods"`
	FirstPeriod         string   `json:"first_period"`
	LatestPeriod        string   `json:"latest_period"`
	LatestRevenue       *float64 `json:"latest_revenue"`
	OperatingMargin     *float64 `json:"operating_margin"`
	RevenueGrowth       *float64 `json:"revenue_growth"`
	RiskCount           int      `json:"risk_count"`
	OpportunityCount    int      `json:"opportunity_count"`
	RecommendationCount int      `json:"recommendation_count"`
	HighestRiskLevel    string   `json:"highest_risk_level,omitempty"`
	Health              string   `json:"health"`
}

type FinancialAnalysis struct {
	Profitability *CategoryAnalysis `json:"profitability"`
	Efficiency    *CategoryAnalysis `json:"efficiency"`
	Liquidity     *CategoryAnalysis `json:"liquidity"`
	Solvency      *CategoryAnalysis `json:"solvency"`
}

// CategoryAnalysis bundles a category's metrics, trend and assessment.
type CategoryAnalysis struct {
	Metrics    map[string]*float64 `json:"metrics"`
	Trend      Trend               `json:"trend"`
	Assessment string              `json:"assessment"`
}

type Trend struct {
	Direction   string   `json:"direction"`
	Magnitude   *float64 `json:"magnitude"`
	Consistency *float64 `json:"consistency"`
}

type DetailedTrend struct {
	Trend
	CurrentValue       *float64 `json:"current_value"`
	Average            *float64 `json:"average"`
	Min                *float64 `json:"min"`
	Max                *float64 `json:"max"`
	StandardDeviation  *float64 `json:"standard_deviation"`
	YearOverYearChange *float64 `json:"year_over_year_change"`
	Observations       int      `json:"observations"`
}

type Risk struct {
	Category    string   `json:"category"`
	Level       string   `json:"level"`
	Description string   `json:"description"`
	Metric      string   `json:"metric"`
	Value       *float64 `json:"value"`
	Threshold   float64  `json:"threshold"`
}

type Opportunity struct {
	Category    string   `json:"category"`
	Potential   string   `json:"potential"`
	Description string   `json:"description"`
	Metric      string   `json:"metric"`
	Value       *float64 `json:"value"`
	Threshold   float64  `json:"threshold"`
}

type Recommendation struct {
	Category   string   `json:"category"`
	Priority   string   `json:"priority"`
	Suggestion string   `json:"suggestion"`
	Metric     string   `json:"metric"`
	Value      *float64 `json:"value"`
	Threshold  float64  `json:"threshold"`
}

type KPIs struct {
	Financial   FinancialKPIs   `json:"financial_kpis"`
	Operational OperationalKPIs `json:"operational_kpis"`
	Market      MarketKPIs      `json:"market_kpis"`
}

type FinancialKPIs struct {
	RevenuePerEmployee  *float64 `json:"revenue_per_employee"`
	ProfitPerEmployee   *float64 `json:"profit_per_employee"`
	RDRatio             *float64 `json:"rd_ratio"`
	MarketingEfficiency *float64 `json:"marketing_efficiency"`
}

type OperationalKPIs struct {
	InventoryDays   *float64 `json:"inventory_days"`
	ReceivablesDays *float64 `json:"receivables_days"`
	AssetEfficiency *float64 `json:"asset_efficiency"`
}

type MarketKPIs struct {
	MarketShare       *float64 `json:"market_share"`
	MarketShareGrowth *float64 `json:"market_share_growth"`
}

// SectionError marks a report section that could not be computed.
type SectionError struct {
	Section string `json:"section"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MetricsResponse is the snapshot: category → ratio → value.
type MetricsResponse struct {
	Dataset string                         `json:"dataset,omitempty"`
	Metrics map[string]map[string]*float64 `json:"metrics"`
}

type TrendsResponse struct {
	Dataset string                   `json:"dataset,omitempty"`
	Trends  map[string]DetailedTrend `json:"trends"`
	Errors  []SectionError           `json:"errors,omitempty"`
}

type KeyBlock struct {
	Values map[string]*float64 `json:"values"`
	Trend  Trend               `json:"trend"`
}

type KeyMetrics struct {
	Profitability   KeyBlock `json:"profitability"`
	Efficiency      KeyBlock `json:"efficiency"`
	Growth          KeyBlock `json:"growth"`
	FinancialHealth KeyBlock `json:"financial_health"`
}

// QueryResponse answers a free-text question with one report section.
type QueryResponse struct {
	Question   string      `json:"question"`
	Normalized string      `json:"normalized"`
	Section    string      `json:"section"`
	Data       interface{} `json:"data"`
}

// StatusResponse mirrors the readiness of the analysis service.
type StatusResponse struct {
	Initialized       bool          `json:"initialized"`
	DatasetLoaded     bool          `json:"dataset_loaded"`
	MetricsCalculated bool          `json:"metrics_calculated"`
	PeriodsPerYear    int           `json:"periods_per_year"`
	Datasets          []DatasetInfo `json:"datasets"`
}

// DatasetInfo describes a loaded dataset.
type DatasetInfo struct {
	ID           string `json:"id"`
	File         string `json:"file"`
	Periods      int    `json:"periods"`
	FirstPeriod  string `json:"first_period,omitempty"`
	LatestPeriod string `json:"latest_period,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail contains error information
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}
