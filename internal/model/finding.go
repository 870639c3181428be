package model

// Severity grades a finding. Keep these values stable; they are part of the JSON output.
type Severity string

const (
	SeverityHigh   Severity = "high"
	SeverityMedium Severity = "medium"
	SeverityLow    Severity = "low"
)

// Rank orders severities for comparisons (high > medium > low).
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// FindingKind distinguishes risks, opportunities and recommendations.
type FindingKind string

const (
	KindRisk           FindingKind = "risk"
	KindOpportunity    FindingKind = "opportunity"
	KindRecommendation FindingKind = "recommendation"
)

// Finding is a categorized, severity-tagged result of a threshold rule.
// Severity is a risk's level, an opportunity's potential, or a recommendation's priority.
type Finding struct {
	Kind        FindingKind
	Category    string
	Severity    Severity
	Description string

	// Metric and Value record which snapshot entry triggered the rule.
	Metric    string
	Value     float64
	Threshold float64
}
