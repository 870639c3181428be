package query

import (
	"business-analysis/internal/data"
	"business-analysis/internal/metrics"
	"business-analysis/internal/model"
	"business-analysis/internal/report"
)

// Result bundles everything computed for one series. It is shared through the cache
// and must not be modified.
type Result struct {
	Snapshot   *metrics.Snapshot
	Report     *report.Report
	KeyMetrics *report.KeyMetrics
	// KeyMetricsErr is set when the overview could not be built.
	KeyMetricsErr error
}

// Answer is a routed question together with the analysis it draws on.
type Answer struct {
	Question   string
	Normalized string
	Section    Section
	Result     *Result
}

// Service answers questions about record series, reusing results for identical series.
type Service struct {
	composer *report.Composer
	cache    *data.Cache[*Result]
}

// NewService creates a service; cache may be nil to disable caching.
func NewService(composer *report.Composer, cache *data.Cache[*Result]) *Service {
	return &Service{composer: composer, cache: cache}
}

func (s *Service) Composer() *report.Composer { return s.composer }

// Analyze computes (or returns the cached) result for series.
func (s *Service) Analyze(series model.Series) (*Result, error) {
	key := data.SeriesKey(series, s.composer.Calculator().PeriodsPerYear)
	if res, ok := s.cache.Get(key); ok {
		return res, nil
	}

	snap, err := s.composer.Calculator().Compute(series)
	if err != nil {
		return nil, err
	}
	res := &Result{
		Snapshot: snap,
		Report:   s.composer.Compose(series, snap),
	}
	res.KeyMetrics, res.KeyMetricsErr = s.composer.KeyMetrics(series, snap)

	s.cache.Set(key, res)
	return res, nil
}

// Answer routes question to a section and attaches the analysis of series.
func (s *Service) Answer(series model.Series, question string) (*Answer, error) {
	res, err := s.Analyze(series)
	if err != nil {
		return nil, err
	}
	return &Answer{
		Question:   question,
		Normalized: Normalize(question),
		Section:    Route(question),
		Result:     res,
	}, nil
}

// SectionError returns the report error that prevents answering, if any. Trend and
// growth answers degrade to the trends that could be computed instead.
func (a *Answer) SectionError() *report.SectionError {
	for i, e := range a.Result.Report.Errors {
		if sectionCovers(a.Section, e.Section) {
			return &a.Result.Report.Errors[i]
		}
	}
	return nil
}

func sectionCovers(sec Section, reportSection string) bool {
	switch sec {
	case SectionProfitability:
		return reportSection == report.SectionProfitability
	case SectionEfficiency:
		return reportSection == report.SectionEfficiency
	case SectionLiquidity:
		return reportSection == report.SectionLiquidity
	case SectionSolvency:
		return reportSection == report.SectionSolvency
	case SectionRisks:
		return reportSection == report.SectionRisks
	case SectionOpportunities:
		return reportSection == report.SectionOpportunities
	case SectionKPIs:
		return reportSection == report.SectionKPIs
	case SectionRecommendations:
		return reportSection == report.SectionRecommendations
	case SectionSummary:
		return reportSection == report.SectionSummary
	}
	return false
}
