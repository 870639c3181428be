package report

import (
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"business-analysis/internal/assess"
	"business-analysis/internal/kpi"
	"business-analysis/internal/metrics"
	"business-analysis/internal/model"
	"business-analysis/internal/trend"
)

// Composer orchestrates metrics, trends, rule evaluation and KPIs into a Report.
type Composer struct {
	calc   *metrics.Calculator
	trends *trend.Analyzer

	// Parallel evaluates independent sections concurrently. Output is identical to
	// sequential evaluation.
	Parallel bool
	Logger   zerolog.Logger
}

func NewComposer(calc *metrics.Calculator) *Composer {
	return &Composer{
		calc:   calc,
		trends: trend.NewAnalyzer(calc),
		Logger: zerolog.Nop(),
	}
}

func (c *Composer) Calculator() *metrics.Calculator { return c.calc }
func (c *Composer) Trends() *trend.Analyzer         { return c.trends }

// Generate computes the snapshot for s and composes the full report. It fails only
// when no snapshot can be computed; section failures are recorded in Report.Errors.
func (c *Composer) Generate(s model.Series) (*Report, error) {
	snap, err := c.calc.Compute(s)
	if err != nil {
		return nil, err
	}
	return c.Compose(s, snap), nil
}

type sectionTask struct {
	name string
	run  func() error
}

// Compose builds a report from an already computed snapshot.
func (c *Composer) Compose(s model.Series, snap *metrics.Snapshot) *Report {
	r := &Report{Trends: make(map[string]trend.Detailed, len(trend.Standard))}
	latest, _ := s.Latest()

	trendSlots := make([]*trend.Detailed, len(trend.Standard))

	tasks := []sectionTask{
		{SectionProfitability, func() (err error) {
			r.FinancialAnalysis.Profitability, err = c.AnalyzeProfitability(s, snap)
			return err
		}},
		{SectionEfficiency, func() (err error) {
			r.FinancialAnalysis.Efficiency, err = c.AnalyzeEfficiency(s, snap)
			return err
		}},
		{SectionLiquidity, func() (err error) {
			r.FinancialAnalysis.Liquidity, err = c.AnalyzeLiquidity(s, snap)
			return err
		}},
		{SectionSolvency, func() (err error) {
			r.FinancialAnalysis.Solvency, err = c.AnalyzeSolvency(s, snap)
			return err
		}},
	}
	for i, n := range trend.Standard {
		i, n := i, n
		tasks = append(tasks, sectionTask{SectionTrendsPrefix + n.Name, func() error {
			d, err := c.trends.DetailedTrend(s, n.Metric)
			if err != nil {
				return err
			}
			trendSlots[i] = &d
			return nil
		}})
	}
	tasks = append(tasks,
		sectionTask{SectionRisks, func() (err error) {
			r.Risks, err = assess.Risks(snap)
			return err
		}},
		sectionTask{SectionOpportunities, func() (err error) {
			r.Opportunities, err = assess.Opportunities(snap)
			return err
		}},
		sectionTask{SectionKPIs, func() error {
			k, err := kpi.Compute(snap, latest)
			if err != nil {
				return err
			}
			r.KPIs = &k
			return nil
		}},
		sectionTask{SectionRecommendations, func() (err error) {
			r.Recommendations, err = assess.Recommendations(snap)
			return err
		}},
	)

	errs := c.run(tasks)

	for i, n := range trend.Standard {
		if trendSlots[i] != nil {
			r.Trends[n.Name] = *trendSlots[i]
		}
	}
	for i, err := range errs {
		if err == nil {
			continue
		}
		c.Logger.Debug().Err(err).Str("section", tasks[i].name).Msg("report section failed")
		r.Errors = append(r.Errors, newSectionError(tasks[i].name, err))
	}

	sum, err := c.summarize(s, snap, r)
	if err != nil {
		c.Logger.Debug().Err(err).Str("section", SectionSummary).Msg("report section failed")
		r.Errors = append(r.Errors, newSectionError(SectionSummary, err))
	} else {
		r.Summary = sum
	}
	return r
}

// run executes tasks and returns their errors by position.
func (c *Composer) run(tasks []sectionTask) []error {
	errs := make([]error, len(tasks))
	if !c.Parallel {
		for i, t := range tasks {
			errs[i] = t.run()
		}
		return errs
	}

	var g errgroup.Group
	for i, t := range tasks {
		i, t := i, t
		g.Go(func() error {
			errs[i] = t.run()
			return nil
		})
	}
	_ = g.Wait()
	return errs
}

func (c *Composer) analyze(s model.Series, snap *metrics.Snapshot, cat metrics.Category, trendMetric string, scale assess.Scale) (*Analysis, error) {
	vals := snap.Category(cat)
	if vals == nil {
		return nil, &model.MissingMetricError{Category: string(cat), Name: "*"}
	}
	tr, err := c.trends.Trend(s, trendMetric)
	if err != nil {
		return nil, err
	}
	assessment, err := scale.Assess(snap)
	if err != nil {
		return nil, err
	}
	return &Analysis{Metrics: vals, Trend: tr, Assessment: assessment}, nil
}

func (c *Composer) AnalyzeProfitability(s model.Series, snap *metrics.Snapshot) (*Analysis, error) {
	return c.analyze(s, snap, metrics.Profitability, "operating_margin", assess.ProfitabilityScale)
}

func (c *Composer) AnalyzeEfficiency(s model.Series, snap *metrics.Snapshot) (*Analysis, error) {
	return c.analyze(s, snap, metrics.Efficiency, "asset_turnover", assess.EfficiencyScale)
}

func (c *Composer) AnalyzeLiquidity(s model.Series, snap *metrics.Snapshot) (*Analysis, error) {
	return c.analyze(s, snap, metrics.Liquidity, "current_ratio", assess.LiquidityScale)
}

func (c *Composer) AnalyzeSolvency(s model.Series, snap *metrics.Snapshot) (*Analysis, error) {
	return c.analyze(s, snap, metrics.Solvency, "equity_ratio", assess.SolvencyScale)
}

func (c *Composer) summarize(s model.Series, snap *metrics.Snapshot, r *Report) (*Summary, error) {
	if len(s) == 0 {
		return nil, &model.InsufficientDataError{Op: "summary", Need: 1, Have: 0}
	}
	margin, err := snap.Get(metrics.OperatingMargin)
	if err != nil {
		return nil, err
	}
	growth, err := snap.Get(metrics.RevenueGrowth)
	if err != nil {
		return nil, err
	}
	first := s[0]
	latest, _ := s.Latest()

	sum := &Summary{
		Periods:             len(s),
		FirstPeriod:         first.Period,
		LatestPeriod:        latest.Period,
		LatestRevenue:       latest.Revenue,
		OperatingMargin:     margin,
		RevenueGrowth:       growth,
		RiskCount:           len(r.Risks),
		OpportunityCount:    len(r.Opportunities),
		RecommendationCount: len(r.Recommendations),
		Health:              HealthUnknown,
	}
	if r.Failed(SectionRisks) {
		return sum, nil
	}

	high := 0
	for _, f := range r.Risks {
		if f.Severity.Rank() > sum.HighestRiskLevel.Rank() {
			sum.HighestRiskLevel = f.Severity
		}
		if f.Severity == model.SeverityHigh {
			high++
		}
	}
	switch {
	case high == 0:
		sum.Health = HealthHealthy
	case high == 1:
		sum.Health = HealthWatch
	default:
		sum.Health = HealthCritical
	}
	return sum, nil
}
