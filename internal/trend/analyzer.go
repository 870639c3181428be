package trend

import (
	"errors"
	"fmt"
	"math"

	"business-analysis/internal/metrics"
	"business-analysis/internal/model"
)

type Direction string

const (
	Up   Direction = "up"
	Down Direction = "down"
	Flat Direction = "flat"
)

// Result describes how a series moved from its first to its last observation.
// Magnitude is the absolute change in the series' own unit.
// Consistency is the share of step-to-step changes that agree with Direction, in [0,1];
// it is NaN when the series has fewer than two observations.
type Result struct {
	Direction   Direction
	Magnitude   float64
	Consistency float64
}

// Detailed adds descriptive statistics and the year-over-year change (NaN when the
// series is shorter than one year).
type Detailed struct {
	Result
	Current            float64
	Average            float64
	Min                float64
	Max                float64
	StdDev             float64
	YearOverYearChange float64
	Observations       int
}

// Named binds a trend report name to the series it examines.
type Named struct {
	Name   string
	Metric string
}

// Standard is the fixed set of trend reports in a comprehensive analysis.
var Standard = []Named{
	{Name: "revenue", Metric: "revenue"},
	{Name: "profitability", Metric: "operating_margin"},
	{Name: "efficiency", Metric: "asset_turnover"},
	{Name: "growth", Metric: "revenue_growth"},
	{Name: "financial_stability", Metric: "equity_ratio"},
}

// Analyzer scores trends over raw fields and derived ratios.
type Analyzer struct {
	calc *metrics.Calculator
}

func NewAnalyzer(calc *metrics.Calculator) *Analyzer {
	return &Analyzer{calc: calc}
}

// Trend scores the finite observations of metric across s. It never fails for a
// known metric, whatever the series length.
func (a *Analyzer) Trend(s model.Series, metric string) (Result, error) {
	vals, err := a.values(s, metric)
	if err != nil {
		return Result{}, err
	}
	return Score(vals), nil
}

// DetailedTrend wraps Trend with statistics over the full series.
func (a *Analyzer) DetailedTrend(s model.Series, metric string) (Detailed, error) {
	vals, err := a.values(s, metric)
	if err != nil {
		return Detailed{}, err
	}
	finite := Finite(vals)
	if len(finite) == 0 {
		return Detailed{}, &model.InsufficientDataError{Op: "trend " + metric, Need: 1, Have: 0}
	}

	st := Describe(vals)
	return Detailed{
		Result:             Score(vals),
		Current:            vals[len(vals)-1],
		Average:            st.Mean,
		Min:                st.Min,
		Max:                st.Max,
		StdDev:             st.StdDev,
		YearOverYearChange: YearOverYear(vals, a.calc.PeriodsPerYear),
		Observations:       st.Count,
	}, nil
}

// Comprehensive evaluates every Standard trend. Entries that fail are omitted from the
// map and reported through the joined error.
func (a *Analyzer) Comprehensive(s model.Series) (map[string]Detailed, error) {
	out := make(map[string]Detailed, len(Standard))
	var errs []error
	for _, n := range Standard {
		d, err := a.DetailedTrend(s, n.Metric)
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", n.Name, err))
			continue
		}
		out[n.Name] = d
	}
	return out, errors.Join(errs...)
}

func (a *Analyzer) values(s model.Series, metric string) ([]float64, error) {
	vals, err := a.calc.Series(s, metric)
	if errors.Is(err, metrics.ErrUnknownSeries) {
		return nil, &model.MissingMetricError{Name: metric}
	}
	return vals, err
}

// Score computes direction, magnitude and consistency from the finite values of vals.
func Score(vals []float64) Result {
	finite := Finite(vals)
	if len(finite) < 2 {
		return Result{Direction: Flat, Magnitude: 0, Consistency: math.NaN()}
	}

	first := finite[0]
	last := finite[len(finite)-1]
	dir := directionOf(first, last)

	agree := 0
	for i := 1; i < len(finite); i++ {
		if directionOf(finite[i-1], finite[i]) == dir {
			agree++
		}
	}

	mag := math.Abs(last - first)
	if dir == Flat {
		mag = 0
	}
	return Result{
		Direction:   dir,
		Magnitude:   mag,
		Consistency: float64(agree) / float64(len(finite)-1),
	}
}

func directionOf(from, to float64) Direction {
	switch {
	case nearlyEqual(from, to):
		return Flat
	case to > from:
		return Up
	default:
		return Down
	}
}

// YearOverYear compares the last value with the one periodsPerYear positions earlier,
// as a percentage. It is NaN when the series is shorter than periodsPerYear or either
// value is unusable.
func YearOverYear(vals []float64, periodsPerYear int) float64 {
	n := len(vals)
	if periodsPerYear <= 0 || n == 0 {
		return math.NaN()
	}
	idx := n - periodsPerYear
	if idx < 0 {
		return math.NaN()
	}
	return metrics.GrowthRate(vals[n-1], vals[idx])
}
