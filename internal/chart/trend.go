package chart

import (
	"fmt"
	"io"
	"math"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"

	"business-analysis/internal/metrics"
	"business-analysis/internal/model"
	"business-analysis/internal/trend"
)

// missing is how echarts expects a gap in a line series.
const missing = "-"

// TrendLine builds a line chart of metric across s, with the series mean as a second line.
func TrendLine(calc *metrics.Calculator, s model.Series, metric string) (*charts.Line, error) {
	vals, err := calc.Series(s, metric)
	if err != nil {
		return nil, err
	}
	if len(vals) == 0 {
		return nil, &model.InsufficientDataError{Op: "chart " + metric, Need: 1, Have: 0}
	}

	st := trend.Describe(vals)
	xAxis := make([]string, 0, len(s))
	lineData := make([]opts.LineData, 0, len(vals))
	meanData := make([]opts.LineData, 0, len(vals))
	for i, v := range vals {
		xAxis = append(xAxis, s[i].Period)
		lineData = append(lineData, opts.LineData{Value: point(v)})
		meanData = append(meanData, opts.LineData{Value: point(st.Mean)})
	}

	tr := trend.Score(vals)
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: metric,
			Width:     "900px",
			Height:    "400px",
			Theme:     types.ThemeWesteros,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    metric,
			Subtitle: fmt.Sprintf("direction %s, %d periods", tr.Direction, len(vals)),
		}),
	)
	line.SetXAxis(xAxis).
		AddSeries(metric, lineData).
		AddSeries("mean", meanData)
	return line, nil
}

// RenderTrend writes the trend chart for metric as a standalone HTML page.
func RenderTrend(w io.Writer, calc *metrics.Calculator, s model.Series, metric string) error {
	line, err := TrendLine(calc, s, metric)
	if err != nil {
		return err
	}
	return line.Render(w)
}

func point(v float64) any {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return missing
	}
	return v
}
