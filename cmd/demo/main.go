package main

import (
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"time"

	"business-analysis/internal/config"
	"business-analysis/internal/data"
	"business-analysis/internal/metrics"
	"business-analysis/internal/model"
	"business-analysis/internal/report"
)

// Demo:
// - Generate a synthetic monthly series with growth and seasonality
// - Optionally write it as CSV so the API and CLI can load it
// - Generate the report and print the headline figures
func main() {
	cfgPath := flag.String("config", "", "Path to YAML config (optional)")
	n := flag.Int("n", 24, "Number of months to generate")
	outCSV := flag.String("out", "", "Optional path to write the series as CSV (e.g. data/financial_data.csv)")
	flag.Parse()

	ppy := metrics.DefaultPeriodsPerYear
	parallel := false
	if *cfgPath != "" {
		cfg, err := config.Load(*cfgPath)
		if err != nil {
			panic(err)
		}
		ppy = cfg.Analysis.PeriodsPerYear
		parallel = cfg.Analysis.Parallel
	}

	series := synthesize(*n, time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC))

	if *outCSV != "" {
		if err := os.MkdirAll(filepath.Dir(*outCSV), 0o755); err != nil {
			panic(err)
		}
		f, err := os.Create(*outCSV)
		if err != nil {
			panic(err)
		}
		if err := data.WriteRecordsCSV(f, series); err != nil {
			panic(err)
		}
		if err := f.Close(); err != nil {
			panic(err)
		}
		fmt.Printf("Wrote CSV: %s\n\n", *outCSV)
	}

	calc, err := metrics.New(ppy)
	if err != nil {
		panic(err)
	}
	composer := report.NewComposer(calc)
	composer.Parallel = parallel

	rep, err := composer.Generate(series)
	if err != nil {
		panic(err)
	}

	fmt.Printf("Generated %d periods (%s to %s)\n", len(series), series[0].Period, series[len(series)-1].Period)
	if s := rep.Summary; s != nil {
		fmt.Printf("Health=%s  risks=%d  opportunities=%d  recommendations=%d\n\n",
			s.Health, s.RiskCount, s.OpportunityCount, s.RecommendationCount)
	}

	for _, name := range []string{"revenue", "profitability", "efficiency", "growth", "financial_stability"} {
		d, ok := rep.Trends[name]
		if !ok {
			fmt.Printf("%-20s unavailable\n", name)
			continue
		}
		fmt.Printf("%-20s %-5s current=%10.2f  avg=%10.2f  yoy=%s\n",
			name, d.Direction, d.Current, d.Average, pct(d.YearOverYearChange))
	}

	fmt.Println()
	for _, f := range rep.Risks {
		fmt.Printf("risk  %-6s %-22s %s (%s=%.2f)\n", f.Severity, f.Category, f.Description, f.Metric, f.Value)
	}
	for _, f := range rep.Opportunities {
		fmt.Printf("opp   %-6s %-22s %s (%s=%.2f)\n", f.Severity, f.Category, f.Description, f.Metric, f.Value)
	}
	for _, f := range rep.Recommendations {
		fmt.Printf("rec   %-6s %-22s %s\n", f.Severity, f.Category, f.Description)
	}
	for _, e := range rep.Errors {
		fmt.Printf("error %-32s %s\n", e.Section, e.Message)
	}
}

// synthesize builds n monthly records: revenue grows ~1.5% a month with a yearly
// seasonal swing, balances move with revenue.
func synthesize(n int, start time.Time) model.Series {
	s := make(model.Series, 0, n)
	for i := 0; i < n; i++ {
		season := 1 + 0.08*math.Sin(2*math.Pi*float64(i)/12)
		revenue := round(1000 * math.Pow(1.015, float64(i)) * season)
		s = append(s, model.PeriodRecord{
			Period:             start.AddDate(0, i, 0).Format("2006-01"),
			Revenue:            revenue,
			OperatingProfit:    round(revenue * (0.09 + 0.002*float64(i%12))),
			TotalAssets:        round(5200 + 40*float64(i)),
			Inventory:          round(revenue * 0.9),
			Receivables:        round(revenue * 0.6),
			Equity:             round(2300 + 25*float64(i)),
			Debt:               round(2900 + 15*float64(i)),
			CurrentAssets:      round(revenue * 1.8),
			CurrentLiabilities: round(revenue * 1.3),
			OperatingCashFlow:  round(revenue * 0.12),
			Employees:          float64(50 + i/3),
			MarketShare:        math.Round((8+0.1*float64(i))*100) / 100,
			RDExpense:          round(revenue * 0.05),
			MarketingExpense:   round(revenue * 0.07),
		})
	}
	return s
}

func round(v float64) float64 {
	return math.Round(v*100) / 100
}

func pct(v float64) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	return fmt.Sprintf("%+.1f%%", v)
}
