package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"business-analysis/internal/api/models"
	"business-analysis/internal/chart"
	"business-analysis/internal/config"
	"business-analysis/internal/data"
	"business-analysis/internal/logging"
	"business-analysis/internal/metrics"
	"business-analysis/internal/model"
	"business-analysis/internal/query"
	"business-analysis/internal/report"

	"github.com/rs/zerolog"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	switch os.Args[1] {
	case "report":
		cmdReport(os.Args[2:])
	case "metrics":
		cmdMetrics(os.Args[2:])
	case "trends":
		cmdTrends(os.Args[2:])
	case "risks":
		cmdRisks(os.Args[2:])
	case "query":
		cmdQuery(os.Args[2:])
	case "chart":
		cmdChart(os.Args[2:])
	case "ledger":
		cmdLedger(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("usage:")
	fmt.Println("  cli report  --data data/financial_data.csv [--config config.yaml] [--periods 12]")
	fmt.Println("  cli metrics --data data/financial_data.csv")
	fmt.Println("  cli trends  --data data/financial_data.csv")
	fmt.Println("  cli risks   --data data/financial_data.csv")
	fmt.Println("  cli query   --data data/financial_data.csv --q \"収益性はどうですか\"")
	fmt.Println("  cli chart   --data data/financial_data.csv --metric operating_margin --out results/margin.html")
	fmt.Println("  cli ledger  --data data/financial_data.csv --out results/ratios.csv")
	fmt.Println("")
	fmt.Println("notes:")
	fmt.Println("  - --data accepts CSV or JSON ({\"records\": [...]}) record files")
	fmt.Println("  - unassessable values print as null")
}

// common holds the flags every subcommand shares.
type common struct {
	dataPath *string
	cfgPath  *string
	periods  *int
	verbose  *bool
}

func commonFlags(fs *flag.FlagSet) *common {
	return &common{
		dataPath: fs.String("data", "data/financial_data.csv", "Path to a CSV or JSON record file"),
		cfgPath:  fs.String("config", "", "Path to YAML config (optional)"),
		periods:  fs.Int("periods", 0, "Periods per year override (0 = config value)"),
		verbose:  fs.Bool("v", false, "Log failed report sections"),
	}
}

// load reads the series and builds a composer from config and flags.
func (c *common) load() (model.Series, *report.Composer) {
	cfg, err := config.Load(*c.cfgPath)
	if err != nil {
		panic(err)
	}
	if *c.periods != 0 {
		cfg.Analysis.PeriodsPerYear = *c.periods
	}

	level := cfg.Log.Level
	if *c.verbose {
		level = "debug"
	}
	ctx := logging.Setup("analysis-cli", level, os.Stderr)

	calc, err := metrics.New(cfg.Analysis.PeriodsPerYear)
	if err != nil {
		panic(err)
	}
	series, err := data.LoadRecords(*c.dataPath)
	if err != nil {
		panic(err)
	}

	composer := report.NewComposer(calc)
	composer.Parallel = cfg.Analysis.Parallel
	composer.Logger = *zerolog.Ctx(ctx)
	return series, composer
}

func cmdReport(args []string) {
	fs := flag.NewFlagSet("report", flag.ExitOnError)
	c := commonFlags(fs)
	_ = fs.Parse(args)

	series, composer := c.load()
	rep, err := composer.Generate(series)
	if err != nil {
		panic(err)
	}
	printJSON(models.FromReport(rep))
	if len(rep.Errors) > 0 {
		fmt.Fprintf(os.Stderr, "%d section(s) could not be computed\n", len(rep.Errors))
	}
}

func cmdMetrics(args []string) {
	fs := flag.NewFlagSet("metrics", flag.ExitOnError)
	c := commonFlags(fs)
	_ = fs.Parse(args)

	series, composer := c.load()
	snap, err := composer.Calculator().Compute(series)
	if err != nil {
		panic(err)
	}
	printJSON(models.MetricsResponse{Metrics: models.FromSnapshot(snap)})
}

func cmdTrends(args []string) {
	fs := flag.NewFlagSet("trends", flag.ExitOnError)
	c := commonFlags(fs)
	_ = fs.Parse(args)

	series, composer := c.load()
	trends, err := composer.Trends().Comprehensive(series)
	if err != nil {
		fmt.Fprintf(os.Stderr, "some trends could not be computed: %v\n", err)
	}
	printJSON(models.TrendsResponse{Trends: models.FromTrends(trends)})
}

func cmdRisks(args []string) {
	fs := flag.NewFlagSet("risks", flag.ExitOnError)
	c := commonFlags(fs)
	_ = fs.Parse(args)

	series, composer := c.load()
	rep, err := composer.Generate(series)
	if err != nil {
		panic(err)
	}

	fmt.Printf("%-8s %-24s %-22s %-12s %-10s\n", "level", "category", "metric", "value", "threshold")
	for _, f := range rep.Risks {
		fmt.Printf("%-8s %-24s %-22s %-12.2f %-10.2f\n", f.Severity, f.Category, f.Metric, f.Value, f.Threshold)
	}
	if rep.Failed(report.SectionRisks) {
		fmt.Println("risks could not be assessed")
	} else if len(rep.Risks) == 0 {
		fmt.Println("no risks identified")
	}
}

func cmdQuery(args []string) {
	fs := flag.NewFlagSet("query", flag.ExitOnError)
	c := commonFlags(fs)
	q := fs.String("q", "", "Question, e.g. \"リスクは？\" or \"how is liquidity\"")
	_ = fs.Parse(args)

	if *q == "" {
		fmt.Println("--q is required")
		os.Exit(2)
	}

	series, composer := c.load()
	svc := query.NewService(composer, nil)
	ans, err := svc.Answer(series, *q)
	if err != nil {
		panic(err)
	}
	if se := ans.SectionError(); se != nil {
		fmt.Fprintf(os.Stderr, "%s: %s (%s)\n", se.Section, se.Message, se.Code)
		os.Exit(1)
	}
	printJSON(models.QueryResponse{
		Question:   ans.Question,
		Normalized: ans.Normalized,
		Section:    string(ans.Section),
		Data:       models.SectionPayload(ans.Section, ans.Result),
	})
}

func cmdChart(args []string) {
	fs := flag.NewFlagSet("chart", flag.ExitOnError)
	c := commonFlags(fs)
	metric := fs.String("metric", "revenue", "Record field or ratio to plot")
	outPath := fs.String("out", "results/chart.html", "Output HTML path")
	_ = fs.Parse(args)

	series, composer := c.load()
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	f, err := os.Create(*outPath)
	if err != nil {
		panic(err)
	}
	defer f.Close()

	if err := chart.RenderTrend(f, composer.Calculator(), series, *metric); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %s chart for %d periods to %s\n", *metric, len(series), *outPath)
}

func cmdLedger(args []string) {
	fs := flag.NewFlagSet("ledger", flag.ExitOnError)
	c := commonFlags(fs)
	outPath := fs.String("out", "results/ratios.csv", "Output CSV path (- for stdout)")
	_ = fs.Parse(args)

	series, composer := c.load()
	ledger := composer.Calculator().Ledger(series)

	if *outPath == "-" {
		if err := metrics.WriteLedgerCSV(os.Stdout, ledger); err != nil {
			panic(err)
		}
		return
	}
	// ensure output dir exists
	if err := os.MkdirAll(filepath.Dir(*outPath), 0o755); err != nil {
		panic(err)
	}
	if err := metrics.WriteLedgerCSVFile(*outPath, ledger); err != nil {
		panic(err)
	}
	fmt.Printf("Wrote %d rows to %s\n", len(ledger), *outPath)
}

func printJSON(v any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		panic(err)
	}
}
