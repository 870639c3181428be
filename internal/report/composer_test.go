package report_test

import (
	"encoding/json"
	"fmt"
	"math"

	"business-analysis/internal/api/models"
	"business-analysis/internal/metrics"
	"business-analysis/internal/model"
	"business-analysis/internal/report"
	"business-analysis/internal/trend"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// rising builds n monthly records with revenue growing by 10 from 100 and a flat
// 8% operating margin.
func rising(n int) model.Series {
	s := make(model.Series, 0, n)
	for i := 0; i < n; i++ {
		revenue := 100 + 10*float64(i)
		s = append(s, model.PeriodRecord{
			Period:             fmt.Sprintf("2023-%02d", i+1),
			Revenue:            revenue,
			OperatingProfit:    revenue * 0.08,
			TotalAssets:        1000,
			Inventory:          100,
			Receivables:        100,
			Equity:             400,
			Debt:               300,
			CurrentAssets:      240,
			CurrentLiabilities: 200,
			OperatingCashFlow:  revenue * 0.1,
			Employees:          20,
			MarketShare:        4,
			RDExpense:          3,
			MarketingExpense:   5,
		})
	}
	return s
}

func wire(r *report.Report) string {
	raw, err := json.Marshal(models.FromReport(r))
	Expect(err).NotTo(HaveOccurred())
	return string(raw)
}

func newComposer() *report.Composer {
	calc, err := metrics.New(12)
	Expect(err).NotTo(HaveOccurred())
	return report.NewComposer(calc)
}

var _ = Describe("Composer", func() {
	var composer *report.Composer

	BeforeEach(func() {
		composer = newComposer()
	})

	Describe("Generate", func() {
		It("fails only when no metrics can be computed", func() {
			_, err := composer.Generate(nil)
			Expect(err).To(HaveOccurred())
			Expect(report.ErrorCode(err)).To(Equal(report.CodeInsufficientData))
		})

		It("composes every section for a year of history", func() {
			r, err := composer.Generate(rising(13))
			Expect(err).NotTo(HaveOccurred())
			Expect(r.Errors).To(BeEmpty())

			Expect(r.Risks).To(ContainElement(SatisfyAll(
				HaveField("Category", "profitability risk"),
				HaveField("Severity", model.SeverityHigh),
			)))
			Expect(r.Trends).To(HaveLen(5))
			Expect(r.Trends["revenue"].Direction).To(Equal(trend.Up))
			Expect(r.Trends["revenue"].YearOverYearChange).To(BeNumerically("~", (220.0-110.0)/110.0*100, 1e-9))

			Expect(r.FinancialAnalysis.Liquidity.Assessment).To(Equal("needs improvement"))
			Expect(r.FinancialAnalysis.Liquidity.Metrics).To(HaveKeyWithValue("current_ratio", BeNumerically("~", 1.2, 1e-9)))
			Expect(r.FinancialAnalysis.Solvency.Assessment).To(Equal("stable"))
			Expect(r.FinancialAnalysis.Profitability.Assessment).To(Equal("needs improvement"))
			Expect(r.FinancialAnalysis.Profitability.Trend.Direction).To(Equal(trend.Flat))
			Expect(r.KPIs).NotTo(BeNil())

			Expect(r.Summary).NotTo(BeNil())
			Expect(r.Summary.Periods).To(Equal(13))
			Expect(r.Summary.FirstPeriod).To(Equal("2023-01"))
			Expect(r.Summary.LatestPeriod).To(Equal("2023-13"))
			Expect(r.Summary.LatestRevenue).To(Equal(220.0))
			Expect(r.Summary.RiskCount).To(Equal(len(r.Risks)))
			Expect(r.Summary.HighestRiskLevel).To(Equal(model.SeverityHigh))
			Expect(r.Summary.Health).To(Equal(report.HealthWatch))
		})

		It("is idempotent", func() {
			s := rising(13)
			first, err := composer.Generate(s)
			Expect(err).NotTo(HaveOccurred())
			second, err := composer.Generate(s)
			Expect(err).NotTo(HaveOccurred())
			Expect(wire(second)).To(Equal(wire(first)))
		})

		It("produces the same report in parallel mode", func() {
			for _, n := range []int{1, 2, 13, 30} {
				s := rising(n)
				sequential, err := composer.Generate(s)
				Expect(err).NotTo(HaveOccurred())

				parallel := newComposer()
				parallel.Parallel = true
				concurrent, err := parallel.Generate(s)
				Expect(err).NotTo(HaveOccurred())

				Expect(wire(concurrent)).To(Equal(wire(sequential)))
			}
		})

		It("marks only the sections that need more history", func() {
			r, err := composer.Generate(rising(1))
			Expect(err).NotTo(HaveOccurred())

			Expect(r.Errors).To(HaveLen(1))
			Expect(r.Errors[0].Section).To(Equal(report.SectionTrendsPrefix + "growth"))
			Expect(r.Errors[0].Code).To(Equal(report.CodeInsufficientData))
			Expect(r.Trends).NotTo(HaveKey("growth"))
			Expect(r.Trends).To(HaveKey("revenue"))

			Expect(r.Summary).NotTo(BeNil())
			Expect(math.IsNaN(r.Summary.RevenueGrowth)).To(BeTrue())
			Expect(r.Risks).NotTo(ContainElement(HaveField("Category", "growth risk")))
		})
	})

	Describe("Compose", func() {
		It("keeps composing when a snapshot entry is missing", func() {
			s := rising(13)
			snap := metrics.NewSnapshot(map[metrics.Key]float64{
				metrics.OperatingMargin:    8,
				metrics.ROI:                9.6,
				metrics.AssetTurnover:      2.6,
				metrics.RevenueGrowth:      4.8,
				metrics.CurrentRatio:       1.2,
				metrics.EquityRatio:        0.4,
				metrics.OperatingCashRatio: 0.1,
			})

			r := composer.Compose(s, snap)

			Expect(r.Failed(report.SectionRisks)).To(BeTrue())
			Expect(r.Risks).To(BeNil())
			Expect(r.Failed(report.SectionKPIs)).To(BeTrue())
			Expect(r.KPIs).To(BeNil())

			Expect(r.Failed(report.SectionOpportunities)).To(BeFalse())
			Expect(r.Failed(report.SectionRecommendations)).To(BeFalse())
			Expect(r.Failed(report.SectionLiquidity)).To(BeFalse())
			Expect(r.Failed(report.SectionSolvency)).To(BeFalse())
			Expect(r.FinancialAnalysis.Solvency.Assessment).To(Equal("stable"))

			for _, e := range r.Errors {
				Expect(e.Code).To(Equal(report.CodeMissingMetric))
			}

			Expect(r.Summary).NotTo(BeNil())
			Expect(r.Summary.Health).To(Equal(report.HealthUnknown))
		})

		It("fails category analyses with no metrics", func() {
			r := composer.Compose(rising(2), metrics.NewSnapshot(map[metrics.Key]float64{
				metrics.OperatingMargin: 8,
				metrics.RevenueGrowth:   10,
			}))
			Expect(r.Failed(report.SectionLiquidity)).To(BeTrue())
			Expect(r.FinancialAnalysis.Liquidity).To(BeNil())
			Expect(r.Failed(report.SectionProfitability)).To(BeFalse())
		})
	})

	Describe("AnalyzeLiquidity", func() {
		DescribeTable("assesses the current ratio",
			func(current float64, want string) {
				snap := metrics.NewSnapshot(map[metrics.Key]float64{metrics.CurrentRatio: current})
				a, err := composer.AnalyzeLiquidity(rising(3), snap)
				Expect(err).NotTo(HaveOccurred())
				Expect(a.Assessment).To(Equal(want))
				Expect(a.Metrics).To(HaveKeyWithValue("current_ratio", current))
			},
			Entry("low", 1.2, "needs improvement"),
			Entry("high", 2.5, "ample"),
		)
	})

	Describe("KeyMetrics", func() {
		It("builds the four overview blocks", func() {
			s := rising(13)
			snap, err := composer.Calculator().Compute(s)
			Expect(err).NotTo(HaveOccurred())

			k, err := composer.KeyMetrics(s, snap)
			Expect(err).NotTo(HaveOccurred())
			Expect(k.Profitability.Values).To(HaveKey("operating_margin"))
			Expect(k.Profitability.Values).To(HaveKey("roi"))
			Expect(k.Efficiency.Values).To(HaveKey("inventory_turnover"))
			Expect(k.Growth.Trend.Direction).To(Equal(trend.Up))
			Expect(k.FinancialHealth.Values).To(HaveKey("debt_ratio"))
		})
	})
})
