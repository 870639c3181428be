package query_test

import (
	"fmt"
	"time"

	"business-analysis/internal/data"
	"business-analysis/internal/metrics"
	"business-analysis/internal/model"
	"business-analysis/internal/query"
	"business-analysis/internal/report"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func monthly(n int) model.Series {
	s := make(model.Series, 0, n)
	for i := 0; i < n; i++ {
		revenue := 100 + 5*float64(i)
		s = append(s, model.PeriodRecord{
			Period:             fmt.Sprintf("m%02d", i+1),
			Revenue:            revenue,
			OperatingProfit:    revenue * 0.12,
			TotalAssets:        800,
			Inventory:          90,
			Receivables:        70,
			Equity:             350,
			Debt:               250,
			CurrentAssets:      300,
			CurrentLiabilities: 150,
			OperatingCashFlow:  revenue * 0.2,
			Employees:          12,
			MarketShare:        3,
			RDExpense:          2,
			MarketingExpense:   4,
		})
	}
	return s
}

var _ = Describe("Service", func() {
	var composer *report.Composer

	BeforeEach(func() {
		calc, err := metrics.New(12)
		Expect(err).NotTo(HaveOccurred())
		composer = report.NewComposer(calc)
	})

	It("reuses cached results for an identical series", func() {
		svc := query.NewService(composer, data.NewCache[*query.Result](time.Minute))

		first, err := svc.Analyze(monthly(6))
		Expect(err).NotTo(HaveOccurred())
		second, err := svc.Analyze(monthly(6))
		Expect(err).NotTo(HaveOccurred())
		Expect(second).To(BeIdenticalTo(first))

		changed := monthly(6)
		changed[5].Revenue++
		third, err := svc.Analyze(changed)
		Expect(err).NotTo(HaveOccurred())
		Expect(third).NotTo(BeIdenticalTo(first))
	})

	It("recomputes without a cache", func() {
		svc := query.NewService(composer, nil)
		first, err := svc.Analyze(monthly(3))
		Expect(err).NotTo(HaveOccurred())
		second, err := svc.Analyze(monthly(3))
		Expect(err).NotTo(HaveOccurred())
		Expect(second).NotTo(BeIdenticalTo(first))
		Expect(second.KeyMetrics).NotTo(BeNil())
		Expect(second.KeyMetricsErr).NotTo(HaveOccurred())
	})

	It("fails on an empty series", func() {
		svc := query.NewService(composer, nil)
		_, err := svc.Analyze(nil)
		Expect(report.ErrorCode(err)).To(Equal(report.CodeInsufficientData))
	})

	It("routes the question and attaches the analysis", func() {
		svc := query.NewService(composer, nil)
		ans, err := svc.Answer(monthly(13), "　リスクは？")
		Expect(err).NotTo(HaveOccurred())
		Expect(ans.Section).To(Equal(query.SectionRisks))
		Expect(ans.Normalized).To(Equal("リスクは?"))
		Expect(ans.Result.Report).NotTo(BeNil())
		Expect(ans.SectionError()).To(BeNil())
	})

	It("answers trend questions even when one trend is missing", func() {
		svc := query.NewService(composer, nil)
		ans, err := svc.Answer(monthly(1), "trends")
		Expect(err).NotTo(HaveOccurred())
		Expect(ans.Result.Report.Errors).To(HaveLen(1))
		Expect(ans.SectionError()).To(BeNil())
	})
})
