package assess_test

import (
	"errors"
	"math"

	"business-analysis/internal/assess"
	"business-analysis/internal/metrics"
	"business-analysis/internal/model"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Qualitative assessments", func() {
	DescribeTable("liquidity",
		func(current float64, want string) {
			got, err := assess.Liquidity(metrics.NewSnapshot(map[metrics.Key]float64{metrics.CurrentRatio: current}))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("ample", 2.5, "ample"),
		Entry("adequate", 1.8, "adequate"),
		Entry("needs improvement", 1.2, "needs improvement"),
		Entry("boundary at 2", 2.0, "adequate"),
		Entry("boundary at 1.5", 1.5, "needs improvement"),
		Entry("unassessable", math.NaN(), assess.Unassessable),
	)

	DescribeTable("solvency",
		func(equity float64, want string) {
			got, err := assess.Solvency(metrics.NewSnapshot(map[metrics.Key]float64{metrics.EquityRatio: equity}))
			Expect(err).NotTo(HaveOccurred())
			Expect(got).To(Equal(want))
		},
		Entry("strong", 0.6, "strong"),
		Entry("stable", 0.4, "stable"),
		Entry("needs strengthening", 0.2, "needs strengthening"),
		Entry("unassessable", math.NaN(), assess.Unassessable),
	)

	It("classifies profitability and efficiency", func() {
		snap := metrics.NewSnapshot(map[metrics.Key]float64{
			metrics.OperatingMargin: 12,
			metrics.AssetTurnover:   2.4,
		})
		p, err := assess.Profitability(snap)
		Expect(err).NotTo(HaveOccurred())
		Expect(p).To(Equal("adequate"))

		e, err := assess.Efficiency(snap)
		Expect(err).NotTo(HaveOccurred())
		Expect(e).To(Equal("efficient"))
	})

	It("fails when the metric is absent", func() {
		_, err := assess.Solvency(metrics.NewSnapshot(nil))
		var missing *model.MissingMetricError
		Expect(errors.As(err, &missing)).To(BeTrue())
	})
})
