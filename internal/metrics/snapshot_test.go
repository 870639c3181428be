package metrics_test

import (
	"errors"
	"math"

	"business-analysis/internal/metrics"
	"business-analysis/internal/model"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Snapshot", func() {
	snap := metrics.NewSnapshot(map[metrics.Key]float64{
		metrics.CurrentRatio:    1.2,
		metrics.OperatingMargin: math.NaN(),
	})

	It("distinguishes the sentinel from an absent key", func() {
		v, err := snap.Get(metrics.OperatingMargin)
		Expect(err).NotTo(HaveOccurred())
		Expect(math.IsNaN(v)).To(BeTrue())

		_, err = snap.Get(metrics.DebtRatio)
		var missing *model.MissingMetricError
		Expect(errors.As(err, &missing)).To(BeTrue())
		Expect(missing.Category).To(Equal("solvency"))
		Expect(missing.Name).To(Equal("debt_ratio"))
	})

	It("returns copies of categories", func() {
		m := snap.Category(metrics.Liquidity)
		m["current_ratio"] = 99

		v, err := snap.Get(metrics.CurrentRatio)
		Expect(err).NotTo(HaveOccurred())
		Expect(v).To(Equal(1.2))
		Expect(snap.Category(metrics.Market)).To(BeNil())
	})

	It("lists only present categories", func() {
		all := snap.All()
		Expect(all).To(HaveLen(2))
		Expect(all).To(HaveKey(metrics.Liquidity))
		Expect(all).To(HaveKey(metrics.Profitability))
	})

	It("resolves bare ratio names", func() {
		k, ok := metrics.Lookup("equity_ratio")
		Expect(ok).To(BeTrue())
		Expect(k).To(Equal(metrics.EquityRatio))

		_, ok = metrics.Lookup("revenue")
		Expect(ok).To(BeFalse())
	})
})
