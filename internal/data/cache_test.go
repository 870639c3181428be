package data_test

import (
	"math"
	"time"

	"business-analysis/internal/data"
	"business-analysis/internal/model"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Cache", func() {
	var (
		cache *data.Cache[string]
		now   time.Time
	)

	BeforeEach(func() {
		now = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		cache = data.NewCache[string](time.Minute)
		cache.SetClock(func() time.Time { return now })
	})

	It("returns stored values until they expire", func() {
		cache.Set("k", "v")
		v, ok := cache.Get("k")
		Expect(ok).To(BeTrue())
		Expect(v).To(Equal("v"))

		now = now.Add(2 * time.Minute)
		_, ok = cache.Get("k")
		Expect(ok).To(BeFalse())
		Expect(cache.Len()).To(Equal(1))

		cache.Sweep()
		Expect(cache.Len()).To(BeZero())
	})

	It("clears every entry", func() {
		cache.Set("a", "1")
		cache.Set("b", "2")
		cache.Clear()
		Expect(cache.Len()).To(BeZero())
	})

	It("is a no-op when nil", func() {
		var nilCache *data.Cache[string]
		nilCache.Set("k", "v")
		_, ok := nilCache.Get("k")
		Expect(ok).To(BeFalse())
		Expect(nilCache.Len()).To(BeZero())
	})
})

var _ = Describe("SeriesKey", func() {
	series := func() model.Series {
		return model.Series{
			{Period: "2024-01", Revenue: 100, OperatingProfit: math.NaN()},
			{Period: "2024-02", Revenue: 110},
		}
	}

	It("is stable for identical series", func() {
		Expect(data.SeriesKey(series(), 12)).To(Equal(data.SeriesKey(series(), 12)))
	})

	It("changes with any record or the cadence", func() {
		base := data.SeriesKey(series(), 12)

		changed := series()
		changed[1].Revenue = 111
		Expect(data.SeriesKey(changed, 12)).NotTo(Equal(base))

		renamed := series()
		renamed[0].Period = "2023-12"
		Expect(data.SeriesKey(renamed, 12)).NotTo(Equal(base))

		Expect(data.SeriesKey(series()[:1], 12)).NotTo(Equal(base))
		Expect(data.SeriesKey(series(), 4)).NotTo(Equal(base))
	})
})
