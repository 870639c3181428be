package metrics_test

import (
	"bytes"
	"encoding/csv"

	"business-analysis/internal/metrics"
	"business-analysis/internal/model"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Ledger", func() {
	It("writes one row per period with empty cells for the sentinel", func() {
		calc, err := metrics.New(12)
		Expect(err).NotTo(HaveOccurred())

		ledger := calc.Ledger(model.Series{record("2024-01", 80, 4), record("2024-02", 100, 8)})
		Expect(ledger).To(HaveLen(2))
		Expect(ledger[1].Period).To(Equal("2024-02"))
		Expect(ledger[1].Values[metrics.OperatingMargin]).To(BeNumerically("~", 8, 1e-9))

		var buf bytes.Buffer
		Expect(metrics.WriteLedgerCSV(&buf, ledger)).To(Succeed())

		rows, err := csv.NewReader(&buf).ReadAll()
		Expect(err).NotTo(HaveOccurred())
		Expect(rows).To(HaveLen(3))
		Expect(rows[0][:3]).To(Equal([]string{"index", "period", "operating_margin"}))
		Expect(rows[0]).To(HaveLen(2 + len(metrics.Keys)))

		growthCol := -1
		for i, h := range rows[0] {
			if h == "revenue_growth" {
				growthCol = i
			}
		}
		Expect(growthCol).To(BeNumerically(">", 0))
		Expect(rows[1][growthCol]).To(BeEmpty())
		Expect(rows[2][growthCol]).To(Equal("25.000000"))
		Expect(rows[2][2]).To(Equal("8.000000"))
	})
})
