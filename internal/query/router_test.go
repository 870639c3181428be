package query_test

import (
	"business-analysis/internal/query"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Normalize", func() {
	It("folds full-width characters and collapses whitespace", func() {
		Expect(query.Normalize("  Ｈｅｌｌｏ　 Ｗｏｒｌｄ ")).To(Equal("hello world"))
		Expect(query.Normalize("ＫＰＩ　は？")).To(Equal("kpi は?"))
	})
})

var _ = Describe("Route", func() {
	DescribeTable("maps questions to sections",
		func(q string, want query.Section) {
			Expect(query.Route(q)).To(Equal(want))
		},
		Entry("profitability (ja)", "収益性はどうですか？", query.SectionProfitability),
		Entry("full-width KPI", "ＫＰＩを教えて", query.SectionKPIs),
		Entry("risks (ja)", "リスクはありますか", query.SectionRisks),
		Entry("recommendations (ja)", "改善提案をください", query.SectionRecommendations),
		Entry("trends (ja)", "売上の推移は？", query.SectionTrends),
		Entry("growth (ja)", "成長率を知りたい", query.SectionGrowth),
		Entry("efficiency (ja)", "資産の回転はどうか", query.SectionEfficiency),
		Entry("liquidity (ja)", "流動性に問題はある？", query.SectionLiquidity),
		Entry("solvency (ja)", "自己資本は十分？", query.SectionSolvency),
		Entry("opportunities (ja)", "ビジネス機会は？", query.SectionOpportunities),
		Entry("summary (ja)", "全体の概要", query.SectionSummary),
		Entry("english, upper case", "What are the RISKS?", query.SectionRisks),
		Entry("trend wins over growth", "revenue growth trend", query.SectionTrends),
		Entry("unmatched", "hello", query.SectionSummary),
		Entry("empty", "", query.SectionSummary),
	)
})

var _ = Describe("ParseSection", func() {
	It("accepts every section name", func() {
		for _, s := range query.Sections {
			got, ok := query.ParseSection(" " + string(s) + " ")
			Expect(ok).To(BeTrue())
			Expect(got).To(Equal(s))
		}
		_, ok := query.ParseSection("weather")
		Expect(ok).To(BeFalse())
	})
})
