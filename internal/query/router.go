package query

import (
	"strings"

	"golang.org/x/text/width"
)

// Section is the part of a report a question is about.
type Section string

const (
	SectionSummary         Section = "summary"
	SectionProfitability   Section = "profitability"
	SectionEfficiency      Section = "efficiency"
	SectionGrowth          Section = "growth"
	SectionLiquidity       Section = "liquidity"
	SectionSolvency        Section = "solvency"
	SectionTrends          Section = "trends"
	SectionRisks           Section = "risks"
	SectionOpportunities   Section = "opportunities"
	SectionKPIs            Section = "kpis"
	SectionRecommendations Section = "recommendations"
)

// Sections lists every routable section.
var Sections = []Section{
	SectionSummary, SectionProfitability, SectionEfficiency, SectionGrowth, SectionLiquidity,
	SectionSolvency, SectionTrends, SectionRisks, SectionOpportunities, SectionKPIs,
	SectionRecommendations,
}

// ParseSection accepts a section name as used in URLs and flags.
func ParseSection(s string) (Section, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, sec := range Sections {
		if string(sec) == s {
			return sec, true
		}
	}
	return "", false
}

type route struct {
	section  Section
	keywords []string
}

// routes are tried in order; the first keyword found in the question wins.
var routes = []route{
	{SectionRecommendations, []string{"提案", "改善策", "推奨", "アドバイス", "recommend", "suggest", "advice"}},
	{SectionRisks, []string{"リスク", "危険", "懸念", "risk"}},
	{SectionOpportunities, []string{"機会", "チャンス", "opportunit"}},
	{SectionKPIs, []string{"kpi", "指標", "生産性", "市場シェア", "productivity", "market share"}},
	{SectionTrends, []string{"トレンド", "推移", "傾向", "trend"}},
	{SectionProfitability, []string{"収益性", "利益率", "儲", "profitab", "margin", "roi"}},
	{SectionGrowth, []string{"成長", "伸び", "growth", "grow"}},
	{SectionEfficiency, []string{"効率", "回転", "efficien", "turnover"}},
	{SectionLiquidity, []string{"流動性", "流動比率", "資金繰り", "liquidity", "current ratio"}},
	{SectionSolvency, []string{"支払能力", "安全性", "財務体質", "自己資本", "負債", "solvency", "leverage", "debt", "equity"}},
	{SectionSummary, []string{"概要", "まとめ", "全体", "summary", "overview", "report"}},
}

// Normalize folds full-width characters to their half-width forms, lower-cases ASCII
// and collapses runs of whitespace.
func Normalize(q string) string {
	q = width.Fold.String(q)
	q = strings.ToLower(q)
	return strings.Join(strings.Fields(q), " ")
}

// Route maps a free-text question to a report section. Questions that match nothing
// route to the summary.
func Route(q string) Section {
	n := Normalize(q)
	for _, r := range routes {
		for _, kw := range r.keywords {
			if strings.Contains(n, kw) {
				return r.section
			}
		}
	}
	return SectionSummary
}
