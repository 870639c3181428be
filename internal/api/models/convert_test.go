package models_test

import (
	"math"

	"business-analysis/internal/api/models"
	"business-analysis/internal/report"
	"business-analysis/internal/trend"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Num", func() {
	It("turns unassessable values into null", func() {
		Expect(models.Num(math.NaN())).To(BeNil())
		Expect(models.Num(math.Inf(1))).To(BeNil())
		Expect(*models.Num(1.5)).To(Equal(1.5))
	})
})

var _ = Describe("FromTrendsReport", func() {
	It("keeps only the trend section errors", func() {
		r := &report.Report{
			Trends: map[string]trend.Detailed{},
			Errors: []report.SectionError{
				{Section: report.SectionTrendsPrefix + "growth", Code: report.CodeInsufficientData},
				{Section: report.SectionRisks, Code: report.CodeMissingMetric},
				{Section: report.SectionTrendsPrefix + "revenue", Code: report.CodeInsufficientData},
				{Section: "trendsetter", Code: report.CodeInternal},
			},
		}

		got := models.FromTrendsReport("default", r)
		Expect(got.Dataset).To(Equal("default"))
		Expect(got.Errors).To(HaveLen(2))
		Expect(got.Errors[0].Section).To(Equal("trends.growth"))
		Expect(got.Errors[1].Section).To(Equal("trends.revenue"))
	})

	It("omits errors when every trend was computed", func() {
		got := models.FromTrendsReport("", &report.Report{Trends: map[string]trend.Detailed{}})
		Expect(got.Errors).To(BeNil())
	})
})
