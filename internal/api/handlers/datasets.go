package handlers

import (
	"net/http"
	"sync/atomic"
	"time"

	"business-analysis/internal/api/middleware"
	"business-analysis/internal/api/models"
	"business-analysis/internal/chart"
	"business-analysis/internal/data"
	"business-analysis/internal/query"
	"business-analysis/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// DefaultDataset is used when a request names no dataset.
const DefaultDataset = "default"

// DatasetHandler serves analyses of the datasets loaded at startup
type DatasetHandler struct {
	catalog  *data.Catalog
	service  *query.Service
	recorder *middleware.Recorder

	analyzed atomic.Bool
}

// NewDatasetHandler creates a new dataset handler
func NewDatasetHandler(catalog *data.Catalog, service *query.Service, recorder *middleware.Recorder) *DatasetHandler {
	return &DatasetHandler{catalog: catalog, service: service, recorder: recorder}
}

// resolve loads the requested dataset and its analysis, writing the error response
// when either is unavailable.
func (h *DatasetHandler) resolve(c *gin.Context) (*data.Dataset, *query.Result, bool) {
	var params models.DatasetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return nil, nil, false
	}
	id := params.Dataset
	if id == "" {
		id = DefaultDataset
	}

	ds, ok := h.catalog.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "DATASET_NOT_FOUND",
				Message: "dataset " + id + " is not loaded",
			},
		})
		return nil, nil, false
	}

	res, err := h.service.Analyze(ds.Series)
	if err != nil {
		writeError(c, err)
		return nil, nil, false
	}
	h.analyzed.Store(true)
	return ds, res, true
}

// section writes payload unless the report marks section as failed.
func (h *DatasetHandler) section(c *gin.Context, res *query.Result, section string, payload gin.H) {
	for i, e := range res.Report.Errors {
		if e.Section == section {
			writeSectionError(c, &res.Report.Errors[i])
			return
		}
	}
	c.JSON(http.StatusOK, payload)
}

// Report handles GET /api/v1/report
func (h *DatasetHandler) Report(c *gin.Context) {
	ds, res, ok := h.resolve(c)
	if !ok {
		return
	}
	h.recorder.ReportGenerated("dataset", len(res.Report.Errors) > 0)

	c.JSON(http.StatusOK, models.ReportResponse{
		ID:          uuid.NewString(),
		Dataset:     ds.ID,
		GeneratedAt: time.Now().UTC(),
		Report:      models.FromReport(res.Report),
	})
}

// Metrics handles GET /api/v1/metrics
func (h *DatasetHandler) Metrics(c *gin.Context) {
	ds, res, ok := h.resolve(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.MetricsResponse{
		Dataset: ds.ID,
		Metrics: models.FromSnapshot(res.Snapshot),
	})
}

// Trends handles GET /api/v1/trends
func (h *DatasetHandler) Trends(c *gin.Context) {
	ds, res, ok := h.resolve(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.FromTrendsReport(ds.ID, res.Report))
}

// Risks handles GET /api/v1/risks
func (h *DatasetHandler) Risks(c *gin.Context) {
	ds, res, ok := h.resolve(c)
	if !ok {
		return
	}
	h.section(c, res, report.SectionRisks, gin.H{
		"dataset": ds.ID,
		"risks":   models.FromRisks(res.Report.Risks),
	})
}

// Opportunities handles GET /api/v1/opportunities
func (h *DatasetHandler) Opportunities(c *gin.Context) {
	ds, res, ok := h.resolve(c)
	if !ok {
		return
	}
	h.section(c, res, report.SectionOpportunities, gin.H{
		"dataset":       ds.ID,
		"opportunities": models.FromOpportunities(res.Report.Opportunities),
	})
}

// KPIs handles GET /api/v1/kpis
func (h *DatasetHandler) KPIs(c *gin.Context) {
	ds, res, ok := h.resolve(c)
	if !ok {
		return
	}
	h.section(c, res, report.SectionKPIs, gin.H{
		"dataset": ds.ID,
		"kpis":    models.FromKPIs(res.Report.KPIs),
	})
}

// Recommendations handles GET /api/v1/recommendations
func (h *DatasetHandler) Recommendations(c *gin.Context) {
	ds, res, ok := h.resolve(c)
	if !ok {
		return
	}
	h.section(c, res, report.SectionRecommendations, gin.H{
		"dataset":         ds.ID,
		"recommendations": models.FromRecommendations(res.Report.Recommendations),
	})
}

// Query handles GET /api/v1/query?q=...
func (h *DatasetHandler) Query(c *gin.Context) {
	var params models.DatasetQueryParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	ds, _, ok := h.resolve(c)
	if !ok {
		return
	}
	answer(c, h.service, ds.Series, params.Q)
}

// Chart handles GET /api/v1/charts/:metric and renders an HTML line chart.
func (h *DatasetHandler) Chart(c *gin.Context) {
	var params models.DatasetParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	id := params.Dataset
	if id == "" {
		id = DefaultDataset
	}
	ds, ok := h.catalog.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "DATASET_NOT_FOUND",
				Message: "dataset " + id + " is not loaded",
			},
		})
		return
	}

	line, err := chart.TrendLine(h.service.Composer().Calculator(), ds.Series, c.Param("metric"))
	if err != nil {
		writeError(c, err)
		return
	}
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(http.StatusOK)
	if err := line.Render(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// List handles GET /api/v1/datasets
func (h *DatasetHandler) List(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"datasets": h.infos()})
}

// Status handles GET /api/v1/status
func (h *DatasetHandler) Status(c *gin.Context) {
	c.JSON(http.StatusOK, models.StatusResponse{
		Initialized:       h.service != nil,
		DatasetLoaded:     h.catalog.Len() > 0,
		MetricsCalculated: h.analyzed.Load(),
		PeriodsPerYear:    h.service.Composer().Calculator().PeriodsPerYear,
		Datasets:          h.infos(),
	})
}

func (h *DatasetHandler) infos() []models.DatasetInfo {
	sets := h.catalog.List()
	out := make([]models.DatasetInfo, 0, len(sets))
	for _, ds := range sets {
		out = append(out, models.FromDatasetInfo(ds.ID, ds.File, ds.Series))
	}
	return out
}
