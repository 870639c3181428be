package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"business-analysis/internal/api/middleware"
	"business-analysis/internal/api/models"
	"business-analysis/internal/data"
	"business-analysis/internal/metrics"
	"business-analysis/internal/model"
	"business-analysis/internal/query"
	"business-analysis/internal/report"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AnalysisHandler analyzes record series supplied with the request
type AnalysisHandler struct {
	service  *query.Service
	client   *data.Client
	recorder *middleware.Recorder
}

// NewAnalysisHandler creates a new analysis handler
func NewAnalysisHandler(service *query.Service, client *data.Client, recorder *middleware.Recorder) *AnalysisHandler {
	if client == nil {
		client = data.NewClient()
	}
	return &AnalysisHandler{service: service, client: client, recorder: recorder}
}

// Analyze handles POST /api/v1/analyze
func (h *AnalysisHandler) Analyze(c *gin.Context) {
	var req models.AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	series, ok := h.seriesFor(c, req)
	if !ok {
		return
	}
	svc, err := h.serviceFor(req.PeriodsPerYear)
	if err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	h.respondReport(c, svc, series, "inline")
}

// AnalyzeCSV handles POST /api/v1/analyze/csv (multipart field "file")
func (h *AnalysisHandler) AnalyzeCSV(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			bindError(c, err)
			return
		}
		badRequest(c, "INVALID_REQUEST", "multipart field \"file\" is required")
		return
	}
	f, err := fh.Open()
	if err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	defer f.Close()

	series, err := data.ReadRecordsCSV(f)
	if err != nil {
		writeError(c, err)
		return
	}

	ppy := 0
	if raw := c.PostForm("periods_per_year"); raw != "" {
		ppy, err = strconv.Atoi(raw)
		if err != nil {
			badRequest(c, "INVALID_REQUEST", fmt.Sprintf("periods_per_year: %v", err))
			return
		}
	}
	svc, err := h.serviceFor(ppy)
	if err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	h.respondReport(c, svc, series, "upload")
}

// Query handles POST /api/v1/query
func (h *AnalysisHandler) Query(c *gin.Context) {
	var req models.QueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	series, ok := h.seriesFor(c, req.AnalyzeRequest)
	if !ok {
		return
	}
	svc, err := h.serviceFor(req.PeriodsPerYear)
	if err != nil {
		badRequest(c, "INVALID_REQUEST", err.Error())
		return
	}
	answer(c, svc, series, req.Question)
}

func (h *AnalysisHandler) respondReport(c *gin.Context, svc *query.Service, series model.Series, source string) {
	res, err := svc.Analyze(series)
	if err != nil {
		writeError(c, err)
		return
	}
	h.recorder.ReportGenerated(source, len(res.Report.Errors) > 0)

	c.JSON(http.StatusOK, models.ReportResponse{
		ID:          uuid.NewString(),
		GeneratedAt: time.Now().UTC(),
		Report:      models.FromReport(res.Report),
	})
}

// seriesFor decodes the inline records or fetches the remote ones. It writes the
// error response itself and reports whether the caller may continue.
func (h *AnalysisHandler) seriesFor(c *gin.Context, req models.AnalyzeRequest) (model.Series, bool) {
	switch {
	case len(req.Records) > 0 && req.SourceURL != "":
		badRequest(c, "INVALID_REQUEST", "records and source_url are mutually exclusive")
		return nil, false
	case req.SourceURL != "":
		series, err := h.client.FetchRecords(c.Request.Context(), req.SourceURL)
		if err != nil {
			writeError(c, err)
			return nil, false
		}
		return series, true
	case req.Records != nil:
		series, err := data.RecordsFromMaps(req.Records)
		if err != nil {
			writeError(c, err)
			return nil, false
		}
		return series, true
	default:
		badRequest(c, "INVALID_REQUEST", "one of records or source_url is required")
		return nil, false
	}
}

// serviceFor returns the shared service, or an uncached one when the request asks
// for a different cadence.
func (h *AnalysisHandler) serviceFor(periodsPerYear int) (*query.Service, error) {
	base := h.service.Composer()
	if periodsPerYear == 0 || periodsPerYear == base.Calculator().PeriodsPerYear {
		return h.service, nil
	}
	calc, err := metrics.New(periodsPerYear)
	if err != nil {
		return nil, err
	}
	composer := report.NewComposer(calc)
	composer.Parallel = base.Parallel
	composer.Logger = base.Logger
	return query.NewService(composer, nil), nil
}

// answer routes question and writes the matching section.
func answer(c *gin.Context, svc *query.Service, series model.Series, question string) {
	ans, err := svc.Answer(series, question)
	if err != nil {
		writeError(c, err)
		return
	}
	if se := ans.SectionError(); se != nil {
		writeSectionError(c, se)
		return
	}
	c.JSON(http.StatusOK, models.QueryResponse{
		Question:   ans.Question,
		Normalized: ans.Normalized,
		Section:    string(ans.Section),
		Data:       models.SectionPayload(ans.Section, ans.Result),
	})
}
