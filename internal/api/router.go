package api

import (
	"net/http"

	"business-analysis/internal/api/handlers"
	"business-analysis/internal/api/middleware"
	"business-analysis/internal/data"
	"business-analysis/internal/query"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Options wires the server's collaborators.
type Options struct {
	Service      *query.Service
	Catalog      *data.Catalog
	Client       *data.Client
	Recorder     *middleware.Recorder
	Logger       zerolog.Logger
	CORSOrigins  []string
	MaxBodyBytes int64 // 0 = middleware.DefaultMaxBodyBytes
}

// NewRouter builds the gin engine with every route registered.
func NewRouter(opts Options) *gin.Engine {
	if opts.Catalog == nil {
		opts.Catalog = data.NewCatalog()
	}
	if opts.Recorder == nil {
		opts.Recorder = middleware.NewRecorder()
	}

	router := gin.New()
	router.Use(middleware.Logger(opts.Logger))
	router.Use(middleware.ErrorHandler())
	router.Use(middleware.CORS(opts.CORSOrigins))
	router.Use(opts.Recorder.Middleware())
	router.Use(middleware.BodyLimit(opts.MaxBodyBytes))

	analysisHandler := handlers.NewAnalysisHandler(opts.Service, opts.Client, opts.Recorder)
	datasetHandler := handlers.NewDatasetHandler(opts.Catalog, opts.Service, opts.Recorder)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", opts.Recorder.Handler())

	v1 := router.Group("/api/v1")
	{
		v1.GET("/status", datasetHandler.Status)
		v1.GET("/datasets", datasetHandler.List)

		v1.GET("/report", datasetHandler.Report)
		v1.GET("/metrics", datasetHandler.Metrics)
		v1.GET("/trends", datasetHandler.Trends)
		v1.GET("/risks", datasetHandler.Risks)
		v1.GET("/opportunities", datasetHandler.Opportunities)
		v1.GET("/kpis", datasetHandler.KPIs)
		v1.GET("/recommendations", datasetHandler.Recommendations)
		v1.GET("/query", datasetHandler.Query)
		v1.GET("/charts/:metric", datasetHandler.Chart)

		v1.POST("/analyze", analysisHandler.Analyze)
		v1.POST("/analyze/csv", analysisHandler.AnalyzeCSV)
		v1.POST("/query", analysisHandler.Query)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"error": gin.H{"code": "NOT_FOUND", "message": "Not found"}})
	})
	return router
}
