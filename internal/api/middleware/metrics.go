package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Recorder holds the server's prometheus collectors.
type Recorder struct {
	registry *prometheus.Registry
	requests *prometheus.CounterVec
	latency  *prometheus.HistogramVec
	reports  *prometheus.CounterVec
}

// NewRecorder registers the collectors on a fresh registry, together with the Go and
// process collectors.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analysis_http_requests_total",
			Help: "HTTP requests by route, method and status.",
		}, []string{"route", "method", "status"}),
		latency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "analysis_http_request_duration_seconds",
			Help:    "HTTP request latency by route.",
			Buckets: prometheus.DefBuckets,
		}, []string{"route"}),
		reports: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "analysis_reports_generated_total",
			Help: "Reports generated by source, including partial ones.",
		}, []string{"source", "partial"}),
	}
	r.registry.MustRegister(
		r.requests,
		r.latency,
		r.reports,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

// Middleware counts and times requests by matched route.
func (r *Recorder) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		r.requests.WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).Inc()
		r.latency.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}

// ReportGenerated counts one report; a nil recorder ignores it.
func (r *Recorder) ReportGenerated(source string, partial bool) {
	if r == nil {
		return
	}
	r.reports.WithLabelValues(source, strconv.FormatBool(partial)).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (r *Recorder) Handler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{}))
}
