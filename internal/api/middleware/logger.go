package middleware

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Logger attaches base to each request context and writes one line per request.
func Logger(base zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Request = c.Request.WithContext(base.WithContext(c.Request.Context()))

		c.Next()

		ev := base.Info()
		if c.Writer.Status() >= 500 {
			ev = base.Error()
		}
		if len(c.Errors) > 0 {
			ev = ev.Str("errors", c.Errors.String())
		}
		ev.Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status_code", c.Writer.Status()).
			Int64("response_time", time.Since(start).Nanoseconds()).
			Msg("")
	}
}
