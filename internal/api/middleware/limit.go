package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DefaultMaxBodyBytes caps request bodies when no limit is configured.
const DefaultMaxBodyBytes int64 = 10 << 20

// BodyLimit caps every request body at n bytes. Reads past the cap fail with
// *http.MaxBytesError.
func BodyLimit(n int64) gin.HandlerFunc {
	if n <= 0 {
		n = DefaultMaxBodyBytes
	}
	return func(c *gin.Context) {
		if c.Request.Body != nil {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, n)
		}
		c.Next()
	}
}
