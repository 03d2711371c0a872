package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
)

// Timeout bounds the request context. Nothing is aborted here; a store call
// that overruns returns context.DeadlineExceeded, which the error mapper
// answers with 504 TIMEOUT. A zero timeout or a path in skipPaths runs
// unbounded.
func Timeout(timeout time.Duration, skipPaths ...string) gin.HandlerFunc {
	skipped := pathSet(skipPaths)

	return func(c *gin.Context) {
		if timeout <= 0 || skipped(c.Request.URL.Path) {
			c.Next()
			return
		}

		ctx, cancel := context.WithTimeout(c.Request.Context(), timeout)
		defer cancel()

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// BodyLimit caps request bodies at limit bytes. Requests that declare a
// larger Content-Length are rejected up front; others fail while decoding.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit <= 0 || c.Request.Body == nil {
			c.Next()
			return
		}

		if c.Request.ContentLength > limit {
			dto.AbortWithErrorCode(c, dto.ErrorCodeTooLarge, dto.TooLargeMessage(limit))
			return
		}

		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		c.Next()
	}
}
