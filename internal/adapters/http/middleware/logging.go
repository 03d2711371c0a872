package middleware

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

// Logging writes a "request started" and a "request completed" entry per
// request. The completion level follows the status: 5xx is ERROR, 4xx WARN.
// Paths under /-/ and the exact paths in skipPaths are never logged.
func Logging(logger *slog.Logger, skipPaths ...string) gin.HandlerFunc {
	skipped := pathSet(skipPaths)

	return func(c *gin.Context) {
		if skipped(c.Request.URL.Path) || strings.HasPrefix(c.Request.URL.Path, "/-/") {
			c.Next()
			return
		}

		begin := time.Now()
		ctx := c.Request.Context()
		log := requestLogger(ctx, logger)
		target := c.Request.URL.RequestURI()

		log.InfoContext(ctx, "request started",
			slog.String("method", c.Request.Method),
			slog.String("path", target),
			slog.String("client_ip", c.ClientIP()),
			slog.String("user_agent", c.Request.UserAgent()),
		)

		c.Next()

		elapsed := time.Since(begin)
		status := c.Writer.Status()

		log.Log(ctx, levelFor(status), "request completed",
			slog.String("method", c.Request.Method),
			slog.String("path", target),
			slog.String("route", c.FullPath()),
			slog.Int("status", status),
			slog.Duration("latency", elapsed),
			slog.Int64("latency_ms", elapsed.Milliseconds()),
			slog.Int("bytes", c.Writer.Size()),
		)
	}
}

func levelFor(status int) slog.Level {
	switch {
	case status >= http.StatusInternalServerError:
		return slog.LevelError
	case status >= http.StatusBadRequest:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// requestLogger prefers the logger ContextLogger and the ID middleware put on
// ctx, then fallback, then slog's default.
func requestLogger(ctx context.Context, fallback *slog.Logger) *slog.Logger {
	if l, ok := logging.Lookup(ctx); ok {
		return l
	}

	if fallback != nil {
		return fallback
	}

	return slog.Default()
}

func pathSet(paths []string) func(string) bool {
	set := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		set[p] = struct{}{}
	}

	return func(p string) bool {
		_, ok := set[p]
		return ok
	}
}
