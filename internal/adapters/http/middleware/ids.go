// Package middleware holds the gin middleware chain of the quotes API.
package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

const (
	HeaderRequestID = "X-Request-ID"

	// HeaderCorrelationID spans every request of one caller-side transaction;
	// a request ID covers a single hop.
	HeaderCorrelationID = "X-Correlation-ID"

	// gin.Context keys.
	ContextKeyRequestID     = "request_id"
	ContextKeyCorrelationID = "correlation_id"
)

// maxIDLength bounds caller-supplied IDs; longer values are replaced.
const maxIDLength = 128

type idKind struct {
	header string
	ginKey string
	enrich []func(ctx context.Context, id string) context.Context
}

var (
	requestIDKind = idKind{
		header: HeaderRequestID,
		ginKey: ContextKeyRequestID,
		enrich: []func(context.Context, string) context.Context{ContextWithRequestID, logging.WithRequestID},
	}
	correlationIDKind = idKind{
		header: HeaderCorrelationID,
		ginKey: ContextKeyCorrelationID,
		enrich: []func(context.Context, string) context.Context{ContextWithCorrelationID, logging.WithCorrelationID},
	}
)

// RequestID adopts the caller's X-Request-ID, or a fresh UUID when it is
// missing or unusable, and echoes it on the response. The ID is stored in the
// gin context, the request context and the request logger.
func RequestID() gin.HandlerFunc {
	return requestIDKind.middleware()
}

// CorrelationID is RequestID for X-Correlation-ID. A generated value marks
// this request as the start of the transaction.
func CorrelationID() gin.HandlerFunc {
	return correlationIDKind.middleware()
}

// GetRequestID returns the ID RequestID stored, or "".
func GetRequestID(c *gin.Context) string {
	return c.GetString(ContextKeyRequestID)
}

// GetCorrelationID returns the ID CorrelationID stored, or "".
func GetCorrelationID(c *gin.Context) string {
	return c.GetString(ContextKeyCorrelationID)
}

func (k idKind) middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(k.header)
		if !acceptableID(id) {
			id = uuid.NewString()
		}

		c.Set(k.ginKey, id)
		c.Header(k.header, id)

		ctx := c.Request.Context()
		for _, enrich := range k.enrich {
			ctx = enrich(ctx, id)
		}

		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// acceptableID reports whether a caller-supplied ID is safe to echo in a
// header and write to logs: non-empty, bounded, printable ASCII without
// spaces.
func acceptableID(id string) bool {
	if id == "" || len(id) > maxIDLength {
		return false
	}

	for i := range len(id) {
		if id[i] <= ' ' || id[i] > '~' {
			return false
		}
	}

	return true
}
