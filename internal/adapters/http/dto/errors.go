// Package dto holds the JSON shapes of the quotes API and the mapping from
// domain errors to the error envelope.
package dto

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"

	"github.com/jsamuelsen/quotes-service/internal/domain"
	"github.com/jsamuelsen/quotes-service/internal/platform/logging"
)

// ErrorResponse is the body of every non-2xx answer. Success is always
// false; Details maps a field to its message for validation failures.
type ErrorResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
	TraceID string            `json:"traceId,omitempty"`
}

const (
	ErrorCodeNotFound    = "NOT_FOUND"
	ErrorCodeConflict    = "CONFLICT"
	ErrorCodeValidation  = "VALIDATION_ERROR"
	ErrorCodeInvalidID   = "INVALID_ID"
	ErrorCodeUnavailable = "SERVICE_UNAVAILABLE"
	ErrorCodeInternal    = "INTERNAL_ERROR"
	ErrorCodeTimeout     = "TIMEOUT"
	ErrorCodeBadRequest  = "BAD_REQUEST"
	ErrorCodeTooLarge    = "PAYLOAD_TOO_LARGE"

	// No route matched, or the path exists under other methods.
	ErrorCodeRouteNotFound    = "ROUTE_NOT_FOUND"
	ErrorCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"
)

// Fixed caller-facing messages.
const (
	MessageInternal  = "an internal error occurred"
	MessageInvalidID = "Invalid quote ID format"
)

// TooLargeMessage describes a request body over the size limit.
func TooLargeMessage(limit int64) string {
	return fmt.Sprintf("request body must not exceed %d bytes", limit)
}

func NewErrorResponse(code, message string) *ErrorResponse {
	return &ErrorResponse{Message: message, Code: code}
}

func NewErrorResponseWithDetails(code, message string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{Message: message, Code: code, Details: details}
}

func (e *ErrorResponse) WithTraceID(traceID string) *ErrorResponse {
	e.TraceID = traceID
	return e
}

var statusByCode = map[string]int{
	ErrorCodeNotFound:         http.StatusNotFound,
	ErrorCodeRouteNotFound:    http.StatusNotFound,
	ErrorCodeConflict:         http.StatusConflict,
	ErrorCodeValidation:       http.StatusBadRequest,
	ErrorCodeBadRequest:       http.StatusBadRequest,
	ErrorCodeInvalidID:        http.StatusBadRequest,
	ErrorCodeMethodNotAllowed: http.StatusMethodNotAllowed,
	ErrorCodeTooLarge:         http.StatusRequestEntityTooLarge,
	ErrorCodeUnavailable:      http.StatusServiceUnavailable,
	ErrorCodeTimeout:          http.StatusGatewayTimeout,
	ErrorCodeInternal:         http.StatusInternalServerError,
}

// HTTPStatusFromCode returns the status an error code is served with.
// Unknown codes are 500.
func HTTPStatusFromCode(code string) int {
	if status, ok := statusByCode[code]; ok {
		return status
	}

	return http.StatusInternalServerError
}

// MapDomainError picks the envelope for err. Anything not recognized is a
// 500 with a fixed message so internals never reach the caller.
func MapDomainError(err error) (int, *ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	resp := envelopeFor(err)

	return HTTPStatusFromCode(resp.Code), resp
}

func envelopeFor(err error) *ErrorResponse {
	var (
		bindErr  *BindError
		invalid  *domain.ValidationError
		notFound *domain.NotFoundError
	)

	switch {
	case errors.As(err, &bindErr):
		return NewErrorResponse(bindErr.Code, bindErr.Message)

	case errors.As(err, &invalid):
		resp := NewErrorResponse(ErrorCodeValidation, invalid.Message)
		if invalid.Field != "" {
			resp.Details = map[string]string{invalid.Field: invalid.Message}
		}

		return resp

	case domain.IsValidation(err):
		return NewErrorResponse(ErrorCodeValidation, err.Error())

	case domain.IsInvalidID(err):
		return NewErrorResponse(ErrorCodeInvalidID, MessageInvalidID)

	case errors.As(err, &notFound):
		return NewErrorResponse(ErrorCodeNotFound, notFound.Error())

	case domain.IsNotFound(err):
		return NewErrorResponse(ErrorCodeNotFound, err.Error())

	case domain.IsConflict(err):
		return NewErrorResponse(ErrorCodeConflict, err.Error())

	case errors.Is(err, context.DeadlineExceeded):
		return NewErrorResponse(ErrorCodeTimeout, "request timeout exceeded")

	case domain.IsUnavailable(err):
		return NewErrorResponse(ErrorCodeUnavailable, "the quote store is temporarily unavailable")

	default:
		return NewErrorResponse(ErrorCodeInternal, MessageInternal)
	}
}

// GetTraceID returns the active trace ID for the request, or "".
func GetTraceID(c *gin.Context) string {
	sc := trace.SpanContextFromContext(c.Request.Context())
	if !sc.HasTraceID() {
		return ""
	}

	return sc.TraceID().String()
}

// HandleError writes the envelope for err. 5xx answers are logged with the
// underlying error, which the caller never sees.
func HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	ctx := c.Request.Context()
	status, resp := MapDomainError(err)
	resp.TraceID = GetTraceID(c)

	if status >= http.StatusInternalServerError {
		logging.FromContext(ctx).ErrorContext(ctx, "request failed",
			slog.Any("error", err),
			slog.Int("status", status),
			slog.String("trace_id", resp.TraceID),
		)
	}

	c.JSON(status, resp)
}

// RespondWithErrorCode answers with code for failures raised by the adapter
// itself rather than the domain.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	c.JSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}

// AbortWithErrorCode is RespondWithErrorCode for middleware.
func AbortWithErrorCode(c *gin.Context, code, message string) {
	c.AbortWithStatusJSON(HTTPStatusFromCode(code), NewErrorResponse(code, message).WithTraceID(GetTraceID(c)))
}
