package acl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"maps"
	"net/http"
	"slices"

	"github.com/jsamuelsen/quotes-service/internal/adapters/clients"
	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/domain"
)

// entityQuote names the entity in translated not-found and invalid-ID errors.
const entityQuote = "quote"

// ParseErrorResponse decodes an error envelope, or returns nil when the body
// is not one.
func ParseErrorResponse(body io.Reader) *dto.ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp dto.ErrorResponse
	if err := json.NewDecoder(body).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.Code == "" && errResp.Message == "" {
		return nil
	}

	return &errResp
}

// MapHTTPError turns the outcome of one call into a domain error, or nil for
// a 2xx. clientErr is a transport failure (resp is then nil); operation names
// the call ("get quote") and entityID the quote it was about, if any. The
// envelope code wins over the status when both are present.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation, entityID string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	var errResp *dto.ErrorResponse
	if resp.Body != nil {
		errResp = ParseErrorResponse(resp.Body)
	}

	if errResp != nil && errResp.Code != "" {
		if err := MapErrorCode(errResp, serviceName, entityID); err != nil {
			return err
		}
	}

	return mapStatusCode(resp.StatusCode, errResp, serviceName, operation, entityID)
}

func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("%s: %w", operation, err)

	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))

	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("max retries exceeded during %s", operation))

	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

// MapErrorCode translates an error envelope by its code.
// Returns nil for codes that should fall back to the status mapping.
func MapErrorCode(errResp *dto.ErrorResponse, serviceName, entityID string) error {
	switch errResp.Code {
	case dto.ErrorCodeNotFound:
		return domain.NewNotFoundErrorWithMessage(entityQuote, entityID, errResp.Message)

	case dto.ErrorCodeInvalidID:
		return domain.NewInvalidIDError(entityQuote, entityID)

	case dto.ErrorCodeValidation:
		return validationFrom(errResp)

	case dto.ErrorCodeBadRequest, dto.ErrorCodeTooLarge:
		return domain.NewValidationError("", errResp.Message)

	case dto.ErrorCodeConflict:
		return domain.NewConflictError(entityQuote, errResp.Message)

	// A missing route means the base URL points at something that is not
	// the quotes API; for the caller that is the same as the API being down.
	case dto.ErrorCodeRouteNotFound, dto.ErrorCodeMethodNotAllowed,
		dto.ErrorCodeUnavailable, dto.ErrorCodeTimeout, dto.ErrorCodeInternal:
		return domain.NewUnavailableError(serviceName, errResp.Message)

	default:
		return nil
	}
}

// validationFrom keeps the first field detail in field-name order, so the
// translated error is stable across calls.
func validationFrom(errResp *dto.ErrorResponse) error {
	if len(errResp.Details) == 0 {
		return domain.NewValidationError("", errResp.Message)
	}

	first := slices.Min(slices.Collect(maps.Keys(errResp.Details)))

	return domain.NewValidationError(first, errResp.Details[first])
}

func mapStatusCode(status int, errResp *dto.ErrorResponse, serviceName, operation, entityID string) error {
	message := defaultMessageForStatus(status, operation)
	if errResp != nil && errResp.Message != "" {
		message = errResp.Message
	}

	switch status {
	case http.StatusNotFound:
		return domain.NewNotFoundErrorWithMessage(entityQuote, entityID, message)

	case http.StatusConflict:
		return domain.NewConflictError(entityQuote, message)

	case http.StatusBadRequest, http.StatusUnprocessableEntity, http.StatusRequestEntityTooLarge:
		return domain.NewValidationError("", message)

	case http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")

	default:
		if status >= http.StatusInternalServerError {
			return domain.NewUnavailableError(serviceName, message)
		}

		return domain.NewValidationError("", message)
	}
}

func defaultMessageForStatus(status int, operation string) string {
	switch status {
	case http.StatusNotFound:
		return "Quote not found"
	case http.StatusConflict:
		return "resource conflict"
	case http.StatusBadRequest:
		return "invalid request"
	case http.StatusServiceUnavailable:
		return "service temporarily unavailable"
	default:
		return fmt.Sprintf("%s failed with status %d", operation, status)
	}
}
