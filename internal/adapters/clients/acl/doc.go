// Package acl is the anti-corruption layer between the quotes HTTP API and
// the domain.
//
// [QuoteClient] implements ports.QuoteClient on top of clients.Client. Wire
// envelopes stay inside this package; callers only see domain types and
// domain errors:
//
//   - NOT_FOUND → [domain.ErrNotFound]
//   - INVALID_ID → [domain.ErrInvalidID]
//   - VALIDATION_ERROR, BAD_REQUEST, PAYLOAD_TOO_LARGE → [domain.ErrValidation]
//   - CONFLICT → [domain.ErrConflict]
//   - 5xx, unknown routes, open circuit, exhausted retries → [domain.ErrUnavailable]
//
// Responses without an error code fall back to a mapping on the HTTP status.
// Context cancellation and deadlines are returned wrapped, not translated.
package acl
