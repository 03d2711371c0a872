// Package clients is the resilient HTTP client for the quotes API: retries,
// a circuit breaker, request ID propagation, tracing and metrics.
package clients

import "errors"

// Transport failures. The ACL turns them into domain.UnavailableError.
var (
	// ErrCircuitOpen is returned without contacting the server.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last failure once every attempt is spent.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
