package clients

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net"
	"net/http"
	"time"
)

// maxDrainBytes bounds how much of a discarded body is read so the
// connection can go back to the pool.
const maxDrainBytes = 64 << 10

// send tries req up to attempts times. Transient transport errors and 5xx
// answers are retried except on the last attempt.
func (c *Client) send(ctx context.Context, req *http.Request, attempts int, logger *slog.Logger) (*http.Response, error) {
	var lastErr error

	for attempt := range attempts {
		if attempt > 0 {
			if err := c.backoff(ctx, attempt, logger); err != nil {
				return nil, err
			}

			if err := rewind(req); err != nil {
				return nil, err
			}
		}

		final := attempt == attempts-1
		resp, err := c.http.Do(req.WithContext(ctx))

		switch {
		case err != nil:
			lastErr = err
			if final || !isRetryableError(err) {
				return nil, c.giveUp(req, attempts, lastErr)
			}

			logger.Debug("transport error, will retry", slog.Int("attempt", attempt+1), slog.Any("error", err))

		case resp.StatusCode >= http.StatusInternalServerError && !final:
			logger.Debug("server error, will retry", slog.Int("attempt", attempt+1), slog.Int("status", resp.StatusCode))
			discard(resp)

			lastErr = fmt.Errorf("server error: %d", resp.StatusCode)

		default:
			return resp, nil
		}
	}

	return nil, c.giveUp(req, attempts, lastErr)
}

func (c *Client) giveUp(req *http.Request, attempts int, err error) error {
	if attempts > 1 && isRetryableError(err) {
		return fmt.Errorf("%w after %d attempts: %w", ErrMaxRetriesExceeded, attempts, err)
	}

	return fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
}

func (c *Client) backoff(ctx context.Context, attempt int, logger *slog.Logger) error {
	d := c.calculateBackoff(attempt)
	logger.Debug("backing off", slog.Int("attempt", attempt+1), slog.Duration("backoff", d))

	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// calculateBackoff is InitialInterval * Multiplier^attempt, capped at
// MaxInterval, then spread by up to JitterFactor either way.
func (c *Client) calculateBackoff(attempt int) time.Duration {
	r := c.cfg.Retry

	d := float64(r.InitialInterval) * math.Pow(r.Multiplier, float64(attempt))
	if r.MaxInterval > 0 {
		d = math.Min(d, float64(r.MaxInterval))
	}

	if r.JitterFactor > 0 {
		d *= 1 + r.JitterFactor*(rand.Float64()*2-1) //nolint:gosec // jitter does not need crypto randomness
	}

	return time.Duration(d)
}

func idempotent(method string) bool {
	return method == http.MethodGet || method == http.MethodHead || method == http.MethodOptions
}

// rewind restores the body consumed by the previous attempt.
func rewind(req *http.Request) error {
	if req.Body == nil || req.Body == http.NoBody {
		return nil
	}

	if req.GetBody == nil {
		return errors.New("request body cannot be replayed")
	}

	body, err := req.GetBody()
	if err != nil {
		return fmt.Errorf("rewinding request body: %w", err)
	}

	req.Body = body

	return nil
}

func discard(resp *http.Response) {
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
	_ = resp.Body.Close()
}

// isRetryableError reports whether err is a transient network failure.
// Cancellation and deadlines are final.
func isRetryableError(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	var opErr *net.OpError

	return errors.As(err, &opErr)
}
