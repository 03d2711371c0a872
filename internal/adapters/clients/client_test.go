package clients

import (
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync/atomic"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
)

func defaultConfig(baseURL string) *Config {
	return &Config{
		BaseURL:     baseURL,
		ServiceName: "quotes-api",
		Timeout:     5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: time.Millisecond,
			MaxInterval:     10 * time.Millisecond,
			Multiplier:      2.0,
		},
		Circuit: config.CircuitBreakerConfig{
			MaxFailures:   5,
			Timeout:       time.Second,
			HalfOpenLimit: 2,
		},
	}
}

func newClient(t *testing.T, cfg *Config) *Client {
	t.Helper()

	client, err := New(cfg)
	require.NoError(t, err)

	return client
}

// closeBody closes the response body and fails the test on error.
func closeBody(t *testing.T, resp *http.Response) {
	t.Helper()

	if err := resp.Body.Close(); err != nil {
		t.Errorf("failed to close response body: %v", err)
	}
}

// countingServer answers with statuses in order, repeating the last one.
func countingServer(t *testing.T, calls *int32, statuses ...int) *httptest.Server {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		n := int(atomic.AddInt32(calls, 1))
		if n > len(statuses) {
			n = len(statuses)
		}

		w.WriteHeader(statuses[n-1])
	}))
	t.Cleanup(server.Close)

	return server
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *Config
		wantErr string
	}{
		{"nil config", nil, "config is required"},
		{"missing service name", &Config{BaseURL: "http://localhost:8080/api"}, "service name is required"},
		{"relative base URL", &Config{ServiceName: "quotes-api", BaseURL: "/api"}, "invalid base URL"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.cfg)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestNew_Defaults(t *testing.T) {
	cfg := &Config{BaseURL: "http://localhost:8080/api/", ServiceName: "quotes-api"}

	client := newClient(t, cfg)

	assert.Equal(t, "http://localhost:8080/api", client.baseURL)
	assert.Equal(t, defaultTimeout, client.http.Timeout)
	assert.Equal(t, 1, cfg.Retry.MaxAttempts)
	assert.Equal(t, "quotes-api", client.ServiceName())
	assert.Equal(t, StateClosed, client.CircuitState())
}

func TestConfigFrom(t *testing.T) {
	cc := config.ClientConfig{
		Timeout: 3 * time.Second,
		Retry:   config.RetryConfig{MaxAttempts: 4},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures: 7,
		},
		Transport: config.TransportConfig{MaxIdleConns: 12},
	}

	cfg := ConfigFrom(config.ServiceEndpointConfig{BaseURL: "http://quotes:8080/api", Name: "quotes-api"}, cc)

	assert.Equal(t, "http://quotes:8080/api", cfg.BaseURL)
	assert.Equal(t, "quotes-api", cfg.ServiceName)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, 4, cfg.Retry.MaxAttempts)
	assert.Equal(t, 7, cfg.Circuit.MaxFailures)
	assert.Equal(t, 12, cfg.Transport.MaxIdleConns)
}

func TestClient_HeaderPropagation(t *testing.T) {
	var got http.Header

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := defaultConfig(server.URL)
	cfg.UserAgent = "quotectl/test"
	client := newClient(t, cfg)

	ctx := middleware.ContextWithRequestID(context.Background(), "test-request-123")
	ctx = middleware.ContextWithCorrelationID(ctx, "test-correlation-456")

	resp, err := client.Get(ctx, "/quotes", nil)
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, "test-request-123", got.Get(middleware.HeaderRequestID))
	assert.Equal(t, "test-correlation-456", got.Get(middleware.HeaderCorrelationID))
	assert.Equal(t, "application/json", got.Get("Accept"))
	assert.Equal(t, "quotectl/test", got.Get("User-Agent"))
}

func TestClient_GetEncodesQuery(t *testing.T) {
	var gotURL *url.URL

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotURL = r.URL
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newClient(t, defaultConfig(server.URL+"/api"))

	resp, err := client.Get(context.Background(), "quotes", url.Values{"author": {"Mark Twain"}, "page": {"2"}})
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, "/api/quotes", gotURL.Path)
	assert.Equal(t, "Mark Twain", gotURL.Query().Get("author"))
	assert.Equal(t, "2", gotURL.Query().Get("page"))
}

func TestClient_RetryOnServerError(t *testing.T) {
	var calls int32
	server := countingServer(t, &calls, http.StatusInternalServerError, http.StatusBadGateway, http.StatusOK)

	client := newClient(t, defaultConfig(server.URL))

	resp, err := client.Get(context.Background(), "/quotes", nil)
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_FinalServerErrorIsReturned(t *testing.T) {
	var calls int32
	server := countingServer(t, &calls, http.StatusServiceUnavailable)

	client := newClient(t, defaultConfig(server.URL))

	resp, err := client.Get(context.Background(), "/health", nil)
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var calls int32
	server := countingServer(t, &calls, http.StatusBadRequest)

	client := newClient(t, defaultConfig(server.URL))

	resp, err := client.Get(context.Background(), "/quotes", nil)
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestClient_PostIsNotRetried(t *testing.T) {
	var (
		calls       int32
		body        string
		contentType string
	)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		contentType = r.Header.Get("Content-Type")
		raw, _ := io.ReadAll(r.Body)
		body = string(raw)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newClient(t, defaultConfig(server.URL))

	resp, err := client.Post(context.Background(), "/quotes", []byte(`{"text":"hello there"}`))
	require.NoError(t, err)
	defer closeBody(t, resp)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.Equal(t, "application/json", contentType)
	assert.Equal(t, `{"text":"hello there"}`, body)
}

func TestClient_MaxRetriesExceeded(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	client := newClient(t, defaultConfig("http://"+addr))

	_, err = client.Get(context.Background(), "/quotes", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMaxRetriesExceeded)
}

func TestClient_CircuitBreakerShortCircuitsWhenOpen(t *testing.T) {
	var calls int32
	server := countingServer(t, &calls, http.StatusServiceUnavailable)

	cfg := defaultConfig(server.URL)
	cfg.Retry.MaxAttempts = 1
	cfg.Circuit.MaxFailures = 2
	client := newClient(t, cfg)

	for range 2 {
		resp, err := client.Get(context.Background(), "/quotes", nil)
		require.NoError(t, err)
		closeBody(t, resp)
	}

	assert.Equal(t, StateOpen, client.CircuitState())

	before := atomic.LoadInt32(&calls)

	_, err := client.Get(context.Background(), "/quotes", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, before, atomic.LoadInt32(&calls), "request should not reach the server")
}

func TestClient_ClientErrorsDoNotOpenCircuit(t *testing.T) {
	var calls int32
	server := countingServer(t, &calls, http.StatusNotFound)

	cfg := defaultConfig(server.URL)
	cfg.Circuit.MaxFailures = 1
	client := newClient(t, cfg)

	for range 3 {
		resp, err := client.Get(context.Background(), "/quotes/missing", nil)
		require.NoError(t, err)
		closeBody(t, resp)
	}

	assert.Equal(t, StateClosed, client.CircuitState())
}

func TestClient_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	cfg := defaultConfig(server.URL)
	cfg.Timeout = 50 * time.Millisecond
	cfg.Retry.MaxAttempts = 1
	client := newClient(t, cfg)

	_, err := client.Get(context.Background(), "/quotes", nil)
	require.Error(t, err)
}

func TestClient_ContextCancellation(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(300 * time.Millisecond)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := newClient(t, defaultConfig(server.URL))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err := client.Get(ctx, "/quotes", nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_BuildURL(t *testing.T) {
	client := newClient(t, defaultConfig("https://quotes.example.com/api"))

	assert.Equal(t, "https://quotes.example.com/api/quotes", client.buildURL("/quotes"))
	assert.Equal(t, "https://quotes.example.com/api/quotes", client.buildURL("quotes"))

	client = newClient(t, defaultConfig("https://quotes.example.com/api/"))
	assert.Equal(t, "https://quotes.example.com/api/quotes", client.buildURL("/quotes"))
}

func TestCalculateBackoff(t *testing.T) {
	cfg := defaultConfig("http://localhost")
	cfg.Retry.InitialInterval = 100 * time.Millisecond
	cfg.Retry.Multiplier = 2.0
	cfg.Retry.MaxInterval = time.Second
	cfg.Retry.JitterFactor = 0.25
	client := newClient(t, cfg)

	assert.InDelta(t, 100*time.Millisecond, client.calculateBackoff(0), float64(25*time.Millisecond))
	assert.InDelta(t, 200*time.Millisecond, client.calculateBackoff(1), float64(50*time.Millisecond))
	assert.InDelta(t, 400*time.Millisecond, client.calculateBackoff(2), float64(100*time.Millisecond))
	assert.LessOrEqual(t, client.calculateBackoff(10), cfg.Retry.MaxInterval+cfg.Retry.MaxInterval/4)

	cfg.Retry.JitterFactor = 0
	assert.Equal(t, 400*time.Millisecond, client.calculateBackoff(2))
}

// testNetError is a net.Error stub.
type testNetError struct {
	timeout bool
}

func (e testNetError) Error() string   { return "test net error" }
func (e testNetError) Timeout() bool   { return e.timeout }
func (e testNetError) Temporary() bool { return true }

func TestIsRetryableError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil error", nil, false},
		{"context canceled", context.Canceled, false},
		{"context deadline exceeded", context.DeadlineExceeded, false},
		{"net error with timeout", testNetError{timeout: true}, true},
		{"net error without timeout", testNetError{timeout: false}, false},
		{"connection refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.retryable, isRetryableError(tt.err))
		})
	}
}

func TestIdempotent(t *testing.T) {
	assert.True(t, idempotent(http.MethodGet))
	assert.True(t, idempotent(http.MethodHead))
	assert.False(t, idempotent(http.MethodPost))
}
