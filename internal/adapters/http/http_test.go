package http

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotes-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotes-service/internal/adapters/store/memory"
	"github.com/jsamuelsen/quotes-service/internal/app"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/ports"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testServerConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    10 * time.Second,
		IdleTimeout:     30 * time.Second,
		ShutdownTimeout: 5 * time.Second,
		RequestTimeout:  5 * time.Second,
		MaxRequestSize:  1 << 20,
		BasePath:        "/api",
		CORSOrigins:     []string{"http://localhost:5173"},
	}
}

// newTestApp wires a server over a memory store the way the service binary does.
func newTestApp(t *testing.T, serverCfg *config.ServerConfig) *Server {
	t.Helper()

	store := memory.New()

	registry := ports.NewHealthRegistry()
	require.NoError(t, registry.Register(store))

	service := app.NewQuoteService(app.QuoteServiceConfig{
		Repository: store,
		Logger:     discardLogger(),
	})

	srv := New(serverCfg, discardLogger())
	gin.SetMode(gin.TestMode)

	SetupRouter(srv.Engine(), NewRouterConfig(
		discardLogger(),
		"quotes-service-test",
		serverCfg,
		handlers.NewHealthHandler(registry, handlers.NewBuildInfo("test", "abc123", "now")),
		handlers.NewQuoteHandler(service),
	))

	return srv
}

func do(t *testing.T, srv *Server, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()

	w := httptest.NewRecorder()
	srv.Engine().ServeHTTP(w, req)

	return w
}

func TestServerNew(t *testing.T) {
	cfg := testServerConfig()
	logger := discardLogger()

	srv := New(cfg, logger)

	require.NotNil(t, srv)
	assert.NotNil(t, srv.Engine())
	assert.Same(t, cfg, srv.Config())
	assert.Equal(t, logger, srv.logger)
}

// TestServerAddr tests the server address formatting.
func TestServerAddr(t *testing.T) {
	tests := []struct {
		name string
		host string
		port int
		want string
	}{
		{"localhost", "localhost", 8080, "localhost:8080"},
		{"all interfaces", "0.0.0.0", 3000, "0.0.0.0:3000"},
		{"ipv6 loopback", "::1", 8080, "[::1]:8080"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testServerConfig()
			cfg.Host = tt.host
			cfg.Port = tt.port

			assert.Equal(t, tt.want, New(cfg, discardLogger()).Addr())
		})
	}
}

// TestServerServeShutdown tests serving on a listener and stopping the server.
func TestServerServeShutdown(t *testing.T) {
	srv := newTestApp(t, testServerConfig())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	errCh := srv.Serve(ln)
	assert.Equal(t, ln.Addr().String(), srv.Addr())

	resp, err := http.Get("http://" + srv.Addr() + "/-/live")
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, srv.Shutdown(ctx))

	select {
	case err, ok := <-errCh:
		assert.NoError(t, err)
		assert.False(t, ok, "error channel should be closed")
	case <-time.After(2 * time.Second):
		t.Fatal("timeout waiting for server to shutdown")
	}
}

func TestServerStart_ListenError(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	cfg := testServerConfig()
	_, port, err := net.SplitHostPort(ln.Addr().String())
	require.NoError(t, err)
	cfg.Port, err = strconv.Atoi(port)
	require.NoError(t, err)

	errCh := New(cfg, discardLogger()).Start()

	select {
	case err := <-errCh:
		require.Error(t, err)
		assert.Contains(t, err.Error(), "http server listen")
	case <-time.After(2 * time.Second):
		t.Fatal("expected a listen error")
	}
}

func TestNewRouterConfig(t *testing.T) {
	logger := discardLogger()
	cfg := testServerConfig()
	healthHandler := handlers.NewHealthHandler(nil, handlers.BuildInfo{})

	rc := NewRouterConfig(logger, "svc", cfg, healthHandler, nil)

	assert.Equal(t, logger, rc.Logger)
	assert.Equal(t, "svc", rc.ServiceName)
	assert.Equal(t, "/api", rc.BasePath)
	assert.Equal(t, cfg.CORSOrigins, rc.CORSOrigins)
	assert.Equal(t, 5*time.Second, rc.Timeout)
	assert.Same(t, healthHandler, rc.HealthHandler)
	assert.Nil(t, rc.QuoteHandler)

	cfg.RequestTimeout = 0
	assert.Equal(t, DefaultRequestTimeout, NewRouterConfig(logger, "svc", cfg, nil, nil).Timeout)
}

func TestSetupRouter_Routes(t *testing.T) {
	srv := newTestApp(t, testServerConfig())

	routeMap := make(map[string]bool)
	for _, r := range srv.Engine().Routes() {
		routeMap[r.Method+" "+r.Path] = true
	}

	for _, expected := range []string{
		"GET /-/live",
		"GET /-/ready",
		"GET /-/build",
		"GET /-/metrics",
		"GET /api/health",
		"GET /api/quotes",
		"POST /api/quotes",
		"GET /api/quotes/random",
		"GET /api/quotes/categories",
		"GET /api/quotes/:id",
	} {
		assert.True(t, routeMap[expected], "missing route: %s", expected)
	}
}

func TestSetupRouter_NilHandlers(t *testing.T) {
	engine := gin.New()

	require.NotPanics(t, func() {
		SetupRouter(engine, RouterConfig{Logger: discardLogger(), ServiceName: "svc"})
	})
}

func TestSetupRouter_Envelope(t *testing.T) {
	srv := newTestApp(t, testServerConfig())

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantCode   string
	}{
		{"unknown route", http.MethodGet, "/api/nope", http.StatusNotFound, dto.ErrorCodeRouteNotFound},
		{"wrong method", http.MethodDelete, "/api/quotes", http.StatusMethodNotAllowed, dto.ErrorCodeMethodNotAllowed},
		{"unknown quote", http.MethodGet, "/api/quotes/0b6a2c1e-7e4f-4d38-8b71-5f2a9c3d4e10", http.StatusNotFound, dto.ErrorCodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, srv, httptest.NewRequest(tt.method, tt.target, nil))

			require.Equal(t, tt.wantStatus, w.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Message)
		})
	}
}

func TestSetupRouter_IDHeaders(t *testing.T) {
	srv := newTestApp(t, testServerConfig())

	req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
	req.Header.Set("X-Request-ID", "req-abc")

	w := do(t, srv, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-abc", w.Header().Get("X-Request-ID"))
	assert.NotEmpty(t, w.Header().Get("X-Correlation-ID"))
}

func TestSetupRouter_CORS(t *testing.T) {
	tests := []struct {
		name       string
		origins    []string
		origin     string
		wantHeader string
	}{
		{"allowed origin", []string{"http://localhost:5173"}, "http://localhost:5173", "http://localhost:5173"},
		{"wildcard", []string{"*"}, "http://client.test", "*"},
		{"same origin needs no headers", []string{"*"}, "http://example.com", ""},
		{"disabled", nil, "http://localhost:5173", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testServerConfig()
			cfg.CORSOrigins = tt.origins

			srv := newTestApp(t, cfg)

			req := httptest.NewRequest(http.MethodGet, "/api/quotes", nil)
			req.Header.Set("Origin", tt.origin)

			w := do(t, srv, req)

			assert.Equal(t, tt.wantHeader, w.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestSetupRouter_Health(t *testing.T) {
	srv := newTestApp(t, testServerConfig())

	w := do(t, srv, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var resp handlers.HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "healthy", resp.Status)
	assert.Contains(t, resp.Checks, "memory-store")
}

func TestServer_BodyLimit(t *testing.T) {
	cfg := testServerConfig()
	cfg.MaxRequestSize = 64

	srv := newTestApp(t, cfg)

	body := `{"text":"` + strings.Repeat("a", 100) + `","author":"Someone"}`
	req := httptest.NewRequest(http.MethodPost, "/api/quotes", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	w := do(t, srv, req)

	require.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeTooLarge, resp.Code)
}

func TestServer_CreateThenFetch(t *testing.T) {
	srv := newTestApp(t, testServerConfig())

	req := httptest.NewRequest(http.MethodPost, "/api/quotes",
		strings.NewReader(`{"text":"Whatever you are, be a good one.","author":"Abraham Lincoln","category":"life"}`))
	req.Header.Set("Content-Type", "application/json")

	w := do(t, srv, req)
	require.Equal(t, http.StatusCreated, w.Code)

	var created struct {
		Data dto.QuoteData `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))

	w = do(t, srv, httptest.NewRequest(http.MethodGet, "/api/quotes/"+created.Data.Quote.ID, nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Abraham Lincoln")

	w = do(t, srv, httptest.NewRequest(http.MethodGet, "/api/quotes/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"success":true,"data":{"categories":[{"_id":"life","count":1}]}}`, w.Body.String())
}
