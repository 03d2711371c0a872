// Package handlers holds the gin handlers for the quotes API and the
// operational probe endpoints.
package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jsamuelsen/quotes-service/internal/ports"
)

// BuildInfo is served from /-/build. Values are stamped in with -ldflags.
type BuildInfo struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
}

func NewBuildInfo(version, commit, buildTime string) BuildInfo {
	return BuildInfo{
		Version:   version,
		Commit:    commit,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
	}
}

// HealthHandler serves the probe endpoints under /-/ and the API health
// endpoint. Every check result comes from the registry; the handler only
// shapes the response.
type HealthHandler struct {
	registry  ports.HealthRegistry
	buildInfo BuildInfo
	gatherer  prometheus.Gatherer
	startedAt time.Time
}

type HealthOption func(*HealthHandler)

// WithGatherer serves /-/metrics from g instead of the default registry.
func WithGatherer(g prometheus.Gatherer) HealthOption {
	return func(h *HealthHandler) {
		if g != nil {
			h.gatherer = g
		}
	}
}

func NewHealthHandler(registry ports.HealthRegistry, buildInfo BuildInfo, opts ...HealthOption) *HealthHandler {
	h := &HealthHandler{
		registry:  registry,
		buildInfo: buildInfo,
		gatherer:  prometheus.DefaultGatherer,
		startedAt: time.Now(),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

type probeStatus struct {
	Status string                        `json:"status"`
	Checks map[string]*ports.CheckResult `json:"checks,omitempty"`
}

// Liveness answers as long as the process can serve HTTP. It never touches
// the store.
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, probeStatus{Status: "ok"})
}

// Readiness runs every registered check and answers 503 if any fails.
func (h *HealthHandler) Readiness(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	c.JSON(statusFor(result), probeStatus{
		Status: string(result.Status),
		Checks: result.Checks,
	})
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Success   bool                          `json:"success"`
	Status    string                        `json:"status"`
	Checks    map[string]*ports.CheckResult `json:"checks"`
	Timestamp time.Time                     `json:"timestamp"`
	Uptime    float64                       `json:"uptime"`
}

// Health is readiness in the API envelope, with process uptime in seconds.
// Checks is always an object, never null.
//
// @Summary Service health
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	result := h.registry.CheckAll(c.Request.Context())

	resp := HealthResponse{
		Success:   result.Status == ports.HealthStatusHealthy,
		Status:    string(result.Status),
		Checks:    result.Checks,
		Timestamp: result.Timestamp.UTC(),
		Uptime:    time.Since(h.startedAt).Seconds(),
	}
	if resp.Checks == nil {
		resp.Checks = map[string]*ports.CheckResult{}
	}

	c.JSON(statusFor(result), resp)
}

func (h *HealthHandler) BuildInfoHandler(c *gin.Context) {
	c.JSON(http.StatusOK, h.buildInfo)
}

// MetricsHandler exposes the gatherer in the Prometheus text format.
func (h *HealthHandler) MetricsHandler() http.Handler {
	return promhttp.HandlerFor(h.gatherer, promhttp.HandlerOpts{})
}

// RegisterHealthRoutes mounts live, ready, build and metrics on rg.
func (h *HealthHandler) RegisterHealthRoutes(rg *gin.RouterGroup) {
	rg.GET("/live", h.Liveness)
	rg.GET("/ready", h.Readiness)
	rg.GET("/build", h.BuildInfoHandler)
	rg.GET("/metrics", gin.WrapH(h.MetricsHandler()))
}

// RegisterHealthRoutesOnEngine mounts the probes under /-/.
func (h *HealthHandler) RegisterHealthRoutesOnEngine(engine *gin.Engine) {
	h.RegisterHealthRoutes(engine.Group("/-"))
}

func (h *HealthHandler) RegisterAPIRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
}

func statusFor(result *ports.HealthResult) int {
	if result.Status == ports.HealthStatusUnhealthy {
		return http.StatusServiceUnavailable
	}

	return http.StatusOK
}
