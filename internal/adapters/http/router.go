package http

import (
	"log/slog"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/quotes-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen/quotes-service/internal/adapters/http/middleware"
	"github.com/jsamuelsen/quotes-service/internal/platform/config"
	"github.com/jsamuelsen/quotes-service/internal/platform/telemetry"
)

// DefaultRequestTimeout is the default timeout for API requests.
const DefaultRequestTimeout = 15 * time.Second

// corsMaxAge is how long browsers may cache a preflight response.
const corsMaxAge = 12 * time.Hour

// RouterConfig contains configuration for setting up the router.
type RouterConfig struct {
	// Logger is the structured logger for request logging.
	Logger *slog.Logger

	// ServiceName names the otelgin server spans.
	ServiceName string

	// BasePath prefixes every API route, e.g. "/api".
	BasePath string

	// CORSOrigins lists allowed browser origins. "*" allows any origin,
	// an empty list disables CORS headers.
	CORSOrigins []string

	// Timeout is the deadline applied to API requests.
	Timeout time.Duration

	HealthHandler *handlers.HealthHandler
	QuoteHandler  *handlers.QuoteHandler
}

// NewRouterConfig builds a RouterConfig from server settings.
func NewRouterConfig(
	logger *slog.Logger,
	serviceName string,
	serverCfg *config.ServerConfig,
	healthHandler *handlers.HealthHandler,
	quoteHandler *handlers.QuoteHandler,
) RouterConfig {
	timeout := serverCfg.RequestTimeout
	if timeout == 0 {
		timeout = DefaultRequestTimeout
	}

	return RouterConfig{
		Logger:        logger,
		ServiceName:   serviceName,
		BasePath:      serverCfg.BasePath,
		CORSOrigins:   serverCfg.CORSOrigins,
		Timeout:       timeout,
		HealthHandler: healthHandler,
		QuoteHandler:  quoteHandler,
	}
}

// SetupRouter configures all routes and middleware on the Gin engine.
// Middleware is applied in the following order (first to last):
//  1. Recovery - catch panics first
//  2. Context logger, Request ID, Correlation ID
//  3. OpenTelemetry - server spans and request metrics
//  4. Logging - request logging (skips /-/ endpoints)
//  5. CORS
//  6. Timeout - request deadline, API group only
//
// Route groups:
//   - /-/ (operational): probes, build info and metrics
//   - BasePath (API): quotes and health
func SetupRouter(engine *gin.Engine, cfg RouterConfig) {
	engine.HandleMethodNotAllowed = true

	engine.Use(
		middleware.Recovery(cfg.Logger),
		middleware.ContextLogger(cfg.Logger),
		middleware.RequestID(),
		middleware.CorrelationID(),
	)
	engine.Use(telemetry.Middleware(cfg.ServiceName)...)
	engine.Use(middleware.Logging(cfg.Logger))

	if handler := corsMiddleware(cfg.CORSOrigins); handler != nil {
		engine.Use(handler)
	}

	engine.NoRoute(routeNotFound)
	engine.NoMethod(methodNotAllowed)

	// Probes run without the API deadline
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterHealthRoutesOnEngine(engine)
	}

	basePath := cfg.BasePath
	if basePath == "" {
		basePath = "/"
	}

	api := engine.Group(basePath)
	api.Use(middleware.Timeout(cfg.Timeout))

	setupAPIRoutes(api, cfg)
}

// setupAPIRoutes registers business API routes.
func setupAPIRoutes(rg *gin.RouterGroup, cfg RouterConfig) {
	if cfg.HealthHandler != nil {
		cfg.HealthHandler.RegisterAPIRoutes(rg)
	}

	if cfg.QuoteHandler != nil {
		cfg.QuoteHandler.RegisterQuoteRoutes(rg)
	}
}

// corsMiddleware returns the CORS handler for origins, or nil when no
// origin is allowed.
func corsMiddleware(origins []string) gin.HandlerFunc {
	if len(origins) == 0 {
		return nil
	}

	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{
			"Origin", "Content-Type", "Accept",
			middleware.HeaderRequestID, middleware.HeaderCorrelationID,
		},
		ExposeHeaders: []string{
			middleware.HeaderRequestID, middleware.HeaderCorrelationID, telemetry.TraceIDHeader,
		},
		MaxAge: corsMaxAge,
	}

	if slices.Contains(origins, "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
	}

	return cors.New(corsCfg)
}
