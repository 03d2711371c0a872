package config

import (
	"slices"
	"time"
)

// Server and request limits.
const (
	DefaultServerPort     = 8080
	DefaultMaxRequestSize = 1 << 20
)

// Outbound client defaults, shared by the service config and quotectl.
const (
	DefaultClientTimeout                = 30 * time.Second
	DefaultClientRetryMaxAttempts       = 3
	DefaultClientRetryInitialInterval   = 100 * time.Millisecond
	DefaultClientRetryMaxInterval       = 5 * time.Second
	DefaultClientRetryMultiplier        = 2.0
	DefaultClientRetryJitterFactor      = 0.25
	DefaultClientCircuitMaxFailures     = 5
	DefaultClientCircuitTimeout         = 30 * time.Second
	DefaultClientCircuitHalfOpenLimit   = 3
	DefaultTransportMaxIdleConns        = 100
	DefaultTransportMaxIdleConnsPerHost = 10
	DefaultTransportIdleConnTimeout     = 90 * time.Second
)

// Rolling log file retention.
const (
	DefaultLogFileMaxSizeMB  = 100
	DefaultLogFileMaxBackups = 3
	DefaultLogFileMaxAgeDays = 28
)

// Store, query and seeding defaults.
const (
	// DefaultStoreTimeout bounds a single store round trip.
	DefaultStoreTimeout     = 5 * time.Second
	DefaultPostgresMaxConns = 5

	DefaultQuotesPage     = 1
	DefaultQuotesLimit    = 10
	DefaultQuotesMaxLimit = 100

	DefaultSeedWorkers = 4
)

// Store drivers.
const (
	StoreDriverMemory   = "memory"
	StoreDriverMongo    = "mongo"
	StoreDriverPostgres = "postgres"
)

// DefaultCategories is the stock quote category set.
var DefaultCategories = []string{"motivation", "inspiration", "wisdom", "life", "success"}

// DefaultClientConfig returns the outbound client settings used when no
// config file overrides them.
func DefaultClientConfig() ClientConfig {
	return ClientConfig{
		Timeout: DefaultClientTimeout,
		Retry: RetryConfig{
			MaxAttempts:     DefaultClientRetryMaxAttempts,
			InitialInterval: DefaultClientRetryInitialInterval,
			MaxInterval:     DefaultClientRetryMaxInterval,
			Multiplier:      DefaultClientRetryMultiplier,
			JitterFactor:    DefaultClientRetryJitterFactor,
		},
		CircuitBreaker: CircuitBreakerConfig{
			MaxFailures:   DefaultClientCircuitMaxFailures,
			Timeout:       DefaultClientCircuitTimeout,
			HalfOpenLimit: DefaultClientCircuitHalfOpenLimit,
		},
		Transport: TransportConfig{
			MaxIdleConns:        DefaultTransportMaxIdleConns,
			MaxIdleConnsPerHost: DefaultTransportMaxIdleConnsPerHost,
			IdleConnTimeout:     DefaultTransportIdleConnTimeout,
		},
	}
}

// defaults is the lowest-precedence configuration layer.
func defaults() map[string]any {
	client := DefaultClientConfig()

	return map[string]any{
		"app.name":        "quotes-service",
		"app.version":     "dev",
		"app.environment": "local",

		"server.port":             DefaultServerPort,
		"server.host":             "0.0.0.0",
		"server.read_timeout":     "30s",
		"server.write_timeout":    "30s",
		"server.idle_timeout":     "120s",
		"server.shutdown_timeout": "10s",
		"server.request_timeout":  "15s",
		"server.max_request_size": DefaultMaxRequestSize,
		"server.base_path":        "/api",
		"server.cors_origins":     []string{"*"},

		"log.level":            "info",
		"log.format":           "json",
		"log.file.enabled":     false,
		"log.file.path":        "./logs/app.log",
		"log.file.max_size":    DefaultLogFileMaxSizeMB,
		"log.file.max_backups": DefaultLogFileMaxBackups,
		"log.file.max_age":     DefaultLogFileMaxAgeDays,
		"log.file.compress":    true,

		"telemetry.enabled":       false,
		"telemetry.endpoint":      "",
		"telemetry.service_name":  "quotes-service",
		"telemetry.sampling_rate": 1.0,
		"telemetry.insecure":      true,

		"client.timeout":                           client.Timeout.String(),
		"client.retry.max_attempts":                client.Retry.MaxAttempts,
		"client.retry.initial_interval":            client.Retry.InitialInterval.String(),
		"client.retry.max_interval":                client.Retry.MaxInterval.String(),
		"client.retry.multiplier":                  client.Retry.Multiplier,
		"client.retry.jitter_factor":               client.Retry.JitterFactor,
		"client.circuit_breaker.max_failures":      client.CircuitBreaker.MaxFailures,
		"client.circuit_breaker.timeout":           client.CircuitBreaker.Timeout.String(),
		"client.circuit_breaker.half_open_limit":   client.CircuitBreaker.HalfOpenLimit,
		"client.transport.max_idle_conns":          client.Transport.MaxIdleConns,
		"client.transport.max_idle_conns_per_host": client.Transport.MaxIdleConnsPerHost,
		"client.transport.idle_conn_timeout":       client.Transport.IdleConnTimeout.String(),

		"services.quotes.base_url": "http://localhost:8080/api",
		"services.quotes.name":     "quotes-api",

		"store.driver":             StoreDriverMemory,
		"store.mongo.uri":          "",
		"store.mongo.database":     "quotes",
		"store.mongo.collection":   "quotes",
		"store.mongo.timeout":      DefaultStoreTimeout.String(),
		"store.postgres.dsn":       "",
		"store.postgres.max_conns": DefaultPostgresMaxConns,
		"store.postgres.timeout":   DefaultStoreTimeout.String(),

		"quotes.default_page":     DefaultQuotesPage,
		"quotes.default_limit":    DefaultQuotesLimit,
		"quotes.max_limit":        DefaultQuotesMaxLimit,
		"quotes.default_category": "inspiration",
		"quotes.categories":       slices.Clone(DefaultCategories),

		"seed.file":    "",
		"seed.reset":   false,
		"seed.workers": DefaultSeedWorkers,
	}
}
