package config

import "time"

// Config mirrors configs/*.yaml. Keys are the koanf tags; APP_ variables
// override them with dots replaced by underscores.
type Config struct {
	App       AppConfig       `koanf:"app"       validate:"required"`
	Server    ServerConfig    `koanf:"server"    validate:"required"`
	Log       LogConfig       `koanf:"log"       validate:"required"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Client    ClientConfig    `koanf:"client"    validate:"required"`
	Services  ServicesConfig  `koanf:"services"  validate:"required"`
	Store     StoreConfig     `koanf:"store"     validate:"required"`
	Quotes    QuotesConfig    `koanf:"quotes"    validate:"required"`
	Seed      SeedConfig      `koanf:"seed"`
}

type AppConfig struct {
	Name        string `koanf:"name"        validate:"required"`
	Version     string `koanf:"version"     validate:"required"`
	Environment string `koanf:"environment" validate:"required,oneof=local dev qa prod test"`
}

// ServerConfig drives the HTTP server and the router. RequestTimeout bounds
// API routes only; probes under /-/ are exempt.
type ServerConfig struct {
	Port            int           `koanf:"port"             validate:"required,min=1,max=65535"`
	Host            string        `koanf:"host"             validate:"required"`
	ReadTimeout     time.Duration `koanf:"read_timeout"     validate:"required,min=1s"`
	WriteTimeout    time.Duration `koanf:"write_timeout"    validate:"required,min=1s"`
	IdleTimeout     time.Duration `koanf:"idle_timeout"     validate:"required,min=1s"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"required,min=1s"`
	RequestTimeout  time.Duration `koanf:"request_timeout"`
	MaxRequestSize  int64         `koanf:"max_request_size" validate:"required,min=1"`
	BasePath        string        `koanf:"base_path"        validate:"required,startswith=/"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

type LogConfig struct {
	Level  string        `koanf:"level"  validate:"required,oneof=trace debug info warn error"`
	Format string        `koanf:"format" validate:"required,oneof=json text pretty"`
	File   LogFileConfig `koanf:"file"`
}

// LogFileConfig adds a lumberjack rolling file next to stdout.
type LogFileConfig struct {
	Enabled    bool   `koanf:"enabled"`
	Path       string `koanf:"path"       validate:"required_if=Enabled true"`
	MaxSizeMB  int    `koanf:"max_size"   validate:"omitempty,min=1,max=1024"`
	MaxBackups int    `koanf:"max_backups" validate:"omitempty,min=0,max=100"`
	MaxAgeDays int    `koanf:"max_age"    validate:"omitempty,min=0,max=365"`
	Compress   bool   `koanf:"compress"`
}

type TelemetryConfig struct {
	Enabled      bool    `koanf:"enabled"`
	Endpoint     string  `koanf:"endpoint"      validate:"required_if=Enabled true,omitempty,url"`
	ServiceName  string  `koanf:"service_name"  validate:"required_if=Enabled true"`
	SamplingRate float64 `koanf:"sampling_rate" validate:"min=0,max=1"`
	Insecure     bool    `koanf:"insecure"`
}

// ClientConfig is shared by every outbound client, quotectl included.
type ClientConfig struct {
	Timeout        time.Duration        `koanf:"timeout"         validate:"required,min=100ms"`
	Retry          RetryConfig          `koanf:"retry"           validate:"required"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker" validate:"required"`
	Transport      TransportConfig      `koanf:"transport"       validate:"required"`
}

type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"     validate:"required,min=1,max=10"`
	InitialInterval time.Duration `koanf:"initial_interval" validate:"required,min=10ms"`
	MaxInterval     time.Duration `koanf:"max_interval"     validate:"required,min=100ms"`
	Multiplier      float64       `koanf:"multiplier"       validate:"required,min=1.1,max=10"`
	JitterFactor    float64       `koanf:"jitter_factor"    validate:"min=0,max=1"`
}

// CircuitBreakerConfig: Timeout is the cool-down before half-open probes.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"    validate:"required,min=1"`
	Timeout       time.Duration `koanf:"timeout"         validate:"required,min=1s"`
	HalfOpenLimit int           `koanf:"half_open_limit" validate:"required,min=1"`
}

type TransportConfig struct {
	MaxIdleConns        int           `koanf:"max_idle_conns"         validate:"required,min=1"`
	MaxIdleConnsPerHost int           `koanf:"max_idle_conns_per_host" validate:"required,min=1"`
	IdleConnTimeout     time.Duration `koanf:"idle_conn_timeout"      validate:"required,min=1s"`
}

type ServicesConfig struct {
	Quotes ServiceEndpointConfig `koanf:"quotes" validate:"required"`
}

type ServiceEndpointConfig struct {
	BaseURL string `koanf:"base_url" validate:"required,url"`
	Name    string `koanf:"name"     validate:"required"`
}

// StoreConfig picks the quote store. Only the selected driver's section is
// used, but both are validated.
type StoreConfig struct {
	Driver   string              `koanf:"driver"   validate:"required,oneof=memory mongo postgres"`
	Mongo    MongoStoreConfig    `koanf:"mongo"    validate:"required"`
	Postgres PostgresStoreConfig `koanf:"postgres" validate:"required"`
}

// MongoStoreConfig.URI is checked in crossFieldErrors, only for driver mongo.
type MongoStoreConfig struct {
	URI        string        `koanf:"uri"`
	Database   string        `koanf:"database"   validate:"required"`
	Collection string        `koanf:"collection" validate:"required"`
	Timeout    time.Duration `koanf:"timeout"    validate:"required,min=100ms"`
}

type PostgresStoreConfig struct {
	DSN      string        `koanf:"dsn"`
	MaxConns int32         `koanf:"max_conns" validate:"required,min=1,max=100"`
	Timeout  time.Duration `koanf:"timeout"   validate:"required,min=100ms"`
}

// QuotesConfig holds the list defaults and the closed category set.
type QuotesConfig struct {
	DefaultPage     int      `koanf:"default_page"     validate:"required,min=1"`
	DefaultLimit    int      `koanf:"default_limit"    validate:"required,min=1,ltefield=MaxLimit"`
	MaxLimit        int      `koanf:"max_limit"        validate:"required,min=1"`
	DefaultCategory string   `koanf:"default_category" validate:"required"`
	Categories      []string `koanf:"categories"       validate:"required,min=1,dive,required"`
}

// SeedConfig is read by cmd/seed; its flags override each field.
type SeedConfig struct {
	File    string `koanf:"file"`
	Reset   bool   `koanf:"reset"`
	Workers int    `koanf:"workers" validate:"omitempty,min=1,max=64"`
}

