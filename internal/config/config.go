// Package config provides centralized configuration management for the registry.
// It loads configuration from environment variables with sensible defaults and
// validates all settings on startup to fail fast on misconfiguration.
package config

import (
	"net"
	"strconv"
	"time"
)

// Dataset sources.
const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
)

// Config holds all application configuration.
// All settings can be configured via environment variables.
type Config struct {
	Server   ServerConfig
	Dataset  DatasetConfig
	Database DatabaseConfig
	Query    QueryConfig
	Rate     RateLimitConfig
	Security SecurityConfig
	Logging  LoggingConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host is the interface to bind to (default: 0.0.0.0)
	Host string `env:"SERVER_HOST" default:"0.0.0.0"`

	// Port is the port to listen on (default: 8080)
	Port int `env:"SERVER_PORT" default:"8080"`

	ReadTimeout     time.Duration `env:"SERVER_READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `env:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout     time.Duration `env:"SERVER_IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" default:"30s"`

	// RequestTimeout is the middleware timeout for requests (default: 30s)
	RequestTimeout time.Duration `env:"SERVER_REQUEST_TIMEOUT" default:"30s"`
}

// DatasetConfig selects where the record snapshot is loaded from.
type DatasetConfig struct {
	// Source is "file" or "postgres" (default: file)
	Source string `env:"DATASET_SOURCE" default:"file"`

	// Path is the JSON snapshot used by the file source
	Path string `env:"DATASET_PATH" default:"data/mockData.json"`

	// Table is the table read by the postgres source
	Table string `env:"DATASET_TABLE" default:"identity_records"`
}

// DatabaseConfig holds database connection settings, used only by the
// postgres dataset source.
type DatabaseConfig struct {
	// URL is the PostgreSQL connection string
	// Supports both DATABASE_URL and DB_URL env vars for compatibility
	URL string `env:"DATABASE_URL" envAlt:"DB_URL"`

	MaxConns        int           `env:"DB_MAX_CONNS" default:"4"`
	MinConns        int           `env:"DB_MIN_CONNS" default:"0"`
	ConnectTimeout  time.Duration `env:"DB_CONNECT_TIMEOUT" default:"30s"`
	MaxConnLifetime time.Duration `env:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// QueryConfig bounds query work.
type QueryConfig struct {
	// MaxConcurrentScans is the number of full-store passes allowed at once (default: 4)
	MaxConcurrentScans int `env:"QUERY_MAX_CONCURRENT_SCANS" default:"4"`

	// MaxWaitTime is how long a full pass waits for a slot (default: 5s)
	MaxWaitTime time.Duration `env:"QUERY_MAX_WAIT_TIME" default:"5s"`

	// MaxLimit caps the search limit a client may request (default: 1000)
	MaxLimit int `env:"QUERY_MAX_LIMIT" default:"1000"`

	// MaxSample caps the sample size a client may request (default: 100)
	MaxSample int `env:"QUERY_MAX_SAMPLE" default:"100"`
}

// RateLimitConfig holds rate limiting settings per time window.
type RateLimitConfig struct {
	// Enabled controls whether rate limiting is active (default: true)
	Enabled bool `env:"RATE_LIMIT_ENABLED" default:"true"`

	// RequestsPerMinute is the rate limit per IP (default: 100)
	RequestsPerMinute int `env:"RATE_LIMIT_REQUESTS_PER_MINUTE" default:"100"`
}

// SecurityConfig holds security-related settings.
type SecurityConfig struct {
	// TrustedProxies is a comma-separated list of trusted proxy CIDRs
	TrustedProxies []string `env:"TRUSTED_PROXIES"`

	// CORSOrigin is sent as Access-Control-Allow-Origin on API responses (default: *)
	CORSOrigin string `env:"CORS_ALLOW_ORIGIN" default:"*"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: debug, info, warn, error (default: info)
	Level string `env:"LOG_LEVEL" default:"info"`

	// Format is the log format: text or json (default: text)
	Format string `env:"LOG_FORMAT" default:"text"`
}

// Addr returns the server listen address in host:port format.
func (c *ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
