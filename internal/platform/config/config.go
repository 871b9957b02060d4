// Package config loads and validates the console's configuration from
// layered sources: defaults -> base.yaml -> {profile}.yaml -> APP_* env vars.
package config

import "time"

// Config holds all configuration for the service.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Log       LogConfig       `koanf:"log"`
	Client    ClientConfig    `koanf:"client"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
	Console   ConsoleConfig   `koanf:"console"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host         string        `koanf:"host"`
	Port         int           `koanf:"port"`
	ReadTimeout  time.Duration `koanf:"read_timeout"`
	WriteTimeout time.Duration `koanf:"write_timeout"`
	IdleTimeout  time.Duration `koanf:"idle_timeout"`
}

// LogConfig holds structured logging settings.
type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// ClientConfig holds settings for the HTTP client used to reach the
// settings API.
type ClientConfig struct {
	BaseURL        string               `koanf:"base_url"`
	Timeout        time.Duration        `koanf:"timeout"`
	Retry          RetryConfig          `koanf:"retry"`
	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
	RateLimit      RateLimitConfig      `koanf:"rate_limit"`
}

// RetryConfig holds retry policy settings with exponential backoff.
type RetryConfig struct {
	MaxAttempts     int           `koanf:"max_attempts"`
	InitialInterval time.Duration `koanf:"initial_interval"`
	MaxInterval     time.Duration `koanf:"max_interval"`
	Multiplier      float64       `koanf:"multiplier"`
}

// CircuitBreakerConfig holds circuit breaker settings.
type CircuitBreakerConfig struct {
	MaxFailures   int           `koanf:"max_failures"`
	Timeout       time.Duration `koanf:"timeout"`
	HalfOpenLimit int           `koanf:"half_open_limit"`
}

// RateLimitConfig bounds outbound request rate. Zero RequestsPerSecond
// disables limiting.
type RateLimitConfig struct {
	RequestsPerSecond float64 `koanf:"requests_per_second"`
	BurstSize         int     `koanf:"burst_size"`
}

// TelemetryConfig holds OpenTelemetry settings.
type TelemetryConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Exporter    string `koanf:"exporter"`
	Endpoint    string `koanf:"endpoint"`
	ServiceName string `koanf:"service_name"`
}

// ConsoleConfig holds settings for the settings panels and the browser
// sessions that own them.
type ConsoleConfig struct {
	// CallTimeout bounds each backend call issued by a panel. Zero disables
	// the bound.
	CallTimeout   time.Duration `koanf:"call_timeout"`
	SessionTTL    time.Duration `koanf:"session_ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
	SessionCookie string        `koanf:"session_cookie"`

	// MaxSessions caps live console sessions. The least recently used
	// session is evicted when a new one would exceed it.
	MaxSessions int `koanf:"max_sessions"`

	// PageRefresh is how often the HTML page reloads itself while a panel
	// has a call in flight. Zero disables the reload.
	PageRefresh time.Duration `koanf:"page_refresh"`

	// CSRFKey authenticates CSRF tokens on HTML forms. Must be 32 bytes.
	CSRFKey       string `koanf:"csrf_key"`
	SecureCookies bool   `koanf:"secure_cookies"`

	Password PasswordPanelConfig `koanf:"password"`
}

// PasswordPanelConfig holds password panel settings.
type PasswordPanelConfig struct {
	// RefreshMode is "concurrent" or "sequential".
	RefreshMode string `koanf:"refresh_mode"`
}
