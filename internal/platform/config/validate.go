package config

import (
	"errors"
	"fmt"
	"net/url"
	"slices"
	"strings"
)

const csrfKeyLen = 32

var (
	logLevels    = []string{"debug", "info", "warn", "error"}
	logFormats   = []string{"json", "text"}
	exporters    = []string{"stdout", "otlp"}
	refreshModes = []string{"concurrent", "sequential"}
)

// problems collects validation failures for one section.
type problems []error

func (p *problems) check(ok bool, format string, args ...any) {
	if !ok {
		*p = append(*p, fmt.Errorf(format, args...))
	}
}

func (p *problems) oneOf(key, got string, allowed []string) {
	p.check(slices.Contains(allowed, got),
		"%s must be one of: %s; got %q", key, strings.Join(allowed, ", "), got)
}

func (p problems) err() error { return errors.Join(p...) }

// Validate checks every section and reports all failures at once.
func (c *Config) Validate() error {
	return errors.Join(
		c.Server.validate(),
		c.Log.validate(),
		c.Client.validate(),
		c.Telemetry.validate(),
		c.Console.validate(),
	)
}

func (s *ServerConfig) validate() error {
	var p problems
	p.check(s.Port >= 1 && s.Port <= 65535, "server.port must be between 1 and 65535, got %d", s.Port)
	p.check(s.ReadTimeout > 0, "server.read_timeout must be positive")
	p.check(s.WriteTimeout > 0, "server.write_timeout must be positive")
	return p.err()
}

func (l *LogConfig) validate() error {
	var p problems
	p.oneOf("log.level", l.Level, logLevels)
	p.oneOf("log.format", l.Format, logFormats)
	return p.err()
}

func (cl *ClientConfig) validate() error {
	var p problems

	u, err := url.Parse(cl.BaseURL)
	p.check(cl.BaseURL != "", "client.base_url must not be empty")
	p.check(cl.BaseURL == "" || (err == nil && u.Scheme != "" && u.Host != ""),
		"client.base_url must be an absolute URL, got %q", cl.BaseURL)

	p.check(cl.Timeout > 0, "client.timeout must be positive")
	p.check(cl.Retry.MaxAttempts >= 1, "client.retry.max_attempts must be >= 1, got %d", cl.Retry.MaxAttempts)
	p.check(cl.Retry.Multiplier > 0, "client.retry.multiplier must be positive, got %f", cl.Retry.Multiplier)
	p.check(cl.CircuitBreaker.MaxFailures >= 1,
		"client.circuit_breaker.max_failures must be >= 1, got %d", cl.CircuitBreaker.MaxFailures)
	p.check(cl.RateLimit.RequestsPerSecond >= 0,
		"client.rate_limit.requests_per_second must not be negative, got %f", cl.RateLimit.RequestsPerSecond)
	p.check(cl.RateLimit.RequestsPerSecond == 0 || cl.RateLimit.BurstSize >= 1,
		"client.rate_limit.burst_size must be >= 1 when limiting, got %d", cl.RateLimit.BurstSize)
	return p.err()
}

func (t *TelemetryConfig) validate() error {
	if !t.Enabled {
		return nil
	}
	var p problems
	p.oneOf("telemetry.exporter", t.Exporter, exporters)
	p.check(t.Exporter != "otlp" || t.Endpoint != "", "telemetry.endpoint must not be empty when exporter is otlp")
	return p.err()
}

func (c *ConsoleConfig) validate() error {
	var p problems
	p.check(c.CallTimeout >= 0, "console.call_timeout must not be negative")
	p.check(c.SessionTTL > 0, "console.session_ttl must be positive")
	p.check(c.SweepInterval > 0, "console.sweep_interval must be positive")
	p.check(c.MaxSessions > 0, "console.max_sessions must be positive")
	p.check(c.SessionCookie != "", "console.session_cookie must not be empty")
	p.check(c.PageRefresh >= 0, "console.page_refresh must not be negative")
	p.check(len(c.CSRFKey) == csrfKeyLen, "console.csrf_key must be %d bytes, got %d", csrfKeyLen, len(c.CSRFKey))
	p.oneOf("console.password.refresh_mode", c.Password.RefreshMode, refreshModes)
	return p.err()
}
