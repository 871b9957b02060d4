// Package httpclient is the outbound HTTP client the console uses to reach
// the settings API. A request passes the circuit breaker, waits for the rate
// limiter, picks up the propagated request headers and a client span, and is
// then sent with retries:
//
//	client := httpclient.New(&cfg.Client, "settings-api", metrics, logger)
//	resp, err := client.Do(ctx, req)
//
// Reads are retried by method. The settings API takes its writes as POST, so
// a write is retried only when its context is marked with WithIdempotent;
// every settings write replaces the whole document, which makes a replay
// harmless.
package httpclient

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/time/rate"

	"github.com/jsamuelsen11/console-settings/internal/platform/config"
	"github.com/jsamuelsen11/console-settings/internal/platform/telemetry"
)

// Client sends requests to one downstream service. It is safe for
// concurrent use.
type Client struct {
	http    *http.Client
	baseURL string
	service string
	breaker *gobreaker.CircuitBreaker[struct{}]
	limiter *rate.Limiter // nil disables rate limiting
	retry   retryPolicy
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// New builds a client from cfg. service names the downstream in spans,
// metrics and breaker logs. metrics may be nil.
func New(cfg *config.ClientConfig, service string, metrics *telemetry.Metrics, logger *slog.Logger) *Client {
	var limiter *rate.Limiter
	if cfg.RateLimit.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit.RequestsPerSecond), cfg.RateLimit.BurstSize)
	}

	return &Client{
		http:    &http.Client{Timeout: cfg.Timeout},
		baseURL: cfg.BaseURL,
		service: service,
		breaker: newBreaker(service, cfg.CircuitBreaker, logger),
		limiter: limiter,
		retry:   newRetryPolicy(cfg.Retry),
		metrics: metrics,
		logger:  logger,
	}
}

// Do sends req on behalf of ctx.
//
// A response with a non-retryable status is returned with a nil error and
// an open body. When every attempt got a retryable status, the last response
// is returned together with the error, and its body must still be closed.
// A rejection by the breaker or the limiter, and a transport failure, return
// a nil response.
func (c *Client) Do(ctx context.Context, req *http.Request) (*http.Response, error) {
	start := time.Now()

	var resp *http.Response
	_, err := c.breaker.Execute(func() (struct{}, error) {
		if c.limiter != nil {
			if err := c.limiter.Wait(ctx); err != nil {
				return struct{}{}, err
			}
		}

		propagate(ctx, req)

		spanCtx, span := c.startSpan(ctx, req)
		defer span.End()

		req = req.WithContext(spanCtx)
		sendErr := c.send(spanCtx, req, &resp)
		endSpan(span, resp, sendErr)
		return struct{}{}, sendErr
	})

	c.record(ctx, req.Method, start, resp, err)
	return resp, err
}

// BaseURL is the configured root of the downstream API.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CircuitBreakerState returns "closed", "half-open" or "open".
func (c *Client) CircuitBreakerState() string {
	return c.breaker.State().String()
}
