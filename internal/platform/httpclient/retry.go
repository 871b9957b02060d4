package httpclient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/jsamuelsen11/console-settings/internal/platform/config"
	"github.com/jsamuelsen11/console-settings/internal/platform/logging"
)

// jitter is the largest random share added to or taken from a backoff delay.
const jitter = 0.25

// retryPolicy is exponential backoff with jitter, capped at maxInterval.
type retryPolicy struct {
	maxAttempts int
	initial     time.Duration
	max         time.Duration
	multiplier  float64
}

func newRetryPolicy(cfg config.RetryConfig) retryPolicy {
	return retryPolicy{
		maxAttempts: cfg.MaxAttempts,
		initial:     cfg.InitialInterval,
		max:         cfg.MaxInterval,
		multiplier:  cfg.Multiplier,
	}
}

// attempts is how many times req may be sent.
func (p retryPolicy) attempts(ctx context.Context, req *http.Request) int {
	if isMarkedIdempotent(ctx) {
		return p.maxAttempts
	}
	switch req.Method {
	case http.MethodGet, http.MethodHead, http.MethodPut, http.MethodDelete, http.MethodOptions:
		return p.maxAttempts
	default:
		return 1
	}
}

// delay is the wait before retry n, where n is 1 for the first retry.
func (p retryPolicy) delay(n int) time.Duration {
	d := float64(p.initial) * math.Pow(p.multiplier, float64(n-1))
	d = min(d, float64(p.max))
	d += d * jitter * (2*rand.Float64() - 1)
	return time.Duration(max(d, 0))
}

// send performs the attempts for req. The final response, if any, is
// stored in resp so the caller owns closing it.
func (c *Client) send(ctx context.Context, req *http.Request, resp **http.Response) error {
	if c.retry.maxAttempts < 1 {
		return fmt.Errorf("httpclient: max attempts must be >= 1, got %d", c.retry.maxAttempts)
	}

	rewind, err := replayable(req)
	if err != nil {
		return err
	}

	attempts := c.retry.attempts(ctx, req)
	var lastErr error
	for n := range attempts {
		if n > 0 {
			if err := c.pause(ctx, req, n, lastErr); err != nil {
				return err
			}
			if err := rewind(); err != nil {
				return err
			}
		}

		r, err := c.http.Do(req)
		switch {
		case err != nil:
			if !retryable(err) {
				return err
			}
			lastErr = err
		case !retryableStatus(r.StatusCode):
			*resp = r
			return nil
		case n == attempts-1:
			*resp = r
			return fmt.Errorf("HTTP %d from %s", r.StatusCode, c.service)
		default:
			lastErr = fmt.Errorf("HTTP %d from %s", r.StatusCode, c.service)
			discard(r)
		}
	}
	return lastErr
}

// replayable returns a function that resets req's body for another attempt.
// Requests built from an in-memory body already carry GetBody; anything
// else is read into memory once.
func replayable(req *http.Request) (func() error, error) {
	if req.Body == nil || req.Body == http.NoBody {
		return func() error { return nil }, nil
	}
	if req.GetBody == nil {
		buf, err := io.ReadAll(req.Body)
		_ = req.Body.Close()
		if err != nil {
			return nil, fmt.Errorf("reading request body: %w", err)
		}
		req.GetBody = func() (io.ReadCloser, error) {
			return io.NopCloser(bytes.NewReader(buf)), nil
		}
		req.Body, _ = req.GetBody()
		req.ContentLength = int64(len(buf))
	}
	return func() error {
		body, err := req.GetBody()
		if err != nil {
			return fmt.Errorf("rewinding request body: %w", err)
		}
		req.Body = body
		return nil
	}, nil
}

// discard drains and closes a response that will not be returned so the
// connection can be reused.
func discard(r *http.Response) {
	_, _ = io.Copy(io.Discard, r.Body)
	_ = r.Body.Close()
}

func (c *Client) pause(ctx context.Context, req *http.Request, n int, cause error) error {
	d := c.retry.delay(n)

	logging.FromContext(ctx).WarnContext(ctx, "retrying settings api request",
		slog.String("method", req.Method),
		slog.String("path", req.URL.Path),
		slog.String("peer_service", c.service),
		slog.Int("attempt", n+1),
		slog.Int("max_attempts", c.retry.maxAttempts),
		slog.Duration("backoff", d),
		slog.Any("error", cause),
	)

	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// retryable reports whether a transport error may succeed on another try.
// Cancellation and deadlines are final.
func retryable(err error) bool {
	return err != nil && !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
}

// retryableStatus is true for 429 and every 5xx.
func retryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}
