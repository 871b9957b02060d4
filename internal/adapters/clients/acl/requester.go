package acl

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/console-settings/internal/platform/httpclient"
)

const mediaJSON = "application/json"

// Requester performs JSON round trips against the settings API through an
// [httpclient.Client], translating failures with [TranslateHTTPError].
type Requester struct {
	client *httpclient.Client
	logger *slog.Logger
}

// NewRequester creates a Requester.
func NewRequester(client *httpclient.Client, logger *slog.Logger) *Requester {
	return &Requester{client: client, logger: logger}
}

// Do sends method to path, relative to the client's base URL. in, when not
// nil, is encoded as the JSON body; out, when not nil, receives the decoded
// 2xx reply.
func (r *Requester) Do(ctx context.Context, method, path string, in, out any) error {
	req, err := r.build(ctx, method, path, in)
	if err != nil {
		return err
	}

	resp, err := r.client.Do(ctx, req)
	if resp != nil {
		defer r.drain(ctx, resp)
	}

	switch {
	case resp != nil && !ok(resp.StatusCode):
		// Exhausted retries return the last reply alongside the error; its
		// body says more than the retry error does.
		r.logger.ErrorContext(ctx, "settings api rejected request",
			slog.String("method", method),
			slog.String("path", path),
			slog.Int("status", resp.StatusCode),
		)
		return TranslateHTTPError(resp)
	case err != nil:
		r.logger.ErrorContext(ctx, "settings api unreachable",
			slog.String("method", method),
			slog.String("path", path),
			slog.Any("error", err),
		)
		return fmt.Errorf("%s %s: %w", method, path, err)
	case out == nil:
		return nil
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s reply: %w", method, path, err)
	}
	return nil
}

// CircuitBreakerState reports the underlying client's breaker state.
func (r *Requester) CircuitBreakerState() string {
	return r.client.CircuitBreakerState()
}

func (r *Requester) build(ctx context.Context, method, path string, in any) (*http.Request, error) {
	var body io.Reader = http.NoBody
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encoding %s %s body: %w", method, path, err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.client.BaseURL()+path, body)
	if err != nil {
		return nil, fmt.Errorf("building %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", mediaJSON)
	if in != nil {
		req.Header.Set("Content-Type", mediaJSON)
	}
	return req, nil
}

func (r *Requester) drain(ctx context.Context, resp *http.Response) {
	if err := resp.Body.Close(); err != nil {
		r.logger.WarnContext(ctx, "closing settings api reply", slog.Any("error", err))
	}
}

func ok(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}
