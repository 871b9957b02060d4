package httpclient

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPolicy() retryPolicy {
	return retryPolicy{maxAttempts: 4, initial: 100 * time.Millisecond, max: time.Second, multiplier: 2}
}

func TestRetryPolicy_Delay(t *testing.T) {
	t.Parallel()

	p := testPolicy()
	tests := []struct {
		retry int
		base  time.Duration
	}{
		{retry: 1, base: 100 * time.Millisecond},
		{retry: 2, base: 200 * time.Millisecond},
		{retry: 3, base: 400 * time.Millisecond},
		{retry: 5, base: time.Second}, // capped
		{retry: 10, base: time.Second},
	}

	for _, tt := range tests {
		lo := time.Duration(float64(tt.base) * (1 - jitter))
		hi := time.Duration(float64(tt.base) * (1 + jitter))
		for range 50 {
			d := p.delay(tt.retry)
			assert.GreaterOrEqual(t, d, lo, "retry %d", tt.retry)
			assert.LessOrEqual(t, d, hi, "retry %d", tt.retry)
		}
	}
}

func TestRetryPolicy_Attempts(t *testing.T) {
	t.Parallel()

	p := testPolicy()
	tests := []struct {
		method string
		marked bool
		want   int
	}{
		{method: http.MethodGet, want: 4},
		{method: http.MethodPut, want: 4},
		{method: http.MethodDelete, want: 4},
		{method: http.MethodPost, want: 1},
		{method: http.MethodPatch, want: 1},
		{method: http.MethodPost, marked: true, want: 4},
	}

	for _, tt := range tests {
		ctx := context.Background()
		if tt.marked {
			ctx = WithIdempotent(ctx)
		}
		req, err := http.NewRequestWithContext(ctx, tt.method, "http://localhost/api/ExecNotificationConfig", http.NoBody)
		require.NoError(t, err)
		assert.Equal(t, tt.want, p.attempts(ctx, req), "%s marked=%v", tt.method, tt.marked)
	}
}

func TestRetryable(t *testing.T) {
	t.Parallel()

	assert.False(t, retryable(nil))
	assert.False(t, retryable(context.Canceled))
	assert.False(t, retryable(&url.Error{Op: "Post", URL: "http://x", Err: context.DeadlineExceeded}))
	assert.True(t, retryable(&url.Error{Op: "Get", URL: "http://x", Err: errors.New("connection reset by peer")}))
	assert.True(t, retryable(errors.New("unexpected EOF")))
}

func TestRetryableStatus(t *testing.T) {
	t.Parallel()

	for code, want := range map[int]bool{
		http.StatusOK:                  false,
		http.StatusBadRequest:          false,
		http.StatusNotFound:            false,
		http.StatusConflict:            false,
		http.StatusTooManyRequests:     true,
		http.StatusInternalServerError: true,
		http.StatusBadGateway:          true,
		http.StatusServiceUnavailable:  true,
	} {
		assert.Equal(t, want, retryableStatus(code), "status %d", code)
	}
}

func TestReplayable(t *testing.T) {
	t.Parallel()

	t.Run("uses GetBody", func(t *testing.T) {
		t.Parallel()
		req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, "http://x", bytes.NewReader([]byte(`{"a":1}`)))
		require.NoError(t, err)

		rewind, err := replayable(req)
		require.NoError(t, err)
		first, _ := io.ReadAll(req.Body)
		require.NoError(t, rewind())
		second, _ := io.ReadAll(req.Body)
		assert.Equal(t, `{"a":1}`, string(first))
		assert.Equal(t, string(first), string(second))
	})

	t.Run("buffers a one-shot body", func(t *testing.T) {
		t.Parallel()
		req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, "http://x",
			io.NopCloser(strings.NewReader("payload")))
		require.NoError(t, err)
		require.Nil(t, req.GetBody)

		rewind, err := replayable(req)
		require.NoError(t, err)
		assert.Equal(t, int64(len("payload")), req.ContentLength)

		_, _ = io.ReadAll(req.Body)
		require.NoError(t, rewind())
		again, _ := io.ReadAll(req.Body)
		assert.Equal(t, "payload", string(again))
	})

	t.Run("no body", func(t *testing.T) {
		t.Parallel()
		req, err := http.NewRequestWithContext(context.Background(), http.MethodGet, "http://x", http.NoBody)
		require.NoError(t, err)
		rewind, err := replayable(req)
		require.NoError(t, err)
		assert.NoError(t, rewind())
	})
}

func TestWithHeader_DoesNotLeakToParent(t *testing.T) {
	t.Parallel()

	parent := WithRequestID(context.Background(), "req-1")
	child := WithCorrelationID(parent, "corr-1")

	assert.Empty(t, forwarded(parent).Get(HeaderCorrelationID))
	assert.Equal(t, "req-1", forwarded(child).Get(HeaderRequestID))
	assert.Equal(t, "corr-1", forwarded(child).Get(HeaderCorrelationID))
	assert.Nil(t, forwarded(WithRequestID(context.Background(), "")))
}

func TestClampUint32(t *testing.T) {
	t.Parallel()

	assert.Equal(t, uint32(0), clampUint32(-3))
	assert.Equal(t, uint32(0), clampUint32(0))
	assert.Equal(t, uint32(2), clampUint32(2))
}
