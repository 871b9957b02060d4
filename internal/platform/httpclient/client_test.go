package httpclient_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/console-settings/internal/platform/config"
	"github.com/jsamuelsen11/console-settings/internal/platform/httpclient"
	"github.com/jsamuelsen11/console-settings/internal/platform/telemetry"
)

func testConfig(baseURL string) *config.ClientConfig {
	return &config.ClientConfig{
		BaseURL: baseURL,
		Timeout: 5 * time.Second,
		Retry: config.RetryConfig{
			MaxAttempts:     3,
			InitialInterval: 5 * time.Millisecond,
			MaxInterval:     20 * time.Millisecond,
			Multiplier:      2.0,
		},
		CircuitBreaker: config.CircuitBreakerConfig{
			MaxFailures:   10,
			Timeout:       time.Second,
			HalfOpenLimit: 1,
		},
	}
}

func newClient(t *testing.T, cfg *config.ClientConfig) *httpclient.Client {
	t.Helper()
	return httpclient.New(cfg, "settings-api", nil, slog.New(slog.DiscardHandler))
}

// statusSequence answers with codes in order and then repeats the last one.
func statusSequence(hits *atomic.Int32, codes ...int) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		n := int(hits.Add(1)) - 1
		w.WriteHeader(codes[min(n, len(codes)-1)])
		_, _ = w.Write([]byte("attempt"))
	}
}

func get(t *testing.T, c *httpclient.Client, ctx context.Context, url string) (*http.Response, error) {
	t.Helper()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	require.NoError(t, err)
	resp, err := c.Do(ctx, req)
	if resp != nil {
		t.Cleanup(func() { _ = resp.Body.Close() })
	}
	return resp, err
}

func TestDo_Success(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/ListNotificationConfig", r.URL.Path)
		_, _ = w.Write([]byte(`{"email":""}`))
	}))
	t.Cleanup(srv.Close)

	c := newClient(t, testConfig(srv.URL))
	resp, err := get(t, c, context.Background(), c.BaseURL()+"/api/ListNotificationConfig")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.JSONEq(t, `{"email":""}`, string(body))
}

func TestDo_Retries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		codes     []int
		wantCode  int
		wantHits  int32
		wantError bool
	}{
		{name: "recovers after 503", codes: []int{503, 200}, wantCode: 200, wantHits: 2},
		{name: "recovers after 429", codes: []int{429, 429, 200}, wantCode: 200, wantHits: 3},
		{name: "4xx is final", codes: []int{400}, wantCode: 400, wantHits: 1},
		{name: "404 is final", codes: []int{404}, wantCode: 404, wantHits: 1},
		{name: "exhausted returns last response", codes: []int{500}, wantCode: 500, wantHits: 3, wantError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var hits atomic.Int32
			srv := httptest.NewServer(statusSequence(&hits, tt.codes...))
			t.Cleanup(srv.Close)

			resp, err := get(t, newClient(t, testConfig(srv.URL)), context.Background(), srv.URL)
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "settings-api")
			} else {
				require.NoError(t, err)
			}
			require.NotNil(t, resp)
			assert.Equal(t, tt.wantCode, resp.StatusCode)
			assert.Equal(t, tt.wantHits, hits.Load())
		})
	}
}

func TestDo_WriteRetries(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		ctx      func() context.Context
		wantHits int32
	}{
		{name: "plain POST is sent once", ctx: context.Background, wantHits: 1},
		{
			name:     "idempotent POST replays the body",
			ctx:      func() context.Context { return httpclient.WithIdempotent(context.Background()) },
			wantHits: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var hits atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				body, _ := io.ReadAll(r.Body)
				assert.JSONEq(t, `{"PasswordType":"Classic"}`, string(body), "attempt %d", hits.Load()+1)
				if hits.Add(1) == 1 {
					w.WriteHeader(http.StatusBadGateway)
					return
				}
				_, _ = w.Write([]byte(`{"Results":"ok"}`))
			}))
			t.Cleanup(srv.Close)

			ctx := tt.ctx()
			req, err := http.NewRequestWithContext(ctx, http.MethodPost, srv.URL+"/api/ExecPasswordConfig",
				strings.NewReader(`{"PasswordType":"Classic"}`))
			require.NoError(t, err)

			resp, _ := newClient(t, testConfig(srv.URL)).Do(ctx, req)
			if resp != nil {
				_ = resp.Body.Close()
			}
			assert.Equal(t, tt.wantHits, hits.Load())
		})
	}
}

func TestDo_PropagatesHeaders(t *testing.T) {
	t.Parallel()

	got := make(chan http.Header, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got <- r.Header.Clone()
	}))
	t.Cleanup(srv.Close)

	c := newClient(t, testConfig(srv.URL))

	ctx := httpclient.WithCorrelationID(httpclient.WithRequestID(context.Background(), "req-123"), "corr-456")
	_, err := get(t, c, ctx, srv.URL)
	require.NoError(t, err)
	h := <-got
	assert.Equal(t, "req-123", h.Get(httpclient.HeaderRequestID))
	assert.Equal(t, "corr-456", h.Get(httpclient.HeaderCorrelationID))

	_, err = get(t, c, context.Background(), srv.URL)
	require.NoError(t, err)
	h = <-got
	assert.Empty(t, h.Get(httpclient.HeaderRequestID))
	assert.Empty(t, h.Get(httpclient.HeaderCorrelationID))
}

func TestDo_CircuitBreaker(t *testing.T) {
	t.Parallel()

	var failing atomic.Bool
	failing.Store(true)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		if failing.Load() {
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	cfg.Retry.MaxAttempts = 1
	cfg.CircuitBreaker.MaxFailures = 1
	cfg.CircuitBreaker.Timeout = 50 * time.Millisecond
	c := newClient(t, cfg)
	assert.Equal(t, "closed", c.CircuitBreakerState())

	_, err := get(t, c, context.Background(), srv.URL)
	require.Error(t, err)
	assert.Equal(t, "open", c.CircuitBreakerState())

	before := hits.Load()
	resp, err := get(t, c, context.Background(), srv.URL)
	require.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Nil(t, resp)
	assert.Equal(t, before, hits.Load(), "open breaker must not reach the server")

	failing.Store(false)
	require.Eventually(t, func() bool {
		return c.CircuitBreakerState() == "half-open"
	}, time.Second, 5*time.Millisecond)

	resp, err = get(t, c, context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "closed", c.CircuitBreakerState())
}

func TestDo_CanceledContext(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	resp, err := get(t, newClient(t, testConfig(srv.URL)), ctx, srv.URL)
	require.Error(t, err)
	assert.Nil(t, resp)
}

func TestDo_RateLimited(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	t.Cleanup(srv.Close)

	cfg := testConfig(srv.URL)
	cfg.RateLimit = config.RateLimitConfig{RequestsPerSecond: 1, BurstSize: 1}
	c := newClient(t, cfg)

	_, err := get(t, c, context.Background(), srv.URL)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err = get(t, c, ctx, srv.URL)
	require.Error(t, err, "second request must not fit before the deadline")
}

func TestDo_RecordsMetrics(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(srv.Close)

	reader := sdkmetric.NewManualReader()
	metrics, err := telemetry.NewMetrics(sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader)), "test")
	require.NoError(t, err)

	c := httpclient.New(testConfig(srv.URL), "settings-api", metrics, slog.New(slog.DiscardHandler))
	_, err = get(t, c, context.Background(), srv.URL)
	require.NoError(t, err)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	var found bool
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok || m.Name != "http.client.request.total" {
				continue
			}
			for _, dp := range sum.DataPoints {
				found = true
				result, _ := dp.Attributes.Value(telemetry.AttrResult)
				peer, _ := dp.Attributes.Value(telemetry.AttrPeerService)
				assert.Equal(t, "error", result.AsString())
				assert.Equal(t, "settings-api", peer.AsString())
			}
		}
	}
	assert.True(t, found, "client request counter not recorded")
}
