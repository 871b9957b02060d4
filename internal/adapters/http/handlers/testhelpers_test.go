package handlers_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jsamuelsen11/console-settings/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
)

const (
	testSession = "4f6a0c1e-3b0f-4a4e-9d62-1c1f2f9b8a10"
	waitFor     = 2 * time.Second
	tick        = 5 * time.Millisecond
)

func loadedNotifications() settings.NotificationConfig {
	return settings.NotificationConfig{
		Email:             "ops@example.com",
		Webhook:           "https://hooks.example.com/console",
		LogsToInclude:     []string{"Updates"},
		Severity:          []string{"Alert"},
		OnePerTenant:      true,
		SendToIntegration: false,
		IncludeTenantID:   true,
	}
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	buf := &bytes.Buffer{}
	if err := json.NewEncoder(buf).Encode(v); err != nil {
		t.Fatalf("failed to encode JSON body: %v", err)
	}
	return buf
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var result T
	if err := json.NewDecoder(rec.Body).Decode(&result); err != nil {
		t.Fatalf("failed to decode JSON response: %v", err)
	}
	return result
}

func requireStatus(t *testing.T, rec *httptest.ResponseRecorder, want int) {
	t.Helper()
	if rec.Code != want {
		t.Fatalf("status = %d, want %d; body = %s", rec.Code, want, rec.Body.String())
	}
}

// newRequest builds a request carrying testSession, as the session
// middleware would.
func newRequest(method, target string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	return req.WithContext(middleware.WithSessionID(req.Context(), testSession))
}
