package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	adapthttp "github.com/jsamuelsen11/console-settings/internal/adapters/http"
	"github.com/jsamuelsen11/console-settings/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/console-settings/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/console-settings/internal/adapters/http/pages"
	"github.com/jsamuelsen11/console-settings/internal/app"
	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
	"github.com/jsamuelsen11/console-settings/mocks"
)

type testRouter struct {
	handler http.Handler
	client  *mocks.MockSettingsClient
	health  *mocks.MockHealthRegistry
}

func newTestRouter(t *testing.T, csrf func(http.Handler) http.Handler, mws ...func(http.Handler) http.Handler) testRouter {
	t.Helper()

	client := mocks.NewMockSettingsClient(t)
	health := mocks.NewMockHealthRegistry(t)
	consoles := app.NewRegistry(client, app.Options{}, 0)

	ph, err := pages.NewHandler(consoles, 0)
	require.NoError(t, err)

	mws = append([]func(http.Handler) http.Handler{
		middleware.Session(middleware.SessionConfig{CookieName: "console_session", TTL: time.Minute}),
	}, mws...)

	return testRouter{
		handler: adapthttp.NewRouter(adapthttp.Routes{
			Health:   handlers.NewHealthHandler(health),
			Settings: handlers.NewSettingsHandler(consoles),
			Pages:    ph,
			CSRF:     csrf,
		}, mws...),
		client: client,
		health: health,
	}
}

func TestRouter_AllRoutesRegistered(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)

	mux, ok := router.handler.(*chi.Mux)
	require.True(t, ok, "router is not *chi.Mux")

	registered := make(map[string]bool)
	require.NoError(t, chi.Walk(mux, func(method, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		registered[method+" "+route] = true
		return nil
	}))

	for _, want := range []string{
		"GET /",
		"GET /health/live",
		"GET /health/ready",
		"GET /api/v1/settings/catalog",
		"GET /api/v1/settings/notifications",
		"PUT /api/v1/settings/notifications",
		"GET /api/v1/settings/password",
		"PUT /api/v1/settings/password",
		"GET /settings",
		"POST /settings/notifications",
		"POST /settings/password",
	} {
		assert.True(t, registered[want], "route %s not registered", want)
	}
}

func TestRouter_MiddlewareApplied(t *testing.T) {
	t.Parallel()

	called := false
	testMW := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			called = true
			next.ServeHTTP(w, r)
		})
	}
	router := newTestRouter(t, nil, testMW)

	router.health.EXPECT().CheckAll(mock.Anything).Return(map[string]error{})

	rec := httptest.NewRecorder()
	router.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called, "middleware was not called")
}

func TestRouter_RootRedirectsToSettings(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/settings", rec.Header().Get("Location"))
}

func TestRouter_SessionsGetSeparatePanels(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)

	var loads atomic.Int32
	router.client.EXPECT().FetchPasswordConfig(mock.Anything).
		RunAndReturn(func(context.Context) (settings.PasswordConfig, error) {
			loads.Add(1)
			return settings.PasswordConfig{PasswordType: settings.StyleClassic}, nil
		}).Times(2)

	for range 2 {
		rec := httptest.NewRecorder()
		router.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/settings/password", nil))
		require.Equal(t, http.StatusOK, rec.Code)
	}

	// Two cookieless requests are two sessions, so each one loads.
	require.Eventually(t, func() bool {
		return loads.Load() == 2
	}, 2*time.Second, 5*time.Millisecond)
}

func TestRouter_CSRFGuardsForms(t *testing.T) {
	t.Parallel()

	csrf := middleware.CSRF(middleware.CSRFConfig{Key: bytes.Repeat([]byte{7}, 32)})
	router := newTestRouter(t, csrf)

	req := httptest.NewRequest(http.MethodPost, "/settings/password", strings.NewReader("passwordType=Classic"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	router.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_APIIsNotBehindCSRF(t *testing.T) {
	t.Parallel()

	csrf := middleware.CSRF(middleware.CSRFConfig{Key: bytes.Repeat([]byte{7}, 32)})
	router := newTestRouter(t, csrf)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/settings/password", strings.NewReader(`{"passwordType":"Diceware"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code, "validation runs, no CSRF rejection")
}

func TestRouter_NotFoundReturnsProblem(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nonexistent", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	t.Parallel()

	router := newTestRouter(t, nil)

	rec := httptest.NewRecorder()
	router.handler.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/v1/settings/password", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
