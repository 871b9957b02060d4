package middleware_test

import (
	"bytes"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gorilla/csrf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen11/console-settings/internal/adapters/http/middleware"
)

var testCSRFKey = bytes.Repeat([]byte{0x42}, 32)

func csrfServer() http.Handler {
	return middleware.CSRF(middleware.CSRFConfig{Key: testCSRFKey})(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodGet {
				_, _ = io.WriteString(w, csrf.Token(r))
				return
			}
			w.WriteHeader(http.StatusSeeOther)
		}),
	)
}

func postForm(form url.Values, cookies []*http.Cookie) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/settings/password", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Referer", "http://example.com/settings")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	return req
}

func TestCSRF_RejectsPostWithoutToken(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	csrfServer().ServeHTTP(rec, postForm(url.Values{"passwordType": {"Classic"}}, nil))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestCSRF_AcceptsTokenFromRenderedForm(t *testing.T) {
	t.Parallel()

	srv := csrfServer()

	get := httptest.NewRecorder()
	srv.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/settings", http.NoBody))
	require.Equal(t, http.StatusOK, get.Code)
	token := get.Body.String()
	require.NotEmpty(t, token)

	cookies := get.Result().Cookies()
	require.NotEmpty(t, cookies, "token cookie must be issued on GET")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, postForm(url.Values{
		"passwordType":           {"Classic"},
		middleware.CSRFFieldName: {token},
	}, cookies))

	assert.Equal(t, http.StatusSeeOther, rec.Code)
}

func TestCSRF_RejectsForeignOrigin(t *testing.T) {
	t.Parallel()

	srv := csrfServer()

	get := httptest.NewRecorder()
	srv.ServeHTTP(get, httptest.NewRequest(http.MethodGet, "/settings", http.NoBody))

	req := postForm(url.Values{middleware.CSRFFieldName: {get.Body.String()}}, get.Result().Cookies())
	req.Header.Set("Origin", "http://attacker.example")

	rec := httptest.NewRecorder()
	srv.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}
