package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/jsamuelsen11/console-settings/internal/adapters/http/dto"
	"github.com/jsamuelsen11/console-settings/internal/platform/logging"
)

// CSRFFieldName is the hidden form field carrying the token.
const CSRFFieldName = "csrf_token"

// CSRFConfig configures the CSRF protection of the HTML settings forms.
type CSRFConfig struct {
	// Key is the 32-byte HMAC key for the token cookie.
	Key []byte

	// Secure marks the token cookie Secure. When false, requests are
	// treated as plain HTTP so the Referer check does not demand TLS.
	Secure bool

	// TrustedOrigins lists extra hosts allowed to post the forms.
	TrustedOrigins []string
}

// CSRF returns middleware protecting unsafe requests with a double-submit
// token. A rejected request gets a 403 problem response.
func CSRF(cfg CSRFConfig) func(http.Handler) http.Handler {
	protect := csrf.Protect(cfg.Key,
		csrf.Secure(cfg.Secure),
		csrf.HttpOnly(true),
		csrf.Path("/"),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.FieldName(CSRFFieldName),
		csrf.TrustedOrigins(cfg.TrustedOrigins),
		csrf.ErrorHandler(http.HandlerFunc(csrfFailure)),
	)

	return func(next http.Handler) http.Handler {
		protected := protect(next)
		if cfg.Secure {
			return protected
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			protected.ServeHTTP(w, csrf.PlaintextHTTPRequest(r))
		})
	}
}

func csrfFailure(w http.ResponseWriter, r *http.Request) {
	reason := csrf.FailureReason(r)
	logging.FromContext(r.Context()).WarnContext(r.Context(), "csrf check failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("reason", reason),
	)
	dto.WriteProblem(w, r, http.StatusForbidden, "invalid or missing CSRF token")
}
