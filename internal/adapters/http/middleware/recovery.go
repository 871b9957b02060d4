package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"
	"strings"

	"github.com/jsamuelsen11/console-settings/internal/adapters/http/dto"
)

const msgInternalError = "internal server error"

// Recovery returns middleware that turns a panic in a downstream handler
// into a 500. The panic value and stack go to the log only. Browsers asking
// for HTML get a plain text page; everyone else gets a problem document.
// Nothing is written if the handler already sent its headers.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rw := record(w)

			defer func() {
				v := recover()
				if v == nil {
					return
				}
				if v == http.ErrAbortHandler {
					panic(v)
				}

				logger.ErrorContext(r.Context(), "panic recovered",
					slog.String("panic", fmt.Sprint(v)),
					slog.String("stack", string(debug.Stack())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
				)

				if rw.started {
					return
				}
				if acceptsHTML(r) {
					http.Error(rw, msgInternalError, http.StatusInternalServerError)
					return
				}
				dto.WriteProblem(rw, r, http.StatusInternalServerError, msgInternalError)
			}()

			next.ServeHTTP(rw, r)
		})
	}
}

func acceptsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}
