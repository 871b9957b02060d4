// Package http provides the inbound HTTP adapter: routing for the settings
// pages, the settings JSON API and the health probes, plus the server
// lifecycle.
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jsamuelsen11/console-settings/internal/adapters/http/dto"
	"github.com/jsamuelsen11/console-settings/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/console-settings/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/console-settings/internal/adapters/http/pages"
)

// Routes holds the handlers mounted by NewRouter.
type Routes struct {
	Health   *handlers.HealthHandler
	Settings *handlers.SettingsHandler
	Pages    *pages.Handler

	// CSRF guards the HTML form routes. Nil leaves them unguarded, which
	// only tests should do.
	CSRF func(http.Handler) http.Handler
}

// NewRouter creates an HTTP handler with all application routes registered.
// The middleware wraps every route, the first one outermost.
func NewRouter(routes Routes, middlewares ...func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Chain(middlewares...))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteProblem(w, req, http.StatusNotFound, "no route for "+req.URL.Path)
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		dto.WriteProblem(w, req, http.StatusMethodNotAllowed, req.Method+" not allowed on "+req.URL.Path)
	})

	// Health endpoints (outside /api/v1 prefix).
	r.Get("/health/live", routes.Health.Liveness)
	r.Get("/health/ready", routes.Health.Readiness)

	// Settings JSON API. Writes require an application/json body, which a
	// cross-site form cannot send without a preflight.
	r.Route("/api/v1/settings", func(r chi.Router) {
		r.Get("/catalog", routes.Settings.Catalog)
		r.Get("/notifications", routes.Settings.GetNotifications)
		r.Put("/notifications", routes.Settings.PutNotifications)
		r.Get("/password", routes.Settings.GetPassword)
		r.Put("/password", routes.Settings.PutPassword)
	})

	// Server-rendered settings page.
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, pages.SettingsPath, http.StatusFound)
	})
	r.Group(func(r chi.Router) {
		if routes.CSRF != nil {
			r.Use(routes.CSRF)
		}
		r.Get(pages.SettingsPath, routes.Pages.Settings)
		r.Post(pages.SettingsPath+"/notifications", routes.Pages.SaveNotifications)
		r.Post(pages.SettingsPath+"/password", routes.Pages.SavePassword)
	})

	return r
}
