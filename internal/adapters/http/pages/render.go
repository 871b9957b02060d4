// Package pages renders the settings panels as server-side HTML. Forms post
// back and redirect (POST/redirect/GET), so the panels work without
// JavaScript; while a panel has a call in flight the page reloads itself.
package pages

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
	"github.com/jsamuelsen11/console-settings/internal/platform/logging"
)

//go:embed templates/*.html
var templateFS embed.FS

func parseTemplates() (*template.Template, error) {
	funcs := template.FuncMap{
		"selected": settings.Selected,
	}
	tmpl, err := template.New("root").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parsing page templates: %w", err)
	}
	return tmpl, nil
}

// render executes the settings page into a buffer first so a template error
// still produces a clean 500 instead of a half-written page.
func (h *Handler) render(w http.ResponseWriter, r *http.Request, status int, data pageData) {
	var buf bytes.Buffer
	if err := h.tmpl.ExecuteTemplate(&buf, "settings", data); err != nil {
		logging.FromContext(r.Context()).ErrorContext(r.Context(), "rendering settings page",
			slog.Any("error", err),
		)
		http.Error(w, "internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
