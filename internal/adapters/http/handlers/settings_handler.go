package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/jsamuelsen11/console-settings/internal/adapters/http/dto"
	"github.com/jsamuelsen11/console-settings/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/console-settings/internal/app"
	"github.com/jsamuelsen11/console-settings/internal/app/slot"
)

var errNoSession = errors.New("request has no console session")

// ConsoleSource resolves the settings console owned by a session.
type ConsoleSource interface {
	Console(sessionID string) *app.Console
}

// SettingsHandler serves the settings panels as a JSON API. Every session
// gets its own panels, so reads reflect that session's loads and writes.
type SettingsHandler struct {
	consoles ConsoleSource
}

// NewSettingsHandler creates a SettingsHandler.
func NewSettingsHandler(consoles ConsoleSource) *SettingsHandler {
	return &SettingsHandler{consoles: consoles}
}

// Catalog handles GET /api/v1/settings/catalog.
func (h *SettingsHandler) Catalog(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, dto.NewCatalogResponse())
}

// GetNotifications handles GET /api/v1/settings/notifications. The first
// request of a session starts the load and reports phase "fetching".
func (h *SettingsHandler) GetNotifications(w http.ResponseWriter, r *http.Request) {
	c, ok := h.console(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.ToNotificationsResponse(c.Notifications.View(r.Context())))
}

// PutNotifications handles PUT /api/v1/settings/notifications. The write is
// issued and acknowledged with 202; with ?wait=true the handler blocks until
// it settles and answers 200. A write while another is in flight is a 409.
func (h *SettingsHandler) PutNotifications(w http.ResponseWriter, r *http.Request) {
	c, ok := h.console(w, r)
	if !ok {
		return
	}

	var req dto.NotificationsRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	call, err := c.Notifications.Submit(r.Context(), req.ToForm())
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	respondSubmit(w, r, call, nil)
}

// GetPassword handles GET /api/v1/settings/password.
func (h *SettingsHandler) GetPassword(w http.ResponseWriter, r *http.Request) {
	c, ok := h.console(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dto.ToPasswordResponse(c.Password.View(r.Context())))
}

// PutPassword handles PUT /api/v1/settings/password. With ?wait=true the
// handler also waits for the follow-up read, so a subsequent GET shows the
// refreshed selection.
func (h *SettingsHandler) PutPassword(w http.ResponseWriter, r *http.Request) {
	c, ok := h.console(w, r)
	if !ok {
		return
	}

	var req dto.PasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	sel, err := c.Password.Select(r.Context(), req.Config().PasswordType)
	if err != nil {
		dto.WriteErrorResponse(w, r, err)
		return
	}
	respondSubmit(w, r, sel.Write, sel.Refreshed)
}

func (h *SettingsHandler) console(w http.ResponseWriter, r *http.Request) (*app.Console, bool) {
	id := middleware.SessionIDFromContext(r.Context())
	if id == "" {
		dto.WriteErrorResponse(w, r, errNoSession)
		return nil, false
	}
	return h.consoles.Console(id), true
}

// respondSubmit acknowledges a write. When the client asked to wait, it
// blocks on the call and then on after, if given. A failed write is still a
// 200: the failure belongs to the panel's banner, not to this request.
func respondSubmit(w http.ResponseWriter, r *http.Request, call *slot.Call, after <-chan struct{}) {
	if !wantsWait(r) {
		writeJSON(w, http.StatusAccepted, dto.ToSubmitResponse(call, false, nil))
		return
	}

	ctx := r.Context()
	callErr := call.Wait(ctx)
	if ctx.Err() != nil {
		dto.WriteErrorResponse(w, r, context.Cause(ctx))
		return
	}
	if after != nil {
		select {
		case <-after:
		case <-ctx.Done():
			dto.WriteErrorResponse(w, r, context.Cause(ctx))
			return
		}
	}

	writeJSON(w, http.StatusOK, dto.ToSubmitResponse(call, true, callErr))
}
