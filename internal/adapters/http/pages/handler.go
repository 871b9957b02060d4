package pages

import (
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/csrf"

	"github.com/jsamuelsen11/console-settings/internal/adapters/http/dto"
	"github.com/jsamuelsen11/console-settings/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/console-settings/internal/app"
	"github.com/jsamuelsen11/console-settings/internal/app/panel"
	"github.com/jsamuelsen11/console-settings/internal/app/slot"
	"github.com/jsamuelsen11/console-settings/internal/domain"
	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
	"github.com/jsamuelsen11/console-settings/internal/platform/logging"
)

// SettingsPath is where both panels are rendered.
const SettingsPath = "/settings"

const maxFormBytes = 64 << 10

// ConsoleSource resolves the settings console owned by a session.
type ConsoleSource interface {
	Console(sessionID string) *app.Console
}

// Handler serves the settings page and its two forms.
type Handler struct {
	consoles ConsoleSource
	tmpl     *template.Template
	refresh  time.Duration
}

// NewHandler parses the page templates. refresh is the reload interval used
// while a panel is busy; zero disables it.
func NewHandler(consoles ConsoleSource, refresh time.Duration) (*Handler, error) {
	tmpl, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{consoles: consoles, tmpl: tmpl, refresh: refresh}, nil
}

// helpTexts are the field descriptions shown next to the notification form.
type helpTexts struct {
	Email           string
	Webhook         string
	LogsToInclude   string
	Severity        string
	OnePerTenant    string
	Integration     string
	IncludeTenantID string
}

var notificationHelp = helpTexts{
	Email:           settings.HelpEmail,
	Webhook:         settings.HelpWebhook,
	LogsToInclude:   settings.HelpLogsToInclude,
	Severity:        settings.HelpSeverity,
	OnePerTenant:    settings.HelpOnePerTenant,
	Integration:     settings.HelpIntegration,
	IncludeTenantID: settings.HelpIncludeTenant,
}

type pageData struct {
	CSRFField      template.HTML
	RefreshSeconds int

	Notifications  app.NotificationsView
	NotifForm      *settings.NotificationForm
	LogTypes       []settings.Option
	Severities     []settings.Option
	Help           helpTexts
	Password       app.PasswordView
	PasswordErrors map[string]string
	FormError      string
}

// Settings handles GET /settings. The first visit of a session starts both
// loads.
func (h *Handler) Settings(w http.ResponseWriter, r *http.Request) {
	c, ok := h.console(w, r)
	if !ok {
		return
	}
	h.render(w, r, http.StatusOK, h.page(r, c))
}

// SaveNotifications handles POST /settings/notifications. The form is
// submitted as entered; the backend alone judges its values. The browser is
// sent back to the page, which shows the banner. A submit refused because
// another is pending is rendered again with the submitted values.
func (h *Handler) SaveNotifications(w http.ResponseWriter, r *http.Request) {
	c, ok := h.console(w, r)
	if !ok {
		return
	}
	if !parseForm(w, r) {
		return
	}

	req := dto.ParseNotificationsForm(r.PostForm)
	form := req.ToForm()
	if _, err := c.Notifications.Submit(r.Context(), form); err != nil {
		data := h.page(r, c)
		data.NotifForm = &form
		data.FormError = err.Error()
		h.render(w, r, dto.ErrorStatus(err), data)
		return
	}

	logging.FromContext(r.Context()).InfoContext(r.Context(), "notification settings submitted",
		slog.Int("log_types", len(req.LogsToInclude)),
		slog.Int("severities", len(req.Severity)),
	)
	http.Redirect(w, r, SettingsPath, http.StatusSeeOther)
}

// SavePassword handles POST /settings/password. Choosing a style writes it
// immediately, like the radio group it renders as.
func (h *Handler) SavePassword(w http.ResponseWriter, r *http.Request) {
	c, ok := h.console(w, r)
	if !ok {
		return
	}
	if !parseForm(w, r) {
		return
	}

	req := dto.PasswordRequest{PasswordType: r.PostForm.Get("passwordType")}
	if _, err := c.Password.Select(r.Context(), req.Config().PasswordType); err != nil {
		data := h.page(r, c)
		data.PasswordErrors = fieldErrors(err)
		h.render(w, r, dto.ErrorStatus(err), data)
		return
	}
	http.Redirect(w, r, SettingsPath, http.StatusSeeOther)
}

func (h *Handler) console(w http.ResponseWriter, r *http.Request) (*app.Console, bool) {
	id := middleware.SessionIDFromContext(r.Context())
	if id == "" {
		http.Error(w, "missing session", http.StatusInternalServerError)
		return nil, false
	}
	return h.consoles.Console(id), true
}

func (h *Handler) page(r *http.Request, c *app.Console) pageData {
	notif := c.Notifications.View(r.Context())
	pw := c.Password.View(r.Context())

	data := pageData{
		CSRFField:     csrf.TemplateField(r),
		Notifications: notif,
		NotifForm:     notif.Form,
		LogTypes:      settings.LogTypes,
		Severities:    settings.Severities,
		Help:          notificationHelp,
		Password:      pw,
	}
	if h.refresh > 0 && busy(notif, pw) {
		data.RefreshSeconds = max(1, int(h.refresh.Round(time.Second)/time.Second))
	}
	return data
}

// busy reports whether either panel is waiting on the backend.
func busy(n app.NotificationsView, p app.PasswordView) bool {
	loading := func(ph slot.Phase) bool { return ph == slot.Uninitialized || ph == slot.Fetching }
	writing := func(b *panel.Banner) bool { return b != nil && b.Loading }
	return loading(n.Phase) || n.SubmitDisabled || writing(n.Banner) || loading(p.Phase) || writing(p.Banner)
}

func parseForm(w http.ResponseWriter, r *http.Request) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxFormBytes)
	if err := r.ParseForm(); err != nil {
		http.Error(w, "malformed form", http.StatusBadRequest)
		return false
	}
	return true
}

func fieldErrors(err error) map[string]string {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields
	}
	return map[string]string{"form": err.Error()}
}
