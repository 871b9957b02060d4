package dto

import (
	"net/url"
	"strings"

	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
)

// NotificationsRequest is the body of PUT /api/v1/settings/notifications and
// the parsed form of POST /settings/notifications. Multi-selects carry plain
// values. Values are forwarded unchecked; the settings API reports anything
// it rejects through the submit result.
type NotificationsRequest struct {
	Email             string   `json:"email"`
	Webhook           string   `json:"webhook"`
	LogsToInclude     []string `json:"logsToInclude"`
	Severity          []string `json:"severity"`
	OnePerTenant      bool     `json:"onePerTenant"`
	SendToIntegration bool     `json:"sendToIntegration"`
	IncludeTenantID   bool     `json:"includeTenantId"`
}

// ParseNotificationsForm reads an HTML form submission. Checkboxes are
// present only when ticked.
func ParseNotificationsForm(values url.Values) NotificationsRequest {
	return NotificationsRequest{
		Email:             strings.TrimSpace(values.Get("email")),
		Webhook:           strings.TrimSpace(values.Get("webhook")),
		LogsToInclude:     values["logsToInclude"],
		Severity:          values["severity"],
		OnePerTenant:      values.Has("onePerTenant"),
		SendToIntegration: values.Has("sendToIntegration"),
		IncludeTenantID:   values.Has("includeTenantId"),
	}
}

// ToForm wraps the request into the panel's form, labels included.
func (r *NotificationsRequest) ToForm() settings.NotificationForm {
	return settings.NotificationForm{
		Email:             r.Email,
		Webhook:           r.Webhook,
		LogsToInclude:     settings.OptionsFor(nonNil(r.LogsToInclude), settings.LogTypes),
		Severity:          settings.OptionsFor(nonNil(r.Severity), settings.Severities),
		OnePerTenant:      r.OnePerTenant,
		SendToIntegration: r.SendToIntegration,
		IncludeTenantID:   r.IncludeTenantID,
	}
}

// PasswordRequest is the body of PUT /api/v1/settings/password and the
// parsed form of POST /settings/password.
type PasswordRequest struct {
	PasswordType string `json:"passwordType"`
}

// Validate rejects unknown password styles.
func (r *PasswordRequest) Validate() error {
	return r.Config().Validate()
}

// Config converts the request to the domain document.
func (r *PasswordRequest) Config() settings.PasswordConfig {
	return settings.PasswordConfig{PasswordType: settings.PasswordStyle(strings.TrimSpace(r.PasswordType))}
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
