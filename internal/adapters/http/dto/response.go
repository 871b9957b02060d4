// Package dto provides the JSON request and response bodies of the console's
// HTTP API and RFC 9457 Problem Details error responses.
package dto

import (
	"github.com/jsamuelsen11/console-settings/internal/app"
	"github.com/jsamuelsen11/console-settings/internal/app/panel"
	"github.com/jsamuelsen11/console-settings/internal/app/slot"
	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
)

// Submit statuses.
const (
	SubmitPending = "pending"
	SubmitSettled = "settled"
)

// BannerResponse is the result banner of a panel.
type BannerResponse struct {
	Tone    string `json:"tone"`
	Message string `json:"message"`
	Loading bool   `json:"loading,omitempty"`
}

// NotificationSettings is the editable notification document with
// multi-selects as label/value pairs.
type NotificationSettings struct {
	Email             string            `json:"email"`
	Webhook           string            `json:"webhook"`
	LogsToInclude     []settings.Option `json:"logsToInclude"`
	Severity          []settings.Option `json:"severity"`
	OnePerTenant      bool              `json:"onePerTenant"`
	SendToIntegration bool              `json:"sendToIntegration"`
	IncludeTenantID   bool              `json:"includeTenantId"`
}

// NotificationsResponse is the notification panel as seen by API clients.
type NotificationsResponse struct {
	Phase          string                `json:"phase"`
	LoadError      string                `json:"loadError,omitempty"`
	LoadDetail     string                `json:"loadDetail,omitempty"`
	Settings       *NotificationSettings `json:"settings,omitempty"`
	Banner         *BannerResponse       `json:"banner,omitempty"`
	SubmitDisabled bool                  `json:"submitDisabled"`
}

// PasswordOptionResponse is one selectable password style.
type PasswordOptionResponse struct {
	Style    string `json:"style"`
	Selected bool   `json:"selected"`
}

// PasswordResponse is the password panel as seen by API clients.
type PasswordResponse struct {
	Phase   string                   `json:"phase"`
	Error   string                   `json:"error,omitempty"`
	Options []PasswordOptionResponse `json:"options"`
	Banner  *BannerResponse          `json:"banner,omitempty"`
}

// SubmitResponse acknowledges a write. Status is SubmitPending when the
// write was only issued, SubmitSettled when the handler waited for it.
type SubmitResponse struct {
	Call   uint64 `json:"call"`
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

// CatalogResponse lists the values the settings forms accept.
type CatalogResponse struct {
	LogTypes       []settings.Option `json:"logTypes"`
	Severities     []settings.Option `json:"severities"`
	PasswordStyles []string          `json:"passwordStyles"`
}

// HealthResponse is the body of the health endpoints.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// ToNotificationsResponse converts the panel view.
func ToNotificationsResponse(v app.NotificationsView) NotificationsResponse {
	resp := NotificationsResponse{
		Phase:          v.Phase.String(),
		LoadError:      v.LoadError,
		LoadDetail:     v.LoadDetail,
		Banner:         toBannerResponse(v.Banner),
		SubmitDisabled: v.SubmitDisabled,
	}
	if v.Form != nil {
		resp.Settings = &NotificationSettings{
			Email:             v.Form.Email,
			Webhook:           v.Form.Webhook,
			LogsToInclude:     v.Form.LogsToInclude,
			Severity:          v.Form.Severity,
			OnePerTenant:      v.Form.OnePerTenant,
			SendToIntegration: v.Form.SendToIntegration,
			IncludeTenantID:   v.Form.IncludeTenantID,
		}
	}
	return resp
}

// ToPasswordResponse converts the panel view.
func ToPasswordResponse(v app.PasswordView) PasswordResponse {
	opts := make([]PasswordOptionResponse, len(v.Options))
	for i, o := range v.Options {
		opts[i] = PasswordOptionResponse{Style: o.Style.String(), Selected: o.Selected}
	}
	return PasswordResponse{
		Phase:   v.Phase.String(),
		Error:   v.Err,
		Options: opts,
		Banner:  toBannerResponse(v.Banner),
	}
}

// ToSubmitResponse describes call. When settled is false the call may still
// be in flight and err is ignored.
func ToSubmitResponse(call *slot.Call, settled bool, err error) SubmitResponse {
	resp := SubmitResponse{Call: call.ID(), Status: SubmitPending}
	if settled {
		resp.Status = SubmitSettled
		if err != nil {
			resp.Error = err.Error()
		}
	}
	return resp
}

// NewCatalogResponse lists the notification catalogs and password styles.
func NewCatalogResponse() CatalogResponse {
	styles := settings.PasswordStyles()
	names := make([]string, len(styles))
	for i, s := range styles {
		names[i] = s.String()
	}
	return CatalogResponse{
		LogTypes:       settings.LogTypes,
		Severities:     settings.Severities,
		PasswordStyles: names,
	}
}

func toBannerResponse(b *panel.Banner) *BannerResponse {
	if b == nil {
		return nil
	}
	return &BannerResponse{Tone: string(b.Tone), Message: b.Message, Loading: b.Loading}
}
