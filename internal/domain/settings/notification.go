package settings

import "slices"

// NotificationConfig is the persisted notification preferences document.
type NotificationConfig struct {
	Email             string
	Webhook           string
	LogsToInclude     []string
	Severity          []string
	OnePerTenant      bool
	SendToIntegration bool
	IncludeTenantID   bool
}

// Option is a display pair used by multi-select fields. Value is what the
// backend stores; Label is what a renderer shows.
type Option struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// LogTypes lists the log sources a tenant can receive alerts from, in the
// order renderers present them.
var LogTypes = []Option{
	{Value: "Updates", Label: "Updates Status"},
	{Value: "Standards", Label: "All Standards"},
	{Value: "TokensUpdater", Label: "Token Events"},
	{Value: "ExecDnsConfig", Label: "Changing DNS Settings"},
	{Value: "ExecExcludeLicenses", Label: "Adding excluded licenses"},
	{Value: "ExecExcludeTenant", Label: "Adding excluded tenants"},
	{Value: "EditUser", Label: "Editing a user"},
	{Value: "ChocoApp", Label: "Adding or deploying applications"},
	{Value: "AddAPDevice", Label: "Adding autopilot devices"},
	{Value: "EditTenant", Label: "Editing a tenant"},
	{Value: "AddMSPApp", Label: "Adding an MSP app"},
	{Value: "AddUser", Label: "Adding a user"},
	{Value: "AddGroup", Label: "Adding a group"},
	{Value: "NewTenant", Label: "Adding a tenant"},
	{Value: "ExecOffboardUser", Label: "Executing the offboard wizard"},
}

// Severities lists the alert severities a tenant can subscribe to.
var Severities = []Option{
	{Value: "Alert", Label: "Alert"},
	{Value: "Error", Label: "Error"},
	{Value: "Info", Label: "Info"},
	{Value: "Warning", Label: "Warning"},
	{Value: "Critical", Label: "Critical"},
}

// Help texts shown next to notification fields.
const (
	HelpEmail         = "E-mail (Separate multiple E-mails with commas e.g.: matt@example.com, joe@sample.com)"
	HelpWebhook       = "Webhook"
	HelpLogsToInclude = "Choose which logs you'd like to receive alerts from. This notification will be sent every 15 minutes."
	HelpSeverity      = "Choose which severity of alert you want to be notified for."
	HelpOnePerTenant  = "Receive one email per tenant"
	HelpIntegration   = "Send notifications to configured integration(s)"
	HelpIncludeTenant = "Include Tenant ID in alerts"
)

// NotificationForm is the editable representation of a NotificationConfig.
// Multi-select fields carry Label/Value pairs for display; Config converts
// them back to the plain values the backend expects.
type NotificationForm struct {
	Email             string   `json:"email"`
	Webhook           string   `json:"webhook"`
	LogsToInclude     []Option `json:"logsToInclude"`
	Severity          []Option `json:"Severity"`
	OnePerTenant      bool     `json:"onePerTenant"`
	SendToIntegration bool     `json:"sendtoIntegration"`
	IncludeTenantID   bool     `json:"includeTenantId"`
}

// FormFromConfig wraps a loaded document into form fields. Values missing
// from the catalogs keep their raw value as label.
func FormFromConfig(cfg NotificationConfig) NotificationForm {
	return NotificationForm{
		Email:             cfg.Email,
		Webhook:           cfg.Webhook,
		LogsToInclude:     wrap(cfg.LogsToInclude, LogTypes),
		Severity:          wrap(cfg.Severity, Severities),
		OnePerTenant:      cfg.OnePerTenant,
		SendToIntegration: cfg.SendToIntegration,
		IncludeTenantID:   cfg.IncludeTenantID,
	}
}

// Config unwraps the form into the write payload. Multi-select options are
// reduced to their values; labels never reach the backend.
func (f NotificationForm) Config() NotificationConfig {
	return NotificationConfig{
		Email:             f.Email,
		Webhook:           f.Webhook,
		LogsToInclude:     unwrap(f.LogsToInclude),
		Severity:          unwrap(f.Severity),
		OnePerTenant:      f.OnePerTenant,
		SendToIntegration: f.SendToIntegration,
		IncludeTenantID:   f.IncludeTenantID,
	}
}

// Selected reports whether value is one of the chosen options.
func Selected(opts []Option, value string) bool {
	return slices.ContainsFunc(opts, func(o Option) bool { return o.Value == value })
}

// OptionsFor wraps raw values using the labels of catalog.
func OptionsFor(values []string, catalog []Option) []Option {
	return wrap(values, catalog)
}

func wrap(values []string, catalog []Option) []Option {
	if values == nil {
		return nil
	}
	opts := make([]Option, len(values))
	for i, v := range values {
		opts[i] = Option{Label: labelFor(v, catalog), Value: v}
	}
	return opts
}

func unwrap(opts []Option) []string {
	if opts == nil {
		return nil
	}
	values := make([]string, len(opts))
	for i, o := range opts {
		values[i] = o.Value
	}
	return values
}

func labelFor(value string, catalog []Option) string {
	for _, o := range catalog {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
