package tui

import (
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
)

type rowKind int

const (
	rowEmail rowKind = iota
	rowWebhook
	rowLogType
	rowSeverity
	rowOnePerTenant
	rowIntegration
	rowIncludeTenant
	rowSave
)

// row is one focusable line of the notification editor.
type row struct {
	kind   rowKind
	option settings.Option
}

// editorRows lists the notification editor's lines in display order.
func editorRows() []row {
	rows := []row{{kind: rowEmail}, {kind: rowWebhook}}
	for _, o := range settings.LogTypes {
		rows = append(rows, row{kind: rowLogType, option: o})
	}
	for _, o := range settings.Severities {
		rows = append(rows, row{kind: rowSeverity, option: o})
	}
	return append(rows,
		row{kind: rowOnePerTenant},
		row{kind: rowIntegration},
		row{kind: rowIncludeTenant},
		row{kind: rowSave},
	)
}

// editor holds the local, not yet submitted notification edits.
type editor struct {
	email   textinput.Model
	webhook textinput.Model

	logTypes   map[string]bool
	severities map[string]bool
	switches   map[rowKind]bool
}

func newEditor() editor {
	email := textinput.New()
	email.Placeholder = "matt@example.com, joe@sample.com"
	email.CharLimit = 512
	email.Prompt = ""

	webhook := textinput.New()
	webhook.Placeholder = "https://"
	webhook.CharLimit = 2048
	webhook.Prompt = ""

	return editor{
		email:      email,
		webhook:    webhook,
		logTypes:   map[string]bool{},
		severities: map[string]bool{},
		switches:   map[rowKind]bool{},
	}
}

// seed copies a loaded form into the editor.
func (e *editor) seed(f settings.NotificationForm) {
	e.email.SetValue(f.Email)
	e.webhook.SetValue(f.Webhook)
	for _, o := range f.LogsToInclude {
		e.logTypes[o.Value] = true
	}
	for _, o := range f.Severity {
		e.severities[o.Value] = true
	}
	e.switches[rowOnePerTenant] = f.OnePerTenant
	e.switches[rowIntegration] = f.SendToIntegration
	e.switches[rowIncludeTenant] = f.IncludeTenantID
}

func (e *editor) toggle(r row) {
	switch r.kind {
	case rowLogType:
		e.logTypes[r.option.Value] = !e.logTypes[r.option.Value]
	case rowSeverity:
		e.severities[r.option.Value] = !e.severities[r.option.Value]
	case rowOnePerTenant, rowIntegration, rowIncludeTenant:
		e.switches[r.kind] = !e.switches[r.kind]
	}
}

func (e *editor) checked(r row) bool {
	switch r.kind {
	case rowLogType:
		return e.logTypes[r.option.Value]
	case rowSeverity:
		return e.severities[r.option.Value]
	default:
		return e.switches[r.kind]
	}
}

// form builds the panel form from the edits. Selected options keep catalog
// order so the write payload is stable; stored values outside the catalog
// follow in sorted order and are never dropped.
func (e *editor) form() settings.NotificationForm {
	return settings.NotificationForm{
		Email:             strings.TrimSpace(e.email.Value()),
		Webhook:           strings.TrimSpace(e.webhook.Value()),
		LogsToInclude:     pick(settings.LogTypes, e.logTypes),
		Severity:          pick(settings.Severities, e.severities),
		OnePerTenant:      e.switches[rowOnePerTenant],
		SendToIntegration: e.switches[rowIntegration],
		IncludeTenantID:   e.switches[rowIncludeTenant],
	}
}

func pick(catalog []settings.Option, chosen map[string]bool) []settings.Option {
	out := []settings.Option{}
	for _, o := range catalog {
		if chosen[o.Value] {
			out = append(out, o)
		}
	}
	for _, v := range slices.Sorted(maps.Keys(chosen)) {
		if chosen[v] && !settings.Selected(catalog, v) {
			out = append(out, settings.Option{Label: v, Value: v})
		}
	}
	return out
}
