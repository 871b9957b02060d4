package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jsamuelsen11/console-settings/internal/app/panel"
	"github.com/jsamuelsen11/console-settings/internal/app/slot"
	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
)

const minSideBySideWidth = 110

// View implements tea.Model.
func (m Model) View() string {
	notif := m.paneStyle(paneNotifications).Render(m.notificationsView())
	pw := m.paneStyle(panePassword).Render(m.passwordView())

	var body string
	if m.width >= minSideBySideWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, notif, " ", pw)
	} else {
		body = lipgloss.JoinVertical(lipgloss.Left, notif, pw)
	}

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString(errorStyle.Render(m.status))
		b.WriteString("\n")
	}
	b.WriteString(m.helpLine())
	return b.String()
}

func (m Model) paneStyle(p pane) lipgloss.Style {
	if m.focus == p {
		return focusedPaneStyle
	}
	return paneStyle
}

func (m Model) notificationsView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Notification Settings"))
	b.WriteString("\n\n")

	switch {
	case m.notif.Phase == slot.Error:
		b.WriteString(errorStyle.Render(m.notif.LoadError))
		if m.notif.LoadDetail != "" {
			b.WriteString("\n" + mutedStyle.Render(m.notif.LoadDetail))
		}
	case !m.seeded:
		b.WriteString(loadingStyle.Render("Loading…"))
	default:
		m.writeEditor(&b)
	}

	b.WriteString(renderBanner(m.notif.Banner))
	return b.String()
}

func (m Model) writeEditor(b *strings.Builder) {
	focused := m.focus == paneNotifications
	var section rowKind = -1

	for i, r := range m.rows {
		if r.kind != section {
			if head := sectionHeading(r.kind); head != "" {
				if i > 0 {
					b.WriteString("\n")
				}
				b.WriteString(helpStyle.Render(head))
				b.WriteString("\n")
			}
			section = r.kind
		}

		pointer := "  "
		if focused && i == m.cursor {
			pointer = cursorStyle.Render("> ")
		}
		b.WriteString(pointer)
		b.WriteString(m.rowLine(r))
		b.WriteString("\n")
	}
}

func sectionHeading(k rowKind) string {
	switch k {
	case rowEmail:
		return settings.HelpEmail
	case rowLogType:
		return settings.HelpLogsToInclude
	case rowSeverity:
		return settings.HelpSeverity
	case rowOnePerTenant:
		return "Options"
	default:
		return ""
	}
}

func (m Model) rowLine(r row) string {
	switch r.kind {
	case rowEmail:
		return "E-mail:  " + m.editor.email.View()
	case rowWebhook:
		return "Webhook: " + m.editor.webhook.View()
	case rowLogType, rowSeverity:
		return checkbox(m.editor.checked(r)) + " " + r.option.Label
	case rowOnePerTenant:
		return checkbox(m.editor.checked(r)) + " " + settings.HelpOnePerTenant
	case rowIntegration:
		return checkbox(m.editor.checked(r)) + " " + settings.HelpIntegration
	case rowIncludeTenant:
		return checkbox(m.editor.checked(r)) + " " + settings.HelpIncludeTenant
	case rowSave:
		label := "[ Set Notification Settings ]"
		if m.notif.SubmitDisabled {
			return disabledStyle.Render(label)
		}
		return primaryStyle.Render(label)
	default:
		return ""
	}
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) passwordView() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Password Style"))
	b.WriteString("\n\n")

	if m.pw.Phase == slot.Error {
		b.WriteString(errorStyle.Render(m.pw.Err))
		b.WriteString("\n")
	}

	focused := m.focus == panePassword
	for i, o := range m.pw.Options {
		pointer := "  "
		if focused && i == m.pwCursor {
			pointer = cursorStyle.Render("> ")
		}
		mark, style := "( )", mutedStyle
		if o.Selected {
			mark, style = "(•)", primaryStyle
		}
		fmt.Fprintf(&b, "%s%s %s\n", pointer, mark, style.Render(o.Style.String()))
	}
	if m.pw.Phase == slot.Fetching {
		b.WriteString(loadingStyle.Render("Loading…"))
		b.WriteString("\n")
	}

	b.WriteString(renderBanner(m.pw.Banner))
	return b.String()
}

func renderBanner(bn *panel.Banner) string {
	if bn == nil {
		return ""
	}
	msg := bn.Message
	if bn.Loading {
		msg = "⏳ " + msg
	}
	if msg == "" {
		msg = "…"
	}
	return "\n" + bannerStyle(bn.Tone).Render(msg)
}

func (m Model) helpLine() string {
	parts := make([]string, 0, len(m.keys.help()))
	for _, k := range m.keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return helpStyle.Render(strings.Join(parts, " • "))
}
