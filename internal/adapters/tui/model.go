// Package tui renders the settings console in a terminal with Bubble Tea.
// It drives the same panels as the HTML pages; panel state changes are
// pushed into the program so the screen follows background calls.
package tui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/jsamuelsen11/console-settings/internal/app"
	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
)

type pane int

const (
	paneNotifications pane = iota
	panePassword
)

// changedMsg reports that some panel changed state. Only a message produced
// by the listener re-arms it, so one waitForChange is pending at a time.
type changedMsg struct {
	fromListener bool
}

// Model is the Bubble Tea model of the console.
type Model struct {
	ctx     context.Context
	console *app.Console
	changes <-chan struct{}
	keys    keyMap

	notif app.NotificationsView
	pw    app.PasswordView

	focus    pane
	rows     []row
	cursor   int
	editor   editor
	seeded   bool
	pwCursor int
	pwPlaced bool
	status   string
	width    int
}

// NewModel creates the model and subscribes it to console changes.
// Notifications are coalesced: a burst of transitions triggers one redraw.
func NewModel(ctx context.Context, console *app.Console) Model {
	changes := make(chan struct{}, 1)
	console.OnChange(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	})

	return Model{
		ctx:     ctx,
		console: console,
		changes: changes,
		keys:    defaultKeys(),
		rows:    editorRows(),
		editor:  newEditor(),
	}
}

// Init starts both loads and begins listening for changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		func() tea.Msg { return changedMsg{} },
		waitForChange(m.changes),
	)
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return changedMsg{fromListener: true}
	}
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case changedMsg:
		m.refresh()
		if msg.fromListener {
			return m, waitForChange(m.changes)
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// refresh re-reads both panel views. Rendering a panel starts its load the
// first time.
func (m *Model) refresh() {
	m.notif = m.console.Notifications.View(m.ctx)
	m.pw = m.console.Password.View(m.ctx)

	if !m.seeded && m.notif.Form != nil {
		m.editor.seed(*m.notif.Form)
		m.seeded = true
		m.syncFocus()
	}
	if !m.pwPlaced {
		for i, o := range m.pw.Options {
			if o.Selected {
				m.pwCursor = i
				m.pwPlaced = true
			}
		}
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.NextPane):
		if m.focus == paneNotifications {
			m.focus = panePassword
		} else {
			m.focus = paneNotifications
		}
		m.syncFocus()
		return m, nil
	}

	if m.focus == panePassword {
		return m.handlePasswordKey(msg)
	}
	return m.handleNotificationsKey(msg)
}

func (m Model) handleNotificationsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if !m.seeded {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		m.cursor = max(0, m.cursor-1)
		m.syncFocus()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		m.cursor = min(len(m.rows)-1, m.cursor+1)
		m.syncFocus()
		return m, nil
	case key.Matches(msg, m.keys.Submit):
		m.submitNotifications()
		return m, nil
	}

	r := m.rows[m.cursor]
	switch r.kind {
	case rowEmail, rowWebhook:
		var cmd tea.Cmd
		if r.kind == rowEmail {
			m.editor.email, cmd = m.editor.email.Update(msg)
		} else {
			m.editor.webhook, cmd = m.editor.webhook.Update(msg)
		}
		return m, cmd
	case rowSave:
		if key.Matches(msg, m.keys.Activate, m.keys.Toggle) {
			m.submitNotifications()
		}
	default:
		if key.Matches(msg, m.keys.Toggle, m.keys.Activate) {
			m.editor.toggle(r)
		}
	}
	return m, nil
}

func (m *Model) submitNotifications() {
	if m.notif.SubmitDisabled {
		return
	}
	if _, err := m.console.Notifications.Submit(m.ctx, m.editor.form()); err != nil {
		m.status = err.Error()
		return
	}
	m.status = ""
}

func (m Model) handlePasswordKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	styles := settings.PasswordStyles()

	switch {
	case key.Matches(msg, m.keys.Up):
		m.pwCursor = max(0, m.pwCursor-1)
	case key.Matches(msg, m.keys.Down):
		m.pwCursor = min(len(styles)-1, m.pwCursor+1)
	case key.Matches(msg, m.keys.Activate, m.keys.Toggle):
		if _, err := m.console.Password.Select(m.ctx, styles[m.pwCursor]); err != nil {
			m.status = err.Error()
		}
	}
	return m, nil
}

// syncFocus gives keyboard focus to the text input under the cursor.
func (m *Model) syncFocus() {
	m.editor.email.Blur()
	m.editor.webhook.Blur()
	if m.focus != paneNotifications || !m.seeded {
		return
	}
	switch m.rows[m.cursor].kind {
	case rowEmail:
		m.editor.email.Focus()
	case rowWebhook:
		m.editor.webhook.Focus()
	}
}

// Run starts the program on the terminal and blocks until the user quits
// or ctx is done.
func Run(ctx context.Context, console *app.Console, opts ...tea.ProgramOption) error {
	opts = append([]tea.ProgramOption{tea.WithContext(ctx), tea.WithAltScreen()}, opts...)
	_, err := tea.NewProgram(NewModel(ctx, console), opts...).Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
