package app

import (
	"context"
	"fmt"

	"github.com/jsamuelsen11/console-settings/internal/app/panel"
	"github.com/jsamuelsen11/console-settings/internal/app/slot"
	"github.com/jsamuelsen11/console-settings/internal/domain"
	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
	"github.com/jsamuelsen11/console-settings/internal/ports"
)

// Notification panel messages.
const (
	MsgLoadFailed       = "Error loading data"
	MsgSubmitting       = "Loading"
	MsgSubmitFailedHead = "Could not connect to API: "
)

// ErrSubmitPending is returned when a notification submit is attempted
// while the previous one is still in flight.
var ErrSubmitPending = fmt.Errorf("notification settings are being saved: %w", domain.ErrConflict)

// NotificationsView is what a renderer needs to draw the notification panel.
// Form is set only once the document has loaded; Banner only after a submit.
type NotificationsView struct {
	Phase          slot.Phase                 `json:"phase"`
	LoadError      string                     `json:"load_error,omitempty"`
	LoadDetail     string                     `json:"load_detail,omitempty"`
	Form           *settings.NotificationForm `json:"form,omitempty"`
	Banner         *panel.Banner              `json:"banner,omitempty"`
	SubmitDisabled bool                       `json:"submit_disabled"`
}

// NotificationsPanel edits the notification preferences document.
type NotificationsPanel struct {
	panel *panel.Panel[settings.NotificationConfig, settings.NotificationConfig, settings.Result]
	form  panel.Form[settings.NotificationForm]
}

// NewNotificationsPanel creates the panel. The form is seeded from the first
// successful load and never re-seeded afterwards.
func NewNotificationsPanel(client ports.SettingsClient, opts Options) *NotificationsPanel {
	slotOpts := opts.slotOptions()

	list := slot.New("notifications.list",
		func(ctx context.Context, _ struct{}) (settings.NotificationConfig, error) {
			return client.FetchNotificationConfig(ctx)
		}, slotOpts...)
	apply := slot.New("notifications.apply", client.SubmitNotificationConfig, slotOpts...)

	p := &NotificationsPanel{panel: panel.New(list, apply)}
	list.Subscribe(func(st slot.State[settings.NotificationConfig]) {
		if st.Phase == slot.Success {
			p.form.Seed(settings.FormFromConfig(*st.Data))
		}
	})
	return p
}

// View starts the initial load if needed and returns the panel's current
// rendering state.
func (p *NotificationsPanel) View(ctx context.Context) NotificationsView {
	st := p.panel.Ensure(ctx)

	v := NotificationsView{
		Phase:          st.Phase,
		Banner:         p.panel.Banner(notificationBanner),
		SubmitDisabled: p.panel.Submitting(),
	}

	switch st.Phase {
	case slot.Error:
		v.LoadError = MsgLoadFailed
		v.LoadDetail = st.Err
	case slot.Success:
		// The subscriber may not have run yet for this very load.
		p.form.Seed(settings.FormFromConfig(*st.Data))
		if form, ok := p.form.Get(); ok {
			v.Form = &form
		}
	}
	return v
}

// Submit stores the edited form and writes it to the backend. Multi-select
// options are unwrapped to their plain values before the write is issued.
// It returns ErrSubmitPending while a previous submit is in flight.
func (p *NotificationsPanel) Submit(ctx context.Context, form settings.NotificationForm) (*slot.Call, error) {
	call, ok := p.panel.SubmitIfIdle(ctx, form.Config())
	if !ok {
		return nil, ErrSubmitPending
	}
	p.form.Set(form)
	return call, nil
}

func notificationBanner(st slot.State[settings.Result]) *panel.Banner {
	switch st.Phase {
	case slot.Fetching:
		return &panel.Banner{Tone: panel.ToneInfo, Message: MsgSubmitting, Loading: true}
	case slot.Success:
		return &panel.Banner{Tone: panel.ToneInfo, Message: st.Data.Message}
	case slot.Error:
		return &panel.Banner{Tone: panel.ToneDanger, Message: MsgSubmitFailedHead + st.Err}
	default:
		return nil
	}
}

// OnChange registers fn to run whenever the load or the submit changes state.
func (p *NotificationsPanel) OnChange(fn func()) {
	p.panel.OnChange(fn)
}
