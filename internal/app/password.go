package app

import (
	"context"
	"log/slog"

	"github.com/jsamuelsen11/console-settings/internal/app/panel"
	"github.com/jsamuelsen11/console-settings/internal/app/slot"
	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
	"github.com/jsamuelsen11/console-settings/internal/ports"
)

// MsgPasswordFailed is the banner text for a failed password style write.
const MsgPasswordFailed = "Error setting password style"

// PasswordOption is one selectable resolver.
type PasswordOption struct {
	Style    settings.PasswordStyle `json:"style"`
	Selected bool                   `json:"selected"`
}

// PasswordView is what a renderer needs to draw the password panel.
type PasswordView struct {
	Phase   slot.Phase       `json:"phase"`
	Err     string           `json:"error,omitempty"`
	Options []PasswordOption `json:"options"`
	Banner  *panel.Banner    `json:"banner,omitempty"`
}

// Selection is the handle returned by PasswordPanel.Select.
type Selection struct {
	// Write is the password style write.
	Write *slot.Call

	// Refreshed is closed once the follow-up read has settled.
	Refreshed <-chan struct{}
}

// PasswordPanel selects the password generation style.
type PasswordPanel struct {
	panel  *panel.Panel[settings.PasswordConfig, settings.PasswordConfig, settings.Result]
	mode   RefreshMode
	logger *slog.Logger
}

// NewPasswordPanel creates the panel.
func NewPasswordPanel(client ports.SettingsClient, opts Options) *PasswordPanel {
	slotOpts := opts.slotOptions()

	get := slot.New("password.get",
		func(ctx context.Context, _ struct{}) (settings.PasswordConfig, error) {
			return client.FetchPasswordConfig(ctx)
		}, slotOpts...)
	edit := slot.New("password.edit", client.SubmitPasswordConfig, slotOpts...)

	mode := opts.RefreshMode
	if mode == "" {
		mode = RefreshConcurrent
	}

	return &PasswordPanel{
		panel:  panel.New(get, edit),
		mode:   mode,
		logger: opts.logger(),
	}
}

// View starts the initial load if needed and returns the panel's current
// rendering state. The selected option follows the last successful read, so
// a re-read in flight keeps the previous selection highlighted.
func (p *PasswordPanel) View(ctx context.Context) PasswordView {
	st := p.panel.Ensure(ctx)

	current, _ := p.panel.Loader().LastSuccess()
	styles := settings.PasswordStyles()
	opts := make([]PasswordOption, 0, len(styles))
	for _, s := range styles {
		opts = append(opts, PasswordOption{Style: s, Selected: s == current.PasswordType})
	}

	return PasswordView{
		Phase:   st.Phase,
		Err:     st.Err,
		Options: opts,
		Banner:  p.panel.Banner(passwordBanner),
	}
}

// Select writes style and re-reads the stored style. The banner becomes
// visible and stays visible afterwards.
func (p *PasswordPanel) Select(ctx context.Context, style settings.PasswordStyle) (Selection, error) {
	cfg := settings.PasswordConfig{PasswordType: style}
	if err := cfg.Validate(); err != nil {
		return Selection{}, err
	}

	write := p.panel.Submit(ctx, cfg)

	refreshed := make(chan struct{})
	switch p.mode {
	case RefreshSequential:
		go func() {
			defer close(refreshed)
			<-write.Done()
			<-p.panel.Refresh(context.WithoutCancel(ctx)).Done()
		}()
	default:
		read := p.panel.Refresh(ctx)
		go func() {
			defer close(refreshed)
			<-read.Done()
		}()
	}

	p.logger.InfoContext(ctx, "password style selected",
		slog.String("style", style.String()),
		slog.String("refresh_mode", string(p.mode)),
	)
	return Selection{Write: write, Refreshed: refreshed}, nil
}

func passwordBanner(st slot.State[settings.Result]) *panel.Banner {
	switch st.Phase {
	case slot.Success:
		return &panel.Banner{Tone: panel.ToneSuccess, Message: st.Data.Message}
	case slot.Error:
		return &panel.Banner{Tone: panel.ToneDanger, Message: MsgPasswordFailed}
	case slot.Fetching:
		return &panel.Banner{Tone: panel.ToneInfo, Loading: true}
	default:
		return nil
	}
}

// OnChange registers fn to run whenever a read or a write changes state.
func (p *PasswordPanel) OnChange(fn func()) {
	p.panel.OnChange(fn)
}
