package dto_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/jsamuelsen11/console-settings/internal/adapters/http/dto"
	"github.com/jsamuelsen11/console-settings/internal/app"
	"github.com/jsamuelsen11/console-settings/internal/app/panel"
	"github.com/jsamuelsen11/console-settings/internal/app/slot"
	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
)

func TestToNotificationsResponse(t *testing.T) {
	t.Parallel()

	form := settings.FormFromConfig(settings.NotificationConfig{
		Email:    "ops@example.com",
		Severity: []string{"Critical"},
	})
	view := app.NotificationsView{
		Phase:          slot.Success,
		Form:           &form,
		Banner:         &panel.Banner{Tone: panel.ToneInfo, Message: app.MsgSubmitting, Loading: true},
		SubmitDisabled: true,
	}

	got := dto.ToNotificationsResponse(view)
	if got.Phase != "success" {
		t.Errorf("Phase = %q, want %q", got.Phase, "success")
	}
	if got.Settings == nil || got.Settings.Email != "ops@example.com" {
		t.Fatalf("Settings = %+v, want seeded document", got.Settings)
	}
	if len(got.Settings.Severity) != 1 || got.Settings.Severity[0].Label != "Critical" {
		t.Errorf("Severity = %+v, want labeled option", got.Settings.Severity)
	}
	if got.Banner == nil || !got.Banner.Loading || got.Banner.Message != "Loading" {
		t.Errorf("Banner = %+v, want loading banner", got.Banner)
	}
	if !got.SubmitDisabled {
		t.Error("SubmitDisabled = false, want true")
	}
}

func TestToNotificationsResponse_LoadError(t *testing.T) {
	t.Parallel()

	got := dto.ToNotificationsResponse(app.NotificationsView{
		Phase:      slot.Error,
		LoadError:  app.MsgLoadFailed,
		LoadDetail: "unavailable",
	})

	b, err := json.Marshal(got)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var raw map[string]any
	if err := json.Unmarshal(b, &raw); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if raw["phase"] != "error" || raw["loadError"] != "Error loading data" {
		t.Errorf("body = %s, want error phase and load error", b)
	}
	if _, ok := raw["settings"]; ok {
		t.Error("settings present before a successful load")
	}
	if _, ok := raw["banner"]; ok {
		t.Error("banner present before any submit")
	}
}

func TestToPasswordResponse(t *testing.T) {
	t.Parallel()

	got := dto.ToPasswordResponse(app.PasswordView{
		Phase: slot.Success,
		Options: []app.PasswordOption{
			{Style: settings.StyleClassic},
			{Style: settings.StyleCorrectBatteryHorse, Selected: true},
		},
		Banner: &panel.Banner{Tone: panel.ToneDanger, Message: app.MsgPasswordFailed},
	})

	if len(got.Options) != 2 || !got.Options[1].Selected || got.Options[1].Style != "Correct-Battery-Horse" {
		t.Errorf("Options = %+v, want second option selected", got.Options)
	}
	if got.Banner == nil || got.Banner.Tone != "danger" {
		t.Errorf("Banner = %+v, want danger tone", got.Banner)
	}
}

func TestToSubmitResponse(t *testing.T) {
	t.Parallel()

	s := slot.New("test", func(_ context.Context, _ struct{}) (int, error) { return 0, errors.New("boom") })
	call := s.Trigger(context.Background(), struct{}{})
	err := call.Wait(context.Background())

	pending := dto.ToSubmitResponse(call, false, err)
	if pending.Status != dto.SubmitPending || pending.Error != "" || pending.Call != 1 {
		t.Errorf("pending = %+v, want call 1 pending without error", pending)
	}

	settled := dto.ToSubmitResponse(call, true, err)
	if settled.Status != dto.SubmitSettled || settled.Error != "boom" {
		t.Errorf("settled = %+v, want settled with error", settled)
	}
}

func TestNewCatalogResponse(t *testing.T) {
	t.Parallel()

	got := dto.NewCatalogResponse()
	if len(got.LogTypes) != 15 {
		t.Errorf("len(LogTypes) = %d, want 15", len(got.LogTypes))
	}
	if len(got.Severities) != 5 {
		t.Errorf("len(Severities) = %d, want 5", len(got.Severities))
	}
	if len(got.PasswordStyles) != 2 || got.PasswordStyles[0] != "Classic" {
		t.Errorf("PasswordStyles = %v, want [Classic Correct-Battery-Horse]", got.PasswordStyles)
	}
}
