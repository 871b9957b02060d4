package ports

import (
	"context"

	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
)

// SettingsClient defines the client port for the downstream settings API.
// Implemented by the ACL adapter; called by the panel slots.
// Failures are returned as domain errors whose message is shown to the user.
type SettingsClient interface {
	// FetchNotificationConfig returns the persisted notification preferences.
	FetchNotificationConfig(ctx context.Context) (settings.NotificationConfig, error)

	// SubmitNotificationConfig writes notification preferences and returns
	// the backend's result message.
	SubmitNotificationConfig(ctx context.Context, cfg settings.NotificationConfig) (settings.Result, error)

	// FetchPasswordConfig returns the persisted password generation style.
	FetchPasswordConfig(ctx context.Context) (settings.PasswordConfig, error)

	// SubmitPasswordConfig writes the password generation style and returns
	// the backend's result message.
	SubmitPasswordConfig(ctx context.Context, cfg settings.PasswordConfig) (settings.Result, error)
}
