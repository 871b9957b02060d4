// Package app provides the console's application services: the settings
// panels built on the slot and panel packages, and the registry that keeps
// one set of panels per browser session.
package app

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/metric"

	"github.com/jsamuelsen11/console-settings/internal/app/slot"
	"github.com/jsamuelsen11/console-settings/internal/platform/logging"
	"github.com/jsamuelsen11/console-settings/internal/platform/telemetry"
	"github.com/jsamuelsen11/console-settings/internal/ports"
)

// RefreshMode controls when the password panel re-reads the selected style
// after a write.
type RefreshMode string

const (
	// RefreshConcurrent issues the re-read right after the write without
	// waiting for it. The read can land before the write commits and
	// briefly show the previous style.
	RefreshConcurrent RefreshMode = "concurrent"

	// RefreshSequential issues the re-read only after the write settled.
	RefreshSequential RefreshMode = "sequential"
)

// Options configures the slots of a console.
type Options struct {
	// CallTimeout bounds each remote call. Zero means no bound.
	CallTimeout time.Duration

	// RefreshMode defaults to RefreshConcurrent.
	RefreshMode RefreshMode

	Logger *slog.Logger

	// Metrics is optional; nil disables slot metrics.
	Metrics *telemetry.Metrics
}

func (o Options) logger() *slog.Logger {
	if o.Logger == nil {
		return logging.Discard()
	}
	return o.Logger
}

func (o Options) slotOptions() []slot.Option {
	opts := []slot.Option{
		slot.WithTimeout(o.CallTimeout),
		slot.WithLogger(o.logger()),
	}
	if o.Metrics != nil {
		opts = append(opts, slot.WithSettleHook(recordSlotMetrics(o.Metrics)))
	}
	return opts
}

// recordSlotMetrics returns a settle hook that records call count and
// duration per slot and outcome.
func recordSlotMetrics(m *telemetry.Metrics) func(context.Context, slot.Settled) {
	return func(ctx context.Context, s slot.Settled) {
		attrs := metric.WithAttributes(
			telemetry.AttrSlot.String(s.Slot),
			telemetry.AttrResult.String(s.Phase.String()),
		)
		m.SlotCallTotal.Add(ctx, 1, attrs)
		m.SlotCallDuration.Record(ctx, s.Duration.Seconds(), attrs)
	}
}

// Console is the set of settings panels for one user session.
type Console struct {
	Notifications *NotificationsPanel
	Password      *PasswordPanel
}

// NewConsole creates a console whose panels read and write through client.
// No remote call is made until a panel is first rendered.
func NewConsole(client ports.SettingsClient, opts Options) *Console {
	return &Console{
		Notifications: NewNotificationsPanel(client, opts),
		Password:      NewPasswordPanel(client, opts),
	}
}

// OnChange registers fn to run after any state change of either panel. fn
// may be called concurrently from background calls and must not block.
func (c *Console) OnChange(fn func()) {
	c.Notifications.OnChange(fn)
	c.Password.OnChange(fn)
}
