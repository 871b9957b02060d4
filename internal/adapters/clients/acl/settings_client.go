package acl

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/jsamuelsen11/console-settings/internal/adapters/clients/acl/notification"
	"github.com/jsamuelsen11/console-settings/internal/adapters/clients/acl/password"
	"github.com/jsamuelsen11/console-settings/internal/domain/settings"
	"github.com/jsamuelsen11/console-settings/internal/platform/httpclient"
	"github.com/jsamuelsen11/console-settings/internal/ports"
)

// Compile-time interface check.
var _ ports.SettingsClient = (*SettingsClient)(nil)

// Kind identifies one remote configuration document.
type Kind string

// Configuration kinds served by the settings API.
const (
	KindNotifications Kind = "notifications"
	KindPassword      Kind = "password"
)

// route holds the read and write endpoints of one Kind.
type route struct {
	fetch  string
	submit string
}

// routes is the settings API's endpoint table. The paths, including the
// lower-case "c" of the password write, are the API's own.
var routes = map[Kind]route{
	KindNotifications: {
		fetch:  "/api/ListNotificationConfig",
		submit: "/api/ExecNotificationConfig",
	},
	KindPassword: {
		fetch:  "/api/ExecPasswordConfig?list=true",
		submit: "/api/ExecPasswordconfig",
	},
}

// execResultDTO is the body returned by every write endpoint.
type execResultDTO struct {
	Results string `json:"Results"`
}

// SettingsClient is the outbound adapter for the settings API. It implements
// [ports.SettingsClient].
//
// Each typed method is a thin wrapper over fetchConfig / submitConfig, which
// resolve the Kind's route and run the round trip through a [Requester].
// Wire documents are translated by the [notification] and [password]
// sub-packages; HTTP failures become domain errors via [TranslateHTTPError].
type SettingsClient struct {
	req    *Requester
	logger *slog.Logger
}

// NewSettingsClient creates a SettingsClient that sends requests through the
// given [httpclient.Client], whose BaseURL points at the settings API root.
func NewSettingsClient(client *httpclient.Client, logger *slog.Logger) *SettingsClient {
	return &SettingsClient{
		req:    NewRequester(client, logger),
		logger: logger,
	}
}

// FetchNotificationConfig reads the stored notification preferences.
func (c *SettingsClient) FetchNotificationConfig(ctx context.Context) (settings.NotificationConfig, error) {
	var dto notification.ConfigDTO
	if err := c.fetchConfig(ctx, KindNotifications, &dto); err != nil {
		return settings.NotificationConfig{}, err
	}
	return notification.ToDomainConfig(dto), nil
}

// SubmitNotificationConfig writes notification preferences.
func (c *SettingsClient) SubmitNotificationConfig(ctx context.Context, cfg settings.NotificationConfig) (settings.Result, error) {
	return c.submitConfig(ctx, KindNotifications, notification.ToConfigDTO(cfg))
}

// FetchPasswordConfig reads the stored password generation style.
func (c *SettingsClient) FetchPasswordConfig(ctx context.Context) (settings.PasswordConfig, error) {
	var dto password.ListResponseDTO
	if err := c.fetchConfig(ctx, KindPassword, &dto); err != nil {
		return settings.PasswordConfig{}, err
	}
	return password.ToDomainConfig(dto), nil
}

// SubmitPasswordConfig writes the password generation style.
func (c *SettingsClient) SubmitPasswordConfig(ctx context.Context, cfg settings.PasswordConfig) (settings.Result, error) {
	return c.submitConfig(ctx, KindPassword, password.ToConfigDTO(cfg))
}

// fetchConfig decodes the kind's stored document into out.
func (c *SettingsClient) fetchConfig(ctx context.Context, kind Kind, out any) error {
	r, err := routeFor(kind)
	if err != nil {
		return err
	}
	return c.req.Do(ctx, http.MethodGet, r.fetch, nil, out)
}

// submitConfig writes payload as the kind's document. A settings write
// replaces the whole document, so it is safe to retry.
func (c *SettingsClient) submitConfig(ctx context.Context, kind Kind, payload any) (settings.Result, error) {
	r, err := routeFor(kind)
	if err != nil {
		return settings.Result{}, err
	}

	var dto execResultDTO
	if err := c.req.Do(httpclient.WithIdempotent(ctx), http.MethodPost, r.submit, payload, &dto); err != nil {
		return settings.Result{}, err
	}

	c.logger.DebugContext(ctx, "settings written",
		slog.String("kind", string(kind)),
		slog.String("result", dto.Results),
	)
	return settings.Result{Message: dto.Results}, nil
}

func routeFor(kind Kind) (route, error) {
	r, ok := routes[kind]
	if !ok {
		return route{}, fmt.Errorf("unknown settings kind %q", kind)
	}
	return r, nil
}
