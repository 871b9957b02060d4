// Package main is the entry point for the settings console web server. It
// wires all dependencies using samber/do v2, starts the HTTP server and the
// session janitor, and handles graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/samber/do/v2"

	adapthttp "github.com/jsamuelsen11/console-settings/internal/adapters/http"
	"github.com/jsamuelsen11/console-settings/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/console-settings/internal/adapters/http/middleware"
	"github.com/jsamuelsen11/console-settings/internal/adapters/http/pages"

	"github.com/jsamuelsen11/console-settings/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/console-settings/internal/app"
	"github.com/jsamuelsen11/console-settings/internal/platform/config"
	"github.com/jsamuelsen11/console-settings/internal/platform/health"
	"github.com/jsamuelsen11/console-settings/internal/platform/httpclient"
	"github.com/jsamuelsen11/console-settings/internal/platform/logging"
	"github.com/jsamuelsen11/console-settings/internal/platform/telemetry"
	"github.com/jsamuelsen11/console-settings/internal/ports"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
	healthCheckTimeout    = 2 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (e.g. local, dev, qa, prod)")
	}

	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}
	defer flushTelemetry(providers, logger)

	injector := do.New()
	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, providers.Metrics)
	registerDependencies(injector, cfg, logger)

	// Resolving the server wires the whole graph.
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}
	do.MustInvoke[ports.HealthRegistry](injector).Register(do.MustInvoke[*acl.SettingsClient](injector))

	janitorCtx, stopJanitor := context.WithCancel(ctx)
	defer stopJanitor()
	go do.MustInvoke[*app.Registry](injector).Run(janitorCtx, cfg.Console.SweepInterval)

	serverErr := make(chan error, 1)
	go func() { serverErr <- server.Start() }()

	select {
	case <-ctx.Done():
		logger.Info("received shutdown signal", slog.String("profile", profile))
	case err := <-serverErr:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown error", slog.Any("error", err))
	}
	<-serverErr
	stopJanitor()

	logger.Info("shutdown complete")
	return nil
}

func flushTelemetry(p *telemetry.Providers, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), otelShutdownTimeout)
	defer cancel()
	if err := p.Shutdown(ctx); err != nil {
		logger.Error("telemetry shutdown error", slog.Any("error", err))
	}
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return httpclient.New(&cfg.Client, "settings-api", metrics, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (*acl.SettingsClient, error) {
		client := do.MustInvoke[*httpclient.Client](i)
		return acl.NewSettingsClient(client, logger), nil
	})

	do.Provide(injector, func(i do.Injector) (ports.SettingsClient, error) {
		return do.MustInvoke[*acl.SettingsClient](i), nil
	})

	do.Provide(injector, func(i do.Injector) (*app.Registry, error) {
		client := do.MustInvoke[ports.SettingsClient](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewRegistry(client, app.Options{
			CallTimeout: cfg.Console.CallTimeout,
			RefreshMode: app.RefreshMode(cfg.Console.Password.RefreshMode),
			Logger:      logger,
			Metrics:     metrics,
		}, cfg.Console.SessionTTL, app.WithMaxSessions(cfg.Console.MaxSessions)), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(health.WithCheckTimeout(healthCheckTimeout)), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.SettingsHandler, error) {
		return handlers.NewSettingsHandler(do.MustInvoke[*app.Registry](i)), nil
	})

	do.Provide(injector, func(i do.Injector) (*pages.Handler, error) {
		return pages.NewHandler(do.MustInvoke[*app.Registry](i), cfg.Console.PageRefresh)
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		routes := adapthttp.Routes{
			Health:   do.MustInvoke[*handlers.HealthHandler](i),
			Settings: do.MustInvoke[*handlers.SettingsHandler](i),
			Pages:    do.MustInvoke[*pages.Handler](i),
			CSRF: middleware.CSRF(middleware.CSRFConfig{
				Key:    []byte(cfg.Console.CSRFKey),
				Secure: cfg.Console.SecureCookies,
			}),
		}

		return adapthttp.NewRouter(routes,
			middleware.Recovery(logger),
			middleware.RequestID(),
			middleware.CorrelationID(),
			middleware.Session(middleware.SessionConfig{
				CookieName: cfg.Console.SessionCookie,
				TTL:        cfg.Console.SessionTTL,
				Secure:     cfg.Console.SecureCookies,
			}),
			middleware.OpenTelemetry(metrics),
			middleware.Logging(logger),
			middleware.Timeout(cfg.Server.WriteTimeout),
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}
