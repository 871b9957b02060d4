// Package main is the entry point for the terminal settings console. It
// loads the same configuration as the web server, talks to the settings API
// through the same client stack, and renders the panels with Bubble Tea.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/jsamuelsen11/console-settings/internal/adapters/clients/acl"
	"github.com/jsamuelsen11/console-settings/internal/adapters/tui"
	"github.com/jsamuelsen11/console-settings/internal/app"
	"github.com/jsamuelsen11/console-settings/internal/platform/config"
	"github.com/jsamuelsen11/console-settings/internal/platform/httpclient"
	"github.com/jsamuelsen11/console-settings/internal/platform/logging"
)

const logFileName = "console-tui.log"

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

	// The terminal belongs to the UI, so logs go to a file.
	logPath := filepath.Join(os.TempDir(), logFileName)
	logFile, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()

	logger := logging.New(cfg.Log.Level, cfg.Log.Format, logFile)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	httpClient := httpclient.New(&cfg.Client, "settings-api", nil, logger)
	console := app.NewConsole(acl.NewSettingsClient(httpClient, logger), app.Options{
		CallTimeout: cfg.Console.CallTimeout,
		RefreshMode: app.RefreshMode(cfg.Console.Password.RefreshMode),
		Logger:      logger,
	})

	logger.Info("starting terminal console",
		slog.String("profile", profile),
		slog.String("settings_api", httpClient.BaseURL()),
	)

	if err := tui.Run(ctx, console); err != nil {
		return fmt.Errorf("running console: %w", err)
	}
	return nil
}
