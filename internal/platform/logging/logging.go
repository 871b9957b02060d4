// Package logging builds the console's slog loggers and carries them through
// request contexts.
//
// Both binaries build their logger once from the log section of the config:
//
//	logger := logging.New(cfg.Log.Level, cfg.Log.Format, os.Stderr)
//
// The HTTP middleware stores a request-scoped child in the context, and code
// below it (page handlers, slot calls, the outbound retry loop) picks it up:
//
//	ctx = logging.WithLogger(ctx, logger.With("session", id))
//	logging.FromContext(ctx).WarnContext(ctx, "slot call failed",
//	    slog.String("slot", "notifications.apply"),
//	    slog.Uint64("call", id),
//	    slog.Any("error", err),
//	)
//
// Failure logs name the slot or operation, the call or session identifier,
// and the full error chain. Credentials and notification recipients are
// masked by the handler no matter where they appear.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type contextKey struct{}

// Output formats accepted by New.
const (
	FormatJSON = "json"
	FormatText = "text"
)

// New creates a logger writing to w. level is one of debug, info, warn
// (or warning) and error, case-insensitive; anything else means info. format
// is FormatText or FormatJSON; anything else means JSON. Debug loggers also
// report the source location.
func New(level, format string, w io.Writer) *slog.Logger {
	lvl := parseLevel(level)
	opts := &slog.HandlerOptions{
		Level:       lvl,
		AddSource:   lvl <= slog.LevelDebug,
		ReplaceAttr: newRedactAttr(),
	}

	if strings.EqualFold(format, FormatText) {
		return slog.New(slog.NewTextHandler(w, opts))
	}
	return slog.New(slog.NewJSONHandler(w, opts))
}

// Discard returns a logger that drops every record.
func Discard() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}

// WithLogger stores logger in ctx.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, contextKey{}, logger)
}

// FromContext returns the logger stored by WithLogger, or slog.Default().
func FromContext(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(contextKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

func parseLevel(level string) slog.Level {
	if strings.EqualFold(level, "warning") {
		return slog.LevelWarn
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(level)); err != nil {
		return slog.LevelInfo
	}
	return lvl
}
