// Package logging builds the process-wide JSON logger and carries
// request-scoped loggers through context.
package logging

import (
	"context"
	"io"
	"log/slog"
	"strings"
)

type ctxKey struct{}

// level backs every handler built by New, so a running process can have
// its verbosity changed through SetLevel without rebuilding loggers.
var level slog.LevelVar

// New builds a JSON logger writing to w at the named level.
func New(w io.Writer, name string) *slog.Logger {
	level.Set(ParseLevel(name))
	return slog.New(slog.NewJSONHandler(w, &slog.HandlerOptions{Level: &level}))
}

// SetLevel adjusts the level of every logger built by New.
func SetLevel(name string) { level.Set(ParseLevel(name)) }

// ParseLevel maps a config string to a slog level. Unknown or empty input
// means Info.
func ParseLevel(name string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func IntoContext(ctx context.Context, l *slog.Logger) context.Context {
	return context.WithValue(ctx, ctxKey{}, l)
}

func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}
