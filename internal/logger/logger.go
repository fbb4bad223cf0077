package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
)

// EnvLogLevel overrides the level chosen by the --debug/--verbose flags.
const EnvLogLevel = "REPOLENS_LOG_LEVEL"

type contextKey struct{}

var loggerKey = contextKey{}

// Initialize installs the default logger. Warnings and errors only unless
// verbose (info) or debug (debug plus source locations) is set.
func Initialize(debug, verbose bool) {
	InitializeWithWriter(os.Stderr, debug, verbose, os.Getenv(EnvLogLevel))
}

func InitializeWithWriter(w io.Writer, debug, verbose bool, envLevel string) *slog.Logger {
	level := slog.LevelWarn

	if debug {
		level = slog.LevelDebug
	} else if verbose {
		level = slog.LevelInfo
	}

	if envLevel != "" {
		level = parseLevel(envLevel, level)
	}

	opts := &slog.HandlerOptions{
		Level:     level,
		AddSource: debug,
	}

	l := slog.New(NewPrettyHandler(w, opts))
	slog.SetDefault(l)
	return l
}

func parseLevel(s string, fallback slog.Level) slog.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return fallback
	}
}

func FromContext(ctx context.Context) *slog.Logger {
	if l, ok := ctx.Value(loggerKey).(*slog.Logger); ok {
		return l
	}
	return slog.Default()
}

func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, logger)
}

func With(ctx context.Context, args ...any) context.Context {
	l := FromContext(ctx).With(args...)
	return WithLogger(ctx, l)
}

func Debug(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Debug(msg, args...)
}

func Info(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Info(msg, args...)
}

func Warn(ctx context.Context, msg string, args ...any) {
	FromContext(ctx).Warn(msg, args...)
}

func Error(ctx context.Context, msg string, err error, args ...any) {
	if err != nil {
		args = append(args, slog.Any("error", err))
	}
	FromContext(ctx).Error(msg, args...)
}
