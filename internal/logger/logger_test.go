package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func init() {
	color.NoColor = true
}

func TestInitializeWithWriter(t *testing.T) {
	tests := []struct {
		name     string
		debug    bool
		verbose  bool
		envLevel string
		enabled  slog.Level
		disabled slog.Level
	}{
		{name: "default is warn", enabled: slog.LevelWarn, disabled: slog.LevelInfo},
		{name: "verbose is info", verbose: true, enabled: slog.LevelInfo, disabled: slog.LevelDebug},
		{name: "debug wins over verbose", debug: true, verbose: true, enabled: slog.LevelDebug, disabled: slog.LevelDebug - 1},
		{name: "env overrides flags", debug: true, envLevel: "error", enabled: slog.LevelError, disabled: slog.LevelWarn},
		{name: "unknown env keeps flags", verbose: true, envLevel: "loud", enabled: slog.LevelInfo, disabled: slog.LevelDebug},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := InitializeWithWriter(&buf, tt.debug, tt.verbose, tt.envLevel)

			assert.True(t, l.Enabled(context.Background(), tt.enabled))
			assert.False(t, l.Enabled(context.Background(), tt.disabled))
		})
	}
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l.With("run_id", "abc").Info("directory listed", "path", "src/app", "count", 3)

	out := buf.String()
	assert.Contains(t, out, "[INFO]")
	assert.Contains(t, out, "directory listed")
	assert.Contains(t, out, "path=src/app count=3 run_id=abc")
}

func TestPrettyHandler_QuotesValuesWithSpaces(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l.Warn("fetch failed", "reason", "connection reset by peer")

	assert.Contains(t, buf.String(), `reason="connection reset by peer"`)
}

func TestPrettyHandler_WithGroup(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	l.WithGroup("gemini").Debug("call", "model", "gemini-2.0-flash-lite")

	assert.Contains(t, buf.String(), "gemini.model=gemini-2.0-flash-lite")
}

func TestContextHelpers(t *testing.T) {
	var buf bytes.Buffer
	base := slog.New(NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := WithLogger(context.Background(), base)
	ctx = With(ctx, "repo", "foo/bar")

	Error(ctx, "summary failed", errors.New("boom"))

	out := buf.String()
	assert.Contains(t, out, "[ERROR]")
	assert.Contains(t, out, "error=boom")
	assert.Contains(t, out, "repo=foo/bar")
}

func TestFromContext_FallsBackToDefault(t *testing.T) {
	assert.Equal(t, slog.Default(), FromContext(context.Background()))
}
