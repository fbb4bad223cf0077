package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/thomas-vilte/repolens/internal/i18n"
	"github.com/thomas-vilte/repolens/internal/models"
)

func PrintTokenUsage(w io.Writer, usage *models.TokenUsage, t *i18n.Translations) {
	if usage == nil {
		return
	}
	cyan := color.New(color.FgCyan)
	_, _ = fmt.Fprint(w, cyan.Sprint("📊 "))
	_, _ = fmt.Fprintf(w, "%s: ", t.GetMessage("token_usage_title", 0, nil))
	_, _ = fmt.Fprintf(w, "%s %s | ", t.GetMessage("token_input", 0, nil), humanize.Comma(int64(usage.InputTokens)))
	_, _ = fmt.Fprintf(w, "%s %s | ", t.GetMessage("token_output", 0, nil), humanize.Comma(int64(usage.OutputTokens)))
	_, _ = fmt.Fprintf(w, "%s %s\n", t.GetMessage("token_total", 0, nil), humanize.Comma(int64(usage.TotalTokens)))
	if usage.DurationMs > 0 {
		d := time.Duration(usage.DurationMs) * time.Millisecond
		_, _ = fmt.Fprintf(w, "⏱️  %s: %s\n", t.GetMessage("token_duration", 0, nil), d.Round(10*time.Millisecond))
	}
}
