package ui

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/repolens/internal/errors"
	"github.com/thomas-vilte/repolens/internal/i18n"
	"github.com/thomas-vilte/repolens/internal/models"
)

func init() {
	color.NoColor = true
}

func newTranslations(t *testing.T) *i18n.Translations {
	t.Helper()
	trans, err := i18n.NewTranslations("en", "")
	require.NoError(t, err)
	return trans
}

func TestHandleAppError(t *testing.T) {
	t.Run("prints type, details and multi-line suggestion", func(t *testing.T) {
		var buf bytes.Buffer
		err := domainErrors.ErrGitHubTokenInvalid.WithError(errors.New("401 Bad credentials"))

		HandleAppError(&buf, err, newTranslations(t))

		out := buf.String()
		assert.Contains(t, out, "VCS: GitHub token is invalid or expired")
		assert.Contains(t, out, "Details: 401 Bad credentials")
		assert.Contains(t, out, "💡 Suggestion: Generate a new token")
		assert.Contains(t, out, "\n       Then run: repolens config set github_token <token>")
	})

	t.Run("falls back to a plain error line", func(t *testing.T) {
		var buf bytes.Buffer

		HandleAppError(&buf, errors.New("boom"), nil)

		assert.Equal(t, "❌ boom\n", buf.String())
	})

	t.Run("ignores nil", func(t *testing.T) {
		var buf bytes.Buffer

		HandleAppError(&buf, nil, nil)

		assert.Empty(t, buf.String())
	})
}

func TestPrintAnalysis(t *testing.T) {
	trans := newTranslations(t)

	t.Run("lists dependencies in order", func(t *testing.T) {
		var buf bytes.Buffer
		result := &models.AnalysisResult{
			Summary: "A todo app.",
			Dependencies: []models.Dependency{
				{Name: "react", Version: "18.2.0"},
				{Name: "flask", Version: "2.0.1"},
			},
		}

		PrintAnalysis(&buf, result, trans)

		out := buf.String()
		assert.Contains(t, out, "Repo Summary")
		assert.Contains(t, out, "A todo app.")
		react := bytes.Index(buf.Bytes(), []byte("react: 18.2.0"))
		flask := bytes.Index(buf.Bytes(), []byte("flask: 2.0.1"))
		assert.True(t, react >= 0 && flask > react)
	})

	t.Run("notes an empty dependency list", func(t *testing.T) {
		var buf bytes.Buffer

		PrintAnalysis(&buf, &models.AnalysisResult{Summary: "x", Dependencies: []models.Dependency{}}, trans)

		assert.Contains(t, buf.String(), "No dependencies declared")
	})
}

func TestPrintDegradations(t *testing.T) {
	trans := newTranslations(t)

	t.Run("prints nothing for a clean run", func(t *testing.T) {
		var buf bytes.Buffer

		PrintDegradations(&buf, models.AnalysisReport{}, trans)

		assert.Empty(t, buf.String())
	})

	t.Run("reports every degraded stage", func(t *testing.T) {
		var buf bytes.Buffer
		report := models.AnalysisReport{
			Scan: models.ScanResult{Skipped: []models.SkippedPath{
				{Path: "", Reason: errors.New("HTTP 500")},
				{Path: "docs", Reason: errors.New("HTTP 502")},
			}},
			Fetch: models.FetchResult{Failures: []models.FetchFailure{
				{Name: "app.py", Reason: errors.New("timeout")},
			}},
			Extract: models.ExtractResult{Warnings: []models.ManifestWarning{
				{Manifest: "package.json", Reason: errors.New("bad json")},
			}},
			Summary: models.SummaryOutcome{Failure: errors.New("quota")},
		}

		PrintDegradations(&buf, report, trans)

		out := buf.String()
		assert.Contains(t, out, "2 paths could not be listed")
		assert.Contains(t, out, "/: HTTP 500")
		assert.Contains(t, out, "docs: HTTP 502")
		assert.Contains(t, out, "1 file could not be downloaded")
		assert.Contains(t, out, "app.py: timeout")
		assert.Contains(t, out, "1 manifest could not be parsed")
		assert.Contains(t, out, "no result file was written")
	})
}

func TestPrintTokenUsage(t *testing.T) {
	trans := newTranslations(t)

	t.Run("formats counts and duration", func(t *testing.T) {
		var buf bytes.Buffer

		PrintTokenUsage(&buf, &models.TokenUsage{
			InputTokens:  12345,
			OutputTokens: 678,
			TotalTokens:  13023,
			DurationMs:   1500,
		}, trans)

		out := buf.String()
		assert.Contains(t, out, "Input 12,345 | Output 678 | Total 13,023")
		assert.Contains(t, out, "Duration: 1.5s")
	})

	t.Run("ignores nil usage", func(t *testing.T) {
		var buf bytes.Buffer

		PrintTokenUsage(&buf, nil, trans)

		assert.Empty(t, buf.String())
	})
}
