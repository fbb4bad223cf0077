package ui

import (
	"fmt"
	"io"

	"github.com/thomas-vilte/repolens/internal/i18n"
	"github.com/thomas-vilte/repolens/internal/models"
)

// PrintAnalysis renders the summary text and the dependency list.
func PrintAnalysis(w io.Writer, result *models.AnalysisResult, t *i18n.Translations) {
	if result == nil {
		return
	}

	PrintSectionBanner(w, t.GetMessage("summary_title", 0, nil))
	_, _ = fmt.Fprintln(w, result.Summary)

	_, _ = fmt.Fprintf(w, "\n%s %s\n", StatsEmoji, Accent.Sprint(t.GetMessage("dependencies_title", 0, nil)))
	if len(result.Dependencies) == 0 {
		_, _ = fmt.Fprintf(w, "   %s\n", Dim.Sprint(t.GetMessage("no_dependencies", 0, nil)))
		return
	}
	for _, dep := range result.Dependencies {
		PrintKeyValue(w, dep.Name, dep.Version)
	}
}

// PrintDegradations lists every stage that recovered from a failure. Nothing
// is printed for a clean run.
func PrintDegradations(w io.Writer, report models.AnalysisReport, t *i18n.Translations) {
	if !report.Degraded() {
		return
	}

	_, _ = fmt.Fprintln(w)
	PrintWarning(w, t.GetMessage("degradations_title", 0, nil))

	if n := len(report.Scan.Skipped); n > 0 {
		_, _ = fmt.Fprintf(w, "   %s\n", t.GetMessage("skipped_paths", n, map[string]interface{}{"Count": n}))
		for _, s := range report.Scan.Skipped {
			PrintKeyValue(w, displayPath(s.Path), fmt.Sprint(s.Reason))
		}
	}

	if n := len(report.Fetch.Failures); n > 0 {
		_, _ = fmt.Fprintf(w, "   %s\n", t.GetMessage("fetch_failures", n, map[string]interface{}{"Count": n}))
		for _, f := range report.Fetch.Failures {
			PrintKeyValue(w, f.Name, fmt.Sprint(f.Reason))
		}
	}

	if n := len(report.Extract.Warnings); n > 0 {
		_, _ = fmt.Fprintf(w, "   %s\n", t.GetMessage("manifest_warnings", n, map[string]interface{}{"Count": n}))
		for _, mw := range report.Extract.Warnings {
			PrintKeyValue(w, mw.Manifest, fmt.Sprint(mw.Reason))
		}
	}

	if report.Summary.Failure != nil {
		_, _ = fmt.Fprintf(w, "   %s\n", t.GetMessage("summary_failed", 0, nil))
	}
}

func displayPath(p string) string {
	if p == "" {
		return "/"
	}
	return p
}
