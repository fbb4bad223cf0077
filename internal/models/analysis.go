package models

type (
	// Dependency is a third-party package declared in a manifest file.
	Dependency struct {
		Name        string `json:"name"`
		Version     string `json:"version"`
		Description string `json:"description"`
	}

	// ManifestWarning reports a manifest that could not be fully parsed.
	ManifestWarning struct {
		Manifest string
		Reason   error
	}

	// ExtractResult is the ordered dependency list of all manifests found.
	ExtractResult struct {
		Dependencies []Dependency
		Warnings     []ManifestWarning
	}

	// AnalysisResult is the artifact written to disk.
	AnalysisResult struct {
		Summary      string       `json:"summary"`
		Dependencies []Dependency `json:"dependencies"`
	}

	// RepoSummary is the text generated by the AI provider.
	RepoSummary struct {
		Text  string
		Usage *TokenUsage
	}

	// SummaryOutcome is the result of the summarize step. When Failure is set,
	// Output carries a human readable error message and Result is nil.
	SummaryOutcome struct {
		Output     string
		Result     *AnalysisResult
		OutputPath string
		Usage      *TokenUsage
		Failure    error
	}

	// AnalysisReport gathers everything a run produced.
	AnalysisReport struct {
		Repo     RepoRef
		Scan     ScanResult
		Relevant []TreeEntry
		Fetch    FetchResult
		Extract  ExtractResult
		Summary  SummaryOutcome
	}
)

// Degraded reports whether any stage recovered from a failure.
func (r AnalysisReport) Degraded() bool {
	return len(r.Scan.Skipped) > 0 ||
		len(r.Fetch.Failures) > 0 ||
		len(r.Extract.Warnings) > 0 ||
		r.Summary.Failure != nil
}
