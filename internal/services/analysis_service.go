package services

import (
	"context"

	"github.com/google/uuid"
	"github.com/thomas-vilte/repolens/internal/ai"
	"github.com/thomas-vilte/repolens/internal/config"
	"github.com/thomas-vilte/repolens/internal/dependency"
	domainErrors "github.com/thomas-vilte/repolens/internal/errors"
	"github.com/thomas-vilte/repolens/internal/fetcher"
	"github.com/thomas-vilte/repolens/internal/filter"
	"github.com/thomas-vilte/repolens/internal/logger"
	"github.com/thomas-vilte/repolens/internal/models"
	"github.com/thomas-vilte/repolens/internal/report"
	"github.com/thomas-vilte/repolens/internal/repourl"
	"github.com/thomas-vilte/repolens/internal/scanner"
	"github.com/thomas-vilte/repolens/internal/vcs"
)

// NoRelevantFilesSummary is written instead of calling the model when no
// relevant file was found.
const NoRelevantFilesSummary = "No relevant files were found in the repository."

// SummaryErrorPrefix starts the output returned when the summary step fails.
const SummaryErrorPrefix = "Error generating summary: "

// SummarizerProvider builds the summarizer for a run. It is only called when
// there is something to summarize.
type SummarizerProvider func(ctx context.Context, repo models.RepoRef) (ai.RepoSummarizer, error)

type AnalysisService struct {
	reader             vcs.RepositoryReader
	filter             *filter.RelevanceFilter
	extractor          *dependency.Extractor
	summarizerProvider SummarizerProvider
	writer             *report.JSONWriter
	outputPath         string
	concurrency        int
}

type AnalysisOption func(*AnalysisService)

func WithRepositoryReader(reader vcs.RepositoryReader) AnalysisOption {
	return func(s *AnalysisService) {
		s.reader = reader
	}
}

func WithRelevanceFilter(f *filter.RelevanceFilter) AnalysisOption {
	return func(s *AnalysisService) {
		s.filter = f
	}
}

func WithExtractor(e *dependency.Extractor) AnalysisOption {
	return func(s *AnalysisService) {
		s.extractor = e
	}
}

func WithSummarizerProvider(p SummarizerProvider) AnalysisOption {
	return func(s *AnalysisService) {
		s.summarizerProvider = p
	}
}

func WithOutputPath(path string) AnalysisOption {
	return func(s *AnalysisService) {
		if path != "" {
			s.outputPath = path
		}
	}
}

func WithConcurrency(n int) AnalysisOption {
	return func(s *AnalysisService) {
		s.concurrency = n
	}
}

func NewAnalysisService(opts ...AnalysisOption) *AnalysisService {
	s := &AnalysisService{
		filter:      filter.New(),
		extractor:   dependency.NewExtractor(),
		writer:      report.NewJSONWriter(),
		outputPath:  config.DefaultOutputPath,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Analyze runs the whole pipeline for one repository URL. The only error
// that stops it early is an invalid URL; every other failure is recorded in
// the returned report. A cancelled context aborts between stages and the
// result file is not written.
func (s *AnalysisService) Analyze(ctx context.Context, rawURL string, progress models.ProgressFunc) (models.AnalysisReport, error) {
	repo, err := repourl.Parse(rawURL)
	if err != nil {
		logger.Error(ctx, "invalid repository URL", err, "url", rawURL)
		return models.AnalysisReport{}, err
	}

	if s.reader == nil {
		return models.AnalysisReport{}, domainErrors.NewAppError(domainErrors.TypeInternal, "repository reader not configured", nil)
	}

	ctx = logger.With(ctx, "run_id", uuid.NewString(), "repo", repo.String())
	log := logger.FromContext(ctx)
	log.Info("analysis started")

	rep := models.AnalysisReport{Repo: repo}

	rep.Scan = scanner.New(s.reader).Scan(ctx, repo, "", progress)
	if err := ctx.Err(); err != nil {
		return rep, err
	}

	rep.Relevant = s.filter.Select(rep.Scan.Files)
	progress.Emit(models.ProgressFilesSelected, map[string]interface{}{
		"count": len(rep.Relevant),
		"total": len(rep.Scan.Files),
	})
	log.Info("relevant files selected",
		"relevant", len(rep.Relevant),
		"files", len(rep.Scan.Files),
		"skipped", len(rep.Scan.Skipped),
		"suffixes", s.filter.Suffixes())

	rep.Fetch = fetcher.New(s.reader, fetcher.WithConcurrency(s.concurrency)).Fetch(ctx, rep.Relevant, progress)
	if err := ctx.Err(); err != nil {
		return rep, err
	}

	rep.Extract = s.extractor.Extract(ctx, rep.Fetch.Contents)
	log.Info("dependencies extracted",
		"dependencies", len(rep.Extract.Dependencies),
		"manifests", s.extractor.SupportedManifests(rep.Fetch.Contents))

	rep.Summary = s.Summarize(ctx, repo, rep.Fetch.Contents, rep.Extract.Dependencies, progress)
	if err := ctx.Err(); err != nil {
		return rep, err
	}

	log.Info("analysis finished",
		"degraded", rep.Degraded())

	return rep, nil
}

// Summarize asks the model for a summary, merges it with the dependencies
// and writes the result file. Failures are reported in the outcome; in that
// case Output holds the error message and no file is written.
func (s *AnalysisService) Summarize(ctx context.Context, repo models.RepoRef, contents models.FileContentMap, deps []models.Dependency, progress models.ProgressFunc) models.SummaryOutcome {
	log := logger.FromContext(ctx)

	if deps == nil {
		deps = []models.Dependency{}
	}

	var outcome models.SummaryOutcome
	text := NoRelevantFilesSummary

	if len(contents) > 0 {
		progress.Emit(models.ProgressSummarizing, map[string]interface{}{
			"files": len(contents),
		})

		summary, err := s.generate(ctx, repo, contents)
		if err != nil {
			return failedSummary(ctx, err, summary.Usage)
		}
		text = summary.Text
		outcome.Usage = summary.Usage
	} else {
		log.Warn("no relevant files, skipping model call")
	}

	result := &models.AnalysisResult{Summary: text, Dependencies: deps}
	out, err := s.writer.Write(s.outputPath, *result)
	if err != nil {
		return failedSummary(ctx, err, outcome.Usage)
	}

	progress.Emit(models.ProgressResultWritten, map[string]interface{}{
		"path": s.outputPath,
	})
	log.Info("analysis result written",
		"path", s.outputPath,
		"dependencies", len(deps))

	outcome.Output = out
	outcome.Result = result
	outcome.OutputPath = s.outputPath
	return outcome
}

func (s *AnalysisService) generate(ctx context.Context, repo models.RepoRef, contents models.FileContentMap) (models.RepoSummary, error) {
	if s.summarizerProvider == nil {
		return models.RepoSummary{}, domainErrors.ErrAPIKeyMissing
	}

	summarizer, err := s.summarizerProvider(ctx, repo)
	if err != nil {
		return models.RepoSummary{}, err
	}

	return summarizer.SummarizeRepo(ctx, contents)
}

func failedSummary(ctx context.Context, err error, usage *models.TokenUsage) models.SummaryOutcome {
	logger.Error(ctx, "summary generation failed", err)
	return models.SummaryOutcome{
		Output:  SummaryErrorPrefix + err.Error(),
		Usage:   usage,
		Failure: domainErrors.ErrSummaryGeneration.WithError(err),
	}
}
