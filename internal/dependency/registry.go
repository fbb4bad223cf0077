package dependency

import (
	"context"

	"github.com/thomas-vilte/repolens/internal/logger"
	"github.com/thomas-vilte/repolens/internal/models"
)

// Extractor runs every registered analyzer whose manifest is present and
// concatenates their output in registration order.
type Extractor struct {
	analyzers []ManifestAnalyzer
}

func NewExtractor() *Extractor {
	return &Extractor{
		analyzers: []ManifestAnalyzer{
			NewPackageJSONAnalyzer(),
			NewRequirementsAnalyzer(),
		},
	}
}

// RegisterAnalyzer adds a custom analyzer
func (e *Extractor) RegisterAnalyzer(analyzer ManifestAnalyzer) {
	e.analyzers = append(e.analyzers, analyzer)
}

// Extract never fails: a manifest that cannot be parsed adds a warning and
// whatever dependencies could still be read from it.
func (e *Extractor) Extract(ctx context.Context, files models.FileContentMap) models.ExtractResult {
	log := logger.FromContext(ctx)
	result := models.ExtractResult{Dependencies: []models.Dependency{}}

	for _, analyzer := range e.analyzers {
		content, ok := files[analyzer.Manifest()]
		if !ok {
			continue
		}

		deps, err := analyzer.Analyze(content)
		if err != nil {
			log.Warn("manifest could not be fully parsed",
				"manifest", analyzer.Manifest(),
				"error", err)
			result.Warnings = append(result.Warnings, models.ManifestWarning{
				Manifest: analyzer.Manifest(),
				Reason:   err,
			})
		}

		log.Debug("manifest analyzed",
			"manifest", analyzer.Manifest(),
			"analyzer", analyzer.Name(),
			"dependencies", len(deps))

		result.Dependencies = append(result.Dependencies, deps...)
	}

	return result
}

// SupportedManifests lists the manifests of files that some analyzer handles.
func (e *Extractor) SupportedManifests(files models.FileContentMap) []string {
	var supported []string
	for _, analyzer := range e.analyzers {
		if _, ok := files[analyzer.Manifest()]; ok {
			supported = append(supported, analyzer.Manifest())
		}
	}
	return supported
}
