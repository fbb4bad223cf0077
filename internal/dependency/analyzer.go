package dependency

import "github.com/thomas-vilte/repolens/internal/models"

// ManifestAnalyzer reads the declared dependencies of one manifest file.
type ManifestAnalyzer interface {
	// Name is a short label used in logs.
	Name() string
	// Manifest is the file name the analyzer looks up in the content map.
	Manifest() string
	// Analyze parses the manifest content. It may return dependencies and an
	// error together when only part of the manifest could be read.
	Analyze(content string) ([]models.Dependency, error)
}
