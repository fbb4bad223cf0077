package dependency

import (
	"strings"

	"github.com/thomas-vilte/repolens/internal/models"
)

var _ ManifestAnalyzer = (*RequirementsAnalyzer)(nil)

const requirementsDescription = "Used in the Python backend/agent system."

// RequirementsAnalyzer only understands exact "name==version" pins. Ranges,
// extras, unpinned names and options are dropped without a warning.
type RequirementsAnalyzer struct{}

func NewRequirementsAnalyzer() *RequirementsAnalyzer {
	return &RequirementsAnalyzer{}
}

func (r *RequirementsAnalyzer) Name() string {
	return "pip"
}

func (r *RequirementsAnalyzer) Manifest() string {
	return "requirements.txt"
}

func (r *RequirementsAnalyzer) Analyze(content string) ([]models.Dependency, error) {
	deps := []models.Dependency{}

	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.Split(line, "==")
		if len(parts) != 2 {
			continue
		}

		deps = append(deps, models.Dependency{
			Name:        strings.TrimSpace(parts[0]),
			Version:     strings.TrimSpace(parts[1]),
			Description: requirementsDescription,
		})
	}

	return deps, nil
}
