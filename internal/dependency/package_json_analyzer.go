package dependency

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	domainErrors "github.com/thomas-vilte/repolens/internal/errors"
	"github.com/thomas-vilte/repolens/internal/models"
)

var _ ManifestAnalyzer = (*PackageJSONAnalyzer)(nil)

const packageJSONDescription = "Used in the frontend. Part of the React/Node.js ecosystem."

type PackageJSONAnalyzer struct{}

func NewPackageJSONAnalyzer() *PackageJSONAnalyzer {
	return &PackageJSONAnalyzer{}
}

func (p *PackageJSONAnalyzer) Name() string {
	return "npm"
}

func (p *PackageJSONAnalyzer) Manifest() string {
	return "package.json"
}

// Analyze emits the "dependencies" entries in declaration order. A repeated
// name keeps its first position and its last version.
func (p *PackageJSONAnalyzer) Analyze(content string) ([]models.Dependency, error) {
	var pkg map[string]json.RawMessage
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return nil, p.parseError(err)
	}

	raw, ok := pkg["dependencies"]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return []models.Dependency{}, nil
	}

	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, p.parseError(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, p.parseError(fmt.Errorf("dependencies is not an object"))
	}

	deps := []models.Dependency{}
	index := make(map[string]int)
	var invalid []string

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, p.parseError(err)
		}
		name, _ := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, p.parseError(err)
		}

		var version string
		if err := json.Unmarshal(value, &version); err != nil {
			invalid = append(invalid, name)
			continue
		}

		dep := models.Dependency{
			Name:        name,
			Version:     strings.TrimLeft(version, "^~"),
			Description: packageJSONDescription,
		}
		if i, seen := index[name]; seen {
			deps[i] = dep
			continue
		}
		index[name] = len(deps)
		deps = append(deps, dep)
	}

	if len(invalid) > 0 {
		return deps, p.parseError(fmt.Errorf("non-string version for %s", strings.Join(invalid, ", ")))
	}

	return deps, nil
}

func (p *PackageJSONAnalyzer) parseError(err error) error {
	return domainErrors.ErrManifestParse.
		WithError(err).
		WithContext("manifest", p.Manifest())
}
