package dependency

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	domainErrors "github.com/thomas-vilte/repolens/internal/errors"
	"github.com/thomas-vilte/repolens/internal/models"
)

// MockAnalyzer is a mock of ManifestAnalyzer
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) Name() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAnalyzer) Manifest() string {
	args := m.Called()
	return args.String(0)
}

func (m *MockAnalyzer) Analyze(content string) ([]models.Dependency, error) {
	args := m.Called(content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Dependency), args.Error(1)
}

func names(deps []models.Dependency) []string {
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		out = append(out, d.Name)
	}
	return out
}

func TestNewExtractor(t *testing.T) {
	extractor := NewExtractor()

	require.Len(t, extractor.analyzers, 2, "should have package.json and requirements.txt analyzers")
	assert.Equal(t, "package.json", extractor.analyzers[0].Manifest())
	assert.Equal(t, "requirements.txt", extractor.analyzers[1].Manifest())
}

func TestExtractor_Extract(t *testing.T) {
	t.Run("should put package.json dependencies before requirements.txt ones", func(t *testing.T) {
		files := models.FileContentMap{
			"requirements.txt": "flask==2.0.1\nrequests==2.31.0\n",
			"package.json":     `{"dependencies": {"react": "^18.2.0", "axios": "~1.6.0", "lodash": "4.17.21"}}`,
			"app.py":           "import flask",
		}

		result := NewExtractor().Extract(context.Background(), files)

		assert.Equal(t, []string{"react", "axios", "lodash", "flask", "requests"}, names(result.Dependencies))
		assert.Empty(t, result.Warnings)
	})

	t.Run("should tag react as a frontend dependency", func(t *testing.T) {
		files := models.FileContentMap{"package.json": `{"dependencies": {"react": "^18.2.0"}}`}

		result := NewExtractor().Extract(context.Background(), files)

		assert.Equal(t, []models.Dependency{{
			Name:        "react",
			Version:     "18.2.0",
			Description: "Used in the frontend. Part of the React/Node.js ecosystem.",
		}}, result.Dependencies)
	})

	t.Run("should keep requirements when package.json is malformed", func(t *testing.T) {
		files := models.FileContentMap{
			"package.json":     `{"dependencies": {"react": `,
			"requirements.txt": "numpy==1.26.0",
		}

		result := NewExtractor().Extract(context.Background(), files)

		assert.Equal(t, []string{"numpy"}, names(result.Dependencies))
		require.Len(t, result.Warnings, 1)
		assert.Equal(t, "package.json", result.Warnings[0].Manifest)
		assert.ErrorIs(t, result.Warnings[0].Reason, domainErrors.ErrManifestParse)
	})

	t.Run("should return an empty list without manifests", func(t *testing.T) {
		result := NewExtractor().Extract(context.Background(), models.FileContentMap{"main.py": ""})

		assert.NotNil(t, result.Dependencies)
		assert.Empty(t, result.Dependencies)
		assert.Empty(t, result.Warnings)
	})

	t.Run("should warn about an empty package.json from a failed download", func(t *testing.T) {
		result := NewExtractor().Extract(context.Background(), models.FileContentMap{"package.json": ""})

		assert.Empty(t, result.Dependencies)
		assert.Len(t, result.Warnings, 1)
	})

	t.Run("should run registered analyzers last", func(t *testing.T) {
		extractor := NewExtractor()
		custom := new(MockAnalyzer)
		custom.On("Manifest").Return("go.mod")
		custom.On("Name").Return("gomod")
		custom.On("Analyze", "module x").
			Return([]models.Dependency{{Name: "github.com/stretchr/testify", Version: "v1.11.1"}}, nil).Once()
		extractor.RegisterAnalyzer(custom)

		result := extractor.Extract(context.Background(), models.FileContentMap{
			"go.mod":           "module x",
			"requirements.txt": "flask==2.0.1",
		})

		assert.Equal(t, []string{"flask", "github.com/stretchr/testify"}, names(result.Dependencies))
		custom.AssertExpectations(t)
	})

	t.Run("should keep partial results from a failing analyzer", func(t *testing.T) {
		extractor := &Extractor{}
		custom := new(MockAnalyzer)
		custom.On("Manifest").Return("Pipfile")
		custom.On("Name").Return("pipenv")
		custom.On("Analyze", "x").
			Return([]models.Dependency{{Name: "django"}}, errors.New("bad section")).Once()
		extractor.RegisterAnalyzer(custom)

		result := extractor.Extract(context.Background(), models.FileContentMap{"Pipfile": "x"})

		assert.Equal(t, []string{"django"}, names(result.Dependencies))
		assert.Len(t, result.Warnings, 1)
	})
}

func TestExtractor_SupportedManifests(t *testing.T) {
	extractor := NewExtractor()

	assert.Equal(t, []string{"requirements.txt"}, extractor.SupportedManifests(models.FileContentMap{
		"requirements.txt": "",
		"README.md":        "",
	}))
	assert.Empty(t, extractor.SupportedManifests(models.FileContentMap{}))
}
