package report

import (
	"bytes"
	"encoding/json"
	"os"

	domainErrors "github.com/thomas-vilte/repolens/internal/errors"
	"github.com/thomas-vilte/repolens/internal/models"
)

// JSONWriter persists an analysis result as pretty-printed JSON.
type JSONWriter struct {
	perm os.FileMode
}

func NewJSONWriter() *JSONWriter {
	return &JSONWriter{perm: 0644}
}

// Marshal renders the result with a 2-space indent, no HTML escaping and a
// trailing newline. A nil dependency list is rendered as [].
func (w *JSONWriter) Marshal(result models.AnalysisResult) ([]byte, error) {
	if result.Dependencies == nil {
		result.Dependencies = []models.Dependency{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return nil, domainErrors.ErrWriteOutput.WithError(err)
	}
	return buf.Bytes(), nil
}

// Write replaces the file at path and returns the serialized JSON.
func (w *JSONWriter) Write(path string, result models.AnalysisResult) (string, error) {
	data, err := w.Marshal(result)
	if err != nil {
		return "", err
	}

	if err := os.WriteFile(path, data, w.perm); err != nil {
		return "", domainErrors.ErrWriteOutput.
			WithError(err).
			WithContext("path", path)
	}

	return string(data), nil
}
