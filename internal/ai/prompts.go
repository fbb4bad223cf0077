package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"text/template"

	"github.com/thomas-vilte/repolens/internal/models"
)

// PromptData holds the parameters for template rendering
type PromptData struct {
	RepoName string
	Files    string
}

// RenderPrompt renders a prompt template with the provided data
func RenderPrompt(name, tmplStr string, data interface{}) (string, error) {
	tmpl, err := template.New(name).Parse(tmplStr)
	if err != nil {
		return "", fmt.Errorf("error parsing template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("error executing template %s: %w", name, err)
	}

	return buf.String(), nil
}

// FormatFiles serializes the content map as 2-space indented JSON with keys
// in sorted order. HTML characters are kept as they are.
func FormatFiles(files models.FileContentMap) (string, error) {
	if files == nil {
		files = models.FileContentMap{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(files); err != nil {
		return "", fmt.Errorf("error encoding files: %w", err)
	}

	return strings.TrimSuffix(buf.String(), "\n"), nil
}

const (
	repoSummaryPromptTemplateEN = `The following are files from a GitHub repo{{if .RepoName}} ({{.RepoName}}){{end}}. Summarize what the repo does. Provide:
- Project purpose by file
- Key functionalities
- Tech stack/packages
- How to use it

Files:
{{.Files}}`

	repoSummaryPromptTemplateES = `Los siguientes son archivos de un repositorio de GitHub{{if .RepoName}} ({{.RepoName}}){{end}}. Resumí qué hace el repositorio. Incluí:
- Propósito del proyecto por archivo
- Funcionalidades principales
- Stack tecnológico/paquetes
- Cómo usarlo

Respondé en español.

Archivos:
{{.Files}}`
)

// GetRepoSummaryPromptTemplate returns the appropriate template based on the language
func GetRepoSummaryPromptTemplate(lang string) string {
	switch lang {
	case "es":
		return repoSummaryPromptTemplateES
	default:
		return repoSummaryPromptTemplateEN
	}
}
