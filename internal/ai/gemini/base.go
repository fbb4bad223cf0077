package gemini

import (
	"google.golang.org/genai"
)

// GeminiProvider is a shared base for Gemini services.
type GeminiProvider struct {
	Client *genai.Client
	model  string
}

// NewGeminiProvider creates a new instance of GeminiProvider
func NewGeminiProvider(client *genai.Client, model string) *GeminiProvider {
	return &GeminiProvider{
		Client: client,
		model:  model,
	}
}

func (g *GeminiProvider) GetModelName() string {
	return g.model
}

func (g *GeminiProvider) GetProviderName() string {
	return "gemini"
}
