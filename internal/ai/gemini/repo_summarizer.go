package gemini

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/thomas-vilte/repolens/internal/ai"
	"github.com/thomas-vilte/repolens/internal/config"
	domainErrors "github.com/thomas-vilte/repolens/internal/errors"
	"github.com/thomas-vilte/repolens/internal/logger"
	"github.com/thomas-vilte/repolens/internal/models"
	"google.golang.org/genai"
)

var _ ai.RepoSummarizer = (*GeminiRepoSummarizer)(nil)

type GeminiRepoSummarizer struct {
	*GeminiProvider
	generateFn ai.GenerateFunc
	language   string
	repoName   string
}

type Option func(*GeminiRepoSummarizer)

// WithRepoName adds the repository name to the prompt.
func WithRepoName(name string) Option {
	return func(s *GeminiRepoSummarizer) {
		s.repoName = name
	}
}

func NewGeminiRepoSummarizer(ctx context.Context, cfg *config.Config, opts ...Option) (*GeminiRepoSummarizer, error) {
	if cfg == nil || strings.TrimSpace(cfg.GeminiAPIKey) == "" {
		return nil, domainErrors.ErrAPIKeyMissing
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		errMsg := strings.ToLower(err.Error())
		if strings.Contains(errMsg, "invalid") ||
			strings.Contains(errMsg, "unauthorized") ||
			strings.Contains(errMsg, "api key") ||
			strings.Contains(errMsg, "authentication") {
			return nil, domainErrors.ErrGeminiAPIKeyInvalid.WithError(err)
		}
		return nil, domainErrors.NewAppError(domainErrors.TypeAI, "error creating AI client", err)
	}

	modelName := string(cfg.Model)
	if modelName == "" {
		modelName = string(config.DefaultModelForAI(config.AIGemini))
	}

	service := &GeminiRepoSummarizer{
		GeminiProvider: NewGeminiProvider(client, modelName),
		language:       cfg.Language,
	}
	for _, opt := range opts {
		opt(service)
	}
	service.generateFn = service.defaultGenerate

	return service, nil
}

func (s *GeminiRepoSummarizer) defaultGenerate(ctx context.Context, mName string, p string) (interface{}, *models.TokenUsage, error) {
	log := logger.FromContext(ctx)

	resp, err := s.Client.Models.GenerateContent(ctx, mName, genai.Text(p), GetGenerateConfig())
	if err != nil {
		log.Error("gemini API call failed",
			"error", err,
			"model", mName)
		return nil, nil, classifyError(err)
	}

	return resp, extractUsage(resp), nil
}

func (s *GeminiRepoSummarizer) SummarizeRepo(ctx context.Context, files models.FileContentMap) (models.RepoSummary, error) {
	log := logger.FromContext(ctx)

	prompt, err := s.buildPrompt(files)
	if err != nil {
		return models.RepoSummary{}, domainErrors.ErrAIGeneration.WithError(err)
	}

	log.Info("generating repository summary",
		"provider", s.GetProviderName(),
		"model", s.GetModelName(),
		"files", len(files),
		"prompt_length", len(prompt))

	start := time.Now()
	resp, usage, err := s.generateFn(ctx, s.GetModelName(), prompt)
	if err != nil {
		log.Error("failed to generate repository summary",
			"error", err)
		return models.RepoSummary{}, err
	}

	var responseText string
	switch r := resp.(type) {
	case *genai.GenerateContentResponse:
		log.Debug("formatResponse received GenerateContentResponse",
			"candidates_count", len(r.Candidates))
		responseText = formatResponse(r)
	case string:
		responseText = r
	default:
		log.Warn("unexpected response type", "type", fmt.Sprintf("%T", resp))
	}

	responseText = strings.TrimSpace(responseText)
	if responseText == "" {
		return models.RepoSummary{}, domainErrors.ErrInvalidAIOutput.
			WithContext("reason", "empty response from AI").
			WithContext("operation", "summarize repository")
	}

	if usage != nil {
		usage.Model = s.GetModelName()
		usage.DurationMs = time.Since(start).Milliseconds()
	}

	log.Info("repository summary generated via gemini",
		"summary_length", len(responseText))

	return models.RepoSummary{
		Text:  responseText,
		Usage: usage,
	}, nil
}

func (s *GeminiRepoSummarizer) buildPrompt(files models.FileContentMap) (string, error) {
	payload, err := ai.FormatFiles(files)
	if err != nil {
		return "", err
	}

	return ai.RenderPrompt("repoSummaryPrompt", ai.GetRepoSummaryPromptTemplate(s.language), ai.PromptData{
		RepoName: s.repoName,
		Files:    payload,
	})
}
