package ai

import (
	"context"

	"github.com/thomas-vilte/repolens/internal/models"
)

// RepoSummarizer produces a natural-language description of a repository
// from the contents of its relevant files.
type RepoSummarizer interface {
	// SummarizeRepo sends the file map to the model in a single call.
	SummarizeRepo(ctx context.Context, files models.FileContentMap) (models.RepoSummary, error)
}

// GenerateFunc performs one model call. Providers keep it in a field so tests
// can replace the network call.
type GenerateFunc func(ctx context.Context, model string, prompt string) (interface{}, *models.TokenUsage, error)
