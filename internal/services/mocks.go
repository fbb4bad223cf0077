package services

import (
	"context"

	"github.com/stretchr/testify/mock"
	"github.com/thomas-vilte/repolens/internal/models"
)

type MockRepositoryReader struct {
	mock.Mock
}

func (m *MockRepositoryReader) ListDirectory(ctx context.Context, repo models.RepoRef, path string) ([]models.TreeEntry, error) {
	args := m.Called(ctx, repo, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TreeEntry), args.Error(1)
}

func (m *MockRepositoryReader) DownloadFile(ctx context.Context, url string) (string, error) {
	args := m.Called(ctx, url)
	return args.String(0), args.Error(1)
}

type MockRepoSummarizer struct {
	mock.Mock
}

func (m *MockRepoSummarizer) SummarizeRepo(ctx context.Context, files models.FileContentMap) (models.RepoSummary, error) {
	args := m.Called(ctx, files)
	return args.Get(0).(models.RepoSummary), args.Error(1)
}
