package github

import (
	"context"

	"github.com/google/go-github/v80/github"
	"github.com/stretchr/testify/mock"
)

type MockRepoService struct {
	mock.Mock
}

func (m *MockRepoService) GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	args := m.Called(ctx, owner, repo, path, opts)

	var file *github.RepositoryContent
	if v := args.Get(0); v != nil {
		file = v.(*github.RepositoryContent)
	}
	var dir []*github.RepositoryContent
	if v := args.Get(1); v != nil {
		dir = v.([]*github.RepositoryContent)
	}
	var resp *github.Response
	if v := args.Get(2); v != nil {
		resp = v.(*github.Response)
	}
	return file, dir, resp, args.Error(3)
}
