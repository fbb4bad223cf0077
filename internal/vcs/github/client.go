package github

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/google/go-github/v80/github"
	domainErrors "github.com/thomas-vilte/repolens/internal/errors"
	"github.com/thomas-vilte/repolens/internal/logger"
	"github.com/thomas-vilte/repolens/internal/models"
	"github.com/thomas-vilte/repolens/internal/vcs"
	"golang.org/x/oauth2"
)

var _ vcs.RepositoryReader = (*GitHubClient)(nil)

type RepositoriesService interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
}

// HTTPClient is the subset of *http.Client used for raw downloads.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

type GitHubClient struct {
	repoService RepositoriesService
	httpClient  HTTPClient
	token       string
}

// NewGitHubClient builds a client for the contents API. The token is optional;
// without it requests are anonymous and subject to the lower rate limit.
// Raw downloads never carry the token and use a client without a timeout of
// its own; cancellation comes from the context.
func NewGitHubClient(token string) *GitHubClient {
	var apiHTTPClient *http.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		apiHTTPClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(apiHTTPClient)
	return &GitHubClient{
		repoService: client.Repositories,
		httpClient:  &http.Client{},
		token:       token,
	}
}

func NewGitHubClientWithServices(repoService RepositoriesService, httpClient HTTPClient) *GitHubClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &GitHubClient{
		repoService: repoService,
		httpClient:  httpClient,
	}
}

func (ghc *GitHubClient) ListDirectory(ctx context.Context, repo models.RepoRef, path string) ([]models.TreeEntry, error) {
	log := logger.FromContext(ctx)

	log.Debug("listing github directory",
		"repo", repo.String(),
		"path", path,
		"authenticated", ghc.token != "")

	fileContent, dirContent, resp, err := ghc.repoService.GetContents(ctx, repo.Owner, repo.Name, path, nil)
	if err != nil {
		return nil, classifyListingError(err, resp, repo, path)
	}

	if fileContent != nil {
		return []models.TreeEntry{toTreeEntry(fileContent)}, nil
	}

	entries := make([]models.TreeEntry, 0, len(dirContent))
	for _, c := range dirContent {
		if c == nil {
			continue
		}
		entries = append(entries, toTreeEntry(c))
	}

	log.Debug("github directory listed",
		"repo", repo.String(),
		"path", path,
		"count", len(entries))

	return entries, nil
}

func (ghc *GitHubClient) DownloadFile(ctx context.Context, url string) (string, error) {
	if url == "" {
		return "", domainErrors.ErrFetchFailure.
			WithError(errors.New("entry has no download URL"))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", domainErrors.ErrFetchFailure.WithError(err).WithContext("url", url)
	}

	resp, err := ghc.httpClient.Do(req)
	if err != nil {
		return "", domainErrors.ErrFetchFailure.WithError(err).WithContext("url", url)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", domainErrors.ErrFetchFailure.
			WithContext("url", url).
			WithContext("status", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", domainErrors.ErrFetchFailure.WithError(err).WithContext("url", url)
	}

	return string(body), nil
}

func classifyListingError(err error, resp *github.Response, repo models.RepoRef, path string) error {
	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	if errors.As(err, &rateErr) || errors.As(err, &abuseErr) {
		return domainErrors.ErrGitHubRateLimit.
			WithError(err).
			WithContext("path", path)
	}

	if resp != nil && resp.Response != nil {
		switch resp.StatusCode {
		case http.StatusUnauthorized:
			return domainErrors.ErrGitHubTokenInvalid.
				WithContext("operation", "list directory")
		case http.StatusTooManyRequests:
			return domainErrors.ErrGitHubRateLimit.
				WithContext("retry_after", resp.Header.Get("Retry-After")).
				WithContext("path", path)
		case http.StatusNotFound:
			return domainErrors.ErrRepositoryNotFound.
				WithContext("repo", repo.String()).
				WithContext("path", path)
		default:
			return domainErrors.ErrListingFailure.
				WithError(err).
				WithContext("path", path).
				WithContext("status", resp.StatusCode)
		}
	}

	return domainErrors.ErrListingFailure.
		WithError(fmt.Errorf("list %s/%s: %w", repo, path, err)).
		WithContext("path", path)
}

func toTreeEntry(c *github.RepositoryContent) models.TreeEntry {
	return models.TreeEntry{
		Name:        c.GetName(),
		Path:        c.GetPath(),
		Type:        models.EntryType(c.GetType()),
		DownloadURL: c.GetDownloadURL(),
	}
}
