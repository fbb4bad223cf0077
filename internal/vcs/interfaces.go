package vcs

import (
	"context"

	"github.com/thomas-vilte/repolens/internal/models"
)

// DirectoryLister lists the immediate children of a path in a hosted repository.
type DirectoryLister interface {
	// ListDirectory returns the entries under path. An empty path is the
	// repository root. A path pointing at a file yields that single entry.
	ListDirectory(ctx context.Context, repo models.RepoRef, path string) ([]models.TreeEntry, error)
}

// FileDownloader retrieves the raw text behind a download URL.
type FileDownloader interface {
	DownloadFile(ctx context.Context, url string) (string, error)
}

// RepositoryReader is what the analysis pipeline needs from a provider.
type RepositoryReader interface {
	DirectoryLister
	FileDownloader
}
