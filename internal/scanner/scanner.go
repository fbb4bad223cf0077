package scanner

import (
	"context"

	"github.com/thomas-vilte/repolens/internal/logger"
	"github.com/thomas-vilte/repolens/internal/models"
	"github.com/thomas-vilte/repolens/internal/vcs"
)

// Scanner flattens a repository tree into its files.
type Scanner struct {
	lister vcs.DirectoryLister
}

// frame is a directory listing being walked and the index of the next entry.
type frame struct {
	entries []models.TreeEntry
	next    int
}

func New(lister vcs.DirectoryLister) *Scanner {
	return &Scanner{lister: lister}
}

// Scan walks the tree under startPath depth-first and returns every file in
// the order a recursive walk would produce: entries in listing order, with the
// files of a directory spliced in at the directory's position. A directory is
// listed only when the walk reaches it.
//
// A listing failure is recorded in Skipped and the walk continues with the
// next sibling. If the context is cancelled the partial result is returned.
func (s *Scanner) Scan(ctx context.Context, repo models.RepoRef, startPath string, progress models.ProgressFunc) models.ScanResult {
	log := logger.FromContext(ctx)

	result := models.ScanResult{Files: []models.TreeEntry{}}

	progress.Emit(models.ProgressScanStarted, map[string]interface{}{
		"repo": repo.String(),
		"path": startPath,
	})

	root, ok := s.list(ctx, repo, startPath, &result, progress)
	if !ok {
		return result
	}

	stack := []*frame{{entries: root}}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			log.Warn("scan interrupted",
				"repo", repo.String(),
				"files", len(result.Files),
				"error", err)
			return result
		}

		top := stack[len(stack)-1]
		if top.next >= len(top.entries) {
			stack = stack[:len(stack)-1]
			continue
		}

		entry := top.entries[top.next]
		top.next++

		switch {
		case entry.IsFile():
			result.Files = append(result.Files, entry)
		case entry.IsDir():
			children, ok := s.list(ctx, repo, entry.Path, &result, progress)
			if ok {
				stack = append(stack, &frame{entries: children})
			}
		default:
			log.Debug("ignoring tree entry",
				"path", entry.Path,
				"type", string(entry.Type))
		}
	}

	log.Debug("scan finished",
		"repo", repo.String(),
		"files", len(result.Files),
		"skipped", len(result.Skipped))

	return result
}

func (s *Scanner) list(ctx context.Context, repo models.RepoRef, path string, result *models.ScanResult, progress models.ProgressFunc) ([]models.TreeEntry, bool) {
	entries, err := s.lister.ListDirectory(ctx, repo, path)
	if err != nil {
		logger.Warn(ctx, "directory listing failed, skipping",
			"repo", repo.String(),
			"path", path,
			"error", err)
		result.Skipped = append(result.Skipped, models.SkippedPath{Path: path, Reason: err})
		return nil, false
	}

	progress.Emit(models.ProgressDirectoryListed, map[string]interface{}{
		"path":  path,
		"count": len(entries),
	})

	return entries, true
}
