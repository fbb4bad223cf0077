package fetcher

import (
	"context"
	"sync"

	"github.com/dustin/go-humanize"
	domainErrors "github.com/thomas-vilte/repolens/internal/errors"
	"github.com/thomas-vilte/repolens/internal/logger"
	"github.com/thomas-vilte/repolens/internal/models"
	"github.com/thomas-vilte/repolens/internal/vcs"
	"golang.org/x/sync/errgroup"
)

// Fetcher downloads the raw content of tree entries.
type Fetcher struct {
	downloader  vcs.FileDownloader
	concurrency int
}

type Option func(*Fetcher)

// WithConcurrency sets how many downloads run at once. Values below 2 keep
// the default sequential behaviour.
func WithConcurrency(n int) Option {
	return func(f *Fetcher) {
		if n > 0 {
			f.concurrency = n
		}
	}
}

func New(downloader vcs.FileDownloader, opts ...Option) *Fetcher {
	f := &Fetcher{
		downloader:  downloader,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

type download struct {
	content string
	err     error
}

// Fetch downloads every entry and maps its name to its content. A failed
// download maps the name to "" and is listed in Failures. Entries are applied
// in input order, so when two entries share a name the later one wins no
// matter how many downloads ran in parallel.
func (f *Fetcher) Fetch(ctx context.Context, entries []models.TreeEntry, progress models.ProgressFunc) models.FetchResult {
	log := logger.FromContext(ctx)

	downloads := make([]download, len(entries))
	if f.concurrency > 1 && len(entries) > 1 {
		f.fetchConcurrent(ctx, entries, downloads, progress)
	} else {
		for i, e := range entries {
			downloads[i] = f.fetchOne(ctx, e)
			progress.Emit(models.ProgressFileFetched, map[string]interface{}{
				"name":  e.Name,
				"index": i + 1,
				"total": len(entries),
			})
		}
	}

	result := models.FetchResult{Contents: make(models.FileContentMap, len(entries))}
	for i, e := range entries {
		d := downloads[i]
		if d.err != nil {
			log.Warn("file download failed",
				"path", e.Path,
				"url", e.DownloadURL,
				"error", d.err)
			result.Contents[e.Name] = ""
			result.Failures = append(result.Failures, models.FetchFailure{
				Name:   e.Name,
				URL:    e.DownloadURL,
				Reason: d.err,
			})
			continue
		}
		result.Contents[e.Name] = d.content
		result.Bytes += uint64(len(d.content))
	}

	log.Info("files fetched",
		"files", len(entries),
		"failures", len(result.Failures),
		"bytes", humanize.Bytes(result.Bytes),
		"concurrency", f.concurrency)

	return result
}

func (f *Fetcher) fetchConcurrent(ctx context.Context, entries []models.TreeEntry, downloads []download, progress models.ProgressFunc) {
	var g errgroup.Group
	g.SetLimit(f.concurrency)

	var mu sync.Mutex
	completed := 0

	for i, e := range entries {
		g.Go(func() error {
			downloads[i] = f.fetchOne(ctx, e)

			mu.Lock()
			completed++
			progress.Emit(models.ProgressFileFetched, map[string]interface{}{
				"name":  e.Name,
				"index": completed,
				"total": len(entries),
			})
			mu.Unlock()
			return nil
		})
	}

	_ = g.Wait()
}

func (f *Fetcher) fetchOne(ctx context.Context, e models.TreeEntry) download {
	if err := ctx.Err(); err != nil {
		return download{err: domainErrors.ErrFetchFailure.WithError(err).WithContext("url", e.DownloadURL)}
	}

	content, err := f.downloader.DownloadFile(ctx, e.DownloadURL)
	if err != nil {
		return download{err: err}
	}

	logger.Debug(ctx, "file downloaded",
		"path", e.Path,
		"bytes", humanize.Bytes(uint64(len(content))))

	return download{content: content}
}
