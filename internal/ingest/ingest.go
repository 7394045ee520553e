// Package ingest fetches bookmarked pages one at a time and adds their
// content to the semantic store.
package ingest

import (
	"context"

	"github.com/pterm/pterm"

	"github.com/nikbrunner/bms/internal/fetcher"
	"github.com/nikbrunner/bms/internal/logging"
	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/semantic"
)

// Indexer is the part of the semantic store ingestion writes to.
type Indexer interface {
	Has(url string) bool
	AddDocument(ctx context.Context, doc semantic.Document) (bool, error)
}

// ProgressFunc is called after each bookmark is attempted.
type ProgressFunc func(status semantic.ProcessStatus)

// Summary counts what a run did with each bookmark.
type Summary struct {
	Added   int
	Skipped int
	Failed  int
}

// Ingester runs batch ingestion.
type Ingester struct {
	Fetcher fetcher.Fetcher
	Store   Indexer
	Logger  *pterm.Logger
}

// Run processes links sequentially. A failing bookmark is logged and
// skipped; it is not retried or recorded. Already indexed URLs are skipped.
// Cancelling ctx stops the run with RunError.
func (in *Ingester) Run(ctx context.Context, links []model.Link, onProgress ProgressFunc) (semantic.ProcessStatus, Summary) {
	log := logging.OrDiscard(in.Logger)
	status := semantic.ProcessStatus{Total: len(links), Status: semantic.RunProcessing}
	var summary Summary

	report := func() {
		if onProgress != nil {
			onProgress(status)
		}
	}
	report()

	for _, link := range links {
		if err := ctx.Err(); err != nil {
			log.Warn("ingestion canceled", log.Args("processed", status.Processed, "total", status.Total))
			status.Status = semantic.RunError
			report()
			return status, summary
		}

		switch added, err := in.ingestOne(ctx, link); {
		case err != nil:
			summary.Failed++
			log.Warn("skipping bookmark", log.Args("url", link.URL, "error", fetcher.NormalizeError(err)))
		case added:
			summary.Added++
			log.Debug("indexed bookmark", log.Args("url", link.URL))
		default:
			summary.Skipped++
		}

		status.Processed++
		report()
	}

	status.Status = semantic.RunCompleted
	report()
	return status, summary
}

func (in *Ingester) ingestOne(ctx context.Context, link model.Link) (bool, error) {
	if link.URL == "" || in.Store.Has(link.URL) {
		return false, nil
	}

	page, err := in.Fetcher.Fetch(ctx, link.URL)
	if err != nil {
		return false, err
	}

	return in.Store.AddDocument(ctx, semantic.Document{
		URL:     link.URL,
		Title:   link.Title,
		Content: page,
	})
}
