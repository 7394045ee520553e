package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bms/internal/fetcher"
	"github.com/nikbrunner/bms/internal/ingest"
	"github.com/nikbrunner/bms/internal/logging"
	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/semantic"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Fetch bookmarked pages and add them to the semantic store",
	Long: `Fetches every cached bookmark one page at a time, extracts its text and
stores an embedding for it. Pages that fail are skipped; pages already
indexed are not fetched again. Requires a running Ollama server.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().IntP("limit", "n", 0, "Index at most n bookmarks (0 = all)")
}

// IndexInput holds the index command arguments.
type IndexInput struct {
	Limit    int
	Progress bool
}

// IndexCmd runs batch ingestion into the semantic store.
type IndexCmd struct {
	links    func(context.Context) ([]model.Link, error)
	store    *semantic.Store
	embedder semantic.Embedder
	fetcher  fetcher.Fetcher
	logger   *pterm.Logger
	// startSpinner defaults to pterm.DefaultSpinner.Start.
	startSpinner func(text string) (*pterm.SpinnerPrinter, error)
}

type healthChecker interface {
	CheckHealth(ctx context.Context) error
}

func (c IndexCmd) Run(ctx context.Context, in IndexInput) error {
	if hc, ok := c.embedder.(healthChecker); ok {
		if err := hc.CheckHealth(ctx); err != nil {
			return fmt.Errorf("embedding service unavailable: %w", err)
		}
	}

	if err := c.store.Initialize(ctx); err != nil {
		return fmt.Errorf("load semantic store: %w", err)
	}
	defer c.store.Close()

	links, err := c.links(ctx)
	if err != nil {
		return err
	}
	if in.Limit > 0 && len(links) > in.Limit {
		links = links[:in.Limit]
	}
	if len(links) == 0 {
		pterm.Info.Println("No bookmarks to index")
		return nil
	}

	var onProgress ingest.ProgressFunc
	if in.Progress {
		onProgress = c.progress(len(links))
	}

	ingester := ingest.Ingester{Fetcher: c.fetcher, Store: c.store, Logger: c.logger}
	status, summary := ingester.Run(ctx, links, onProgress)

	rows := pterm.TableData{
		{"Added", "Skipped", "Failed", "Indexed total"},
		{strconv.Itoa(summary.Added), strconv.Itoa(summary.Skipped), strconv.Itoa(summary.Failed), strconv.Itoa(c.store.Len())},
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	if status.Status == semantic.RunError {
		return fmt.Errorf("indexing interrupted after %d of %d bookmarks: %w", status.Processed, status.Total, ctx.Err())
	}
	pterm.Success.Printf("Processed %d bookmarks\n", status.Processed)
	return nil
}

// progress returns a spinner-backed progress callback, or nil when the
// spinner cannot start.
func (c IndexCmd) progress(total int) ingest.ProgressFunc {
	start := c.startSpinner
	if start == nil {
		start = func(text string) (*pterm.SpinnerPrinter, error) {
			return pterm.DefaultSpinner.Start(text)
		}
	}

	spinner, err := start(fmt.Sprintf("Indexing 0/%d", total))
	if err != nil || spinner == nil {
		log := logging.OrDiscard(c.logger)
		log.Warn("progress spinner unavailable", log.Args("error", err))
		return nil
	}
	return func(status semantic.ProcessStatus) {
		spinner.UpdateText(fmt.Sprintf("Indexing %d/%d", status.Processed, status.Total))
		if status.Status.IsFinished() {
			_ = spinner.Stop()
		}
	}
}

func runIndex(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd)
	limit, _ := cmd.Flags().GetInt("limit")

	embedder := semantic.NewOllamaEmbedder(s.cfg.OllamaHost, s.cfg.EmbedModel)
	c := IndexCmd{
		links:    s.links,
		store:    semantic.NewStore(s.kv, embedder, s.logger),
		embedder: embedder,
		fetcher: fetcher.New(fetcher.Options{
			Timeout:   s.cfg.FetchTimeout(),
			UserAgent: s.cfg.UserAgent,
		}),
		logger: s.logger,
	}
	return c.Run(cmd.Context(), IndexInput{Limit: limit, Progress: true})
}
