package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bms/internal/semantic"
)

var askCmd = &cobra.Command{
	Use:   "ask <question...>",
	Short: "Find indexed bookmarks by meaning",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runAsk,
}

func init() {
	askCmd.Flags().IntP("top", "k", 5, "Number of results")
	askCmd.Flags().Bool("hybrid", false, "Blend semantic similarity with keyword matching")
	askCmd.Flags().StringP("output", "o", "", "Output format (json)")
}

// AskInput holds the ask command arguments.
type AskInput struct {
	Query  string
	K      int
	Hybrid bool
	Output string
}

// AskCmd queries the semantic store.
type AskCmd struct {
	store *semantic.Store
}

func (c AskCmd) Run(ctx context.Context, in AskInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}
	if in.K <= 0 {
		return fmt.Errorf("--top must be positive, got %d", in.K)
	}

	if err := c.store.Initialize(ctx); err != nil {
		return fmt.Errorf("load semantic store: %w", err)
	}
	defer c.store.Close()

	if c.store.Len() == 0 {
		pterm.Warning.Println("Nothing indexed yet. Run: bms index")
		return nil
	}

	search := c.store.Search
	if in.Hybrid {
		search = c.store.HybridSearch
	}
	hits, err := search(ctx, in.Query, in.K)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}

	if in.Output == "json" {
		if hits == nil {
			hits = []semantic.Hit{}
		}
		return printJSON(hits)
	}

	rows := pterm.TableData{{"#", "Score", "Title", "URL"}}
	for i, h := range hits {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			strconv.FormatFloat(float64(h.Score), 'f', 3, 32),
			orDash(h.Title),
			h.URL,
		})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()
	return nil
}

func runAsk(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd)
	k, _ := cmd.Flags().GetInt("top")
	hybrid, _ := cmd.Flags().GetBool("hybrid")
	output, _ := cmd.Flags().GetString("output")

	embedder := semantic.NewOllamaEmbedder(s.cfg.OllamaHost, s.cfg.EmbedModel)
	c := AskCmd{store: semantic.NewStore(s.kv, embedder, s.logger)}
	return c.Run(cmd.Context(), AskInput{
		Query:  strings.Join(args, " "),
		K:      k,
		Hybrid: hybrid,
		Output: output,
	})
}
