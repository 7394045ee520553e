package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/pkg/browser"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/picker"
	"github.com/nikbrunner/bms/internal/search"
)

var findCmd = &cobra.Command{
	Use:   "find <query...>",
	Short: "Fuzzy find a bookmark and open it",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFind,
}

// FindCmd fuzzy searches the cached bookmarks.
type FindCmd struct {
	links func(context.Context) ([]model.Link, error)
	pick  func([]picker.Entry, string) (picker.Entry, bool, error)
	open  func(string) error
}

func (c FindCmd) Run(ctx context.Context, q string) error {
	links, err := c.links(ctx)
	if err != nil {
		return err
	}

	results := search.FuzzySearch(links, q)
	if len(results) == 0 {
		pterm.Info.Printf("No bookmarks found for '%s'\n", q)
		return nil
	}

	var chosen model.Link
	if len(results) == 1 {
		// Single result - open it directly
		chosen = results[0].Link
	} else {
		entries := make([]picker.Entry, len(results))
		for i, r := range results {
			entries[i] = picker.Entry{Title: r.Link.Title, URL: r.Link.URL}
		}
		entry, ok, err := c.pick(entries, q)
		if err != nil {
			return fmt.Errorf("run picker: %w", err)
		}
		if !ok {
			return nil
		}
		chosen = model.Link{Title: entry.Title, URL: entry.URL}
	}

	if err := c.open(chosen.URL); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	pterm.Success.Printf("Opening: %s\n", orDash(chosen.Title))
	return nil
}

func runFind(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd)
	c := FindCmd{
		links: s.links,
		pick: func(entries []picker.Entry, header string) (picker.Entry, bool, error) {
			return picker.Run(entries, header)
		},
		open: browser.OpenURL,
	}
	return c.Run(cmd.Context(), strings.Join(args, " "))
}
