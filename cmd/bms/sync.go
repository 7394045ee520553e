package main

import (
	"context"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/storage"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Refresh the cached bookmark list from the bookmarks file",
	Args:  cobra.NoArgs,
	RunE:  runSync,
}

// SyncCmd rebuilds the allBookmarks cache.
type SyncCmd struct {
	prefs     *storage.Prefs
	bookmarks func() ([]model.BookmarkItem, error)
}

func (c SyncCmd) Run(ctx context.Context) error {
	items, err := c.bookmarks()
	if err != nil {
		return err
	}

	links := model.Flatten(items)
	if err := c.prefs.SetAllBookmarks(ctx, links); err != nil {
		return fmt.Errorf("cache bookmarks: %w", err)
	}

	cached := len(links)
	if cached > storage.MaxCachedBookmarks {
		cached = storage.MaxCachedBookmarks
		pterm.Warning.Printf("Only the first %d of %d bookmarks are cached\n", cached, len(links))
	}
	pterm.Success.Printf("Cached %d bookmarks\n", cached)
	return nil
}

func runSync(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd)
	c := SyncCmd{prefs: s.prefs, bookmarks: s.bookmarks}
	return c.Run(cmd.Context())
}
