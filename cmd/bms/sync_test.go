package main

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/storage"
)

func TestSync_CachesFlattenedBookmarks(t *testing.T) {
	buf := captureOutput(t)
	ctx := context.Background()
	prefs := newTestPrefs(t)

	c := SyncCmd{prefs: prefs, bookmarks: staticBookmarks(sampleTree())}
	require.NoError(t, c.Run(ctx))

	links, err := prefs.AllBookmarks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []model.Link{
		{URL: "https://github.com", Title: "GitHub"},
		{URL: "https://go.dev/doc", Title: "Go Docs"},
		{URL: "https://news.ycombinator.com", Title: "Hacker News"},
	}, links)
	assert.Contains(t, buf.String(), "Cached 3 bookmarks")
}

func TestSync_WarnsWhenCapped(t *testing.T) {
	buf := captureOutput(t)
	children := make([]model.BookmarkItem, storage.MaxCachedBookmarks+5)
	for i := range children {
		children[i] = model.BookmarkItem{ID: fmt.Sprint(i), Title: "b", URL: fmt.Sprintf("https://e%d.example", i)}
	}
	tree := []model.BookmarkItem{{ID: "root", Title: "Many", Children: children}}

	c := SyncCmd{prefs: newTestPrefs(t), bookmarks: staticBookmarks(tree)}
	require.NoError(t, c.Run(context.Background()))

	assert.Contains(t, buf.String(), fmt.Sprintf("Only the first %d of %d", storage.MaxCachedBookmarks, len(children)))
}

func TestSync_BookmarkReadError(t *testing.T) {
	captureOutput(t)
	c := SyncCmd{
		prefs:     newTestPrefs(t),
		bookmarks: func() ([]model.BookmarkItem, error) { return nil, errors.New("missing file") },
	}
	assert.Error(t, c.Run(context.Background()))
}
