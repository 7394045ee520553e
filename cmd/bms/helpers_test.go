package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"

	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/picker"
	"github.com/nikbrunner/bms/internal/storage"
)

// captureOutput redirects pterm output into a buffer for the test.
func captureOutput(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	pterm.SetDefaultOutput(&buf)
	pterm.DisableColor()
	t.Cleanup(func() {
		pterm.SetDefaultOutput(os.Stdout)
		pterm.EnableColor()
	})
	return &buf
}

func newTestKV(t *testing.T) storage.KV {
	t.Helper()
	kv, err := storage.NewJSONStore(filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = kv.Close() })
	return kv
}

func newTestPrefs(t *testing.T) *storage.Prefs {
	t.Helper()
	return storage.NewPrefs(newTestKV(t))
}

func sampleTree() []model.BookmarkItem {
	return []model.BookmarkItem{
		{ID: "f1", Title: "Development", Children: []model.BookmarkItem{
			{ID: "b1", Title: "GitHub", URL: "https://github.com"},
			{ID: "b2", Title: "Go Docs", URL: "https://go.dev/doc"},
		}},
		{ID: "b3", Title: "Hacker News", URL: "https://news.ycombinator.com"},
	}
}

func staticBookmarks(items []model.BookmarkItem) func() ([]model.BookmarkItem, error) {
	return func() ([]model.BookmarkItem, error) { return items, nil }
}

func staticLinks(links []model.Link) func(context.Context) ([]model.Link, error) {
	return func(context.Context) ([]model.Link, error) { return links, nil }
}

// FakeFetcher serves pages from FetchFunc and records requested URLs.
type FakeFetcher struct {
	FetchFunc func(ctx context.Context, url string) (string, error)
	Requested []string
}

func (f *FakeFetcher) Fetch(ctx context.Context, url string) (string, error) {
	f.Requested = append(f.Requested, url)
	if f.FetchFunc != nil {
		return f.FetchFunc(ctx, url)
	}
	return "", nil
}

// keywordEmbedder maps text to term counts over a fixed vocabulary, plus a
// constant component so no vector is all zeros.
type keywordEmbedder struct {
	vocab []string
}

func (e keywordEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	v := make([]float32, len(e.vocab)+1)
	v[len(e.vocab)] = 0.1
	for _, w := range strings.Fields(strings.ToLower(text)) {
		for i, term := range e.vocab {
			if w == term {
				v[i]++
			}
		}
	}
	return v, nil
}

// recordingOpener collects opened URLs.
type recordingOpener struct {
	urls []string
}

func (r *recordingOpener) open(u string) error {
	r.urls = append(r.urls, u)
	return nil
}

func pickIndex(i int) func([]picker.Entry, string) (picker.Entry, bool, error) {
	return func(entries []picker.Entry, _ string) (picker.Entry, bool, error) {
		if i < 0 || i >= len(entries) {
			return picker.Entry{}, false, nil
		}
		return entries[i], true, nil
	}
}
