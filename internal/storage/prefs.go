package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/query"
	"github.com/nikbrunner/bms/internal/selection"
)

// Slot keys.
const (
	KeySelectedURLs    = "selectedUrls"
	KeySelectedFolders = "selectedFolders"
	KeyExpandedFolders = "expandedFolders"
	KeySidebarEnabled  = "sidebarEnabled"
	KeySearchEngine    = "searchEngine"
	KeyAllBookmarks    = "allBookmarks"
)

const (
	// MaxCachedBookmarks caps the allBookmarks cache.
	MaxCachedBookmarks = 1000
	// MaxCachedTitleRunes caps each cached title.
	MaxCachedTitleRunes = 100
)

// Prefs exposes the typed preference slots stored in a KV.
type Prefs struct {
	kv KV
}

// NewPrefs wraps kv.
func NewPrefs(kv KV) *Prefs {
	return &Prefs{kv: kv}
}

// getJSON decodes key into dst. It reports false when the key is absent.
func getJSON[T any](ctx context.Context, kv KV, key string, dst *T) (bool, error) {
	data, ok, err := kv.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("decode %s: %w", key, err)
	}
	return true, nil
}

func setJSON(ctx context.Context, kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return kv.Set(ctx, key, data)
}

// LoadSelection restores the selection. Missing slots are treated as empty.
func (p *Prefs) LoadSelection(ctx context.Context) (selection.State, error) {
	var urls, folders, expanded []string

	if _, err := getJSON(ctx, p.kv, KeySelectedURLs, &urls); err != nil {
		return selection.New(), err
	}
	if _, err := getJSON(ctx, p.kv, KeySelectedFolders, &folders); err != nil {
		return selection.New(), err
	}
	if _, err := getJSON(ctx, p.kv, KeyExpandedFolders, &expanded); err != nil {
		return selection.New(), err
	}

	return selection.FromSlices(urls, folders, expanded), nil
}

// SaveSelection writes the three selection slots together.
func (p *Prefs) SaveSelection(ctx context.Context, s selection.State) error {
	entries := make(map[string][]byte, 3)
	for key, values := range map[string][]string{
		KeySelectedURLs:    s.SelectedURLs(),
		KeySelectedFolders: s.SelectedFolders(),
		KeyExpandedFolders: s.ExpandedFolders(),
	} {
		data, err := json.Marshal(values)
		if err != nil {
			return err
		}
		entries[key] = data
	}
	return p.kv.SetMany(ctx, entries)
}

// Engine returns the stored search engine, google when unset or unknown.
func (p *Prefs) Engine(ctx context.Context) (query.Engine, error) {
	var tag string
	ok, err := getJSON(ctx, p.kv, KeySearchEngine, &tag)
	if err != nil || !ok {
		return query.Google, err
	}
	engine, err := query.ParseEngine(tag)
	if err != nil {
		return query.Google, nil
	}
	return engine, nil
}

func (p *Prefs) SetEngine(ctx context.Context, engine query.Engine) error {
	return setJSON(ctx, p.kv, KeySearchEngine, engine.String())
}

// SidebarEnabled reports whether the sidebar runs. Defaults to true.
func (p *Prefs) SidebarEnabled(ctx context.Context) (bool, error) {
	enabled := true
	if _, err := getJSON(ctx, p.kv, KeySidebarEnabled, &enabled); err != nil {
		return true, err
	}
	return enabled, nil
}

func (p *Prefs) SetSidebarEnabled(ctx context.Context, enabled bool) error {
	return setJSON(ctx, p.kv, KeySidebarEnabled, enabled)
}

// AllBookmarks returns the cached flattened bookmark list.
func (p *Prefs) AllBookmarks(ctx context.Context) ([]model.Link, error) {
	var links []model.Link
	if _, err := getJSON(ctx, p.kv, KeyAllBookmarks, &links); err != nil {
		return nil, err
	}
	return links, nil
}

// SetAllBookmarks caches the first MaxCachedBookmarks links with titles
// truncated to MaxCachedTitleRunes.
func (p *Prefs) SetAllBookmarks(ctx context.Context, links []model.Link) error {
	if len(links) > MaxCachedBookmarks {
		links = links[:MaxCachedBookmarks]
	}

	cached := make([]model.Link, len(links))
	for i, l := range links {
		cached[i] = model.Link{URL: l.URL, Title: truncateRunes(l.Title, MaxCachedTitleRunes)}
	}
	return setJSON(ctx, p.kv, KeyAllBookmarks, cached)
}

func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
