package main

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/sidebar"
)

const googleResults = `<html><body>
<div class="g"><a href="https://go.dev/blog/context"><h3>Go Concurrency Patterns: Context</h3></a></div>
<div class="g"><a href="/url?q=https://pkg.go.dev/context&amp;sa=U"><h3>context package</h3></a></div>
</body></html>`

func sidebarLinks() []model.Link {
	return []model.Link{
		{Title: "Go", URL: "https://go.dev"},
		{Title: "Go Packages", URL: "https://pkg.go.dev"},
	}
}

func TestSidebar_ResultsPageURL(t *testing.T) {
	buf := captureOutput(t)
	f := &FakeFetcher{FetchFunc: func(context.Context, string) (string, error) { return googleResults, nil }}
	overlay := &sidebar.Overlay{Fetcher: f}

	c := SidebarCmd{prefs: newTestPrefs(t), links: staticLinks(sidebarLinks()), overlay: overlay}
	err := c.Run(context.Background(), SidebarInput{
		Args: []string{"https://www.google.com/search?q=context+cancel&hl=en"},
	})
	require.NoError(t, err)

	require.Len(t, f.Requested, 1)
	assert.Equal(t, "https://www.google.com/search?q=context%20cancel%20site%3Ago.dev%20OR%20site%3Apkg.go.dev", f.Requested[0])

	out := buf.String()
	assert.Contains(t, out, "Go Concurrency Patterns: Context")
	assert.Contains(t, out, "https://pkg.go.dev/context")
	assert.Equal(t, sidebar.StatusIdle, overlay.Current().Status)
}

func TestSidebar_PickOpensResult(t *testing.T) {
	captureOutput(t)
	f := &FakeFetcher{FetchFunc: func(context.Context, string) (string, error) { return googleResults, nil }}
	opener := &recordingOpener{}

	c := SidebarCmd{
		prefs:   newTestPrefs(t),
		links:   staticLinks(sidebarLinks()),
		overlay: &sidebar.Overlay{Fetcher: f},
		pick:    pickIndex(1),
		open:    opener.open,
	}
	require.NoError(t, c.Run(context.Background(), SidebarInput{Args: []string{"context"}, Pick: true}))

	assert.Equal(t, []string{"https://pkg.go.dev/context"}, opener.urls)
}

func TestSidebar_Disabled(t *testing.T) {
	buf := captureOutput(t)
	ctx := context.Background()
	prefs := newTestPrefs(t)
	require.NoError(t, prefs.SetSidebarEnabled(ctx, false))

	f := &FakeFetcher{}
	c := SidebarCmd{prefs: prefs, links: staticLinks(sidebarLinks()), overlay: &sidebar.Overlay{Fetcher: f}}
	require.NoError(t, c.Run(ctx, SidebarInput{Args: []string{"go"}}))

	assert.Empty(t, f.Requested)
	assert.Contains(t, buf.String(), "Sidebar is disabled")
}

func TestSidebar_FetchFailureDegrades(t *testing.T) {
	buf := captureOutput(t)
	f := &FakeFetcher{FetchFunc: func(context.Context, string) (string, error) {
		return "", errors.New("connection refused")
	}}

	c := SidebarCmd{prefs: newTestPrefs(t), links: staticLinks(sidebarLinks()), overlay: &sidebar.Overlay{Fetcher: f}}
	require.NoError(t, c.Run(context.Background(), SidebarInput{Args: []string{"go"}}))

	assert.Contains(t, buf.String(), "Sidebar search failed")
}

func TestSidebar_NoBookmarks(t *testing.T) {
	buf := captureOutput(t)
	f := &FakeFetcher{}

	c := SidebarCmd{prefs: newTestPrefs(t), links: staticLinks(nil), overlay: &sidebar.Overlay{Fetcher: f}}
	require.NoError(t, c.Run(context.Background(), SidebarInput{Args: []string{"go"}}))

	assert.Empty(t, f.Requested)
	assert.Contains(t, buf.String(), "No results")
}

func TestSidebar_JSONOutput(t *testing.T) {
	buf := captureOutput(t)
	f := &FakeFetcher{FetchFunc: func(context.Context, string) (string, error) { return googleResults, nil }}

	c := SidebarCmd{prefs: newTestPrefs(t), links: staticLinks(sidebarLinks()), overlay: &sidebar.Overlay{Fetcher: f}}
	require.NoError(t, c.Run(context.Background(), SidebarInput{Args: []string{"context"}, Output: "json"}))

	var snap sidebar.Snapshot
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &snap))
	assert.Equal(t, sidebar.StatusResults, snap.Status)
	assert.Len(t, snap.Results, 2)
}

func TestSidebar_RejectsUnknownOutput(t *testing.T) {
	c := SidebarCmd{prefs: newTestPrefs(t)}
	err := c.Run(context.Background(), SidebarInput{Args: []string{"go"}, Output: "yaml"})
	assert.Error(t, err)
}
