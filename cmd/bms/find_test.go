package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/picker"
)

func findLinks() []model.Link {
	return []model.Link{
		{Title: "GitHub", URL: "https://github.com"},
		{Title: "GitLab", URL: "https://gitlab.com"},
		{Title: "Hacker News", URL: "https://news.ycombinator.com"},
	}
}

func TestFind_SingleResultOpensDirectly(t *testing.T) {
	buf := captureOutput(t)
	opener := &recordingOpener{}
	c := FindCmd{
		links: staticLinks(findLinks()),
		pick: func([]picker.Entry, string) (picker.Entry, bool, error) {
			t.Fatal("picker should not run")
			return picker.Entry{}, false, nil
		},
		open: opener.open,
	}

	require.NoError(t, c.Run(context.Background(), "hacker"))

	assert.Equal(t, []string{"https://news.ycombinator.com"}, opener.urls)
	assert.Contains(t, buf.String(), "Opening: Hacker News")
}

func TestFind_MultipleResultsUsePicker(t *testing.T) {
	captureOutput(t)
	opener := &recordingOpener{}
	c := FindCmd{links: staticLinks(findLinks()), pick: pickIndex(1), open: opener.open}

	require.NoError(t, c.Run(context.Background(), "git"))

	require.Len(t, opener.urls, 1)
	assert.Contains(t, []string{"https://github.com", "https://gitlab.com"}, opener.urls[0])
}

func TestFind_PickerCancelled(t *testing.T) {
	captureOutput(t)
	opener := &recordingOpener{}
	c := FindCmd{links: staticLinks(findLinks()), pick: pickIndex(-1), open: opener.open}

	require.NoError(t, c.Run(context.Background(), "git"))
	assert.Empty(t, opener.urls)
}

func TestFind_NoMatches(t *testing.T) {
	buf := captureOutput(t)
	opener := &recordingOpener{}
	c := FindCmd{links: staticLinks(findLinks()), open: opener.open}

	require.NoError(t, c.Run(context.Background(), "xyz123"))

	assert.Empty(t, opener.urls)
	assert.Contains(t, buf.String(), "No bookmarks found for 'xyz123'")
}
