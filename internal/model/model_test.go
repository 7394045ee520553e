package model_test

import (
	"encoding/json"
	"testing"

	"github.com/nikbrunner/bms/internal/model"
)

// sampleTree builds:
//
//	Dev/
//	  Go/
//	    go.dev
//	  github.com
//	Empty/
//	news.ycombinator.com
func sampleTree() []model.BookmarkItem {
	return []model.BookmarkItem{
		{ID: "f1", Title: "Dev", Children: []model.BookmarkItem{
			{ID: "f2", Title: "Go", Children: []model.BookmarkItem{
				{ID: "b1", Title: "Go Dev", URL: "https://go.dev"},
			}},
			{ID: "b2", Title: "GitHub", URL: "https://github.com"},
		}},
		{ID: "f3", Title: "Empty", Children: []model.BookmarkItem{}},
		{ID: "b3", Title: "Hacker News", URL: "https://news.ycombinator.com"},
	}
}

func TestBookmarkItem_Kind(t *testing.T) {
	tests := []struct {
		name       string
		item       model.BookmarkItem
		wantFolder bool
		wantLeaf   bool
	}{
		{"leaf", model.BookmarkItem{ID: "b", URL: "https://a.com"}, false, true},
		{"folder", model.BookmarkItem{ID: "f", Children: []model.BookmarkItem{}}, true, false},
		{"bare node", model.BookmarkItem{ID: "x"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.item.IsFolder(); got != tt.wantFolder {
				t.Errorf("IsFolder() = %v, want %v", got, tt.wantFolder)
			}
			if got := tt.item.IsLeaf(); got != tt.wantLeaf {
				t.Errorf("IsLeaf() = %v, want %v", got, tt.wantLeaf)
			}
		})
	}
}

func TestBookmarkItem_DisplayTitle(t *testing.T) {
	if got := (model.BookmarkItem{URL: "https://a.com"}).DisplayTitle(); got != "https://a.com" {
		t.Errorf("untitled leaf: got %q", got)
	}
	if got := (model.BookmarkItem{Children: []model.BookmarkItem{}}).DisplayTitle(); got != "(untitled)" {
		t.Errorf("untitled folder: got %q", got)
	}
	if got := (model.BookmarkItem{Title: "Docs", URL: "https://a.com"}).DisplayTitle(); got != "Docs" {
		t.Errorf("titled leaf: got %q", got)
	}
}

func TestFlatten_PreOrderLeavesOnly(t *testing.T) {
	links := model.Flatten(sampleTree())

	want := []string{"https://go.dev", "https://github.com", "https://news.ycombinator.com"}
	if len(links) != len(want) {
		t.Fatalf("expected %d links, got %d", len(want), len(links))
	}
	for i, url := range want {
		if links[i].URL != url {
			t.Errorf("position %d: expected %s, got %s", i, url, links[i].URL)
		}
	}
	if links[0].Title != "Go Dev" {
		t.Errorf("expected title to be carried, got %q", links[0].Title)
	}
}

func TestFlatten_DeepNesting(t *testing.T) {
	// A long single-child chain with one leaf at the bottom.
	leaf := model.BookmarkItem{ID: "leaf", Title: "Deep", URL: "https://deep.example.com"}
	node := leaf
	for i := 0; i < 5000; i++ {
		node = model.BookmarkItem{ID: "f", Children: []model.BookmarkItem{node}}
	}

	links := model.Flatten([]model.BookmarkItem{node})
	if len(links) != 1 || links[0].URL != leaf.URL {
		t.Fatalf("expected the deep leaf, got %v", links)
	}
}

func TestFlatten_Empty(t *testing.T) {
	if links := model.Flatten(nil); len(links) != 0 {
		t.Errorf("expected no links, got %d", len(links))
	}
}

func TestLeafURLsAndCount(t *testing.T) {
	tree := sampleTree()
	if got := model.CountLeaves(tree); got != 3 {
		t.Errorf("expected 3 leaves, got %d", got)
	}
	urls := model.LeafURLs(tree[0].Children)
	if len(urls) != 2 || urls[0] != "https://go.dev" {
		t.Errorf("unexpected leaf urls: %v", urls)
	}
}

func TestFindFolder(t *testing.T) {
	tree := sampleTree()

	f := model.FindFolder(tree, "f2")
	if f == nil || f.Title != "Go" {
		t.Fatalf("expected folder Go, got %v", f)
	}

	if model.FindFolder(tree, "b1") != nil {
		t.Error("leaf ids must not resolve as folders")
	}
	if model.FindFolder(tree, "missing") != nil {
		t.Error("expected nil for unknown id")
	}
}

func TestWalk_SkipChildren(t *testing.T) {
	var visited []string
	model.Walk(sampleTree(), func(item *model.BookmarkItem, depth int) bool {
		visited = append(visited, item.ID)
		return item.ID != "f1"
	})

	want := []string{"f1", "f3", "b3"}
	if len(visited) != len(want) {
		t.Fatalf("expected %v, got %v", want, visited)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Errorf("expected %v, got %v", want, visited)
			break
		}
	}
}

func TestBookmarkItem_JSONKeepsEmptyFolders(t *testing.T) {
	folder := model.NewFolder(model.NewFolderParams{Title: "Empty"})

	data, err := json.Marshal(folder)
	if err != nil {
		t.Fatalf("failed to marshal: %v", err)
	}

	var got model.BookmarkItem
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if !got.IsFolder() {
		t.Error("empty folder should stay a folder after a JSON roundtrip")
	}
	if got.ID == "" {
		t.Error("expected generated ID")
	}
}

func TestStableID(t *testing.T) {
	a := model.StableID("", "0", "Dev")
	if a != model.StableID("", "0", "Dev") {
		t.Error("expected the same parts to give the same ID")
	}
	if a == model.StableID("", "1", "Dev") || a == model.StableID(a, "0", "Dev") {
		t.Error("expected different positions to give different IDs")
	}
	if model.GenerateUUID() == model.GenerateUUID() {
		t.Error("expected generated IDs to differ")
	}
}
