package tui

import (
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/bms/internal/model"
)

func TestBuildRows_DescendsIntoExpandedOnly(t *testing.T) {
	items := []model.BookmarkItem{
		{ID: "a", Title: "A", Children: []model.BookmarkItem{
			{ID: "b", Title: "B", Children: []model.BookmarkItem{
				{ID: "l1", Title: "Leaf", URL: "https://example.com"},
			}},
		}},
	}

	tests := []struct {
		name     string
		expanded map[string]bool
		want     int
	}{
		{"collapsed", nil, 1},
		{"outer expanded", map[string]bool{"a": true}, 2},
		{"both expanded", map[string]bool{"a": true, "b": true}, 3},
		{"inner only", map[string]bool{"b": true}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := buildRows(items, tt.expanded)
			if len(rows) != tt.want {
				t.Errorf("expected %d rows, got %d", tt.want, len(rows))
			}
		})
	}
}

func TestBuildRows_EmptyFolderNeverExpands(t *testing.T) {
	items := []model.BookmarkItem{
		{ID: "e", Title: "Empty", Children: []model.BookmarkItem{
			{ID: "n", Title: "Nested empty", Children: []model.BookmarkItem{}},
		}},
	}

	rows := buildRows(items, map[string]bool{"e": true})
	if len(rows) != 1 {
		t.Fatalf("expected only the disabled folder, got %d rows", len(rows))
	}
	if !rows[0].Disabled {
		t.Error("expected folder without bookmarks to be disabled")
	}
}

func TestParentRow(t *testing.T) {
	rows := []Row{
		{Depth: 0},
		{Depth: 1},
		{Depth: 2},
		{Depth: 1},
		{Depth: 0},
	}

	tests := []struct {
		index int
		want  int
	}{
		{0, -1},
		{1, 0},
		{2, 1},
		{3, 0},
		{4, -1},
		{9, -1},
	}

	for _, tt := range tests {
		if got := parentRow(rows, tt.index); got != tt.want {
			t.Errorf("parentRow(%d) = %d, want %d", tt.index, got, tt.want)
		}
	}
}

func TestRenderRow_WideTitlesStayWithinWidth(t *testing.T) {
	items := []model.BookmarkItem{
		{ID: "f", Title: "中文書籤資料夾與常用網站", Children: []model.BookmarkItem{
			{ID: "l", Title: "收藏夹网站中查询结果收藏夹网站中查询结果", URL: "https://example.cn"},
		}},
	}
	app := NewApp(AppParams{Items: items})
	app.state.Expanded["f"] = true
	app.refreshRows()

	for _, width := range []int{12, 20, 30} {
		for i, row := range app.rows {
			for _, cursor := range []bool{false, true} {
				got := lipgloss.Width(app.renderRow(row, cursor, width))
				if got > width {
					t.Errorf("row %d (cursor=%v) is %d cells wide, max %d", i, cursor, got, width)
				}
				if cursor && got != width {
					t.Errorf("cursor row %d should be padded to %d cells, got %d", i, width, got)
				}
			}
		}
	}
}
