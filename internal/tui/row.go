package tui

import "github.com/nikbrunner/bms/internal/model"

// Row is one visible line of the bookmark tree.
type Row struct {
	Item  model.BookmarkItem
	Depth int

	// Disabled marks a folder with no bookmark anywhere below it.
	// It can neither be expanded nor selected.
	Disabled bool
}

// IsFolder returns true if this row shows a folder.
func (r Row) IsFolder() bool {
	return r.Item.IsFolder()
}

// buildRows flattens items into visible rows, descending only into
// expanded folders.
func buildRows(items []model.BookmarkItem, expanded map[string]bool) []Row {
	var rows []Row
	model.Walk(items, func(item *model.BookmarkItem, depth int) bool {
		if !item.IsFolder() && !item.IsLeaf() {
			return false
		}
		row := Row{Item: *item, Depth: depth}
		if item.IsFolder() {
			row.Disabled = model.CountLeaves(item.Children) == 0
		}
		rows = append(rows, row)
		return row.IsFolder() && !row.Disabled && expanded[item.ID]
	})
	return rows
}

// parentRow returns the index of the closest row above i that is one level
// shallower, or -1 at the top level.
func parentRow(rows []Row, i int) int {
	if i < 0 || i >= len(rows) || rows[i].Depth == 0 {
		return -1
	}
	for j := i - 1; j >= 0; j-- {
		if rows[j].Depth == rows[i].Depth-1 {
			return j
		}
	}
	return -1
}
