package layout

// CalculateTreeHeight computes how many tree rows fit the terminal.
// Returns at least MinHeight.
func CalculateTreeHeight(terminalHeight int, cfg TreeConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateRowWidth computes the usable width of a tree row.
func CalculateRowWidth(terminalWidth int, cfg TreeConfig) int {
	width := terminalWidth - cfg.ContentPadding
	if width < cfg.MinRowWidth {
		return cfg.MinRowWidth
	}
	return width
}

// CalculateVisibleRows computes the start and end indices for a scrollable list.
// Returns (start, end) where rows[start:end] should be displayed.
func CalculateVisibleRows(maxVisible, cursor, totalRows int) (start, end int) {
	if maxVisible < 1 {
		maxVisible = 1
	}
	if totalRows <= maxVisible {
		return 0, totalRows
	}

	if cursor >= maxVisible {
		start = cursor - maxVisible + 1
	}

	end = start + maxVisible
	if end > totalRows {
		end = totalRows
	}

	return start, end
}
