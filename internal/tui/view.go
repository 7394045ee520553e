package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/bms/internal/query"
	"github.com/nikbrunner/bms/internal/selection"
	"github.com/nikbrunner/bms/internal/tui/layout"
)

// renderView creates the complete popup view.
func (a App) renderView() string {
	sections := []string{
		a.renderTitle(),
		a.renderTree(),
		a.renderSearchBox(),
		a.renderEngines(),
		a.renderHelpBar(),
	}
	return a.styles.App.Render(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (a App) renderTitle() string {
	count := len(a.state.URLs)
	label := "no sites selected"
	if count == 1 {
		label = "1 site selected"
	} else if count > 1 {
		label = fmt.Sprintf("%d sites selected", count)
	}
	return a.styles.Title.Render("Bookmark search") + "  " + a.styles.URL.Render(label)
}

// renderTree renders the visible window of tree rows around the cursor.
func (a App) renderTree() string {
	if len(a.rows) == 0 {
		return a.styles.Empty.Render("No bookmarks")
	}

	height := layout.CalculateTreeHeight(a.height, a.layoutConfig.Tree)
	width := layout.CalculateRowWidth(a.width, a.layoutConfig.Tree)
	start, end := layout.CalculateVisibleRows(height, a.cursor, len(a.rows))

	lines := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		lines = append(lines, a.renderRow(a.rows[i], i == a.cursor && a.mode == ModeBrowse, width))
	}
	return strings.Join(lines, "\n")
}

func (a App) renderRow(row Row, isCursor bool, maxWidth int) string {
	indent := strings.Repeat(" ", row.Depth*a.layoutConfig.Tree.IndentWidth)

	var marker, suffix string
	check := selection.Unchecked
	if row.IsFolder() {
		marker = "▸ "
		if a.state.Expanded[row.Item.ID] {
			marker = "▾ "
		}
		if row.Disabled {
			marker = "  "
		}
		suffix = "/"
		check = selection.FolderState(row.Item, a.state)
	} else {
		marker = "  "
		if a.state.URLs[row.Item.URL] {
			check = selection.Checked
		}
	}

	prefix := indent + marker + check.String() + " "
	line, _ := layout.FitRow(prefix, row.Item.DisplayTitle(), suffix, maxWidth, a.layoutConfig.Text)

	switch {
	case isCursor:
		line = layout.PadRight(line, maxWidth)
		return a.styles.ItemSelected.Render(line)
	case row.Disabled:
		return a.styles.ItemDisabled.Render(line)
	case check != selection.Unchecked:
		return a.styles.Checked.Render(line)
	}
	return a.styles.Item.Render(line)
}

func (a App) renderSearchBox() string {
	style := a.styles.Input
	if a.mode == ModeSearch {
		style = a.styles.InputActive
	}
	return "\n" + style.Render(a.input.View())
}

// renderEngines renders one button per engine, the active one highlighted.
func (a App) renderEngines() string {
	buttons := make([]string, 0, len(query.Engines))
	for _, engine := range query.Engines {
		style := a.styles.Engine
		if engine == a.engine {
			style = a.styles.EngineActive
		}
		buttons = append(buttons, style.Render(engineLabel(engine)))
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, buttons...)
}

func engineLabel(e query.Engine) string {
	switch e {
	case query.Bing:
		return "Bing"
	default:
		return "Google"
	}
}

func (a App) renderHelpBar() string {
	var lines []string

	// Empty line provides gap when no message
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	if hints := a.renderHints(a.getContextualHints()); hints != "" {
		lines = append(lines, hints)
	}

	return "\n" + strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.MessageError.Render("✗ " + a.messageText)
	case MessageSuccess:
		return a.styles.MessageSuccess.Render("✓ " + a.messageText)
	default:
		return a.styles.HintLabel.Render(a.messageText)
	}
}
