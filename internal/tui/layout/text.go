package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Width returns the number of terminal cells s occupies. Escape sequences
// take none and wide runes (CJK, most emoji) take two.
func Width(s string) int {
	return ansi.StringWidth(s)
}

// Fit shortens text to at most maxWidth cells, ending it with the
// configured ellipsis, and reports whether it was shortened.
func Fit(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", text != ""
	}
	if Width(text) <= maxWidth {
		return text, false
	}
	if Width(cfg.Ellipsis) >= maxWidth {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}
	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// FitRow lays out prefix, text and suffix in maxWidth cells. Only text is
// shortened while prefix and suffix fit with room for the ellipsis;
// otherwise the whole row is cut.
func FitRow(prefix, text, suffix string, maxWidth int, cfg TextConfig) (string, bool) {
	row := prefix + text + suffix
	if Width(row) <= maxWidth {
		return row, false
	}

	budget := maxWidth - Width(prefix) - Width(suffix)
	if budget <= Width(cfg.Ellipsis) {
		return Fit(row, maxWidth, cfg)
	}
	fitted, _ := Fit(text, budget, cfg)
	return prefix + fitted + suffix, true
}

// PadRight fills s with spaces up to width cells.
func PadRight(s string, width int) string {
	if pad := width - Width(s); pad > 0 {
		return s + strings.Repeat(" ", pad)
	}
	return s
}
