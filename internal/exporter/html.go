package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/bms/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/bookmarks-selection-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("bookmarks-selection-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// ExportHTML writes items in Netscape bookmark HTML format, keeping tree
// order. When keep is non-nil only leaves it accepts are written, and a
// folder is written only if it contains at least one kept leaf.
func ExportHTML(items []model.BookmarkItem, keep func(url string) bool) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	writeItems(&b, items, keep, 1)

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

// writeItems recursively writes folders and bookmarks of one level.
func writeItems(b *strings.Builder, items []model.BookmarkItem, keep func(string) bool, indent int) {
	prefix := strings.Repeat("    ", indent)

	for _, item := range items {
		switch {
		case item.IsLeaf():
			if keep != nil && !keep(item.URL) {
				continue
			}
			fmt.Fprintf(b,
				"%s<DT><A HREF=\"%s\">%s</A>\n",
				prefix,
				html.EscapeString(item.URL),
				html.EscapeString(item.Title),
			)

		case item.IsFolder():
			if keep != nil && !containsKept(item.Children, keep) {
				continue
			}
			fmt.Fprintf(b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(item.Title))
			fmt.Fprintf(b, "%s<DL><p>\n", prefix)
			writeItems(b, item.Children, keep, indent+1)
			fmt.Fprintf(b, "%s</DL><p>\n", prefix)
		}
	}
}

func containsKept(items []model.BookmarkItem, keep func(string) bool) bool {
	found := false
	model.Walk(items, func(item *model.BookmarkItem, _ int) bool {
		if found {
			return false
		}
		if item.IsLeaf() && keep(item.URL) {
			found = true
		}
		return !found
	})
	return found
}
