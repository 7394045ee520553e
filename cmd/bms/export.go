package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bms/internal/exporter"
	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/storage"
)

var exportCmd = &cobra.Command{
	Use:   "export [path]",
	Short: "Export the selected bookmarks as a Netscape HTML file",
	Long: `Writes the selected bookmarks, with the folders that contain them, in the
bookmark HTML format every browser can import.

Defaults to ~/Downloads/bookmarks-selection-YYYY-MM-DD.html.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExport,
}

func init() {
	exportCmd.Flags().Bool("all", false, "Export every bookmark, not just the selection")
}

// ErrNothingSelected is returned when exporting an empty selection.
var ErrNothingSelected = errors.New("no bookmarks selected (use the popup or --all)")

// ExportInput holds the export command arguments.
type ExportInput struct {
	Path string
	All  bool
}

// ExportCmd writes the selection to an HTML file.
type ExportCmd struct {
	prefs     *storage.Prefs
	bookmarks func() ([]model.BookmarkItem, error)
}

func (c ExportCmd) Run(ctx context.Context, in ExportInput) error {
	items, err := c.bookmarks()
	if err != nil {
		return err
	}

	var keep func(string) bool
	if !in.All {
		state, err := c.prefs.LoadSelection(ctx)
		if err != nil {
			return fmt.Errorf("load selection: %w", err)
		}
		if state.IsEmpty() {
			return ErrNothingSelected
		}
		keep = func(url string) bool { return state.URLs[url] }
	}

	path := in.Path
	if path == "" {
		path, err = exporter.DefaultExportPath()
		if err != nil {
			return fmt.Errorf("resolve export path: %w", err)
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(exporter.ExportHTML(items, keep)), 0644); err != nil {
		return fmt.Errorf("write export: %w", err)
	}

	pterm.Success.Printf("Exported %d bookmarks to %s\n", countKept(items, keep), path)
	return nil
}

func countKept(items []model.BookmarkItem, keep func(string) bool) int {
	if keep == nil {
		return model.CountLeaves(items)
	}
	count := 0
	model.Walk(items, func(item *model.BookmarkItem, _ int) bool {
		if item.IsLeaf() && keep(item.URL) {
			count++
		}
		return true
	})
	return count
}

func runExport(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd)
	all, _ := cmd.Flags().GetBool("all")

	var path string
	if len(args) > 0 {
		path = args[0]
	}

	c := ExportCmd{prefs: s.prefs, bookmarks: s.bookmarks}
	return c.Run(cmd.Context(), ExportInput{Path: path, All: all})
}
