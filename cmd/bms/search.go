package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/pkg/browser"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bms/internal/query"
	"github.com/nikbrunner/bms/internal/storage"
)

var searchCmd = &cobra.Command{
	Use:   "search <keyword...>",
	Short: "Search the selected sites for a keyword",
	Long: `Builds a search restricted to the hostnames of the selected bookmarks
and opens it in the browser. With nothing selected the search is unrestricted.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().StringP("engine", "e", "", "Search engine (google|bing); defaults to the stored engine")
	searchCmd.Flags().Bool("print", false, "Print the search URL instead of opening it")
	searchCmd.Flags().Bool("copy", false, "Copy the search URL to the clipboard instead of opening it")
}

// SearchInput holds the search command arguments.
type SearchInput struct {
	Keyword string
	Engine  string
	Print   bool
	Copy    bool
}

// SearchCmd opens a site-restricted search for the current selection.
type SearchCmd struct {
	prefs *storage.Prefs
	open  func(string) error
	copy  func(string) error
}

func (c SearchCmd) Run(ctx context.Context, in SearchInput) error {
	engine, err := resolveEngine(ctx, c.prefs, in.Engine)
	if err != nil {
		return err
	}

	state, err := c.prefs.LoadSelection(ctx)
	if err != nil {
		return fmt.Errorf("load selection: %w", err)
	}
	valid, invalid := query.FilterValid(state.SelectedURLs())
	if len(invalid) > 0 {
		pterm.Warning.Printf("Skipping %d selected bookmarks without a hostname\n", len(invalid))
	}

	target, err := query.BuildSearchURL(in.Keyword, valid, engine)
	if err != nil {
		return err
	}

	switch {
	case in.Print:
		pterm.Println(target)
	case in.Copy:
		if err := c.copy(target); err != nil {
			return fmt.Errorf("copy to clipboard: %w", err)
		}
		pterm.Success.Println("Copied search URL to clipboard")
	default:
		if err := c.open(target); err != nil {
			return fmt.Errorf("open browser: %w", err)
		}
		if len(valid) == 0 {
			pterm.Info.Printf("No sites selected, opened an unrestricted %s search\n", engine)
		} else {
			pterm.Success.Printf("Opened %s search across %d selected bookmarks\n", engine, len(valid))
		}
	}
	return nil
}

// resolveEngine returns the engine named by flag, or the stored engine
// when flag is empty.
func resolveEngine(ctx context.Context, prefs *storage.Prefs, flag string) (query.Engine, error) {
	if flag != "" {
		return query.ParseEngine(flag)
	}
	engine, err := prefs.Engine(ctx)
	if err != nil {
		return "", fmt.Errorf("load engine: %w", err)
	}
	return engine, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd)
	engine, _ := cmd.Flags().GetString("engine")
	printOnly, _ := cmd.Flags().GetBool("print")
	copyOnly, _ := cmd.Flags().GetBool("copy")

	c := SearchCmd{prefs: s.prefs, open: browser.OpenURL, copy: clipboard.WriteAll}
	return c.Run(cmd.Context(), SearchInput{
		Keyword: strings.Join(args, " "),
		Engine:  engine,
		Print:   printOnly,
		Copy:    copyOnly,
	})
}
