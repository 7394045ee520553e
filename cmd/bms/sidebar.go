package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/browser"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bms/internal/fetcher"
	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/picker"
	"github.com/nikbrunner/bms/internal/query"
	"github.com/nikbrunner/bms/internal/sidebar"
	"github.com/nikbrunner/bms/internal/storage"
)

var sidebarCmd = &cobra.Command{
	Use:   "sidebar <results-page-url | keyword...>",
	Short: "Repeat a search across all bookmarked sites",
	Long: `Runs the keyword against every bookmarked site and lists the results.

The argument may be a Google or Bing results page URL; its keyword and engine
are reused. Results come from fetching the engine's results page directly.`,
	Example: `  bms sidebar "https://www.google.com/search?q=bubbletea"
  bms sidebar -e bing context cancellation --pick`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSidebar,
}

func init() {
	sidebarCmd.Flags().StringP("engine", "e", "", "Search engine (google|bing); ignored for results page URLs")
	sidebarCmd.Flags().Bool("pick", false, "Pick a result and open it")
	sidebarCmd.Flags().StringP("output", "o", "", "Output format (json)")
}

// SidebarInput holds the sidebar command arguments.
type SidebarInput struct {
	Args   []string
	Engine string
	Pick   bool
	Output string
}

// SidebarCmd runs the all-bookmarks overlay search.
type SidebarCmd struct {
	prefs   *storage.Prefs
	links   func(context.Context) ([]model.Link, error)
	overlay *sidebar.Overlay
	pick    func([]picker.Entry, string) (picker.Entry, bool, error)
	open    func(string) error
}

func (c SidebarCmd) Run(ctx context.Context, in SidebarInput) error {
	if in.Output != "" && in.Output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}

	enabled, err := c.prefs.SidebarEnabled(ctx)
	if err != nil {
		return fmt.Errorf("load sidebar setting: %w", err)
	}
	if !enabled {
		pterm.Warning.Println("Sidebar is disabled. Enable it with: bms selection sidebar on")
		return nil
	}

	keyword, engine, err := c.keyword(ctx, in)
	if err != nil {
		return err
	}

	links, err := c.links(ctx)
	if err != nil {
		return err
	}

	if in.Output != "json" {
		pterm.Info.Printf("Searching %d bookmarked sites for %q on %s...\n", len(links), keyword, engine)
	}
	snap := c.overlay.Run(ctx, keyword, engine, links)
	defer c.overlay.Reset()

	if in.Output == "json" {
		return printJSON(snap)
	}

	switch snap.Status {
	case sidebar.StatusError:
		pterm.Error.Printf("Sidebar search failed: %s\n", snap.Error)
		return nil
	case sidebar.StatusEmpty:
		pterm.Info.Println("No results from your bookmarked sites")
		return nil
	}

	rows := pterm.TableData{{"#", "Title", "URL"}}
	for i, r := range snap.Results {
		rows = append(rows, []string{strconv.Itoa(i + 1), r.Title, r.URL})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	if !in.Pick {
		return nil
	}

	entries := make([]picker.Entry, len(snap.Results))
	for i, r := range snap.Results {
		entries[i] = picker.Entry{Title: r.Title, URL: r.URL}
	}
	chosen, ok, err := c.pick(entries, keyword)
	if err != nil {
		return fmt.Errorf("run picker: %w", err)
	}
	if !ok {
		return nil
	}
	if err := c.open(chosen.URL); err != nil {
		return fmt.Errorf("open browser: %w", err)
	}
	pterm.Success.Printf("Opened %s\n", chosen.URL)
	return nil
}

// keyword takes the keyword and engine from a results page URL, or joins
// the arguments into a keyword for the stored engine.
func (c SidebarCmd) keyword(ctx context.Context, in SidebarInput) (string, query.Engine, error) {
	if len(in.Args) == 1 {
		if keyword, engine, ok := query.KeywordFromPage(in.Args[0]); ok {
			return keyword, engine, nil
		}
	}

	keyword := strings.TrimSpace(strings.Join(in.Args, " "))
	if keyword == "" {
		return "", "", query.ErrEmptyKeyword
	}
	engine, err := resolveEngine(ctx, c.prefs, in.Engine)
	if err != nil {
		return "", "", err
	}
	return keyword, engine, nil
}

func runSidebar(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd)
	engine, _ := cmd.Flags().GetString("engine")
	pick, _ := cmd.Flags().GetBool("pick")
	output, _ := cmd.Flags().GetString("output")

	overlay := &sidebar.Overlay{
		Fetcher: fetcher.New(fetcher.Options{
			Timeout:   s.cfg.FetchTimeout(),
			UserAgent: s.cfg.UserAgent,
		}),
		Logger: s.logger,
		OnChange: func(snap sidebar.Snapshot) {
			s.logger.Debug("sidebar state", s.logger.Args("status", snap.Status.String(), "results", len(snap.Results)))
		},
	}

	c := SidebarCmd{
		prefs:   s.prefs,
		links:   s.links,
		overlay: overlay,
		pick: func(entries []picker.Entry, header string) (picker.Entry, bool, error) {
			return picker.Run(entries, header)
		},
		open: browser.OpenURL,
	}
	return c.Run(cmd.Context(), SidebarInput{Args: args, Engine: engine, Pick: pick, Output: output})
}
