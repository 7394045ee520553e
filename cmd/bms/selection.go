package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pterm/pterm"
	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/query"
	"github.com/nikbrunner/bms/internal/selection"
	"github.com/nikbrunner/bms/internal/storage"
)

var selectionCmd = &cobra.Command{
	Use:   "selection",
	Short: "Show and change the stored selection and settings",
	RunE:  runSelectionShow,
}

var selectionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "List the selected bookmarks, engine and sidebar setting",
	Args:  cobra.NoArgs,
	RunE:  runSelectionShow,
}

var selectionClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Deselect every bookmark (folder expansion is kept)",
	Args:  cobra.NoArgs,
	RunE:  runSelectionClear,
}

var selectionEngineCmd = &cobra.Command{
	Use:       "engine <google|bing>",
	Short:     "Set the default search engine",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"google", "bing"},
	RunE:      runSelectionEngine,
}

var selectionSidebarCmd = &cobra.Command{
	Use:       "sidebar <on|off>",
	Short:     "Enable or disable the sidebar search",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE:      runSelectionSidebar,
}

func init() {
	selectionCmd.Flags().StringP("output", "o", "", "Output format (json)")
	selectionShowCmd.Flags().StringP("output", "o", "", "Output format (json)")
	selectionClearCmd.Flags().BoolP("yes", "y", false, "Skip confirmation")

	selectionCmd.AddCommand(selectionShowCmd)
	selectionCmd.AddCommand(selectionClearCmd)
	selectionCmd.AddCommand(selectionEngineCmd)
	selectionCmd.AddCommand(selectionSidebarCmd)
}

// SelectionCmd manages the persisted selection slots.
type SelectionCmd struct {
	prefs   *storage.Prefs
	confirm func(msg string) bool
}

type selectionSummary struct {
	Engine         string       `json:"engine"`
	SidebarEnabled bool         `json:"sidebarEnabled"`
	Folders        int          `json:"selectedFolders"`
	URLs           []model.Link `json:"selectedUrls"`
}

func (c SelectionCmd) Show(ctx context.Context, output string) error {
	if output != "" && output != "json" {
		return fmt.Errorf("unsupported --output value: use 'json'")
	}

	state, err := c.prefs.LoadSelection(ctx)
	if err != nil {
		return fmt.Errorf("load selection: %w", err)
	}
	engine, err := c.prefs.Engine(ctx)
	if err != nil {
		return fmt.Errorf("load engine: %w", err)
	}
	sidebarOn, err := c.prefs.SidebarEnabled(ctx)
	if err != nil {
		return fmt.Errorf("load sidebar setting: %w", err)
	}
	cached, err := c.prefs.AllBookmarks(ctx)
	if err != nil {
		return fmt.Errorf("load bookmark cache: %w", err)
	}

	titles := lo.SliceToMap(cached, func(l model.Link) (string, string) {
		return l.URL, l.Title
	})
	summary := selectionSummary{
		Engine:         engine.String(),
		SidebarEnabled: sidebarOn,
		Folders:        len(state.Folders),
		URLs: lo.Map(state.SelectedURLs(), func(u string, _ int) model.Link {
			return model.Link{URL: u, Title: titles[u]}
		}),
	}

	if output == "json" {
		return printJSON(summary)
	}

	pterm.Info.Printf("Engine: %s, sidebar: %s\n", summary.Engine, onOff(summary.SidebarEnabled))
	if len(summary.URLs) == 0 {
		pterm.Info.Println("No bookmarks selected")
		return nil
	}

	rows := pterm.TableData{{"Title", "URL"}}
	for _, l := range summary.URLs {
		rows = append(rows, []string{orDash(l.Title), l.URL})
	}
	_ = pterm.DefaultTable.WithHasHeader().WithData(rows).Render()

	hosts := lo.Uniq(lo.FilterMap(state.SelectedURLs(), func(u string, _ int) (string, bool) {
		host, err := query.Hostname(u)
		return host, err == nil
	}))
	pterm.Info.Printf("%d bookmarks selected across %d sites\n", len(summary.URLs), len(hosts))
	return nil
}

func (c SelectionCmd) Clear(ctx context.Context, yes bool) error {
	state, err := c.prefs.LoadSelection(ctx)
	if err != nil {
		return fmt.Errorf("load selection: %w", err)
	}
	if state.IsEmpty() && len(state.Folders) == 0 {
		pterm.Info.Println("Selection is already empty")
		return nil
	}

	if !yes {
		msg := fmt.Sprintf("Deselect %d bookmarks?", len(state.URLs))
		if !c.confirm(msg) {
			pterm.Info.Println("Clear cancelled")
			return nil
		}
	}

	cleared := selection.Apply(state, selection.Action{Kind: selection.Clear})
	if err := c.prefs.SaveSelection(ctx, cleared); err != nil {
		return fmt.Errorf("save selection: %w", err)
	}
	pterm.Success.Println("Selection cleared")
	return nil
}

func (c SelectionCmd) SetEngine(ctx context.Context, name string) error {
	engine, err := query.ParseEngine(name)
	if err != nil {
		return err
	}
	if err := c.prefs.SetEngine(ctx, engine); err != nil {
		return fmt.Errorf("save engine: %w", err)
	}
	pterm.Success.Printf("Search engine set to %s\n", engine)
	return nil
}

func (c SelectionCmd) SetSidebar(ctx context.Context, value string) error {
	enabled, err := parseOnOff(value)
	if err != nil {
		return err
	}
	if err := c.prefs.SetSidebarEnabled(ctx, enabled); err != nil {
		return fmt.Errorf("save sidebar setting: %w", err)
	}
	pterm.Success.Printf("Sidebar %s\n", onOff(enabled))
	return nil
}

func parseOnOff(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on":
		return true, nil
	case "off":
		return false, nil
	}
	enabled, err := strconv.ParseBool(value)
	if err != nil {
		return false, fmt.Errorf("invalid value %q: use on or off", value)
	}
	return enabled, nil
}

func onOff(enabled bool) string {
	if enabled {
		return "on"
	}
	return "off"
}

func newSelectionCmd(cmd *cobra.Command) SelectionCmd {
	return SelectionCmd{
		prefs: sessionFrom(cmd).prefs,
		confirm: func(msg string) bool {
			pterm.DefaultInteractiveConfirm.DefaultText = msg
			ok, _ := pterm.DefaultInteractiveConfirm.Show()
			return ok
		},
	}
}

func runSelectionShow(cmd *cobra.Command, args []string) error {
	output, _ := cmd.Flags().GetString("output")
	return newSelectionCmd(cmd).Show(cmd.Context(), output)
}

func runSelectionClear(cmd *cobra.Command, args []string) error {
	yes, _ := cmd.Flags().GetBool("yes")
	return newSelectionCmd(cmd).Clear(cmd.Context(), yes)
}

func runSelectionEngine(cmd *cobra.Command, args []string) error {
	return newSelectionCmd(cmd).SetEngine(cmd.Context(), args[0])
}

func runSelectionSidebar(cmd *cobra.Command, args []string) error {
	return newSelectionCmd(cmd).SetSidebar(cmd.Context(), args[0])
}
