package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/nikbrunner/bms/internal/importer"
	"github.com/nikbrunner/bms/internal/logging"
	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/query"
	"github.com/nikbrunner/bms/internal/selection"
	"github.com/nikbrunner/bms/internal/storage"
	"github.com/nikbrunner/bms/internal/tui"
)

var rootCmd = &cobra.Command{
	Use:   "bms",
	Short: "Search the web restricted to the sites you bookmarked",
	Long: `bms picks a subset of your browser bookmarks and searches only those
sites through site: operators.

Running bms without a command opens the bookmark popup:
  j/k         Move down/up
  h/l         Collapse/expand folder
  space       Toggle bookmark or whole folder
  /           Type a keyword, Enter searches
  g/b         Google/Bing (pressing the active engine searches)
  tab         Switch engine
  x           Clear selection
  Y           Copy the search URL
  q           Quit`,
	SilenceUsage:       true,
	PersistentPreRunE:  openSession,
	PersistentPostRunE: closeSession,
	RunE:               runPopup,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.String("config", "", "Config file (default ~/.config/bms/config.json)")
	flags.String("state", "", "State store; .db/.sqlite uses SQLite, anything else JSON")
	flags.String("bookmarks", "", "Bookmarks file: Chrome Bookmarks JSON or Netscape HTML export")
	flags.String("env-file", ".env", "Dotenv file with BMS_* overrides")
	flags.BoolP("verbose", "v", false, "Enable debug logging")
	flags.Bool("json-log", false, "Log as JSON lines")

	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(sidebarCmd)
	rootCmd.AddCommand(syncCmd)
	rootCmd.AddCommand(findCmd)
	rootCmd.AddCommand(indexCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(selectionCmd)
}

// session is the environment shared by every command of one invocation.
type session struct {
	cfg    *storage.Config
	kv     storage.KV
	prefs  *storage.Prefs
	logger *pterm.Logger
}

type sessionKey struct{}

func getString(flags *pflag.FlagSet, name string) string {
	v, _ := flags.GetString(name)
	return v
}

func getBool(flags *pflag.FlagSet, name string) bool {
	v, _ := flags.GetBool(name)
	return v
}

func openSession(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()

	logger := logging.New(logging.Options{
		Writer:  os.Stderr,
		Verbose: getBool(flags, "verbose"),
		JSON:    getBool(flags, "json-log"),
	})

	configPath := getString(flags, "config")
	if configPath == "" {
		p, err := storage.DefaultConfigFilePath()
		if err != nil {
			return fmt.Errorf("resolve config path: %w", err)
		}
		configPath = p
	}
	cfg, err := storage.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("load config %s: %w", configPath, err)
	}
	if err := cfg.ApplyEnv(getString(flags, "env-file")); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}
	if v := getString(flags, "state"); v != "" {
		cfg.StatePath = v
	}
	if v := getString(flags, "bookmarks"); v != "" {
		cfg.BookmarksPath = v
	}

	s, err := newSession(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	cmd.SetContext(context.WithValue(cmd.Context(), sessionKey{}, s))
	return nil
}

// newSession opens the state store and seeds the engine slot from the
// configured default on first use.
func newSession(ctx context.Context, cfg *storage.Config, logger *pterm.Logger) (*session, error) {
	kv, err := storage.Open(cfg.StatePath)
	if err != nil {
		return nil, fmt.Errorf("open state %s: %w", cfg.StatePath, err)
	}
	s := &session{cfg: cfg, kv: kv, prefs: storage.NewPrefs(kv), logger: logging.OrDiscard(logger)}

	if _, ok, err := kv.Get(ctx, storage.KeySearchEngine); err == nil && !ok {
		if engine, err := query.ParseEngine(cfg.DefaultEngine); err == nil {
			if err := s.prefs.SetEngine(ctx, engine); err != nil {
				s.logger.Warn("could not store default engine", s.logger.Args("error", err))
			}
		}
	}

	s.logger.Debug("session opened", s.logger.Args("state", cfg.StatePath, "bookmarks", cfg.BookmarksPath))
	return s, nil
}

func closeSession(cmd *cobra.Command, args []string) error {
	if s, ok := cmd.Context().Value(sessionKey{}).(*session); ok {
		return s.kv.Close()
	}
	return nil
}

func sessionFrom(cmd *cobra.Command) *session {
	return cmd.Context().Value(sessionKey{}).(*session)
}

// bookmarks reads the configured bookmark tree.
func (s *session) bookmarks() ([]model.BookmarkItem, error) {
	if s.cfg.BookmarksPath == "" {
		return nil, errors.New("no bookmarks file configured (use --bookmarks or BMS_BOOKMARKS)")
	}
	items, err := importer.Load(s.cfg.BookmarksPath)
	if err != nil {
		return nil, fmt.Errorf("read bookmarks %s: %w", s.cfg.BookmarksPath, err)
	}
	return items, nil
}

// links returns the cached flattened bookmarks, filling the cache from the
// bookmark tree when it is empty.
func (s *session) links(ctx context.Context) ([]model.Link, error) {
	cached, err := s.prefs.AllBookmarks(ctx)
	if err != nil {
		return nil, err
	}
	if len(cached) > 0 {
		return cached, nil
	}

	items, err := s.bookmarks()
	if err != nil {
		return nil, err
	}
	if err := s.prefs.SetAllBookmarks(ctx, model.Flatten(items)); err != nil {
		return nil, err
	}
	return s.prefs.AllBookmarks(ctx)
}

// PopupCmd runs the interactive bookmark popup.
type PopupCmd struct {
	prefs  *storage.Prefs
	logger *pterm.Logger
	run    func(tui.AppParams) (tui.App, error)
}

// Run refreshes the bookmark cache from items, so the sidebar searches what
// the popup shows, then runs the popup on the stored selection.
func (p PopupCmd) Run(ctx context.Context, items []model.BookmarkItem) error {
	if err := p.prefs.SetAllBookmarks(ctx, model.Flatten(items)); err != nil {
		log := logging.OrDiscard(p.logger)
		log.Warn("could not refresh bookmark cache", log.Args("error", err))
	}

	state, err := p.prefs.LoadSelection(ctx)
	if err != nil {
		return fmt.Errorf("load selection: %w", err)
	}
	engine, err := p.prefs.Engine(ctx)
	if err != nil {
		return fmt.Errorf("load engine: %w", err)
	}

	final, err := p.run(tui.AppParams{
		Items:    items,
		State:    state,
		Engine:   engine,
		OnChange: p.persist(ctx),
	})
	if err != nil {
		return fmt.Errorf("run popup: %w", err)
	}

	if target := final.LaunchedURL(); target != "" {
		pterm.Success.Printf("Opened %s\n", target)
	}
	return nil
}

// persist returns the popup change handler. Write failures are logged; the
// popup keeps running on the in-memory state.
func (p PopupCmd) persist(ctx context.Context) func(selection.State, query.Engine) {
	log := logging.OrDiscard(p.logger)
	return func(s selection.State, engine query.Engine) {
		if err := p.prefs.SaveSelection(ctx, s); err != nil {
			log.Error("could not save selection", log.Args("error", err))
		}
		if err := p.prefs.SetEngine(ctx, engine); err != nil {
			log.Error("could not save engine", log.Args("error", err))
		}
	}
}

func runPopup(cmd *cobra.Command, args []string) error {
	s := sessionFrom(cmd)
	items, err := s.bookmarks()
	if err != nil {
		return err
	}

	p := PopupCmd{
		prefs:  s.prefs,
		logger: s.logger,
		run: func(params tui.AppParams) (tui.App, error) {
			return tui.Run(params)
		},
	}
	return p.Run(cmd.Context(), items)
}
