package tui

import (
	"errors"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/query"
	"github.com/nikbrunner/bms/internal/selection"
	"github.com/nikbrunner/bms/internal/tui/layout"
	"github.com/pkg/browser"
)

// Mode is the input mode of the popup.
type Mode int

const (
	ModeBrowse Mode = iota // tree navigation
	ModeSearch             // typing into the search input
)

// MessageType is the severity of the status line message.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

// App is the bubbletea model for the bookmark popup: a selectable bookmark
// tree, a search input and the engine buttons.
type App struct {
	items        []model.BookmarkItem
	state        selection.State
	engine       query.Engine
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig

	onChange func(selection.State, query.Engine)
	openURL  func(string) error
	copyText func(string) error

	mode   Mode
	input  textinput.Model
	rows   []Row
	cursor int

	messageText string
	messageType MessageType

	// launched is the search URL opened before quitting.
	launched string

	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Items  []model.BookmarkItem
	State  selection.State
	Engine query.Engine

	Keys   *KeyMap               // optional, uses default if nil
	Styles *Styles               // optional, uses default if nil
	Layout *layout.LayoutConfig // optional, uses default if nil

	// OnChange receives the state after every selection or engine change.
	OnChange func(selection.State, query.Engine)

	// OpenURL opens a search URL. Defaults to the system browser.
	OpenURL func(string) error

	// CopyText writes text to the clipboard. Defaults to the system clipboard.
	CopyText func(string) error
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutConfig := layout.DefaultConfig()
	if params.Layout != nil {
		layoutConfig = *params.Layout
	}

	state := params.State
	if state.URLs == nil || state.Folders == nil || state.Expanded == nil {
		state = selection.FromSlices(state.SelectedURLs(), state.SelectedFolders(), state.ExpandedFolders())
	}

	engine := params.Engine
	if engine == "" {
		engine = query.Google
	}

	openURL := params.OpenURL
	if openURL == nil {
		openURL = browser.OpenURL
	}
	copyText := params.CopyText
	if copyText == nil {
		copyText = clipboard.WriteAll
	}

	input := textinput.New()
	input.Placeholder = "Search selected sites..."
	input.CharLimit = layoutConfig.Input.SearchCharLimit
	input.Width = layoutConfig.Input.SearchWidth

	app := App{
		items:        params.Items,
		state:        state,
		engine:       engine,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutConfig,
		onChange:     params.OnChange,
		openURL:      openURL,
		copyText:     copyText,
		mode:         ModeBrowse,
		input:        input,
		width:        80,
		height:       24,
	}

	app.refreshRows()
	return app
}

// refreshRows rebuilds the visible rows and keeps the cursor in range.
func (a *App) refreshRows() {
	a.rows = buildRows(a.items, a.state.Expanded)
	if a.cursor >= len(a.rows) {
		a.cursor = len(a.rows) - 1
	}
	if a.cursor < 0 {
		a.cursor = 0
	}
}

// Cursor returns the current cursor position.
func (a App) Cursor() int {
	return a.cursor
}

// Rows returns the currently visible tree rows.
func (a App) Rows() []Row {
	return a.rows
}

// State returns the current selection state.
func (a App) State() selection.State {
	return a.state
}

// Engine returns the active search engine.
func (a App) Engine() query.Engine {
	return a.engine
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// Keyword returns the search input text.
func (a App) Keyword() string {
	return a.input.Value()
}

// Message returns the status line message.
func (a App) Message() (string, MessageType) {
	return a.messageText, a.messageType
}

// LaunchedURL returns the search URL opened before the popup quit, if any.
func (a App) LaunchedURL() string {
	return a.launched
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case tea.KeyMsg:
		if a.mode == ModeSearch {
			return a.updateSearch(msg)
		}
		return a.updateBrowse(msg)
	}

	return a, nil
}

func (a App) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.messageText = ""

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		if len(a.rows) > 0 && a.cursor < len(a.rows)-1 {
			a.cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.cursor > 0 {
			a.cursor--
		}

	case key.Matches(msg, a.keys.Top):
		a.cursor = 0

	case key.Matches(msg, a.keys.Bottom):
		if len(a.rows) > 0 {
			a.cursor = len(a.rows) - 1
		}

	case key.Matches(msg, a.keys.Expand):
		if row, ok := a.currentRow(); ok && row.IsFolder() && !row.Disabled && !a.state.Expanded[row.Item.ID] {
			a.apply(selection.Action{Kind: selection.SetExpanded, Folder: row.Item, Expanded: true})
		}

	case key.Matches(msg, a.keys.Collapse):
		row, ok := a.currentRow()
		if !ok {
			break
		}
		if row.IsFolder() && a.state.Expanded[row.Item.ID] {
			a.apply(selection.Action{Kind: selection.SetExpanded, Folder: row.Item, Expanded: false})
		} else if parent := parentRow(a.rows, a.cursor); parent >= 0 {
			a.cursor = parent
		}

	case key.Matches(msg, a.keys.Toggle):
		row, ok := a.currentRow()
		switch {
		case !ok || row.Disabled:
		case row.IsFolder():
			a.apply(selection.Action{Kind: selection.ToggleFolder, Folder: row.Item})
		default:
			a.apply(selection.Action{Kind: selection.ToggleURL, URL: row.Item.URL})
		}

	case key.Matches(msg, a.keys.Clear):
		a.apply(selection.Action{Kind: selection.Clear})

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		cmd := a.input.Focus()
		return a, cmd

	case key.Matches(msg, a.keys.Submit):
		return a.executeSearch()

	case key.Matches(msg, a.keys.CycleEngine):
		a.setEngine(a.engine.Next())

	case key.Matches(msg, a.keys.Google):
		return a.selectEngine(query.Google)

	case key.Matches(msg, a.keys.Bing):
		return a.selectEngine(query.Bing)

	case key.Matches(msg, a.keys.YankURL):
		a.yankSearchURL()
	}

	return a, nil
}

func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return a, tea.Quit

	case key.Matches(msg, a.keys.Cancel):
		a.mode = ModeBrowse
		a.input.Blur()
		return a, nil

	case key.Matches(msg, a.keys.Submit):
		return a.executeSearch()

	case key.Matches(msg, a.keys.CycleEngine):
		a.setEngine(a.engine.Next())
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	a.messageText = ""
	return a, cmd
}

func (a App) currentRow() (Row, bool) {
	if a.cursor < 0 || a.cursor >= len(a.rows) {
		return Row{}, false
	}
	return a.rows[a.cursor], true
}

// apply runs a selection change and reports it.
func (a *App) apply(action selection.Action) {
	a.state = selection.Apply(a.state, action)
	a.refreshRows()
	a.notify()
}

func (a *App) setEngine(engine query.Engine) {
	if engine == a.engine {
		return
	}
	a.engine = engine
	a.notify()
}

// selectEngine mirrors the engine buttons: pressing the active engine runs
// the search, pressing the other one switches to it.
func (a App) selectEngine(engine query.Engine) (tea.Model, tea.Cmd) {
	if engine == a.engine {
		return a.executeSearch()
	}
	a.setEngine(engine)
	return a, nil
}

func (a *App) notify() {
	if a.onChange != nil {
		a.onChange(a.state, a.engine)
	}
}

// searchURL builds the restricted search URL for the current input.
// Selected URLs without a hostname are left out of the site filter.
func (a App) searchURL() (string, error) {
	valid, _ := query.FilterValid(a.state.SelectedURLs())
	return query.BuildSearchURL(a.input.Value(), valid, a.engine)
}

func (a App) executeSearch() (tea.Model, tea.Cmd) {
	target, err := a.searchURL()
	if err != nil {
		a.setError(err)
		return a, nil
	}
	if err := a.openURL(target); err != nil {
		a.setMessage(MessageError, "Could not open browser: "+err.Error())
		return a, nil
	}
	a.launched = target
	return a, tea.Quit
}

func (a *App) yankSearchURL() {
	target, err := a.searchURL()
	if err != nil {
		a.setError(err)
		return
	}
	if err := a.copyText(target); err != nil {
		a.setMessage(MessageError, "Could not copy: "+err.Error())
		return
	}
	a.setMessage(MessageSuccess, "Copied search URL")
}

func (a *App) setError(err error) {
	if errors.Is(err, query.ErrEmptyKeyword) {
		a.setMessage(MessageError, "Type a keyword first (/)")
		return
	}
	a.setMessage(MessageError, err.Error())
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// Run shows the popup on the terminal and returns its final state.
func Run(params AppParams, opts ...tea.ProgramOption) (App, error) {
	opts = append([]tea.ProgramOption{tea.WithAltScreen()}, opts...)
	final, err := tea.NewProgram(NewApp(params), opts...).Run()
	if err != nil {
		return App{}, err
	}
	return final.(App), nil
}
