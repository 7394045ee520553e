package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	detailStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("108"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)
)

// Entry is one pickable link.
type Entry struct {
	Title  string
	URL    string
	Detail string // optional, e.g. a score
}

// Picker is a simple TUI for selecting one entry.
type Picker struct {
	entries   []Entry
	header    string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a new Picker over entries with header shown above the list.
func New(entries []Entry, header string) Picker {
	return Picker{
		entries: entries,
		header:  header,
		cursor:  0,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit

		case tea.KeyEnter:
			if len(p.entries) == 0 {
				return p, nil
			}
			p.selected = true
			return p, tea.Quit

		case tea.KeyDown:
			p.moveDown()
			return p, nil

		case tea.KeyUp:
			p.moveUp()
			return p, nil
		}

		// Handle j/k vim keys
		if msg.Type == tea.KeyRunes {
			switch string(msg.Runes) {
			case "j":
				p.moveDown()
				return p, nil
			case "k":
				p.moveUp()
				return p, nil
			case "g":
				p.cursor = 0
				return p, nil
			case "G":
				if len(p.entries) > 0 {
					p.cursor = len(p.entries) - 1
				}
				return p, nil
			case "q":
				p.cancelled = true
				return p, tea.Quit
			}
		}
	}

	return p, nil
}

func (p *Picker) moveDown() {
	if p.cursor < len(p.entries)-1 {
		p.cursor++
	}
}

func (p *Picker) moveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// visibleRange returns the slice of entries that fits the window,
// keeping the cursor in view. Each entry takes two lines.
func (p Picker) visibleRange() (int, int) {
	capacity := (p.height - 5) / 2
	if capacity < 1 {
		capacity = 1
	}
	if len(p.entries) <= capacity {
		return 0, len(p.entries)
	}

	start := p.cursor - capacity/2
	if start < 0 {
		start = 0
	}
	end := start + capacity
	if end > len(p.entries) {
		end = len(p.entries)
		start = end - capacity
	}
	return start, end
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	// Header
	b.WriteString(headerStyle.Render(fmt.Sprintf("%s (%d results)", p.header, len(p.entries))))
	b.WriteString("\n\n")

	start, end := p.visibleRange()
	for i := start; i < end; i++ {
		entry := p.entries[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		title := entry.Title
		if title == "" {
			title = entry.URL
		}
		line := style.Render(title)
		if entry.Detail != "" {
			line += " " + detailStyle.Render(entry.Detail)
		}

		b.WriteString(fmt.Sprintf("%s%s\n", cursor, line))
		b.WriteString(fmt.Sprintf("   %s\n", urlStyle.Render(entry.URL)))
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("j/k: move  Enter: open  q/Esc: cancel"))

	return b.String()
}

// Selected returns the chosen entry, or false if the picker was cancelled.
func (p Picker) Selected() (Entry, bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.entries) {
		return Entry{}, false
	}
	return p.entries[p.cursor], true
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}

// Run shows the picker on the terminal and returns the chosen entry.
func Run(entries []Entry, header string, opts ...tea.ProgramOption) (Entry, bool, error) {
	final, err := tea.NewProgram(New(entries, header), opts...).Run()
	if err != nil {
		return Entry{}, false, err
	}
	entry, ok := final.(Picker).Selected()
	return entry, ok, nil
}
