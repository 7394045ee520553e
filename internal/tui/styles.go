package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App            lipgloss.Style
	Title          lipgloss.Style
	Item           lipgloss.Style
	ItemSelected   lipgloss.Style
	ItemDisabled   lipgloss.Style
	Checked        lipgloss.Style // checkbox glyph of a selected row
	URL            lipgloss.Style
	Input          lipgloss.Style
	InputActive    lipgloss.Style
	Engine         lipgloss.Style
	EngineActive   lipgloss.Style
	Empty          lipgloss.Style
	HintKey        lipgloss.Style
	HintDesc       lipgloss.Style
	HintLabel      lipgloss.Style
	MessageError   lipgloss.Style
	MessageSuccess lipgloss.Style
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			MarginBottom(1),

		Item: lipgloss.NewStyle().
			Foreground(primary),

		ItemSelected: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		ItemDisabled: lipgloss.NewStyle().
			Foreground(subtle).
			Faint(true),

		Checked: lipgloss.NewStyle().
			Foreground(accent).
			Bold(true),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(border),

		InputActive: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder(), false, false, true, false).
			BorderForeground(accent),

		Engine: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(0, 1),

		EngineActive: lipgloss.NewStyle().
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")).
			Bold(true).
			Padding(0, 1),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		HintLabel: lipgloss.NewStyle().
			Foreground(accent),

		MessageError: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#CC3333", Dark: "#FF6666"}).
			Bold(true),

		MessageSuccess: lipgloss.NewStyle().
			Foreground(lipgloss.AdaptiveColor{Light: "#338833", Dark: "#66CC66"}).
			Bold(true),
	}
}
