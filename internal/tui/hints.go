package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l)
	Select []Hint // Selection hints (space, x)
	Action []Hint // Search hints (/, Enter, engines)
	System []Hint // System hints (q, Esc)
}

// All returns all hints flattened in display order: Nav + Select + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Select)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Select...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "j/k:move h:collapse l:expand"
func (a App) renderHints(hints HintSet) string {
	all := hints.All()
	if len(all) == 0 {
		return ""
	}

	parts := make([]string, len(all))
	for i, h := range all {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// getContextualHints returns the appropriate hints for the current mode.
func (a App) getContextualHints() HintSet {
	if a.mode == ModeSearch {
		return HintSet{
			Action: []Hint{
				{Key: "Enter", Desc: "search"},
				{Key: "Tab", Desc: "engine"},
			},
			System: []Hint{
				{Key: "Esc", Desc: "back"},
			},
		}
	}

	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "h/l", Desc: "fold"},
		},
		Select: []Hint{
			{Key: "space", Desc: "toggle"},
			{Key: "x", Desc: "clear"},
		},
		Action: []Hint{
			{Key: "/", Desc: "search"},
			{Key: "g/b", Desc: "engine"},
			{Key: "Y", Desc: "yank"},
		},
		System: []Hint{
			{Key: "q", Desc: "quit"},
		},
	}
}
