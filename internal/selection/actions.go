package selection

import "github.com/nikbrunner/bms/internal/model"

// ActionKind identifies a selection change.
type ActionKind int

const (
	ToggleURL ActionKind = iota
	ToggleFolder
	SetExpanded
	ToggleExpanded
	Clear
)

// Action is a single selection change.
type Action struct {
	Kind ActionKind

	// URL is used by ToggleURL.
	URL string

	// Folder is used by ToggleFolder, SetExpanded and ToggleExpanded.
	Folder model.BookmarkItem

	// Expanded is used by SetExpanded.
	Expanded bool
}

// Apply returns the state after a. s is never modified.
func Apply(s State, a Action) State {
	switch a.Kind {
	case ToggleURL:
		if a.URL == "" {
			return s
		}
		next := s.Clone()
		setFlag(next.URLs, a.URL, !s.URLs[a.URL])
		return next

	case ToggleFolder:
		if !a.Folder.IsFolder() {
			return s
		}
		// Driven by what the checkbox shows: a fully checked folder is
		// cleared, anything else is selected.
		return SetFolderSelection(s, a.Folder, FolderState(a.Folder, s) != Checked)

	case SetExpanded:
		next := s.Clone()
		setFlag(next.Expanded, a.Folder.ID, a.Expanded)
		return next

	case ToggleExpanded:
		next := s.Clone()
		setFlag(next.Expanded, a.Folder.ID, !s.Expanded[a.Folder.ID])
		return next

	case Clear:
		next := s.Clone()
		next.URLs = map[string]bool{}
		next.Folders = map[string]bool{}
		return next
	}

	return s
}
