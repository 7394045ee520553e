// Package selection holds the user's bookmark selection: which URLs and
// folders are checked and which folders are expanded in the tree.
package selection

import (
	"sort"

	"github.com/samber/lo"

	"github.com/nikbrunner/bms/internal/model"
)

// State is the selection value. Treat it as immutable: every mutation goes
// through Apply or SetFolderSelection, which return a fresh State.
type State struct {
	URLs     map[string]bool
	Folders  map[string]bool
	Expanded map[string]bool
}

// New returns an empty selection.
func New() State {
	return State{
		URLs:     map[string]bool{},
		Folders:  map[string]bool{},
		Expanded: map[string]bool{},
	}
}

// FromSlices builds a State from persisted slot values.
func FromSlices(urls, folders, expanded []string) State {
	return State{
		URLs:     lo.SliceToMap(urls, func(u string) (string, bool) { return u, true }),
		Folders:  lo.SliceToMap(folders, func(id string) (string, bool) { return id, true }),
		Expanded: lo.SliceToMap(expanded, func(id string) (string, bool) { return id, true }),
	}
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{
		URLs:     lo.Assign(s.URLs),
		Folders:  lo.Assign(s.Folders),
		Expanded: lo.Assign(s.Expanded),
	}
}

// SelectedURLs returns the selected URLs, sorted.
func (s State) SelectedURLs() []string { return sortedKeys(s.URLs) }

// SelectedFolders returns the selected folder IDs, sorted.
func (s State) SelectedFolders() []string { return sortedKeys(s.Folders) }

// ExpandedFolders returns the expanded folder IDs, sorted.
func (s State) ExpandedFolders() []string { return sortedKeys(s.Expanded) }

// IsEmpty reports whether no URL is selected.
func (s State) IsEmpty() bool { return len(s.URLs) == 0 }

func sortedKeys(m map[string]bool) []string {
	keys := lo.Keys(lo.PickBy(m, func(_ string, v bool) bool { return v }))
	sort.Strings(keys)
	return keys
}

// SetFolderSelection marks folder, every descendant folder and every
// descendant leaf URL as selected (or clears them). The traversal uses an
// explicit worklist. The returned State has both sets updated together.
func SetFolderSelection(s State, folder model.BookmarkItem, selected bool) State {
	next := s.Clone()

	work := []model.BookmarkItem{folder}
	for len(work) > 0 {
		node := work[len(work)-1]
		work = work[:len(work)-1]

		switch {
		case node.IsLeaf():
			setFlag(next.URLs, node.URL, selected)
		case node.IsFolder():
			setFlag(next.Folders, node.ID, selected)
			work = append(work, node.Children...)
		}
	}

	return next
}

func setFlag(m map[string]bool, key string, on bool) {
	if on {
		m[key] = true
		return
	}
	delete(m, key)
}
