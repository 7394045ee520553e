package selection

import "github.com/nikbrunner/bms/internal/model"

// CheckState is the visual state of a folder checkbox.
type CheckState int

const (
	Unchecked CheckState = iota
	Checked
	Indeterminate
)

// String returns the checkbox glyph used in the tree.
func (c CheckState) String() string {
	switch c {
	case Checked:
		return "[x]"
	case Indeterminate:
		return "[~]"
	default:
		return "[ ]"
	}
}

// FolderState derives a folder's checkbox from its descendant leaves.
// A folder with no leaves is always Unchecked.
func FolderState(folder model.BookmarkItem, s State) CheckState {
	total, selected := 0, 0
	model.Walk(folder.Children, func(item *model.BookmarkItem, _ int) bool {
		if item.IsLeaf() {
			total++
			if s.URLs[item.URL] {
				selected++
			}
		}
		return true
	})

	switch {
	case total == 0 || selected == 0:
		return Unchecked
	case selected == total:
		return Checked
	default:
		return Indeterminate
	}
}
