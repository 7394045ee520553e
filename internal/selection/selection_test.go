package selection_test

import (
	"testing"

	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"

	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/selection"
)

func leaf(url string) model.BookmarkItem {
	return model.BookmarkItem{ID: url, Title: url, URL: url}
}

func folder(id string, children ...model.BookmarkItem) model.BookmarkItem {
	if children == nil {
		children = []model.BookmarkItem{}
	}
	return model.BookmarkItem{ID: id, Title: id, Children: children}
}

// A(x.com, B(y.com), Empty())
func fixture() model.BookmarkItem {
	return folder("A",
		leaf("https://x.com/page"),
		folder("B", leaf("https://y.com/")),
		folder("Empty"),
	)
}

func TestSetFolderSelection_SelectsSubtree(t *testing.T) {
	s := selection.SetFolderSelection(selection.New(), fixture(), true)

	assert.DeepEqual(t, s.SelectedURLs(), []string{"https://x.com/page", "https://y.com/"})
	assert.DeepEqual(t, s.SelectedFolders(), []string{"A", "B", "Empty"})
}

func TestSetFolderSelection_DeselectClearsBothSets(t *testing.T) {
	s := selection.SetFolderSelection(selection.New(), fixture(), true)
	s = selection.SetFolderSelection(s, fixture(), false)

	assert.Check(t, is.Len(s.SelectedURLs(), 0))
	assert.Check(t, is.Len(s.SelectedFolders(), 0))
}

func TestSetFolderSelection_DoesNotMutateInput(t *testing.T) {
	before := selection.New()
	_ = selection.SetFolderSelection(before, fixture(), true)

	assert.Check(t, is.Len(before.URLs, 0))
	assert.Check(t, is.Len(before.Folders, 0))
}

func TestSetFolderSelection_DeepTree(t *testing.T) {
	root := leaf("https://deep.example/")
	for i := 0; i < 5000; i++ {
		root = folder("f", root)
	}

	s := selection.SetFolderSelection(selection.New(), root, true)
	assert.DeepEqual(t, s.SelectedURLs(), []string{"https://deep.example/"})
}

func TestFolderState(t *testing.T) {
	a := fixture()

	tests := []struct {
		name string
		urls []string
		want selection.CheckState
	}{
		{"nothing selected", nil, selection.Unchecked},
		{"some selected", []string{"https://x.com/page"}, selection.Indeterminate},
		{"all selected", []string{"https://x.com/page", "https://y.com/"}, selection.Checked},
		{"unrelated selected", []string{"https://other.com/"}, selection.Unchecked},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := selection.FromSlices(tt.urls, nil, nil)
			assert.Equal(t, selection.FolderState(a, s), tt.want)
		})
	}
}

func TestFolderState_EmptyFolderIsUnchecked(t *testing.T) {
	empty := folder("Empty")
	s := selection.FromSlices(nil, []string{"Empty"}, nil)

	assert.Equal(t, selection.FolderState(empty, s), selection.Unchecked)
}

func TestCheckStateGlyphs(t *testing.T) {
	assert.Equal(t, selection.Checked.String(), "[x]")
	assert.Equal(t, selection.Unchecked.String(), "[ ]")
	assert.Equal(t, selection.Indeterminate.String(), "[~]")
}

func TestApply_ToggleURL(t *testing.T) {
	s := selection.Apply(selection.New(), selection.Action{Kind: selection.ToggleURL, URL: "https://x.com"})
	assert.DeepEqual(t, s.SelectedURLs(), []string{"https://x.com"})

	s = selection.Apply(s, selection.Action{Kind: selection.ToggleURL, URL: "https://x.com"})
	assert.Check(t, s.IsEmpty())
}

func TestApply_ToggleFolderFollowsVisualState(t *testing.T) {
	a := fixture()
	toggle := selection.Action{Kind: selection.ToggleFolder, Folder: a}

	// Indeterminate selects everything.
	partial := selection.FromSlices([]string{"https://y.com/"}, nil, nil)
	s := selection.Apply(partial, toggle)
	assert.Equal(t, selection.FolderState(a, s), selection.Checked)
	assert.Check(t, s.Folders["A"])

	// Checked clears the subtree.
	s = selection.Apply(s, toggle)
	assert.Equal(t, selection.FolderState(a, s), selection.Unchecked)
	assert.Check(t, is.Len(s.SelectedFolders(), 0))

	// Unchecked selects again.
	s = selection.Apply(s, toggle)
	assert.Equal(t, selection.FolderState(a, s), selection.Checked)
}

func TestApply_ToggleFolderIgnoresLeaves(t *testing.T) {
	s := selection.Apply(selection.New(), selection.Action{Kind: selection.ToggleFolder, Folder: leaf("https://x.com")})
	assert.Check(t, s.IsEmpty())
}

func TestApply_Expansion(t *testing.T) {
	a := fixture()

	s := selection.Apply(selection.New(), selection.Action{Kind: selection.SetExpanded, Folder: a, Expanded: true})
	assert.DeepEqual(t, s.ExpandedFolders(), []string{"A"})

	s = selection.Apply(s, selection.Action{Kind: selection.ToggleExpanded, Folder: a})
	assert.Check(t, is.Len(s.ExpandedFolders(), 0))

	s = selection.Apply(s, selection.Action{Kind: selection.ToggleExpanded, Folder: a})
	assert.DeepEqual(t, s.ExpandedFolders(), []string{"A"})
}

func TestApply_ClearKeepsExpansion(t *testing.T) {
	s := selection.FromSlices([]string{"https://x.com"}, []string{"A"}, []string{"A", "B"})

	s = selection.Apply(s, selection.Action{Kind: selection.Clear})

	assert.Check(t, is.Len(s.SelectedURLs(), 0))
	assert.Check(t, is.Len(s.SelectedFolders(), 0))
	assert.DeepEqual(t, s.ExpandedFolders(), []string{"A", "B"})
}
