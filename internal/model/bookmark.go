package model

// BookmarkItem is a node of the browser bookmark tree.
// A leaf has a URL and no children; a folder has Children (possibly empty) and no URL.
type BookmarkItem struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	URL      string         `json:"url,omitempty"`
	Children []BookmarkItem `json:"children"`
}

// IsFolder returns true if the item is a folder.
func (b BookmarkItem) IsFolder() bool {
	return b.URL == "" && b.Children != nil
}

// IsLeaf returns true if the item is a bookmark with a URL.
func (b BookmarkItem) IsLeaf() bool {
	return b.URL != ""
}

// DisplayTitle returns the title, falling back to the URL for leaves
// and a placeholder for unnamed folders.
func (b BookmarkItem) DisplayTitle() string {
	if b.Title != "" {
		return b.Title
	}
	if b.IsLeaf() {
		return b.URL
	}
	return "(untitled)"
}

// Link is a flattened leaf bookmark.
type Link struct {
	URL   string `json:"url"`
	Title string `json:"title"`
}

// NewFolderParams holds parameters for creating a folder node.
type NewFolderParams struct {
	Title    string
	Children []BookmarkItem
}

// NewFolder creates a folder node with a generated ID.
func NewFolder(params NewFolderParams) BookmarkItem {
	children := params.Children
	if children == nil {
		children = []BookmarkItem{}
	}
	return BookmarkItem{
		ID:       GenerateUUID(),
		Title:    params.Title,
		Children: children,
	}
}

// NewBookmark creates a leaf node with a generated ID.
func NewBookmark(title, url string) BookmarkItem {
	return BookmarkItem{
		ID:    GenerateUUID(),
		Title: title,
		URL:   url,
	}
}
