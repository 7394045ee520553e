package model

// Walk visits every node depth-first in pre-order. Returning false from fn
// skips the node's children. An explicit stack keeps deep trees off the call stack.
func Walk(items []BookmarkItem, fn func(item *BookmarkItem, depth int) bool) {
	type frame struct {
		item  *BookmarkItem
		depth int
	}

	stack := make([]frame, 0, len(items))
	for i := len(items) - 1; i >= 0; i-- {
		stack = append(stack, frame{item: &items[i], depth: 0})
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if !fn(top.item, top.depth) {
			continue
		}

		children := top.item.Children
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{item: &children[i], depth: top.depth + 1})
		}
	}
}

// Flatten returns every leaf bookmark in depth-first pre-order.
func Flatten(items []BookmarkItem) []Link {
	var links []Link
	Walk(items, func(item *BookmarkItem, _ int) bool {
		if item.IsLeaf() {
			links = append(links, Link{URL: item.URL, Title: item.Title})
		}
		return true
	})
	return links
}

// LeafURLs returns the URLs of every leaf under items, in pre-order.
func LeafURLs(items []BookmarkItem) []string {
	links := Flatten(items)
	urls := make([]string, len(links))
	for i, l := range links {
		urls[i] = l.URL
	}
	return urls
}

// FindFolder finds a folder by ID anywhere in the tree, returns nil if not found.
func FindFolder(items []BookmarkItem, id string) *BookmarkItem {
	var found *BookmarkItem
	Walk(items, func(item *BookmarkItem, _ int) bool {
		if found != nil {
			return false
		}
		if item.ID == id && item.IsFolder() {
			found = item
			return false
		}
		return true
	})
	return found
}

// CountLeaves returns the number of leaf bookmarks under items.
func CountLeaves(items []BookmarkItem) int {
	count := 0
	Walk(items, func(item *BookmarkItem, _ int) bool {
		if item.IsLeaf() {
			count++
		}
		return true
	})
	return count
}
