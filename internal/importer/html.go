package importer

import (
	"io"
	"strconv"
	"strings"

	"github.com/nikbrunner/bms/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML into a bookmark tree.
// Every browser can export this format. Node IDs are derived from each
// node's position and title, so parsing the same file twice yields the
// same IDs.
func ParseHTMLBookmarks(r io.Reader) ([]model.BookmarkItem, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}
	return collect(doc, ""), nil
}

// collect gathers the items of one folder level. An H3 names the folder
// whose contents are the next DL; a DL without a pending H3 is a wrapper
// (the top-level list) and is merged into the current level. path is the
// ID of the enclosing folder.
func collect(parent *html.Node, path string) []model.BookmarkItem {
	items := []model.BookmarkItem{}
	var pending *string

	nodeID := func(title string) string {
		return model.StableID(path, strconv.Itoa(len(items)), title)
	}

	// flush closes a header that has no list of its own.
	flush := func() {
		folder := model.NewFolder(model.NewFolderParams{Title: *pending})
		folder.ID = nodeID(folder.Title)
		items = append(items, folder)
		pending = nil
	}

	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}

			switch strings.ToLower(c.Data) {
			case "h3":
				// A folder header directly followed by another header is an empty folder
				if pending != nil {
					flush()
				}
				name := getTextContent(c)
				pending = &name

			case "a":
				href := getAttr(c, "href")
				if href == "" {
					continue
				}
				title := getTextContent(c)
				if title == "" {
					title = href
				}
				bookmark := model.NewBookmark(title, href)
				bookmark.ID = nodeID(title + "\x00" + href)
				items = append(items, bookmark)

			case "dl":
				if pending == nil {
					items = append(items, collect(c, path)...)
					continue
				}
				id := nodeID(*pending)
				folder := model.NewFolder(model.NewFolderParams{
					Title:    *pending,
					Children: collect(c, id),
				})
				folder.ID = id
				items = append(items, folder)
				pending = nil

			default:
				visit(c)
			}
		}
	}

	visit(parent)
	if pending != nil {
		flush()
	}
	return items
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
