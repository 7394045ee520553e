package importer

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/nikbrunner/bms/internal/model"
)

// ErrNoRoots is returned when a Chrome bookmarks file has no root folders.
var ErrNoRoots = errors.New("bookmarks file has no roots")

// chromeFile mirrors the layout of Chrome's "Bookmarks" JSON file.
type chromeFile struct {
	Roots map[string]*chromeNode `json:"roots"`
}

type chromeNode struct {
	ID       string        `json:"id"`
	Name     string        `json:"name"`
	Type     string        `json:"type"` // "url" or "folder"
	URL      string        `json:"url"`
	Children []*chromeNode `json:"children"`
}

// rootOrder is the order chrome.bookmarks.getTree() reports the root folders in.
var rootOrder = []string{"bookmark_bar", "other", "synced"}

// ParseChromeBookmarks parses a Chrome/Chromium "Bookmarks" file and returns
// the root folders (bookmark bar, other bookmarks, mobile bookmarks).
func ParseChromeBookmarks(r io.Reader) ([]model.BookmarkItem, error) {
	var file chromeFile
	if err := json.NewDecoder(r).Decode(&file); err != nil {
		return nil, fmt.Errorf("decode bookmarks: %w", err)
	}
	if len(file.Roots) == 0 {
		return nil, ErrNoRoots
	}

	items := []model.BookmarkItem{}
	for _, key := range rootOrder {
		node, ok := file.Roots[key]
		if !ok || node == nil {
			continue
		}
		items = append(items, convertNode(node))
	}
	return items, nil
}

func convertNode(n *chromeNode) model.BookmarkItem {
	if n.Type == "url" {
		return model.BookmarkItem{ID: n.ID, Title: n.Name, URL: n.URL}
	}

	children := make([]model.BookmarkItem, 0, len(n.Children))
	for _, c := range n.Children {
		if c == nil {
			continue
		}
		children = append(children, convertNode(c))
	}
	return model.BookmarkItem{ID: n.ID, Title: n.Name, Children: children}
}

// Load reads a bookmark tree from path. Files ending in .html or .htm are
// parsed as Netscape HTML exports, anything else as a Chrome Bookmarks file.
func Load(path string) ([]model.BookmarkItem, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm":
		return ParseHTMLBookmarks(file)
	default:
		return ParseChromeBookmarks(file)
	}
}

// DefaultChromeBookmarksPath returns the default profile's Bookmarks file for the current OS.
func DefaultChromeBookmarksPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	switch runtime.GOOS {
	case "darwin":
		return filepath.Join(homeDir, "Library", "Application Support", "Google", "Chrome", "Default", "Bookmarks"), nil
	case "windows":
		local := os.Getenv("LOCALAPPDATA")
		if local == "" {
			local = filepath.Join(homeDir, "AppData", "Local")
		}
		return filepath.Join(local, "Google", "Chrome", "User Data", "Default", "Bookmarks"), nil
	default:
		return filepath.Join(homeDir, ".config", "google-chrome", "Default", "Bookmarks"), nil
	}
}
