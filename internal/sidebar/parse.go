package sidebar

import (
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"github.com/nikbrunner/bms/internal/query"
)

// Result is one search hit shown in the sidebar.
type Result struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// resultSelector describes where an engine puts its organic results:
// a container element with a class, a title element inside it, and the
// first link inside it.
type resultSelector struct {
	container string
	class     string
	title     string
}

var selectors = map[query.Engine]resultSelector{
	query.Google: {container: "div", class: "g", title: "h3"},
	query.Bing:   {container: "li", class: "b_algo", title: "h2"},
}

// ParseResults extracts results from an engine result page. Relative links
// are resolved against base. Duplicate URLs are dropped.
func ParseResults(engine query.Engine, page string, base *url.URL) ([]Result, error) {
	sel, ok := selectors[engine]
	if !ok {
		return nil, fmt.Errorf("%w: %q", query.ErrUnknownEngine, engine)
	}

	doc, err := html.Parse(strings.NewReader(page))
	if err != nil {
		return nil, fmt.Errorf("parse result page: %w", err)
	}

	var results []Result
	seen := make(map[string]bool)

	var visit func(n *html.Node)
	visit = func(n *html.Node) {
		if isElement(n, sel.container) && hasClass(n, sel.class) {
			if r, ok := extract(n, sel, base); ok && !seen[r.URL] {
				seen[r.URL] = true
				results = append(results, r)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			visit(c)
		}
	}
	visit(doc)

	return results, nil
}

func extract(container *html.Node, sel resultSelector, base *url.URL) (Result, bool) {
	titleEl := findFirst(container, sel.title)
	linkEl := findFirst(container, "a")
	if titleEl == nil || linkEl == nil {
		return Result{}, false
	}

	href := getAttr(linkEl, "href")
	if href == "" {
		return Result{}, false
	}
	link, err := resolveLink(href, base)
	if err != nil {
		return Result{}, false
	}

	return Result{
		Title: strings.Join(strings.Fields(getTextContent(titleEl)), " "),
		URL:   link,
	}, true
}

// resolveLink makes href absolute and unwraps Google's /url?q= redirects.
func resolveLink(href string, base *url.URL) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", err
	}
	u := ref
	if base != nil {
		u = base.ResolveReference(ref)
	}

	if u.Path == "/url" {
		for _, key := range []string{"q", "url"} {
			if target := u.Query().Get(key); strings.HasPrefix(target, "http") {
				return target, nil
			}
		}
	}
	return u.String(), nil
}

// findFirst returns the first descendant element named tag, in document order.
func findFirst(n *html.Node, tag string) *html.Node {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if isElement(c, tag) {
			return c
		}
		if found := findFirst(c, tag); found != nil {
			return found
		}
	}
	return nil
}

func isElement(n *html.Node, tag string) bool {
	return n.Type == html.ElementNode && n.Data == tag
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(getAttr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}

func getTextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if attr.Key == key {
			return attr.Val
		}
	}
	return ""
}
