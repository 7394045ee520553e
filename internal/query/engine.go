package query

import (
	"fmt"
	"net/url"
	"strings"
)

// Engine identifies a supported search engine.
type Engine string

const (
	Google Engine = "google"
	Bing   Engine = "bing"
)

// Engines lists the supported engines in display order.
var Engines = []Engine{Google, Bing}

// String returns the engine tag.
func (e Engine) String() string {
	return string(e)
}

// Endpoint returns the engine's fixed search endpoint.
func (e Engine) Endpoint() string {
	switch e {
	case Bing:
		return "https://www.bing.com/search"
	default:
		return "https://www.google.com/search"
	}
}

// Next returns the other engine, used to cycle between them.
func (e Engine) Next() Engine {
	if e == Google {
		return Bing
	}
	return Google
}

// ParseEngine parses an engine tag, case-insensitively.
func ParseEngine(s string) (Engine, error) {
	switch Engine(strings.ToLower(strings.TrimSpace(s))) {
	case Google:
		return Google, nil
	case Bing:
		return Bing, nil
	default:
		return "", fmt.Errorf("%w: %q (use google or bing)", ErrUnknownEngine, s)
	}
}

// googleSuffixes are the Google result-page domains the sidebar runs on.
var googleSuffixes = []string{
	"google.com",
	"google.com.hk",
	"google.co.jp",
	"google.co.uk",
	"google.de",
	"google.fr",
	"google.it",
	"google.es",
	"google.ca",
	"google.com.br",
	"google.com.au",
	"google.co.in",
}

// DetectEngine reports which engine serves result pages on host (no port).
func DetectEngine(host string) (Engine, bool) {
	host = strings.ToLower(host)

	for _, suffix := range googleSuffixes {
		if host == suffix || strings.HasSuffix(host, "."+suffix) {
			return Google, true
		}
	}
	if host == "bing.com" || strings.HasSuffix(host, ".bing.com") {
		return Bing, true
	}
	return "", false
}

// KeywordFromPage extracts the search keyword from a supported search
// result page URL (the "q" parameter on a /search path).
func KeywordFromPage(pageURL string) (string, Engine, bool) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host == "" {
		return "", "", false
	}

	engine, ok := DetectEngine(u.Hostname())
	if !ok || !strings.HasPrefix(u.Path, "/search") {
		return "", "", false
	}

	keyword := strings.TrimSpace(u.Query().Get("q"))
	if keyword == "" {
		return "", "", false
	}
	return keyword, engine, true
}
