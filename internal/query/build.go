package query

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

var (
	ErrEmptyKeyword  = errors.New("search keyword is empty")
	ErrInvalidURL    = errors.New("invalid bookmark URL")
	ErrUnknownEngine = errors.New("unknown search engine")
)

// Hostname returns the hostname of an absolute URL.
func Hostname(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}
	if !u.IsAbs() || u.Hostname() == "" {
		return "", fmt.Errorf("%w: %q is not an absolute URL", ErrInvalidURL, rawURL)
	}
	return strings.ToLower(u.Hostname()), nil
}

// SiteClause builds the OR-joined site: filter for urls. Hostnames are
// de-duplicated in first-occurrence order.
func SiteClause(urls []string) (string, error) {
	seen := make(map[string]bool, len(urls))
	clauses := make([]string, 0, len(urls))

	for _, raw := range urls {
		host, err := Hostname(raw)
		if err != nil {
			return "", err
		}
		if seen[host] {
			continue
		}
		seen[host] = true
		clauses = append(clauses, "site:"+host)
	}

	return strings.Join(clauses, " OR "), nil
}

// BuildQuery combines the keyword with the site filter for urls.
// With no urls the query is the keyword alone.
func BuildQuery(keyword string, urls []string) (string, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return "", ErrEmptyKeyword
	}

	sites, err := SiteClause(urls)
	if err != nil {
		return "", err
	}
	if sites == "" {
		return keyword, nil
	}
	return keyword + " " + sites, nil
}

// BuildSearchURL builds the engine search URL for keyword restricted to the
// hosts of urls.
func BuildSearchURL(keyword string, urls []string, engine Engine) (string, error) {
	q, err := BuildQuery(keyword, urls)
	if err != nil {
		return "", err
	}
	return engine.Endpoint() + "?q=" + encodeComponent(q), nil
}

// encodeComponent percent-encodes s the way a URI component is encoded:
// spaces become %20 rather than '+'.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

// FilterValid splits urls into those usable for a site: clause and the rest.
func FilterValid(urls []string) (valid, invalid []string) {
	for _, raw := range urls {
		if _, err := Hostname(raw); err != nil {
			invalid = append(invalid, raw)
			continue
		}
		valid = append(valid, raw)
	}
	return valid, invalid
}
