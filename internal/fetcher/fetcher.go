// Package fetcher retrieves pages over HTTP on behalf of the sidebar and
// the content ingester.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	maxRedirects = 10
	// maxBodyBytes caps how much of a page is read.
	maxBodyBytes = 5 << 20
)

// Fetcher returns the body of a page as text.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

// StatusError is returned for a non-2xx response.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPFetcher implements Fetcher with a plain GET.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
}

// Options configures an HTTPFetcher.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Client is the base HTTP client. It is copied, never modified.
	Client *http.Client
}

// New creates an HTTPFetcher.
func New(opts Options) *HTTPFetcher {
	// Work on a copy so a shared client such as http.DefaultClient keeps
	// its own timeout and redirect policy.
	client := &http.Client{}
	if opts.Client != nil {
		c := *opts.Client
		client = &c
	}
	if opts.Timeout > 0 {
		client.Timeout = opts.Timeout
	}
	client.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		// Follow redirects but limit to 10
		if len(via) >= maxRedirects {
			return http.ErrUseLastResponse
		}
		return nil
	}

	return &HTTPFetcher{client: client, userAgent: opts.UserAgent}
}

// Fetch GETs url and returns its body. Responses outside 2xx yield a *StatusError.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", url, err)
	}
	return string(body), nil
}

// NormalizeError simplifies verbose fetch errors into readable categories.
func NormalizeError(err error) string {
	if err == nil {
		return ""
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return fmt.Sprintf("HTTP %d", statusErr.StatusCode)
	}
	if errors.Is(err, context.Canceled) {
		return "Canceled"
	}

	errStr := err.Error()
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case errors.Is(err, context.DeadlineExceeded),
		strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	default:
		return errStr
	}
}
