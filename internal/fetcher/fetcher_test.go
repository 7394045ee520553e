package fetcher_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/nikbrunner/bms/internal/fetcher"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		fmt.Fprint(w, "<html><body>hello</body></html>")
	}))
	defer srv.Close()

	f := fetcher.New(fetcher.Options{Timeout: time.Second, UserAgent: "bms-test"})

	body, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != "<html><body>hello</body></html>" {
		t.Errorf("unexpected body %q", body)
	}
	if gotUA != "bms-test" {
		t.Errorf("expected user agent to be sent, got %q", gotUA)
	}
}

func TestHTTPFetcher_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := fetcher.New(fetcher.Options{}).Fetch(context.Background(), srv.URL)

	var statusErr *fetcher.StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected *StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusTooManyRequests {
		t.Errorf("expected 429, got %d", statusErr.StatusCode)
	}
	if got := fetcher.NormalizeError(err); got != "HTTP 429" {
		t.Errorf("expected 'HTTP 429', got %q", got)
	}
}

func TestHTTPFetcher_RedirectCap(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, srv.URL+"/loop", http.StatusFound)
	}))
	defer srv.Close()

	_, err := fetcher.New(fetcher.Options{Timeout: time.Second}).Fetch(context.Background(), srv.URL)

	// The last redirect response is returned instead of following forever.
	var statusErr *fetcher.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusFound {
		t.Fatalf("expected 302 StatusError after redirect cap, got %v", err)
	}
}

func TestHTTPFetcher_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(2 * time.Second):
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()

	_, err := fetcher.New(fetcher.Options{Timeout: 50 * time.Millisecond}).Fetch(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if got := fetcher.NormalizeError(err); got != "Timeout" {
		t.Errorf("expected 'Timeout', got %q (%v)", got, err)
	}
}

func TestHTTPFetcher_CanceledContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := fetcher.New(fetcher.Options{}).Fetch(ctx, srv.URL)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNormalizeError(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{nil, ""},
		{errors.New("dial tcp: lookup nowhere.invalid: no such host"), "DNS failure"},
		{errors.New("dial tcp 127.0.0.1:1: connect: connection refused"), "Connection refused"},
		{errors.New("x509: certificate signed by unknown authority"), "TLS/certificate error"},
		{errors.New("connect: network is unreachable"), "Network unreachable"},
		{errors.New("remote error: tls: handshake failure"), "TLS error"},
		{fmt.Errorf("fetch: %w", context.DeadlineExceeded), "Timeout"},
		{errors.New("something else"), "something else"},
	}

	for _, tt := range tests {
		if got := fetcher.NormalizeError(tt.err); got != tt.want {
			t.Errorf("NormalizeError(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}

func TestNew_LeavesCallerClientUntouched(t *testing.T) {
	base := &http.Client{Timeout: time.Minute}

	f := fetcher.New(fetcher.Options{Timeout: time.Second, Client: base})
	if f == nil {
		t.Fatal("expected a fetcher")
	}

	if base.Timeout != time.Minute {
		t.Errorf("expected caller timeout to stay 1m, got %v", base.Timeout)
	}
	if base.CheckRedirect != nil {
		t.Error("expected caller redirect policy to stay unset")
	}
}
