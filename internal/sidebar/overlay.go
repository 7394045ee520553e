// Package sidebar mirrors a search over every bookmarked site next to a
// regular search result page.
package sidebar

import (
	"context"
	"net/url"
	"sync"

	"github.com/pterm/pterm"

	"github.com/nikbrunner/bms/internal/fetcher"
	"github.com/nikbrunner/bms/internal/logging"
	"github.com/nikbrunner/bms/internal/model"
	"github.com/nikbrunner/bms/internal/query"
)

// Status is the sidebar lifecycle state.
type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusResults Status = "results"
	StatusEmpty   Status = "empty"
	StatusError   Status = "error"
)

// String returns the status tag.
func (s Status) String() string {
	return string(s)
}

// IsFinished reports whether a run has ended in s.
func (s Status) IsFinished() bool {
	return s == StatusResults || s == StatusEmpty || s == StatusError
}

// Snapshot is what the sidebar shows at one point in time.
type Snapshot struct {
	Status    Status   `json:"status"`
	Keyword   string   `json:"keyword"`
	Engine    string   `json:"engine"`
	SearchURL string   `json:"searchUrl,omitempty"`
	Results   []Result `json:"results"`
	Error     string   `json:"error,omitempty"`
}

// Overlay runs sidebar searches. A zero Overlay is unusable; Fetcher is required.
type Overlay struct {
	Fetcher fetcher.Fetcher
	Logger  *pterm.Logger
	// OnChange, when set, receives every state the overlay passes through.
	OnChange func(Snapshot)

	mu      sync.Mutex
	current Snapshot
}

// Current returns the latest snapshot.
func (o *Overlay) Current() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current.Status == "" {
		return Snapshot{Status: StatusIdle}
	}
	return o.current
}

// Reset returns the overlay to idle, ready for the next keyword.
func (o *Overlay) Reset() {
	o.set(Snapshot{Status: StatusIdle})
}

func (o *Overlay) set(s Snapshot) {
	if s.Results == nil {
		s.Results = []Result{}
	}
	o.mu.Lock()
	o.current = s
	o.mu.Unlock()

	if o.OnChange != nil {
		o.OnChange(s)
	}
}

// Run searches keyword on engine restricted to every bookmarked site in
// links. Fetch and parse failures are logged and end in StatusError with no
// results. There is no retry.
func (o *Overlay) Run(ctx context.Context, keyword string, engine query.Engine, links []model.Link) Snapshot {
	log := logging.OrDiscard(o.Logger)
	base := Snapshot{Keyword: keyword, Engine: engine.String()}

	if len(links) == 0 {
		base.Status = StatusEmpty
		o.set(base)
		return o.Current()
	}

	urls := make([]string, len(links))
	for i, l := range links {
		urls[i] = l.URL
	}
	valid, invalid := query.FilterValid(urls)
	if len(invalid) > 0 {
		log.Debug("skipping bookmarks without a usable host", log.Args("count", len(invalid)))
	}
	if len(valid) == 0 {
		base.Status = StatusEmpty
		o.set(base)
		return o.Current()
	}

	searchURL, err := query.BuildSearchURL(keyword, valid, engine)
	if err != nil {
		return o.fail(base, err, log)
	}
	base.SearchURL = searchURL

	loading := base
	loading.Status = StatusLoading
	o.set(loading)

	page, err := o.Fetcher.Fetch(ctx, searchURL)
	if err != nil {
		return o.fail(base, err, log)
	}

	endpoint, _ := url.Parse(engine.Endpoint())
	results, err := ParseResults(engine, page, endpoint)
	if err != nil {
		return o.fail(base, err, log)
	}

	done := base
	done.Results = results
	done.Status = StatusResults
	if len(results) == 0 {
		done.Status = StatusEmpty
	}
	o.set(done)
	return o.Current()
}

func (o *Overlay) fail(s Snapshot, err error, log *pterm.Logger) Snapshot {
	log.Error("sidebar search failed", log.Args("keyword", s.Keyword, "engine", s.Engine, "error", err.Error()))

	s.Status = StatusError
	s.Results = nil
	s.Error = fetcher.NormalizeError(err)
	o.set(s)
	return o.Current()
}
