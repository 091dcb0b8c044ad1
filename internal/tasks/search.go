package tasks

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/nkhaled/moviedeck/internal/models"
	"github.com/nkhaled/moviedeck/internal/services"
)

// DefaultDebounce is the delay between the last keystroke and the request.
const DefaultDebounce = 500 * time.Millisecond

// SearchResult is delivered to the publish callback for the winning query.
type SearchResult struct {
	Query string
	Page  *models.MoviePage
	Err   error
}

// Searcher issues debounced catalog searches with last-response-wins
// semantics: every new query supersedes the previous one, cancelling its
// in-flight request. A superseded response is dropped, never merged, so the
// publish callback only ever observes the latest query's outcome.
type Searcher struct {
	catalog  services.Catalog
	debounce time.Duration
	publish  func(SearchResult)

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
	lastQuery  string
}

// NewSearcher creates a Searcher publishing results through publish. The
// callback runs on the request goroutine; callers that need delivery on a UI
// loop forward it from there (e.g. into a bubbletea program).
func NewSearcher(catalog services.Catalog, debounce time.Duration, publish func(SearchResult)) *Searcher {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	return &Searcher{catalog: catalog, debounce: debounce, publish: publish}
}

// Query schedules a search for query, superseding any pending or in-flight
// one. An empty or unchanged query short-circuits: empty publishes an empty
// result immediately, unchanged is ignored.
func (s *Searcher) Query(ctx context.Context, query string) {
	query = strings.TrimSpace(query)

	s.mu.Lock()
	if query == s.lastQuery {
		s.mu.Unlock()
		return
	}
	s.lastQuery = query
	s.generation++
	gen := s.generation
	if s.cancel != nil {
		s.cancel()
	}

	if query == "" {
		s.cancel = nil
		s.mu.Unlock()
		s.publish(SearchResult{Query: ""})
		return
	}

	reqCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(reqCtx, gen, query)
}

// Reset forgets the last query and cancels any in-flight request, so the
// next Query always fires.
func (s *Searcher) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastQuery = ""
	s.generation++
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *Searcher) run(ctx context.Context, gen uint64, query string) {
	timer := time.NewTimer(s.debounce)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return
	case <-timer.C:
	}

	page, err := s.catalog.Search(ctx, query, 1)

	// Drop stale responses: a newer query owns the output now.
	s.mu.Lock()
	current := gen == s.generation
	s.mu.Unlock()
	if !current || ctx.Err() != nil {
		return
	}

	s.publish(SearchResult{Query: query, Page: page, Err: err})
}
