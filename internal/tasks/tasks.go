// package tasks implements multi-request catalog operations.
//
// The core abstraction is Engine, which orchestrates work that spans more
// than one API call: refreshing every wishlisted movie after a language
// change, and debounced search where only the latest query's response may be
// consumed. Operations emit progress updates via channels for non-blocking
// status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/nkhaled/moviedeck/internal/models"
	"github.com/nkhaled/moviedeck/internal/services"
	"github.com/nkhaled/moviedeck/internal/shared"
	"golang.org/x/time/rate"
)

// RefreshItemResult records the outcome of re-fetching a single movie.
type RefreshItemResult struct {
	index   int
	Movie   models.Movie // Refreshed snapshot, or the cached one on failure
	Fresh   bool         // Whether the API call succeeded
	Err     error        // The per-item failure, nil when Fresh
	MovieID int
}

// RefreshResult contains the outcome of a full wishlist refresh.
// Movies preserves the input order and always has one entry per input item:
// failed fetches fall back to the cached snapshot.
type RefreshResult struct {
	Movies      []models.Movie
	FreshCount  int
	FailedCount int
}

// RefreshOpts contains configuration for wishlist refreshes.
type RefreshOpts struct {
	NumWorkers int     // Concurrent workers (default: 5, max: 10)
	RateLimit  float64 // Requests per second (default: 5)
}

// Engine orchestrates multi-request operations against the catalog.
type Engine struct {
	catalog services.Catalog
	logger  *log.Logger
}

// NewEngine creates an Engine with the provided catalog client.
func NewEngine(catalog services.Catalog, logger *log.Logger) *Engine {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Engine{catalog: catalog, logger: logger}
}

// sendProgress sends a progress update through the channel without blocking.
// Uses select with default to ensure progress reporting never blocks execution.
func (e *Engine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
	default:
	}
}

// RefreshWishlist re-fetches details for every item, one request per movie,
// and joins all responses before returning. A per-item failure falls back to
// the cached snapshot, so the result is always a complete batch the caller
// can apply to observable state atomically. Order matches the input.
func (e *Engine) RefreshWishlist(ctx context.Context, progress chan<- ProgressUpdate, items []models.Movie, opts RefreshOpts) (*RefreshResult, error) {
	if e.catalog == nil {
		return nil, shared.ErrServiceUnavailable
	}

	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	result := &RefreshResult{Movies: make([]models.Movie, len(items))}
	if len(items) == 0 {
		return result, nil
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan RefreshItemResult, len(items))
	results := make(chan RefreshItemResult, len(items))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				if err := limiter.Wait(ctx); err != nil {
					job.Err = err
					results <- job
					continue
				}

				detail, err := e.catalog.MovieDetails(ctx, job.MovieID)
				if err != nil {
					// Keep the cached snapshot for this entry.
					job.Err = err
					results <- job
					continue
				}

				job.Movie = detail.AsMovie()
				job.Fresh = true
				results <- job
			}
		}()
	}

	e.sendProgress(progress, refreshStartUpdate(len(items)))
	for i, item := range items {
		jobs <- RefreshItemResult{index: i, Movie: item, MovieID: item.ID}
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Movies[res.index] = res.Movie
		if res.Fresh {
			result.FreshCount++
		} else {
			result.FailedCount++
			e.logger.Warn("wishlist refresh fell back to cached item", "movie", res.MovieID, "error", res.Err)
		}
		e.sendProgress(progress, refreshItemUpdate(completed, len(items), res))
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	e.sendProgress(progress, refreshDoneUpdate(result))
	return result, nil
}
