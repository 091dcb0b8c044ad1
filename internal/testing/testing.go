// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"sync"

	"github.com/nkhaled/moviedeck/internal/models"
)

// MockCatalog is a configurable test double for [services.Catalog].
// Unset function fields return zero values.
type MockCatalog struct {
	mu sync.Mutex

	NowPlayingFn      func(ctx context.Context, page int) (*models.MoviePage, error)
	PopularFn         func(ctx context.Context, page int) (*models.MoviePage, error)
	TopRatedFn        func(ctx context.Context, page int) (*models.MoviePage, error)
	DiscoverByGenreFn func(ctx context.Context, genreID, page int) (*models.MoviePage, error)
	SearchFn          func(ctx context.Context, query string, page int) (*models.MoviePage, error)
	MovieDetailsFn    func(ctx context.Context, movieID int) (*models.MovieDetail, error)
	RecommendationsFn func(ctx context.Context, movieID int) (*models.MoviePage, error)
	VideosFn          func(ctx context.Context, movieID int) (*models.VideoList, error)
	GenresFn          func(ctx context.Context) (*models.GenreList, error)

	SearchCalls  []string
	DetailsCalls []int
}

func (m *MockCatalog) NowPlaying(ctx context.Context, page int) (*models.MoviePage, error) {
	if m.NowPlayingFn != nil {
		return m.NowPlayingFn(ctx, page)
	}
	return &models.MoviePage{Page: page}, nil
}

func (m *MockCatalog) Popular(ctx context.Context, page int) (*models.MoviePage, error) {
	if m.PopularFn != nil {
		return m.PopularFn(ctx, page)
	}
	return &models.MoviePage{Page: page}, nil
}

func (m *MockCatalog) TopRated(ctx context.Context, page int) (*models.MoviePage, error) {
	if m.TopRatedFn != nil {
		return m.TopRatedFn(ctx, page)
	}
	return &models.MoviePage{Page: page}, nil
}

func (m *MockCatalog) DiscoverByGenre(ctx context.Context, genreID, page int) (*models.MoviePage, error) {
	if m.DiscoverByGenreFn != nil {
		return m.DiscoverByGenreFn(ctx, genreID, page)
	}
	return &models.MoviePage{Page: page}, nil
}

func (m *MockCatalog) Search(ctx context.Context, query string, page int) (*models.MoviePage, error) {
	m.mu.Lock()
	m.SearchCalls = append(m.SearchCalls, query)
	m.mu.Unlock()
	if m.SearchFn != nil {
		return m.SearchFn(ctx, query, page)
	}
	return &models.MoviePage{Page: page}, nil
}

func (m *MockCatalog) MovieDetails(ctx context.Context, movieID int) (*models.MovieDetail, error) {
	m.mu.Lock()
	m.DetailsCalls = append(m.DetailsCalls, movieID)
	m.mu.Unlock()
	if m.MovieDetailsFn != nil {
		return m.MovieDetailsFn(ctx, movieID)
	}
	return &models.MovieDetail{ID: movieID}, nil
}

func (m *MockCatalog) Recommendations(ctx context.Context, movieID int) (*models.MoviePage, error) {
	if m.RecommendationsFn != nil {
		return m.RecommendationsFn(ctx, movieID)
	}
	return &models.MoviePage{Page: 1}, nil
}

func (m *MockCatalog) Videos(ctx context.Context, movieID int) (*models.VideoList, error) {
	if m.VideosFn != nil {
		return m.VideosFn(ctx, movieID)
	}
	return &models.VideoList{ID: movieID}, nil
}

func (m *MockCatalog) Genres(ctx context.Context) (*models.GenreList, error) {
	if m.GenresFn != nil {
		return m.GenresFn(ctx)
	}
	return &models.GenreList{}, nil
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter succeeds for a fixed number of writes, then fails
type LimitedWriter struct {
	remaining int
	writes    int
	inner     io.Writer
}

func NewLimitedWriter(remaining, writes int, w io.Writer) LimitedWriter {
	return LimitedWriter{remaining: remaining, writes: writes, inner: w}
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.writes >= l.remaining {
		return 0, errors.New("write limit reached")
	}
	l.writes++
	return l.inner.Write(p)
}
