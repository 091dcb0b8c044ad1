// package services defines interface Catalog for the external movie catalog
//
// The Movie Database (TMDB) v3 API
package services

import (
	"context"

	"github.com/nkhaled/moviedeck/internal/models"
)

// Catalog defines the read-only operations against the movie catalog.
// Every call is independent: no caching, no retry; failures surface as a
// single transport-level error.
type Catalog interface {
	// NowPlaying retrieves the movies currently in theaters, paginated.
	NowPlaying(ctx context.Context, page int) (*models.MoviePage, error)

	// Popular retrieves movies ordered by popularity, paginated.
	Popular(ctx context.Context, page int) (*models.MoviePage, error)

	// TopRated retrieves movies ordered by rating, paginated.
	TopRated(ctx context.Context, page int) (*models.MoviePage, error)

	// DiscoverByGenre retrieves movies tagged with the genre, paginated.
	DiscoverByGenre(ctx context.Context, genreID, page int) (*models.MoviePage, error)

	// Search performs a full-text title search, paginated.
	Search(ctx context.Context, query string, page int) (*models.MoviePage, error)

	// MovieDetails retrieves the full record for a single movie.
	MovieDetails(ctx context.Context, movieID int) (*models.MovieDetail, error)

	// Recommendations retrieves movies related to the given one.
	Recommendations(ctx context.Context, movieID int) (*models.MoviePage, error)

	// Videos retrieves trailer-type media assets for a movie.
	Videos(ctx context.Context, movieID int) (*models.VideoList, error)

	// Genres retrieves the genre taxonomy.
	Genres(ctx context.Context) (*models.GenreList, error)
}
