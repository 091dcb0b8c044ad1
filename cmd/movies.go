package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/nkhaled/moviedeck/internal/formatter"
	"github.com/nkhaled/moviedeck/internal/models"
	"github.com/nkhaled/moviedeck/internal/services"
	"github.com/nkhaled/moviedeck/internal/shared"
	"github.com/urfave/cli/v3"
)

// movieIDArg parses the required positional movie ID.
func movieIDArg(cmd *cli.Command) (int, error) {
	raw := cmd.StringArg("id")
	if raw == "" {
		return 0, fmt.Errorf("%w: movie id", shared.ErrMissingArgument)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: movie id must be a number, got %q", shared.ErrInvalidArgument, raw)
	}
	return id, nil
}

// writeListing renders a movie page in the format the flags select.
func (r *Runner) writeListing(cmd *cli.Command, title string, page *models.MoviePage) error {
	switch {
	case cmd.Bool("json"):
		return r.writeJSON(page, cmd.Bool("pretty"))
	case cmd.Bool("csv"):
		data, err := formatter.MoviesToCSV(page.Results)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case cmd.Bool("markdown"):
		return r.writePlain("%s", formatter.MoviesToMarkdown(title, page.Results))
	default:
		r.writePlainHeader(fmt.Sprintf("%s (page %d of %d)", title, page.Page, page.TotalPages))
		return r.writePlain("%s", formatter.MoviesToText(page.Results))
	}
}

// MoviesNowPlaying lists movies currently in theaters.
func (r *Runner) MoviesNowPlaying(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCatalog(); err != nil {
		return err
	}

	page, err := r.catalog.NowPlaying(ctx, cmd.Int("page"))
	if err != nil {
		return fmt.Errorf("failed to fetch now playing: %w", err)
	}
	return r.writeListing(cmd, "Now Playing", page)
}

// MoviesPopular lists movies ordered by popularity.
func (r *Runner) MoviesPopular(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCatalog(); err != nil {
		return err
	}

	page, err := r.catalog.Popular(ctx, cmd.Int("page"))
	if err != nil {
		return fmt.Errorf("failed to fetch popular: %w", err)
	}
	return r.writeListing(cmd, "Popular", page)
}

// MoviesTopRated lists movies ordered by rating.
func (r *Runner) MoviesTopRated(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCatalog(); err != nil {
		return err
	}

	page, err := r.catalog.TopRated(ctx, cmd.Int("page"))
	if err != nil {
		return fmt.Errorf("failed to fetch top rated: %w", err)
	}
	return r.writeListing(cmd, "Top Rated", page)
}

// MoviesByGenre lists movies tagged with the given genre ID.
func (r *Runner) MoviesByGenre(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCatalog(); err != nil {
		return err
	}

	genreID, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	page, err := r.catalog.DiscoverByGenre(ctx, genreID, cmd.Int("page"))
	if err != nil {
		return fmt.Errorf("failed to discover by genre: %w", err)
	}
	return r.writeListing(cmd, fmt.Sprintf("Genre %d", genreID), page)
}

// MoviesGenres lists the genre taxonomy.
func (r *Runner) MoviesGenres(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCatalog(); err != nil {
		return err
	}

	genres, err := r.catalog.Genres(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch genres: %w", err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(genres, true)
	}

	r.writePlainHeader("Genres")
	for _, genre := range genres.Genres {
		r.writePlain("%6d  %s\n", genre.ID, genre.Name)
	}
	return nil
}

// MoviesSearch performs a full-text title search.
func (r *Runner) MoviesSearch(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCatalog(); err != nil {
		return err
	}

	query := cmd.StringArg("query")
	if query == "" {
		return fmt.Errorf("%w: search query", shared.ErrMissingArgument)
	}

	page, err := r.catalog.Search(ctx, query, cmd.Int("page"))
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	return r.writeListing(cmd, fmt.Sprintf("Results for %q", query), page)
}

// MoviesDetail shows the full record for a single movie.
func (r *Runner) MoviesDetail(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCatalog(); err != nil {
		return err
	}

	movieID, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	detail, err := r.catalog.MovieDetails(ctx, movieID)
	if err != nil {
		return fmt.Errorf("failed to fetch movie %d: %w", movieID, err)
	}

	if cmd.Bool("json") {
		return r.writeJSON(detail, cmd.Bool("pretty"))
	}

	r.writePlain("%s", formatter.DetailToText(detail))
	if r.tmdb != nil {
		r.writePlain("\nPoster: %s\n", r.tmdb.ImageURL(detail.PosterPath, services.PosterSize))
	}
	if r.wishlist != nil && r.wishlist.Contains(detail.ID) {
		r.writePlain("♥ In your wishlist\n")
	}
	return nil
}

// MoviesRecommend lists movies related to the given one.
func (r *Runner) MoviesRecommend(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCatalog(); err != nil {
		return err
	}

	movieID, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	page, err := r.catalog.Recommendations(ctx, movieID)
	if err != nil {
		return fmt.Errorf("failed to fetch recommendations: %w", err)
	}
	return r.writeListing(cmd, fmt.Sprintf("Because you watched %d", movieID), page)
}

// MoviesTrailer shows or opens the best available trailer.
func (r *Runner) MoviesTrailer(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureCatalog(); err != nil {
		return err
	}

	movieID, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	videos, err := r.catalog.Videos(ctx, movieID)
	if err != nil {
		return fmt.Errorf("failed to fetch videos: %w", err)
	}

	trailer := videos.Trailer()
	if trailer == nil {
		r.writePlain("No trailer available for movie %d\n", movieID)
		return nil
	}

	trailerURL := services.YouTubeURL(trailer.Key)
	r.writePlain("%s\n%s\n", trailer.Name, trailerURL)

	if cmd.Bool("open") {
		if err := shared.OpenBrowser(trailerURL); err != nil {
			return fmt.Errorf("failed to open browser: %w", err)
		}
	}
	return nil
}
