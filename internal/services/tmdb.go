// TMDB implementation of [Catalog]
//
// Response types based on https://developer.themoviedb.org/reference
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/nkhaled/moviedeck/internal/models"
	"github.com/nkhaled/moviedeck/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"

	// PlaceholderImage is returned when a movie has no artwork.
	PlaceholderImage = "assets/images/no-image.png"
)

// ImageSize selects the variant segment of an image URL.
type ImageSize string

const (
	PosterSize   ImageSize = "w500"
	BackdropSize ImageSize = "original"
	ProfileSize  ImageSize = "w185"
)

// LanguageProvider supplies the language code attached to every request.
type LanguageProvider interface {
	Current() string
}

// staticLanguage is the fallback provider when none is supplied.
type staticLanguage string

func (s staticLanguage) Current() string { return string(s) }

// TMDBService implements [Catalog] against The Movie Database API.
// The client is stateless: each request independently attaches the API key
// and the caller's current language as query parameters.
type TMDBService struct {
	baseURL      string
	imageBaseURL string
	apiKey       string
	language     LanguageProvider
	httpClient   *http.Client
	limiter      *rate.Limiter
}

// TMDBOpts contains configuration for creating a TMDBService.
type TMDBOpts struct {
	Config     shared.TMDBConfig
	Language   LanguageProvider
	HTTPClient *http.Client
}

// NewTMDBService creates a TMDB client. A missing api_key and access_token
// is an error; when an access token is present requests authenticate with a
// Bearer header through an [oauth2] static token source instead of the
// api_key query parameter.
func NewTMDBService(opts TMDBOpts) (*TMDBService, error) {
	cfg := opts.Config
	if cfg.APIKey == "" && cfg.AccessToken == "" {
		return nil, fmt.Errorf("%w: missing tmdb api_key or access_token", shared.ErrMissingConfig)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = defaultImageBaseURL
	}

	client := opts.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	if cfg.AccessToken != "" {
		src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.AccessToken, TokenType: "Bearer"})
		client = oauth2.NewClient(context.WithValue(context.Background(), oauth2.HTTPClient, client), src)
	}

	lang := opts.Language
	if lang == nil {
		lang = staticLanguage("en")
	}

	var limiter *rate.Limiter
	if cfg.RateLimit > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RateLimit), 1)
	}

	return &TMDBService{
		baseURL:      cfg.BaseURL,
		imageBaseURL: cfg.ImageBaseURL,
		apiKey:       cfg.APIKey,
		language:     lang,
		httpClient:   client,
		limiter:      limiter,
	}, nil
}

// get performs a GET against endpoint with the standard parameters attached
// and decodes the JSON response into result.
func (s *TMDBService) get(ctx context.Context, endpoint string, extra url.Values, result any) error {
	if s.limiter != nil {
		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}
	}

	params := url.Values{}
	if s.apiKey != "" {
		params.Set("api_key", s.apiKey)
	}
	params.Set("language", s.language.Current())
	for key, values := range extra {
		for _, value := range values {
			params.Set(key, value)
		}
	}

	apiURL := s.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%w: %s", shared.ErrMovieNotFound, endpoint)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}

func (s *TMDBService) page(ctx context.Context, endpoint string, page int, extra url.Values) (*models.MoviePage, error) {
	if page <= 0 {
		page = 1
	}
	if extra == nil {
		extra = url.Values{}
	}
	extra.Set("page", strconv.Itoa(page))

	var result models.MoviePage
	if err := s.get(ctx, endpoint, extra, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// NowPlaying retrieves the movies currently in theaters.
func (s *TMDBService) NowPlaying(ctx context.Context, page int) (*models.MoviePage, error) {
	return s.page(ctx, "/movie/now_playing", page, nil)
}

// Popular retrieves movies ordered by popularity.
func (s *TMDBService) Popular(ctx context.Context, page int) (*models.MoviePage, error) {
	return s.page(ctx, "/movie/popular", page, nil)
}

// TopRated retrieves movies ordered by rating.
func (s *TMDBService) TopRated(ctx context.Context, page int) (*models.MoviePage, error) {
	return s.page(ctx, "/movie/top_rated", page, nil)
}

// DiscoverByGenre retrieves movies tagged with the genre.
func (s *TMDBService) DiscoverByGenre(ctx context.Context, genreID, page int) (*models.MoviePage, error) {
	extra := url.Values{}
	extra.Set("with_genres", strconv.Itoa(genreID))
	return s.page(ctx, "/discover/movie", page, extra)
}

// Search performs a full-text title search.
func (s *TMDBService) Search(ctx context.Context, query string, page int) (*models.MoviePage, error) {
	extra := url.Values{}
	extra.Set("query", query)
	return s.page(ctx, "/search/movie", page, extra)
}

// MovieDetails retrieves the full record for a single movie.
func (s *TMDBService) MovieDetails(ctx context.Context, movieID int) (*models.MovieDetail, error) {
	var detail models.MovieDetail
	endpoint := fmt.Sprintf("/movie/%d", movieID)
	if err := s.get(ctx, endpoint, nil, &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// Recommendations retrieves movies related to the given one.
func (s *TMDBService) Recommendations(ctx context.Context, movieID int) (*models.MoviePage, error) {
	return s.page(ctx, fmt.Sprintf("/movie/%d/recommendations", movieID), 1, nil)
}

// Videos retrieves trailer-type media assets for a movie.
func (s *TMDBService) Videos(ctx context.Context, movieID int) (*models.VideoList, error) {
	var videos models.VideoList
	endpoint := fmt.Sprintf("/movie/%d/videos", movieID)
	if err := s.get(ctx, endpoint, nil, &videos); err != nil {
		return nil, err
	}
	return &videos, nil
}

// Genres retrieves the genre taxonomy.
func (s *TMDBService) Genres(ctx context.Context) (*models.GenreList, error) {
	var genres models.GenreList
	if err := s.get(ctx, "/genre/movie/list", nil, &genres); err != nil {
		return nil, err
	}
	return &genres, nil
}

// ImageURL builds a display URL for an image path at the requested size,
// falling back to the placeholder when the path is absent.
func (s *TMDBService) ImageURL(path string, size ImageSize) string {
	if path == "" {
		return PlaceholderImage
	}
	return fmt.Sprintf("%s/%s%s", s.imageBaseURL, size, path)
}

// YouTubeURL builds an embeddable trailer URL from a video key.
func YouTubeURL(key string) string {
	return "https://www.youtube.com/embed/" + key
}

var _ Catalog = (*TMDBService)(nil)
