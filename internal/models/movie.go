package models

// Movie represents a catalog item as returned in TMDB listings.
// Wishlist entries store this struct by value as a snapshot.
type Movie struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	GenreIDs     []int   `json:"genre_ids"`
}

// MoviePage represents a paginated listing response.
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

// Genre represents a taxonomy entry.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// GenreList is the response shape of the genre taxonomy endpoint.
type GenreList struct {
	Genres []Genre `json:"genres"`
}

// MovieDetail represents the full record for a single movie.
// Unlike [Movie], genres arrive resolved rather than as bare IDs.
type MovieDetail struct {
	ID           int     `json:"id"`
	Title        string  `json:"title"`
	PosterPath   string  `json:"poster_path"`
	BackdropPath string  `json:"backdrop_path"`
	Overview     string  `json:"overview"`
	ReleaseDate  string  `json:"release_date"`
	VoteAverage  float64 `json:"vote_average"`
	VoteCount    int     `json:"vote_count"`
	Popularity   float64 `json:"popularity"`
	Runtime      int     `json:"runtime"`
	Tagline      string  `json:"tagline"`
	Status       string  `json:"status"`
	Genres       []Genre `json:"genres"`
	Homepage     string  `json:"homepage"`
}

// AsMovie flattens a detail record into the listing shape used by wishlists.
func (d *MovieDetail) AsMovie() Movie {
	ids := make([]int, 0, len(d.Genres))
	for _, g := range d.Genres {
		ids = append(ids, g.ID)
	}
	return Movie{
		ID:           d.ID,
		Title:        d.Title,
		PosterPath:   d.PosterPath,
		BackdropPath: d.BackdropPath,
		Overview:     d.Overview,
		ReleaseDate:  d.ReleaseDate,
		VoteAverage:  d.VoteAverage,
		VoteCount:    d.VoteCount,
		Popularity:   d.Popularity,
		GenreIDs:     ids,
	}
}

// Video represents a related media asset (trailer, teaser, clip).
type Video struct {
	ID       string `json:"id"`
	Key      string `json:"key"`
	Name     string `json:"name"`
	Site     string `json:"site"`
	Type     string `json:"type"`
	Official bool   `json:"official"`
}

// VideoList is the response shape of the videos endpoint.
type VideoList struct {
	ID      int     `json:"id"`
	Results []Video `json:"results"`
}

// Trailer returns the first official YouTube trailer, falling back to any
// YouTube video, or nil when the movie has none.
func (v *VideoList) Trailer() *Video {
	var fallback *Video
	for i := range v.Results {
		vid := &v.Results[i]
		if vid.Site != "YouTube" {
			continue
		}
		if vid.Type == "Trailer" && vid.Official {
			return vid
		}
		if fallback == nil {
			fallback = vid
		}
	}
	return fallback
}
