// package formatter provides functions to render movie listings to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/nkhaled/moviedeck/internal/models"
)

// MoviesToCSV converts a movie list to CSV with columns: ID, Title, Release Date, Rating, Votes
func MoviesToCSV(movies []models.Movie) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Release Date", "Rating", "Votes"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range movies {
		record := []string{
			strconv.Itoa(movie.ID),
			movie.Title,
			movie.ReleaseDate,
			strconv.FormatFloat(movie.VoteAverage, 'f', 1, 64),
			strconv.Itoa(movie.VoteCount),
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// MoviesToMarkdown converts a movie list to a Markdown section.
func MoviesToMarkdown(title string, movies []models.Movie) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", title))
	buf.WriteString(fmt.Sprintf("**Movies**: %d\n\n", len(movies)))

	for i, movie := range movies {
		year := ReleaseYear(movie.ReleaseDate)
		buf.WriteString(fmt.Sprintf("%d. %s (%s) - %.1f/10\n", i+1, movie.Title, year, movie.VoteAverage))
	}

	return buf.Bytes()
}

// MoviesToText converts a movie list to plain text, one line per movie.
func MoviesToText(movies []models.Movie) []byte {
	var buf bytes.Buffer

	for _, movie := range movies {
		buf.WriteString(fmt.Sprintf("%8d  %-45s %10s  %4.1f (%d votes)\n",
			movie.ID, truncate(movie.Title, 45), ReleaseYear(movie.ReleaseDate), movie.VoteAverage, movie.VoteCount))
	}

	return buf.Bytes()
}

// DetailToText renders a full movie record for terminal display.
func DetailToText(detail *models.MovieDetail) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Title: %s\n", detail.Title))
	if detail.Tagline != "" {
		buf.WriteString(fmt.Sprintf("Tagline: %s\n", detail.Tagline))
	}
	buf.WriteString(fmt.Sprintf("Released: %s\n", detail.ReleaseDate))
	if detail.Runtime > 0 {
		buf.WriteString(fmt.Sprintf("Runtime: %dm\n", detail.Runtime))
	}
	buf.WriteString(fmt.Sprintf("Rating: %.1f/10 (%d votes)\n", detail.VoteAverage, detail.VoteCount))

	if len(detail.Genres) > 0 {
		buf.WriteString("Genres: ")
		for i, genre := range detail.Genres {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(genre.Name)
		}
		buf.WriteString("\n")
	}

	if detail.Overview != "" {
		buf.WriteString(fmt.Sprintf("\n%s\n", detail.Overview))
	}

	return buf.Bytes()
}

// ReleaseYear extracts the year from a yyyy-mm-dd release date, or returns
// "unknown" when absent.
func ReleaseYear(releaseDate string) string {
	if len(releaseDate) >= 4 {
		return releaseDate[:4]
	}
	return "unknown"
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-1] + "…"
}
