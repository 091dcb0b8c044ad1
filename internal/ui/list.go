package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/nkhaled/moviedeck/internal/formatter"
	"github.com/nkhaled/moviedeck/internal/models"
)

var _ list.Item = movieItem{}

// movieItem wraps [models.Movie] to implement [list.Item].
type movieItem struct {
	movie models.Movie
}

func (i movieItem) FilterValue() string { return i.movie.Title }
func (i movieItem) Title() string       { return i.movie.Title }
func (i movieItem) Description() string {
	desc := fmt.Sprintf("%s • %.1f/10", formatter.ReleaseYear(i.movie.ReleaseDate), i.movie.VoteAverage)
	if i.movie.Overview != "" {
		desc = fmt.Sprintf("%s • %s", desc, i.movie.Overview)
	}
	return desc
}

func movieItems(movies []models.Movie) []list.Item {
	items := make([]list.Item, len(movies))
	for i, movie := range movies {
		items[i] = movieItem{movie: movie}
	}
	return items
}

func selectedMovie(l list.Model) (models.Movie, bool) {
	selected := l.SelectedItem()
	if selected == nil {
		return models.Movie{}, false
	}
	item, ok := selected.(movieItem)
	return item.movie, ok
}
