package ui

import (
	"github.com/nkhaled/moviedeck/internal/models"
	"github.com/nkhaled/moviedeck/internal/notify"
	"github.com/nkhaled/moviedeck/internal/tasks"
)

type moviesFetchedMsg struct {
	feed Feed
	page *models.MoviePage
	err  error
}

type detailFetchedMsg struct {
	detail *models.MovieDetail
	videos *models.VideoList
	err    error
}

type searchResultMsg tasks.SearchResult

type progressUpdateMsg tasks.ProgressUpdate

type refreshCompleteMsg struct {
	result *tasks.RefreshResult
	err    error
}

type toastMsg notify.Toast

// toastExpiredMsg clears the footer toast after its display duration.
type toastExpiredMsg struct {
	id int
}
