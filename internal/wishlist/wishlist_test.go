package wishlist

import (
	"context"
	"testing"

	"github.com/nkhaled/moviedeck/internal/models"
	"github.com/nkhaled/moviedeck/internal/notify"
	"github.com/nkhaled/moviedeck/internal/repositories"
	"github.com/nkhaled/moviedeck/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) (*Store, *notify.Center, repositories.Store, *[]string) {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, shared.RunMigrations(db))

	repo := repositories.NewSQLiteStore(db)
	center := notify.NewCenter()
	routes := []string{}
	store := NewStore(Opts{
		Repository: repo,
		Center:     center,
		Navigate:   func(route string) { routes = append(routes, route) },
	})
	return store, center, repo, &routes
}

func movie(id int, title string) models.Movie {
	return models.Movie{ID: id, Title: title}
}

func TestAdd(t *testing.T) {
	ctx := context.Background()

	t.Run("Appends And Persists", func(t *testing.T) {
		store, center, repo, _ := newTestStore(t)
		require.NoError(t, store.SwitchUser(ctx, "u1"))

		store.Add(ctx, movie(1, "First"))
		store.Add(ctx, movie(2, "Second"))

		assert.Equal(t, 2, store.Count())
		assert.True(t, store.Contains(1))
		assert.Equal(t, "First", store.Items()[0].Title)

		var persisted []models.Movie
		ok, err := repositories.GetJSON(ctx, repo, repositories.WishlistKey("u1"), &persisted)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Len(t, persisted, 2)

		toasts := center.Toasts()
		require.Len(t, toasts, 2)
		assert.Equal(t, notify.Success, toasts[0].Level)
		assert.Equal(t, "Added to wishlist!", toasts[0].Message)
	})

	t.Run("Duplicate Is Ignored", func(t *testing.T) {
		store, center, _, _ := newTestStore(t)
		require.NoError(t, store.SwitchUser(ctx, "u1"))

		store.Add(ctx, movie(1, "First"))
		store.Add(ctx, movie(1, "First"))

		assert.Equal(t, 1, store.Count())
		toasts := center.Toasts()
		require.Len(t, toasts, 2)
		assert.Equal(t, notify.Info, toasts[1].Level)
		assert.Equal(t, "Already in your wishlist", toasts[1].Message)
	})

	t.Run("Unauthenticated", func(t *testing.T) {
		store, center, repo, routes := newTestStore(t)

		store.Add(ctx, movie(1, "First"))

		assert.Zero(t, store.Count())
		toasts := center.Toasts()
		require.Len(t, toasts, 1)
		assert.Equal(t, notify.Error, toasts[0].Level)
		assert.Equal(t, "Please login to add to wishlist", toasts[0].Message)
		assert.Equal(t, []string{"auth/login"}, *routes)

		// Storage is untouched
		all, err := repo.List(ctx)
		require.NoError(t, err)
		assert.Empty(t, all)
	})
}

func TestRemove(t *testing.T) {
	ctx := context.Background()
	store, center, repo, _ := newTestStore(t)
	require.NoError(t, store.SwitchUser(ctx, "u1"))

	store.Add(ctx, movie(1, "First"))
	store.Add(ctx, movie(2, "Second"))
	store.Remove(ctx, 1)

	assert.False(t, store.Contains(1))
	assert.True(t, store.Contains(2))

	var persisted []models.Movie
	_, err := repositories.GetJSON(ctx, repo, repositories.WishlistKey("u1"), &persisted)
	require.NoError(t, err)
	require.Len(t, persisted, 1)
	assert.Equal(t, 2, persisted[0].ID)

	last := center.Toasts()[len(center.Toasts())-1]
	assert.Equal(t, notify.Warning, last.Level)
	assert.Equal(t, "Removed from wishlist", last.Message)
}

// Toggling twice returns the collection to its prior state.
func TestToggle(t *testing.T) {
	ctx := context.Background()
	store, _, _, _ := newTestStore(t)
	require.NoError(t, store.SwitchUser(ctx, "u1"))

	store.Toggle(ctx, movie(5, "Five"))
	assert.True(t, store.Contains(5))

	store.Toggle(ctx, movie(5, "Five"))
	assert.False(t, store.Contains(5))
	assert.Zero(t, store.Count())
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	store, _, repo, _ := newTestStore(t)
	require.NoError(t, store.SwitchUser(ctx, "u1"))

	store.Add(ctx, movie(1, "First"))
	store.ClearAll(ctx)

	assert.Zero(t, store.Count())

	var persisted []models.Movie
	ok, err := repositories.GetJSON(ctx, repo, repositories.WishlistKey("u1"), &persisted)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Empty(t, persisted)
}

// Switching users swaps collections without mixing them.
func TestSwitchUserIsolation(t *testing.T) {
	ctx := context.Background()
	store, _, _, _ := newTestStore(t)

	require.NoError(t, store.SwitchUser(ctx, "alice"))
	store.Add(ctx, movie(1, "Alice's Pick"))

	require.NoError(t, store.SwitchUser(ctx, "bob"))
	assert.Zero(t, store.Count())
	store.Add(ctx, movie(2, "Bob's Pick"))

	require.NoError(t, store.SwitchUser(ctx, "alice"))
	assert.Equal(t, 1, store.Count())
	assert.True(t, store.Contains(1))
	assert.False(t, store.Contains(2))
}

func TestClearLeavesStorage(t *testing.T) {
	ctx := context.Background()
	store, _, _, _ := newTestStore(t)
	require.NoError(t, store.SwitchUser(ctx, "u1"))
	store.Add(ctx, movie(1, "First"))

	store.Clear()
	assert.Zero(t, store.Count())

	require.NoError(t, store.SwitchUser(ctx, "u1"))
	assert.Equal(t, 1, store.Count())
}

func TestReplaceItems(t *testing.T) {
	ctx := context.Background()
	store, _, repo, _ := newTestStore(t)
	require.NoError(t, store.SwitchUser(ctx, "u1"))
	store.Add(ctx, movie(1, "Old Title"))

	var published [][]models.Movie
	store.Subscribe(func(items []models.Movie) { published = append(published, items) })

	store.ReplaceItems([]models.Movie{{ID: 1, Title: "Localized Title"}})
	assert.Equal(t, "Localized Title", store.Items()[0].Title)
	require.Len(t, published, 1)

	// The persisted snapshot keeps the original data
	var persisted []models.Movie
	_, err := repositories.GetJSON(ctx, repo, repositories.WishlistKey("u1"), &persisted)
	require.NoError(t, err)
	assert.Equal(t, "Old Title", persisted[0].Title)

	// Without a scope the replace is dropped
	store.Clear()
	store.ReplaceItems([]models.Movie{{ID: 9}})
	assert.Zero(t, store.Count())
}
