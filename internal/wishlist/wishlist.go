// package wishlist implements the per-user favorited movie collection.
//
// Each user's collection persists under its own storage key
// (wishlist.<userId>), so switching sessions swaps the visible collection
// without mixing users' data. Mutations update observable state first, then
// write the full collection back to durable storage.
package wishlist

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/nkhaled/moviedeck/internal/models"
	"github.com/nkhaled/moviedeck/internal/notify"
	"github.com/nkhaled/moviedeck/internal/repositories"
	"github.com/nkhaled/moviedeck/internal/shared"
)

// Store is the wishlist collection for the active user scope.
//
// All methods run on the UI goroutine. When no scope is active, mutating
// operations emit an error toast and request navigation to the login route
// instead of touching storage.
type Store struct {
	store    repositories.Store
	center   *notify.Center
	navigate func(route string)
	logger   *log.Logger

	userID      string
	items       []models.Movie
	subscribers []func([]models.Movie)
}

// Opts contains the dependencies for constructing a Store.
type Opts struct {
	Repository repositories.Store
	Center     *notify.Center
	Navigate   func(route string)
	Logger     *log.Logger
}

// NewStore creates an unscoped Store; no collection is visible until
// SwitchUser runs.
func NewStore(opts Opts) *Store {
	if opts.Navigate == nil {
		opts.Navigate = func(string) {}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Center == nil {
		opts.Center = notify.NewCenter()
	}
	return &Store{
		store:    opts.Repository,
		center:   opts.Center,
		navigate: opts.Navigate,
		logger:   opts.Logger,
	}
}

// SwitchUser sets the active scope and loads that user's persisted
// collection, replacing whatever was visible. Switching to the already
// active user reloads the same collection; no duplication can occur because
// the load replaces state wholesale.
func (s *Store) SwitchUser(ctx context.Context, userID string) error {
	var items []models.Movie
	if _, err := repositories.GetJSON(ctx, s.store, repositories.WishlistKey(userID), &items); err != nil {
		return err
	}

	s.userID = userID
	s.items = items
	s.publish()
	return nil
}

// Clear drops the active scope and empties observable state. Durable storage
// is untouched; the collection reappears on the next SwitchUser.
func (s *Store) Clear() {
	s.userID = ""
	s.items = nil
	s.publish()
}

// Items returns the visible collection in stored order.
func (s *Store) Items() []models.Movie {
	return s.items
}

// Count returns the number of visible items.
func (s *Store) Count() int {
	return len(s.items)
}

// Contains reports whether the visible collection holds id.
func (s *Store) Contains(id int) bool {
	for _, item := range s.items {
		if item.ID == id {
			return true
		}
	}
	return false
}

// Add appends movie to the collection and persists it. Adding an id that is
// already present emits an informational toast and changes nothing.
func (s *Store) Add(ctx context.Context, movie models.Movie) {
	if !s.checkScope() {
		return
	}

	if s.Contains(movie.ID) {
		s.center.Infof("Already in your wishlist")
		return
	}

	s.items = append(s.items, movie)
	s.publish()
	s.persist(ctx)
	s.center.Successf("Added to wishlist!")
}

// Remove deletes the entry matching id and persists the collection.
func (s *Store) Remove(ctx context.Context, id int) {
	if !s.checkScope() {
		return
	}

	for i, item := range s.items {
		if item.ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			break
		}
	}
	s.publish()
	s.persist(ctx)
	s.center.Warningf("Removed from wishlist")
}

// Toggle removes movie when present, adds it otherwise.
func (s *Store) Toggle(ctx context.Context, movie models.Movie) {
	if !s.checkScope() {
		return
	}

	if s.Contains(movie.ID) {
		s.Remove(ctx, movie.ID)
	} else {
		s.Add(ctx, movie)
	}
}

// ClearAll empties both observable state and durable storage for the active
// scope.
func (s *Store) ClearAll(ctx context.Context) {
	if !s.checkScope() {
		return
	}

	s.items = nil
	s.publish()
	s.persist(ctx)
	s.center.Infof("Wishlist cleared")
}

// ReplaceItems swaps the visible collection in one batch, e.g. after
// re-fetching localized details. Observable state only; the persisted
// snapshot keeps the data the items were added with.
func (s *Store) ReplaceItems(items []models.Movie) {
	if s.userID == "" {
		return
	}
	s.items = items
	s.publish()
}

// Subscribe registers fn to run synchronously after every visible change.
func (s *Store) Subscribe(fn func([]models.Movie)) {
	s.subscribers = append(s.subscribers, fn)
}

// checkScope guards mutations. Without an active scope it emits the login
// prompt and requests navigation to the login view.
func (s *Store) checkScope() bool {
	if s.userID != "" {
		return true
	}
	s.center.Errorf("Please login to add to wishlist")
	s.navigate(sessionRouteLogin)
	return false
}

// persist writes the full collection under the scope's key. Write failures
// are logged, not recovered; observable state has already moved on.
func (s *Store) persist(ctx context.Context) {
	if err := repositories.SetJSON(ctx, s.store, repositories.WishlistKey(s.userID), s.items); err != nil {
		s.logger.Error("failed to persist wishlist", "user", s.userID, "error", err)
	}
}

func (s *Store) publish() {
	for _, fn := range s.subscribers {
		fn(s.items)
	}
}

// sessionRouteLogin mirrors session.RouteLogin without importing the session
// package (session depends on this package's interface, not the reverse).
const sessionRouteLogin = "auth/login"
