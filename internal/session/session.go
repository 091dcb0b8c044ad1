// package session tracks the currently authenticated identity.
//
// The manager is the hub between the credential store and the wishlist: a
// successful login or registration switches the wishlist to the new user's
// collection, logout clears it. State changes publish synchronously to
// subscribers; there is no hidden dependency tracking.
package session

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/nkhaled/moviedeck/internal/auth"
	"github.com/nkhaled/moviedeck/internal/models"
	"github.com/nkhaled/moviedeck/internal/repositories"
	"github.com/nkhaled/moviedeck/internal/shared"
)

// RouteLogin is the navigation target requested after logout.
const RouteLogin = "auth/login"

// UserScoped is the wishlist-side contract the manager drives.
type UserScoped interface {
	// SwitchUser loads the collection persisted for userID.
	SwitchUser(ctx context.Context, userID string) error
	// Clear empties in-memory state without touching durable storage.
	Clear()
}

// Manager holds the session as observable state.
//
// States are anonymous (nil user) and authenticated; transitions happen only
// through Login, Register, and Logout. All methods run on the UI goroutine.
type Manager struct {
	credentials *auth.CredentialStore
	store       repositories.Store
	wishlist    UserScoped
	navigate    func(route string)
	logger      *log.Logger

	current     *models.User
	subscribers []func(*models.User)
}

// Opts contains the dependencies for constructing a Manager.
// All cross-component references are passed here explicitly; the manager
// never looks services up lazily.
type Opts struct {
	Credentials *auth.CredentialStore
	Store       repositories.Store
	Wishlist    UserScoped
	Navigate    func(route string)
	Logger      *log.Logger
}

// NewManager creates a Manager and restores any persisted session: when
// session.user holds a user, the state starts authenticated and the wishlist
// is switched to that user's collection.
func NewManager(ctx context.Context, opts Opts) *Manager {
	if opts.Navigate == nil {
		opts.Navigate = func(string) {}
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	m := &Manager{
		credentials: opts.Credentials,
		store:       opts.Store,
		wishlist:    opts.Wishlist,
		navigate:    opts.Navigate,
		logger:      opts.Logger,
	}

	var user models.User
	ok, err := repositories.GetJSON(ctx, m.store, repositories.KeySessionUser, &user)
	if err != nil {
		m.logger.Warn("failed to restore session", "error", err)
		return m
	}
	if ok {
		m.current = &user
		if m.wishlist != nil {
			if err := m.wishlist.SwitchUser(ctx, user.ID); err != nil {
				m.logger.Warn("failed to load wishlist for restored session", "error", err)
			}
		}
	}

	return m
}

// CurrentUser returns the authenticated user, or nil when anonymous.
func (m *Manager) CurrentUser() *models.User {
	return m.current
}

// IsAuthenticated reports whether a session is active.
func (m *Manager) IsAuthenticated() bool {
	return m.current != nil
}

// Subscribe registers fn to run synchronously on every session change.
// The argument is the new user, nil on logout.
func (m *Manager) Subscribe(fn func(*models.User)) {
	m.subscribers = append(m.subscribers, fn)
}

// Login authenticates the credentials and, on success, sets session state,
// persists it, and switches the wishlist scope. On failure the session is
// left unchanged and the result carries a user-facing message.
func (m *Manager) Login(ctx context.Context, credentials models.LoginCredentials) models.AuthResult {
	user, err := m.credentials.Authenticate(ctx, credentials.Email, credentials.Password)
	if err != nil {
		if errors.Is(err, shared.ErrInvalidCredentials) {
			return models.Failure("Invalid email or password")
		}
		m.logger.Error("login failed", "error", err)
		return models.Failure("Login failed, please try again")
	}

	if err := m.setCurrentUser(ctx, user); err != nil {
		m.logger.Warn("failed to persist session", "error", err)
	}
	return models.Succeeded(user)
}

// Register creates the account and behaves like Login on success (auto-login).
func (m *Manager) Register(ctx context.Context, data models.RegisterData) models.AuthResult {
	user, err := m.credentials.RegisterUser(ctx, data)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrValidation):
			return models.Failure(validationMessage(err))
		case errors.Is(err, shared.ErrDuplicateEmail):
			return models.Failure("Email already registered")
		default:
			m.logger.Error("registration failed", "error", err)
			return models.Failure("Registration failed, please try again")
		}
	}

	if err := m.setCurrentUser(ctx, user); err != nil {
		m.logger.Warn("failed to persist session", "error", err)
	}
	return models.Succeeded(user)
}

// Logout clears wishlist state, the session, its persisted record, and
// requests navigation to the login route. A no-op when already anonymous.
func (m *Manager) Logout(ctx context.Context) {
	if m.current == nil {
		return
	}

	if m.wishlist != nil {
		m.wishlist.Clear()
	}

	m.current = nil
	if err := m.store.Delete(ctx, repositories.KeySessionUser); err != nil {
		m.logger.Warn("failed to clear persisted session", "error", err)
	}
	m.publish()
	m.navigate(RouteLogin)
}

// UpdateProfile merges the patch into the current user and persists the
// change to both the user list and the session record.
func (m *Manager) UpdateProfile(ctx context.Context, patch models.UserPatch) models.AuthResult {
	if m.current == nil {
		return models.Failure("No user logged in")
	}

	updated := m.current.Merge(patch)
	if err := m.credentials.UpdateUser(ctx, updated); err != nil {
		m.logger.Error("profile update failed", "error", err)
		return models.Failure("Could not update profile")
	}

	if err := m.setCurrentUser(ctx, &updated); err != nil {
		m.logger.Warn("failed to persist session", "error", err)
	}
	return models.Succeeded(&updated)
}

// setCurrentUser updates observable state, persists the session record, and
// switches the wishlist scope.
func (m *Manager) setCurrentUser(ctx context.Context, user *models.User) error {
	m.current = user
	m.publish()

	if m.wishlist != nil {
		if err := m.wishlist.SwitchUser(ctx, user.ID); err != nil {
			m.logger.Warn("failed to switch wishlist scope", "error", err)
		}
	}

	return repositories.SetJSON(ctx, m.store, repositories.KeySessionUser, user)
}

func (m *Manager) publish() {
	for _, fn := range m.subscribers {
		fn(m.current)
	}
}

// validationMessage strips the sentinel prefix for display.
func validationMessage(err error) string {
	msg := err.Error()
	prefix := shared.ErrValidation.Error() + ": "
	if len(msg) > len(prefix) && msg[:len(prefix)] == prefix {
		return capitalize(msg[len(prefix):])
	}
	return "Invalid input"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	if s[0] >= 'a' && s[0] <= 'z' {
		return string(s[0]-'a'+'A') + s[1:]
	}
	return s
}
