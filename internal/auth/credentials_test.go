package auth

import (
	"context"
	"strings"
	"testing"

	"github.com/nkhaled/moviedeck/internal/models"
	"github.com/nkhaled/moviedeck/internal/repositories"
	"github.com/nkhaled/moviedeck/internal/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *CredentialStore {
	t.Helper()

	db, err := shared.NewDatabase(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	require.NoError(t, shared.RunMigrations(db))
	return NewCredentialStore(repositories.NewSQLiteStore(db))
}

func validRegistration() models.RegisterData {
	return models.RegisterData{
		Name:            "Nadia",
		Email:           "nadia@example.com",
		Password:        "secret1",
		ConfirmPassword: "secret1",
	}
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := newTestStore(t)

		user, err := store.RegisterUser(ctx, validRegistration())
		require.NoError(t, err)
		require.NotNil(t, user)

		assert.NotEmpty(t, user.ID)
		assert.Equal(t, "Nadia", user.Name)
		assert.Equal(t, "nadia@example.com", user.Email)
		assert.False(t, user.RegisteredAt.IsZero())
		assert.True(t, strings.HasPrefix(user.Avatar, "https://ui-avatars.com/api/?name=Nadia"))

		users, err := store.Users(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 1)
	})

	t.Run("Empty Fields", func(t *testing.T) {
		store := newTestStore(t)

		data := validRegistration()
		data.Name = "   "
		_, err := store.RegisterUser(ctx, data)
		assert.ErrorIs(t, err, shared.ErrValidation)
	})

	t.Run("Password Mismatch", func(t *testing.T) {
		store := newTestStore(t)

		data := validRegistration()
		data.ConfirmPassword = "different"
		_, err := store.RegisterUser(ctx, data)
		require.ErrorIs(t, err, shared.ErrValidation)
		assert.Contains(t, err.Error(), "do not match")
	})

	t.Run("Short Password", func(t *testing.T) {
		store := newTestStore(t)

		data := validRegistration()
		data.Password = "abc"
		data.ConfirmPassword = "abc"
		_, err := store.RegisterUser(ctx, data)
		require.ErrorIs(t, err, shared.ErrValidation)
		assert.Contains(t, err.Error(), "at least 6")
	})

	t.Run("Duplicate Email", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.RegisterUser(ctx, validRegistration())
		require.NoError(t, err)

		data := validRegistration()
		data.Name = "Someone Else"
		_, err = store.RegisterUser(ctx, data)
		assert.ErrorIs(t, err, shared.ErrDuplicateEmail)
	})
}

func TestAuthenticate(t *testing.T) {
	ctx := context.Background()

	t.Run("Success", func(t *testing.T) {
		store := newTestStore(t)
		registered, err := store.RegisterUser(ctx, validRegistration())
		require.NoError(t, err)

		user, err := store.Authenticate(ctx, "nadia@example.com", "secret1")
		require.NoError(t, err)
		assert.Equal(t, registered.ID, user.ID)
	})

	t.Run("Wrong Password", func(t *testing.T) {
		store := newTestStore(t)
		_, err := store.RegisterUser(ctx, validRegistration())
		require.NoError(t, err)

		_, err = store.Authenticate(ctx, "nadia@example.com", "not-secret")
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	})

	t.Run("Unknown Email", func(t *testing.T) {
		store := newTestStore(t)

		_, err := store.Authenticate(ctx, "nobody@example.com", "secret1")
		assert.ErrorIs(t, err, shared.ErrInvalidCredentials)
	})
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	user, err := store.RegisterUser(ctx, validRegistration())
	require.NoError(t, err)

	updated := *user
	updated.Name = "Nadia K"
	require.NoError(t, store.UpdateUser(ctx, updated))

	users, err := store.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, "Nadia K", users[0].Name)

	// Credentials survive a record update
	_, err = store.Authenticate(ctx, "nadia@example.com", "secret1")
	assert.NoError(t, err)

	t.Run("Unknown ID", func(t *testing.T) {
		ghost := updated
		ghost.ID = "no-such-user"
		err := store.UpdateUser(ctx, ghost)
		assert.Error(t, err)
	})
}

func TestAvatarURL(t *testing.T) {
	url := AvatarURL("Jane Doe")
	assert.Contains(t, url, "name=Jane+Doe")
	assert.Contains(t, url, "background=E50914")
}
