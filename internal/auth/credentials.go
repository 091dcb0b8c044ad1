// package auth implements the local credential store.
//
// User records live under users.all and password digests under
// credentials.all, keyed by email. Passwords are digested with argon2id;
// the digest format is an internal detail, not a compatibility surface.
package auth

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/nkhaled/moviedeck/internal/cryptox"
	"github.com/nkhaled/moviedeck/internal/models"
	"github.com/nkhaled/moviedeck/internal/repositories"
	"github.com/nkhaled/moviedeck/internal/shared"
)

const minPasswordLength = 6

// CredentialStore persists user records and password digests.
type CredentialStore struct {
	store repositories.Store
}

// NewCredentialStore creates a CredentialStore backed by the given repository.
func NewCredentialStore(store repositories.Store) *CredentialStore {
	return &CredentialStore{store: store}
}

// RegisterUser validates the registration input, creates the user, and stores
// a digest of the password keyed by email.
//
// Fails with [shared.ErrValidation] for empty fields, mismatched
// confirmation, or a password shorter than 6 characters, and with
// [shared.ErrDuplicateEmail] when the email is already registered.
func (c *CredentialStore) RegisterUser(ctx context.Context, data models.RegisterData) (*models.User, error) {
	if strings.TrimSpace(data.Name) == "" || strings.TrimSpace(data.Email) == "" || data.Password == "" {
		return nil, fmt.Errorf("%w: all fields are required", shared.ErrValidation)
	}
	if data.Password != data.ConfirmPassword {
		return nil, fmt.Errorf("%w: passwords do not match", shared.ErrValidation)
	}
	if len(data.Password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", shared.ErrValidation, minPasswordLength)
	}

	users, err := c.Users(ctx)
	if err != nil {
		return nil, err
	}

	for _, existing := range users {
		if existing.Email == data.Email {
			return nil, fmt.Errorf("%w: %s", shared.ErrDuplicateEmail, data.Email)
		}
	}

	user := models.User{
		ID:           shared.GenerateID(),
		Name:         data.Name,
		Email:        data.Email,
		RegisteredAt: time.Now(),
		Avatar:       AvatarURL(data.Name),
	}

	digest, err := cryptox.HashPassword(data.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to digest password: %w", err)
	}

	users = append(users, user)
	if err := repositories.SetJSON(ctx, c.store, repositories.KeyUsers, users); err != nil {
		return nil, err
	}

	credentials, err := c.credentials(ctx)
	if err != nil {
		return nil, err
	}
	credentials[data.Email] = digest
	if err := repositories.SetJSON(ctx, c.store, repositories.KeyCredentials, credentials); err != nil {
		return nil, err
	}

	return &user, nil
}

// Authenticate verifies email and password against stored credentials.
// Returns [shared.ErrInvalidCredentials] for an unknown email or a digest
// mismatch; the two cases are indistinguishable to the caller.
func (c *CredentialStore) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	users, err := c.Users(ctx)
	if err != nil {
		return nil, err
	}

	var user *models.User
	for i := range users {
		if users[i].Email == email {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, shared.ErrInvalidCredentials
	}

	credentials, err := c.credentials(ctx)
	if err != nil {
		return nil, err
	}

	digest, ok := credentials[email]
	if !ok || !cryptox.VerifyPassword(password, digest) {
		return nil, shared.ErrInvalidCredentials
	}

	return user, nil
}

// UpdateUser replaces the stored record matching user.ID in the user list.
func (c *CredentialStore) UpdateUser(ctx context.Context, user models.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrValidation, err)
	}

	users, err := c.Users(ctx)
	if err != nil {
		return err
	}

	for i := range users {
		if users[i].ID == user.ID {
			users[i] = user
			return repositories.SetJSON(ctx, c.store, repositories.KeyUsers, users)
		}
	}

	return fmt.Errorf("user not found: %s", user.ID)
}

// Users returns the stored user list, empty when none have registered.
func (c *CredentialStore) Users(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if _, err := repositories.GetJSON(ctx, c.store, repositories.KeyUsers, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (c *CredentialStore) credentials(ctx context.Context) (map[string]string, error) {
	credentials := make(map[string]string)
	if _, err := repositories.GetJSON(ctx, c.store, repositories.KeyCredentials, &credentials); err != nil {
		return nil, err
	}
	return credentials, nil
}

// AvatarURL derives a placeholder avatar image URL from the user's name.
func AvatarURL(name string) string {
	return "https://ui-avatars.com/api/?name=" + url.QueryEscape(name) + "&background=E50914&color=fff&size=200"
}
