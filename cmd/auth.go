package main

import (
	"context"
	"fmt"

	"github.com/nkhaled/moviedeck/internal/models"
	"github.com/nkhaled/moviedeck/internal/shared"
	"github.com/urfave/cli/v3"
)

// AuthRegister creates an account and signs in.
func (r *Runner) AuthRegister(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}

	password := cmd.String("password")
	confirm := cmd.String("confirm")
	if confirm == "" {
		confirm = password
	}

	result := r.session.Register(ctx, models.RegisterData{
		Name:            cmd.String("name"),
		Email:           cmd.String("email"),
		Password:        password,
		ConfirmPassword: confirm,
	})
	if !result.Success {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, result.Message)
	}

	r.writePlain("✓ Registered and signed in as %s <%s>\n", result.User.Name, result.User.Email)
	return nil
}

// AuthLogin signs in with email and password.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}

	result := r.session.Login(ctx, models.LoginCredentials{
		Email:    cmd.String("email"),
		Password: cmd.String("password"),
	})
	if !result.Success {
		return fmt.Errorf("%w: %s", shared.ErrInvalidCredentials, result.Message)
	}

	r.writePlain("✓ Signed in as %s <%s>\n", result.User.Name, result.User.Email)
	r.writePlain("Wishlist: %d movies\n", r.wishlist.Count())
	return nil
}

// AuthLogout signs out and clears the persisted session.
func (r *Runner) AuthLogout(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}

	if !r.session.IsAuthenticated() {
		r.writePlain("Not signed in\n")
		return nil
	}

	r.session.Logout(ctx)
	r.writePlain("✓ Signed out\n")
	return nil
}

// AuthWhoami shows the signed-in user.
func (r *Runner) AuthWhoami(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}

	user := r.session.CurrentUser()
	if user == nil {
		r.writePlain("Not signed in\n")
		return nil
	}

	if cmd.Bool("json") {
		return r.writeJSON(user, cmd.Bool("pretty"))
	}

	r.writePlainHeader(user.Name)
	r.writePlain("Email: %s\n", user.Email)
	r.writePlain("Member since: %s\n", user.RegisteredAt.Format("2006-01-02"))
	if user.Avatar != "" {
		r.writePlain("Avatar: %s\n", user.Avatar)
	}
	return nil
}

// AuthUpdate updates the signed-in user's profile.
func (r *Runner) AuthUpdate(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(); err != nil {
		return err
	}

	var patch models.UserPatch
	if cmd.IsSet("name") {
		name := cmd.String("name")
		patch.Name = &name
	}
	if cmd.IsSet("avatar") {
		avatar := cmd.String("avatar")
		patch.Avatar = &avatar
	}
	if patch.Name == nil && patch.Avatar == nil {
		return fmt.Errorf("%w: nothing to update, pass --name or --avatar", shared.ErrMissingArgument)
	}

	result := r.session.UpdateProfile(ctx, patch)
	if !result.Success {
		return fmt.Errorf("%w: %s", shared.ErrInvalidInput, result.Message)
	}

	r.writePlain("✓ Profile updated: %s\n", result.User.Name)
	return nil
}
