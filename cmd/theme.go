package main

import (
	"context"
	"fmt"

	"github.com/nkhaled/moviedeck/internal/repositories"
	"github.com/nkhaled/moviedeck/internal/shared"
	"github.com/urfave/cli/v3"
)

// ThemeGet shows the stored color theme, falling back to the config default.
func (r *Runner) ThemeGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}

	theme := r.config.App.DefaultTheme
	if data, err := r.store.Get(ctx, repositories.KeyTheme); err == nil && len(data) > 0 {
		theme = string(data)
	}
	return r.writePlain("%s\n", theme)
}

// ThemeSet stores the color theme used by the terminal UI.
func (r *Runner) ThemeSet(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}

	theme := cmd.StringArg("name")
	if theme != "dark" && theme != "light" {
		return fmt.Errorf("%w: theme %q (supported: dark, light)", shared.ErrInvalidArgument, theme)
	}

	if err := r.store.Set(ctx, repositories.KeyTheme, []byte(theme)); err != nil {
		return fmt.Errorf("failed to store theme: %w", err)
	}
	return r.writePlain("✓ Theme set to %s\n", theme)
}
