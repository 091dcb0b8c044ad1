package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/nkhaled/moviedeck/internal/shared"
	"github.com/urfave/cli/v3"
)

// LangGet shows the active catalog language.
func (r *Runner) LangGet(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}

	code := r.language.Current()
	direction := "ltr"
	if r.language.IsRTL() {
		direction = "rtl"
	}
	return r.writePlain("%s (%s, %s)\n", code, r.language.Name(code), direction)
}

// LangSet switches the active catalog language.
func (r *Runner) LangSet(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}

	code := cmd.StringArg("code")
	if code == "" {
		return fmt.Errorf("%w: language code", shared.ErrMissingArgument)
	}
	if !r.language.Supports(code) {
		return fmt.Errorf("%w: unsupported language %q (supported: %s)",
			shared.ErrInvalidArgument, code, strings.Join(r.language.Supported(), ", "))
	}

	if err := r.language.Set(ctx, code); err != nil {
		return fmt.Errorf("failed to switch language: %w", err)
	}

	r.writePlain("✓ Language set to %s (%s)\n", code, r.language.Name(code))
	if r.session != nil && r.session.IsAuthenticated() && r.wishlist.Count() > 0 {
		r.writePlain("Run 'moviedeck wishlist refresh' to localize your wishlist\n")
	}
	return nil
}

// LangList lists the supported languages, marking the active one.
func (r *Runner) LangList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}

	current := r.language.Current()
	for _, code := range r.language.Supported() {
		marker := " "
		if code == current {
			marker = "*"
		}
		r.writePlain("%s %s  %s\n", marker, code, r.language.Name(code))
	}
	return nil
}
