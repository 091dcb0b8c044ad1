package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/nkhaled/moviedeck/internal/repositories"
	"github.com/nkhaled/moviedeck/internal/shared"
	"github.com/nkhaled/moviedeck/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for browsing the catalog.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureStore(); err != nil {
		return err
	}
	if err := r.ensureCatalog(); err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/moviedeck-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)
	r.quiet = true
	defer func() { r.quiet = false }()

	theme := r.config.App.DefaultTheme
	if data, err := r.store.Get(ctx, repositories.KeyTheme); err == nil && len(data) > 0 {
		theme = string(data)
	}

	model := ui.NewModel(ctx, ui.Opts{
		Catalog:  r.catalog,
		Session:  r.session,
		Wishlist: r.wishlist,
		Language: r.language,
		Center:   r.center,
		Engine:   r.engine,
		Theme:    theme,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
