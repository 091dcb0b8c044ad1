package main

import (
	"context"
	"fmt"

	"github.com/nkhaled/moviedeck/internal/formatter"
	"github.com/nkhaled/moviedeck/internal/tasks"
	"github.com/urfave/cli/v3"
)

// WishlistList shows the signed-in user's collection.
func (r *Runner) WishlistList(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(); err != nil {
		return err
	}

	items := r.wishlist.Items()

	switch {
	case cmd.Bool("json"):
		return r.writeJSON(items, cmd.Bool("pretty"))
	case cmd.Bool("csv"):
		data, err := formatter.MoviesToCSV(items)
		if err != nil {
			return err
		}
		return r.writePlain("%s", data)
	case cmd.Bool("markdown"):
		return r.writePlain("%s", formatter.MoviesToMarkdown("Wishlist", items))
	}

	r.writePlainHeader(fmt.Sprintf("Wishlist (%d movies)", len(items)))
	if len(items) == 0 {
		return r.writePlain("Nothing here yet. Add movies with 'moviedeck wishlist add <id>'\n")
	}
	return r.writePlain("%s", formatter.MoviesToText(items))
}

// WishlistAdd fetches the movie and adds it to the collection.
func (r *Runner) WishlistAdd(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(); err != nil {
		return err
	}
	if err := r.ensureCatalog(); err != nil {
		return err
	}

	movieID, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	detail, err := r.catalog.MovieDetails(ctx, movieID)
	if err != nil {
		return fmt.Errorf("failed to fetch movie %d: %w", movieID, err)
	}

	r.wishlist.Add(ctx, detail.AsMovie())
	return nil
}

// WishlistRemove removes a movie from the collection by ID.
func (r *Runner) WishlistRemove(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(); err != nil {
		return err
	}

	movieID, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	if !r.wishlist.Contains(movieID) {
		return r.writePlain("Movie %d is not in the wishlist\n", movieID)
	}
	r.wishlist.Remove(ctx, movieID)
	return nil
}

// WishlistToggle adds the movie if absent, removes it if present.
func (r *Runner) WishlistToggle(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(); err != nil {
		return err
	}

	movieID, err := movieIDArg(cmd)
	if err != nil {
		return err
	}

	if r.wishlist.Contains(movieID) {
		r.wishlist.Remove(ctx, movieID)
		return nil
	}

	if err := r.ensureCatalog(); err != nil {
		return err
	}
	detail, err := r.catalog.MovieDetails(ctx, movieID)
	if err != nil {
		return fmt.Errorf("failed to fetch movie %d: %w", movieID, err)
	}
	r.wishlist.Add(ctx, detail.AsMovie())
	return nil
}

// WishlistClear empties the collection.
func (r *Runner) WishlistClear(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(); err != nil {
		return err
	}

	r.wishlist.ClearAll(ctx)
	return nil
}

// WishlistRefresh re-fetches details for every wishlisted movie in the
// current language and applies the batch to the visible collection.
func (r *Runner) WishlistRefresh(ctx context.Context, cmd *cli.Command) error {
	if err := r.ensureSession(); err != nil {
		return err
	}
	if err := r.ensureCatalog(); err != nil {
		return err
	}

	items := r.wishlist.Items()
	if len(items) == 0 {
		return r.writePlain("Wishlist is empty, nothing to refresh\n")
	}

	progress := make(chan tasks.ProgressUpdate, 50)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("%s\n", update.Message)
		}
	}()

	result, err := r.engine.RefreshWishlist(ctx, progress, items, tasks.RefreshOpts{
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float("rate"),
	})
	close(progress)
	<-done
	if err != nil {
		return fmt.Errorf("refresh failed: %w", err)
	}

	r.wishlist.ReplaceItems(result.Movies)
	r.writePlain("✓ Refreshed %d movies (%d from cache)\n", result.FreshCount, result.FailedCount)
	return nil
}
