package main

import (
	"context"
	"errors"
	"os"

	"github.com/nkhaled/moviedeck/internal/auth"
	"github.com/nkhaled/moviedeck/internal/language"
	"github.com/nkhaled/moviedeck/internal/notify"
	"github.com/nkhaled/moviedeck/internal/repositories"
	"github.com/nkhaled/moviedeck/internal/services"
	"github.com/nkhaled/moviedeck/internal/session"
	"github.com/nkhaled/moviedeck/internal/shared"
	"github.com/nkhaled/moviedeck/internal/wishlist"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx := context.Background()
	logger := shared.NewLogger(nil)

	config := shared.DefaultConfig()
	if _, err := os.Stat("config.toml"); err == nil {
		if loadedConfig, err := shared.LoadConfig("config.toml"); err == nil {
			config = loadedConfig
		}
	}

	center := notify.NewCenter()

	var store repositories.Store
	var languageService *language.Service
	var credentials *auth.CredentialStore
	var wishlistStore *wishlist.Store
	var sessionManager *session.Manager

	if db, err := shared.NewDatabase(config.Database.Path); err == nil {
		shared.ConfigureDatabase(db, config.Database.MaxOpenConns, config.Database.MaxIdleConns)
		if err := shared.RunMigrations(db); err != nil {
			logger.Warn("failed to run migrations", "error", err)
		}
		store = repositories.NewSQLiteStore(db)
	} else {
		logger.Warn("storage unavailable", "path", config.Database.Path, "error", err)
	}

	navigate := func(route string) {
		logger.Debug("navigation requested", "route", route)
	}

	if store != nil {
		languageService = language.NewService(ctx, store, repositories.KeyLanguage,
			config.App.SupportedLanguages, config.App.DefaultLanguage)
		credentials = auth.NewCredentialStore(store)
		wishlistStore = wishlist.NewStore(wishlist.Opts{
			Repository: store,
			Center:     center,
			Navigate:   navigate,
			Logger:     logger,
		})
		sessionManager = session.NewManager(ctx, session.Opts{
			Credentials: credentials,
			Store:       store,
			Wishlist:    wishlistStore,
			Navigate:    navigate,
			Logger:      logger,
		})
	}

	var languageProvider services.LanguageProvider
	if languageService != nil {
		languageProvider = languageService
	}

	var catalog services.Catalog
	var tmdb *services.TMDBService
	if svc, err := services.NewTMDBService(services.TMDBOpts{
		Config:   config.TMDB,
		Language: languageProvider,
	}); err == nil {
		catalog = svc
		tmdb = svc
	} else {
		logger.Warn("catalog unavailable", "error", err)
	}

	runner := NewRunner(RunnerOpts{
		Config:      config,
		Store:       store,
		Center:      center,
		Language:    languageService,
		Credentials: credentials,
		Session:     sessionManager,
		Wishlist:    wishlistStore,
		Catalog:     catalog,
		TMDB:        tmdb,
		Logger:      logger,
	})

	app := &cli.Command{
		Name:     "moviedeck",
		Usage:    "Browse movies, search TMDB, and keep a per-user wishlist",
		Version:  "0.1.0",
		Commands: runner.register(),
	}

	if err := app.Run(ctx, os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
