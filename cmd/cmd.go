// submodule cmd contains command definitions
package main

import "github.com/urfave/cli/v3"

// setupCommand handles setup operations for configuration and storage.
func setupCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "setup",
		Usage: "Initialize configuration and local storage",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
		},
		Action: r.Setup,
	}
}

// authCommand handles local account operations
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Local account operations",
		Commands: []*cli.Command{
			{
				Name:  "register",
				Usage: "Create an account and sign in",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "name",
						Usage:    "Display name",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Email address (unique per account)",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Password (6 characters minimum)",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "confirm",
						Usage: "Password confirmation (defaults to --password)",
					},
				},
				Action: r.AuthRegister,
			},
			{
				Name:  "login",
				Usage: "Sign in with email and password",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "email",
						Usage:    "Email address",
						Required: true,
					},
					&cli.StringFlag{
						Name:     "password",
						Aliases:  []string{"p"},
						Usage:    "Password",
						Required: true,
					},
				},
				Action: r.AuthLogin,
			},
			{
				Name:   "logout",
				Usage:  "Sign out and clear the persisted session",
				Action: r.AuthLogout,
			},
			{
				Name:  "whoami",
				Usage: "Show the signed-in user",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.AuthWhoami,
			},
			{
				Name:  "update",
				Usage: "Update the signed-in user's profile",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "name",
						Usage: "New display name",
					},
					&cli.StringFlag{
						Name:  "avatar",
						Usage: "New avatar URL",
					},
				},
				Action: r.AuthUpdate,
			},
		},
	}
}

// moviesCommand handles catalog browsing operations
func moviesCommand(r *Runner) *cli.Command {
	listingFlags := []cli.Flag{
		&cli.IntFlag{
			Name:  "page",
			Usage: "Result page to fetch",
			Value: 1,
		},
		&cli.BoolFlag{
			Name:  "json",
			Usage: "Output raw JSON",
		},
		&cli.BoolFlag{
			Name:  "pretty",
			Usage: "Pretty-print output",
		},
		&cli.BoolFlag{
			Name:  "csv",
			Usage: "Output CSV",
		},
		&cli.BoolFlag{
			Name:  "markdown",
			Usage: "Output Markdown",
		},
	}

	return &cli.Command{
		Name:    "movies",
		Aliases: []string{"m"},
		Usage:   "Browse and search the movie catalog",
		Commands: []*cli.Command{
			{
				Name:    "now-playing",
				Aliases: []string{"now"},
				Usage:   "Movies currently in theaters",
				Flags:   listingFlags,
				Action:  r.MoviesNowPlaying,
			},
			{
				Name:   "popular",
				Usage:  "Movies ordered by popularity",
				Flags:  listingFlags,
				Action: r.MoviesPopular,
			},
			{
				Name:    "top-rated",
				Aliases: []string{"top"},
				Usage:   "Movies ordered by rating",
				Flags:   listingFlags,
				Action:  r.MoviesTopRated,
			},
			{
				Name:  "genre",
				Usage: "Movies tagged with a genre ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  listingFlags,
				Action: r.MoviesByGenre,
			},
			{
				Name:  "genres",
				Usage: "List the genre taxonomy",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.MoviesGenres,
			},
			{
				Name:  "search",
				Usage: "Full-text title search",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "query"},
				},
				Flags:  listingFlags,
				Action: r.MoviesSearch,
			},
			{
				Name:  "detail",
				Usage: "Full record for a single movie",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.MoviesDetail,
			},
			{
				Name:  "recommend",
				Usage: "Movies related to the given one",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags:  listingFlags,
				Action: r.MoviesRecommend,
			},
			{
				Name:  "trailer",
				Usage: "Show or open the best available trailer",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "open",
						Usage: "Open the trailer in a browser",
					},
				},
				Action: r.MoviesTrailer,
			},
		},
	}
}

// wishlistCommand handles the signed-in user's collection
func wishlistCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:    "wishlist",
		Aliases: []string{"wl"},
		Usage:   "Manage the signed-in user's wishlist",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "Show the wishlist",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
					&cli.BoolFlag{
						Name:  "csv",
						Usage: "Output CSV",
					},
					&cli.BoolFlag{
						Name:  "markdown",
						Usage: "Output Markdown",
					},
				},
				Action: r.WishlistList,
			},
			{
				Name:  "add",
				Usage: "Add a movie by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.WishlistAdd,
			},
			{
				Name:    "remove",
				Aliases: []string{"rm"},
				Usage:   "Remove a movie by ID",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.WishlistRemove,
			},
			{
				Name:  "toggle",
				Usage: "Add the movie if absent, remove it if present",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "id"},
				},
				Action: r.WishlistToggle,
			},
			{
				Name:   "clear",
				Usage:  "Empty the wishlist",
				Action: r.WishlistClear,
			},
			{
				Name:  "refresh",
				Usage: "Re-fetch details for every wishlisted movie",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "workers",
						Usage: "Concurrent workers",
						Value: 5,
					},
					&cli.FloatFlag{
						Name:  "rate",
						Usage: "Requests per second",
						Value: 5.0,
					},
				},
				Action: r.WishlistRefresh,
			},
		},
	}
}

// langCommand handles the catalog language preference
func langCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "lang",
		Usage: "Manage the catalog language",
		Commands: []*cli.Command{
			{
				Name:   "get",
				Usage:  "Show the active language",
				Action: r.LangGet,
			},
			{
				Name:  "set",
				Usage: "Switch the active language",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "code"},
				},
				Action: r.LangSet,
			},
			{
				Name:   "list",
				Usage:  "List supported languages",
				Action: r.LangList,
			},
		},
	}
}

// themeCommand handles the terminal UI color theme
func themeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "theme",
		Usage: "Manage the terminal UI color theme",
		Commands: []*cli.Command{
			{
				Name:   "get",
				Usage:  "Show the active theme",
				Action: r.ThemeGet,
			},
			{
				Name:  "set",
				Usage: "Switch between dark and light",
				Arguments: []cli.Argument{
					&cli.StringArg{Name: "name"},
				},
				Action: r.ThemeSet,
			},
		},
	}
}

// tuiCommand launches the interactive terminal UI
func tuiCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:   "tui",
		Usage:  "Launch the interactive terminal UI",
		Action: r.TUI,
	}
}
