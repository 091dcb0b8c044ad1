package main

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/nkhaled/moviedeck/internal/auth"
	"github.com/nkhaled/moviedeck/internal/language"
	"github.com/nkhaled/moviedeck/internal/models"
	"github.com/nkhaled/moviedeck/internal/notify"
	"github.com/nkhaled/moviedeck/internal/repositories"
	"github.com/nkhaled/moviedeck/internal/services"
	"github.com/nkhaled/moviedeck/internal/session"
	"github.com/nkhaled/moviedeck/internal/shared"
	tu "github.com/nkhaled/moviedeck/internal/testing"
	"github.com/nkhaled/moviedeck/internal/wishlist"
	"github.com/urfave/cli/v3"
)

// newTestApp wires a full Runner over in-memory storage and a mock catalog,
// returning the CLI app and the output buffer.
func newTestApp(t *testing.T, catalog *tu.MockCatalog) (*cli.Command, *bytes.Buffer) {
	t.Helper()
	ctx := context.Background()

	db, err := shared.NewDatabase(":memory:")
	if err != nil {
		t.Fatalf("failed to create database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := shared.RunMigrations(db); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	store := repositories.NewSQLiteStore(db)
	center := notify.NewCenter()
	config := shared.DefaultConfig()

	languageService := language.NewService(ctx, store, repositories.KeyLanguage,
		config.App.SupportedLanguages, config.App.DefaultLanguage)
	credentials := auth.NewCredentialStore(store)
	wishlistStore := wishlist.NewStore(wishlist.Opts{Repository: store, Center: center})
	sessionManager := session.NewManager(ctx, session.Opts{
		Credentials: credentials,
		Store:       store,
		Wishlist:    wishlistStore,
	})

	output := &bytes.Buffer{}
	runner := NewRunner(RunnerOpts{
		Config:      config,
		Store:       store,
		Center:      center,
		Language:    languageService,
		Credentials: credentials,
		Session:     sessionManager,
		Wishlist:    wishlistStore,
		Catalog:     catalog,
		Output:      output,
	})

	app := &cli.Command{
		Name:     "moviedeck",
		Commands: runner.register(),
	}
	return app, output
}

func run(t *testing.T, app *cli.Command, args ...string) error {
	t.Helper()
	return app.Run(context.Background(), append([]string{"moviedeck"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with nil config uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Config: nil})

			if runner.config == nil {
				t.Error("expected default config to be set")
			}
		})

		t.Run("with nil logger uses default", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Logger: nil})

			if runner.logger == nil {
				t.Error("expected default logger to be set")
			}
		})

		t.Run("with nil output uses stdout", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: nil})

			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
		})

		t.Run("prints toasts to output", func(t *testing.T) {
			output := &bytes.Buffer{}
			center := notify.NewCenter()
			NewRunner(RunnerOpts{Output: output, Center: center})

			center.Successf("saved")
			center.Errorf("boom")

			result := output.String()
			if !strings.Contains(result, "✓ saved") {
				t.Errorf("expected success toast, got %q", result)
			}
			if !strings.Contains(result, "✗ boom") {
				t.Errorf("expected error toast, got %q", result)
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes formatted JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, true)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if !strings.Contains(result, `"key": "value"`) {
				t.Errorf("expected formatted JSON, got %s", result)
			}
			if !strings.HasSuffix(result, "\n") {
				t.Error("expected output to end with newline")
			}
		})

		t.Run("writes compact JSON successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			expected := `{"key":"value"}` + "\n"
			if result != expected {
				t.Errorf("expected %q, got %q", expected, result)
			}
		})

		t.Run("handles marshal error with non-serializable data", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			// channels cannot be marshaled to JSON
			data := make(chan int)
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error for non-serializable data")
			}
			if !strings.Contains(err.Error(), "failed to marshal JSON") {
				t.Errorf("expected marshal error, got %v", err)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			data := map[string]string{"key": "value"}
			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})

		t.Run("handles newline write failure", func(t *testing.T) {
			data := map[string]string{"key": "value"}
			limitedWriter := tu.NewLimitedWriter(1, 0, &bytes.Buffer{})
			runner := NewRunner(RunnerOpts{Output: &limitedWriter})

			err := runner.writeJSON(data, false)

			if err == nil {
				t.Fatal("expected error writing newline")
			}
			if !strings.Contains(err.Error(), "failed to write newline") {
				t.Errorf("expected newline write error, got %v", err)
			}
		})
	})

	t.Run("writePlain", func(t *testing.T) {
		t.Run("writes plain text successfully", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			err := runner.writePlain("hello %s", "world")

			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			result := output.String()
			if result != "hello world" {
				t.Errorf("expected 'hello world', got %q", result)
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			failing := &tu.FWriter{}
			runner := NewRunner(RunnerOpts{Output: failing})

			err := runner.writePlain("test")

			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write error, got %v", err)
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}

		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})
}

func TestAuthCommands(t *testing.T) {
	registerArgs := []string{"auth", "register", "--name", "Nadia", "--email", "nadia@example.com", "--password", "secret1"}

	t.Run("register signs in", func(t *testing.T) {
		app, output := newTestApp(t, &tu.MockCatalog{})

		if err := run(t, app, registerArgs...); err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if !strings.Contains(output.String(), "Registered and signed in as Nadia") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("register rejects short password", func(t *testing.T) {
		app, _ := newTestApp(t, &tu.MockCatalog{})

		err := run(t, app, "auth", "register", "--name", "Nadia",
			"--email", "nadia@example.com", "--password", "abc")
		if err == nil {
			t.Fatal("expected validation error")
		}
		if !strings.Contains(err.Error(), "at least 6") {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("whoami after login", func(t *testing.T) {
		app, output := newTestApp(t, &tu.MockCatalog{})

		if err := run(t, app, registerArgs...); err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if err := run(t, app, "auth", "logout"); err != nil {
			t.Fatalf("logout failed: %v", err)
		}
		if err := run(t, app, "auth", "login", "--email", "nadia@example.com", "--password", "secret1"); err != nil {
			t.Fatalf("login failed: %v", err)
		}

		output.Reset()
		if err := run(t, app, "auth", "whoami"); err != nil {
			t.Fatalf("whoami failed: %v", err)
		}
		if !strings.Contains(output.String(), "nadia@example.com") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("login with wrong password fails", func(t *testing.T) {
		app, _ := newTestApp(t, &tu.MockCatalog{})

		if err := run(t, app, registerArgs...); err != nil {
			t.Fatalf("register failed: %v", err)
		}
		err := run(t, app, "auth", "login", "--email", "nadia@example.com", "--password", "wrong-password")
		if err == nil {
			t.Fatal("expected login failure")
		}
	})

	t.Run("update profile", func(t *testing.T) {
		app, output := newTestApp(t, &tu.MockCatalog{})

		if err := run(t, app, registerArgs...); err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if err := run(t, app, "auth", "update", "--name", "Nadia K"); err != nil {
			t.Fatalf("update failed: %v", err)
		}
		if !strings.Contains(output.String(), "Profile updated: Nadia K") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})
}

func TestMoviesCommands(t *testing.T) {
	catalog := &tu.MockCatalog{
		PopularFn: func(ctx context.Context, page int) (*models.MoviePage, error) {
			return &models.MoviePage{
				Page:       page,
				TotalPages: 1,
				Results:    []models.Movie{{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30", VoteAverage: 8.2}},
			}, nil
		},
		VideosFn: func(ctx context.Context, movieID int) (*models.VideoList, error) {
			return &models.VideoList{ID: movieID, Results: []models.Video{
				{Key: "abc123", Name: "Official Trailer", Site: "YouTube", Type: "Trailer", Official: true},
			}}, nil
		},
	}

	t.Run("popular prints listing", func(t *testing.T) {
		app, output := newTestApp(t, catalog)

		if err := run(t, app, "movies", "popular"); err != nil {
			t.Fatalf("popular failed: %v", err)
		}
		if !strings.Contains(output.String(), "The Matrix") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("popular as json", func(t *testing.T) {
		app, output := newTestApp(t, catalog)

		if err := run(t, app, "movies", "popular", "--json"); err != nil {
			t.Fatalf("popular failed: %v", err)
		}
		if !strings.Contains(output.String(), `"title":"The Matrix"`) {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("search requires a query", func(t *testing.T) {
		app, _ := newTestApp(t, catalog)

		if err := run(t, app, "movies", "search"); err == nil {
			t.Fatal("expected missing argument error")
		}
	})

	t.Run("detail rejects non-numeric id", func(t *testing.T) {
		app, _ := newTestApp(t, catalog)

		if err := run(t, app, "movies", "detail", "abc"); err == nil {
			t.Fatal("expected invalid argument error")
		}
	})

	t.Run("trailer prints embed url", func(t *testing.T) {
		app, output := newTestApp(t, catalog)

		if err := run(t, app, "movies", "trailer", "603"); err != nil {
			t.Fatalf("trailer failed: %v", err)
		}
		if !strings.Contains(output.String(), services.YouTubeURL("abc123")) {
			t.Errorf("unexpected output: %s", output.String())
		}
	})
}

func TestWishlistCommands(t *testing.T) {
	catalog := &tu.MockCatalog{
		MovieDetailsFn: func(ctx context.Context, movieID int) (*models.MovieDetail, error) {
			return &models.MovieDetail{ID: movieID, Title: fmt.Sprintf("Movie %d", movieID)}, nil
		},
	}
	registerArgs := []string{"auth", "register", "--name", "Nadia", "--email", "nadia@example.com", "--password", "secret1"}

	t.Run("requires a session", func(t *testing.T) {
		app, _ := newTestApp(t, catalog)

		if err := run(t, app, "wishlist", "list"); err == nil {
			t.Fatal("expected auth required error")
		}
	})

	t.Run("add list remove", func(t *testing.T) {
		app, output := newTestApp(t, catalog)

		if err := run(t, app, registerArgs...); err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if err := run(t, app, "wishlist", "add", "603"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		output.Reset()
		if err := run(t, app, "wishlist", "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.Contains(output.String(), "Movie 603") {
			t.Errorf("unexpected output: %s", output.String())
		}

		if err := run(t, app, "wishlist", "remove", "603"); err != nil {
			t.Fatalf("remove failed: %v", err)
		}

		output.Reset()
		if err := run(t, app, "wishlist", "list"); err != nil {
			t.Fatalf("list failed: %v", err)
		}
		if !strings.Contains(output.String(), "(0 movies)") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})

	t.Run("refresh reports counts", func(t *testing.T) {
		app, output := newTestApp(t, catalog)

		if err := run(t, app, registerArgs...); err != nil {
			t.Fatalf("register failed: %v", err)
		}
		if err := run(t, app, "wishlist", "add", "1"); err != nil {
			t.Fatalf("add failed: %v", err)
		}
		if err := run(t, app, "wishlist", "add", "2"); err != nil {
			t.Fatalf("add failed: %v", err)
		}

		output.Reset()
		if err := run(t, app, "wishlist", "refresh", "--rate", "1000"); err != nil {
			t.Fatalf("refresh failed: %v", err)
		}
		if !strings.Contains(output.String(), "Refreshed 2 movies") {
			t.Errorf("unexpected output: %s", output.String())
		}
	})
}

func TestLangCommands(t *testing.T) {
	app, output := newTestApp(t, &tu.MockCatalog{})

	if err := run(t, app, "lang", "get"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !strings.Contains(output.String(), "en") {
		t.Errorf("unexpected output: %s", output.String())
	}

	output.Reset()
	if err := run(t, app, "lang", "set", "ar"); err != nil {
		t.Fatalf("set failed: %v", err)
	}
	if !strings.Contains(output.String(), "Language set to ar") {
		t.Errorf("unexpected output: %s", output.String())
	}

	output.Reset()
	if err := run(t, app, "lang", "get"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !strings.Contains(output.String(), "rtl") {
		t.Errorf("unexpected output: %s", output.String())
	}

	if err := run(t, app, "lang", "set", "de"); err == nil {
		t.Fatal("expected unsupported language error")
	}
}

func TestThemeCommands(t *testing.T) {
	app, output := newTestApp(t, &tu.MockCatalog{})

	if err := run(t, app, "theme", "get"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !strings.Contains(output.String(), "dark") {
		t.Errorf("unexpected output: %s", output.String())
	}

	output.Reset()
	if err := run(t, app, "theme", "set", "light"); err != nil {
		t.Fatalf("set failed: %v", err)
	}

	output.Reset()
	if err := run(t, app, "theme", "get"); err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if !strings.Contains(output.String(), "light") {
		t.Errorf("unexpected output: %s", output.String())
	}

	if err := run(t, app, "theme", "set", "solarized"); err == nil {
		t.Fatal("expected unsupported theme error")
	}
}
