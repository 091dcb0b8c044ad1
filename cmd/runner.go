package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/nkhaled/moviedeck/internal/auth"
	"github.com/nkhaled/moviedeck/internal/language"
	"github.com/nkhaled/moviedeck/internal/notify"
	"github.com/nkhaled/moviedeck/internal/repositories"
	"github.com/nkhaled/moviedeck/internal/services"
	"github.com/nkhaled/moviedeck/internal/session"
	"github.com/nkhaled/moviedeck/internal/shared"
	"github.com/nkhaled/moviedeck/internal/tasks"
	"github.com/nkhaled/moviedeck/internal/wishlist"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config      *shared.Config
	store       repositories.Store
	center      *notify.Center
	language    *language.Service
	credentials *auth.CredentialStore
	session     *session.Manager
	wishlist    *wishlist.Store
	catalog     services.Catalog
	tmdb        *services.TMDBService
	engine      *tasks.Engine
	logger      *log.Logger
	output      io.Writer

	// quiet suppresses toast printing while the TUI owns the terminal.
	quiet bool
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config      *shared.Config
	Store       repositories.Store
	Center      *notify.Center
	Language    *language.Service
	Credentials *auth.CredentialStore
	Session     *session.Manager
	Wishlist    *wishlist.Store
	Catalog     services.Catalog
	TMDB        *services.TMDBService
	Logger      *log.Logger
	Output      io.Writer
}

// NewRunner creates a new Runner with the provided dependencies. Toasts from
// the notification center print to the output writer as they are emitted.
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.Center == nil {
		opts.Center = notify.NewCenter()
	}

	r := &Runner{
		config:      opts.Config,
		store:       opts.Store,
		center:      opts.Center,
		language:    opts.Language,
		credentials: opts.Credentials,
		session:     opts.Session,
		wishlist:    opts.Wishlist,
		catalog:     opts.Catalog,
		tmdb:        opts.TMDB,
		engine:      tasks.NewEngine(opts.Catalog, opts.Logger),
		logger:      opts.Logger,
		output:      opts.Output,
	}

	r.center.Subscribe(func(t notify.Toast) {
		if r.quiet {
			return
		}
		switch t.Level {
		case notify.Success:
			r.writePlain("✓ %s\n", t.Message)
		case notify.Error:
			r.writePlain("✗ %s\n", t.Message)
		case notify.Warning:
			r.writePlain("! %s\n", t.Message)
		default:
			r.writePlain("• %s\n", t.Message)
		}
	})

	return r
}

// SetLogger swaps the Runner's logger, e.g. to a file logger for the TUI.
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, moviesCommand, wishlistCommand, langCommand, themeCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// ensureStore guards commands that need durable storage.
func (r *Runner) ensureStore() error {
	if r.store == nil {
		return fmt.Errorf("%w: storage not initialized, run 'moviedeck setup' first", shared.ErrServiceUnavailable)
	}
	return nil
}

// ensureCatalog guards commands that call the catalog API.
func (r *Runner) ensureCatalog() error {
	if r.catalog == nil {
		return fmt.Errorf("%w: catalog not configured, set tmdb.api_key in config.toml", shared.ErrServiceUnavailable)
	}
	return nil
}

// ensureSession guards commands that require a signed-in user.
func (r *Runner) ensureSession() error {
	if err := r.ensureStore(); err != nil {
		return err
	}
	if r.session == nil || !r.session.IsAuthenticated() {
		return fmt.Errorf("%w: run 'moviedeck auth login' first", shared.ErrAuthRequired)
	}
	return nil
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainHeader(title string) {
	r.writePlain("═══════════════════════════════════════\n")
	r.writePlain("%v\n", title)
	r.writePlain("═══════════════════════════════════════\n")
}
