package main

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/bingo/internal/game"
	"github.com/desertthunder/bingo/internal/models"
	"github.com/desertthunder/bingo/internal/repositories"
	"github.com/desertthunder/bingo/internal/services"
	"github.com/desertthunder/bingo/internal/shared"
	"github.com/desertthunder/bingo/internal/tasks"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config  *shared.Config
	spotify services.Service
	logger  *log.Logger
	output  io.Writer
	db      *sql.DB
	store   *game.Store
	cache   *repositories.PlaylistRepository
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config  *shared.Config
	Spotify services.Service
	Logger  *log.Logger
	Output  io.Writer
	DB      *sql.DB
	Store   *game.Store
}

// NewRunner creates a new Runner with the provided configuration
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

	r := &Runner{
		config:  opts.Config,
		spotify: opts.Spotify,
		logger:  opts.Logger,
		output:  opts.Output,
		db:      opts.DB,
		store:   opts.Store,
	}
	if r.db != nil {
		r.cache = repositories.NewPlaylistRepository(r.db)
	}
	return r
}

// SetLogger swaps the runner's logger (used by the TUI to log to a file).
func (r *Runner) SetLogger(logger *log.Logger) {
	r.logger = logger
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, playlistsCommand, songsCommand, boardCommand, printCommand, serveCommand, tuiCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// openDB opens the configured SQLite database and brings the schema up to
// date. Repeated calls reuse the connection.
func (r *Runner) openDB() (*sql.DB, error) {
	if r.db != nil {
		return r.db, nil
	}

	db, err := shared.NewDatabase(r.config.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	shared.ConfigureDatabase(db, r.config.Database.MaxOpenConns, r.config.Database.MaxIdleConns)

	if err := shared.RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	r.db = db
	r.cache = repositories.NewPlaylistRepository(db)
	return db, nil
}

// gameStore returns the persistent game store, opening the database on first use.
func (r *Runner) gameStore() (*game.Store, error) {
	if r.store != nil {
		return r.store, nil
	}

	db, err := r.openDB()
	if err != nil {
		return nil, err
	}

	r.store = game.NewStore(repositories.NewStateRepository(db, game.SnapshotKey), r.logger)
	return r.store, nil
}

// engine builds a print engine over the current service and cache.
func (r *Runner) engine() (*tasks.PrintEngine, error) {
	if r.spotify == nil {
		return nil, fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}
	if _, err := r.openDB(); err != nil {
		r.logger.Warn("running without playlist cache", "error", err)
		return tasks.NewPrintEngine(r.spotify, nil), nil
	}
	return tasks.NewPrintEngine(r.spotify, r.cache), nil
}

// fetchExport loads a playlist export, preferring the local cache.
func (r *Runner) fetchExport(ctx context.Context, playlistID string) (*models.PlaylistExport, error) {
	if r.spotify == nil {
		return nil, fmt.Errorf("%w: Spotify service not initialized", shared.ErrServiceUnavailable)
	}

	if r.cache != nil {
		if cached, err := r.cache.GetByServiceID(r.spotify.Name(), playlistID); err == nil {
			export := cached.Export()
			return &export, nil
		}
	}

	export, err := r.spotify.ExportPlaylist(ctx, playlistID)
	if err != nil {
		return nil, err
	}

	if r.cache != nil {
		if err := r.cache.Create(models.NewCachedPlaylist(0, r.spotify.Name(), playlistID, *export)); err != nil {
			r.logger.Warn("failed to cache playlist", "error", err)
		}
	}
	return export, nil
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
