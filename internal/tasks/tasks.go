// package tasks implements board printing operations over catalog services.
//
// The core abstraction is PrintEngine, which orchestrates playlist fetches,
// song derivation, and PDF rendering. Operations emit progress updates via
// channels for non-blocking status reporting to CLI/UI layers.
package tasks

import (
	"context"
	"fmt"

	"github.com/desertthunder/bingo/internal/models"
	"github.com/desertthunder/bingo/internal/pdf"
	"github.com/desertthunder/bingo/internal/services"
	"github.com/desertthunder/bingo/internal/shared"
)

// PlaylistCacher persists playlist exports fetched during print runs.
// Implemented by repositories.PlaylistRepository.
type PlaylistCacher interface {
	GetByServiceID(service, serviceID string) (*models.CachedPlaylist, error)
	Create(playlist *models.CachedPlaylist) error
}

// PrintOpts contains configuration for a single print job.
type PrintOpts struct {
	BoardSize      models.BoardSize // Grid dimension (default 4)
	NumberOfBoards int              // Pages to render, must be in [1, 100]
	OutputDir      string           // Destination directory (default ".")
}

// PrintResult contains all data from a completed print job.
type PrintResult struct {
	PlaylistID   string // Playlist printed
	PlaylistName string // Display name from the catalog
	SongCount    int    // Songs derived from the playlist tracks
	Boards       int    // Pages rendered
	Path         string // Written PDF path
}

// PrintEngine implements board printing for playlists.
// Contains dependencies on a catalog service and an optional playlist cache.
type PrintEngine struct {
	service services.Service
	cache   PlaylistCacher
}

// NewPrintEngine creates a PrintEngine. cache may be nil to disable caching.
func NewPrintEngine(service services.Service, cache PlaylistCacher) *PrintEngine {
	return &PrintEngine{service: service, cache: cache}
}

// Run prints boards for a single playlist: fetch, derive, render, save.
//
// The board count is validated before any work happens; invalid input never
// produces a partial file.
func (e *PrintEngine) Run(
	ctx context.Context,
	progress chan<- ProgressUpdate,
	playlistID string,
	opts PrintOpts,
) (*PrintResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}
	if opts.NumberOfBoards < 1 || opts.NumberOfBoards > 100 {
		return nil, shared.ErrInvalidBoardCount
	}
	if opts.BoardSize == 0 {
		opts.BoardSize = models.DefaultBoardSize
	}
	if !opts.BoardSize.Valid() {
		return nil, shared.ErrInvalidBoardSize
	}

	e.sendProgress(progress, fetchPlaylistUpdate(1, 4, playlistID))
	export, err := e.fetchExport(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, foundPlaylistUpdate(1, 4, export))

	songs := models.SongsFromTracks(export.Tracks)
	e.sendProgress(progress, deriveSongsUpdate(2, 4, len(songs)))

	e.sendProgress(progress, renderBoardsUpdate(3, 4, opts.NumberOfBoards, opts.BoardSize))
	path, err := pdf.WriteFile(pdf.Options{
		Songs:          songs,
		BoardSize:      opts.BoardSize,
		NumberOfBoards: opts.NumberOfBoards,
		PlaylistName:   export.Playlist.Name,
	}, opts.OutputDir)
	if err != nil {
		return nil, err
	}
	e.sendProgress(progress, savedFileUpdate(4, 4, path))

	return &PrintResult{
		PlaylistID:   playlistID,
		PlaylistName: export.Playlist.Name,
		SongCount:    len(songs),
		Boards:       opts.NumberOfBoards,
		Path:         path,
	}, nil
}

// fetchExport prefers the cache and fills it on a miss. Cache write failures
// are ignored so printing never fails because of the cache.
func (e *PrintEngine) fetchExport(ctx context.Context, playlistID string) (*models.PlaylistExport, error) {
	if e.cache != nil {
		if cached, err := e.cache.GetByServiceID(e.service.Name(), playlistID); err == nil {
			export := cached.Export()
			return &export, nil
		}
	}

	export, err := e.service.ExportPlaylist(ctx, playlistID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch playlist: %w", err)
	}

	if e.cache != nil {
		entry := models.NewCachedPlaylist(0, e.service.Name(), playlistID, *export)
		e.cache.Create(entry)
	}
	return export, nil
}

// sendProgress sends an update without blocking; slow consumers miss updates
// instead of stalling the operation.
func (e *PrintEngine) sendProgress(progress chan<- ProgressUpdate, update ProgressUpdate) {
	if progress == nil {
		return
	}
	select {
	case progress <- update:
		// Sent successfully
	default:
		// Channel full or closed, skip this update
	}
}
