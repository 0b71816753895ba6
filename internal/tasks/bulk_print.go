package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/desertthunder/bingo/internal/formatter"
	"github.com/desertthunder/bingo/internal/models"
	"github.com/desertthunder/bingo/internal/pdf"
	"github.com/desertthunder/bingo/internal/shared"
)

// BulkPrintOpts contains configuration for bulk board printing.
type BulkPrintOpts struct {
	BoardSize         models.BoardSize // Grid dimension for every playlist (default 4)
	BoardsPerPlaylist int              // Pages per playlist, must be in [1, 100]
	OutputDir         string           // Base output directory (default: bingo_print_{epoch})
	NumWorkers        int              // Concurrent render workers (default: 5)
	RateLimit         float64          // Catalog requests per second (default: 5)
	IncludeSongList   bool             // Also write a text song list next to each PDF
}

// PlaylistPrintJob carries a fetched export to a render worker.
type PlaylistPrintJob struct {
	PlaylistID string
	Export     *models.PlaylistExport
}

// PlaylistPrintResult is the per-playlist outcome of a bulk print.
type PlaylistPrintResult struct {
	PlaylistID   string   `json:"playlist_id"`
	PlaylistName string   `json:"playlist_name"`
	Success      bool     `json:"success"`
	Files        []string `json:"files,omitempty"`
	Error        error    `json:"-"`
	ErrorMessage string   `json:"error,omitempty"`
}

// BulkPrintResult summarizes a bulk print run.
type BulkPrintResult struct {
	TotalPlaylists   int                   `json:"total_playlists"`
	SuccessfulPrints int                   `json:"successful_prints"`
	FailedPrints     int                   `json:"failed_prints"`
	OutputDirectory  string                `json:"output_directory"`
	ManifestPath     string                `json:"-"`
	Results          []PlaylistPrintResult `json:"results"`
}

// BulkPrint renders boards for multiple playlists concurrently with rate
// limiting and progress tracking.
//
// Fetches run sequentially behind a rate limiter to respect the catalog API;
// rendering and file writes fan out across a bounded worker pool. Partial
// failures are recorded per playlist, and a manifest file summarizes the run.
func (e *PrintEngine) BulkPrint(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	ids []string,
	opts BulkPrintOpts,
) (*BulkPrintResult, error) {
	if e.service == nil {
		return nil, fmt.Errorf("%w: service not initialized", shared.ErrServiceUnavailable)
	}
	if opts.BoardsPerPlaylist < 1 || opts.BoardsPerPlaylist > 100 {
		return nil, shared.ErrInvalidBoardCount
	}
	if opts.BoardSize == 0 {
		opts.BoardSize = models.DefaultBoardSize
	}
	if !opts.BoardSize.Valid() {
		return nil, shared.ErrInvalidBoardSize
	}

	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("bingo_print_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkPrintResult{
		TotalPlaylists:  len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistPrintResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan PlaylistPrintJob, len(ids))
	results := make(chan PlaylistPrintResult, len(ids))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.printWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		for i, playlistID := range ids {
			select {
			case <-ctx.Done():
				close(jobs)
				return
			default:
			}

			if err := limiter.Wait(ctx); err != nil {
				close(jobs)
				return
			}

			e.sendProgress(prog, fetchPlaylistUpdate(i+1, len(ids), playlistID))
			export, err := e.fetchExport(ctx, playlistID)
			if err != nil {
				results <- PlaylistPrintResult{
					PlaylistID:   playlistID,
					PlaylistName: fmt.Sprintf("Unknown (%s)", playlistID),
					Success:      false,
					Error:        err,
				}
				continue
			}

			jobs <- PlaylistPrintJob{PlaylistID: playlistID, Export: export}
		}
		close(jobs)
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		if res.Error != nil {
			res.ErrorMessage = res.Error.Error()
		}
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulPrints++
			e.sendProgress(prog, printCompletedUpdate(completed, len(ids), res.PlaylistName, res.Files[0]))
		} else {
			result.FailedPrints++
			e.sendProgress(prog, printFailedUpdate(completed, len(ids), res.PlaylistName, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "print_manifest.json")
	if err := formatter.WriteManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("print completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// printWorker renders PDFs for jobs from the channel.
func (e *PrintEngine) printWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan PlaylistPrintJob,
	results chan<- PlaylistPrintResult,
	opts BulkPrintOpts,
) {
	defer wg.Done()

	for job := range jobs {
		select {
		case <-ctx.Done():
			return
		default:
		}

		results <- e.printSinglePlaylist(job, opts)
	}
}

// printSinglePlaylist renders and writes one playlist's boards.
func (e *PrintEngine) printSinglePlaylist(j PlaylistPrintJob, opts BulkPrintOpts) PlaylistPrintResult {
	result := PlaylistPrintResult{
		PlaylistID:   j.PlaylistID,
		PlaylistName: j.Export.Playlist.Name,
	}

	songs := models.SongsFromTracks(j.Export.Tracks)

	path, err := pdf.WriteFile(pdf.Options{
		Songs:          songs,
		BoardSize:      opts.BoardSize,
		NumberOfBoards: opts.BoardsPerPlaylist,
		PlaylistName:   j.Export.Playlist.Name,
	}, opts.OutputDir)
	if err != nil {
		result.Error = fmt.Errorf("render failed: %w", err)
		return result
	}
	result.Files = []string{path}

	if opts.IncludeSongList {
		listPath := filepath.Join(opts.OutputDir, shared.SanitizeFilename(j.Export.Playlist.Name)+"_songs.txt")
		if err := os.WriteFile(listPath, []byte(formatter.SongListText(songs)), 0644); err != nil {
			result.Error = fmt.Errorf("song list write failed: %w", err)
			return result
		}
		result.Files = append(result.Files, listPath)
	}

	result.Success = true
	return result
}
