package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/bingo/internal/models"
	"github.com/desertthunder/bingo/internal/shared"
	"github.com/desertthunder/bingo/internal/tasks"
)

// Print renders board PDFs for one or more playlists.
//
// A single ID runs synchronously with step progress; multiple IDs fan out
// across the bulk worker pool and write a manifest.
func (r *Runner) Print(ctx context.Context, cmd *cli.Command) error {
	ids := cmd.StringArgs("ids")
	if len(ids) == 0 {
		return fmt.Errorf("%w: at least one playlist ID is required", shared.ErrMissingArgument)
	}

	size, err := models.ParseBoardSize(int64(cmd.Int("size")))
	if err != nil {
		return err
	}
	boards := cmd.Int("boards")
	outputDir := r.resolveOutputDir(cmd)

	engine, err := r.engine()
	if err != nil {
		return err
	}

	progress := make(chan tasks.ProgressUpdate, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		for update := range progress {
			r.writePlain("→ [%d/%d] %s\n", update.Step, update.Total, update.Message)
		}
	}()

	if len(ids) == 1 {
		result, runErr := engine.Run(ctx, progress, ids[0], tasks.PrintOpts{
			BoardSize:      size,
			NumberOfBoards: boards,
			OutputDir:      outputDir,
		})
		close(progress)
		<-done
		if runErr != nil {
			return runErr
		}

		r.writePlainln("✓ Printed %d board(s) for %s", result.Boards, result.PlaylistName)
		r.writePlain("  Songs: %d\n", result.SongCount)
		r.writePlain("  File:  %s\n", result.Path)
		return nil
	}

	result, runErr := engine.BulkPrint(ctx, progress, ids, tasks.BulkPrintOpts{
		BoardSize:         size,
		BoardsPerPlaylist: boards,
		OutputDir:         outputDir,
		IncludeSongList:   cmd.Bool("song-list"),
	})
	close(progress)
	<-done
	if runErr != nil {
		return runErr
	}

	r.writePlainln("✓ Bulk print complete")
	r.writePlain("  Playlists: %d (%d ok, %d failed)\n",
		result.TotalPlaylists, result.SuccessfulPrints, result.FailedPrints)
	r.writePlain("  Output:    %s\n", result.OutputDirectory)
	r.writePlain("  Manifest:  %s\n", result.ManifestPath)

	for _, pr := range result.Results {
		if !pr.Success {
			r.writePlain("  ✗ %s: %s\n", pr.PlaylistID, pr.ErrorMessage)
		}
	}

	return nil
}
