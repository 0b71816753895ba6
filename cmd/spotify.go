package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/bingo/internal/formatter"
	"github.com/desertthunder/bingo/internal/models"
	"github.com/desertthunder/bingo/internal/shared"
)

// Playlists lists the authenticated user's Spotify playlists.
func (r *Runner) Playlists(ctx context.Context, cmd *cli.Command) error {
	if r.spotify == nil {
		return fmt.Errorf("%w: Spotify service not initialized, run 'bingo auth'", shared.ErrServiceUnavailable)
	}

	limit := cmd.Int("limit")

	playlists, err := r.spotify.GetPlaylists(ctx)
	if retried, handledErr := r.handleAuthError(ctx, err, cmd); retried && handledErr == nil {
		playlists, err = r.spotify.GetPlaylists(ctx)
	} else if handledErr != nil {
		return handledErr
	}
	if err != nil {
		return fmt.Errorf("failed to fetch playlists: %w", err)
	}

	if limit > 0 && limit < len(playlists) {
		playlists = playlists[:limit]
	}

	if cmd.Bool("json") {
		return r.writeJSON(playlists, cmd.Bool("pretty"))
	}

	r.writePlain("Found %d playlists:\n\n", len(playlists))
	for i, pl := range playlists {
		r.writePlain("%3d. %s (%d tracks)\n", i+1, pl.Name, pl.TrackCount)
		r.writePlain("     ID: %s\n", pl.ID)
	}

	return nil
}

// Songs shows or exports the bingo song list derived from a playlist's tracks.
func (r *Runner) Songs(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	format := cmd.String("format")
	outputPath := cmd.String("output")

	export, err := r.fetchExport(ctx, playlistID)
	if retried, handledErr := r.handleAuthError(ctx, err, cmd); retried && handledErr == nil {
		export, err = r.fetchExport(ctx, playlistID)
	} else if handledErr != nil {
		return handledErr
	}
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}

	if outputPath != "" {
		path, err := formatter.WriteSongList(export, format, outputPath)
		if err != nil {
			return fmt.Errorf("failed to write song list: %w", err)
		}
		r.writePlain("✓ Song list written to %s\n", path)
		return nil
	}

	songs := models.SongsFromTracks(export.Tracks)

	switch format {
	case "csv":
		data, err := formatter.SongListCSV(songs)
		if err != nil {
			return fmt.Errorf("failed to format song list: %w", err)
		}
		r.writePlain("%s", data)
	case "markdown", "md":
		r.writePlain("%s", formatter.SongListMarkdown(export.Playlist.Name, songs))
	case "json":
		return r.writeJSON(songs, true)
	case "text", "txt", "":
		r.writePlain("%s (%d songs)\n\n", export.Playlist.Name, len(songs))
		r.writePlain("%s", formatter.SongListText(songs))
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}

	return nil
}

// resolveOutputDir picks the print output directory from the flag, config, or cwd.
func (r *Runner) resolveOutputDir(cmd *cli.Command) string {
	if dir := cmd.String("output"); dir != "" {
		return dir
	}
	if r.config != nil && r.config.Print.OutputDir != "" {
		return r.config.Print.OutputDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}
