package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/bingo/internal/formatter"
	"github.com/desertthunder/bingo/internal/game"
	"github.com/desertthunder/bingo/internal/models"
	"github.com/desertthunder/bingo/internal/shared"
)

// BoardNew generates a fresh random board for a playlist at its stored size.
func (r *Runner) BoardNew(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")

	store, err := r.gameStore()
	if err != nil {
		return err
	}

	export, err := r.fetchExport(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}

	songs := models.SongsFromTracks(export.Tracks)
	size := store.GetBoardSize(playlistID)
	if len(songs) < size.Cells() {
		r.writePlain("⚠ Playlist has %d songs, fewer than a full %dx%d board\n", len(songs), size, size)
	}

	store.GenerateBoard(playlistID, songs, size)

	r.writePlain("✓ New %dx%d board for %s\n\n", size, size, export.Playlist.Name)
	r.writePlain("%s", r.decoratedBoard(store, playlistID, songs))
	return nil
}

// BoardShow prints the current board with checked songs marked.
func (r *Runner) BoardShow(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	format := cmd.String("format")

	store, err := r.gameStore()
	if err != nil {
		return err
	}

	board := store.GetCurrentBoard(playlistID)
	if len(board) == 0 {
		r.writePlain("No board yet. Run: bingo board new --id %s\n", playlistID)
		return nil
	}

	export, err := r.fetchExport(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}
	songs := models.SongsFromTracks(export.Tracks)
	size := store.GetBoardSize(playlistID)

	switch format {
	case "markdown", "md":
		marked := r.markChecked(store, playlistID, board, songs)
		r.writePlain("%s", formatter.BoardMarkdown(marked, size))
	case "text", "txt", "":
		r.writePlain("%s", r.decoratedBoard(store, playlistID, songs))
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidFlag, format)
	}

	r.writePlain("\nChecked: %d of %d songs\n", store.CheckedCount(playlistID), len(songs))
	return nil
}

// BoardSize changes the stored board size for a playlist.
func (r *Runner) BoardSize(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")

	size, err := models.ParseBoardSize(int64(cmd.Int("size")))
	if err != nil {
		return err
	}

	store, err := r.gameStore()
	if err != nil {
		return err
	}

	if err := store.SetBoardSize(playlistID, size); err != nil {
		return err
	}

	r.writePlain("✓ Board size set to %dx%d\n", size, size)
	r.writePlain("The next board for this playlist uses the new size. Run: bingo board new --id %s\n", playlistID)
	return nil
}

// BoardCheck toggles a song's checked state by its number in the songs listing.
func (r *Runner) BoardCheck(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	songNumber := cmd.Int("song")

	store, err := r.gameStore()
	if err != nil {
		return err
	}

	export, err := r.fetchExport(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}
	songs := models.SongsFromTracks(export.Tracks)

	if songNumber < 1 || songNumber > len(songs) {
		return fmt.Errorf("%w: song number must be between 1 and %d", shared.ErrInvalidArgument, len(songs))
	}

	song := songs[songNumber-1]
	songID := models.SongID(song, songNumber-1)
	store.ToggleSongCheck(playlistID, songID)

	mark := "unchecked"
	if store.IsSongChecked(playlistID, songID) {
		mark = "checked"
	}
	r.writePlain("✓ %s - %s is now %s (%d of %d)\n",
		song.Name, song.ArtistLine(), mark, store.CheckedCount(playlistID), len(songs))
	return nil
}

// BoardReset clears checked songs for one playlist or all of them.
func (r *Runner) BoardReset(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.String("id")
	all := cmd.Bool("all")

	if playlistID == "" && !all {
		return fmt.Errorf("%w: provide --id or --all", shared.ErrMissingArgument)
	}

	store, err := r.gameStore()
	if err != nil {
		return err
	}

	if all {
		store.ResetGame()
		r.writePlain("✓ Reset progress for all playlists\n")
		return nil
	}

	store.ResetGame(playlistID)
	r.writePlain("✓ Reset progress for playlist %s\n", playlistID)
	return nil
}

// decoratedBoard renders the current board as text with checked cells marked.
func (r *Runner) decoratedBoard(store *game.Store, playlistID string, songs []models.Song) string {
	board := store.GetCurrentBoard(playlistID)
	marked := r.markChecked(store, playlistID, board, songs)
	return formatter.BoardText(marked, store.GetBoardSize(playlistID))
}

// markChecked prefixes checked board cells with a check mark. Cell identities
// come from the store so duplicate songs mark only their own cell.
func (r *Runner) markChecked(store *game.Store, playlistID string, board, songs []models.Song) []models.Song {
	ids := store.ResolveBoardIDs(playlistID, songs)
	marked := make([]models.Song, len(board))
	for i, cell := range board {
		marked[i] = cell
		if i < len(ids) && store.IsSongChecked(playlistID, ids[i]) {
			marked[i].Name = "✓ " + cell.Name
		}
	}
	return marked
}
