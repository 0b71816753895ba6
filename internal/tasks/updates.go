package tasks

import (
	"fmt"

	"github.com/desertthunder/bingo/internal/models"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchPlaylist Phase = iota
	DeriveSongs
	RenderBoards
	SaveFile
)

func (p Phase) String() string {
	switch p {
	case FetchPlaylist:
		return "fetch_playlist"
	case DeriveSongs:
		return "derive_songs"
	case RenderBoards:
		return "render_boards"
	case SaveFile:
		return "save_file"
	default:
		return ""
	}
}

func fetchPlaylistUpdate(step, total int, id string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Fetching playlist (%s)...", id),
	}
}

func foundPlaylistUpdate(step, total int, export *models.PlaylistExport) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlaylist,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Found playlist: %s (%d tracks)", export.Playlist.Name, len(export.Tracks)),
		Data:    export,
	}
}

func deriveSongsUpdate(step, total, songCount int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   DeriveSongs,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Derived %d songs from playlist tracks", songCount),
	}
}

func renderBoardsUpdate(step, total, boards int, size models.BoardSize) ProgressUpdate {
	return ProgressUpdate{
		Phase:   RenderBoards,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Rendering %d %dx%d boards...", boards, size, size),
	}
}

func savedFileUpdate(step, total int, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("Saved %s", path),
	}
}

func printCompletedUpdate(step, total int, name, path string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s (%s)", step, total, name, path),
	}
}

func printFailedUpdate(step, total int, name string, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   SaveFile,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, name, err),
	}
}
