package ui

import (
	"github.com/desertthunder/bingo/internal/models"
)

// playlistsFetchedMsg carries the playlist listing or the fetch error.
type playlistsFetchedMsg struct {
	playlists []models.Playlist
	err       error
}

// exportFetchedMsg carries a playlist export selected for play.
type exportFetchedMsg struct {
	export *models.PlaylistExport
	err    error
}
