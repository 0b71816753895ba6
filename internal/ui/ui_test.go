package ui

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/desertthunder/bingo/internal/game"
	"github.com/desertthunder/bingo/internal/models"
	th "github.com/desertthunder/bingo/internal/testing"
)

func newTestModel(t *testing.T, svc *th.MockService) *Model {
	t.Helper()
	store := game.NewStore(nil, log.New(th.DiscardWriter))
	return NewModel(context.Background(), svc, store)
}

func TestModelUpdate(t *testing.T) {
	t.Run("resizes before playlists arrive", func(t *testing.T) {
		// The terminal reports its size before the playlist fetch returns,
		// so the list must survive a resize while still empty.
		m := newTestModel(t, &th.MockService{})

		m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

		if got := m.playlistList.Width(); got != 96 {
			t.Errorf("list width = %d, want 96", got)
		}
		if view := m.View(); view == "" {
			t.Error("expected a rendered view before playlists arrive")
		}
	})

	t.Run("populates the list when playlists arrive", func(t *testing.T) {
		m := newTestModel(t, &th.MockService{})
		m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

		m.Update(playlistsFetchedMsg{playlists: []models.Playlist{
			{ID: "p1", Name: "Road Trip", TrackCount: 12},
			{ID: "p2", Name: "Karaoke", TrackCount: 30},
		}})

		if got := len(m.playlistList.Items()); got != 2 {
			t.Errorf("list has %d items, want 2", got)
		}
		if m.err != nil {
			t.Errorf("unexpected error: %v", m.err)
		}
	})

	t.Run("fetch failure quits with the error", func(t *testing.T) {
		m := newTestModel(t, &th.MockService{})

		_, cmd := m.Update(playlistsFetchedMsg{err: context.DeadlineExceeded})

		if m.err == nil {
			t.Error("expected the error to be recorded")
		}
		if cmd == nil {
			t.Error("expected a quit command")
		}
	})

	t.Run("board cells keep their identities on load", func(t *testing.T) {
		m := newTestModel(t, &th.MockService{})
		songs := th.SongList(4)
		songs[3] = songs[1]

		export := &models.PlaylistExport{Playlist: models.Playlist{ID: "p1", Name: "Mix"}}
		m.export = export
		m.songs = songs
		m.store.GenerateBoard("p1", songs, models.MinBoardSize)
		m.store.ToggleSongCheck("p1", models.SongID(songs[3], 3))

		m.loadBoard()

		if len(m.boardIDs) != len(m.board) {
			t.Fatalf("expected %d identities, got %d", len(m.board), len(m.boardIDs))
		}
		checked := 0
		for _, id := range m.boardIDs {
			if m.store.IsSongChecked("p1", id) {
				checked++
			}
		}
		if checked != 1 {
			t.Errorf("expected exactly one checked cell, got %d", checked)
		}
	})
}
