package game

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bingo/internal/models"
	th "github.com/desertthunder/bingo/internal/testing"
)

func quietLogger() *log.Logger {
	return log.New(&th.FWriter{})
}

func TestStoreBoards(t *testing.T) {
	t.Run("GenerateBoard full size", func(t *testing.T) {
		store := NewStore(nil, quietLogger())
		songs := th.SongList(30)

		store.GenerateBoard("p1", songs, 4)

		board := store.GetCurrentBoard("p1")
		if len(board) != 16 {
			t.Fatalf("expected 16 cells, got %d", len(board))
		}

		seen := map[string]bool{}
		for _, s := range board {
			if seen[s.Name] {
				t.Errorf("duplicate on board: %s", s.Name)
			}
			seen[s.Name] = true
		}
	})

	t.Run("exact fit uses every song", func(t *testing.T) {
		store := NewStore(nil, quietLogger())
		songs := th.SongList(16)

		store.GenerateBoard("p1", songs, 4)

		board := store.GetCurrentBoard("p1")
		if len(board) != 16 {
			t.Fatalf("expected 16 cells, got %d", len(board))
		}

		want := map[string]bool{}
		for _, s := range songs {
			want[s.Name] = true
		}
		for _, s := range board {
			if !want[s.Name] {
				t.Errorf("unexpected song on board: %s", s.Name)
			}
			delete(want, s.Name)
		}
		if len(want) != 0 {
			t.Errorf("songs missing from board: %v", want)
		}
	})

	t.Run("short playlist degrades gracefully", func(t *testing.T) {
		store := NewStore(nil, quietLogger())
		songs := th.SongList(7)

		store.GenerateBoard("p1", songs, 3)

		if got := len(store.GetCurrentBoard("p1")); got != 7 {
			t.Errorf("expected board of 7, got %d", got)
		}
	})

	t.Run("empty playlist yields empty board", func(t *testing.T) {
		store := NewStore(nil, quietLogger())

		store.GenerateBoard("p1", nil, 3)

		if got := store.GetCurrentBoard("p1"); len(got) != 0 {
			t.Errorf("expected empty board, got %d cells", len(got))
		}
	})

	t.Run("defaults for unknown playlist", func(t *testing.T) {
		store := NewStore(nil, quietLogger())

		if got := store.GetCurrentBoard("missing"); len(got) != 0 {
			t.Errorf("expected empty board, got %v", got)
		}
		if got := store.GetBoardSize("missing"); got != models.DefaultBoardSize {
			t.Errorf("expected default size 4, got %d", got)
		}
	})

	t.Run("SetBoardSize does not touch the board", func(t *testing.T) {
		store := NewStore(nil, quietLogger())
		songs := th.SongList(20)
		store.GenerateBoard("p1", songs, 3)
		before := store.GetCurrentBoard("p1")

		if err := store.SetBoardSize("p1", 5); err != nil {
			t.Fatalf("SetBoardSize failed: %v", err)
		}

		if store.GetBoardSize("p1") != 5 {
			t.Errorf("size not recorded")
		}
		if !reflect.DeepEqual(before, store.GetCurrentBoard("p1")) {
			t.Error("board changed on size change without regeneration")
		}
	})

	t.Run("SetBoardSize rejects invalid sizes", func(t *testing.T) {
		store := NewStore(nil, quietLogger())
		for _, size := range []models.BoardSize{0, 1, 6, -2} {
			if err := store.SetBoardSize("p1", size); err == nil {
				t.Errorf("size %d should be rejected", size)
			}
		}
	})
}

func TestBoardIdentities(t *testing.T) {
	// Four songs exactly filling a 2x2 board, with positions 1 and 3 holding
	// the same song.
	duplicated := func() []models.Song {
		songs := th.SongList(4)
		songs[3] = songs[1]
		return songs
	}

	t.Run("duplicate songs get distinct cell identities", func(t *testing.T) {
		store := NewStore(nil, quietLogger())
		songs := duplicated()

		store.GenerateBoard("p1", songs, models.MinBoardSize)

		ids := store.ResolveBoardIDs("p1", songs)
		if len(ids) != 4 {
			t.Fatalf("expected 4 identities, got %d", len(ids))
		}
		seen := map[string]bool{}
		for _, id := range ids {
			if seen[id] {
				t.Errorf("identity reused across cells: %s", id)
			}
			seen[id] = true
		}
	})

	t.Run("checking one duplicate marks exactly one cell", func(t *testing.T) {
		store := NewStore(nil, quietLogger())
		songs := duplicated()

		store.GenerateBoard("p1", songs, models.MinBoardSize)
		store.ToggleSongCheck("p1", models.SongID(songs[3], 3))

		checked := 0
		for _, id := range store.ResolveBoardIDs("p1", songs) {
			if store.IsSongChecked("p1", id) {
				checked++
			}
		}
		if checked != 1 {
			t.Errorf("expected exactly one checked cell, got %d", checked)
		}
	})

	t.Run("identities rebuild after a reload", func(t *testing.T) {
		storage := &th.MemoryStorage{}
		store := NewStore(storage, quietLogger())
		songs := duplicated()
		store.GenerateBoard("p1", songs, models.MinBoardSize)
		store.ToggleSongCheck("p1", models.SongID(songs[1], 1))
		store.ToggleSongCheck("p1", models.SongID(songs[3], 3))

		reloaded := NewStore(storage, quietLogger())
		ids := reloaded.ResolveBoardIDs("p1", songs)

		if len(ids) != 4 {
			t.Fatalf("expected 4 identities, got %d", len(ids))
		}
		seen := map[string]bool{}
		checked := 0
		for _, id := range ids {
			if seen[id] {
				t.Errorf("identity reused across cells: %s", id)
			}
			seen[id] = true
			if reloaded.IsSongChecked("p1", id) {
				checked++
			}
		}
		if checked != 2 {
			t.Errorf("expected both duplicate cells checked, got %d", checked)
		}
	})

	t.Run("songs gone from the playlist get a placeholder", func(t *testing.T) {
		storage := &th.MemoryStorage{}
		store := NewStore(storage, quietLogger())
		songs := th.SongList(4)
		store.GenerateBoard("p1", songs, models.MinBoardSize)

		reloaded := NewStore(storage, quietLogger())
		ids := reloaded.ResolveBoardIDs("p1", songs[:3])

		placeholders := 0
		for _, id := range ids {
			if strings.HasSuffix(id, "--1") {
				placeholders++
			}
		}
		if placeholders != 1 {
			t.Errorf("expected one placeholder identity, got %d (%v)", placeholders, ids)
		}
	})

	t.Run("no board yields no identities", func(t *testing.T) {
		store := NewStore(nil, quietLogger())
		if got := store.ResolveBoardIDs("missing", th.SongList(4)); len(got) != 0 {
			t.Errorf("expected no identities, got %v", got)
		}
	})
}

func TestStoreChecks(t *testing.T) {
	t.Run("toggle is self inverse", func(t *testing.T) {
		store := NewStore(nil, quietLogger())
		id := models.SongID(models.Song{Name: "x", Artists: []string{"y"}}, 3)

		if store.IsSongChecked("p1", id) {
			t.Fatal("fresh store should have nothing checked")
		}

		store.ToggleSongCheck("p1", id)
		if !store.IsSongChecked("p1", id) {
			t.Error("song should be checked after first toggle")
		}

		store.ToggleSongCheck("p1", id)
		if store.IsSongChecked("p1", id) {
			t.Error("song should be unchecked after second toggle")
		}
	})

	t.Run("checks are scoped per playlist", func(t *testing.T) {
		store := NewStore(nil, quietLogger())

		store.ToggleSongCheck("p1", "shared-id")
		if store.IsSongChecked("p2", "shared-id") {
			t.Error("check leaked across playlists")
		}
	})

	t.Run("reset with id keeps board and size", func(t *testing.T) {
		store := NewStore(nil, quietLogger())
		songs := th.SongList(20)
		store.GenerateBoard("p1", songs, 3)
		store.SetBoardSize("p1", 3)
		store.ToggleSongCheck("p1", "a")
		store.ToggleSongCheck("p1", "b")

		board := store.GetCurrentBoard("p1")
		store.ResetGame("p1")

		if store.CheckedCount("p1") != 0 {
			t.Error("checked songs should be cleared")
		}
		if !reflect.DeepEqual(board, store.GetCurrentBoard("p1")) {
			t.Error("board should survive reset")
		}
		if store.GetBoardSize("p1") != 3 {
			t.Error("board size should survive reset")
		}
	})

	t.Run("reset with id leaves other playlists alone", func(t *testing.T) {
		store := NewStore(nil, quietLogger())
		store.ToggleSongCheck("p1", "a")
		store.ToggleSongCheck("p2", "b")

		store.ResetGame("p1")

		if store.CheckedCount("p1") != 0 {
			t.Error("p1 should be cleared")
		}
		if !store.IsSongChecked("p2", "b") {
			t.Error("p2 should be untouched")
		}
	})

	t.Run("reset all clears every playlist", func(t *testing.T) {
		store := NewStore(nil, quietLogger())
		store.ToggleSongCheck("p1", "a")
		store.ToggleSongCheck("p2", "b")

		store.ResetGame()

		if store.CheckedCount("p1") != 0 || store.CheckedCount("p2") != 0 {
			t.Error("all checked songs should be cleared")
		}
	})
}

func TestStorePersistence(t *testing.T) {
	t.Run("round trip preserves set membership", func(t *testing.T) {
		storage := &th.MemoryStorage{}
		store := NewStore(storage, quietLogger())

		songs := th.SongList(20)
		store.GenerateBoard("p1", songs, 3)
		store.SetBoardSize("p1", 3)
		store.ToggleSongCheck("p1", "id-1")
		store.ToggleSongCheck("p1", "id-2")
		store.ToggleSongCheck("p2", "id-3")
		store.SetShowList(true)
		store.SetCurrentTab("list")

		reloaded := NewStore(storage, quietLogger())

		for _, id := range []string{"id-1", "id-2"} {
			if !reloaded.IsSongChecked("p1", id) {
				t.Errorf("p1 %s lost across reload", id)
			}
		}
		if !reloaded.IsSongChecked("p2", "id-3") {
			t.Error("p2 id-3 lost across reload")
		}
		if reloaded.CheckedCount("p1") != 2 {
			t.Errorf("p1 checked count = %d, want 2", reloaded.CheckedCount("p1"))
		}
		if !reflect.DeepEqual(store.GetCurrentBoard("p1"), reloaded.GetCurrentBoard("p1")) {
			t.Error("board lost across reload")
		}
		if reloaded.GetBoardSize("p1") != 3 {
			t.Error("board size lost across reload")
		}
		if !reloaded.ShowList() {
			t.Error("showList lost across reload")
		}
		if reloaded.CurrentTab() != "list" {
			t.Error("currentTab lost across reload")
		}
	})

	t.Run("checked songs persist as sorted arrays", func(t *testing.T) {
		storage := &th.MemoryStorage{}
		store := NewStore(storage, quietLogger())

		store.ToggleSongCheck("p1", "b-2")
		store.ToggleSongCheck("p1", "a-1")

		var snap struct {
			CheckedSongs map[string][]string `json:"checkedSongs"`
		}
		if err := json.Unmarshal(storage.Data, &snap); err != nil {
			t.Fatalf("snapshot is not valid JSON: %v", err)
		}

		got := snap.CheckedSongs["p1"]
		if !reflect.DeepEqual(got, []string{"a-1", "b-2"}) {
			t.Errorf("on-disk checkedSongs = %v, want sorted array", got)
		}
	})

	t.Run("malformed snapshot falls back to empty state", func(t *testing.T) {
		storage := &th.MemoryStorage{Data: []byte("{not json")}

		store := NewStore(storage, quietLogger())

		if store.CheckedCount("p1") != 0 {
			t.Error("expected empty state")
		}
		if store.GetBoardSize("p1") != models.DefaultBoardSize {
			t.Error("expected default board size")
		}
	})

	t.Run("load failure falls back to empty state", func(t *testing.T) {
		storage := &th.MemoryStorage{FailLoad: true}

		store := NewStore(storage, quietLogger())
		if store.CurrentTab() != DefaultTab {
			t.Error("expected default tab")
		}
	})

	t.Run("save failure does not fail the mutation", func(t *testing.T) {
		storage := &th.MemoryStorage{FailSave: true}
		store := NewStore(storage, quietLogger())

		store.ToggleSongCheck("p1", "id")

		if !store.IsSongChecked("p1", "id") {
			t.Error("mutation should apply even when persistence fails")
		}
	})

	t.Run("every mutation persists", func(t *testing.T) {
		storage := &th.MemoryStorage{}
		store := NewStore(storage, quietLogger())

		store.GenerateBoard("p1", th.SongList(9), 3)
		store.SetBoardSize("p1", 3)
		store.ToggleSongCheck("p1", "id")
		store.ResetGame("p1")
		store.SetShowList(true)
		store.SetCurrentTab("list")

		if storage.Saves != 6 {
			t.Errorf("expected 6 snapshot writes, got %d", storage.Saves)
		}
	})
}
