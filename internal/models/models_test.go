package models

import (
	"testing"
)

func TestBoardSize(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		for n := int64(2); n <= 5; n++ {
			size, err := ParseBoardSize(n)
			if err != nil {
				t.Errorf("ParseBoardSize(%d) failed: %v", n, err)
			}
			if size.Cells() != int(n*n) {
				t.Errorf("Cells() = %d, want %d", size.Cells(), n*n)
			}
		}
	})

	t.Run("out of range", func(t *testing.T) {
		for _, n := range []int64{-1, 0, 1, 6, 100} {
			if _, err := ParseBoardSize(n); err == nil {
				t.Errorf("ParseBoardSize(%d) should fail", n)
			}
		}
	})

	t.Run("default", func(t *testing.T) {
		if !DefaultBoardSize.Valid() {
			t.Error("default board size should be valid")
		}
		if DefaultBoardSize != 4 {
			t.Errorf("default board size = %d, want 4", DefaultBoardSize)
		}
	})
}

func TestSongID(t *testing.T) {
	tc := []struct {
		name  string
		song  Song
		index int
		want  string
	}{
		{
			name:  "single artist",
			song:  Song{Name: "Dancing Queen", Artists: []string{"ABBA"}},
			index: 0,
			want:  "Dancing Queen-ABBA-0",
		},
		{
			name:  "multiple artists joined by comma",
			song:  Song{Name: "Under Pressure", Artists: []string{"Queen", "David Bowie"}},
			index: 12,
			want:  "Under Pressure-Queen,David Bowie-12",
		},
		{
			name:  "no artists",
			song:  Song{Name: "Intro"},
			index: 3,
			want:  "Intro--3",
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := SongID(tt.song, tt.index)
			if got != tt.want {
				t.Errorf("SongID() = %q, want %q", got, tt.want)
			}
		})
	}

	t.Run("identity is board independent", func(t *testing.T) {
		song := Song{Name: "Same", Artists: []string{"Artist"}}
		if SongID(song, 4) == SongID(song, 5) {
			t.Error("identities at different full-list indices must differ")
		}
	})
}

func TestSongsFromTracks(t *testing.T) {
	t.Run("filters non-track and local entries", func(t *testing.T) {
		tracks := []Track{
			{Name: "Keep Me", Type: "track", Artists: []string{"A"}, Album: "X"},
			{Name: "Podcast", Type: "episode"},
			{Name: "Local File", Type: "track", Local: true},
			{Name: "Also Keep", Type: "track", Artists: []string{"B"}, Album: "Y"},
		}

		songs := SongsFromTracks(tracks)
		if len(songs) != 2 {
			t.Fatalf("expected 2 songs, got %d", len(songs))
		}
		if songs[0].Name != "Keep Me" || songs[1].Name != "Also Keep" {
			t.Errorf("order not preserved: %v", songs)
		}
	})

	t.Run("applies fallbacks", func(t *testing.T) {
		tracks := []Track{
			{Type: "track", Artists: []string{""}},
		}

		songs := SongsFromTracks(tracks)
		if len(songs) != 1 {
			t.Fatalf("expected 1 song, got %d", len(songs))
		}
		s := songs[0]
		if s.Name != "Unknown Track" {
			t.Errorf("name fallback = %q", s.Name)
		}
		if len(s.Artists) != 1 || s.Artists[0] != "Unknown Artist" {
			t.Errorf("artist fallback = %v", s.Artists)
		}
		if s.Album != "Unknown Album" {
			t.Errorf("album fallback = %q", s.Album)
		}
		if s.Image != "" {
			t.Errorf("image should be empty, got %q", s.Image)
		}
	})

	t.Run("first album image wins", func(t *testing.T) {
		tracks := []Track{
			{Name: "n", Type: "track", AlbumImages: []string{"https://img/1", "https://img/2"}},
		}
		songs := SongsFromTracks(tracks)
		if songs[0].Image != "https://img/1" {
			t.Errorf("image = %q, want first album image", songs[0].Image)
		}
	})

	t.Run("empty input", func(t *testing.T) {
		if got := SongsFromTracks(nil); len(got) != 0 {
			t.Errorf("expected empty result, got %v", got)
		}
	})
}

func TestCachedPlaylistValidate(t *testing.T) {
	export := PlaylistExport{Playlist: Playlist{ID: "p1", Name: "Mix"}}

	if err := NewCachedPlaylist(1, "spotify", "p1", export).Validate(); err != nil {
		t.Errorf("valid playlist should pass: %v", err)
	}

	if err := NewCachedPlaylist(1, "", "p1", export).Validate(); err == nil {
		t.Error("missing service should fail")
	}
	if err := NewCachedPlaylist(1, "spotify", "", export).Validate(); err == nil {
		t.Error("missing service id should fail")
	}
}
