package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Model defines the base interface for all persistent models.
type Model interface {
	ID() string           // ID returns the unique identifier for this model
	CreatedAt() time.Time // CreatedAt returns when this model was created
	UpdatedAt() time.Time // UpdatedAt returns when this model was last updated
	Validate() error      // Validate checks if the model's data is valid and returns an error if not
}

// Repository defines the interface for data access operations.
// Implementations handle database interactions for specific model types.
type Repository[T Model] interface {
	Create(model T) error                      // Create inserts a new model into the database
	Get(id string) (T, error)                  // Get retrieves a model by its ID
	Update(model T) error                      // Update modifies an existing model in the database
	Delete(id string) error                    // Delete removes a model from the database by its ID
	List(criteria map[string]any) ([]T, error) // List retrieves all models matching the given criteria
}

// Song is a single bingo cell candidate derived from a playlist track.
//
// Songs are value types and never mutated after creation. The JSON tags define
// the persisted board format and must stay stable across releases.
type Song struct {
	Name    string   `json:"name"`
	Artists []string `json:"artists"`
	Album   string   `json:"album"`
	Image   string   `json:"image"`
}

// ArtistLine joins the song's artists for display ("A, B").
func (s Song) ArtistLine() string {
	return strings.Join(s.Artists, ", ")
}

// BoardSize is the bingo grid dimension. Valid sizes are 2 through 5.
type BoardSize int

const (
	MinBoardSize     BoardSize = 2
	DefaultBoardSize BoardSize = 4
	MaxBoardSize     BoardSize = 5
)

// Valid reports whether the size is within the supported 2..5 range.
func (b BoardSize) Valid() bool {
	return b >= MinBoardSize && b <= MaxBoardSize
}

// Cells returns the number of songs a full board of this size requires.
func (b BoardSize) Cells() int {
	return int(b) * int(b)
}

// ParseBoardSize converts a numeric flag or query value into a BoardSize.
func ParseBoardSize(n int64) (BoardSize, error) {
	size := BoardSize(n)
	if !size.Valid() {
		return 0, fmt.Errorf("invalid board size %d: must be between %d and %d", n, MinBoardSize, MaxBoardSize)
	}
	return size, nil
}

// SongID builds the identity string for a song at the given index in the full
// song list: name + "-" + artists joined by "," + "-" + index.
//
// Identity is tied to the song's position in the full list, not its position
// on a board, so checked state survives board regeneration.
func SongID(song Song, index int) string {
	return song.Name + "-" + strings.Join(song.Artists, ",") + "-" + strconv.Itoa(index)
}

// Playlist represents a music playlist from a catalog service.
type Playlist struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	TrackCount  int    `json:"track_count"`
	Public      bool   `json:"public"`
	Image       string `json:"image,omitempty"`
}

// Track represents a single playlist entry as returned by a catalog service,
// carrying the fields song derivation needs.
type Track struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`  // "track" for playable tracks, "episode" etc. otherwise
	Local       bool     `json:"local"` // locally-imported file, not resolvable via the API
	Artists     []string `json:"artists"`
	Album       string   `json:"album"`
	AlbumImages []string `json:"album_images,omitempty"`
	DurationMS  int      `json:"duration_ms"`
}

// PlaylistExport represents a playlist with all its tracks.
type PlaylistExport struct {
	Playlist Playlist `json:"playlist"`
	Tracks   []Track  `json:"tracks"`
}

// SongsFromTracks reduces playlist tracks to the Song model used by boards.
//
// Entries that are not playable tracks (non-track item types, local files) are
// dropped; the surviving entries keep playlist order. Missing names fall back
// to "Unknown Track" / "Unknown Artist" / "Unknown Album", and the image is
// the first album image URL or empty.
func SongsFromTracks(tracks []Track) []Song {
	songs := make([]Song, 0, len(tracks))
	for _, t := range tracks {
		if t.Type != "track" || t.Local {
			continue
		}

		name := t.Name
		if name == "" {
			name = "Unknown Track"
		}

		artists := make([]string, 0, len(t.Artists))
		for _, a := range t.Artists {
			if a == "" {
				a = "Unknown Artist"
			}
			artists = append(artists, a)
		}

		album := t.Album
		if album == "" {
			album = "Unknown Album"
		}

		image := ""
		if len(t.AlbumImages) > 0 {
			image = t.AlbumImages[0]
		}

		songs = append(songs, Song{Name: name, Artists: artists, Album: album, Image: image})
	}
	return songs
}
