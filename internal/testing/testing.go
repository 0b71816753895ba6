// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/desertthunder/bingo/internal/models"
)

// MemoryStorage is an in-memory game.Storage implementation.
type MemoryStorage struct {
	Data     []byte
	Saves    int
	FailSave bool
	FailLoad bool
}

func (m *MemoryStorage) Load() ([]byte, error) {
	if m.FailLoad {
		return nil, errors.New("load failed")
	}
	return m.Data, nil
}

func (m *MemoryStorage) Save(data []byte) error {
	m.Saves++
	if m.FailSave {
		return errors.New("save failed")
	}
	m.Data = append([]byte(nil), data...)
	return nil
}

// MockService is a test double for services.Service
type MockService struct {
	Playlists []models.Playlist
	Exports   map[string]*models.PlaylistExport
	Err       error
}

func (m *MockService) Authenticate(ctx context.Context, credentials map[string]string) error {
	return m.Err
}

func (m *MockService) GetPlaylists(ctx context.Context) ([]models.Playlist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Playlists, nil
}

func (m *MockService) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if export, ok := m.Exports[playlistID]; ok {
		p := export.Playlist
		return &p, nil
	}
	return nil, errors.New("playlist not found")
}

func (m *MockService) ExportPlaylist(ctx context.Context, playlistID string) (*models.PlaylistExport, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if export, ok := m.Exports[playlistID]; ok {
		return export, nil
	}
	return nil, errors.New("playlist not found")
}

func (m *MockService) Name() string { return "mock" }

// SongList builds n distinct songs for board tests.
func SongList(n int) []models.Song {
	songs := make([]models.Song, n)
	for i := range songs {
		songs[i] = models.Song{
			Name:    "Song " + strconv.Itoa(i),
			Artists: []string{"Artist " + strconv.Itoa(i)},
			Album:   "Album " + strconv.Itoa(i),
		}
	}
	return songs
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	Response *http.Response
	RespErr  error
	Requests []*http.Request
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{Response: r, RespErr: e}
}

func (m *MockRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	m.Requests = append(m.Requests, req)
	return m.Response, m.RespErr
}

// DiscardWriter swallows all output.
var DiscardWriter io.Writer = io.Discard
