package game

import (
	"encoding/json"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/bingo/internal/models"
	"github.com/desertthunder/bingo/internal/shared"
)

// SnapshotKey is the fixed key the store's snapshot is persisted under.
//
// Matches the localStorage key used by the original web client so exported
// state stays recognizable.
const SnapshotKey = "music-bingo-game"

// DefaultTab is the tab shown before the user switches views.
const DefaultTab = "board"

// Storage is the durable key-value port the store persists through.
//
// Load returns (nil, nil) when no snapshot has been saved yet.
type Storage interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// snapshot is the serializable projection of the store.
//
// checkedSongs values are string slices here and sets in memory; this shape is
// the on-disk contract and must not change.
type snapshot struct {
	Boards       map[string][]models.Song    `json:"boards"`
	BoardSizes   map[string]models.BoardSize `json:"boardSizes"`
	ShowList     bool                        `json:"showList"`
	CurrentTab   string                      `json:"currentTab"`
	CheckedSongs map[string][]string         `json:"checkedSongs"`
}

// Store owns all per-playlist game state and the global UI state.
//
// Every mutation persists a snapshot through the Storage port. Persistence
// failures are logged and never fail the mutation; a missing or malformed
// snapshot on load falls back to empty state.
type Store struct {
	mu         sync.Mutex
	boards     map[string][]models.Song
	boardSizes map[string]models.BoardSize
	checked    map[string]map[string]struct{}
	showList   bool
	currentTab string

	// Identity of each board cell, in board order. Not part of the snapshot;
	// rebuilt on demand after a reload. See ResolveBoardIDs.
	boardIDs map[string][]string

	storage Storage
	logger  *log.Logger
}

// NewStore creates a Store rehydrated from storage.
//
// storage may be nil for an in-memory store (state is lost on exit); logger
// defaults to the shared stderr logger.
func NewStore(storage Storage, logger *log.Logger) *Store {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	s := &Store{
		boards:     map[string][]models.Song{},
		boardSizes: map[string]models.BoardSize{},
		checked:    map[string]map[string]struct{}{},
		boardIDs:   map[string][]string{},
		currentTab: DefaultTab,
		storage:    storage,
		logger:     logger,
	}

	s.rehydrate()
	return s
}

// rehydrate loads the persisted snapshot, falling back to empty state on any failure.
func (s *Store) rehydrate() {
	if s.storage == nil {
		return
	}

	data, err := s.storage.Load()
	if err != nil {
		s.logger.Warn("failed to load game state, starting fresh", "error", err)
		return
	}
	if len(data) == 0 {
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("malformed game state, starting fresh", "error", err)
		return
	}

	if snap.Boards != nil {
		s.boards = snap.Boards
	}
	if snap.BoardSizes != nil {
		s.boardSizes = snap.BoardSizes
	}
	s.showList = snap.ShowList
	if snap.CurrentTab != "" {
		s.currentTab = snap.CurrentTab
	}
	for playlistID, ids := range snap.CheckedSongs {
		set := make(map[string]struct{}, len(ids))
		for _, id := range ids {
			set[id] = struct{}{}
		}
		s.checked[playlistID] = set
	}
}

// persist serializes the current state and writes it through the storage port.
// Callers must hold s.mu.
func (s *Store) persist() {
	if s.storage == nil {
		return
	}

	snap := snapshot{
		Boards:       s.boards,
		BoardSizes:   s.boardSizes,
		ShowList:     s.showList,
		CurrentTab:   s.currentTab,
		CheckedSongs: make(map[string][]string, len(s.checked)),
	}
	for playlistID, set := range s.checked {
		ids := make([]string, 0, len(set))
		for id := range set {
			ids = append(ids, id)
		}
		sort.Strings(ids)
		snap.CheckedSongs[playlistID] = ids
	}

	data, err := json.Marshal(snap)
	if err != nil {
		s.logger.Warn("failed to serialize game state", "error", err)
		return
	}
	if err := s.storage.Save(data); err != nil {
		s.logger.Warn("failed to persist game state", "error", err)
	}
}

// SetBoardSize records the board size for a playlist.
//
// The current board is left untouched; callers regenerate separately if they
// want the board to reflect the new size.
func (s *Store) SetBoardSize(playlistID string, size models.BoardSize) error {
	if !size.Valid() {
		return shared.ErrInvalidBoardSize
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.boardSizes[playlistID] = size
	s.persist()
	return nil
}

// GetBoardSize returns the playlist's board size, defaulting to 4.
func (s *Store) GetBoardSize(playlistID string) models.BoardSize {
	s.mu.Lock()
	defer s.mu.Unlock()
	if size, ok := s.boardSizes[playlistID]; ok {
		return size
	}
	return models.DefaultBoardSize
}

// GenerateBoard samples a new random board of size² songs and overwrites the
// playlist's current board. Checked songs are not touched. When the song list
// is shorter than size² the whole shuffled list becomes the board.
//
// Each cell's identity is minted from the sampled song's position in songs, so
// duplicate songs on a board keep distinct identities.
func (s *Store) GenerateBoard(playlistID string, songs []models.Song, size models.BoardSize) {
	indices := SampleIndices(len(songs), size.Cells())
	board := make([]models.Song, len(indices))
	ids := make([]string, len(indices))
	for i, idx := range indices {
		board[i] = songs[idx]
		ids[i] = models.SongID(songs[idx], idx)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.boards[playlistID] = board
	s.boardIDs[playlistID] = ids
	s.persist()
}

// GetCurrentBoard returns the playlist's board, or an empty slice if none has
// been generated yet.
func (s *Store) GetCurrentBoard(playlistID string) []models.Song {
	s.mu.Lock()
	defer s.mu.Unlock()
	if board, ok := s.boards[playlistID]; ok {
		return board
	}
	return []models.Song{}
}

// ResolveBoardIDs returns the identity of each board cell, in board order.
//
// Identities are recorded when a board is generated. The snapshot only carries
// the songs themselves, so after a reload the identities are rebuilt by
// matching each cell against the full song list, consuming each position at
// most once. Duplicate songs therefore resolve to distinct positions. A cell
// whose song left the playlist gets an identity with position -1.
func (s *Store) ResolveBoardIDs(playlistID string, songs []models.Song) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	board := s.boards[playlistID]
	if ids, ok := s.boardIDs[playlistID]; ok && len(ids) == len(board) {
		return append([]string(nil), ids...)
	}

	used := make(map[int]struct{}, len(board))
	ids := make([]string, len(board))
	for i, cell := range board {
		ids[i] = models.SongID(cell, -1)
		for j, candidate := range songs {
			if _, taken := used[j]; taken {
				continue
			}
			if candidate.Name == cell.Name && candidate.ArtistLine() == cell.ArtistLine() {
				used[j] = struct{}{}
				ids[i] = models.SongID(candidate, j)
				break
			}
		}
	}
	s.boardIDs[playlistID] = ids
	return append([]string(nil), ids...)
}

// ToggleSongCheck flips the checked state of a song identity for a playlist.
func (s *Store) ToggleSongCheck(playlistID, songID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	set, ok := s.checked[playlistID]
	if !ok {
		set = map[string]struct{}{}
		s.checked[playlistID] = set
	}

	if _, checked := set[songID]; checked {
		delete(set, songID)
	} else {
		set[songID] = struct{}{}
	}
	s.persist()
}

// IsSongChecked reports whether a song identity is checked for a playlist.
func (s *Store) IsSongChecked(playlistID, songID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.checked[playlistID][songID]
	return ok
}

// CheckedCount returns how many songs are checked for a playlist.
func (s *Store) CheckedCount(playlistID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.checked[playlistID])
}

// CheckedSongs returns a copy of the playlist's checked identity set.
func (s *Store) CheckedSongs(playlistID string) map[string]struct{} {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]struct{}, len(s.checked[playlistID]))
	for id := range s.checked[playlistID] {
		out[id] = struct{}{}
	}
	return out
}

// ResetGame clears checked songs. With a playlist ID it clears only that
// playlist's progress; with no arguments it clears every playlist. Boards and
// board sizes are preserved either way so players keep their layouts.
func (s *Store) ResetGame(playlistID ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(playlistID) > 0 {
		for _, id := range playlistID {
			delete(s.checked, id)
		}
	} else {
		s.checked = map[string]map[string]struct{}{}
	}
	s.persist()
}

// SetShowList toggles the global song-list visibility flag.
func (s *Store) SetShowList(show bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.showList = show
	s.persist()
}

// ShowList reports the global song-list visibility flag.
func (s *Store) ShowList() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.showList
}

// SetCurrentTab records the globally selected tab.
func (s *Store) SetCurrentTab(tab string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.currentTab = tab
	s.persist()
}

// CurrentTab returns the globally selected tab.
func (s *Store) CurrentTab() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.currentTab
}
