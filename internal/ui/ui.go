package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/desertthunder/bingo/internal/game"
	"github.com/desertthunder/bingo/internal/models"
	"github.com/desertthunder/bingo/internal/services"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	BoardView
)

// TabBoard and TabList are the values the store's current tab cycles through.
const (
	TabBoard = "board"
	TabList  = "list"
)

// Model represents the TUI application state.
type Model struct {
	ctx     context.Context
	view    ViewState
	service services.Service
	store   *game.Store

	width  int
	height int

	playlistList list.Model
	playlists    []models.Playlist

	export   *models.PlaylistExport
	songs    []models.Song
	board    []models.Song
	boardIDs []string
	cursor   int

	err  error
	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
func NewModel(ctx context.Context, service services.Service, store *game.Store) *Model {
	// The list must be constructed up front: its zero value has no delegate
	// and resizing it panics, and the first window size message arrives
	// before any playlists do.
	playlistList := list.New(nil, list.NewDefaultDelegate(), 0, 0)
	playlistList.Title = "Spotify Playlists"

	return &Model{
		ctx:          ctx,
		view:         PlaylistListView,
		service:      service,
		store:        store,
		playlistList: playlistList,
		help:         help.New(),
		keys:         newKeyMap(),
	}
}

// Init initializes the TUI by fetching playlists.
func (m *Model) Init() tea.Cmd {
	return m.fetchPlaylists()
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		return m, nil

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case BoardView:
			return m.handleBoardKeys(msg)
		}

	case playlistsFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, tea.Quit
		}
		m.playlists = msg.playlists
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		return m, m.playlistList.SetItems(items)

	case exportFetchedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.view = PlaylistListView
			return m, nil
		}
		m.openBoard(msg.export)
		return m, nil
	}

	if m.view == PlaylistListView {
		var cmd tea.Cmd
		m.playlistList, cmd = m.playlistList.Update(msg)
		return m, cmd
	}
	return m, nil
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("Error: %v\n\nPress q to quit", m.err))
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case BoardView:
		if m.store.CurrentTab() == TabList {
			return m.renderSongList()
		}
		return m.renderBoard()
	default:
		return ""
	}
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "enter":
		selected := m.playlistList.SelectedItem()
		if selected != nil {
			if pl, ok := selected.(playlistItem); ok {
				return m, m.fetchExport(pl.playlist.ID)
			}
		}
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleBoardKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	playlistID := m.export.Playlist.ID
	size := int(m.store.GetBoardSize(playlistID))

	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.view = PlaylistListView
		m.export = nil
		return m, nil
	case key.Matches(msg, m.keys.up):
		if m.cursor-size >= 0 {
			m.cursor -= size
		}
	case key.Matches(msg, m.keys.down):
		if m.cursor+size < len(m.board) {
			m.cursor += size
		}
	case key.Matches(msg, m.keys.left):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.right):
		if m.cursor < len(m.board)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.check):
		if m.cursor < len(m.boardIDs) {
			m.store.ToggleSongCheck(playlistID, m.boardIDs[m.cursor])
		}
	case key.Matches(msg, m.keys.redo):
		m.store.GenerateBoard(playlistID, m.songs, m.store.GetBoardSize(playlistID))
		m.loadBoard()
	case key.Matches(msg, m.keys.bigger):
		if next := m.store.GetBoardSize(playlistID) + 1; next.Valid() {
			m.store.SetBoardSize(playlistID, next)
			m.store.GenerateBoard(playlistID, m.songs, next)
			m.loadBoard()
		}
	case key.Matches(msg, m.keys.smaller):
		if next := m.store.GetBoardSize(playlistID) - 1; next.Valid() {
			m.store.SetBoardSize(playlistID, next)
			m.store.GenerateBoard(playlistID, m.songs, next)
			m.loadBoard()
		}
	case key.Matches(msg, m.keys.tab):
		if m.store.CurrentTab() == TabBoard {
			m.store.SetCurrentTab(TabList)
		} else {
			m.store.SetCurrentTab(TabBoard)
		}
	case key.Matches(msg, m.keys.list):
		m.store.SetShowList(!m.store.ShowList())
	case key.Matches(msg, m.keys.reset):
		m.store.ResetGame(playlistID)
	}
	return m, nil
}

// openBoard switches to the board view, generating a board if the playlist
// doesn't have one yet.
func (m *Model) openBoard(export *models.PlaylistExport) {
	m.export = export
	m.songs = models.SongsFromTracks(export.Tracks)
	m.cursor = 0

	playlistID := export.Playlist.ID
	if len(m.store.GetCurrentBoard(playlistID)) == 0 {
		m.store.GenerateBoard(playlistID, m.songs, m.store.GetBoardSize(playlistID))
	}
	m.loadBoard()
	m.view = BoardView
}

// loadBoard refreshes the cached board and its cell identities.
func (m *Model) loadBoard() {
	m.board = m.store.GetCurrentBoard(m.export.Playlist.ID)
	m.boardIDs = m.store.ResolveBoardIDs(m.export.Playlist.ID, m.songs)
	if m.cursor >= len(m.board) {
		m.cursor = 0
	}
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.service.GetPlaylists(m.ctx)
		return playlistsFetchedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchExport(playlistID string) tea.Cmd {
	return func() tea.Msg {
		export, err := m.service.ExportPlaylist(m.ctx, playlistID)
		return exportFetchedMsg{export: export, err: err}
	}
}

func (m *Model) renderPlaylistList() string {
	helpKeys := []key.Binding{m.keys.enter, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n\n%s", m.playlistList.View(), helpView)
}

func (m *Model) renderBoard() string {
	playlistID := m.export.Playlist.ID
	size := int(m.store.GetBoardSize(playlistID))

	title := styles.title.Render(fmt.Sprintf("%s — %d/%d checked", m.export.Playlist.Name, m.store.CheckedCount(playlistID), len(m.board)))

	cellWidth := 18
	if m.width > 0 {
		if w := (m.width - 4) / size; w < cellWidth && w > 8 {
			cellWidth = w
		}
	}

	rows := make([]string, 0, size)
	for row := 0; row < size; row++ {
		cells := make([]string, 0, size)
		for col := 0; col < size; col++ {
			index := row*size + col
			cells = append(cells, m.renderCell(playlistID, index, cellWidth))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	grid := lipgloss.JoinVertical(lipgloss.Left, rows...)

	body := grid
	if m.store.ShowList() {
		body = lipgloss.JoinHorizontal(lipgloss.Top, grid, "  ", m.songListPanel())
	}

	helpKeys := []key.Binding{m.keys.check, m.keys.redo, m.keys.bigger, m.keys.smaller, m.keys.tab, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)

	return fmt.Sprintf("%s\n%s\n\n%s", title, body, helpView)
}

func (m *Model) renderCell(playlistID string, index, width int) string {
	style := styles.cell
	content := ""

	if index < len(m.board) {
		song := m.board[index]
		content = fmt.Sprintf("%s\n%s", truncate(song.Name, width-2), truncate(song.ArtistLine(), width-2))
		if m.store.IsSongChecked(playlistID, m.boardIDs[index]) {
			style = styles.checked
			content = "✓ " + content
		}
	}
	if index == m.cursor {
		style = styles.cursor
	}

	return style.Width(width).Render(content)
}

// songListPanel renders the full song list with check marks.
func (m *Model) songListPanel() string {
	playlistID := m.export.Playlist.ID

	var b strings.Builder
	for i, song := range m.songs {
		mark := "  "
		line := fmt.Sprintf("%d. %s - %s", i+1, song.ArtistLine(), song.Name)
		if m.store.IsSongChecked(playlistID, models.SongID(song, i)) {
			mark = styles.ok.Render("✓ ")
		}
		b.WriteString(mark + line + "\n")
	}
	return b.String()
}

func (m *Model) renderSongList() string {
	title := styles.title.Render(fmt.Sprintf("Songs in '%s'", m.export.Playlist.Name))
	helpKeys := []key.Binding{m.keys.tab, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s\n%s\n%s", title, m.songListPanel(), helpView)
}

func truncate(s string, max int) string {
	if max <= 1 || len(s) <= max {
		return s
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}
