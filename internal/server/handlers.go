package server

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/desertthunder/bingo/internal/formatter"
	"github.com/desertthunder/bingo/internal/game"
	"github.com/desertthunder/bingo/internal/models"
	"github.com/desertthunder/bingo/internal/pdf"
	"github.com/desertthunder/bingo/internal/repositories"
	"github.com/desertthunder/bingo/internal/services"
	"github.com/desertthunder/bingo/internal/shared"
)

// ServiceConnector builds a catalog client authenticated with a session's
// refresh token.
type ServiceConnector func(ctx context.Context, refreshToken string) (services.Service, error)

// App wires the web surface: session-based auth plus the playlist API.
type App struct {
	logger   *log.Logger
	sessions *SessionManager
	oauth    services.OAuthService
	connect  ServiceConnector
	store    *game.Store
	cache    *repositories.PlaylistRepository
}

// NewApp assembles the web application. cache may be nil to disable the
// playlist cache.
func NewApp(
	logger *log.Logger,
	sessions *SessionManager,
	oauth services.OAuthService,
	connect ServiceConnector,
	store *game.Store,
	cache *repositories.PlaylistRepository,
) *App {
	return &App{
		logger:   logger,
		sessions: sessions,
		oauth:    oauth,
		connect:  connect,
		store:    store,
		cache:    cache,
	}
}

// Router builds the app's router with logging middleware and all handlers
// registered.
func (a *App) Router() *BasicRouter {
	router := NewBasicRouter()
	router.Use(LoggingMiddleware(a.logger))
	router.Handler(&AuthHandler{app: a})
	router.Handler(&PlaylistHandler{app: a})
	return router
}

func (a *App) writeJSON(w http.ResponseWriter, status int, payload any) {
	data, err := shared.MarshalJSON(payload, false)
	if err != nil {
		a.logger.Error("failed to encode response", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}

func (a *App) writeError(w http.ResponseWriter, status int, message string) {
	a.writeJSON(w, status, map[string]string{"error": message})
}

// authenticated returns a catalog client for the session, or writes a 401.
func (a *App) authenticated(w http.ResponseWriter, r *http.Request) (services.Service, bool) {
	token, ok := a.sessions.RefreshToken(r)
	if !ok {
		a.writeError(w, http.StatusUnauthorized, "not authenticated")
		return nil, false
	}

	svc, err := a.connect(r.Context(), token)
	if err != nil {
		a.logger.Warn("session token rejected", "error", err)
		a.writeError(w, http.StatusUnauthorized, "session expired, sign in again")
		return nil, false
	}
	return svc, true
}

// AuthHandler serves browser login, the OAuth callback, and sign-out.
type AuthHandler struct {
	app *App
}

func (h *AuthHandler) Routes() []string {
	return []string{
		"GET /auth/login",
		"GET /callback",
		"POST /auth/sign-out",
	}
}

func (h *AuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/auth/login":
		h.login(w, r)
	case r.URL.Path == "/callback":
		h.callback(w, r)
	case r.URL.Path == "/auth/sign-out":
		h.signOut(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *AuthHandler) login(w http.ResponseWriter, r *http.Request) {
	state, err := shared.GenerateState()
	if err != nil {
		h.app.writeError(w, http.StatusInternalServerError, "failed to start login")
		return
	}
	if err := h.app.sessions.SetState(w, r, state); err != nil {
		h.app.writeError(w, http.StatusInternalServerError, "failed to start login")
		return
	}

	http.Redirect(w, r, h.app.oauth.GetAuthURL(state), http.StatusFound)
}

func (h *AuthHandler) callback(w http.ResponseWriter, r *http.Request) {
	expected, ok := h.app.sessions.State(r)
	if !ok || r.URL.Query().Get("state") != expected {
		h.app.writeError(w, http.StatusBadRequest, "invalid state parameter")
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.app.writeError(w, http.StatusBadRequest, "authorization failed")
		return
	}

	token, err := h.app.oauth.GetOAuthConfig().Exchange(r.Context(), code)
	if err != nil {
		h.app.logger.Error("token exchange failed", "error", err)
		h.app.writeError(w, http.StatusInternalServerError, "token exchange failed")
		return
	}
	if token.RefreshToken == "" {
		h.app.writeError(w, http.StatusInternalServerError, "provider returned no refresh token")
		return
	}

	if err := h.app.sessions.SetRefreshToken(w, r, token.RefreshToken); err != nil {
		h.app.writeError(w, http.StatusInternalServerError, "failed to save session")
		return
	}

	http.Redirect(w, r, "/", http.StatusFound)
}

func (h *AuthHandler) signOut(w http.ResponseWriter, r *http.Request) {
	if err := h.app.sessions.Clear(w, r); err != nil {
		h.app.writeError(w, http.StatusInternalServerError, "failed to clear session")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PlaylistHandler serves the playlist JSON API and board PDF downloads.
type PlaylistHandler struct {
	app *App
}

func (h *PlaylistHandler) Routes() []string {
	return []string{
		"GET /api/playlists",
		"GET /api/playlists/{id}",
		"GET /api/playlists/{id}/pdf",
		"GET /api/playlists/{id}/cover",
	}
}

func (h *PlaylistHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	svc, ok := h.app.authenticated(w, r)
	if !ok {
		return
	}

	id := r.PathValue("id")
	switch {
	case id == "":
		h.list(w, r, svc)
	case strings.HasSuffix(r.URL.Path, "/pdf"):
		h.printBoards(w, r, svc, id)
	case strings.HasSuffix(r.URL.Path, "/cover"):
		h.cover(w, r, svc, id)
	default:
		h.detail(w, r, svc, id)
	}
}

// list returns the user's playlists with optional limit/offset windowing.
func (h *PlaylistHandler) list(w http.ResponseWriter, r *http.Request, svc services.Service) {
	playlists, err := svc.GetPlaylists(r.Context())
	if err != nil {
		h.app.logger.Error("failed to fetch playlists", "error", err)
		h.app.writeError(w, http.StatusBadGateway, "failed to fetch playlists")
		return
	}

	total := len(playlists)
	offset := queryInt(r, "offset", 0)
	limit := queryInt(r, "limit", total)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := offset + limit
	if limit < 0 || end > total {
		end = total
	}

	h.app.writeJSON(w, http.StatusOK, map[string]any{
		"playlists": playlists[offset:end],
		"total":     total,
	})
}

// detail returns a playlist with its derived song list and game progress.
func (h *PlaylistHandler) detail(w http.ResponseWriter, r *http.Request, svc services.Service, id string) {
	export, err := h.export(r.Context(), svc, id)
	if err != nil {
		h.app.logger.Error("failed to fetch playlist", "playlist", id, "error", err)
		h.app.writeError(w, http.StatusBadGateway, "failed to fetch playlist")
		return
	}

	songs := models.SongsFromTracks(export.Tracks)
	checked := make([]string, 0)
	for songID := range h.app.store.CheckedSongs(id) {
		checked = append(checked, songID)
	}

	h.app.writeJSON(w, http.StatusOK, map[string]any{
		"playlist":     export.Playlist,
		"songs":        songs,
		"boardSize":    h.app.store.GetBoardSize(id),
		"board":        h.app.store.GetCurrentBoard(id),
		"checkedSongs": checked,
	})
}

// printBoards streams a freshly rendered PDF. Invalid size or count query
// values are a 400; nothing is rendered for invalid input.
func (h *PlaylistHandler) printBoards(w http.ResponseWriter, r *http.Request, svc services.Service, id string) {
	size := h.app.store.GetBoardSize(id)
	if raw := r.URL.Query().Get("size"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			h.app.writeError(w, http.StatusBadRequest, shared.ErrInvalidBoardSize.Error())
			return
		}
		size, err = models.ParseBoardSize(n)
		if err != nil {
			h.app.writeError(w, http.StatusBadRequest, shared.ErrInvalidBoardSize.Error())
			return
		}
	}

	count := 1
	if raw := r.URL.Query().Get("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > 100 {
			h.app.writeError(w, http.StatusBadRequest, shared.ErrInvalidBoardCount.Error())
			return
		}
		count = n
	}

	export, err := h.export(r.Context(), svc, id)
	if err != nil {
		h.app.logger.Error("failed to fetch playlist", "playlist", id, "error", err)
		h.app.writeError(w, http.StatusBadGateway, "failed to fetch playlist")
		return
	}

	data, err := pdf.Render(pdf.Options{
		Songs:          models.SongsFromTracks(export.Tracks),
		BoardSize:      size,
		NumberOfBoards: count,
		PlaylistName:   export.Playlist.Name,
	})
	if err != nil {
		h.app.logger.Error("failed to render boards", "playlist", id, "error", err)
		h.app.writeError(w, http.StatusInternalServerError, "failed to render boards")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", pdf.Filename(export.Playlist.Name)))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// cover proxies the playlist's cover image so the browser never talks to the
// catalog CDN directly.
func (h *PlaylistHandler) cover(w http.ResponseWriter, r *http.Request, svc services.Service, id string) {
	export, err := h.export(r.Context(), svc, id)
	if err != nil {
		h.app.logger.Error("failed to fetch playlist", "playlist", id, "error", err)
		h.app.writeError(w, http.StatusBadGateway, "failed to fetch playlist")
		return
	}

	if export.Playlist.Image == "" {
		h.app.writeError(w, http.StatusNotFound, "playlist has no cover image")
		return
	}

	data, err := formatter.DownloadImage(export.Playlist.Image)
	if err != nil {
		h.app.logger.Warn("failed to download cover", "playlist", id, "error", err)
		h.app.writeError(w, http.StatusBadGateway, "failed to download cover image")
		return
	}

	w.Header().Set("Content-Type", http.DetectContentType(data))
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.Write(data)
}

// export fetches a playlist export, preferring the local cache and filling it
// on a miss. Cache failures degrade to direct fetches.
func (h *PlaylistHandler) export(ctx context.Context, svc services.Service, id string) (*models.PlaylistExport, error) {
	if h.app.cache != nil {
		if cached, err := h.app.cache.GetByServiceID(svc.Name(), id); err == nil {
			export := cached.Export()
			return &export, nil
		}
	}

	export, err := svc.ExportPlaylist(ctx, id)
	if err != nil {
		return nil, err
	}

	if h.app.cache != nil {
		entry := models.NewCachedPlaylist(0, svc.Name(), id, *export)
		if err := h.app.cache.Create(entry); err != nil {
			h.app.logger.Warn("failed to cache playlist", "playlist", id, "error", err)
		}
	}
	return export, nil
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
