package server

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	sessionName = "music_bingo_session"

	refreshTokenKey = "refresh_token"
	oauthStateKey   = "oauth_state"

	// Long-lived session so the refresh token survives browser restarts; the
	// token itself is revocable from the Spotify account page.
	sessionMaxAge = 60 * 60 * 24 * 365 * 10
)

// SessionManager wraps a gorilla/sessions cookie store holding the Spotify
// refresh token and the in-flight OAuth state.
type SessionManager struct {
	store *sessions.CookieStore
}

// NewSessionManager creates a cookie-backed session store signed with secret.
func NewSessionManager(secret string) *SessionManager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return &SessionManager{store: store}
}

func (m *SessionManager) session(r *http.Request) *sessions.Session {
	// Get never fails for cookie stores beyond returning a fresh session.
	s, _ := m.store.Get(r, sessionName)
	return s
}

// RefreshToken returns the session's stored refresh token, if any.
func (m *SessionManager) RefreshToken(r *http.Request) (string, bool) {
	s := m.session(r)
	token, ok := s.Values[refreshTokenKey].(string)
	return token, ok && token != ""
}

// SetRefreshToken stores the refresh token and clears any in-flight state.
func (m *SessionManager) SetRefreshToken(w http.ResponseWriter, r *http.Request, token string) error {
	s := m.session(r)
	s.Values[refreshTokenKey] = token
	delete(s.Values, oauthStateKey)
	return s.Save(r, w)
}

// State returns the in-flight OAuth state token, if any.
func (m *SessionManager) State(r *http.Request) (string, bool) {
	s := m.session(r)
	state, ok := s.Values[oauthStateKey].(string)
	return state, ok && state != ""
}

// SetState stores the OAuth state token for callback validation.
func (m *SessionManager) SetState(w http.ResponseWriter, r *http.Request, state string) error {
	s := m.session(r)
	s.Values[oauthStateKey] = state
	return s.Save(r, w)
}

// Clear expires the session cookie.
func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	s := m.session(r)
	s.Values = map[any]any{}
	s.Options.MaxAge = -1
	return s.Save(r, w)
}
