package server

import (
	"fmt"
	"net/http"
	"sync"

	"golang.org/x/oauth2"

	"github.com/desertthunder/bingo/internal/shared"
)

// OAuthResult is the outcome of a loopback authorization flow: an exchanged
// token, or the error that ended the flow.
type OAuthResult struct {
	Token *oauth2.Token
	err   error
}

func (o *OAuthResult) Error() error { return o.err }

// oauthSuccessPage is shown in the browser once the CLI holds a token.
const oauthSuccessPage = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Music Bingo</title>
  <style>
    body { font-family: system-ui, sans-serif; background: #191414; color: #fff;
           display: grid; place-items: center; min-height: 100vh; margin: 0; }
    main { text-align: center; }
    h1 { color: #1DB954; }
    p { color: #b3b3b3; }
  </style>
</head>
<body>
  <main>
    <h1>Music Bingo is connected</h1>
    <p>Spotify sign-in complete. Close this tab and head back to the terminal.</p>
  </main>
</body>
</html>
`

// OAuthHandler receives the provider's redirect during the CLI login flow.
//
// The CLI starts a short-lived loopback server, registers this handler on it,
// and waits on Result for exactly one outcome.
type OAuthHandler struct {
	config *oauth2.Config
	state  string

	results chan OAuthResult
	settle  sync.Once

	mu   sync.Mutex
	done bool
}

// NewOAuthHandler creates a callback handler for one authorization attempt.
// state must be the random value carried in the authorization URL.
func NewOAuthHandler(config *oauth2.Config, state string) *OAuthHandler {
	return &OAuthHandler{
		config:  config,
		state:   state,
		results: make(chan OAuthResult, 1),
	}
}

// Routes returns the HTTP routes this handler serves.
func (h *OAuthHandler) Routes() []string {
	return []string{"GET /callback"}
}

// ServeHTTP validates the redirect, exchanges the authorization code, and
// settles the flow's result. Repeat requests are rejected so a stray browser
// refresh cannot replay the code.
func (h *OAuthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	already := h.done
	h.done = true
	h.mu.Unlock()
	if already {
		h.reject(w, http.StatusBadRequest, "login already completed")
		return
	}

	query := r.URL.Query()
	if query.Get("state") != h.state {
		h.settleResult(OAuthResult{err: fmt.Errorf("state mismatch in oauth redirect")})
		h.reject(w, http.StatusBadRequest, "state mismatch")
		return
	}

	code := query.Get("code")
	if code == "" {
		err := fmt.Errorf("authorization denied: %s (%s)",
			query.Get("error"), query.Get("error_description"))
		h.settleResult(OAuthResult{err: err})
		h.reject(w, http.StatusBadRequest, "authorization denied")
		return
	}

	token, err := h.config.Exchange(r.Context(), code)
	if err != nil {
		h.settleResult(OAuthResult{err: fmt.Errorf("token exchange failed: %w", err)})
		h.reject(w, http.StatusInternalServerError, "token exchange failed")
		return
	}

	h.settleResult(OAuthResult{Token: token})

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, oauthSuccessPage)
}

// Result yields the flow's single outcome; the channel is closed after it.
func (h *OAuthHandler) Result() <-chan OAuthResult {
	return h.results
}

func (h *OAuthHandler) settleResult(result OAuthResult) {
	h.settle.Do(func() {
		h.results <- result
		close(h.results)
	})
}

// reject mirrors the JSON error shape the app's API handlers use.
func (h *OAuthHandler) reject(w http.ResponseWriter, status int, message string) {
	data, err := shared.MarshalJSON(map[string]string{"error": message}, false)
	if err != nil {
		http.Error(w, message, status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(data)
}
