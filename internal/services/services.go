// package services defines interface Service for interacting with catalog HTTP APIs
package services

import (
	"context"

	"github.com/desertthunder/bingo/internal/models"
	"golang.org/x/oauth2"
)

// Service defines the interface for music catalog providers that supply the
// playlists and tracks boards are built from.
type Service interface {
	// Authenticate performs OAuth or token authentication with the service.
	// Returns an error if authentication fails.
	Authenticate(ctx context.Context, credentials map[string]string) error

	// GetPlaylists retrieves all playlists for the authenticated user.
	GetPlaylists(ctx context.Context) ([]models.Playlist, error)

	// GetPlaylist retrieves a specific playlist by ID.
	GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error)

	// ExportPlaylist exports a playlist with all its tracks.
	ExportPlaylist(ctx context.Context, playlistID string) (*models.PlaylistExport, error)

	// Name returns the name of the service (e.g., "Spotify")
	Name() string
}

// OAuthService is implemented by services that authenticate through an OAuth2
// authorization-code flow with a browser round trip.
type OAuthService interface {
	Service

	// GetAuthURL returns the provider authorization URL for the given CSRF state token.
	GetAuthURL(state string) string

	// GetOAuthConfig exposes the underlying OAuth2 config for callback handling.
	GetOAuthConfig() *oauth2.Config

	// OAuthenticate authenticates with previously stored tokens.
	OAuthenticate(ctx context.Context, credentials map[string]string) error
}
