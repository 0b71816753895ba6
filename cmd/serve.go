package main

import (
	"context"
	"fmt"
	"net/http"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/bingo/internal/server"
	"github.com/desertthunder/bingo/internal/services"
	"github.com/desertthunder/bingo/internal/shared"
)

// Serve starts the web interface: session-based Spotify auth plus the
// playlist and board-printing API.
func (r *Runner) Serve(ctx context.Context, cmd *cli.Command) error {
	store, err := r.gameStore()
	if err != nil {
		return err
	}

	credentials := r.config.Credentials.Spotify.Map()

	oauthService, ok := r.spotify.(services.OAuthService)
	if !ok {
		svc, err := services.NewSpotifyService(credentials)
		if err != nil {
			return fmt.Errorf("%w: set Spotify credentials in config.toml", shared.ErrMissingCredentials)
		}
		oauthService = svc
	}

	// Each session gets its own client bound to that session's refresh token.
	connect := func(ctx context.Context, refreshToken string) (services.Service, error) {
		svc, err := services.NewSpotifyService(credentials)
		if err != nil {
			return nil, err
		}
		if err := svc.OAuthenticate(ctx, map[string]string{"refresh_token": refreshToken}); err != nil {
			return nil, err
		}
		return svc, nil
	}

	sessions := server.NewSessionManager(r.config.Server.SessionSecret)
	logger := shared.WithLogger(r.logger, "component", "server")
	app := server.NewApp(logger, sessions, oauthService, connect, store, r.cache)

	host := r.config.Server.Host
	if v := cmd.String("host"); v != "" {
		host = v
	}
	port := r.config.Server.Port
	if v := cmd.Int("port"); v != 0 {
		port = v
	}

	addr := fmt.Sprintf("%s:%d", host, port)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: app.Router(),
	}

	r.logger.Info("starting web interface", "addr", addr)
	r.writePlain("→ Listening on http://%s\n", addr)
	r.writePlain("→ Sign in at http://%s/auth/login\n", addr)

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
