// Package services implements catalog API clients.
//
// [SpotifyService] is the production implementation: a thin client over the
// Spotify Web API authenticated via [golang.org/x/oauth2], rate limited with
// [golang.org/x/time/rate]. It fetches the authenticated user's playlists and
// pages through playlist tracks, mapping wire responses to the neutral DTOs in
// the models package. A 401 from the API surfaces as shared.ErrTokenExpired so
// callers can trigger reauthorization.
package services
