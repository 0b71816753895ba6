// Package server provides HTTP routing, middleware, session management, and
// the playlist API for the web interface.
//
// # Router Infrastructure
//
// The [Router] interface defines HTTP routing with middleware support.
//
// [Middleware] wraps handlers in reverse order (last added executes first), following the standard Go pattern.
//
// The [BasicRouter] implementation uses [http.ServeMux] internally with method filtering.
//
// # OAuth Callback Handler
//
// [OAuthHandler] implements the OAuth2 authorization code callback flow for
// the CLI. The handler validates the state parameter (CSRF protection),
// exchanges the authorization code for tokens, and sends the result through a
// channel. It only processes one callback to prevent replay attacks.
//
// # Web Surface
//
// [App] wires the browser-facing surface: a cookie session (gorilla/sessions)
// holding the Spotify refresh token, [AuthHandler] for login/callback/sign-out,
// and [PlaylistHandler] for the playlist JSON API and PDF downloads. API
// requests without an authenticated session get a 401.
//
// # Handler Interface
//
// Custom handlers implement the [Handler] interface, which wraps the stdlib handler interface and adds routes,
// allowing handlers to register multiple routes to encapsulate route definitions within the implementation.
package server
