// Package ui implements the interactive terminal interface using bubbletea's Elm architecture.
//
// Views map one-to-one onto the application's routes:
//   - [RouteHome] : public landing view
//   - [RouteLogin] : public login form
//   - [RouteForbidden] : public "insufficient role" view
//   - [RouteMovies] : catalog browser with reviews, any authenticated role
//   - [RouteAdmin] : movie CRUD manager, ADMIN only
//   - [RouteNotFound] : catch-all
//
// Navigation goes through [Model.navigate], which consults the pure route
// guard (session.Decide) and interprets its action: render, redirect, or a
// loading placeholder while the startup session restore is in flight. All
// session side effects stay in the session controller; the gateway's 401
// teardown surfaces here only as a tagged error that redirects to login.
//
// Keyboard navigation uses vim-style bindings (j/k, enter, esc, q) with
// contextual help displayed via charmbracelet/bubbles/help.
package ui
