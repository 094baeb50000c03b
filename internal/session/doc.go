// Package session owns the login session lifecycle for the CINEBASE client.
//
// Three pieces cooperate:
//   - [Store] : durable storage for the bearer token and cached profile,
//     two independent files written and cleared together.
//   - [Controller] : the single authoritative owner of the in-memory
//     [Session] state, exposing Restore/Login/Logout and read-only snapshots.
//   - [Decide] : the pure route-guard function mapping a session snapshot and
//     a required role to a rendering [Action].
//
// Restore must complete (Loading=false) before any protected view renders;
// the guard's loading check enforces that ordering without a lock.
package session
