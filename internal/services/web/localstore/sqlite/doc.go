// Package sqlite provides the SQLite-backed local storage used by the web
// client to keep its session token across restarts.
package sqlite
