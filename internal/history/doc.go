// Package history persists run records and the TMDB lookup cache in a
// SQLite database under the state directory.
package history
