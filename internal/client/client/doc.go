// Package client bootstraps the local durable storage of the bookkeeper CLI.
//
// # Overview
//
// InitDatabase opens an SQLite database through the pure-Go modernc driver
// and applies the embedded goose migrations (RunMigrations). OpenSlots picks
// the slot backend named in the configuration, SQLite or Badger, and returns
// it together with a closer for the underlying database.
//
// # Error Handling
//
// An unsupported backend name yields ErrUnknownBackend; callers can match it
// with errors.Is.
package client
