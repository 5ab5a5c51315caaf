// Package config loads runtime configuration for the bookkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected via -c or -config.
//  3. Command-line flags, which override earlier values.
//
// Supported flags
//
//	-d string   database file (sqlite) or directory (badger)
//	-b string   storage backend: sqlite or badger
//	-l string   log level
//
// # JSON schema
//
//	{
//	  "db_path": "bookkeeper.db",
//	  "backend": "sqlite",
//	  "log_level": "info",
//	  "storage_key": "books"
//	}
//
// The storage key can only be changed through JSON.
package config
