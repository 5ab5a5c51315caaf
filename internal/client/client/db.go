package client

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"

	"github.com/dmitrijs2005/bookkeeper/internal/client/migrations"
	"github.com/dmitrijs2005/bookkeeper/internal/client/repositories/slots"
	"github.com/dmitrijs2005/bookkeeper/internal/filex"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite" // pure-Go SQLite driver
)

// Supported storage backends.
const (
	BackendSQLite = "sqlite"
	BackendBadger = "badger"
)

func RunMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	return goose.UpContext(ctx, db, ".")
}

// InitDatabase opens (creating if needed) the SQLite database at dsn and
// brings its schema up to date.
func InitDatabase(ctx context.Context, dsn string) (*sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	if err := RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}
	return db, nil
}

// OpenSlots opens the slot repository for the given backend. path is the
// SQLite file or the Badger directory. The returned closer releases the
// underlying database.
func OpenSlots(ctx context.Context, backend, path string, logger *slog.Logger) (slots.Repository, io.Closer, error) {
	switch backend {
	case BackendSQLite:
		if err := filex.EnsureParentDir(path); err != nil {
			return nil, nil, err
		}
		db, err := InitDatabase(ctx, path)
		if err != nil {
			return nil, nil, err
		}
		return slots.NewSQLiteRepository(db), db, nil

	case BackendBadger:
		db, err := slots.OpenBadger(slots.BadgerOptions{Dir: path, Logger: logger})
		if err != nil {
			return nil, nil, err
		}
		return slots.NewBadgerRepository(db), db, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", ErrUnknownBackend, backend)
	}
}
