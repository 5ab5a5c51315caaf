// Package slots provides durable named slots: each slot holds one opaque
// value under a stable key and is overwritten as a whole on every write.
//
// Two backends implement Repository:
//
//   - SQLiteRepository stores slots in the "slots" table created by the
//     embedded goose migrations (see internal/client/migrations).
//   - BadgerRepository stores slots as keys of an embedded Badger database.
//
// Typical usage
//
//	repo := slots.NewSQLiteRepository(db)
//	_ = repo.Set(ctx, "books", blob)
//	blob, _ := repo.Get(ctx, "books") // nil, nil when the slot is absent
package slots
