package services

import (
	"context"
	"database/sql"
	"testing"

	"github.com/dmitrijs2005/bookkeeper/internal/client/models"
	"github.com/dmitrijs2005/bookkeeper/internal/client/repositories/slots"
	"github.com/dmitrijs2005/bookkeeper/internal/client/storage"
	"github.com/dmitrijs2005/bookkeeper/internal/client/store"
	"github.com/dmitrijs2005/bookkeeper/internal/common"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE IF NOT EXISTS slots (
  key   TEXT PRIMARY KEY,
  value BLOB NOT NULL
);`)
	require.NoError(t, err)
	return db
}

func setupService(t *testing.T) (LibraryService, *storage.BookStorage) {
	t.Helper()
	st := storage.NewBookStorage(slots.NewSQLiteRepository(setupDB(t)), "", nil)
	s := store.New(context.Background(), st)
	svc, err := NewLibraryService(s, nil)
	require.NoError(t, err)
	return svc, st
}

func seed(t *testing.T, svc LibraryService) (models.Book, models.Book) {
	t.Helper()
	ctx := context.Background()
	dune, err := svc.AddBook(ctx, models.Draft{Title: "Dune", Author: "Herbert", Genre: "SciFi", Description: "Spice."})
	require.NoError(t, err)
	emma, err := svc.AddBook(ctx, models.Draft{Title: "Emma", Author: "Austen", Genre: "Romance", Description: "Matchmaking."})
	require.NoError(t, err)
	return dune, emma
}

func TestLibrary_ReadPaths(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	dune, emma := seed(t, svc)

	require.Equal(t, []models.Book{dune, emma}, svc.ListAll(ctx))
	require.Equal(t, []models.Book{emma}, svc.Filtered(ctx, "em", ""))
	require.Equal(t, []models.Book{dune}, svc.Filtered(ctx, "", "SciFi"))
	require.Equal(t, []models.Book{dune, emma}, svc.Filtered(ctx, "", ""))
	require.ElementsMatch(t, []string{"SciFi", "Romance"}, svc.GenreOptions(ctx))

	got, err := svc.Get(ctx, emma.Id)
	require.NoError(t, err)
	require.Equal(t, emma, got)
}

func TestLibrary_ViewsFollowMutations(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	dune, emma := seed(t, svc)

	// warm the cache
	require.Equal(t, []models.Book{emma}, svc.Filtered(ctx, "em", ""))
	require.Len(t, svc.GenreOptions(ctx), 2)

	dune.Title = "Emergence"
	dune, err := svc.EditBook(ctx, dune)
	require.NoError(t, err)
	require.Equal(t, []models.Book{dune, emma}, svc.Filtered(ctx, "em", ""))

	removed, err := svc.RemoveBook(ctx, emma.Id)
	require.NoError(t, err)
	require.True(t, removed)
	require.Equal(t, []string{"SciFi"}, svc.GenreOptions(ctx))
	require.Equal(t, []models.Book{dune}, svc.Filtered(ctx, "em", ""))
}

func TestLibrary_WritesArePersisted(t *testing.T) {
	svc, st := setupService(t)
	ctx := context.Background()
	dune, emma := seed(t, svc)

	require.Equal(t, []models.Book{dune, emma}, st.Load(ctx))

	_, err := svc.RemoveBook(ctx, dune.Id)
	require.NoError(t, err)
	require.Equal(t, []models.Book{emma}, st.Load(ctx))
}

func TestLibrary_EditMissingIsNotFound(t *testing.T) {
	svc, st := setupService(t)
	ctx := context.Background()
	seed(t, svc)
	before := st.Load(ctx)

	_, err := svc.EditBook(ctx, models.Book{Id: "nonexistent-id", Title: "T", Author: "A", Genre: "G", Description: "D"})
	require.ErrorIs(t, err, common.ErrNotFound)
	require.Equal(t, before, st.Load(ctx))
}

func TestLibrary_RemoveMissingIsNoOp(t *testing.T) {
	svc, _ := setupService(t)
	ctx := context.Background()
	dune, emma := seed(t, svc)

	removed, err := svc.RemoveBook(ctx, "nope")
	require.NoError(t, err)
	require.False(t, removed)
	require.Equal(t, []models.Book{dune, emma}, svc.ListAll(ctx))
}

func TestLibrary_AddInvalid(t *testing.T) {
	svc, _ := setupService(t)

	_, err := svc.AddBook(context.Background(), models.Draft{Title: "only title"})
	require.ErrorIs(t, err, common.ErrValidation)
	require.Empty(t, svc.ListAll(context.Background()))
}

func TestLibrary_Subscribe(t *testing.T) {
	svc, _ := setupService(t)

	var counts []int
	unsubscribe := svc.Subscribe(func(books []models.Book) { counts = append(counts, len(books)) })
	defer unsubscribe()

	seed(t, svc)
	require.Equal(t, []int{1, 2}, counts)
}
