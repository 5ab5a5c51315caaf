// Package services exposes the catalog to front-ends: the read paths
// (ListAll, Filtered, GenreOptions, Get) and the write paths (AddBook,
// EditBook, RemoveBook).
package services

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/bookkeeper/internal/client/models"
	"github.com/dmitrijs2005/bookkeeper/internal/client/query"
	"github.com/dmitrijs2005/bookkeeper/internal/client/store"
	"github.com/dmitrijs2005/bookkeeper/internal/logging"
)

type LibraryService interface {
	ListAll(ctx context.Context) []models.Book
	Filtered(ctx context.Context, term, genre string) []models.Book
	GenreOptions(ctx context.Context) []string
	Get(ctx context.Context, id string) (models.Book, error)

	AddBook(ctx context.Context, d models.Draft) (models.Book, error)
	EditBook(ctx context.Context, b models.Book) (models.Book, error)
	RemoveBook(ctx context.Context, id string) (bool, error)

	// Subscribe registers fn to run after every change of the collection.
	Subscribe(fn store.Listener) (unsubscribe func())
}

type libraryService struct {
	store  *store.BookStore
	memo   *query.Memo
	logger logging.Logger
}

// NewLibraryService wraps s. Filtered views are memoized per collection
// version and the cache is dropped whenever the collection changes.
func NewLibraryService(s *store.BookStore, logger logging.Logger) (LibraryService, error) {
	memo, err := query.NewMemo(query.DefaultMemoSize)
	if err != nil {
		return nil, fmt.Errorf("init query cache: %w", err)
	}
	if logger == nil {
		logger = logging.Nop()
	}

	svc := &libraryService{store: s, memo: memo, logger: logger}
	s.Subscribe(func([]models.Book) { memo.Purge() })
	return svc, nil
}

// snapshot reads the collection together with the version it belongs to.
// A mutation may slip in between the two reads; retrying until the version
// is stable keeps cache keys honest.
func (s *libraryService) snapshot() (uint64, []models.Book) {
	for {
		v := s.store.Version()
		books := s.store.List()
		if s.store.Version() == v {
			return v, books
		}
	}
}

func (s *libraryService) ListAll(ctx context.Context) []models.Book {
	return s.store.List()
}

func (s *libraryService) Filtered(ctx context.Context, term, genre string) []models.Book {
	v, books := s.snapshot()
	res := s.memo.Filter(v, books, term, genre)
	s.logger.Debug(ctx, "filtered", "term", term, "genre", genre, "matches", len(res))
	return res
}

func (s *libraryService) GenreOptions(ctx context.Context) []string {
	v, books := s.snapshot()
	return s.memo.Genres(v, books)
}

func (s *libraryService) Get(ctx context.Context, id string) (models.Book, error) {
	return s.store.Get(id)
}

func (s *libraryService) AddBook(ctx context.Context, d models.Draft) (models.Book, error) {
	b, err := s.store.Create(ctx, d)
	if err != nil {
		return b, err
	}
	s.logger.Info(ctx, "book added", "id", b.Id, "title", b.Title)
	return b, nil
}

func (s *libraryService) EditBook(ctx context.Context, b models.Book) (models.Book, error) {
	updated, err := s.store.Update(ctx, b)
	if err != nil {
		return updated, err
	}
	s.logger.Info(ctx, "book updated", "id", updated.Id)
	return updated, nil
}

func (s *libraryService) RemoveBook(ctx context.Context, id string) (bool, error) {
	removed, err := s.store.Delete(ctx, id)
	if err != nil {
		return removed, err
	}
	if removed {
		s.logger.Info(ctx, "book removed", "id", id)
	}
	return removed, nil
}

func (s *libraryService) Subscribe(fn store.Listener) func() {
	return s.store.Subscribe(fn)
}
