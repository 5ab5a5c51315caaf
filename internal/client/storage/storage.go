// Package storage translates the book collection to and from the single
// durable slot it lives in.
//
// The slot holds a JSON array with one object per book. An absent slot is an
// empty collection, and so is content that cannot be parsed: Load never
// fails. Save serializes the whole collection first and only then
// overwrites the slot, so a serialization failure leaves the previous
// content untouched.
package storage

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/dmitrijs2005/bookkeeper/internal/client/models"
	"github.com/dmitrijs2005/bookkeeper/internal/client/repositories/slots"
	"github.com/dmitrijs2005/bookkeeper/internal/logging"
)

// DefaultKey is the slot name of the collection. Changing it would orphan
// every previously saved catalog.
const DefaultKey = "books"

// marshalBooks is a test seam for json.Marshal.
var marshalBooks = func(books []models.Book) ([]byte, error) {
	return json.Marshal(books)
}

// BookStorage is the durable store adapter for the collection.
type BookStorage struct {
	repo   slots.Repository
	key    string
	logger logging.Logger
}

// NewBookStorage binds the adapter to repo. An empty key selects DefaultKey;
// a nil logger discards diagnostics.
func NewBookStorage(repo slots.Repository, key string, logger logging.Logger) *BookStorage {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = logging.Nop()
	}
	return &BookStorage{repo: repo, key: key, logger: logger.With("slot", key)}
}

// Load returns the persisted collection in its saved order. Missing,
// unreadable or corrupt state yields an empty, non-nil collection.
func (s *BookStorage) Load(ctx context.Context) []models.Book {
	data, err := s.repo.Get(ctx, s.key)
	if err != nil {
		s.logger.Error(ctx, "cannot read durable state, starting empty", "error", err)
		return []models.Book{}
	}
	if data == nil {
		return []models.Book{}
	}

	var books []models.Book
	if err := json.Unmarshal(data, &books); err != nil {
		s.logger.Warn(ctx, "corrupt durable state, starting empty", "error", err, "bytes", len(data))
		return []models.Book{}
	}

	return s.sanitize(ctx, books)
}

// sanitize drops records without an id and repeated ids, keeping the first
// occurrence, so the loaded collection honours id uniqueness.
func (s *BookStorage) sanitize(ctx context.Context, books []models.Book) []models.Book {
	out := make([]models.Book, 0, len(books))
	seen := make(map[string]struct{}, len(books))
	for _, b := range books {
		if b.Id == "" {
			s.logger.Warn(ctx, "dropping stored book without id", "title", b.Title)
			continue
		}
		if _, dup := seen[b.Id]; dup {
			s.logger.Warn(ctx, "dropping stored book with duplicate id", "id", b.Id)
			continue
		}
		seen[b.Id] = struct{}{}
		out = append(out, b)
	}
	return out
}

// Save overwrites the slot with the whole collection.
func (s *BookStorage) Save(ctx context.Context, books []models.Book) error {
	if books == nil {
		books = []models.Book{}
	}

	data, err := marshalBooks(books)
	if err != nil {
		return fmt.Errorf("serialize collection: %w", err)
	}

	if err := s.repo.Set(ctx, s.key, data); err != nil {
		return fmt.Errorf("write collection: %w", err)
	}

	s.logger.Debug(ctx, "collection saved", "books", len(books), "bytes", len(data))
	return nil
}
