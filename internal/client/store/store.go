// Package store owns the canonical, ordered book collection.
//
// Every mutation goes through BookStore, which writes the whole collection
// to durable storage before returning and then notifies subscribers. When
// the durable write fails the in-memory change is kept and the error,
// matching common.ErrPersistence, is returned next to the result.
package store

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/bookkeeper/internal/client/models"
	"github.com/dmitrijs2005/bookkeeper/internal/common"
	"github.com/dmitrijs2005/bookkeeper/internal/logging"
	"github.com/google/uuid"
)

// Persister is the durable side of the store.
type Persister interface {
	Load(ctx context.Context) []models.Book
	Save(ctx context.Context, books []models.Book) error
}

// Listener receives a snapshot of the collection after each mutation.
// The slice is shared between listeners and must not be modified.
type Listener func(books []models.Book)

// Option customises a BookStore.
type Option func(*BookStore)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *BookStore) { s.now = now }
}

// WithIDGenerator replaces the random id source.
func WithIDGenerator(gen func() string) Option {
	return func(s *BookStore) { s.newID = gen }
}

// WithLogger sets the store logger.
func WithLogger(l logging.Logger) Option {
	return func(s *BookStore) { s.logger = l }
}

type subscription struct {
	id int
	fn Listener
}

// BookStore is safe for concurrent use; mutations are serialized and each
// one includes its durable write.
type BookStore struct {
	mu      sync.Mutex
	books   []models.Book
	version uint64

	persister Persister
	now       func() time.Time
	newID     func() string
	logger    logging.Logger

	// deliveries run one at a time in version order
	notifyMu   sync.Mutex
	notifyCond *sync.Cond
	delivered  uint64

	subMu  sync.Mutex
	subs   []subscription
	nextID int
}

// New bootstraps the store from persister.
func New(ctx context.Context, persister Persister, opts ...Option) *BookStore {
	s := &BookStore{
		persister: persister,
		now:       time.Now,
		newID:     NewID,
		logger:    logging.Nop(),
	}
	s.notifyCond = sync.NewCond(&s.notifyMu)
	for _, o := range opts {
		o(s)
	}

	s.books = persister.Load(ctx)
	if s.books == nil {
		s.books = []models.Book{}
	}
	s.logger.Info(ctx, "collection loaded", "books", len(s.books))
	return s
}

// Test seams for the id sources.
var (
	newUUID   = uuid.NewRandom
	randHex   = common.MakeRandHexString
	pseudoHex = common.MakePseudoRandHexString
)

// NewID returns a random UUID. If that fails it falls back to 16 secure
// random bytes in hex, and to pseudo-random bytes as a last resort.
func NewID() string {
	if id, err := newUUID(); err == nil {
		return id.String()
	}
	if id, err := randHex(16); err == nil {
		return id
	}
	return pseudoHex(16)
}

func (s *BookStore) timestamp() time.Time {
	return s.now().UTC()
}

// List returns a copy of the collection in insertion order.
func (s *BookStore) List() []models.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	return models.Clone(s.books)
}

// Get returns the book with the given id or common.ErrNotFound.
func (s *BookStore) Get(id string) (models.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return models.Book{}, fmt.Errorf("book %q: %w", id, common.ErrNotFound)
	}
	return s.books[i], nil
}

// Version increases with every mutation. Derived views use it as a cache key.
func (s *BookStore) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

func (s *BookStore) indexOf(id string) int {
	return slices.IndexFunc(s.books, func(b models.Book) bool { return b.Id == id })
}

// Create materializes d into a new record and appends it.
func (s *BookStore) Create(ctx context.Context, d models.Draft) (models.Book, error) {
	if err := d.Validate(); err != nil {
		return models.Book{}, err
	}

	s.mu.Lock()
	now := s.timestamp()
	id := s.newID()
	for s.indexOf(id) >= 0 {
		// only reachable with a custom generator
		id = s.newID()
	}
	b := models.Book{Id: id, CreatedAt: now, UpdatedAt: now}.WithDraft(d)
	s.books = append(s.books, b)
	err := s.commit(ctx, "create", b.Id)
	seq, snapshot := s.version, models.Clone(s.books)
	s.mu.Unlock()

	s.publish(seq, snapshot)
	return b, err
}

// Update replaces the editable fields of the record with b.Id. CreatedAt is
// kept from the stored record, UpdatedAt is set to now, and the record keeps
// its position. A missing id yields common.ErrNotFound and changes nothing.
func (s *BookStore) Update(ctx context.Context, b models.Book) (models.Book, error) {
	if err := b.Draft().Validate(); err != nil {
		return models.Book{}, err
	}

	s.mu.Lock()
	i := s.indexOf(b.Id)
	if i < 0 {
		s.mu.Unlock()
		return models.Book{}, fmt.Errorf("book %q: %w", b.Id, common.ErrNotFound)
	}

	cur := s.books[i]
	updated := cur.WithDraft(b.Draft())
	updated.UpdatedAt = s.timestamp()
	if updated.UpdatedAt.Before(cur.UpdatedAt) {
		updated.UpdatedAt = cur.UpdatedAt
	}
	s.books[i] = updated
	err := s.commit(ctx, "update", b.Id)
	seq, snapshot := s.version, models.Clone(s.books)
	s.mu.Unlock()

	s.publish(seq, snapshot)
	return updated, err
}

// Delete removes the record with id and reports whether one was removed.
// The collection is persisted either way.
func (s *BookStore) Delete(ctx context.Context, id string) (bool, error) {
	s.mu.Lock()
	removed := false
	if i := s.indexOf(id); i >= 0 {
		s.books = slices.Delete(s.books, i, i+1)
		removed = true
	}
	err := s.commit(ctx, "delete", id)
	seq, snapshot := s.version, models.Clone(s.books)
	s.mu.Unlock()

	s.publish(seq, snapshot)
	return removed, err
}

// commit bumps the version and persists; callers hold s.mu.
func (s *BookStore) commit(ctx context.Context, op, id string) error {
	s.version++
	if err := s.persister.Save(ctx, s.books); err != nil {
		s.logger.Error(ctx, "collection not persisted", "op", op, "id", id, "error", err)
		return fmt.Errorf("%w: %s %s: %w", common.ErrPersistence, op, id, err)
	}
	s.logger.Debug(ctx, "collection persisted", "op", op, "id", id, "books", len(s.books))
	return nil
}

// Subscribe registers fn to run after every mutation, before the mutating
// call returns. Deliveries never overlap and follow the order in which the
// mutations were committed. fn may read the store but must not mutate it.
// The returned function removes the subscription.
func (s *BookStore) Subscribe(fn Listener) (unsubscribe func()) {
	s.subMu.Lock()
	defer s.subMu.Unlock()

	s.nextID++
	id := s.nextID
	s.subs = append(s.subs, subscription{id: id, fn: fn})

	return func() {
		s.subMu.Lock()
		defer s.subMu.Unlock()
		s.subs = slices.DeleteFunc(s.subs, func(sub subscription) bool { return sub.id == id })
	}
}

// publish delivers the snapshot committed as version seq once every earlier
// version has been delivered. Callers must not hold s.mu.
func (s *BookStore) publish(seq uint64, snapshot []models.Book) {
	s.notifyMu.Lock()
	for s.delivered+1 != seq {
		s.notifyCond.Wait()
	}
	defer func() {
		s.delivered = seq
		s.notifyCond.Broadcast()
		s.notifyMu.Unlock()
	}()

	s.notify(snapshot)
}

func (s *BookStore) notify(snapshot []models.Book) {
	s.subMu.Lock()
	subs := slices.Clone(s.subs)
	s.subMu.Unlock()

	for _, sub := range subs {
		sub.fn(snapshot)
	}
}
