package query

import (
	"fmt"
	"slices"

	"github.com/dmitrijs2005/bookkeeper/internal/client/models"
	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultMemoSize bounds the number of cached filter results.
const DefaultMemoSize = 64

type memoKey struct {
	version uint64
	term    string
	genre   string
}

// Memo caches Filter and Genres results per collection version. Callers
// pass the version of the snapshot they hold; a new version never hits
// entries computed for an older one.
type Memo struct {
	filtered *lru.Cache[memoKey, []models.Book]
	genres   *lru.Cache[uint64, []string]
}

// NewMemo creates a memo holding up to size filter results.
func NewMemo(size int) (*Memo, error) {
	if size <= 0 {
		size = DefaultMemoSize
	}
	filtered, err := lru.New[memoKey, []models.Book](size)
	if err != nil {
		return nil, fmt.Errorf("filter cache: %w", err)
	}
	genres, err := lru.New[uint64, []string](4)
	if err != nil {
		return nil, fmt.Errorf("genre cache: %w", err)
	}
	return &Memo{filtered: filtered, genres: genres}, nil
}

// Filter is query.Filter memoized on (version, term, genre).
func (m *Memo) Filter(version uint64, books []models.Book, term, genre string) []models.Book {
	key := memoKey{version: version, term: term, genre: genre}
	if hit, ok := m.filtered.Get(key); ok {
		return models.Clone(hit)
	}
	res := Filter(books, term, genre)
	m.filtered.Add(key, models.Clone(res))
	return res
}

// Genres is query.Genres memoized on version.
func (m *Memo) Genres(version uint64, books []models.Book) []string {
	if hit, ok := m.genres.Get(version); ok {
		return slices.Clone(hit)
	}
	res := Genres(books)
	m.genres.Add(version, slices.Clone(res))
	return res
}

// Purge drops every cached result.
func (m *Memo) Purge() {
	m.filtered.Purge()
	m.genres.Purge()
}

// Len reports how many filter results are cached.
func (m *Memo) Len() int {
	return m.filtered.Len()
}
