// Package query derives read-only views from a collection snapshot: the
// filtered book list shown while browsing and the genre options of the
// filter. Functions here never modify their input.
package query

import (
	"strings"

	"github.com/dmitrijs2005/bookkeeper/internal/client/models"
)

// Genres returns the distinct genres of books in first-seen order.
func Genres(books []models.Book) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, b := range books {
		if _, ok := seen[b.Genre]; ok {
			continue
		}
		seen[b.Genre] = struct{}{}
		out = append(out, b.Genre)
	}
	return out
}

// Matches reports whether b passes the filter. genre must equal b.Genre
// exactly unless empty; term is matched case-insensitively as a substring of
// the title, author or genre unless empty.
func Matches(b models.Book, term, genre string) bool {
	if genre != "" && b.Genre != genre {
		return false
	}
	if term == "" {
		return true
	}
	return matchesTerm(b, strings.ToLower(term))
}

func matchesTerm(b models.Book, lowered string) bool {
	return strings.Contains(strings.ToLower(b.Title), lowered) ||
		strings.Contains(strings.ToLower(b.Author), lowered) ||
		strings.Contains(strings.ToLower(b.Genre), lowered)
}

// Filter returns the books matching term and genre, in their original order.
// The result never aliases books.
func Filter(books []models.Book, term, genre string) []models.Book {
	if term == "" && genre == "" {
		return models.Clone(books)
	}

	lowered := strings.ToLower(term)
	out := make([]models.Book, 0, len(books))
	for _, b := range books {
		if genre != "" && b.Genre != genre {
			continue
		}
		if term != "" && !matchesTerm(b, lowered) {
			continue
		}
		out = append(out, b)
	}
	return out
}
