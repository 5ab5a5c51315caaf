// Package models defines the book record and the input types used to
// create and edit it.
package models

import "time"

// DefaultCoverURL is shown for records that carry no cover of their own.
const DefaultCoverURL = "https://images.unsplash.com/photo-1543002588-bfa74002ed7e?auto=format&fit=crop&q=80&w=2574&ixlib=rb-4.0.3"

// Book is one catalogued book. The JSON field names are part of the durable
// format and must not change.
type Book struct {
	// Id is an opaque random identifier, immutable after creation.
	Id string `json:"id" validate:"required"`

	Title       string `json:"title" validate:"notblank"`
	Author      string `json:"author" validate:"notblank"`
	Genre       string `json:"genre" validate:"notblank"`
	Description string `json:"description" validate:"notblank"`

	// CoverURL is empty, a data:image/jpeg;base64 URI, or a remote URL.
	CoverURL string `json:"coverUrl,omitempty" validate:"cover"`

	// CreatedAt is set once; UpdatedAt moves on every successful update.
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Draft is a book as entered by the user, before the store assigns its
// identity and timestamps.
type Draft struct {
	Title       string `validate:"notblank"`
	Author      string `validate:"notblank"`
	Genre       string `validate:"notblank"`
	Description string `validate:"notblank"`
	CoverURL    string `validate:"cover"`
}

// Draft returns the user-editable part of b.
func (b Book) Draft() Draft {
	return Draft{
		Title:       b.Title,
		Author:      b.Author,
		Genre:       b.Genre,
		Description: b.Description,
		CoverURL:    b.CoverURL,
	}
}

// WithDraft returns a copy of b whose editable fields are replaced by d.
// Identity and timestamps are left untouched.
func (b Book) WithDraft(d Draft) Book {
	b.Title = d.Title
	b.Author = d.Author
	b.Genre = d.Genre
	b.Description = d.Description
	b.CoverURL = d.CoverURL
	return b
}

// DisplayCover returns the cover to render, falling back to DefaultCoverURL.
func (b Book) DisplayCover() string {
	if b.CoverURL == "" {
		return DefaultCoverURL
	}
	return b.CoverURL
}

// Clone returns a copy of books that shares no backing array with it.
func Clone(books []Book) []Book {
	out := make([]Book, len(books))
	copy(out, books)
	return out
}
