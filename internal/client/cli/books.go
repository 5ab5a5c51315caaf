package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/dmitrijs2005/bookkeeper/internal/client/models"
	"github.com/dmitrijs2005/bookkeeper/internal/common"
)

// report prints err for the user and logs it.
func (a *App) report(ctx context.Context, op string, err error) error {
	var verr *models.ValidationError
	switch {
	case errors.As(err, &verr):
		fmt.Fprintln(a.out, "Invalid input:")
		names := make([]string, 0, len(verr.Fields))
		for name := range verr.Fields {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(a.out, "  %s %s\n", name, verr.Fields[name])
		}
	case errors.Is(err, common.ErrNotFound):
		fmt.Fprintln(a.out, "Book not found")
	case errors.Is(err, common.ErrPersistence):
		fmt.Fprintln(a.out, "Change applied but not saved to disk:", err)
	default:
		fmt.Fprintln(a.out, "Error:", err)
	}
	a.logger.Warn(ctx, "command failed", "op", op, "error", err)
	return err
}

// List prints the books matching the current filters.
func (a *App) List(ctx context.Context) error {
	books := a.library.Filtered(ctx, a.term, a.genre)
	if len(books) == 0 {
		if a.term != "" || a.genre != "" {
			fmt.Fprintln(a.out, "No books match the current filters")
		} else {
			fmt.Fprintln(a.out, "The catalog is empty")
		}
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tAUTHOR\tGENRE")
	for _, b := range books {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", b.Id, b.Title, b.Author, b.Genre)
	}
	return tw.Flush()
}

// Search sets the search term and lists the result.
func (a *App) Search(ctx context.Context, term string) error {
	a.term = strings.TrimSpace(term)
	return a.List(ctx)
}

// FilterGenre sets the genre filter and lists the result. Only genres
// present in the catalog are accepted.
func (a *App) FilterGenre(ctx context.Context, genre string) error {
	genre = strings.TrimSpace(genre)
	if genre != "" && !slices.Contains(a.library.GenreOptions(ctx), genre) {
		fmt.Fprintf(a.out, "Unknown genre %q, see 'genres'\n", genre)
		return nil
	}
	a.genre = genre
	return a.List(ctx)
}

// Genres prints the distinct genres in alphabetical order.
func (a *App) Genres(ctx context.Context) error {
	genres := a.library.GenreOptions(ctx)
	if len(genres) == 0 {
		fmt.Fprintln(a.out, "No genres yet")
		return nil
	}
	slices.Sort(genres)
	for _, g := range genres {
		fmt.Fprintln(a.out, g)
	}
	return nil
}

// ClearFilters drops the search term and the genre filter.
func (a *App) ClearFilters(ctx context.Context) error {
	a.term, a.genre = "", ""
	return a.List(ctx)
}

// Show prints every field of one book.
func (a *App) Show(ctx context.Context, id string) error {
	b, err := a.library.Get(ctx, id)
	if err != nil {
		return a.report(ctx, "show", err)
	}

	fmt.Fprintln(a.out, b.Title)
	fmt.Fprintln(a.out, "by", b.Author)
	fmt.Fprintln(a.out, "Genre:", b.Genre)
	fmt.Fprintln(a.out, "Cover:", describeCover(b))
	fmt.Fprintln(a.out, "Added:", b.CreatedAt.Local().Format(time.DateTime))
	fmt.Fprintln(a.out, "Updated:", b.UpdatedAt.Local().Format(time.DateTime))
	fmt.Fprintln(a.out)
	fmt.Fprintln(a.out, b.Description)
	return nil
}

func describeCover(b models.Book) string {
	if b.CoverURL == "" {
		return b.DisplayCover() + " (default)"
	}
	if data, err := models.DecodeCover(b.CoverURL); err == nil {
		return fmt.Sprintf("embedded JPEG, %d bytes", len(data))
	}
	return b.CoverURL
}

// Add asks for every field and adds the book.
func (a *App) Add(ctx context.Context) error {
	d, err := a.inputDraft(models.Draft{})
	if err != nil {
		return a.report(ctx, "add", err)
	}

	b, err := a.library.AddBook(ctx, d)
	if err != nil {
		return a.report(ctx, "add", err)
	}
	fmt.Fprintln(a.out, "Added", b.Id)
	return nil
}

// Edit asks for every field of book id. Blank answers keep the current value.
func (a *App) Edit(ctx context.Context, id string) error {
	b, err := a.library.Get(ctx, id)
	if err != nil {
		return a.report(ctx, "edit", err)
	}

	d, err := a.inputDraft(b.Draft())
	if err != nil {
		return a.report(ctx, "edit", err)
	}

	if _, err := a.library.EditBook(ctx, b.WithDraft(d)); err != nil {
		return a.report(ctx, "edit", err)
	}
	fmt.Fprintln(a.out, "Updated", id)
	return nil
}

// Delete removes book id once the user confirms.
func (a *App) Delete(ctx context.Context, id string) error {
	b, err := a.library.Get(ctx, id)
	if err != nil {
		return a.report(ctx, "delete", err)
	}

	ok, err := GetConfirmation(a.reader, fmt.Sprintf("Delete %q?", b.Title), a.prompts)
	if err != nil {
		return a.report(ctx, "delete", err)
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	if _, err := a.library.RemoveBook(ctx, id); err != nil {
		return a.report(ctx, "delete", err)
	}
	fmt.Fprintln(a.out, "Deleted", id)
	return nil
}

// inputDraft prompts for the fields of a draft. Every blank answer keeps
// the value from cur; for the cover, "-" removes it.
func (a *App) inputDraft(cur models.Draft) (models.Draft, error) {
	d := cur

	fields := []struct {
		prompt string
		dst    *string
	}{
		{"Title", &d.Title},
		{"Author", &d.Author},
		{"Genre", &d.Genre},
	}
	for _, f := range fields {
		v, err := GetSimpleText(a.reader, withCurrent(f.prompt, *f.dst), a.prompts)
		if err != nil {
			return models.Draft{}, fmt.Errorf("read %s: %w", strings.ToLower(f.prompt), err)
		}
		if v != "" {
			*f.dst = v
		}
	}

	desc, err := GetMultiline(a.reader, withCurrent("Description", d.Description), a.prompts)
	if err != nil {
		return models.Draft{}, fmt.Errorf("read description: %w", err)
	}
	if desc != "" {
		d.Description = desc
	}

	coverPrompt := "Cover: path to a .jpg file or an http(s) URL"
	if cur.CoverURL != "" {
		coverPrompt += ` ("-" removes the current one)`
	}
	cover, err := GetSimpleText(a.reader, coverPrompt, a.prompts)
	if err != nil {
		return models.Draft{}, fmt.Errorf("read cover: %w", err)
	}
	switch {
	case cover == "":
	case cover == "-":
		d.CoverURL = ""
	case strings.HasPrefix(cover, "http://"), strings.HasPrefix(cover, "https://"):
		d.CoverURL = cover
	default:
		encoded, err := models.LoadCover(cover)
		if err != nil {
			return models.Draft{}, err
		}
		d.CoverURL = encoded
	}

	return d, nil
}
