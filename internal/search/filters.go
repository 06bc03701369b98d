// Package search composes catalog queries, applies residual filters, and
// keeps the paged result state. Remote failures degrade to the built-in
// catalog instead of surfacing an empty screen.
package search

import (
	"strings"

	"github.com/rkoski/bookdex/internal/book"
)

// Sentinel filter values meaning "no restriction". They match the labels
// the UI layer presents and are treated the same as an empty value.
const (
	AllGenres    = "All Genres"
	AllAuthors   = "All Authors"
	AllYears     = "All Years"
	AllRatings   = "All Ratings"
	AllLanguages = "All Languages"
)

// Filters are the residual constraints applied client-side after a fetch.
// Zero values and the All-x sentinels deactivate the corresponding filter.
type Filters struct {
	Genre     string
	Author    string
	Year      string
	Language  string
	MinRating float64
	PriceMin  float64
	// PriceMax of zero means no upper bound.
	PriceMax float64
}

func active(value, sentinel string) bool {
	value = strings.TrimSpace(value)
	return value != "" && !strings.EqualFold(value, sentinel)
}

// GenreActive reports whether the genre filter restricts results.
func (f Filters) GenreActive() bool { return active(f.Genre, AllGenres) }

// AuthorActive reports whether the author filter restricts results.
func (f Filters) AuthorActive() bool { return active(f.Author, AllAuthors) }

// YearActive reports whether the year filter restricts results.
func (f Filters) YearActive() bool { return active(f.Year, AllYears) }

// LanguageActive reports whether the language filter restricts results.
func (f Filters) LanguageActive() bool { return active(f.Language, AllLanguages) }

// Residual drops the genre and author dimensions, which travel inside the
// remote query itself. Re-checking them against the single normalized
// genre field would discard records the service matched on categories the
// normalizer does not keep.
func (f Filters) Residual() Filters {
	f.Genre = ""
	f.Author = ""
	return f
}

// Match reports whether a book satisfies every active filter.
func (f Filters) Match(b book.Book) bool {
	if f.GenreActive() && !strings.Contains(strings.ToLower(b.Genre), strings.ToLower(f.Genre)) {
		return false
	}
	if f.AuthorActive() && !strings.Contains(strings.ToLower(b.Author), strings.ToLower(f.Author)) {
		return false
	}
	if f.YearActive() && b.Year != strings.TrimSpace(f.Year) {
		return false
	}
	if f.LanguageActive() && !strings.EqualFold(b.Language, strings.TrimSpace(f.Language)) {
		return false
	}
	if f.MinRating > 0 && b.Rating < f.MinRating {
		return false
	}
	if f.PriceMin > 0 && b.Price < f.PriceMin {
		return false
	}
	if f.PriceMax > 0 && b.Price > f.PriceMax {
		return false
	}
	return true
}

// Apply returns the books satisfying every active filter, in input order.
func (f Filters) Apply(books []book.Book) []book.Book {
	out := make([]book.Book, 0, len(books))
	for _, b := range books {
		if f.Match(b) {
			out = append(out, b)
		}
	}
	return out
}
