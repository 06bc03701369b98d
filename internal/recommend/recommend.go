// Package recommend derives reading suggestions and preference profiles
// from already-fetched result sets. It never talks to the network.
package recommend

import (
	"sort"
	"strings"
	"sync"

	"github.com/rkoski/bookdex/internal/book"
)

// maxSuggestions bounds how many books TopRated returns.
const maxSuggestions = 6

// preferenceCap bounds each remembered preference list.
const preferenceCap = 5

// TopRated returns up to six books ordered by rating, highest first. The
// sort is stable, so books with equal ratings keep their fetched order.
// The input slice is not modified.
func TopRated(books []book.Book) []book.Book {
	ranked := make([]book.Book, len(books))
	copy(ranked, books)

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating > ranked[j].Rating
	})

	if len(ranked) > maxSuggestions {
		ranked = ranked[:maxSuggestions]
	}
	return ranked
}

// Preferences accumulates the genres and authors of books the user has
// shown interest in. Each list keeps the five most recent unique values.
// Safe for concurrent use.
type Preferences struct {
	mu      sync.Mutex
	genres  []string
	authors []string
}

// NewPreferences returns an empty preference profile.
func NewPreferences() *Preferences {
	return &Preferences{}
}

// Record notes a book the user engaged with, updating both lists.
func (p *Preferences) Record(b book.Book) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.genres = remember(p.genres, b.Genre, book.Uncategorized)
	p.authors = remember(p.authors, b.Author, book.UnknownAuthor)
}

// Genres returns the remembered genres, most recent first.
func (p *Preferences) Genres() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.genres))
	copy(out, p.genres)
	return out
}

// Authors returns the remembered authors, most recent first.
func (p *Preferences) Authors() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.authors))
	copy(out, p.authors)
	return out
}

// Matches reports whether a book overlaps the profile on genre or author.
func (p *Preferences) Matches(b book.Book) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, g := range p.genres {
		if strings.EqualFold(g, b.Genre) {
			return true
		}
	}
	for _, a := range p.authors {
		if strings.EqualFold(a, b.Author) {
			return true
		}
	}
	return false
}

// remember prepends a value, dropping earlier duplicates and capping the
// list. Blank values and normalization defaults are not remembered.
func remember(list []string, value, ignore string) []string {
	value = strings.TrimSpace(value)
	if value == "" || strings.EqualFold(value, ignore) {
		return list
	}

	out := make([]string, 0, len(list)+1)
	out = append(out, value)
	for _, v := range list {
		if !strings.EqualFold(v, value) {
			out = append(out, v)
		}
	}
	if len(out) > preferenceCap {
		out = out[:preferenceCap]
	}
	return out
}
