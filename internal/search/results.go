package search

import (
	"sync"

	"github.com/rkoski/bookdex/internal/book"
)

// PageSize is how many books one result page shows.
const PageSize = 6

// State holds the current result set and its pagination. Refiltering
// narrows the records already held; only a new search touches the network.
// Safe for concurrent use.
type State struct {
	mu      sync.Mutex
	visible []book.Book
	filters Filters
	source  Source
	notice  string
	page    int
}

// NewState returns an empty result state on page one.
func NewState() *State {
	return &State{page: 1}
}

// Replace installs a freshly fetched result set and resets to page one.
func (s *State) Replace(rs ResultSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.visible = rs.Books
	s.filters = rs.Filters
	s.source = rs.Source
	s.notice = rs.Notice
	s.page = 1
}

// Refilter narrows the currently visible records with new filters, without
// a network call. Only a fresh fetch widens the set again. When the current
// set is empty it filters the built-in catalog instead, so a filter change
// always produces a result. Resets to page one.
func (s *State) Refilter(f Filters) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.visible) == 0 {
		books, err := localBooks()
		if err != nil {
			return err
		}
		s.visible = capLocal(f.Apply(books))
		s.source = SourceLocal
	} else {
		s.visible = f.Apply(s.visible)
	}

	s.filters = f
	s.page = 1
	return nil
}

// Books returns all visible (filtered) books.
func (s *State) Books() []book.Book {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]book.Book, len(s.visible))
	copy(out, s.visible)
	return out
}

// Page returns the books on the current page.
func (s *State) Page() []book.Book {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := (s.page - 1) * PageSize
	if start >= len(s.visible) {
		return nil
	}
	end := start + PageSize
	if end > len(s.visible) {
		end = len(s.visible)
	}
	out := make([]book.Book, end-start)
	copy(out, s.visible[start:end])
	return out
}

// CurrentPage returns the 1-based page number.
func (s *State) CurrentPage() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// PageCount returns how many pages the visible set spans. An empty set
// still has one (empty) page.
func (s *State) PageCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pageCount(len(s.visible))
}

func pageCount(n int) int {
	if n == 0 {
		return 1
	}
	return (n + PageSize - 1) / PageSize
}

// Next advances to the following page, reporting whether it moved.
func (s *State) Next() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page >= pageCount(len(s.visible)) {
		return false
	}
	s.page++
	return true
}

// Prev moves to the preceding page, reporting whether it moved.
func (s *State) Prev() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page <= 1 {
		return false
	}
	s.page--
	return true
}

// SetPage jumps to a page, clamping into the valid range.
func (s *State) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	max := pageCount(len(s.visible))
	switch {
	case page < 1:
		s.page = 1
	case page > max:
		s.page = max
	default:
		s.page = page
	}
}

// Source tells where the current records came from.
func (s *State) Source() Source {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.source
}

// Notice returns the degradation notice, empty for remote results.
func (s *State) Notice() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.notice
}
