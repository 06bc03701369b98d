// Package sampledata ships a small built-in book catalog used when the
// remote catalog cannot be reached. The catalog is embedded at build time
// so offline operation needs no external files.
package sampledata

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/rkoski/bookdex/internal/book"
)

//go:embed books.yaml
var booksYAML []byte

var (
	loadOnce sync.Once
	loaded   []book.Book
	loadErr  error
)

func load() {
	var books []book.Book
	if err := yaml.Unmarshal(booksYAML, &books); err != nil {
		loadErr = fmt.Errorf("decoding built-in catalog: %w", err)
		return
	}
	loaded = books
}

// Books returns a copy of the built-in catalog. The copy keeps callers from
// mutating the shared backing slice.
func Books() ([]book.Book, error) {
	loadOnce.Do(load)
	if loadErr != nil {
		return nil, loadErr
	}
	out := make([]book.Book, len(loaded))
	copy(out, loaded)
	return out, nil
}

// Search filters the built-in catalog by a case-insensitive substring match
// across title, author, genre, description, ISBN and publisher. A blank
// query returns the whole catalog.
func Search(query string) ([]book.Book, error) {
	books, err := Books()
	if err != nil {
		return nil, err
	}

	query = strings.TrimSpace(strings.ToLower(query))
	if query == "" {
		return books, nil
	}

	var matched []book.Book
	for _, b := range books {
		if matchesQuery(b, query) {
			matched = append(matched, b)
		}
	}
	return matched, nil
}

func matchesQuery(b book.Book, query string) bool {
	for _, field := range []string{b.Title, b.Author, b.Genre, b.Description, b.ISBN, b.Publisher} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}
