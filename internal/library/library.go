// Package library persists favorites in a local SQLite database so they
// survive across runs, unlike the per-run session state.
package library

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/rkoski/bookdex/internal/book"
)

const favoritesSchema = `
CREATE TABLE IF NOT EXISTS favorites (
	title TEXT PRIMARY KEY,
	volume_id TEXT NOT NULL,
	author TEXT NOT NULL,
	genre TEXT NOT NULL,
	year TEXT NOT NULL,
	rating REAL NOT NULL,
	cover_url TEXT NOT NULL,
	added_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);`

// Library is a SQLite-backed favorites store. Favorites are keyed by
// title, matching the in-memory session semantics.
type Library struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the library database at path.
func Open(path string) (*Library, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open library database: %w", err)
	}

	if _, err := db.Exec(favoritesSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create favorites table: %w", err)
	}

	return &Library{db: db, path: path}, nil
}

// Close closes the database connection.
func (l *Library) Close() error {
	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// SaveFavorite records a book as a favorite, replacing any earlier entry
// with the same title.
func (l *Library) SaveFavorite(b book.Book) error {
	_, err := l.db.Exec(`
		INSERT OR REPLACE INTO favorites (title, volume_id, author, genre, year, rating, cover_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.Title, b.ID, b.Author, b.Genre, b.Year, b.Rating, b.CoverURL)
	if err != nil {
		return fmt.Errorf("failed to save favorite: %w", err)
	}
	return nil
}

// DeleteFavorite removes a favorite by title. Removing a title that is not
// stored is not an error.
func (l *Library) DeleteFavorite(title string) error {
	if _, err := l.db.Exec(`DELETE FROM favorites WHERE title = ?`, title); err != nil {
		return fmt.Errorf("failed to delete favorite: %w", err)
	}
	return nil
}

// IsFavorite reports whether a title is stored.
func (l *Library) IsFavorite(title string) (bool, error) {
	var count int
	err := l.db.QueryRow(`SELECT COUNT(*) FROM favorites WHERE title = ?`, title).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to query favorite: %w", err)
	}
	return count > 0, nil
}

// Toggle saves the book when it is not a favorite yet, removes it
// otherwise, and reports whether the book is a favorite afterwards.
func (l *Library) Toggle(b book.Book) (bool, error) {
	stored, err := l.IsFavorite(b.Title)
	if err != nil {
		return false, err
	}
	if stored {
		return false, l.DeleteFavorite(b.Title)
	}
	return true, l.SaveFavorite(b)
}

// Favorites returns the stored favorites in insertion order.
func (l *Library) Favorites() ([]book.Book, error) {
	rows, err := l.db.Query(`
		SELECT volume_id, title, author, genre, year, rating, cover_url
		FROM favorites ORDER BY added_at, title`)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var books []book.Book
	for rows.Next() {
		var b book.Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Year, &b.Rating, &b.CoverURL); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		books = append(books, b)
	}
	return books, rows.Err()
}
