package library

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkoski/bookdex/internal/book"
)

func openTestLibrary(t *testing.T) *Library {
	t.Helper()
	l, err := Open(filepath.Join(t.TempDir(), "library.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = l.Close() })
	return l
}

func TestSaveAndListFavorites(t *testing.T) {
	l := openTestLibrary(t)

	require.NoError(t, l.SaveFavorite(book.Book{ID: "a", Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction", Year: "1965", Rating: 4.6}))
	require.NoError(t, l.SaveFavorite(book.Book{ID: "b", Title: "Emma", Author: "Jane Austen", Genre: "Romance", Year: "1815", Rating: 4.4}))

	favorites, err := l.Favorites()
	require.NoError(t, err)
	require.Len(t, favorites, 2)
	assert.Equal(t, "Dune", favorites[0].Title)
	assert.Equal(t, "Frank Herbert", favorites[0].Author)
}

func TestSaveFavoriteReplacesByTitle(t *testing.T) {
	l := openTestLibrary(t)

	require.NoError(t, l.SaveFavorite(book.Book{ID: "a", Title: "Dune", Rating: 4.0}))
	require.NoError(t, l.SaveFavorite(book.Book{ID: "a2", Title: "Dune", Rating: 4.6}))

	favorites, err := l.Favorites()
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "a2", favorites[0].ID)
}

func TestToggle(t *testing.T) {
	l := openTestLibrary(t)
	b := book.Book{ID: "a", Title: "Dune"}

	added, err := l.Toggle(b)
	require.NoError(t, err)
	assert.True(t, added)

	stored, err := l.IsFavorite("Dune")
	require.NoError(t, err)
	assert.True(t, stored)

	added, err = l.Toggle(b)
	require.NoError(t, err)
	assert.False(t, added)

	stored, err = l.IsFavorite("Dune")
	require.NoError(t, err)
	assert.False(t, stored)
}

func TestDeleteMissingFavorite(t *testing.T) {
	l := openTestLibrary(t)
	assert.NoError(t, l.DeleteFavorite("never stored"))
}

func TestFavoritesPersistAcrossOpens(t *testing.T) {
	path := filepath.Join(t.TempDir(), "library.db")

	l, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, l.SaveFavorite(book.Book{ID: "a", Title: "Dune"}))
	require.NoError(t, l.Close())

	reopened, err := Open(path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	favorites, err := reopened.Favorites()
	require.NoError(t, err)
	require.Len(t, favorites, 1)
	assert.Equal(t, "Dune", favorites[0].Title)
}
