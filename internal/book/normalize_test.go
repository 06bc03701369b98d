package book

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rkoski/bookdex/internal/catalog"
)

func TestNormalizeFullRecord(t *testing.T) {
	vol := catalog.Volume{
		ID: "vol-1",
		VolumeInfo: catalog.VolumeInfo{
			Title:         "Dune",
			Authors:       []string{"Frank Herbert"},
			Publisher:     "Ace",
			PublishedDate: "1965-08-01",
			Description:   "Desert planet politics.",
			IndustryIdentifiers: []catalog.IndustryIdentifier{
				{Type: "ISBN_13", Identifier: "9780441013593"},
			},
			PageCount:     412,
			Categories:    []string{"Science Fiction", "Classics"},
			AverageRating: 4.6,
			ImageLinks: catalog.ImageLinks{
				Thumbnail:      "https://example.com/thumb.jpg",
				SmallThumbnail: "https://example.com/small.jpg",
			},
			Language:    "en",
			PreviewLink: "https://example.com/preview",
		},
		SaleInfo: catalog.SaleInfo{
			BuyLink:   "https://example.com/buy",
			ListPrice: &catalog.Price{Amount: 9.99, CurrencyCode: "USD"},
		},
	}

	b := Normalize(vol)

	assert.Equal(t, "vol-1", b.ID)
	assert.Equal(t, "Dune", b.Title)
	assert.Equal(t, "Frank Herbert", b.Author)
	assert.Equal(t, "Science Fiction", b.Genre)
	assert.Equal(t, "1965", b.Year)
	assert.Equal(t, "https://example.com/thumb.jpg", b.CoverURL)
	assert.Equal(t, "9780441013593", b.ISBN)
	assert.Equal(t, "Ace", b.Publisher)
	assert.Equal(t, "en", b.Language)
	assert.Equal(t, 412, b.Pages)
	assert.InDelta(t, 9.99, b.Price, 0.001)
	assert.Equal(t, "https://example.com/buy", b.BuyLink)
	assert.True(t, b.HasRating())
}

func TestNormalizeEmptyRecordIsTotal(t *testing.T) {
	b := Normalize(catalog.Volume{})

	assert.True(t, strings.HasPrefix(b.ID, "temp-"))
	assert.Equal(t, UnknownTitle, b.Title)
	assert.Equal(t, UnknownAuthor, b.Author)
	assert.Equal(t, NoDescription, b.Description)
	assert.Equal(t, Uncategorized, b.Genre)
	assert.Equal(t, UnknownYear, b.Year)
	assert.Equal(t, PlaceholderCoverURL, b.CoverURL)
	assert.Equal(t, NoISBN, b.ISBN)
	assert.Equal(t, UnknownPublisher, b.Publisher)
	assert.Equal(t, UnknownLanguage, b.Language)
	assert.Equal(t, 0, b.Pages)
	assert.Zero(t, b.Price)
	assert.False(t, b.HasRating())
}

func TestNormalizeMultipleAuthors(t *testing.T) {
	b := Normalize(catalog.Volume{
		VolumeInfo: catalog.VolumeInfo{
			Authors: []string{"Terry Pratchett", "Neil Gaiman"},
		},
	})
	assert.Equal(t, "Terry Pratchett, Neil Gaiman", b.Author)
}

func TestNormalizeYearVariants(t *testing.T) {
	testCases := []struct {
		date string
		want string
	}{
		{"1997", "1997"},
		{"1997-09", "1997"},
		{"1997-09-08", "1997"},
		{"", UnknownYear},
		{"-03-01", UnknownYear},
	}

	for _, tc := range testCases {
		b := Normalize(catalog.Volume{
			VolumeInfo: catalog.VolumeInfo{PublishedDate: tc.date},
		})
		assert.Equal(t, tc.want, b.Year, "date %q", tc.date)
	}
}

func TestNormalizeCoverFallbackChain(t *testing.T) {
	small := Normalize(catalog.Volume{
		VolumeInfo: catalog.VolumeInfo{
			ImageLinks: catalog.ImageLinks{SmallThumbnail: "https://example.com/small.jpg"},
		},
	})
	assert.Equal(t, "https://example.com/small.jpg", small.CoverURL)

	none := Normalize(catalog.Volume{})
	assert.Equal(t, PlaceholderCoverURL, none.CoverURL)
}

func TestNormalizeRatingClamped(t *testing.T) {
	high := Normalize(catalog.Volume{
		VolumeInfo: catalog.VolumeInfo{AverageRating: 7.5},
	})
	assert.InDelta(t, 5.0, high.Rating, 0.001)

	low := Normalize(catalog.Volume{
		VolumeInfo: catalog.VolumeInfo{AverageRating: -1},
	})
	assert.Zero(t, low.Rating)
}

func TestNormalizeAllPreservesOrder(t *testing.T) {
	vols := []catalog.Volume{
		{ID: "a", VolumeInfo: catalog.VolumeInfo{Title: "First"}},
		{ID: "b", VolumeInfo: catalog.VolumeInfo{Title: "Second"}},
	}

	books := NormalizeAll(vols)

	assert.Len(t, books, 2)
	assert.Equal(t, "First", books[0].Title)
	assert.Equal(t, "Second", books[1].Title)
}
