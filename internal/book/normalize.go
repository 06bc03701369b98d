package book

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/rkoski/bookdex/internal/catalog"
)

// Normalize converts one raw catalog record into a canonical Book.
// It is total: it never fails, and every output field is populated.
// Any absent input field degrades to its documented default.
func Normalize(vol catalog.Volume) Book {
	info := vol.VolumeInfo
	sale := vol.SaleInfo

	b := Book{
		ID:          vol.ID,
		Title:       info.Title,
		Author:      joinAuthors(info.Authors),
		Description: info.Description,
		Rating:      clampRating(info.AverageRating),
		Genre:       firstCategory(info.Categories),
		Year:        publicationYear(info.PublishedDate),
		CoverURL:    info.ImageLinks.Thumbnail,
		ISBN:        firstIdentifier(info.IndustryIdentifiers),
		Publisher:   info.Publisher,
		Language:    info.Language,
		Pages:       info.PageCount,
		BuyLink:     sale.BuyLink,
		PreviewLink: info.PreviewLink,
	}

	if b.ID == "" {
		b.ID = synthesizeID()
	}
	if b.Title == "" {
		b.Title = UnknownTitle
	}
	if b.Description == "" {
		b.Description = NoDescription
	}
	if b.CoverURL == "" {
		b.CoverURL = info.ImageLinks.SmallThumbnail
	}
	if b.CoverURL == "" {
		b.CoverURL = PlaceholderCoverURL
	}
	if b.Publisher == "" {
		b.Publisher = UnknownPublisher
	}
	if b.Language == "" {
		b.Language = UnknownLanguage
	}
	if b.Pages < 0 {
		b.Pages = 0
	}
	if sale.ListPrice != nil && sale.ListPrice.Amount > 0 {
		b.Price = sale.ListPrice.Amount
	}

	return b
}

// NormalizeAll converts a slice of raw records, preserving order.
func NormalizeAll(vols []catalog.Volume) []Book {
	books := make([]Book, 0, len(vols))
	for _, vol := range vols {
		books = append(books, Normalize(vol))
	}
	return books
}

func joinAuthors(authors []string) string {
	if len(authors) == 0 {
		return UnknownAuthor
	}
	return strings.Join(authors, ", ")
}

func firstCategory(categories []string) string {
	if len(categories) == 0 || strings.TrimSpace(categories[0]) == "" {
		return Uncategorized
	}
	return categories[0]
}

func firstIdentifier(ids []catalog.IndustryIdentifier) string {
	if len(ids) == 0 || ids[0].Identifier == "" {
		return NoISBN
	}
	return ids[0].Identifier
}

// publicationYear extracts the leading year from a published date, which
// may be "2006", "2006-04" or "2006-04-01" on the wire.
func publicationYear(date string) string {
	if date == "" {
		return UnknownYear
	}
	year, _, _ := strings.Cut(date, "-")
	if year == "" {
		return UnknownYear
	}
	return year
}

func clampRating(rating float64) float64 {
	switch {
	case rating < 0:
		return 0
	case rating > 5:
		return 5
	default:
		return rating
	}
}

// synthesizeID creates a locally stable identifier for records the service
// returned without one.
func synthesizeID() string {
	buf := make([]byte, 4)
	if _, err := rand.Read(buf); err != nil {
		return "temp-00000000"
	}
	return "temp-" + hex.EncodeToString(buf)
}
