// Package book defines the canonical book entity and the normalization
// from raw catalog records into it.
package book

// Default values substituted for absent fields during normalization.
const (
	UnknownTitle     = "Unknown Title"
	UnknownAuthor    = "Unknown Author"
	UnknownPublisher = "Unknown Publisher"
	UnknownYear      = "Unknown"
	UnknownLanguage  = "Unknown"
	NoDescription    = "No description available"
	NoISBN           = "N/A"
	Uncategorized    = "Uncategorized"

	// PlaceholderCoverURL is shown when a record carries no cover image.
	PlaceholderCoverURL = "https://via.placeholder.com/128x192?text=No+Cover"
)

// Book is the canonical, fully populated book record. Every field always
// holds a value; normalization substitutes documented defaults so no
// absent field ever reaches a display layer.
type Book struct {
	ID          string  `json:"id" yaml:"id"`
	Title       string  `json:"title" yaml:"title"`
	Author      string  `json:"author" yaml:"author"`
	Description string  `json:"description" yaml:"description"`
	Rating      float64 `json:"rating" yaml:"rating"`
	Genre       string  `json:"genre" yaml:"genre"`
	Year        string  `json:"year" yaml:"year"`
	CoverURL    string  `json:"coverUrl" yaml:"coverUrl"`
	ISBN        string  `json:"isbn" yaml:"isbn"`
	Publisher   string  `json:"publisher" yaml:"publisher"`
	Language    string  `json:"language" yaml:"language"`
	Pages       int     `json:"pages" yaml:"pages"`
	Price       float64 `json:"price" yaml:"price"`
	BuyLink     string  `json:"buyLink,omitempty" yaml:"buyLink,omitempty"`
	PreviewLink string  `json:"previewLink,omitempty" yaml:"previewLink,omitempty"`
}

// HasRating reports whether the book carries a real rating rather than
// the zero default.
func (b Book) HasRating() bool {
	return b.Rating > 0
}
