package catalog

// SearchResponse is the envelope returned by the catalog search endpoint.
type SearchResponse struct {
	TotalItems int      `json:"totalItems"`
	Items      []Volume `json:"items"`
}

// Volume is one raw catalog record. Fields mirror the wire format; any of
// them may be absent and normalization fills the gaps.
type Volume struct {
	ID         string     `json:"id"`
	VolumeInfo VolumeInfo `json:"volumeInfo"`
	SaleInfo   SaleInfo   `json:"saleInfo"`
	AccessInfo AccessInfo `json:"accessInfo"`
}

// VolumeInfo carries the bibliographic portion of a record.
type VolumeInfo struct {
	Title               string               `json:"title"`
	Subtitle            string               `json:"subtitle"`
	Authors             []string             `json:"authors"`
	Publisher           string               `json:"publisher"`
	PublishedDate       string               `json:"publishedDate"`
	Description         string               `json:"description"`
	IndustryIdentifiers []IndustryIdentifier `json:"industryIdentifiers"`
	PageCount           int                  `json:"pageCount"`
	Categories          []string             `json:"categories"`
	AverageRating       float64              `json:"averageRating"`
	RatingsCount        int                  `json:"ratingsCount"`
	ImageLinks          ImageLinks           `json:"imageLinks"`
	Language            string               `json:"language"`
	PreviewLink         string               `json:"previewLink"`
	InfoLink            string               `json:"infoLink"`
}

// IndustryIdentifier is an ISBN or other identifier attached to a record.
type IndustryIdentifier struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}

// ImageLinks holds cover image URLs in ascending size order.
type ImageLinks struct {
	SmallThumbnail string `json:"smallThumbnail"`
	Thumbnail      string `json:"thumbnail"`
}

// SaleInfo carries storefront availability for a record.
type SaleInfo struct {
	Saleability string `json:"saleability"`
	BuyLink     string `json:"buyLink"`
	ListPrice   *Price `json:"listPrice"`
}

// Price is a monetary amount with its currency.
type Price struct {
	Amount       float64 `json:"amount"`
	CurrencyCode string  `json:"currencyCode"`
}

// AccessInfo describes how a record's content can be obtained.
type AccessInfo struct {
	PDF           FormatAccess `json:"pdf"`
	EPUB          FormatAccess `json:"epub"`
	WebReaderLink string       `json:"webReaderLink"`
	Embeddable    bool         `json:"embeddable"`
}

// FormatAccess describes availability of one download format. When a format
// is available the DRM token link is preferred over the plain download link.
type FormatAccess struct {
	IsAvailable  bool   `json:"isAvailable"`
	AcsTokenLink string `json:"acsTokenLink"`
	DownloadLink string `json:"downloadLink"`
}

// errorEnvelope is the error body shape returned by the catalog service.
// The message string is what failure classification matches against.
type errorEnvelope struct {
	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}
