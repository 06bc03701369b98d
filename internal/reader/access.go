// Package reader resolves a book into its detail record, its ordered
// access options, and a viewer for reading it. When the catalog credential
// is missing or rejected it synthesizes a preview record from the book ID
// alone, so the detail view always has something to show.
package reader

import "github.com/rkoski/bookdex/internal/catalog"

// AccessKind identifies one way of obtaining a book's content.
type AccessKind string

const (
	AccessPDF        AccessKind = "pdf"
	AccessEPUB       AccessKind = "epub"
	AccessStorefront AccessKind = "storefront"
	AccessPreview    AccessKind = "preview"
	AccessInfo       AccessKind = "info"
	AccessWebReader  AccessKind = "web-reader"
)

// AccessOption is one actionable link on the detail view.
type AccessOption struct {
	Kind  AccessKind
	Label string
	URL   string
}

// BuildAccessOptions derives the ordered access options from a raw catalog
// record. The order is fixed: downloads first, then the storefront, then
// the browse links. Options without a usable URL are omitted.
func BuildAccessOptions(vol catalog.Volume) []AccessOption {
	info := vol.VolumeInfo
	access := vol.AccessInfo

	options := make([]AccessOption, 0, 6)

	if access.PDF.IsAvailable {
		if url := formatURL(access.PDF, info.PreviewLink); url != "" {
			options = append(options, AccessOption{Kind: AccessPDF, Label: "Download PDF", URL: url})
		}
	}
	if access.EPUB.IsAvailable {
		if url := formatURL(access.EPUB, info.PreviewLink); url != "" {
			options = append(options, AccessOption{Kind: AccessEPUB, Label: "Download EPUB", URL: url})
		}
	}
	if vol.SaleInfo.BuyLink != "" {
		options = append(options, AccessOption{Kind: AccessStorefront, Label: "Buy", URL: vol.SaleInfo.BuyLink})
	}
	if info.PreviewLink != "" {
		options = append(options, AccessOption{Kind: AccessPreview, Label: "Preview", URL: info.PreviewLink})
	}
	if info.InfoLink != "" {
		options = append(options, AccessOption{Kind: AccessInfo, Label: "More Info", URL: info.InfoLink})
	}
	if access.WebReaderLink != "" {
		options = append(options, AccessOption{Kind: AccessWebReader, Label: "Read Online", URL: access.WebReaderLink})
	}

	return options
}

// formatURL picks the best link for a download format: the DRM token link,
// then the plain download link, then the preview link.
func formatURL(fa catalog.FormatAccess, previewLink string) string {
	switch {
	case fa.AcsTokenLink != "":
		return fa.AcsTokenLink
	case fa.DownloadLink != "":
		return fa.DownloadLink
	default:
		return previewLink
	}
}
