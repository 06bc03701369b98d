package reader

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rkoski/bookdex/internal/book"
	"github.com/rkoski/bookdex/internal/catalog"
	"github.com/rkoski/bookdex/internal/session"
)

// VolumeGetter is the catalog call the resolver depends on.
type VolumeGetter interface {
	Volume(ctx context.Context, volumeID string) (*catalog.Volume, error)
}

// Detail is everything the detail view needs for one book.
type Detail struct {
	Book   book.Book
	Access []AccessOption
	Viewer ViewerKind
	// Synthesized marks a preview record built from the ID alone, without
	// a catalog lookup.
	Synthesized bool
	// ErrMessage is shown alongside a degraded detail. Empty on success
	// and on synthesized records, where degradation is expected.
	ErrMessage string
}

// Resolver turns a book ID into a Detail, synthesizing a preview record
// whenever the catalog credential cannot be used.
type Resolver struct {
	volumes VolumeGetter
	session *session.Session
}

// NewResolver creates a resolver bound to a catalog and a session.
func NewResolver(volumes VolumeGetter, sess *session.Session) *Resolver {
	return &Resolver{volumes: volumes, session: sess}
}

// Resolve fetches the detail record for a book. Credential problems never
// surface as errors: a missing or rejected credential yields a synthesized
// preview detail with a nil error, because the frame viewer and the
// ID-derived links work without any credential. Other failures yield a
// degraded detail carrying a visible message.
func (r *Resolver) Resolve(ctx context.Context, volumeID string) (Detail, error) {
	if volumeID == "" {
		return Detail{}, &catalog.APIError{Op: "resolve", Kind: catalog.KindBadRequest, Message: "empty volume id"}
	}

	if !r.session.Usable() {
		slog.Debug("Resolving without credential", "volume_id", volumeID)
		return synthesize(volumeID), nil
	}

	vol, err := r.volumes.Volume(ctx, volumeID)
	if err != nil {
		if catalog.IsAuthFailure(err) {
			slog.Warn("Credential rejected on detail fetch, synthesizing preview", "volume_id", volumeID)
			r.session.MarkExpired()
			return synthesize(volumeID), nil
		}
		slog.Warn("Detail fetch failed", "volume_id", volumeID, "error", err)
		return Detail{
			Book: book.Book{
				ID:       volumeID,
				Title:    book.UnknownTitle,
				Author:   book.UnknownAuthor,
				CoverURL: book.PlaceholderCoverURL,
			},
			Viewer:     ViewerFrame,
			ErrMessage: degradeMessage(err),
		}, nil
	}

	return Detail{
		Book:   book.Normalize(*vol),
		Access: BuildAccessOptions(*vol),
		Viewer: ViewerFrame,
	}, nil
}

// synthesize builds the credential-free preview detail. Everything in it
// derives from the volume ID.
func synthesize(volumeID string) Detail {
	return Detail{
		Book: book.Book{
			ID:          volumeID,
			Title:       "Book Preview",
			Author:      book.UnknownAuthor,
			Description: book.NoDescription,
			Genre:       book.Uncategorized,
			Year:        book.UnknownYear,
			CoverURL:    syntheticCoverURL(volumeID),
			ISBN:        book.NoISBN,
			Publisher:   book.UnknownPublisher,
			Language:    book.UnknownLanguage,
		},
		Access: []AccessOption{
			{Kind: AccessPreview, Label: "Preview", URL: fmt.Sprintf("https://books.google.com/books?id=%s", volumeID)},
			{Kind: AccessInfo, Label: "More Info", URL: fmt.Sprintf("https://books.google.com/books?id=%s&printsec=frontcover", volumeID)},
		},
		Viewer:      ViewerFrame,
		Synthesized: true,
	}
}

func syntheticCoverURL(volumeID string) string {
	return fmt.Sprintf("https://books.google.com/books/content?id=%s&printsec=frontcover&img=1&zoom=1", volumeID)
}

func degradeMessage(err error) string {
	switch catalog.KindOf(err) {
	case catalog.KindNotFound:
		return "This book could not be found in the catalog."
	case catalog.KindTimeout:
		return "The catalog took too long to respond. Try again."
	default:
		return "Failed to load book details. Try again."
	}
}
