package reader

import "context"

// ViewerKind selects how a book is displayed. The frame viewer is the
// default; switching to the embedded viewer is an explicit user action,
// never an automatic fallback.
type ViewerKind string

const (
	ViewerFrame    ViewerKind = "frame"
	ViewerEmbedded ViewerKind = "embedded"
)

// Toggle flips between the two viewers.
func (v ViewerKind) Toggle() ViewerKind {
	if v == ViewerFrame {
		return ViewerEmbedded
	}
	return ViewerFrame
}

// Outcome is the result of asking the embedded viewer to load a book.
type Outcome string

const (
	OutcomeLoaded        Outcome = "loaded"
	OutcomeNotFound      Outcome = "not found"
	OutcomeNotAvailable  Outcome = "not available"
	OutcomeNotEmbeddable Outcome = "not embeddable"
	OutcomeLoadError     Outcome = "load error"
)

// Message returns the user-facing text for a failed load.
func (o Outcome) Message() string {
	switch o {
	case OutcomeLoaded:
		return ""
	case OutcomeNotFound:
		return "This book could not be found in the viewer."
	case OutcomeNotAvailable:
		return "This book is not available for viewing."
	case OutcomeNotEmbeddable:
		return "This book cannot be embedded; use the preview link instead."
	default:
		return "The viewer failed to load this book."
	}
}

// EmbeddedViewer loads books in the embeddable reading widget. The frame
// viewer needs no counterpart interface: it is a plain URL.
type EmbeddedViewer interface {
	Load(ctx context.Context, volumeID string) Outcome
}
