package search

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rkoski/bookdex/internal/book"
	"github.com/rkoski/bookdex/internal/catalog"
	"github.com/rkoski/bookdex/internal/sampledata"
	"github.com/rkoski/bookdex/internal/session"
)

// localFallbackCap bounds how many built-in catalog books a degraded fetch
// returns after filtering.
const localFallbackCap = 12

// Searcher is the catalog call the fetcher depends on.
type Searcher interface {
	Search(ctx context.Context, req catalog.SearchRequest) ([]catalog.Volume, error)
}

// Source tells where a result set came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local-fallback"
)

// ResultSet is the outcome of one fetch: the filtered, display-ready
// records and where they came from.
type ResultSet struct {
	Books   []book.Book
	Source  Source
	Filters Filters
	Query   string
	// Notice is a human-readable explanation when Source is local-fallback.
	Notice string
}

// Fetcher resolves searches against the remote catalog, degrading to the
// built-in catalog when the credential is missing, confirmed expired, or
// the call fails.
type Fetcher struct {
	searcher   Searcher
	session    *session.Session
	maxResults int
}

// FetcherOption customizes a Fetcher.
type FetcherOption func(*Fetcher)

// WithMaxResults overrides how many records a remote fetch requests.
func WithMaxResults(n int) FetcherOption {
	return func(f *Fetcher) {
		if n > 0 {
			f.maxResults = n
		}
	}
}

// NewFetcher creates a fetcher bound to a catalog searcher and a session.
func NewFetcher(searcher Searcher, sess *session.Session, opts ...FetcherOption) *Fetcher {
	f := &Fetcher{
		searcher:   searcher,
		session:    sess,
		maxResults: 40,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch runs one search. It never fails on remote errors: every failure
// path degrades to the built-in catalog with a notice saying why. The only
// returned error is a broken built-in catalog, which cannot happen outside
// a corrupted build.
func (f *Fetcher) Fetch(ctx context.Context, freeText, topic string, filters Filters) (ResultSet, error) {
	query, langRestrict := Compose(freeText, topic, filters)
	f.session.RecordSearch(effectiveTerm(freeText, topic))

	if !f.session.Usable() {
		notice := "No catalog credential configured; showing the built-in catalog."
		if f.session.Expired() {
			notice = "Catalog credential expired; showing the built-in catalog."
		}
		return f.fallback(effectiveTerm(freeText, topic), query, filters, notice)
	}

	volumes, err := f.searcher.Search(ctx, catalog.SearchRequest{
		Query:        query,
		MaxResults:   f.maxResults,
		LangRestrict: langRestrict,
	})
	if err != nil {
		return f.degrade(err, freeText, topic, query, filters)
	}

	books := book.NormalizeAll(volumes)
	slog.Debug("Remote search succeeded", "query", query, "results", len(books))
	// Genre and author were already part of the query; only the residual
	// dimensions are re-checked locally.
	return ResultSet{
		Books:   filters.Residual().Apply(books),
		Source:  SourceRemote,
		Filters: filters,
		Query:   query,
	}, nil
}

// degrade classifies a remote failure, updates the session when the
// credential is confirmed bad, and falls back to the built-in catalog.
func (f *Fetcher) degrade(err error, freeText, topic, query string, filters Filters) (ResultSet, error) {
	kind := catalog.KindOf(err)
	slog.Warn("Remote search failed", "query", query, "kind", kind, "error", err)

	var notice string
	switch {
	case catalog.IsAuthFailure(err):
		f.session.MarkExpired()
		notice = "Catalog credential rejected; showing the built-in catalog."
	case kind == catalog.KindTimeout:
		notice = "Catalog request timed out; showing the built-in catalog."
	default:
		notice = fmt.Sprintf("Catalog request failed (%s); showing the built-in catalog.", kind)
	}
	return f.fallback(effectiveTerm(freeText, topic), query, filters, notice)
}

func (f *Fetcher) fallback(term, query string, filters Filters, notice string) (ResultSet, error) {
	books, err := sampledata.Search(term)
	if err != nil {
		return ResultSet{}, err
	}
	return ResultSet{
		Books:   capLocal(filters.Apply(books)),
		Source:  SourceLocal,
		Filters: filters,
		Query:   query,
		Notice:  notice,
	}, nil
}

// effectiveTerm is the human-meaningful portion of a search, used for the
// history and for matching against the built-in catalog.
func effectiveTerm(freeText, topic string) string {
	if topic != "" {
		return topic
	}
	return freeText
}

func localBooks() ([]book.Book, error) {
	return sampledata.Books()
}

// capLocal bounds a filtered built-in catalog result. The cap comes after
// filtering so active filters never shrink the set below what they match.
func capLocal(books []book.Book) []book.Book {
	if len(books) > localFallbackCap {
		books = books[:localFallbackCap]
	}
	return books
}
