package search

import "strings"

// DefaultQuery is used when neither free text, topic, genre nor author
// narrows the search. It keeps the catalog service from rejecting an
// empty expression.
const DefaultQuery = "subject:general"

// Topics are the browsable subject shortcuts offered by the UI layer.
// Selecting one replaces the free-text portion of the query.
var Topics = []string{
	"Fiction",
	"Science Fiction",
	"Fantasy",
	"Mystery",
	"Romance",
	"Thriller",
	"History",
	"Biography",
	"Self-Help",
	"Business",
}

// Compose builds the catalog query expression and the optional language
// restriction from the user's free text, a selected topic, and the active
// filters. A topic supersedes everything else: it is sent as a single
// subject term, discarding the free text and the genre/author terms.
// Otherwise genre and author filters contribute structured terms on top of
// the free text.
func Compose(freeText, topic string, f Filters) (query, langRestrict string) {
	if f.LanguageActive() {
		langRestrict = strings.ToLower(strings.TrimSpace(f.Language))
	}

	if t := strings.TrimSpace(topic); t != "" {
		return "subject:" + t, langRestrict
	}

	terms := make([]string, 0, 3)
	if text := strings.TrimSpace(freeText); text != "" {
		terms = append(terms, text)
	}
	if f.GenreActive() {
		terms = append(terms, "subject:"+strings.TrimSpace(f.Genre))
	}
	if f.AuthorActive() {
		terms = append(terms, "inauthor:"+strings.TrimSpace(f.Author))
	}

	if len(terms) == 0 {
		terms = append(terms, DefaultQuery)
	}
	return strings.Join(terms, "+"), langRestrict
}
