package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComposeFreeTextWithGenre(t *testing.T) {
	query, lang := Compose("dune", "", Filters{Genre: "Fantasy"})
	assert.Equal(t, "dune+subject:Fantasy", query)
	assert.Empty(t, lang)
}

func TestComposeTopicReplacesFreeText(t *testing.T) {
	query, _ := Compose("dune", "Mystery", Filters{})
	assert.Equal(t, "subject:Mystery", query)
}

func TestComposeTopicSupersedesFilterTerms(t *testing.T) {
	query, lang := Compose("dune", "Mystery", Filters{
		Genre:    "Fantasy",
		Author:   "Christie",
		Language: "EN",
	})
	assert.Equal(t, "subject:Mystery", query)
	assert.Equal(t, "en", lang, "the language restriction still travels outside the query")
}

func TestComposeDefaultsWhenEmpty(t *testing.T) {
	query, lang := Compose("", "", Filters{})
	assert.Equal(t, DefaultQuery, query)
	assert.Empty(t, lang)
}

func TestComposeSentinelsContributeNothing(t *testing.T) {
	query, lang := Compose("dune", "", Filters{
		Genre:    AllGenres,
		Author:   AllAuthors,
		Language: AllLanguages,
	})
	assert.Equal(t, "dune", query)
	assert.Empty(t, lang)
}

func TestComposeLanguageRestriction(t *testing.T) {
	_, lang := Compose("dune", "", Filters{Language: "EN"})
	assert.Equal(t, "en", lang)
}

func TestComposeAllTerms(t *testing.T) {
	query, _ := Compose("sand worms", "", Filters{Genre: "Science Fiction", Author: "Herbert"})
	assert.Equal(t, "sand worms+subject:Science Fiction+inauthor:Herbert", query)
}
