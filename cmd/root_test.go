package cmd

import (
	"os"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rkoski/bookdex/internal/book"
	"github.com/rkoski/bookdex/internal/config"
	"github.com/rkoski/bookdex/internal/recommend"
	"github.com/rkoski/bookdex/internal/search"
	"github.com/rkoski/bookdex/internal/testutil"
)

func resetCmdState(t *testing.T) {
	testutil.ResetConfig(t)
}

func parseCLI(t *testing.T, args ...string) (*CLI, *kong.Context) {
	t.Helper()

	originalArgs := os.Args
	os.Args = append([]string{"bookdex"}, args...)
	t.Cleanup(func() { os.Args = originalArgs })

	cli := &CLI{}
	ctx := kong.Parse(cli,
		kong.Name("bookdex"),
		kong.UsageOnError(),
		kong.Exit(func(code int) {
			t.Fatalf("unexpected Kong exit %d", code)
		}),
	)

	return cli, ctx
}

func TestSearchCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "search", "dune", "messiah",
		"-g", "Science Fiction",
		"-a", "Herbert",
		"-y", "1965",
		"-l", "en",
		"--min-rating", "4.0",
		"--price-max", "20",
		"--page", "2")

	assert.Equal(t, []string{"dune", "messiah"}, cli.Search.Query)
	assert.Equal(t, "Science Fiction", cli.Search.Genre)
	assert.Equal(t, "Herbert", cli.Search.Author)
	assert.Equal(t, "1965", cli.Search.Year)
	assert.Equal(t, "en", cli.Search.Language)
	assert.InDelta(t, 4.0, cli.Search.MinRating, 0.001)
	assert.InDelta(t, 20.0, cli.Search.PriceMax, 0.001)
	assert.Equal(t, 2, cli.Search.Page)
}

func TestTopicFlagParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "search", "-t", "Mystery")
	assert.Equal(t, "Mystery", cli.Search.Topic)
	assert.Empty(t, cli.Search.Query)
}

func TestShowCommandParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "show", "vol-1", "--probe", "--save-cover", "/tmp/covers")
	assert.Equal(t, "vol-1", cli.Show.ID)
	assert.True(t, cli.Show.Probe)
	assert.Equal(t, "/tmp/covers", cli.Show.SaveCover)
}

func TestCacheInvalidateParsing(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "cache", "invalidate", "search")
	assert.Equal(t, "search", cli.Cache.Invalidate.Source)
}

func TestCLIDefaultFlags(t *testing.T) {
	resetCmdState(t)

	cli, _ := parseCLI(t, "topics")

	assert.Empty(t, cli.APIKey)
	assert.False(t, cli.NoCache)
	assert.Equal(t, "./cache.db", cli.CacheDBFile)
	assert.Equal(t, "168h", cli.CacheTTL)
	assert.Equal(t, 1, cli.Search.Page)
}

func TestUpdateGlobalConfig(t *testing.T) {
	resetCmdState(t)

	cli := &CLI{
		APIKey:      "flag-key",
		CacheDBFile: "/tmp/cache.db",
		CacheTTL:    "12h",
	}

	updateGlobalConfig(cli)

	assert.Equal(t, "flag-key", config.CatalogAPIKey)
	assert.Equal(t, "/tmp/cache.db", viper.GetString("cache.dbfile"))
	assert.Equal(t, "12h", viper.GetString("cache.ttl"))
}

func TestUpdateGlobalConfigKeepsConfiguredKey(t *testing.T) {
	resetCmdState(t)
	config.CatalogAPIKey = "config-key"

	updateGlobalConfig(&CLI{CacheDBFile: "c.db", CacheTTL: "1h"})

	assert.Equal(t, "config-key", config.CatalogAPIKey)
}

func TestFilterFlagsToFilters(t *testing.T) {
	flags := filterFlags{
		Genre:     "Fantasy",
		Author:    "Tolkien",
		Year:      "1954",
		Language:  "en",
		MinRating: 4.5,
		PriceMin:  1,
		PriceMax:  25,
	}

	f := flags.toFilters()

	assert.Equal(t, search.Filters{
		Genre:     "Fantasy",
		Author:    "Tolkien",
		Year:      "1954",
		Language:  "en",
		MinRating: 4.5,
		PriceMin:  1,
		PriceMax:  25,
	}, f)
}

func TestNewAppWiresComponents(t *testing.T) {
	resetCmdState(t)
	config.CatalogAPIKey = "key"
	config.CatalogBaseURL = "https://example.com"
	config.MaxResults = 40

	app, err := newApp(&CLI{NoCache: true})
	require.NoError(t, err)

	assert.NotNil(t, app.Session)
	assert.NotNil(t, app.Client)
	assert.NotNil(t, app.Fetcher)
	assert.NotNil(t, app.State)
	assert.NotNil(t, app.Resolver)
	assert.NotNil(t, app.Prefs)
	assert.True(t, app.Session.HasCredential())
}

func TestRecommendRecordsPreferences(t *testing.T) {
	resetCmdState(t)

	// No credential, so the command works entirely off the built-in catalog.
	app, err := newApp(&CLI{NoCache: true})
	require.NoError(t, err)

	cmd := &RecommendCmd{Topic: "Fantasy"}
	require.NoError(t, cmd.Run(app))

	assert.Contains(t, app.Prefs.Genres(), "Fantasy")
	assert.NotEmpty(t, app.Prefs.Authors())
}

func TestFormatInterests(t *testing.T) {
	prefs := recommend.NewPreferences()
	assert.Empty(t, formatInterests(prefs))

	prefs.Record(book.Book{Genre: "Fantasy", Author: "J.R.R. Tolkien"})
	prefs.Record(book.Book{Genre: "History", Author: "Yuval Noah Harari"})

	line := formatInterests(prefs)
	assert.Equal(t, "Inferred interests | genres: History, Fantasy | authors: Yuval Noah Harari, J.R.R. Tolkien", line)
}

func TestFormatBookLine(t *testing.T) {
	rated := book.Book{Title: "Dune", Year: "1965", Author: "Frank Herbert", Rating: 4.6}
	assert.Equal(t, "Dune (1965) by Frank Herbert [4.6/5]", formatBookLine(rated))

	unrated := book.Book{Title: "Dune", Year: "1965", Author: "Frank Herbert"}
	assert.Equal(t, "Dune (1965) by Frank Herbert", formatBookLine(unrated))
}

func TestInitLogging(t *testing.T) {
	require.NotPanics(t, initLogging)
}
