package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/humanlog"
	"github.com/spf13/viper"

	"github.com/rkoski/bookdex/internal/book"
	"github.com/rkoski/bookdex/internal/cache"
	"github.com/rkoski/bookdex/internal/catalog"
	"github.com/rkoski/bookdex/internal/config"
	"github.com/rkoski/bookdex/internal/cover"
	"github.com/rkoski/bookdex/internal/library"
	"github.com/rkoski/bookdex/internal/reader"
	"github.com/rkoski/bookdex/internal/recommend"
	"github.com/rkoski/bookdex/internal/search"
	"github.com/rkoski/bookdex/internal/session"
	"github.com/rkoski/bookdex/internal/tui"
)

// CLI represents the complete command structure for the bookdex application
type CLI struct {
	// Global flags
	APIKey  string `help:"Catalog API key (overrides config and CATALOG_API_KEY)"`
	NoCache bool   `help:"Bypass the response cache"`

	// Cache flags
	CacheDBFile string `help:"Path to cache SQLite database file" default:"./cache.db"`
	CacheTTL    string `help:"Cache time-to-live duration (e.g., 168h for 7 days)" default:"168h"`

	// Library flags
	LibraryDB string `help:"Path to the favorites SQLite database file" default:"./bookdex.db"`

	Search    SearchCmd    `cmd:"" help:"Search the catalog and print matching books"`
	Browse    BrowseCmd    `cmd:"" help:"Search the catalog and browse results interactively"`
	Show      ShowCmd      `cmd:"" help:"Show the detail view for one book"`
	Recommend RecommendCmd `cmd:"" help:"Show top-rated picks for a search"`
	Topics    TopicsCmd    `cmd:"" help:"List the browsable topics"`
	Favorites FavoritesCmd `cmd:"" help:"List the saved favorites"`
	Cache     CacheCmd     `cmd:"" help:"Manage the response cache"`
}

// SearchCmd represents the search command
type SearchCmd struct {
	Query []string `arg:"" optional:"" help:"Free-text search terms"`
	filterFlags
	Topic string `short:"t" help:"Search a topic instead of free text"`
	Page  int    `help:"Result page to print" default:"1"`
}

// BrowseCmd represents the interactive browse command
type BrowseCmd struct {
	Query []string `arg:"" optional:"" help:"Free-text search terms"`
	filterFlags
	Topic string `short:"t" help:"Search a topic instead of free text"`
}

// ShowCmd represents the detail view command
type ShowCmd struct {
	ID        string `arg:"" help:"Catalog volume ID"`
	Probe     bool   `help:"Probe the frame viewer in a headless browser"`
	SaveCover string `help:"Directory to save a cover thumbnail into"`
}

// RecommendCmd represents the recommendation command
type RecommendCmd struct {
	Query []string `arg:"" optional:"" help:"Free-text search terms"`
	filterFlags
	Topic string `short:"t" help:"Search a topic instead of free text"`
}

// TopicsCmd lists the browsable topics
type TopicsCmd struct{}

// FavoritesCmd lists the persisted favorites
type FavoritesCmd struct{}

// CacheCmd groups the cache management subcommands
type CacheCmd struct {
	Invalidate cache.InvalidateCmd `cmd:"" help:"Invalidate cached catalog responses"`
}

// filterFlags are the residual filter flags shared by the search-shaped
// commands.
type filterFlags struct {
	Genre     string  `short:"g" help:"Filter by genre (substring match)"`
	Author    string  `short:"a" help:"Filter by author (substring match)"`
	Year      string  `short:"y" help:"Filter by exact publication year"`
	Language  string  `short:"l" help:"Filter by language code (also restricts the remote query)"`
	MinRating float64 `help:"Minimum rating (0-5)"`
	PriceMin  float64 `help:"Minimum price"`
	PriceMax  float64 `help:"Maximum price (0 = unbounded)"`
}

func (f filterFlags) toFilters() search.Filters {
	return search.Filters{
		Genre:     f.Genre,
		Author:    f.Author,
		Year:      f.Year,
		Language:  f.Language,
		MinRating: f.MinRating,
		PriceMin:  f.PriceMin,
		PriceMax:  f.PriceMax,
	}
}

// Execute runs the Kong-based CLI
func Execute() {
	initLogging()
	initConfig()

	var cli CLI

	ctx := kong.Parse(&cli,
		kong.Name("bookdex"),
		kong.Description("Discover, filter and read books from the catalog, with a built-in offline fallback."),
		kong.UsageOnError(),
	)

	updateGlobalConfig(&cli)

	app, err := newApp(&cli)
	if err != nil {
		slog.Error("Startup failed", "error", err)
		os.Exit(1)
	}

	if err := ctx.Run(app); err != nil {
		slog.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func initConfig() {
	viper.SetDefault("catalog.baseurl", "https://www.googleapis.com/books/v1")
	viper.SetDefault("catalog.maxresults", 40)

	// Cache defaults
	viper.SetDefault("cache.dbfile", "./cache.db")
	viper.SetDefault("cache.ttl", "168h") // 7 days

	// Enable environment variable support
	viper.AutomaticEnv()
	if err := viper.BindEnv("CatalogAPIKey", "CATALOG_API_KEY"); err != nil {
		slog.Error("Failed to bind environment variable", "error", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			slog.Error("Fatal error config file", "error", err)
			os.Exit(1)
		}
		// Running without a config file is normal; the built-in catalog
		// still works with no credential at all.
		slog.Debug("Config file not found, using defaults")
	}

	config.InitConfig()
}

func updateGlobalConfig(cli *CLI) {
	if cli.APIKey != "" {
		config.SetCatalogAPIKey(cli.APIKey)
	}

	viper.Set("cache.dbfile", cli.CacheDBFile)
	viper.Set("cache.ttl", cli.CacheTTL)
}

func initLogging() {
	handler := humanlog.NewHandler(os.Stdout, &humanlog.Options{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(handler))
}

// App wires the long-lived pieces every command shares.
type App struct {
	Session  *session.Session
	Client   *catalog.Client
	Fetcher  *search.Fetcher
	State    *search.State
	Resolver *reader.Resolver
	Prefs    *recommend.Preferences

	libraryPath string
}

func newApp(cli *CLI) (*App, error) {
	sess := session.New(config.CatalogAPIKey)

	clientOpts := []catalog.Option{
		catalog.WithBaseURL(config.CatalogBaseURL),
	}
	if !cli.NoCache {
		clientOpts = append(clientOpts, catalog.WithResponseCache())
	}
	client := catalog.NewClient(sess.APIKey(), clientOpts...)

	fetcher := search.NewFetcher(cachedSearcher{client}, sess,
		search.WithMaxResults(config.MaxResults))

	return &App{
		Session:  sess,
		Client:   client,
		Fetcher:  fetcher,
		State:    search.NewState(),
		Resolver: reader.NewResolver(cachedVolumes{client}, sess),
		Prefs:    recommend.NewPreferences(),

		libraryPath: cli.LibraryDB,
	}, nil
}

func (a *App) openLibrary() (*library.Library, error) {
	return library.Open(a.libraryPath)
}

// cachedSearcher routes fetches through the response cache.
type cachedSearcher struct{ client *catalog.Client }

func (s cachedSearcher) Search(ctx context.Context, req catalog.SearchRequest) ([]catalog.Volume, error) {
	return s.client.CachedSearch(ctx, req)
}

// cachedVolumes routes detail lookups through the response cache.
type cachedVolumes struct{ client *catalog.Client }

func (v cachedVolumes) Volume(ctx context.Context, id string) (*catalog.Volume, error) {
	return v.client.CachedVolume(ctx, id)
}

// Run methods for each command

func (s *SearchCmd) Run(app *App) error {
	rs, err := app.Fetcher.Fetch(context.Background(), strings.Join(s.Query, " "), s.Topic, s.filterFlags.toFilters())
	if err != nil {
		return err
	}
	app.State.Replace(rs)
	app.State.SetPage(s.Page)

	if rs.Notice != "" {
		fmt.Println(rs.Notice)
	}
	printPage(app.State)
	return nil
}

func (b *BrowseCmd) Run(app *App) error {
	rs, err := app.Fetcher.Fetch(context.Background(), strings.Join(b.Query, " "), b.Topic, b.filterFlags.toFilters())
	if err != nil {
		return err
	}
	app.State.Replace(rs)

	fetch := func(term string) (search.ResultSet, error) {
		return app.Fetcher.Fetch(context.Background(), term, "", b.filterFlags.toFilters())
	}

	for {
		result, err := tui.Browse("Results for: "+rs.Query, app.State, fetch)
		if err != nil {
			return err
		}

		switch result.Action {
		case tui.ActionOpened:
			detail, err := app.Resolver.Resolve(context.Background(), result.Selection.ID)
			if err != nil {
				return err
			}
			printDetail(detail)
			return nil
		case tui.ActionFavorited:
			if err := toggleFavorite(app, *result.Selection); err != nil {
				return err
			}
		default:
			return nil
		}
	}
}

func (s *ShowCmd) Run(app *App) error {
	detail, err := app.Resolver.Resolve(context.Background(), s.ID)
	if err != nil {
		return err
	}
	printDetail(detail)

	if s.SaveCover != "" {
		downloader := cover.NewDownloader()
		path, err := downloader.Save(context.Background(), detail.Book, s.SaveCover)
		if err != nil {
			slog.Warn("Cover download failed", "error", err)
		} else {
			fmt.Printf("Cover saved to %s\n", path)
		}
	}

	if s.Probe {
		prober := reader.NewFrameProber()
		outcome := prober.Load(context.Background(), detail.Book.ID)
		if msg := outcome.Message(); msg != "" {
			fmt.Println(msg)
		} else {
			fmt.Println("Frame viewer loads this book.")
		}
	}
	return nil
}

func (r *RecommendCmd) Run(app *App) error {
	rs, err := app.Fetcher.Fetch(context.Background(), strings.Join(r.Query, " "), r.Topic, r.filterFlags.toFilters())
	if err != nil {
		return err
	}

	if rs.Notice != "" {
		fmt.Println(rs.Notice)
	}
	recs := recommend.TopRated(rs.Books)
	for i, b := range recs {
		fmt.Printf("%d. %s\n", i+1, formatBookLine(b))
		app.Prefs.Record(b)
	}
	if line := formatInterests(app.Prefs); line != "" {
		fmt.Println(line)
	}
	return nil
}

// formatInterests renders the preference profile accumulated from the
// recommendations shown so far. Empty until something was recorded.
func formatInterests(p *recommend.Preferences) string {
	var parts []string
	if g := p.Genres(); len(g) > 0 {
		parts = append(parts, "genres: "+strings.Join(g, ", "))
	}
	if a := p.Authors(); len(a) > 0 {
		parts = append(parts, "authors: "+strings.Join(a, ", "))
	}
	if len(parts) == 0 {
		return ""
	}
	return "Inferred interests | " + strings.Join(parts, " | ")
}

func (t *TopicsCmd) Run(_ *App) error {
	for _, topic := range search.Topics {
		fmt.Println(topic)
	}
	return nil
}

func (f *FavoritesCmd) Run(app *App) error {
	lib, err := app.openLibrary()
	if err != nil {
		return err
	}
	defer func() { _ = lib.Close() }()

	favorites, err := lib.Favorites()
	if err != nil {
		return err
	}
	if len(favorites) == 0 {
		fmt.Println("No favorites saved.")
		return nil
	}
	for _, b := range favorites {
		fmt.Println(formatBookLine(b))
	}
	return nil
}

// toggleFavorite flips the favorite both in the per-run session and in the
// persistent library.
func toggleFavorite(app *App, b book.Book) error {
	lib, err := app.openLibrary()
	if err != nil {
		return err
	}
	defer func() { _ = lib.Close() }()

	added, err := lib.Toggle(b)
	if err != nil {
		return err
	}
	app.Session.ToggleFavorite(b.Title)

	if added {
		fmt.Printf("Added %q to favorites\n", b.Title)
	} else {
		fmt.Printf("Removed %q from favorites\n", b.Title)
	}
	return nil
}

func printPage(state *search.State) {
	page := state.Page()
	if len(page) == 0 {
		fmt.Println("No books found.")
		return
	}
	for _, b := range page {
		fmt.Println(formatBookLine(b))
	}
	fmt.Printf("Page %d/%d (%d books)\n", state.CurrentPage(), state.PageCount(), len(state.Books()))
}

func printDetail(d reader.Detail) {
	b := d.Book
	fmt.Printf("%s (%s)\n", b.Title, b.Year)
	fmt.Printf("  by %s\n", b.Author)
	fmt.Printf("  %s | %s | %s\n", b.Genre, b.Language, b.ISBN)
	if b.HasRating() {
		fmt.Printf("  rated %.1f/5\n", b.Rating)
	}
	fmt.Printf("  %s\n", b.Description)
	fmt.Printf("  read in frame viewer: %s\n", reader.FrameURL(b.ID))
	fmt.Printf("  search the web: %s\n", reader.SearchLink(b.Title))

	for _, opt := range d.Access {
		fmt.Printf("  [%s] %s: %s\n", opt.Kind, opt.Label, opt.URL)
	}

	if d.Synthesized {
		fmt.Println("  (preview record; configure an API key for full details)")
	}
	if d.ErrMessage != "" {
		fmt.Println("  " + d.ErrMessage)
	}
}

func formatBookLine(b book.Book) string {
	line := fmt.Sprintf("%s (%s) by %s", b.Title, b.Year, b.Author)
	if b.HasRating() {
		line += fmt.Sprintf(" [%.1f/5]", b.Rating)
	}
	return line
}
