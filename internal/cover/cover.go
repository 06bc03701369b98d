// Package cover downloads book cover images and saves local thumbnails.
package cover

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/rkoski/bookdex/internal/book"
)

const (
	defaultMaxWidth = 256
	fetchTimeout    = 30 * time.Second
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]+`)

// Downloader fetches covers over HTTP and writes resized thumbnails.
type Downloader struct {
	httpClient *http.Client
	maxWidth   int
}

// DownloaderOption customizes a Downloader.
type DownloaderOption func(*Downloader)

// WithHTTPClient swaps the HTTP client, mainly for tests.
func WithHTTPClient(client *http.Client) DownloaderOption {
	return func(d *Downloader) { d.httpClient = client }
}

// WithMaxWidth overrides the thumbnail width bound.
func WithMaxWidth(width int) DownloaderOption {
	return func(d *Downloader) {
		if width > 0 {
			d.maxWidth = width
		}
	}
}

// NewDownloader creates a Downloader with the default width bound.
func NewDownloader(opts ...DownloaderOption) *Downloader {
	d := &Downloader{
		httpClient: &http.Client{Timeout: fetchTimeout},
		maxWidth:   defaultMaxWidth,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Save downloads a book's cover into dir and returns the written path.
// Images wider than the bound are resized down; narrower ones are saved
// as-is. Books carrying only the placeholder cover are skipped.
func (d *Downloader) Save(ctx context.Context, b book.Book, dir string) (string, error) {
	if b.CoverURL == "" || b.CoverURL == book.PlaceholderCoverURL {
		return "", fmt.Errorf("no cover available for %q", b.Title)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.CoverURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("unexpected status %d downloading cover", resp.StatusCode)
	}

	img, err := imaging.Decode(resp.Body, imaging.AutoOrientation(true))
	if err != nil {
		return "", fmt.Errorf("decoding cover image: %w", err)
	}

	if img.Bounds().Dx() > d.maxWidth {
		img = imaging.Resize(img, d.maxWidth, 0, imaging.Lanczos)
	}

	savePath := filepath.Join(dir, Filename(b))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	if err := imaging.Save(img, savePath, imaging.JPEGQuality(85)); err != nil {
		return "", err
	}
	return savePath, nil
}

// Filename derives a filesystem-safe cover name from the book identity.
func Filename(b book.Book) string {
	base := b.ID
	if base == "" {
		base = b.Title
	}
	base = unsafeFilenameChars.ReplaceAllString(strings.TrimSpace(base), "_")
	if base == "" {
		base = "cover"
	}
	return base + ".jpg"
}
