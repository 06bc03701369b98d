// Package catalog provides a client for the remote book catalog service.
//
// The client speaks a Google-Books-shaped wire format: a volume search
// endpoint and a per-volume detail endpoint. Every failure is classified
// into the FailureKind taxonomy so the caller can pick a recovery path
// without inspecting transport details.
package catalog

import (
	"net/http"
	"strings"
	"time"

	"github.com/rkoski/bookdex/internal/ratelimit"
)

const (
	defaultBaseURL       = "https://www.googleapis.com/books/v1"
	defaultSearchTimeout = 8 * time.Second
	defaultDetailTimeout = 10 * time.Second
	defaultRatePerSecond = 5
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client is a catalog service API client.
type Client struct {
	apiKey        string
	baseURL       string
	httpClient    HTTPDoer
	rateLimiter   *ratelimit.Limiter
	searchTimeout time.Duration
	detailTimeout time.Duration
	useCache      bool
}

// NewClient creates a new catalog service client.
func NewClient(apiKey string, opts ...Option) *Client {
	client := &Client{
		apiKey:        apiKey,
		baseURL:       defaultBaseURL,
		httpClient:    &http.Client{},
		rateLimiter:   ratelimit.New("catalog", defaultRatePerSecond),
		searchTimeout: defaultSearchTimeout,
		detailTimeout: defaultDetailTimeout,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithBaseURL sets a custom base URL for the catalog service.
func WithBaseURL(base string) Option {
	return func(client *Client) {
		if base != "" {
			client.baseURL = strings.TrimSuffix(base, "/")
		}
	}
}

// WithRateLimiter sets a custom rate limiter for the client.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		if limiter != nil {
			client.rateLimiter = limiter
		}
	}
}

// WithTimeouts overrides the per-operation request deadlines.
func WithTimeouts(search, detail time.Duration) Option {
	return func(client *Client) {
		if search > 0 {
			client.searchTimeout = search
		}
		if detail > 0 {
			client.detailTimeout = detail
		}
	}
}

// WithResponseCache enables the SQLite response cache for search and
// detail requests.
func WithResponseCache() Option {
	return func(client *Client) {
		client.useCache = true
	}
}
