package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// SearchRequest holds the parameters of one search endpoint call.
type SearchRequest struct {
	// Query is the composed search expression. Must be non-empty.
	Query string
	// MaxResults bounds the number of returned records (service max 40).
	MaxResults int
	// LangRestrict optionally restricts results to a language code.
	LangRestrict string
}

// Search issues a search request against the catalog service and returns the
// raw records. A response with zero items is not an error; it returns an
// empty slice. All failures are classified APIErrors.
func (c *Client) Search(ctx context.Context, req SearchRequest) ([]Volume, error) {
	if strings.TrimSpace(req.Query) == "" {
		return nil, &APIError{Op: "search", Kind: KindBadRequest, Message: "empty query"}
	}
	if req.MaxResults <= 0 {
		req.MaxResults = 40
	}

	params := url.Values{}
	params.Set("q", req.Query)
	params.Set("maxResults", strconv.Itoa(req.MaxResults))
	if c.apiKey != "" {
		params.Set("key", c.apiKey)
	}
	if req.LangRestrict != "" {
		params.Set("langRestrict", strings.ToLower(req.LangRestrict))
	}

	endpoint := fmt.Sprintf("%s/volumes?%s", c.baseURL, params.Encode())

	slog.Debug("Searching catalog service", "query", req.Query, "max_results", req.MaxResults)

	var response SearchResponse
	if err := c.getJSON(ctx, "search", endpoint, c.searchTimeout, &response); err != nil {
		return nil, err
	}

	slog.Debug("Catalog search returned", "query", req.Query, "items", len(response.Items))
	return response.Items, nil
}

// getJSON performs one GET against the catalog service with the operation's
// deadline applied, classifying every failure.
func (c *Client) getJSON(ctx context.Context, op, endpoint string, timeout time.Duration, target any) error {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.rateLimiter.Wait(ctx); err != nil {
		return classifyTransport(op, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return &APIError{Op: op, Kind: KindBadRequest, Message: err.Error()}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransport(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyStatus(op, resp.StatusCode, readErrorMessage(resp.Body))
	}

	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return &APIError{Op: op, Kind: KindUnknown, Message: fmt.Sprintf("decode response: %v", err)}
	}
	return nil
}

// readErrorMessage extracts the machine-readable message from an error body.
// Falls back to the raw body when it is not the expected envelope.
func readErrorMessage(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil {
		return ""
	}

	var envelope errorEnvelope
	if err := json.Unmarshal(raw, &envelope); err == nil && envelope.Error.Message != "" {
		return envelope.Error.Message
	}
	return strings.TrimSpace(string(raw))
}
