package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
)

// Volume fetches the full detail record for one catalog identifier.
// All failures are classified APIErrors; a missing record reports
// KindNotFound.
func (c *Client) Volume(ctx context.Context, id string) (*Volume, error) {
	if id == "" {
		return nil, &APIError{Op: "volume", Kind: KindBadRequest, Message: "empty volume id"}
	}

	endpoint := fmt.Sprintf("%s/volumes/%s", c.baseURL, url.PathEscape(id))
	if c.apiKey != "" {
		endpoint += "?key=" + url.QueryEscape(c.apiKey)
	}

	slog.Debug("Fetching catalog volume", "id", id)

	var volume Volume
	if err := c.getJSON(ctx, "volume", endpoint, c.detailTimeout, &volume); err != nil {
		return nil, err
	}

	return &volume, nil
}
