package catalog

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rkoski/bookdex/internal/cache"
)

// CachedSearch is Search behind the SQLite response cache. When the cache
// is disabled on the client it degrades to a plain Search call. Failures
// are never cached.
func (c *Client) CachedSearch(ctx context.Context, req SearchRequest) ([]Volume, error) {
	if !c.useCache {
		return c.Search(ctx, req)
	}

	if req.MaxResults <= 0 {
		req.MaxResults = 40
	}
	key := searchCacheKey(req)
	items, fromCache, err := cache.GetOrFetch(cache.SearchTable, key, func() ([]Volume, error) {
		return c.Search(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	if fromCache {
		slog.Debug("Catalog search served from cache", "query", req.Query)
	}
	return items, nil
}

// CachedVolume is Volume behind the SQLite response cache.
func (c *Client) CachedVolume(ctx context.Context, id string) (*Volume, error) {
	if !c.useCache {
		return c.Volume(ctx, id)
	}

	vol, fromCache, err := cache.GetOrFetch(cache.VolumeTable, id, func() (*Volume, error) {
		return c.Volume(ctx, id)
	})
	if err != nil {
		return nil, err
	}
	if fromCache {
		slog.Debug("Catalog volume served from cache", "id", id)
	}
	return vol, nil
}

// searchCacheKey builds a stable cache key covering every parameter that
// changes the response.
func searchCacheKey(req SearchRequest) string {
	return fmt.Sprintf("%s|%d|%s", req.Query, req.MaxResults, req.LangRestrict)
}
