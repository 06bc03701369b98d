package cache

// SQL schemas for cache tables.
// All cache tables use "cache_key" as the primary key column for consistency.

// SearchTable is the cache table for catalog search responses.
const SearchTable = "catalog_search_cache"

// VolumeTable is the cache table for catalog detail records.
const VolumeTable = "catalog_volume_cache"

// SearchSchema defines the schema for the catalog search response cache
const SearchSchema = `
CREATE TABLE IF NOT EXISTS catalog_search_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_catalog_search_cached_at ON catalog_search_cache(cached_at);
`

// VolumeSchema defines the schema for the catalog volume detail cache
const VolumeSchema = `
CREATE TABLE IF NOT EXISTS catalog_volume_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_catalog_volume_cached_at ON catalog_volume_cache(cached_at);
`

// AllSchemas contains all cache table schemas for easy initialization
var AllSchemas = []string{
	SearchSchema,
	VolumeSchema,
}

// ValidTableNames is the whitelist of allowed cache table names,
// used to prevent SQL injection when interpolating table names
var ValidTableNames = map[string]bool{
	SearchTable: true,
	VolumeTable: true,
}
