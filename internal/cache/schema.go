package cache

// SQL schemas for cache tables
// All cache tables use "cache_key" as the primary key column for consistency

// WebpageCacheSchema defines the schema for fetched webpage metadata cache
const WebpageCacheSchema = `
CREATE TABLE IF NOT EXISTS webpage_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_webpage_cached_at ON webpage_cache(cached_at);
`

// RenderCacheSchema defines the schema for browser-rendered page metadata cache
const RenderCacheSchema = `
CREATE TABLE IF NOT EXISTS render_cache (
	cache_key TEXT PRIMARY KEY NOT NULL,
	data TEXT NOT NULL,
	cached_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_render_cached_at ON render_cache(cached_at);
`

// AllCacheSchemas contains all cache table schemas for easy initialization
var AllCacheSchemas = []string{
	WebpageCacheSchema,
	RenderCacheSchema,
}

// ValidCacheTableNames is the whitelist of allowed cache table names
// Used to prevent SQL injection when interpolating table names
var ValidCacheTableNames = map[string]bool{
	"webpage_cache": true,
	"render_cache":  true,
}
