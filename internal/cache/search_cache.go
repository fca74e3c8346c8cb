package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/eko/gocache/lib/v4/store"

	"textlens/internal/config"
	"textlens/internal/reddit"
)

// SearchCachePrefix is the cache key prefix for Reddit search results.
const SearchCachePrefix = "reddit-search-"

// searchTTL bounds how long a search result is reused.
const searchTTL = 15 * time.Minute

// SearchCache caches Reddit search results per (query, limit) pair.
type SearchCache struct {
	cache *PrefixedCache[[]reddit.Post]
}

// NewSearchCache creates a new search cache based on the configured engine.
func NewSearchCache(cfg *config.CacheConfig) *SearchCache {
	return &SearchCache{
		cache: NewPrefixedCache[[]reddit.Post](newCacheInstanceByType(cfg, searchTTL), SearchCachePrefix),
	}
}

func searchKey(query string, limit int) string {
	return fmt.Sprintf("%s:%d", query, limit)
}

// Get returns the cached posts for the query, if present.
func (s *SearchCache) Get(ctx context.Context, query string, limit int) ([]reddit.Post, bool) {
	posts, err := s.cache.Get(ctx, searchKey(query, limit))
	if err != nil {
		return nil, false
	}
	return posts, true
}

// Set stores the posts for the query.
func (s *SearchCache) Set(ctx context.Context, query string, limit int, posts []reddit.Post) error {
	return s.cache.Set(ctx, searchKey(query, limit), posts, store.WithExpiration(searchTTL))
}

// Clear drops all cached search results.
func (s *SearchCache) Clear(ctx context.Context) error {
	return s.cache.Clear(ctx)
}
