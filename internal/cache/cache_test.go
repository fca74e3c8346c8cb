package cache

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"textlens/internal/config"
	"textlens/internal/reddit"
)

func TestSearchCacheRoundTrip(t *testing.T) {
	sc := NewSearchCache(&config.CacheConfig{Type: config.CacheTypeMemory})
	ctx := context.Background()

	posts := []reddit.Post{{Title: "first"}, {Title: "second"}}
	require.NoError(t, sc.Set(ctx, "science", 5, posts))

	got, ok := sc.Get(ctx, "science", 5)
	require.True(t, ok)
	assert.Equal(t, posts, got)

	// a different limit is a different key
	_, ok = sc.Get(ctx, "science", 10)
	assert.False(t, ok)

	_, ok = sc.Get(ctx, "politics", 5)
	assert.False(t, ok)
}

func TestSearchCacheClear(t *testing.T) {
	sc := NewSearchCache(&config.CacheConfig{Type: config.CacheTypeMemory})
	ctx := context.Background()

	require.NoError(t, sc.Set(ctx, "science", 5, []reddit.Post{{Title: "first"}}))
	require.NoError(t, sc.Clear(ctx))

	_, ok := sc.Get(ctx, "science", 5)
	assert.False(t, ok)
}

func TestPrefixedCacheMiss(t *testing.T) {
	sc := NewSearchCache(&config.CacheConfig{Type: config.CacheTypeMemory})

	_, ok := sc.Get(context.Background(), "nothing", 1)
	assert.False(t, ok)
}
