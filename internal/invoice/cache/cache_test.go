package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mwarren02/billdesk/internal/invoice/cache"
)

func newTestCache(t *testing.T) *cache.ListCache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return cache.NewListCache(client, time.Minute)
}

func TestListCache_MissThenHit(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	payload := []byte(`[{"id":"a1"}]`)
	require.NoError(t, c.Set(ctx, payload))

	got, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, payload, got)
}

func TestListCache_Invalidate(t *testing.T) {
	c := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, []byte("stale")))
	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	// Invalidating an absent key is not an error.
	require.NoError(t, c.Invalidate(ctx))
}

func TestNewClient_BadURL(t *testing.T) {
	_, err := cache.NewClient("not-a-url")
	assert.Error(t, err)
}
