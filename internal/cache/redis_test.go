package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/fighters-hub/internal/config"
	"github.com/magabrotheeeer/fighters-hub/internal/models"
)

func setupTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	cache, err := InitServer(context.Background(), config.RedisConnection{AddressRedis: mr.Addr()})
	require.NoError(t, err)
	t.Cleanup(func() { _ = cache.Close() })
	return cache, mr
}

func TestSetAndGet(t *testing.T) {
	cache, _ := setupTestCache(t)
	ctx := context.Background()

	weight := 155
	expected := models.PublicProfile{Username: "khabib", Weight: &weight, Status: "Ready", VideoLinks: []string{}}
	require.NoError(t, cache.Set(ctx, ProfileKey("khabib"), expected, time.Minute))

	var actual models.PublicProfile
	found, err := cache.Get(ctx, ProfileKey("khabib"), &actual)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, expected, actual)
}

func TestGetNotFound(t *testing.T) {
	cache, _ := setupTestCache(t)

	var out models.PublicProfile
	found, err := cache.Get(context.Background(), "no_such_key", &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetInvalidJSON(t *testing.T) {
	cache, mr := setupTestCache(t)
	require.NoError(t, mr.Set(NewsListKey, "{not json"))

	var out []models.News
	found, err := cache.Get(context.Background(), NewsListKey, &out)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestExpiration(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, NewsKey(1), models.News{ID: 1, Title: "UFC 300"}, time.Second))
	mr.FastForward(2 * time.Second)

	var out models.News
	found, err := cache.Get(ctx, NewsKey(1), &out)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestInvalidate(t *testing.T) {
	cache, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, ProfileKey("a"), 1, time.Minute))
	require.NoError(t, cache.Set(ctx, ProfileKey("b"), 2, time.Minute))

	require.NoError(t, cache.Invalidate(ctx, ProfileKey("a"), ProfileKey("b")))
	assert.False(t, mr.Exists(ProfileKey("a")))
	assert.False(t, mr.Exists(ProfileKey("b")))

	assert.NoError(t, cache.Invalidate(ctx))
}

func TestInitServer_Unreachable(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	addr := mr.Addr()
	mr.Close()

	_, err = InitServer(context.Background(), config.RedisConnection{AddressRedis: addr, DialTimeout: 100 * time.Millisecond})
	assert.Error(t, err)
}
