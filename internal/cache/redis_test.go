package cache

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/toolhub/backoffice/internal/domain"
)

// setupTestRedis creates a miniredis server and returns a RedisStatsCache instance
func setupTestRedis(t *testing.T) (*RedisStatsCache, *miniredis.Miniredis, func()) {
	mr := miniredis.RunT(t)

	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})

	cache := NewRedisStatsCache(client, time.Minute)

	cleanup := func() {
		client.Close()
		mr.Close()
	}

	return cache, mr, cleanup
}

func sampleCards() []domain.StatCard {
	return []domain.StatCard{
		{Title: "Total Revenue", Value: "Kes 44,000", Change: "+12.5%", Trend: "up", Icon: "MdTrendingUp", Color: "text-success"},
		{Title: "Total Orders", Value: "12", Change: "+20.0%", Trend: "up", Icon: "MdShoppingCart", Color: "text-info"},
	}
}

func TestGet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	ctx := context.Background()

	cardsJSON, _ := json.Marshal(sampleCards())
	mr.Set(statsKey, string(cardsJSON))

	result, err := cache.Get(ctx)
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "Total Revenue", result[0].Title)
	assert.Equal(t, "Kes 44,000", result[0].Value)
}

func TestGet_CacheMiss(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	result, err := cache.Get(context.Background())
	assert.ErrorIs(t, err, ErrCacheMiss)
	assert.Nil(t, result)
}

func TestGet_InvalidJSON(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	require.NoError(t, mr.Set(statsKey, `[{"title":"Total Rev`))

	_, err := cache.Get(context.Background())
	require.ErrorContains(t, err, "unmarshal stats failed")
}

func TestSet_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	err := cache.Set(context.Background(), sampleCards())
	require.NoError(t, err)

	stored, e2 := mr.Get(statsKey)
	require.NoError(t, e2)
	assert.NotEmpty(t, stored)

	var storedCards []domain.StatCard
	require.NoError(t, json.Unmarshal([]byte(stored), &storedCards))
	assert.Len(t, storedCards, 2)
	assert.Equal(t, "Total Orders", storedCards[1].Title)
}

func TestSet_WithTTL(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	err := cache.Set(context.Background(), sampleCards())
	require.NoError(t, err)

	// Check that TTL was set (miniredis tracks TTL)
	ttl := mr.TTL(statsKey)
	assert.True(t, ttl >= time.Minute, "TTL should be at least base TTL")
	assert.True(t, ttl <= time.Minute+10*time.Second, "TTL should be base + max jitter")
}

func TestDelete_Success(t *testing.T) {
	cache, mr, cleanup := setupTestRedis(t)
	defer cleanup()

	cardsJSON, _ := json.Marshal(sampleCards())
	mr.Set(statsKey, string(cardsJSON))
	assert.True(t, mr.Exists(statsKey))

	err := cache.Delete(context.Background())
	require.NoError(t, err)

	assert.False(t, mr.Exists(statsKey))
}

func TestDelete_NonExistentKey(t *testing.T) {
	cache, _, cleanup := setupTestRedis(t)
	defer cleanup()

	// Deleting an empty cache should not error
	err := cache.Delete(context.Background())
	assert.NoError(t, err)
}
