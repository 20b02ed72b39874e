package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/toolhub/backoffice/internal/domain"
)

const statsKey = "dashboard:stats"

func NewRedisStatsCache(client *redis.Client, baseTTL time.Duration) *RedisStatsCache {
	return &RedisStatsCache{
		client:  client,
		baseTTL: baseTTL,
	}
}

type RedisStatsCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisStatsCache) Get(ctx context.Context) ([]domain.StatCard, error) {
	data, err := r.client.Get(ctx, statsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var cards []domain.StatCard
	if err2 := json.Unmarshal(data, &cards); err2 != nil {
		return nil, fmt.Errorf("unmarshal stats failed: %w", err2)
	}

	return cards, nil
}

func (r *RedisStatsCache) Set(ctx context.Context, cards []domain.StatCard) error {
	data, err := json.Marshal(cards)
	if err != nil {
		return fmt.Errorf("marshal stats failed: %w", err)
	}

	// Jitter spreads expirations so concurrent dashboards don't all miss at once
	jitter := time.Duration(rand.Intn(10)) * time.Second
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, statsKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisStatsCache) Delete(ctx context.Context) error {
	if err := r.client.Del(ctx, statsKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}

	return nil
}
