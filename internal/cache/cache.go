package cache

import (
	"context"
	"errors"

	"github.com/toolhub/backoffice/internal/domain"
)

// StatsCache holds the computed dashboard cards between requests. The
// dashboard is the only cached read; everything else goes straight to the
// database.
type StatsCache interface {
	Get(ctx context.Context) ([]domain.StatCard, error)
	Set(ctx context.Context, cards []domain.StatCard) error
	Delete(ctx context.Context) error
}

var ErrCacheMiss = errors.New("cache miss")
