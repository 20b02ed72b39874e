package service

import (
	"context"
	"log"
	"time"

	"github.com/toolhub/backoffice/internal/cache"
	"github.com/toolhub/backoffice/internal/domain"
	"github.com/toolhub/backoffice/internal/repository"
)

// OrderService gates status changes on persisted orders. Orders are created
// by the storefront checkout, never here, and are never hard-deleted.
type OrderService struct {
	repo  repository.OrderRepository
	cache cache.StatsCache
}

func NewOrderService(repo repository.OrderRepository, cache cache.StatsCache) *OrderService {
	return &OrderService{
		repo:  repo,
		cache: cache,
	}
}

func (s *OrderService) List(ctx context.Context) ([]domain.Order, error) {
	return s.repo.List(ctx)
}

func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	return s.repo.Get(ctx, id)
}

// UpdateStatus applies one lifecycle transition. Legality is checked here,
// at the service boundary, so a client cannot revive a cancelled order no
// matter what buttons its UI shows. The check reads the current status first;
// two racing legal transitions on the same order are last-write-wins.
func (s *OrderService) UpdateStatus(ctx context.Context, id, status string) (*domain.Order, error) {
	target := domain.OrderStatus(status)
	if !target.Valid() {
		return nil, domain.ErrInvalidStatus
	}

	current, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if !current.Status.CanTransition(target) {
		return nil, domain.ErrIllegalTransition
	}

	updated, err := s.repo.UpdateStatus(ctx, id, target)
	if err != nil {
		return nil, err
	}

	s.invalidateStats()
	return updated, nil
}

func (s *OrderService) invalidateStats() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx); err != nil {
		log.Printf("stats cache invalidate error: %v \n", err)
	}
}
