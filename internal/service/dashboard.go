package service

import (
	"context"
	"errors"
	"log"
	"strconv"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/toolhub/backoffice/internal/cache"
	"github.com/toolhub/backoffice/internal/domain"
	"github.com/toolhub/backoffice/internal/repository"
)

const comparisonWindow = 30 * 24 * time.Hour

// DashboardService computes the four KPI cards. The previous-period snapshot
// is cumulative: all completed orders created before now-30d, compared
// against all completed orders ever. The two windows are deliberately not
// the same length; the numbers the storefront team watches were defined this
// way and changing the formula silently would shift every trend arrow.
// Previous catalog size has no historical snapshot at all and is
// approximated as 90% of the current count.
type DashboardService struct {
	orders repository.OrderRepository
	tools  repository.ToolRepository
	cache  cache.StatsCache
	sfg    singleflight.Group // Prevents cache stampede
	now    func() time.Time
}

func NewDashboardService(orders repository.OrderRepository, tools repository.ToolRepository, cache cache.StatsCache) *DashboardService {
	return &DashboardService{
		orders: orders,
		tools:  tools,
		cache:  cache,
		now:    time.Now,
	}
}

func (s *DashboardService) Stats(ctx context.Context) ([]domain.StatCard, error) {
	// Use singleflight so concurrent cache misses compute the cards once
	v, err, _ := s.sfg.Do(statsFlightKey, func() (interface{}, error) {
		cards, err := s.cache.Get(ctx)
		if err == nil {
			return cards, nil
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("stats cache get error: %v \n", err) // log cache error but continue
		}

		cards, errCompute := s.compute(ctx)
		if errCompute != nil {
			return nil, errCompute
		}

		go func() {
			setCtx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(setCtx, cards); errSet != nil {
				log.Printf("stats cache set error: %v \n", errSet)
			}
		}()

		return cards, nil
	})

	if err != nil {
		return nil, err
	}

	return v.([]domain.StatCard), nil
}

const statsFlightKey = "dashboard"

func (s *DashboardService) compute(ctx context.Context) ([]domain.StatCard, error) {
	totalTools, err := s.tools.Count(ctx)
	if err != nil {
		return nil, err
	}

	current, err := s.orders.CompletedStats(ctx, time.Time{})
	if err != nil {
		return nil, err
	}

	cutoff := s.now().Add(-comparisonWindow)
	previous, err := s.orders.CompletedStats(ctx, cutoff)
	if err != nil {
		return nil, err
	}

	prevTools := int64(float64(totalTools) * 0.9)

	revenueChange, revenueTrend := percentChange(current.Revenue, previous.Revenue)
	ordersChange, ordersTrend := percentChange(float64(current.Orders), float64(previous.Orders))
	usersChange, usersTrend := percentChange(float64(current.Customers), float64(previous.Customers))
	toolsChange, toolsTrend := percentChange(float64(totalTools), float64(prevTools))

	p := message.NewPrinter(language.English)

	cards := []domain.StatCard{
		{
			Title:  "Total Revenue",
			Value:  p.Sprintf("Kes %.0f", current.Revenue),
			Change: revenueChange + "%",
			Trend:  revenueTrend,
			Icon:   "MdTrendingUp",
			Color:  trendColor(revenueTrend, "text-success"),
		},
		{
			Title:  "Total Orders",
			Value:  p.Sprintf("%d", current.Orders),
			Change: ordersChange + "%",
			Trend:  ordersTrend,
			Icon:   "MdShoppingCart",
			Color:  trendColor(ordersTrend, "text-info"),
		},
		{
			Title:  "Active Customers",
			Value:  p.Sprintf("%d", current.Customers),
			Change: usersChange + "%",
			Trend:  usersTrend,
			Icon:   "MdPeople",
			Color:  trendColor(usersTrend, "text-warning"),
		},
		{
			Title:  "Available Tools",
			Value:  p.Sprintf("%d", totalTools),
			Change: toolsChange + "%",
			Trend:  toolsTrend,
			Icon:   "MdInventory",
			Color:  trendColor(toolsTrend, "text-primary"),
		},
	}

	return cards, nil
}

// percentChange reports "100"/up when there is no prior data, which is
// indistinguishable from genuine hundred-percent growth. Accepted ambiguity;
// it keeps the division-by-zero case off every card.
func percentChange(current, previous float64) (value, trend string) {
	if previous == 0 {
		return "100", "up"
	}

	change := (current - previous) / previous * 100
	value = strconv.FormatFloat(change, 'f', 1, 64)
	if change >= 0 {
		return "+" + value, "up"
	}
	return value, "down"
}

func trendColor(trend, upColor string) string {
	if trend == "up" {
		return upColor
	}
	return "text-danger"
}
