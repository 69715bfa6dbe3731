// Package dashboard aggregates the landing-screen statistics. Each
// source is fetched concurrently and independently; a failed source is
// logged and dropped, whatever succeeded is shown.
package dashboard

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/chiruit2077/partslink/internal/orders"
	"github.com/chiruit2077/partslink/internal/parts"
	"github.com/chiruit2077/partslink/internal/retailers"
)

// OrderStatsSource yields the order summary.
type OrderStatsSource interface {
	Stats(ctx context.Context) (*orders.Stats, error)
}

// LowStockSource yields the low-stock alert list.
type LowStockSource interface {
	LowStockAlerts(ctx context.Context) ([]parts.ItemStatus, error)
}

// RetailerSource yields the retailer list.
type RetailerSource interface {
	List(ctx context.Context, filter retailers.ListFilter) ([]retailers.Retailer, error)
}

// Summary is the aggregated dashboard view. Nil/zero sections mean
// that source failed or was empty.
type Summary struct {
	Orders        *orders.Stats
	LowStock      []parts.ItemStatus
	RetailerCount int
	Partial       bool
}

// Service fans out to the stat sources.
type Service struct {
	orders    OrderStatsSource
	parts     LowStockSource
	retailers RetailerSource
	logger    *slog.Logger
}

// NewService constructs a Service.
func NewService(ordersSrc OrderStatsSource, partsSrc LowStockSource, retailersSrc RetailerSource, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{orders: ordersSrc, parts: partsSrc, retailers: retailersSrc, logger: logger}
}

// Summary fetches all sources concurrently, best effort. It only
// returns an error when the context is cancelled; individual source
// failures mark the summary partial.
func (s *Service) Summary(ctx context.Context) (*Summary, error) {
	var (
		summary Summary
		mu      sync.Mutex
	)
	markPartial := func(source string, err error) {
		s.logger.Warn("dashboard source unavailable",
			slog.String("source", source), slog.Any("error", err))
		mu.Lock()
		summary.Partial = true
		mu.Unlock()
	}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		stats, err := s.orders.Stats(ctx)
		if err != nil {
			markPartial("order-stats", err)
			return nil
		}
		summary.Orders = stats
		return nil
	})

	g.Go(func() error {
		alerts, err := s.parts.LowStockAlerts(ctx)
		if err != nil {
			markPartial("low-stock", err)
			return nil
		}
		summary.LowStock = alerts
		return nil
	})

	g.Go(func() error {
		list, err := s.retailers.List(ctx, retailers.ListFilter{ActiveOnly: true})
		if err != nil {
			markPartial("retailers", err)
			return nil
		}
		summary.RetailerCount = len(list)
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &summary, nil
}
