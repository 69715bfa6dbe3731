package dashboard

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chiruit2077/partslink/internal/orders"
	"github.com/chiruit2077/partslink/internal/parts"
	"github.com/chiruit2077/partslink/internal/retailers"
)

type fakeOrderStats struct {
	stats *orders.Stats
	err   error
}

func (f fakeOrderStats) Stats(ctx context.Context) (*orders.Stats, error) {
	return f.stats, f.err
}

type fakeLowStock struct {
	alerts []parts.ItemStatus
	err    error
}

func (f fakeLowStock) LowStockAlerts(ctx context.Context) ([]parts.ItemStatus, error) {
	return f.alerts, f.err
}

type fakeRetailers struct {
	list []retailers.Retailer
	err  error
}

func (f fakeRetailers) List(ctx context.Context, filter retailers.ListFilter) ([]retailers.Retailer, error) {
	return f.list, f.err
}

func TestSummaryAggregatesAllSources(t *testing.T) {
	svc := NewService(
		fakeOrderStats{stats: &orders.Stats{
			TotalOrders: 12,
			TodayOrders: 3,
			ByStatus:    map[orders.Status]int64{orders.StatusPending: 3},
		}},
		fakeLowStock{alerts: []parts.ItemStatus{{PartNumber: "BRK-PAD-2041"}}},
		fakeRetailers{list: []retailers.Retailer{{ID: 501}, {ID: 502}}},
		nil,
	)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.False(t, summary.Partial)
	require.Equal(t, int64(12), summary.Orders.TotalOrders)
	require.Len(t, summary.LowStock, 1)
	require.Equal(t, 2, summary.RetailerCount)
}

func TestSummarySurvivesOneFailedSource(t *testing.T) {
	svc := NewService(
		fakeOrderStats{err: errors.New("stats endpoint down")},
		fakeLowStock{alerts: []parts.ItemStatus{{PartNumber: "CLT-KIT-7733"}}},
		fakeRetailers{list: []retailers.Retailer{{ID: 501}}},
		nil,
	)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err, "one dead source is not a dashboard error")
	require.True(t, summary.Partial)
	require.Nil(t, summary.Orders)
	require.Len(t, summary.LowStock, 1)
	require.Equal(t, 1, summary.RetailerCount)
}

func TestSummaryAllSourcesDown(t *testing.T) {
	boom := errors.New("backend unreachable")
	svc := NewService(fakeOrderStats{err: boom}, fakeLowStock{err: boom}, fakeRetailers{err: boom}, nil)

	summary, err := svc.Summary(context.Background())
	require.NoError(t, err)
	require.True(t, summary.Partial)
	require.Nil(t, summary.Orders)
	require.Empty(t, summary.LowStock)
	require.Zero(t, summary.RetailerCount)
}

func TestSummaryHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc := NewService(fakeOrderStats{stats: &orders.Stats{}}, fakeLowStock{}, fakeRetailers{}, nil)
	_, err := svc.Summary(ctx)
	require.ErrorIs(t, err, context.Canceled)
}
