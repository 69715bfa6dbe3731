package orders

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chiruit2077/partslink/internal/api"
	"github.com/chiruit2077/partslink/internal/auth"
)

func newTestService(t *testing.T, handler http.Handler) (*Service, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := api.NewClient(api.Config{BaseURL: srv.URL}, nil)
	return NewService(client, nil, nil), srv
}

func TestUpdateStatusRejectsInvalidTransitionLocally(t *testing.T) {
	var hits atomic.Int64
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	order := &Order{ID: 1, Status: StatusCompleted}
	err := svc.UpdateStatus(context.Background(), order, StatusPending, "", "tester")
	require.ErrorIs(t, err, ErrInvalidTransition)
	require.Zero(t, hits.Load(), "invalid transitions must never reach the network")
	require.Empty(t, order.History)
	require.Equal(t, StatusCompleted, order.Status)
}

func TestUpdateStatusRejectsUnpickedItemsLocally(t *testing.T) {
	var hits atomic.Int64
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
	}))

	order := &Order{
		ID:     1,
		Status: StatusProcessing,
		Items:  []OrderItem{{PartNumber: "A", Picked: false}, {PartNumber: "B", Picked: true}},
	}
	err := svc.UpdateStatus(context.Background(), order, StatusPicked, "", "tester")
	var guard *GuardError
	require.ErrorAs(t, err, &guard)
	require.Equal(t, GuardMessagePicked, guard.Message)
	require.Zero(t, hits.Load())
}

func TestUpdateStatusAppliesOptimistically(t *testing.T) {
	var body struct {
		Status string `json:"status"`
		Notes  string `json:"notes"`
	}
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/orders/42/status", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.WriteHeader(http.StatusOK)
	}))

	order := &Order{
		ID:     42,
		Status: StatusProcessing,
		Items:  []OrderItem{{PartNumber: "A", Picked: true}},
	}
	require.NoError(t, svc.UpdateStatus(context.Background(), order, StatusPicked, "all set", "Ravi Kumar"))

	require.Equal(t, "Picked", body.Status)
	require.Equal(t, StatusPicked, order.Status)
	require.Len(t, order.History, 1)
	entry := order.History[0]
	require.Equal(t, StatusPicked, entry.Status)
	require.Equal(t, "Ravi Kumar", entry.Actor)
	require.Equal(t, "all set", entry.Notes)
	require.False(t, entry.At.IsZero())
}

func TestUpdateStatusKeepsLocalEntryOnRemoteFailure(t *testing.T) {
	svc, _ := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))

	order := &Order{ID: 7, Status: StatusNew}
	err := svc.UpdateStatus(context.Background(), order, StatusPending, "", "tester")
	require.Error(t, err)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, http.StatusInternalServerError, apiErr.Status)
	require.Equal(t, StatusPending, order.Status, "local state stays optimistic")
	require.Len(t, order.History, 1)
}

func TestMarkItemPicked(t *testing.T) {
	svc, _ := newTestService(t, http.NewServeMux())
	order := &Order{
		Status: StatusProcessing,
		Items:  []OrderItem{{PartNumber: "A", Quantity: 4}},
	}

	require.NoError(t, svc.MarkItemPicked(order, "A", auth.RoleStoreman, true))
	require.True(t, order.Items[0].Picked)
	require.InDelta(t, 4, order.Items[0].PickedQuantity, 0.001)

	err := svc.MarkItemPicked(order, "A", auth.RoleSalesman, true)
	require.ErrorIs(t, err, ErrPickNotAllowed, "only storeman-class roles may pick")

	order.Status = StatusPicked
	err = svc.MarkItemPicked(order, "A", auth.RoleStoreman, false)
	require.ErrorIs(t, err, ErrPickNotAllowed, "items are mutable only while Processing")
}

func TestListAndStats(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Processing", r.URL.Query().Get("status"))
		_, _ = w.Write([]byte(`{"orders": [{"Order_Id": 1, "Order_Status": "Processing"}]}`))
	})
	mux.HandleFunc("/orders/stats/summary", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"totalOrders": 5, "todayOrders": 2, "byStatus": {"new": 3, "Hold": 2}}`))
	})
	svc, _ := newTestService(t, mux)

	list, err := svc.List(context.Background(), ListFilter{Status: StatusProcessing})
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, StatusProcessing, list[0].Status)

	stats, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, int64(5), stats.TotalOrders)
	require.Equal(t, int64(3), stats.ByStatus[StatusNew], "stats statuses are canonicalized")
	require.Equal(t, int64(2), stats.ByStatus[StatusHold])
}
