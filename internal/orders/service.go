package orders

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/chiruit2077/partslink/internal/api"
	"github.com/chiruit2077/partslink/internal/auth"
	"github.com/chiruit2077/partslink/internal/rbac"
)

// ErrPickNotAllowed indicates the actor or order state does not permit
// toggling an item's picked flag.
var ErrPickNotAllowed = fmt.Errorf("picking not permitted")

// Service wraps the order endpoints and the transition policy.
type Service struct {
	client   *api.Client
	racks    RackLocator
	logger   *slog.Logger
	validate *validator.Validate
	now      func() time.Time
}

// NewService constructs a Service. The rack locator may be nil when
// rack display is not needed.
func NewService(client *api.Client, racks RackLocator, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		client:   client,
		racks:    racks,
		logger:   logger,
		validate: validator.New(),
		now:      time.Now,
	}
}

// ListFilter narrows the order list.
type ListFilter struct {
	Status     Status
	RetailerID int64
	BranchCode string
	Search     string
	Limit      int
	Offset     int
}

func (f ListFilter) query() string {
	values := url.Values{}
	if f.Status != "" {
		values.Set("status", string(f.Status))
	}
	if f.RetailerID > 0 {
		values.Set("retailer_id", strconv.FormatInt(f.RetailerID, 10))
	}
	if f.BranchCode != "" {
		values.Set("branch", f.BranchCode)
	}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	if f.Limit > 0 {
		values.Set("limit", strconv.Itoa(f.Limit))
	}
	if f.Offset > 0 {
		values.Set("offset", strconv.Itoa(f.Offset))
	}
	if len(values) == 0 {
		return ""
	}
	return "?" + values.Encode()
}

// List fetches orders matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Order, error) {
	var resp struct {
		Orders []orderWire `json:"orders"`
	}
	if err := s.client.Get(ctx, "/orders"+filter.query(), &resp); err != nil {
		return nil, err
	}
	now := s.now()
	out := make([]Order, 0, len(resp.Orders))
	for _, w := range resp.Orders {
		out = append(out, normalizeOrder(w, s.racks, now))
	}
	return out, nil
}

// Get fetches a single order.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	var w orderWire
	if err := s.client.Get(ctx, "/orders/"+strconv.FormatInt(id, 10), &w); err != nil {
		return nil, err
	}
	order := normalizeOrder(w, s.racks, s.now())
	return &order, nil
}

// Create validates and submits a draft order.
func (s *Service) Create(ctx context.Context, draft Draft) (*Order, error) {
	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("validate order: %w", err)
	}
	req := buildOrderRequest(draft, s.now())

	var w orderWire
	if err := s.client.Post(ctx, "/orders", req, &w); err != nil {
		return nil, err
	}
	order := normalizeOrder(w, s.racks, s.now())
	return &order, nil
}

type statusUpdateRequest struct {
	Status string `json:"status"`
	Notes  string `json:"notes,omitempty"`
}

// UpdateStatus validates the transition locally, applies it to the
// order optimistically and then informs the backend. Validation
// failures never reach the network. The local history entry is kept
// regardless of the remote outcome; a failed call surfaces its error
// for the screen to offer a retry.
func (s *Service) UpdateStatus(ctx context.Context, order *Order, target Status, notes, actor string) error {
	if err := ValidateTransition(order.Status, target, order.Items); err != nil {
		return err
	}

	order.applyTransition(target, actor, notes, s.now())

	path := "/orders/" + strconv.FormatInt(order.ID, 10) + "/status"
	if err := s.client.Patch(ctx, path, statusUpdateRequest{Status: string(target), Notes: notes}, nil); err != nil {
		s.logger.Warn("status update not confirmed",
			slog.Int64("order", order.ID),
			slog.String("target", string(target)),
			slog.Any("error", err))
		return err
	}
	return nil
}

// MarkItemPicked toggles an item's picked flag. Only a storeman may
// pick, and only while the order is Processing.
func (s *Service) MarkItemPicked(order *Order, partNumber string, role auth.Role, picked bool) error {
	if !rbac.Can(role, rbac.CapItemsPick) {
		return fmt.Errorf("%w: role %q may not pick items", ErrPickNotAllowed, role)
	}
	if order.Status != StatusProcessing {
		return fmt.Errorf("%w: order is %s, not Processing", ErrPickNotAllowed, order.Status)
	}
	for i := range order.Items {
		if order.Items[i].PartNumber == partNumber {
			order.Items[i].Picked = picked
			if picked {
				order.Items[i].PickedQuantity = order.Items[i].Quantity
			} else {
				order.Items[i].PickedQuantity = 0
			}
			return nil
		}
	}
	return fmt.Errorf("%w: no line for part %q", ErrPickNotAllowed, partNumber)
}

// Stats fetches the dashboard order summary.
func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	var w orderStatsWire
	if err := s.client.Get(ctx, "/orders/stats/summary", &w); err != nil {
		return nil, err
	}
	stats := normalizeStats(w)
	return &stats, nil
}
