package parts

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/chiruit2077/partslink/internal/api"
)

type rackLocator interface {
	Rack(partNumber string) string
}

// Service wraps the parts catalog and item-status endpoints.
type Service struct {
	client   *api.Client
	racks    rackLocator
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(client *api.Client, racks rackLocator) *Service {
	return &Service{client: client, racks: racks, validate: validator.New()}
}

// ListFilter narrows the catalog list.
type ListFilter struct {
	Category   string
	FocusGroup string
	Search     string
	Limit      int
	Offset     int
}

func (f ListFilter) query() string {
	values := url.Values{}
	if f.Category != "" {
		values.Set("category", f.Category)
	}
	if f.FocusGroup != "" {
		values.Set("focus_group", f.FocusGroup)
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

// List fetches catalog entries matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Part, error) {
	var resp struct {
		Parts []partWire `json:"parts"`
	}
	if err := s.client.Get(ctx, "/parts"+filter.query(), &resp); err != nil {
		return nil, err
	}
	out := make([]Part, 0, len(resp.Parts))
	for _, w := range resp.Parts {
		out = append(out, normalizePart(w))
	}
	return out, nil
}

// Get fetches one part by its part number.
func (s *Service) Get(ctx context.Context, partNumber string) (*Part, error) {
	var w partWire
	if err := s.client.Get(ctx, "/parts/"+url.PathEscape(partNumber), &w); err != nil {
		return nil, err
	}
	part := normalizePart(w)
	return &part, nil
}

type stockUpdateRequest struct {
	Quantity float64 `json:"quantity" validate:"gte=0"`
}

// UpdateStock sets the stock quantity for a part.
func (s *Service) UpdateStock(ctx context.Context, partNumber string, quantity float64) error {
	req := stockUpdateRequest{Quantity: quantity}
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("validate stock: %w", err)
	}
	return s.client.Patch(ctx, "/parts/"+url.PathEscape(partNumber)+"/stock", req, nil)
}

// LowStockAlerts fetches the parts currently under their minimum.
func (s *Service) LowStockAlerts(ctx context.Context) ([]ItemStatus, error) {
	var resp struct {
		Alerts []itemStatusWire `json:"alerts"`
	}
	if err := s.client.Get(ctx, "/parts/alerts/low-stock", &resp); err != nil {
		return nil, err
	}
	out := make([]ItemStatus, 0, len(resp.Alerts))
	for _, w := range resp.Alerts {
		out = append(out, normalizeItemStatus(w, s.racks))
	}
	return out, nil
}

// ItemStatuses fetches branch-scoped stock records.
func (s *Service) ItemStatuses(ctx context.Context) ([]ItemStatus, error) {
	var resp struct {
		Items []itemStatusWire `json:"items"`
	}
	if err := s.client.Get(ctx, "/item-status", &resp); err != nil {
		return nil, err
	}
	out := make([]ItemStatus, 0, len(resp.Items))
	for _, w := range resp.Items {
		out = append(out, normalizeItemStatus(w, s.racks))
	}
	return out, nil
}

func itemStatusPath(branch, partNumber, suffix string) string {
	return "/item-status/" + url.PathEscape(branch) + "/" + url.PathEscape(partNumber) + "/" + suffix
}

// UpdateItemStock sets the on-hand quantity for a branch/part pair.
func (s *Service) UpdateItemStock(ctx context.Context, branch, partNumber string, quantity float64) error {
	req := stockUpdateRequest{Quantity: quantity}
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("validate stock: %w", err)
	}
	return s.client.Patch(ctx, itemStatusPath(branch, partNumber, "stock"), req, nil)
}

type rackUpdateRequest struct {
	RackLocation string `json:"rack_location" validate:"required,max=10"`
}

// UpdateItemRack sets the rack location for a branch/part pair.
func (s *Service) UpdateItemRack(ctx context.Context, branch, partNumber, rack string) error {
	req := rackUpdateRequest{RackLocation: rack}
	if err := s.validate.Struct(req); err != nil {
		return fmt.Errorf("validate rack: %w", err)
	}
	return s.client.Patch(ctx, itemStatusPath(branch, partNumber, "rack"), req, nil)
}
