package retailers

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/go-playground/validator/v10"

	"github.com/chiruit2077/partslink/internal/api"
)

// Service wraps the retailer endpoints.
type Service struct {
	client   *api.Client
	validate *validator.Validate
}

// NewService constructs a Service.
func NewService(client *api.Client) *Service {
	return &Service{client: client, validate: validator.New()}
}

// ListFilter narrows the retailer list.
type ListFilter struct {
	BranchCode string
	Search     string
	ActiveOnly bool
	Limit      int
	Offset     int
}

func (f ListFilter) query() string {
	values := url.Values{}
	if f.BranchCode != "" {
		values.Set("branch", f.BranchCode)
	}
	if f.Search != "" {
		values.Set("search", f.Search)
	}
	if f.ActiveOnly {
		values.Set("active", "1")
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

// List fetches retailers matching the filter.
func (s *Service) List(ctx context.Context, filter ListFilter) ([]Retailer, error) {
	var resp struct {
		Retailers []retailerWire `json:"retailers"`
	}
	if err := s.client.Get(ctx, "/retailers"+filter.query(), &resp); err != nil {
		return nil, err
	}
	out := make([]Retailer, 0, len(resp.Retailers))
	for _, w := range resp.Retailers {
		out = append(out, normalizeRetailer(w))
	}
	return out, nil
}

// Get fetches one retailer.
func (s *Service) Get(ctx context.Context, id int64) (*Retailer, error) {
	var w retailerWire
	if err := s.client.Get(ctx, "/retailers/"+strconv.FormatInt(id, 10), &w); err != nil {
		return nil, err
	}
	retailer := normalizeRetailer(w)
	return &retailer, nil
}

// Draft is the editable retailer shape.
type Draft struct {
	BusinessName string  `validate:"required,max=120"`
	ContactName  string  `validate:"omitempty,max=120"`
	Phone        string  `validate:"omitempty,max=20"`
	Email        string  `validate:"omitempty,email"`
	CreditLimit  float64 `validate:"gte=0"`
	BranchCode   string  `validate:"required"`
}

func buildRetailerRequest(d Draft) retailerRequestWire {
	return retailerRequestWire{
		BusinessName: d.BusinessName,
		ContactName:  d.ContactName,
		Phone:        d.Phone,
		Email:        d.Email,
		CreditLimit:  d.CreditLimit,
		BranchCode:   d.BranchCode,
	}
}

// Create submits a new retailer.
func (s *Service) Create(ctx context.Context, draft Draft) (*Retailer, error) {
	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("validate retailer: %w", err)
	}
	var w retailerWire
	if err := s.client.Post(ctx, "/retailers", buildRetailerRequest(draft), &w); err != nil {
		return nil, err
	}
	retailer := normalizeRetailer(w)
	return &retailer, nil
}

// Update modifies an existing retailer.
func (s *Service) Update(ctx context.Context, id int64, draft Draft) (*Retailer, error) {
	if err := s.validate.Struct(draft); err != nil {
		return nil, fmt.Errorf("validate retailer: %w", err)
	}
	var w retailerWire
	if err := s.client.Put(ctx, "/retailers/"+strconv.FormatInt(id, 10), buildRetailerRequest(draft), &w); err != nil {
		return nil, err
	}
	retailer := normalizeRetailer(w)
	return &retailer, nil
}
