package orders

import (
	"strings"
	"time"
)

// Status is an order's lifecycle state.
type Status string

const (
	StatusNew        Status = "New"
	StatusPending    Status = "Pending"
	StatusProcessing Status = "Processing"
	StatusHold       Status = "Hold"
	StatusPicked     Status = "Picked"
	StatusDispatched Status = "Dispatched"
	StatusCompleted  Status = "Completed"
	StatusCancelled  Status = "Cancelled"
)

var canonicalStatus = map[string]Status{
	"new":        StatusNew,
	"pending":    StatusPending,
	"processing": StatusProcessing,
	"hold":       StatusHold,
	"picked":     StatusPicked,
	"dispatched": StatusDispatched,
	"completed":  StatusCompleted,
	"cancelled":  StatusCancelled,
}

// ParseStatus resolves a wire status string to its canonical form,
// case-insensitively.
func ParseStatus(raw string) (Status, bool) {
	s, ok := canonicalStatus[strings.ToLower(strings.TrimSpace(raw))]
	return s, ok
}

// Valid reports whether the status is a member of the enumeration.
func (s Status) Valid() bool {
	_, ok := canonicalStatus[strings.ToLower(string(s))]
	return ok
}

// RetailerRef is the read-only retailer reference carried on an order.
type RetailerRef struct {
	ID           int64  `json:"id"`
	BusinessName string `json:"businessName"`
	Contact      string `json:"contact"`
}

// DisplayName is what screens render for the retailer.
func (r RetailerRef) DisplayName() string {
	if strings.TrimSpace(r.BusinessName) == "" {
		return "Unknown Retailer"
	}
	return r.BusinessName
}

// OrderItem is one part line within an order.
type OrderItem struct {
	ID                 int64   `json:"id"`
	PartNumber         string  `json:"partNumber"`
	Description        string  `json:"description"`
	Quantity           float64 `json:"quantity"`
	PickedQuantity     float64 `json:"pickedQuantity"`
	MRP                float64 `json:"mrp"`
	BasicDiscount      float64 `json:"basicDiscount"`
	SchemeDiscount     float64 `json:"schemeDiscount"`
	AdditionalDiscount float64 `json:"additionalDiscount"`
	Picked             bool    `json:"picked"`
	RackLocation       string  `json:"rackLocation"`
}

// LineAmount applies the three discount percentages multiplicatively
// off MRP.
func (i OrderItem) LineAmount() float64 {
	net := i.MRP
	for _, pct := range []float64{i.BasicDiscount, i.SchemeDiscount, i.AdditionalDiscount} {
		net *= 1 - pct/100
	}
	return net * i.Quantity
}

// HistoryEntry records one status change, locally synthesized on a
// successful transition or delivered by the backend.
type HistoryEntry struct {
	Status Status    `json:"status"`
	At     time.Time `json:"at"`
	Actor  string    `json:"actor"`
	Notes  string    `json:"notes,omitempty"`
}

// Order is the canonical in-memory order every screen consumes.
type Order struct {
	ID          int64          `json:"id"`
	OrderNumber string         `json:"orderNumber"`
	Status      Status         `json:"status"`
	Retailer    RetailerRef    `json:"retailer"`
	BranchCode  string         `json:"branchCode"`
	PONumber    string         `json:"poNumber"`
	Urgent      bool           `json:"urgent"`
	Synced      bool           `json:"isSync"`
	Notes       string         `json:"notes,omitempty"`
	TotalAmount float64        `json:"totalAmount"`
	CreatedAt   time.Time      `json:"createdAt"`
	Items       []OrderItem    `json:"items"`
	History     []HistoryEntry `json:"statusHistory,omitempty"`
}

// AllPicked reports whether every line item carries the picked flag.
func (o *Order) AllPicked() bool {
	for _, item := range o.Items {
		if !item.Picked {
			return false
		}
	}
	return true
}

// applyTransition moves the order to the target status and appends the
// synthesized history entry. Callers must have validated the
// transition first.
func (o *Order) applyTransition(target Status, actor, notes string, at time.Time) {
	o.Status = target
	o.History = append(o.History, HistoryEntry{
		Status: target,
		At:     at,
		Actor:  actor,
		Notes:  notes,
	})
}
