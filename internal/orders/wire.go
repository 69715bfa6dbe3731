package orders

import (
	"time"

	"github.com/chiruit2077/partslink/internal/platform/wirefmt"
)

// RackLocator yields the warehouse rack shown against an order line.
// The real lookup lives server-side; see parts.DerivedRackLocator for
// the client-side stand-in.
type RackLocator interface {
	Rack(partNumber string) string
}

// Wire shapes. The backend mixes two generations of field naming:
// underscore-cased legacy columns and camelCase canonical names. Both
// are decoded here, once, at the boundary; only the canonical Order
// struct exists past this file.

type retailerRefWire struct {
	ID           wirefmt.Int `json:"id"`
	BusinessName string      `json:"businessName"`
	Contact      string      `json:"contact"`
}

type orderItemWire struct {
	ID               wirefmt.Int   `json:"id"`
	LegacyID         wirefmt.Int   `json:"Item_Id"`
	PartNumber       string        `json:"partNumber"`
	LegacyPartNumber string        `json:"Part_Number"`
	Description      string        `json:"description"`
	LegacyDesc       string        `json:"Item_Description"`
	Quantity         wirefmt.Float `json:"quantity"`
	LegacyQty        wirefmt.Float `json:"Order_Qty"`
	PickedQuantity   wirefmt.Float `json:"pickedQuantity"`
	LegacyPickedQty  wirefmt.Float `json:"Picked_Qty"`
	MRP              wirefmt.Float `json:"mrp"`
	BasicDiscount    wirefmt.Float `json:"basicDiscount"`
	LegacyBasic      wirefmt.Float `json:"Basic_Discount"`
	SchemeDiscount   wirefmt.Float `json:"schemeDiscount"`
	LegacyScheme     wirefmt.Float `json:"Scheme_Discount"`
	AddlDiscount     wirefmt.Float `json:"additionalDiscount"`
	LegacyAddl       wirefmt.Float `json:"Additional_Discount"`
	Picked           wirefmt.Bool  `json:"picked"`
	LegacyPicked     wirefmt.Bool  `json:"Picked_Status"`
	RackLocation     string        `json:"rackLocation"`
}

type historyWire struct {
	Status       string       `json:"status"`
	LegacyStatus string       `json:"Order_Status"`
	At           wirefmt.Time `json:"at"`
	LegacyAt     wirefmt.Time `json:"Status_Date"`
	Actor        string       `json:"actor"`
	LegacyActor  string       `json:"Updated_By"`
	Notes        string       `json:"notes"`
}

type orderWire struct {
	ID               wirefmt.Int     `json:"id"`
	LegacyID         wirefmt.Int     `json:"Order_Id"`
	OrderNumber      string          `json:"orderNumber"`
	CRMOrderID       string          `json:"CRMOrderId"`
	Status           string          `json:"status"`
	LegacyStatus     string          `json:"Order_Status"`
	Retailer         retailerRefWire `json:"retailer"`
	RetailerID       wirefmt.Int     `json:"Retailer_Id"`
	RetailerName     string          `json:"Retailer_Name"`
	RetailerContact  string          `json:"Retailer_Contact"`
	BranchCode       string          `json:"branchCode"`
	LegacyBranchCode string          `json:"Branch_Code"`
	PONumber         string          `json:"poNumber"`
	LegacyPONumber   string          `json:"PO_Number"`
	Urgent           wirefmt.Bool    `json:"urgent"`
	LegacyUrgent     wirefmt.Bool    `json:"Urgent_Status"`
	Synced           wirefmt.Bool    `json:"isSync"`
	Notes            string          `json:"notes"`
	Total            wirefmt.Float   `json:"totalAmount"`
	LegacyTotal      wirefmt.Float   `json:"Order_Total"`
	OrderDate        wirefmt.Time    `json:"Order_Date"`
	CreatedAt        wirefmt.Time    `json:"createdAt"`
	LegacyCreatedAt  wirefmt.Time    `json:"created_at"`
	Items            []orderItemWire `json:"items"`
	History          []historyWire   `json:"statusHistory"`
}

func normalizeStatus(candidates ...string) Status {
	raw := wirefmt.FirstString(candidates...)
	if st, ok := ParseStatus(raw); ok {
		return st
	}
	return Status(raw)
}

func normalizeOrderItem(w orderItemWire, racks RackLocator) OrderItem {
	item := OrderItem{
		ID:                 w.ID.Or(w.LegacyID.Or(0)),
		PartNumber:         wirefmt.FirstString(w.PartNumber, w.LegacyPartNumber),
		Description:        wirefmt.FirstString(w.Description, w.LegacyDesc),
		Quantity:           w.Quantity.Or(w.LegacyQty.Or(0)),
		PickedQuantity:     w.PickedQuantity.Or(w.LegacyPickedQty.Or(0)),
		MRP:                w.MRP.Or(0),
		BasicDiscount:      w.BasicDiscount.Or(w.LegacyBasic.Or(0)),
		SchemeDiscount:     w.SchemeDiscount.Or(w.LegacyScheme.Or(0)),
		AdditionalDiscount: w.AddlDiscount.Or(w.LegacyAddl.Or(0)),
		Picked:             w.Picked.B || w.LegacyPicked.B,
		RackLocation:       w.RackLocation,
	}
	if item.RackLocation == "" && racks != nil {
		item.RackLocation = racks.Rack(item.PartNumber)
	}
	return item
}

func normalizeHistory(entries []historyWire, fallbackAt time.Time) []HistoryEntry {
	if len(entries) == 0 {
		return nil
	}
	out := make([]HistoryEntry, 0, len(entries))
	for _, w := range entries {
		out = append(out, HistoryEntry{
			Status: normalizeStatus(w.Status, w.LegacyStatus),
			At:     w.At.Or(w.LegacyAt.Or(fallbackAt)),
			Actor:  wirefmt.FirstString(w.Actor, w.LegacyActor),
			Notes:  w.Notes,
		})
	}
	return out
}

// normalizeOrder projects a wire order onto the canonical Order. It
// never fails: missing fields degrade to zero values, items to an
// empty slice, and the total to the sum of line amounts or zero. The
// server-supplied total is authoritative when present.
func normalizeOrder(w orderWire, racks RackLocator, now time.Time) Order {
	createdAt := w.OrderDate.Or(w.CreatedAt.Or(w.LegacyCreatedAt.Or(now)))

	items := make([]OrderItem, 0, len(w.Items))
	for _, iw := range w.Items {
		items = append(items, normalizeOrderItem(iw, racks))
	}

	total := w.Total.Or(w.LegacyTotal.Or(0))
	if total == 0 {
		for _, item := range items {
			total += item.LineAmount()
		}
	}

	retailer := RetailerRef{
		ID:           w.Retailer.ID.Or(w.RetailerID.Or(0)),
		BusinessName: wirefmt.FirstString(w.Retailer.BusinessName, w.RetailerName),
		Contact:      wirefmt.FirstString(w.Retailer.Contact, w.RetailerContact),
	}

	return Order{
		ID:          w.ID.Or(w.LegacyID.Or(0)),
		OrderNumber: wirefmt.FirstString(w.OrderNumber, w.CRMOrderID),
		Status:      normalizeStatus(w.Status, w.LegacyStatus),
		Retailer:    retailer,
		BranchCode:  wirefmt.FirstString(w.BranchCode, w.LegacyBranchCode),
		PONumber:    wirefmt.FirstString(w.PONumber, w.LegacyPONumber),
		Urgent:      w.Urgent.B || w.LegacyUrgent.B,
		Synced:      w.Synced.B,
		Notes:       w.Notes,
		TotalAmount: total,
		CreatedAt:   createdAt,
		Items:       items,
		History:     normalizeHistory(w.History, createdAt),
	}
}

// Draft is the editable shape a screen builds up before submission.
type Draft struct {
	RetailerID int64       `validate:"required,gt=0"`
	BranchCode string      `validate:"required"`
	PONumber   string      `validate:"omitempty,max=40"`
	Urgent     bool
	Notes      string      `validate:"omitempty,max=500"`
	Items      []DraftItem `validate:"required,min=1,dive"`
}

// DraftItem is one editable order line.
type DraftItem struct {
	PartNumber         string  `validate:"required"`
	Quantity           float64 `validate:"required,gt=0"`
	MRP                float64 `validate:"gte=0"`
	BasicDiscount      float64 `validate:"gte=0,lte=100"`
	SchemeDiscount     float64 `validate:"gte=0,lte=100"`
	AdditionalDiscount float64 `validate:"gte=0,lte=100"`
}

// DraftFromOrder rebuilds the editable shape from a canonical order,
// for edit-and-resubmit flows.
func DraftFromOrder(o Order) Draft {
	items := make([]DraftItem, 0, len(o.Items))
	for _, item := range o.Items {
		items = append(items, DraftItem{
			PartNumber:         item.PartNumber,
			Quantity:           item.Quantity,
			MRP:                item.MRP,
			BasicDiscount:      item.BasicDiscount,
			SchemeDiscount:     item.SchemeDiscount,
			AdditionalDiscount: item.AdditionalDiscount,
		})
	}
	return Draft{
		RetailerID: o.Retailer.ID,
		BranchCode: o.BranchCode,
		PONumber:   o.PONumber,
		Urgent:     o.Urgent,
		Notes:      o.Notes,
		Items:      items,
	}
}

// Outbound wire contract for POST /orders.

type orderItemRequestWire struct {
	PartNumber         string  `json:"part_number"`
	Quantity           float64 `json:"quantity"`
	MRP                float64 `json:"mrp"`
	BasicDiscount      float64 `json:"basic_discount"`
	SchemeDiscount     float64 `json:"scheme_discount"`
	AdditionalDiscount float64 `json:"additional_discount"`
}

type orderRequestWire struct {
	RetailerID int64                  `json:"retailer_id"`
	BranchCode string                 `json:"branch_code"`
	PONumber   string                 `json:"po_number"`
	Urgent     int                    `json:"urgent"`
	Notes      string                 `json:"notes,omitempty"`
	Items      []orderItemRequestWire `json:"items"`
}

// buildOrderRequest renames the editable shape back to the wire
// contract. A missing PO number is synthesized from the timestamp, as
// the backend requires one.
func buildOrderRequest(d Draft, now time.Time) orderRequestWire {
	poNumber := d.PONumber
	if poNumber == "" {
		poNumber = "PO-" + now.UTC().Format("20060102150405")
	}
	urgent := 0
	if d.Urgent {
		urgent = 1
	}
	items := make([]orderItemRequestWire, 0, len(d.Items))
	for _, item := range d.Items {
		items = append(items, orderItemRequestWire{
			PartNumber:         item.PartNumber,
			Quantity:           item.Quantity,
			MRP:                item.MRP,
			BasicDiscount:      item.BasicDiscount,
			SchemeDiscount:     item.SchemeDiscount,
			AdditionalDiscount: item.AdditionalDiscount,
		})
	}
	return orderRequestWire{
		RetailerID: d.RetailerID,
		BranchCode: d.BranchCode,
		PONumber:   poNumber,
		Urgent:     urgent,
		Notes:      d.Notes,
		Items:      items,
	}
}

type orderStatsWire struct {
	TotalOrders wirefmt.Int            `json:"totalOrders"`
	TodayOrders wirefmt.Int            `json:"todayOrders"`
	ByStatus    map[string]wirefmt.Int `json:"byStatus"`
}

// Stats is the dashboard summary for orders.
type Stats struct {
	TotalOrders int64            `json:"totalOrders"`
	TodayOrders int64            `json:"todayOrders"`
	ByStatus    map[Status]int64 `json:"byStatus"`
}

func normalizeStats(w orderStatsWire) Stats {
	byStatus := make(map[Status]int64, len(w.ByStatus))
	for raw, count := range w.ByStatus {
		byStatus[normalizeStatus(raw)] = count.Or(0)
	}
	return Stats{
		TotalOrders: w.TotalOrders.Or(0),
		TodayOrders: w.TodayOrders.Or(0),
		ByStatus:    byStatus,
	}
}
