package stub

import "time"

// In-memory fixture records. Rendering to JSON happens in render.go,
// which deliberately emits the legacy wire shapes (underscore casing,
// epoch-millisecond dates, 0/1 flags) so clients exercise the same
// payloads the production backend sends.

type userRecord struct {
	ID         int64
	Email      string
	Password   string
	Name       string
	Role       string
	BranchCode string
}

type orderItemRecord struct {
	ID                 int64
	PartNumber         string
	Description        string
	Quantity           float64
	PickedQuantity     float64
	MRP                float64
	BasicDiscount      float64
	SchemeDiscount     float64
	AdditionalDiscount float64
	Picked             bool
}

type historyRecord struct {
	Status string
	At     time.Time
	Actor  string
	Notes  string
}

type orderRecord struct {
	ID           int64
	OrderNumber  string
	Status       string
	RetailerID   int64
	RetailerName string
	BranchCode   string
	PONumber     string
	Urgent       bool
	Notes        string
	OrderDate    time.Time
	Items        []orderItemRecord
	History      []historyRecord
}

type partRecord struct {
	PartNumber         string
	Description        string
	MRP                float64
	BasicDiscount      float64
	SchemeDiscount     float64
	AdditionalDiscount float64
	MinQuantity        float64
	MaxQuantity        float64
	Category           string
	FocusGroup         string
	GuruPoints         int64
	ChampionPoints     int64
}

type itemStatusRecord struct {
	BranchCode   string
	PartNumber   string
	OnHand       float64
	RackLocation string
}

type retailerRecord struct {
	ID           int64
	BusinessName string
	ContactName  string
	Phone        string
	Email        string
	CreditLimit  float64
	BranchCode   string
	Active       bool
	Confirmed    bool
	Pending      bool
}

func seedUsers() map[string]userRecord {
	return map[string]userRecord{
		"admin@partslink.test": {
			ID: 1, Email: "admin@partslink.test", Password: "admin123",
			Name: "Asha Verma", Role: "admin", BranchCode: "BLR01",
		},
		"store@partslink.test": {
			ID: 2, Email: "store@partslink.test", Password: "store123",
			Name: "Ravi Kumar", Role: "storeman", BranchCode: "BLR01",
		},
		"sales@partslink.test": {
			ID: 3, Email: "sales@partslink.test", Password: "sales123",
			Name: "Meera Nair", Role: "salesman", BranchCode: "BLR01",
		},
	}
}

func seedParts() map[string]partRecord {
	return map[string]partRecord{
		"BRK-PAD-2041": {
			PartNumber: "BRK-PAD-2041", Description: "Front brake pad set",
			MRP: 1450, BasicDiscount: 10, SchemeDiscount: 5,
			MinQuantity: 20, MaxQuantity: 200,
			Category: "Brakes", FocusGroup: "Fast Movers",
			GuruPoints: 12, ChampionPoints: 4,
		},
		"FLT-OIL-0118": {
			PartNumber: "FLT-OIL-0118", Description: "Oil filter, spin-on",
			MRP: 320, BasicDiscount: 8,
			MinQuantity: 50, MaxQuantity: 500,
			Category: "Filters", FocusGroup: "Fast Movers",
			GuruPoints: 6, ChampionPoints: 2,
		},
		"CLT-KIT-7733": {
			PartNumber: "CLT-KIT-7733", Description: "Clutch kit assembly",
			MRP: 6890, BasicDiscount: 12, SchemeDiscount: 3, AdditionalDiscount: 2,
			MinQuantity: 5, MaxQuantity: 40,
			Category: "Transmission", FocusGroup: "Premium",
			GuruPoints: 30, ChampionPoints: 10,
		},
	}
}

func seedItemStatus() []itemStatusRecord {
	return []itemStatusRecord{
		{BranchCode: "BLR01", PartNumber: "BRK-PAD-2041", OnHand: 14, RackLocation: "3B"},
		{BranchCode: "BLR01", PartNumber: "FLT-OIL-0118", OnHand: 180},
		{BranchCode: "BLR01", PartNumber: "CLT-KIT-7733", OnHand: 2, RackLocation: "7A"},
	}
}

func seedRetailers() map[int64]retailerRecord {
	return map[int64]retailerRecord{
		501: {
			ID: 501, BusinessName: "Sri Balaji Auto Spares", ContactName: "K. Srinivas",
			Phone: "+91-9845012345", Email: "balaji.spares@example.test",
			CreditLimit: 250000, BranchCode: "BLR01", Active: true, Confirmed: true,
		},
		502: {
			ID: 502, BusinessName: "Highway Motors", ContactName: "J. Fernandes",
			Phone: "+91-9900112233", CreditLimit: 100000, BranchCode: "BLR01",
			Active: true, Pending: true,
		},
	}
}

func seedOrders(now time.Time) map[int64]*orderRecord {
	return map[int64]*orderRecord{
		9001: {
			ID: 9001, OrderNumber: "ORD-2025-9001", Status: "Processing",
			RetailerID: 501, RetailerName: "Sri Balaji Auto Spares",
			BranchCode: "BLR01", PONumber: "PO-84211", Urgent: true,
			OrderDate: now.Add(-48 * time.Hour),
			Items: []orderItemRecord{
				{ID: 1, PartNumber: "BRK-PAD-2041", Description: "Front brake pad set",
					Quantity: 4, MRP: 1450, BasicDiscount: 10, SchemeDiscount: 5, Picked: true, PickedQuantity: 4},
				{ID: 2, PartNumber: "FLT-OIL-0118", Description: "Oil filter, spin-on",
					Quantity: 12, MRP: 320, BasicDiscount: 8},
			},
			History: []historyRecord{
				{Status: "New", At: now.Add(-48 * time.Hour), Actor: "Meera Nair"},
				{Status: "Pending", At: now.Add(-36 * time.Hour), Actor: "Asha Verma"},
				{Status: "Processing", At: now.Add(-24 * time.Hour), Actor: "Ravi Kumar"},
			},
		},
		9002: {
			ID: 9002, OrderNumber: "ORD-2025-9002", Status: "New",
			RetailerID: 502, RetailerName: "Highway Motors",
			BranchCode: "BLR01", PONumber: "PO-84302",
			OrderDate: now.Add(-4 * time.Hour),
			Items: []orderItemRecord{
				{ID: 3, PartNumber: "CLT-KIT-7733", Description: "Clutch kit assembly",
					Quantity: 1, MRP: 6890, BasicDiscount: 12, SchemeDiscount: 3, AdditionalDiscount: 2},
			},
			History: []historyRecord{
				{Status: "New", At: now.Add(-4 * time.Hour), Actor: "Meera Nair"},
			},
		},
	}
}
