package orders

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chiruit2077/partslink/internal/parts"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

const legacyOrderJSON = `{
	"Order_Id": 9001,
	"CRMOrderId": "ORD-2025-9001",
	"Order_Status": "processing",
	"Retailer_Id": 501,
	"Retailer_Name": "Sri Balaji Auto Spares",
	"Branch_Code": "BLR01",
	"PO_Number": "PO-84211",
	"Urgent_Status": 1,
	"IsSync": 1,
	"Order_Date": 1748649600000,
	"items": [
		{"Item_Id": 1, "Part_Number": "BRK-PAD-2041", "Order_Qty": 4, "mrp": 1450,
		 "Basic_Discount": 10, "Scheme_Discount": 5, "Picked_Status": 1, "Picked_Qty": 4},
		{"Item_Id": 2, "Part_Number": "FLT-OIL-0118", "Order_Qty": "12", "mrp": "320",
		 "Basic_Discount": 8, "Picked_Status": 0}
	]
}`

func decodeOrder(t *testing.T, raw string) orderWire {
	t.Helper()
	var w orderWire
	require.NoError(t, json.Unmarshal([]byte(raw), &w))
	return w
}

func TestNormalizeLegacyOrder(t *testing.T) {
	o := normalizeOrder(decodeOrder(t, legacyOrderJSON), parts.DerivedRackLocator{}, fixedNow)

	require.Equal(t, int64(9001), o.ID)
	require.Equal(t, "ORD-2025-9001", o.OrderNumber)
	require.Equal(t, StatusProcessing, o.Status, "status is canonicalized")
	require.Equal(t, int64(501), o.Retailer.ID)
	require.Equal(t, "Sri Balaji Auto Spares", o.Retailer.BusinessName)
	require.Equal(t, "BLR01", o.BranchCode)
	require.Equal(t, "PO-84211", o.PONumber)
	require.True(t, o.Urgent)
	require.True(t, o.Synced)
	require.Equal(t, time.UnixMilli(1748649600000).UTC(), o.CreatedAt)

	require.Len(t, o.Items, 2)
	first := o.Items[0]
	require.Equal(t, "BRK-PAD-2041", first.PartNumber)
	require.InDelta(t, 4, first.Quantity, 0.001)
	require.True(t, first.Picked)
	require.NotEmpty(t, first.RackLocation, "rack is synthesized when absent")

	second := o.Items[1]
	require.InDelta(t, 12, second.Quantity, 0.001, "string quantity is coerced")
	require.InDelta(t, 320, second.MRP, 0.001)
	require.False(t, second.Picked)

	// No server total: sum the lines. 4*1450*0.9*0.95 + 12*320*0.92.
	wantTotal := 4*1450*0.9*0.95 + 12*320*0.92
	require.InDelta(t, wantTotal, o.TotalAmount, 0.01)
}

func TestNormalizeServerTotalAuthoritative(t *testing.T) {
	raw := `{"Order_Id": 1, "Order_Total": 999.5,
		"items": [{"Part_Number": "X", "Order_Qty": 1, "mrp": 100}]}`
	o := normalizeOrder(decodeOrder(t, raw), nil, fixedNow)
	require.InDelta(t, 999.5, o.TotalAmount, 0.001, "server total wins over line sum")
}

func TestNormalizeEmptyOrder(t *testing.T) {
	o := normalizeOrder(decodeOrder(t, `{"Order_Id": 7}`), nil, fixedNow)
	require.NotNil(t, o.Items)
	require.Empty(t, o.Items)
	require.Zero(t, o.TotalAmount)
	require.Equal(t, fixedNow, o.CreatedAt, "missing dates fall back to now")
	require.Equal(t, "Unknown Retailer", o.Retailer.DisplayName())
}

func TestNormalizeMissingRetailerName(t *testing.T) {
	o := normalizeOrder(decodeOrder(t, `{"Order_Id": 8, "Retailer_Id": 44}`), nil, fixedNow)
	require.Empty(t, o.Retailer.BusinessName)
	require.Equal(t, int64(44), o.Retailer.ID)
	require.Equal(t, "Unknown Retailer", o.Retailer.DisplayName())
}

func TestEpochAndISODatesNormalizeIdentically(t *testing.T) {
	epoch := normalizeOrder(decodeOrder(t, `{"Order_Id": 1, "Order_Date": 1748649600000}`), nil, fixedNow)
	iso := normalizeOrder(decodeOrder(t, `{"Order_Id": 1, "Order_Date": "2025-05-31T00:00:00Z"}`), nil, fixedNow)
	require.True(t, epoch.CreatedAt.Equal(iso.CreatedAt))
	require.Equal(t,
		epoch.CreatedAt.Format(time.RFC3339),
		iso.CreatedAt.Format(time.RFC3339))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	first := normalizeOrder(decodeOrder(t, legacyOrderJSON), parts.DerivedRackLocator{}, fixedNow)

	canonical, err := json.Marshal(first)
	require.NoError(t, err)
	second := normalizeOrder(decodeOrder(t, string(canonical)), parts.DerivedRackLocator{}, fixedNow)

	require.Equal(t, first, second)
}

func TestNormalizeUnknownStatusAllowsNothing(t *testing.T) {
	o := normalizeOrder(decodeOrder(t, `{"Order_Id": 9, "Order_Status": "Shipped"}`), nil, fixedNow)
	require.Equal(t, Status("Shipped"), o.Status, "unknown status is preserved verbatim")
	require.Empty(t, AllowedTargets(o.Status))
}

func TestBuildOrderRequestRoundTrip(t *testing.T) {
	o := normalizeOrder(decodeOrder(t, legacyOrderJSON), nil, fixedNow)
	req := buildOrderRequest(DraftFromOrder(o), fixedNow)

	require.Equal(t, int64(501), req.RetailerID)
	require.Equal(t, "BLR01", req.BranchCode)
	require.Equal(t, "PO-84211", req.PONumber)
	require.Equal(t, 1, req.Urgent)
	require.Len(t, req.Items, 2)
	require.Equal(t, "BRK-PAD-2041", req.Items[0].PartNumber)
	require.InDelta(t, 4, req.Items[0].Quantity, 0.001)
	require.InDelta(t, 1450, req.Items[0].MRP, 0.001)
	require.InDelta(t, 10, req.Items[0].BasicDiscount, 0.001)
	require.InDelta(t, 12, req.Items[1].Quantity, 0.001)
	require.InDelta(t, 320, req.Items[1].MRP, 0.001)
}

func TestBuildOrderRequestSynthesizesPONumber(t *testing.T) {
	req := buildOrderRequest(Draft{RetailerID: 1, BranchCode: "B", Items: []DraftItem{{PartNumber: "X", Quantity: 1}}}, fixedNow)
	require.Equal(t, "PO-20250601120000", req.PONumber)
}
