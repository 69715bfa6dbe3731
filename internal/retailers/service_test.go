package retailers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chiruit2077/partslink/internal/api"
	"github.com/chiruit2077/partslink/internal/platform/httpx"
)

func newTestService(t *testing.T, handler http.Handler) *Service {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewService(api.NewClient(api.Config{BaseURL: srv.URL}, nil))
}

func TestListNormalizesLegacyRetailers(t *testing.T) {
	var gotQuery string
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		httpx.JSON(w, http.StatusOK, map[string]any{
			"retailers": []map[string]any{
				{
					"Retailer_Id":    "501",
					"Retailer_Name":  "Sharma Auto Spares",
					"Contact_Person": "Dinesh Sharma",
					"Mobile_Number":  "9812001122",
					"Credit_Limit":   "150000",
					"Branch_Code":    "BLR01",
					"active":         1,
					"Confirm":        1,
				},
				{
					"id":      502,
					"active":  true,
					"pending": 1,
				},
			},
		})
	}))

	list, err := svc.List(context.Background(), ListFilter{ActiveOnly: true})
	require.NoError(t, err)
	require.Equal(t, "active=1", gotQuery)
	require.Len(t, list, 2)

	first := list[0]
	require.Equal(t, int64(501), first.ID)
	require.Equal(t, "Sharma Auto Spares", first.BusinessName)
	require.Equal(t, "Dinesh Sharma", first.ContactName)
	require.Equal(t, "9812001122", first.Phone)
	require.InDelta(t, 150000, first.CreditLimit, 1e-9)
	require.True(t, first.Active)
	require.True(t, first.Confirmed)
	require.Equal(t, "Sharma Auto Spares", first.DisplayName())

	second := list[1]
	require.Equal(t, int64(502), second.ID)
	require.True(t, second.Active)
	require.True(t, second.Pending)
	require.False(t, second.Confirmed)
	require.Equal(t, "Unknown Retailer", second.DisplayName())
}

func TestCreateValidatesDraftLocally(t *testing.T) {
	var hits int
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
	}))

	_, err := svc.Create(context.Background(), Draft{BranchCode: "BLR01"})
	require.Error(t, err, "business name is required")
	_, err = svc.Create(context.Background(), Draft{
		BusinessName: "Sharma Auto Spares",
		BranchCode:   "BLR01",
		Email:        "not-an-email",
	})
	require.Error(t, err)
	require.Zero(t, hits)
}

func TestCreateSendsRequestWire(t *testing.T) {
	var gotBody map[string]any
	svc := newTestService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		httpx.JSON(w, http.StatusCreated, map[string]any{
			"Retailer_Id":   601,
			"Retailer_Name": gotBody["business_name"],
			"Branch_Code":   gotBody["branch_code"],
			"active":        1,
			"pending":       1,
		})
	}))

	created, err := svc.Create(context.Background(), Draft{
		BusinessName: "Nair Motors",
		ContactName:  "Meera Nair",
		Phone:        "9899887766",
		CreditLimit:  75000,
		BranchCode:   "BLR01",
	})
	require.NoError(t, err)
	require.Equal(t, "Nair Motors", gotBody["business_name"])
	require.Equal(t, "BLR01", gotBody["branch_code"])
	require.InDelta(t, 75000, gotBody["credit_limit"].(float64), 1e-9)

	require.Equal(t, int64(601), created.ID)
	require.Equal(t, "Nair Motors", created.BusinessName)
	require.True(t, created.Pending)
}
