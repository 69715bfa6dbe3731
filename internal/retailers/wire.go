package retailers

import "github.com/chiruit2077/partslink/internal/platform/wirefmt"

type retailerWire struct {
	ID            wirefmt.Int   `json:"id"`
	LegacyID      wirefmt.Int   `json:"Retailer_Id"`
	BusinessName  string        `json:"businessName"`
	LegacyName    string        `json:"Retailer_Name"`
	ContactName   string        `json:"contactName"`
	LegacyContact string        `json:"Contact_Person"`
	Phone         string        `json:"phone"`
	LegacyPhone   string        `json:"Mobile_Number"`
	Email         string        `json:"email"`
	CreditLimit   wirefmt.Float `json:"creditLimit"`
	LegacyCredit  wirefmt.Float `json:"Credit_Limit"`
	BranchCode    string        `json:"branchCode"`
	LegacyBranch  string        `json:"Branch_Code"`
	Active        wirefmt.Bool  `json:"active"`
	Confirmed     wirefmt.Bool  `json:"Confirm"`
	Pending       wirefmt.Bool  `json:"pending"`
}

// normalizeRetailer projects a wire retailer onto the canonical
// Retailer. Missing fields degrade to zero values; it never fails.
func normalizeRetailer(w retailerWire) Retailer {
	return Retailer{
		ID:           w.ID.Or(w.LegacyID.Or(0)),
		BusinessName: wirefmt.FirstString(w.BusinessName, w.LegacyName),
		ContactName:  wirefmt.FirstString(w.ContactName, w.LegacyContact),
		Phone:        wirefmt.FirstString(w.Phone, w.LegacyPhone),
		Email:        w.Email,
		CreditLimit:  w.CreditLimit.Or(w.LegacyCredit.Or(0)),
		BranchCode:   wirefmt.FirstString(w.BranchCode, w.LegacyBranch),
		Active:       w.Active.B,
		Confirmed:    w.Confirmed.B,
		Pending:      w.Pending.B,
	}
}

type retailerRequestWire struct {
	BusinessName string  `json:"business_name"`
	ContactName  string  `json:"contact_name"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email,omitempty"`
	CreditLimit  float64 `json:"credit_limit"`
	BranchCode   string  `json:"branch_code"`
}
