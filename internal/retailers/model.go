package retailers

import "strings"

// Retailer is a customer account placing orders against a branch.
type Retailer struct {
	ID           int64   `json:"id"`
	BusinessName string  `json:"businessName"`
	ContactName  string  `json:"contactName"`
	Phone        string  `json:"phone"`
	Email        string  `json:"email"`
	CreditLimit  float64 `json:"creditLimit"`
	BranchCode   string  `json:"branchCode"`
	Active       bool    `json:"active"`
	Confirmed    bool    `json:"confirmed"`
	Pending      bool    `json:"pending"`
}

// DisplayName is what screens render for the retailer.
func (r Retailer) DisplayName() string {
	if strings.TrimSpace(r.BusinessName) == "" {
		return "Unknown Retailer"
	}
	return r.BusinessName
}
