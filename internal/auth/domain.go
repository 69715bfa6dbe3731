package auth

import (
	"strings"
	"time"
)

// Role is the session principal's role. Authorization is a static
// role-membership question everywhere in the client; see the rbac
// package for the capability table.
type Role string

const (
	RoleAdmin      Role = "admin"
	RoleManager    Role = "manager"
	RoleSalesman   Role = "salesman"
	RoleStoreman   Role = "storeman"
	RoleRetailer   Role = "retailer"
	RoleAccountant Role = "accountant"
)

var knownRoles = map[Role]struct{}{
	RoleAdmin:      {},
	RoleManager:    {},
	RoleSalesman:   {},
	RoleStoreman:   {},
	RoleRetailer:   {},
	RoleAccountant: {},
}

// ParseRole normalizes wire role strings; unknown input returns the
// zero Role.
func ParseRole(raw string) Role {
	r := Role(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := knownRoles[r]; ok {
		return r
	}
	return ""
}

// Valid reports whether the role is one of the six fixed roles.
func (r Role) Valid() bool {
	_, ok := knownRoles[r]
	return ok
}

// User is the authenticated principal.
type User struct {
	ID         int64  `json:"id"`
	Email      string `json:"email"`
	Name       string `json:"name"`
	Role       Role   `json:"role"`
	CompanyID  int64  `json:"companyId,omitempty"`
	BranchCode string `json:"branchCode,omitempty"`
}

// Session is the locally held authentication state.
type Session struct {
	Token        string    `json:"authToken"`
	RefreshToken string    `json:"refreshToken"`
	ExpiresAt    time.Time `json:"expiresAt"`
	User         User      `json:"user"`
}

// Expired reports whether the access token is past its expiry. A zero
// expiry means the backend did not communicate one; treat as live and
// let the 401 flow sort it out.
func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && now.After(s.ExpiresAt)
}
