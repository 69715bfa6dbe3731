// Package rbac centralizes the role-to-capability policy. Screens ask
// Can(role, capability) instead of hardcoding role lists, so the
// policy cannot drift between call sites.
package rbac

import "github.com/chiruit2077/partslink/internal/auth"

// Capability is an atomic client-side permission.
type Capability string

const (
	CapOrdersCreate       Capability = "orders.create"
	CapOrdersUpdateStatus Capability = "orders.update-status"
	CapItemsPick          Capability = "items.pick"
	CapPartsUpdateStock   Capability = "parts.update-stock"
	CapRetailersManage    Capability = "retailers.manage"
	CapReportsView        Capability = "reports.view"
	CapUsersManage        Capability = "users.manage"
)

type capabilitySet map[Capability]struct{}

func caps(list ...Capability) capabilitySet {
	set := make(capabilitySet, len(list))
	for _, c := range list {
		set[c] = struct{}{}
	}
	return set
}

var policy = map[auth.Role]capabilitySet{
	auth.RoleAdmin: caps(
		CapOrdersCreate, CapOrdersUpdateStatus, CapItemsPick,
		CapPartsUpdateStock, CapRetailersManage, CapReportsView,
		CapUsersManage,
	),
	auth.RoleManager: caps(
		CapOrdersCreate, CapOrdersUpdateStatus,
		CapPartsUpdateStock, CapRetailersManage, CapReportsView,
	),
	auth.RoleSalesman: caps(
		CapOrdersCreate, CapRetailersManage, CapReportsView,
	),
	auth.RoleStoreman: caps(
		CapOrdersUpdateStatus, CapItemsPick, CapPartsUpdateStock,
	),
	auth.RoleRetailer: caps(
		CapOrdersCreate,
	),
	auth.RoleAccountant: caps(
		CapReportsView,
	),
}

// Can is the single capability query point.
func Can(role auth.Role, capability Capability) bool {
	set, ok := policy[role]
	if !ok {
		return false
	}
	_, ok = set[capability]
	return ok
}

// Capabilities returns the capability list for a role, for display.
func Capabilities(role auth.Role) []Capability {
	set, ok := policy[role]
	if !ok {
		return nil
	}
	out := make([]Capability, 0, len(set))
	for c := range set {
		out = append(out, c)
	}
	return out
}
