package auth

import "github.com/seshu362/kristalball-backend/internal/domain/entity"

// Mutation actions gated by role. Read endpoints are open to every
// authenticated role.
const (
	ActionCreatePurchase    = "purchase.create"
	ActionCreateTransfer    = "transfer.create"
	ActionTransferStatus    = "transfer.status"
	ActionCreateAssignment  = "assignment.create"
	ActionReturnAssignment  = "assignment.return"
	ActionCreateExpenditure = "expenditure.create"
	ActionCreateAsset       = "asset.create"
	ActionCreateReference   = "reference.create" // bases, equipment types
	ActionCreateUser        = "user.create"
)

// Policy decides whether a role may perform an action. Injected into every
// mutating use case so authorization failures surface as PermissionDenied
// from the core rather than being HTTP-only.
type Policy interface {
	Allow(role, action string) bool
}

// RolePolicy is the default capability table.
//
// Admin does everything; Logistics Officers run procurement (purchases and
// transfers); Base Commanders manage personnel-facing operations
// (assignments, expenditures, assets).
type RolePolicy struct {
	grants map[string]map[string]bool
}

// NewRolePolicy builds the default capability table.
func NewRolePolicy() *RolePolicy {
	all := []string{
		ActionCreatePurchase, ActionCreateTransfer, ActionTransferStatus,
		ActionCreateAssignment, ActionReturnAssignment, ActionCreateExpenditure,
		ActionCreateAsset, ActionCreateReference, ActionCreateUser,
	}
	grants := map[string]map[string]bool{
		entity.RoleAdmin:            actionSet(all...),
		entity.RoleLogisticsOfficer: actionSet(ActionCreatePurchase, ActionCreateTransfer, ActionTransferStatus),
		entity.RoleBaseCommander: actionSet(
			ActionCreateAssignment, ActionReturnAssignment,
			ActionCreateExpenditure, ActionCreateAsset,
		),
	}
	return &RolePolicy{grants: grants}
}

// Allow implements Policy.
func (p *RolePolicy) Allow(role, action string) bool {
	return p.grants[role][action]
}

func actionSet(actions ...string) map[string]bool {
	m := make(map[string]bool, len(actions))
	for _, a := range actions {
		m[a] = true
	}
	return m
}
