// Package rbac holds the static role→permission catalog and the single
// access decision function. Every API gate and every UI consumer goes
// through IsAllowed; the catalog is never duplicated elsewhere.
package rbac

import "github.com/agencyops/crm-system/internal/core/domain"

// Permission is an atomic capability tag gating one API or UI action.
type Permission string

const (
	ViewDashboard  Permission = "view_dashboard"
	ViewClients    Permission = "view_clients"
	CreateClient   Permission = "create_client"
	EditClient     Permission = "edit_client"
	DeleteClient   Permission = "delete_client"
	ViewOrders     Permission = "view_orders"
	CreateOrder    Permission = "create_order"
	EditOrder      Permission = "edit_order"
	DeleteOrder    Permission = "delete_order"
	ViewInvoices   Permission = "view_invoices"
	CreateInvoice  Permission = "create_invoice"
	EditInvoice    Permission = "edit_invoice"
	DeleteInvoice  Permission = "delete_invoice"
	ViewReports    Permission = "view_reports"
	ViewSettings   Permission = "view_settings"
	EditProfile    Permission = "edit_profile"
	ChangePassword Permission = "change_password"
	ManageUsers    Permission = "manage_users"
)

// readOnly is the self-service baseline shared by the user and viewer roles.
var readOnly = []Permission{
	ViewDashboard,
	ViewClients,
	ViewOrders,
	ViewInvoices,
	ViewReports,
	ViewSettings,
	EditProfile,
	ChangePassword,
}

// editorPerms extends the baseline with create/edit on every entity kind but
// grants no delete and no user management.
var editorPerms = append([]Permission{
	CreateClient,
	EditClient,
	CreateOrder,
	EditOrder,
	CreateInvoice,
	EditInvoice,
}, readOnly...)

// adminPerms is the full catalog, a strict superset of every other role.
var adminPerms = append([]Permission{
	DeleteClient,
	DeleteOrder,
	DeleteInvoice,
	ManageUsers,
}, editorPerms...)

// catalog is the static role→permission table. Total over the closed role
// set and never mutated after init.
var catalog = map[string]map[Permission]struct{}{
	domain.RoleAdmin:  toSet(adminPerms),
	domain.RoleEditor: toSet(editorPerms),
	domain.RoleUser:   toSet(readOnly),
	domain.RoleViewer: toSet(readOnly),
}

func toSet(perms []Permission) map[Permission]struct{} {
	set := make(map[Permission]struct{}, len(perms))
	for _, p := range perms {
		set[p] = struct{}{}
	}
	return set
}

// PermissionsFor returns the permission set for a role. Unrecognized roles
// resolve to the user role's set: stored data may carry stale role names and
// the failure mode must be least privilege, not a panic or full access.
func PermissionsFor(role string) map[Permission]struct{} {
	if set, ok := catalog[role]; ok {
		return set
	}
	return catalog[domain.RoleUser]
}

// IsAllowed reports whether the given user holds the permission. A nil user
// (unauthenticated) is never allowed anything; an unknown permission tag is
// denied. Pure function, safe to call per render.
func IsAllowed(user *domain.User, permission Permission) bool {
	if user == nil {
		return false
	}
	_, ok := PermissionsFor(user.Role)[permission]
	return ok
}

// RoleDescription returns the human-readable summary shown in the user
// management UI.
func RoleDescription(role string) string {
	switch role {
	case domain.RoleAdmin:
		return "Full access to all features and settings"
	case domain.RoleEditor:
		return "Can create and edit content but cannot delete or manage users"
	case domain.RoleUser:
		return "Can view content but cannot create, edit or delete"
	case domain.RoleViewer:
		return "Can only view content with no editing capabilities"
	default:
		return "Unknown role"
	}
}

// AvailableRoles lists the assignable roles in display order.
func AvailableRoles() []string {
	return []string{domain.RoleAdmin, domain.RoleEditor, domain.RoleUser, domain.RoleViewer}
}
