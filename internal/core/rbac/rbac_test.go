package rbac

import (
	"testing"

	"github.com/agencyops/crm-system/internal/core/domain"
)

var allPermissions = []Permission{
	ViewDashboard, ViewClients, CreateClient, EditClient, DeleteClient,
	ViewOrders, CreateOrder, EditOrder, DeleteOrder,
	ViewInvoices, CreateInvoice, EditInvoice, DeleteInvoice,
	ViewReports, ViewSettings, EditProfile, ChangePassword, ManageUsers,
}

func TestPermissionsFor_TotalAndNonEmpty(t *testing.T) {
	for _, role := range AvailableRoles() {
		set := PermissionsFor(role)
		if len(set) == 0 {
			t.Fatalf("role %s has empty permission set", role)
		}
	}
}

func TestPermissionsFor_Deterministic(t *testing.T) {
	first := PermissionsFor(domain.RoleEditor)
	second := PermissionsFor(domain.RoleEditor)
	if len(first) != len(second) {
		t.Fatalf("catalog not stable: %d vs %d", len(first), len(second))
	}
	for p := range first {
		if _, ok := second[p]; !ok {
			t.Fatalf("permission %s missing on second lookup", p)
		}
	}
}

func TestAdminSupersetOfEditorSupersetOfUser(t *testing.T) {
	admin := PermissionsFor(domain.RoleAdmin)
	editor := PermissionsFor(domain.RoleEditor)
	user := PermissionsFor(domain.RoleUser)

	for p := range editor {
		if _, ok := admin[p]; !ok {
			t.Errorf("admin missing editor permission %s", p)
		}
	}
	for p := range user {
		if _, ok := editor[p]; !ok {
			t.Errorf("editor missing user permission %s", p)
		}
	}
}

func TestViewerMatchesUser(t *testing.T) {
	user := PermissionsFor(domain.RoleUser)
	viewer := PermissionsFor(domain.RoleViewer)
	if len(user) != len(viewer) {
		t.Fatalf("user and viewer sets differ in size: %d vs %d", len(user), len(viewer))
	}
	for p := range user {
		if _, ok := viewer[p]; !ok {
			t.Errorf("viewer missing %s", p)
		}
	}
}

func TestIsAllowed_MatchesCatalog(t *testing.T) {
	for _, role := range AvailableRoles() {
		set := PermissionsFor(role)
		actor := &domain.User{Role: role}
		for _, p := range allPermissions {
			_, want := set[p]
			if got := IsAllowed(actor, p); got != want {
				t.Errorf("IsAllowed(%s, %s) = %v, want %v", role, p, got, want)
			}
		}
	}
}

func TestIsAllowed_NilUser(t *testing.T) {
	for _, p := range allPermissions {
		if IsAllowed(nil, p) {
			t.Errorf("nil user allowed %s", p)
		}
	}
}

func TestIsAllowed_UnknownRoleFallsBackToUser(t *testing.T) {
	actor := &domain.User{Role: "superuser"}
	if IsAllowed(actor, DeleteClient) {
		t.Fatalf("unknown role granted delete_client")
	}
	if !IsAllowed(actor, ViewClients) {
		t.Fatalf("unknown role denied view_clients, want user baseline")
	}
}

func TestIsAllowed_UnknownPermission(t *testing.T) {
	actor := &domain.User{Role: domain.RoleAdmin}
	if IsAllowed(actor, Permission("launch_missiles")) {
		t.Fatalf("unknown permission granted")
	}
}

func TestIsAllowed_DeleteClientByRole(t *testing.T) {
	if IsAllowed(&domain.User{Role: domain.RoleUser}, DeleteClient) {
		t.Fatalf("user role allowed delete_client")
	}
	if IsAllowed(&domain.User{Role: domain.RoleEditor}, DeleteClient) {
		t.Fatalf("editor role allowed delete_client")
	}
	if !IsAllowed(&domain.User{Role: domain.RoleAdmin}, DeleteClient) {
		t.Fatalf("admin role denied delete_client")
	}
}

func TestRoleDescription(t *testing.T) {
	for _, role := range AvailableRoles() {
		if RoleDescription(role) == "Unknown role" {
			t.Errorf("no description for %s", role)
		}
	}
	if RoleDescription("nope") != "Unknown role" {
		t.Errorf("expected unknown-role fallback")
	}
}
