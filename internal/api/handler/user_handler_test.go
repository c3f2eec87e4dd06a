package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/core/ports"
	"github.com/agencyops/crm-system/internal/core/rbac"
)

func TestUserHandler_Create(t *testing.T) {
	users := &stubUserService{
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreateUserInput) (*domain.User, error) {
			if actor == nil || actor.ID != 1 || actor.Role != domain.RoleAdmin {
				t.Fatalf("unexpected actor: %+v", actor)
			}
			if input.Username != "bob" || input.Role != "editor" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.User{ID: 2, Username: "bob", Role: domain.RoleEditor}, nil
		},
	}
	handler := NewUserHandler(users)

	body := `{"username":"bob","password":"hunter2","name":"Bob","email":"bob@example.com","role":"editor"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/users", body)
	c.Set("user_id", 1)
	c.Set("role", domain.RoleAdmin)

	if err := handler.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestUserHandler_Create_WeakPassword(t *testing.T) {
	users := &stubUserService{
		createFn: func(ctx context.Context, actor *domain.User, input ports.CreateUserInput) (*domain.User, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewUserHandler(users)

	body := `{"username":"bob","password":"abc","name":"Bob","email":"bob@example.com"}`
	c, _ := newTestContext(t, http.MethodPost, "/api/users", body)
	c.Set("user_id", 1)
	c.Set("role", domain.RoleAdmin)

	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestUserHandler_Delete_Self(t *testing.T) {
	users := &stubUserService{
		deleteFn: func(ctx context.Context, actor *domain.User, id int) error {
			if actor.ID == id {
				return domain.ErrSelfDelete
			}
			return nil
		},
	}
	handler := NewUserHandler(users)

	c, _ := newTestContext(t, http.MethodDelete, "/api/users/1", "")
	c.SetParamNames("id")
	c.SetParamValues("1")
	c.Set("user_id", 1)
	c.Set("role", domain.RoleAdmin)

	if err := handler.Delete(c); !errors.Is(err, domain.ErrSelfDelete) {
		t.Fatalf("expected ErrSelfDelete, got %v", err)
	}
}

func TestUserHandler_Roles(t *testing.T) {
	handler := NewUserHandler(&stubUserService{})

	c, rec := newTestContext(t, http.MethodGet, "/api/users/roles", "")
	if err := handler.Roles(c); err != nil {
		t.Fatalf("roles: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var out []struct {
		Role        string   `json:"role"`
		Description string   `json:"description"`
		Permissions []string `json:"permissions"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(out) != len(rbac.AvailableRoles()) {
		t.Fatalf("expected %d roles, got %d", len(rbac.AvailableRoles()), len(out))
	}
	byRole := map[string][]string{}
	for _, r := range out {
		if r.Description == "" {
			t.Fatalf("role %q missing description", r.Role)
		}
		byRole[r.Role] = r.Permissions
	}
	if len(byRole[domain.RoleAdmin]) != len(rbac.PermissionsFor(domain.RoleAdmin)) {
		t.Fatalf("admin permission count mismatch: %d", len(byRole[domain.RoleAdmin]))
	}
	if len(byRole[domain.RoleViewer]) >= len(byRole[domain.RoleAdmin]) {
		t.Fatalf("viewer should hold fewer permissions than admin")
	}
}
