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
)

type stubClientService struct {
	listFn   func(ctx context.Context) ([]*domain.Client, error)
	getFn    func(ctx context.Context, id int) (*domain.Client, error)
	createFn func(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error)
	updateFn func(ctx context.Context, id int, input ports.UpdateClientInput) (*domain.Client, error)
	deleteFn func(ctx context.Context, id int) error
}

func (s *stubClientService) List(ctx context.Context) ([]*domain.Client, error) {
	return s.listFn(ctx)
}
func (s *stubClientService) Get(ctx context.Context, id int) (*domain.Client, error) {
	return s.getFn(ctx, id)
}
func (s *stubClientService) Create(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
	return s.createFn(ctx, input)
}
func (s *stubClientService) Update(ctx context.Context, id int, input ports.UpdateClientInput) (*domain.Client, error) {
	return s.updateFn(ctx, id, input)
}
func (s *stubClientService) Delete(ctx context.Context, id int) error {
	return s.deleteFn(ctx, id)
}

func TestClientHandler_Create_Success(t *testing.T) {
	stub := &stubClientService{
		createFn: func(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
			if input.Name != "Acme" || input.Email != "hi@acme.test" {
				t.Fatalf("unexpected input: %+v", input)
			}
			return &domain.Client{ID: 1, Name: input.Name, Email: input.Email}, nil
		},
	}
	handler := NewClientHandler(stub)

	c, rec := newTestContext(t, http.MethodPost, "/api/clients", `{"name":"Acme","email":"hi@acme.test"}`)
	if err := handler.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp domain.Client
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != 1 || resp.Name != "Acme" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestClientHandler_Create_MissingName(t *testing.T) {
	stub := &stubClientService{
		createFn: func(ctx context.Context, input ports.CreateClientInput) (*domain.Client, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewClientHandler(stub)

	c, _ := newTestContext(t, http.MethodPost, "/api/clients", `{"email":"hi@acme.test"}`)
	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestClientHandler_Get_NotFound(t *testing.T) {
	stub := &stubClientService{
		getFn: func(ctx context.Context, id int) (*domain.Client, error) {
			return nil, domain.ErrClientNotFound
		},
	}
	handler := NewClientHandler(stub)

	c, _ := newTestContext(t, http.MethodGet, "/api/clients/9", "")
	c.SetParamNames("id")
	c.SetParamValues("9")

	if err := handler.Get(c); !errors.Is(err, domain.ErrClientNotFound) {
		t.Fatalf("expected ErrClientNotFound, got %v", err)
	}
}

func TestClientHandler_Get_InvalidID(t *testing.T) {
	handler := NewClientHandler(&stubClientService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/clients/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := handler.Get(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestClientHandler_Update_PartialBody(t *testing.T) {
	stub := &stubClientService{
		updateFn: func(ctx context.Context, id int, input ports.UpdateClientInput) (*domain.Client, error) {
			if input.Name == nil || *input.Name != "New Name" {
				t.Fatalf("name not forwarded: %+v", input)
			}
			if input.Email != nil {
				t.Fatalf("absent field should stay nil")
			}
			return &domain.Client{ID: id, Name: *input.Name}, nil
		},
	}
	handler := NewClientHandler(stub)

	c, rec := newTestContext(t, http.MethodPut, "/api/clients/3", `{"name":"New Name"}`)
	c.SetParamNames("id")
	c.SetParamValues("3")

	if err := handler.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestClientHandler_Delete_NoContent(t *testing.T) {
	stub := &stubClientService{
		deleteFn: func(ctx context.Context, id int) error { return nil },
	}
	handler := NewClientHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/api/clients/2", "")
	c.SetParamNames("id")
	c.SetParamValues("2")

	if err := handler.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
}
