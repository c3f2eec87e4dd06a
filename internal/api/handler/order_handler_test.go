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

type stubOrderService struct {
	listFn   func(ctx context.Context, filter ports.OrderFilter) ([]ports.OrderView, error)
	getFn    func(ctx context.Context, id int) (*ports.OrderView, error)
	createFn func(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error)
	updateFn func(ctx context.Context, id int, input ports.UpdateOrderInput) (*domain.Order, error)
	deleteFn func(ctx context.Context, id int) error
}

func (s *stubOrderService) List(ctx context.Context, filter ports.OrderFilter) ([]ports.OrderView, error) {
	return s.listFn(ctx, filter)
}
func (s *stubOrderService) Get(ctx context.Context, id int) (*ports.OrderView, error) {
	return s.getFn(ctx, id)
}
func (s *stubOrderService) Create(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
	return s.createFn(ctx, input)
}
func (s *stubOrderService) Update(ctx context.Context, id int, input ports.UpdateOrderInput) (*domain.Order, error) {
	return s.updateFn(ctx, id, input)
}
func (s *stubOrderService) Delete(ctx context.Context, id int) error {
	return s.deleteFn(ctx, id)
}

func TestOrderHandler_List_ClientFilter(t *testing.T) {
	stub := &stubOrderService{
		listFn: func(ctx context.Context, filter ports.OrderFilter) ([]ports.OrderView, error) {
			if filter.ClientID != 5 {
				t.Fatalf("filter not forwarded: %+v", filter)
			}
			return []ports.OrderView{
				{Order: domain.Order{ID: 1, ClientID: 5, Title: "a"}, ClientName: "Acme"},
			}, nil
		},
	}
	handler := NewOrderHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/api/orders?clientId=5", "")
	if err := handler.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp) != 1 || resp[0]["clientName"] != "Acme" {
		t.Fatalf("unexpected body: %+v", resp)
	}
}

func TestOrderHandler_List_BadFilter(t *testing.T) {
	handler := NewOrderHandler(&stubOrderService{})

	c, _ := newTestContext(t, http.MethodGet, "/api/orders?clientId=zero", "")
	err := handler.List(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestOrderHandler_Create_ForwardsFields(t *testing.T) {
	stub := &stubOrderService{
		createFn: func(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
			if input.ClientID != 2 || input.Title != "Campaign" || input.Value != 150.5 {
				t.Fatalf("unexpected input: %+v", input)
			}
			if input.OrderDate.String() != "2025-03-03" {
				t.Fatalf("order date = %s", input.OrderDate)
			}
			return &domain.Order{ID: 1, ClientID: 2, Title: input.Title, Status: domain.OrderPending}, nil
		},
	}
	handler := NewOrderHandler(stub)

	body := `{"clientId":2,"title":"Campaign","value":150.5,"orderDate":"2025-03-03"}`
	c, rec := newTestContext(t, http.MethodPost, "/api/orders", body)
	if err := handler.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestOrderHandler_Create_RejectsBadStatus(t *testing.T) {
	handler := NewOrderHandler(&stubOrderService{
		createFn: func(ctx context.Context, input ports.CreateOrderInput) (*domain.Order, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	})

	c, _ := newTestContext(t, http.MethodPost, "/api/orders", `{"clientId":2,"title":"x","status":"archived"}`)
	err := handler.Create(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", err)
	}
}

func TestOrderHandler_Update_InvalidTransitionSurfaces(t *testing.T) {
	stub := &stubOrderService{
		updateFn: func(ctx context.Context, id int, input ports.UpdateOrderInput) (*domain.Order, error) {
			return nil, domain.ErrInvalidTransition
		},
	}
	handler := NewOrderHandler(stub)

	c, _ := newTestContext(t, http.MethodPut, "/api/orders/1", `{"status":"completed"}`)
	c.SetParamNames("id")
	c.SetParamValues("1")

	if err := handler.Update(c); !errors.Is(err, domain.ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}
