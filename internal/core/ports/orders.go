package ports

import (
	"context"

	"github.com/agencyops/crm-system/internal/core/domain"
)

// OrderFilter narrows a listing. ClientID 0 means no filter (ids are
// strictly positive).
type OrderFilter struct {
	ClientID int
}

// CreateOrderInput carries the fields for a new order. Status defaults to
// pending when empty.
type CreateOrderInput struct {
	ClientID    int
	Title       string
	Description string
	TweetURL    string
	Status      domain.OrderStatus
	Value       float64
	OrderDate   domain.Date
}

// UpdateOrderInput is a partial update: nil fields are preserved. Status
// changes must follow the order state machine.
type UpdateOrderInput struct {
	ClientID    *int
	Title       *string
	Description *string
	TweetURL    *string
	Status      *domain.OrderStatus
	Value       *float64
	OrderDate   *domain.Date
}

// OrderView is an order joined with its client's display name. ClientName
// falls back to "Unknown Client" when the referenced client no longer
// exists; a dangling reference is never an error.
type OrderView struct {
	domain.Order
	ClientName string `json:"clientName"`
}

// OrderRepository defines persistence for orders.
type OrderRepository interface {
	Get(ctx context.Context, id int) (*domain.Order, error)
	// List returns orders in insertion order, optionally filtered by client.
	List(ctx context.Context, filter OrderFilter) ([]*domain.Order, error)
	Create(ctx context.Context, order *domain.Order) (*domain.Order, error)
	Update(ctx context.Context, id int, fields UpdateOrderInput) (*domain.Order, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// OrderService defines order use cases.
type OrderService interface {
	List(ctx context.Context, filter OrderFilter) ([]OrderView, error)
	Get(ctx context.Context, id int) (*OrderView, error)
	Create(ctx context.Context, input CreateOrderInput) (*domain.Order, error)
	Update(ctx context.Context, id int, input UpdateOrderInput) (*domain.Order, error)
	Delete(ctx context.Context, id int) error
}
