package ports

import (
	"context"

	"github.com/agencyops/crm-system/internal/core/domain"
)

// CreateClientInput carries the fields for a new client record.
type CreateClientInput struct {
	Name     string
	Email    string
	Phone    string
	Agency   string
	Position string
	Notes    string
}

// UpdateClientInput is a partial update: nil fields are preserved.
type UpdateClientInput struct {
	Name     *string
	Email    *string
	Phone    *string
	Agency   *string
	Position *string
	Notes    *string
}

// ClientRepository defines persistence for client records.
type ClientRepository interface {
	Get(ctx context.Context, id int) (*domain.Client, error)
	List(ctx context.Context) ([]*domain.Client, error)
	Create(ctx context.Context, client *domain.Client) (*domain.Client, error)
	Update(ctx context.Context, id int, fields UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id int) (bool, error)
}

// ClientService defines client management use cases. Deleting a client does
// not cascade to its orders; readers of those orders see an unknown-client
// fallback.
type ClientService interface {
	List(ctx context.Context) ([]*domain.Client, error)
	Get(ctx context.Context, id int) (*domain.Client, error)
	Create(ctx context.Context, input CreateClientInput) (*domain.Client, error)
	Update(ctx context.Context, id int, input UpdateClientInput) (*domain.Client, error)
	Delete(ctx context.Context, id int) error
}
