package ports

import (
	"context"

	"github.com/agencyops/crm-system/internal/core/domain"
)

// CreateUserInput carries the fields for a new user account. Password is the
// plaintext credential; the service hashes it before it reaches a repository.
type CreateUserInput struct {
	Username string
	Password string
	Name     string
	Email    string
	Role     string
}

// UpdateUserInput is a partial update: nil fields are preserved.
type UpdateUserInput struct {
	Username *string
	Password *string
	Name     *string
	Email    *string
	Role     *string
}

// UpdateUserFields is the repository-level shape of a partial user update,
// with the credential already hashed.
type UpdateUserFields struct {
	Username     *string
	PasswordHash *string
	Name         *string
	Email        *string
	Role         *string
}

// UserRepository defines persistence for user accounts.
type UserRepository interface {
	Get(ctx context.Context, id int) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	// List returns all users in insertion order.
	List(ctx context.Context) ([]*domain.User, error)
	// Create assigns a fresh monotonic id and returns the stored record.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update merges non-nil fields over the existing record.
	Update(ctx context.Context, id int, fields UpdateUserFields) (*domain.User, error)
	// Delete reports whether a record existed and was removed.
	Delete(ctx context.Context, id int) (bool, error)
}

// UserService defines user management use cases. Mutating operations take
// the acting user so ownership rules (self-service profile edits, the
// self-deletion ban) can be enforced against the permission catalog.
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	Get(ctx context.Context, id int) (*domain.User, error)
	Create(ctx context.Context, actor *domain.User, input CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor *domain.User, id int, input UpdateUserInput) (*domain.User, error)
	Delete(ctx context.Context, actor *domain.User, id int) error
}
