package ports

import (
	"context"
	"time"

	"github.com/agencyops/crm-system/internal/core/domain"
)

// AuthService authenticates users and issues bearer tokens.
type AuthService interface {
	// Login verifies credentials and returns a signed token plus the user
	// profile. Unknown username and wrong password both yield
	// domain.ErrInvalidCredentials; callers must not be able to tell them
	// apart.
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Logout revokes the token identified by jti for the remaining lifetime.
	Logout(ctx context.Context, jti string, remaining time.Duration) error
}

// TokenRevoker is the denylist consulted on every authenticated request.
type TokenRevoker interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
