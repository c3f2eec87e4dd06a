package service

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/agencyops/crm-system/internal/core/domain"
	"github.com/agencyops/crm-system/internal/infrastructure/db/memory"
)

func seedUser(t *testing.T, store *memory.Store, username, password, role string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	user, err := store.Users().Create(context.Background(), &domain.User{
		Username:     username,
		PasswordHash: string(hash),
		Name:         username,
		Email:        username + "@example.com",
		Role:         role,
	})
	if err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user
}

func TestAuthService_Login_Success(t *testing.T) {
	store := memory.NewStore()
	seeded := seedUser(t, store, "alice", "s3cret", domain.RoleAdmin)
	svc := NewAuthService(store.Users(), memory.NewTokenRevoker(), "secret", time.Hour, zerolog.Nop())

	token, user, err := svc.Login(context.Background(), "alice", "s3cret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token")
	}
	if user.ID != seeded.ID || user.Role != domain.RoleAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("role claim = %v", claims["role"])
	}
	if claims["jti"] == "" || claims["jti"] == nil {
		t.Fatalf("missing jti claim")
	}
	if int(claims["sub"].(float64)) != seeded.ID {
		t.Fatalf("sub claim = %v, want %d", claims["sub"], seeded.ID)
	}
}

func TestAuthService_Login_WrongPasswordAndUnknownUserIndistinguishable(t *testing.T) {
	store := memory.NewStore()
	seedUser(t, store, "bob", "goodpass", domain.RoleUser)
	svc := NewAuthService(store.Users(), memory.NewTokenRevoker(), "secret", time.Hour, zerolog.Nop())

	_, _, wrongPass := svc.Login(context.Background(), "bob", "badpass")
	_, _, unknownUser := svc.Login(context.Background(), "ghost", "whatever")

	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("wrong password: got %v", wrongPass)
	}
	if unknownUser != domain.ErrInvalidCredentials {
		t.Fatalf("unknown user: got %v", unknownUser)
	}
}

func TestAuthService_Login_EmptyInput(t *testing.T) {
	store := memory.NewStore()
	svc := NewAuthService(store.Users(), memory.NewTokenRevoker(), "secret", time.Hour, zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "", ""); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Logout_Revokes(t *testing.T) {
	revoker := memory.NewTokenRevoker()
	svc := NewAuthService(memory.NewStore().Users(), revoker, "secret", time.Hour, zerolog.Nop())

	if err := svc.Logout(context.Background(), "token-1", time.Minute); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if revoked, _ := revoker.IsRevoked(context.Background(), "token-1"); !revoked {
		t.Fatalf("token not revoked")
	}

	// Expired tokens need no denylist entry.
	if err := svc.Logout(context.Background(), "token-2", 0); err != nil {
		t.Fatalf("logout expired: %v", err)
	}
	if revoked, _ := revoker.IsRevoked(context.Background(), "token-2"); revoked {
		t.Fatalf("expired token should not be revoked")
	}
}
