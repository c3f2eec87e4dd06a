package memory

import (
	"context"
	"sync"
	"time"
)

// TokenRevoker is an in-process token denylist used when redis is not
// configured, and by tests. Entries expire lazily on read.
type TokenRevoker struct {
	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewTokenRevoker returns an empty denylist.
func NewTokenRevoker() *TokenRevoker {
	return &TokenRevoker{revoked: make(map[string]time.Time)}
}

// Revoke marks a token id as revoked until its remaining lifetime elapses.
func (r *TokenRevoker) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.revoked[jti] = time.Now().Add(ttl)
	return nil
}

// IsRevoked reports whether the token id is on the denylist.
func (r *TokenRevoker) IsRevoked(ctx context.Context, jti string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	deadline, ok := r.revoked[jti]
	if !ok {
		return false, nil
	}
	if time.Now().After(deadline) {
		delete(r.revoked, jti)
		return false, nil
	}
	return true, nil
}
