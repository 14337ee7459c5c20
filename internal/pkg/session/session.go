// Package session issues and validates bearer tokens. Tokens are
// stateless JWTs; logout works by recording the token's jti in a
// revocation store until its natural expiry.
package session

import (
	"context"
	"errors"
	"time"

	jwtpkg "github.com/agenda-br/core/internal/pkg/jwt"
	"github.com/agenda-br/core/internal/pkg/revocation"
)

const DefaultTTL = 24 * time.Hour

var (
	// ErrInvalidToken covers bad signatures, malformed tokens and expiry.
	ErrInvalidToken = errors.New("session: invalid token")
	// ErrRevoked means the token was signed correctly but logged out.
	ErrRevoked = errors.New("session: token revoked")
)

// Manager mints, authenticates and revokes tokens.
type Manager struct {
	store revocation.Store
	ttl   time.Duration
}

func NewManager(store revocation.Store, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{store: store, ttl: ttl}
}

// Issue mints a token bound to userID. Nothing is persisted.
func (m *Manager) Issue(userID string) (string, error) {
	return jwtpkg.Sign(userID, m.ttl)
}

// Authenticate resolves a token to the bound user id. A token is accepted
// iff its signature verifies, it has not expired, it has not been revoked
// and it carries no purpose claim. Purpose-bearing tokens (password
// reset) are not API credentials even though they share the signing key.
func (m *Manager) Authenticate(ctx context.Context, token string) (string, error) {
	claims, err := jwtpkg.Parse(token)
	if err != nil {
		return "", ErrInvalidToken
	}
	if claims.Purpose != "" {
		return "", ErrInvalidToken
	}
	revoked, err := m.store.IsRevoked(ctx, claims.ID)
	if err != nil {
		return "", err
	}
	if revoked {
		return "", ErrRevoked
	}
	return claims.UserID, nil
}

// Revoke invalidates a token for the rest of its lifetime. Revoking an
// already-revoked or expired token is a no-op.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	claims, err := jwtpkg.Parse(token)
	if err != nil {
		return ErrInvalidToken
	}
	ttl := time.Until(claims.ExpiresAt.Time)
	return m.store.Revoke(ctx, claims.ID, ttl)
}
