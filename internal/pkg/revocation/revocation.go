// Package revocation tracks invalidated token IDs. Tokens stay
// cryptographically valid until expiry, so logout is only effective
// because authenticate consults this record.
package revocation

import (
	"context"
	"time"
)

// Store records revoked token IDs until their natural expiry.
type Store interface {
	// Revoke marks jti as revoked. The entry may be discarded after ttl,
	// when the token would have expired anyway. Idempotent.
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	// IsRevoked reports whether jti has been revoked.
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
