// Package tokenstore persists opaque refresh tokens in a TTL key-value store.
// Expiry is enforced by the store itself, not by application timestamp checks.
package tokenstore

import (
	"context"
	"time"
)

// Store maps an opaque refresh token to the owning user id until the token is
// consumed or expires. Calls are network operations and are never covered by
// the relational transaction of any caller.
type Store interface {
	// Save stores token -> userID with the given TTL.
	Save(ctx context.Context, token, userID string, ttl time.Duration) error
	// Get returns the owning user id, or "" when the token is absent or expired.
	Get(ctx context.Context, token string) (string, error)
	// Delete removes the token and reports whether it was still present.
	// Deleting an absent token is not an error.
	Delete(ctx context.Context, token string) (bool, error)
}
