package session

import (
	"context"
)

// TTL is the sliding expiry window. Every authenticated request resets
// the countdown to this full duration.
const TTL = 7 * 24 * 60 * 60 // seconds

// Data is the persisted session payload. CreatedAt is epoch millis.
type Data struct {
	UserID    string `json:"userId"`
	OpenID    string `json:"openid"`
	CreatedAt int64  `json:"createdAt"`
}

// Store defines how sessions are stored and retrieved. Expiry is
// delegated entirely to the backing store's TTL mechanism; existence
// of a key is authoritative.
type Store interface {
	// Create generates a token, stores the session under it with the
	// full TTL and returns the token.
	Create(ctx context.Context, userID, openID string) (string, error)

	// Get returns the session for a token, or nil when the token is
	// unknown, expired, or the stored payload is malformed.
	Get(ctx context.Context, token string) (*Data, error)

	// Refresh resets the TTL to the full window and reports whether
	// the token existed. A missing token is not an error.
	Refresh(ctx context.Context, token string) (bool, error)

	// Delete removes the token unconditionally. Deleting a missing
	// token is not an error.
	Delete(ctx context.Context, token string) error
}
