// Package session tracks which user a browser is logged in as. The client
// holds an opaque token in a cookie; a Store maps the token to an Identity.
package session

import (
	"context"
	"errors"
	"time"
)

// Identity is the current user bound to a session
type Identity struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// ErrNotFound is returned by Load for unknown, expired or invalid tokens
var ErrNotFound = errors.New("session: not found")

// Store persists session state.
type Store interface {
	// Load resolves a token to its identity.
	Load(ctx context.Context, token string) (Identity, error)
	// Save binds the identity to the token for ttl and returns the token the
	// client should hold. An empty token asks the store to issue a new one.
	Save(ctx context.Context, token string, identity Identity, ttl time.Duration) (string, error)
	// Destroy forgets the token. Unknown tokens are not an error.
	Destroy(ctx context.Context, token string) error
}
