package presence

import (
	"context"
	"time"
)

// Store tracks which users are currently online. Entries expire on their
// own: a user is online while heartbeats keep refreshing the TTL.
type Store interface {
	// Heartbeat marks the user online and refreshes the expiry.
	Heartbeat(ctx context.Context, userID string) error

	// SetOffline removes the user's presence entry immediately.
	SetOffline(ctx context.Context, userID string) error

	// IsOnline reports whether the user has an unexpired presence entry.
	IsOnline(ctx context.Context, userID string) (bool, error)

	// OnlineStatus resolves presence for a batch of users in one call.
	OnlineStatus(ctx context.Context, userIDs []string) (map[string]bool, error)

	// Close releases any underlying resources.
	Close() error
}

// Config holds presence store settings shared by implementations.
type Config struct {
	KeyPrefix string
	TTL       time.Duration
}
