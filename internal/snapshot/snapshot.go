// Package snapshot provides durable storage for client-state snapshots.
// Cart and wishlist stores persist their full JSON state under a fixed key
// after every mutation and hydrate from it once at startup.
package snapshot

import "context"

// Store persists opaque state snapshots under fixed keys.
// Implementations must be safe for concurrent use.
type Store interface {
	// Load returns the snapshot stored under key. A missing snapshot is
	// reported as (nil, false, nil), not an error.
	Load(ctx context.Context, key string) (data []byte, ok bool, err error)
	// Save stores the snapshot under key, replacing any previous value.
	Save(ctx context.Context, key string, data []byte) error
	// Delete removes the snapshot under key. Deleting an absent key is a no-op.
	Delete(ctx context.Context, key string) error
}
