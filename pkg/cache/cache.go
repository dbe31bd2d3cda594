package cache

import (
	"context"
	"time"
)

// Default expirations per pipeline stage. Conversion and DOT output are
// pure functions of their input, so the TTLs only bound disk usage, not
// staleness.
const (
	TTLConvert  = 24 * time.Hour
	TTLDOT      = 24 * time.Hour
	TTLArtifact = 7 * 24 * time.Hour
)

// Cache is the storage contract shared by every backend. Values are
// opaque bytes; keys come from a [Keyer].
type Cache interface {
	// Get retrieves a value. The bool reports whether the key was found.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}
