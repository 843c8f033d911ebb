// Package cache provides response caching for the advising services. The
// engine is deterministic, so a rendered response can be reused for an
// identical query until the knowledge base changes.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"
)

// ErrCacheMiss indicates a cache miss.
var ErrCacheMiss = errors.New("cache miss")

// Client defines the cache interface.
type Client interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
	Close() error
}

// ResponsePrefix namespaces cached advisor responses, so a knowledge-base
// reload can invalidate them in one sweep.
const ResponsePrefix = "respond:"

// ResponseKey derives a stable cache key from a query and its metadata.
// Metadata keys are sorted so equivalent requests hash identically.
func ResponseKey(query string, metadata map[string]string) string {
	h := sha256.New()
	h.Write([]byte(query))
	keys := make([]string, 0, len(metadata))
	for k := range metadata {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		h.Write([]byte{0})
		h.Write([]byte(k))
		h.Write([]byte{0})
		h.Write([]byte(metadata[k]))
	}
	return ResponsePrefix + hex.EncodeToString(h.Sum(nil))
}

// Key joins key components with colons.
func Key(parts ...string) string {
	return strings.Join(parts, ":")
}
