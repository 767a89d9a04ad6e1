// Package storage defines the interface for object storage operations.
// Swap implementations by changing the concrete type injected at startup —
// the MinIO implementation works with any S3-compatible provider (MinIO, AWS S3).
package storage

import (
	"context"
	"errors"
	"time"
)

// ErrSigning is returned when a presigned URL could not be produced.
// Not retryable: the same key material will fail the same way.
var ErrSigning = errors.New("presign upload URL")

// Storage is the interface for delegated access to an object store.
// The service never streams upload bytes itself; clients PUT directly
// to the store using a presigned URL.
type Storage interface {
	// PresignUpload returns a time-limited URL authorizing a single HTTP PUT
	// of at most maxContentLength bytes with exactly the given Content-Type
	// to the given key. The store rejects a PUT whose Content-Type or
	// Content-Length differs from what was signed, or that arrives after ttl.
	PresignUpload(ctx context.Context, key, contentType string, maxContentLength int64, ttl time.Duration) (string, error)
	// Exists reports whether an object is present at key.
	Exists(ctx context.Context, key string) (bool, error)
	// PublicURL constructs the browser-accessible URL for a given key.
	PublicURL(key string) string
}
