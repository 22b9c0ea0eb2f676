package storage

import (
	"context"
	"io"
	"time"
)

// Store is the single object-storage collaborator interface. The bytes of every
// uploaded file live behind it; the rest of the application only sees object keys.
type Store interface {
	Upload(ctx context.Context, key, contentType string, r io.Reader) error
	Download(ctx context.Context, key string) (io.ReadCloser, error)
	Exists(ctx context.Context, key string) (bool, error)
	SignedURL(key string, ttl time.Duration) (string, error)
	Delete(ctx context.Context, key string) error
}
