package storage

import (
	"context"
	"io"
	"time"
)

// StorageInterface defines the common interface for archive backends
type StorageInterface interface {
	BucketName() string
	Upload(ctx context.Context, key string, data io.ReadSeeker, size int64, contentType string, metadata map[string]string) error
	Exists(ctx context.Context, key string) (bool, error)
	GeneratePresignedURL(ctx context.Context, key string, expiry time.Duration) (string, error)
	Ping(ctx context.Context) error
}
