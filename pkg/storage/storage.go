package storage

import (
	"context"
	"io"
	"time"
)

// Storage abstracts where profile pictures are kept. The server works the
// same whether objects live on the local disk or in an S3/MinIO bucket.
type Storage interface {
	// Write stores content from the reader under the given key.
	// size is the expected content length (-1 if unknown).
	Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error

	// Read retrieves content for the given key.
	// The caller is responsible for closing the returned ReadCloser.
	Read(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes the content with the given key.
	Delete(ctx context.Context, key string) error

	// Exists checks if content with the given key exists.
	Exists(ctx context.Context, key string) (bool, error)

	// GetURL returns a URL for accessing the content. For S3 this is a
	// presigned URL valid for the given duration; for local storage it is
	// a path served by the HTTP layer.
	GetURL(ctx context.Context, key string, expires time.Duration) (string, error)
}

// Config selects and configures a storage backend.
type Config struct {
	Backend string      `mapstructure:"backend"` // local, s3
	Local   LocalConfig `mapstructure:"local"`
	S3      S3Config    `mapstructure:"s3"`
}

// New builds the storage backend named by cfg.Backend. An empty backend
// defaults to local storage.
func New(ctx context.Context, cfg Config) (Storage, error) {
	if cfg.Backend == "s3" {
		return NewS3Storage(ctx, cfg.S3)
	}
	return NewLocalStorage(cfg.Local)
}
