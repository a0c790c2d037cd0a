package storage

import (
	"context"
	"errors"
	"os"
)

// ErrNotFound is returned when the requested object is not in the store.
var ErrNotFound = errors.New("object not found")

// Storage is implemented by the backends capable of holding marketplace
// documents. Keys are slash separated paths under a bucket.
type Storage interface {
	ReadWriter
	List(ctx context.Context, path string) ([]string, error)
	Clear(ctx context.Context, path string) error
	Remove(ctx context.Context, key string) error
}

// ReadWriter can put and get objects by key.
type ReadWriter interface {
	Write(ctx context.Context, key string, body []byte, options *Options) error
	Read(ctx context.Context, key string) ([]byte, error)
}

// Options alter the behavior of a write.
type Options struct {
	TTL     int64 // Seconds until the object expires, S3 only.
	Mode    os.FileMode
	DirMode os.FileMode
}

// NewOptions returns Options with sane defaults.
func NewOptions() Options {
	return Options{
		Mode:    0644,
		DirMode: 0755,
	}
}
