// Package storage abstracts the object store that holds registration
// documents. The workflow only depends on the ObjectStore interface so
// uploads can be faked in tests and swapped for a hosted bucket later.
package storage

import (
	"context"
	"errors"
	"io"
)

// Sentinel errors for document uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// ObjectStore stores uploaded blobs under hierarchical keys and serves
// them back through public URLs.
type ObjectStore interface {
	// Put stores the blob under key. The key may contain slashes.
	Put(ctx context.Context, key string, r io.Reader, size int64) error
	// PublicURL returns the retrievable URL for a previously stored key.
	PublicURL(key string) string
}
