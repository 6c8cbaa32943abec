package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Allowed document extensions, per the registration form (scans and a
// photo: PDF or image files only).
var allowedExtensions = map[string]struct{}{
	".pdf":  {},
	".jpg":  {},
	".jpeg": {},
	".png":  {},
}

// AllowedExtension reports whether the original filename carries an
// accepted document extension, and returns it lowercased.
func AllowedExtension(filename string) (string, bool) {
	ext := strings.ToLower(filepath.Ext(filename))
	_, ok := allowedExtensions[ext]
	return ext, ok
}

// LocalStore is an ObjectStore backed by a directory on local disk,
// served statically under /uploads.
type LocalStore struct {
	root     string
	baseURL  string
	maxBytes int64
}

// NewLocalStore creates a LocalStore rooted at dir. baseURL prefixes
// public URLs and may be empty for server-relative URLs.
func NewLocalStore(dir, baseURL string, maxBytes int64) *LocalStore {
	return &LocalStore{root: dir, baseURL: baseURL, maxBytes: maxBytes}
}

// Put writes the blob to disk under key, creating intermediate
// directories as needed.
func (s *LocalStore) Put(ctx context.Context, key string, r io.Reader, size int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, size, s.maxBytes)
	}

	destPath := filepath.Join(s.root, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(destPath), 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}

	dst, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, r); err != nil {
		return fmt.Errorf("write file: %w", err)
	}
	return nil
}

// PublicURL returns the URL the stored key is served under.
func (s *LocalStore) PublicURL(key string) string {
	return s.baseURL + "/uploads/" + key
}
