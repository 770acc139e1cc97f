// Package local archives rendered invoices on the local filesystem. It is
// the default backend for single-machine deployments where S3 is not
// configured.
package local

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gstbill/internal/port"
)

type localStorage struct {
	dir string
}

// NewLocalStorage creates a filesystem-backed ObjectStorage rooted at dir.
// The directory is created if it does not exist.
func NewLocalStorage(dir string) (port.ObjectStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	return &localStorage{dir: dir}, nil
}

func (l *localStorage) Store(ctx context.Context, input port.StoreInput) (*port.StoreOutput, error) {
	path, err := l.resolve(input.Key)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating object dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".upload-*")
	if err != nil {
		return nil, fmt.Errorf("creating temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := io.Copy(tmp, input.Body); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("writing object: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return nil, fmt.Errorf("moving object into place: %w", err)
	}

	return &port.StoreOutput{Location: path}, nil
}

// PresignedURL returns the object's filesystem path. There is no expiry for
// local files.
func (l *localStorage) PresignedURL(ctx context.Context, key string, expirySeconds int64) (string, error) {
	path, err := l.resolve(key)
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(path); err != nil {
		return "", fmt.Errorf("stat object: %w", err)
	}
	return path, nil
}

// resolve maps a storage key to a path under the root dir and rejects keys
// that would escape it.
func (l *localStorage) resolve(key string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(key))
	if cleaned == "." || strings.HasPrefix(cleaned, "..") || filepath.IsAbs(cleaned) {
		return "", fmt.Errorf("invalid storage key: %q", key)
	}
	return filepath.Join(l.dir, cleaned), nil
}
