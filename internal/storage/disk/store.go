// Package disk implements the attachment ObjectStore on the local
// filesystem. Keys are generated per upload and never reused.
package disk

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"Feedline/internal/core/attachments"
)

// Store keeps one file per attachment under a single directory.
type Store struct {
	dir string
}

// NewStore creates the backing directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create media directory: %w", err)
	}
	return &Store{dir: dir}, nil
}

// Put stores the bytes under a fresh key. The key embeds the upload time
// and a UUID, with an extension derived from the content type hint.
func (s *Store) Put(ctx context.Context, data []byte, contentType string) (string, error) {
	key := fmt.Sprintf("%d-%s%s", time.Now().UnixMilli(), uuid.NewString(), extensionFor(contentType))

	if err := os.WriteFile(filepath.Join(s.dir, key), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to store attachment: %w", err)
	}
	return key, nil
}

// Open returns a reader for the stored object.
func (s *Store) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	path, err := s.pathFor(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, attachments.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open attachment: %w", err)
	}
	return f, nil
}

// Delete removes the stored object. Returns attachments.ErrNotFound when
// the key does not exist.
func (s *Store) Delete(ctx context.Context, key string) error {
	path, err := s.pathFor(key)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if os.IsNotExist(err) {
		return attachments.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete attachment: %w", err)
	}
	return nil
}

// pathFor rejects keys that would escape the store directory.
func (s *Store) pathFor(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, "/\\") || strings.Contains(key, "..") {
		return "", attachments.ErrNotFound
	}
	return filepath.Join(s.dir, key), nil
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
