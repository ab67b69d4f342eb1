package blob

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore is a file-based blob store for CLI usage. Each key maps to
// one file under the base directory, named by the key's hash so
// arbitrary key strings stay filesystem-safe.
type FileStore struct {
	dir string
}

// NewFileStore creates a file-based store rooted at dir. If dir is
// empty it defaults to ~/.config/mindweave/. The directory is created
// if it doesn't exist.
func NewFileStore(dir string) (*FileStore, error) {
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		dir = filepath.Join(home, ".config", "mindweave")
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create blob dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Get implements Store.
func (s *FileStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := os.ReadFile(s.path(key))
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return data, true, nil
}

// Set implements Store.
func (s *FileStore) Set(ctx context.Context, key string, data []byte) error {
	return os.WriteFile(s.path(key), data, 0644)
}

// Delete implements Store.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	err := os.Remove(s.path(key))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

// Close does nothing for a file store.
func (s *FileStore) Close() error { return nil }

// Path returns the base directory for blob files.
func (s *FileStore) Path() string { return s.dir }

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, Hash([]byte(key))+".json")
}

var _ Store = (*FileStore)(nil)
