package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Local stores template binaries under a directory on disk. Meant for
// development and tests, the s3 backend is the production one.
type Local struct {
	root string
}

// NewLocal ...
func NewLocal(root string) (*Local, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("storage root %s: %s", root, err)
	}
	return &Local{root: root}, nil
}

// Upload stores content under path and returns the stored path.
func (s *Local) Upload(_ context.Context, path string, content []byte, _ string) (string, error) {
	full, err := s.full(path)
	if err != nil {
		return "", err
	}
	if err = os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return "", fmt.Errorf("upload %s: %s", path, err)
	}
	if err = os.WriteFile(full, content, 0o644); err != nil {
		return "", fmt.Errorf("upload %s: %s", path, err)
	}
	return path, nil
}

// Download returns the content stored under path.
func (s *Local) Download(_ context.Context, path string) ([]byte, error) {
	full, err := s.full(path)
	if err != nil {
		return nil, err
	}
	content, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("download %s: %s", path, err)
	}
	return content, nil
}

// Remove deletes every stored path.
func (s *Local) Remove(_ context.Context, paths []string) error {
	for _, path := range paths {
		full, err := s.full(path)
		if err != nil {
			return err
		}
		if err = os.Remove(full); err != nil {
			return fmt.Errorf("remove %s: %s", path, err)
		}
	}
	return nil
}

// full resolves a storage key inside root, keys may not escape it.
func (s *Local) full(path string) (string, error) {
	full := filepath.Join(s.root, filepath.FromSlash(path))
	if !strings.HasPrefix(full, filepath.Clean(s.root)+string(filepath.Separator)) {
		return "", fmt.Errorf("path %s is outside storage root", path)
	}
	return full, nil
}
