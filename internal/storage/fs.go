package storage

import (
	"context"
	"os"
	"path/filepath"
)

// fsStore lays objects out as root/bucket/key on the local filesystem. Used
// by the local runner in place of the object store; metadata is not kept.
type fsStore struct {
	root string
}

func NewFS(root string) ObjectStore {
	return &fsStore{root: root}
}

func (s *fsStore) Get(ctx context.Context, bucket, key string) ([]byte, error) {
	body, err := os.ReadFile(filepath.Join(s.root, bucket, filepath.FromSlash(key)))
	if err != nil {
		return nil, readErr(err)
	}
	return body, nil
}

func (s *fsStore) Put(ctx context.Context, bucket, key string, body []byte, contentType string, meta ObjectMeta) error {
	path := filepath.Join(s.root, bucket, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return writeErr(err)
	}
	if err := os.WriteFile(path, body, 0o644); err != nil {
		return writeErr(err)
	}
	return nil
}
