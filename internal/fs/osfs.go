package fs

import (
	"context"
	"os"
)

type OSFS struct{}

// the concrete implementation of FS backed by the local OS filesystem.

func New() *OSFS {
	return &OSFS{}
}

func (o *OSFS) Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

func (o *OSFS) Rename(ctx context.Context, oldPath, newPath string) error {
	return renameWithRetry(ctx, oldPath, newPath)
}

func (o *OSFS) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (o *OSFS) Remove(path string) error {
	return os.Remove(path)
}

func (o *OSFS) ReadDir(path string) ([]os.DirEntry, error) {
	return os.ReadDir(path)
}
