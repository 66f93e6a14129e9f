// Package fs defines the filesystem abstraction used by autofileversion.
// The versioning engine and retention pruner go through FS so tests exercise
// the production code paths against real temp directories.
package fs

import (
	"context"
	"os"
)

type FS interface {
	Exists(path string) bool
	Rename(ctx context.Context, oldPath, newPath string) error
	MkdirAll(path string) error
	Remove(path string) error
	ReadDir(path string) ([]os.DirEntry, error)
}
