package fs

import (
	"context"
	"os"
)

// wraps os.Rename with retry logic. Same-volume renames are atomic, so the
// archive and promote steps either happen completely or not at all.

func renameWithRetry(ctx context.Context, oldPath, newPath string) error {
	return retry(ctx, "rename", func() error {
		return os.Rename(oldPath, newPath)
	})
}
