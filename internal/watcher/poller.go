package watcher

import (
	"context"
	"path/filepath"
	"time"

	"github.com/ngoyal/autofileversion/internal/dispatch"
)

// startPolling scans the watched folders on a fixed interval. Fallback for
// directories where fsnotify does not deliver events; the debouncer makes
// both modes behave the same downstream.
func (c *Coordinator) startPolling(ctx context.Context) {
	for _, dir := range c.paths {
		c.log.Info("monitoring folder: %s (poll every %s)", dir, c.interval)
	}

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()

	seen := make(map[string]time.Time)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.scan(seen)
		}
	}
}

// scan pushes an event for every file that is new or modified since the
// previous scan.
func (c *Coordinator) scan(seen map[string]time.Time) {
	for _, dir := range c.paths {
		entries, err := c.fs.ReadDir(dir)
		if err != nil {
			c.log.Error("reading %s: %v", dir, err)
			continue
		}

		for _, e := range entries {
			if e.IsDir() {
				continue
			}

			full := filepath.Join(dir, e.Name())

			info, err := e.Info()
			if err != nil {
				continue
			}

			mod := info.ModTime()
			if last, ok := seen[full]; ok && !mod.After(last) {
				continue
			}
			seen[full] = mod

			if !c.queue.Push(dispatch.Event{Path: full}) {
				c.log.Warn("event queue full, dropping %s", full)
			}
		}
	}
}
