package watcher

import (
	"context"
	"fmt"

	"github.com/fsnotify/fsnotify"

	"github.com/ngoyal/autofileversion/internal/dispatch"
)

// startFsNotify subscribes to each watched folder (non-recursive) and pushes
// qualifying events onto the dispatch queue. Blocks until ctx is canceled;
// the subscriptions are released on return.
func (c *Coordinator) startFsNotify(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()

	for _, dir := range c.paths {
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watching %s: %w", dir, err)
		}
		c.log.Info("monitoring folder: %s", dir)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-watcher.Events:
			if !ok {
				c.log.Error("events channel closed")
				return nil
			}

			c.log.Debug("event: %s (%s)", ev.Name, ev.Op)

			// Create covers both newly written files and move-in
			// destinations; a move into the folder surfaces as Create.
			if ev.Op&fsnotify.Create == 0 {
				continue
			}

			if !c.queue.Push(dispatch.Event{Path: ev.Name}) {
				c.log.Warn("event queue full, dropping %s", ev.Name)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.log.Error("fsnotify error: %v", err)
		}
	}
}
