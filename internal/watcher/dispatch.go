package watcher

import (
	"context"
	"time"
)

// runDispatch is the single consumer of the event queue. One event at a time
// keeps the archive-then-promote sequence serialized per base filename.
func (c *Coordinator) runDispatch(ctx context.Context) {
	for {
		ev, ok := c.queue.Pop(ctx)
		if !ok {
			return
		}
		c.handleEvent(ev.Path)
	}
}

// handleEvent runs one path through debounce, resolution and promotion.
// Errors are logged and dropped; the watch loop never stops for them.
func (c *Coordinator) handleEvent(path string) {
	if !c.debouncer.ShouldProcess(path, time.Now()) {
		c.log.Debug("debounced: %s", path)
		return
	}

	m, ok := c.resolver.Resolve(path)
	if !ok {
		return
	}

	// Detached context: a promotion already under way finishes on shutdown
	// instead of stopping between the archive and promote renames.
	if err := c.engine.Promote(context.Background(), m); err != nil {
		c.log.Error("promotion failed for %s: %v", path, err)
	}
}
