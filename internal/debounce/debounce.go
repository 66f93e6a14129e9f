// Package debounce suppresses re-processing of the same path within a short
// cooldown window. Filesystem watchers often report a single move as several
// events; the debouncer collapses them into one.
package debounce

import (
	"sync"
	"time"
)

// Cooldown is the minimum interval between two processed events for one path.
const Cooldown = 2 * time.Second

// sweepThreshold bounds the tracking map in a long-running process: once it
// grows past this many entries, expired ones are dropped before inserting the
// next. Expired entries cannot influence ShouldProcess, so sweeping them does
// not change observable behavior.
const sweepThreshold = 1024

type Debouncer struct {
	mu       sync.Mutex
	cooldown time.Duration
	last     map[string]time.Time
}

func New() *Debouncer {
	return NewWithCooldown(Cooldown)
}

func NewWithCooldown(cooldown time.Duration) *Debouncer {
	return &Debouncer{
		cooldown: cooldown,
		last:     make(map[string]time.Time),
	}
}

// ShouldProcess reports whether an event for path may be handled at time now.
// The first event for a path is recorded and allowed; another event within
// the cooldown is rejected without touching state, so a burst of events does
// not keep extending its own suppression window.
func (d *Debouncer) ShouldProcess(path string, now time.Time) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if last, ok := d.last[path]; ok && now.Sub(last) < d.cooldown {
		return false
	}

	if len(d.last) >= sweepThreshold {
		d.sweep(now)
	}

	d.last[path] = now
	return true
}

func (d *Debouncer) sweep(now time.Time) {
	for p, t := range d.last {
		if now.Sub(t) >= d.cooldown {
			delete(d.last, p)
		}
	}
}
