// Package dispatch provides the bounded event queue between the filesystem
// notification layer and the single-consumer processing loop. One consumer
// draining in FIFO order preserves archive-then-promote ordering per base
// filename without extra locking.
package dispatch

import "context"

// Event is one filesystem notification to examine. Path is the resulting
// path: for a move, the destination.
type Event struct {
	Path string
}

// Queue is a bounded FIFO. Producers drop events when it is full rather than
// block the notification goroutine; the debouncer makes dropped bursts
// harmless because a follow-up event for the same path re-triggers handling.
type Queue struct {
	ch chan Event
}

func NewQueue(size int) *Queue {
	if size <= 0 {
		size = 64
	}
	return &Queue{ch: make(chan Event, size)}
}

// Push enqueues ev, reporting false if the queue is full.
func (q *Queue) Push(ev Event) bool {
	select {
	case q.ch <- ev:
		return true
	default:
		return false
	}
}

// Pop blocks until an event is available or ctx is canceled.
func (q *Queue) Pop(ctx context.Context) (Event, bool) {
	select {
	case ev := <-q.ch:
		return ev, true
	case <-ctx.Done():
		return Event{}, false
	}
}

// Len reports the number of queued events.
func (q *Queue) Len() int {
	return len(q.ch)
}
