package dispatch

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_FIFO(t *testing.T) {
	q := NewQueue(4)

	require.True(t, q.Push(Event{Path: "/watch/a.pdf"}))
	require.True(t, q.Push(Event{Path: "/watch/b.pdf"}))

	ev, ok := q.Pop(context.Background())
	require.True(t, ok)
	assert.Equal(t, "/watch/a.pdf", ev.Path)

	ev, ok = q.Pop(context.Background())
	require.True(t, ok)
	assert.Equal(t, "/watch/b.pdf", ev.Path)
}

func TestQueue_PushDropsWhenFull(t *testing.T) {
	q := NewQueue(1)

	require.True(t, q.Push(Event{Path: "/watch/a.pdf"}))
	assert.False(t, q.Push(Event{Path: "/watch/b.pdf"}))
	assert.Equal(t, 1, q.Len())
}

func TestQueue_PopReturnsOnCancel(t *testing.T) {
	q := NewQueue(1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, ok := q.Pop(ctx)
	assert.False(t, ok)
}
