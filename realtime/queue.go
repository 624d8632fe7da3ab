package realtime

import (
	"errors"
	"sync"
)

var errChannelStalled = errors.New("channel send queue full or closed")

// QueuedChannel decouples broadcast fan-out from a slow consumer: Send
// enqueues without blocking and a single drain goroutine writes frames
// downstream in order. A full queue or a failed downstream write marks the
// channel dead; from then on Send errors, the dispatcher unregisters it and
// the client reconnects for a fresh snapshot. A dropped frame must not be
// papered over, the client's view would silently go stale.
type QueuedChannel struct {
	dst    Channel
	frames chan []byte

	mu     sync.Mutex
	dead   bool
	closed bool
}

func NewQueuedChannel(dst Channel, size int) *QueuedChannel {
	q := &QueuedChannel{dst: dst, frames: make(chan []byte, size)}
	go q.drain()
	return q
}

func (q *QueuedChannel) drain() {
	for payload := range q.frames {
		if err := q.dst.Send(payload); err != nil {
			q.mu.Lock()
			q.dead = true
			q.mu.Unlock()
			return
		}
	}
}

func (q *QueuedChannel) Send(payload []byte) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.dead || q.closed {
		return errChannelStalled
	}
	select {
	case q.frames <- payload:
		return nil
	default:
		q.dead = true
		return errChannelStalled
	}
}

// Close stops the drain goroutine; queued frames not yet written are
// discarded with it.
func (q *QueuedChannel) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	close(q.frames)
}
