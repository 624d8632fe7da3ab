package realtime

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant_manager/model"
)

// blockingChannel stalls every Send until released, the way a websocket
// write stalls on TCP backpressure.
type blockingChannel struct {
	entered chan struct{}
	release chan struct{}

	mu     sync.Mutex
	frames [][]byte
}

func newBlockingChannel() *blockingChannel {
	return &blockingChannel{
		entered: make(chan struct{}, 64),
		release: make(chan struct{}),
	}
}

func (c *blockingChannel) Send(payload []byte) error {
	c.entered <- struct{}{}
	<-c.release
	c.mu.Lock()
	defer c.mu.Unlock()
	c.frames = append(c.frames, payload)
	return nil
}

func (c *blockingChannel) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func TestQueuedChannelSendDoesNotAwaitConsumer(t *testing.T) {
	slow := newBlockingChannel()
	q := NewQueuedChannel(slow, 8)
	defer q.Close()

	for i := 0; i < 4; i++ {
		require.NoError(t, q.Send([]byte(fmt.Sprintf("frame-%d", i))))
	}

	close(slow.release)
	assert.Eventually(t, func() bool { return slow.count() == 4 }, time.Second, 10*time.Millisecond)
	// delivered in enqueue order
	assert.Equal(t, []byte("frame-0"), slow.frames[0])
	assert.Equal(t, []byte("frame-3"), slow.frames[3])
}

func TestQueuedChannelFullQueueGoesDead(t *testing.T) {
	slow := newBlockingChannel()
	q := NewQueuedChannel(slow, 2)
	defer q.Close()

	require.NoError(t, q.Send([]byte("a")))
	<-slow.entered // drain goroutine is stuck writing "a"
	require.NoError(t, q.Send([]byte("b")))
	require.NoError(t, q.Send([]byte("c")))

	// queue full: a frame would be dropped, so the channel reports dead
	assert.Error(t, q.Send([]byte("d")))

	// dead stays dead even after the consumer catches up; the client has a
	// hole in its stream and must reconnect for a fresh snapshot
	close(slow.release)
	assert.Eventually(t, func() bool { return slow.count() == 3 }, time.Second, 10*time.Millisecond)
	assert.Error(t, q.Send([]byte("e")))
}

func TestQueuedChannelDeadAfterDownstreamError(t *testing.T) {
	broken := &fakeChannel{fail: true}
	q := NewQueuedChannel(broken, 4)
	defer q.Close()

	require.NoError(t, q.Send([]byte("a"))) // enqueue succeeds, write fails async
	assert.Eventually(t, func() bool { return q.Send([]byte("b")) != nil },
		time.Second, 10*time.Millisecond)
}

func TestQueuedChannelSendAfterClose(t *testing.T) {
	q := NewQueuedChannel(&fakeChannel{}, 4)
	q.Close()
	q.Close() // idempotent
	assert.Error(t, q.Send([]byte("a")))
}

func TestBroadcastNotDelayedByStalledChannel(t *testing.T) {
	ledger := newMemLedger()
	hub := newTestHub(ledger, nil, nil)

	slow := newBlockingChannel()
	stalled := NewQueuedChannel(slow, 8)
	defer stalled.Close()
	require.NoError(t, hub.Subscribe("r1", stalled))
	<-slow.entered // its snapshot is stuck on the socket write

	fast := &fakeChannel{}
	require.NoError(t, hub.Subscribe("r1", fast))

	done := make(chan struct{})
	go func() {
		assert.NoError(t, hub.ApplyUpdate("r1", []model.Order{makeOrder("o1", model.OrderPending)}))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("update blocked behind a stalled channel")
	}
	assert.Equal(t, 2, fast.count()) // snapshot + broadcast, undelayed

	close(slow.release)
	assert.Eventually(t, func() bool { return slow.count() == 2 }, time.Second, 10*time.Millisecond)
}
