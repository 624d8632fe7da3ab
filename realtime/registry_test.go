package realtime

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"restaurant_manager/model"
)

type fakeChannel struct {
	mu     sync.Mutex
	frames [][]byte
	fail   bool
}

func (c *fakeChannel) Send(payload []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.fail {
		return errors.New("connection closed")
	}
	buf := make([]byte, len(payload))
	copy(buf, payload)
	c.frames = append(c.frames, buf)
	return nil
}

func (c *fakeChannel) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.frames)
}

func (c *fakeChannel) last(t *testing.T) model.OrderSyncMessage {
	t.Helper()
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.frames) == 0 {
		t.Fatal("channel received no frames")
	}
	var msg model.OrderSyncMessage
	if err := json.Unmarshal(c.frames[len(c.frames)-1], &msg); err != nil {
		t.Fatalf("unmarshal frame: %v", err)
	}
	return msg
}

func TestRegistryRegisterIsIdempotent(t *testing.T) {
	r := NewRegistry()
	ch := &fakeChannel{}

	r.Register("r1", ch)
	r.Register("r1", ch)

	assert.Equal(t, 1, r.Count("r1"))
}

func TestRegistryUnregisterCollectsEmptyRooms(t *testing.T) {
	r := NewRegistry()
	ch := &fakeChannel{}

	r.Register("r1", ch)
	r.Unregister("r1", ch)

	assert.Equal(t, 0, r.Count("r1"))
	assert.Empty(t, r.rooms) // room entry itself must be gone
}

func TestRegistryUnregisterUnknownIsNoop(t *testing.T) {
	r := NewRegistry()

	r.Unregister("r1", &fakeChannel{})

	assert.Equal(t, 0, r.Count("r1"))
}

func TestRegistryChannelsReturnsSnapshotCopy(t *testing.T) {
	r := NewRegistry()
	a, b := &fakeChannel{}, &fakeChannel{}
	r.Register("r1", a)
	r.Register("r1", b)

	snapshot := r.Channels("r1")
	r.Unregister("r1", a)
	r.Unregister("r1", b)

	assert.Len(t, snapshot, 2)
	assert.Empty(t, r.Channels("r1"))
}

func TestRegistryIsolatesRestaurants(t *testing.T) {
	r := NewRegistry()
	a, b := &fakeChannel{}, &fakeChannel{}

	r.Register("r1", a)
	r.Register("r2", b)

	assert.Len(t, r.Channels("r1"), 1)
	assert.Len(t, r.Channels("r2"), 1)
	assert.Same(t, a, r.Channels("r1")[0].(*fakeChannel))
}

func TestRegistryConcurrentMutation(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ch := &fakeChannel{}
			r.Register("r1", ch)
			r.Channels("r1")
			r.Unregister("r1", ch)
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, r.Count("r1"))
}
