package realtime

import "sync"

// Channel is one live admin/kitchen connection. Send must be safe to call
// from multiple goroutines (the websocket wrapper serializes writes).
type Channel interface {
	Send(payload []byte) error
}

// Registry tracks which channels follow which restaurant's order stream.
// Pure in-memory bookkeeping, rebuilt from scratch on restart.
type Registry struct {
	mu    sync.Mutex
	rooms map[string]map[Channel]bool
}

func NewRegistry() *Registry {
	return &Registry{rooms: make(map[string]map[Channel]bool)}
}

// Register is idempotent: adding the same channel twice is a no-op.
func (r *Registry) Register(restaurantId string, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[restaurantId] == nil {
		r.rooms[restaurantId] = make(map[Channel]bool)
	}
	r.rooms[restaurantId][ch] = true
}

// Unregister removes the channel and garbage-collects empty rooms.
func (r *Registry) Unregister(restaurantId string, ch Channel) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.rooms[restaurantId] == nil {
		return
	}
	delete(r.rooms[restaurantId], ch)
	if len(r.rooms[restaurantId]) == 0 {
		delete(r.rooms, restaurantId)
	}
}

// Channels returns a snapshot copy so callers can iterate while
// connect/disconnect events keep mutating the room.
func (r *Registry) Channels(restaurantId string) []Channel {
	r.mu.Lock()
	defer r.mu.Unlock()
	room := r.rooms[restaurantId]
	out := make([]Channel, 0, len(room))
	for ch := range room {
		out = append(out, ch)
	}
	return out
}

func (r *Registry) Count(restaurantId string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.rooms[restaurantId])
}
