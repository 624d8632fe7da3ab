package realtime

import (
	"encoding/json"
	"log"

	"restaurant_manager/model"
)

// Dispatcher pushes full order-list snapshots to every channel of a
// restaurant. Delivery is best-effort, at most once per channel per event.
type Dispatcher struct {
	registry *Registry
}

func NewDispatcher(registry *Registry) *Dispatcher {
	return &Dispatcher{registry: registry}
}

// Broadcast serializes the snapshot once and sends it to every registered
// channel. A channel that fails to write is dropped from the registry; it
// gets the full snapshot again on its next connect. Zero channels is a no-op.
func (d *Dispatcher) Broadcast(restaurantId string, orders []model.Order) {
	payload, err := json.Marshal(model.OrderSyncMessage{
		RestaurantId: restaurantId,
		Orders:       orders,
	})
	if err != nil {
		log.Printf("order broadcast marshal failed for %s: %v", restaurantId, err)
		return
	}

	for _, ch := range d.registry.Channels(restaurantId) {
		if err := ch.Send(payload); err != nil {
			log.Printf("order broadcast send failed for %s: %v", restaurantId, err)
			d.registry.Unregister(restaurantId, ch)
		}
	}
}

// Snapshot sends the current list to a single channel, used right after a
// client connects.
func (d *Dispatcher) Snapshot(restaurantId string, orders []model.Order, ch Channel) error {
	payload, err := json.Marshal(model.OrderSyncMessage{
		RestaurantId: restaurantId,
		Orders:       orders,
	})
	if err != nil {
		return err
	}
	return ch.Send(payload)
}
