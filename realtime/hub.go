package realtime

import (
	"fmt"
	"log"
	"sync"

	"restaurant_manager/model"
)

// Ledger is the per-restaurant order document store. AppendOrder and
// ReplaceOrders must each be atomic; the hub takes care of not interleaving
// them for the same restaurant.
type Ledger interface {
	GetOrders(restaurantId string) ([]model.Order, error)
	AppendOrder(restaurantId string, order model.Order) error
	ReplaceOrders(restaurantId string, orders []model.Order) error
}

// Hub is the serialization point of the order stream. Every update for a
// restaurant runs read → reconcile → persist → notify → broadcast under that
// restaurant's lock; updates for different restaurants proceed in parallel.
type Hub struct {
	ledger     Ledger
	registry   *Registry
	dispatcher *Dispatcher
	notifier   *Notifier

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewHub(ledger Ledger, directory ContactDirectory, sender Sender) *Hub {
	registry := NewRegistry()
	return &Hub{
		ledger:     ledger,
		registry:   registry,
		dispatcher: NewDispatcher(registry),
		notifier:   NewNotifier(directory, sender),
		locks:      make(map[string]*sync.Mutex),
	}
}

func (h *Hub) Registry() *Registry { return h.registry }

func (h *Hub) lockFor(restaurantId string) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.locks[restaurantId] == nil {
		h.locks[restaurantId] = &sync.Mutex{}
	}
	return h.locks[restaurantId]
}

// Subscribe sends the current snapshot and only then admits the channel to
// the broadcast set. An update that lands between the ledger read and the
// Register is simply missed; the next broadcast carries the full list. The
// reverse order would let a broadcast arrive before the stale snapshot and
// get overwritten by it.
func (h *Hub) Subscribe(restaurantId string, ch Channel) error {
	orders, err := h.ledger.GetOrders(restaurantId)
	if err != nil {
		return fmt.Errorf("load orders for %s: %w", restaurantId, err)
	}
	if err := h.dispatcher.Snapshot(restaurantId, orders, ch); err != nil {
		return fmt.Errorf("send snapshot for %s: %w", restaurantId, err)
	}
	h.registry.Register(restaurantId, ch)
	return nil
}

func (h *Hub) Unsubscribe(restaurantId string, ch Channel) {
	h.registry.Unregister(restaurantId, ch)
}

// ApplyUpdate merges an incoming list from any writer (admin tab, kitchen
// display) into the ledger. A persist failure drops the update: nothing is
// broadcast, clients keep their last consistent snapshot.
func (h *Hub) ApplyUpdate(restaurantId string, incoming []model.Order) error {
	lock := h.lockFor(restaurantId)
	lock.Lock()
	defer lock.Unlock()

	current, err := h.ledger.GetOrders(restaurantId)
	if err != nil {
		return fmt.Errorf("load orders for %s: %w", restaurantId, err)
	}

	merged, changed := Reconcile(current, incoming)

	if err := h.ledger.ReplaceOrders(restaurantId, merged); err != nil {
		return fmt.Errorf("persist orders for %s: %w", restaurantId, err)
	}

	if len(changed) > 0 {
		go h.notifier.NotifyChanged(restaurantId, changed)
	}
	h.dispatcher.Broadcast(restaurantId, merged)
	return nil
}

// AppendOrder is the payment-webhook path: exactly one new order goes into
// the ledger. It shares the restaurant lock with ApplyUpdate so an append
// never races a concurrent merge.
func (h *Hub) AppendOrder(restaurantId string, order model.Order) error {
	lock := h.lockFor(restaurantId)
	lock.Lock()
	defer lock.Unlock()

	if err := h.ledger.AppendOrder(restaurantId, order); err != nil {
		return fmt.Errorf("append order for %s: %w", restaurantId, err)
	}

	go h.notifier.NotifyChanged(restaurantId, []model.Order{order})

	merged, err := h.ledger.GetOrders(restaurantId)
	if err != nil {
		// the append itself persisted. A broadcast is a full replace, so
		// sending just this one order would wipe every other live order
		// from the connected displays; stay silent until the next update.
		log.Printf("reload after append failed for %s: %v", restaurantId, err)
		return nil
	}
	h.dispatcher.Broadcast(restaurantId, merged)
	return nil
}
