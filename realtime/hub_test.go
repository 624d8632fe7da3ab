package realtime

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"restaurant_manager/model"
)

type memLedger struct {
	mu          sync.Mutex
	data        map[string][]model.Order
	failReplace bool
	failGet     bool
}

func newMemLedger() *memLedger {
	return &memLedger{data: make(map[string][]model.Order)}
}

func (l *memLedger) GetOrders(restaurantId string) ([]model.Order, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failGet {
		return nil, errors.New("ledger read failed")
	}
	out := make([]model.Order, len(l.data[restaurantId]))
	copy(out, l.data[restaurantId])
	return out, nil
}

func (l *memLedger) AppendOrder(restaurantId string, order model.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.data[restaurantId] = append(l.data[restaurantId], order)
	return nil
}

func (l *memLedger) ReplaceOrders(restaurantId string, orders []model.Order) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.failReplace {
		return errors.New("ledger write failed")
	}
	l.data[restaurantId] = orders
	return nil
}

type mapDirectory map[string]string

func (d mapDirectory) GetContact(customerId string) (string, bool) {
	address, ok := d[customerId]
	return address, ok
}

type sentMail struct {
	address, subject, body string
}

type recordingSender struct {
	mu   sync.Mutex
	sent []sentMail
	fail bool
}

func (s *recordingSender) Send(address, subject, body string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fail {
		return errors.New("smtp unavailable")
	}
	s.sent = append(s.sent, sentMail{address, subject, body})
	return nil
}

func (s *recordingSender) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sent)
}

func newTestHub(ledger Ledger, directory ContactDirectory, sender Sender) *Hub {
	if directory == nil {
		directory = mapDirectory{}
	}
	if sender == nil {
		sender = &recordingSender{}
	}
	return NewHub(ledger, directory, sender)
}

func TestSubscribeSendsCurrentSnapshot(t *testing.T) {
	ledger := newMemLedger()
	require.NoError(t, ledger.AppendOrder("r1", makeOrder("o1", model.OrderPending)))
	hub := newTestHub(ledger, nil, nil)
	ch := &fakeChannel{}

	require.NoError(t, hub.Subscribe("r1", ch))

	msg := ch.last(t)
	assert.Equal(t, "r1", msg.RestaurantId)
	require.Len(t, msg.Orders, 1)
	assert.Equal(t, "o1", msg.Orders[0].Id)
	assert.Equal(t, 1, hub.Registry().Count("r1"))
}

// gatedChannel blocks its first Send until the gate opens. Lets a test hold
// a snapshot in flight while other things happen.
type gatedChannel struct {
	fakeChannel
	entered chan struct{}
	gate    chan struct{}
	once    sync.Once
}

func newGatedChannel() *gatedChannel {
	return &gatedChannel{entered: make(chan struct{}), gate: make(chan struct{})}
}

func (c *gatedChannel) Send(payload []byte) error {
	c.once.Do(func() { close(c.entered) })
	<-c.gate
	return c.fakeChannel.Send(payload)
}

func TestSubscribeNotEligibleForBroadcastsUntilSnapshotSent(t *testing.T) {
	ledger := newMemLedger()
	hub := newTestHub(ledger, nil, nil)

	ch := newGatedChannel()
	done := make(chan error, 1)
	go func() { done <- hub.Subscribe("r1", ch) }()
	<-ch.entered // empty snapshot is now stuck in flight

	require.NoError(t, hub.ApplyUpdate("r1", []model.Order{makeOrder("o1", model.OrderPending)}))
	assert.Equal(t, 0, hub.Registry().Count("r1")) // not in the broadcast set yet
	assert.Equal(t, 0, ch.count())                 // so the update never reached it

	close(ch.gate)
	require.NoError(t, <-done)
	require.Equal(t, 1, ch.count()) // only the snapshot arrived, never after a broadcast

	// the next update carries the full list, nothing stays stale
	require.NoError(t, hub.ApplyUpdate("r1", []model.Order{makeOrder("o1", model.OrderPreparing)}))
	msg := ch.last(t)
	require.Len(t, msg.Orders, 1)
	assert.Equal(t, model.OrderPreparing, msg.Orders[0].Status)
}

func TestAppendReloadFailureBroadcastsNothing(t *testing.T) {
	ledger := newMemLedger()
	require.NoError(t, ledger.AppendOrder("r1", makeOrder("o1", model.OrderPending)))
	require.NoError(t, ledger.AppendOrder("r1", makeOrder("o2", model.OrderPreparing)))
	hub := newTestHub(ledger, nil, nil)
	ch := &fakeChannel{}
	require.NoError(t, hub.Subscribe("r1", ch))

	ledger.failGet = true
	require.NoError(t, hub.AppendOrder("r1", makeOrder("o3", model.OrderPending)))

	// broadcasts are full replaces: without a consistent reload the display
	// keeps its two-order view instead of collapsing to just o3
	assert.Equal(t, 1, ch.count())

	ledger.failGet = false
	orders, err := ledger.GetOrders("r1")
	require.NoError(t, err)
	assert.Len(t, orders, 3) // the append itself still persisted
}

func TestSubscribeFailedSnapshotLeavesNoRegistration(t *testing.T) {
	hub := newTestHub(newMemLedger(), nil, nil)
	ch := &fakeChannel{fail: true}

	err := hub.Subscribe("r1", ch)

	assert.Error(t, err)
	assert.Equal(t, 0, hub.Registry().Count("r1"))
}

func TestApplyUpdateBroadcastsToAllChannels(t *testing.T) {
	ledger := newMemLedger()
	hub := newTestHub(ledger, nil, nil)

	channels := []*fakeChannel{{}, {}, {}}
	for _, ch := range channels {
		require.NoError(t, hub.Subscribe("r1", ch))
	}
	other := &fakeChannel{}
	require.NoError(t, hub.Subscribe("r2", other))

	require.NoError(t, hub.ApplyUpdate("r1", []model.Order{makeOrder("o1", model.OrderPending)}))

	for _, ch := range channels {
		assert.Equal(t, 2, ch.count()) // snapshot + broadcast
		msg := ch.last(t)
		assert.Equal(t, "r1", msg.RestaurantId)
		require.Len(t, msg.Orders, 1)
		assert.Equal(t, model.OrderPending, msg.Orders[0].Status)
	}
	// identical serialized payload for every channel
	assert.Equal(t, channels[0].last(t), channels[1].last(t))
	assert.Equal(t, channels[1].last(t), channels[2].last(t))

	// the other restaurant's channel only ever saw its own snapshot
	assert.Equal(t, 1, other.count())
}

func TestApplyUpdateAfterLastChannelLeft(t *testing.T) {
	ledger := newMemLedger()
	hub := newTestHub(ledger, nil, nil)
	ch := &fakeChannel{}
	require.NoError(t, hub.Subscribe("r1", ch))
	hub.Unsubscribe("r1", ch)

	err := hub.ApplyUpdate("r1", []model.Order{makeOrder("o1", model.OrderPending)})

	assert.NoError(t, err)
	assert.Equal(t, 1, ch.count()) // just the initial snapshot
	orders, _ := ledger.GetOrders("r1")
	assert.Len(t, orders, 1) // persisted even with nobody watching
}

func TestApplyUpdatePersistFailureSendsNothing(t *testing.T) {
	ledger := newMemLedger()
	hub := newTestHub(ledger, nil, nil)
	ch := &fakeChannel{}
	require.NoError(t, hub.Subscribe("r1", ch))

	ledger.failReplace = true
	err := hub.ApplyUpdate("r1", []model.Order{makeOrder("o1", model.OrderPending)})

	assert.Error(t, err)
	assert.Equal(t, 1, ch.count()) // no broadcast after a dropped update
}

func TestApplyUpdateDropsDeadChannel(t *testing.T) {
	ledger := newMemLedger()
	hub := newTestHub(ledger, nil, nil)
	alive, dead := &fakeChannel{}, &fakeChannel{}
	require.NoError(t, hub.Subscribe("r1", alive))
	require.NoError(t, hub.Subscribe("r1", dead))
	dead.fail = true

	require.NoError(t, hub.ApplyUpdate("r1", []model.Order{makeOrder("o1", model.OrderPending)}))

	assert.Equal(t, 1, hub.Registry().Count("r1"))
	assert.Equal(t, 2, alive.count())
}

func TestNotificationFailureDoesNotStopOthers(t *testing.T) {
	directory := mapDirectory{"u1": "u1@example.com", "u2": "u2@example.com"}
	sender := &recordingSender{}
	notifier := NewNotifier(directory, sender)

	anonymous := makeOrder("o1", model.OrderReady)
	known := makeOrder("o2", model.OrderReady)
	known.CustomerId = "u1"
	unknown := makeOrder("o3", model.OrderReady)
	unknown.CustomerId = "ghost"
	second := makeOrder("o4", model.OrderCompleted)
	second.CustomerId = "u2"

	notifier.NotifyChanged("r1", []model.Order{anonymous, known, unknown, second})

	require.Equal(t, 2, sender.count())
	assert.Equal(t, "u1@example.com", sender.sent[0].address)
	assert.Contains(t, sender.sent[0].subject, "o2")
	assert.Contains(t, sender.sent[0].subject, model.OrderReady)
	assert.Contains(t, sender.sent[0].body, "Pho bo")
	assert.Equal(t, "u2@example.com", sender.sent[1].address)
}

func TestNotifierSurvivesSenderErrors(t *testing.T) {
	directory := mapDirectory{"u1": "u1@example.com"}
	sender := &recordingSender{fail: true}
	notifier := NewNotifier(directory, sender)
	order := makeOrder("o1", model.OrderReady)
	order.CustomerId = "u1"

	assert.NotPanics(t, func() {
		notifier.NotifyChanged("r1", []model.Order{order, order})
	})
}

func TestConcurrentUpdatesSameRestaurantLoseNoOrders(t *testing.T) {
	ledger := newMemLedger()
	hub := newTestHub(ledger, nil, nil)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			order := makeOrder(fmt.Sprintf("o%d", i), model.OrderPending)
			assert.NoError(t, hub.ApplyUpdate("r1", []model.Order{order}))
		}(i)
	}
	wg.Wait()

	orders, err := ledger.GetOrders("r1")
	require.NoError(t, err)
	assert.Len(t, orders, 20) // every concurrent singleton update survived
}

// Full scenario: webhook append, two admin displays, staff status bump.
func TestEndToEndOrderFlow(t *testing.T) {
	ledger := newMemLedger()
	directory := mapDirectory{"u1": "u1@example.com"}
	sender := &recordingSender{}
	hub := newTestHub(ledger, directory, sender)

	adminA, adminB := &fakeChannel{}, &fakeChannel{}
	require.NoError(t, hub.Subscribe("r1", adminA))
	require.NoError(t, hub.Subscribe("r1", adminB))
	assert.Empty(t, adminA.last(t).Orders)

	// payment webhook appends the freshly paid order
	o1 := makeOrder("o1", model.OrderPending)
	o1.CustomerId = "u1"
	require.NoError(t, hub.AppendOrder("r1", o1))

	for _, ch := range []*fakeChannel{adminA, adminB} {
		msg := ch.last(t)
		assert.Equal(t, "r1", msg.RestaurantId)
		require.Len(t, msg.Orders, 1)
		assert.Equal(t, "o1", msg.Orders[0].Id)
	}

	// admin A advances the order
	o1Preparing := o1
	o1Preparing.Status = model.OrderPreparing
	require.NoError(t, hub.ApplyUpdate("r1", []model.Order{o1Preparing}))

	orders, err := ledger.GetOrders("r1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, model.OrderPreparing, orders[0].Status)

	for _, ch := range []*fakeChannel{adminA, adminB} {
		assert.Equal(t, model.OrderPreparing, ch.last(t).Orders[0].Status)
	}

	// both the append and the status change mail the customer
	assert.Eventually(t, func() bool { return sender.count() == 2 }, time.Second, 10*time.Millisecond)
	sender.mu.Lock()
	defer sender.mu.Unlock()
	subjects := []string{sender.sent[0].subject, sender.sent[1].subject}
	assert.Equal(t, "u1@example.com", sender.sent[0].address)
	assert.Equal(t, "u1@example.com", sender.sent[1].address)
	// the two mails run on independent goroutines, order is not guaranteed
	assert.Contains(t, strings.Join(subjects, "\n"), model.OrderPreparing)
	assert.Contains(t, strings.Join(subjects, "\n"), model.OrderPending)
}
