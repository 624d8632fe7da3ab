package realtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"restaurant_manager/model"
)

var placedAt = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func makeOrder(id, status string) model.Order {
	return model.Order{
		Id:            id,
		Status:        status,
		Items:         []model.OrderItem{{Name: "Pho bo", Quantity: 1, Price: 65000}},
		OrderPlacedAt: placedAt,
		ActualPrice:   65000,
		DiscountPrice: 65000,
	}
}

func TestReconcileIdempotent(t *testing.T) {
	current := []model.Order{makeOrder("o1", model.OrderPending), makeOrder("o2", model.OrderReady)}

	merged, changed := Reconcile(current, current)

	assert.Equal(t, current, merged)
	assert.Empty(t, changed)
}

func TestReconcileAppendToEmptyLedger(t *testing.T) {
	a := makeOrder("o1", model.OrderPending)

	merged, changed := Reconcile(nil, []model.Order{a})

	assert.Equal(t, []model.Order{a}, merged)
	assert.Equal(t, []model.Order{a}, changed)
}

func TestReconcileEmptyIncoming(t *testing.T) {
	current := []model.Order{makeOrder("o1", model.OrderPending)}

	merged, changed := Reconcile(current, nil)

	assert.Equal(t, current, merged)
	assert.Empty(t, changed)
}

func TestReconcileLastWriterWins(t *testing.T) {
	before := makeOrder("o1", model.OrderPending)
	after := makeOrder("o1", model.OrderPreparing)

	merged, changed := Reconcile([]model.Order{before}, []model.Order{after})

	assert.Equal(t, []model.Order{after}, merged)
	assert.Equal(t, []model.Order{after}, changed)
}

func TestReconcileLeavesUnrelatedOrdersAlone(t *testing.T) {
	a := makeOrder("o1", model.OrderPending)
	b := makeOrder("o2", model.OrderPreparing)
	aReady := makeOrder("o1", model.OrderReady)

	merged, changed := Reconcile([]model.Order{a, b}, []model.Order{aReady})

	assert.Equal(t, []model.Order{aReady, b}, merged)
	assert.Equal(t, []model.Order{aReady}, changed)
}

func TestReconcileStableOrderingAppendsNewIds(t *testing.T) {
	a := makeOrder("o1", model.OrderPreparing)
	b := makeOrder("o2", model.OrderPending)
	c := makeOrder("o3", model.OrderPending)

	// incoming lists the new order first; merged must keep ledger order
	merged, _ := Reconcile([]model.Order{a, b}, []model.Order{c, b})

	assert.Equal(t, []model.Order{a, b, c}, merged)
}

func TestReconcileDeduplicatesIncomingById(t *testing.T) {
	first := makeOrder("o1", model.OrderPreparing)
	second := makeOrder("o1", model.OrderReady)

	merged, changed := Reconcile(nil, []model.Order{first, second})

	assert.Equal(t, []model.Order{second}, merged)
	assert.Equal(t, []model.Order{second}, changed)
}

func TestReconcileDuplicateRevertingToCurrentIsNotChanged(t *testing.T) {
	a := makeOrder("o1", model.OrderPending)
	bumped := makeOrder("o1", model.OrderPreparing)

	// later duplicate restores the ledger value, so nothing really changed
	merged, changed := Reconcile([]model.Order{a}, []model.Order{bumped, a})

	assert.Equal(t, []model.Order{a}, merged)
	assert.Empty(t, changed)
}

func TestReconcileDoesNotMutateInputs(t *testing.T) {
	current := []model.Order{makeOrder("o1", model.OrderPending)}
	incoming := []model.Order{makeOrder("o1", model.OrderPreparing), makeOrder("o2", model.OrderPending)}

	Reconcile(current, incoming)

	assert.Equal(t, model.OrderPending, current[0].Status)
	assert.Len(t, incoming, 2)
}
