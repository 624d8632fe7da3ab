package realtime

import (
	"reflect"

	"restaurant_manager/model"
)

// Reconcile merges an incoming order list into the current ledger list.
// Per-order last-writer-wins on id: an id present in both keeps the incoming
// version, ids only in current are carried through, unknown ids are appended.
// Duplicated ids inside incoming collapse to the later occurrence.
//
// merged keeps the current list's ordering with new ids appended at the end,
// so kitchen displays don't reshuffle. changed is the subset of merged whose
// value actually differs from current (deep equality), in merged order.
func Reconcile(current, incoming []model.Order) (merged, changed []model.Order) {
	merged = make([]model.Order, len(current))
	copy(merged, current)

	pos := make(map[string]int, len(current))
	for i, order := range current {
		pos[order.Id] = i
	}

	touched := make(map[string]bool, len(incoming))
	for _, order := range incoming {
		touched[order.Id] = true
		if i, ok := pos[order.Id]; ok {
			merged[i] = order
			continue
		}
		pos[order.Id] = len(merged)
		merged = append(merged, order)
	}

	byId := make(map[string]model.Order, len(current))
	for _, order := range current {
		byId[order.Id] = order
	}

	changed = []model.Order{}
	for _, order := range merged {
		if !touched[order.Id] {
			continue
		}
		before, existed := byId[order.Id]
		if !existed || !reflect.DeepEqual(before, order) {
			changed = append(changed, order)
		}
	}
	return merged, changed
}
