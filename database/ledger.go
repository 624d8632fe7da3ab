package database

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"

	"restaurant_manager/model"
)

// OrderLedger lưu order list của mỗi nhà hàng thành một redis list các
// document JSON, key theo slug nhà hàng. Append và replace đều atomic.
type OrderLedger struct {
	rdb *redis.Client
}

func NewOrderLedger(rdb *redis.Client) *OrderLedger {
	return &OrderLedger{rdb: rdb}
}

func ledgerKey(restaurantId string) string {
	return "restaurant_orders:" + restaurantId
}

func (l *OrderLedger) GetOrders(restaurantId string) ([]model.Order, error) {
	raw, err := l.rdb.LRange(context.Background(), ledgerKey(restaurantId), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("read ledger %s: %w", restaurantId, err)
	}

	orders := make([]model.Order, 0, len(raw))
	for _, doc := range raw {
		var order model.Order
		if err := json.Unmarshal([]byte(doc), &order); err != nil {
			return nil, fmt.Errorf("decode order in ledger %s: %w", restaurantId, err)
		}
		orders = append(orders, order)
	}
	return orders, nil
}

func (l *OrderLedger) AppendOrder(restaurantId string, order model.Order) error {
	doc, err := json.Marshal(order)
	if err != nil {
		return fmt.Errorf("encode order %s: %w", order.Id, err)
	}
	if err := l.rdb.RPush(context.Background(), ledgerKey(restaurantId), doc).Err(); err != nil {
		return fmt.Errorf("append to ledger %s: %w", restaurantId, err)
	}
	return nil
}

func (l *OrderLedger) ReplaceOrders(restaurantId string, orders []model.Order) error {
	docs := make([]interface{}, 0, len(orders))
	for _, order := range orders {
		doc, err := json.Marshal(order)
		if err != nil {
			return fmt.Errorf("encode order %s: %w", order.Id, err)
		}
		docs = append(docs, doc)
	}

	// Del + RPush chạy trong một transaction để client khác không bao giờ
	// đọc được list rỗng giữa chừng
	pipe := l.rdb.TxPipeline()
	pipe.Del(context.Background(), ledgerKey(restaurantId))
	if len(docs) > 0 {
		pipe.RPush(context.Background(), ledgerKey(restaurantId), docs...)
	}
	if _, err := pipe.Exec(context.Background()); err != nil {
		return fmt.Errorf("replace ledger %s: %w", restaurantId, err)
	}
	return nil
}
