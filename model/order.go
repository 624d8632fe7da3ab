package model

import "time"

// Trạng thái đơn hàng trên màn hình bếp, chỉ tiến không lùi
const (
	OrderPending   = "pending"
	OrderPreparing = "preparing"
	OrderReady     = "ready"
	OrderCompleted = "completed"
)

// Order là document lưu trong ledger theo nhà hàng, không phải bảng gorm.
// Id là khóa merge; items và giá chốt lúc checkout, không sửa sau đó.
type Order struct {
	Id             string      `json:"id"`
	CustomerId     string      `json:"customerId,omitempty"` // rỗng nếu khách vãng lai
	Status         string      `json:"status"`
	Items          []OrderItem `json:"items"`
	OrderPlacedAt  time.Time   `json:"orderPlacedAt"`
	ActualPrice    float64     `json:"actualPrice"`
	DiscountAmount float64     `json:"discountAmount"`
	DiscountPrice  float64     `json:"discountPrice"`
}

type OrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
	Note     string  `json:"note,omitempty"`
}

// OrderSyncMessage là frame JSON hai chiều trên websocket đơn hàng:
// server gửi full snapshot, client gửi danh sách đã sửa.
type OrderSyncMessage struct {
	RestaurantId string  `json:"restaurantId"`
	Orders       []Order `json:"orders"`
}

func NextOrderStatus(status string) (string, bool) {
	switch status {
	case OrderPending:
		return OrderPreparing, true
	case OrderPreparing:
		return OrderReady, true
	case OrderReady:
		return OrderCompleted, true
	}
	return "", false
}
