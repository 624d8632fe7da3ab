package model

import "time"

const (
	CheckoutPending   = "PENDING"
	CheckoutPaid      = "PAID"
	CheckoutExpired   = "EXPIRED"
	CheckoutCancelled = "CANCELLED"
)

// CheckoutSession là phiên thanh toán PENDING trước khi order vào ledger.
// ItemsJSON giữ snapshot line items đã chốt giá lúc checkout.
type CheckoutSession struct {
	DTO
	PublicCode     string     `gorm:"unique;size:40" json:"publicCode"` // PAY_YYYYMMDD_xxx, dùng làm TxnRef
	RestaurantId   uint       `gorm:"not null;index" json:"restaurantId"`
	CustomerId     *uint      `json:"customerId,omitempty"` // null nếu khách vãng lai
	ItemsJSON      string     `gorm:"type:text" json:"-"`
	ActualPrice    float64    `json:"actualPrice"`
	DiscountAmount float64    `json:"discountAmount"`
	DiscountPrice  float64    `json:"discountPrice"`
	Status         string     `gorm:"default:PENDING" json:"status"`
	PaidAt         *time.Time `json:"paidAt,omitempty"`
	OrderId        string     `gorm:"size:40" json:"orderId"` // id document sau khi PAID

	Restaurant Restaurant `gorm:"foreignKey:RestaurantId" json:"-"`
	Customer   *Customer  `gorm:"foreignKey:CustomerId" json:"-"`
}

type CheckoutItemInput struct {
	MenuItemId uint   `validate:"required,gt=0" json:"menuItemId"`
	Quantity   int    `validate:"required,gt=0" json:"quantity"`
	Note       string `json:"note"`
}

type CreateCheckoutInput struct {
	RestaurantSlug string              `validate:"required" json:"restaurantSlug"`
	Items          []CheckoutItemInput `validate:"required,min=1,dive" json:"items"`
}

type GatewayConfig struct {
	TmnCode    string
	HashSecret string
	BaseURL    string
	ReturnURL  string
	IPNURL     string
}

type PaymentRequest struct {
	Amount    int64  `json:"amount"`
	OrderInfo string `json:"orderInfo"`
	TxnRef    string `json:"txnRef"`
	IPAddr    string `json:"ipAddr"`
}

type PaymentResponse struct {
	IsSuccess bool   `json:"isSuccess"`
	TxnRef    string `json:"txnRef"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	Message   string `json:"message"`
}
