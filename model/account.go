package model

// Account là tài khoản admin/staff cho trang quản trị
type Account struct {
	DTO
	Username     string `gorm:"unique;not null" json:"username"`
	Password     string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null" json:"role"`
	RestaurantId *uint  `json:"restaurantId"` // null với ADMIN toàn hệ thống
	Active       bool   `gorm:"default:true" json:"active"`

	Restaurant *Restaurant `gorm:"foreignKey:RestaurantId" json:"restaurant,omitempty"`
}

type CreateAccountInput struct {
	Username     string `validate:"required" json:"username"`
	Password     string `validate:"required,min=8" json:"password"`
	Role         string `validate:"required,oneof=ADMIN MANAGER STAFF" json:"role"`
	RestaurantId *uint  `json:"restaurantId"`
}
