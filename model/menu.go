package model

type MenuItem struct {
	DTO
	RestaurantId  uint     `gorm:"not null;index" json:"restaurantId"`
	Name          string   `gorm:"not null" json:"name"`
	Description   string   `json:"description"`
	Price         float64  `gorm:"not null" json:"price"`
	DiscountPrice *float64 `json:"discountPrice"` // null nếu không giảm giá
	ImageUrl      string   `json:"imageUrl"`
	Available     bool     `gorm:"default:true" json:"available"`
}

type MenuItems []MenuItem

type CreateMenuItemInput struct {
	RestaurantId  uint     `validate:"required" json:"restaurantId"`
	Name          string   `validate:"required" json:"name"`
	Description   string   `json:"description"`
	Price         float64  `validate:"required,gt=0" json:"price"`
	DiscountPrice *float64 `validate:"omitempty,gt=0" json:"discountPrice"`
	ImageUrl      string   `json:"imageUrl"`
}

type EditMenuItemInput struct {
	Name          *string  `json:"name"`
	Description   *string  `json:"description"`
	Price         *float64 `validate:"omitempty,gt=0" json:"price"`
	DiscountPrice *float64 `json:"discountPrice"`
	ImageUrl      *string  `json:"imageUrl"`
	Available     *bool    `json:"available"`
}
