package model

// Restaurant: Slug được dùng làm khóa phân vùng cho ledger và kênh realtime
type Restaurant struct {
	DTO
	Name    string `gorm:"not null" json:"name"`
	Slug    string `gorm:"unique;size:120" json:"slug"`
	Email   string `json:"email"` // nhận báo cáo doanh thu hằng ngày
	Phone   string `json:"phone"`
	Address string `json:"address"`
	LogoUrl string `json:"logoUrl"`
	Active  bool   `gorm:"default:true" json:"active"`

	MenuItems []MenuItem `gorm:"foreignKey:RestaurantId" json:"menuItems,omitempty"`
}

type Restaurants []Restaurant

type CreateRestaurantInput struct {
	Name    string `validate:"required" json:"name"`
	Email   string `validate:"omitempty,email" json:"email"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type EditRestaurantInput struct {
	Name    *string `json:"name"`
	Email   *string `validate:"omitempty,email" json:"email"`
	Phone   *string `json:"phone"`
	Address *string `json:"address"`
	Active  *bool   `json:"active"`
}

type FilterRestaurant struct {
	Pagination
	SearchKey string `json:"searchKey"`
	Active    *bool  `json:"active"`
}
