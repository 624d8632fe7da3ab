package database

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"restaurant_manager/constants"
	"restaurant_manager/model"
)

// SeedData tạo tài khoản admin và một nhà hàng demo nếu DB còn trống
func SeedData(db *gorm.DB) {
	var count int64
	db.Model(&model.Account{}).Count(&count)
	if count > 0 {
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123456"), 10)
	if err != nil {
		fmt.Println("Seed admin failed:", err)
		return
	}
	db.Create(&model.Account{
		Username: "admin",
		Password: string(hash),
		Role:     constants.ROLE_ADMIN,
		Active:   true,
	})

	restaurant := model.Restaurant{
		Name:    "Quán Ngon Demo",
		Slug:    "quan-ngon-demo",
		Email:   "owner@quanngon.example",
		Phone:   "0901234567",
		Address: "12 Nguyễn Huệ, Q.1",
		Active:  true,
	}
	db.Create(&restaurant)

	discounted := 45000.0
	db.Create(&model.MenuItems{
		{RestaurantId: restaurant.ID, Name: "Phở bò", Price: 65000, Available: true},
		{RestaurantId: restaurant.ID, Name: "Bún chả", Price: 55000, DiscountPrice: &discounted, Available: true},
		{RestaurantId: restaurant.ID, Name: "Trà đá", Price: 5000, Available: true},
	})

	fmt.Println("Seed Data Done")
}
