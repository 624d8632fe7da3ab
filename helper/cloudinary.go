package helper

import (
	"log"

	"github.com/cloudinary/cloudinary-go/v2"

	"restaurant_manager/config"
)

// InitCloudinary dựng client upload ảnh món ăn từ cấu hình .env
func InitCloudinary() *cloudinary.Cloudinary {
	cld, err := cloudinary.NewFromParams(
		config.Config("CLOUDINARY_CLOUD_NAME"),
		config.Config("CLOUDINARY_API_KEY"),
		config.Config("CLOUDINARY_API_SECRET"),
	)
	if err != nil {
		log.Fatalf("Không khởi tạo được Cloudinary: %v", err)
	}
	return cld
}
