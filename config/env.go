package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

// Config trả về giá trị biến môi trường theo key
func Config(key string) string {
	if err := godotenv.Load(".env"); err != nil {
		log.Println("No .env file found, using system environment")
	}
	return os.Getenv(key)
}
