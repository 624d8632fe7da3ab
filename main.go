package main

import (
	"log"

	"restaurant_manager/config"
	"restaurant_manager/database"
	"restaurant_manager/handler"
	"restaurant_manager/helper"
	"restaurant_manager/realtime"
	"restaurant_manager/router"
	"restaurant_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

func main() {
	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // ảnh món ăn tối đa 20MB
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173/",
		AllowMethods:     "GET,POST,PUT,DELETE,PATCH,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Authorization, Accept",
		AllowCredentials: true,
		ExposeHeaders:    "Set-Cookie",
		MaxAge:           600,
	}))

	database.ConnectDB()
	database.ConnectRedis()

	mailer := utils.NewMailerFromEnv()
	ledger := database.NewOrderLedger(database.Redis)
	directory := database.NewCustomerDirectory(database.DB)
	hub := realtime.NewHub(ledger, directory, mailer)
	handler.InitOrderSync(hub, ledger, mailer)

	helper.StartDailyReportScheduler(ledger, mailer)
	defer helper.StopDailyReportScheduler()
	helper.StartCheckoutExpiryWorker()
	defer helper.StopCheckoutExpiryWorker()

	router.SetupRoutes(app)

	port := config.Config("PORT")
	if port == "" {
		port = "8002"
	}
	log.Fatal(app.Listen(":" + port))
}
