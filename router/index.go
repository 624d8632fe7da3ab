package router

import (
	"restaurant_manager/handler"
	"restaurant_manager/middleware"
	"restaurant_manager/validate"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	api := app.Group("/api", logger.New())
	v1 := api.Group("/v1", logger.New())

	auth := v1.Group("/auth")
	auth.Post("/login", handler.Login)
	auth.Post("/refresh-token", handler.RefreshToken)

	account := v1.Group("/account", logger.New())
	account.Get("/", middleware.Protected(), handler.GetAccounts)
	account.Get("/me", middleware.Protected(), handler.Me)
	account.Post("/", middleware.Protected(), validate.CreateAccount(), handler.CreateAccount)

	restaurant := v1.Group("/restaurant", logger.New())
	restaurant.Get("/", middleware.Protected(), handler.GetRestaurants)
	restaurant.Post("/", middleware.Protected(), validate.CreateRestaurant(), handler.CreateRestaurant)
	restaurant.Put("/:restaurantId", middleware.Protected(), validate.GetById("restaurantId"), validate.EditRestaurant(), handler.EditRestaurant)
	restaurant.Get("/:restaurantId/menu", middleware.Protected(), validate.GetById("restaurantId"), handler.GetMenuItems)

	menu := v1.Group("/menu", logger.New())
	menu.Post("/", middleware.Protected(), validate.CreateMenuItem(), handler.CreateMenuItem)
	menu.Put("/:menuItemId", middleware.Protected(), validate.GetById("menuItemId"), validate.EditMenuItem(), handler.EditMenuItem)
	menu.Delete("/", middleware.Protected(), validate.Delete(), handler.DeleteMenuItems)
	menu.Post("/:menuItemId/image", middleware.Protected(), validate.GetById("menuItemId"), handler.UploadMenuItemImage)

	customer := v1.Group("/customer", logger.New())
	customer.Get("/", middleware.Protected(), handler.GetCustomers)

	order := v1.Group("/order", logger.New())
	order.Get("/ws/:restaurantId", middleware.Protected(), websocket.New(handler.OrderWebsocket))
	order.Get("/:restaurantId", middleware.Protected(), handler.GetRestaurantOrders)
	order.Get("/:restaurantId/history", middleware.Protected(), handler.GetOrderHistory)
	order.Patch("/:restaurantId/:orderId/status", middleware.Protected(), handler.AdvanceOrderStatus)

	// Public
	app.Get("/payment/return", handler.PaymentReturn)
	app.Post("/payment/ipn", handler.PaymentIPN)

	khachhang := v1.Group("/khach-hang")
	khachhang.Post("/register", validate.RegisterCustomer(), handler.RegisterCustomer)
	khachhang.Post("/login", validate.CustomerLogin(), handler.CustomerLogin)
	khachhang.Post("/forgot-password", validate.ForgotPassword(), handler.ForgotPassword)
	khachhang.Post("/reset-password", validate.ResetPassword(), handler.ResetPassword)

	// người dùng xem quán và đặt món
	quanan := v1.Group("/quan-an")
	quanan.Get("/", middleware.OptionalJWT(), handler.GetRestaurants)
	quanan.Get("/:slug", middleware.OptionalJWT(), handler.GetRestaurantBySlug)

	datmon := v1.Group("/dat-mon")
	datmon.Post("/checkout", middleware.OptionalJWT(), validate.CreateCheckout(), handler.CreateCheckout)
}
