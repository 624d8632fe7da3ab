package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"net/url"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"
)

type checkoutPricing struct {
	ActualPrice    float64
	DiscountAmount float64
	DiscountPrice  float64
}

// CreateCheckout chốt giá giỏ hàng, tạo phiên thanh toán PENDING và trả về
// URL cổng thanh toán. Order chỉ vào ledger sau khi webhook báo PAID.
func CreateCheckout(c *fiber.Ctx) error {
	input, ok := c.Locals("CreateCheckout").(model.CreateCheckoutInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	db := database.DB

	var restaurant model.Restaurant
	if err := db.Where("slug = ? AND active = true", input.RestaurantSlug).First(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.CAN_NOT_GET_RESTAURANT, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	ids := make([]uint, 0, len(input.Items))
	for _, item := range input.Items {
		ids = append(ids, item.MenuItemId)
	}
	var menuItems model.MenuItems
	if err := db.Where("restaurant_id = ? AND available = true AND id IN ?", restaurant.ID, ids).Find(&menuItems).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_GET_MENU, err)
	}
	menuById := make(map[uint]model.MenuItem, len(menuItems))
	for _, item := range menuItems {
		menuById[item.ID] = item
	}

	var pricing checkoutPricing
	lines := make([]model.OrderItem, 0, len(input.Items))
	for _, item := range input.Items {
		menuItem, ok := menuById[item.MenuItemId]
		if !ok {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.CAN_NOT_GET_MENU,
				fmt.Errorf("menu item %d not available", item.MenuItemId))
		}

		unitPrice := menuItem.Price
		if menuItem.DiscountPrice != nil {
			unitPrice = *menuItem.DiscountPrice
		}
		qty := float64(item.Quantity)
		pricing.ActualPrice += menuItem.Price * qty
		pricing.DiscountAmount += (menuItem.Price - unitPrice) * qty

		lines = append(lines, model.OrderItem{
			Name:     menuItem.Name,
			Quantity: item.Quantity,
			Price:    unitPrice,
			Note:     item.Note,
		})
	}
	pricing.DiscountPrice = pricing.ActualPrice - pricing.DiscountAmount

	itemsJSON, err := json.Marshal(lines)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	claim, _ := helper.GetInfoCustomerFromToken(c)
	var customerId *uint
	if claim.CustomerId > 0 {
		customerId = &claim.CustomerId
	}

	session := model.CheckoutSession{
		PublicCode:   fmt.Sprintf("PAY_%s_%d", time.Now().Format("20060102"), rand.Intn(100000)),
		RestaurantId: restaurant.ID,
		CustomerId:   customerId,
		ItemsJSON:    string(itemsJSON),
		Status:       model.CheckoutPending,
	}
	if err := copier.Copy(&session, &pricing); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if err := db.Create(&session).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	gateway := NewGateway()
	paymentUrl, err := gateway.BuildPaymentUrl(model.PaymentRequest{
		Amount:    int64(session.DiscountPrice),
		OrderInfo: fmt.Sprintf("Thanh toán đơn %s - %s", session.PublicCode, restaurant.Name),
		TxnRef:    session.PublicCode,
		IPAddr:    c.IP(),
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Cannot build payment URL", err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"publicCode": session.PublicCode,
		"amount":     session.DiscountPrice,
		"paymentUrl": paymentUrl,
	})
}

// PaymentReturn xử lý callback của cổng thanh toán (return URL)
func PaymentReturn(c *fiber.Ctx) error {
	return settlePayment(c)
}

// PaymentIPN xử lý notify server-to-server, cùng logic verify
func PaymentIPN(c *fiber.Ctx) error {
	return settlePayment(c)
}

func settlePayment(c *fiber.Ctx) error {
	query := url.Values{}
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		query.Add(string(k), string(v))
	})

	gateway := NewGateway()
	result := gateway.VerifyReturnUrl(query)
	if !result.IsSuccess {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_PAYMENT_HASH, errors.New(result.Message))
	}

	db := database.DB

	var session model.CheckoutSession
	if err := db.Preload("Restaurant").Preload("Customer").
		Where("public_code = ?", result.TxnRef).First(&session).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.INVALID_CHECKOUT, err)
	}
	if session.Status == model.CheckoutPaid {
		// IPN và return URL có thể cùng bắn về, chỉ ghi ledger một lần
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"orderId": session.OrderId})
	}
	if session.Status != model.CheckoutPending {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_CHECKOUT,
			fmt.Errorf("session is %s", session.Status))
	}

	var lines []model.OrderItem
	if err := json.Unmarshal([]byte(session.ItemsJSON), &lines); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	order := model.Order{
		Id:             uuid.New().String(),
		Status:         model.OrderPending,
		Items:          lines,
		OrderPlacedAt:  time.Now(),
		ActualPrice:    session.ActualPrice,
		DiscountAmount: session.DiscountAmount,
		DiscountPrice:  session.DiscountPrice,
	}
	if session.CustomerId != nil {
		order.CustomerId = strconv.FormatUint(uint64(*session.CustomerId), 10)
	}

	now := time.Now()
	session.Status = model.CheckoutPaid
	session.PaidAt = &now
	session.OrderId = order.Id
	if err := db.Save(&session).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	// webhook append: đơn mới vào ledger rồi broadcast cho màn hình bếp
	if err := orderHub.AppendOrder(session.Restaurant.Slug, order); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_APPEND_ORDER, err)
	}

	sendPaidConfirmation(&session, order)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderId": order.Id,
		"status":  order.Status,
	})
}

func sendPaidConfirmation(session *model.CheckoutSession, order model.Order) {
	if session.Customer == nil || session.Customer.Email == "" {
		return
	}

	qrPNG, err := utils.GenerateQRCode(order.Id, 400)
	if err != nil {
		log.Printf("Lỗi tạo QR cho đơn hàng %s: %v", order.Id, err)
		qrPNG = nil
	}

	data := utils.OrderConfirmationData{
		OrderCode:      session.PublicCode,
		RestaurantName: session.Restaurant.Name,
		TotalAmount:    order.DiscountPrice,
	}
	for _, line := range order.Items {
		data.Items = append(data.Items, struct {
			Name     string
			Quantity int
		}{line.Name, line.Quantity})
	}

	mailer.SendOrderConfirmationEmail(session.Customer.Email, data, qrPNG)
}
