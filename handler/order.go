package handler

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"restaurant_manager/constants"
	"restaurant_manager/model"
	"restaurant_manager/utils"
)

// GetRestaurantOrders trả ledger hiện tại cho trang admin (REST, không realtime)
func GetRestaurantOrders(c *fiber.Ctx) error {
	restaurantId := c.Params("restaurantId")

	orders, err := orderLedger.GetOrders(restaurantId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_LOAD_ORDERS, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.OrderSyncMessage{
		RestaurantId: restaurantId,
		Orders:       orders,
	})
}

// GetOrderHistory: đơn completed vẫn nằm trong cùng ledger, trang lịch sử
// chỉ lọc ra (chưa có bước archive riêng)
func GetOrderHistory(c *fiber.Ctx) error {
	restaurantId := c.Params("restaurantId")

	orders, err := orderLedger.GetOrders(restaurantId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_LOAD_ORDERS, err)
	}

	history := make([]model.Order, 0)
	for _, order := range orders {
		if order.Status == model.OrderCompleted {
			history = append(history, order)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.OrderSyncMessage{
		RestaurantId: restaurantId,
		Orders:       history,
	})
}

type advanceOrderInput struct {
	Status string `json:"status"`
}

// AdvanceOrderStatus là nút bấm trạng thái trên trang staff: đẩy đơn sang
// bước kế tiếp qua đúng đường update của hub, mọi tab và bếp cùng thấy.
// Caller chịu trách nhiệm chỉ yêu cầu transition hợp lệ; ở đây chặn sớm
// các yêu cầu đi lùi.
func AdvanceOrderStatus(c *fiber.Ctx) error {
	restaurantId := c.Params("restaurantId")
	orderId := c.Params("orderId")

	var input advanceOrderInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	orders, err := orderLedger.GetOrders(restaurantId)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_LOAD_ORDERS, err)
	}

	var target *model.Order
	for i := range orders {
		if orders[i].Id == orderId {
			target = &orders[i]
			break
		}
	}
	if target == nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, errors.New("order not in ledger"))
	}

	next, ok := model.NextOrderStatus(target.Status)
	if !ok || next != input.Status {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT,
			fmt.Errorf("cannot move order from %s to %s", target.Status, input.Status))
	}

	updated := *target
	updated.Status = next
	if err := orderHub.ApplyUpdate(restaurantId, []model.Order{updated}); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_EDIT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, updated)
}
