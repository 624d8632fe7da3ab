package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"restaurant_manager/constants"
	"restaurant_manager/database"
	"restaurant_manager/helper"
	"restaurant_manager/model"
	"restaurant_manager/utils"
)

func GetRestaurants(c *fiber.Ctx) error {
	db := database.DB

	var filter model.FilterRestaurant
	if err := c.QueryParser(&filter); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.ERROR_INPUT, err)
	}

	query := db.Model(&model.Restaurant{})
	if filter.SearchKey != "" {
		query = query.Where("name ILIKE ?", "%"+filter.SearchKey+"%")
	}
	if filter.Active != nil {
		query = query.Where("active = ?", *filter.Active)
	}

	var totalCount int64
	query.Count(&totalCount)

	var restaurants model.Restaurants
	if err := utils.ApplyPagination(query, filter.Limit, filter.Page).Order("id").Find(&restaurants).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_GET_RESTAURANT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       restaurants,
		Limit:      filter.Limit,
		Page:       filter.Page,
		TotalCount: totalCount,
	})
}

func GetRestaurantBySlug(c *fiber.Ctx) error {
	db := database.DB
	slug := c.Params("slug")

	var restaurant model.Restaurant
	if err := db.Preload("MenuItems", "available = true").Where("slug = ? AND active = true", slug).First(&restaurant).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_GET_RESTAURANT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, restaurant)
}

func CreateRestaurant(c *fiber.Ctx) error {
	db := database.DB

	input, ok := c.Locals("CreateRestaurant").(model.CreateRestaurantInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	restaurant := model.Restaurant{
		Name:    input.Name,
		Slug:    helper.GenerateUniqueRestaurantSlug(db, input.Name),
		Email:   input.Email,
		Phone:   input.Phone,
		Address: input.Address,
		Active:  true,
	}
	if err := db.Create(&restaurant).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_CREATE, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, restaurant)
}

func EditRestaurant(c *fiber.Ctx) error {
	db := database.DB

	id, ok := c.Locals("inputId").(int)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}
	input, ok := c.Locals("EditRestaurant").(model.EditRestaurantInput)
	if !ok {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_PARSE_DATA_TO_LOCALS, errors.New("PARSE DATA TO LOCALS FAIL"))
	}

	var restaurant model.Restaurant
	if err := db.First(&restaurant, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.NOT_FOUND_RECORDS, err)
	}

	if input.Name != nil {
		restaurant.Name = *input.Name
	}
	if input.Email != nil {
		restaurant.Email = *input.Email
	}
	if input.Phone != nil {
		restaurant.Phone = *input.Phone
	}
	if input.Address != nil {
		restaurant.Address = *input.Address
	}
	if input.Active != nil {
		restaurant.Active = *input.Active
	}

	if err := db.Save(&restaurant).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.CAN_NOT_EDIT_RESTAURANT, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, restaurant)
}
