package database

import (
	"errors"
	"log"
	"strconv"

	"gorm.io/gorm"

	"restaurant_manager/model"
)

// CustomerDirectory tra địa chỉ email khách hàng cho notification runner
type CustomerDirectory struct {
	db *gorm.DB
}

func NewCustomerDirectory(db *gorm.DB) *CustomerDirectory {
	return &CustomerDirectory{db: db}
}

func (d *CustomerDirectory) GetContact(customerId string) (string, bool) {
	id, err := strconv.ParseUint(customerId, 10, 32)
	if err != nil {
		return "", false
	}

	var customer model.Customer
	if err := d.db.Select("email").First(&customer, uint(id)).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			log.Printf("customer lookup failed for %s: %v", customerId, err)
		}
		return "", false
	}
	if customer.Email == "" {
		return "", false
	}
	return customer.Email, true
}
