package helper

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"restaurant_manager/database"
	"restaurant_manager/model"
)

var JwtSecret = []byte(os.Getenv("JWT_SECRET"))

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetAccountByUsername(u string) (*model.Account, error) {
	db := database.DB
	var account model.Account
	if err := db.Where(&model.Account{Username: u}).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func GetCustomerByEmail(e string) (*model.Customer, error) {
	db := database.DB
	var customer model.Customer
	if err := db.Where(&model.Customer{Email: e}).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

func GenerateAccessToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["customerId"] = tokenClaim.CustomerId
	claims["accountId"] = tokenClaim.AccountId
	claims["exp"] = time.Now().Add(time.Minute * 60).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func GenerateRefreshToken(tokenClaim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["username"] = tokenClaim.Username
	claims["accountId"] = tokenClaim.AccountId
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	t, err := token.SignedString(JwtSecret)
	return t, err
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return JwtSecret, nil
	})

	return token, err
}

// GetInfoAccountFromToken đọc account từ JWT trong Locals, trả kèm cờ role
func GetInfoAccountFromToken(c *fiber.Ctx) (model.TokenClaim, *model.Account, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return model.TokenClaim{}, nil, errors.New("no token in context")
	}
	claims := token.Claims.(jwt.MapClaims)
	accountId := uint(claims["accountId"].(float64))
	username, _ := claims["username"].(string)

	var account model.Account
	db := database.DB
	if err := db.Preload("Restaurant").First(&account, accountId).Error; err != nil {
		return model.TokenClaim{}, nil, err
	}

	return model.TokenClaim{
		AccountId:    accountId,
		Username:     username,
		RestaurantId: account.RestaurantId,
	}, &account, nil
}

// GetInfoCustomerFromToken: customerId = 0 nghĩa là khách vãng lai
func GetInfoCustomerFromToken(c *fiber.Ctx) (model.TokenClaim, *model.Customer) {
	guestClaim := model.TokenClaim{}

	u := c.Locals("user")
	if u == nil {
		return guestClaim, nil
	}
	token, ok := u.(*jwt.Token)
	if !ok || token == nil {
		return guestClaim, nil
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return guestClaim, nil
	}
	customerIdRaw, ok := claims["customerId"].(float64)
	if !ok || customerIdRaw == 0 {
		return guestClaim, nil
	}
	customerId := uint(customerIdRaw)

	var customer model.Customer
	if err := database.DB.First(&customer, customerId).Error; err != nil {
		log.Printf("customer %d from token not found: %v", customerId, err)
		return guestClaim, nil
	}

	return model.TokenClaim{CustomerId: customerId, Username: customer.UserName}, &customer
}
