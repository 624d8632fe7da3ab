package helper

import (
	"log"
	"time"

	"github.com/robfig/cron/v3"

	"restaurant_manager/database"
	"restaurant_manager/model"
)

const CheckoutTimeout = 15 * time.Minute

var expiryCron *cron.Cron

// StartCheckoutExpiryWorker hủy các phiên thanh toán PENDING quá hạn
func StartCheckoutExpiryWorker() {
	expiryCron = cron.New()
	_, err := expiryCron.AddFunc("@every 5m", ExpireCheckoutSessions)
	if err != nil {
		log.Printf("Không đăng ký được expiry job: %v", err)
		return
	}
	expiryCron.Start()
}

func StopCheckoutExpiryWorker() {
	if expiryCron != nil {
		expiryCron.Stop()
	}
}

func ExpireCheckoutSessions() {
	cutoff := time.Now().Add(-CheckoutTimeout)
	result := database.DB.Model(&model.CheckoutSession{}).
		Where("status = ? AND created_at < ?", model.CheckoutPending, cutoff).
		Update("status", model.CheckoutExpired)
	if result.Error != nil {
		log.Printf("Không expire được checkout sessions: %v", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		log.Printf("Đã expire %d checkout sessions", result.RowsAffected)
	}
}
