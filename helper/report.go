package helper

import (
	"fmt"
	"log"
	"time"

	"github.com/go-co-op/gocron/v2"

	"restaurant_manager/database"
	"restaurant_manager/model"
	"restaurant_manager/realtime"
	"restaurant_manager/utils"
)

var reportScheduler gocron.Scheduler

// StartDailyReportScheduler gửi báo cáo doanh thu cuối ngày cho từng nhà hàng
func StartDailyReportScheduler(ledger realtime.Ledger, mailer *utils.Mailer) {
	s, err := gocron.NewScheduler(
		gocron.WithLocation(time.FixedZone("ICT", 7*3600)),
	)
	if err != nil {
		log.Printf("Không tạo được report scheduler: %v", err)
		return
	}

	_, err = s.NewJob(
		gocron.DailyJob(
			1,
			gocron.NewAtTimes(
				gocron.NewAtTime(23, 55, 0),
			),
		),
		gocron.NewTask(func() { SendDailyReports(ledger, mailer) }),
	)
	if err != nil {
		log.Printf("Không đăng ký được report job: %v", err)
		return
	}

	s.Start()
	reportScheduler = s
}

func StopDailyReportScheduler() {
	if reportScheduler != nil {
		_ = reportScheduler.Shutdown()
	}
}

// SendDailyReports đọc ledger từng nhà hàng, đếm đơn completed trong ngày.
// Đơn completed vẫn nằm nguyên trong ledger (chưa có bước archive) nên chỉ
// lọc theo orderPlacedAt.
func SendDailyReports(ledger realtime.Ledger, mailer *utils.Mailer) {
	var restaurants model.Restaurants
	if err := database.DB.Where("active = true AND email <> ''").Find(&restaurants).Error; err != nil {
		log.Printf("Không load được danh sách nhà hàng: %v", err)
		return
	}

	since := time.Now().Add(-24 * time.Hour)
	for _, r := range restaurants {
		orders, err := ledger.GetOrders(r.Slug)
		if err != nil {
			log.Printf("Không đọc được ledger %s: %v", r.Slug, err)
			continue
		}

		completed := 0
		var revenue float64
		for _, order := range orders {
			if order.OrderPlacedAt.Before(since) {
				continue
			}
			if order.Status == model.OrderCompleted {
				completed++
				revenue += order.DiscountPrice
			}
		}

		body := fmt.Sprintf(
			"Báo cáo ngày %s\n\nĐơn hoàn tất: %d\nDoanh thu: %.0fđ\nTổng đơn trong ledger: %d\n",
			time.Now().Format("02/01/2006"), completed, revenue, len(orders),
		)
		if err := mailer.Send(r.Email, "Báo cáo doanh thu "+r.Name, body); err != nil {
			log.Printf("Không gửi được báo cáo cho %s: %v", r.Slug, err)
		}
	}
}
