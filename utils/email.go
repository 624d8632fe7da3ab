package utils

import (
	"bytes"
	"html/template"
	"io"
	"log"
	"strconv"

	"gopkg.in/gomail.v2"

	"restaurant_manager/config"
)

// Mailer gửi mail qua SMTP, cấu hình từ .env
type Mailer struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

func NewMailerFromEnv() *Mailer {
	port, _ := strconv.Atoi(config.Config("SMTP_PORT"))
	if port == 0 {
		port = 587
	}
	return &Mailer{
		Host:     config.Config("SMTP_HOST"),
		Port:     port,
		Username: config.Config("SMTP_USERNAME"),
		Password: config.Config("SMTP_PASSWORD"),
		From:     config.Config("SMTP_FROM"),
	}
}

// Send gửi một mail HTML đơn giản. Notification runner gọi hàm này cho mỗi
// đơn hàng đổi trạng thái.
func (m *Mailer) Send(to, subject, body string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.From)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
	return d.DialAndSend(msg)
}

// OrderConfirmationData dữ liệu cho template email xác nhận
type OrderConfirmationData struct {
	OrderCode      string
	RestaurantName string
	Items          []struct {
		Name     string
		Quantity int
	}
	TotalAmount float64
}

const orderConfirmationTemplate = `
<h2>Cảm ơn bạn đã đặt món tại {{.RestaurantName}}!</h2>
<p>Mã đơn hàng: <b>{{.OrderCode}}</b></p>
<ul>
{{range .Items}}<li>{{.Quantity}} x {{.Name}}</li>
{{end}}</ul>
<p>Tổng tiền: {{printf "%.0f" .TotalAmount}}đ</p>
<p>Đưa mã QR đính kèm cho nhân viên khi nhận món.</p>
`

// SendOrderConfirmationEmail gửi email xác nhận sau khi thanh toán thành
// công, đính kèm QR nhận món (async để không delay webhook response)
func (m *Mailer) SendOrderConfirmationEmail(to string, data OrderConfirmationData, qrPNG []byte) {
	go func() {
		tmpl, err := template.New("order_confirmation").Parse(orderConfirmationTemplate)
		if err != nil {
			log.Printf("Lỗi load template email: %v", err)
			return
		}

		var body bytes.Buffer
		if err := tmpl.Execute(&body, data); err != nil {
			log.Printf("Lỗi render template email: %v", err)
			return
		}

		msg := gomail.NewMessage()
		msg.SetHeader("From", m.From)
		msg.SetHeader("To", to)
		msg.SetHeader("Subject", "Xác nhận đơn hàng #"+data.OrderCode)
		msg.SetBody("text/html", body.String())
		if len(qrPNG) > 0 {
			msg.Attach("pickup-qr.png", gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(qrPNG)
				return err
			}))
		}

		d := gomail.NewDialer(m.Host, m.Port, m.Username, m.Password)
		if err := d.DialAndSend(msg); err != nil {
			log.Printf("Lỗi gửi email: %v", err)
		}
	}()
}
