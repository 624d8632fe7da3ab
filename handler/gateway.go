package handler

import (
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"net/url"
	"os"
	"strconv"
	"time"

	"restaurant_manager/model"
)

// Gateway dựng URL thanh toán có chữ ký và verify callback, theo chuẩn
// return URL + IPN của cổng thanh toán
type Gateway struct {
	Config model.GatewayConfig
}

func NewGateway() *Gateway {
	return &Gateway{
		Config: model.GatewayConfig{
			TmnCode:    os.Getenv("PAY_TMNCODE"),
			HashSecret: os.Getenv("PAY_HASHSECRET"),
			BaseURL:    os.Getenv("PAY_URL"),
			ReturnURL:  os.Getenv("APP_URL") + "/payment/return",
			IPNURL:     os.Getenv("APP_URL") + "/payment/ipn",
		},
	}
}

func (g *Gateway) BuildPaymentUrl(req model.PaymentRequest) (string, error) {
	params := url.Values{}
	params.Add("pay_Version", "2.1.0")
	params.Add("pay_Command", "pay")
	params.Add("pay_TmnCode", g.Config.TmnCode)
	params.Add("pay_Amount", strconv.FormatInt(req.Amount*100, 10))
	params.Add("pay_CreateDate", time.Now().Format("20060102150405"))
	params.Add("pay_CurrCode", "VND")
	params.Add("pay_IpAddr", req.IPAddr)
	params.Add("pay_OrderInfo", req.OrderInfo)
	params.Add("pay_ReturnUrl", g.Config.ReturnURL)
	params.Add("pay_TxnRef", req.TxnRef)
	params.Add("pay_ExpireDate", time.Now().Add(15*time.Minute).Format("20060102150405"))

	// Sort & Hash
	query := params.Encode()
	hash := g.generateHash(query)
	fullQuery := query + "&pay_SecureHash=" + hash

	return g.Config.BaseURL + "?" + fullQuery, nil
}

// VerifyReturnUrl xác thực callback từ cổng thanh toán (return URL lẫn IPN)
func (g *Gateway) VerifyReturnUrl(query url.Values) model.PaymentResponse {
	secureHash := query.Get("pay_SecureHash")
	query.Del("pay_SecureHash")

	expectedHash := g.generateHash(query.Encode())

	if secureHash != expectedHash {
		return model.PaymentResponse{IsSuccess: false, Message: "Invalid hash"}
	}

	if query.Get("pay_ResponseCode") == "00" {
		txnRef := query.Get("pay_TxnRef")
		amount, _ := strconv.ParseInt(query.Get("pay_Amount"), 10, 64)
		return model.PaymentResponse{
			IsSuccess: true,
			TxnRef:    txnRef,
			Amount:    amount / 100,
			Status:    "PAID",
		}
	}

	return model.PaymentResponse{IsSuccess: false, Message: "Payment failed"}
}

func (g *Gateway) generateHash(data string) string {
	h := hmac.New(sha512.New, []byte(g.Config.HashSecret))
	h.Write([]byte(data))
	return hex.EncodeToString(h.Sum(nil))
}
