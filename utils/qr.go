package utils

import "github.com/skip2/go-qrcode"

// GenerateQRCode trả về PNG bytes của mã QR nhận món, đính kèm vào email
// xác nhận
func GenerateQRCode(content string, size int) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, size)
}
