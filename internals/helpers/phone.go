package helper

import (
	"errors"
	"regexp"
	"strings"
)

// Format nomor HP Indonesia: 08xxx / 62xxx / +62xxx, 9-12 digit setelah prefix.
var phoneRe = regexp.MustCompile(`^(\+62|62|0)[0-9]{9,12}$`)

var ErrInvalidPhone = errors.New("format nomor telepon tidak valid (contoh: 08123456789)")

// NormalizePhone memvalidasi lalu menormalkan nomor HP ke bentuk +62…
func NormalizePhone(phone string) (string, error) {
	p := strings.TrimSpace(phone)
	if !phoneRe.MatchString(p) {
		return "", ErrInvalidPhone
	}
	switch {
	case strings.HasPrefix(p, "0"):
		return "+62" + p[1:], nil
	case strings.HasPrefix(p, "62"):
		return "+" + p, nil
	default:
		return p, nil
	}
}

// FormatPhoneDisplay mengubah +6281234567890 jadi 0812-3456-7890 untuk tampilan/export.
func FormatPhoneDisplay(phone string) string {
	if !strings.HasPrefix(phone, "+62") {
		return phone
	}
	number := "0" + phone[3:]
	if len(number) != 12 {
		return number
	}
	return number[:4] + "-" + number[4:8] + "-" + number[8:]
}
