package service

import (
	"strings"

	"github.com/google/uuid"
	qrcode "github.com/skip2/go-qrcode"
)

// Ukuran PNG QR (px). Error correction Medium, border default (quiet zone),
// hitam di atas putih — sama dengan yang dipindai scanner di pintu masuk.
const QRImageSize = 400

// GenerateToken membuat token registrasi baru: UUIDv4 dari crypto/rand,
// 122 bit entropi, tidak bisa ditebak dari token sebelumnya.
func GenerateToken() string {
	return uuid.NewString()
}

// QRContent membentuk URL yang di-encode ke dalam QR: <base-url>/qr/<token>.
// Deterministik per token, jadi response image aman di-cache selamanya.
func QRContent(baseURL, token string) string {
	return strings.TrimRight(baseURL, "/") + "/qr/" + token
}

// RenderPNG meng-encode content jadi buffer PNG siap kirim.
func RenderPNG(content string) ([]byte, error) {
	return qrcode.Encode(content, qrcode.Medium, QRImageSize)
}

// TokenFromPayload mengambil token dari hasil decode scanner: segmen path
// terakhir dari URL, atau seluruh payload kalau tanpa '/'. Dipakai di
// scanner.js dan di handler check-in untuk klien yang mengirim URL utuh.
func TokenFromPayload(payload string) string {
	p := strings.TrimSpace(payload)
	if !strings.Contains(p, "/") {
		return p
	}
	parts := strings.Split(p, "/")
	return parts[len(parts)-1]
}
