package helper

import (
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
)

// jalankan satu request lewat app kecil supaya dapat *fiber.Ctx asli
func captureMeta(t *testing.T, headers map[string]string) (ip, device, ua string) {
	t.Helper()
	app := fiber.New()
	app.Get("/meta", func(c *fiber.Ctx) error {
		ip = ClientIP(c)
		device = DeviceID(c)
		ua = UserAgent(c)
		return c.SendStatus(fiber.StatusOK)
	})

	req := httptest.NewRequest(fiber.MethodGet, "/meta", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	if _, err := app.Test(req, -1); err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	return ip, device, ua
}

func TestClientIPPrefersForwardedFor(t *testing.T) {
	ip, _, _ := captureMeta(t, map[string]string{
		"X-Forwarded-For": "203.0.113.7, 10.0.0.1",
		"X-Real-Ip":       "198.51.100.2",
	})
	if ip != "203.0.113.7" {
		t.Errorf("ClientIP = %q, mau hop pertama X-Forwarded-For", ip)
	}
}

func TestClientIPFallsBackToRealIP(t *testing.T) {
	ip, _, _ := captureMeta(t, map[string]string{"X-Real-Ip": "198.51.100.2"})
	if ip != "198.51.100.2" {
		t.Errorf("ClientIP = %q, mau X-Real-Ip", ip)
	}
}

func TestDeviceIDHeaderWins(t *testing.T) {
	_, device, _ := captureMeta(t, map[string]string{
		"X-Device-Id":     "scanner-lobby-1",
		"X-Forwarded-For": "203.0.113.7",
	})
	if device != "scanner-lobby-1" {
		t.Errorf("DeviceID = %q, mau dari header", device)
	}
}

func TestDeviceIDFallsBackToIP(t *testing.T) {
	_, device, _ := captureMeta(t, map[string]string{"X-Forwarded-For": "203.0.113.7"})
	if device != "203.0.113.7" {
		t.Errorf("DeviceID tanpa header = %q, mau IP client", device)
	}
}

func TestUserAgentDefault(t *testing.T) {
	_, _, ua := captureMeta(t, nil)
	if ua != "Unknown" {
		t.Errorf("UserAgent kosong = %q, mau Unknown", ua)
	}
}

func TestSanitizeInput(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"  Budi Santoso  ", "Budi Santoso"},
		{"<script>alert(1)</script>Budi", "scriptalert(1)/scriptBudi"},
		{"javascript:alert(1)", "alert(1)"},
		{"JaVaScRiPt:x", "x"},
		{"img src=x onerror=alert(1) Budi", "img src=x alert(1) Budi"},
		{"a ONCLICK=evil b", "a evil b"},
		{"biasa saja", "biasa saja"},
	}
	for _, tc := range cases {
		if got := SanitizeInput(tc.in); got != tc.want {
			t.Errorf("SanitizeInput(%q) = %q, mau %q", tc.in, got, tc.want)
		}
	}
}
