package helper

import (
	"regexp"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// ClientIP mengambil IP asli client (prioritas X-Forwarded-For → X-Real-Ip → c.IP()).
func ClientIP(c *fiber.Ctx) string {
	if fwd := strings.TrimSpace(c.Get("X-Forwarded-For")); fwd != "" {
		parts := strings.Split(fwd, ",")
		return strings.TrimSpace(parts[0])
	}
	if real := strings.TrimSpace(c.Get("X-Real-Ip")); real != "" {
		return real
	}
	if ip := c.IP(); ip != "" {
		return ip
	}
	return "unknown"
}

func UserAgent(c *fiber.Ctx) string {
	if ua := strings.TrimSpace(c.Get(fiber.HeaderUserAgent)); ua != "" {
		return ua
	}
	return "Unknown"
}

// DeviceID: header X-Device-Id, fallback ke IP client kalau kosong.
// Dipakai sebagai key rate-limit check-in + identitas device di audit log.
func DeviceID(c *fiber.Ctx) string {
	if id := strings.TrimSpace(c.Get("X-Device-Id")); id != "" {
		return id
	}
	return ClientIP(c)
}

// atribut event inline (onerror=, onclick=, ...), case-insensitive
var eventAttrRe = regexp.MustCompile(`(?i)on\w+=`)

// SanitizeInput membersihkan input bebas dari karakter/pola XSS sederhana:
// buang <>, skema javascript:, dan atribut event inline.
func SanitizeInput(input string) string {
	s := strings.TrimSpace(input)
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	lower := strings.ToLower(s)
	for {
		idx := strings.Index(lower, "javascript:")
		if idx < 0 {
			break
		}
		s = s[:idx] + s[idx+len("javascript:"):]
		lower = strings.ToLower(s)
	}
	return eventAttrRe.ReplaceAllString(s, "")
}
