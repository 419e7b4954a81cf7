package configs

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var (
	JWTSecret  string
	AppBaseURL string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	AppBaseURL = GetEnv("APP_BASE_URL", "http://localhost:3000")

	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	} else {
		log.Println("✅ JWT_SECRET berhasil dimuat.")
	}
}

func GetEnv(key string, defaultValue ...string) string {
	value, exists := os.LookupEnv(key)
	if !exists && len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return value
}

func GetEnvInt(key string, defaultValue int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return defaultValue
}

// =======================
// RATE LIMIT & SCANNER
// =======================

// Kuota sliding-window per identifier. Registrasi ketat (anti-abuse per IP),
// check-in longgar karena scan massal di pintu masuk itu legitimate.
type RateLimitPolicy struct {
	Max    int
	Window time.Duration
}

func RegistrationRatePolicy() RateLimitPolicy {
	return RateLimitPolicy{
		Max:    GetEnvInt("REGISTER_RATE_MAX", 3),
		Window: time.Duration(GetEnvInt("REGISTER_RATE_WINDOW_SEC", 3600)) * time.Second,
	}
}

func CheckInRatePolicy() RateLimitPolicy {
	return RateLimitPolicy{
		Max:    GetEnvInt("CHECKIN_RATE_MAX", 100),
		Window: time.Duration(GetEnvInt("CHECKIN_RATE_WINDOW_SEC", 60)) * time.Second,
	}
}

// REDIS_ADDR kosong = limiter in-memory (cukup untuk single instance).
func RedisAddr() string {
	return GetEnv("REDIS_ADDR")
}

// TRUSTED_PROXIES: IP/CIDR (pisah koma) yang boleh menyuplai X-Forwarded-For.
// Kosong = tidak ada yang dipercaya, supaya client tidak bisa memalsukan IP
// untuk lolos dari kuota registrasi per IP.
func TrustedProxies() []string {
	raw := GetEnv("TRUSTED_PROXIES")
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Jeda sebelum scanner otomatis lanjut ke peserta berikutnya (ms).
func ScannerResumeMs() int {
	return GetEnvInt("SCANNER_RESUME_MS", 3000)
}
