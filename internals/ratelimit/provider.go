package ratelimit

import (
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// New memilih backend: REDIS_ADDR terisi → Redis (kuota global),
// kosong → in-memory (mode development / single instance).
func New(redisAddr, prefix string, max int, window time.Duration) Limiter {
	if redisAddr == "" {
		log.Printf("ℹ️ Rate limiter %q pakai in-memory backend", prefix)
		return NewMemoryLimiter(max, window)
	}
	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	log.Printf("✅ Rate limiter %q pakai Redis backend (%s)", prefix, redisAddr)
	return NewRedisLimiter(rdb, prefix, max, window)
}
