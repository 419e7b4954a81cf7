package ratelimit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// RedisLimiter: sliding window di atas sorted set, score = unix nano.
// Wajib dipakai kalau app jalan multi instance supaya kuota tetap global.
type RedisLimiter struct {
	rdb    *redis.Client
	prefix string
	max    int
	window time.Duration
	now    func() time.Time
}

func NewRedisLimiter(rdb *redis.Client, prefix string, max int, window time.Duration) *RedisLimiter {
	return &RedisLimiter{rdb: rdb, prefix: prefix, max: max, window: window, now: time.Now}
}

func (l *RedisLimiter) key(identifier string) string {
	return fmt.Sprintf("ratelimit:%s:%s", l.prefix, identifier)
}

func (l *RedisLimiter) Allow(ctx context.Context, identifier string) (Decision, error) {
	key := l.key(identifier)
	now := l.now()
	cutoff := now.Add(-l.window).UnixNano()

	// member unik supaya dua scan di nanosecond yang sama tetap terhitung dua
	member := fmt.Sprintf("%d-%s", now.UnixNano(), uuid.NewString())

	// Satu MULTI/EXEC: prune, catat, baru hitung. Keputusan dibaca dari ZCard
	// di blok atomic yang sama, jadi dua request di slot kuota terakhir tidak
	// bisa sama-sama lolos: yang kalah lihat count > max dan mundur.
	pipe := l.rdb.TxPipeline()
	pipe.ZRemRangeByScore(ctx, key, "0", fmt.Sprintf("%d", cutoff))
	pipe.ZAdd(ctx, key, redis.Z{Score: float64(now.UnixNano()), Member: member})
	countCmd := pipe.ZCard(ctx, key)
	pipe.PExpire(ctx, key, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return Decision{}, err
	}

	count := int(countCmd.Val())
	if count > l.max {
		// di atas kuota: cabut lagi entri milik request ini
		if err := l.rdb.ZRem(ctx, key, member).Err(); err != nil {
			return Decision{}, err
		}
		oldest, err := l.rdb.ZRangeWithScores(ctx, key, 0, 0).Result()
		resetAt := now.Add(l.window)
		if err == nil && len(oldest) > 0 {
			resetAt = time.Unix(0, int64(oldest[0].Score)).Add(l.window)
		}
		return Decision{
			Allowed:   false,
			Limit:     l.max,
			Remaining: 0,
			ResetAt:   resetAt,
		}, nil
	}

	return Decision{
		Allowed:   true,
		Limit:     l.max,
		Remaining: l.max - count,
		ResetAt:   now.Add(l.window),
	}, nil
}
