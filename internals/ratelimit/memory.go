package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryLimiter menyimpan timestamp request per identifier di map ber-mutex.
// Hilang saat restart — cukup untuk deployment single process.
type MemoryLimiter struct {
	mu       sync.Mutex
	requests map[string][]time.Time
	max      int
	window   time.Duration
	now      func() time.Time
}

func NewMemoryLimiter(max int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		requests: make(map[string][]time.Time),
		max:      max,
		window:   window,
		now:      time.Now,
	}
}

func (l *MemoryLimiter) Allow(_ context.Context, identifier string) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	cutoff := now.Add(-l.window)

	// buang timestamp di luar window
	valid := l.requests[identifier][:0]
	for _, t := range l.requests[identifier] {
		if t.After(cutoff) {
			valid = append(valid, t)
		}
	}

	if len(valid) >= l.max {
		l.requests[identifier] = valid
		oldest := valid[0]
		for _, t := range valid {
			if t.Before(oldest) {
				oldest = t
			}
		}
		return Decision{
			Allowed:   false,
			Limit:     l.max,
			Remaining: 0,
			ResetAt:   oldest.Add(l.window),
		}, nil
	}

	valid = append(valid, now)
	l.requests[identifier] = valid

	return Decision{
		Allowed:   true,
		Limit:     l.max,
		Remaining: l.max - len(valid),
		ResetAt:   now.Add(l.window),
	}, nil
}
