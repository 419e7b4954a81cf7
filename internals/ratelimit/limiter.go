// Package ratelimit: sliding-window limiter per identifier.
// Backend pluggable: in-memory (single instance) atau Redis (multi instance,
// kuota dihitung global). Dipilih lewat config saat boot.
package ratelimit

import (
	"context"
	"time"
)

type Decision struct {
	Allowed   bool      `json:"allowed"`
	Limit     int       `json:"limit"`
	Remaining int       `json:"remaining"`
	ResetAt   time.Time `json:"reset_at"`
}

type Limiter interface {
	// Allow menghitung request yang sudah lolos dalam trailing window untuk
	// identifier ini. Kalau masih di bawah kuota, timestamp-nya dicatat.
	Allow(ctx context.Context, identifier string) (Decision, error)
}
