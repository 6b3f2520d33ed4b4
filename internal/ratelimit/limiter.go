// Package ratelimit paces generation loops with a token bucket.
//
// The bucket holds up to the configured operations-per-second worth of tokens,
// starts full, and refills continuously with elapsed wall-clock time. Each call
// to Limit takes one token, sleeping until one is available.
package ratelimit

import (
	"context"
	"fmt"
	"math"

	"golang.org/x/time/rate"
)

// Limiter is a token-bucket throttle. The zero value and a nil *Limiter never block.
type Limiter struct {
	bucket *rate.Limiter
}

// New returns a limiter allowing maxPerSecond operations per second with a
// bucket capacity of maxPerSecond tokens (at least one). A non-positive rate
// disables limiting.
func New(maxPerSecond float64) *Limiter {
	if maxPerSecond <= 0 || math.IsInf(maxPerSecond, 1) {
		return &Limiter{}
	}
	capacity := int(math.Max(1, math.Floor(maxPerSecond)))
	return &Limiter{bucket: rate.NewLimiter(rate.Limit(maxPerSecond), capacity)}
}

// Limit blocks until a token is available and consumes it. It returns an error
// if ctx is done first or if the required wait would exceed ctx's deadline.
func (l *Limiter) Limit(ctx context.Context) error {
	if l == nil || l.bucket == nil {
		return ctx.Err()
	}
	if err := l.bucket.Wait(ctx); err != nil {
		return fmt.Errorf("rate limit wait: %w", err)
	}
	return nil
}

// Unlimited reports whether the limiter never blocks.
func (l *Limiter) Unlimited() bool {
	return l == nil || l.bucket == nil
}

// Capacity returns the bucket size, or 0 when unlimited.
func (l *Limiter) Capacity() int {
	if l.Unlimited() {
		return 0
	}
	return l.bucket.Burst()
}

// Available returns the number of tokens currently in the bucket.
func (l *Limiter) Available() float64 {
	if l.Unlimited() {
		return math.Inf(1)
	}
	return l.bucket.Tokens()
}
